package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prudhivi99/Distributed-Systems/ecommerce-go/internal/cache"
	"github.com/prudhivi99/Distributed-Systems/ecommerce-go/internal/client"
	"github.com/prudhivi99/Distributed-Systems/ecommerce-go/internal/cloud"
	"github.com/prudhivi99/Distributed-Systems/ecommerce-go/internal/config"
	"github.com/prudhivi99/Distributed-Systems/ecommerce-go/internal/dashboard"
	"github.com/prudhivi99/Distributed-Systems/ecommerce-go/internal/db"
	"github.com/prudhivi99/Distributed-Systems/ecommerce-go/internal/discovery"
	"github.com/prudhivi99/Distributed-Systems/ecommerce-go/internal/handlers"
	"github.com/prudhivi99/Distributed-Systems/ecommerce-go/internal/messaging"
	"github.com/prudhivi99/Distributed-Systems/ecommerce-go/internal/metrics"
	"github.com/prudhivi99/Distributed-Systems/ecommerce-go/internal/processor"
	"github.com/prudhivi99/Distributed-Systems/ecommerce-go/internal/publisher"
	"github.com/prudhivi99/Distributed-Systems/ecommerce-go/internal/service"
	"github.com/prudhivi99/Distributed-Systems/ecommerce-go/internal/storage"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	ctx := context.Background()
	reg := metrics.NewRegistry()

	// Connect to MongoDB
	mongoDB, err := db.NewMongoDB(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer mongoDB.Close()

	productRepo := db.NewProductRepository(mongoDB.DB)
	categoryRepo := db.NewCategoryRepository(mongoDB.DB)
	orderRepo := db.NewOrderRepository(mongoDB.DB)

	// Redis is optional: without it products are read straight from MongoDB
	var products service.ProductStore = productRepo
	if cfg.RedisHost != "" {
		redisCache, err := cache.NewRedisCache(cfg.RedisHost, cfg.RedisPort, cfg.CacheTTL)
		if err != nil {
			log.Printf("⚠️ Redis unavailable, product cache disabled: %v", err)
		} else {
			defer redisCache.Close()
			products = db.NewCachedProductRepository(productRepo, redisCache).WithObserver(reg)
		}
	}

	// RabbitMQ is optional: orders are still created, just not announced
	var events service.EventPublisher
	if cfg.RabbitMQURL != "" {
		if mq, err := messaging.NewRabbitMQ(cfg.RabbitMQURL); err != nil {
			log.Printf("⚠️ RabbitMQ unavailable, order events disabled: %v", err)
		} else {
			defer mq.Close()
			pub, err := publisher.NewOrderPublisher(mq)
			if err != nil {
				log.Fatalf("Failed to create publisher: %v", err)
			}
			events = pub
		}
	}

	awsCfg, awsErr := cloud.LoadAWSConfig(ctx, cfg.AWS)
	if awsErr != nil {
		log.Printf("⚠️ AWS config unavailable: %v", awsErr)
	}

	var images service.ImageUploader
	if awsErr == nil && cfg.AWS.BucketName != "" {
		store := storage.NewImageStore(awsCfg, cfg.AWS.EndpointURL, cfg.AWS.BucketName)
		if err := store.EnsureBucket(ctx); err != nil {
			log.Printf("⚠️ S3 unavailable, image uploads disabled: %v", err)
		} else {
			images = store
		}
	}

	var orderProcessor handlers.OrderProcessor
	switch cfg.Processor.Mode {
	case config.ProcessorLambda:
		if awsErr == nil {
			orderProcessor = client.NewProcessorClient(awsCfg, cfg.AWS.EndpointURL, cfg.Processor.FunctionName)
			log.Printf("✅ Orders processed by function %s", cfg.Processor.FunctionName)
		}
	default:
		orderProcessor = processor.New(orderRepo, processor.WithRecorder(reg))
	}

	router := handlers.NewRouter(handlers.Deps{
		ServiceName: cfg.ServiceName,
		Products:    service.NewProductService(products, categoryRepo, images),
		Categories:  service.NewCategoryService(categoryRepo, products),
		Orders:      service.NewOrderService(orderRepo, products, events),
		Sales:       dashboard.NewSalesEngine(productRepo, orderRepo),
		Processor:   orderProcessor,
		Metrics:     reg,
	})

	var consul *discovery.ConsulClient
	if cfg.ConsulEnabled {
		consul, err = discovery.NewConsulClient(cfg.ConsulHost, cfg.ConsulPort)
		if err != nil {
			log.Printf("⚠️ Failed to connect to Consul: %v", err)
		} else if err := consul.Register(discovery.ServiceConfig{
			Name: cfg.ServiceName,
			ID:   cfg.ServiceID,
			Port: cfg.Port,
			Tags: []string{"api", "v1"},
		}); err != nil {
			log.Printf("⚠️ Failed to register service: %v", err)
		}
	}

	srv := &http.Server{Addr: cfg.Addr(), Handler: router}

	// Deregister and drain on shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		log.Println("Shutting down...")
		if consul != nil {
			consul.Deregister(cfg.ServiceID)
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Printf("🚀 %s starting on http://0.0.0.0%s", cfg.ServiceName, cfg.Addr())
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server failed: %v", err)
	}
}
