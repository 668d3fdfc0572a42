package main

import (
	"io"
	"log"
	"net/http"
	"net/http/httputil"
	"net/url"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/prudhivi99/Distributed-Systems/ecommerce-go/internal/config"
	"github.com/prudhivi99/Distributed-Systems/ecommerce-go/internal/discovery"
)

const (
	upstreamService = "ecommerce-api"
	refreshInterval = 10 * time.Second
)

var healthClient = &http.Client{Timeout: 2 * time.Second}

// Gateway proxies API traffic to the instance Consul reports as healthy,
// or to a fixed fallback URL.
type Gateway struct {
	consul   *discovery.ConsulClient
	fallback string

	mutex  sync.RWMutex
	proxy  *httputil.ReverseProxy
	target string
}

func NewGateway(consul *discovery.ConsulClient, fallback string) *Gateway {
	g := &Gateway{
		consul:   consul,
		fallback: fallback,
	}
	g.discover()
	return g
}

func (g *Gateway) discover() {
	target, err := g.consul.GetServiceURL(upstreamService)
	if err != nil {
		target = g.fallback
	}

	g.mutex.RLock()
	unchanged := target == g.target
	g.mutex.RUnlock()
	if unchanged {
		return
	}
	if err != nil {
		log.Printf("⚠️ Service %s not found, using %s: %v", upstreamService, target, err)
	}
	g.updateProxy(target)
}

func (g *Gateway) updateProxy(serviceURL string) {
	target, err := url.Parse(serviceURL)
	if err != nil {
		log.Printf("❌ Invalid URL for %s: %v", upstreamService, err)
		return
	}

	proxy := httputil.NewSingleHostReverseProxy(target)
	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		log.Printf("❌ Proxy error for %s: %v", upstreamService, err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		io.WriteString(w, `{"error": "service unavailable"}`)
	}

	g.mutex.Lock()
	g.proxy = proxy
	g.target = serviceURL
	g.mutex.Unlock()
	log.Printf("✅ Updated route: %s → %s", upstreamService, serviceURL)
}

func (g *Gateway) watch(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for range ticker.C {
		g.discover()
	}
}

func (g *Gateway) Proxy(c *gin.Context) {
	g.mutex.RLock()
	proxy := g.proxy
	g.mutex.RUnlock()

	if proxy == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": upstreamService + " unavailable"})
		return
	}
	log.Printf("🔀 Routing %s %s → %s", c.Request.Method, c.Request.URL.Path, upstreamService)
	proxy.ServeHTTP(c.Writer, c.Request)
}

func (g *Gateway) HealthCheck(c *gin.Context) {
	g.mutex.RLock()
	target := g.target
	g.mutex.RUnlock()

	status := "healthy"
	upstream := "healthy"
	if !upstreamHealthy(target) {
		status = "degraded"
		upstream = "unhealthy"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   status,
		"service":  "api-gateway",
		"services": gin.H{upstreamService: upstream},
	})
}

func upstreamHealthy(target string) bool {
	if target == "" {
		return false
	}
	resp, err := healthClient.Get(target + "/health")
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func (g *Gateway) ListServices(c *gin.Context) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	c.JSON(http.StatusOK, gin.H{"services": gin.H{upstreamService: g.target}})
}

func newRouter(g *Gateway) *gin.Engine {
	router := gin.Default()

	router.GET("/health", g.HealthCheck)
	router.GET("/services", g.ListServices)
	router.Any("/api/*path", g.Proxy)

	return router
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	var consul *discovery.ConsulClient
	if cfg.ConsulEnabled {
		consul, err = discovery.NewConsulClient(cfg.ConsulHost, cfg.ConsulPort)
		if err != nil {
			log.Printf("⚠️ Failed to connect to Consul, using %s: %v", cfg.UpstreamURL, err)
		}
	}

	gateway := NewGateway(consul, cfg.UpstreamURL)
	go gateway.watch(refreshInterval)

	log.Printf("🚀 API Gateway starting on http://0.0.0.0%s", cfg.Addr())
	if err := newRouter(gateway).Run(cfg.Addr()); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
