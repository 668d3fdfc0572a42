package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/prudhivi99/Distributed-Systems/ecommerce-go/internal/models"
)

const orderHistory = 180 * 24 * time.Hour

var (
	categoryNames = []string{
		"Eletrônicos", "Alimentos", "Bebidas", "Roupas", "Acessórios",
		"Casa", "Jardim", "Livros", "Esportes", "Brinquedos",
		"Saúde", "Beleza", "Pet", "Automotivo", "Ferramentas",
	}
	productNames = []string{
		"Smartphone", "Notebook", "Tablet", "Smart TV", "Fone de Ouvido",
		"Mouse", "Teclado", "Monitor", "Câmera", "Impressora",
		"Arroz", "Feijão", "Macarrão", "Café", "Chocolate",
		"Camiseta", "Calça", "Tênis", "Mochila", "Relógio",
		"Perfume", "Shampoo", "Sabonete", "Escova", "Pasta de Dente",
	}
	brands = []string{
		"Aurora", "Solaris", "Vértice", "Nativa", "Prisma",
		"Horizonte", "Alfa", "Ômega", "Brisa", "Atlas",
	}
	adjectives = []string{
		"Premium", "Básico", "Profissional", "Luxo", "Ultra",
		"Plus", "Master", "Light", "Pro", "Max",
	}
	firstNames = []string{"Ana", "Bruno", "Carla", "Diego", "Elisa", "Felipe", "Gabriela", "Hugo", "Isabela", "João"}
	lastNames  = []string{"Silva", "Souza", "Oliveira", "Santos", "Pereira", "Lima", "Costa", "Almeida"}
	statuses   = []string{models.StatusCompleted, models.StatusPending, models.StatusCancelled}
)

// generator produces random but internally consistent catalog data.
type generator struct {
	rnd *rand.Rand
	now time.Time
}

func newGenerator(seed int64, now time.Time) *generator {
	return &generator{rnd: rand.New(rand.NewSource(seed)), now: now.UTC()}
}

func (g *generator) pick(values []string) string {
	return values[g.rnd.Intn(len(values))]
}

func (g *generator) categories(n int) []models.Category {
	out := make([]models.Category, n)
	for i := range out {
		out[i] = models.Category{
			ID:        primitive.NewObjectID(),
			Name:      g.pick(categoryNames),
			CreatedAt: g.now,
		}
	}
	return out
}

func (g *generator) productName() string {
	if g.rnd.Intn(2) == 0 {
		return fmt.Sprintf("%s %s %s", g.pick(brands), g.pick(productNames), g.pick(adjectives))
	}
	return fmt.Sprintf("%s %s", g.pick(brands), g.pick(productNames))
}

// products assigns each product one to three of the given categories.
func (g *generator) products(n int, categories []models.Category) []models.Product {
	out := make([]models.Product, n)
	for i := range out {
		var categoryIDs []primitive.ObjectID
		if len(categories) > 0 {
			for _, idx := range g.rnd.Perm(len(categories))[:min(1+g.rnd.Intn(3), len(categories))] {
				categoryIDs = append(categoryIDs, categories[idx].ID)
			}
		}

		imageURL := fmt.Sprintf("https://picsum.photos/id/%d/%d/%d",
			1+g.rnd.Intn(1000), 200+100*g.rnd.Intn(4), 200+100*g.rnd.Intn(4))
		price, _ := decimal.NewFromFloat(10 + g.rnd.Float64()*990).Round(2).Float64()

		out[i] = models.Product{
			ID:          primitive.NewObjectID(),
			Name:        g.productName(),
			Description: fmt.Sprintf("%s de qualidade para o dia a dia.", g.pick(productNames)),
			Price:       price,
			CategoryIDs: categoryIDs,
			ImageURL:    &imageURL,
			CreatedAt:   g.now,
		}
	}
	return out
}

// orders picks one to five distinct products per order, dated within the
// last six months, with the total summed from their prices.
func (g *generator) orders(n int, products []models.Product) []models.Order {
	if len(products) == 0 {
		return nil
	}

	out := make([]models.Order, n)
	for i := range out {
		total := decimal.Zero
		var productIDs []primitive.ObjectID
		for _, idx := range g.rnd.Perm(len(products))[:min(1+g.rnd.Intn(5), len(products))] {
			productIDs = append(productIDs, products[idx].ID)
			total = total.Add(decimal.NewFromFloat(products[idx].Price))
		}
		amount, _ := total.Round(2).Float64()

		out[i] = models.Order{
			ID:           primitive.NewObjectID(),
			Date:         g.now.Add(-time.Duration(g.rnd.Int63n(int64(orderHistory)))).Truncate(time.Millisecond),
			ProductIDs:   productIDs,
			Total:        amount,
			Status:       g.pick(statuses),
			CustomerName: g.pick(firstNames) + " " + g.pick(lastNames),
			CreatedAt:    g.now,
		}
	}
	return out
}
