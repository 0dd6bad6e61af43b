package database

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"retail-analytics/internal/analytics"
	"retail-analytics/internal/model"
)

// SeedManager populates an empty database with the demo retail dataset.
// Each table is skipped when it already has rows, so seeding is safe to
// run on every boot.
type SeedManager struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewSeedManager creates a seed manager.
func NewSeedManager(db *gorm.DB, logger *zap.Logger) *SeedManager {
	return &SeedManager{db: db, logger: logger}
}

// SeedAll loads users, categories, products, customers, and orders.
func (m *SeedManager) SeedAll() error {
	if err := m.seedUsers(); err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}
	categories, err := m.seedCategories()
	if err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}
	products, err := m.seedProducts(categories)
	if err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}
	customers, err := m.seedCustomers()
	if err != nil {
		return fmt.Errorf("failed to seed customers: %w", err)
	}
	if err := m.seedOrders(customers, products); err != nil {
		return fmt.Errorf("failed to seed orders: %w", err)
	}
	return nil
}

func (m *SeedManager) seedUsers() error {
	var count int64
	if err := m.db.Model(&model.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		m.logger.Info("users already exist, skipping seed")
		return nil
	}

	users := []struct {
		username string
		email    string
		role     model.Role
	}{
		{"admin", "admin@example.com", model.RoleAdmin},
		{"analyst", "analyst@example.com", model.RoleAnalyst},
		{"viewer", "viewer@example.com", model.RoleViewer},
	}
	for _, u := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password for %s: %w", u.username, err)
		}
		user := model.User{
			Username:     u.username,
			Email:        u.email,
			PasswordHash: string(hash),
			Role:         u.role,
		}
		if err := m.db.Create(&user).Error; err != nil {
			return err
		}
	}
	m.logger.Info("seeded users", zap.Int("count", len(users)))
	return nil
}

func (m *SeedManager) seedCategories() ([]model.Category, error) {
	var count int64
	if err := m.db.Model(&model.Category{}).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		m.logger.Info("categories already exist, skipping seed")
		var existing []model.Category
		err := m.db.Order("id").Find(&existing).Error
		return existing, err
	}

	categories := []model.Category{
		{Name: "Electronics", Description: "Electronic devices and accessories"},
		{Name: "Clothing", Description: "Apparel and fashion items"},
		{Name: "Home & Garden", Description: "Home improvement and garden supplies"},
		{Name: "Sports", Description: "Sports equipment and outdoor gear"},
		{Name: "Books", Description: "Books and educational materials"},
	}
	if err := m.db.Create(&categories).Error; err != nil {
		return nil, err
	}
	m.logger.Info("seeded categories", zap.Int("count", len(categories)))
	return categories, nil
}

func (m *SeedManager) seedProducts(categories []model.Category) ([]model.Product, error) {
	var count int64
	if err := m.db.Model(&model.Product{}).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		m.logger.Info("products already exist, skipping seed")
		var existing []model.Product
		err := m.db.Order("id").Find(&existing).Error
		return existing, err
	}
	if len(categories) < 5 {
		return nil, fmt.Errorf("expected 5 categories, got %d", len(categories))
	}

	type fixture struct {
		sku      string
		name     string
		category int // index into categories
		price    string
		cost     string
		stock    int
	}
	fixtures := []fixture{
		{"ELEC-001", "Wireless Headphones", 0, "79.99", "40.00", 50},
		{"ELEC-002", "Smart Watch", 0, "199.99", "100.00", 30},
		{"CLOTH-001", "Cotton T-Shirt", 1, "19.99", "8.00", 100},
		{"CLOTH-002", "Jeans", 1, "49.99", "25.00", 75},
		{"HOME-001", "Coffee Maker", 2, "89.99", "45.00", 40},
		{"SPORT-001", "Yoga Mat", 3, "29.99", "15.00", 60},
		{"BOOK-001", "Python Programming Guide", 4, "39.99", "20.00", 80},
	}

	products := make([]model.Product, 0, len(fixtures))
	for _, f := range fixtures {
		products = append(products, model.Product{
			SKU:           f.sku,
			Name:          f.name,
			CategoryID:    categories[f.category].ID,
			Price:         decimal.RequireFromString(f.price),
			Cost:          decimal.NewNullDecimal(decimal.RequireFromString(f.cost)),
			StockQuantity: f.stock,
			IsActive:      true,
		})
	}
	if err := m.db.Create(&products).Error; err != nil {
		return nil, err
	}
	m.logger.Info("seeded products", zap.Int("count", len(products)))
	return products, nil
}

func (m *SeedManager) seedCustomers() ([]model.Customer, error) {
	var count int64
	if err := m.db.Model(&model.Customer{}).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		m.logger.Info("customers already exist, skipping seed")
		var existing []model.Customer
		err := m.db.Order("id").Find(&existing).Error
		return existing, err
	}

	customers := []model.Customer{
		{Email: "john.doe@example.com", FirstName: "John", LastName: "Doe",
			City: "Miami", State: "FL", Country: "USA", Segment: model.SegmentVIP},
		{Email: "jane.smith@example.com", FirstName: "Jane", LastName: "Smith",
			City: "Fort Lauderdale", State: "FL", Country: "USA", Segment: model.SegmentRegular},
		{Email: "bob.jones@example.com", FirstName: "Bob", LastName: "Jones",
			City: "Pompano Beach", State: "FL", Country: "USA", Segment: model.SegmentNew},
	}
	if err := m.db.Create(&customers).Error; err != nil {
		return nil, err
	}
	m.logger.Info("seeded customers", zap.Int("count", len(customers)))
	return customers, nil
}

// seedOrders generates ten orders with one to three items each. The random
// source is fixed so repeated seeds of a fresh database produce the same
// dataset.
func (m *SeedManager) seedOrders(customers []model.Customer, products []model.Product) error {
	var count int64
	if err := m.db.Model(&model.Order{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		m.logger.Info("orders already exist, skipping seed")
		return nil
	}
	if len(customers) == 0 || len(products) == 0 {
		return fmt.Errorf("cannot seed orders without customers and products")
	}

	rng := rand.New(rand.NewSource(1))
	statuses := []model.OrderStatus{
		model.OrderStatusPending,
		model.OrderStatusProcessing,
		model.OrderStatusShipped,
		model.OrderStatusDelivered,
	}

	for i := 0; i < 10; i++ {
		customer := customers[rng.Intn(len(customers))]
		numItems := 1 + rng.Intn(3)

		items := make([]model.OrderItem, 0, numItems)
		lineItems := make([]analytics.LineItem, 0, numItems)
		for j := 0; j < numItems; j++ {
			product := products[rng.Intn(len(products))]
			quantity := 1 + rng.Intn(3)
			lineTotal, err := analytics.ComputeLineTotal(quantity, product.Price, decimal.Zero)
			if err != nil {
				return fmt.Errorf("failed to compute line total: %w", err)
			}
			items = append(items, model.OrderItem{
				ProductID:      product.ID,
				Quantity:       quantity,
				UnitPrice:      product.Price,
				DiscountAmount: decimal.Zero,
				LineTotal:      lineTotal,
			})
			lineItems = append(lineItems, analytics.LineItem{
				Quantity:  quantity,
				UnitPrice: product.Price,
			})
		}

		totals, err := analytics.ComputeOrderTotals(lineItems, decimal.Zero, decimal.Zero)
		if err != nil {
			return fmt.Errorf("failed to compute order totals: %w", err)
		}

		order := model.Order{
			OrderNumber:   fmt.Sprintf("ORD-%d", 1000+i),
			CustomerID:    customer.ID,
			OrderDate:     time.Now().UTC().AddDate(0, 0, -(1 + rng.Intn(30))),
			Status:        statuses[rng.Intn(len(statuses))],
			Subtotal:      totals.Subtotal,
			TaxAmount:     decimal.Zero,
			ShippingCost:  decimal.Zero,
			TotalAmount:   totals.Total,
			PaymentMethod: "credit_card",
			Items:         items,
		}
		if err := m.db.Create(&order).Error; err != nil {
			return err
		}
	}
	m.logger.Info("seeded orders", zap.Int("count", 10))
	return nil
}
