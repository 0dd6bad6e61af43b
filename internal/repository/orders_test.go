package repository

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"retail-analytics/internal/apperror"
	"retail-analytics/internal/config"
	"retail-analytics/internal/database"
	"retail-analytics/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Path:   ":memory:",
	}, false)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// seedOrderFixtures creates two customers, two categorized products, and
// three orders with known totals.
func seedOrderFixtures(t *testing.T, db *gorm.DB) (customers []model.Customer, products []model.Product) {
	t.Helper()
	ctx := context.Background()

	customers = []model.Customer{
		{Email: "a@example.com", FirstName: "Ada", LastName: "Lovelace"},
		{Email: "b@example.com", FirstName: "Brian", LastName: "Kernighan"},
	}
	custRepo := NewCustomerRepository(db)
	for i := range customers {
		require.NoError(t, custRepo.Create(ctx, &customers[i]))
	}

	categories := []model.Category{{Name: "Electronics"}, {Name: "Books"}}
	catRepo := NewCategoryRepository(db)
	for i := range categories {
		require.NoError(t, catRepo.Create(ctx, &categories[i]))
	}

	products = []model.Product{
		{SKU: "ELEC-001", Name: "Headphones", CategoryID: categories[0].ID, Price: dec("100.00"), IsActive: true},
		{SKU: "BOOK-001", Name: "Go Guide", CategoryID: categories[1].ID, Price: dec("40.00"), IsActive: true},
	}
	prodRepo := NewProductRepository(db)
	for i := range products {
		require.NoError(t, prodRepo.Create(ctx, &products[i]))
	}

	orderRepo := NewOrderRepository(db)
	fixtures := []struct {
		number   string
		customer uint
		status   model.OrderStatus
		daysAgo  int
		items    []model.OrderItem
	}{
		{"ORD-1", customers[0].ID, model.OrderStatusDelivered, 2, []model.OrderItem{
			{ProductID: products[0].ID, Quantity: 1, UnitPrice: dec("100.00"), LineTotal: dec("100.00")},
		}},
		{"ORD-2", customers[1].ID, model.OrderStatusPending, 5, []model.OrderItem{
			{ProductID: products[1].ID, Quantity: 2, UnitPrice: dec("40.00"), LineTotal: dec("80.00")},
		}},
		{"ORD-3", customers[0].ID, model.OrderStatusDelivered, 40, []model.OrderItem{
			{ProductID: products[0].ID, Quantity: 1, UnitPrice: dec("100.00"), LineTotal: dec("100.00")},
			{ProductID: products[1].ID, Quantity: 1, UnitPrice: dec("40.00"), LineTotal: dec("40.00")},
		}},
	}
	for _, f := range fixtures {
		subtotal := decimal.Zero
		for _, item := range f.items {
			subtotal = subtotal.Add(item.LineTotal)
		}
		order := model.Order{
			OrderNumber: f.number,
			CustomerID:  f.customer,
			OrderDate:   time.Now().UTC().AddDate(0, 0, -f.daysAgo),
			Status:      f.status,
			Subtotal:    subtotal,
			TotalAmount: subtotal,
			Items:       f.items,
		}
		require.NoError(t, orderRepo.Create(ctx, &order))
	}
	return customers, products
}

func TestOrderRepositoryGetByID(t *testing.T) {
	db := newTestDB(t)
	seedOrderFixtures(t, db)
	repo := NewOrderRepository(db)

	var stored model.Order
	require.NoError(t, db.Where("order_number = ?", "ORD-3").First(&stored).Error)

	order, err := repo.GetByID(context.Background(), stored.ID)
	require.NoError(t, err)
	assert.Equal(t, "ORD-3", order.OrderNumber)
	assert.Len(t, order.Items, 2)
	require.NotNil(t, order.Customer)
	assert.Equal(t, "Ada", order.Customer.FirstName)
	require.NotNil(t, order.Items[0].Product)
}

func TestOrderRepositoryGetByIDNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrderRepository(db)

	_, err := repo.GetByID(context.Background(), 9999)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestOrderRepositoryListFilters(t *testing.T) {
	db := newTestDB(t)
	customers, _ := seedOrderFixtures(t, db)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	orders, total, err := repo.List(ctx, OrderFilter{}, Page{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, orders, 3)

	orders, total, err = repo.List(ctx, OrderFilter{Status: model.OrderStatusDelivered}, Page{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	for _, o := range orders {
		assert.Equal(t, model.OrderStatusDelivered, o.Status)
	}

	orders, total, err = repo.List(ctx, OrderFilter{CustomerID: customers[1].ID}, Page{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "ORD-2", orders[0].OrderNumber)

	// Only the two orders from the last week fall inside the window.
	orders, total, err = repo.List(ctx, OrderFilter{
		From: time.Now().UTC().AddDate(0, 0, -7),
	}, Page{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, orders, 2)
}

func TestOrderRepositoryListPagination(t *testing.T) {
	db := newTestDB(t)
	seedOrderFixtures(t, db)
	repo := NewOrderRepository(db)

	orders, total, err := repo.List(context.Background(), OrderFilter{}, Page{Number: 2, Size: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, orders, 1)
	assert.Equal(t, 2, TotalPages(total, 2))
}

func TestOrderRepositoryRevenueRows(t *testing.T) {
	db := newTestDB(t)
	customers, _ := seedOrderFixtures(t, db)
	repo := NewOrderRepository(db)

	rows, err := repo.RevenueRows(context.Background(), OrderFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 3)

	byCustomer := map[uint]decimal.Decimal{}
	for _, row := range rows {
		byCustomer[row.CustomerID] = byCustomer[row.CustomerID].Add(row.Total)
	}
	assert.True(t, byCustomer[customers[0].ID].Equal(dec("240.00")),
		"got %s", byCustomer[customers[0].ID])
	assert.True(t, byCustomer[customers[1].ID].Equal(dec("80.00")))
}

func TestOrderRepositoryCategoryRows(t *testing.T) {
	db := newTestDB(t)
	seedOrderFixtures(t, db)
	repo := NewOrderRepository(db)

	rows, err := repo.CategoryRows(context.Background(), OrderFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 4)

	byCategory := map[string]decimal.Decimal{}
	for _, row := range rows {
		byCategory[row.Category] = byCategory[row.Category].Add(row.LineTotal)
	}
	assert.True(t, byCategory["Electronics"].Equal(dec("200.00")))
	assert.True(t, byCategory["Books"].Equal(dec("120.00")))

	// Status filtering reaches through the join to orders.
	rows, err = repo.CategoryRows(context.Background(), OrderFilter{Status: model.OrderStatusPending})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Books", rows[0].Category)
}

func TestOrderRepositoryUpdateItemsReplacesAndUpdatesTotals(t *testing.T) {
	db := newTestDB(t)
	_, products := seedOrderFixtures(t, db)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	var stored model.Order
	require.NoError(t, db.Where("order_number = ?", "ORD-1").First(&stored).Error)
	order, err := repo.GetByID(ctx, stored.ID)
	require.NoError(t, err)

	order.Subtotal = dec("80.00")
	order.TaxAmount = dec("6.40")
	order.ShippingCost = dec("5.00")
	order.TotalAmount = dec("91.40")
	newItems := []model.OrderItem{
		{ProductID: products[1].ID, Quantity: 2, UnitPrice: dec("40.00"), LineTotal: dec("80.00")},
	}
	require.NoError(t, repo.UpdateItems(ctx, order, newItems))

	reloaded, err := repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Items, 1)
	assert.Equal(t, products[1].ID, reloaded.Items[0].ProductID)
	assert.True(t, reloaded.Subtotal.Equal(dec("80.00")))
	assert.True(t, reloaded.TaxAmount.Equal(dec("6.40")))
	assert.True(t, reloaded.ShippingCost.Equal(dec("5.00")))
	assert.True(t, reloaded.TotalAmount.Equal(dec("91.40")))

	var itemCount int64
	require.NoError(t, db.Model(&model.OrderItem{}).
		Where("order_id = ?", order.ID).Count(&itemCount).Error)
	assert.Equal(t, int64(1), itemCount)
}

func TestOrderRepositoryUpdateStatus(t *testing.T) {
	db := newTestDB(t)
	seedOrderFixtures(t, db)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	var stored model.Order
	require.NoError(t, db.Where("order_number = ?", "ORD-2").First(&stored).Error)

	require.NoError(t, repo.UpdateStatus(ctx, stored.ID, model.OrderStatusShipped))
	reloaded, err := repo.GetByID(ctx, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusShipped, reloaded.Status)

	err = repo.UpdateStatus(ctx, 9999, model.OrderStatusShipped)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestOrderRepositoryDeleteCascades(t *testing.T) {
	db := newTestDB(t)
	seedOrderFixtures(t, db)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	var stored model.Order
	require.NoError(t, db.Where("order_number = ?", "ORD-3").First(&stored).Error)

	require.NoError(t, repo.Delete(ctx, stored.ID))

	_, err := repo.GetByID(ctx, stored.ID)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))

	var itemCount int64
	require.NoError(t, db.Model(&model.OrderItem{}).
		Where("order_id = ?", stored.ID).Count(&itemCount).Error)
	assert.Zero(t, itemCount)

	err = repo.Delete(ctx, 9999)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestCustomerRepositoryNamesByID(t *testing.T) {
	db := newTestDB(t)
	customers, _ := seedOrderFixtures(t, db)
	repo := NewCustomerRepository(db)

	names, err := repo.NamesByID(context.Background(), []uint{customers[0].ID, customers[1].ID})
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", names[customers[0].ID])
	assert.Equal(t, "Brian Kernighan", names[customers[1].ID])

	empty, err := repo.NamesByID(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestCustomerRepositoryOrderCount(t *testing.T) {
	db := newTestDB(t)
	customers, _ := seedOrderFixtures(t, db)
	repo := NewCustomerRepository(db)

	count, err := repo.OrderCount(context.Background(), customers[0].ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestProductRepositoryListFilters(t *testing.T) {
	db := newTestDB(t)
	seedOrderFixtures(t, db)
	repo := NewProductRepository(db)
	ctx := context.Background()

	// Retire one product and push another to its reorder level.
	require.NoError(t, db.Model(&model.Product{}).
		Where("sku = ?", "BOOK-001").
		Updates(map[string]any{"is_active": false, "stock_quantity": 3, "reorder_level": 5}).Error)

	products, total, err := repo.List(ctx, ProductFilter{}, Page{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, products, 2)
	require.NotNil(t, products[0].Category)

	products, total, err = repo.List(ctx, ProductFilter{ActiveOnly: true}, Page{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "ELEC-001", products[0].SKU)

	products, total, err = repo.List(ctx, ProductFilter{LowStock: true}, Page{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "BOOK-001", products[0].SKU)
}

func TestPageNormalize(t *testing.T) {
	p := Page{}.Normalize()
	assert.Equal(t, 1, p.Number)
	assert.Equal(t, DefaultPageSize, p.Size)

	p = Page{Number: -1, Size: 1000}.Normalize()
	assert.Equal(t, 1, p.Number)
	assert.Equal(t, MaxPageSize, p.Size)

	assert.Equal(t, 40, Page{Number: 3, Size: 20}.Normalize().Offset())
}
