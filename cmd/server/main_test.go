package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"retail-analytics/internal/auth"
	"retail-analytics/internal/config"
	"retail-analytics/internal/database"
	"retail-analytics/internal/model"
	"retail-analytics/internal/repository"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	router    *gin.Engine
	customers []model.Customer
	products  []model.Product
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	t.Setenv("APP_ENV", "testing")

	cfg, err := config.Load()
	require.NoError(t, err)

	db, err := database.Connect(cfg.Database, false)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	ctx := context.Background()
	userRepo := repository.NewUserRepository(db)
	for _, u := range []struct {
		username string
		role     model.Role
	}{
		{"admin", model.RoleAdmin},
		{"analyst", model.RoleAnalyst},
		{"viewer", model.RoleViewer},
	} {
		hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
		require.NoError(t, err)
		require.NoError(t, userRepo.Create(ctx, &model.User{
			Username:     u.username,
			Email:        u.username + "@example.com",
			PasswordHash: string(hash),
			Role:         u.role,
		}))
	}

	customerRepo := repository.NewCustomerRepository(db)
	customers := []model.Customer{
		{Email: "ada@example.com", FirstName: "Ada", LastName: "Lovelace"},
		{Email: "grace@example.com", FirstName: "Grace", LastName: "Hopper"},
	}
	for i := range customers {
		require.NoError(t, customerRepo.Create(ctx, &customers[i]))
	}

	categoryRepo := repository.NewCategoryRepository(db)
	category := model.Category{Name: "Electronics"}
	require.NoError(t, categoryRepo.Create(ctx, &category))

	productRepo := repository.NewProductRepository(db)
	products := []model.Product{
		{SKU: "ELEC-001", Name: "Headphones", CategoryID: category.ID, Price: decimal.RequireFromString("50.00"), IsActive: true},
		{SKU: "ELEC-002", Name: "Smart Watch", CategoryID: category.ID, Price: decimal.RequireFromString("120.00"), IsActive: true},
	}
	for i := range products {
		require.NoError(t, productRepo.Create(ctx, &products[i]))
	}

	authorizer, err := auth.NewAuthorizer()
	require.NoError(t, err)

	return &testServer{
		router:    setupRouter(cfg, zap.NewNop(), db, authorizer),
		customers: customers,
		products:  products,
	}
}

func (s *testServer) do(t *testing.T, method, path, token string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) login(t *testing.T, username string) string {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"username": username,
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp model.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func (s *testServer) createOrder(t *testing.T, token string, customerID uint, items []gin.H) map[string]any {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/v1/orders", token, gin.H{
		"customer_id": customerID,
		"items":       items,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var order map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &order))
	return order
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestLogin(t *testing.T) {
	s := newTestServer(t)

	t.Run("success", func(t *testing.T) {
		token := s.login(t, "analyst")
		assert.NotEmpty(t, token)
	})

	t.Run("wrong password", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{
			"username": "analyst",
			"password": "wrong",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "AuthenticationError", body["error"])
		assert.Equal(t, "invalid username or password", body["message"])
	})

	t.Run("missing fields", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{"username": "analyst"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "ValidationError", decodeBody(t, w)["error"])
	})
}

func TestAuthenticationRequired(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/v1/metrics/summary", "", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "AuthenticationError", decodeBody(t, w)["error"])
}

func TestOrderLifecycle(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(t, "admin")

	order := s.createOrder(t, admin, s.customers[0].ID, []gin.H{
		{"product_id": s.products[0].ID, "quantity": 2},
		{"product_id": s.products[1].ID, "quantity": 1, "discount_amount": "20.00"},
	})
	assert.Equal(t, "220", order["subtotal"])
	assert.Equal(t, "220", order["total_amount"])
	assert.Equal(t, "pending", order["status"])

	orderID := int(order["id"].(float64))

	t.Run("get", func(t *testing.T) {
		w := s.do(t, http.MethodGet, fmt.Sprintf("/api/v1/orders/%d", orderID), admin, nil)
		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		items := body["items"].([]any)
		assert.Len(t, items, 2)
	})

	t.Run("update status", func(t *testing.T) {
		w := s.do(t, http.MethodPatch, fmt.Sprintf("/api/v1/orders/%d/status", orderID), admin, gin.H{"status": "shipped"})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "shipped", decodeBody(t, w)["status"])
	})

	t.Run("invalid status", func(t *testing.T) {
		w := s.do(t, http.MethodPatch, fmt.Sprintf("/api/v1/orders/%d/status", orderID), admin, gin.H{"status": "teleported"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "ValidationError", decodeBody(t, w)["error"])
	})

	t.Run("update items recomputes totals", func(t *testing.T) {
		w := s.do(t, http.MethodPut, fmt.Sprintf("/api/v1/orders/%d/items", orderID), admin, gin.H{
			"items": []gin.H{{"product_id": s.products[0].ID, "quantity": 1}},
		})
		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "50", body["subtotal"])
	})

	t.Run("delete", func(t *testing.T) {
		w := s.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/orders/%d", orderID), admin, nil)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = s.do(t, http.MethodGet, fmt.Sprintf("/api/v1/orders/%d", orderID), admin, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "ResourceNotFoundError", body["error"])
		assert.Equal(t, float64(404), body["status_code"])
	})
}

func TestOrderValidation(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(t, "admin")

	t.Run("zero quantity", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/v1/orders", admin, gin.H{
			"customer_id": s.customers[0].ID,
			"items":       []gin.H{{"product_id": s.products[0].ID, "quantity": 0}},
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "ValidationError", decodeBody(t, w)["error"])
	})

	t.Run("unknown product", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/v1/orders", admin, gin.H{
			"customer_id": s.customers[0].ID,
			"items":       []gin.H{{"product_id": 9999, "quantity": 1}},
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("excessive discount", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/v1/orders", admin, gin.H{
			"customer_id": s.customers[0].ID,
			"items":       []gin.H{{"product_id": s.products[0].ID, "quantity": 1, "discount_amount": "50.01"}},
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRoleEnforcement(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(t, "admin")
	analyst := s.login(t, "analyst")
	viewer := s.login(t, "viewer")

	order := s.createOrder(t, admin, s.customers[0].ID, []gin.H{
		{"product_id": s.products[0].ID, "quantity": 1},
	})
	orderID := int(order["id"].(float64))

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		want   int
	}{
		{"viewer reads metrics", http.MethodGet, "/api/v1/metrics/summary", viewer, http.StatusOK},
		{"viewer cannot list orders", http.MethodGet, "/api/v1/orders", viewer, http.StatusForbidden},
		{"viewer cannot list customers", http.MethodGet, "/api/v1/customers", viewer, http.StatusForbidden},
		{"analyst lists orders", http.MethodGet, "/api/v1/orders", analyst, http.StatusOK},
		{"analyst lists products", http.MethodGet, "/api/v1/products", analyst, http.StatusOK},
		{"analyst cannot delete orders", http.MethodDelete, fmt.Sprintf("/api/v1/orders/%d", orderID), analyst, http.StatusForbidden},
		{"admin deletes orders", http.MethodDelete, fmt.Sprintf("/api/v1/orders/%d", orderID), admin, http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(t, tt.method, tt.path, tt.token, nil)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
		})
	}
}

func TestMetricsEndpoints(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(t, "admin")

	// Ada: 100.00 + 120.00, Grace: 50.00.
	s.createOrder(t, admin, s.customers[0].ID, []gin.H{{"product_id": s.products[0].ID, "quantity": 2}})
	s.createOrder(t, admin, s.customers[0].ID, []gin.H{{"product_id": s.products[1].ID, "quantity": 1}})
	s.createOrder(t, admin, s.customers[1].ID, []gin.H{{"product_id": s.products[0].ID, "quantity": 1}})

	t.Run("summary", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/v1/metrics/summary", admin, nil)
		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "270", body["total_revenue"])
		assert.Equal(t, "90", body["average_order_value"])
		assert.Equal(t, float64(3), body["order_count"])
	})

	t.Run("top customers", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/v1/metrics/top-customers", admin, nil)
		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, float64(10), body["limit"])
		rows := body["top_customers"].([]any)
		require.Len(t, rows, 2)
		first := rows[0].(map[string]any)
		assert.Equal(t, "Ada Lovelace", first["name"])
		assert.Equal(t, "220", first["revenue"])
	})

	t.Run("top customers with limit", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/v1/metrics/top-customers?limit=1", admin, nil)
		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Len(t, body["top_customers"].([]any), 1)
	})

	t.Run("invalid limit", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/v1/metrics/top-customers?limit=0", admin, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "ValidationError", decodeBody(t, w)["error"])
	})

	t.Run("revenue by category", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/v1/metrics/revenue-by-category", admin, nil)
		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		rows := body["categories"].([]any)
		require.Len(t, rows, 1)
		row := rows[0].(map[string]any)
		assert.Equal(t, "Electronics", row["category"])
		assert.Equal(t, "270", row["revenue"])
	})

	t.Run("filtered by status", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/v1/metrics/summary?status=delivered", admin, nil)
		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "0", body["total_revenue"])
		assert.Nil(t, body["average_order_value"])
	})

	t.Run("invalid status", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/v1/metrics/summary?status=vanished", admin, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestMetricsSummaryEmptyDatabase(t *testing.T) {
	s := newTestServer(t)
	viewer := s.login(t, "viewer")

	w := s.do(t, http.MethodGet, "/api/v1/metrics/summary", viewer, nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "0", body["total_revenue"])
	assert.Nil(t, body["average_order_value"])
	assert.Equal(t, float64(0), body["order_count"])
}

func TestCatalogEndpoints(t *testing.T) {
	s := newTestServer(t)
	analyst := s.login(t, "analyst")

	t.Run("products", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/v1/products", analyst, nil)
		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, float64(2), body["total"])
	})

	t.Run("product detail", func(t *testing.T) {
		w := s.do(t, http.MethodGet, fmt.Sprintf("/api/v1/products/%d", s.products[0].ID), analyst, nil)
		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "ELEC-001", body["sku"])
		assert.Equal(t, "Electronics", body["category_name"])
	})

	t.Run("customers", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/v1/customers", analyst, nil)
		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("customer detail includes order count", func(t *testing.T) {
		w := s.do(t, http.MethodGet, fmt.Sprintf("/api/v1/customers/%d", s.customers[0].ID), analyst, nil)
		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "Ada Lovelace", body["full_name"])
		assert.Equal(t, float64(0), body["order_count"])
	})

	t.Run("categories", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/v1/categories", analyst, nil)
		require.Equal(t, http.StatusOK, w.Code)
	})
}

func TestSystemEndpoints(t *testing.T) {
	s := newTestServer(t)

	t.Run("index", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "testing", body["environment"])
	})

	t.Run("health", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/health", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "healthy", decodeBody(t, w)["status"])
	})

	t.Run("unknown route", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/nope", "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "ResourceNotFoundError", decodeBody(t, w)["error"])
	})

	t.Run("method not allowed", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/health", "", nil)
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})
}
