package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"testing"
	"time"

	"product-admin/internal/domain"
	"product-admin/internal/middleware"
	"product-admin/internal/repository"
	"product-admin/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

// In-memory repositories backing the handler tests
type memProductRepo struct {
	products   map[int]*domain.Product
	categories map[int][]int
	nextID     int
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{
		products:   make(map[int]*domain.Product),
		categories: make(map[int][]int),
		nextID:     1,
	}
}

func (m *memProductRepo) Create(ctx context.Context, product *domain.Product) error {
	product.ID = m.nextID
	m.nextID++
	clone := *product
	m.products[product.ID] = &clone
	return nil
}

func (m *memProductRepo) Update(ctx context.Context, product *domain.Product) error {
	if _, exists := m.products[product.ID]; !exists {
		return repository.ErrProductNotFound
	}
	clone := *product
	m.products[product.ID] = &clone
	return nil
}

func (m *memProductRepo) Delete(ctx context.Context, id int) error {
	if _, exists := m.products[id]; !exists {
		return repository.ErrProductNotFound
	}
	delete(m.products, id)
	return nil
}

func (m *memProductRepo) FindByID(ctx context.Context, id int) (*domain.Product, error) {
	product, exists := m.products[id]
	if !exists {
		return nil, repository.ErrProductNotFound
	}
	clone := *product
	return &clone, nil
}

func (m *memProductRepo) List(ctx context.Context, search string, page, perPage int) ([]*domain.Product, int, error) {
	ids := make([]int, 0, len(m.products))
	for id, p := range m.products {
		if search != "" && !strings.Contains(strings.ToLower(p.Title), strings.ToLower(search)) {
			continue
		}
		ids = append(ids, id)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(ids)))

	total := len(ids)
	start := (page - 1) * perPage
	if start > total {
		start = total
	}
	end := start + perPage
	if end > total {
		end = total
	}

	products := []*domain.Product{}
	for _, id := range ids[start:end] {
		clone := *m.products[id]
		products = append(products, &clone)
	}
	return products, total, nil
}

func (m *memProductRepo) CategoryIDs(ctx context.Context, productID int) ([]int, error) {
	ids := append([]int{}, m.categories[productID]...)
	sort.Ints(ids)
	return ids, nil
}

func (m *memProductRepo) ReplaceCategories(ctx context.Context, productID int, categoryIDs []int) error {
	m.categories[productID] = append([]int{}, categoryIDs...)
	return nil
}

type memCategoryRepo struct {
	categories []*domain.Category
}

func (m *memCategoryRepo) List(ctx context.Context) ([]*domain.Category, error) {
	return m.categories, nil
}

func (m *memCategoryRepo) FindByID(ctx context.Context, id int) (*domain.Category, error) {
	for _, c := range m.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, repository.ErrCategoryNotFound
}

type memMediaRepo struct {
	assets []*domain.MediaAsset
}

func (m *memMediaRepo) List(ctx context.Context) ([]*domain.MediaAsset, error) {
	return m.assets, nil
}

func (m *memMediaRepo) FindByID(ctx context.Context, id int) (*domain.MediaAsset, error) {
	for _, a := range m.assets {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, repository.ErrMediaNotFound
}

func newTestRouter() (chi.Router, *memProductRepo) {
	productRepo := newMemProductRepo()
	categoryRepo := &memCategoryRepo{categories: []*domain.Category{
		{ID: 1, Name: "Electronics", Slug: "electronics", Count: 0},
	}}
	mediaRepo := &memMediaRepo{}

	svc := service.NewProductService(productRepo, categoryRepo, mediaRepo)
	handler := NewProductHandler(svc, zap.NewNop())

	r := chi.NewRouter()
	handler.RegisterRoutes(r, middleware.EditContentMiddleware(testSecret, zap.NewNop()))
	return r, productRepo
}

func signToken(t *testing.T, role string) string {
	t.Helper()

	claims := jwt.MapClaims{
		"user_id": "9f4d7cf0-1111-2222-3333-444455556666",
		"role":    role,
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}
	return token
}

func doRequest(t *testing.T, r chi.Router, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to encode body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var envelope middleware.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("Response is not an error envelope: %v", err)
	}
	return envelope.Error.Message
}

func TestAllRoutesRequireEditCapability(t *testing.T) {
	router, _ := newTestRouter()

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/jeec/v1/products"},
		{http.MethodPost, "/jeec/v1/products"},
		{http.MethodGet, "/jeec/v1/products/1"},
		{http.MethodPost, "/jeec/v1/products/1"},
		{http.MethodDelete, "/jeec/v1/products/1"},
		{http.MethodGet, "/jeec/v1/product-categories"},
		{http.MethodGet, "/jeec/v1/media"},
	}

	tokens := map[string]string{
		"no token":     "",
		"garbage":      "not-a-jwt",
		"viewer role":  signToken(t, domain.RoleViewer),
		"wrong secret": mustSignWithSecret(t, "other-secret"),
	}

	for _, route := range routes {
		for name, token := range tokens {
			rec := doRequest(t, router, route.method, route.path, token, nil)
			if rec.Code != http.StatusForbidden {
				t.Errorf("%s %s with %s: expected 403, got %d", route.method, route.path, name, rec.Code)
				continue
			}
			if msg := errorMessage(t, rec); msg != "Sorry, you are not allowed to access this endpoint." {
				t.Errorf("%s %s with %s: unexpected message %q", route.method, route.path, name, msg)
			}
		}
	}
}

func mustSignWithSecret(t *testing.T, secret string) string {
	t.Helper()

	claims := jwt.MapClaims{
		"user_id": "9f4d7cf0-1111-2222-3333-444455556666",
		"role":    domain.RoleEditor,
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}
	return token
}

func TestEditorAndAdminBothPass(t *testing.T) {
	router, _ := newTestRouter()

	for _, role := range []string{domain.RoleEditor, domain.RoleAdmin} {
		rec := doRequest(t, router, http.MethodGet, "/jeec/v1/products", signToken(t, role), nil)
		if rec.Code != http.StatusOK {
			t.Errorf("Role %s: expected 200, got %d", role, rec.Code)
		}
	}
}

func TestProductCRUDScenario(t *testing.T) {
	router, _ := newTestRouter()
	token := signToken(t, domain.RoleEditor)

	// Create with only a title; everything else takes its default
	rec := doRequest(t, router, http.MethodPost, "/jeec/v1/products", token,
		map[string]interface{}{"title": "Phone"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("Create: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var created service.ProductView
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("Create response did not decode: %v", err)
	}
	if created.Title != "Phone" || created.Price != 0 || created.Status != domain.ProductStatusPublish {
		t.Errorf("Unexpected created product: %+v", created)
	}

	// Partial update changes only the price
	rec = doRequest(t, router, http.MethodPost, "/jeec/v1/products/"+strconv.Itoa(created.ID), token,
		map[string]interface{}{"price": 49.99})
	if rec.Code != http.StatusOK {
		t.Fatalf("Update: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var updated service.ProductView
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("Update response did not decode: %v", err)
	}
	if updated.Title != "Phone" {
		t.Errorf("Title changed on a price-only update: %q", updated.Title)
	}
	if updated.Price != 49.99 {
		t.Errorf("Expected price 49.99, got %f", updated.Price)
	}

	// Read it back
	rec = doRequest(t, router, http.MethodGet, "/jeec/v1/products/"+strconv.Itoa(created.ID), token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Get: expected 200, got %d", rec.Code)
	}

	// Delete is permanent and confirms the id
	rec = doRequest(t, router, http.MethodDelete, "/jeec/v1/products/"+strconv.Itoa(created.ID), token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Delete: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var deleted DeleteResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &deleted); err != nil {
		t.Fatalf("Delete response did not decode: %v", err)
	}
	if !deleted.Deleted || deleted.ID != created.ID {
		t.Errorf("Unexpected delete response: %+v", deleted)
	}

	// Gone for good
	rec = doRequest(t, router, http.MethodGet, "/jeec/v1/products/"+strconv.Itoa(created.ID), token, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("Get after delete: expected 404, got %d", rec.Code)
	}
	if msg := errorMessage(t, rec); msg != "Product not found." {
		t.Errorf("Unexpected message %q", msg)
	}
}

func TestListPaginationHeaders(t *testing.T) {
	router, _ := newTestRouter()
	token := signToken(t, domain.RoleEditor)

	for i := 0; i < 5; i++ {
		rec := doRequest(t, router, http.MethodPost, "/jeec/v1/products", token,
			map[string]interface{}{"title": "Product"})
		if rec.Code != http.StatusCreated {
			t.Fatalf("Create: expected 201, got %d", rec.Code)
		}
	}

	rec := doRequest(t, router, http.MethodGet, "/jeec/v1/products?per_page=2&page=1", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("List: expected 200, got %d", rec.Code)
	}

	if got := rec.Header().Get("X-WP-Total"); got != "5" {
		t.Errorf("Expected X-WP-Total 5, got %q", got)
	}
	if got := rec.Header().Get("X-WP-TotalPages"); got != "3" {
		t.Errorf("Expected X-WP-TotalPages 3, got %q", got)
	}

	var page []service.ProductView
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatalf("List response did not decode: %v", err)
	}
	if len(page) != 2 {
		t.Errorf("Expected a page of 2, got %d", len(page))
	}
}

func TestInvalidIDIsNotFound(t *testing.T) {
	router, _ := newTestRouter()
	token := signToken(t, domain.RoleEditor)

	for _, path := range []string{
		"/jeec/v1/products/not-a-number",
		"/jeec/v1/products/999",
	} {
		rec := doRequest(t, router, http.MethodGet, path, token, nil)
		if rec.Code != http.StatusNotFound {
			t.Errorf("GET %s: expected 404, got %d", path, rec.Code)
			continue
		}
		if msg := errorMessage(t, rec); msg != "Product not found." {
			t.Errorf("GET %s: unexpected message %q", path, msg)
		}
	}
}

func TestCreateRejectsMalformedBody(t *testing.T) {
	router, _ := newTestRouter()
	token := signToken(t, domain.RoleEditor)

	req := httptest.NewRequest(http.MethodPost, "/jeec/v1/products", strings.NewReader("{not json"))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for malformed body, got %d", rec.Code)
	}
}

func TestListCategoriesAndMedia(t *testing.T) {
	router, _ := newTestRouter()
	token := signToken(t, domain.RoleEditor)

	rec := doRequest(t, router, http.MethodGet, "/jeec/v1/product-categories", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Categories: expected 200, got %d", rec.Code)
	}

	var categories []domain.Category
	if err := json.Unmarshal(rec.Body.Bytes(), &categories); err != nil {
		t.Fatalf("Categories response did not decode: %v", err)
	}
	if len(categories) != 1 || categories[0].Slug != "electronics" {
		t.Errorf("Unexpected categories: %+v", categories)
	}

	rec = doRequest(t, router, http.MethodGet, "/jeec/v1/media", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Media: expected 200, got %d", rec.Code)
	}
}

