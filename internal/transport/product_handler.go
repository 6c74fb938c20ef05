package transport

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"product-admin/internal/middleware"
	"product-admin/internal/repository"
	"product-admin/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// DeleteResponse is returned after a successful permanent delete
type DeleteResponse struct {
	Deleted bool `json:"deleted"`
	ID      int  `json:"id"`
}

// ProductHandler handles HTTP requests for the product catalog
type ProductHandler struct {
	productService service.ProductService
	logger         *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService service.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		logger:         logger,
	}
}

// RegisterRoutes registers the jeec/v1 resource routes. Every route sits
// behind the edit-content capability gate.
func (h *ProductHandler) RegisterRoutes(r chi.Router, editContent func(http.Handler) http.Handler) {
	r.Route("/jeec/v1", func(r chi.Router) {
		r.Use(editContent)

		r.Get("/products", h.List)
		r.Post("/products", h.Create)
		r.Get("/products/{id}", h.Get)
		r.Post("/products/{id}", h.Update)
		r.Delete("/products/{id}", h.Delete)
		r.Get("/product-categories", h.ListCategories)
		r.Get("/media", h.ListMedia)
	})
}

// List handles GET /jeec/v1/products
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	opts := service.ListOptions{
		Search:  r.URL.Query().Get("search"),
		Page:    queryInt(r, "page", 1),
		PerPage: queryInt(r, "per_page", service.DefaultPerPage),
	}

	products, total, totalPages, err := h.productService.List(r.Context(), opts)
	if err != nil {
		h.logger.Error("Failed to list products", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list products")
		return
	}

	// Pagination totals travel as headers, matching the WP REST convention
	// the admin client expects.
	w.Header().Set("X-WP-Total", strconv.Itoa(total))
	w.Header().Set("X-WP-TotalPages", strconv.Itoa(totalPages))
	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// Get handles GET /jeec/v1/products/{id}
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusNotFound, "Product not found.")
		return
	}

	product, err := h.productService.Get(r.Context(), id)
	if err != nil {
		h.respondProductError(w, err, "get")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// Create handles POST /jeec/v1/products
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.logger.Debug("Create decode failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.productService.Create(r.Context(), input)
	if err != nil {
		h.logger.Error("Failed to create product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create product")
		return
	}

	h.logger.Info("Product created", zap.Int("product_id", product.ID))
	middleware.RespondWithJSON(w, http.StatusCreated, product)
}

// Update handles POST /jeec/v1/products/{id}. Fields absent from the body
// keep their stored values.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusNotFound, "Product not found.")
		return
	}

	var input service.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.logger.Debug("Update decode failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.productService.Update(r.Context(), id, input)
	if err != nil {
		h.respondProductError(w, err, "update")
		return
	}

	h.logger.Info("Product updated", zap.Int("product_id", product.ID))
	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// Delete handles DELETE /jeec/v1/products/{id}. Deletion is permanent.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusNotFound, "Product not found.")
		return
	}

	if err := h.productService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrDeleteFailed) {
			h.logger.Error("Failed to delete product", zap.Int("product_id", id), zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "Failed to delete product.")
			return
		}
		h.respondProductError(w, err, "delete")
		return
	}

	h.logger.Info("Product deleted", zap.Int("product_id", id))
	middleware.RespondWithJSON(w, http.StatusOK, DeleteResponse{Deleted: true, ID: id})
}

// ListCategories handles GET /jeec/v1/product-categories
func (h *ProductHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.productService.Categories(r.Context())
	if err != nil {
		h.logger.Error("Failed to list categories", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list categories")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, categories)
}

// ListMedia handles GET /jeec/v1/media, backing the admin image picker
func (h *ProductHandler) ListMedia(w http.ResponseWriter, r *http.Request) {
	assets, err := h.productService.Media(r.Context())
	if err != nil {
		h.logger.Error("Failed to list media", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list media")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, assets)
}

// respondProductError maps service errors to HTTP statuses
func (h *ProductHandler) respondProductError(w http.ResponseWriter, err error, op string) {
	if errors.Is(err, repository.ErrProductNotFound) {
		middleware.RespondWithError(w, http.StatusNotFound, "Product not found.")
		return
	}

	h.logger.Error("Product operation failed", zap.String("op", op), zap.Error(err))
	middleware.RespondWithError(w, http.StatusInternalServerError, "internal server error")
}

// productID parses the {id} route parameter
func productID(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "id"))
}

// queryInt reads a positive integer query parameter, falling back to the
// route default when absent or unparseable.
func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}

	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return fallback
	}

	return value
}
