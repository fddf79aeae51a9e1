package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shiva-srivastav/zest-products/internal/service"
	"github.com/shiva-srivastav/zest-products/pkg/httputil"
	"github.com/shiva-srivastav/zest-products/pkg/middleware"
	"github.com/shiva-srivastav/zest-products/pkg/pagination"
	"github.com/shiva-srivastav/zest-products/pkg/validator"
)

// productSortColumns is the whitelist of sortable product columns.
var productSortColumns = []string{"id", "product_name", "created_on"}

// ProductHandler handles HTTP requests for products and their items.
type ProductHandler struct {
	service *service.ProductService
	logger  *slog.Logger
}

// NewProductHandler creates a new product HTTP handler.
func NewProductHandler(svc *service.ProductService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{service: svc, logger: logger}
}

// --- Request DTOs ---

// ProductRequest is the JSON request body for creating or updating a product.
type ProductRequest struct {
	ProductName string `json:"product_name" validate:"required,min=2,max=255"`
	Description string `json:"description" validate:"max=1000"`
}

// ItemRequest is the JSON request body for creating or updating an item.
type ItemRequest struct {
	ItemName string `json:"item_name" validate:"required,min=2,max=255"`
	Quantity int    `json:"quantity" validate:"gte=1"`
}

// --- Product handlers ---

// Create handles POST /api/v1/products
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit

	var req ProductRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	if err := validator.Validate(req); err != nil {
		writeValidationError(w, r, err)
		return
	}

	actor := middleware.UsernameFromContext(r.Context())
	product, err := h.service.CreateProduct(r.Context(), service.ProductInput{
		ProductName: req.ProductName,
		Description: req.Description,
	}, actor)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, product)
}

// Get handles GET /api/v1/products/{id}
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	product, err := h.service.GetProduct(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, product)
}

// List handles GET /api/v1/products
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	params := pagination.FromRequest(r, productSortColumns...)
	search := r.URL.Query().Get("search")

	result, err := h.service.ListProducts(r.Context(), params, search)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	httputil.WritePaginated(w, http.StatusOK, result)
}

// Update handles PUT /api/v1/products/{id}
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit

	id, err := httputil.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	var req ProductRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	if err := validator.Validate(req); err != nil {
		writeValidationError(w, r, err)
		return
	}

	actor := middleware.UsernameFromContext(r.Context())
	product, err := h.service.UpdateProduct(r.Context(), id, service.ProductInput{
		ProductName: req.ProductName,
		Description: req.Description,
	}, actor)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, product)
}

// Delete handles DELETE /api/v1/products/{id}
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	actor := middleware.UsernameFromContext(r.Context())
	if err := h.service.DeleteProduct(r.Context(), id, actor); err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// --- Item handlers ---

// AddItem handles POST /api/v1/products/{id}/items
func (h *ProductHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit

	productID, err := httputil.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	var req ItemRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	if err := validator.Validate(req); err != nil {
		writeValidationError(w, r, err)
		return
	}

	item, err := h.service.AddItem(r.Context(), productID, service.ItemInput{
		ItemName: req.ItemName,
		Quantity: req.Quantity,
	})
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, item)
}

// GetItem handles GET /api/v1/products/{id}/items/{itemId}
func (h *ProductHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	productID, itemID, err := parseItemPath(r)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	item, err := h.service.GetItem(r.Context(), productID, itemID)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, item)
}

// ListItems handles GET /api/v1/products/{id}/items
func (h *ProductHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	productID, err := httputil.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	items, err := h.service.ListItems(r.Context(), productID)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, items)
}

// UpdateItem handles PUT /api/v1/products/{id}/items/{itemId}
func (h *ProductHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit

	productID, itemID, err := parseItemPath(r)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	var req ItemRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	if err := validator.Validate(req); err != nil {
		writeValidationError(w, r, err)
		return
	}

	item, err := h.service.UpdateItem(r.Context(), productID, itemID, service.ItemInput{
		ItemName: req.ItemName,
		Quantity: req.Quantity,
	})
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, item)
}

// DeleteItem handles DELETE /api/v1/products/{id}/items/{itemId}
func (h *ProductHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	productID, itemID, err := parseItemPath(r)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	if err := h.service.DeleteItem(r.Context(), productID, itemID); err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseItemPath(r *http.Request) (productID, itemID int64, err error) {
	productID, err = httputil.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		return 0, 0, err
	}
	itemID, err = httputil.ParseID(chi.URLParam(r, "itemId"))
	if err != nil {
		return 0, 0, err
	}
	return productID, itemID, nil
}
