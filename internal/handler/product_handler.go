package handler

import (
	"errors"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"catalog-service/internal/model"
	"catalog-service/internal/store"
	"catalog-service/pkg/database"
	"catalog-service/pkg/logger"
	"catalog-service/prometheus"
)

type productView struct {
	ID          uint       `json:"id"`
	Name        string     `json:"name"`
	Price       float64    `json:"price"`
	Image       string     `json:"image"`
	IsActive    bool       `json:"is_active"`
	CategoryID  uint       `json:"category_id"`
	SubCatID    uint       `json:"sub_category_id"`
	Category    *entityRef `json:"category,omitempty"`
	SubCategory *entityRef `json:"sub_category,omitempty"`
}

func toProductView(p *model.Product) productView {
	view := productView{
		ID:         p.ID,
		Name:       p.Name,
		Price:      p.Price,
		Image:      p.Image,
		IsActive:   p.IsActive,
		CategoryID: p.CategoryID,
		SubCatID:   p.SubCategoryID,
	}
	if p.Category != nil {
		view.Category = &entityRef{ID: p.Category.ID, Name: p.Category.Name}
	}
	if p.SubCategory != nil {
		view.SubCategory = &entityRef{ID: p.SubCategory.ID, Name: p.SubCategory.Name}
	}
	return view
}

func toProductViews(products []model.Product) []productView {
	views := make([]productView, 0, len(products))
	for i := range products {
		views = append(views, toProductView(&products[i]))
	}
	return views
}

// Products arrive as multipart form data so an image file can ride along
// with the fields.

func parseFormUint(c echo.Context, field string) (uint, bool) {
	v, err := strconv.ParseUint(c.FormValue(field), 10, 32)
	if err != nil || v == 0 {
		return 0, false
	}
	return uint(v), true
}

// CreateProduct adds a product after validating the parent chain: a live
// category, and a live subcategory stored under that same category.
func CreateProduct(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordCatalogOperation("product", "create")

	var messages []string
	name := strings.TrimSpace(c.FormValue("name"))
	if name == "" {
		messages = append(messages, "Product name is required")
	}
	categoryID, ok := parseFormUint(c, "category_id")
	if !ok {
		messages = append(messages, "Category ID is required")
	}
	subCategoryID, ok := parseFormUint(c, "sub_category_id")
	if !ok {
		messages = append(messages, "SubCategory ID is required")
	}
	price, err := strconv.ParseFloat(c.FormValue("price"), 64)
	if err != nil {
		messages = append(messages, "Price must be a number")
	} else if price <= 0 {
		messages = append(messages, "Price must be greater than 0")
	}
	if len(messages) > 0 {
		return respondValidation(c, messages)
	}

	image, err := saveImage(c)
	if err != nil {
		if errors.Is(err, errInvalidImage) {
			return respondValidation(c, []string{err.Error()})
		}
		log.Error("Failed to store product image", zap.Error(err))
		return respondError(c, log, err)
	}

	products := store.NewProductStore(database.GetDB())
	product, err := products.Create(store.ProductInput{
		Name:          name,
		CategoryID:    categoryID,
		SubCategoryID: subCategoryID,
		Price:         price,
		Image:         image,
	})
	if err != nil {
		log.Warn("Failed to create product",
			zap.String("name", name),
			zap.Uint("category_id", categoryID),
			zap.Uint("sub_category_id", subCategoryID),
			zap.Error(err))
		return respondError(c, log, err)
	}

	log.Info("Product created",
		zap.Uint("product_id", product.ID),
		zap.String("name", product.Name),
		zap.Float64("price", product.Price))
	return respondCreated(c, "Product created successfully", toProductView(product))
}

// ListProducts returns one page of live products, newest first.
func ListProducts(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordCatalogOperation("product", "list")

	p := store.NewPageParams(c.QueryParam("page"), c.QueryParam("limit"), c.QueryParam("q"))

	products := store.NewProductStore(database.GetDB())
	items, total, err := products.List(p)
	if err != nil {
		log.Error("Failed to list products", zap.Error(err))
		return respondError(c, log, err)
	}

	log.Info("Products listed", zap.Int64("total", total), zap.Int("page", p.Page))
	return respondPage(c, "Products fetched successfully", toProductViews(items), p, total)
}

// ProductDropdown returns every live product with both parents loaded.
func ProductDropdown(c echo.Context) error {
	log := logger.FromContext(c)

	products := store.NewProductStore(database.GetDB())
	items, err := products.Dropdown()
	if err != nil {
		log.Error("Failed to load product dropdown", zap.Error(err))
		return respondError(c, log, err)
	}
	return respondOK(c, "Products fetched successfully", toProductViews(items))
}

// GetProduct returns a single live product with category and subcategory
// summaries.
func GetProduct(c echo.Context) error {
	log := logger.FromContext(c)

	id, ok := parseID(c.Param("id"))
	if !ok {
		return respondValidation(c, []string{"Invalid Product ID"})
	}

	products := store.NewProductStore(database.GetDB())
	product, err := products.GetDetail(id)
	if err != nil {
		log.Warn("Product lookup failed", zap.Uint("product_id", id), zap.Error(err))
		return respondError(c, log, err)
	}
	return respondOK(c, "Product fetched successfully", toProductView(product))
}

// UpdateProduct applies a partial update. If either parent id changes the
// whole chain is re-validated against the effective pair.
func UpdateProduct(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordCatalogOperation("product", "update")

	id, ok := parseID(c.Param("id"))
	if !ok {
		return respondValidation(c, []string{"Invalid Product ID"})
	}

	var in store.ProductUpdate
	if v := strings.TrimSpace(c.FormValue("name")); v != "" {
		in.Name = &v
	}
	if v, ok := parseFormUint(c, "category_id"); ok {
		in.CategoryID = &v
	}
	if v, ok := parseFormUint(c, "sub_category_id"); ok {
		in.SubCategoryID = &v
	}
	if raw := c.FormValue("price"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return respondValidation(c, []string{"Price must be a number"})
		}
		if price <= 0 {
			return respondValidation(c, []string{"Price must be greater than 0"})
		}
		in.Price = &price
	}
	if raw := c.FormValue("is_active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			return respondValidation(c, []string{"is_active must be a boolean"})
		}
		in.IsActive = &active
	}

	image, err := saveImage(c)
	if err != nil {
		if errors.Is(err, errInvalidImage) {
			return respondValidation(c, []string{err.Error()})
		}
		log.Error("Failed to store product image", zap.Error(err))
		return respondError(c, log, err)
	}
	in.Image = image

	products := store.NewProductStore(database.GetDB())
	product, err := products.Update(id, in)
	if err != nil {
		log.Warn("Failed to update product", zap.Uint("product_id", id), zap.Error(err))
		return respondError(c, log, err)
	}

	log.Info("Product updated",
		zap.Uint("product_id", product.ID),
		zap.String("name", product.Name),
		zap.Float64("price", product.Price))
	return respondOK(c, "Product updated successfully", toProductView(product))
}

// DeleteProduct soft-deletes a product.
func DeleteProduct(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordCatalogOperation("product", "delete")

	id, ok := parseID(c.Param("id"))
	if !ok {
		return respondValidation(c, []string{"Invalid Product ID"})
	}

	products := store.NewProductStore(database.GetDB())
	if err := products.Delete(id); err != nil {
		log.Warn("Failed to delete product", zap.Uint("product_id", id), zap.Error(err))
		return respondError(c, log, err)
	}

	log.Info("Product deleted", zap.Uint("product_id", id))
	return respondOK(c, "Product deleted successfully", nil)
}
