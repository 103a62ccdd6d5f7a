package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"catalog-service/internal/model"
	"catalog-service/internal/store"
	"catalog-service/pkg/database"
	"catalog-service/pkg/logger"
	"catalog-service/prometheus"
)

// CategoryRequest defines the structure for category creation/update requests
type CategoryRequest struct {
	Name     *string `json:"name"`
	IsActive *bool   `json:"is_active"`
}

type categoryView struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

func toCategoryView(c *model.Category) categoryView {
	return categoryView{ID: c.ID, Name: c.Name, IsActive: c.IsActive}
}

func toCategoryViews(categories []model.Category) []categoryView {
	views := make([]categoryView, 0, len(categories))
	for i := range categories {
		views = append(views, toCategoryView(&categories[i]))
	}
	return views
}

// CreateCategory adds a new category after the case-insensitive
// name-uniqueness check among live categories.
func CreateCategory(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordCatalogOperation("category", "create")

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return respondValidation(c, []string{"Invalid request data"})
	}

	if req.Name == nil || strings.TrimSpace(*req.Name) == "" {
		return respondValidation(c, []string{"Category name is required."})
	}

	categories := store.NewCategoryStore(database.GetDB())
	category, err := categories.Create(*req.Name)
	if err != nil {
		log.Warn("Failed to create category", zap.String("name", *req.Name), zap.Error(err))
		return respondError(c, log, err)
	}

	log.Info("Category created",
		zap.Uint("category_id", category.ID),
		zap.String("name", category.Name))
	return respondOK(c, "Category created successfully.", toCategoryView(category))
}

// ListCategories returns one page of live categories, newest first,
// optionally filtered by a case-insensitive substring on name.
func ListCategories(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordCatalogOperation("category", "list")

	p := store.NewPageParams(c.QueryParam("page"), c.QueryParam("limit"), c.QueryParam("q"))

	categories := store.NewCategoryStore(database.GetDB())
	items, total, err := categories.List(p)
	if err != nil {
		log.Error("Failed to list categories", zap.Error(err))
		return respondError(c, log, err)
	}

	log.Info("Categories listed", zap.Int64("total", total), zap.Int("page", p.Page))
	return respondPage(c, "Categories get successFully.", toCategoryViews(items), p, total)
}

// CategoryDropdown returns every live category without pagination.
func CategoryDropdown(c echo.Context) error {
	log := logger.FromContext(c)

	categories := store.NewCategoryStore(database.GetDB())
	items, err := categories.Dropdown()
	if err != nil {
		log.Error("Failed to load category dropdown", zap.Error(err))
		return respondError(c, log, err)
	}
	return respondOK(c, "Categories get successFully.", toCategoryViews(items))
}

// GetCategory returns a single live category by id.
func GetCategory(c echo.Context) error {
	log := logger.FromContext(c)

	id, ok := parseID(c.Param("id"))
	if !ok {
		return respondValidation(c, []string{"Invalid Category ID"})
	}

	categories := store.NewCategoryStore(database.GetDB())
	category, err := categories.GetLive(id)
	if err != nil {
		log.Warn("Category lookup failed", zap.Uint("category_id", id), zap.Error(err))
		return respondError(c, log, err)
	}
	return respondOK(c, "Category id get.", toCategoryView(category))
}

// UpdateCategory applies a partial update: name and/or active flag.
func UpdateCategory(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordCatalogOperation("category", "update")

	id, ok := parseID(c.Param("id"))
	if !ok {
		return respondValidation(c, []string{"Invalid Category ID"})
	}

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return respondValidation(c, []string{"Invalid request data"})
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return respondValidation(c, []string{"Category name is required."})
	}

	categories := store.NewCategoryStore(database.GetDB())
	category, err := categories.Update(id, req.Name, req.IsActive)
	if err != nil {
		log.Warn("Failed to update category", zap.Uint("category_id", id), zap.Error(err))
		return respondError(c, log, err)
	}

	log.Info("Category updated",
		zap.Uint("category_id", category.ID),
		zap.String("name", category.Name))
	return respondOK(c, "Category updated successfully.", toCategoryView(category))
}

// DeleteCategory soft-deletes a category. Subcategories are not cascaded;
// they fail their own referential checks once the parent is gone.
func DeleteCategory(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordCatalogOperation("category", "delete")

	id, ok := parseID(c.Param("id"))
	if !ok {
		return respondValidation(c, []string{"Invalid Category ID"})
	}

	categories := store.NewCategoryStore(database.GetDB())
	if err := categories.Delete(id); err != nil {
		log.Warn("Failed to delete category", zap.Uint("category_id", id), zap.Error(err))
		return respondError(c, log, err)
	}

	log.Info("Category deleted", zap.Uint("category_id", id))
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Category deleted."})
}
