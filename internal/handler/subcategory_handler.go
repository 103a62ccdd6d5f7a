package handler

import (
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"catalog-service/internal/model"
	"catalog-service/internal/store"
	"catalog-service/pkg/database"
	"catalog-service/pkg/logger"
	"catalog-service/prometheus"
)

// SubCategoryRequest defines the structure for subcategory
// creation/update requests
type SubCategoryRequest struct {
	Name       *string `json:"name"`
	CategoryID *uint   `json:"category_id"`
	IsActive   *bool   `json:"is_active"`
}

type subCategoryView struct {
	ID       uint       `json:"id"`
	Name     string     `json:"name"`
	IsActive bool       `json:"is_active"`
	Category *entityRef `json:"category,omitempty"`
}

func toSubCategoryView(s *model.SubCategory) subCategoryView {
	view := subCategoryView{ID: s.ID, Name: s.Name, IsActive: s.IsActive}
	if s.Category != nil {
		view.Category = &entityRef{ID: s.Category.ID, Name: s.Category.Name}
	}
	return view
}

func toSubCategoryViews(subs []model.SubCategory) []subCategoryView {
	views := make([]subCategoryView, 0, len(subs))
	for i := range subs {
		views = append(views, toSubCategoryView(&subs[i]))
	}
	return views
}

func validateSubCategoryCreate(req *SubCategoryRequest) []string {
	var messages []string
	if req.Name == nil || strings.TrimSpace(*req.Name) == "" {
		messages = append(messages, "Subcategory name is required")
	} else if len(strings.TrimSpace(*req.Name)) < 2 {
		messages = append(messages, "Subcategory name must be at least 2 characters")
	}
	if req.CategoryID == nil || *req.CategoryID == 0 {
		messages = append(messages, "Category ID is required")
	}
	return messages
}

// CreateSubCategory adds a subcategory under a live parent category.
func CreateSubCategory(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordCatalogOperation("subcategory", "create")

	var req SubCategoryRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return respondValidation(c, []string{"Invalid request data"})
	}
	if messages := validateSubCategoryCreate(&req); len(messages) > 0 {
		return respondValidation(c, messages)
	}

	subs := store.NewSubCategoryStore(database.GetDB())
	sub, err := subs.Create(*req.Name, *req.CategoryID)
	if err != nil {
		log.Warn("Failed to create subcategory",
			zap.String("name", *req.Name),
			zap.Uint("category_id", *req.CategoryID),
			zap.Error(err))
		return respondError(c, log, err)
	}

	log.Info("Subcategory created",
		zap.Uint("subcategory_id", sub.ID),
		zap.Uint("category_id", sub.CategoryID),
		zap.String("name", sub.Name))
	return respondOK(c, "Subcategory created successfully", toSubCategoryView(sub))
}

// ListSubCategories returns one page of live subcategories with their
// parent category summaries.
func ListSubCategories(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordCatalogOperation("subcategory", "list")

	p := store.NewPageParams(c.QueryParam("page"), c.QueryParam("limit"), c.QueryParam("q"))

	subs := store.NewSubCategoryStore(database.GetDB())
	items, total, err := subs.List(p)
	if err != nil {
		log.Error("Failed to list subcategories", zap.Error(err))
		return respondError(c, log, err)
	}

	log.Info("Subcategories listed", zap.Int64("total", total), zap.Int("page", p.Page))
	return respondPage(c, "Subcategories fetched successfully.", toSubCategoryViews(items), p, total)
}

// SubCategoryDropdown returns every live subcategory with its parent.
func SubCategoryDropdown(c echo.Context) error {
	log := logger.FromContext(c)

	subs := store.NewSubCategoryStore(database.GetDB())
	items, err := subs.Dropdown()
	if err != nil {
		log.Error("Failed to load subcategory dropdown", zap.Error(err))
		return respondError(c, log, err)
	}
	return respondOK(c, "Subcategories fetched successfully.", toSubCategoryViews(items))
}

// GetSubCategory returns a single live subcategory with its parent.
func GetSubCategory(c echo.Context) error {
	log := logger.FromContext(c)

	id, ok := parseID(c.Param("id"))
	if !ok {
		return respondValidation(c, []string{"Invalid Subcategory ID"})
	}

	subs := store.NewSubCategoryStore(database.GetDB())
	sub, err := subs.GetDetail(id)
	if err != nil {
		log.Warn("Subcategory lookup failed", zap.Uint("subcategory_id", id), zap.Error(err))
		return respondError(c, log, err)
	}
	return respondOK(c, "Subcategory fetched successfully.", toSubCategoryView(sub))
}

// UpdateSubCategory applies a partial update. Moving to another parent
// re-validates that the parent category is live.
func UpdateSubCategory(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordCatalogOperation("subcategory", "update")

	id, ok := parseID(c.Param("id"))
	if !ok {
		return respondValidation(c, []string{"Invalid Subcategory ID"})
	}

	var req SubCategoryRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return respondValidation(c, []string{"Invalid request data"})
	}
	if req.Name != nil && len(strings.TrimSpace(*req.Name)) < 2 {
		return respondValidation(c, []string{"Name must be at least 2 characters"})
	}

	subs := store.NewSubCategoryStore(database.GetDB())
	sub, err := subs.Update(id, req.Name, req.CategoryID, req.IsActive)
	if err != nil {
		log.Warn("Failed to update subcategory", zap.Uint("subcategory_id", id), zap.Error(err))
		return respondError(c, log, err)
	}

	log.Info("Subcategory updated",
		zap.Uint("subcategory_id", sub.ID),
		zap.Uint("category_id", sub.CategoryID),
		zap.String("name", sub.Name))
	return respondOK(c, "Subcategory updated successfully.", toSubCategoryView(sub))
}

// DeleteSubCategory soft-deletes a subcategory.
func DeleteSubCategory(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordCatalogOperation("subcategory", "delete")

	id, ok := parseID(c.Param("id"))
	if !ok {
		return respondValidation(c, []string{"Invalid Subcategory ID"})
	}

	subs := store.NewSubCategoryStore(database.GetDB())
	if err := subs.Delete(id); err != nil {
		log.Warn("Failed to delete subcategory", zap.Uint("subcategory_id", id), zap.Error(err))
		return respondError(c, log, err)
	}

	log.Info("Subcategory deleted", zap.Uint("subcategory_id", id))
	return respondOK(c, "Subcategory deleted successfully.", nil)
}
