package handler

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"catalog-service/internal/model"
	"catalog-service/internal/store"
	"catalog-service/pkg/database"
	"catalog-service/pkg/logger"
	"catalog-service/prometheus"
)

// FavoriteRequest identifies one (user, product) pair.
type FavoriteRequest struct {
	UserID    uint `json:"user_id"`
	ProductID uint `json:"product_id"`
}

type favoriteView struct {
	UserID     uint         `json:"user_id"`
	ProductID  uint         `json:"product_id"`
	IsFavorite bool         `json:"is_favorite"`
	Product    *productView `json:"product,omitempty"`
}

func toFavoriteView(f *model.Favorite) favoriteView {
	view := favoriteView{
		UserID:     f.UserID,
		ProductID:  f.ProductID,
		IsFavorite: f.IsFavorite,
	}
	if f.Product != nil {
		p := toProductView(f.Product)
		view.Product = &p
	}
	return view
}

func bindFavoriteRequest(c echo.Context, log *zap.Logger) (*FavoriteRequest, []string) {
	var req FavoriteRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return nil, []string{"Invalid request data"}
	}
	var messages []string
	if req.UserID == 0 {
		messages = append(messages, "User ID is required")
	}
	if req.ProductID == 0 {
		messages = append(messages, "Product ID is required")
	}
	if len(messages) > 0 {
		return nil, messages
	}
	return &req, nil
}

// AddFavorite moves the pair to the active state: created when absent,
// reactivated when previously removed, and a no-op success when already
// active. The product must be live.
func AddFavorite(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordFavoriteOperation("add")

	req, messages := bindFavoriteRequest(c, log)
	if messages != nil {
		return respondValidation(c, messages)
	}

	favorites := store.NewFavoriteStore(database.GetDB())
	fav, created, err := favorites.Add(req.UserID, req.ProductID)
	if err != nil {
		log.Warn("Failed to add favorite",
			zap.Uint("user_id", req.UserID),
			zap.Uint("product_id", req.ProductID),
			zap.Error(err))
		return respondError(c, log, err)
	}

	log.Info("Favorite added",
		zap.Uint("user_id", fav.UserID),
		zap.Uint("product_id", fav.ProductID),
		zap.Bool("created", created))
	if created {
		return respondCreated(c, "Product added to favorite", toFavoriteView(fav))
	}
	return respondOK(c, "Product already exists in favorites", toFavoriteView(fav))
}

// RemoveFavorite deactivates an active pair. Removing what was never
// added, or already removed, reports not found.
func RemoveFavorite(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordFavoriteOperation("remove")

	req, messages := bindFavoriteRequest(c, log)
	if messages != nil {
		return respondValidation(c, messages)
	}

	favorites := store.NewFavoriteStore(database.GetDB())
	if err := favorites.Remove(req.UserID, req.ProductID); err != nil {
		log.Warn("Failed to remove favorite",
			zap.Uint("user_id", req.UserID),
			zap.Uint("product_id", req.ProductID),
			zap.Error(err))
		return respondError(c, log, err)
	}

	log.Info("Favorite removed",
		zap.Uint("user_id", req.UserID),
		zap.Uint("product_id", req.ProductID))
	return respondOK(c, "Removed from favorite", nil)
}

// ToggleFavorite flips the pair: absent and inactive become active,
// active becomes inactive.
func ToggleFavorite(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordFavoriteOperation("toggle")

	req, messages := bindFavoriteRequest(c, log)
	if messages != nil {
		return respondValidation(c, messages)
	}

	favorites := store.NewFavoriteStore(database.GetDB())
	fav, err := favorites.Toggle(req.UserID, req.ProductID)
	if err != nil {
		log.Warn("Failed to toggle favorite",
			zap.Uint("user_id", req.UserID),
			zap.Uint("product_id", req.ProductID),
			zap.Error(err))
		return respondError(c, log, err)
	}

	message := "Removed from favorite"
	if fav.IsFavorite {
		message = "Added to favorite"
	}
	log.Info("Favorite toggled",
		zap.Uint("user_id", fav.UserID),
		zap.Uint("product_id", fav.ProductID),
		zap.Bool("is_favorite", fav.IsFavorite))
	return respondOK(c, message, toFavoriteView(fav))
}

// CheckFavorite reports whether the pair is currently active. A removed
// pair and a never-added pair both read as false.
func CheckFavorite(c echo.Context) error {
	log := logger.FromContext(c)

	req, messages := bindFavoriteRequest(c, log)
	if messages != nil {
		return respondValidation(c, messages)
	}

	favorites := store.NewFavoriteStore(database.GetDB())
	active, err := favorites.IsFavorite(req.UserID, req.ProductID)
	if err != nil {
		return respondError(c, log, err)
	}

	return respondOK(c, "Favorite state fetched", echo.Map{"is_favorite": active})
}

// ListFavorites returns a user's active favorites with product data.
func ListFavorites(c echo.Context) error {
	log := logger.FromContext(c)

	userID, ok := parseID(c.Param("userId"))
	if !ok {
		return respondValidation(c, []string{"Invalid User ID"})
	}

	favorites := store.NewFavoriteStore(database.GetDB())
	items, err := favorites.ListByUser(userID)
	if err != nil {
		log.Error("Failed to list favorites", zap.Uint("user_id", userID), zap.Error(err))
		return respondError(c, log, err)
	}

	views := make([]favoriteView, 0, len(items))
	for i := range items {
		views = append(views, toFavoriteView(&items[i]))
	}
	return respondOK(c, "Favorite products fetched", views)
}
