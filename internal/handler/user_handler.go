package handler

import (
	"errors"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"catalog-service/internal/middleware"
	"catalog-service/internal/store"
	"catalog-service/pkg/database"
	"catalog-service/pkg/jwtutil"
	"catalog-service/pkg/logger"
	"catalog-service/prometheus"
)

// RegisterRequest defines the structure for registration requests
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest defines the structure for login requests
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func validateEmail(email string) bool {
	_, err := mail.ParseAddress(strings.TrimSpace(email))
	return err == nil
}

func validateRegister(req *RegisterRequest) []string {
	var messages []string
	if len(strings.TrimSpace(req.Name)) < 3 {
		messages = append(messages, "Name must be at least 3 characters long")
	}
	if !validateEmail(req.Email) {
		messages = append(messages, "Please enter a valid email address")
	}
	if len(req.Password) < 6 {
		messages = append(messages, "Password must be at least 6 characters long")
	}
	return messages
}

func setSessionCookie(c echo.Context, token string, expire time.Time) {
	c.SetCookie(&http.Cookie{
		Name:     "token",
		Value:    token,
		Expires:  expire,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
	})
}

// Register creates a new account, hashes the password, and issues the
// first session token.
func Register(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RegisterCounter.Inc()

	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse registration request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return respondValidation(c, []string{"Invalid request data"})
	}

	if messages := validateRegister(&req); len(messages) > 0 {
		prometheus.RecordAuthError("incomplete_registration")
		return respondValidation(c, messages)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("Failed to hash password", zap.Error(err))
		prometheus.RecordAuthError("password_hash_failed")
		return respondError(c, log, err)
	}

	users := store.NewUserStore(database.GetDB())
	user, err := users.Create(req.Name, req.Email, string(hashedPassword))
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			log.Warn("Email already registered", zap.String("email", req.Email))
			prometheus.RecordAuthError("email_already_exists")
		}
		return respondError(c, log, err)
	}

	token, expire, err := jwtutil.GenerateToken(user.Email, user.ID)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		prometheus.RecordAuthError("token_generation_failed")
		return respondError(c, log, err)
	}
	if err := users.SaveSession(user, token, expire); err != nil {
		log.Error("Failed to store session", zap.Error(err))
		return respondError(c, log, err)
	}

	log.Info("User registered", zap.Uint("user_id", user.ID), zap.String("email", user.Email))
	return respondCreated(c, "Registration successful!", echo.Map{
		"name":  user.Name,
		"email": user.Email,
		"token": token,
	})
}

// Login verifies the credentials and issues a fresh session token,
// overwriting the previous one: exactly one live session per user.
func Login(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.LoginCounter.Inc()

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse login request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return respondValidation(c, []string{"Invalid request data"})
	}

	var messages []string
	if !validateEmail(req.Email) {
		messages = append(messages, "Please enter a valid email address")
	}
	if len(req.Password) < 6 {
		messages = append(messages, "Password must be at least 6 characters long")
	}
	if len(messages) > 0 {
		return respondValidation(c, messages)
	}

	users := store.NewUserStore(database.GetDB())
	user, err := users.FindLiveByEmail(req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("Login for unknown email", zap.String("email", req.Email))
			prometheus.RecordAuthError("user_not_found")
			return c.JSON(http.StatusBadRequest, echo.Map{
				"success": false,
				"message": "No account found with this email. Please register first.",
			})
		}
		return respondError(c, log, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		log.Warn("Invalid password", zap.String("email", req.Email))
		prometheus.RecordAuthError("invalid_password")
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"message": "Incorrect password. please give a valid password.",
		})
	}

	token, expire, err := jwtutil.GenerateToken(user.Email, user.ID)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		prometheus.RecordAuthError("token_generation_failed")
		return respondError(c, log, err)
	}
	if err := users.SaveSession(user, token, expire); err != nil {
		log.Error("Failed to store session", zap.Error(err))
		return respondError(c, log, err)
	}

	setSessionCookie(c, token, expire)

	log.Info("User logged in", zap.Uint("user_id", user.ID), zap.String("email", user.Email))
	return respondOK(c, "Login successful! Welcome back.", echo.Map{
		"name":  user.Name,
		"email": user.Email,
		"token": token,
	})
}

// CurrentProfile returns the authenticated user's profile.
func CurrentProfile(c echo.Context) error {
	log := logger.FromContext(c)

	user, ok := middleware.CurrentUser(c)
	if !ok {
		log.Warn("No authenticated user on context")
		return c.JSON(http.StatusUnauthorized, echo.Map{
			"success": false,
			"message": "User not authenticated. Please log in again.",
		})
	}

	return respondOK(c, "User profile loaded successfully.", echo.Map{
		"name":  user.Name,
		"email": user.Email,
	})
}
