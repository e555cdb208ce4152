package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"marketplace/internal/auth"
	"marketplace/internal/commerce"
	"marketplace/internal/domain/model"
)

// /authのHTTP
type AuthHandler struct {
	coordinator *commerce.Coordinator
	issuer      *auth.JWTIssuer
}

// DI
func NewAuthHandler(coordinator *commerce.Coordinator, issuer *auth.JWTIssuer) *AuthHandler {
	return &AuthHandler{coordinator: coordinator, issuer: issuer}
}

type SignupRequest struct {
	Email                string `json:"email"`
	Password             string `json:"password"`
	Address              string `json:"address"`
	InterestedCategories string `json:"interested_categories"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenResponse struct {
	AccessToken string       `json:"access_token"`
	ExpiresAt   time.Time    `json:"expires_at"`
	User        UserResponse `json:"user"`
}

// /auth/signup, /auth/login を登録
func (h *AuthHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/auth/signup", h.signup)
	e.POST("/auth/login", h.login)
}

func (h *AuthHandler) signup(c echo.Context) error {
	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "email and password are required"})
	}

	u, err := h.coordinator.RegisterUser(c.Request().Context(), model.UserData{
		Email:                       req.Email,
		Password:                    req.Password,
		Address:                     req.Address,
		EncodedInterestedCategories: req.InterestedCategories,
	})
	if err != nil {
		return writeError(c, err)
	}

	return h.issueToken(c, u, http.StatusCreated)
}

func (h *AuthHandler) login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	u := h.coordinator.Authenticate(c.Request().Context(), req.Email, req.Password)
	if u == nil {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid credentials"})
	}

	return h.issueToken(c, u, http.StatusOK)
}

func (h *AuthHandler) issueToken(c echo.Context, u *model.User, status int) error {
	token, expiresAt, err := h.issuer.Issue(u.ID, time.Now())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}

	return c.JSON(status, TokenResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		User:        toUserResponse(u),
	})
}
