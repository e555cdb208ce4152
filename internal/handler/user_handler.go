package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"marketplace/internal/auth"
	"marketplace/internal/commerce"
	"marketplace/internal/domain/model"
	"marketplace/internal/middleware"
)

// /usersのHTTP
type UserHandler struct {
	coordinator *commerce.Coordinator
}

// DI
func NewUserHandler(coordinator *commerce.Coordinator) *UserHandler {
	return &UserHandler{coordinator: coordinator}
}

type UpdateUserRequest struct {
	Email                *string `json:"email"`
	Password             *string `json:"password"`
	Address              *string `json:"address"`
	InterestedCategories *string `json:"interested_categories"`
}

// /users/me配下を登録（全部認証付き）
func (h *UserHandler) RegisterRoutes(e *echo.Echo, issuer *auth.JWTIssuer) {
	g := e.Group("/users/me")
	g.Use(middleware.AuthJWT(issuer))

	g.GET("", h.me)
	g.PATCH("", h.update)
	g.DELETE("", h.remove)
	g.GET("/recommendations", h.recommendations)
}

func (h *UserHandler) me(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	u := h.coordinator.GetUser(userID)
	if u == nil {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	}

	return c.JSON(http.StatusOK, toUserResponse(u))
}

func (h *UserHandler) update(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	u, err := h.coordinator.UpdateUser(c.Request().Context(), model.UserPatch{
		ID:                          userID,
		Email:                       req.Email,
		Password:                    req.Password,
		Address:                     req.Address,
		EncodedInterestedCategories: req.InterestedCategories,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, toUserResponse(u))
}

func (h *UserHandler) remove(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	if err := h.coordinator.DeleteUser(c.Request().Context(), userID); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// GET /users/me/recommendations?k= は推薦商品を返す。
func (h *UserHandler) recommendations(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	k := 0
	if v := c.QueryParam("k"); v != "" {
		if err := echo.QueryParamsBinder(c).Int("k", &k).BindError(); err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid k"})
		}
	}

	items, err := h.coordinator.Recommendations(c.Request().Context(), userID, k)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, toItemResponses(items))
}
