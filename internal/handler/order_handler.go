package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"marketplace/internal/auth"
	"marketplace/internal/commerce"
	"marketplace/internal/middleware"
)

// /ordersのHTTP
type OrderHandler struct {
	coordinator *commerce.Coordinator
}

// DI
func NewOrderHandler(coordinator *commerce.Coordinator) *OrderHandler {
	return &OrderHandler{coordinator: coordinator}
}

// /orders配下を登録（全部認証付き）
func (h *OrderHandler) RegisterRoutes(e *echo.Echo, issuer *auth.JWTIssuer) {
	g := e.Group("/orders")
	g.Use(middleware.AuthJWT(issuer))

	g.GET("", h.list)
	g.GET("/:id", h.detail)
	g.POST("/buy-now", h.buyNow)
}

type BuyNowRequest struct {
	ItemID string `json:"item_id"`
}

func (h *OrderHandler) list(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	orders := h.coordinator.OrdersByUser(userID)

	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}

	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) detail(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	o := h.coordinator.GetOrder(c.Param("id"))
	if o == nil {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	}

	//他人の注文は「存在しない扱い」にする
	if o.BuyerID != userID {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	}

	return c.JSON(http.StatusOK, toOrderResponse(o))
}

func (h *OrderHandler) buyNow(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req BuyNowRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if req.ItemID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "item_id is required"})
	}

	order, err := h.coordinator.BuyNow(c.Request().Context(), userID, req.ItemID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, toOrderResponse(order))
}
