package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"marketplace/internal/auth"
	"marketplace/internal/commerce"
	"marketplace/internal/domain/model"
	"marketplace/internal/middleware"
)

// /basketのHTTP
type BasketHandler struct {
	coordinator *commerce.Coordinator
}

// DI
func NewBasketHandler(coordinator *commerce.Coordinator) *BasketHandler {
	return &BasketHandler{coordinator: coordinator}
}

type AddBasketLineRequest struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

type UpdateBasketLineRequest struct {
	Quantity int `json:"quantity"`
}

// /basket配下を登録（全部認証付き）
func (h *BasketHandler) RegisterRoutes(e *echo.Echo, issuer *auth.JWTIssuer) {
	g := e.Group("/basket")
	g.Use(middleware.AuthJWT(issuer))

	g.GET("", h.get)
	g.POST("/lines", h.addLine)
	g.PATCH("/lines/:itemId", h.updateLine)
	g.DELETE("/lines/:itemId", h.deleteLine)
	g.POST("/checkout", h.checkout)
}

func (h *BasketHandler) get(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	b := h.coordinator.GetBasket(userID)
	if b == nil {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	}

	return c.JSON(http.StatusOK, toBasketResponse(b))
}

func (h *BasketHandler) addLine(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req AddBasketLineRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if req.ItemID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "item_id is required"})
	}
	if req.Quantity < 1 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid quantity"})
	}

	line, err := h.coordinator.AddBasketLine(c.Request().Context(), userID, req.ItemID, req.Quantity)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, BasketLineResponse{
		BasketID:  line.BasketID,
		ItemID:    line.ItemID,
		Quantity:  line.Quantity,
		DateAdded: line.DateAdded,
	})
}

func (h *BasketHandler) updateLine(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req UpdateBasketLineRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if req.Quantity < 1 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid quantity"})
	}

	line, err := h.coordinator.UpdateBasketLine(c.Request().Context(), userID, model.BasketLine{
		ItemID:   c.Param("itemId"),
		Quantity: req.Quantity,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, BasketLineResponse{
		BasketID:  line.BasketID,
		ItemID:    line.ItemID,
		Quantity:  line.Quantity,
		DateAdded: line.DateAdded,
	})
}

func (h *BasketHandler) deleteLine(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	if err := h.coordinator.DeleteBasketLine(c.Request().Context(), userID, c.Param("itemId")); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *BasketHandler) checkout(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	order, err := h.coordinator.Checkout(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, toOrderResponse(order))
}
