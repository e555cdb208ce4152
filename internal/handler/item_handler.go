package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"marketplace/internal/auth"
	"marketplace/internal/commerce"
	"marketplace/internal/domain/model"
	"marketplace/internal/middleware"
	"marketplace/internal/store"
)

// /itemsのHTTP
type ItemHandler struct {
	coordinator *commerce.Coordinator
}

// DI
func NewItemHandler(coordinator *commerce.Coordinator) *ItemHandler {
	return &ItemHandler{coordinator: coordinator}
}

type CreateItemRequest struct {
	Name              string  `json:"name"`
	Price             float64 `json:"price"`
	Description       string  `json:"description"`
	QuantityAvailable int     `json:"quantity_available"`
	Categories        string  `json:"categories"`
	Image             *string `json:"image"`
}

type UpdateItemRequest struct {
	Name              *string  `json:"name"`
	Price             *float64 `json:"price"`
	Description       *string  `json:"description"`
	QuantityAvailable *int     `json:"quantity_available"`
	Categories        *string  `json:"categories"`
	Image             *string  `json:"image"`
}

type RateItemRequest struct {
	Rating float64 `json:"rating"`
}

type TradeRequest struct {
	ItemID1 string `json:"item_id_1"`
	ItemID2 string `json:"item_id_2"`
}

// 公開の閲覧ルートと認証付きの変更ルートを登録
func (h *ItemHandler) RegisterRoutes(e *echo.Echo, issuer *auth.JWTIssuer) {
	e.GET("/items", h.list)
	e.GET("/items/newest", h.newest)
	e.GET("/items/top-rated", h.topRated)
	e.GET("/items/search", h.search)
	e.GET("/items/:id", h.detail)
	e.GET("/sellers/:id/items/unsold", h.sellerUnsold)
	e.GET("/sellers/:id/items/sold", h.sellerSold)

	g := e.Group("/items")
	g.Use(middleware.AuthJWT(issuer))

	g.POST("", h.create)
	g.PATCH("/:id", h.update)
	g.DELETE("/:id", h.remove)
	g.POST("/:id/ratings", h.rate)
	g.POST("/trade", h.trade)
}

// GET /items はアルファベット順。filter系のクエリがあれば絞り込み。
func (h *ItemHandler) list(c echo.Context) error {
	categories := c.QueryParam("categories")
	price := c.QueryParam("price")
	rating := c.QueryParam("rating")

	if categories == "" && price == "" && rating == "" {
		return c.JSON(http.StatusOK, toItemResponses(h.coordinator.AlphabeticalItems()))
	}

	items := h.coordinator.FilterItems(store.ItemFilter{
		Categories: categories,
		Price:      price,
		Rating:     rating,
	})

	return c.JSON(http.StatusOK, toItemResponses(items))
}

func (h *ItemHandler) newest(c echo.Context) error {
	return c.JSON(http.StatusOK, toItemResponses(h.coordinator.NewestAvailableItems()))
}

func (h *ItemHandler) topRated(c echo.Context) error {
	return c.JSON(http.StatusOK, toItemResponses(h.coordinator.HighestRatedItems()))
}

// GET /items/search?name= は名前の完全一致（大文字小文字は無視）。
func (h *ItemHandler) search(c echo.Context) error {
	name := c.QueryParam("name")
	if name == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "name is required"})
	}

	it := h.coordinator.FindItemByName(name)
	if it == nil {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	}

	return c.JSON(http.StatusOK, toItemResponse(it))
}

func (h *ItemHandler) detail(c echo.Context) error {
	it := h.coordinator.GetItem(c.Param("id"))
	if it == nil {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	}

	return c.JSON(http.StatusOK, toItemResponse(it))
}

func (h *ItemHandler) sellerUnsold(c echo.Context) error {
	return c.JSON(http.StatusOK, toItemResponses(h.coordinator.SellerUnsoldItems(c.Param("id"))))
}

func (h *ItemHandler) sellerSold(c echo.Context) error {
	return c.JSON(http.StatusOK, toItemResponses(h.coordinator.SellerSoldItems(c.Param("id"))))
}

func (h *ItemHandler) create(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req CreateItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "name is required"})
	}
	if req.Price < 0 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid price"})
	}

	it, err := h.coordinator.AddItem(c.Request().Context(), model.ItemData{
		Name:              req.Name,
		Price:             req.Price,
		Description:       req.Description,
		QuantityAvailable: req.QuantityAvailable,
		SellerID:          userID,
		EncodedCategories: req.Categories,
		Image:             req.Image,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, toItemResponse(it))
}

func (h *ItemHandler) update(c echo.Context) error {
	if _, ok := getUserIDFromContext(c); !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req UpdateItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	it, err := h.coordinator.UpdateItem(c.Request().Context(), model.ItemPatch{
		ID:                c.Param("id"),
		Name:              req.Name,
		Price:             req.Price,
		Description:       req.Description,
		QuantityAvailable: req.QuantityAvailable,
		EncodedCategories: req.Categories,
		Image:             req.Image,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, toItemResponse(it))
}

func (h *ItemHandler) remove(c echo.Context) error {
	if _, ok := getUserIDFromContext(c); !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	if err := h.coordinator.DeleteItem(c.Request().Context(), c.Param("id")); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *ItemHandler) rate(c echo.Context) error {
	if _, ok := getUserIDFromContext(c); !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req RateItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	// 評価値の範囲はこの層で見る
	if req.Rating < 1 || req.Rating > 5 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "rating must be between 1 and 5"})
	}

	it, err := h.coordinator.RateItem(c.Request().Context(), c.Param("id"), req.Rating)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, toItemResponse(it))
}

func (h *ItemHandler) trade(c echo.Context) error {
	if _, ok := getUserIDFromContext(c); !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req TradeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	traded, err := h.coordinator.Trade(c.Request().Context(), req.ItemID1, req.ItemID2)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, toItemResponses(traded))
}
