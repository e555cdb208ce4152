package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"marketplace/internal/commerce"
	"marketplace/internal/domain/model"
	"marketplace/internal/middleware"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := commerce.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

func getUserIDFromContext(c echo.Context) (string, bool) {
	v := c.Get(middleware.CtxUserIDKey)
	userID, ok := v.(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

// ItemResponse は商品のAPIレスポンス。
type ItemResponse struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Price             float64   `json:"price"`
	Description       string    `json:"description"`
	QuantityAvailable int       `json:"quantity_available"`
	IsPurchased       bool      `json:"is_purchased"`
	SellerID          string    `json:"seller_id"`
	BuyerID           *string   `json:"buyer_id"`
	OrderID           *string   `json:"order_id"`
	BasketID          *string   `json:"basket_id"`
	EncodedCategories string    `json:"encoded_categories"`
	DateAdded         time.Time `json:"date_added"`
	AverageRating     float64   `json:"average_rating"`
	NumOfRatings      int       `json:"num_of_ratings"`
	Image             *string   `json:"image"`
}

func toItemResponse(it *model.Item) ItemResponse {
	return ItemResponse{
		ID:                it.ID,
		Name:              it.Name,
		Price:             it.Price,
		Description:       it.Description,
		QuantityAvailable: it.QuantityAvailable,
		IsPurchased:       it.IsPurchased,
		SellerID:          it.SellerID,
		BuyerID:           it.BuyerID,
		OrderID:           it.OrderID,
		BasketID:          it.BasketID,
		EncodedCategories: it.EncodedCategories(),
		DateAdded:         it.DateAdded,
		AverageRating:     it.AverageRating,
		NumOfRatings:      it.NumOfRatings,
		Image:             it.Image,
	}
}

func toItemResponses(items []*model.Item) []ItemResponse {
	out := make([]ItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, toItemResponse(it))
	}
	return out
}

// OrderResponse は注文のAPIレスポンス。
type OrderResponse struct {
	ID           string         `json:"id"`
	BuyerID      string         `json:"buyer_id"`
	Status       string         `json:"status"`
	TotalAmount  float64        `json:"total_amount"`
	PurchaseDate time.Time      `json:"purchase_date"`
	Items        []ItemResponse `json:"items"`
}

func toOrderResponse(o *model.Order) OrderResponse {
	return OrderResponse{
		ID:           o.ID,
		BuyerID:      o.BuyerID,
		Status:       string(o.Status),
		TotalAmount:  o.TotalAmount,
		PurchaseDate: o.PurchaseDate,
		Items:        toItemResponses(o.Items()),
	}
}

// BasketLineResponse はバスケット明細のAPIレスポンス。
type BasketLineResponse struct {
	BasketID  string    `json:"basket_id"`
	ItemID    string    `json:"item_id"`
	Quantity  int       `json:"quantity"`
	DateAdded time.Time `json:"date_added"`
}

// BasketResponse はバスケットのAPIレスポンス。
type BasketResponse struct {
	ID     string               `json:"id"`
	UserID string               `json:"user_id"`
	Lines  []BasketLineResponse `json:"lines"`
}

func toBasketResponse(b *model.Basket) BasketResponse {
	lines := make([]BasketLineResponse, 0, b.Len())
	for _, line := range b.Lines() {
		lines = append(lines, BasketLineResponse{
			BasketID:  line.BasketID,
			ItemID:    line.ItemID,
			Quantity:  line.Quantity,
			DateAdded: line.DateAdded,
		})
	}

	return BasketResponse{ID: b.ID, UserID: b.UserID, Lines: lines}
}

// UserResponse はユーザーのAPIレスポンス。パスワードは返さない。
type UserResponse struct {
	ID                          string `json:"id"`
	Email                       string `json:"email"`
	Address                     string `json:"address"`
	EncodedInterestedCategories string `json:"encoded_interested_categories"`
}

func toUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:                          u.ID,
		Email:                       u.Email,
		Address:                     u.Address,
		EncodedInterestedCategories: u.EncodedInterestedCategories(),
	}
}
