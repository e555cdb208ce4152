package repository

import (
	"time"

	"marketplace/internal/domain/model"
)

// 永続化用の行の形。メモリ上のエンティティとはここで相互変換する。

type userRecord struct {
	ID                   string `gorm:"type:uuid;primaryKey"`
	Email                string `gorm:"type:varchar(255);not null;uniqueIndex"`
	Password             string `gorm:"type:varchar(255);not null"`
	Address              string `gorm:"type:varchar(255)"`
	InterestedCategories string `gorm:"type:varchar(32);not null"`
}

func (userRecord) TableName() string { return "users" }

type itemRecord struct {
	ID                string  `gorm:"type:uuid;primaryKey"`
	Name              string  `gorm:"type:varchar(255);not null"`
	Price             float64 `gorm:"not null"`
	Description       string  `gorm:"type:text"`
	QuantityAvailable int     `gorm:"not null"`
	IsPurchased       bool    `gorm:"not null;default:false;index"`
	SellerID          string  `gorm:"type:uuid;not null;index"`
	BuyerID           *string `gorm:"type:uuid"`
	OrderID           *string `gorm:"type:uuid;index"`
	BasketID          *string `gorm:"type:uuid"`
	Categories        string  `gorm:"type:varchar(32);not null"`
	DateAdded         time.Time
	AverageRating     float64 `gorm:"not null;default:0"`
	NumOfRatings      int     `gorm:"not null;default:0"`
	Image             *string `gorm:"type:varchar(512)"`
}

func (itemRecord) TableName() string { return "items" }

type basketRecord struct {
	ID     string `gorm:"type:uuid;primaryKey"`
	UserID string `gorm:"type:uuid;not null;index"`
}

func (basketRecord) TableName() string { return "baskets" }

type basketLineRecord struct {
	BasketID  string `gorm:"type:uuid;primaryKey"`
	ItemID    string `gorm:"type:uuid;primaryKey"`
	Quantity  int    `gorm:"not null"`
	DateAdded time.Time
}

func (basketLineRecord) TableName() string { return "basket_lines" }

type orderRecord struct {
	ID           string  `gorm:"type:uuid;primaryKey"`
	BuyerID      string  `gorm:"type:uuid;not null;index"`
	Status       string  `gorm:"type:varchar(20);not null"`
	TotalAmount  float64 `gorm:"not null"`
	PurchaseDate time.Time
}

func (orderRecord) TableName() string { return "orders" }

func toUserRecord(d model.UserData) userRecord {
	return userRecord{
		ID:                   d.ID,
		Email:                d.Email,
		Password:             d.Password,
		Address:              d.Address,
		InterestedCategories: d.EncodedInterestedCategories,
	}
}

func (r userRecord) toData() model.UserData {
	return model.UserData{
		ID:                          r.ID,
		Email:                       r.Email,
		Password:                    r.Password,
		Address:                     r.Address,
		EncodedInterestedCategories: r.InterestedCategories,
	}
}

func toItemRecord(d model.ItemData) itemRecord {
	return itemRecord{
		ID:                d.ID,
		Name:              d.Name,
		Price:             d.Price,
		Description:       d.Description,
		QuantityAvailable: d.QuantityAvailable,
		IsPurchased:       d.IsPurchased,
		SellerID:          d.SellerID,
		BuyerID:           d.BuyerID,
		OrderID:           d.OrderID,
		BasketID:          d.BasketID,
		Categories:        d.EncodedCategories,
		DateAdded:         d.DateAdded,
		AverageRating:     d.AverageRating,
		NumOfRatings:      d.NumOfRatings,
		Image:             d.Image,
	}
}

func (r itemRecord) toData() model.ItemData {
	return model.ItemData{
		ID:                r.ID,
		Name:              r.Name,
		Price:             r.Price,
		Description:       r.Description,
		QuantityAvailable: r.QuantityAvailable,
		IsPurchased:       r.IsPurchased,
		SellerID:          r.SellerID,
		BuyerID:           r.BuyerID,
		OrderID:           r.OrderID,
		BasketID:          r.BasketID,
		EncodedCategories: r.Categories,
		DateAdded:         r.DateAdded,
		AverageRating:     r.AverageRating,
		NumOfRatings:      r.NumOfRatings,
		Image:             r.Image,
	}
}

func toBasketRecord(d model.BasketData) basketRecord {
	return basketRecord{ID: d.ID, UserID: d.UserID}
}

func (r basketRecord) toData() model.BasketData {
	return model.BasketData{ID: r.ID, UserID: r.UserID}
}

func toBasketLineRecord(line model.BasketLine) basketLineRecord {
	return basketLineRecord{
		BasketID:  line.BasketID,
		ItemID:    line.ItemID,
		Quantity:  line.Quantity,
		DateAdded: line.DateAdded,
	}
}

func (r basketLineRecord) toLine() model.BasketLine {
	return model.BasketLine{
		BasketID:  r.BasketID,
		ItemID:    r.ItemID,
		Quantity:  r.Quantity,
		DateAdded: r.DateAdded,
	}
}

func toOrderRecord(d model.OrderData) orderRecord {
	return orderRecord{
		ID:           d.ID,
		BuyerID:      d.BuyerID,
		Status:       string(d.Status),
		TotalAmount:  d.TotalAmount,
		PurchaseDate: d.PurchaseDate,
	}
}

func (r orderRecord) toData() model.OrderData {
	return model.OrderData{
		ID:           r.ID,
		BuyerID:      r.BuyerID,
		Status:       model.OrderStatus(r.Status),
		TotalAmount:  r.TotalAmount,
		PurchaseDate: r.PurchaseDate,
	}
}
