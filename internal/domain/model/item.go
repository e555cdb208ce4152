package model

import (
	"time"

	"github.com/google/uuid"
)

// 出品された商品。
// isPurchased=true のとき buyerId/orderId は必ず入り、basketId は空になる。
type Item struct {
	ID                string
	Name              string
	Price             float64
	Description       string
	QuantityAvailable int
	IsPurchased       bool

	SellerID string
	BuyerID  *string
	OrderID  *string
	BasketID *string

	DateAdded time.Time
	Image     *string

	AverageRating float64
	NumOfRatings  int

	categories CategorySet
}

// ItemData は商品の永続化・復元で使うフラットな形。
type ItemData struct {
	ID                string
	Name              string
	Price             float64
	Description       string
	QuantityAvailable int
	IsPurchased       bool
	SellerID          string
	BuyerID           *string
	OrderID           *string
	BasketID          *string
	EncodedCategories string
	DateAdded         time.Time
	AverageRating     float64
	NumOfRatings      int
	Image             *string
}

// ItemPatch は部分更新の入力。nilのフィールドは変更しない。
// NewRating が入っている場合は評価の平均を更新する。
type ItemPatch struct {
	ID                string
	Name              *string
	Price             *float64
	Description       *string
	QuantityAvailable *int
	IsPurchased       *bool
	SellerID          *string
	BuyerID           *string
	OrderID           *string
	BasketID          *string
	EncodedCategories *string
	DateAdded         *time.Time
	Image             *string
	NewRating         *float64
}

// NewItem はItemDataから商品を組み立てる。
// IDが空なら採番し、DateAddedがゼロ値なら現在時刻を入れる。
func NewItem(d ItemData) *Item {
	id := d.ID
	if id == "" {
		id = uuid.NewString()
	}

	dateAdded := d.DateAdded
	if dateAdded.IsZero() {
		dateAdded = time.Now()
	}

	return &Item{
		ID:                id,
		Name:              d.Name,
		Price:             d.Price,
		Description:       d.Description,
		QuantityAvailable: d.QuantityAvailable,
		IsPurchased:       d.IsPurchased,
		SellerID:          d.SellerID,
		BuyerID:           d.BuyerID,
		OrderID:           d.OrderID,
		BasketID:          d.BasketID,
		DateAdded:         dateAdded,
		Image:             d.Image,
		AverageRating:     d.AverageRating,
		NumOfRatings:      d.NumOfRatings,
		categories:        DecodeCategories(d.EncodedCategories),
	}
}

// Categories は商品のカテゴリ集合を返す。
func (it *Item) Categories() CategorySet {
	return it.categories
}

// AddCategory はカテゴリを追加する。
func (it *Item) AddCategory(c Category) {
	it.categories.Add(c)
}

// EncodedCategories はカテゴリ集合をエンコード文字列で返す。
func (it *Item) EncodedCategories() string {
	return EncodeCategories(it.categories)
}

// Apply は部分更新を適用する。
func (it *Item) Apply(p ItemPatch) {
	if p.Name != nil {
		it.Name = *p.Name
	}
	if p.Price != nil {
		it.Price = *p.Price
	}
	if p.Description != nil {
		it.Description = *p.Description
	}
	if p.QuantityAvailable != nil {
		it.QuantityAvailable = *p.QuantityAvailable
	}
	if p.IsPurchased != nil {
		it.IsPurchased = *p.IsPurchased
	}
	if p.SellerID != nil {
		it.SellerID = *p.SellerID
	}
	if p.BuyerID != nil {
		it.BuyerID = p.BuyerID
	}
	if p.OrderID != nil {
		it.OrderID = p.OrderID
	}
	if p.BasketID != nil {
		it.BasketID = p.BasketID
	}
	if p.EncodedCategories != nil {
		it.categories = DecodeCategories(*p.EncodedCategories)
	}
	if p.DateAdded != nil {
		it.DateAdded = *p.DateAdded
	}
	if p.Image != nil {
		it.Image = p.Image
	}

	if p.NewRating != nil {
		it.UpdateRating(*p.NewRating)
	}
}

// UpdateRating は評価の平均を逐次更新する。
// 新しい平均 = (旧平均 × 旧件数 + 新評価) ÷ 新件数
func (it *Item) UpdateRating(newRating float64) {
	it.NumOfRatings++
	it.AverageRating = (it.AverageRating*float64(it.NumOfRatings-1) + newRating) / float64(it.NumOfRatings)
}

// Data は永続化用のフラットな形に変換する。
func (it *Item) Data() ItemData {
	return ItemData{
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
