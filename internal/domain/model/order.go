package model

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// 注文のステータス。
type OrderStatus string

const (
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusPurchased  OrderStatus = "PURCHASED"
	OrderStatusPosted     OrderStatus = "POSTED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

// 購入確定時点の商品のスナップショットを持つ注文。
// 作成後に変わるのはステータスだけで、商品集合は縮まない。
type Order struct {
	ID           string
	BuyerID      string
	Status       OrderStatus
	TotalAmount  float64
	PurchaseDate time.Time

	items map[string]*Item
}

// OrderData は注文の永続化・復元で使うフラットな形。
// 商品はorderIdを持つItem側から再結合する。
type OrderData struct {
	ID           string
	BuyerID      string
	Status       OrderStatus
	TotalAmount  float64
	PurchaseDate time.Time
}

// NewOrder は注文を組み立てる。
// totalがnilなら商品価格の合計から算出する。orderIDが空なら採番する。
func NewOrder(buyerID string, status OrderStatus, purchaseDate time.Time, total *float64, orderID string, items []*Item) *Order {
	if orderID == "" {
		orderID = uuid.NewString()
	}

	o := &Order{
		ID:           orderID,
		BuyerID:      buyerID,
		Status:       status,
		PurchaseDate: purchaseDate,
		items:        map[string]*Item{},
	}

	for _, it := range items {
		o.items[it.ID] = it
	}

	if total != nil {
		o.TotalAmount = *total
	} else {
		o.TotalAmount = o.calculateTotal()
	}

	return o
}

// Items は注文に含まれる商品を返す。
func (o *Order) Items() []*Item {
	items := make([]*Item, 0, len(o.items))
	for _, it := range o.items {
		items = append(items, it)
	}
	return items
}

// Item は商品IDでスナップショットを引く。
func (o *Order) Item(itemID string) (*Item, bool) {
	it, ok := o.items[itemID]
	return it, ok
}

// AddItem は商品を注文に加える（DBからの復元時の再結合で使う）。
func (o *Order) AddItem(it *Item) {
	o.items[it.ID] = it
}

// calculateTotal は商品価格の合計を小数第2位で丸めて返す。
// 明細の数量に関わらず1個分で計算する。
func (o *Order) calculateTotal() float64 {
	total := 0.0
	quantity := 1.0

	for _, it := range o.items {
		total += it.Price * quantity
	}

	return math.Round(total*100) / 100
}

// Data は永続化用のフラットな形に変換する。
func (o *Order) Data() OrderData {
	return OrderData{
		ID:           o.ID,
		BuyerID:      o.BuyerID,
		Status:       o.Status,
		TotalAmount:  o.TotalAmount,
		PurchaseDate: o.PurchaseDate,
	}
}
