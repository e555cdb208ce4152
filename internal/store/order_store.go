package store

import (
	"time"

	"marketplace/internal/domain/model"
)

// OrderStore は注文を注文IDで一元管理するストア。
type OrderStore struct {
	orders map[string]*model.Order
}

// NewOrderStore はOrderStoreを作る。
func NewOrderStore() *OrderStore {
	return &OrderStore{orders: map[string]*model.Order{}}
}

// Add は注文を登録する。
func (s *OrderStore) Add(o *model.Order) {
	s.orders[o.ID] = o
}

// Get は注文IDで注文を引く。無ければnil。
func (s *OrderStore) Get(orderID string) *model.Order {
	return s.orders[orderID]
}

// Delete は注文を削除する（通常フローでは使わない管理用）。
func (s *OrderStore) Delete(orderID string) {
	delete(s.orders, orderID)
}

// All は全注文を注文IDで引けるmapで返す。
func (s *OrderStore) All() map[string]*model.Order {
	return s.orders
}

// Create は購入確定の注文を作って登録する。
// ステータスはPURCHASED、合計は商品価格から算出。
// 注文IDは商品側に採番済みのorderIdを引き継ぐ。
func (s *OrderStore) Create(buyerID string, items []*model.Item, now time.Time) *model.Order {
	orderID := ""
	if len(items) > 0 && items[0].OrderID != nil {
		orderID = *items[0].OrderID
	}

	o := model.NewOrder(buyerID, model.OrderStatusPurchased, now, nil, orderID, items)
	s.Add(o)

	return o
}

// ListByBuyer は買い手の注文を返す。
// 二次インデックスは持たず全件走査で拾う（小規模なら十分）。
func (s *OrderStore) ListByBuyer(buyerID string) []*model.Order {
	var orders []*model.Order

	for _, o := range s.orders {
		if o.BuyerID == buyerID {
			orders = append(orders, o)
		}
	}

	return orders
}

// RegisterAll は注文を登録し、orderIdを持つ商品を注文へ再結合する
// （起動時の流し込み用）。
func (s *OrderStore) RegisterAll(orders []model.OrderData, items []*model.Item) {
	for _, d := range orders {
		total := d.TotalAmount
		s.Add(model.NewOrder(d.BuyerID, d.Status, d.PurchaseDate, &total, d.ID, nil))
	}

	for _, it := range items {
		if it.OrderID == nil {
			continue
		}

		if o := s.Get(*it.OrderID); o != nil {
			o.AddItem(it)
		}
	}
}
