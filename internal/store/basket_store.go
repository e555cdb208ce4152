package store

import (
	"time"

	"marketplace/internal/domain/model"
)

// BasketStore はバスケットをバスケットIDで一元管理するストア。
// 明細が指す商品がまだ存在するか・未購入かはここでは確認しない。
// その確認はコーディネーターのポリシーで行う。
type BasketStore struct {
	baskets map[string]*model.Basket
}

// NewBasketStore はBasketStoreを作る。
func NewBasketStore() *BasketStore {
	return &BasketStore{baskets: map[string]*model.Basket{}}
}

// Add はバスケットを登録する。
func (s *BasketStore) Add(b *model.Basket) {
	s.baskets[b.ID] = b
}

// Get はバスケットIDでバスケットを引く。無ければnil。
func (s *BasketStore) Get(basketID string) *model.Basket {
	return s.baskets[basketID]
}

// Delete はバスケットを削除する。
func (s *BasketStore) Delete(basketID string) {
	delete(s.baskets, basketID)
}

// All は全バスケットをIDで引けるmapで返す。
func (s *BasketStore) All() map[string]*model.Basket {
	return s.baskets
}

// Register はBasketDataからバスケットを組み立てて登録する。
func (s *BasketStore) Register(d model.BasketData) *model.Basket {
	b := model.NewBasket(d.UserID, d.ID)
	s.Add(b)
	return b
}

// RegisterAll はバスケットと明細をまとめて登録する（起動時の流し込み用）。
func (s *BasketStore) RegisterAll(baskets []model.BasketData, lines []model.BasketLine) {
	for _, d := range baskets {
		s.Register(d)
	}

	for _, line := range lines {
		if b := s.Get(line.BasketID); b != nil {
			b.AddLine(line.ItemID, line.Quantity, line.DateAdded)
		}
	}
}

// AddLine は明細を追加する（同じ商品IDはupsert）。バスケットが無ければfalse。
func (s *BasketStore) AddLine(basketID string, itemID string, quantity int, date time.Time) (model.BasketLine, bool) {
	b := s.Get(basketID)
	if b == nil {
		return model.BasketLine{}, false
	}

	return b.AddLine(itemID, quantity, date), true
}

// UpdateLine は既存明細を更新する。バスケットか明細が無ければfalse。
func (s *BasketStore) UpdateLine(line model.BasketLine) (model.BasketLine, bool) {
	b := s.Get(line.BasketID)
	if b == nil {
		return model.BasketLine{}, false
	}

	return b.UpdateLine(line)
}

// RemoveLine は明細を削除する。
func (s *BasketStore) RemoveLine(basketID string, itemID string) {
	if b := s.Get(basketID); b != nil {
		b.RemoveLine(itemID)
	}
}
