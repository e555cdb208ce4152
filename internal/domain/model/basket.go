package model

import (
	"time"

	"github.com/google/uuid"
)

// BasketLine はバスケット内の1商品分の明細。
type BasketLine struct {
	BasketID  string
	ItemID    string
	Quantity  int
	DateAdded time.Time
}

// ユーザーごとのバスケット。明細は商品IDをキーに持つ。
type Basket struct {
	ID     string
	UserID string

	lines map[string]BasketLine
}

// BasketData はバスケットの永続化・復元で使うフラットな形。
type BasketData struct {
	ID     string
	UserID string
}

// NewBasket はバスケットを作る。basketIDが空なら採番する。
func NewBasket(userID string, basketID string) *Basket {
	if basketID == "" {
		basketID = uuid.NewString()
	}

	return &Basket{
		ID:     basketID,
		UserID: userID,
		lines:  map[string]BasketLine{},
	}
}

// AddLine は明細を追加する。同じ商品IDはupsert（数量と日付を置き換え）。
func (b *Basket) AddLine(itemID string, quantity int, date time.Time) BasketLine {
	line := BasketLine{
		BasketID:  b.ID,
		ItemID:    itemID,
		Quantity:  quantity,
		DateAdded: date,
	}
	b.lines[itemID] = line
	return line
}

// UpdateLine は既存明細の数量と日付を更新する。明細が無ければfalse。
func (b *Basket) UpdateLine(line BasketLine) (BasketLine, bool) {
	existing, ok := b.lines[line.ItemID]
	if !ok {
		return BasketLine{}, false
	}

	existing.Quantity = line.Quantity
	existing.DateAdded = line.DateAdded
	b.lines[line.ItemID] = existing

	return existing, true
}

// RemoveLine は明細を削除する。
func (b *Basket) RemoveLine(itemID string) {
	delete(b.lines, itemID)
}

// Line は商品IDで明細を引く。
func (b *Basket) Line(itemID string) (BasketLine, bool) {
	line, ok := b.lines[itemID]
	return line, ok
}

// Lines は全明細を返す。
func (b *Basket) Lines() []BasketLine {
	lines := make([]BasketLine, 0, len(b.lines))
	for _, line := range b.lines {
		lines = append(lines, line)
	}
	return lines
}

// Len は明細数を返す。
func (b *Basket) Len() int {
	return len(b.lines)
}

// Data は永続化用のフラットな形に変換する。
func (b *Basket) Data() BasketData {
	return BasketData{ID: b.ID, UserID: b.UserID}
}
