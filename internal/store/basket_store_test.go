package store_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"marketplace/internal/domain/model"
	"marketplace/internal/store"
)

func TestBasketStore_AddLine_UpsertsSameItem(t *testing.T) {
	s := store.NewBasketStore()
	s.Register(model.BasketData{ID: "b1", UserID: "u1"})

	now := time.Now()
	later := now.Add(time.Minute)

	_, ok := s.AddLine("b1", "i1", 1, now)
	assert.True(t, ok)

	line, ok := s.AddLine("b1", "i1", 3, later)
	assert.True(t, ok)
	assert.Equal(t, 3, line.Quantity)
	assert.Equal(t, later, line.DateAdded)

	assert.Equal(t, 1, s.Get("b1").Len())
}

func TestBasketStore_AddLine_UnknownBasket(t *testing.T) {
	s := store.NewBasketStore()

	_, ok := s.AddLine("missing", "i1", 1, time.Now())

	assert.False(t, ok)
}

func TestBasketStore_UpdateLine(t *testing.T) {
	s := store.NewBasketStore()
	s.Register(model.BasketData{ID: "b1", UserID: "u1"})
	s.AddLine("b1", "i1", 1, time.Now())

	line, ok := s.UpdateLine(model.BasketLine{BasketID: "b1", ItemID: "i1", Quantity: 5})
	assert.True(t, ok)
	assert.Equal(t, 5, line.Quantity)

	//無い明細は更新しない
	_, ok = s.UpdateLine(model.BasketLine{BasketID: "b1", ItemID: "missing", Quantity: 5})
	assert.False(t, ok)
}

func TestBasketStore_RemoveLine(t *testing.T) {
	s := store.NewBasketStore()
	s.Register(model.BasketData{ID: "b1", UserID: "u1"})
	s.AddLine("b1", "i1", 1, time.Now())

	s.RemoveLine("b1", "i1")

	assert.Equal(t, 0, s.Get("b1").Len())
}

func TestBasketStore_RegisterAll_ReattachesLines(t *testing.T) {
	s := store.NewBasketStore()

	s.RegisterAll(
		[]model.BasketData{{ID: "b1", UserID: "u1"}},
		[]model.BasketLine{
			{BasketID: "b1", ItemID: "i1", Quantity: 2},
			{BasketID: "orphan", ItemID: "i2", Quantity: 1},
		},
	)

	b := s.Get("b1")
	assert.Equal(t, 1, b.Len())

	line, ok := b.Line("i1")
	assert.True(t, ok)
	assert.Equal(t, 2, line.Quantity)
}
