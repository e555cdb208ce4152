package store_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"marketplace/internal/domain/model"
	"marketplace/internal/store"
)

func TestOrderStore_Create_InheritsOrderIDFromItems(t *testing.T) {
	s := store.NewOrderStore()

	orderID := "o1"
	items := []*model.Item{
		model.NewItem(model.ItemData{ID: "i1", Price: 10, OrderID: &orderID}),
		model.NewItem(model.ItemData{ID: "i2", Price: 5, OrderID: &orderID}),
	}

	o := s.Create("u1", items, time.Now())

	assert.Equal(t, "o1", o.ID)
	assert.Equal(t, model.OrderStatusPurchased, o.Status)
	assert.Equal(t, 15.0, o.TotalAmount)
	assert.Equal(t, o, s.Get("o1"))
}

func TestOrderStore_ListByBuyer(t *testing.T) {
	s := store.NewOrderStore()

	s.Add(model.NewOrder("u1", model.OrderStatusPurchased, time.Now(), nil, "o1", nil))
	s.Add(model.NewOrder("u2", model.OrderStatusPurchased, time.Now(), nil, "o2", nil))
	s.Add(model.NewOrder("u1", model.OrderStatusDelivered, time.Now(), nil, "o3", nil))

	assert.Len(t, s.ListByBuyer("u1"), 2)
	assert.Len(t, s.ListByBuyer("u2"), 1)
	assert.Nil(t, s.ListByBuyer("nobody"))
}

func TestOrderStore_RegisterAll_ReattachesItems(t *testing.T) {
	s := store.NewOrderStore()

	orderID := "o1"
	items := []*model.Item{
		model.NewItem(model.ItemData{ID: "sold", Price: 10, OrderID: &orderID}),
		model.NewItem(model.ItemData{ID: "open", Price: 5}),
	}

	s.RegisterAll([]model.OrderData{
		{ID: "o1", BuyerID: "u1", Status: model.OrderStatusPurchased, TotalAmount: 10, PurchaseDate: time.Now()},
	}, items)

	o := s.Get("o1")
	assert.NotNil(t, o)
	assert.Len(t, o.Items(), 1)
	//保存済みの合計は再計算しない
	assert.Equal(t, 10.0, o.TotalAmount)
}
