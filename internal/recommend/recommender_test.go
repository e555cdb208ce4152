package recommend_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"marketplace/internal/domain/model"
	"marketplace/internal/recommend"
)

func newUserWithInterests(encoded string) *model.User {
	return model.NewUser(model.UserData{
		ID:                          "u1",
		Email:                       "a@example.com",
		EncodedInterestedCategories: encoded,
	})
}

func TestRecommender_UserVector_OneHot(t *testing.T) {
	r := recommend.New(newUserWithInterests(""), nil)

	v := r.UserVector(model.DecodeCategories("100000000001"))

	assert.Len(t, v, 12)
	assert.Equal(t, 1.0, v[0])
	assert.Equal(t, 1.0, v[11])
	assert.Equal(t, 0.0, v[5])
}

func TestRecommender_Similarity(t *testing.T) {
	r := recommend.New(newUserWithInterests(""), nil)

	v1 := []float64{1, 0, 1, 0}
	v2 := []float64{0, 1, 0, 1}

	//同じ向きなら1、直交なら0
	assert.InDelta(t, 1.0, r.Similarity(v1, v1), 1e-9)
	assert.InDelta(t, 0.0, r.Similarity(v1, v2), 1e-9)
}

func TestRecommender_Similarity_ZeroVector(t *testing.T) {
	r := recommend.New(newUserWithInterests(""), nil)

	zero := []float64{0, 0, 0}

	//大きさ0は0除算せず「一致なし」
	assert.Equal(t, 0.0, r.Similarity(zero, []float64{1, 1, 1}))
	assert.Equal(t, 0.0, r.Similarity(zero, zero))
}

func TestRecommender_Recommend_RanksByCategoryOverlap(t *testing.T) {
	user := newUserWithInterests("110000000000")

	catalog := []*model.Item{
		model.NewItem(model.ItemData{ID: "none", Name: "plain"}),
		model.NewItem(model.ItemData{ID: "exact", Name: "match", EncodedCategories: "110000000000"}),
		model.NewItem(model.ItemData{ID: "partial", Name: "half", EncodedCategories: "100000000000"}),
		model.NewItem(model.ItemData{ID: "off", Name: "other", EncodedCategories: "000000000001"}),
	}

	got := recommend.New(user, catalog).Recommend(2)

	assert.Len(t, got, 2)
	assert.Equal(t, "exact", got[0].ID)
	assert.Equal(t, "partial", got[1].ID)
}

func TestRecommender_Recommend_DefaultK(t *testing.T) {
	user := newUserWithInterests("100000000000")

	catalog := make([]*model.Item, 0, 8)
	for _, id := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		catalog = append(catalog, model.NewItem(model.ItemData{
			ID:                id,
			Name:              id,
			EncodedCategories: "100000000000",
		}))
	}

	got := recommend.New(user, catalog).Recommend(0)

	assert.Len(t, got, recommend.DefaultK)
}

func TestRecommender_Recommend_TiesKeepCatalogOrder(t *testing.T) {
	user := newUserWithInterests("100000000000")

	catalog := []*model.Item{
		model.NewItem(model.ItemData{ID: "first", EncodedCategories: "100000000000"}),
		model.NewItem(model.ItemData{ID: "second", EncodedCategories: "100000000000"}),
		model.NewItem(model.ItemData{ID: "third", EncodedCategories: "100000000000"}),
	}

	got := recommend.New(user, catalog).Recommend(3)

	assert.Equal(t, []string{"first", "second", "third"}, []string{got[0].ID, got[1].ID, got[2].ID})
}

func TestRecommender_Recommend_FoldsPurchaseHistoryIntoInterests(t *testing.T) {
	user := newUserWithInterests("")

	purchased := model.NewItem(model.ItemData{ID: "bought", EncodedCategories: "000001000000"})
	user.AddOrder(model.NewOrder("u1", model.OrderStatusPurchased, time.Now(), nil, "o1", []*model.Item{purchased}))

	catalog := []*model.Item{
		model.NewItem(model.ItemData{ID: "book", EncodedCategories: "000001000000"}),
		model.NewItem(model.ItemData{ID: "food", EncodedCategories: "000000000001"}),
	}

	got := recommend.New(user, catalog).Recommend(1)

	assert.Len(t, got, 1)
	assert.Equal(t, "book", got[0].ID)
	//履歴のカテゴリが興味へ畳み込まれている
	assert.True(t, user.InterestedCategories().Has(model.CategoryBooks))
}

func TestRecommender_PurchasedCategories(t *testing.T) {
	user := newUserWithInterests("")

	it1 := model.NewItem(model.ItemData{ID: "i1", EncodedCategories: "100000000000"})
	it2 := model.NewItem(model.ItemData{ID: "i2", EncodedCategories: "000000000001"})
	user.AddOrder(model.NewOrder("u1", model.OrderStatusPurchased, time.Now(), nil, "o1", []*model.Item{it1}))
	user.AddOrder(model.NewOrder("u1", model.OrderStatusPurchased, time.Now().Add(time.Hour), nil, "o2", []*model.Item{it2}))

	r := recommend.New(user, nil)

	assert.Equal(t, "100000000001", r.PurchasedCategories())
	assert.Equal(t, "000000000001", r.NewestOrderCategories())
}

func TestRecommender_NewestOrderCategories_NoOrders(t *testing.T) {
	r := recommend.New(newUserWithInterests(""), nil)

	assert.Equal(t, "000000000000", r.NewestOrderCategories())
}
