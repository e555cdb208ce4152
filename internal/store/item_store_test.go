package store_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"marketplace/internal/domain/model"
	"marketplace/internal/store"
)

func newItemStore(items ...model.ItemData) *store.ItemStore {
	s := store.NewItemStore()
	s.RegisterAll(items)
	return s
}

func TestItemStore_All_SortedByID(t *testing.T) {
	s := newItemStore(
		model.ItemData{ID: "c", Name: "gamma"},
		model.ItemData{ID: "a", Name: "alpha"},
		model.ItemData{ID: "b", Name: "beta"},
	)

	all := s.All()

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, "a", all[0].ID)
	assert.Equal(t, "b", all[1].ID)
	assert.Equal(t, "c", all[2].ID)
}

func TestItemStore_Update(t *testing.T) {
	s := newItemStore(model.ItemData{ID: "i1", Name: "lamp", Price: 10})

	price := 12.5
	updated := s.Update(model.ItemPatch{ID: "i1", Price: &price})

	assert.NotNil(t, updated)
	assert.Equal(t, 12.5, s.Get("i1").Price)

	assert.Nil(t, s.Update(model.ItemPatch{ID: "missing", Price: &price}))
	assert.Nil(t, s.Update(model.ItemPatch{Price: &price}))
}

func TestItemStore_Alphabetical_CaseInsensitive(t *testing.T) {
	s := newItemStore(
		model.ItemData{ID: "1", Name: "banana"},
		model.ItemData{ID: "2", Name: "Apple"},
		model.ItemData{ID: "3", Name: "cherry"},
	)

	names := itemNames(s.Alphabetical())

	assert.Equal(t, []string{"Apple", "banana", "cherry"}, names)
}

func TestItemStore_Alphabetical_NonLetterNamesLast(t *testing.T) {
	s := newItemStore(
		model.ItemData{ID: "1", Name: "1-widget"},
		model.ItemData{ID: "2", Name: "zebra"},
		model.ItemData{ID: "3", Name: "Apple"},
		model.ItemData{ID: "4", Name: "#special"},
	)

	names := itemNames(s.Alphabetical())

	//英字始まりが先、記号・数字始まりは後ろでそれ同士の比較順
	assert.Equal(t, []string{"Apple", "zebra", "#special", "1-widget"}, names)
}

func TestItemStore_Alphabetical_InsertionOrderIndependent(t *testing.T) {
	data := []model.ItemData{
		{ID: "1", Name: "pear"},
		{ID: "2", Name: "Fig"},
		{ID: "3", Name: "apple"},
		{ID: "4", Name: "2nd-hand"},
	}

	forward := newItemStore(data...)

	reversed := store.NewItemStore()
	for i := len(data) - 1; i >= 0; i-- {
		reversed.Register(data[i])
	}

	assert.Equal(t, itemNames(forward.Alphabetical()), itemNames(reversed.Alphabetical()))
}

func TestItemStore_FindByName(t *testing.T) {
	s := newItemStore(
		model.ItemData{ID: "1", Name: "banana"},
		model.ItemData{ID: "2", Name: "Apple"},
		model.ItemData{ID: "3", Name: "cherry"},
		model.ItemData{ID: "4", Name: "date"},
	)

	found := s.FindByName("APPLE")
	assert.NotNil(t, found)
	assert.Equal(t, "2", found.ID)

	//端の要素も引ける
	assert.Equal(t, "1", s.FindByName("banana").ID)
	assert.Equal(t, "4", s.FindByName("date").ID)

	assert.Nil(t, s.FindByName("grape"))
}

func TestItemStore_FindByNameIn_AgreesWithFindByName(t *testing.T) {
	s := newItemStore(
		model.ItemData{ID: "1", Name: "banana"},
		model.ItemData{ID: "2", Name: "apple"},
		model.ItemData{ID: "3", Name: "cherry"},
	)

	sorted := s.Alphabetical()

	for _, name := range []string{"apple", "banana", "cherry", "missing"} {
		assert.Equal(t, s.FindByName(name), s.FindByNameIn(sorted, name))
	}
}

func TestItemStore_NewestAvailable(t *testing.T) {
	now := time.Now()
	s := newItemStore(
		model.ItemData{ID: "old", Name: "old", DateAdded: now.Add(-2 * time.Hour)},
		model.ItemData{ID: "new", Name: "new", DateAdded: now},
		model.ItemData{ID: "sold", Name: "sold", DateAdded: now.Add(-time.Hour), IsPurchased: true},
		model.ItemData{ID: "mid", Name: "mid", DateAdded: now.Add(-time.Hour)},
	)

	ids := itemIDs(s.NewestAvailable())

	assert.Equal(t, []string{"new", "mid", "old"}, ids)
}

func TestItemStore_FromOtherSellers(t *testing.T) {
	s := newItemStore(
		model.ItemData{ID: "mine", SellerID: "u1"},
		model.ItemData{ID: "theirs", SellerID: "u2"},
		model.ItemData{ID: "sold", SellerID: "u2", IsPurchased: true},
	)

	ids := itemIDs(s.FromOtherSellers("u1"))

	assert.Equal(t, []string{"theirs"}, ids)
}

func TestItemStore_SellerSoldAndUnsold(t *testing.T) {
	now := time.Now()
	s := newItemStore(
		model.ItemData{ID: "u1-sold", SellerID: "u1", IsPurchased: true, DateAdded: now},
		model.ItemData{ID: "u1-unsold-old", SellerID: "u1", DateAdded: now.Add(-time.Hour)},
		model.ItemData{ID: "u1-unsold-new", SellerID: "u1", DateAdded: now},
		model.ItemData{ID: "u2-unsold", SellerID: "u2", DateAdded: now},
	)

	assert.Equal(t, []string{"u1-unsold-new", "u1-unsold-old"}, itemIDs(s.SellerUnsold("u1")))
	assert.Equal(t, []string{"u1-sold"}, itemIDs(s.SellerSold("u1")))

	//1件も無ければnil
	assert.Nil(t, s.SellerSold("u2"))
	assert.Nil(t, s.SellerUnsold("unknown"))
}

func TestItemStore_MarkPurchased(t *testing.T) {
	basketID := "b1"
	s := newItemStore(
		model.ItemData{ID: "i1", BasketID: &basketID},
		model.ItemData{ID: "i2"},
	)

	marked := s.MarkPurchased([]string{"i1", "missing", "i2"}, "buyer", "order-1")

	//存在した商品だけが返る
	assert.Len(t, marked, 2)

	for _, it := range marked {
		assert.True(t, it.IsPurchased)
		assert.Equal(t, "buyer", *it.BuyerID)
		assert.Equal(t, "order-1", *it.OrderID)
		assert.Nil(t, it.BasketID)
	}
}

func TestItemStore_UpdateRating(t *testing.T) {
	s := newItemStore(model.ItemData{ID: "i1", AverageRating: 4, NumOfRatings: 1})

	updated := s.UpdateRating("i1", 2)

	assert.NotNil(t, updated)
	assert.InDelta(t, 3.0, updated.AverageRating, 1e-9)

	assert.Nil(t, s.UpdateRating("missing", 5))
}

func TestItemStore_Filter_ZeroCategoriesReturnsAll(t *testing.T) {
	s := newItemStore(
		model.ItemData{ID: "i1", EncodedCategories: "100000000000"},
		model.ItemData{ID: "i2"},
	)

	assert.Len(t, s.Filter(store.ItemFilter{}), 2)
	assert.Len(t, s.Filter(store.ItemFilter{Categories: "000000000000"}), 2)
	assert.Len(t, s.Filter(store.ItemFilter{Categories: "0,0,0,0,0,0,0,0,0,0,0,0"}), 2)
}

func TestItemStore_Filter_CategoriesAreOrMatched(t *testing.T) {
	s := newItemStore(
		model.ItemData{ID: "elec", EncodedCategories: "100000000000"},
		model.ItemData{ID: "food", EncodedCategories: "000000000001"},
		model.ItemData{ID: "both", EncodedCategories: "100000000001"},
		model.ItemData{ID: "none"},
	)

	ids := itemIDs(s.Filter(store.ItemFilter{Categories: "100000000001"}))

	assert.ElementsMatch(t, []string{"elec", "food", "both"}, ids)
}

func TestItemStore_Filter_PriceSort(t *testing.T) {
	s := newItemStore(
		model.ItemData{ID: "cheap", Price: 1},
		model.ItemData{ID: "dear", Price: 100},
		model.ItemData{ID: "mid", Price: 10},
	)

	assert.Equal(t, []string{"cheap", "mid", "dear"}, itemIDs(s.Filter(store.ItemFilter{Price: store.SortLowest})))
	assert.Equal(t, []string{"dear", "mid", "cheap"}, itemIDs(s.Filter(store.ItemFilter{Price: store.SortHighest})))
}

func TestItemStore_Filter_RatingSortAppliedLast(t *testing.T) {
	s := newItemStore(
		model.ItemData{ID: "i1", Price: 1, AverageRating: 2},
		model.ItemData{ID: "i2", Price: 2, AverageRating: 5},
		model.ItemData{ID: "i3", Price: 3, AverageRating: 4},
	)

	//価格と評価を両方指定したら評価の並びが勝つ
	ids := itemIDs(s.Filter(store.ItemFilter{Price: store.SortLowest, Rating: store.SortHighest}))

	assert.Equal(t, []string{"i2", "i3", "i1"}, ids)
}

func TestItemStore_HighestRated(t *testing.T) {
	s := newItemStore(
		model.ItemData{ID: "low", AverageRating: 2.9},
		model.ItemData{ID: "edge", AverageRating: 3},
		model.ItemData{ID: "top", AverageRating: 4.8},
	)

	ids := itemIDs(s.HighestRated())

	//3未満は除外、3ちょうどは含む
	assert.Equal(t, []string{"top", "edge"}, ids)
}

func TestItemStore_Trade(t *testing.T) {
	s := newItemStore(
		model.ItemData{ID: "i1", SellerID: "u1"},
		model.ItemData{ID: "i2", SellerID: "u2"},
	)

	traded := s.Trade("i1", "i2")

	assert.Len(t, traded, 2)
	assert.Equal(t, "u2", s.Get("i1").SellerID)
	assert.Equal(t, "u1", s.Get("i2").SellerID)
}

func TestItemStore_Trade_MissingItemChangesNothing(t *testing.T) {
	s := newItemStore(model.ItemData{ID: "i1", SellerID: "u1"})

	assert.Nil(t, s.Trade("i1", "missing"))
	assert.Equal(t, "u1", s.Get("i1").SellerID)
}

func itemNames(items []*model.Item) []string {
	names := make([]string, 0, len(items))
	for _, it := range items {
		names = append(names, it.Name)
	}
	return names
}

func itemIDs(items []*model.Item) []string {
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	return ids
}
