package store

import (
	"sort"
	"strings"

	"marketplace/internal/domain/model"
)

// 価格・評価の並び替え指定。
const (
	SortLowest  = "lowest"
	SortHighest = "highest"
)

// ItemFilter は商品の絞り込み条件。
// Categoriesはエンコード文字列で、ゼロ（または未指定）なら絞り込まない。
type ItemFilter struct {
	Categories string
	Price      string
	Rating     string
}

// ItemStore は商品を一元管理するストア。
// 共有シングルトンにはせず、合成ルートから注入して使う。
type ItemStore struct {
	items map[string]*model.Item
}

// NewItemStore はItemStoreを作る。
func NewItemStore() *ItemStore {
	return &ItemStore{items: map[string]*model.Item{}}
}

// Register はItemDataから商品を組み立てて登録する。
func (s *ItemStore) Register(d model.ItemData) *model.Item {
	it := model.NewItem(d)
	s.Add(it)
	return it
}

// RegisterAll は複数のItemDataをまとめて登録する（起動時の流し込み用）。
func (s *ItemStore) RegisterAll(items []model.ItemData) {
	for _, d := range items {
		s.Register(d)
	}
}

// Add は商品を登録する。
func (s *ItemStore) Add(it *model.Item) {
	s.items[it.ID] = it
}

// Get は商品IDで商品を引く。無ければnil。
func (s *ItemStore) Get(itemID string) *model.Item {
	return s.items[itemID]
}

// Delete は商品を削除する。
func (s *ItemStore) Delete(itemID string) {
	delete(s.items, itemID)
}

// Update は部分更新を適用する。商品が無ければnil。
func (s *ItemStore) Update(p model.ItemPatch) *model.Item {
	if p.ID == "" {
		return nil
	}

	it, ok := s.items[p.ID]
	if !ok {
		return nil
	}

	it.Apply(p)
	return it
}

// All は全商品をID昇順で返す。
// mapの列挙順に依存しないよう、呼び出しごとに同じ順序を保証する。
func (s *ItemStore) All() []*model.Item {
	items := make([]*model.Item, 0, len(s.items))
	for _, it := range s.items {
		items = append(items, it)
	}

	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })

	return items
}

// Len は商品数を返す。
func (s *ItemStore) Len() int {
	return len(s.items)
}

// GetByIDs はIDの並び順どおりに商品を返す。見つからないIDは飛ばす。
func (s *ItemStore) GetByIDs(itemIDs []string) []*model.Item {
	items := make([]*model.Item, 0, len(itemIDs))

	for _, id := range itemIDs {
		if it := s.Get(id); it != nil {
			items = append(items, it)
		}
	}

	return items
}

// MarkPurchased は商品を購入済みにする。
// 購入フラグを立て、買い手と注文のIDを入れ、バスケットのIDを外す。
// 存在した商品だけを返すので、入力より短い結果は部分的な失敗を意味する。
func (s *ItemStore) MarkPurchased(itemIDs []string, buyerID string, orderID string) []*model.Item {
	items := s.GetByIDs(itemIDs)

	for _, it := range items {
		it.IsPurchased = true
		it.BuyerID = &buyerID
		it.OrderID = &orderID
		it.BasketID = nil
	}

	return items
}

// Alphabetical は全商品を名前のアルファベット順で返す。
// 大文字小文字は区別せず、名前が英字以外で始まる商品は英字始まりの後ろに回す。
// 並び替えはマージソートで行う（安定・O(n log n)）。
func (s *ItemStore) Alphabetical() []*model.Item {
	return mergeSortItems(s.All())
}

// mergeSortItems は商品を再帰的に2分割し、整列済みの半分同士を結合する。
// 要素1つの配列が基底ケース。
func mergeSortItems(items []*model.Item) []*model.Item {
	if len(items) <= 1 {
		return items
	}

	middle := len(items) / 2

	return mergeItems(
		mergeSortItems(items[:middle]),
		mergeSortItems(items[middle:]),
	)
}

// mergeItems は整列済みの2つの配列を1つに結合する。
func mergeItems(left []*model.Item, right []*model.Item) []*model.Item {
	results := make([]*model.Item, 0, len(left)+len(right))
	leftIndex := 0
	rightIndex := 0

	for leftIndex < len(left) && rightIndex < len(right) {
		leftName := strings.ToLower(left[leftIndex].Name)
		rightName := strings.ToLower(right[rightIndex].Name)

		leftIsLetter := firstCharIsLetter(leftName)
		rightIsLetter := firstCharIsLetter(rightName)

		switch {
		// 英字始まりを常に先へ出す
		case leftIsLetter && !rightIsLetter:
			results = append(results, left[leftIndex])
			leftIndex++

		case !leftIsLetter && rightIsLetter:
			results = append(results, right[rightIndex])
			rightIndex++

		// どちらも英字（またはどちらも英字以外）なら名前で比較する。
		// 同名は左側を先に出して安定性を保つ。
		default:
			if leftName <= rightName {
				results = append(results, left[leftIndex])
				leftIndex++
			} else {
				results = append(results, right[rightIndex])
				rightIndex++
			}
		}
	}

	results = append(results, left[leftIndex:]...)
	results = append(results, right[rightIndex:]...)

	return results
}

// firstCharIsLetter は先頭文字が英字かを返す。
func firstCharIsLetter(lowered string) bool {
	if lowered == "" {
		return false
	}
	c := lowered[0]
	return c >= 'a' && c <= 'z'
}

// FindByName は名前の完全一致（大文字小文字は無視）で商品を探す。
// 毎回マージソートし直した配列に対して二分探索する。
// 繰り返し検索する場合はAlphabetical()の結果を持ち回ってFindByNameInを使う。
// 見つからなければnil（エラーにはしない）。
func (s *ItemStore) FindByName(name string) *model.Item {
	return s.FindByNameIn(s.Alphabetical(), name)
}

// FindByNameIn は整列済みの配列に対して二分探索する。
// 中央の商品と比較し、探している名前が後ろなら右半分、前なら左半分に絞っていく。
func (s *ItemStore) FindByNameIn(sorted []*model.Item, name string) *model.Item {
	target := strings.ToLower(name)

	low := 0
	high := len(sorted) - 1

	for low <= high {
		mid := (low + high) / 2
		midName := strings.ToLower(sorted[mid].Name)

		switch {
		case midName == target:
			return sorted[mid]

		case midName < target:
			low = mid + 1

		default:
			high = mid - 1
		}
	}

	return nil
}

// NewestAvailable は未購入の商品を追加日の新しい順で返す。
func (s *ItemStore) NewestAvailable() []*model.Item {
	items := s.All()

	available := make([]*model.Item, 0, len(items))
	for _, it := range items {
		if !it.IsPurchased {
			available = append(available, it)
		}
	}

	sort.SliceStable(available, func(i, j int) bool {
		return available[i].DateAdded.After(available[j].DateAdded)
	})

	return available
}

// FromOtherSellers は指定ユーザー以外が出品している未購入の商品を返す。
// レコメンドの対象カタログになる。
func (s *ItemStore) FromOtherSellers(userID string) []*model.Item {
	items := s.All()

	others := make([]*model.Item, 0, len(items))
	for _, it := range items {
		if it.SellerID != userID && !it.IsPurchased {
			others = append(others, it)
		}
	}

	return others
}

// SellerUnsold は出品者の未売却の商品を追加日の新しい順で返す。
// 1件も無ければnil（出品者が未知の場合と区別しない）。
func (s *ItemStore) SellerUnsold(userID string) []*model.Item {
	return s.sellerItems(userID, false)
}

// SellerSold は出品者の売却済みの商品を追加日の新しい順で返す。
// 1件も無ければnil。
func (s *ItemStore) SellerSold(userID string) []*model.Item {
	return s.sellerItems(userID, true)
}

func (s *ItemStore) sellerItems(userID string, purchased bool) []*model.Item {
	var sellerItems []*model.Item

	for _, it := range s.All() {
		if it.SellerID == userID && it.IsPurchased == purchased {
			sellerItems = append(sellerItems, it)
		}
	}

	if len(sellerItems) == 0 {
		return nil
	}

	sort.SliceStable(sellerItems, func(i, j int) bool {
		return sellerItems[i].DateAdded.After(sellerItems[j].DateAdded)
	})

	return sellerItems
}

// UpdateRating は商品の評価平均を更新する。商品が無ければnil。
// 評価値の範囲チェック（1〜5など）はこの層では行わない。
func (s *ItemStore) UpdateRating(itemID string, rating float64) *model.Item {
	it, ok := s.items[itemID]
	if !ok {
		return nil
	}

	it.UpdateRating(rating)
	return it
}

// Filter は条件に合う商品を返す。
// カテゴリはOR条件（指定カテゴリのどれかを持てば一致）。ゼロ指定は絞り込みなし。
// 並び替えはカテゴリ絞り込みの後に価格→評価の順で適用するため、
// 両方指定された場合は評価の並びが最終結果になる。
func (s *ItemStore) Filter(f ItemFilter) []*model.Item {
	items := s.All()
	var filtered []*model.Item

	if model.IsZeroEncodedCategories(f.Categories) {
		filtered = items
	} else {
		chosen := model.DecodeCategories(f.Categories)

		for _, it := range items {
			for c := range chosen {
				if it.Categories().Has(c) {
					filtered = append(filtered, it)
					break
				}
			}
		}
	}

	switch f.Price {
	case SortHighest:
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Price > filtered[j].Price })
	case SortLowest:
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Price < filtered[j].Price })
	}

	switch f.Rating {
	case SortHighest:
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].AverageRating > filtered[j].AverageRating })
	case SortLowest:
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].AverageRating < filtered[j].AverageRating })
	}

	return filtered
}

// HighestRated は平均評価3以上の商品を評価の高い順で返す。
// 閾値未満の商品は後ろに回すのではなく除外する。
func (s *ItemStore) HighestRated() []*model.Item {
	var rated []*model.Item

	for _, it := range s.All() {
		if it.AverageRating >= 3 {
			rated = append(rated, it)
		}
	}

	sort.SliceStable(rated, func(i, j int) bool {
		return rated[i].AverageRating > rated[j].AverageRating
	})

	return rated
}

// Trade は2つの商品の出品者を入れ替える。
// どちらかが存在しなければ何も変更せず空を返す。
// 自己取引や購入済み商品のチェックは呼び出し側（コーディネーター）の責務。
func (s *ItemStore) Trade(itemID1 string, itemID2 string) []*model.Item {
	it1 := s.Get(itemID1)
	it2 := s.Get(itemID2)

	if it1 == nil || it2 == nil {
		return nil
	}

	it1.SellerID, it2.SellerID = it2.SellerID, it1.SellerID

	return []*model.Item{it1, it2}
}
