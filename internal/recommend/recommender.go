// Package recommend はカテゴリのone-hotベクトルとコサイン類似度で
// ユーザーに近い商品を選ぶコンテンツベースのレコメンダーを提供する。
package recommend

import (
	"math"
	"sort"

	"marketplace/internal/domain/model"
)

// DefaultK は推薦件数の既定値。
const DefaultK = 5

// Recommender は1ユーザー分のレコメンダー。
// 可変な状態は対象カタログ（そのユーザーの出品を除いた商品群）だけで、
// カタログが変わったら UpdateCatalog を呼び直す必要がある（自動購読はしない）。
type Recommender struct {
	user    *model.User
	catalog []*model.Item
}

// New はレコメンダーを作る。
func New(user *model.User, catalog []*model.Item) *Recommender {
	return &Recommender{user: user, catalog: catalog}
}

// UpdateCatalog は対象カタログを差し替える。
func (r *Recommender) UpdateCatalog(items []*model.Item) {
	r.catalog = items
}

// UserVector はカテゴリ集合をone-hotベクトルへ変換する。
// 添字はカテゴリの固定順リスト上の位置。
func (r *Recommender) UserVector(categories model.CategorySet) []float64 {
	v := make([]float64, len(model.Categories))

	for c := range categories {
		if i := model.CategoryIndex(c); i != -1 {
			v[i] = 1
		}
	}

	return v
}

// ItemVector は商品のカテゴリ集合に同じエンコードを適用する。
func (r *Recommender) ItemVector(it *model.Item) []float64 {
	return r.UserVector(it.Categories())
}

// Similarity は2つのベクトルのコサイン類似度を返す。
// cos(θ) = 内積 ÷ (大きさの積)。1に近いほど向きが揃っている。
// どちらかの大きさが0（カテゴリなし）のときは0除算を避けて0を返し、
// 「一致なし」として扱う。
func (r *Recommender) Similarity(v1 []float64, v2 []float64) float64 {
	dot := 0.0
	for i := range v1 {
		dot += v1[i] * v2[i]
	}

	mag1 := magnitude(v1)
	mag2 := magnitude(v2)

	if mag1 == 0 || mag2 == 0 {
		return 0
	}

	return dot / (mag1 * mag2)
}

// magnitude はベクトルの大きさ（各要素の2乗和の平方根）を返す。
func magnitude(v []float64) float64 {
	sum := 0.0
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// PurchasedCategories はユーザーが購入した商品のカテゴリを
// エンコード文字列で返す。
func (r *Recommender) PurchasedCategories() string {
	set := model.CategorySet{}

	for _, it := range r.user.ItemsFromOrders() {
		for c := range it.Categories() {
			set.Add(c)
		}
	}

	return model.EncodeCategories(set)
}

// NewestOrderCategories は最新の注文に含まれる商品のカテゴリを
// エンコード文字列で返す。注文が無ければ全ゼロ。
func (r *Recommender) NewestOrderCategories() string {
	set := model.CategorySet{}

	newest := r.user.MostRecentOrder()
	if newest == nil {
		return model.EncodeCategories(set)
	}

	for _, it := range newest.Items() {
		for c := range it.Categories() {
			set.Add(c)
		}
	}

	return model.EncodeCategories(set)
}

// Recommend は類似度の高い順に最大k件の商品を返す。
// 採点の前に購入履歴のカテゴリを興味カテゴリへ畳み込むので、
// 明示的に興味を登録していなくても過去の購入が推薦に効く。
// 同点はカタログの並び順を保つ（安定ソート）ことで決定的にする。
func (r *Recommender) Recommend(k int) []*model.Item {
	if k <= 0 {
		k = DefaultK
	}

	r.foldOrderedCategories()

	userVector := r.UserVector(r.user.InterestedCategories())

	type scored struct {
		item  *model.Item
		score float64
	}

	scores := make([]scored, 0, len(r.catalog))
	for _, it := range r.catalog {
		scores = append(scores, scored{
			item:  it,
			score: r.Similarity(userVector, r.ItemVector(it)),
		})
	}

	sort.SliceStable(scores, func(i, j int) bool { return scores[i].score > scores[j].score })

	if k > len(scores) {
		k = len(scores)
	}

	recommended := make([]*model.Item, 0, k)
	seen := map[string]struct{}{}

	for _, sc := range scores[:k] {
		if _, ok := seen[sc.item.ID]; ok {
			continue
		}
		seen[sc.item.ID] = struct{}{}
		recommended = append(recommended, sc.item)
	}

	return recommended
}

// foldOrderedCategories は注文済み商品のカテゴリを
// ユーザーの興味カテゴリへ追加する。
func (r *Recommender) foldOrderedCategories() {
	for _, it := range r.user.ItemsFromOrders() {
		for c := range it.Categories() {
			r.user.AddInterestedCategory(c)
		}
	}
}
