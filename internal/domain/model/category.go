package model

import "strings"

// 商品カテゴリ。
type Category string

const (
	CategoryElectronics Category = "ELECTRONICS"
	CategoryClothing    Category = "CLOTHING"
	CategorySports      Category = "SPORTS"
	CategoryGaming      Category = "GAMING"
	CategoryPC          Category = "PC"
	CategoryBooks       Category = "BOOKS"
	CategoryMovies      Category = "MOVIES"
	CategoryMusic       Category = "MUSIC"
	CategoryGarden      Category = "GARDEN"
	CategoryPets        Category = "PETS"
	CategoryPhones      Category = "PHONES"
	CategoryFood        Category = "FOOD"
)

// Categories は全カテゴリの固定順リスト。
// 並び順がエンコード文字列のビット位置とベクトルの添字になるため、
// mapではなくスライスで持つ（添字の安定性を保証する）。
var Categories = []Category{
	CategoryElectronics,
	CategoryClothing,
	CategorySports,
	CategoryGaming,
	CategoryPC,
	CategoryBooks,
	CategoryMovies,
	CategoryMusic,
	CategoryGarden,
	CategoryPets,
	CategoryPhones,
	CategoryFood,
}

// CategorySet はカテゴリの集合。
type CategorySet map[Category]struct{}

// Has はカテゴリが含まれるかを返す。
func (s CategorySet) Has(c Category) bool {
	_, ok := s[c]
	return ok
}

// Add はカテゴリを追加する。
func (s CategorySet) Add(c Category) {
	s[c] = struct{}{}
}

// CategoryIndex はカテゴリの固定順リスト上の位置を返す。無ければ-1。
func CategoryIndex(c Category) int {
	for i, cat := range Categories {
		if cat == c {
			return i
		}
	}
	return -1
}

// EncodedCategoriesZero は「カテゴリ指定なし」を表す全ゼロのエンコード文字列。
func EncodedCategoriesZero() string {
	return strings.Repeat("0", len(Categories))
}

// DecodeCategories は "010..." 形式のエンコード文字列をカテゴリ集合へ変換する。
// 旧形式のカンマ区切り（"0,1,0,..."）も受け付ける。
func DecodeCategories(encoded string) CategorySet {
	set := CategorySet{}

	if encoded == "" {
		return set
	}

	// 長さが合わない場合はカンマ区切りとみなして詰める
	if len(encoded) != len(Categories) {
		encoded = strings.ReplaceAll(encoded, ",", "")
	}

	for i := 0; i < len(encoded) && i < len(Categories); i++ {
		if encoded[i] == '1' {
			set.Add(Categories[i])
		}
	}

	return set
}

// EncodeCategories はカテゴリ集合を固定長の "0"/"1" 文字列へ変換する。
func EncodeCategories(set CategorySet) string {
	var b strings.Builder
	b.Grow(len(Categories))

	for _, c := range Categories {
		if set.Has(c) {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}

	return b.String()
}

// IsZeroEncodedCategories は「カテゴリ指定なし」かを判定する。
// カンマ区切りの旧形式もゼロ扱いにする。
func IsZeroEncodedCategories(encoded string) bool {
	if encoded == "" {
		return true
	}
	encoded = strings.ReplaceAll(encoded, ",", "")
	return encoded == EncodedCategoriesZero()
}
