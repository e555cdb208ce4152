package model

import (
	"time"

	"github.com/google/uuid"
)

// マーケットプレイスのユーザー。
// 常にバスケットを1つだけ持つ（クリア時は丸ごと作り直す）。
type User struct {
	ID       string
	Email    string
	Password string // ハッシュ済みの資格情報。平文はここに入れない。
	Address  string

	interested CategorySet
	basket     *Basket
	orders     map[string]*Order
}

// UserData はユーザーの永続化・復元で使うフラットな形。
type UserData struct {
	ID                          string
	Email                       string
	Password                    string
	Address                     string
	EncodedInterestedCategories string
}

// UserPatch は部分更新の入力。nilのフィールドは変更しない。
// Passwordはハッシュ済みのものを渡す。
type UserPatch struct {
	ID                          string
	Email                       *string
	Password                    *string
	Address                     *string
	EncodedInterestedCategories *string
}

// NewUser はUserDataからユーザーを組み立てる。IDが空なら採番する。
// バスケットもここで一緒に作られる。
func NewUser(d UserData) *User {
	id := d.ID
	if id == "" {
		id = uuid.NewString()
	}

	return &User{
		ID:         id,
		Email:      d.Email,
		Password:   d.Password,
		Address:    d.Address,
		interested: DecodeCategories(d.EncodedInterestedCategories),
		basket:     NewBasket(id, ""),
		orders:     map[string]*Order{},
	}
}

// Basket はユーザーのバスケットを返す。
func (u *User) Basket() *Basket {
	return u.basket
}

// SetBasket はバスケットを差し替える（DBからの復元時に使う）。
func (u *User) SetBasket(b *Basket) {
	u.basket = b
}

// ClearBasket はバスケットを新品に置き換える。
// 戻り値は新しいバスケット。
func (u *User) ClearBasket() *Basket {
	u.basket = NewBasket(u.ID, "")
	return u.basket
}

// Orders はユーザーの注文を注文IDで引けるmapで返す。
func (u *User) Orders() map[string]*Order {
	return u.orders
}

// AddOrder は注文をユーザーに追加する。
func (u *User) AddOrder(o *Order) *Order {
	u.orders[o.ID] = o
	return o
}

// MostRecentOrder は購入日が最も新しい注文を返す。注文が無ければnil。
func (u *User) MostRecentOrder() *Order {
	var newest *Order
	var newestDate time.Time

	for _, o := range u.orders {
		if newest == nil || o.PurchaseDate.After(newestDate) {
			newest = o
			newestDate = o.PurchaseDate
		}
	}

	return newest
}

// ItemsFromOrders は全注文に含まれる商品をまとめて返す。
func (u *User) ItemsFromOrders() []*Item {
	var items []*Item
	for _, o := range u.orders {
		items = append(items, o.Items()...)
	}
	return items
}

// InterestedCategories は興味カテゴリの集合を返す。
func (u *User) InterestedCategories() CategorySet {
	return u.interested
}

// AddInterestedCategory は興味カテゴリを追加する。
func (u *User) AddInterestedCategory(c Category) {
	u.interested.Add(c)
}

// EncodedInterestedCategories は興味カテゴリをエンコード文字列で返す。
func (u *User) EncodedInterestedCategories() string {
	return EncodeCategories(u.interested)
}

// Apply は部分更新を適用する。
func (u *User) Apply(p UserPatch) {
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Password != nil {
		u.Password = *p.Password
	}
	if p.Address != nil {
		u.Address = *p.Address
	}
	if p.EncodedInterestedCategories != nil {
		u.interested = DecodeCategories(*p.EncodedInterestedCategories)
	}
}

// Data は永続化用のフラットな形に変換する。
func (u *User) Data() UserData {
	return UserData{
		ID:                          u.ID,
		Email:                       u.Email,
		Password:                    u.Password,
		Address:                     u.Address,
		EncodedInterestedCategories: u.EncodedInterestedCategories(),
	}
}
