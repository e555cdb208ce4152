// Package commerce はメモリ上のコマース状態を束ねる合成ルートを提供する。
// 外側の層（HTTPなど）はストアを直接触らず、必ずCoordinator経由で操作する。
package commerce

import (
	"context"
	"sync"
	"time"

	"marketplace/internal/domain/model"
	"marketplace/internal/recommend"
	"marketplace/internal/repository"
	"marketplace/internal/store"
)

// Clock は現在時刻の注入口。
type Clock interface {
	Now() time.Time
}

// BasketPolicy はバスケット明細を追加するときの検証ポリシー。
type BasketPolicy int

const (
	// ValidateNone は明細が指す商品を確認しない。
	// 商品の有効性は呼び出し元で確認済みという前提の挙動。
	ValidateNone BasketPolicy = iota

	// ValidateAvailable は商品が存在し未購入であることを要求する。
	ValidateAvailable
)

// Coordinator は4つのストアとレコメンダーのキャッシュを所有し、
// ストア横断の操作を順序付ける唯一の窓口。
//
// 排他はグラフ全体を1つのRWMutexで守る（書き込みは直列、読み取りは並行）。
// チェックアウトのように複数ストアを1つの論理トランザクションで触る操作があるため、
// エンティティ単位のロックでは途中状態が見えてしまう。
//
// 永続化はライトビハインド：メモリ上の変更を確定してからアダプターを呼ぶ。
// アダプターが失敗してもメモリ上の状態は巻き戻さず、エラーはそのまま返す。
type Coordinator struct {
	mu sync.RWMutex

	users   *store.UserStore
	items   *store.ItemStore
	orders  *store.OrderStore
	baskets *store.BasketStore

	recommenders map[string]*recommend.Recommender

	persistence repository.PersistenceAdapter
	policy      BasketPolicy
	clock       Clock
}

// NewCoordinator はCoordinatorを作る。
func NewCoordinator(persistence repository.PersistenceAdapter, verifier repository.CredentialVerifier, policy BasketPolicy, clock Clock) *Coordinator {
	return &Coordinator{
		users:        store.NewUserStore(verifier),
		items:        store.NewItemStore(),
		orders:       store.NewOrderStore(),
		baskets:      store.NewBasketStore(),
		recommenders: map[string]*recommend.Recommender{},
		persistence:  persistence,
		policy:       policy,
		clock:        clock,
	}
}

// LoadState は永続化アダプターから全データを読み込み、各ストアへ流し込む。
// 商品→注文→バスケット→ユーザーの順で登録し、最後に参照を結び付ける。
func (c *Coordinator) LoadState(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap, err := c.persistence.LoadAll(ctx)
	if err != nil {
		return err
	}

	c.items.RegisterAll(snap.Items)
	c.orders.RegisterAll(snap.Orders, c.items.All())
	c.baskets.RegisterAll(snap.Baskets, snap.BasketLines)

	if err := c.users.RegisterAll(snap.Users, c.orders.All(), c.baskets.All()); err != nil {
		return err
	}

	for id, u := range c.users.All() {
		c.recommenders[id] = recommend.New(u, c.items.FromOtherSellers(id))
	}

	return nil
}

// ---- ユーザー操作 ----

// RegisterUser はユーザーを登録し、一緒に作られたバスケットも登録・永続化する。
func (c *Coordinator) RegisterUser(ctx context.Context, d model.UserData) (*model.User, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	u, err := c.users.Register(d)
	if err != nil {
		return nil, err
	}

	c.baskets.Add(u.Basket())

	if err := c.persistence.SaveUser(ctx, u.Data()); err != nil {
		return u, err
	}
	if err := c.persistence.SaveBasket(ctx, u.Basket().Data()); err != nil {
		return u, err
	}

	return u, nil
}

// UpdateUser は部分更新を適用して永続化する。
func (c *Coordinator) UpdateUser(ctx context.Context, p model.UserPatch) (*model.User, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	u, err := c.users.Update(p)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, errNotFound("user not found")
	}

	if err := c.persistence.SaveUser(ctx, u.Data()); err != nil {
		return u, err
	}

	return u, nil
}

// DeleteUser はユーザーとそのバスケット、レコメンダーのキャッシュを削除する。
// 注文の履歴はOrderStoreが独立に保持するので消さない。
func (c *Coordinator) DeleteUser(ctx context.Context, userID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if userID == "" {
		return errBadRequest("user id is required for deletion")
	}

	basketID := ""
	if b := c.users.Basket(userID); b != nil {
		basketID = b.ID
	}

	c.users.Delete(userID)
	if err := c.persistence.DeleteUser(ctx, userID); err != nil {
		return err
	}

	if basketID != "" {
		c.baskets.Delete(basketID)
		if err := c.persistence.DeleteBasket(ctx, basketID); err != nil {
			return err
		}
	}

	delete(c.recommenders, userID)

	return nil
}

// Authenticate はメールアドレスとパスワードでユーザーを探す。
// 一致しなければnil（エラーにはしない）。
func (c *Coordinator) Authenticate(ctx context.Context, email string, password string) *model.User {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.users.Authenticate(email, password)
}

// GetUser はユーザーIDでユーザーを引く。無ければnil。
func (c *Coordinator) GetUser(userID string) *model.User {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.users.Get(userID)
}

// ---- 商品操作 ----

// AddItem は商品を登録して永続化する。
func (c *Coordinator) AddItem(ctx context.Context, d model.ItemData) (*model.Item, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	it := c.items.Register(d)

	if err := c.persistence.SaveItem(ctx, it.Data()); err != nil {
		return it, err
	}

	return it, nil
}

// UpdateItem は部分更新を適用して永続化する。
// その商品を含むバスケット明細も書き直す。
func (c *Coordinator) UpdateItem(ctx context.Context, p model.ItemPatch) (*model.Item, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	it := c.items.Update(p)
	if it == nil {
		return nil, errNotFound("item not found")
	}

	for _, u := range c.users.All() {
		line, ok := u.Basket().Line(it.ID)
		if !ok {
			continue
		}

		if err := c.persistence.SaveBasketLine(ctx, line); err != nil {
			return it, err
		}
	}

	if err := c.persistence.SaveItem(ctx, it.Data()); err != nil {
		return it, err
	}

	return it, nil
}

// DeleteItem は商品をカタログと全ユーザーのバスケットから取り除く。
// 注文のスナップショットからは取り除かない。
func (c *Coordinator) DeleteItem(ctx context.Context, itemID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if itemID == "" {
		return errBadRequest("item id is required for deletion")
	}

	c.items.Delete(itemID)

	for _, u := range c.users.All() {
		b := u.Basket()
		if _, ok := b.Line(itemID); !ok {
			continue
		}

		b.RemoveLine(itemID)
		if err := c.persistence.DeleteBasketLine(ctx, b.ID, itemID); err != nil {
			return err
		}
	}

	return c.persistence.DeleteItem(ctx, itemID)
}

// RateItem は商品の評価平均を更新して永続化する。
// 評価値の範囲（1〜5）は外側の層で検証済みの前提。
func (c *Coordinator) RateItem(ctx context.Context, itemID string, rating float64) (*model.Item, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	it := c.items.UpdateRating(itemID, rating)
	if it == nil {
		return nil, errNotFound("item not found")
	}

	if err := c.persistence.SaveItem(ctx, it.Data()); err != nil {
		return it, err
	}

	return it, nil
}

// Trade は2つの商品の出品者を入れ替える。
// 両方が存在し、どちらも未購入で、自己交換でないことをここで確認する。
func (c *Coordinator) Trade(ctx context.Context, itemID1 string, itemID2 string) ([]*model.Item, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if itemID1 == itemID2 {
		return nil, errBadRequest("cannot trade an item with itself")
	}

	it1 := c.items.Get(itemID1)
	it2 := c.items.Get(itemID2)
	if it1 == nil || it2 == nil {
		return nil, errNotFound("item not found")
	}
	if it1.IsPurchased || it2.IsPurchased {
		return nil, errBadRequest("purchased items cannot be traded")
	}

	traded := c.items.Trade(itemID1, itemID2)

	for _, it := range traded {
		if err := c.persistence.SaveItem(ctx, it.Data()); err != nil {
			return traded, err
		}
	}

	return traded, nil
}

// ---- 読み取り（カタログ閲覧） ----

// GetItem は商品IDで商品を引く。無ければnil。
func (c *Coordinator) GetItem(itemID string) *model.Item {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.items.Get(itemID)
}

// AlphabeticalItems は全商品を名前順で返す。
func (c *Coordinator) AlphabeticalItems() []*model.Item {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.items.Alphabetical()
}

// FindItemByName は名前の完全一致で商品を探す。無ければnil。
func (c *Coordinator) FindItemByName(name string) *model.Item {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.items.FindByName(name)
}

// NewestAvailableItems は未購入の商品を新しい順で返す。
func (c *Coordinator) NewestAvailableItems() []*model.Item {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.items.NewestAvailable()
}

// FilterItems は条件に合う商品を返す。
func (c *Coordinator) FilterItems(f store.ItemFilter) []*model.Item {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.items.Filter(f)
}

// HighestRatedItems は平均評価3以上の商品を評価順で返す。
func (c *Coordinator) HighestRatedItems() []*model.Item {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.items.HighestRated()
}

// SellerUnsoldItems は出品者の未売却の商品を返す。
func (c *Coordinator) SellerUnsoldItems(userID string) []*model.Item {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.items.SellerUnsold(userID)
}

// SellerSoldItems は出品者の売却済みの商品を返す。
func (c *Coordinator) SellerSoldItems(userID string) []*model.Item {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.items.SellerSold(userID)
}

// GetOrder は注文IDで注文を引く。無ければnil。
func (c *Coordinator) GetOrder(orderID string) *model.Order {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.orders.Get(orderID)
}

// OrdersByUser は買い手の注文を返す。
func (c *Coordinator) OrdersByUser(userID string) []*model.Order {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.orders.ListByBuyer(userID)
}

// ---- レコメンド ----

// Recommendations はユーザーへの推薦商品を最大k件返す。
// レコメンダーはユーザーごとにキャッシュし、呼ぶたびに
// 対象カタログ（他の出品者の未購入商品）を差し替えてから採点する。
func (c *Coordinator) Recommendations(ctx context.Context, userID string, k int) ([]*model.Item, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	u := c.users.Get(userID)
	if u == nil {
		return nil, errNotFound("user not found")
	}

	rec, ok := c.recommenders[userID]
	if !ok {
		rec = recommend.New(u, nil)
		c.recommenders[userID] = rec
	}

	rec.UpdateCatalog(c.items.FromOtherSellers(userID))

	return rec.Recommend(k), nil
}
