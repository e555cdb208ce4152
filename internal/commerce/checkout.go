package commerce

import (
	"context"

	"github.com/google/uuid"

	"marketplace/internal/domain/model"
)

// Checkout はバスケット全体を購入する。
//
// 変更の順序は固定：
//  1. 商品を購入済みにする（ItemStore）
//  2. 注文を作る（OrderStore）
//  3. 注文をユーザーに付ける（UserStore）
//  4. バスケットを空にする
//  5. 永続化（注文→商品→明細削除→バスケット）
//
// 手順1で1件も購入できなければ注文は作られない。
// 手順5の失敗はメモリ上の変更を残したままエラーを返す（補償トランザクションなし）。
func (c *Coordinator) Checkout(ctx context.Context, userID string) (*model.Order, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	u := c.users.Get(userID)
	if u == nil {
		return nil, errNotFound("user not found")
	}

	lines := u.Basket().Lines()
	itemIDs := make([]string, 0, len(lines))
	for _, line := range lines {
		itemIDs = append(itemIDs, line.ItemID)
	}

	purchased := c.items.MarkPurchased(itemIDs, userID, uuid.NewString())
	if len(purchased) == 0 {
		return nil, errBadRequest("nothing to purchase")
	}

	order := c.orders.Create(userID, purchased, c.clock.Now())
	c.users.AddOrder(userID, order)

	oldBasketID := u.Basket().ID
	newBasket := c.users.ClearBasket(userID)
	c.baskets.Delete(oldBasketID)
	c.baskets.Add(newBasket)

	if err := c.persistence.SaveOrder(ctx, order.Data()); err != nil {
		return order, err
	}

	for _, it := range purchased {
		if err := c.persistence.SaveItem(ctx, it.Data()); err != nil {
			return order, err
		}
	}

	for _, line := range lines {
		if err := c.persistence.DeleteBasketLine(ctx, line.BasketID, line.ItemID); err != nil {
			return order, err
		}
	}

	if err := c.persistence.DeleteBasket(ctx, oldBasketID); err != nil {
		return order, err
	}
	if err := c.persistence.SaveBasket(ctx, newBasket.Data()); err != nil {
		return order, err
	}

	return order, nil
}

// BuyNow はバスケットを介さず商品1つを即時購入する。
// バスケットは触らない。変更の順序はCheckoutと同じ。
func (c *Coordinator) BuyNow(ctx context.Context, userID string, itemID string) (*model.Order, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	u := c.users.Get(userID)
	if u == nil {
		return nil, errNotFound("user not found")
	}

	purchased := c.items.MarkPurchased([]string{itemID}, userID, uuid.NewString())
	if len(purchased) == 0 {
		return nil, errNotFound("item not found")
	}

	order := c.orders.Create(userID, purchased, c.clock.Now())
	c.users.AddOrder(userID, order)

	if err := c.persistence.SaveOrder(ctx, order.Data()); err != nil {
		return order, err
	}
	if err := c.persistence.SaveItem(ctx, purchased[0].Data()); err != nil {
		return order, err
	}

	return order, nil
}
