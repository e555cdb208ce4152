package commerce

import (
	"context"

	"marketplace/internal/domain/model"
)

// GetBasket はユーザーのバスケットを返す。ユーザーが無ければnil。
func (c *Coordinator) GetBasket(userID string) *model.Basket {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.users.Basket(userID)
}

// AddBasketLine はユーザーのバスケットに明細を追加して永続化する。
// 同じ商品IDはupsert。追加日はここで入れる。
func (c *Coordinator) AddBasketLine(ctx context.Context, userID string, itemID string, quantity int) (model.BasketLine, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkBasketPolicy(itemID); err != nil {
		return model.BasketLine{}, err
	}

	line, ok := c.users.AddBasketLine(userID, model.BasketLine{
		ItemID:    itemID,
		Quantity:  quantity,
		DateAdded: c.clock.Now(),
	})
	if !ok {
		return model.BasketLine{}, errNotFound("user not found")
	}

	if err := c.persistence.SaveBasketLine(ctx, line); err != nil {
		return line, err
	}

	return line, nil
}

// UpdateBasketLine は既存明細の数量と日付を更新して永続化する。
func (c *Coordinator) UpdateBasketLine(ctx context.Context, userID string, line model.BasketLine) (model.BasketLine, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	updated, ok := c.users.UpdateBasketLine(userID, line)
	if !ok {
		return model.BasketLine{}, errNotFound("basket line not found")
	}

	if err := c.persistence.SaveBasketLine(ctx, updated); err != nil {
		return updated, err
	}

	return updated, nil
}

// DeleteBasketLine は明細をユーザーのバスケットから削除して永続化する。
func (c *Coordinator) DeleteBasketLine(ctx context.Context, userID string, itemID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if userID == "" {
		return errBadRequest("user id is required for deletion")
	}

	b := c.users.Basket(userID)
	if b == nil {
		return errNotFound("user not found")
	}

	b.RemoveLine(itemID)

	return c.persistence.DeleteBasketLine(ctx, b.ID, itemID)
}

// checkBasketPolicy はポリシーに応じて明細が指す商品を確認する。
func (c *Coordinator) checkBasketPolicy(itemID string) error {
	if c.policy == ValidateNone {
		return nil
	}

	it := c.items.Get(itemID)
	if it == nil {
		return errBadRequest("item does not exist")
	}
	if it.IsPurchased {
		return errBadRequest("item is already purchased")
	}

	return nil
}
