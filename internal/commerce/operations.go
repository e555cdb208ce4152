package commerce

import (
	"context"

	"marketplace/internal/domain/model"
)

// OpType はストアへ振り分ける操作の種類。
type OpType string

const (
	OpAdd    OpType = "add"
	OpUpdate OpType = "update"
	OpDelete OpType = "delete"
)

// PerformUserOperation はユーザーへの操作を種類で振り分ける。
// 未知の種類はErrInvalidOperation（プログラマーのバグ）。
func (c *Coordinator) PerformUserOperation(ctx context.Context, op OpType, p model.UserPatch) (*model.User, error) {
	switch op {
	case OpAdd:
		return c.RegisterUser(ctx, model.UserData{
			ID:                          p.ID,
			Email:                       deref(p.Email),
			Password:                    deref(p.Password),
			Address:                     deref(p.Address),
			EncodedInterestedCategories: deref(p.EncodedInterestedCategories),
		})

	case OpUpdate:
		return c.UpdateUser(ctx, p)

	case OpDelete:
		return nil, c.DeleteUser(ctx, p.ID)

	default:
		return nil, ErrInvalidOperation
	}
}

// PerformItemOperation は商品への操作を種類で振り分ける。
func (c *Coordinator) PerformItemOperation(ctx context.Context, op OpType, p model.ItemPatch) (*model.Item, error) {
	switch op {
	case OpAdd:
		return c.AddItem(ctx, model.ItemData{
			ID:                p.ID,
			Name:              deref(p.Name),
			Price:             derefFloat(p.Price),
			Description:       deref(p.Description),
			QuantityAvailable: derefInt(p.QuantityAvailable),
			SellerID:          deref(p.SellerID),
			EncodedCategories: deref(p.EncodedCategories),
			Image:             p.Image,
		})

	case OpUpdate:
		return c.UpdateItem(ctx, p)

	case OpDelete:
		return nil, c.DeleteItem(ctx, p.ID)

	default:
		return nil, ErrInvalidOperation
	}
}

// PerformBasketLineOperation はバスケット明細への操作を種類で振り分ける。
func (c *Coordinator) PerformBasketLineOperation(ctx context.Context, op OpType, userID string, line model.BasketLine) (model.BasketLine, error) {
	switch op {
	case OpAdd:
		return c.AddBasketLine(ctx, userID, line.ItemID, line.Quantity)

	case OpUpdate:
		return c.UpdateBasketLine(ctx, userID, line)

	case OpDelete:
		return model.BasketLine{}, c.DeleteBasketLine(ctx, userID, line.ItemID)

	default:
		return model.BasketLine{}, ErrInvalidOperation
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefFloat(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

func derefInt(i *int) int {
	if i == nil {
		return 0
	}
	return *i
}
