package repository

import (
	"context"
	"errors"

	"marketplace/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// Snapshot は起動時にストアへ流し込む全データ。
type Snapshot struct {
	Users       []model.UserData
	Items       []model.ItemData
	Baskets     []model.BasketData
	BasketLines []model.BasketLine
	Orders      []model.OrderData
}

// PersistenceAdapter はライトビハインド永続化の約束。
// メモリ上の変更が確定した後に呼ばれる。失敗してもコア側はロールバックしない。
type PersistenceAdapter interface {
	LoadAll(ctx context.Context) (Snapshot, error)

	SaveUser(ctx context.Context, u model.UserData) error
	SaveItem(ctx context.Context, it model.ItemData) error
	SaveBasket(ctx context.Context, b model.BasketData) error
	SaveBasketLine(ctx context.Context, line model.BasketLine) error
	SaveOrder(ctx context.Context, o model.OrderData) error

	DeleteUser(ctx context.Context, userID string) error
	DeleteItem(ctx context.Context, itemID string) error
	DeleteBasket(ctx context.Context, basketID string) error
	DeleteBasketLine(ctx context.Context, basketID string, itemID string) error
	DeleteOrder(ctx context.Context, orderID string) error
}

// CredentialVerifier は資格情報の生成と照合の約束。
// コアが平文パスワードに触れるのはこの2つの呼び出しだけ。
type CredentialVerifier interface {
	Hash(plain string) (string, error)
	Verify(plain string, credential string) bool
}
