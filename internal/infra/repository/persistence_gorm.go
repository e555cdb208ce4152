package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"
)

// GormPersistence はライトビハインド永続化のGORM実装。
// メモリ側が正なので、保存は常にupsertで行う。
type GormPersistence struct {
	db *gorm.DB
}

// DI
func NewGormPersistence(db *gorm.DB) *GormPersistence {
	return &GormPersistence{db: db}
}

// AutoMigrate はテーブルを作成・更新する。
func (p *GormPersistence) AutoMigrate() error {
	return p.db.AutoMigrate(
		&userRecord{},
		&itemRecord{},
		&basketRecord{},
		&basketLineRecord{},
		&orderRecord{},
	)
}

// LoadAll は全テーブルを読み込んで起動時のスナップショットを返す。
func (p *GormPersistence) LoadAll(ctx context.Context) (repo.Snapshot, error) {
	var snap repo.Snapshot

	var users []userRecord
	if err := p.db.WithContext(ctx).Find(&users).Error; err != nil {
		return snap, err
	}
	for _, r := range users {
		snap.Users = append(snap.Users, r.toData())
	}

	var items []itemRecord
	if err := p.db.WithContext(ctx).Find(&items).Error; err != nil {
		return snap, err
	}
	for _, r := range items {
		snap.Items = append(snap.Items, r.toData())
	}

	var baskets []basketRecord
	if err := p.db.WithContext(ctx).Find(&baskets).Error; err != nil {
		return snap, err
	}
	for _, r := range baskets {
		snap.Baskets = append(snap.Baskets, r.toData())
	}

	var lines []basketLineRecord
	if err := p.db.WithContext(ctx).Find(&lines).Error; err != nil {
		return snap, err
	}
	for _, r := range lines {
		snap.BasketLines = append(snap.BasketLines, r.toLine())
	}

	var orders []orderRecord
	if err := p.db.WithContext(ctx).Find(&orders).Error; err != nil {
		return snap, err
	}
	for _, r := range orders {
		snap.Orders = append(snap.Orders, r.toData())
	}

	return snap, nil
}

func (p *GormPersistence) upsert(ctx context.Context, rec interface{}) error {
	return p.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(rec).Error
}

func (p *GormPersistence) SaveUser(ctx context.Context, d model.UserData) error {
	rec := toUserRecord(d)
	return p.upsert(ctx, &rec)
}

func (p *GormPersistence) SaveItem(ctx context.Context, d model.ItemData) error {
	rec := toItemRecord(d)
	return p.upsert(ctx, &rec)
}

func (p *GormPersistence) SaveBasket(ctx context.Context, d model.BasketData) error {
	rec := toBasketRecord(d)
	return p.upsert(ctx, &rec)
}

func (p *GormPersistence) SaveBasketLine(ctx context.Context, line model.BasketLine) error {
	rec := toBasketLineRecord(line)
	return p.upsert(ctx, &rec)
}

func (p *GormPersistence) SaveOrder(ctx context.Context, d model.OrderData) error {
	rec := toOrderRecord(d)
	return p.upsert(ctx, &rec)
}

func (p *GormPersistence) DeleteUser(ctx context.Context, userID string) error {
	return p.db.WithContext(ctx).Delete(&userRecord{}, "id = ?", userID).Error
}

func (p *GormPersistence) DeleteItem(ctx context.Context, itemID string) error {
	return p.db.WithContext(ctx).Delete(&itemRecord{}, "id = ?", itemID).Error
}

func (p *GormPersistence) DeleteBasket(ctx context.Context, basketID string) error {
	//明細も一緒に消す
	if err := p.db.WithContext(ctx).Delete(&basketLineRecord{}, "basket_id = ?", basketID).Error; err != nil {
		return err
	}
	return p.db.WithContext(ctx).Delete(&basketRecord{}, "id = ?", basketID).Error
}

func (p *GormPersistence) DeleteBasketLine(ctx context.Context, basketID string, itemID string) error {
	return p.db.WithContext(ctx).
		Delete(&basketLineRecord{}, "basket_id = ? AND item_id = ?", basketID, itemID).Error
}

func (p *GormPersistence) DeleteOrder(ctx context.Context, orderID string) error {
	return p.db.WithContext(ctx).Delete(&orderRecord{}, "id = ?", orderID).Error
}
