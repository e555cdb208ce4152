package store

import (
	"marketplace/internal/domain/model"
	"marketplace/internal/repository"
)

// bcryptハッシュは60文字なので、それ未満なら平文とみなしてハッシュする。
const hashedCredentialLen = 60

// UserStore はユーザーをユーザーIDで一元管理するストア。
// 資格情報の照合は注入されたCredentialVerifierに委譲する。
// バスケットや注文のファンアウトはユーザー配下の状態だけを触り、
// ItemStore・OrderStoreには手を出さない（所有権はストアごとに1つ）。
type UserStore struct {
	users    map[string]*model.User
	verifier repository.CredentialVerifier
}

// NewUserStore はUserStoreを作る。
func NewUserStore(verifier repository.CredentialVerifier) *UserStore {
	return &UserStore{
		users:    map[string]*model.User{},
		verifier: verifier,
	}
}

// Add はユーザーを登録する。
func (s *UserStore) Add(u *model.User) {
	s.users[u.ID] = u
}

// Get はユーザーIDでユーザーを引く。無ければnil。
func (s *UserStore) Get(userID string) *model.User {
	return s.users[userID]
}

// Delete はユーザーを削除する。削除できたらtrue。
func (s *UserStore) Delete(userID string) bool {
	if _, ok := s.users[userID]; !ok {
		return false
	}

	delete(s.users, userID)
	return true
}

// All は全ユーザーをIDで引けるmapで返す。
func (s *UserStore) All() map[string]*model.User {
	return s.users
}

// Register はUserDataからユーザーを組み立てて登録する。
// パスワードが平文ならここでハッシュしてから保持する。
func (s *UserStore) Register(d model.UserData) (*model.User, error) {
	if len(d.Password) < hashedCredentialLen {
		hashed, err := s.verifier.Hash(d.Password)
		if err != nil {
			return nil, err
		}
		d.Password = hashed
	}

	u := model.NewUser(d)
	s.Add(u)

	return u, nil
}

// RegisterAll はユーザーを登録し、注文とバスケットを結び付ける
// （起動時の流し込み用）。
func (s *UserStore) RegisterAll(users []model.UserData, orders map[string]*model.Order, baskets map[string]*model.Basket) error {
	for _, d := range users {
		if _, err := s.Register(d); err != nil {
			return err
		}
	}

	for _, o := range orders {
		s.AddOrder(o.BuyerID, o)
	}

	for _, u := range s.users {
		for _, b := range baskets {
			if u.ID == b.UserID {
				u.SetBasket(b)
			}
		}
	}

	return nil
}

// Update は部分更新を適用する。ユーザーが無ければnil。
// パスワードを変更する場合はここでハッシュし直す。
func (s *UserStore) Update(p model.UserPatch) (*model.User, error) {
	if p.ID == "" {
		return nil, nil
	}

	u, ok := s.users[p.ID]
	if !ok {
		return nil, nil
	}

	if p.Password != nil && len(*p.Password) < hashedCredentialLen {
		hashed, err := s.verifier.Hash(*p.Password)
		if err != nil {
			return nil, err
		}
		p.Password = &hashed
	}

	u.Apply(p)
	return u, nil
}

// Authenticate はメールアドレスの線形走査と資格情報の照合でユーザーを探す。
// 一致しなければnil（エラーにはしない）。
func (s *UserStore) Authenticate(email string, password string) *model.User {
	for _, u := range s.users {
		if u.Email == email && s.verifier.Verify(password, u.Password) {
			return u
		}
	}

	return nil
}

// AddOrder は注文をユーザーに追加する。ユーザーが無ければnil。
func (s *UserStore) AddOrder(userID string, o *model.Order) *model.Order {
	u := s.Get(userID)
	if u == nil {
		return nil
	}

	return u.AddOrder(o)
}

// Basket はユーザーのバスケットを返す。ユーザーが無ければnil。
func (s *UserStore) Basket(userID string) *model.Basket {
	u := s.Get(userID)
	if u == nil {
		return nil
	}

	return u.Basket()
}

// AddBasketLine はユーザーのバスケットに明細を追加する（upsert）。
func (s *UserStore) AddBasketLine(userID string, line model.BasketLine) (model.BasketLine, bool) {
	b := s.Basket(userID)
	if b == nil {
		return model.BasketLine{}, false
	}

	return b.AddLine(line.ItemID, line.Quantity, line.DateAdded), true
}

// UpdateBasketLine はユーザーのバスケットの既存明細を更新する。
func (s *UserStore) UpdateBasketLine(userID string, line model.BasketLine) (model.BasketLine, bool) {
	b := s.Basket(userID)
	if b == nil {
		return model.BasketLine{}, false
	}

	return b.UpdateLine(line)
}

// RemoveBasketLine はユーザーのバスケットから明細を削除する。
func (s *UserStore) RemoveBasketLine(userID string, itemID string) {
	if b := s.Basket(userID); b != nil {
		b.RemoveLine(itemID)
	}
}

// ClearBasket はユーザーのバスケットを新品に置き換える。
// 戻り値は新しいバスケット。ユーザーが無ければnil。
func (s *UserStore) ClearBasket(userID string) *model.Basket {
	u := s.Get(userID)
	if u == nil {
		return nil
	}

	return u.ClearBasket()
}
