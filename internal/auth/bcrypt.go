package auth

import "golang.org/x/crypto/bcrypt"

// bcryptハッシュは必ず60文字になる。
const hashedLen = 60

// BcryptVerifier はbcryptによる資格情報の生成と照合。
type BcryptVerifier struct {
	cost int
}

// NewBcryptVerifier はBcryptVerifierを作る。costが範囲外なら既定値を使う。
func NewBcryptVerifier(cost int) *BcryptVerifier {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptVerifier{cost: cost}
}

// Hash は平文からハッシュを作る。
// すでにハッシュ済み（60文字以上）のものはそのまま返す。
// DBからの復元時にハッシュを二重にかけないための判定。
func (v *BcryptVerifier) Hash(plain string) (string, error) {
	if len(plain) >= hashedLen {
		return plain, nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), v.cost)
	if err != nil {
		return "", err
	}

	return string(hashed), nil
}

// Verify は平文とハッシュを照合する。
func (v *BcryptVerifier) Verify(plain string, credential string) bool {
	return bcrypt.CompareHashAndPassword([]byte(credential), []byte(plain)) == nil
}
