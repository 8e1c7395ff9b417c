package auth

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/krcglobal/gbms/internal/session"
)

// DemoTokenPrefix prefixes every token minted by DemoVerifier.
const DemoTokenPrefix = "mock_token_"

type demoAccount struct {
	hash []byte
	user session.User
}

// DemoVerifier accepts three fixed accounts without contacting a backend.
//
// It is a stand-in for demonstrations and offline use. The tokens it mints
// are not accepted by the backend.
type DemoVerifier struct {
	accounts map[string]demoAccount
	newToken func() string
}

// demoSeed lists the demo accounts. Secrets are hashed on construction and
// the plaintext is not retained by the verifier.
var demoSeed = []struct {
	secret string
	user   session.User
}{
	{"admin123", session.User{ID: 1, UserID: "admin", Name: "관리자", Department: "gad", DepartmentName: "글로벌농업개발부", Role: "admin", Email: "admin@krc.co.kr"}},
	{"user123", session.User{ID: 2, UserID: "user1", Name: "홍길동", Department: "gb", DepartmentName: "글로벌사업부", Role: "user", Email: "hong@krc.co.kr"}},
	{"user123", session.User{ID: 3, UserID: "user2", Name: "김철수", Department: "aidc", DepartmentName: "농식품국제개발협력센터", Role: "user", Email: "kim@krc.co.kr"}},
}

// NewDemoVerifier builds the demo account table.
func NewDemoVerifier() *DemoVerifier {
	v := &DemoVerifier{
		accounts: make(map[string]demoAccount, len(demoSeed)),
		newToken: func() string { return DemoTokenPrefix + uuid.NewString() },
	}
	for _, seed := range demoSeed {
		hash, err := bcrypt.GenerateFromPassword([]byte(seed.secret), bcrypt.MinCost)
		if err != nil {
			// only fails for secrets longer than 72 bytes
			panic(err)
		}
		v.accounts[seed.user.UserID] = demoAccount{hash: hash, user: seed.user}
	}
	return v
}

// Verify matches loginName exactly and compares secret against its hash.
// The returned user is a copy.
func (v *DemoVerifier) Verify(ctx context.Context, loginName, secret string) (*session.User, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}

	acct, ok := v.accounts[loginName]
	if !ok {
		return nil, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(acct.hash, []byte(secret)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	user := acct.user
	return &user, v.newToken(), nil
}

// LoginNames returns the demo login names in table order.
func (v *DemoVerifier) LoginNames() []string {
	names := make([]string, 0, len(demoSeed))
	for _, seed := range demoSeed {
		names = append(names, seed.user.UserID)
	}
	return names
}
