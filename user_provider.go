package blog

import (
	"context"

	"github.com/goliatone/go-errors"
)

// UserStore is the store contract the provider needs
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetUserByID(ctx context.Context, id string) (*User, error)
}

// UserProvider resolves identities against the user store
type UserProvider struct {
	store  UserStore
	logger Logger
}

// NewUserProvider will create a new UserProvider
func NewUserProvider(store UserStore) *UserProvider {
	return &UserProvider{
		store:  store,
		logger: defLogger{},
	}
}

func (u *UserProvider) WithLogger(l Logger) *UserProvider {
	if l != nil {
		u.logger = l
	}
	return u
}

// VerifyIdentity finds the user by email and checks the password against the
// stored salt and digest. A missing account and a wrong password surface as
// distinct errors; the HTTP layer is responsible for not leaking the
// difference to clients.
func (u UserProvider) VerifyIdentity(ctx context.Context, email, password string) (Identity, error) {
	user, err := u.store.GetByEmail(ctx, email)
	if err != nil {
		if IsUserNotFound(err) {
			return nil, err
		}
		return nil, errors.Wrap(err, ErrStoreUnavailable.Category, ErrStoreUnavailable.Message).
			WithTextCode(ErrStoreUnavailable.TextCode)
	}

	if !VerifyPassword(password, user.Salt, user.PasswordDigest) {
		return nil, ErrInvalidCredentials
	}

	return NewIdentityFromUser(user), nil
}

// FindIdentityByID resolves an identity by its user id
func (u UserProvider) FindIdentityByID(ctx context.Context, id string) (Identity, error) {
	user, err := u.store.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return NewIdentityFromUser(user), nil
}
