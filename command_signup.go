package blog

import (
	"context"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/uptrace/bun"
)

type SignupMessage struct {
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	UseHashid bool
}

func (e SignupMessage) Type() string { return "user.signup" }

// SignupHandler persists a new account: hash the password, default the role
// to USER, map the unique email violation to ErrDuplicateEmail. The role is
// never taken from the message.
type SignupHandler struct {
	repo RepositoryManager
}

func NewSignupHandler(repo RepositoryManager) *SignupHandler {
	return &SignupHandler{repo: repo}
}

func (h *SignupHandler) Execute(ctx context.Context, event SignupMessage) (*User, error) {
	select {
	case <-ctx.Done():
		return nil, goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during signup",
		)
	default:
		return h.execute(ctx, event)
	}
}

func (h *SignupHandler) execute(ctx context.Context, event SignupMessage) (*User, error) {
	user := &User{}
	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	err := h.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		salt, digest, err := HashPassword(event.Password)
		if err != nil {
			var richErr *goerrors.Error
			if goerrors.As(err, &richErr) {
				return richErr
			}
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash password")
		}

		user.FullName = event.FullName
		user.Email = event.Email
		user.Role = RoleUser
		user.Salt = salt
		user.PasswordDigest = digest
		user.ProfileImageURL = DefaultProfileImageURL

		if event.UseHashid {
			if id, err := hashid.NewUUID(event.Email); err == nil {
				user.ID = id
			}
		}

		if user, err = h.repo.Users().RegisterTx(ctx, tx, user); err != nil {
			return err
		}

		return nil
	})

	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			return nil, richErr
		}

		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "signup transaction failed")
	}

	return user, nil
}
