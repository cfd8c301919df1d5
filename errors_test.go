package blog_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	blog "github.com/goliatone/go-blog"
	"github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
)

func TestErrorMatchers(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		matcher func(error) bool
	}{
		{"duplicate email", blog.ErrDuplicateEmail, blog.IsDuplicateEmail},
		{"user not found", blog.ErrUserNotFound, blog.IsUserNotFound},
		{"invalid credentials", blog.ErrInvalidCredentials, blog.IsInvalidCredentials},
		{"invalid token", blog.ErrInvalidToken, blog.IsInvalidToken},
		{"not owner", blog.ErrNotOwner, blog.IsNotOwner},
		{"store unavailable", blog.ErrStoreUnavailable, blog.IsStoreUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.matcher(tt.err))
			assert.False(t, tt.matcher(nil))
			assert.False(t, tt.matcher(stderrors.New("some other failure")))
		})
	}
}

func TestErrorMatchersSeeThroughClones(t *testing.T) {
	cloned := blog.ErrNotOwner.Clone().WithMetadata(map[string]any{
		"blog_id": "b-1",
	})

	assert.True(t, blog.IsNotOwner(cloned))
	assert.False(t, blog.IsInvalidToken(cloned))
}

func TestErrorMatchersSeeThroughWraps(t *testing.T) {
	wrapped := fmt.Errorf("handler failed: %w", blog.ErrInvalidCredentials)
	assert.True(t, blog.IsInvalidCredentials(wrapped))

	rich := errors.Wrap(stderrors.New("connection refused"), errors.CategoryInternal, "query users").
		WithTextCode(blog.ErrStoreUnavailable.TextCode)
	assert.True(t, blog.IsStoreUnavailable(rich))
}

func TestErrorsStayDistinct(t *testing.T) {
	assert.False(t, blog.IsInvalidCredentials(blog.ErrUserNotFound))
	assert.False(t, blog.IsUserNotFound(blog.ErrInvalidCredentials))
}
