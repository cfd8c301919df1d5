package blog_test

import (
	"testing"

	blog "github.com/goliatone/go-blog"
	"github.com/stretchr/testify/assert"
)

func TestSigninRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		payload blog.SigninRequest
		fields  []string
	}{
		{
			"valid",
			blog.SigninRequest{Email: "ada@example.com", Password: "password123"},
			nil,
		},
		{
			"missing email",
			blog.SigninRequest{Password: "password123"},
			[]string{"email"},
		},
		{
			"bad email",
			blog.SigninRequest{Email: "not-an-email", Password: "password123"},
			[]string{"email"},
		},
		{
			"missing password",
			blog.SigninRequest{Email: "ada@example.com"},
			[]string{"password"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.payload.Validate()
			if len(tt.fields) == 0 {
				assert.NoError(t, err)
				return
			}

			errs := blog.FormatValidationErrorToMap(err)
			for _, field := range tt.fields {
				assert.Contains(t, errs, field)
			}
		})
	}
}

func TestSignupCreatePayloadValidate(t *testing.T) {
	valid := blog.SignupCreatePayload{
		FullName:        "Ada Lovelace",
		Email:           "ada@example.com",
		Password:        "password123",
		ConfirmPassword: "password123",
	}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, valid.Validate())
	})

	t.Run("short password", func(t *testing.T) {
		payload := valid
		payload.Password = "short"
		payload.ConfirmPassword = "short"

		errs := blog.FormatValidationErrorToMap(payload.Validate())
		assert.Contains(t, errs, "password")
	})

	t.Run("confirmation mismatch", func(t *testing.T) {
		payload := valid
		payload.ConfirmPassword = "something-else"

		errs := blog.FormatValidationErrorToMap(payload.Validate())
		assert.Contains(t, errs, "confirm_password")
	})
}

func TestBlogCreatePayloadValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		payload := blog.BlogCreatePayload{Title: "First post", Body: "Hello there"}
		assert.NoError(t, payload.Validate())
	})

	t.Run("missing fields", func(t *testing.T) {
		errs := blog.FormatValidationErrorToMap(blog.BlogCreatePayload{}.Validate())
		assert.Contains(t, errs, "title")
		assert.Contains(t, errs, "body")
	})
}

func TestCommentCreatePayloadValidate(t *testing.T) {
	assert.NoError(t, blog.CommentCreatePayload{Content: "nice post"}.Validate())

	errs := blog.FormatValidationErrorToMap(blog.CommentCreatePayload{}.Validate())
	assert.Contains(t, errs, "content")
}

func TestFormatValidationErrorToMap(t *testing.T) {
	assert.Empty(t, blog.FormatValidationErrorToMap(nil))

	errs := blog.FormatValidationErrorToMap(assert.AnError)
	assert.Equal(t, map[string]string{"form": assert.AnError.Error()}, errs)
}
