package blog

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestPrepareUserDefaults(t *testing.T) {
	record := &User{
		FullName: "Ada Lovelace",
		Email:    "  Ada@Example.COM ",
	}

	prepareUserDefaults(record)

	assert.Equal(t, RoleUser, record.Role)
	assert.Equal(t, DefaultProfileImageURL, record.ProfileImageURL)
	assert.Equal(t, "ada@example.com", record.Email)
	assert.NotEqual(t, uuid.Nil, record.ID)
}

func TestPrepareUserDefaultsKeepsExistingValues(t *testing.T) {
	id := uuid.New()
	record := &User{
		ID:              id,
		Email:           "ada@example.com",
		Role:            RoleAdmin,
		ProfileImageURL: "/uploads/custom-avatar.png",
	}

	prepareUserDefaults(record)

	assert.Equal(t, id, record.ID)
	assert.Equal(t, RoleAdmin, record.Role)
	assert.Equal(t, "/uploads/custom-avatar.png", record.ProfileImageURL)
}

func TestPrepareUserDefaultsNilRecord(t *testing.T) {
	assert.NotPanics(t, func() {
		prepareUserDefaults(nil)
	})
}

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			"sqlite",
			errors.New("constraint failed: UNIQUE constraint failed: users.email (2067)"),
			true,
		},
		{
			"postgres",
			errors.New(`ERROR: duplicate key value violates unique constraint "users_email_key" (SQLSTATE=23505)`),
			true,
		},
		{"unrelated", errors.New("connection refused"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, isUniqueViolation(tt.err))
		})
	}
}
