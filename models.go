package blog

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// UserRole is the user's role
type UserRole = string

const (
	// RoleUser is the default role assigned at signup
	RoleUser UserRole = "USER"
	// RoleAdmin is the administrative role; never client-settable
	RoleAdmin UserRole = "ADMIN"
)

// DefaultProfileImageURL is used when a user has no profile picture
const DefaultProfileImageURL = "/images/default-avatar.svg"

// DefaultCoverImageURL is used when a blog post has no cover image
const DefaultCoverImageURL = "/images/default-cover.svg"

// User is the account model. Salt and PasswordDigest are always written
// together; neither ever leaves the store layer.
type User struct {
	bun.BaseModel   `bun:"table:users,alias:usr"`
	ID              uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	FullName        string     `bun:"full_name,notnull" json:"full_name,omitempty"`
	Email           string     `bun:"email,notnull,unique" json:"email,omitempty"`
	Role            UserRole   `bun:"user_role,notnull" json:"user_role,omitempty"`
	Salt            string     `bun:"salt,notnull" json:"-"`
	PasswordDigest  string     `bun:"password_digest,notnull" json:"-"`
	ProfileImageURL string     `bun:"profile_image_url" json:"profile_image_url,omitempty"`
	CreatedAt       *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt       *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// Blog is a post. CreatedBy is a plain reference to the owning user, never a
// structural parent/child link; ownership checks compare it against the
// session id.
type Blog struct {
	bun.BaseModel `bun:"table:blogs,alias:blg"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Title         string     `bun:"title,notnull" json:"title,omitempty"`
	Body          string     `bun:"body,notnull" json:"body,omitempty"`
	CoverImageURL string     `bun:"cover_image_url" json:"cover_image_url,omitempty"`
	CreatedBy     uuid.UUID  `bun:"created_by,notnull,type:uuid" json:"created_by,omitempty"`
	Author        *User      `bun:"rel:belongs-to,join:created_by=id" json:"author,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// Comment lives and dies with its parent blog: deleting a blog cascades.
type Comment struct {
	bun.BaseModel `bun:"table:comments,alias:cmt"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Content       string     `bun:"content,notnull" json:"content,omitempty"`
	BlogID        uuid.UUID  `bun:"blog_id,notnull,type:uuid" json:"blog_id,omitempty"`
	CreatedBy     uuid.UUID  `bun:"created_by,notnull,type:uuid" json:"created_by,omitempty"`
	Author        *User      `bun:"rel:belongs-to,join:created_by=id" json:"author,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
}
