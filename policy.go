package blog

import (
	"github.com/google/uuid"
)

// Ownership policy: pure decision functions applied before every mutation.
// An absent session never passes any check.

// IsOwner reports whether the acting session owns the entity with the given
// owner reference.
func IsOwner(ownerID uuid.UUID, session Session) bool {
	if session == nil {
		return false
	}

	id, err := session.GetUserUUID()
	if err != nil {
		return false
	}

	return ownerID != uuid.Nil && ownerID == id
}

// CanManageBlog reports whether the session may edit or delete the blog.
// Only the creator may.
func CanManageBlog(b *Blog, session Session) bool {
	if b == nil {
		return false
	}
	return IsOwner(b.CreatedBy, session)
}

// CanDeleteComment reports whether the session may delete the comment. A
// comment may be removed by its author or by the owner of the blog it
// belongs to.
func CanDeleteComment(c *Comment, b *Blog, session Session) bool {
	if c == nil {
		return false
	}

	if IsOwner(c.CreatedBy, session) {
		return true
	}

	return CanManageBlog(b, session)
}
