package blog

import (
	"maps"

	"github.com/goliatone/go-router"
	"github.com/google/uuid"
)

var TemplateUserKey = "current_user"

// TemplateHelpers returns a map of helper functions and data that can be used
// as global template data for session-related template functionality.
//
// In templates, you can then use:
//
//	{% if current_user %}
//	{% if current_user|is_authenticated %}
//	{% if current_user|has_role:"ADMIN" %}
//	{% if current_user|owns:blog.created_by %}
func TemplateHelpers() map[string]any {
	return map[string]any{
		"is_authenticated": isAuthenticated,
		"has_role":         hasRole,
		"owns":             ownsRecord,

		"roles": map[string]string{
			"user":  string(RoleUser),
			"admin": string(RoleAdmin),
		},
	}
}

// MergeTemplateData copies the request-specific view data and injects the
// current session under TemplateUserKey so every rendered view can show the
// signed-in user without each handler wiring it by hand.
func MergeTemplateData(ctx router.Context, data router.ViewContext) router.ViewContext {
	out := router.ViewContext{}
	maps.Copy(out, data)

	if _, taken := out[TemplateUserKey]; !taken {
		if session, ok := GetTemplateUser(ctx); ok {
			out[TemplateUserKey] = session
		}
	}

	return out
}

// GetTemplateUser extracts the session from router context for template
// usage. It falls back to the request context so a non-default
// Config.GetContextKey still reaches the templates.
func GetTemplateUser(ctx router.Context) (Session, bool) {
	if session, ok := RouterSession(ctx, DefaultSessionKey); ok {
		return session, ok
	}
	if session, ok := SessionFromContext(ctx.Context()); ok {
		return session, ok
	}
	return nil, false
}

func isAuthenticated(user any) bool {
	if user == nil {
		return false
	}

	switch u := user.(type) {
	case Session:
		return u != nil && u.GetUserID() != ""
	case *SessionObject:
		return u != nil && u.UserID != ""
	case map[string]any:
		return len(u) > 0
	default:
		return false
	}
}

func hasRole(user any, role string) bool {
	target := UserRole(role)

	switch u := user.(type) {
	case Session:
		if u == nil {
			return false
		}
		return u.GetRole() == target
	case *SessionObject:
		if u == nil {
			return false
		}
		return u.Role == target
	case map[string]any:
		if raw, exists := u["role"]; exists {
			if str, ok := raw.(string); ok {
				return UserRole(str) == target
			}
		}
		return false
	default:
		return false
	}
}

// ownsRecord reports whether the session user is the record owner. It must
// agree with the policy checks gating the actual mutations: rendering a
// control the POST handler then rejects is worse than hiding it. The owner
// argument accepts either a uuid or its string form so templates can pass
// model fields directly.
func ownsRecord(user any, owner any) bool {
	session, ok := user.(Session)
	if !ok || session == nil {
		return false
	}

	var ownerID string
	switch o := owner.(type) {
	case uuid.UUID:
		ownerID = o.String()
	case string:
		ownerID = o
	default:
		return false
	}

	return session.GetUserID() != "" && session.GetUserID() == ownerID
}
