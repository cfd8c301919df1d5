package blog

import (
	"net/http"
	"time"

	"github.com/goliatone/go-router"
)

// InvalidTokenPolicy names what the middleware does with a cookie that fails
// validation. The application policy is to treat the bearer as anonymous;
// the policy exists as a type so the behavior is explicit and testable
// rather than an accidental swallow.
type InvalidTokenPolicy int

const (
	// TreatAsAnonymous drops the invalid token and continues the request
	// with no identity attached. Validation errors are logged at debug
	// level and never surfaced to the client.
	TreatAsAnonymous InvalidTokenPolicy = iota
	// RejectRequest redirects to the signin route instead. Not used by the
	// default wiring; kept for callers that need a fail-closed surface.
	RejectRequest
)

// RouteAuthenticator binds the Authenticator to the HTTP surface: cookie
// handling, the per-request session middleware, and the auth gate for
// mutating routes.
type RouteAuthenticator struct {
	auth           Authenticator
	cfg            Config
	cookieDuration time.Duration
	sessionKey     string
	OnInvalidToken InvalidTokenPolicy
	Logger         Logger
}

func NewHTTPAuthenticator(auther Authenticator, cfg Config) (*RouteAuthenticator, error) {
	cookieDuration := 24 * 7 * time.Hour
	if cfg.GetTokenExpiration() > 0 {
		cookieDuration = time.Duration(cfg.GetTokenExpiration()) * time.Hour
	}

	sessionKey := cfg.GetContextKey()
	if sessionKey == "" {
		sessionKey = DefaultSessionKey
	}

	return &RouteAuthenticator{
		cfg:            cfg,
		auth:           auther,
		Logger:         defLogger{},
		cookieDuration: cookieDuration,
		sessionKey:     sessionKey,
		OnInvalidToken: TreatAsAnonymous,
	}, nil
}

func (a RouteAuthenticator) GetCookieDuration() time.Duration {
	return a.cookieDuration
}

// SessionKey is the Locals key the middleware stores the session under,
// taken from Config.GetContextKey.
func (a RouteAuthenticator) SessionKey() string {
	return a.sessionKey
}

// WithSession runs once per request, before any route handler. It reads the
// session cookie, validates it, and attaches the derived session to the
// request. An absent cookie is not an error; an invalid one follows
// OnInvalidToken.
func (a *RouteAuthenticator) WithSession() router.MiddlewareFunc {
	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(ctx router.Context) error {
			raw := ctx.Cookies(a.cfg.GetCookieName())
			if raw == "" {
				return next(ctx)
			}

			session, err := a.auth.SessionFromToken(raw)
			if err != nil {
				if a.OnInvalidToken == RejectRequest {
					a.SetRedirect(ctx)
					return ctx.Redirect(a.cfg.GetSigninRoute(), http.StatusSeeOther)
				}
				a.Logger.Debug("session cookie failed validation, continuing as anonymous", "error", err)
				return next(ctx)
			}

			ctx.Locals(a.sessionKey, session)
			ctx.SetContext(WithSessionContext(ctx.Context(), session))

			return next(ctx)
		}
	}
}

// RequireAuth gates mutating routes: anonymous requests are redirected to
// the signin route after stashing the rejected path.
func (a *RouteAuthenticator) RequireAuth() router.MiddlewareFunc {
	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(ctx router.Context) error {
			if _, ok := RouterSession(ctx, a.sessionKey); !ok {
				a.SetRedirect(ctx)
				statusCode := http.StatusSeeOther
				if ctx.Method() == string(router.GET) {
					statusCode = http.StatusFound
				}
				return ctx.Redirect(a.cfg.GetSigninRoute(), statusCode)
			}
			return next(ctx)
		}
	}
}

// Login verifies credentials and sets the session cookie
func (a *RouteAuthenticator) Login(ctx router.Context, email, password string) error {
	token, err := a.auth.Login(ctx.Context(), email, password)
	if err != nil {
		a.Logger.Error("Login error: %s", err)
		return err
	}

	a.setCookieToken(ctx, token, a.cookieDuration)
	return nil
}

// Logout clears the session cookie. There is no server side session state
// and no revocation: a previously issued token stays valid until expiry.
func (a *RouteAuthenticator) Logout(ctx router.Context) {
	a.cookieDel(ctx, a.cfg.GetCookieName())
}

func (a *RouteAuthenticator) GetRedirect(ctx router.Context, def ...string) string {
	rejectedRoute := a.cfg.GetRejectedRouteKey()
	r := ctx.Cookies(rejectedRoute)
	if r == "" {
		if len(def) > 0 {
			return def[0]
		}
		return a.cfg.GetRejectedRouteDefault()
	}
	a.cookieDel(ctx, rejectedRoute)
	return r
}

func (a *RouteAuthenticator) SetRedirect(ctx router.Context) {
	rejectedRoute := a.cfg.GetRejectedRouteKey()

	a.Logger.Info("Setting redirect cookie", "key", rejectedRoute, "path", ctx.OriginalURL())

	ctx.Cookie(&router.Cookie{
		Name:     rejectedRoute,
		Value:    ctx.OriginalURL(),
		Expires:  time.Now().Add(time.Minute * 5),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
	})
}

func (a *RouteAuthenticator) setCookieToken(c router.Context, val string, duration time.Duration) {
	c.Cookie(&router.Cookie{
		Name:     a.cfg.GetCookieName(),
		Value:    val,
		Expires:  time.Now().Add(duration),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
	})
}

func (a *RouteAuthenticator) cookieDel(c router.Context, name string) {
	c.Cookie(&router.Cookie{
		Name:     name,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour * (24 * 365)),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
	})
}
