package config

func (c *BaseConfig) GetApp() App {
	return c.App
}

func (c *BaseConfig) GetAuth() Auth {
	return c.Auth
}

func (c *BaseConfig) GetPersistence() Persistence {
	return c.Persistence
}

func (c *BaseConfig) GetServer() Server {
	return c.Server
}

func (c *BaseConfig) GetViews() Views {
	return c.Views
}

func (c *BaseConfig) GetUploads() Uploads {
	return c.Uploads
}

func (a App) GetName() string {
	if a.Name == "" {
		return "blog"
	}
	return a.Name
}

func (a App) GetDebug() bool {
	return a.Debug
}

func (a Auth) GetSigningKey() string {
	return a.SigningKey
}

func (a Auth) GetTokenExpiration() int {
	if a.TokenExpiration == 0 {
		return 168
	}
	return a.TokenExpiration
}

func (a Auth) GetIssuer() string {
	if a.Issuer == "" {
		return "go-blog"
	}
	return a.Issuer
}

func (a Auth) GetContextKey() string {
	if a.ContextKey == "" {
		return "session"
	}
	return a.ContextKey
}

func (a Auth) GetCookieName() string {
	if a.CookieName == "" {
		return "token"
	}
	return a.CookieName
}

func (a Auth) GetRejectedRouteKey() string {
	if a.RejectedRouteKey == "" {
		return "rejected_route"
	}
	return a.RejectedRouteKey
}

func (a Auth) GetRejectedRouteDefault() string {
	if a.RejectedRouteDefault == "" {
		return "/"
	}
	return a.RejectedRouteDefault
}

func (a Auth) GetSigninRoute() string {
	if a.SigninRoute == "" {
		return "/user/signin"
	}
	return a.SigninRoute
}

func (p Persistence) GetDriver() string {
	if p.Driver == "" {
		return "sqlite"
	}
	return p.Driver
}

func (p Persistence) GetDSN() string {
	if p.DSN == "" {
		return "file:blog.db?cache=shared&mode=rwc"
	}
	return p.DSN
}

func (p Persistence) GetDebug() bool {
	return p.Debug
}

// GetServer is the connection string the persistence client reports in its
// own diagnostics; same value as the DSN.
func (p Persistence) GetServer() string {
	return p.GetDSN()
}

func (p Persistence) GetOtelIdentifier() string {
	return p.OtelIdentifier
}

func (s Server) GetAddr() string {
	if s.Addr == "" {
		return ":8000"
	}
	return s.Addr
}

func (v Views) GetDir() string {
	if v.Dir == "" {
		return "./views"
	}
	return v.Dir
}

func (v Views) GetExt() string {
	if v.Ext == "" {
		return ".html"
	}
	return v.Ext
}

func (v Views) GetReload() bool {
	return v.Reload
}

func (v Views) GetAssets() string {
	if v.Assets == "" {
		return "./public"
	}
	return v.Assets
}

func (u Uploads) GetDir() string {
	if u.Dir == "" {
		return "./public/uploads"
	}
	return u.Dir
}

func (u Uploads) GetPublicPrefix() string {
	if u.PublicPrefix == "" {
		return "/uploads"
	}
	return u.PublicPrefix
}
