package config

import (
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

// BaseConfig is the application configuration tree. Values are loaded from
// config files and environment overrides by the config container.
type BaseConfig struct {
	App         App         `json:"app"`
	Auth        Auth        `json:"auth"`
	Persistence Persistence `json:"persistence"`
	Server      Server      `json:"server"`
	Views       Views       `json:"views"`
	Uploads     Uploads     `json:"uploads"`
}

func (a BaseConfig) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.Auth),
	)
}

type App struct {
	Name  string `json:"name"`
	Debug bool   `json:"debug"`
}

type Auth struct {
	SigningKey           string `json:"signing_key"`
	TokenExpiration      int    `json:"token_expiration"`
	Issuer               string `json:"issuer"`
	ContextKey           string `json:"context_key"`
	CookieName           string `json:"cookie_name"`
	RejectedRouteKey     string `json:"rejected_route_key"`
	RejectedRouteDefault string `json:"rejected_route_default"`
	SigninRoute          string `json:"signin_route"`
}

func (a Auth) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.SigningKey, validation.Required, validation.Length(32, 0)),
	)
}

type Persistence struct {
	Driver                string `json:"driver"`
	DSN                   string `json:"dsn"`
	Debug                 bool   `json:"debug"`
	PingTimeoutExpression string `json:"ping_timeout"`
	OtelIdentifier        string `json:"otel_identifier"`
}

func (p Persistence) GetPingTimeout() time.Duration {
	if p.PingTimeoutExpression == "" {
		return 5 * time.Second
	}
	dur, err := time.ParseDuration(p.PingTimeoutExpression)
	if err != nil {
		panic(
			fmt.Sprintf("unable to parse time: expr %s", p.PingTimeoutExpression),
		)
	}
	return dur
}

type Server struct {
	Addr string `json:"addr"`
}

type Views struct {
	Dir    string `json:"dir"`
	Ext    string `json:"ext"`
	Reload bool   `json:"reload"`
	Assets string `json:"assets"`
}

type Uploads struct {
	Dir          string `json:"dir"`
	PublicPrefix string `json:"public_prefix"`
}
