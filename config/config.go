package config

import (
	"fmt"
	"path/filepath"
)

// BaseConfig is the application configuration tree. go-config hydrates it
// from ./config/app.json plus environment overrides; Validate fills the
// defaults for anything a deployment leaves out.
type BaseConfig struct {
	Environment string      `json:"environment" yaml:"environment"`
	Server      Server      `json:"server" yaml:"server"`
	Auth        Auth        `json:"auth" yaml:"auth"`
	Persistence Persistence `json:"persistence" yaml:"persistence"`
	Uploads     Uploads     `json:"uploads" yaml:"uploads"`
}

type Server struct {
	Address string `json:"address" yaml:"address"`
}

type Auth struct {
	SigningKey           string   `json:"signing_key" yaml:"signing_key"`
	ContextKey           string   `json:"context_key" yaml:"context_key"`
	AuthScheme           string   `json:"auth_scheme" yaml:"auth_scheme"`
	TokenExpirationHours int      `json:"token_expiration_hours" yaml:"token_expiration_hours"`
	Issuer               string   `json:"issuer" yaml:"issuer"`
	Audience             []string `json:"audience" yaml:"audience"`
}

type Persistence struct {
	Driver string `json:"driver" yaml:"driver"`
	DSN    string `json:"dsn" yaml:"dsn"`
}

type Uploads struct {
	Dir      string `json:"dir" yaml:"dir"`
	MaxBytes int64  `json:"max_bytes" yaml:"max_bytes"`
}

func (c *BaseConfig) Validate() error {
	if c.Environment == "" {
		c.Environment = "development"
	}

	if c.Server.Address == "" {
		c.Server.Address = ":3000"
	}

	if c.Auth.SigningKey == "" {
		if c.Production() {
			return fmt.Errorf("config: auth.signing_key is required in production")
		}
		c.Auth.SigningKey = "dev-secret-do-not-use-in-production"
	}
	if c.Auth.ContextKey == "" {
		c.Auth.ContextKey = "user"
	}
	if c.Auth.AuthScheme == "" {
		c.Auth.AuthScheme = "Bearer"
	}
	if c.Auth.TokenExpirationHours <= 0 {
		c.Auth.TokenExpirationHours = 168
	}
	if c.Auth.Issuer == "" {
		c.Auth.Issuer = "careers"
	}

	if c.Persistence.DSN == "" {
		c.Persistence.DSN = "file:careers.db?cache=shared&_pragma=foreign_keys(1)"
	}

	if c.Uploads.Dir == "" {
		c.Uploads.Dir = filepath.Join(".", "uploads")
	}
	if c.Uploads.MaxBytes <= 0 {
		c.Uploads.MaxBytes = 5 * 1024 * 1024
	}

	return nil
}

func (c *BaseConfig) Production() bool {
	return c.Environment == "production"
}

func (c *BaseConfig) GetEnvironment() string {
	return c.Environment
}

func (c *BaseConfig) GetServer() Server {
	return c.Server
}

func (c *BaseConfig) GetAuth() Auth {
	return c.Auth
}

func (c *BaseConfig) GetPersistence() Persistence {
	return c.Persistence
}

func (c *BaseConfig) GetUploads() Uploads {
	return c.Uploads
}

func (s Server) GetAddress() string {
	return s.Address
}

func (a Auth) GetSigningKey() string {
	return a.SigningKey
}

func (a Auth) GetContextKey() string {
	return a.ContextKey
}

func (a Auth) GetTokenExpiration() int {
	return a.TokenExpirationHours
}

func (a Auth) GetAuthScheme() string {
	return a.AuthScheme
}

func (a Auth) GetIssuer() string {
	return a.Issuer
}

func (a Auth) GetAudience() []string {
	return a.Audience
}

func (p Persistence) GetDriver() string {
	return p.Driver
}

func (p Persistence) GetDSN() string {
	return p.DSN
}

func (u Uploads) GetDir() string {
	return u.Dir
}

func (u Uploads) GetMaxBytes() int64 {
	return u.MaxBytes
}
