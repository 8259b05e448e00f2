// Package auth carries the signed-in user's identity between configuration
// and the chat layer. Obtaining the token is the login flow's business, not
// this package's.
package auth

// EnvConfig defines identity fields used for parsing from environment
// variables
type EnvConfig struct {
	UserID    string `env:"USER_ID"`
	UserName  string `env:"USER_NAME"`
	AuthToken string `env:"AUTH_TOKEN"`
}

// Credentials exposes the active user's identity.
type Credentials struct {
	UserID    string
	UserName  string
	AuthToken string
}

// FromEnvConfig builds Credentials from a parsed EnvConfig.
func FromEnvConfig(cfg EnvConfig) Credentials {
	return Credentials{
		UserID:    cfg.UserID,
		UserName:  cfg.UserName,
		AuthToken: cfg.AuthToken,
	}
}

// Authenticated reports whether a user is signed in. Callers without a
// signed-in user are expected to route to the login flow.
func (c Credentials) Authenticated() bool {
	return c.AuthToken != ""
}

// CanSend reports whether both identity fields required for sending a
// message are populated.
func (c Credentials) CanSend() bool {
	return c.UserID != "" && c.UserName != ""
}
