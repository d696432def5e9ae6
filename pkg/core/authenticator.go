package core

import (
	"fmt"
	"net/http"
	"strings"
)

// Authenticator decorates outbound requests (REST calls and websocket
// handshakes) with credentials.
type Authenticator interface {
	AuthenticationType() string
	Authenticate(req *http.Request) error
	Validate() error
}

const (
	AuthTypeBasic       = "basic"
	AuthTypeBearerToken = "bearerToken"
	AuthTypeNoAuth      = "noAuth"
)

// BasicAuthenticator sends HTTP basic credentials.
type BasicAuthenticator struct {
	Username string
	Password string
}

func NewBasicAuthenticator(username, password string) (*BasicAuthenticator, error) {
	a := &BasicAuthenticator{Username: username, Password: password}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *BasicAuthenticator) AuthenticationType() string { return AuthTypeBasic }

func (a *BasicAuthenticator) Authenticate(req *http.Request) error {
	req.SetBasicAuth(a.Username, a.Password)
	return nil
}

func (a *BasicAuthenticator) Validate() error {
	if err := RequireString("username", a.Username); err != nil {
		return err
	}
	if err := RequireString("password", a.Password); err != nil {
		return err
	}
	if hasBadCredentialChars(a.Username) || hasBadCredentialChars(a.Password) {
		return &ValidationError{Field: "username", Reason: "credentials must not be wrapped in quotes or braces"}
	}
	return nil
}

// BearerTokenAuthenticator sends a caller-managed access token.
type BearerTokenAuthenticator struct {
	Token string
}

func NewBearerTokenAuthenticator(token string) (*BearerTokenAuthenticator, error) {
	a := &BearerTokenAuthenticator{Token: token}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *BearerTokenAuthenticator) AuthenticationType() string { return AuthTypeBearerToken }

func (a *BearerTokenAuthenticator) Authenticate(req *http.Request) error {
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", a.Token))
	return nil
}

func (a *BearerTokenAuthenticator) Validate() error {
	return RequireString("bearer_token", a.Token)
}

// NoAuthAuthenticator leaves requests untouched, e.g. for a local proxy that
// injects credentials itself.
type NoAuthAuthenticator struct{}

func (NoAuthAuthenticator) AuthenticationType() string      { return AuthTypeNoAuth }
func (NoAuthAuthenticator) Authenticate(*http.Request) error { return nil }
func (NoAuthAuthenticator) Validate() error                  { return nil }

// A pasted credential like "{user}" or "\"user\"" is almost always a copy error.
func hasBadCredentialChars(value string) bool {
	if value == "" {
		return false
	}
	return strings.HasPrefix(value, "{") || strings.HasSuffix(value, "}") ||
		strings.HasPrefix(value, `"`) || strings.HasSuffix(value, `"`)
}
