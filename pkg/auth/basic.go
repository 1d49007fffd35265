// Package auth holds the catalog credentials and the HTTP Basic
// authentication header built from them.
package auth

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
)

const (
	// EnvUsername is the environment variable holding the catalog user name.
	EnvUsername = "LM_USERNAME"
	// EnvPassword is the environment variable holding the catalog password.
	EnvPassword = "LM_PASSWORD"
)

// ErrMissingCredentials is returned when either credential variable is unset or empty.
var ErrMissingCredentials = errors.New("LM_USERNAME and LM_PASSWORD environment variables must be set")

// Credentials is the username/password pair sent with every request.
type Credentials struct {
	Username string
	Password string
}

// FromEnv reads the credentials from the process environment.
func FromEnv() (Credentials, error) {
	return FromLookup(os.LookupEnv)
}

// FromLookup reads the credentials through the given lookup function.
func FromLookup(lookup func(string) (string, bool)) (Credentials, error) {
	username, _ := lookup(EnvUsername)
	password, _ := lookup(EnvPassword)

	if username == "" || password == "" {
		return Credentials{}, ErrMissingCredentials
	}

	return Credentials{Username: username, Password: password}, nil
}

// IsZero reports whether no credentials are set.
func (c Credentials) IsZero() bool {
	return c.Username == "" && c.Password == ""
}

// Header returns the value of the Authorization header, "Basic <encoded>".
func (c Credentials) Header() string {
	credentials := fmt.Sprintf("%s:%s", c.Username, c.Password)
	encoded := base64.StdEncoding.EncodeToString([]byte(credentials))
	return fmt.Sprintf("Basic %s", encoded)
}

// String hides the password so credentials can be logged safely.
func (c Credentials) String() string {
	return fmt.Sprintf("%s:***", c.Username)
}
