package auth

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestFromLookup(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr bool
	}{
		{
			name: "both set",
			env:  map[string]string{EnvUsername: "user", EnvPassword: "pass"},
		},
		{
			name:    "username missing",
			env:     map[string]string{EnvPassword: "pass"},
			wantErr: true,
		},
		{
			name:    "password empty",
			env:     map[string]string{EnvUsername: "user", EnvPassword: ""},
			wantErr: true,
		},
		{
			name:    "nothing set",
			env:     map[string]string{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creds, err := FromLookup(lookupFrom(tt.env))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMissingCredentials)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, Credentials{Username: "user", Password: "pass"}, creds)
		})
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvUsername, "alice")
	t.Setenv(EnvPassword, "s3cret")

	creds, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, Credentials{Username: "alice", Password: "s3cret"}, creds)
}

func TestHeader(t *testing.T) {
	creds := Credentials{Username: "Aladdin", Password: "open sesame"}
	assert.Equal(t, "Basic QWxhZGRpbjpvcGVuIHNlc2FtZQ==", creds.Header())

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", creds.Header())

	user, pass, ok := req.BasicAuth()
	require.True(t, ok)
	assert.Equal(t, creds, Credentials{Username: user, Password: pass})
}

func TestIsZero(t *testing.T) {
	assert.True(t, Credentials{}.IsZero())
	assert.False(t, Credentials{Username: "u"}.IsZero())
}

func TestStringHidesPassword(t *testing.T) {
	creds := Credentials{Username: "user", Password: "secret"}
	assert.Equal(t, "user:***", creds.String())
}
