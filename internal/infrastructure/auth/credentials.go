package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"github.com/barstock/backend/internal/infrastructure/config"
)

// ErrBadCredentials is returned when a login attempt fails. The same
// error covers unknown users and wrong passwords so responses do not
// leak which usernames exist.
var ErrBadCredentials = errors.New("invalid username or password")

type credential struct {
	password string
	role     Role
}

// CredentialStore checks login attempts against the statically
// configured user list.
type CredentialStore struct {
	users map[string]credential
}

// NewCredentialStore parses the configured "username:password:role"
// entries into a store.
func NewCredentialStore(cfg config.AuthConfig) (*CredentialStore, error) {
	users := make(map[string]credential, len(cfg.Users))
	for _, entry := range cfg.Users {
		parts := strings.SplitN(entry, ":", 3)
		if len(parts) != 3 || parts[0] == "" || parts[1] == "" {
			return nil, fmt.Errorf("malformed auth user entry %q, want username:password:role", entry)
		}
		role := Role(parts[2])
		if !role.IsValid() {
			return nil, fmt.Errorf("unknown role %q for user %q", parts[2], parts[0])
		}
		if _, exists := users[parts[0]]; exists {
			return nil, fmt.Errorf("duplicate auth user %q", parts[0])
		}
		users[parts[0]] = credential{password: parts[1], role: role}
	}
	return &CredentialStore{users: users}, nil
}

// Authenticate verifies a username and password, returning the user's
// role on success.
func (s *CredentialStore) Authenticate(username, password string) (Role, error) {
	cred, ok := s.users[username]
	if !ok {
		// Burn a comparison anyway to keep timing uniform.
		subtle.ConstantTimeCompare([]byte(password), []byte(password))
		return "", ErrBadCredentials
	}
	if subtle.ConstantTimeCompare([]byte(password), []byte(cred.password)) != 1 {
		return "", ErrBadCredentials
	}
	return cred.role, nil
}
