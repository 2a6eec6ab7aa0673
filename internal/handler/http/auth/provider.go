package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"os"
	"strings"

	authservice "amal-cms/internal/service/auth"
)

// BasicAuthProvider checks credentials against the ADMIN_USER and
// ADMIN_USER_PASSWORD environment variables. The CMS has a single admin
// account; editors share it, so there is no user store behind this.
type BasicAuthProvider struct {
	minPasswordLength int
	weakPasswords     []string
}

// NewBasicAuthProvider builds a provider with the policy loaded from the
// security config.
func NewBasicAuthProvider(minPasswordLength int, weakPasswords []string) *BasicAuthProvider {
	return &BasicAuthProvider{
		minPasswordLength: minPasswordLength,
		weakPasswords:     weakPasswords,
	}
}

// ValidateCredentials rejects empty or policy-violating credentials first,
// then compares against the environment in constant time. Both username and
// password comparisons always run so a mismatch in one does not shortcut
// the timing of the other.
func (p *BasicAuthProvider) ValidateCredentials(ctx context.Context, creds authservice.Credentials) error {
	if creds.Username == "" || creds.Password == "" {
		return fmt.Errorf("credentials must not be empty")
	}
	if len(creds.Password) < p.minPasswordLength {
		return fmt.Errorf("password must be at least %d characters", p.minPasswordLength)
	}
	for _, weak := range p.weakPasswords {
		if creds.Password == weak || strings.HasPrefix(creds.Password, weak) {
			return fmt.Errorf("weak password detected")
		}
	}

	adminUser := os.Getenv("ADMIN_USER")
	adminPass := os.Getenv("ADMIN_USER_PASSWORD")

	userMatch := subtle.ConstantTimeCompare([]byte(creds.Username), []byte(adminUser)) == 1
	passMatch := subtle.ConstantTimeCompare([]byte(creds.Password), []byte(adminPass)) == 1
	if !userMatch || !passMatch {
		return fmt.Errorf("invalid credentials")
	}
	return nil
}

// GetRequirements exposes the password policy for startup validation.
func (p *BasicAuthProvider) GetRequirements() authservice.CredentialRequirements {
	return authservice.CredentialRequirements{
		MinPasswordLength: p.minPasswordLength,
		WeakPasswords:     p.weakPasswords,
	}
}

// Name identifies the provider in logs.
func (p *BasicAuthProvider) Name() string {
	return "basic"
}

// IdentifyUser maps an email to a role. With a single admin account the
// only possible answers are RoleAdmin or not found.
func (p *BasicAuthProvider) IdentifyUser(ctx context.Context, email string) (string, error) {
	if email == "" {
		return "", fmt.Errorf("email must not be empty")
	}
	if subtle.ConstantTimeCompare([]byte(email), []byte(os.Getenv("ADMIN_USER"))) == 1 {
		return RoleAdmin, nil
	}
	return "", fmt.Errorf("user not found")
}
