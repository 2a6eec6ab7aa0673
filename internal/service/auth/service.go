// Package auth holds the transport-independent side of authentication: the
// provider contract, the credential types, and the public-endpoint policy.
// The HTTP pieces (token issuance, JWT validation) live in the handler
// layer.
package auth

import (
	"context"
	"strings"
)

// Credentials is a username and password pair as submitted at login.
type Credentials struct {
	Username string
	Password string
}

// CredentialRequirements is the password policy a provider enforces.
type CredentialRequirements struct {
	MinPasswordLength int
	WeakPasswords     []string
}

// AuthProvider abstracts the credential backend. The CMS ships the
// environment-backed single-admin provider; anything that can answer these
// four questions can replace it.
type AuthProvider interface {
	// ValidateCredentials checks a login attempt.
	ValidateCredentials(ctx context.Context, creds Credentials) error

	// IdentifyUser returns the role for a known user.
	IdentifyUser(ctx context.Context, username string) (string, error)

	// GetRequirements returns the provider's password policy.
	GetRequirements() CredentialRequirements

	// Name identifies the provider in logs.
	Name() string
}

// AuthService pairs a provider with the list of path prefixes that skip
// authentication. Published content is public; everything else needs a
// token.
type AuthService struct {
	provider        AuthProvider
	publicEndpoints []string
}

// NewAuthService builds the service around the given provider.
func NewAuthService(provider AuthProvider, publicEndpoints []string) *AuthService {
	return &AuthService{
		provider:        provider,
		publicEndpoints: publicEndpoints,
	}
}

// ValidateCredentials delegates to the configured provider.
func (s *AuthService) ValidateCredentials(ctx context.Context, creds Credentials) error {
	return s.provider.ValidateCredentials(ctx, creds)
}

// IsPublicEndpoint reports whether path matches any public prefix.
func (s *AuthService) IsPublicEndpoint(path string) bool {
	for _, endpoint := range s.publicEndpoints {
		if strings.HasPrefix(path, endpoint) {
			return true
		}
	}
	return false
}

// GetProvider returns the configured provider.
func (s *AuthService) GetProvider() AuthProvider {
	return s.provider
}
