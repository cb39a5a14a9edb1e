package service

import (
	"context"
	"errors"

	"github.com/coopworks/auth-service/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// ErrEmptyPassword is returned when a caller tries to hash an empty password.
var ErrEmptyPassword = errors.New("password must not be empty")

// PasswordHasher produces and checks one-way credential digests.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}

type bcryptHasher struct {
	cost int
}

// NewPasswordHasher creates a bcrypt-backed PasswordHasher.
// The default cost keeps each call in the tens-of-milliseconds range.
func NewPasswordHasher() PasswordHasher {
	return &bcryptHasher{cost: bcrypt.DefaultCost}
}

func (h *bcryptHasher) Hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", ErrEmptyPassword
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify returns false for a mismatch and for a malformed digest alike;
// callers treat both as a failed credential check.
func (h *bcryptHasher) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}

// CredentialVerifier checks a presented secret against a user record.
// Variants cover regular password accounts and the simulated federated
// demo account; real third-party federation is intentionally not modeled.
type CredentialVerifier interface {
	Verify(ctx context.Context, user *models.User, secret string) bool
}

type passwordCredentialVerifier struct {
	hasher PasswordHasher
}

// NewPasswordCredentialVerifier verifies secrets against the stored bcrypt digest.
func NewPasswordCredentialVerifier(hasher PasswordHasher) CredentialVerifier {
	return &passwordCredentialVerifier{hasher: hasher}
}

func (v *passwordCredentialVerifier) Verify(_ context.Context, user *models.User, secret string) bool {
	return v.hasher.Verify(secret, user.PasswordHash)
}

// demoFederatedVerifier accepts only the fixed demo federated identity.
// NOT for production use: it exists to exercise the federated sign-in
// flow without a real identity provider.
type demoFederatedVerifier struct{}

// NewDemoFederatedVerifier creates the demo federated credential variant.
func NewDemoFederatedVerifier() CredentialVerifier {
	return demoFederatedVerifier{}
}

func (demoFederatedVerifier) Verify(_ context.Context, user *models.User, _ string) bool {
	return user != nil && user.Role == models.RoleGoogleUser && user.Email == DemoFederatedEmail
}
