package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/coopworks/auth-service/internal/models"
	"github.com/coopworks/auth-service/internal/repository"
)

var (
	// ErrDuplicateIdentity is returned when a signup reuses a username or email.
	ErrDuplicateIdentity = errors.New("user already exists")
	// ErrInvalidCredentials covers both unknown identity and wrong password,
	// so responses cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAccountLocked is returned while an identity is inside its lockout window.
	ErrAccountLocked = errors.New("account locked")
	// ErrUserNotFound is returned when a verified token points at a vanished user.
	ErrUserNotFound = errors.New("user not found")
)

// DemoFederatedEmail identifies the simulated federated sign-in account.
const DemoFederatedEmail = "demo@gmail.com"

// SignupInput carries self-service registration fields.
type SignupInput struct {
	Username string
	Email    string
	Password string
	Unit     string
	Grade    string
}

// UpdateInput carries the profile fields a user may change.
// Empty fields are left untouched.
type UpdateInput struct {
	Unit        string
	Grade       string
	DisplayName string
}

// UserView is the public projection of a user record. It never carries
// the credential hash.
type UserView struct {
	ID       int64       `json:"id"`
	Username string      `json:"username"`
	Email    string      `json:"email"`
	Role     models.Role `json:"role"`
	Unit     string      `json:"unit"`
	Grade    string      `json:"grade"`
}

// AuthResponse is returned by every operation that establishes a session.
type AuthResponse struct {
	Token string   `json:"token"`
	User  UserView `json:"user"`
}

// AuthService orchestrates credential verification, attempt tracking and
// token issuance.
type AuthService interface {
	Signup(ctx context.Context, input SignupInput) (*AuthResponse, error)
	Login(ctx context.Context, email, password string) (*AuthResponse, error)
	UpdateProfile(ctx context.Context, token string, input UpdateInput) (*UserView, error)
	DemoFederatedLogin(ctx context.Context) (*AuthResponse, error)
}

type authService struct {
	userRepo     repository.UserRepository
	hasher       PasswordHasher
	verifier     CredentialVerifier
	demoVerifier CredentialVerifier
	tokens       TokenService
	attempts     AttemptTracker
}

// NewAuthService creates an AuthService wired to its collaborators.
func NewAuthService(userRepo repository.UserRepository, hasher PasswordHasher, tokens TokenService, attempts AttemptTracker) AuthService {
	return &authService{
		userRepo:     userRepo,
		hasher:       hasher,
		verifier:     NewPasswordCredentialVerifier(hasher),
		demoVerifier: NewDemoFederatedVerifier(),
		tokens:       tokens,
		attempts:     attempts,
	}
}

func (s *authService) Signup(ctx context.Context, input SignupInput) (*AuthResponse, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(input.Email)

	existing, err := s.userRepo.FindByUsernameOrEmail(ctx, username, email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateIdentity
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		DisplayName:  username,
		Role:         models.DefaultRole,
		Unit:         input.Unit,
		Grade:        input.Grade,
	}
	// The unique indexes on username and email close the race between the
	// duplicate check and the insert: a concurrent or retried signup fails
	// here instead of creating a second record.
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.establishSession(user)
}

func (s *authService) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	identity := strings.ToLower(strings.TrimSpace(email))

	// The lockout gate runs before any credential work, so a locked
	// identity costs no hash computation and leaks no timing signal.
	locked, err := s.attempts.IsLockedOut(ctx, identity)
	if err != nil {
		return nil, err
	}
	if locked {
		return nil, ErrAccountLocked
	}

	user, err := s.userRepo.FindByEmail(ctx, identity)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, s.failAttempt(ctx, identity)
		}
		return nil, err
	}

	if !s.verify(ctx, user, password) {
		return nil, s.failAttempt(ctx, identity)
	}

	if err := s.attempts.RecordSuccess(ctx, identity); err != nil {
		return nil, err
	}

	now := time.Now()
	user.LastLogin = &now
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return s.establishSession(user)
}

func (s *authService) UpdateProfile(ctx context.Context, token string, input UpdateInput) (*UserView, error) {
	userID, err := s.tokens.Verify(token)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if input.Unit != "" {
		user.Unit = input.Unit
	}
	if input.Grade != "" {
		user.Grade = input.Grade
	}
	if input.DisplayName != "" {
		user.DisplayName = input.DisplayName
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	view := publicView(user)
	return &view, nil
}

// DemoFederatedLogin signs in the fixed simulated federated account,
// creating it on first use. NOT for production: routed only outside
// production environments.
func (s *authService) DemoFederatedLogin(ctx context.Context) (*AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, DemoFederatedEmail)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		hash, hashErr := s.hasher.Hash("federated-demo-placeholder")
		if hashErr != nil {
			return nil, hashErr
		}
		user = &models.User{
			Username:     "google.demo",
			Email:        DemoFederatedEmail,
			PasswordHash: hash,
			DisplayName:  "Google Demo User",
			Role:         models.RoleGoogleUser,
			Unit:         "External",
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, err
		}
	}

	if !s.demoVerifier.Verify(ctx, user, "") {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	user.LastLogin = &now
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return s.establishSession(user)
}

func (s *authService) verify(ctx context.Context, user *models.User, password string) bool {
	return s.verifier.Verify(ctx, user, password)
}

// failAttempt records one failure and picks the user-facing error: the
// failure that reaches the maximum reports lockout, every earlier one
// reports the uniform invalid-credentials message.
func (s *authService) failAttempt(ctx context.Context, identity string) error {
	count, err := s.attempts.RecordFailure(ctx, identity)
	if err != nil {
		return err
	}
	if count >= MaxAttempts {
		return ErrAccountLocked
	}
	return ErrInvalidCredentials
}

func (s *authService) establishSession(user *models.User) (*AuthResponse, error) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{Token: token, User: publicView(user)}, nil
}

func publicView(user *models.User) UserView {
	return UserView{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
		Unit:     user.Unit,
		Grade:    user.Grade,
	}
}
