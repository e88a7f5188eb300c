package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/kulewers/members-only/internal/auth"
	"github.com/kulewers/members-only/internal/models"
	"github.com/kulewers/members-only/internal/repo"
)

// UserStore is the subset of the user repository the service needs.
type UserStore interface {
	Create(ctx context.Context, username, passwordHash string, status models.MembershipStatus, admin bool) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	SetMembershipStatus(ctx context.Context, id string, status models.MembershipStatus) error
	List(ctx context.Context) ([]models.User, error)
}

// UserService handles registration, login and membership upgrades.
type UserService struct {
	users UserStore
	hash  func(string) (string, error)
}

func NewUserService(users UserStore) *UserService {
	return &UserService{users: users, hash: auth.HashPassword}
}

// Register creates a user. Requesting admin also grants member status.
// TODO: split admin and member once product decides whether admins must
// still unlock membership with the code.
func (s *UserService) Register(ctx context.Context, username, password string, adminRequested bool) (*models.User, error) {
	hash, err := s.hash(password)
	if err != nil {
		return nil, err
	}

	status := models.MembershipGuest
	if adminRequested {
		status = models.MembershipMember
	}

	user, err := s.users.Create(ctx, username, hash, status, adminRequested)
	if errors.Is(err, repo.ErrDuplicateUsername) {
		return nil, ErrUsernameTaken
	}
	return user, err
}

// UsernameExists backs the sign-up uniqueness check.
func (s *UserService) UsernameExists(ctx context.Context, username string) (bool, error) {
	return s.users.UsernameExists(ctx, username)
}

// Authenticate checks username and password. Credential mismatches come back
// as *AuthFailure; anything else is a store error.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &AuthFailure{Reason: NoSuchUser}
	}
	if err != nil {
		return nil, err
	}

	if !auth.VerifyPassword(password, user.PasswordHash) {
		return nil, &AuthFailure{Reason: WrongPassword}
	}
	return user, nil
}

// GetByID resolves a session's user id.
func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return user, err
}

// UpgradeToMember marks the user as a member. Repeating it has no further effect.
func (s *UserService) UpgradeToMember(ctx context.Context, userID string) error {
	err := s.users.SetMembershipStatus(ctx, userID, models.MembershipMember)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// PromoteByUsername upgrades a user found by name.
func (s *UserService) PromoteByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := s.UpgradeToMember(ctx, user.ID); err != nil {
		return nil, err
	}
	user.MembershipStatus = models.MembershipMember
	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}
