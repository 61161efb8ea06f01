package service

//go:generate mockgen -destination=../../mocks/mock_user_repository.go -package=mocks github.com/Kashawn-Brown/Career-Tracker-sub003/internal/auth/domain UserRepository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Kashawn-Brown/Career-Tracker-sub003/internal/auth/domain"
	"github.com/Kashawn-Brown/Career-Tracker-sub003/internal/auth/dto"
	autherror "github.com/Kashawn-Brown/Career-Tracker-sub003/internal/errors"
	"github.com/Kashawn-Brown/Career-Tracker-sub003/pkg/constant"
)

// AccountLockedError carries the lockout details so the HTTP layer can
// answer with a remaining-time estimate. It unwraps to ErrAccountLocked.
type AccountLockedError struct {
	Info *domain.LockoutInfo
}

func (e *AccountLockedError) Error() string {
	if e.Info != nil && e.Info.UnlockAt != nil {
		return fmt.Sprintf("account is temporarily locked, try again in %s",
			HumanDuration(time.Until(*e.Info.UnlockAt)))
	}
	return autherror.ErrAccountLocked.Error()
}

func (e *AccountLockedError) Unwrap() error { return autherror.ErrAccountLocked }

// UserService orchestrates the credential flow around the protection core:
// account lock check, forced-reset check, credential verification, and the
// failure/success bookkeeping.
type UserService struct {
	repo         domain.UserRepository
	tokenService TokenGenerator
	lockout      *LockoutService
}

func NewUserService(repo domain.UserRepository, tokenService TokenGenerator, lockout *LockoutService) *UserService {
	return &UserService{
		repo:         repo,
		tokenService: tokenService,
		lockout:      lockout,
	}
}

func (s *UserService) Register(ctx context.Context, input dto.RegisterInput) (*domain.User, error) {
	existingUser, err := s.repo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existingUser != nil {
		return nil, autherror.ErrEmailAlreadyInUse
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	user := &domain.User{
		ID:           uuid.New().String(),
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		RoleID:       constant.DefaultUserRoleID,
		RoleName:     constant.DefaultUserRoleName,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *UserService) Login(ctx context.Context, input dto.LoginInput) (*dto.TokenPair, error) {
	user, err := s.repo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		// Unknown account: same response as a bad password so the login
		// endpoint does not become an email oracle.
		return nil, autherror.ErrInvalidCredentials
	}

	lockInfo, err := s.lockout.IsAccountLocked(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if lockInfo.Locked {
		return nil, &AccountLockedError{Info: lockInfo}
	}

	forced, _, err := s.lockout.RequiresPasswordReset(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if forced {
		return nil, autherror.ErrPasswordResetRequired
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
		failInfo, err := s.lockout.RecordFailedAttempt(ctx, user.ID, input.IPAddress, input.UserAgent, "invalid password")
		if err != nil {
			return nil, err
		}
		if failInfo.Locked {
			return nil, &AccountLockedError{Info: failInfo}
		}
		return nil, autherror.ErrInvalidCredentials
	}

	if err := s.lockout.RecordSuccessfulLogin(ctx, user.ID, input.IPAddress, input.UserAgent); err != nil {
		return nil, err
	}

	return s.tokenService.IssuePair(user.ID, user.Email, user.RoleName)
}

func (s *UserService) Refresh(ctx context.Context, input dto.RefreshInput) (*dto.TokenPair, error) {
	return s.tokenService.Rotate(input.RefreshToken)
}
