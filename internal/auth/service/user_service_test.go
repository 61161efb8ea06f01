package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Kashawn-Brown/Career-Tracker-sub003/internal/auth/domain"
	"github.com/Kashawn-Brown/Career-Tracker-sub003/internal/auth/dto"
	"github.com/Kashawn-Brown/Career-Tracker-sub003/internal/auth/service"
	autherror "github.com/Kashawn-Brown/Career-Tracker-sub003/internal/errors"
	"github.com/Kashawn-Brown/Career-Tracker-sub003/internal/mocks"
	"github.com/Kashawn-Brown/Career-Tracker-sub003/pkg/constant"
)

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

type loginFixture struct {
	userRepo     *mocks.MockUserRepository
	securityRepo *mocks.MockSecurityRepository
	tokens       *mocks.MockTokenGenerator
	svc          *service.UserService
}

func newLoginFixture(t *testing.T) *loginFixture {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	userRepo := mocks.NewMockUserRepository(ctrl)
	securityRepo := mocks.NewMockSecurityRepository(ctrl)
	tokens := mocks.NewMockTokenGenerator(ctrl)
	lockout := service.NewLockoutService(securityRepo, userRepo, nil)

	return &loginFixture{
		userRepo:     userRepo,
		securityRepo: securityRepo,
		tokens:       tokens,
		svc:          service.NewUserService(userRepo, tokens, lockout),
	}
}

func TestUserService_Register_Success(t *testing.T) {
	f := newLoginFixture(t)

	input := dto.RegisterInput{Email: "test@example.com", Password: "password123"}

	f.userRepo.EXPECT().GetByEmail(gomock.Any(), input.Email).Return(nil, nil)
	f.userRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	user, err := f.svc.Register(context.Background(), input)

	assert.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, input.Email, user.Email)
	assert.NotEmpty(t, user.ID)
	assert.NotEmpty(t, user.PasswordHash)
	assert.Equal(t, constant.DefaultUserRoleID, user.RoleID)
	assert.NotZero(t, user.CreatedAt)
}

func TestUserService_Register_EmailAlreadyExists(t *testing.T) {
	f := newLoginFixture(t)

	input := dto.RegisterInput{Email: "test@example.com", Password: "password123"}
	f.userRepo.EXPECT().GetByEmail(gomock.Any(), input.Email).
		Return(&domain.User{ID: "existing", Email: input.Email}, nil)

	user, err := f.svc.Register(context.Background(), input)

	assert.ErrorIs(t, err, autherror.ErrEmailAlreadyInUse)
	assert.Nil(t, user)
}

func TestUserService_Login_Success(t *testing.T) {
	f := newLoginFixture(t)

	user := &domain.User{
		ID:           "user-1",
		Email:        "test@example.com",
		PasswordHash: hashPassword(t, "correct-password"),
		RoleName:     "user",
	}

	f.userRepo.EXPECT().GetByEmail(gomock.Any(), user.Email).Return(user, nil)
	// Lock check, then forced-reset check.
	f.securityRepo.EXPECT().GetSecurityRecord(gomock.Any(), user.ID).Return(nil, nil).Times(2)
	f.securityRepo.EXPECT().InsertAuditEntry(gomock.Any(), auditEvent(domain.EventLoginSuccess)).Return(nil)
	f.securityRepo.EXPECT().EnsureSecurityRecord(gomock.Any(), user.ID).
		Return(&domain.SecurityRecord{UserID: user.ID}, nil)
	f.securityRepo.EXPECT().ResetLockoutCount(gomock.Any(), user.ID).Return(nil)
	f.tokens.EXPECT().IssuePair(user.ID, user.Email, user.RoleName).
		Return(&dto.TokenPair{AccessToken: "access", RefreshToken: "refresh"}, nil)

	pair, err := f.svc.Login(context.Background(), dto.LoginInput{
		Email:    user.Email,
		Password: "correct-password",
	})

	require.NoError(t, err)
	require.NotNil(t, pair)
	assert.Equal(t, "access", pair.AccessToken)
	assert.Equal(t, "refresh", pair.RefreshToken)
}

func TestUserService_Login_UnknownUser(t *testing.T) {
	f := newLoginFixture(t)

	f.userRepo.EXPECT().GetByEmail(gomock.Any(), "ghost@example.com").Return(nil, nil)

	pair, err := f.svc.Login(context.Background(), dto.LoginInput{
		Email:    "ghost@example.com",
		Password: "whatever",
	})

	assert.ErrorIs(t, err, autherror.ErrInvalidCredentials)
	assert.Nil(t, pair)
}

func TestUserService_Login_WrongPassword(t *testing.T) {
	f := newLoginFixture(t)

	user := &domain.User{
		ID:           "user-1",
		Email:        "test@example.com",
		PasswordHash: hashPassword(t, "correct-password"),
	}

	f.userRepo.EXPECT().GetByEmail(gomock.Any(), user.Email).Return(user, nil)
	f.securityRepo.EXPECT().GetSecurityRecord(gomock.Any(), user.ID).Return(nil, nil).Times(2)
	f.securityRepo.EXPECT().InsertAuditEntry(gomock.Any(), auditEvent(domain.EventLoginFailure)).Return(nil)
	f.securityRepo.EXPECT().EnsureSecurityRecord(gomock.Any(), user.ID).
		Return(&domain.SecurityRecord{UserID: user.ID}, nil)
	f.securityRepo.EXPECT().CountFailedLogins(gomock.Any(), user.ID, gomock.Any()).Return(2, 1, nil)

	pair, err := f.svc.Login(context.Background(), dto.LoginInput{
		Email:    user.Email,
		Password: "wrong-password",
	})

	assert.ErrorIs(t, err, autherror.ErrInvalidCredentials)
	assert.Nil(t, pair)
}

// TestUserService_Login_FifthFailureLocks walks the documented scenario: four
// failures leave the account open, the fifth imposes a 15 minute lock.
func TestUserService_Login_FifthFailureLocks(t *testing.T) {
	f := newLoginFixture(t)

	user := &domain.User{
		ID:           "user-1",
		Email:        "test@example.com",
		PasswordHash: hashPassword(t, "correct-password"),
	}

	f.userRepo.EXPECT().GetByEmail(gomock.Any(), user.Email).Return(user, nil)
	f.securityRepo.EXPECT().GetSecurityRecord(gomock.Any(), user.ID).Return(nil, nil).Times(2)
	f.securityRepo.EXPECT().InsertAuditEntry(gomock.Any(), auditEvent(domain.EventLoginFailure)).Return(nil)
	f.securityRepo.EXPECT().EnsureSecurityRecord(gomock.Any(), user.ID).
		Return(&domain.SecurityRecord{UserID: user.ID, LockoutCount: 0}, nil)
	f.securityRepo.EXPECT().CountFailedLogins(gomock.Any(), user.ID, gomock.Any()).Return(5, 1, nil)
	f.securityRepo.EXPECT().ImposeLockout(gomock.Any(), user.ID, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, userID string, until time.Time, reason string) (*domain.SecurityRecord, error) {
			assert.WithinDuration(t, time.Now().Add(15*time.Minute), until, 5*time.Second)
			return &domain.SecurityRecord{
				UserID:       userID,
				IsLocked:     true,
				LockoutCount: 1,
				LockoutUntil: &until,
			}, nil
		})
	f.securityRepo.EXPECT().InsertAuditEntry(gomock.Any(), auditEvent(domain.EventAccountLocked)).Return(nil)

	pair, err := f.svc.Login(context.Background(), dto.LoginInput{
		Email:    user.Email,
		Password: "wrong-password",
	})

	assert.Nil(t, pair)
	assert.ErrorIs(t, err, autherror.ErrAccountLocked)

	var locked *service.AccountLockedError
	require.ErrorAs(t, err, &locked)
	require.NotNil(t, locked.Info.UnlockAt)
	assert.Equal(t, 1, locked.Info.Progression)
}

func TestUserService_Login_AlreadyLocked(t *testing.T) {
	f := newLoginFixture(t)

	user := &domain.User{
		ID:           "user-1",
		Email:        "test@example.com",
		PasswordHash: hashPassword(t, "correct-password"),
	}
	until := time.Now().Add(20 * time.Minute)

	f.userRepo.EXPECT().GetByEmail(gomock.Any(), user.Email).Return(user, nil)
	f.securityRepo.EXPECT().GetSecurityRecord(gomock.Any(), user.ID).Return(&domain.SecurityRecord{
		UserID:       user.ID,
		IsLocked:     true,
		LockoutCount: 1,
		LockoutUntil: &until,
	}, nil)

	// The password is never even checked, so no failure entry is written.
	pair, err := f.svc.Login(context.Background(), dto.LoginInput{
		Email:    user.Email,
		Password: "correct-password",
	})

	assert.Nil(t, pair)
	assert.ErrorIs(t, err, autherror.ErrAccountLocked)
}

func TestUserService_Login_ForcedResetBlocks(t *testing.T) {
	f := newLoginFixture(t)

	user := &domain.User{
		ID:           "user-1",
		Email:        "test@example.com",
		PasswordHash: hashPassword(t, "correct-password"),
	}

	f.userRepo.EXPECT().GetByEmail(gomock.Any(), user.Email).Return(user, nil)
	f.securityRepo.EXPECT().GetSecurityRecord(gomock.Any(), user.ID).Return(&domain.SecurityRecord{
		UserID: user.ID,
	}, nil)
	f.securityRepo.EXPECT().GetSecurityRecord(gomock.Any(), user.ID).Return(&domain.SecurityRecord{
		UserID:             user.ID,
		ForcePasswordReset: true,
		ForcePasswordResetReason: "suspicious activity",
	}, nil)

	// Even with the correct password, the account is routed to the reset
	// flow while the flag is set.
	pair, err := f.svc.Login(context.Background(), dto.LoginInput{
		Email:    user.Email,
		Password: "correct-password",
	})

	assert.Nil(t, pair)
	assert.ErrorIs(t, err, autherror.ErrPasswordResetRequired)
}

func TestUserService_Login_PersistenceFailurePropagates(t *testing.T) {
	f := newLoginFixture(t)

	dbErr := errors.New("write failed")
	user := &domain.User{
		ID:           "user-1",
		Email:        "test@example.com",
		PasswordHash: hashPassword(t, "correct-password"),
	}

	f.userRepo.EXPECT().GetByEmail(gomock.Any(), user.Email).Return(user, nil)
	f.securityRepo.EXPECT().GetSecurityRecord(gomock.Any(), user.ID).Return(nil, nil).Times(2)
	f.securityRepo.EXPECT().InsertAuditEntry(gomock.Any(), auditEvent(domain.EventLoginFailure)).Return(dbErr)

	_, err := f.svc.Login(context.Background(), dto.LoginInput{
		Email:    user.Email,
		Password: "wrong-password",
	})

	assert.ErrorIs(t, err, dbErr)
}

func TestUserService_Refresh(t *testing.T) {
	f := newLoginFixture(t)

	f.tokens.EXPECT().Rotate("some-refresh-token").
		Return(&dto.TokenPair{AccessToken: "new-access", RefreshToken: "new-refresh"}, nil)

	pair, err := f.svc.Refresh(context.Background(), dto.RefreshInput{RefreshToken: "some-refresh-token"})

	require.NoError(t, err)
	assert.Equal(t, "new-access", pair.AccessToken)
	assert.Equal(t, "new-refresh", pair.RefreshToken)
}
