package unit_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"cagnotte-backend/internal/config"
	"cagnotte-backend/internal/domain"
	"cagnotte-backend/internal/repository"
	"cagnotte-backend/internal/service/analytics"
	"cagnotte-backend/internal/service/auth"
	"cagnotte-backend/tests/mocks"
)

func newAuthService() (auth.Service, *mocks.UserRepository, *mocks.SessionRepository, *mocks.EmailService, *mocks.NotificationService, *mocks.AnalyticsRepository) {
	mockUsers := new(mocks.UserRepository)
	mockSessions := new(mocks.SessionRepository)
	mockEmail := new(mocks.EmailService)
	mockNotifier := new(mocks.NotificationService)
	mockAnalyticsRepo := new(mocks.AnalyticsRepository)

	cfg := &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 7 * 24 * time.Hour,
	}

	svc := auth.NewService(mockUsers, mockSessions, mockEmail, mockNotifier, analytics.NewService(mockAnalyticsRepo), cfg)
	return svc, mockUsers, mockSessions, mockEmail, mockNotifier, mockAnalyticsRepo
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	input := domain.CreateUserInput{
		Username: "fatou",
		Email:    "fatou@example.com",
		Password: "motdepasse123",
	}

	t.Run("Success", func(t *testing.T) {
		svc, mockUsers, mockSessions, mockEmail, mockNotifier, mockAnalyticsRepo := newAuthService()

		mockUsers.On("ExistsByEmail", ctx, input.Email).Return(false, nil).Once()
		mockUsers.On("ExistsByUsername", ctx, input.Username).Return(false, nil).Once()
		mockUsers.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Username == "fatou" &&
				u.Role == domain.RoleUser &&
				u.CurrencyCode == "USD" &&
				u.PasswordHash != "motdepasse123"
		})).Return(nil).Once()
		mockNotifier.On("NotifyNewUser", ctx, mock.Anything).Return(nil).Once()
		mockAnalyticsRepo.On("Create", ctx, mock.MatchedBy(func(e *domain.AnalyticsEvent) bool {
			return e.EventType == domain.EventUserRegistered
		})).Return(nil).Once()
		mockSessions.On("Create", ctx, mock.Anything).Return(nil).Once()
		mockEmail.On("SendWelcomeEmail", mock.Anything, input.Email, input.Username).Return(nil).Maybe()

		user, tokens, err := svc.Register(ctx, input)

		assert.NoError(t, err)
		assert.NotNil(t, user)
		assert.NotNil(t, tokens)
		assert.NotEmpty(t, tokens.AccessToken)
		assert.NotEmpty(t, tokens.RefreshToken)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("motdepasse123")))
		mockUsers.AssertExpectations(t)
		mockNotifier.AssertExpectations(t)
	})

	t.Run("Email Already Registered", func(t *testing.T) {
		svc, mockUsers, _, _, mockNotifier, _ := newAuthService()

		mockUsers.On("ExistsByEmail", ctx, input.Email).Return(true, nil).Once()

		user, tokens, err := svc.Register(ctx, input)

		assert.ErrorIs(t, err, domain.ErrEmailExists)
		assert.Nil(t, user)
		assert.Nil(t, tokens)
		mockUsers.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		mockNotifier.AssertNotCalled(t, "NotifyNewUser", mock.Anything, mock.Anything)
	})

	t.Run("Username Already Taken", func(t *testing.T) {
		svc, mockUsers, _, _, _, _ := newAuthService()

		mockUsers.On("ExistsByEmail", ctx, input.Email).Return(false, nil).Once()
		mockUsers.On("ExistsByUsername", ctx, input.Username).Return(true, nil).Once()

		user, _, err := svc.Register(ctx, input)

		assert.ErrorIs(t, err, domain.ErrUsernameExists)
		assert.Nil(t, user)
	})

	t.Run("Weak Password", func(t *testing.T) {
		svc, mockUsers, _, _, _, _ := newAuthService()

		bad := input
		bad.Password = "court"

		user, _, err := svc.Register(ctx, bad)

		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Nil(t, user)
		mockUsers.AssertNotCalled(t, "ExistsByEmail", mock.Anything, mock.Anything)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	hash, _ := bcrypt.GenerateFromPassword([]byte("motdepasse123"), bcrypt.DefaultCost)
	stored := &domain.User{
		ID:           uuid.New(),
		Username:     "fatou",
		Email:        "fatou@example.com",
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
	}

	t.Run("Success", func(t *testing.T) {
		svc, mockUsers, mockSessions, _, _, mockAnalyticsRepo := newAuthService()

		mockUsers.On("GetByEmail", ctx, stored.Email).Return(stored, nil).Once()
		mockSessions.On("Create", ctx, mock.Anything).Return(nil).Once()
		mockAnalyticsRepo.On("Create", ctx, mock.MatchedBy(func(e *domain.AnalyticsEvent) bool {
			return e.EventType == domain.EventUserLogin
		})).Return(nil).Once()

		user, tokens, err := svc.Login(ctx, domain.LoginInput{Email: stored.Email, Password: "motdepasse123"})

		assert.NoError(t, err)
		assert.Equal(t, stored, user)
		assert.NotEmpty(t, tokens.AccessToken)
	})

	t.Run("Wrong Password", func(t *testing.T) {
		svc, mockUsers, mockSessions, _, mockNotifier, _ := newAuthService()

		mockUsers.On("GetByEmail", ctx, stored.Email).Return(stored, nil).Once()
		mockNotifier.On("NotifySuspiciousActivity", ctx, "failed_login", &stored.ID, mock.Anything).Return(nil).Once()

		user, tokens, err := svc.Login(ctx, domain.LoginInput{Email: stored.Email, Password: "mauvais"})

		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
		assert.Nil(t, user)
		assert.Nil(t, tokens)
		mockSessions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		mockNotifier.AssertExpectations(t)
	})

	t.Run("Unknown Email", func(t *testing.T) {
		svc, mockUsers, _, _, _, _ := newAuthService()

		mockUsers.On("GetByEmail", ctx, "nobody@example.com").Return(nil, nil).Once()

		user, _, err := svc.Login(ctx, domain.LoginInput{Email: "nobody@example.com", Password: "x"})

		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
		assert.Nil(t, user)
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctx := context.Background()

	t.Run("Unknown Token", func(t *testing.T) {
		svc, _, mockSessions, _, _, _ := newAuthService()

		mockSessions.On("GetByTokenHash", ctx, mock.Anything).Return(nil, nil).Once()

		tokens, err := svc.RefreshToken(ctx, "bogus")

		assert.ErrorIs(t, err, auth.ErrInvalidToken)
		assert.Nil(t, tokens)
	})

	t.Run("Rotates Session", func(t *testing.T) {
		svc, mockUsers, mockSessions, _, _, _ := newAuthService()

		userID := uuid.New()
		session := &repository.Session{ID: uuid.New(), UserID: userID, TokenHash: "hash"}
		stored := &domain.User{ID: userID, Email: "fatou@example.com", Role: domain.RoleUser}

		mockSessions.On("GetByTokenHash", ctx, mock.Anything).Return(session, nil).Once()
		mockUsers.On("GetByID", ctx, userID).Return(stored, nil).Once()
		mockSessions.On("Revoke", ctx, session.ID).Return(nil).Once()
		mockSessions.On("Create", ctx, mock.Anything).Return(nil).Once()

		tokens, err := svc.RefreshToken(ctx, "old-refresh-token")

		assert.NoError(t, err)
		assert.NotEmpty(t, tokens.AccessToken)
		assert.NotEmpty(t, tokens.RefreshToken)
		mockSessions.AssertExpectations(t)
	})
}

func TestAuthService_ValidateAccessToken(t *testing.T) {
	ctx := context.Background()
	svc, mockUsers, mockSessions, _, _, mockAnalyticsRepo := newAuthService()

	hash, _ := bcrypt.GenerateFromPassword([]byte("motdepasse123"), bcrypt.DefaultCost)
	stored := &domain.User{ID: uuid.New(), Email: "fatou@example.com", PasswordHash: string(hash), Role: domain.RoleAdmin}

	mockUsers.On("GetByEmail", ctx, stored.Email).Return(stored, nil).Once()
	mockSessions.On("Create", ctx, mock.Anything).Return(nil).Once()
	mockAnalyticsRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

	_, tokens, err := svc.Login(ctx, domain.LoginInput{Email: stored.Email, Password: "motdepasse123"})
	assert.NoError(t, err)

	t.Run("Valid Token", func(t *testing.T) {
		claims, err := svc.ValidateAccessToken(tokens.AccessToken)

		assert.NoError(t, err)
		assert.Equal(t, stored.ID, claims.UserID)
		assert.Equal(t, domain.RoleAdmin, claims.Role)
	})

	t.Run("Garbage Token", func(t *testing.T) {
		claims, err := svc.ValidateAccessToken("not.a.jwt")

		assert.ErrorIs(t, err, auth.ErrInvalidToken)
		assert.Nil(t, claims)
	})
}
