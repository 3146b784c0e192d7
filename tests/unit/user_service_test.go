package unit_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"cagnotte-backend/internal/domain"
	"cagnotte-backend/internal/service/user"
	"cagnotte-backend/tests/mocks"
)

func newUserService() (user.Service, *mocks.UserRepository, *mocks.AvatarService, *mocks.AnalyticsService) {
	mockUsers := new(mocks.UserRepository)
	mockAvatars := new(mocks.AvatarService)
	mockAnalytics := new(mocks.AnalyticsService)
	return user.NewService(mockUsers, mockAvatars, mockAnalytics), mockUsers, mockAvatars, mockAnalytics
}

func TestUserService_UpdatePreferences(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("Currency Change Updates Symbol", func(t *testing.T) {
		svc, mockUsers, _, mockAnalytics := newUserService()

		stored := &domain.User{ID: userID, Username: "awa", CurrencyCode: "USD", CurrencySymbol: "$", Language: "fr"}
		code := "XOF"

		mockUsers.On("GetByID", ctx, userID).Return(stored, nil).Once()
		mockUsers.On("Update", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.CurrencyCode == "XOF" && u.CurrencySymbol == "CFA"
		})).Return(nil).Once()
		mockAnalytics.On("Track", ctx, userID, domain.EventProfileUpdated, mock.Anything).Return(nil).Once()

		updated, err := svc.UpdatePreferences(ctx, userID, domain.UpdatePreferencesInput{CurrencyCode: &code})

		assert.NoError(t, err)
		assert.Equal(t, "CFA", updated.CurrencySymbol)
		mockUsers.AssertExpectations(t)
	})

	t.Run("Unsupported Currency Rejected", func(t *testing.T) {
		svc, mockUsers, _, _ := newUserService()
		code := "BTC"

		updated, err := svc.UpdatePreferences(ctx, userID, domain.UpdatePreferencesInput{CurrencyCode: &code})

		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Nil(t, updated)
		mockUsers.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Unsupported Language Rejected", func(t *testing.T) {
		svc, _, _, _ := newUserService()
		lang := "de"

		updated, err := svc.UpdatePreferences(ctx, userID, domain.UpdatePreferencesInput{Language: &lang})

		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Nil(t, updated)
	})
}

func TestUserService_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("Email Conflict", func(t *testing.T) {
		svc, mockUsers, _, _ := newUserService()

		stored := &domain.User{ID: userID, Username: "awa", Email: "awa@example.com"}
		newEmail := "taken@example.com"

		mockUsers.On("GetByID", ctx, userID).Return(stored, nil).Once()
		mockUsers.On("ExistsByEmail", ctx, newEmail).Return(true, nil).Once()

		updated, err := svc.UpdateProfile(ctx, userID, domain.UpdateProfileInput{Email: &newEmail})

		assert.ErrorIs(t, err, domain.ErrEmailExists)
		assert.Nil(t, updated)
	})

	t.Run("Unknown User", func(t *testing.T) {
		svc, mockUsers, _, _ := newUserService()

		mockUsers.On("GetByID", ctx, userID).Return(nil, nil).Once()

		updated, err := svc.UpdateProfile(ctx, userID, domain.UpdateProfileInput{})

		assert.ErrorIs(t, err, domain.ErrUserNotFound)
		assert.Nil(t, updated)
	})
}

func TestUserService_UploadAvatar(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	svc, mockUsers, mockAvatars, mockAnalytics := newUserService()

	stored := &domain.User{ID: userID, Username: "awa"}
	reader := strings.NewReader("fake image bytes")
	url := "https://cdn.example.com/cagnotte-avatars/avatars/" + userID.String() + ".png"

	mockUsers.On("GetByID", ctx, userID).Return(stored, nil).Once()
	mockAvatars.On("Upload", ctx, userID, int64(16), "image/png", reader).Return(url, nil).Once()
	mockUsers.On("Update", ctx, mock.MatchedBy(func(u *domain.User) bool {
		return u.AvatarURL != nil && *u.AvatarURL == url
	})).Return(nil).Once()
	mockAnalytics.On("Track", ctx, userID, domain.EventProfileUpdated, mock.Anything).Return(nil).Once()

	updated, err := svc.UploadAvatar(ctx, userID, 16, "image/png", reader)

	assert.NoError(t, err)
	assert.Equal(t, url, *updated.AvatarURL)
	mockAvatars.AssertExpectations(t)
}
