package unit_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"cagnotte-backend/internal/domain"
	"cagnotte-backend/internal/service/admin"
	"cagnotte-backend/internal/service/notification"
	"cagnotte-backend/tests/mocks"
)

func newAdminService() (admin.Service, *mocks.UserRepository, *mocks.GoalRepository, *mocks.AnalyticsRepository, *mocks.SessionRepository, *mocks.NotificationService) {
	mockUsers := new(mocks.UserRepository)
	mockGoals := new(mocks.GoalRepository)
	mockAnalytics := new(mocks.AnalyticsRepository)
	mockSessions := new(mocks.SessionRepository)
	mockNotifier := new(mocks.NotificationService)
	svc := admin.NewService(mockUsers, mockGoals, mockAnalytics, mockSessions, mockNotifier)
	return svc, mockUsers, mockGoals, mockAnalytics, mockSessions, mockNotifier
}

func adminUser() *domain.User {
	return &domain.User{ID: uuid.New(), Username: "root", Email: "root@example.com", Role: domain.RoleAdmin}
}

func TestAdminService_DeleteUser(t *testing.T) {
	ctx := context.Background()

	t.Run("Cascade Reports Deleted Goal Count", func(t *testing.T) {
		svc, mockUsers, mockGoals, mockAnalytics, mockSessions, mockNotifier := newAdminService()
		adm := adminUser()
		targetID := uuid.New()
		target := &domain.User{ID: targetID, Username: "moussa", Email: "moussa@example.com", Role: domain.RoleUser}

		mockUsers.On("GetByID", ctx, targetID).Return(target, nil).Once()
		mockGoals.On("DeleteAllByUser", ctx, targetID).Return(int64(3), nil).Once()
		mockAnalytics.On("DeleteAllByUser", ctx, targetID).Return(int64(9), nil).Once()
		mockSessions.On("RevokeAllForUser", ctx, targetID).Return(nil).Once()
		mockUsers.On("Delete", ctx, targetID).Return(nil).Once()
		mockNotifier.On("LogAdminAction", ctx, adm, notification.ActionUserDeleted, target, (*domain.Goal)(nil), mock.MatchedBy(func(details map[string]interface{}) bool {
			return details["deleted_goals_count"] == int64(3)
		})).Return(nil).Once()

		result, err := svc.DeleteUser(ctx, adm, targetID)

		assert.NoError(t, err)
		assert.Equal(t, int64(3), result.DeletedGoalsCount)
		assert.Equal(t, "moussa@example.com", result.DeletedEmail)
		mockUsers.AssertExpectations(t)
		mockNotifier.AssertExpectations(t)
	})

	t.Run("Self Delete Forbidden", func(t *testing.T) {
		svc, mockUsers, mockGoals, _, _, _ := newAdminService()
		adm := adminUser()

		result, err := svc.DeleteUser(ctx, adm, adm.ID)

		assert.ErrorIs(t, err, admin.ErrCannotDeleteSelf)
		assert.Nil(t, result)
		mockUsers.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
		mockGoals.AssertNotCalled(t, "DeleteAllByUser", mock.Anything, mock.Anything)
	})

	t.Run("Unknown User", func(t *testing.T) {
		svc, mockUsers, _, _, _, _ := newAdminService()
		adm := adminUser()
		targetID := uuid.New()

		mockUsers.On("GetByID", ctx, targetID).Return(nil, nil).Once()

		result, err := svc.DeleteUser(ctx, adm, targetID)

		assert.ErrorIs(t, err, domain.ErrUserNotFound)
		assert.Nil(t, result)
	})
}

func TestAdminService_UpdateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("Promotion Escalates Action", func(t *testing.T) {
		svc, mockUsers, _, _, _, mockNotifier := newAdminService()
		adm := adminUser()
		targetID := uuid.New()
		target := &domain.User{ID: targetID, Username: "awa", Email: "awa@example.com", Role: domain.RoleUser}
		newRole := domain.RoleAdmin

		mockUsers.On("GetByID", ctx, targetID).Return(target, nil).Once()
		mockUsers.On("Update", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Role == domain.RoleAdmin
		})).Return(nil).Once()
		mockNotifier.On("LogAdminAction", ctx, adm, notification.ActionUserPromoted, target, (*domain.Goal)(nil), mock.Anything).Return(nil).Once()

		updated, err := svc.UpdateUser(ctx, adm, targetID, domain.AdminUpdateUserInput{Role: &newRole})

		assert.NoError(t, err)
		assert.Equal(t, domain.RoleAdmin, updated.Role)
		mockNotifier.AssertExpectations(t)
	})

	t.Run("Demotion Revokes Sessions", func(t *testing.T) {
		svc, mockUsers, _, _, mockSessions, mockNotifier := newAdminService()
		adm := adminUser()
		targetID := uuid.New()
		target := &domain.User{ID: targetID, Username: "awa", Email: "awa@example.com", Role: domain.RoleAdmin}
		newRole := domain.RoleUser

		mockUsers.On("GetByID", ctx, targetID).Return(target, nil).Once()
		mockUsers.On("Update", ctx, mock.Anything).Return(nil).Once()
		mockSessions.On("RevokeAllForUser", ctx, targetID).Return(nil).Once()
		mockNotifier.On("LogAdminAction", ctx, adm, notification.ActionUserDemoted, target, (*domain.Goal)(nil), mock.Anything).Return(nil).Once()

		updated, err := svc.UpdateUser(ctx, adm, targetID, domain.AdminUpdateUserInput{Role: &newRole})

		assert.NoError(t, err)
		assert.Equal(t, domain.RoleUser, updated.Role)
		mockSessions.AssertExpectations(t)
	})

	t.Run("Plain Edit Stays Info Action", func(t *testing.T) {
		svc, mockUsers, _, _, mockSessions, mockNotifier := newAdminService()
		adm := adminUser()
		targetID := uuid.New()
		target := &domain.User{ID: targetID, Username: "awa", Email: "awa@example.com", Role: domain.RoleUser}
		newUsername := "awa2"

		mockUsers.On("GetByID", ctx, targetID).Return(target, nil).Once()
		mockUsers.On("ExistsByUsername", ctx, "awa2").Return(false, nil).Once()
		mockUsers.On("Update", ctx, mock.Anything).Return(nil).Once()
		mockNotifier.On("LogAdminAction", ctx, adm, notification.ActionUserUpdated, target, (*domain.Goal)(nil), mock.Anything).Return(nil).Once()

		updated, err := svc.UpdateUser(ctx, adm, targetID, domain.AdminUpdateUserInput{Username: &newUsername})

		assert.NoError(t, err)
		assert.Equal(t, "awa2", updated.Username)
		mockSessions.AssertNotCalled(t, "RevokeAllForUser", mock.Anything, mock.Anything)
	})

	t.Run("Username Conflict", func(t *testing.T) {
		svc, mockUsers, _, _, _, _ := newAdminService()
		adm := adminUser()
		targetID := uuid.New()
		target := &domain.User{ID: targetID, Username: "awa", Email: "awa@example.com", Role: domain.RoleUser}
		newUsername := "taken"

		mockUsers.On("GetByID", ctx, targetID).Return(target, nil).Once()
		mockUsers.On("ExistsByUsername", ctx, "taken").Return(true, nil).Once()

		updated, err := svc.UpdateUser(ctx, adm, targetID, domain.AdminUpdateUserInput{Username: &newUsername})

		assert.ErrorIs(t, err, domain.ErrUsernameExists)
		assert.Nil(t, updated)
		mockUsers.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestAdminService_GetPlatformStats(t *testing.T) {
	ctx := context.Background()
	svc, mockUsers, mockGoals, mockAnalytics, _, _ := newAdminService()

	mockUsers.On("CountAll", ctx).Return(int64(40), nil).Once()
	mockUsers.On("CountByRole", ctx, domain.RoleAdmin).Return(int64(2), nil).Once()
	mockUsers.On("CountCreatedSince", ctx, mock.Anything).Return(int64(5), nil).Once()
	mockGoals.On("CountAll", ctx).Return(int64(120), nil).Once()
	mockGoals.On("CountByStatus", ctx, domain.GoalStatusActive).Return(int64(90), nil).Once()
	mockGoals.On("CountByStatus", ctx, domain.GoalStatusCompleted).Return(int64(25), nil).Once()
	mockGoals.On("CountByStatus", ctx, domain.GoalStatusPaused).Return(int64(5), nil).Once()
	mockGoals.On("CountCreatedSince", ctx, mock.Anything).Return(int64(8), nil).Once()
	mockGoals.On("CountByCategory", ctx).Return(map[domain.GoalCategory]int64{
		domain.CategorySurvival:  50,
		domain.CategoryNecessity: 40,
		domain.CategoryLifestyle: 30,
	}, nil).Once()
	mockGoals.On("CountByTimeframe", ctx).Return(map[domain.GoalTimeframe]int64{
		domain.TimeframeShort: 70,
		domain.TimeframeLong:  50,
	}, nil).Once()
	mockGoals.On("SumAmounts", ctx).Return(55000.0, 200000.0, nil).Once()
	mockAnalytics.On("CountSince", ctx, mock.Anything).Return(int64(300), nil).Once()

	stats, err := svc.GetPlatformStats(ctx)

	assert.NoError(t, err)
	assert.Equal(t, int64(40), stats.Users.Total)
	assert.Equal(t, int64(38), stats.Users.Regular)
	assert.Equal(t, int64(120), stats.Goals.Total)
	assert.Equal(t, int64(50), stats.Goals.ByCategory[domain.CategorySurvival])
	assert.Equal(t, 55000.0, stats.Amounts.TotalSaved)
	assert.Equal(t, int64(300), stats.EventsNew)
}
