package user

import (
	"context"
	"io"

	"github.com/google/uuid"

	"cagnotte-backend/internal/domain"
	"cagnotte-backend/internal/repository"
	"cagnotte-backend/internal/service/analytics"
	"cagnotte-backend/internal/service/avatar"
)

type Service interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, input domain.UpdateProfileInput) (*domain.User, error)
	UpdatePreferences(ctx context.Context, userID uuid.UUID, input domain.UpdatePreferencesInput) (*domain.User, error)
	UploadAvatar(ctx context.Context, userID uuid.UUID, fileSize int64, contentType string, reader io.Reader) (*domain.User, error)
	DeleteAvatar(ctx context.Context, userID uuid.UUID) (*domain.User, error)
}

type service struct {
	userRepo  repository.UserRepository
	avatars   avatar.Service
	analytics analytics.Service
}

func NewService(userRepo repository.UserRepository, avatars avatar.Service, analyticsService analytics.Service) Service {
	return &service{
		userRepo:  userRepo,
		avatars:   avatars,
		analytics: analyticsService,
	}
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (s *service) UpdateProfile(ctx context.Context, userID uuid.UUID, input domain.UpdateProfileInput) (*domain.User, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Username != nil && *input.Username != user.Username {
		taken, err := s.userRepo.ExistsByUsername(ctx, *input.Username)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, domain.ErrUsernameExists
		}
		user.Username = *input.Username
	}

	if input.Email != nil && *input.Email != user.Email {
		taken, err := s.userRepo.ExistsByEmail(ctx, *input.Email)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, domain.ErrEmailExists
		}
		user.Email = *input.Email
	}

	if input.FirstName != nil {
		user.FirstName = input.FirstName
	}
	if input.LastName != nil {
		user.LastName = input.LastName
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	_ = s.analytics.Track(ctx, user.ID, domain.EventProfileUpdated, nil)

	return user, nil
}

func (s *service) UpdatePreferences(ctx context.Context, userID uuid.UUID, input domain.UpdatePreferencesInput) (*domain.User, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Language != nil {
		user.Language = *input.Language
	}
	if input.CurrencyCode != nil {
		currency, _ := domain.CurrencyByCode(*input.CurrencyCode)
		user.CurrencyCode = currency.Code
		user.CurrencySymbol = currency.Symbol
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	_ = s.analytics.Track(ctx, user.ID, domain.EventProfileUpdated, map[string]interface{}{
		"preferences": true,
	})

	return user, nil
}

func (s *service) UploadAvatar(ctx context.Context, userID uuid.UUID, fileSize int64, contentType string, reader io.Reader) (*domain.User, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	url, err := s.avatars.Upload(ctx, userID, fileSize, contentType, reader)
	if err != nil {
		return nil, err
	}

	user.AvatarURL = &url
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	_ = s.analytics.Track(ctx, user.ID, domain.EventProfileUpdated, map[string]interface{}{
		"avatar": true,
	})

	return user, nil
}

func (s *service) DeleteAvatar(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.AvatarURL == nil {
		return user, nil
	}

	if err := s.avatars.Delete(ctx, *user.AvatarURL); err != nil {
		return nil, err
	}

	user.AvatarURL = nil
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
