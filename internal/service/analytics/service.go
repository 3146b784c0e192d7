package analytics

import (
	"context"
	"encoding/json"
	"log"

	"github.com/google/uuid"

	"cagnotte-backend/internal/domain"
	"cagnotte-backend/internal/repository"
)

// Service records product usage events. Tracking is best-effort and must
// never fail the operation that triggered it. Reads over the event log go
// through the repository directly.
type Service interface {
	Track(ctx context.Context, userID uuid.UUID, eventType domain.EventType, data map[string]interface{}) error
}

type service struct {
	analyticsRepo repository.AnalyticsRepository
}

func NewService(analyticsRepo repository.AnalyticsRepository) Service {
	return &service{analyticsRepo: analyticsRepo}
}

func (s *service) Track(ctx context.Context, userID uuid.UUID, eventType domain.EventType, data map[string]interface{}) error {
	eventData := json.RawMessage(`{}`)
	if data != nil {
		encoded, err := json.Marshal(data)
		if err == nil {
			eventData = encoded
		}
	}

	event := &domain.AnalyticsEvent{
		ID:        uuid.New(),
		UserID:    userID,
		EventType: eventType,
		EventData: eventData,
	}

	if err := s.analyticsRepo.Create(ctx, event); err != nil {
		log.Printf("Failed to track event %s for user %s: %v", eventType, userID, err)
		return err
	}
	return nil
}
