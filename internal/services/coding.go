package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/devpulse/internal/models"
	"github.com/google/uuid"
)

type CodingSessionService interface {
	Save(ctx context.Context, s models.CodingSession) (models.CodingSession, error)
	List(ctx context.Context) ([]models.CodingSession, error)
	DeleteByID(ctx context.Context, id string) error
}

type codingSessionService struct {
	eng Syncer
	now func() time.Time
}

func NewCodingSessionService(eng Syncer) CodingSessionService {
	return &codingSessionService{eng: eng, now: time.Now}
}

// Save persists the session. A session without an id is treated as new:
// it gets a fresh uuid and createdAt. updatedAt is always bumped.
func (s *codingSessionService) Save(ctx context.Context, session models.CodingSession) (models.CodingSession, error) {
	now := s.now().UTC()
	if session.ID == "" {
		session.ID = uuid.NewString()
		session.CreatedAt = now
	}
	session.UpdatedAt = now

	payload, err := json.Marshal(session)
	if err != nil {
		return models.CodingSession{}, fmt.Errorf("encoding session: %w", err)
	}
	env, err := models.NewEnvelope(payload)
	if err != nil {
		return models.CodingSession{}, err
	}

	saved, err := s.eng.Write(ctx, models.CollectionCodingSessions, env)
	if err != nil {
		return models.CodingSession{}, fmt.Errorf("saving session: %w", err)
	}

	var result models.CodingSession
	if err := json.Unmarshal(saved.Payload, &result); err != nil {
		return models.CodingSession{}, fmt.Errorf("decoding session: %w", err)
	}
	return result, nil
}

func (s *codingSessionService) List(ctx context.Context) ([]models.CodingSession, error) {
	envs, err := s.eng.ReadAll(ctx, models.CollectionCodingSessions)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}

	result := make([]models.CodingSession, 0, len(envs))
	for _, env := range envs {
		var session models.CodingSession
		if err := json.Unmarshal(env.Payload, &session); err != nil {
			return nil, fmt.Errorf("decoding session %s: %w", env.ID, err)
		}
		result = append(result, session)
	}
	return result, nil
}

func (s *codingSessionService) DeleteByID(ctx context.Context, id string) error {
	if err := s.eng.Delete(ctx, models.CollectionCodingSessions, id); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

// TotalHours sums coding time over the snapshot, in hours.
func TotalHours(sessions []models.CodingSession) float64 {
	var total float64
	for _, s := range sessions {
		total += float64(s.Duration) / 60
	}
	return total
}

// Recent returns the sessions dated within the last days days.
func Recent(sessions []models.CodingSession, days int, now time.Time) []models.CodingSession {
	cutoff := now.AddDate(0, 0, -days)

	var result []models.CodingSession
	for _, s := range sessions {
		date, err := time.Parse("2006-01-02", s.Date)
		if err != nil {
			continue
		}
		if !date.Before(cutoff) {
			result = append(result, s)
		}
	}
	return result
}
