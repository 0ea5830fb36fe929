package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/devpulse/internal/models"
	"github.com/google/uuid"
)

type FocusSessionService interface {
	Save(ctx context.Context, s models.FocusSession) (models.FocusSession, error)
	List(ctx context.Context) ([]models.FocusSession, error)
	DeleteByID(ctx context.Context, id string) error
}

type focusSessionService struct {
	eng Syncer
	now func() time.Time
}

func NewFocusSessionService(eng Syncer) FocusSessionService {
	return &focusSessionService{eng: eng, now: time.Now}
}

func (s *focusSessionService) Save(ctx context.Context, session models.FocusSession) (models.FocusSession, error) {
	now := s.now().UTC()
	if session.ID == "" {
		session.ID = uuid.NewString()
		session.CreatedAt = now
	}
	session.UpdatedAt = now

	payload, err := json.Marshal(session)
	if err != nil {
		return models.FocusSession{}, fmt.Errorf("encoding session: %w", err)
	}
	env, err := models.NewEnvelope(payload)
	if err != nil {
		return models.FocusSession{}, err
	}

	saved, err := s.eng.Write(ctx, models.CollectionFocusSessions, env)
	if err != nil {
		return models.FocusSession{}, fmt.Errorf("saving session: %w", err)
	}

	var result models.FocusSession
	if err := json.Unmarshal(saved.Payload, &result); err != nil {
		return models.FocusSession{}, fmt.Errorf("decoding session: %w", err)
	}
	return result, nil
}

func (s *focusSessionService) List(ctx context.Context) ([]models.FocusSession, error) {
	envs, err := s.eng.ReadAll(ctx, models.CollectionFocusSessions)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}

	result := make([]models.FocusSession, 0, len(envs))
	for _, env := range envs {
		var session models.FocusSession
		if err := json.Unmarshal(env.Payload, &session); err != nil {
			return nil, fmt.Errorf("decoding session %s: %w", env.ID, err)
		}
		result = append(result, session)
	}
	return result, nil
}

func (s *focusSessionService) DeleteByID(ctx context.Context, id string) error {
	if err := s.eng.Delete(ctx, models.CollectionFocusSessions, id); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

// TotalFocusHours sums focus time over the snapshot, in hours.
func TotalFocusHours(sessions []models.FocusSession) float64 {
	var total float64
	for _, s := range sessions {
		total += float64(s.Duration) / 60
	}
	return total
}

// DailyAverage returns the average focus hours per day over the last days
// days.
func DailyAverage(sessions []models.FocusSession, days int, now time.Time) float64 {
	if days <= 0 {
		return 0
	}
	cutoff := now.AddDate(0, 0, -days)

	var totalMinutes int
	for _, s := range sessions {
		date, err := parseSessionDate(s.Date)
		if err != nil {
			continue
		}
		if !date.Before(cutoff) {
			totalMinutes += s.Duration
		}
	}
	return float64(totalMinutes) / float64(days*60)
}

// parseSessionDate accepts both the full timestamp the focus tracker
// records and a bare calendar day.
func parseSessionDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
