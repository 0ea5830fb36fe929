package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/devpulse/internal/common"
	"github.com/dmitrijs2005/devpulse/internal/models"
	"github.com/google/uuid"
)

type LearningItemService interface {
	Save(ctx context.Context, item models.LearningItem) (models.LearningItem, error)
	List(ctx context.Context) ([]models.LearningItem, error)
	ToggleComplete(ctx context.Context, id string) (models.LearningItem, error)
	DeleteByID(ctx context.Context, id string) error
}

type learningItemService struct {
	eng Syncer
	now func() time.Time
}

func NewLearningItemService(eng Syncer) LearningItemService {
	return &learningItemService{eng: eng, now: time.Now}
}

func (s *learningItemService) Save(ctx context.Context, item models.LearningItem) (models.LearningItem, error) {
	if !item.Kind.Valid() {
		return models.LearningItem{}, fmt.Errorf("unknown learning kind: %s", item.Kind)
	}

	now := s.now().UTC()
	if item.ID == "" {
		item.ID = uuid.NewString()
		item.CreatedAt = now
	}
	if item.DateAdded == "" {
		item.DateAdded = now.Format("2006-01-02")
	}
	item.UpdatedAt = now

	payload, err := json.Marshal(item)
	if err != nil {
		return models.LearningItem{}, fmt.Errorf("encoding item: %w", err)
	}
	env, err := models.NewEnvelope(payload)
	if err != nil {
		return models.LearningItem{}, err
	}

	saved, err := s.eng.Write(ctx, models.CollectionLearningItems, env)
	if err != nil {
		return models.LearningItem{}, fmt.Errorf("saving item: %w", err)
	}

	var result models.LearningItem
	if err := json.Unmarshal(saved.Payload, &result); err != nil {
		return models.LearningItem{}, fmt.Errorf("decoding item: %w", err)
	}
	return result, nil
}

func (s *learningItemService) List(ctx context.Context) ([]models.LearningItem, error) {
	envs, err := s.eng.ReadAll(ctx, models.CollectionLearningItems)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}

	result := make([]models.LearningItem, 0, len(envs))
	for _, env := range envs {
		var item models.LearningItem
		if err := json.Unmarshal(env.Payload, &item); err != nil {
			return nil, fmt.Errorf("decoding item %s: %w", env.ID, err)
		}
		result = append(result, item)
	}
	return result, nil
}

// ToggleComplete flips the item's completion state and persists it.
// Completing an item records dateCompleted; un-completing clears it.
func (s *learningItemService) ToggleComplete(ctx context.Context, id string) (models.LearningItem, error) {
	items, err := s.List(ctx)
	if err != nil {
		return models.LearningItem{}, err
	}

	for _, item := range items {
		if item.ID != id {
			continue
		}

		now := s.now().UTC()
		item.Completed = !item.Completed
		if item.Completed {
			item.DateCompleted = now.Format("2006-01-02")
		} else {
			item.DateCompleted = ""
		}
		item.UpdatedAt = now

		payload, err := json.Marshal(item)
		if err != nil {
			return models.LearningItem{}, fmt.Errorf("encoding item: %w", err)
		}
		env, err := models.NewEnvelope(payload)
		if err != nil {
			return models.LearningItem{}, err
		}
		saved, err := s.eng.Write(ctx, models.CollectionLearningItems, env)
		if err != nil {
			return models.LearningItem{}, fmt.Errorf("saving item: %w", err)
		}

		var result models.LearningItem
		if err := json.Unmarshal(saved.Payload, &result); err != nil {
			return models.LearningItem{}, fmt.Errorf("decoding item: %w", err)
		}
		return result, nil
	}

	return models.LearningItem{}, fmt.Errorf("%w: learning item %s", common.ErrNotFound, id)
}

func (s *learningItemService) DeleteByID(ctx context.Context, id string) error {
	if err := s.eng.Delete(ctx, models.CollectionLearningItems, id); err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	return nil
}

// CompletedCount counts the completed items in the snapshot.
func CompletedCount(items []models.LearningItem) int {
	var n int
	for _, item := range items {
		if item.Completed {
			n++
		}
	}
	return n
}

// IncompleteCount counts the items still open.
func IncompleteCount(items []models.LearningItem) int {
	return len(items) - CompletedCount(items)
}

// ByKind filters the snapshot down to one learning kind.
func ByKind(items []models.LearningItem, kind models.LearningKind) []models.LearningItem {
	var result []models.LearningItem
	for _, item := range items {
		if item.Kind == kind {
			result = append(result, item)
		}
	}
	return result
}
