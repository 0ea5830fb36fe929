package services

import (
	"context"

	"github.com/dmitrijs2005/devpulse/internal/models"
)

// Syncer is the slice of the sync engine the entity services need: durable
// local-first writes, reconciled reads and mirrored deletes.
type Syncer interface {
	Write(ctx context.Context, collection string, env models.Envelope) (models.Envelope, error)
	ReadAll(ctx context.Context, collection string) ([]models.Envelope, error)
	Delete(ctx context.Context, collection, id string) error
}
