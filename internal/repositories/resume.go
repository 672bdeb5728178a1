// Package repositories holds the storage contracts shared by the concrete
// backends in the mongo, memory and postgres subpackages.
package repositories

import (
	"context"

	"github.com/yoockh/resumecraft/internal/models"
)

// ResumeRepository is owner-scoped: a document that belongs to someone else
// is reported as utils.ErrNotFound, exactly like a missing one. The admin
// methods at the bottom are the only unscoped access.
type ResumeRepository interface {
	Create(ctx context.Context, r *models.Resume) (string, error)
	Update(ctx context.Context, id, ownerID string, p models.ResumePatch) (*models.Resume, error)
	Get(ctx context.Context, id, ownerID string) (*models.Resume, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Resume, error)
	Delete(ctx context.Context, id, ownerID string) error

	List(ctx context.Context, q models.ListQuery) ([]models.Resume, int64, error)
	GetAny(ctx context.Context, id string) (*models.Resume, error)
	DeleteByOwner(ctx context.Context, ownerID string) (int64, error)
	Count(ctx context.Context) (int64, error)
}
