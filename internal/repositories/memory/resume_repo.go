// Package memory keeps resumes in process memory. It backs local runs
// without MONGO_URI and doubles as the store in service tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yoockh/resumecraft/internal/models"
	"github.com/yoockh/resumecraft/internal/repositories"
	"github.com/yoockh/resumecraft/internal/utils"
)

type ResumeRepo struct {
	mu   sync.RWMutex
	docs map[string]models.Resume
	now  func() time.Time
}

var _ repositories.ResumeRepository = (*ResumeRepo)(nil)

func NewResumeRepo() *ResumeRepo {
	return &ResumeRepo{docs: map[string]models.Resume{}, now: func() time.Time { return time.Now().UTC() }}
}

func (r *ResumeRepo) Create(_ context.Context, doc *models.Resume) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	*doc = models.Normalize(*doc)
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	if _, exists := r.docs[doc.ID]; exists {
		return "", utils.ErrDuplicate
	}
	now := r.now()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	doc.UpdatedAt = now
	r.docs[doc.ID] = *doc
	return doc.ID, nil
}

func (r *ResumeRepo) Update(_ context.Context, id, ownerID string, p models.ResumePatch) (*models.Resume, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, ok := r.owned(id, ownerID)
	if !ok {
		return nil, utils.ErrNotFound
	}
	p.Apply(&doc)
	doc.UpdatedAt = r.now()
	r.docs[id] = doc
	return &doc, nil
}

func (r *ResumeRepo) Get(_ context.Context, id, ownerID string) (*models.Resume, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, ok := r.owned(id, ownerID)
	if !ok {
		return nil, utils.ErrNotFound
	}
	return &doc, nil
}

func (r *ResumeRepo) GetAny(_ context.Context, id string) (*models.Resume, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, ok := r.docs[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	return &doc, nil
}

func (r *ResumeRepo) owned(id, ownerID string) (models.Resume, bool) {
	doc, ok := r.docs[id]
	if !ok || doc.OwnerID != ownerID {
		return models.Resume{}, false
	}
	return doc, true
}

func (r *ResumeRepo) ListByOwner(_ context.Context, ownerID string) ([]models.Resume, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.Resume{}
	for _, d := range r.docs {
		if d.OwnerID == ownerID {
			out = append(out, d)
		}
	}
	sortByUpdated(out)
	return out, nil
}

func (r *ResumeRepo) List(_ context.Context, q models.ListQuery) ([]models.Resume, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q = q.Normalized()
	term := strings.ToLower(strings.TrimSpace(q.Search))
	matched := []models.Resume{}
	for _, d := range r.docs {
		if term == "" ||
			strings.Contains(strings.ToLower(d.Title), term) ||
			strings.Contains(strings.ToLower(d.PersonalDetails.FullName), term) {
			matched = append(matched, d)
		}
	}
	sortByUpdated(matched)

	return window(matched, q), int64(len(matched)), nil
}

func (r *ResumeRepo) Delete(_ context.Context, id, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.owned(id, ownerID); !ok {
		return utils.ErrNotFound
	}
	delete(r.docs, id)
	return nil
}

func (r *ResumeRepo) DeleteByOwner(_ context.Context, ownerID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for id, d := range r.docs {
		if d.OwnerID == ownerID {
			delete(r.docs, id)
			n++
		}
	}
	return n, nil
}

func (r *ResumeRepo) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.docs)), nil
}

// newest first; ID breaks ties so listings are stable
func sortByUpdated(docs []models.Resume) {
	sort.Slice(docs, func(i, j int) bool {
		if !docs[i].UpdatedAt.Equal(docs[j].UpdatedAt) {
			return docs[i].UpdatedAt.After(docs[j].UpdatedAt)
		}
		return docs[i].ID < docs[j].ID
	})
}

// window cuts one page out of an already sorted listing.
func window[T any](items []T, q models.ListQuery) []T {
	q = q.Normalized()
	from := q.Offset()
	if from > len(items) {
		from = len(items)
	}
	to := from + q.Limit
	if to > len(items) {
		to = len(items)
	}
	return items[from:to]
}
