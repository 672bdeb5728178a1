package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yoockh/resumecraft/internal/models"
	pgrepo "github.com/yoockh/resumecraft/internal/repositories/postgres"
	"github.com/yoockh/resumecraft/internal/utils"
)

type FeedbackRepo struct {
	mu    sync.RWMutex
	items map[string]models.Feedback
	now   func() time.Time
}

var _ pgrepo.FeedbackRepository = (*FeedbackRepo)(nil)

func NewFeedbackRepo() *FeedbackRepo {
	return &FeedbackRepo{items: map[string]models.Feedback{}, now: func() time.Time { return time.Now().UTC() }}
}

func (r *FeedbackRepo) Create(_ context.Context, f *models.Feedback) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	if f.CreatedAt.IsZero() {
		f.CreatedAt = r.now()
	}
	r.items[f.ID] = *f
	return nil
}

func (r *FeedbackRepo) List(_ context.Context, q models.ListQuery) ([]models.Feedback, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	term := strings.ToLower(strings.TrimSpace(q.Search))
	matched := []models.Feedback{}
	for _, f := range r.items {
		if term == "" ||
			strings.Contains(strings.ToLower(f.Message), term) ||
			strings.Contains(strings.ToLower(f.Email), term) ||
			strings.Contains(strings.ToLower(f.Name), term) {
			matched = append(matched, f)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID < matched[j].ID
	})
	return window(matched, q), int64(len(matched)), nil
}

func (r *FeedbackRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return utils.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *FeedbackRepo) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.items)), nil
}

func (r *FeedbackRepo) AverageRating(_ context.Context) (float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.items) == 0 {
		return 0, nil
	}
	var sum int
	for _, f := range r.items {
		sum += f.Rating
	}
	return float64(sum) / float64(len(r.items)), nil
}
