package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/yoockh/resumecraft/internal/models"
)

type FeedbackRepository interface {
	Create(ctx context.Context, f *models.Feedback) error
	List(ctx context.Context, q models.ListQuery) ([]models.Feedback, int64, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	AverageRating(ctx context.Context) (float64, error)
}

type feedbackRepo struct {
	db *gorm.DB
}

func NewFeedbackRepo(db *gorm.DB) FeedbackRepository {
	return &feedbackRepo{db: db}
}

func (r *feedbackRepo) Create(ctx context.Context, f *models.Feedback) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *feedbackRepo) List(ctx context.Context, q models.ListQuery) ([]models.Feedback, int64, error) {
	q = q.Normalized()
	// Count mutates the statement it runs on, so each query gets a fresh one.
	query := func() *gorm.DB {
		tx := r.db.WithContext(ctx).Model(&models.Feedback{})
		if term := q.Search; term != "" {
			like := "%" + escapeLike(term) + "%"
			tx = tx.Where("message ILIKE ? OR email ILIKE ? OR name ILIKE ?", like, like, like)
		}
		return tx
	}

	var total int64
	if err := query().Count(&total).Error; err != nil {
		return nil, 0, err
	}
	out := []models.Feedback{}
	err := query().Order("created_at DESC").
		Offset(q.Offset()).
		Limit(q.Limit).
		Find(&out).Error
	return out, total, err
}

func (r *feedbackRepo) Delete(ctx context.Context, id string) error {
	return affected(r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Feedback{}))
}

func (r *feedbackRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Feedback{}).Count(&n).Error
	return n, err
}

func (r *feedbackRepo) AverageRating(ctx context.Context) (float64, error) {
	var avg float64
	err := r.db.WithContext(ctx).
		Model(&models.Feedback{}).
		Select("COALESCE(AVG(rating), 0)").
		Row().
		Scan(&avg)
	return avg, err
}
