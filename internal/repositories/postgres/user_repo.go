package postgres

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/yoockh/resumecraft/internal/models"
	"github.com/yoockh/resumecraft/internal/utils"
)

type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdatePassword(ctx context.Context, id, hash string) error
	AppendResume(ctx context.Context, userID, resumeID string) error
	RemoveResume(ctx context.Context, userID, resumeID string) error
	List(ctx context.Context, q models.ListQuery) ([]models.User, int64, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type userRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, u *models.User) error {
	err := r.db.WithContext(ctx).Create(u).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
		return utils.ErrDuplicate
	}
	return err
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.take(ctx, "id = ?", id)
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.take(ctx, "email = ?", strings.ToLower(strings.TrimSpace(email)))
}

func (r *userRepo) take(ctx context.Context, where string, arg any) (*models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).Where(where, arg).Take(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) UpdatePassword(ctx context.Context, id, hash string) error {
	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("password_hash", hash)
	return affected(res)
}

// AppendResume is idempotent: an id already on the list is not added twice.
func (r *userRepo) AppendResume(ctx context.Context, userID, resumeID string) error {
	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ? AND NOT (? = ANY(COALESCE(resume_ids, '{}')))", userID, resumeID).
		Update("resume_ids", gorm.Expr("array_append(COALESCE(resume_ids, '{}'), ?)", resumeID))
	return res.Error
}

func (r *userRepo) RemoveResume(ctx context.Context, userID, resumeID string) error {
	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Update("resume_ids", gorm.Expr("array_remove(resume_ids, ?)", resumeID))
	return res.Error
}

func (r *userRepo) List(ctx context.Context, q models.ListQuery) ([]models.User, int64, error) {
	q = q.Normalized()
	// Count mutates the statement it runs on, so each query gets a fresh one.
	query := func() *gorm.DB {
		tx := r.db.WithContext(ctx).Model(&models.User{})
		if term := strings.TrimSpace(q.Search); term != "" {
			like := "%" + escapeLike(term) + "%"
			tx = tx.Where("name ILIKE ? OR email ILIKE ?", like, like)
		}
		return tx
	}

	var total int64
	if err := query().Count(&total).Error; err != nil {
		return nil, 0, err
	}
	out := []models.User{}
	err := query().Order("created_at DESC").
		Offset(q.Offset()).
		Limit(q.Limit).
		Find(&out).Error
	return out, total, err
}

func (r *userRepo) Delete(ctx context.Context, id string) error {
	return affected(r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.User{}))
}

func (r *userRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Count(&n).Error
	return n, err
}

func affected(res *gorm.DB) error {
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "SQLSTATE 23505")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }
