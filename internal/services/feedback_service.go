package services

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yoockh/resumecraft/internal/models"
	pgrepo "github.com/yoockh/resumecraft/internal/repositories/postgres"
	"github.com/yoockh/resumecraft/internal/utils"
)

const maxFeedbackLen = 5000

type FeedbackInput struct {
	Name     string         `json:"name"`
	Email    string         `json:"email"`
	Rating   int            `json:"rating"`
	Message  string         `json:"message"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

type FeedbackService interface {
	Submit(ctx context.Context, userID string, in FeedbackInput) (*models.Feedback, error)
	List(ctx context.Context, q models.ListQuery) (models.Page[models.Feedback], error)
	Delete(ctx context.Context, id string) error
}

type feedbackService struct {
	repo pgrepo.FeedbackRepository
}

func NewFeedbackService(repo pgrepo.FeedbackRepository) FeedbackService {
	return &feedbackService{repo: repo}
}

// Submit accepts anonymous feedback; userID is empty then.
func (s *feedbackService) Submit(ctx context.Context, userID string, in FeedbackInput) (*models.Feedback, error) {
	const op = "FeedbackService.Submit"

	msg := strings.TrimSpace(in.Message)
	if msg == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "message is required", nil)
	}
	if len(msg) > maxFeedbackLen {
		return nil, utils.E(utils.CodeInvalidArgument, op, "message is too long", nil)
	}
	if in.Rating < 1 || in.Rating > 5 {
		return nil, utils.E(utils.CodeInvalidArgument, op, "rating must be between 1 and 5", nil)
	}

	f := &models.Feedback{
		ID:      uuid.NewString(),
		UserID:  userID,
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.ToLower(strings.TrimSpace(in.Email)),
		Rating:  in.Rating,
		Message: msg,
	}
	if len(in.Metadata) > 0 {
		raw, err := json.Marshal(in.Metadata)
		if err != nil {
			return nil, utils.E(utils.CodeInvalidArgument, op, "invalid metadata", err)
		}
		f.Metadata = datatypes.JSON(raw)
	}

	if err := s.repo.Create(ctx, f); err != nil {
		return nil, repoError(op, "feedback", err)
	}
	return f, nil
}

func (s *feedbackService) List(ctx context.Context, q models.ListQuery) (models.Page[models.Feedback], error) {
	const op = "FeedbackService.List"

	q = q.Normalized()
	items, total, err := s.repo.List(ctx, q)
	if err != nil {
		return models.Page[models.Feedback]{}, repoError(op, "feedback", err)
	}
	return models.NewPage(items, total, q.Page, q.Limit), nil
}

func (s *feedbackService) Delete(ctx context.Context, id string) error {
	const op = "FeedbackService.Delete"

	if err := s.repo.Delete(ctx, id); err != nil {
		return repoError(op, "feedback", err)
	}
	return nil
}
