package services

import (
	"context"
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yoockh/resumecraft/internal/cache"
	"github.com/yoockh/resumecraft/internal/models"
	"github.com/yoockh/resumecraft/internal/repositories"
	pgrepo "github.com/yoockh/resumecraft/internal/repositories/postgres"
)

const statsTTL = 60 * time.Second

type DashboardStats struct {
	Users         int64     `json:"users"`
	Resumes       int64     `json:"resumes"`
	Feedback      int64     `json:"feedback"`
	AverageRating float64   `json:"averageRating"`
	GeneratedAt   time.Time `json:"generatedAt"`
}

type AdminService interface {
	Stats(ctx context.Context) (DashboardStats, error)

	ListUsers(ctx context.Context, q models.ListQuery) (models.Page[models.User], error)
	DeleteUser(ctx context.Context, id string) error

	ListResumes(ctx context.Context, q models.ListQuery) (models.Page[models.Resume], error)
	DeleteResume(ctx context.Context, id string) error

	ListFeedback(ctx context.Context, q models.ListQuery) (models.Page[models.Feedback], error)
	DeleteFeedback(ctx context.Context, id string) error
}

type adminService struct {
	users    pgrepo.UserRepository
	resumes  repositories.ResumeRepository
	feedback FeedbackService
	feedRepo pgrepo.FeedbackRepository
	cache    cache.Cache
	log      *logrus.Logger
	now      func() time.Time
}

func NewAdminService(
	users pgrepo.UserRepository,
	resumes repositories.ResumeRepository,
	feedRepo pgrepo.FeedbackRepository,
	c cache.Cache,
	log *logrus.Logger,
) AdminService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &adminService{
		users:    users,
		resumes:  resumes,
		feedback: NewFeedbackService(feedRepo),
		feedRepo: feedRepo,
		cache:    c,
		log:      log,
		now:      time.Now,
	}
}

// Stats serves the dashboard from cache for up to a minute. Cache failures
// fall through to the stores.
func (s *adminService) Stats(ctx context.Context) (DashboardStats, error) {
	const op = "AdminService.Stats"

	var st DashboardStats
	if s.cache != nil {
		hit, err := s.cache.GetJSON(ctx, cache.AdminStatsKey, &st)
		if err != nil {
			s.log.WithError(err).Warn("admin stats cache read failed")
		}
		if hit && err == nil {
			return st, nil
		}
	}

	var err error
	if st.Users, err = s.users.Count(ctx); err != nil {
		return DashboardStats{}, repoError(op, "user", err)
	}
	if st.Resumes, err = s.resumes.Count(ctx); err != nil {
		return DashboardStats{}, repoError(op, "resume", err)
	}
	if st.Feedback, err = s.feedRepo.Count(ctx); err != nil {
		return DashboardStats{}, repoError(op, "feedback", err)
	}
	avg, err := s.feedRepo.AverageRating(ctx)
	if err != nil {
		return DashboardStats{}, repoError(op, "feedback", err)
	}
	st.AverageRating = math.Round(avg*100) / 100
	st.GeneratedAt = s.now().UTC()

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, cache.AdminStatsKey, st, statsTTL); err != nil {
			s.log.WithError(err).Warn("admin stats cache write failed")
		}
	}
	return st, nil
}

func (s *adminService) invalidateStats(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, cache.AdminStatsKey); err != nil {
		s.log.WithError(err).Warn("admin stats cache invalidation failed")
	}
}

func (s *adminService) ListUsers(ctx context.Context, q models.ListQuery) (models.Page[models.User], error) {
	const op = "AdminService.ListUsers"

	q = q.Normalized()
	items, total, err := s.users.List(ctx, q)
	if err != nil {
		return models.Page[models.User]{}, repoError(op, "user", err)
	}
	return models.NewPage(items, total, q.Page, q.Limit), nil
}

// DeleteUser removes the account and every resume it owns.
func (s *adminService) DeleteUser(ctx context.Context, id string) error {
	const op = "AdminService.DeleteUser"

	if err := s.users.Delete(ctx, id); err != nil {
		return repoError(op, "user", err)
	}
	n, err := s.resumes.DeleteByOwner(ctx, id)
	if err != nil {
		return repoError(op, "resume", err)
	}
	s.log.WithFields(logrus.Fields{"user_id": id, "resumes": n}).Info("user deleted")
	s.invalidateStats(ctx)
	return nil
}

func (s *adminService) ListResumes(ctx context.Context, q models.ListQuery) (models.Page[models.Resume], error) {
	const op = "AdminService.ListResumes"

	q = q.Normalized()
	items, total, err := s.resumes.List(ctx, q)
	if err != nil {
		return models.Page[models.Resume]{}, repoError(op, "resume", err)
	}
	return models.NewPage(items, total, q.Page, q.Limit), nil
}

func (s *adminService) DeleteResume(ctx context.Context, id string) error {
	const op = "AdminService.DeleteResume"

	r, err := s.resumes.GetAny(ctx, id)
	if err != nil {
		return repoError(op, "resume", err)
	}
	if err := s.resumes.Delete(ctx, id, r.OwnerID); err != nil {
		return repoError(op, "resume", err)
	}
	if err := s.users.RemoveResume(ctx, r.OwnerID, id); err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{"user_id": r.OwnerID, "resume_id": id}).
			Warn("failed to remove resume from owner list")
	}
	s.invalidateStats(ctx)
	return nil
}

func (s *adminService) ListFeedback(ctx context.Context, q models.ListQuery) (models.Page[models.Feedback], error) {
	return s.feedback.List(ctx, q)
}

func (s *adminService) DeleteFeedback(ctx context.Context, id string) error {
	if err := s.feedback.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateStats(ctx)
	return nil
}
