package services

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/yoockh/resumecraft/internal/models"
	"github.com/yoockh/resumecraft/internal/pdf"
	"github.com/yoockh/resumecraft/internal/render"
	"github.com/yoockh/resumecraft/internal/repositories"
	pgrepo "github.com/yoockh/resumecraft/internal/repositories/postgres"
	"github.com/yoockh/resumecraft/internal/scoring"
	"github.com/yoockh/resumecraft/internal/utils"
)

// PDFFile is an exported resume ready to be sent as an attachment.
type PDFFile struct {
	Data     []byte
	Filename string
	ResumeID string
}

type ResumeService interface {
	Save(ctx context.Context, ownerID string, r models.Resume) (*models.Resume, error)
	Get(ctx context.Context, ownerID, id string) (*models.Resume, error)
	List(ctx context.Context, ownerID string) ([]models.Resume, error)
	Update(ctx context.Context, ownerID, id string, p models.ResumePatch) (*models.Resume, error)
	Delete(ctx context.Context, ownerID, id string) error

	Score(ctx context.Context, ownerID, id string) (*models.Resume, error)
	Analyze(ctx context.Context, r models.Resume, jobDescription string) (models.AnalysisReport, error)

	Preview(r models.Resume, t models.TemplateID) render.Result
	ExportPDF(ctx context.Context, ownerID string, r models.Resume, t models.TemplateID) (*PDFFile, error)
	ExportSaved(ctx context.Context, ownerID, id string, t models.TemplateID) (*PDFFile, error)
}

type resumeService struct {
	resumes  repositories.ResumeRepository
	users    pgrepo.UserRepository
	scorer   scoring.Service
	exporter pdf.Exporter
	log      *logrus.Logger
}

// NewResumeService: users may be nil, in which case the owner's resume list
// is simply not maintained.
func NewResumeService(
	resumes repositories.ResumeRepository,
	users pgrepo.UserRepository,
	scorer scoring.Service,
	exporter pdf.Exporter,
	log *logrus.Logger,
) ResumeService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &resumeService{resumes: resumes, users: users, scorer: scorer, exporter: exporter, log: log}
}

func (s *resumeService) Save(ctx context.Context, ownerID string, r models.Resume) (*models.Resume, error) {
	const op = "ResumeService.Save"

	if ownerID == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "unauthorized", nil)
	}
	if !models.IsSavable(r) {
		return nil, utils.E(utils.CodeInvalidArgument, op, "personal details full name is required", nil)
	}
	r = models.Normalize(r)
	if r.Title == "" {
		r.Title = models.DefaultTitle(r)
	}

	if r.ID != "" {
		out, err := s.resumes.Update(ctx, r.ID, ownerID, models.PatchFromResume(r))
		if err != nil {
			return nil, repoError(op, "resume", err)
		}
		return out, nil
	}

	r.OwnerID = ownerID
	r.Score = 0
	if _, err := s.resumes.Create(ctx, &r); err != nil {
		return nil, repoError(op, "resume", err)
	}
	s.appendToOwner(ctx, ownerID, r.ID)
	return &r, nil
}

// appendToOwner and removeFromOwner are separate, non-atomic writes; a
// failure leaves the back-reference stale and is only logged.
func (s *resumeService) appendToOwner(ctx context.Context, ownerID, resumeID string) {
	if s.users == nil {
		return
	}
	if err := s.users.AppendResume(ctx, ownerID, resumeID); err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{"user_id": ownerID, "resume_id": resumeID}).
			Warn("failed to add resume to owner list")
	}
}

func (s *resumeService) removeFromOwner(ctx context.Context, ownerID, resumeID string) {
	if s.users == nil {
		return
	}
	if err := s.users.RemoveResume(ctx, ownerID, resumeID); err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{"user_id": ownerID, "resume_id": resumeID}).
			Warn("failed to remove resume from owner list")
	}
}

func (s *resumeService) Get(ctx context.Context, ownerID, id string) (*models.Resume, error) {
	const op = "ResumeService.Get"

	if id == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "resume id is required", nil)
	}
	r, err := s.resumes.Get(ctx, id, ownerID)
	if err != nil {
		return nil, repoError(op, "resume", err)
	}
	return r, nil
}

func (s *resumeService) List(ctx context.Context, ownerID string) ([]models.Resume, error) {
	const op = "ResumeService.List"

	out, err := s.resumes.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, repoError(op, "resume", err)
	}
	return out, nil
}

func (s *resumeService) Update(ctx context.Context, ownerID, id string, p models.ResumePatch) (*models.Resume, error) {
	const op = "ResumeService.Update"

	if id == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "resume id is required", nil)
	}
	if p.PersonalDetails != nil && strings.TrimSpace(p.PersonalDetails.FullName) == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "personal details full name is required", nil)
	}
	// score is owned by the scoring flow
	p.Score = nil
	if p.Empty() {
		return s.Get(ctx, ownerID, id)
	}

	out, err := s.resumes.Update(ctx, id, ownerID, p)
	if err != nil {
		return nil, repoError(op, "resume", err)
	}
	return out, nil
}

func (s *resumeService) Delete(ctx context.Context, ownerID, id string) error {
	const op = "ResumeService.Delete"

	if err := s.resumes.Delete(ctx, id, ownerID); err != nil {
		return repoError(op, "resume", err)
	}
	s.removeFromOwner(ctx, ownerID, id)
	return nil
}

func (s *resumeService) Score(ctx context.Context, ownerID, id string) (*models.Resume, error) {
	const op = "ResumeService.Score"

	r, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	score, err := s.scorer.Score(ctx, *r)
	if err != nil {
		return nil, err
	}
	out, err := s.resumes.Update(ctx, id, ownerID, models.ResumePatch{Score: &score})
	if err != nil {
		return nil, repoError(op, "resume", err)
	}
	return out, nil
}

func (s *resumeService) Analyze(ctx context.Context, r models.Resume, jobDescription string) (models.AnalysisReport, error) {
	return s.scorer.Analyze(ctx, models.Normalize(r), jobDescription)
}

func (s *resumeService) Preview(r models.Resume, t models.TemplateID) render.Result {
	if t == "" {
		t = r.SelectedTemplate
	}
	return render.RenderDocument(r, t)
}

func (s *resumeService) ExportPDF(ctx context.Context, ownerID string, r models.Resume, t models.TemplateID) (*PDFFile, error) {
	const op = "ResumeService.ExportPDF"

	if !models.IsSavable(r) {
		return nil, utils.E(utils.CodeInvalidArgument, op, "personal details full name is required", nil)
	}
	if t != "" {
		r.SelectedTemplate = t
	}

	// downloading saves the document for signed-in users
	if ownerID != "" {
		saved, err := s.Save(ctx, ownerID, r)
		if err != nil {
			return nil, err
		}
		r = *saved
	}
	return s.export(ctx, op, r)
}

func (s *resumeService) ExportSaved(ctx context.Context, ownerID, id string, t models.TemplateID) (*PDFFile, error) {
	const op = "ResumeService.ExportSaved"

	r, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if !models.IsSavable(*r) {
		return nil, utils.E(utils.CodeInvalidArgument, op, "personal details full name is required", nil)
	}
	if t != "" {
		r.SelectedTemplate = t
	}
	return s.export(ctx, op, *r)
}

func (s *resumeService) export(ctx context.Context, op string, r models.Resume) (*PDFFile, error) {
	if s.exporter == nil {
		return nil, utils.E(utils.CodeUnavailable, op, "failed to export pdf", errors.New("pdf exporter not configured"))
	}
	html := render.Render(r, r.SelectedTemplate)
	data, err := s.exporter.Export(ctx, html)
	if err != nil {
		s.log.WithError(err).WithField("resume_id", r.ID).Error("pdf export failed")
		return nil, utils.E(utils.CodeUnavailable, op, "failed to export pdf", err)
	}
	return &PDFFile{Data: data, Filename: PDFFilename(r), ResumeID: r.ID}, nil
}

// PDFFilename is "{fullName}.pdf" with characters that would break a
// Content-Disposition header removed.
func PDFFilename(r models.Resume) string {
	name := strings.Map(func(c rune) rune {
		switch {
		case c < 0x20, c == 0x7f:
			return -1
		case c == '"', c == '\\', c == '/', c == ':', c == ';':
			return -1
		}
		return c
	}, strings.TrimSpace(r.PersonalDetails.FullName))
	name = strings.TrimSpace(name)
	if name == "" {
		name = "resume"
	}
	return name + ".pdf"
}

// repoError maps repository sentinels to AppErrors.
func repoError(op, what string, err error) error {
	var ae *utils.AppError
	switch {
	case errors.As(err, &ae):
		return err
	case errors.Is(err, utils.ErrNotFound):
		return utils.NotFound(op, what)
	case errors.Is(err, utils.ErrDuplicate):
		return utils.E(utils.CodeConflict, op, what+" already exists", err)
	default:
		return utils.E(utils.CodeUnavailable, op, "failed to access "+what+" store", err)
	}
}
