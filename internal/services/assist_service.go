package services

import (
	"bytes"
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yoockh/resumecraft/internal/extract"
	"github.com/yoockh/resumecraft/internal/models"
	"github.com/yoockh/resumecraft/internal/scoring"
	"github.com/yoockh/resumecraft/internal/storage"
	"github.com/yoockh/resumecraft/internal/utils"
)

// ParsedUpload is the outcome of importing an existing resume PDF.
type ParsedUpload struct {
	Resume     models.Resume `json:"resume"`
	StoredPath string        `json:"storedPath,omitempty"`
}

type AssistService interface {
	SuggestSummary(ctx context.Context, r models.Resume) (string, error)
	SuggestSkills(ctx context.Context, r models.Resume) ([]string, error)
	ParsePDF(ctx context.Context, ownerID, filename string, data []byte) (*ParsedUpload, error)
}

type assistService struct {
	scorer   scoring.Service
	uploader storage.Uploader
	log      *logrus.Logger
	now      func() time.Time
}

// NewAssistService: uploader may be nil, in which case uploaded PDFs are not
// archived.
func NewAssistService(scorer scoring.Service, uploader storage.Uploader, log *logrus.Logger) AssistService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &assistService{scorer: scorer, uploader: uploader, log: log, now: time.Now}
}

func (s *assistService) SuggestSummary(ctx context.Context, r models.Resume) (string, error) {
	return s.scorer.SuggestSummary(ctx, models.Normalize(r))
}

func (s *assistService) SuggestSkills(ctx context.Context, r models.Resume) ([]string, error) {
	return s.scorer.SuggestSkills(ctx, models.Normalize(r))
}

func (s *assistService) ParsePDF(ctx context.Context, ownerID, filename string, data []byte) (*ParsedUpload, error) {
	const op = "AssistService.ParsePDF"

	text, err := extract.PDFText(ctx, data)
	switch {
	case errors.Is(err, extract.ErrTooLarge):
		return nil, utils.E(utils.CodeInvalidArgument, op, "file exceeds 10MB", err)
	case errors.Is(err, extract.ErrNotPDF):
		return nil, utils.E(utils.CodeInvalidArgument, op, "only pdf files are supported", err)
	case errors.Is(err, extract.ErrNoText):
		return nil, utils.E(utils.CodeInvalidArgument, op, "no text found in pdf", err)
	case err != nil:
		return nil, utils.E(utils.CodeInvalidArgument, op, "could not read pdf", err)
	}

	r, err := s.scorer.ParseResumeText(ctx, text)
	if err != nil {
		return nil, err
	}

	out := &ParsedUpload{Resume: r}
	if s.uploader != nil {
		name := storage.UploadObjectName(ownerID, filename, s.now())
		path, err := s.uploader.Upload(ctx, name, "application/pdf", bytes.NewReader(data))
		if err != nil {
			// archiving is best effort; the parse result is still useful
			s.log.WithError(err).WithField("object", name).Warn("failed to archive uploaded pdf")
		} else {
			out.StoredPath = path
		}
	}
	return out, nil
}
