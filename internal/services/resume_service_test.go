package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yoockh/resumecraft/internal/models"
	"github.com/yoockh/resumecraft/internal/repositories/memory"
	"github.com/yoockh/resumecraft/internal/scoring"
	"github.com/yoockh/resumecraft/internal/utils"
)

type resumeFixture struct {
	svc      ResumeService
	resumes  *memory.ResumeRepo
	users    *memory.UserRepo
	ai       *fakeLLM
	exporter *fakeExporter
}

func newResumeFixture(t *testing.T) resumeFixture {
	t.Helper()
	f := resumeFixture{
		resumes:  memory.NewResumeRepo(),
		users:    memory.NewUserRepo(),
		ai:       &fakeLLM{answer: "Score: 91"},
		exporter: &fakeExporter{},
	}
	require.NoError(t, f.users.Create(context.Background(), &models.User{ID: "alice", Email: "alice@example.com"}))
	f.svc = NewResumeService(f.resumes, f.users, scoring.NewService(f.ai, quietLogger()), f.exporter, quietLogger())
	return f
}

func jane() models.Resume {
	return models.Resume{
		PersonalDetails: models.PersonalDetails{FullName: "Jane Doe"},
		Skills:          []string{"SQL"},
	}
}

func TestResumeService_SaveCreatesAndLinksOwner(t *testing.T) {
	ctx := context.Background()
	f := newResumeFixture(t)

	in := jane()
	in.Score = 40
	saved, err := f.svc.Save(ctx, "alice", in)
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, "alice", saved.OwnerID)
	assert.Equal(t, "Jane Doe - Resume", saved.Title)
	assert.Zero(t, saved.Score)
	assert.Equal(t, models.TemplateModernProfessional, saved.SelectedTemplate)

	u, err := f.users.GetByID(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{saved.ID}, []string(u.ResumeIDs))
}

func TestResumeService_SaveWithIDUpdates(t *testing.T) {
	ctx := context.Background()
	f := newResumeFixture(t)

	saved, err := f.svc.Save(ctx, "alice", jane())
	require.NoError(t, err)

	saved.Summary = "Data analyst"
	saved.Title = "Analyst CV"
	updated, err := f.svc.Save(ctx, "alice", *saved)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, updated.ID)
	assert.Equal(t, "Data analyst", updated.Summary)
	assert.Equal(t, "Analyst CV", updated.Title)

	list, err := f.svc.List(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestResumeService_SaveValidation(t *testing.T) {
	ctx := context.Background()
	f := newResumeFixture(t)

	_, err := f.svc.Save(ctx, "alice", models.Resume{PersonalDetails: models.PersonalDetails{FullName: "   "}})
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))

	_, err = f.svc.Save(ctx, "", jane())
	assert.True(t, utils.IsCode(err, utils.CodeUnauthorized))

	n, _ := f.resumes.Count(ctx)
	assert.Zero(t, n)
}

func TestResumeService_OtherOwnersSeeNotFound(t *testing.T) {
	ctx := context.Background()
	f := newResumeFixture(t)

	saved, err := f.svc.Save(ctx, "alice", jane())
	require.NoError(t, err)

	_, err = f.svc.Get(ctx, "mallory", saved.ID)
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))

	err = f.svc.Delete(ctx, "mallory", saved.ID)
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))

	other := *saved
	other.Summary = "hijacked"
	_, err = f.svc.Save(ctx, "mallory", other)
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))
}

func TestResumeService_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	f := newResumeFixture(t)

	saved, err := f.svc.Save(ctx, "alice", jane())
	require.NoError(t, err)

	summary := "Builds dashboards"
	score := 99
	updated, err := f.svc.Update(ctx, "alice", saved.ID, models.ResumePatch{Summary: &summary, Score: &score})
	require.NoError(t, err)
	assert.Equal(t, summary, updated.Summary)
	assert.Zero(t, updated.Score)

	_, err = f.svc.Update(ctx, "alice", saved.ID, models.ResumePatch{PersonalDetails: &models.PersonalDetails{}})
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))

	require.NoError(t, f.svc.Delete(ctx, "alice", saved.ID))
	u, _ := f.users.GetByID(ctx, "alice")
	assert.Empty(t, u.ResumeIDs)

	_, err = f.svc.Get(ctx, "alice", saved.ID)
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))
}

func TestResumeService_ScorePersists(t *testing.T) {
	ctx := context.Background()
	f := newResumeFixture(t)

	saved, err := f.svc.Save(ctx, "alice", jane())
	require.NoError(t, err)

	scored, err := f.svc.Score(ctx, "alice", saved.ID)
	require.NoError(t, err)
	assert.Equal(t, 91, scored.Score)

	got, _ := f.svc.Get(ctx, "alice", saved.ID)
	assert.Equal(t, 91, got.Score)
}

func TestResumeService_ScoreUpstreamFailure(t *testing.T) {
	ctx := context.Background()
	f := newResumeFixture(t)
	saved, err := f.svc.Save(ctx, "alice", jane())
	require.NoError(t, err)

	f.ai.err = errors.New("quota")
	_, err = f.svc.Score(ctx, "alice", saved.ID)
	assert.True(t, utils.IsCode(err, utils.CodeUnavailable))

	got, _ := f.svc.Get(ctx, "alice", saved.ID)
	assert.Zero(t, got.Score)
}

func TestResumeService_ExportAnonymousDoesNotSave(t *testing.T) {
	ctx := context.Background()
	f := newResumeFixture(t)

	file, err := f.svc.ExportPDF(ctx, "", jane(), models.TemplateTechFocused)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe.pdf", file.Filename)
	assert.Empty(t, file.ResumeID)
	assert.Contains(t, f.exporter.html, "template-tech-focused")

	n, _ := f.resumes.Count(ctx)
	assert.Zero(t, n)
}

func TestResumeService_ExportAuthenticatedSaves(t *testing.T) {
	ctx := context.Background()
	f := newResumeFixture(t)

	file, err := f.svc.ExportPDF(ctx, "alice", jane(), "")
	require.NoError(t, err)
	assert.NotEmpty(t, file.ResumeID)
	assert.True(t, len(file.Data) > 4 && string(file.Data[:4]) == "%PDF")

	got, err := f.svc.Get(ctx, "alice", file.ResumeID)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", got.PersonalDetails.FullName)
}

func TestResumeService_ExportFailures(t *testing.T) {
	ctx := context.Background()
	f := newResumeFixture(t)

	_, err := f.svc.ExportPDF(ctx, "alice", models.Resume{}, "")
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
	assert.Empty(t, f.exporter.html)

	f.exporter.err = errors.New("chrome crashed")
	_, err = f.svc.ExportPDF(ctx, "", jane(), "")
	assert.True(t, utils.IsCode(err, utils.CodeUnavailable))

	var ae *utils.AppError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, "failed to export pdf", ae.Message)
}

func TestResumeService_ExportSaved(t *testing.T) {
	ctx := context.Background()
	f := newResumeFixture(t)

	in := jane()
	in.SelectedTemplate = models.TemplateClassicExecutive
	saved, err := f.svc.Save(ctx, "alice", in)
	require.NoError(t, err)

	file, err := f.svc.ExportSaved(ctx, "alice", saved.ID, "")
	require.NoError(t, err)
	assert.Equal(t, saved.ID, file.ResumeID)
	assert.Contains(t, f.exporter.html, "template-classic-executive")

	_, err = f.svc.ExportSaved(ctx, "bob", saved.ID, "")
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))
}

func TestResumeService_Preview(t *testing.T) {
	f := newResumeFixture(t)

	in := jane()
	in.SelectedTemplate = models.TemplateFreshGraduate
	res := f.svc.Preview(in, "")
	assert.Equal(t, models.TemplateFreshGraduate, res.Template)
	assert.Contains(t, res.HTML, "Jane Doe")

	res = f.svc.Preview(in, models.TemplateMinimalElegant)
	assert.Equal(t, models.TemplateMinimalElegant, res.Template)
}

func TestPDFFilename(t *testing.T) {
	cases := map[string]string{
		"Jane Doe":        "Jane Doe.pdf",
		`  Ja"ne/Do:e;  `: "JaneDoe.pdf",
		"José Álvarez":    "José Álvarez.pdf",
		"":                "resume.pdf",
		"line\nbreak":     "linebreak.pdf",
	}
	for in, want := range cases {
		r := models.Resume{PersonalDetails: models.PersonalDetails{FullName: in}}
		assert.Equal(t, want, PDFFilename(r), in)
	}
}
