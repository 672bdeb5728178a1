package scoring

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yoockh/resumecraft/internal/models"
	"github.com/yoockh/resumecraft/internal/utils"
)

type fakeLLM struct {
	answer  string
	err     error
	prompts []string
}

func (f *fakeLLM) Generate(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.answer, f.err
}

func (f *fakeLLM) Close() error { return nil }

func resume() models.Resume {
	return models.Resume{
		PersonalDetails: models.PersonalDetails{FullName: "Jane Doe"},
		Skills:          []string{"SQL", "Python"},
		Experience:      []models.Experience{{Company: "Acme", Position: "Data Analyst"}},
	}
}

func TestParseScore(t *testing.T) {
	cases := map[string]int{
		"85":                         85,
		"Score: 92/100":              92,
		"I would rate this 150":      100,
		"-20":                        0,
		"no digits here":             FallbackScore,
		"":                           FallbackScore,
		"99999999999999999999999999": 100,
		"-99999999999999999999999":   0,
	}
	for in, want := range cases {
		got := ParseScore(in)
		assert.Equal(t, want, got, in)
		assert.GreaterOrEqual(t, got, 0)
		assert.LessOrEqual(t, got, 100)
	}
}

func TestScore_UpstreamFailure(t *testing.T) {
	svc := NewService(&fakeLLM{err: errors.New("deadline exceeded")}, nil)

	_, err := svc.Score(context.Background(), resume())
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeUnavailable))
	assert.Contains(t, err.Error(), "deadline exceeded")
}

func TestScore_UsesModelAnswer(t *testing.T) {
	ai := &fakeLLM{answer: "88"}
	got, err := NewService(ai, nil).Score(context.Background(), resume())
	require.NoError(t, err)
	assert.Equal(t, 88, got)
	require.Len(t, ai.prompts, 1)
	assert.Contains(t, ai.prompts[0], "Jane Doe")
}

func TestAnalyze_RecomputesOverallScore(t *testing.T) {
	answer := "```json\n" + `{"overallScore": 12,
	  "detailedScores": [
	    {"category": "Skills", "score": 80},
	    {"category": "Exp", "score": 71},
	    {"category": "Kw", "score": 60},
	    {"category": "Edu", "score": 90}],
	  "missingKeywords": ["Kubernetes", " Terraform "],
	  "suggestions": ["Add metrics"]}` + "\n```"

	report, err := NewService(&fakeLLM{answer: answer}, nil).Analyze(context.Background(), resume(), "we need kubernetes")
	require.NoError(t, err)

	assert.Equal(t, 75, report.OverallScore) // round(301/4)
	require.Len(t, report.DetailedScores, 4)
	for i, c := range models.AnalysisCategories {
		assert.Equal(t, c, report.DetailedScores[i].Category)
	}
	assert.Equal(t, []string{"kubernetes", "terraform"}, report.MissingKeywords)
	assert.Equal(t, []string{"Add metrics"}, report.Suggestions)
}

func TestAnalyze_ClampsCategoryScores(t *testing.T) {
	answer := `{"detailedScores": [{"score": 140}, {"score": -5}, {"score": 50}, {"score": 50}]}`
	report := BuildReport(answer, resume(), "jd")

	assert.Equal(t, 100, report.DetailedScores[0].Score)
	assert.Equal(t, 0, report.DetailedScores[1].Score)
	assert.Equal(t, 50, report.OverallScore)
}

func TestAnalyze_MalformedKeywordsUseLocalDifference(t *testing.T) {
	jd := "Seeking analyst with Python, Tableau, Looker, Snowflake, Airflow and dbt plus Spark experience"
	answer := `{"detailedScores": [{"score": 70}, {"score": 70}, {"score": 70}, {"score": 70}], "missingKeywords": "tableau"}`

	report := BuildReport(answer, resume(), jd)
	assert.Equal(t, MissingKeywords(jd, resume()), report.MissingKeywords)
	assert.Equal(t, []string{"seeking", "with", "tableau", "looker", "snowflake"}, report.MissingKeywords)
}

func TestAnalyze_GarbageYieldsCannedReport(t *testing.T) {
	for _, answer := range []string{"", "sorry, I cannot help", `{"detailedScores": "high"}`, `{"detailedScores": []}`} {
		report := BuildReport(answer, resume(), "golang kubernetes")
		assert.Equal(t, 70, report.OverallScore, answer)
		assert.Equal(t, []models.CategoryScore{
			{Category: models.CategorySkillsMatch, Score: 75},
			{Category: models.CategoryExperienceRelevance, Score: 70},
			{Category: models.CategoryKeywords, Score: 65},
			{Category: models.CategoryEducation, Score: 70},
		}, report.DetailedScores)
		assert.Equal(t, []string{"golang", "kubernetes"}, report.MissingKeywords)
		assert.NotEmpty(t, report.Suggestions)
	}
}

func TestAnalyze_RequiresJobDescription(t *testing.T) {
	ai := &fakeLLM{answer: "{}"}
	_, err := NewService(ai, nil).Analyze(context.Background(), resume(), "  ")
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
	assert.Empty(t, ai.prompts)
}

func TestMissingKeywords(t *testing.T) {
	r := resume()
	got := MissingKeywords("Python python SQL Analyst docker docker kubernetes", r)
	// python and analyst appear in the resume; sql is too short
	assert.Equal(t, []string{"docker", "kubernetes"}, got)
	assert.Empty(t, MissingKeywords("", r))
}

func TestSuggestSummary(t *testing.T) {
	got, err := NewService(&fakeLLM{answer: "\"Analyst with five years of SQL.\"\n"}, nil).SuggestSummary(context.Background(), resume())
	require.NoError(t, err)
	assert.Equal(t, "Analyst with five years of SQL.", got)

	got, err = NewService(&fakeLLM{answer: "  "}, nil).SuggestSummary(context.Background(), resume())
	require.NoError(t, err)
	assert.Contains(t, got, "Data Analyst")
}

func TestSuggestSkills(t *testing.T) {
	svc := NewService(&fakeLLM{answer: "Sure!\n```json\n[\"Tableau\", \"sql\", \"Power BI\", \"tableau\", \"\"]\n```"}, nil)
	got, err := svc.SuggestSkills(context.Background(), resume())
	require.NoError(t, err)
	assert.Equal(t, []string{"Tableau", "Power BI"}, got)

	svc = NewService(&fakeLLM{answer: "- Excel\n- Looker, Python"}, nil)
	got, err = svc.SuggestSkills(context.Background(), resume())
	require.NoError(t, err)
	assert.Equal(t, []string{"Excel", "Looker"}, got)
}

func TestParseResumeText(t *testing.T) {
	answer := `Here you go: {"id": "x", "personalDetails": {"fullName": " Jane Doe "}, "skills": ["Go"], "selectedTemplate": "bogus"}`
	got, err := NewService(&fakeLLM{answer: answer}, nil).ParseResumeText(context.Background(), "Jane Doe\nGo developer")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", got.PersonalDetails.FullName)
	assert.Equal(t, []string{"Go"}, got.Skills)
	assert.Empty(t, got.ID)
	assert.Equal(t, models.DefaultTemplate, got.SelectedTemplate)

	got, err = NewService(&fakeLLM{answer: "not json"}, nil).ParseResumeText(context.Background(), "text")
	require.NoError(t, err)
	assert.Equal(t, models.Normalize(models.Resume{}), got)

	_, err = NewService(&fakeLLM{}, nil).ParseResumeText(context.Background(), " ")
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
}

func TestNoProvider(t *testing.T) {
	_, err := NewService(nil, nil).Score(context.Background(), resume())
	assert.True(t, utils.IsCode(err, utils.CodeUnavailable))
}
