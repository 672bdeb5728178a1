// Package scoring asks the language model to rate and analyze resumes and
// treats every answer as untrusted text.
package scoring

import (
	"context"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yoockh/resumecraft/internal/models"
	"github.com/yoockh/resumecraft/internal/providers/llm"
	"github.com/yoockh/resumecraft/internal/utils"
)

const (
	FallbackScore      = 75
	maxSuggestedSkills = 8
)

// Canned per-category scores used when the model's analysis is unusable.
var fallbackCategoryScores = map[string]int{
	models.CategorySkillsMatch:         75,
	models.CategoryExperienceRelevance: 70,
	models.CategoryKeywords:            65,
	models.CategoryEducation:           70,
}

var fallbackSuggestions = []string{
	"Tailor your professional summary to the target role.",
	"Quantify achievements in your experience section with concrete numbers.",
	"Mirror the exact skill keywords used in the job description.",
}

type Service interface {
	Score(ctx context.Context, r models.Resume) (int, error)
	Analyze(ctx context.Context, r models.Resume, jobDescription string) (models.AnalysisReport, error)
	SuggestSummary(ctx context.Context, r models.Resume) (string, error)
	SuggestSkills(ctx context.Context, r models.Resume) ([]string, error)
	ParseResumeText(ctx context.Context, text string) (models.Resume, error)
}

type service struct {
	ai  llm.Provider
	log *logrus.Logger
}

func NewService(ai llm.Provider, log *logrus.Logger) Service {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &service{ai: ai, log: log}
}

func (s *service) generate(ctx context.Context, op, prompt string) (string, error) {
	if s.ai == nil {
		return "", utils.E(utils.CodeUnavailable, op, "ai service is not configured", nil)
	}
	text, err := s.ai.Generate(ctx, prompt)
	if err != nil {
		s.log.WithError(err).WithField("op", op).Warn("ai call failed")
		return "", utils.E(utils.CodeUnavailable, op, "ai service unavailable", err)
	}
	return text, nil
}

func (s *service) Score(ctx context.Context, r models.Resume) (int, error) {
	const op = "Scoring.Score"

	text, err := s.generate(ctx, op, scorePrompt(r))
	if err != nil {
		return 0, err
	}
	return ParseScore(text), nil
}

// ParseScore reads the first integer in text, falling back to FallbackScore,
// and clamps the result into [0,100].
func ParseScore(text string) int {
	m := firstInteger.FindString(text)
	if m == "" {
		return FallbackScore
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		// too many digits for an int; the sign decides which bound applies
		if strings.HasPrefix(m, "-") {
			return models.MinScore
		}
		return models.MaxScore
	}
	return models.ClampScore(n)
}

func (s *service) Analyze(ctx context.Context, r models.Resume, jobDescription string) (models.AnalysisReport, error) {
	const op = "Scoring.Analyze"

	if strings.TrimSpace(jobDescription) == "" {
		return models.AnalysisReport{}, utils.E(utils.CodeInvalidArgument, op, "job description is required", nil)
	}
	text, err := s.generate(ctx, op, analyzePrompt(r, jobDescription))
	if err != nil {
		return models.AnalysisReport{}, err
	}
	return BuildReport(text, r, jobDescription), nil
}

// BuildReport turns raw model output into a well-formed report. It never
// fails: unusable output yields the canned report.
func BuildReport(text string, r models.Resume, jobDescription string) models.AnalysisReport {
	raw, ok := decodeAnalysis(text)
	if !ok {
		return FallbackReport(r, jobDescription)
	}

	scores := make([]models.CategoryScore, len(models.AnalysisCategories))
	for i, c := range models.AnalysisCategories {
		score := fallbackCategoryScores[c]
		if i < len(raw.DetailedScores) {
			score = clampFloat(raw.DetailedScores[i].Score)
		}
		scores[i] = models.CategoryScore{Category: c, Score: score}
	}

	report := models.AnalysisReport{
		OverallScore:   overall(scores),
		DetailedScores: scores,
	}
	if kw, ok := stringList(raw.MissingKeywords); ok {
		report.MissingKeywords = cleanKeywords(kw)
	} else {
		report.MissingKeywords = MissingKeywords(jobDescription, r)
	}
	if sg, ok := stringList(raw.Suggestions); ok && len(nonEmpty(sg)) > 0 {
		report.Suggestions = nonEmpty(sg)
	} else {
		report.Suggestions = append([]string{}, fallbackSuggestions...)
	}
	return report
}

func FallbackReport(r models.Resume, jobDescription string) models.AnalysisReport {
	scores := make([]models.CategoryScore, len(models.AnalysisCategories))
	for i, c := range models.AnalysisCategories {
		scores[i] = models.CategoryScore{Category: c, Score: fallbackCategoryScores[c]}
	}
	return models.AnalysisReport{
		OverallScore:    overall(scores),
		DetailedScores:  scores,
		MissingKeywords: MissingKeywords(jobDescription, r),
		Suggestions:     append([]string{}, fallbackSuggestions...),
	}
}

// overall is always recomputed here; the model's own total is ignored.
func overall(scores []models.CategoryScore) int {
	if len(scores) == 0 {
		return 0
	}
	sum := 0
	for _, s := range scores {
		sum += s.Score
	}
	return int(math.Round(float64(sum) / float64(len(scores))))
}

func clampFloat(f float64) int {
	if math.IsNaN(f) {
		return models.MinScore
	}
	return models.ClampScore(int(math.Round(math.Max(-1, math.Min(f, models.MaxScore+1)))))
}

func cleanKeywords(in []string) []string {
	out := make([]string, 0, maxMissingKeywords)
	seen := map[string]bool{}
	for _, k := range in {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
		if len(out) == maxMissingKeywords {
			break
		}
	}
	return out
}

func (s *service) SuggestSummary(ctx context.Context, r models.Resume) (string, error) {
	const op = "Scoring.SuggestSummary"

	text, err := s.generate(ctx, op, summaryPrompt(r))
	if err != nil {
		return "", err
	}
	summary := strings.Trim(stripFences(text), "\"' \n\t")
	if summary == "" {
		return localSummary(r), nil
	}
	return summary, nil
}

func localSummary(r models.Resume) string {
	role := "professional"
	if len(r.Experience) > 0 && strings.TrimSpace(r.Experience[0].Position) != "" {
		role = strings.TrimSpace(r.Experience[0].Position)
	}
	skills := nonEmpty(r.Skills)
	if len(skills) > 3 {
		skills = skills[:3]
	}
	if len(skills) == 0 {
		return "Dedicated " + role + " focused on delivering reliable results and continuous learning."
	}
	return "Dedicated " + role + " with hands-on experience in " + strings.Join(skills, ", ") +
		", focused on delivering reliable results and continuous learning."
}

func (s *service) SuggestSkills(ctx context.Context, r models.Resume) ([]string, error) {
	const op = "Scoring.SuggestSkills"

	text, err := s.generate(ctx, op, skillsPrompt(r))
	if err != nil {
		return nil, err
	}

	var candidates []string
	if payload, ok := extractJSON(text, '[', ']'); ok {
		candidates, _ = stringList(json.RawMessage(payload))
	}
	if candidates == nil {
		candidates = strings.FieldsFunc(stripFences(text), func(r rune) bool {
			return r == ',' || r == '\n'
		})
	}

	have := map[string]bool{}
	for _, sk := range r.Skills {
		have[strings.ToLower(strings.TrimSpace(sk))] = true
	}
	out := make([]string, 0, maxSuggestedSkills)
	for _, c := range candidates {
		c = strings.Trim(strings.TrimSpace(c), "-*•\"'")
		c = strings.TrimSpace(c)
		key := strings.ToLower(c)
		if c == "" || have[key] {
			continue
		}
		have[key] = true
		out = append(out, c)
		if len(out) == maxSuggestedSkills {
			break
		}
	}
	return out, nil
}

func (s *service) ParseResumeText(ctx context.Context, text string) (models.Resume, error) {
	const op = "Scoring.ParseResumeText"

	if strings.TrimSpace(text) == "" {
		return models.Resume{}, utils.E(utils.CodeInvalidArgument, op, "resume text is empty", nil)
	}
	answer, err := s.generate(ctx, op, parsePrompt(text))
	if err != nil {
		return models.Resume{}, err
	}
	return DecodeResume(answer), nil
}

// DecodeResume leniently decodes a model-produced resume. Malformed output
// yields an empty, normalized document.
func DecodeResume(text string) models.Resume {
	var r models.Resume
	if payload, ok := extractJSON(text, '{', '}'); ok {
		if err := json.Unmarshal([]byte(payload), &r); err != nil {
			r = models.Resume{}
		}
	}
	r.ID, r.OwnerID, r.Score = "", "", 0
	r.CreatedAt, r.UpdatedAt = time.Time{}, time.Time{}
	return models.Normalize(r)
}

func nonEmpty(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
