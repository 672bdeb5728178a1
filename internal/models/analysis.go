package models

// Fixed ATS analysis categories, in report order.
const (
	CategorySkillsMatch         = "Skills Match"
	CategoryExperienceRelevance = "Experience Relevance"
	CategoryKeywords            = "Keywords"
	CategoryEducation           = "Education"
)

var AnalysisCategories = []string{
	CategorySkillsMatch,
	CategoryExperienceRelevance,
	CategoryKeywords,
	CategoryEducation,
}

// AnalysisReport is derived from a resume and a job description. It is
// returned to the caller and never persisted.
type AnalysisReport struct {
	OverallScore    int             `json:"overallScore"`
	DetailedScores  []CategoryScore `json:"detailedScores"`
	MissingKeywords []string        `json:"missingKeywords"`
	Suggestions     []string        `json:"suggestions"`
}

type CategoryScore struct {
	Category string `json:"category"`
	Score    int    `json:"score"`
}
