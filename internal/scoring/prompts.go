package scoring

import (
	"fmt"
	"strings"

	"github.com/yoockh/resumecraft/internal/models"
)

func scorePrompt(r models.Resume) string {
	return fmt.Sprintf(`You are an ATS (applicant tracking system) reviewer.
Rate the following resume from 0 to 100 for completeness, clarity and ATS compatibility.
Respond with a single integer and nothing else.

Resume (JSON):
%s`, serialize(r))
}

func analyzePrompt(r models.Resume, jobDescription string) string {
	var b strings.Builder
	b.WriteString("You are an ATS (applicant tracking system) analyzer. Compare the resume with the job description.\n")
	b.WriteString("Respond with JSON only, exactly in this shape:\n")
	b.WriteString(`{"overallScore": 0, "detailedScores": [`)
	for i, c := range models.AnalysisCategories {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, `{"category": %q, "score": 0}`, c)
	}
	b.WriteString(`], "missingKeywords": ["keyword"], "suggestions": ["suggestion"]}`)
	b.WriteString("\nScores are integers from 0 to 100. List at most 5 missing keywords.\n\n")
	fmt.Fprintf(&b, "Job description:\n%s\n\nResume (JSON):\n%s", strings.TrimSpace(jobDescription), serialize(r))
	return b.String()
}

func summaryPrompt(r models.Resume) string {
	return fmt.Sprintf(`Write a professional resume summary of 2 to 3 sentences in the first person implied style
(no "I"), based on the resume below. Respond with the summary text only, no quotes, no markdown.

Resume (JSON):
%s`, serialize(r))
}

func skillsPrompt(r models.Resume) string {
	return fmt.Sprintf(`Suggest up to %d additional skills relevant to the experience and projects in this resume
that it does not already list. Respond with a JSON array of strings only.

Resume (JSON):
%s`, maxSuggestedSkills, serialize(r))
}

// parsePrompt spells out the field names so the answer decodes straight into
// models.Resume.
func parsePrompt(text string) string {
	return `Extract the resume below into JSON with exactly this shape. Use "" for unknown strings and [] for
empty lists. Dates use YYYY-MM. Respond with JSON only.
{"title": "", "personalDetails": {"fullName": "", "email": "", "phone": "", "location": "", "linkedin": "", "github": "", "website": ""},
 "summary": "",
 "education": [{"institution": "", "degree": "", "fieldOfStudy": "", "startDate": "", "endDate": "", "grade": "", "description": ""}],
 "experience": [{"company": "", "position": "", "location": "", "startDate": "", "endDate": "", "currentJob": false, "description": ""}],
 "projects": [{"name": "", "description": "", "technologies": "", "link": "", "startDate": "", "endDate": ""}],
 "skills": [""], "achievements": [{"title": "", "description": "", "date": ""}], "hobbies": [""]}

Resume text:
` + text
}
