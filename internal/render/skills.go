package render

import "strings"

const (
	CategoryLanguages  = "Programming Languages"
	CategoryFrameworks = "Frameworks & Libraries"
	CategoryTools      = "Tools & Technologies"
	CategoryOther      = "Other Skills"
)

type skillCategory struct {
	name     string
	keywords []string
}

// Checked in order; the first category with a matching keyword wins.
var skillCategories = []skillCategory{
	{CategoryLanguages, []string{
		"javascript", "typescript", "python", "java", "c++", "c#", "golang", "go", "rust",
		"ruby", "php", "swift", "kotlin", "scala", "sql", "html", "css", "perl", "dart",
		"bash", "matlab", "haskell", "elixir", "lua", "objective-c", "c", "r",
	}},
	{CategoryFrameworks, []string{
		"react", "angular", "vue", "next.js", "nextjs", "node", "express", "django",
		"flask", "spring", "laravel", "rails", "svelte", "jquery", "bootstrap", "tailwind",
		"redux", "fastapi", "gin", ".net", "flutter", "tensorflow", "pytorch", "pandas",
		"numpy", "graphql", "nestjs",
	}},
	{CategoryTools, []string{
		"git", "github", "gitlab", "docker", "kubernetes", "aws", "azure", "gcp",
		"jenkins", "jira", "linux", "mysql", "postgres", "mongodb", "redis", "firebase",
		"figma", "terraform", "ansible", "webpack", "vscode", "postman", "nginx", "kafka",
		"elasticsearch", "heroku", "vercel", "ci/cd",
	}},
}

// Keywords this short would match inside unrelated words ("go" in
// "MongoDB", "sql" in "PostgreSQL"), so they must equal a whole word.
const wholeWordMaxLen = 3

type SkillGroup struct {
	Category string
	Skills   []string
}

// CategorizeSkills partitions skills for the tech-focused layout, keeping
// input order inside each group and dropping empty groups.
func CategorizeSkills(skills []string) []SkillGroup {
	buckets := map[string][]string{}
	for _, s := range nonBlank(skills) {
		c := categorize(s)
		buckets[c] = append(buckets[c], s)
	}

	out := make([]SkillGroup, 0, len(skillCategories)+1)
	for _, c := range skillCategories {
		if len(buckets[c.name]) > 0 {
			out = append(out, SkillGroup{Category: c.name, Skills: buckets[c.name]})
		}
	}
	if len(buckets[CategoryOther]) > 0 {
		out = append(out, SkillGroup{Category: CategoryOther, Skills: buckets[CategoryOther]})
	}
	return out
}

func categorize(skill string) string {
	lower := strings.ToLower(skill)
	words := strings.FieldsFunc(lower, func(r rune) bool {
		switch r {
		case ' ', ',', '(', ')', '/', ';', '|', '-':
			return true
		}
		return false
	})
	for _, c := range skillCategories {
		for _, kw := range c.keywords {
			if len(kw) <= wholeWordMaxLen {
				if containsWord(words, kw) {
					return c.name
				}
				continue
			}
			if strings.Contains(lower, kw) {
				return c.name
			}
		}
	}
	return CategoryOther
}

func containsWord(words []string, kw string) bool {
	for _, w := range words {
		if w == kw {
			return true
		}
	}
	return false
}
