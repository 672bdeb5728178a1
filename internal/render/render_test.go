package render

import (
	"fmt"
	"html/template"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yoockh/resumecraft/internal/models"
)

func janeDoe() models.Resume {
	return models.Resume{
		PersonalDetails: models.PersonalDetails{FullName: "Jane Doe"},
		Skills:          []string{"SQL"},
	}
}

func TestRender_MinimalResume(t *testing.T) {
	html := Render(janeDoe(), models.TemplateModernProfessional)

	assert.Contains(t, html, "Jane Doe")
	assert.NotContains(t, html, `class="section experience"`)
	assert.Contains(t, html, `class="section skills"`)
	assert.Contains(t, html, `<span class="skill">SQL</span>`)
	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
}

func TestRender_FreshGraduatePutsEducationFirst(t *testing.T) {
	r := models.Resume{
		PersonalDetails: models.PersonalDetails{FullName: "Sam Grad"},
		Education:       []models.Education{{Institution: "State University", Degree: "BSc", FieldOfStudy: "Computer Science"}},
		Experience:      []models.Experience{{Company: "Acme", Position: "Intern"}},
		Projects:        []models.Project{{Name: "Capstone"}},
	}

	html := Render(r, models.TemplateFreshGraduate)
	edu := strings.Index(html, `class="section education"`)
	exp := strings.Index(html, `class="section experience"`)
	proj := strings.Index(html, `class="section projects"`)
	require.True(t, edu >= 0 && exp >= 0 && proj >= 0)
	assert.Less(t, edu, exp)
	assert.Less(t, edu, proj)

	html = Render(r, models.TemplateModernProfessional)
	assert.Less(t, strings.Index(html, `class="section experience"`), strings.Index(html, `class="section education"`))
}

func TestRender_GitHubLinkIsPlainText(t *testing.T) {
	r := janeDoe()
	r.PersonalDetails.GitHub = "https://www.github.com/janedoe/"

	html := Render(r, models.TemplateMinimalElegant)
	assert.Contains(t, html, ">github.com/janedoe<")
	assert.NotContains(t, html, ">https://www.github.com/janedoe/<")
}

func TestRender_PlaceholderName(t *testing.T) {
	html := Render(models.Resume{}, "")
	assert.Contains(t, html, placeholderName)
	assert.Contains(t, html, "template-modern-professional")
}

func TestRender_EscapesUserText(t *testing.T) {
	r := janeDoe()
	r.Summary = `<script>alert("x")</script>`

	html := Render(r, models.TemplateClassicExecutive)
	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "&lt;script&gt;")
}

func TestRender_CurrentJobShowsPresent(t *testing.T) {
	r := janeDoe()
	r.Experience = []models.Experience{{
		Company: "Acme", Position: "Engineer", StartDate: "2021-03",
		EndDate: "2022-01", CurrentJob: true,
		Description: "- Built things\n- Shipped things",
	}}

	html := Render(r, models.TemplateModernProfessional)
	assert.Contains(t, html, "March 2021 – Present")
	assert.NotContains(t, html, "January 2022")
	assert.Contains(t, html, "<li>Built things</li>")
	assert.Contains(t, html, "<li>Shipped things</li>")
}

func TestRender_PageBreakHints(t *testing.T) {
	html := Render(janeDoe(), models.TemplateTechFocused)
	assert.Contains(t, html, "page-break-inside:avoid")
}

func TestRender_TechFocusedGroupsSkills(t *testing.T) {
	r := janeDoe()
	r.Skills = []string{"Go", "React", "Docker", "Public Speaking"}

	html := Render(r, models.TemplateTechFocused)
	for _, c := range []string{CategoryLanguages, CategoryFrameworks, CategoryTools, CategoryOther} {
		assert.Contains(t, html, template.HTMLEscapeString(c)+":")
	}

	html = Render(r, models.TemplateModernProfessional)
	assert.NotContains(t, html, CategoryLanguages)
}

func TestRender_EveryTemplateProducesDistinctDocument(t *testing.T) {
	seen := map[string]models.TemplateID{}
	for _, id := range models.AllTemplates() {
		html := Render(janeDoe(), id)
		assert.Contains(t, html, "template-"+string(id))
		if prev, dup := seen[html]; dup {
			t.Fatalf("%s renders identically to %s", id, prev)
		}
		seen[html] = id
	}
}

func TestStyleFor_CoversAllTemplates(t *testing.T) {
	for _, id := range models.AllTemplates() {
		assert.Equal(t, id, styleFor(id).id, "missing style for %s", id)
	}
	assert.Equal(t, models.DefaultTemplate, styleFor("nope").id)
}

func TestRenderDocument_ReportsLayout(t *testing.T) {
	res := RenderDocument(janeDoe(), "TECH-FOCUSED")
	assert.Equal(t, models.TemplateTechFocused, res.Template)
	assert.Equal(t, Spacious, res.Density)
}

func TestClassify(t *testing.T) {
	r := janeDoe()
	assert.Equal(t, Spacious, Classify(r))

	full := janeDoe()
	full.Summary = "s"
	full.Experience = []models.Experience{{Company: "a"}}
	full.Projects = []models.Project{{Name: "p"}}
	full.Education = []models.Education{{Institution: "u"}}
	full.Achievements = []models.Achievement{{Title: "t"}}
	full.Hobbies = []string{"chess"}
	assert.Equal(t, 7, SectionCount(full))
	assert.Equal(t, Dense, Classify(full))

	many := janeDoe()
	for i := 0; i < 13; i++ {
		many.Experience = append(many.Experience, models.Experience{Company: fmt.Sprintf("c%d", i)})
	}
	assert.Equal(t, 13, ItemCount(many))
	assert.Equal(t, Dense, Classify(many))
}

func TestDensity_MetricsShrinkWhenDense(t *testing.T) {
	s, d := Spacious.Metrics(), Dense.Metrics()
	assert.Less(t, d.BaseFont, s.BaseFont)
	assert.Less(t, d.SmallFont, s.SmallFont)
	assert.Less(t, d.HeadingFont, s.HeadingFont)
	assert.Less(t, d.NameFont, s.NameFont)
	assert.Less(t, d.SectionGap, s.SectionGap)
	assert.Less(t, d.ItemGap, s.ItemGap)
	assert.Less(t, d.LineHeight, s.LineHeight)
	assert.Equal(t, s, Density("unknown").Metrics())
}

func TestNormalizeLink(t *testing.T) {
	cases := []struct {
		kind LinkKind
		in   string
		want string
	}{
		{LinkGitHub, "https://github.com/janedoe", "github.com/janedoe"},
		{LinkGitHub, "janedoe", "github.com/janedoe"},
		{LinkGitHub, "@janedoe", "github.com/janedoe"},
		{LinkLinkedIn, "HTTPS://WWW.linkedin.com/in/jane/", "linkedin.com/in/jane"},
		{LinkLinkedIn, "jane", "linkedin.com/in/jane"},
		{LinkWebsite, "http://janedoe.dev/", "janedoe.dev"},
		{LinkWebsite, "   ", ""},
		{LinkWebsite, "https://", ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, NormalizeLink(c.kind, c.in), c.in)
	}
}

func TestFormatDate(t *testing.T) {
	cases := map[string]string{
		"2023-01":              "January 2023",
		"2023-01-15":           "January 2023",
		"2023-01-15T10:00:00Z": "January 2023",
		"Mar 2020":             "March 2020",
		"2019":                 "January 2019",
		"":                     "",
		"Summer 2020":          "Summer 2020",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatDate(in), in)
	}
}

func TestDateRange(t *testing.T) {
	assert.Equal(t, "January 2020 – March 2021", DateRange("2020-01", "2021-03", false))
	assert.Equal(t, "January 2020 – Present", DateRange("2020-01", "2021-03", true))
	assert.Equal(t, "January 2020", DateRange("2020-01", "", false))
	assert.Equal(t, "", DateRange("", "", false))
}

func TestCategorizeSkills(t *testing.T) {
	groups := CategorizeSkills([]string{"Go", "MongoDB", "PostgreSQL", "Rust", "  ", "Leadership"})

	byName := map[string][]string{}
	for _, g := range groups {
		byName[g.Category] = g.Skills
	}
	assert.Equal(t, []string{"Go", "Rust"}, byName[CategoryLanguages])
	assert.Equal(t, []string{"MongoDB", "PostgreSQL"}, byName[CategoryTools])
	assert.Equal(t, []string{"Leadership"}, byName[CategoryOther])
	assert.NotContains(t, byName, CategoryFrameworks)
	assert.Equal(t, CategoryLanguages, groups[0].Category)
}
