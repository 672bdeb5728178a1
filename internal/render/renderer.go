// Package render turns a resume into a single self-contained HTML document.
// The same bytes back the live preview and the PDF export.
package render

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/yoockh/resumecraft/internal/models"
)

const placeholderName = "Your Name"

type sectionKind string

const (
	sectionSummary      sectionKind = "summary"
	sectionExperience   sectionKind = "experience"
	sectionEducation    sectionKind = "education"
	sectionSkills       sectionKind = "skills"
	sectionProjects     sectionKind = "projects"
	sectionAchievements sectionKind = "achievements"
	sectionHobbies      sectionKind = "hobbies"
)

// Result is a rendered document plus the layout decisions behind it.
type Result struct {
	HTML     string
	Template models.TemplateID
	Density  Density
}

// Render renders r with template t. Blank or unknown t falls back to
// modern-professional.
func Render(r models.Resume, t models.TemplateID) string {
	return RenderDocument(r, t).HTML
}

// RenderSelected renders r with its own SelectedTemplate.
func RenderSelected(r models.Resume) string {
	return Render(r, r.SelectedTemplate)
}

func RenderDocument(r models.Resume, t models.TemplateID) Result {
	r = models.Normalize(r)
	tid := models.ParseTemplateID(string(t))
	density := Classify(r)
	style := styleFor(tid)

	var body strings.Builder
	body.WriteString(`<div class="page">`)
	execute(&body, "header", headerView(r))
	for _, s := range sectionOrder(tid) {
		renderSection(&body, s, r, tid)
	}
	body.WriteString(`</div>`)

	var doc strings.Builder
	execute(&doc, "document", documentView{
		Title:    documentTitle(r),
		Template: string(tid),
		Density:  string(density),
		CSS:      template.CSS(stylesheet(style, density.Metrics())),
		Body:     template.HTML(body.String()),
	})
	return Result{HTML: doc.String(), Template: tid, Density: density}
}

// sectionOrder places Education ahead of Experience/Projects only for the
// fresh-graduate layout.
func sectionOrder(t models.TemplateID) []sectionKind {
	if t == models.TemplateFreshGraduate {
		return []sectionKind{
			sectionSummary, sectionEducation, sectionSkills, sectionProjects,
			sectionExperience, sectionAchievements, sectionHobbies,
		}
	}
	return []sectionKind{
		sectionSummary, sectionExperience, sectionSkills, sectionProjects,
		sectionEducation, sectionAchievements, sectionHobbies,
	}
}

// renderSection writes nothing at all for empty sections.
func renderSection(b *strings.Builder, s sectionKind, r models.Resume, t models.TemplateID) {
	switch s {
	case sectionSummary:
		if text := strings.TrimSpace(r.Summary); text != "" {
			execute(b, "summary", paragraphs(text))
		}
	case sectionExperience:
		if len(r.Experience) > 0 {
			execute(b, "experience", experienceViews(r.Experience))
		}
	case sectionEducation:
		if len(r.Education) > 0 {
			execute(b, "education", educationViews(r.Education))
		}
	case sectionProjects:
		if len(r.Projects) > 0 {
			execute(b, "projects", projectViews(r.Projects))
		}
	case sectionAchievements:
		if len(r.Achievements) > 0 {
			execute(b, "achievements", achievementViews(r.Achievements))
		}
	case sectionSkills:
		skills := nonBlank(r.Skills)
		if len(skills) == 0 {
			return
		}
		if t == models.TemplateTechFocused {
			execute(b, "skills-grouped", CategorizeSkills(skills))
			return
		}
		execute(b, "skills", skills)
	case sectionHobbies:
		if hobbies := nonBlank(r.Hobbies); len(hobbies) > 0 {
			execute(b, "hobbies", hobbies)
		}
	}
}

func execute(b *strings.Builder, name string, data any) {
	if err := pages.ExecuteTemplate(b, name, data); err != nil {
		// templates are fixed at init; a failure here is a programming error
		fmt.Fprintf(b, "<!-- render %s: %s -->", name, template.HTMLEscapeString(err.Error()))
	}
}

func documentTitle(r models.Resume) string {
	if t := strings.TrimSpace(r.Title); t != "" {
		return t
	}
	if name := r.PersonalDetails.FullName; name != "" {
		return models.DefaultTitle(r)
	}
	return "Resume"
}

func stylesheet(s templateStyle, m Metrics) string {
	var b strings.Builder
	b.WriteString("@page{size:A4;}")
	b.WriteString("*{box-sizing:border-box;margin:0;padding:0;}")
	fmt.Fprintf(&b, "body{font-family:%s;font-size:%.1fpt;line-height:%.2f;color:%s;background:#fff;"+
		"-webkit-print-color-adjust:exact;print-color-adjust:exact;}", s.fontFamily, m.BaseFont, m.LineHeight, s.text)
	b.WriteString(".page{max-width:190mm;margin:0 auto;}")
	fmt.Fprintf(&b, ".header{%smargin-bottom:%dpx;}", s.headerCSS, m.SectionGap)
	fmt.Fprintf(&b, ".name{font-family:%s;font-size:%.0fpt;line-height:1.15;%s}", s.headingFont, m.NameFont, s.nameCSS)
	fmt.Fprintf(&b, ".contact{font-size:%.1fpt;color:%s;margin-top:4px;}", m.SmallFont, s.muted)
	b.WriteString(".contact a{color:inherit;text-decoration:none;}")
	fmt.Fprintf(&b, ".section{margin-bottom:%dpx;page-break-inside:avoid;break-inside:avoid;}", m.SectionGap)
	fmt.Fprintf(&b, ".section-title{font-family:%s;font-size:%.1fpt;margin-bottom:%dpx;%s}", s.headingFont, m.HeadingFont, m.ItemGap, s.sectionTitle)
	fmt.Fprintf(&b, ".item{margin-bottom:%dpx;page-break-inside:avoid;break-inside:avoid;}", m.ItemGap)
	b.WriteString(".item-head{display:flex;justify-content:space-between;align-items:baseline;gap:8px;}")
	b.WriteString(".item-title{font-weight:700;}")
	fmt.Fprintf(&b, ".item-date,.item-meta{font-size:%.1fpt;color:%s;white-space:nowrap;}", m.SmallFont, s.muted)
	fmt.Fprintf(&b, ".item-org{color:%s;}", s.muted)
	b.WriteString(".bullets{padding-left:16px;margin-top:2px;}")
	b.WriteString(".bullets li{margin-bottom:1px;}")
	fmt.Fprintf(&b, "a{color:%s;}", s.accent)
	b.WriteString(s.decorations)
	return b.String()
}
