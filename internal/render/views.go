package render

import (
	"html/template"
	"strings"

	"github.com/yoockh/resumecraft/internal/models"
)

type documentView struct {
	Title    string
	Template string
	Density  string
	CSS      template.CSS
	Body     template.HTML
}

type contactView struct {
	Text string
	Href string
}

type header struct {
	Name     string
	Contacts []contactView
}

type itemView struct {
	Title string
	Org   string
	Meta  string
	Dates string
	Tech  string
	Link  contactView
	Lines []string
}

const pageTemplates = `
{{define "document"}}<!DOCTYPE html>
<html lang="en"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title><style>{{.CSS}}</style></head>
<body class="resume template-{{.Template}} density-{{.Density}}">{{.Body}}</body></html>{{end}}

{{define "header"}}<header class="header"><h1 class="name">{{.Name}}</h1>{{if .Contacts}}<div class="contact">{{range $i, $c := .Contacts}}{{if $i}}<span class="sep"> | </span>{{end}}{{template "link" $c}}{{end}}</div>{{end}}</header>{{end}}

{{define "link"}}{{if .Href}}<a href="{{.Href}}">{{.Text}}</a>{{else}}<span>{{.Text}}</span>{{end}}{{end}}

{{define "lines"}}{{if gt (len .) 1}}<ul class="bullets">{{range .}}<li>{{.}}</li>{{end}}</ul>{{else}}{{range .}}<p class="item-text">{{.}}</p>{{end}}{{end}}{{end}}

{{define "item"}}<div class="item"><div class="item-head"><span class="item-title">{{.Title}}</span>{{if .Dates}}<span class="item-date">{{.Dates}}</span>{{end}}</div>{{if or .Org .Meta}}<div class="item-org">{{.Org}}{{if and .Org .Meta}} · {{end}}{{if .Meta}}<span class="item-meta">{{.Meta}}</span>{{end}}</div>{{end}}{{if .Tech}}<div class="item-tech">{{.Tech}}</div>{{end}}{{if .Link.Text}}<div class="item-link">{{template "link" .Link}}</div>{{end}}{{template "lines" .Lines}}</div>{{end}}

{{define "summary"}}<section class="section summary"><h2 class="section-title">Professional Summary</h2>{{range .}}<p>{{.}}</p>{{end}}</section>{{end}}

{{define "experience"}}<section class="section experience"><h2 class="section-title">Professional Experience</h2>{{range .}}{{template "item" .}}{{end}}</section>{{end}}

{{define "education"}}<section class="section education"><h2 class="section-title">Education</h2>{{range .}}{{template "item" .}}{{end}}</section>{{end}}

{{define "projects"}}<section class="section projects"><h2 class="section-title">Projects</h2>{{range .}}{{template "item" .}}{{end}}</section>{{end}}

{{define "achievements"}}<section class="section achievements"><h2 class="section-title">Achievements</h2>{{range .}}{{template "item" .}}{{end}}</section>{{end}}

{{define "skills"}}<section class="section skills"><h2 class="section-title">Skills</h2><p class="skills-list">{{range $i, $s := .}}{{if $i}}, {{end}}<span class="skill">{{$s}}</span>{{end}}</p></section>{{end}}

{{define "skills-grouped"}}<section class="section skills"><h2 class="section-title">Technical Skills</h2>{{range .}}<div class="skill-group"><span class="skill-group-name">{{.Category}}:</span> {{range $i, $s := .Skills}}{{if $i}}, {{end}}<span class="skill">{{$s}}</span>{{end}}</div>{{end}}</section>{{end}}

{{define "hobbies"}}<section class="section hobbies"><h2 class="section-title">Hobbies &amp; Interests</h2><p>{{range $i, $h := .}}{{if $i}}, {{end}}{{$h}}{{end}}</p></section>{{end}}
`

var pages = template.Must(template.New("resume").Parse(pageTemplates))

func headerView(r models.Resume) header {
	p := r.PersonalDetails
	h := header{Name: p.FullName}
	if h.Name == "" {
		h.Name = placeholderName
	}
	if p.Email != "" {
		h.Contacts = append(h.Contacts, contactView{Text: p.Email, Href: "mailto:" + p.Email})
	}
	if p.Phone != "" {
		h.Contacts = append(h.Contacts, contactView{Text: p.Phone})
	}
	if p.Location != "" {
		h.Contacts = append(h.Contacts, contactView{Text: p.Location})
	}
	for _, l := range []struct {
		kind LinkKind
		raw  string
	}{
		{LinkLinkedIn, p.LinkedIn},
		{LinkGitHub, p.GitHub},
		{LinkWebsite, p.Website},
	} {
		if c, ok := linkView(l.kind, l.raw); ok {
			h.Contacts = append(h.Contacts, c)
		}
	}
	return h
}

// linkView shows the normalized text and points the anchor at https.
func linkView(kind LinkKind, raw string) (contactView, bool) {
	text := NormalizeLink(kind, raw)
	if text == "" {
		return contactView{}, false
	}
	return contactView{Text: text, Href: "https://" + text}, true
}

func experienceViews(in []models.Experience) []itemView {
	out := make([]itemView, 0, len(in))
	for _, e := range in {
		v := itemView{
			Title: e.Position,
			Org:   e.Company,
			Meta:  strings.TrimSpace(e.Location),
			Dates: DateRange(e.StartDate, e.EndDate, e.CurrentJob),
			Lines: descriptionLines(e.Description),
		}
		if v.Title == "" {
			v.Title, v.Org = e.Company, ""
		}
		out = append(out, v)
	}
	return out
}

func educationViews(in []models.Education) []itemView {
	out := make([]itemView, 0, len(in))
	for _, e := range in {
		title := e.Degree
		if e.FieldOfStudy != "" {
			if title != "" {
				title += " in " + e.FieldOfStudy
			} else {
				title = e.FieldOfStudy
			}
		}
		v := itemView{
			Title: title,
			Org:   e.Institution,
			Dates: DateRange(e.StartDate, e.EndDate, false),
			Lines: descriptionLines(e.Description),
		}
		if g := strings.TrimSpace(e.Grade); g != "" {
			v.Meta = "Grade: " + g
		}
		if v.Title == "" {
			v.Title, v.Org = e.Institution, ""
		}
		out = append(out, v)
	}
	return out
}

func projectViews(in []models.Project) []itemView {
	out := make([]itemView, 0, len(in))
	for _, p := range in {
		v := itemView{
			Title: p.Name,
			Dates: DateRange(p.StartDate, p.EndDate, false),
			Tech:  strings.TrimSpace(p.Technologies),
			Lines: descriptionLines(p.Description),
		}
		if c, ok := linkView(LinkWebsite, p.Link); ok {
			v.Link = c
		}
		out = append(out, v)
	}
	return out
}

func achievementViews(in []models.Achievement) []itemView {
	out := make([]itemView, 0, len(in))
	for _, a := range in {
		out = append(out, itemView{
			Title: a.Title,
			Dates: FormatDate(a.Date),
			Lines: descriptionLines(a.Description),
		})
	}
	return out
}

// descriptionLines splits free text on newlines and strips leading bullet
// glyphs so multi-line descriptions render as a list.
func descriptionLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimSpace(strings.TrimLeft(line, "•-*▪◦"))
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

func paragraphs(s string) []string {
	var out []string
	for _, p := range strings.Split(s, "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
