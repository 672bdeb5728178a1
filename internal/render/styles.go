package render

import "github.com/yoockh/resumecraft/internal/models"

type templateStyle struct {
	id           models.TemplateID
	fontFamily   string
	headingFont  string
	accent       string
	text         string
	muted        string
	headerCSS    string
	nameCSS      string
	sectionTitle string
	decorations  string
}

// styleFor resolves the fixed style fragments of a template. Every
// identifier in models.AllTemplates must have its own case here.
func styleFor(t models.TemplateID) templateStyle {
	switch t {
	case models.TemplateModernProfessional:
		return templateStyle{
			id:           t,
			fontFamily:   `"Helvetica Neue", Arial, sans-serif`,
			headingFont:  `"Helvetica Neue", Arial, sans-serif`,
			accent:       "#2563eb",
			text:         "#1f2937",
			muted:        "#6b7280",
			headerCSS:    "text-align:left;border-bottom:3px solid #2563eb;padding-bottom:10px;",
			nameCSS:      "font-weight:700;color:#111827;",
			sectionTitle: "text-transform:uppercase;letter-spacing:0.06em;color:#2563eb;border-bottom:1px solid #e5e7eb;padding-bottom:3px;",
			decorations:  ".item-title{color:#111827;}",
		}
	case models.TemplateClassicExecutive:
		return templateStyle{
			id:           t,
			fontFamily:   `Georgia, "Times New Roman", serif`,
			headingFont:  `Georgia, "Times New Roman", serif`,
			accent:       "#1f2937",
			text:         "#111827",
			muted:        "#4b5563",
			headerCSS:    "text-align:center;border-bottom:double 4px #1f2937;padding-bottom:10px;",
			nameCSS:      "font-weight:400;letter-spacing:0.08em;text-transform:uppercase;",
			sectionTitle: "font-variant:small-caps;letter-spacing:0.1em;border-bottom:1px solid #1f2937;",
			decorations:  ".item-org{font-style:italic;}",
		}
	case models.TemplateTechFocused:
		return templateStyle{
			id:           t,
			fontFamily:   `Arial, Helvetica, sans-serif`,
			headingFont:  `"Roboto Mono", "Courier New", monospace`,
			accent:       "#059669",
			text:         "#111827",
			muted:        "#4b5563",
			headerCSS:    "text-align:left;border-left:5px solid #059669;padding-left:12px;",
			nameCSS:      "font-weight:700;",
			sectionTitle: "color:#059669;border-bottom:1px dashed #059669;",
			decorations: ".skill-group{margin-bottom:3px;}" +
				".skill-group-name{font-weight:700;color:#059669;}" +
				".item-tech{font-family:\"Roboto Mono\",\"Courier New\",monospace;}",
		}
	case models.TemplateFreshGraduate:
		return templateStyle{
			id:           t,
			fontFamily:   `"Open Sans", Arial, sans-serif`,
			headingFont:  `"Open Sans", Arial, sans-serif`,
			accent:       "#7c3aed",
			text:         "#1f2937",
			muted:        "#6b7280",
			headerCSS:    "text-align:center;background:#f5f3ff;padding:12px;border-radius:6px;",
			nameCSS:      "font-weight:700;color:#5b21b6;",
			sectionTitle: "color:#7c3aed;border-bottom:2px solid #ddd6fe;",
			decorations:  ".education .item-title{color:#5b21b6;}",
		}
	case models.TemplateMinimalElegant:
		return templateStyle{
			id:           t,
			fontFamily:   `Lato, Helvetica, sans-serif`,
			headingFont:  `Lato, Helvetica, sans-serif`,
			accent:       "#111827",
			text:         "#374151",
			muted:        "#9ca3af",
			headerCSS:    "text-align:left;padding-bottom:6px;",
			nameCSS:      "font-weight:300;letter-spacing:0.12em;",
			sectionTitle: "font-weight:400;letter-spacing:0.2em;text-transform:uppercase;color:#6b7280;",
			decorations:  ".section{border-top:1px solid #f3f4f6;padding-top:6px;}",
		}
	default:
		return styleFor(models.DefaultTemplate)
	}
}
