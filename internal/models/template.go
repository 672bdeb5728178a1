package models

import "strings"

// TemplateID selects one of the fixed resume layouts.
type TemplateID string

const (
	TemplateModernProfessional TemplateID = "modern-professional"
	TemplateClassicExecutive   TemplateID = "classic-executive"
	TemplateTechFocused        TemplateID = "tech-focused"
	TemplateFreshGraduate      TemplateID = "fresh-graduate"
	TemplateMinimalElegant     TemplateID = "minimal-elegant"

	DefaultTemplate = TemplateModernProfessional
)

var allTemplates = [...]TemplateID{
	TemplateModernProfessional,
	TemplateClassicExecutive,
	TemplateTechFocused,
	TemplateFreshGraduate,
	TemplateMinimalElegant,
}

func AllTemplates() []TemplateID {
	out := make([]TemplateID, len(allTemplates))
	copy(out, allTemplates[:])
	return out
}

func (t TemplateID) Valid() bool {
	for _, k := range allTemplates {
		if k == t {
			return true
		}
	}
	return false
}

// ParseTemplateID maps blank or unknown identifiers to DefaultTemplate.
func ParseTemplateID(s string) TemplateID {
	t := TemplateID(strings.ToLower(strings.TrimSpace(s)))
	if t.Valid() {
		return t
	}
	return DefaultTemplate
}
