package models

// ResumePatch is a partial update. Nil fields are left untouched. There is
// deliberately no ID or OwnerID field: ownership never changes on update.
type ResumePatch struct {
	Title            *string          `json:"title,omitempty"`
	PersonalDetails  *PersonalDetails `json:"personalDetails,omitempty"`
	Summary          *string          `json:"summary,omitempty"`
	Education        *[]Education     `json:"education,omitempty"`
	Experience       *[]Experience    `json:"experience,omitempty"`
	Projects         *[]Project       `json:"projects,omitempty"`
	Skills           *[]string        `json:"skills,omitempty"`
	Achievements     *[]Achievement   `json:"achievements,omitempty"`
	Hobbies          *[]string        `json:"hobbies,omitempty"`
	Score            *int             `json:"score,omitempty"`
	SelectedTemplate *TemplateID      `json:"selectedTemplate,omitempty"`
}

// PatchFromResume builds a patch that overwrites every content field of r.
func PatchFromResume(r Resume) ResumePatch {
	return ResumePatch{
		Title:            &r.Title,
		PersonalDetails:  &r.PersonalDetails,
		Summary:          &r.Summary,
		Education:        &r.Education,
		Experience:       &r.Experience,
		Projects:         &r.Projects,
		Skills:           &r.Skills,
		Achievements:     &r.Achievements,
		Hobbies:          &r.Hobbies,
		SelectedTemplate: &r.SelectedTemplate,
	}
}

func (p ResumePatch) Empty() bool {
	return p.Title == nil && p.PersonalDetails == nil && p.Summary == nil &&
		p.Education == nil && p.Experience == nil && p.Projects == nil &&
		p.Skills == nil && p.Achievements == nil && p.Hobbies == nil &&
		p.Score == nil && p.SelectedTemplate == nil
}

// Apply copies every set field onto r and re-normalizes it.
func (p ResumePatch) Apply(r *Resume) {
	if p.Title != nil {
		r.Title = *p.Title
	}
	if p.PersonalDetails != nil {
		r.PersonalDetails = *p.PersonalDetails
	}
	if p.Summary != nil {
		r.Summary = *p.Summary
	}
	if p.Education != nil {
		r.Education = *p.Education
	}
	if p.Experience != nil {
		r.Experience = *p.Experience
	}
	if p.Projects != nil {
		r.Projects = *p.Projects
	}
	if p.Skills != nil {
		r.Skills = *p.Skills
	}
	if p.Achievements != nil {
		r.Achievements = *p.Achievements
	}
	if p.Hobbies != nil {
		r.Hobbies = *p.Hobbies
	}
	if p.Score != nil {
		r.Score = *p.Score
	}
	if p.SelectedTemplate != nil {
		r.SelectedTemplate = *p.SelectedTemplate
	}
	*r = Normalize(*r)
}
