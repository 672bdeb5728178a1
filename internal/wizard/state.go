// Package wizard mirrors the step-by-step resume editor: one in-progress
// document that each wizard step replaces a slice of.
package wizard

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/yoockh/resumecraft/internal/models"
	"github.com/yoockh/resumecraft/internal/render"
)

type Step string

const (
	StepPersonal     Step = "personal"
	StepSummary      Step = "summary"
	StepEducation    Step = "education"
	StepExperience   Step = "experience"
	StepProjects     Step = "projects"
	StepSkills       Step = "skills"
	StepAchievements Step = "achievements"
	StepHobbies      Step = "hobbies"
	StepTemplate     Step = "template"
)

// Steps is the wizard's page order.
var Steps = []Step{
	StepPersonal, StepSummary, StepEducation, StepExperience, StepProjects,
	StepSkills, StepAchievements, StepHobbies, StepTemplate,
}

func ParseStep(s string) (Step, bool) {
	st := Step(strings.ToLower(strings.TrimSpace(s)))
	for _, k := range Steps {
		if k == st {
			return st, true
		}
	}
	return "", false
}

// State is not safe for concurrent use; each preview connection owns one.
type State struct {
	Resume      models.Resume
	CurrentStep Step
}

func New(r models.Resume) *State {
	return &State{Resume: models.Normalize(r), CurrentStep: StepPersonal}
}

// Apply replaces the section behind step with payload. A payload that does
// not decode leaves the state untouched.
func (s *State) Apply(step Step, payload json.RawMessage) error {
	next := s.Resume
	var err error
	switch step {
	case StepPersonal:
		next.PersonalDetails = models.PersonalDetails{}
		err = json.Unmarshal(payload, &next.PersonalDetails)
	case StepSummary:
		err = json.Unmarshal(payload, &next.Summary)
	case StepEducation:
		next.Education = nil
		err = json.Unmarshal(payload, &next.Education)
	case StepExperience:
		next.Experience = nil
		err = json.Unmarshal(payload, &next.Experience)
	case StepProjects:
		next.Projects = nil
		err = json.Unmarshal(payload, &next.Projects)
	case StepSkills:
		var skills []string
		if err = json.Unmarshal(payload, &skills); err == nil {
			next.Skills = dedupe(skills)
		}
	case StepAchievements:
		next.Achievements = nil
		err = json.Unmarshal(payload, &next.Achievements)
	case StepHobbies:
		var hobbies []string
		if err = json.Unmarshal(payload, &hobbies); err == nil {
			next.Hobbies = dedupe(hobbies)
		}
	case StepTemplate:
		var id string
		if err = json.Unmarshal(payload, &id); err == nil {
			next.SelectedTemplate = models.TemplateID(id)
		}
	default:
		return fmt.Errorf("unknown step %q", step)
	}
	if err != nil {
		return fmt.Errorf("invalid %s data: %w", step, err)
	}
	s.Resume = models.Normalize(next)
	s.CurrentStep = step
	return nil
}

// AddSkill appends skill unless an equal one (ignoring case) is present.
// It reports whether the list changed.
func (s *State) AddSkill(skill string) bool {
	return addUnique(&s.Resume.Skills, skill)
}

func (s *State) RemoveSkill(skill string) bool {
	return removeFold(&s.Resume.Skills, skill)
}

func (s *State) AddHobby(hobby string) bool {
	return addUnique(&s.Resume.Hobbies, hobby)
}

func (s *State) RemoveHobby(hobby string) bool {
	return removeFold(&s.Resume.Hobbies, hobby)
}

func (s *State) Preview() render.Result {
	return render.RenderDocument(s.Resume, s.Resume.SelectedTemplate)
}

func addUnique(list *[]string, v string) bool {
	v = strings.TrimSpace(v)
	if v == "" {
		return false
	}
	for _, have := range *list {
		if strings.EqualFold(have, v) {
			return false
		}
	}
	*list = append(*list, v)
	return true
}

func removeFold(list *[]string, v string) bool {
	v = strings.TrimSpace(v)
	for i, have := range *list {
		if strings.EqualFold(have, v) {
			*list = append((*list)[:i:i], (*list)[i+1:]...)
			return true
		}
	}
	return false
}

func dedupe(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		addUnique(&out, v)
	}
	return out
}
