package models

import (
	"strings"
	"time"

	"github.com/yoockh/resumecraft/internal/utils"
)

// Resume is the canonical resume document. It is owned by exactly one user
// and persisted in the resumes collection.
type Resume struct {
	ID      string `bson:"_id,omitempty" json:"id,omitempty"`
	OwnerID string `bson:"owner_id" json:"ownerId,omitempty"`
	Title   string `bson:"title" json:"title"`

	PersonalDetails PersonalDetails `bson:"personal_details" json:"personalDetails"`
	Summary         string          `bson:"summary" json:"summary"`

	Education    []Education   `bson:"education" json:"education"`
	Experience   []Experience  `bson:"experience" json:"experience"`
	Projects     []Project     `bson:"projects" json:"projects"`
	Skills       []string      `bson:"skills" json:"skills"`
	Achievements []Achievement `bson:"achievements" json:"achievements"`
	Hobbies      []string      `bson:"hobbies" json:"hobbies"`

	Score            int        `bson:"score" json:"score"`
	SelectedTemplate TemplateID `bson:"selected_template" json:"selectedTemplate"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

type PersonalDetails struct {
	FullName string `bson:"full_name" json:"fullName"`
	Email    string `bson:"email,omitempty" json:"email,omitempty"`
	Phone    string `bson:"phone,omitempty" json:"phone,omitempty"`
	Location string `bson:"location,omitempty" json:"location,omitempty"`
	LinkedIn string `bson:"linkedin,omitempty" json:"linkedin,omitempty"`
	GitHub   string `bson:"github,omitempty" json:"github,omitempty"`
	Website  string `bson:"website,omitempty" json:"website,omitempty"`
}

type Education struct {
	Institution  string `bson:"institution" json:"institution"`
	Degree       string `bson:"degree,omitempty" json:"degree,omitempty"`
	FieldOfStudy string `bson:"field_of_study,omitempty" json:"fieldOfStudy,omitempty"`
	StartDate    string `bson:"start_date,omitempty" json:"startDate,omitempty"`
	EndDate      string `bson:"end_date,omitempty" json:"endDate,omitempty"`
	Grade        string `bson:"grade,omitempty" json:"grade,omitempty"`
	Description  string `bson:"description,omitempty" json:"description,omitempty"`
}

// Experience.EndDate is ignored (and cleared by Normalize) when CurrentJob is set.
type Experience struct {
	Company     string `bson:"company" json:"company"`
	Position    string `bson:"position" json:"position"`
	Location    string `bson:"location,omitempty" json:"location,omitempty"`
	StartDate   string `bson:"start_date,omitempty" json:"startDate,omitempty"`
	EndDate     string `bson:"end_date,omitempty" json:"endDate,omitempty"`
	CurrentJob  bool   `bson:"current_job" json:"currentJob"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
}

type Project struct {
	Name         string `bson:"name" json:"name"`
	Description  string `bson:"description,omitempty" json:"description,omitempty"`
	Technologies string `bson:"technologies,omitempty" json:"technologies,omitempty"`
	Link         string `bson:"link,omitempty" json:"link,omitempty"`
	StartDate    string `bson:"start_date,omitempty" json:"startDate,omitempty"`
	EndDate      string `bson:"end_date,omitempty" json:"endDate,omitempty"`
}

type Achievement struct {
	Title       string `bson:"title" json:"title"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
	Date        string `bson:"date,omitempty" json:"date,omitempty"`
}

const (
	MinScore = 0
	MaxScore = 100
)

// Normalize returns a fully defaulted copy of r. It never reads the clock,
// so Normalize(Normalize(r)) equals Normalize(r).
func Normalize(r Resume) Resume {
	out := r

	out.PersonalDetails = PersonalDetails{
		FullName: strings.TrimSpace(r.PersonalDetails.FullName),
		Email:    strings.TrimSpace(r.PersonalDetails.Email),
		Phone:    strings.TrimSpace(r.PersonalDetails.Phone),
		Location: strings.TrimSpace(r.PersonalDetails.Location),
		LinkedIn: strings.TrimSpace(r.PersonalDetails.LinkedIn),
		GitHub:   strings.TrimSpace(r.PersonalDetails.GitHub),
		Website:  strings.TrimSpace(r.PersonalDetails.Website),
	}
	out.Title = strings.TrimSpace(r.Title)

	out.Education = append([]Education{}, r.Education...)
	out.Projects = append([]Project{}, r.Projects...)
	out.Achievements = append([]Achievement{}, r.Achievements...)
	out.Skills = append([]string{}, r.Skills...)
	out.Hobbies = append([]string{}, r.Hobbies...)

	out.Experience = make([]Experience, len(r.Experience))
	for i, e := range r.Experience {
		if e.CurrentJob {
			e.EndDate = ""
		}
		out.Experience[i] = e
	}

	out.Score = ClampScore(r.Score)
	out.SelectedTemplate = ParseTemplateID(string(r.SelectedTemplate))
	return out
}

// IsSavable reports whether r may be persisted or exported.
func IsSavable(r Resume) bool {
	return strings.TrimSpace(r.PersonalDetails.FullName) != ""
}

// Validate fails with INVALID_ARGUMENT when r cannot be saved or exported.
func Validate(r Resume) error {
	if !IsSavable(r) {
		return utils.E(utils.CodeInvalidArgument, "models.Validate", "personal details full name is required", nil)
	}
	return nil
}

func DefaultTitle(r Resume) string {
	return strings.TrimSpace(r.PersonalDetails.FullName) + " - Resume"
}

func ClampScore(n int) int {
	if n < MinScore {
		return MinScore
	}
	if n > MaxScore {
		return MaxScore
	}
	return n
}
