package wizard

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yoockh/resumecraft/internal/models"
	"github.com/yoockh/resumecraft/internal/render"
)

func TestApply_ReplacesSection(t *testing.T) {
	s := New(models.Resume{})

	require.NoError(t, s.Apply(StepPersonal, json.RawMessage(`{"fullName":"Jane Doe","github":"janedoe"}`)))
	require.NoError(t, s.Apply(StepExperience, json.RawMessage(`[{"company":"Acme","position":"Dev","currentJob":true,"endDate":"2020-01"}]`)))

	assert.Equal(t, "Jane Doe", s.Resume.PersonalDetails.FullName)
	require.Len(t, s.Resume.Experience, 1)
	assert.Empty(t, s.Resume.Experience[0].EndDate)
	assert.Equal(t, StepExperience, s.CurrentStep)

	require.NoError(t, s.Apply(StepExperience, json.RawMessage(`[]`)))
	assert.Empty(t, s.Resume.Experience)
	assert.NotNil(t, s.Resume.Experience)
}

func TestApply_InvalidPayloadKeepsState(t *testing.T) {
	s := New(models.Resume{Summary: "before"})

	err := s.Apply(StepSummary, json.RawMessage(`{"not":"a string"}`))
	require.Error(t, err)
	assert.Equal(t, "before", s.Resume.Summary)
	assert.Equal(t, StepPersonal, s.CurrentStep)

	assert.Error(t, s.Apply(Step("bogus"), json.RawMessage(`{}`)))
}

func TestApply_SkillsAreDeduplicated(t *testing.T) {
	s := New(models.Resume{})
	require.NoError(t, s.Apply(StepSkills, json.RawMessage(`["Go","go"," SQL ",""]`)))
	assert.Equal(t, []string{"Go", "SQL"}, s.Resume.Skills)
}

func TestAddSkill_IgnoresCaseDuplicates(t *testing.T) {
	s := New(models.Resume{Skills: []string{"React"}})

	assert.False(t, s.AddSkill("react"))
	assert.False(t, s.AddSkill("  "))
	assert.True(t, s.AddSkill("Docker"))
	assert.Equal(t, []string{"React", "Docker"}, s.Resume.Skills)

	assert.True(t, s.RemoveSkill("REACT"))
	assert.False(t, s.RemoveSkill("react"))
	assert.Equal(t, []string{"Docker"}, s.Resume.Skills)
}

func TestAddHobby(t *testing.T) {
	s := New(models.Resume{})
	assert.True(t, s.AddHobby("Chess"))
	assert.False(t, s.AddHobby("chess"))
	assert.True(t, s.RemoveHobby("Chess"))
	assert.Empty(t, s.Resume.Hobbies)
}

func TestPreview_UsesSelectedTemplate(t *testing.T) {
	s := New(models.Resume{PersonalDetails: models.PersonalDetails{FullName: "Jane Doe"}})
	require.NoError(t, s.Apply(StepTemplate, json.RawMessage(`"fresh-graduate"`)))

	res := s.Preview()
	assert.Equal(t, models.TemplateFreshGraduate, res.Template)
	assert.Equal(t, render.Spacious, res.Density)
	assert.Contains(t, res.HTML, "Jane Doe")
}

func TestParseStep(t *testing.T) {
	st, ok := ParseStep(" Skills ")
	assert.True(t, ok)
	assert.Equal(t, StepSkills, st)
	_, ok = ParseStep("review")
	assert.False(t, ok)
}
