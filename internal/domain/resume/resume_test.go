package resume

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResume() Resume {
	return Resume{
		Personal: Personal{FullName: "Ada Lovelace", Email: "ada@example.com", Location: "London"},
		Experience: []Experience{
			{Company: "Analytical Engines", Role: "Engineer", StartDate: "2020", Description: "Wrote programs\n- Led reviews"},
		},
		Education: []Education{{School: "Home", Degree: "BSc", Field: "Mathematics", StartDate: "2014", EndDate: "2018"}},
		Skills:    []string{"Go", "Docker", "Leadership", "Knitting"},
	}
}

func TestEditSaveFlow(t *testing.T) {
	s := NewEditorState(sampleResume())

	s = Apply(s, StartEdit{Section: SectionExperience, Index: 0})
	target, ok := s.Editing()
	require.True(t, ok)
	assert.Equal(t, SectionTarget{Section: SectionExperience, Index: 0}, target)

	s = Apply(s, UpdateField{Field: "role", Value: "Staff Engineer"})
	assert.True(t, s.Dirty)
	assert.Equal(t, "Engineer", s.Resume.Experience[0].Role)
	assert.Equal(t, "Staff Engineer", s.Draft.Experience[0].Role)

	s = Apply(s, Save{})
	_, ok = s.Editing()
	assert.False(t, ok)
	assert.False(t, s.Dirty)
	assert.Equal(t, "Staff Engineer", s.Resume.Experience[0].Role)
}

func TestCancelDiscardsDraft(t *testing.T) {
	s := NewEditorState(sampleResume())
	s = Apply(s, StartEdit{Section: SectionPersonal, Index: NoIndex})
	s = Apply(s, UpdateField{Field: "fullName", Value: "Someone Else"})
	s = Apply(s, Cancel{})

	assert.Equal(t, NoTarget{}, s.Target)
	assert.Equal(t, "Ada Lovelace", s.Resume.Personal.FullName)
	assert.Equal(t, "Ada Lovelace", s.Draft.Personal.FullName)
}

func TestInvalidActionsLeaveStateUnchanged(t *testing.T) {
	idle := NewEditorState(sampleResume())

	tests := []struct {
		name   string
		state  EditorState
		action Action
	}{
		{"save while idle", idle, Save{}},
		{"cancel while idle", idle, Cancel{}},
		{"update while idle", idle, UpdateField{Field: "role", Value: "x"}},
		{"unknown section", idle, StartEdit{Section: "hobbies", Index: NoIndex}},
		{"index out of range", idle, StartEdit{Section: SectionExperience, Index: 3}},
		{"index on personal", idle, StartEdit{Section: SectionPersonal, Index: 0}},
		{"add to skills", idle, AddItem{Section: SectionSkills}},
		{"remove out of range", idle, RemoveItem{Section: SectionEducation, Index: 5}},
		{"unknown field", Apply(idle, StartEdit{Section: SectionExperience, Index: 0}), UpdateField{Field: "salary", Value: "1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.state, Apply(tt.state, tt.action))
		})
	}
}

func TestStartEditRejectedWhileDirty(t *testing.T) {
	s := NewEditorState(sampleResume())
	s = Apply(s, StartEdit{Section: SectionSkills, Index: NoIndex})
	s = Apply(s, UpdateField{Field: SectionSkills, Value: "Go, Rust, "})
	require.True(t, s.Dirty)
	assert.Equal(t, []string{"Go", "Rust"}, s.Draft.Skills)

	assert.Equal(t, s, Apply(s, StartEdit{Section: SectionPersonal, Index: NoIndex}))
	assert.Equal(t, s, Apply(s, AddItem{Section: SectionEducation}))
}

func TestAddAndRemoveItems(t *testing.T) {
	s := NewEditorState(sampleResume())

	s = Apply(s, AddItem{Section: SectionEducation})
	require.Len(t, s.Resume.Education, 2)
	target, ok := s.Editing()
	require.True(t, ok)
	assert.Equal(t, 1, target.Index)

	s = Apply(s, UpdateField{Field: "school", Value: "Night School"})
	s = Apply(s, Save{})
	assert.Equal(t, "Night School", s.Resume.Education[1].School)

	s = Apply(s, StartEdit{Section: SectionEducation, Index: 1})
	s = Apply(s, RemoveItem{Section: SectionEducation, Index: 0})
	require.Len(t, s.Resume.Education, 1)
	assert.Equal(t, "Night School", s.Resume.Education[0].School)
	assert.Equal(t, NoTarget{}, s.Target)
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	s := NewEditorState(sampleResume())
	s = Apply(s, StartEdit{Section: SectionExperience, Index: 0})
	before := s.Draft.Experience[0].Role

	_ = Apply(s, UpdateField{Field: "role", Value: "Changed"})
	assert.Equal(t, before, s.Draft.Experience[0].Role)
}

func TestEditorStateJSON(t *testing.T) {
	s := NewEditorState(sampleResume())
	s = Apply(s, StartEdit{Section: SectionEducation, Index: 0})
	s = Apply(s, UpdateField{Field: "degree", Value: "MSc"})

	data, err := json.Marshal(s)
	require.NoError(t, err)

	var back EditorState
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, s, back)

	idle, err := json.Marshal(NewEditorState(sampleResume()))
	require.NoError(t, err)
	assert.Contains(t, string(idle), `"target":null`)

	err = json.Unmarshal([]byte(`{"resume":{},"target":{"section":"experience","index":2}}`), &back)
	assert.Error(t, err)
}

func TestActionRequest(t *testing.T) {
	idx := 2
	a, err := ActionRequest{Type: "removeItem", Section: SectionExperience, Index: &idx}.Action()
	require.NoError(t, err)
	assert.Equal(t, RemoveItem{Section: SectionExperience, Index: 2}, a)

	a, err = ActionRequest{Type: "startEdit", Section: SectionPersonal}.Action()
	require.NoError(t, err)
	assert.Equal(t, StartEdit{Section: SectionPersonal, Index: NoIndex}, a)

	_, err = ActionRequest{Type: "undo"}.Action()
	assert.Error(t, err)
}

func TestCategorize(t *testing.T) {
	got := Categorize([]string{"Go", " ", "Knitting", "react", "Docker", "Leadership", "Python"})
	assert.Equal(t, []CategorizedSkills{
		{Category: "Programming Languages", Skills: []string{"Go", "Python"}},
		{Category: "Frameworks & Libraries", Skills: []string{"react"}},
		{Category: "Tools & Platforms", Skills: []string{"Docker"}},
		{Category: "Soft Skills", Skills: []string{"Leadership"}},
		{Category: OtherCategory, Skills: []string{"Knitting"}},
	}, got)

	assert.Empty(t, Categorize(nil))
}

func TestPreview(t *testing.T) {
	blocks := Preview(sampleResume())

	assert.Equal(t, Block{Style: StyleName, Text: "Ada Lovelace"}, blocks[0])
	assert.Equal(t, Block{Style: StyleContact, Text: "ada@example.com | London"}, blocks[1])
	assert.Contains(t, blocks, Block{Style: StyleSubheading, Text: "Engineer at Analytical Engines"})
	assert.Contains(t, blocks, Block{Style: StyleMeta, Text: "2020 - Present"})
	assert.Contains(t, blocks, Block{Style: StyleBullet, Text: "Led reviews"})
	assert.Contains(t, blocks, Block{Style: StyleSubheading, Text: "BSc in Mathematics"})
	assert.Contains(t, blocks, Block{Style: StyleBody, Text: "Other Skills: Knitting"})

	text := RenderText(blocks)
	assert.Contains(t, text, "EXPERIENCE\n")
	assert.Contains(t, text, "  - Wrote programs\n")

	assert.Empty(t, Preview(Resume{}))
}
