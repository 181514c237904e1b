package resume

import (
	"slices"
	"strings"
)

// NoIndex marks a target on a section without items (personal, skills)
const NoIndex = -1

// EditingTarget is either NoTarget or a SectionTarget
type EditingTarget interface {
	isEditingTarget()
}

// NoTarget means nothing is being edited
type NoTarget struct{}

// SectionTarget is the section, and for list sections the item, being edited
type SectionTarget struct {
	Section string
	Index   int
}

func (NoTarget) isEditingTarget()      {}
func (SectionTarget) isEditingTarget() {}

// EditorState is the complete, serializable state of the resume builder.
// Draft holds uncommitted edits while Target is a SectionTarget.
type EditorState struct {
	Resume Resume
	Target EditingTarget
	Draft  Resume
	Dirty  bool
}

// NewEditorState starts an idle editor over r
func NewEditorState(r Resume) EditorState {
	return EditorState{Resume: r.Clone(), Target: NoTarget{}, Draft: r.Clone()}
}

// Editing reports the active target, if any
func (s EditorState) Editing() (SectionTarget, bool) {
	t, ok := s.Target.(SectionTarget)
	return t, ok
}

// Action is one of StartEdit, UpdateField, Save, Cancel, AddItem, RemoveItem
type Action interface {
	isAction()
}

// StartEdit begins editing a section; Index is NoIndex for personal and skills
type StartEdit struct {
	Section string
	Index   int
}

// UpdateField changes one field of the targeted draft content
type UpdateField struct {
	Field string
	Value string
}

// Save commits the draft
type Save struct{}

// Cancel discards the draft
type Cancel struct{}

// AddItem appends an empty entry to a list section and starts editing it
type AddItem struct {
	Section string
}

// RemoveItem deletes an entry from a list section
type RemoveItem struct {
	Section string
	Index   int
}

func (StartEdit) isAction()   {}
func (UpdateField) isAction() {}
func (Save) isAction()        {}
func (Cancel) isAction()      {}
func (AddItem) isAction()     {}
func (RemoveItem) isAction()  {}

// Apply returns the state after action. Actions that do not apply to the
// current state return it unchanged.
func Apply(state EditorState, action Action) EditorState {
	if state.Target == nil {
		state.Target = NoTarget{}
	}

	switch a := action.(type) {
	case StartEdit:
		return startEdit(state, a)
	case UpdateField:
		return updateField(state, a)
	case Save:
		if _, ok := state.Editing(); !ok {
			return state
		}
		return EditorState{Resume: state.Draft.Clone(), Target: NoTarget{}, Draft: state.Draft.Clone()}
	case Cancel:
		if _, ok := state.Editing(); !ok {
			return state
		}
		return NewEditorState(state.Resume)
	case AddItem:
		return addItem(state, a)
	case RemoveItem:
		return removeItem(state, a)
	}
	return state
}

func startEdit(state EditorState, a StartEdit) EditorState {
	if state.Dirty || !validTarget(state.Resume, a.Section, a.Index) {
		return state
	}
	return EditorState{
		Resume: state.Resume,
		Target: SectionTarget{Section: a.Section, Index: a.Index},
		Draft:  state.Resume.Clone(),
	}
}

func validTarget(r Resume, section string, index int) bool {
	if !knownSection(section) {
		return false
	}
	n, list := r.items(section)
	if !list {
		return index == NoIndex
	}
	return index >= 0 && index < n
}

func updateField(state EditorState, a UpdateField) EditorState {
	t, ok := state.Editing()
	if !ok || !validTarget(state.Draft, t.Section, t.Index) {
		return state
	}

	draft := state.Draft.Clone()
	var applied bool
	switch t.Section {
	case SectionPersonal:
		applied = setField(personalFields, &draft.Personal, a.Field, a.Value)
	case SectionExperience:
		applied = setField(experienceFields, &draft.Experience[t.Index], a.Field, a.Value)
	case SectionEducation:
		applied = setField(educationFields, &draft.Education[t.Index], a.Field, a.Value)
	case SectionSkills:
		if a.Field == SectionSkills {
			draft.Skills = splitSkills(a.Value)
			applied = true
		}
	}
	if !applied {
		return state
	}

	return EditorState{Resume: state.Resume, Target: t, Draft: draft, Dirty: true}
}

func addItem(state EditorState, a AddItem) EditorState {
	if state.Dirty {
		return state
	}

	r := state.Resume.Clone()
	var index int
	switch a.Section {
	case SectionExperience:
		r.Experience = append(r.Experience, Experience{})
		index = len(r.Experience) - 1
	case SectionEducation:
		r.Education = append(r.Education, Education{})
		index = len(r.Education) - 1
	default:
		return state
	}

	return EditorState{
		Resume: r,
		Target: SectionTarget{Section: a.Section, Index: index},
		Draft:  r.Clone(),
	}
}

// removeItem deletes the entry and resets editing, since indexes shift
func removeItem(state EditorState, a RemoveItem) EditorState {
	n, list := state.Resume.items(a.Section)
	if !list || a.Index < 0 || a.Index >= n {
		return state
	}

	r := state.Resume.Clone()
	switch a.Section {
	case SectionExperience:
		r.Experience = slices.Delete(r.Experience, a.Index, a.Index+1)
	case SectionEducation:
		r.Education = slices.Delete(r.Education, a.Index, a.Index+1)
	}
	return NewEditorState(r)
}

func splitSkills(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

type fieldSetters[T any] map[string]func(*T, string)

func setField[T any](setters fieldSetters[T], target *T, field, value string) bool {
	set, ok := setters[field]
	if !ok {
		return false
	}
	set(target, value)
	return true
}

var personalFields = fieldSetters[Personal]{
	"fullName": func(p *Personal, v string) { p.FullName = v },
	"email":    func(p *Personal, v string) { p.Email = v },
	"phone":    func(p *Personal, v string) { p.Phone = v },
	"location": func(p *Personal, v string) { p.Location = v },
	"summary":  func(p *Personal, v string) { p.Summary = v },
}

var experienceFields = fieldSetters[Experience]{
	"company":     func(e *Experience, v string) { e.Company = v },
	"role":        func(e *Experience, v string) { e.Role = v },
	"location":    func(e *Experience, v string) { e.Location = v },
	"startDate":   func(e *Experience, v string) { e.StartDate = v },
	"endDate":     func(e *Experience, v string) { e.EndDate = v },
	"description": func(e *Experience, v string) { e.Description = v },
}

var educationFields = fieldSetters[Education]{
	"school":    func(e *Education, v string) { e.School = v },
	"degree":    func(e *Education, v string) { e.Degree = v },
	"field":     func(e *Education, v string) { e.Field = v },
	"startDate": func(e *Education, v string) { e.StartDate = v },
	"endDate":   func(e *Education, v string) { e.EndDate = v },
}
