package resume

import (
	"encoding/json"
	"fmt"
)

// targetJSON is the wire form of EditingTarget; null means NoTarget
type targetJSON struct {
	Section string `json:"section"`
	Index   int    `json:"index"`
}

type stateJSON struct {
	Resume Resume      `json:"resume"`
	Target *targetJSON `json:"target"`
	Draft  *Resume     `json:"draft,omitempty"`
	Dirty  bool        `json:"dirty"`
}

func (s EditorState) MarshalJSON() ([]byte, error) {
	out := stateJSON{Resume: s.Resume, Dirty: s.Dirty}
	if t, ok := s.Editing(); ok {
		out.Target = &targetJSON{Section: t.Section, Index: t.Index}
		draft := s.Draft
		out.Draft = &draft
	}
	return json.Marshal(out)
}

func (s *EditorState) UnmarshalJSON(data []byte) error {
	var in stateJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	if in.Target == nil {
		*s = NewEditorState(in.Resume)
		return nil
	}

	draft := in.Resume.Clone()
	if in.Draft != nil {
		draft = *in.Draft
	}
	if !validTarget(draft, in.Target.Section, in.Target.Index) {
		return fmt.Errorf("invalid editing target %s[%d]", in.Target.Section, in.Target.Index)
	}
	*s = EditorState{
		Resume: in.Resume,
		Target: SectionTarget{Section: in.Target.Section, Index: in.Target.Index},
		Draft:  draft,
		Dirty:  in.Dirty,
	}
	return nil
}

// ActionRequest is the wire form of an Action
type ActionRequest struct {
	Type    string `json:"type" jsonschema:"one of startEdit, updateField, save, cancel, addItem, removeItem"`
	Section string `json:"section,omitempty"`
	Index   *int   `json:"index,omitempty"`
	Field   string `json:"field,omitempty"`
	Value   string `json:"value,omitempty"`
}

// Action converts the request, rejecting unknown types
func (r ActionRequest) Action() (Action, error) {
	index := NoIndex
	if r.Index != nil {
		index = *r.Index
	}

	switch r.Type {
	case "startEdit":
		return StartEdit{Section: r.Section, Index: index}, nil
	case "updateField":
		return UpdateField{Field: r.Field, Value: r.Value}, nil
	case "save":
		return Save{}, nil
	case "cancel":
		return Cancel{}, nil
	case "addItem":
		return AddItem{Section: r.Section}, nil
	case "removeItem":
		return RemoveItem{Section: r.Section, Index: index}, nil
	}
	return nil, fmt.Errorf("unknown action type %q", r.Type)
}
