package tools

import (
	"context"
	"encoding/json"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/careerhub/internal/domain"
	"github.com/honeycarbs/careerhub/internal/domain/resume"
)

// ResumePreviewParams defines the arguments for the resume_preview tool
type ResumePreviewParams struct {
	Resume resume.Resume `json:"resume" jsonschema:"Resume document to lay out"`
}

// ResumePreviewResult is the laid-out resume
type ResumePreviewResult struct {
	Blocks []resume.Block             `json:"blocks"`
	Skills []resume.CategorizedSkills `json:"skills"`
	Text   string                     `json:"text"`
}

// EditTarget is the wire form of the section being edited
type EditTarget struct {
	Section string `json:"section" jsonschema:"personal, experience, education or skills"`
	Index   int    `json:"index" jsonschema:"Item index for experience and education, -1 otherwise"`
}

// ResumeEditParams defines the arguments for the resume_edit tool: the
// current editor state plus one action
type ResumeEditParams struct {
	Resume resume.Resume        `json:"resume" jsonschema:"Committed resume"`
	Target *EditTarget          `json:"target,omitempty" jsonschema:"Section being edited; omit when idle"`
	Draft  *resume.Resume       `json:"draft,omitempty" jsonschema:"Uncommitted edits while a target is set"`
	Dirty  bool                 `json:"dirty,omitempty" jsonschema:"Whether the draft has unsaved changes"`
	Action resume.ActionRequest `json:"action" jsonschema:"Action to apply"`
}

// WithResume registers resume_preview and resume_edit
func WithResume() Option {
	return func(reg *registry) {
		addTool(reg, &sdkmcp.Tool{
			Name:        "resume_preview",
			Description: "Lay out a resume as styled blocks and plain text for live preview",
		}, resumePreview)
		addTool(reg, &sdkmcp.Tool{
			Name:        "resume_edit",
			Description: "Apply one editing action to the resume builder state and return the new state",
		}, resumeEdit)
	}
}

func resumePreview(_ context.Context, _ *sdkmcp.CallToolRequest, params ResumePreviewParams) (*sdkmcp.CallToolResult, any, error) {
	blocks := resume.Preview(params.Resume)
	text := resume.RenderText(blocks)
	return textResult(text), ResumePreviewResult{
		Blocks: blocks,
		Skills: resume.Categorize(params.Resume.Skills),
		Text:   text,
	}, nil
}

func resumeEdit(_ context.Context, _ *sdkmcp.CallToolRequest, params ResumeEditParams) (*sdkmcp.CallToolResult, any, error) {
	state, err := params.state()
	if err != nil {
		return toolError("resume_edit", &domain.ValidationError{Msg: err.Error()})
	}
	action, err := params.Action.Action()
	if err != nil {
		return toolError("resume_edit", &domain.ValidationError{Msg: err.Error()})
	}

	return nil, resume.Apply(state, action), nil
}

// state decodes the editor state through its JSON form, which validates the target
func (p ResumeEditParams) state() (resume.EditorState, error) {
	data, err := json.Marshal(struct {
		Resume resume.Resume  `json:"resume"`
		Target *EditTarget    `json:"target"`
		Draft  *resume.Resume `json:"draft,omitempty"`
		Dirty  bool           `json:"dirty"`
	}{p.Resume, p.Target, p.Draft, p.Dirty})
	if err != nil {
		return resume.EditorState{}, err
	}

	var s resume.EditorState
	if err := json.Unmarshal(data, &s); err != nil {
		return resume.EditorState{}, err
	}
	return s, nil
}
