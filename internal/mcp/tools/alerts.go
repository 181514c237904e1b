package tools

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/careerhub/internal/domain"
	"github.com/honeycarbs/careerhub/internal/domain/alerts"
)

// AlertService manages saved searches that notify on new matches
type AlertService interface {
	Create(ctx context.Context, userID, name string, f domain.SavedFilters) (alerts.Alert, error)
	List(ctx context.Context, userID string) ([]alerts.Alert, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// AlertCreateParams defines the arguments for the alert_create tool
type AlertCreateParams struct {
	UserID  string       `json:"userId" jsonschema:"Owner of the alert"`
	Name    string       `json:"name,omitempty" jsonschema:"Display name; defaults to the search term"`
	Filters FilterParams `json:"filters,omitempty" jsonschema:"Search evaluated after every refresh"`
}

// AlertListParams defines the arguments for the alert_list tool
type AlertListParams struct {
	UserID string `json:"userId" jsonschema:"Owner of the alerts"`
}

// AlertDeleteParams defines the arguments for the alert_delete tool
type AlertDeleteParams struct {
	ID string `json:"id" jsonschema:"Alert ID returned by alert_create"`
}

type alertsHandler struct {
	svc AlertService
}

// WithAlerts registers alert_create, alert_list and alert_delete
func WithAlerts(svc AlertService) Option {
	return func(reg *registry) {
		if svc == nil {
			reg.logger.Warn("alert tools disabled: no alert service")
			return
		}
		h := alertsHandler{svc: svc}
		addTool(reg, &sdkmcp.Tool{
			Name:        "alert_create",
			Description: "Create a job alert that reports new matching listings after each refresh",
		}, h.create)
		addTool(reg, &sdkmcp.Tool{
			Name:        "alert_list",
			Description: "List a user's job alerts",
		}, h.list)
		addTool(reg, &sdkmcp.Tool{
			Name:        "alert_delete",
			Description: "Delete a job alert",
		}, h.delete)
	}
}

func (h alertsHandler) create(ctx context.Context, _ *sdkmcp.CallToolRequest, params AlertCreateParams) (*sdkmcp.CallToolResult, any, error) {
	f, err := params.Filters.apply(domain.DefaultSavedFilters())
	if err != nil {
		return toolError("alert_create", err)
	}
	a, err := h.svc.Create(ctx, params.UserID, params.Name, f)
	if err != nil {
		return toolError("alert_create", err)
	}
	return textResult(fmt.Sprintf("created alert %q (%s)", a.Name, a.ID)), a, nil
}

func (h alertsHandler) list(ctx context.Context, _ *sdkmcp.CallToolRequest, params AlertListParams) (*sdkmcp.CallToolResult, any, error) {
	list, err := h.svc.List(ctx, params.UserID)
	if err != nil {
		return toolError("alert_list", err)
	}
	return nil, map[string]any{"alerts": list}, nil
}

func (h alertsHandler) delete(ctx context.Context, _ *sdkmcp.CallToolRequest, params AlertDeleteParams) (*sdkmcp.CallToolResult, any, error) {
	id, err := uuid.Parse(params.ID)
	if err != nil {
		return toolError("alert_delete", &domain.ValidationError{Msg: fmt.Sprintf("bad alert id %q", params.ID)})
	}
	if err := h.svc.Delete(ctx, id); err != nil {
		return toolError("alert_delete", err)
	}
	return textResult("deleted alert " + id.String()), nil, nil
}
