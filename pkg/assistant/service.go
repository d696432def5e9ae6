// Package assistant is a client for the Watson Assistant (formerly
// Conversation) v1 API: dialog turns plus workspace, intent, example,
// entity and log management.
package assistant

import (
	"context"
	"net/http"

	"github.com/yegors/watson-go/pkg/core"
	"github.com/yegors/watson-go/pkg/logger"
)

const DefaultServiceURL = "https://gateway.watsonplatform.net/assistant/api"

// Options configures the service client. Version is the API version date,
// e.g. "2018-09-20".
type Options struct {
	core.ServiceOptions
	Version string
}

// Service is the Assistant v1 client
type Service struct {
	base    *core.BaseService
	version string
	logger  *logger.Logger
}

func NewService(opts *Options) (*Service, error) {
	if opts == nil {
		return nil, &core.ValidationError{Field: "options", Reason: "cannot be nil"}
	}
	if err := core.RequireString("version", opts.Version); err != nil {
		return nil, err
	}
	base, err := core.NewBaseService(&opts.ServiceOptions, DefaultServiceURL)
	if err != nil {
		return nil, err
	}
	return &Service{
		base:    base,
		version: opts.Version,
		logger:  base.Logger().Named("assistant"),
	}, nil
}

// Base exposes the shared client, e.g. to change the service URL
func (s *Service) Base() *core.BaseService { return s.base }

func (s *Service) newRequest(method, path string, pathParams map[string]string) (*core.RequestBuilder, error) {
	b := core.NewRequestBuilder(method)
	if _, err := b.ResolveRequestURL(s.base.ServiceURL(), path, pathParams); err != nil {
		return nil, err
	}
	b.AddQuery("version", s.version)
	return b, nil
}

// Message sends user input to a workspace and returns the dialog response
func (s *Service) Message(ctx context.Context, opts *MessageOptions) (*MessageResponse, *core.DetailedResponse, error) {
	if err := opts.Validate(); err != nil {
		return nil, nil, err
	}

	b, err := s.newRequest(http.MethodPost, "/v1/workspaces/{workspace_id}/message",
		map[string]string{"workspace_id": opts.WorkspaceID})
	if err != nil {
		return nil, nil, err
	}
	b.Optional().Bool("nodes_visited_details", opts.NodesVisitedDetails)
	b.SetBodyContentJSON(MessageRequest{
		Input:            opts.Input,
		Intents:          opts.Intents,
		Entities:         opts.Entities,
		AlternateIntents: opts.AlternateIntents,
		Context:          opts.Context,
		Output:           opts.Output,
	})

	var result MessageResponse
	resp, err := s.base.Call(ctx, b, opts.Headers, &result)
	if err != nil {
		return nil, resp, err
	}

	s.logger.Debug("Message processed",
		logger.String("workspace_id", opts.WorkspaceID),
		logger.String("conversation_id", result.Context.ConversationID()),
		logger.Int("intents", len(result.Intents)))

	return &result, resp, nil
}

func (s *Service) ListWorkspaces(ctx context.Context, opts *ListWorkspacesOptions) (*WorkspaceCollection, *core.DetailedResponse, error) {
	if opts == nil {
		opts = &ListWorkspacesOptions{}
	}
	b, err := s.newRequest(http.MethodGet, "/v1/workspaces", nil)
	if err != nil {
		return nil, nil, err
	}
	b.Optional().
		Int64("page_limit", opts.PageLimit).
		Bool("include_count", opts.IncludeCount).
		String("sort", opts.Sort).
		String("cursor", opts.Cursor).
		Bool("include_audit", opts.IncludeAudit)

	var result WorkspaceCollection
	resp, err := s.base.Call(ctx, b, opts.Headers, &result)
	if err != nil {
		return nil, resp, err
	}
	return &result, resp, nil
}

type workspaceBody struct {
	Name           *string            `json:"name,omitempty"`
	Description    *string            `json:"description,omitempty"`
	Language       *string            `json:"language,omitempty"`
	Intents        []Intent           `json:"intents,omitempty"`
	Entities       []Entity           `json:"entities,omitempty"`
	Metadata       *core.DynamicModel `json:"metadata,omitempty"`
	LearningOptOut *bool              `json:"learning_opt_out,omitempty"`
}

func (s *Service) CreateWorkspace(ctx context.Context, opts *CreateWorkspaceOptions) (*Workspace, *core.DetailedResponse, error) {
	if opts == nil {
		opts = &CreateWorkspaceOptions{}
	}
	b, err := s.newRequest(http.MethodPost, "/v1/workspaces", nil)
	if err != nil {
		return nil, nil, err
	}
	b.SetBodyContentJSON(workspaceBody{
		Name:           opts.Name,
		Description:    opts.Description,
		Language:       opts.Language,
		Intents:        opts.Intents,
		Entities:       opts.Entities,
		Metadata:       opts.Metadata,
		LearningOptOut: opts.LearningOptOut,
	})

	var result Workspace
	resp, err := s.base.Call(ctx, b, opts.Headers, &result)
	if err != nil {
		return nil, resp, err
	}
	s.logger.Info("Workspace created", logger.String("workspace_id", result.WorkspaceID))
	return &result, resp, nil
}

func (s *Service) GetWorkspace(ctx context.Context, opts *GetWorkspaceOptions) (*Workspace, *core.DetailedResponse, error) {
	if err := opts.Validate(); err != nil {
		return nil, nil, err
	}
	b, err := s.newRequest(http.MethodGet, "/v1/workspaces/{workspace_id}",
		map[string]string{"workspace_id": opts.WorkspaceID})
	if err != nil {
		return nil, nil, err
	}
	b.Optional().
		Bool("export", opts.Export).
		Bool("include_audit", opts.IncludeAudit).
		String("sort", opts.Sort)

	var result Workspace
	resp, err := s.base.Call(ctx, b, opts.Headers, &result)
	if err != nil {
		return nil, resp, err
	}
	return &result, resp, nil
}

func (s *Service) UpdateWorkspace(ctx context.Context, opts *UpdateWorkspaceOptions) (*Workspace, *core.DetailedResponse, error) {
	if err := opts.Validate(); err != nil {
		return nil, nil, err
	}
	b, err := s.newRequest(http.MethodPost, "/v1/workspaces/{workspace_id}",
		map[string]string{"workspace_id": opts.WorkspaceID})
	if err != nil {
		return nil, nil, err
	}
	b.Optional().Bool("append", opts.Append)
	b.SetBodyContentJSON(workspaceBody{
		Name:           opts.Name,
		Description:    opts.Description,
		Language:       opts.Language,
		Intents:        opts.Intents,
		Entities:       opts.Entities,
		Metadata:       opts.Metadata,
		LearningOptOut: opts.LearningOptOut,
	})

	var result Workspace
	resp, err := s.base.Call(ctx, b, opts.Headers, &result)
	if err != nil {
		return nil, resp, err
	}
	return &result, resp, nil
}

func (s *Service) DeleteWorkspace(ctx context.Context, opts *DeleteWorkspaceOptions) (*core.DetailedResponse, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	b, err := s.newRequest(http.MethodDelete, "/v1/workspaces/{workspace_id}",
		map[string]string{"workspace_id": opts.WorkspaceID})
	if err != nil {
		return nil, err
	}
	resp, err := s.base.Call(ctx, b, opts.Headers, nil)
	if err != nil {
		return resp, err
	}
	s.logger.Info("Workspace deleted", logger.String("workspace_id", opts.WorkspaceID))
	return resp, nil
}

func (s *Service) ListIntents(ctx context.Context, opts *ListIntentsOptions) (*IntentCollection, *core.DetailedResponse, error) {
	if err := opts.Validate(); err != nil {
		return nil, nil, err
	}
	b, err := s.newRequest(http.MethodGet, "/v1/workspaces/{workspace_id}/intents",
		map[string]string{"workspace_id": opts.WorkspaceID})
	if err != nil {
		return nil, nil, err
	}
	b.Optional().
		Bool("export", opts.Export).
		Int64("page_limit", opts.PageLimit).
		Bool("include_count", opts.IncludeCount).
		String("sort", opts.Sort).
		String("cursor", opts.Cursor)

	var result IntentCollection
	resp, err := s.base.Call(ctx, b, opts.Headers, &result)
	if err != nil {
		return nil, resp, err
	}
	return &result, resp, nil
}

func (s *Service) CreateIntent(ctx context.Context, opts *CreateIntentOptions) (*Intent, *core.DetailedResponse, error) {
	if err := opts.Validate(); err != nil {
		return nil, nil, err
	}
	b, err := s.newRequest(http.MethodPost, "/v1/workspaces/{workspace_id}/intents",
		map[string]string{"workspace_id": opts.WorkspaceID})
	if err != nil {
		return nil, nil, err
	}
	b.SetBodyContentJSON(Intent{Intent: opts.Intent, Description: opts.Description, Examples: opts.Examples})

	var result Intent
	resp, err := s.base.Call(ctx, b, opts.Headers, &result)
	if err != nil {
		return nil, resp, err
	}
	return &result, resp, nil
}

func (s *Service) GetIntent(ctx context.Context, opts *GetIntentOptions) (*Intent, *core.DetailedResponse, error) {
	if err := opts.Validate(); err != nil {
		return nil, nil, err
	}
	b, err := s.newRequest(http.MethodGet, "/v1/workspaces/{workspace_id}/intents/{intent}",
		map[string]string{"workspace_id": opts.WorkspaceID, "intent": opts.Intent})
	if err != nil {
		return nil, nil, err
	}
	b.Optional().Bool("export", opts.Export)

	var result Intent
	resp, err := s.base.Call(ctx, b, opts.Headers, &result)
	if err != nil {
		return nil, resp, err
	}
	return &result, resp, nil
}

func (s *Service) UpdateIntent(ctx context.Context, opts *UpdateIntentOptions) (*Intent, *core.DetailedResponse, error) {
	if err := opts.Validate(); err != nil {
		return nil, nil, err
	}
	b, err := s.newRequest(http.MethodPost, "/v1/workspaces/{workspace_id}/intents/{intent}",
		map[string]string{"workspace_id": opts.WorkspaceID, "intent": opts.Intent})
	if err != nil {
		return nil, nil, err
	}
	b.SetBodyContentJSON(struct {
		Intent      *string   `json:"intent,omitempty"`
		Description *string   `json:"description,omitempty"`
		Examples    []Example `json:"examples,omitempty"`
	}{opts.NewIntent, opts.NewDescription, opts.NewExamples})

	var result Intent
	resp, err := s.base.Call(ctx, b, opts.Headers, &result)
	if err != nil {
		return nil, resp, err
	}
	return &result, resp, nil
}

func (s *Service) DeleteIntent(ctx context.Context, opts *DeleteIntentOptions) (*core.DetailedResponse, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	b, err := s.newRequest(http.MethodDelete, "/v1/workspaces/{workspace_id}/intents/{intent}",
		map[string]string{"workspace_id": opts.WorkspaceID, "intent": opts.Intent})
	if err != nil {
		return nil, err
	}
	return s.base.Call(ctx, b, opts.Headers, nil)
}

func (s *Service) ListExamples(ctx context.Context, opts *ListExamplesOptions) (*ExampleCollection, *core.DetailedResponse, error) {
	if err := opts.Validate(); err != nil {
		return nil, nil, err
	}
	b, err := s.newRequest(http.MethodGet, "/v1/workspaces/{workspace_id}/intents/{intent}/examples",
		map[string]string{"workspace_id": opts.WorkspaceID, "intent": opts.Intent})
	if err != nil {
		return nil, nil, err
	}
	b.Optional().
		Int64("page_limit", opts.PageLimit).
		Bool("include_count", opts.IncludeCount).
		String("sort", opts.Sort).
		String("cursor", opts.Cursor)

	var result ExampleCollection
	resp, err := s.base.Call(ctx, b, opts.Headers, &result)
	if err != nil {
		return nil, resp, err
	}
	return &result, resp, nil
}

func (s *Service) CreateExample(ctx context.Context, opts *CreateExampleOptions) (*Example, *core.DetailedResponse, error) {
	if err := opts.Validate(); err != nil {
		return nil, nil, err
	}
	b, err := s.newRequest(http.MethodPost, "/v1/workspaces/{workspace_id}/intents/{intent}/examples",
		map[string]string{"workspace_id": opts.WorkspaceID, "intent": opts.Intent})
	if err != nil {
		return nil, nil, err
	}
	b.SetBodyContentJSON(Example{Text: opts.Text, Mentions: opts.Mentions})

	var result Example
	resp, err := s.base.Call(ctx, b, opts.Headers, &result)
	if err != nil {
		return nil, resp, err
	}
	return &result, resp, nil
}

func (s *Service) DeleteExample(ctx context.Context, opts *DeleteExampleOptions) (*core.DetailedResponse, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	b, err := s.newRequest(http.MethodDelete, "/v1/workspaces/{workspace_id}/intents/{intent}/examples/{text}",
		map[string]string{"workspace_id": opts.WorkspaceID, "intent": opts.Intent, "text": opts.Text})
	if err != nil {
		return nil, err
	}
	return s.base.Call(ctx, b, opts.Headers, nil)
}

func (s *Service) ListEntities(ctx context.Context, opts *ListEntitiesOptions) (*EntityCollection, *core.DetailedResponse, error) {
	if err := opts.Validate(); err != nil {
		return nil, nil, err
	}
	b, err := s.newRequest(http.MethodGet, "/v1/workspaces/{workspace_id}/entities",
		map[string]string{"workspace_id": opts.WorkspaceID})
	if err != nil {
		return nil, nil, err
	}
	b.Optional().
		Bool("export", opts.Export).
		Int64("page_limit", opts.PageLimit).
		Bool("include_count", opts.IncludeCount).
		String("sort", opts.Sort).
		String("cursor", opts.Cursor)

	var result EntityCollection
	resp, err := s.base.Call(ctx, b, opts.Headers, &result)
	if err != nil {
		return nil, resp, err
	}
	return &result, resp, nil
}

func (s *Service) CreateEntity(ctx context.Context, opts *CreateEntityOptions) (*Entity, *core.DetailedResponse, error) {
	if err := opts.Validate(); err != nil {
		return nil, nil, err
	}
	b, err := s.newRequest(http.MethodPost, "/v1/workspaces/{workspace_id}/entities",
		map[string]string{"workspace_id": opts.WorkspaceID})
	if err != nil {
		return nil, nil, err
	}
	b.SetBodyContentJSON(Entity{
		Entity:      opts.Entity,
		Description: opts.Description,
		Metadata:    opts.Metadata,
		FuzzyMatch:  opts.FuzzyMatch,
		Values:      opts.Values,
	})

	var result Entity
	resp, err := s.base.Call(ctx, b, opts.Headers, &result)
	if err != nil {
		return nil, resp, err
	}
	return &result, resp, nil
}

func (s *Service) GetEntity(ctx context.Context, opts *GetEntityOptions) (*Entity, *core.DetailedResponse, error) {
	if err := opts.Validate(); err != nil {
		return nil, nil, err
	}
	b, err := s.newRequest(http.MethodGet, "/v1/workspaces/{workspace_id}/entities/{entity}",
		map[string]string{"workspace_id": opts.WorkspaceID, "entity": opts.Entity})
	if err != nil {
		return nil, nil, err
	}
	b.Optional().Bool("export", opts.Export)

	var result Entity
	resp, err := s.base.Call(ctx, b, opts.Headers, &result)
	if err != nil {
		return nil, resp, err
	}
	return &result, resp, nil
}

func (s *Service) DeleteEntity(ctx context.Context, opts *DeleteEntityOptions) (*core.DetailedResponse, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	b, err := s.newRequest(http.MethodDelete, "/v1/workspaces/{workspace_id}/entities/{entity}",
		map[string]string{"workspace_id": opts.WorkspaceID, "entity": opts.Entity})
	if err != nil {
		return nil, err
	}
	return s.base.Call(ctx, b, opts.Headers, nil)
}

func (s *Service) ListLogs(ctx context.Context, opts *ListLogsOptions) (*LogCollection, *core.DetailedResponse, error) {
	if err := opts.Validate(); err != nil {
		return nil, nil, err
	}
	b, err := s.newRequest(http.MethodGet, "/v1/workspaces/{workspace_id}/logs",
		map[string]string{"workspace_id": opts.WorkspaceID})
	if err != nil {
		return nil, nil, err
	}
	b.Optional().
		String("sort", opts.Sort).
		String("filter", opts.Filter).
		Int64("page_limit", opts.PageLimit).
		String("cursor", opts.Cursor)

	var result LogCollection
	resp, err := s.base.Call(ctx, b, opts.Headers, &result)
	if err != nil {
		return nil, resp, err
	}
	return &result, resp, nil
}

// DeleteUserData removes every record labeled with a customer id
func (s *Service) DeleteUserData(ctx context.Context, opts *DeleteUserDataOptions) (*core.DetailedResponse, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	b, err := s.newRequest(http.MethodDelete, "/v1/user_data", nil)
	if err != nil {
		return nil, err
	}
	b.AddQuery("customer_id", opts.CustomerID)

	resp, err := s.base.Call(ctx, b, opts.Headers, nil)
	if err != nil {
		return resp, err
	}
	s.logger.Info("User data deletion requested", logger.String("customer_id", opts.CustomerID))
	return resp, nil
}
