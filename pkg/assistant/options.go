package assistant

import (
	"net/http"

	"github.com/yegors/watson-go/pkg/core"
)

func requireOptions(present bool) error {
	return core.RequireNotNil("options", present)
}

// MessageOptions configures Message
type MessageOptions struct {
	WorkspaceID         string
	Input               *MessageInput
	Intents             []RuntimeIntent
	Entities            []RuntimeEntity
	AlternateIntents    *bool
	Context             *Context
	Output              *OutputData
	NodesVisitedDetails *bool
	Headers             http.Header
}

func NewMessageOptions(workspaceID string) *MessageOptions {
	return &MessageOptions{WorkspaceID: workspaceID}
}

func (o *MessageOptions) SetInput(text string) *MessageOptions {
	o.Input = &MessageInput{Text: core.StringPtr(text)}
	return o
}

func (o *MessageOptions) SetContext(c *Context) *MessageOptions {
	o.Context = c
	return o
}

func (o *MessageOptions) SetIntents(intents []RuntimeIntent) *MessageOptions {
	o.Intents = intents
	return o
}

func (o *MessageOptions) SetEntities(entities []RuntimeEntity) *MessageOptions {
	o.Entities = entities
	return o
}

func (o *MessageOptions) SetAlternateIntents(v bool) *MessageOptions {
	o.AlternateIntents = core.BoolPtr(v)
	return o
}

func (o *MessageOptions) SetOutput(output *OutputData) *MessageOptions {
	o.Output = output
	return o
}

func (o *MessageOptions) Validate() error {
	if err := requireOptions(o != nil); err != nil {
		return err
	}
	return core.RequireString("workspace_id", o.WorkspaceID)
}

// ListWorkspacesOptions configures ListWorkspaces
type ListWorkspacesOptions struct {
	PageLimit    *int64
	IncludeCount *bool
	Sort         *string
	Cursor       *string
	IncludeAudit *bool
	Headers      http.Header
}

func (o *ListWorkspacesOptions) Validate() error { return nil }

// CreateWorkspaceOptions configures CreateWorkspace
type CreateWorkspaceOptions struct {
	Name           *string
	Description    *string
	Language       *string
	Intents        []Intent
	Entities       []Entity
	Metadata       *core.DynamicModel
	LearningOptOut *bool
	Headers        http.Header
}

func (o *CreateWorkspaceOptions) Validate() error { return nil }

// GetWorkspaceOptions configures GetWorkspace
type GetWorkspaceOptions struct {
	WorkspaceID  string
	Export       *bool
	IncludeAudit *bool
	Sort         *string
	Headers      http.Header
}

func NewGetWorkspaceOptions(workspaceID string) *GetWorkspaceOptions {
	return &GetWorkspaceOptions{WorkspaceID: workspaceID}
}

func (o *GetWorkspaceOptions) SetExport(v bool) *GetWorkspaceOptions {
	o.Export = core.BoolPtr(v)
	return o
}

func (o *GetWorkspaceOptions) Validate() error {
	if err := requireOptions(o != nil); err != nil {
		return err
	}
	return core.RequireString("workspace_id", o.WorkspaceID)
}

// UpdateWorkspaceOptions configures UpdateWorkspace
type UpdateWorkspaceOptions struct {
	WorkspaceID    string
	Name           *string
	Description    *string
	Language       *string
	Intents        []Intent
	Entities       []Entity
	Metadata       *core.DynamicModel
	LearningOptOut *bool
	Append         *bool
	Headers        http.Header
}

func NewUpdateWorkspaceOptions(workspaceID string) *UpdateWorkspaceOptions {
	return &UpdateWorkspaceOptions{WorkspaceID: workspaceID}
}

func (o *UpdateWorkspaceOptions) Validate() error {
	if err := requireOptions(o != nil); err != nil {
		return err
	}
	return core.RequireString("workspace_id", o.WorkspaceID)
}

// DeleteWorkspaceOptions configures DeleteWorkspace
type DeleteWorkspaceOptions struct {
	WorkspaceID string
	Headers     http.Header
}

func NewDeleteWorkspaceOptions(workspaceID string) *DeleteWorkspaceOptions {
	return &DeleteWorkspaceOptions{WorkspaceID: workspaceID}
}

func (o *DeleteWorkspaceOptions) Validate() error {
	if err := requireOptions(o != nil); err != nil {
		return err
	}
	return core.RequireString("workspace_id", o.WorkspaceID)
}

// ListIntentsOptions configures ListIntents
type ListIntentsOptions struct {
	WorkspaceID  string
	Export       *bool
	PageLimit    *int64
	IncludeCount *bool
	Sort         *string
	Cursor       *string
	Headers      http.Header
}

func NewListIntentsOptions(workspaceID string) *ListIntentsOptions {
	return &ListIntentsOptions{WorkspaceID: workspaceID}
}

func (o *ListIntentsOptions) Validate() error {
	if err := requireOptions(o != nil); err != nil {
		return err
	}
	return core.RequireString("workspace_id", o.WorkspaceID)
}

// CreateIntentOptions configures CreateIntent
type CreateIntentOptions struct {
	WorkspaceID string
	Intent      string
	Description *string
	Examples    []Example
	Headers     http.Header
}

func NewCreateIntentOptions(workspaceID, intent string) *CreateIntentOptions {
	return &CreateIntentOptions{WorkspaceID: workspaceID, Intent: intent}
}

func (o *CreateIntentOptions) AddExample(text string) *CreateIntentOptions {
	o.Examples = append(o.Examples, Example{Text: text})
	return o
}

func (o *CreateIntentOptions) Validate() error {
	if err := requireOptions(o != nil); err != nil {
		return err
	}
	if err := core.RequireString("workspace_id", o.WorkspaceID); err != nil {
		return err
	}
	return core.RequireString("intent", o.Intent)
}

// GetIntentOptions configures GetIntent
type GetIntentOptions struct {
	WorkspaceID string
	Intent      string
	Export      *bool
	Headers     http.Header
}

func NewGetIntentOptions(workspaceID, intent string) *GetIntentOptions {
	return &GetIntentOptions{WorkspaceID: workspaceID, Intent: intent}
}

func (o *GetIntentOptions) Validate() error {
	if err := requireOptions(o != nil); err != nil {
		return err
	}
	if err := core.RequireString("workspace_id", o.WorkspaceID); err != nil {
		return err
	}
	return core.RequireString("intent", o.Intent)
}

// UpdateIntentOptions configures UpdateIntent
type UpdateIntentOptions struct {
	WorkspaceID    string
	Intent         string
	NewIntent      *string
	NewDescription *string
	NewExamples    []Example
	Headers        http.Header
}

func NewUpdateIntentOptions(workspaceID, intent string) *UpdateIntentOptions {
	return &UpdateIntentOptions{WorkspaceID: workspaceID, Intent: intent}
}

func (o *UpdateIntentOptions) Validate() error {
	if err := requireOptions(o != nil); err != nil {
		return err
	}
	if err := core.RequireString("workspace_id", o.WorkspaceID); err != nil {
		return err
	}
	return core.RequireString("intent", o.Intent)
}

// DeleteIntentOptions configures DeleteIntent
type DeleteIntentOptions struct {
	WorkspaceID string
	Intent      string
	Headers     http.Header
}

func NewDeleteIntentOptions(workspaceID, intent string) *DeleteIntentOptions {
	return &DeleteIntentOptions{WorkspaceID: workspaceID, Intent: intent}
}

func (o *DeleteIntentOptions) Validate() error {
	if err := requireOptions(o != nil); err != nil {
		return err
	}
	if err := core.RequireString("workspace_id", o.WorkspaceID); err != nil {
		return err
	}
	return core.RequireString("intent", o.Intent)
}

// ListExamplesOptions configures ListExamples
type ListExamplesOptions struct {
	WorkspaceID  string
	Intent       string
	PageLimit    *int64
	IncludeCount *bool
	Sort         *string
	Cursor       *string
	Headers      http.Header
}

func NewListExamplesOptions(workspaceID, intent string) *ListExamplesOptions {
	return &ListExamplesOptions{WorkspaceID: workspaceID, Intent: intent}
}

func (o *ListExamplesOptions) Validate() error {
	if err := requireOptions(o != nil); err != nil {
		return err
	}
	if err := core.RequireString("workspace_id", o.WorkspaceID); err != nil {
		return err
	}
	return core.RequireString("intent", o.Intent)
}

// CreateExampleOptions configures CreateExample
type CreateExampleOptions struct {
	WorkspaceID string
	Intent      string
	Text        string
	Mentions    []Mention
	Headers     http.Header
}

func NewCreateExampleOptions(workspaceID, intent, text string) *CreateExampleOptions {
	return &CreateExampleOptions{WorkspaceID: workspaceID, Intent: intent, Text: text}
}

func (o *CreateExampleOptions) Validate() error {
	if err := requireOptions(o != nil); err != nil {
		return err
	}
	if err := core.RequireString("workspace_id", o.WorkspaceID); err != nil {
		return err
	}
	if err := core.RequireString("intent", o.Intent); err != nil {
		return err
	}
	return core.RequireString("text", o.Text)
}

// DeleteExampleOptions configures DeleteExample
type DeleteExampleOptions struct {
	WorkspaceID string
	Intent      string
	Text        string
	Headers     http.Header
}

func NewDeleteExampleOptions(workspaceID, intent, text string) *DeleteExampleOptions {
	return &DeleteExampleOptions{WorkspaceID: workspaceID, Intent: intent, Text: text}
}

func (o *DeleteExampleOptions) Validate() error {
	if err := requireOptions(o != nil); err != nil {
		return err
	}
	if err := core.RequireString("workspace_id", o.WorkspaceID); err != nil {
		return err
	}
	if err := core.RequireString("intent", o.Intent); err != nil {
		return err
	}
	return core.RequireString("text", o.Text)
}

// ListEntitiesOptions configures ListEntities
type ListEntitiesOptions struct {
	WorkspaceID  string
	Export       *bool
	PageLimit    *int64
	IncludeCount *bool
	Sort         *string
	Cursor       *string
	Headers      http.Header
}

func NewListEntitiesOptions(workspaceID string) *ListEntitiesOptions {
	return &ListEntitiesOptions{WorkspaceID: workspaceID}
}

func (o *ListEntitiesOptions) Validate() error {
	if err := requireOptions(o != nil); err != nil {
		return err
	}
	return core.RequireString("workspace_id", o.WorkspaceID)
}

// CreateEntityOptions configures CreateEntity
type CreateEntityOptions struct {
	WorkspaceID string
	Entity      string
	Description *string
	Metadata    *core.DynamicModel
	Values      []Value
	FuzzyMatch  *bool
	Headers     http.Header
}

func NewCreateEntityOptions(workspaceID, entity string) *CreateEntityOptions {
	return &CreateEntityOptions{WorkspaceID: workspaceID, Entity: entity}
}

// AddValue appends a synonym-type value
func (o *CreateEntityOptions) AddValue(value string, synonyms ...string) *CreateEntityOptions {
	o.Values = append(o.Values, Value{Value: value, Synonyms: synonyms})
	return o
}

func (o *CreateEntityOptions) Validate() error {
	if err := requireOptions(o != nil); err != nil {
		return err
	}
	if err := core.RequireString("workspace_id", o.WorkspaceID); err != nil {
		return err
	}
	if err := core.RequireString("entity", o.Entity); err != nil {
		return err
	}
	for _, v := range o.Values {
		if v.Value == "" {
			return &core.ValidationError{Field: "values", Reason: "value cannot be empty"}
		}
		if len(v.Synonyms) > 0 && len(v.Patterns) > 0 {
			return &core.ValidationError{Field: "values", Reason: "a value holds either synonyms or patterns, not both"}
		}
	}
	return nil
}

// GetEntityOptions configures GetEntity
type GetEntityOptions struct {
	WorkspaceID string
	Entity      string
	Export      *bool
	Headers     http.Header
}

func NewGetEntityOptions(workspaceID, entity string) *GetEntityOptions {
	return &GetEntityOptions{WorkspaceID: workspaceID, Entity: entity}
}

func (o *GetEntityOptions) Validate() error {
	if err := requireOptions(o != nil); err != nil {
		return err
	}
	if err := core.RequireString("workspace_id", o.WorkspaceID); err != nil {
		return err
	}
	return core.RequireString("entity", o.Entity)
}

// DeleteEntityOptions configures DeleteEntity
type DeleteEntityOptions struct {
	WorkspaceID string
	Entity      string
	Headers     http.Header
}

func NewDeleteEntityOptions(workspaceID, entity string) *DeleteEntityOptions {
	return &DeleteEntityOptions{WorkspaceID: workspaceID, Entity: entity}
}

func (o *DeleteEntityOptions) Validate() error {
	if err := requireOptions(o != nil); err != nil {
		return err
	}
	if err := core.RequireString("workspace_id", o.WorkspaceID); err != nil {
		return err
	}
	return core.RequireString("entity", o.Entity)
}

// ListLogsOptions configures ListLogs
type ListLogsOptions struct {
	WorkspaceID string
	Sort        *string
	Filter      *string
	PageLimit   *int64
	Cursor      *string
	Headers     http.Header
}

func NewListLogsOptions(workspaceID string) *ListLogsOptions {
	return &ListLogsOptions{WorkspaceID: workspaceID}
}

func (o *ListLogsOptions) Validate() error {
	if err := requireOptions(o != nil); err != nil {
		return err
	}
	return core.RequireString("workspace_id", o.WorkspaceID)
}

// DeleteUserDataOptions configures DeleteUserData
type DeleteUserDataOptions struct {
	CustomerID string
	Headers    http.Header
}

func NewDeleteUserDataOptions(customerID string) *DeleteUserDataOptions {
	return &DeleteUserDataOptions{CustomerID: customerID}
}

func (o *DeleteUserDataOptions) Validate() error {
	if err := requireOptions(o != nil); err != nil {
		return err
	}
	return core.RequireString("customer_id", o.CustomerID)
}
