package assistant

import (
	"time"

	"github.com/yegors/watson-go/pkg/core"
)

// MessageInput is the user input of a single dialog turn
type MessageInput struct {
	Text *string `json:"text,omitempty"`
}

// Context is the open-schema dialog state echoed between turns. The service
// owns most of its content; callers typically only read the conversation id
// and set their own variables.
type Context struct {
	core.DynamicModel
}

// NewContext wraps variables into a dialog context
func NewContext(vars map[string]any) (*Context, error) {
	m, err := core.NewDynamicModel(vars)
	if err != nil {
		return nil, err
	}
	return &Context{DynamicModel: m}, nil
}

// ConversationID returns the service-assigned conversation id, if any
func (c *Context) ConversationID() string {
	if c == nil {
		return ""
	}
	id, _ := c.GetString("conversation_id")
	return id
}

// DialogTurnCounter returns system.dialog_turn_counter
func (c *Context) DialogTurnCounter() int64 {
	if c == nil {
		return 0
	}
	n, _ := c.GetInt("system.dialog_turn_counter")
	return n
}

// RuntimeIntent is an intent recognized in the user input
type RuntimeIntent struct {
	Intent     string  `json:"intent"`
	Confidence float64 `json:"confidence"`
}

// CaptureGroup is a pattern-entity capture group
type CaptureGroup struct {
	Group    string  `json:"group"`
	Location []int64 `json:"location,omitempty"`
}

// RuntimeEntity is an entity detected in the user input
type RuntimeEntity struct {
	Entity     string             `json:"entity"`
	Location   []int64            `json:"location"`
	Value      string             `json:"value"`
	Confidence *float64           `json:"confidence,omitempty"`
	Metadata   *core.DynamicModel `json:"metadata,omitempty"`
	Groups     []CaptureGroup     `json:"groups,omitempty"`
}

// LogMessage is a dialog log entry returned in output
type LogMessage struct {
	Level string `json:"level"`
	Msg   string `json:"msg"`
}

// DialogNodesVisited describes one visited dialog node
type DialogNodesVisited struct {
	DialogNode *string `json:"dialog_node,omitempty"`
	Title      *string `json:"title,omitempty"`
	Conditions *string `json:"conditions,omitempty"`
}

// OutputData is the dialog output of a turn
type OutputData struct {
	LogMessages         []LogMessage         `json:"log_messages"`
	Text                []string             `json:"text"`
	NodesVisited        []string             `json:"nodes_visited,omitempty"`
	NodesVisitedDetails []DialogNodesVisited `json:"nodes_visited_details,omitempty"`
}

// DialogNodeAction is a client action requested by a dialog node
type DialogNodeAction struct {
	Name           string             `json:"name"`
	ActionType     *string            `json:"type,omitempty"`
	Parameters     *core.DynamicModel `json:"parameters,omitempty"`
	ResultVariable string             `json:"result_variable"`
	Credentials    *string            `json:"credentials,omitempty"`
}

// MessageRequest is the body of a message call, also echoed in logs
type MessageRequest struct {
	Input            *MessageInput   `json:"input,omitempty"`
	Intents          []RuntimeIntent `json:"intents,omitempty"`
	Entities         []RuntimeEntity `json:"entities,omitempty"`
	AlternateIntents *bool           `json:"alternate_intents,omitempty"`
	Context          *Context        `json:"context,omitempty"`
	Output           *OutputData     `json:"output,omitempty"`
}

// MessageResponse is the result of a dialog turn
type MessageResponse struct {
	Input            *MessageInput      `json:"input,omitempty"`
	Intents          []RuntimeIntent    `json:"intents"`
	Entities         []RuntimeEntity    `json:"entities"`
	AlternateIntents *bool              `json:"alternate_intents,omitempty"`
	Context          *Context           `json:"context"`
	Output           *OutputData        `json:"output"`
	Actions          []DialogNodeAction `json:"actions,omitempty"`
}

// TopIntent returns the highest-confidence intent, or nil
func (r *MessageResponse) TopIntent() *RuntimeIntent {
	if r == nil || len(r.Intents) == 0 {
		return nil
	}
	top := &r.Intents[0]
	for i := range r.Intents {
		if r.Intents[i].Confidence > top.Confidence {
			top = &r.Intents[i]
		}
	}
	return top
}

// Pagination is shared by every collection response
type Pagination struct {
	RefreshURL    string  `json:"refresh_url"`
	NextURL       *string `json:"next_url,omitempty"`
	Total         *int64  `json:"total,omitempty"`
	Matched       *int64  `json:"matched,omitempty"`
	RefreshCursor *string `json:"refresh_cursor,omitempty"`
	NextCursor    *string `json:"next_cursor,omitempty"`
}

// Mention is a contextual entity mention inside an example
type Mention struct {
	Entity   string  `json:"entity"`
	Location []int64 `json:"location"`
}

type Example struct {
	Text     string     `json:"text"`
	Mentions []Mention  `json:"mentions,omitempty"`
	Created  *time.Time `json:"created,omitempty"`
	Updated  *time.Time `json:"updated,omitempty"`
}

type ExampleCollection struct {
	Examples   []Example  `json:"examples"`
	Pagination Pagination `json:"pagination"`
}

type Intent struct {
	Intent      string     `json:"intent"`
	Description *string    `json:"description,omitempty"`
	Created     *time.Time `json:"created,omitempty"`
	Updated     *time.Time `json:"updated,omitempty"`
	Examples    []Example  `json:"examples,omitempty"`
}

type IntentCollection struct {
	Intents    []Intent   `json:"intents"`
	Pagination Pagination `json:"pagination"`
}

// Value types
const (
	ValueTypeSynonyms = "synonyms"
	ValueTypePatterns = "patterns"
)

type Value struct {
	Value     string             `json:"value"`
	Metadata  *core.DynamicModel `json:"metadata,omitempty"`
	ValueType *string            `json:"type,omitempty"`
	Synonyms  []string           `json:"synonyms,omitempty"`
	Patterns  []string           `json:"patterns,omitempty"`
	Created   *time.Time         `json:"created,omitempty"`
	Updated   *time.Time         `json:"updated,omitempty"`
}

type Entity struct {
	Entity      string             `json:"entity"`
	Description *string            `json:"description,omitempty"`
	Metadata    *core.DynamicModel `json:"metadata,omitempty"`
	FuzzyMatch  *bool              `json:"fuzzy_match,omitempty"`
	Created     *time.Time         `json:"created,omitempty"`
	Updated     *time.Time         `json:"updated,omitempty"`
	Values      []Value            `json:"values,omitempty"`
}

type EntityCollection struct {
	Entities   []Entity   `json:"entities"`
	Pagination Pagination `json:"pagination"`
}

// Workspace statuses
const (
	WorkspaceStatusNonExistent = "Non Existent"
	WorkspaceStatusTraining    = "Training"
	WorkspaceStatusFailed      = "Failed"
	WorkspaceStatusAvailable   = "Available"
	WorkspaceStatusUnavailable = "Unavailable"
)

type Workspace struct {
	Name           string             `json:"name"`
	Description    *string            `json:"description,omitempty"`
	Language       string             `json:"language"`
	Metadata       *core.DynamicModel `json:"metadata,omitempty"`
	LearningOptOut bool               `json:"learning_opt_out"`
	SystemSettings *core.DynamicModel `json:"system_settings,omitempty"`
	WorkspaceID    string             `json:"workspace_id"`
	Status         *string            `json:"status,omitempty"`
	Created        *time.Time         `json:"created,omitempty"`
	Updated        *time.Time         `json:"updated,omitempty"`
	Intents        []Intent           `json:"intents,omitempty"`
	Entities       []Entity           `json:"entities,omitempty"`
}

type WorkspaceCollection struct {
	Workspaces []Workspace `json:"workspaces"`
	Pagination Pagination  `json:"pagination"`
}

// Log is one logged message exchange
type Log struct {
	Request           MessageRequest  `json:"request"`
	Response          MessageResponse `json:"response"`
	LogID             string          `json:"log_id"`
	RequestTimestamp  string          `json:"request_timestamp"`
	ResponseTimestamp string          `json:"response_timestamp"`
	WorkspaceID       string          `json:"workspace_id"`
	Language          string          `json:"language"`
}

type LogCollection struct {
	Logs       []Log      `json:"logs"`
	Pagination Pagination `json:"pagination"`
}
