package comparecomply

import (
	"time"

	"github.com/yegors/watson-go/pkg/core"
)

// Models accepted by the analysis endpoints
const (
	ModelContracts = "contracts"
	ModelTables    = "tables"
)

// Batch functions
const (
	FunctionHTMLConversion        = "html_conversion"
	FunctionElementClassification = "element_classification"
	FunctionTables                = "tables"
)

// Batch update actions
const (
	ActionRescan = "rescan"
	ActionCancel = "cancel"
)

// Batch statuses
const (
	BatchStatusPending   = "pending"
	BatchStatusRunning   = "running"
	BatchStatusCompleted = "completed"
	BatchStatusFailed    = "failed"
	BatchStatusCancelled = "cancelled"
)

// Location is a character span in the converted HTML
type Location struct {
	Begin int64 `json:"begin"`
	End   int64 `json:"end"`
}

type Label struct {
	Nature string `json:"nature"`
	Party  string `json:"party"`
}

type TypeLabel struct {
	Label         *Label   `json:"label,omitempty"`
	ProvenanceIDs []string `json:"provenance_ids,omitempty"`
}

type Category struct {
	Label         *string  `json:"label,omitempty"`
	ProvenanceIDs []string `json:"provenance_ids,omitempty"`
}

type Attribute struct {
	AttributeType string    `json:"type"`
	Text          string    `json:"text"`
	Location      *Location `json:"location,omitempty"`
}

// Element is a classified sentence of a document
type Element struct {
	Location   *Location   `json:"location,omitempty"`
	Text       *string     `json:"text,omitempty"`
	Types      []TypeLabel `json:"types,omitempty"`
	Categories []Category  `json:"categories,omitempty"`
	Attributes []Attribute `json:"attributes,omitempty"`
}

type Document struct {
	Title *string `json:"title,omitempty"`
	HTML  *string `json:"html,omitempty"`
	Hash  *string `json:"hash,omitempty"`
	Label *string `json:"label,omitempty"`
}

type HTMLReturn struct {
	NumPages        *string `json:"num_pages,omitempty"`
	Author          *string `json:"author,omitempty"`
	PublicationDate *string `json:"publication_date,omitempty"`
	Title           *string `json:"title,omitempty"`
	HTML            *string `json:"html,omitempty"`
}

type Parties struct {
	Party      *string  `json:"party,omitempty"`
	Importance *string  `json:"importance,omitempty"`
	Role       *string  `json:"role,omitempty"`
	Addresses  []string `json:"addresses,omitempty"`
}

type ClassifyReturn struct {
	Document          *Document           `json:"document,omitempty"`
	ModelID           *string             `json:"model_id,omitempty"`
	ModelVersion      *string             `json:"model_version,omitempty"`
	Elements          []Element           `json:"elements,omitempty"`
	Tables            []core.DynamicModel `json:"tables,omitempty"`
	DocumentStructure *core.DynamicModel  `json:"document_structure,omitempty"`
	Parties           []Parties           `json:"parties,omitempty"`
	EffectiveDates    []core.DynamicModel `json:"effective_dates,omitempty"`
	ContractAmounts   []core.DynamicModel `json:"contract_amounts,omitempty"`
	TerminationDates  []core.DynamicModel `json:"termination_dates,omitempty"`
}

// TableReturn keeps the table structure open-schema; callers reach cells via
// DynamicModel paths such as "body_cells.0.text".
type TableReturn struct {
	Document     *Document           `json:"document,omitempty"`
	ModelID      *string             `json:"model_id,omitempty"`
	ModelVersion *string             `json:"model_version,omitempty"`
	Tables       []core.DynamicModel `json:"tables,omitempty"`
}

type ElementPair struct {
	DocumentLabel *string     `json:"document_label,omitempty"`
	Text          *string     `json:"text,omitempty"`
	Location      *Location   `json:"location,omitempty"`
	Types         []TypeLabel `json:"types,omitempty"`
	Categories    []Category  `json:"categories,omitempty"`
	Attributes    []Attribute `json:"attributes,omitempty"`
}

type AlignedElement struct {
	ElementPair         []ElementPair `json:"element_pair,omitempty"`
	IdenticalText       *bool         `json:"identical_text,omitempty"`
	ProvenanceIDs       []string      `json:"provenance_ids,omitempty"`
	SignificantElements *bool         `json:"significant_elements,omitempty"`
}

type UnalignedElement struct {
	DocumentLabel *string     `json:"document_label,omitempty"`
	Location      *Location   `json:"location,omitempty"`
	Text          *string     `json:"text,omitempty"`
	Types         []TypeLabel `json:"types,omitempty"`
	Categories    []Category  `json:"categories,omitempty"`
	Attributes    []Attribute `json:"attributes,omitempty"`
}

type CompareReturn struct {
	ModelID           *string            `json:"model_id,omitempty"`
	ModelVersion      *string            `json:"model_version,omitempty"`
	Documents         []Document         `json:"documents,omitempty"`
	AlignedElements   []AlignedElement   `json:"aligned_elements,omitempty"`
	UnalignedElements []UnalignedElement `json:"unaligned_elements,omitempty"`
}

// FeedbackDataInput is the body of AddFeedback's feedback_data field
type FeedbackDataInput struct {
	FeedbackType   string           `json:"feedback_type"`
	Document       *ShortDoc        `json:"document,omitempty"`
	ModelID        *string          `json:"model_id,omitempty"`
	ModelVersion   *string          `json:"model_version,omitempty"`
	Location       Location         `json:"location"`
	Text           string           `json:"text"`
	OriginalLabels OriginalLabelsIn `json:"original_labels"`
	UpdatedLabels  UpdatedLabelsIn  `json:"updated_labels"`
}

type ShortDoc struct {
	Title *string `json:"title,omitempty"`
	Hash  *string `json:"hash,omitempty"`
}

type OriginalLabelsIn struct {
	Types      []TypeLabel `json:"types"`
	Categories []Category  `json:"categories"`
}

type UpdatedLabelsIn struct {
	Types      []TypeLabel `json:"types"`
	Categories []Category  `json:"categories"`
}

type FeedbackReturn struct {
	FeedbackID   *string            `json:"feedback_id,omitempty"`
	UserID       *string            `json:"user_id,omitempty"`
	Comment      *string            `json:"comment,omitempty"`
	Created      *time.Time         `json:"created,omitempty"`
	FeedbackData *core.DynamicModel `json:"feedback_data,omitempty"`
}

type GetFeedback struct {
	FeedbackID   *string            `json:"feedback_id,omitempty"`
	Created      *time.Time         `json:"created,omitempty"`
	Comment      *string            `json:"comment,omitempty"`
	FeedbackData *core.DynamicModel `json:"feedback_data,omitempty"`
}

type Pagination struct {
	RefreshCursor *string `json:"refresh_cursor,omitempty"`
	NextCursor    *string `json:"next_cursor,omitempty"`
	RefreshURL    *string `json:"refresh_url,omitempty"`
	NextURL       *string `json:"next_url,omitempty"`
	Total         *int64  `json:"total,omitempty"`
}

type FeedbackList struct {
	Feedback   []GetFeedback `json:"feedback,omitempty"`
	Pagination *Pagination   `json:"pagination,omitempty"`
}

type FeedbackDeleted struct {
	Status  *int64  `json:"status,omitempty"`
	Message *string `json:"message,omitempty"`
}

type DocCounts struct {
	Total      *int64 `json:"total,omitempty"`
	Pending    *int64 `json:"pending,omitempty"`
	Successful *int64 `json:"successful,omitempty"`
	Failed     *int64 `json:"failed,omitempty"`
}

type BatchStatus struct {
	Function             *string    `json:"function,omitempty"`
	InputBucketLocation  *string    `json:"input_bucket_location,omitempty"`
	InputBucketName      *string    `json:"input_bucket_name,omitempty"`
	OutputBucketLocation *string    `json:"output_bucket_location,omitempty"`
	OutputBucketName     *string    `json:"output_bucket_name,omitempty"`
	BatchID              *string    `json:"batch_id,omitempty"`
	DocumentCounts       *DocCounts `json:"document_counts,omitempty"`
	Status               *string    `json:"status,omitempty"`
	Created              *time.Time `json:"created,omitempty"`
	Updated              *time.Time `json:"updated,omitempty"`
}

type Batches struct {
	Batches []BatchStatus `json:"batches,omitempty"`
}
