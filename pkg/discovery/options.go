package discovery

import (
	"io"
	"net/http"

	"github.com/yegors/watson-go/pkg/core"
)

func requireOptions(present bool) error {
	return core.RequireNotNil("options", present)
}

func requireCollection(environmentID, collectionID string) error {
	if err := core.RequireString("environment_id", environmentID); err != nil {
		return err
	}
	return core.RequireString("collection_id", collectionID)
}

// ListEnvironmentsOptions configures ListEnvironments
type ListEnvironmentsOptions struct {
	Name    *string
	Headers http.Header
}

func (o *ListEnvironmentsOptions) Validate() error { return nil }

// GetEnvironmentOptions configures GetEnvironment
type GetEnvironmentOptions struct {
	EnvironmentID string
	Headers       http.Header
}

func NewGetEnvironmentOptions(environmentID string) *GetEnvironmentOptions {
	return &GetEnvironmentOptions{EnvironmentID: environmentID}
}

func (o *GetEnvironmentOptions) Validate() error {
	if err := requireOptions(o != nil); err != nil {
		return err
	}
	return core.RequireString("environment_id", o.EnvironmentID)
}

// ListCollectionsOptions configures ListCollections
type ListCollectionsOptions struct {
	EnvironmentID string
	Name          *string
	Headers       http.Header
}

func NewListCollectionsOptions(environmentID string) *ListCollectionsOptions {
	return &ListCollectionsOptions{EnvironmentID: environmentID}
}

func (o *ListCollectionsOptions) SetName(name string) *ListCollectionsOptions {
	o.Name = core.StringPtr(name)
	return o
}

func (o *ListCollectionsOptions) Validate() error {
	if err := requireOptions(o != nil); err != nil {
		return err
	}
	return core.RequireString("environment_id", o.EnvironmentID)
}

// CreateCollectionOptions configures CreateCollection
type CreateCollectionOptions struct {
	EnvironmentID   string
	Name            string
	Description     *string
	ConfigurationID *string
	Language        *string
	Headers         http.Header
}

func NewCreateCollectionOptions(environmentID, name string) *CreateCollectionOptions {
	return &CreateCollectionOptions{EnvironmentID: environmentID, Name: name}
}

func (o *CreateCollectionOptions) SetDescription(description string) *CreateCollectionOptions {
	o.Description = core.StringPtr(description)
	return o
}

func (o *CreateCollectionOptions) SetConfigurationID(configurationID string) *CreateCollectionOptions {
	o.ConfigurationID = core.StringPtr(configurationID)
	return o
}

func (o *CreateCollectionOptions) SetLanguage(language string) *CreateCollectionOptions {
	o.Language = core.StringPtr(language)
	return o
}

func (o *CreateCollectionOptions) Validate() error {
	if err := requireOptions(o != nil); err != nil {
		return err
	}
	if err := core.RequireString("environment_id", o.EnvironmentID); err != nil {
		return err
	}
	return core.RequireString("name", o.Name)
}

// CollectionOptions addresses a single collection. It configures
// GetCollection, DeleteCollection and ListCollectionFields.
type CollectionOptions struct {
	EnvironmentID string
	CollectionID  string
	Headers       http.Header
}

func NewCollectionOptions(environmentID, collectionID string) *CollectionOptions {
	return &CollectionOptions{EnvironmentID: environmentID, CollectionID: collectionID}
}

func (o *CollectionOptions) Validate() error {
	if err := requireOptions(o != nil); err != nil {
		return err
	}
	return requireCollection(o.EnvironmentID, o.CollectionID)
}

// AddDocumentOptions configures AddDocument. At least one of File and
// Metadata must be set.
type AddDocumentOptions struct {
	EnvironmentID   string
	CollectionID    string
	File            io.Reader
	Filename        *string
	FileContentType *string
	Metadata        *core.DynamicModel
	Headers         http.Header
}

func NewAddDocumentOptions(environmentID, collectionID string) *AddDocumentOptions {
	return &AddDocumentOptions{EnvironmentID: environmentID, CollectionID: collectionID}
}

func (o *AddDocumentOptions) SetFile(file io.Reader, filename, contentType string) *AddDocumentOptions {
	o.File = file
	o.Filename = core.StringPtr(filename)
	if contentType != "" {
		o.FileContentType = core.StringPtr(contentType)
	}
	return o
}

func (o *AddDocumentOptions) SetMetadata(metadata core.DynamicModel) *AddDocumentOptions {
	o.Metadata = &metadata
	return o
}

func (o *AddDocumentOptions) Validate() error {
	if err := requireOptions(o != nil); err != nil {
		return err
	}
	if err := requireCollection(o.EnvironmentID, o.CollectionID); err != nil {
		return err
	}
	return requireFileOrMetadata(o.File, o.Metadata)
}

func requireFileOrMetadata(file io.Reader, metadata *core.DynamicModel) error {
	if file == nil && metadata == nil {
		return &core.ValidationError{Field: "file", Reason: "file or metadata must be provided"}
	}
	return nil
}

// UpdateDocumentOptions configures UpdateDocument
type UpdateDocumentOptions struct {
	EnvironmentID   string
	CollectionID    string
	DocumentID      string
	File            io.Reader
	Filename        *string
	FileContentType *string
	Metadata        *core.DynamicModel
	Headers         http.Header
}

func NewUpdateDocumentOptions(environmentID, collectionID, documentID string) *UpdateDocumentOptions {
	return &UpdateDocumentOptions{EnvironmentID: environmentID, CollectionID: collectionID, DocumentID: documentID}
}

func (o *UpdateDocumentOptions) SetFile(file io.Reader, filename, contentType string) *UpdateDocumentOptions {
	o.File = file
	o.Filename = core.StringPtr(filename)
	if contentType != "" {
		o.FileContentType = core.StringPtr(contentType)
	}
	return o
}

func (o *UpdateDocumentOptions) SetMetadata(metadata core.DynamicModel) *UpdateDocumentOptions {
	o.Metadata = &metadata
	return o
}

func (o *UpdateDocumentOptions) Validate() error {
	if err := requireOptions(o != nil); err != nil {
		return err
	}
	if err := requireCollection(o.EnvironmentID, o.CollectionID); err != nil {
		return err
	}
	if err := core.RequireString("document_id", o.DocumentID); err != nil {
		return err
	}
	return requireFileOrMetadata(o.File, o.Metadata)
}

// DocumentOptions addresses a single document. It configures
// GetDocumentStatus and DeleteDocument.
type DocumentOptions struct {
	EnvironmentID string
	CollectionID  string
	DocumentID    string
	Headers       http.Header
}

func NewDocumentOptions(environmentID, collectionID, documentID string) *DocumentOptions {
	return &DocumentOptions{EnvironmentID: environmentID, CollectionID: collectionID, DocumentID: documentID}
}

func (o *DocumentOptions) Validate() error {
	if err := requireOptions(o != nil); err != nil {
		return err
	}
	if err := requireCollection(o.EnvironmentID, o.CollectionID); err != nil {
		return err
	}
	return core.RequireString("document_id", o.DocumentID)
}

// QueryOptions configures Query. Filter and Query use the Discovery query
// language; NaturalLanguageQuery takes plain text.
type QueryOptions struct {
	EnvironmentID        string
	CollectionID         string
	Filter               *string
	Query                *string
	NaturalLanguageQuery *string
	Passages             *bool
	Aggregation          *string
	Count                *int64
	Return               []string
	Offset               *int64
	Sort                 []string
	Highlight            *bool
	Deduplicate          *bool
	DeduplicateField     *string
	Headers              http.Header
}

func NewQueryOptions(environmentID, collectionID string) *QueryOptions {
	return &QueryOptions{EnvironmentID: environmentID, CollectionID: collectionID}
}

func (o *QueryOptions) SetFilter(filter string) *QueryOptions {
	o.Filter = core.StringPtr(filter)
	return o
}

func (o *QueryOptions) SetQuery(query string) *QueryOptions {
	o.Query = core.StringPtr(query)
	return o
}

func (o *QueryOptions) SetNaturalLanguageQuery(query string) *QueryOptions {
	o.NaturalLanguageQuery = core.StringPtr(query)
	return o
}

func (o *QueryOptions) SetAggregation(aggregation string) *QueryOptions {
	o.Aggregation = core.StringPtr(aggregation)
	return o
}

func (o *QueryOptions) SetCount(count int64) *QueryOptions {
	o.Count = core.Int64Ptr(count)
	return o
}

func (o *QueryOptions) SetOffset(offset int64) *QueryOptions {
	o.Offset = core.Int64Ptr(offset)
	return o
}

func (o *QueryOptions) SetReturn(fields ...string) *QueryOptions {
	o.Return = fields
	return o
}

func (o *QueryOptions) SetSort(fields ...string) *QueryOptions {
	o.Sort = fields
	return o
}

func (o *QueryOptions) SetHighlight(v bool) *QueryOptions {
	o.Highlight = core.BoolPtr(v)
	return o
}

func (o *QueryOptions) SetDeduplicate(v bool) *QueryOptions {
	o.Deduplicate = core.BoolPtr(v)
	return o
}

func (o *QueryOptions) Validate() error {
	if err := requireOptions(o != nil); err != nil {
		return err
	}
	if err := requireCollection(o.EnvironmentID, o.CollectionID); err != nil {
		return err
	}
	if o.Query != nil && o.NaturalLanguageQuery != nil {
		return &core.ValidationError{Field: "natural_language_query", Reason: "cannot be combined with query"}
	}
	if o.Count != nil && *o.Count < 0 {
		return &core.ValidationError{Field: "count", Reason: "must not be negative"}
	}
	return nil
}
