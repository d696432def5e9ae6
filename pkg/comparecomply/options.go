package comparecomply

import (
	"io"
	"net/http"

	"github.com/yegors/watson-go/pkg/core"
)

func requireOptions(present bool) error {
	return core.RequireNotNil("options", present)
}

// DocumentFile is an uploaded document. ContentType may be left empty for
// the service to sniff it.
type DocumentFile struct {
	File        io.Reader
	Filename    string
	ContentType string
}

func (f DocumentFile) validate(field string) error {
	return core.RequireNotNil(field, f.File != nil)
}

func (f DocumentFile) filename(fallback string) string {
	if f.Filename != "" {
		return f.Filename
	}
	return fallback
}

// ConvertToHTMLOptions configures ConvertToHTML
type ConvertToHTMLOptions struct {
	DocumentFile
	Model   *string
	Headers http.Header
}

func NewConvertToHTMLOptions(file io.Reader, filename string) *ConvertToHTMLOptions {
	return &ConvertToHTMLOptions{DocumentFile: DocumentFile{File: file, Filename: filename}}
}

func (o *ConvertToHTMLOptions) SetFileContentType(contentType string) *ConvertToHTMLOptions {
	o.ContentType = contentType
	return o
}

func (o *ConvertToHTMLOptions) SetModel(model string) *ConvertToHTMLOptions {
	o.Model = core.StringPtr(model)
	return o
}

func (o *ConvertToHTMLOptions) Validate() error {
	if err := requireOptions(o != nil); err != nil {
		return err
	}
	return o.validate("file")
}

// ClassifyElementsOptions configures ClassifyElements
type ClassifyElementsOptions struct {
	DocumentFile
	Model   *string
	Headers http.Header
}

func NewClassifyElementsOptions(file io.Reader, filename string) *ClassifyElementsOptions {
	return &ClassifyElementsOptions{DocumentFile: DocumentFile{File: file, Filename: filename}}
}

func (o *ClassifyElementsOptions) SetFileContentType(contentType string) *ClassifyElementsOptions {
	o.ContentType = contentType
	return o
}

func (o *ClassifyElementsOptions) SetModel(model string) *ClassifyElementsOptions {
	o.Model = core.StringPtr(model)
	return o
}

func (o *ClassifyElementsOptions) Validate() error {
	if err := requireOptions(o != nil); err != nil {
		return err
	}
	return o.validate("file")
}

// ExtractTablesOptions configures ExtractTables
type ExtractTablesOptions struct {
	DocumentFile
	Model   *string
	Headers http.Header
}

func NewExtractTablesOptions(file io.Reader, filename string) *ExtractTablesOptions {
	return &ExtractTablesOptions{DocumentFile: DocumentFile{File: file, Filename: filename}}
}

func (o *ExtractTablesOptions) SetFileContentType(contentType string) *ExtractTablesOptions {
	o.ContentType = contentType
	return o
}

func (o *ExtractTablesOptions) SetModel(model string) *ExtractTablesOptions {
	o.Model = core.StringPtr(model)
	return o
}

func (o *ExtractTablesOptions) Validate() error {
	if err := requireOptions(o != nil); err != nil {
		return err
	}
	return o.validate("file")
}

// CompareDocumentsOptions configures CompareDocuments
type CompareDocumentsOptions struct {
	File1      DocumentFile
	File2      DocumentFile
	File1Label *string
	File2Label *string
	Model      *string
	Headers    http.Header
}

func NewCompareDocumentsOptions(file1, file2 io.Reader) *CompareDocumentsOptions {
	return &CompareDocumentsOptions{
		File1: DocumentFile{File: file1},
		File2: DocumentFile{File: file2},
	}
}

func (o *CompareDocumentsOptions) SetLabels(file1Label, file2Label string) *CompareDocumentsOptions {
	o.File1Label = core.StringPtr(file1Label)
	o.File2Label = core.StringPtr(file2Label)
	return o
}

func (o *CompareDocumentsOptions) SetModel(model string) *CompareDocumentsOptions {
	o.Model = core.StringPtr(model)
	return o
}

func (o *CompareDocumentsOptions) Validate() error {
	if err := requireOptions(o != nil); err != nil {
		return err
	}
	if err := o.File1.validate("file_1"); err != nil {
		return err
	}
	return o.File2.validate("file_2")
}

// AddFeedbackOptions configures AddFeedback
type AddFeedbackOptions struct {
	FeedbackData *FeedbackDataInput
	UserID       *string
	Comment      *string
	Headers      http.Header
}

func NewAddFeedbackOptions(data *FeedbackDataInput) *AddFeedbackOptions {
	return &AddFeedbackOptions{FeedbackData: data}
}

func (o *AddFeedbackOptions) SetUserID(userID string) *AddFeedbackOptions {
	o.UserID = core.StringPtr(userID)
	return o
}

func (o *AddFeedbackOptions) SetComment(comment string) *AddFeedbackOptions {
	o.Comment = core.StringPtr(comment)
	return o
}

func (o *AddFeedbackOptions) Validate() error {
	if err := requireOptions(o != nil); err != nil {
		return err
	}
	if err := core.RequireNotNil("feedback_data", o.FeedbackData != nil); err != nil {
		return err
	}
	return core.RequireString("feedback_data.feedback_type", o.FeedbackData.FeedbackType)
}

// ListFeedbackOptions configures ListFeedback. Every filter is optional.
type ListFeedbackOptions struct {
	FeedbackType       *string
	Before             *string
	After              *string
	DocumentTitle      *string
	ModelID            *string
	ModelVersion       *string
	CategoryRemoved    *string
	CategoryAdded      *string
	CategoryNotChanged *string
	TypeRemoved        *string
	TypeAdded          *string
	TypeNotChanged     *string
	PageLimit          *int64
	Cursor             *string
	Sort               *string
	IncludeTotal       *bool
	Headers            http.Header
}

func (o *ListFeedbackOptions) Validate() error { return nil }

// GetFeedbackOptions configures GetFeedback
type GetFeedbackOptions struct {
	FeedbackID string
	Model      *string
	Headers    http.Header
}

func NewGetFeedbackOptions(feedbackID string) *GetFeedbackOptions {
	return &GetFeedbackOptions{FeedbackID: feedbackID}
}

func (o *GetFeedbackOptions) Validate() error {
	if err := requireOptions(o != nil); err != nil {
		return err
	}
	return core.RequireString("feedback_id", o.FeedbackID)
}

// DeleteFeedbackOptions configures DeleteFeedback
type DeleteFeedbackOptions struct {
	FeedbackID string
	Model      *string
	Headers    http.Header
}

func NewDeleteFeedbackOptions(feedbackID string) *DeleteFeedbackOptions {
	return &DeleteFeedbackOptions{FeedbackID: feedbackID}
}

func (o *DeleteFeedbackOptions) Validate() error {
	if err := requireOptions(o != nil); err != nil {
		return err
	}
	return core.RequireString("feedback_id", o.FeedbackID)
}

// CreateBatchOptions configures CreateBatch. Credentials files are the
// Cloud Object Storage HMAC credentials in JSON.
type CreateBatchOptions struct {
	Function              string
	InputCredentialsFile  io.Reader
	InputBucketLocation   string
	InputBucketName       string
	OutputCredentialsFile io.Reader
	OutputBucketLocation  string
	OutputBucketName      string
	Model                 *string
	Headers               http.Header
}

func NewCreateBatchOptions(function string, inputCredentials io.Reader, inputLocation, inputBucket string,
	outputCredentials io.Reader, outputLocation, outputBucket string) *CreateBatchOptions {
	return &CreateBatchOptions{
		Function:              function,
		InputCredentialsFile:  inputCredentials,
		InputBucketLocation:   inputLocation,
		InputBucketName:       inputBucket,
		OutputCredentialsFile: outputCredentials,
		OutputBucketLocation:  outputLocation,
		OutputBucketName:      outputBucket,
	}
}

func (o *CreateBatchOptions) Validate() error {
	if err := requireOptions(o != nil); err != nil {
		return err
	}
	checks := []error{
		core.RequireString("function", o.Function),
		core.RequireNotNil("input_credentials_file", o.InputCredentialsFile != nil),
		core.RequireString("input_bucket_location", o.InputBucketLocation),
		core.RequireString("input_bucket_name", o.InputBucketName),
		core.RequireNotNil("output_credentials_file", o.OutputCredentialsFile != nil),
		core.RequireString("output_bucket_location", o.OutputBucketLocation),
		core.RequireString("output_bucket_name", o.OutputBucketName),
	}
	for _, err := range checks {
		if err != nil {
			return err
		}
	}
	return nil
}

// ListBatchesOptions configures ListBatches
type ListBatchesOptions struct {
	Headers http.Header
}

func (o *ListBatchesOptions) Validate() error { return nil }

// GetBatchOptions configures GetBatch
type GetBatchOptions struct {
	BatchID string
	Headers http.Header
}

func NewGetBatchOptions(batchID string) *GetBatchOptions {
	return &GetBatchOptions{BatchID: batchID}
}

func (o *GetBatchOptions) Validate() error {
	if err := requireOptions(o != nil); err != nil {
		return err
	}
	return core.RequireString("batch_id", o.BatchID)
}

// UpdateBatchOptions configures UpdateBatch
type UpdateBatchOptions struct {
	BatchID string
	Action  string
	Model   *string
	Headers http.Header
}

func NewUpdateBatchOptions(batchID, action string) *UpdateBatchOptions {
	return &UpdateBatchOptions{BatchID: batchID, Action: action}
}

func (o *UpdateBatchOptions) Validate() error {
	if err := requireOptions(o != nil); err != nil {
		return err
	}
	if err := core.RequireString("batch_id", o.BatchID); err != nil {
		return err
	}
	if err := core.RequireString("action", o.Action); err != nil {
		return err
	}
	if o.Action != ActionRescan && o.Action != ActionCancel {
		return &core.ValidationError{Field: "action", Reason: "must be rescan or cancel"}
	}
	return nil
}
