// Package comparecomply is a client for the Watson Compare and Comply v1 API:
// document conversion, element classification, table extraction, document
// comparison, feedback and batch processing.
package comparecomply

import (
	"context"
	"net/http"
	"strings"

	"github.com/yegors/watson-go/pkg/core"
	"github.com/yegors/watson-go/pkg/logger"
)

const DefaultServiceURL = "https://gateway.watsonplatform.net/compare-comply/api"

// Options configures the service client. Version is the API version date,
// e.g. "2018-10-15".
type Options struct {
	core.ServiceOptions
	Version string
}

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
		logger:  base.Logger().Named("compare"),
	}, nil
}

func (s *Service) Base() *core.BaseService { return s.base }

func (s *Service) newRequest(method, path string, pathParams map[string]string) (*core.RequestBuilder, error) {
	b := core.NewRequestBuilder(method)
	if _, err := b.ResolveRequestURL(s.base.ServiceURL(), path, pathParams); err != nil {
		return nil, err
	}
	b.AddQuery("version", s.version)
	return b, nil
}

// analyze posts a single document to one of the analysis endpoints
func (s *Service) analyze(ctx context.Context, path string, file DocumentFile, model *string, headers http.Header, result any) (*core.DetailedResponse, error) {
	b, err := s.newRequest(http.MethodPost, path, nil)
	if err != nil {
		return nil, err
	}
	b.Optional().String("model", model)
	b.AddFormData("file", file.filename("file"), file.ContentType, file.File)

	resp, err := s.base.Call(ctx, b, headers, result)
	if err != nil {
		return resp, err
	}
	s.logger.Debug("Document analyzed",
		logger.String("endpoint", path),
		logger.String("filename", file.filename("file")))
	return resp, nil
}

// ConvertToHTML converts a PDF, Word, image or text document to HTML
func (s *Service) ConvertToHTML(ctx context.Context, opts *ConvertToHTMLOptions) (*HTMLReturn, *core.DetailedResponse, error) {
	if err := opts.Validate(); err != nil {
		return nil, nil, err
	}
	var result HTMLReturn
	resp, err := s.analyze(ctx, "/v1/html_conversion", opts.DocumentFile, opts.Model, opts.Headers, &result)
	if err != nil {
		return nil, resp, err
	}
	return &result, resp, nil
}

// ClassifyElements analyzes the structural and semantic elements of a document
func (s *Service) ClassifyElements(ctx context.Context, opts *ClassifyElementsOptions) (*ClassifyReturn, *core.DetailedResponse, error) {
	if err := opts.Validate(); err != nil {
		return nil, nil, err
	}
	var result ClassifyReturn
	resp, err := s.analyze(ctx, "/v1/element_classification", opts.DocumentFile, opts.Model, opts.Headers, &result)
	if err != nil {
		return nil, resp, err
	}
	return &result, resp, nil
}

func (s *Service) ExtractTables(ctx context.Context, opts *ExtractTablesOptions) (*TableReturn, *core.DetailedResponse, error) {
	if err := opts.Validate(); err != nil {
		return nil, nil, err
	}
	var result TableReturn
	resp, err := s.analyze(ctx, "/v1/tables", opts.DocumentFile, opts.Model, opts.Headers, &result)
	if err != nil {
		return nil, resp, err
	}
	return &result, resp, nil
}

// CompareDocuments aligns the elements of two documents
func (s *Service) CompareDocuments(ctx context.Context, opts *CompareDocumentsOptions) (*CompareReturn, *core.DetailedResponse, error) {
	if err := opts.Validate(); err != nil {
		return nil, nil, err
	}
	b, err := s.newRequest(http.MethodPost, "/v1/comparison", nil)
	if err != nil {
		return nil, nil, err
	}
	b.Optional().
		String("file_1_label", opts.File1Label).
		String("file_2_label", opts.File2Label).
		String("model", opts.Model)
	b.AddFormData("file_1", opts.File1.filename("file_1"), opts.File1.ContentType, opts.File1.File)
	b.AddFormData("file_2", opts.File2.filename("file_2"), opts.File2.ContentType, opts.File2.File)

	var result CompareReturn
	resp, err := s.base.Call(ctx, b, opts.Headers, &result)
	if err != nil {
		return nil, resp, err
	}
	s.logger.Debug("Documents compared",
		logger.Int("aligned", len(result.AlignedElements)),
		logger.Int("unaligned", len(result.UnalignedElements)))
	return &result, resp, nil
}

type feedbackBody struct {
	FeedbackData *FeedbackDataInput `json:"feedback_data"`
	UserID       *string            `json:"user_id,omitempty"`
	Comment      *string            `json:"comment,omitempty"`
}

func (s *Service) AddFeedback(ctx context.Context, opts *AddFeedbackOptions) (*FeedbackReturn, *core.DetailedResponse, error) {
	if err := opts.Validate(); err != nil {
		return nil, nil, err
	}
	b, err := s.newRequest(http.MethodPost, "/v1/feedback", nil)
	if err != nil {
		return nil, nil, err
	}
	b.SetBodyContentJSON(feedbackBody{
		FeedbackData: opts.FeedbackData,
		UserID:       opts.UserID,
		Comment:      opts.Comment,
	})

	var result FeedbackReturn
	resp, err := s.base.Call(ctx, b, opts.Headers, &result)
	if err != nil {
		return nil, resp, err
	}
	return &result, resp, nil
}

func (s *Service) ListFeedback(ctx context.Context, opts *ListFeedbackOptions) (*FeedbackList, *core.DetailedResponse, error) {
	if opts == nil {
		opts = &ListFeedbackOptions{}
	}
	b, err := s.newRequest(http.MethodGet, "/v1/feedback", nil)
	if err != nil {
		return nil, nil, err
	}
	b.Optional().
		String("feedback_type", opts.FeedbackType).
		String("before", opts.Before).
		String("after", opts.After).
		String("document_title", opts.DocumentTitle).
		String("model_id", opts.ModelID).
		String("model_version", opts.ModelVersion).
		String("category_removed", opts.CategoryRemoved).
		String("category_added", opts.CategoryAdded).
		String("category_not_changed", opts.CategoryNotChanged).
		String("type_removed", opts.TypeRemoved).
		String("type_added", opts.TypeAdded).
		String("type_not_changed", opts.TypeNotChanged).
		Int64("page_limit", opts.PageLimit).
		String("cursor", opts.Cursor).
		String("sort", opts.Sort).
		Bool("include_total", opts.IncludeTotal)

	var result FeedbackList
	resp, err := s.base.Call(ctx, b, opts.Headers, &result)
	if err != nil {
		return nil, resp, err
	}
	return &result, resp, nil
}

func (s *Service) GetFeedback(ctx context.Context, opts *GetFeedbackOptions) (*GetFeedback, *core.DetailedResponse, error) {
	if err := opts.Validate(); err != nil {
		return nil, nil, err
	}
	b, err := s.newRequest(http.MethodGet, "/v1/feedback/{feedback_id}",
		map[string]string{"feedback_id": opts.FeedbackID})
	if err != nil {
		return nil, nil, err
	}
	b.Optional().String("model", opts.Model)

	var result GetFeedback
	resp, err := s.base.Call(ctx, b, opts.Headers, &result)
	if err != nil {
		return nil, resp, err
	}
	return &result, resp, nil
}

func (s *Service) DeleteFeedback(ctx context.Context, opts *DeleteFeedbackOptions) (*FeedbackDeleted, *core.DetailedResponse, error) {
	if err := opts.Validate(); err != nil {
		return nil, nil, err
	}
	b, err := s.newRequest(http.MethodDelete, "/v1/feedback/{feedback_id}",
		map[string]string{"feedback_id": opts.FeedbackID})
	if err != nil {
		return nil, nil, err
	}
	b.Optional().String("model", opts.Model)

	var result FeedbackDeleted
	resp, err := s.base.Call(ctx, b, opts.Headers, &result)
	if err != nil {
		return nil, resp, err
	}
	return &result, resp, nil
}

// CreateBatch submits a Cloud Object Storage bucket for batch processing
func (s *Service) CreateBatch(ctx context.Context, opts *CreateBatchOptions) (*BatchStatus, *core.DetailedResponse, error) {
	if err := opts.Validate(); err != nil {
		return nil, nil, err
	}
	b, err := s.newRequest(http.MethodPost, "/v1/batches", nil)
	if err != nil {
		return nil, nil, err
	}
	b.AddQuery("function", opts.Function)
	b.Optional().String("model", opts.Model)
	b.AddFormData("input_credentials_file", "input_credentials.json", "application/json", opts.InputCredentialsFile)
	b.AddFormData("input_bucket_location", "", "", strings.NewReader(opts.InputBucketLocation))
	b.AddFormData("input_bucket_name", "", "", strings.NewReader(opts.InputBucketName))
	b.AddFormData("output_credentials_file", "output_credentials.json", "application/json", opts.OutputCredentialsFile)
	b.AddFormData("output_bucket_location", "", "", strings.NewReader(opts.OutputBucketLocation))
	b.AddFormData("output_bucket_name", "", "", strings.NewReader(opts.OutputBucketName))

	var result BatchStatus
	resp, err := s.base.Call(ctx, b, opts.Headers, &result)
	if err != nil {
		return nil, resp, err
	}
	s.logger.Info("Batch created",
		logger.String("function", opts.Function),
		logger.String("input_bucket", opts.InputBucketName))
	return &result, resp, nil
}

func (s *Service) ListBatches(ctx context.Context, opts *ListBatchesOptions) (*Batches, *core.DetailedResponse, error) {
	if opts == nil {
		opts = &ListBatchesOptions{}
	}
	b, err := s.newRequest(http.MethodGet, "/v1/batches", nil)
	if err != nil {
		return nil, nil, err
	}

	var result Batches
	resp, err := s.base.Call(ctx, b, opts.Headers, &result)
	if err != nil {
		return nil, resp, err
	}
	return &result, resp, nil
}

func (s *Service) GetBatch(ctx context.Context, opts *GetBatchOptions) (*BatchStatus, *core.DetailedResponse, error) {
	if err := opts.Validate(); err != nil {
		return nil, nil, err
	}
	b, err := s.newRequest(http.MethodGet, "/v1/batches/{batch_id}",
		map[string]string{"batch_id": opts.BatchID})
	if err != nil {
		return nil, nil, err
	}

	var result BatchStatus
	resp, err := s.base.Call(ctx, b, opts.Headers, &result)
	if err != nil {
		return nil, resp, err
	}
	return &result, resp, nil
}

// UpdateBatch rescans or cancels a batch
func (s *Service) UpdateBatch(ctx context.Context, opts *UpdateBatchOptions) (*BatchStatus, *core.DetailedResponse, error) {
	if err := opts.Validate(); err != nil {
		return nil, nil, err
	}
	b, err := s.newRequest(http.MethodPut, "/v1/batches/{batch_id}",
		map[string]string{"batch_id": opts.BatchID})
	if err != nil {
		return nil, nil, err
	}
	b.AddQuery("action", opts.Action)
	b.Optional().String("model", opts.Model)

	var result BatchStatus
	resp, err := s.base.Call(ctx, b, opts.Headers, &result)
	if err != nil {
		return nil, resp, err
	}
	return &result, resp, nil
}
