// Package discovery is a client for the Watson Discovery v1 API:
// environments, collections, document ingestion and search.
package discovery

import (
	"context"
	"io"
	"net/http"

	"github.com/yegors/watson-go/pkg/core"
	"github.com/yegors/watson-go/pkg/logger"
)

const DefaultServiceURL = "https://gateway.watsonplatform.net/discovery/api"

// Options configures the service client. Version is the API version date,
// e.g. "2018-08-01".
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
		logger:  base.Logger().Named("discovery"),
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

func collectionParams(environmentID, collectionID string) map[string]string {
	return map[string]string{"environment_id": environmentID, "collection_id": collectionID}
}

func (s *Service) ListEnvironments(ctx context.Context, opts *ListEnvironmentsOptions) (*ListEnvironmentsResponse, *core.DetailedResponse, error) {
	if opts == nil {
		opts = &ListEnvironmentsOptions{}
	}
	b, err := s.newRequest(http.MethodGet, "/v1/environments", nil)
	if err != nil {
		return nil, nil, err
	}
	b.Optional().String("name", opts.Name)

	var result ListEnvironmentsResponse
	resp, err := s.base.Call(ctx, b, opts.Headers, &result)
	if err != nil {
		return nil, resp, err
	}
	return &result, resp, nil
}

func (s *Service) GetEnvironment(ctx context.Context, opts *GetEnvironmentOptions) (*Environment, *core.DetailedResponse, error) {
	if err := opts.Validate(); err != nil {
		return nil, nil, err
	}
	b, err := s.newRequest(http.MethodGet, "/v1/environments/{environment_id}",
		map[string]string{"environment_id": opts.EnvironmentID})
	if err != nil {
		return nil, nil, err
	}

	var result Environment
	resp, err := s.base.Call(ctx, b, opts.Headers, &result)
	if err != nil {
		return nil, resp, err
	}
	return &result, resp, nil
}

func (s *Service) ListCollections(ctx context.Context, opts *ListCollectionsOptions) (*ListCollectionsResponse, *core.DetailedResponse, error) {
	if err := opts.Validate(); err != nil {
		return nil, nil, err
	}
	b, err := s.newRequest(http.MethodGet, "/v1/environments/{environment_id}/collections",
		map[string]string{"environment_id": opts.EnvironmentID})
	if err != nil {
		return nil, nil, err
	}
	b.Optional().String("name", opts.Name)

	var result ListCollectionsResponse
	resp, err := s.base.Call(ctx, b, opts.Headers, &result)
	if err != nil {
		return nil, resp, err
	}
	return &result, resp, nil
}

type collectionBody struct {
	Name            string  `json:"name"`
	Description     *string `json:"description,omitempty"`
	ConfigurationID *string `json:"configuration_id,omitempty"`
	Language        *string `json:"language,omitempty"`
}

func (s *Service) CreateCollection(ctx context.Context, opts *CreateCollectionOptions) (*Collection, *core.DetailedResponse, error) {
	if err := opts.Validate(); err != nil {
		return nil, nil, err
	}
	b, err := s.newRequest(http.MethodPost, "/v1/environments/{environment_id}/collections",
		map[string]string{"environment_id": opts.EnvironmentID})
	if err != nil {
		return nil, nil, err
	}
	b.SetBodyContentJSON(collectionBody{
		Name:            opts.Name,
		Description:     opts.Description,
		ConfigurationID: opts.ConfigurationID,
		Language:        opts.Language,
	})

	var result Collection
	resp, err := s.base.Call(ctx, b, opts.Headers, &result)
	if err != nil {
		return nil, resp, err
	}
	s.logger.Info("Collection created",
		logger.String("environment_id", opts.EnvironmentID),
		logger.String("name", opts.Name))
	return &result, resp, nil
}

func (s *Service) GetCollection(ctx context.Context, opts *CollectionOptions) (*Collection, *core.DetailedResponse, error) {
	if err := opts.Validate(); err != nil {
		return nil, nil, err
	}
	b, err := s.newRequest(http.MethodGet, "/v1/environments/{environment_id}/collections/{collection_id}",
		collectionParams(opts.EnvironmentID, opts.CollectionID))
	if err != nil {
		return nil, nil, err
	}

	var result Collection
	resp, err := s.base.Call(ctx, b, opts.Headers, &result)
	if err != nil {
		return nil, resp, err
	}
	return &result, resp, nil
}

func (s *Service) DeleteCollection(ctx context.Context, opts *CollectionOptions) (*DeleteCollectionResponse, *core.DetailedResponse, error) {
	if err := opts.Validate(); err != nil {
		return nil, nil, err
	}
	b, err := s.newRequest(http.MethodDelete, "/v1/environments/{environment_id}/collections/{collection_id}",
		collectionParams(opts.EnvironmentID, opts.CollectionID))
	if err != nil {
		return nil, nil, err
	}

	var result DeleteCollectionResponse
	resp, err := s.base.Call(ctx, b, opts.Headers, &result)
	if err != nil {
		return nil, resp, err
	}
	return &result, resp, nil
}

func (s *Service) ListCollectionFields(ctx context.Context, opts *CollectionOptions) (*ListCollectionFieldsResponse, *core.DetailedResponse, error) {
	if err := opts.Validate(); err != nil {
		return nil, nil, err
	}
	b, err := s.newRequest(http.MethodGet, "/v1/environments/{environment_id}/collections/{collection_id}/fields",
		collectionParams(opts.EnvironmentID, opts.CollectionID))
	if err != nil {
		return nil, nil, err
	}

	var result ListCollectionFieldsResponse
	resp, err := s.base.Call(ctx, b, opts.Headers, &result)
	if err != nil {
		return nil, resp, err
	}
	return &result, resp, nil
}

func addDocumentParts(b *core.RequestBuilder, file io.Reader, filename, contentType *string, metadata *core.DynamicModel) {
	if file != nil {
		name := "file"
		if filename != nil && *filename != "" {
			name = *filename
		}
		ct := ""
		if contentType != nil {
			ct = *contentType
		}
		b.AddFormData("file", name, ct, file)
	}
	if metadata != nil {
		b.AddFormDataJSON("metadata", *metadata)
	}
}

// AddDocument uploads a document and/or its metadata for ingestion
func (s *Service) AddDocument(ctx context.Context, opts *AddDocumentOptions) (*DocumentAccepted, *core.DetailedResponse, error) {
	if err := opts.Validate(); err != nil {
		return nil, nil, err
	}
	b, err := s.newRequest(http.MethodPost, "/v1/environments/{environment_id}/collections/{collection_id}/documents",
		collectionParams(opts.EnvironmentID, opts.CollectionID))
	if err != nil {
		return nil, nil, err
	}
	addDocumentParts(b, opts.File, opts.Filename, opts.FileContentType, opts.Metadata)

	var result DocumentAccepted
	resp, err := s.base.Call(ctx, b, opts.Headers, &result)
	if err != nil {
		return nil, resp, err
	}
	if result.DocumentID != nil {
		s.logger.Debug("Document accepted",
			logger.String("collection_id", opts.CollectionID),
			logger.String("document_id", *result.DocumentID))
	}
	return &result, resp, nil
}

// UpdateDocument replaces an existing document
func (s *Service) UpdateDocument(ctx context.Context, opts *UpdateDocumentOptions) (*DocumentAccepted, *core.DetailedResponse, error) {
	if err := opts.Validate(); err != nil {
		return nil, nil, err
	}
	params := collectionParams(opts.EnvironmentID, opts.CollectionID)
	params["document_id"] = opts.DocumentID
	b, err := s.newRequest(http.MethodPost, "/v1/environments/{environment_id}/collections/{collection_id}/documents/{document_id}", params)
	if err != nil {
		return nil, nil, err
	}
	addDocumentParts(b, opts.File, opts.Filename, opts.FileContentType, opts.Metadata)

	var result DocumentAccepted
	resp, err := s.base.Call(ctx, b, opts.Headers, &result)
	if err != nil {
		return nil, resp, err
	}
	return &result, resp, nil
}

func (s *Service) GetDocumentStatus(ctx context.Context, opts *DocumentOptions) (*DocumentStatus, *core.DetailedResponse, error) {
	if err := opts.Validate(); err != nil {
		return nil, nil, err
	}
	params := collectionParams(opts.EnvironmentID, opts.CollectionID)
	params["document_id"] = opts.DocumentID
	b, err := s.newRequest(http.MethodGet, "/v1/environments/{environment_id}/collections/{collection_id}/documents/{document_id}", params)
	if err != nil {
		return nil, nil, err
	}

	var result DocumentStatus
	resp, err := s.base.Call(ctx, b, opts.Headers, &result)
	if err != nil {
		return nil, resp, err
	}
	return &result, resp, nil
}

func (s *Service) DeleteDocument(ctx context.Context, opts *DocumentOptions) (*DeleteDocumentResponse, *core.DetailedResponse, error) {
	if err := opts.Validate(); err != nil {
		return nil, nil, err
	}
	params := collectionParams(opts.EnvironmentID, opts.CollectionID)
	params["document_id"] = opts.DocumentID
	b, err := s.newRequest(http.MethodDelete, "/v1/environments/{environment_id}/collections/{collection_id}/documents/{document_id}", params)
	if err != nil {
		return nil, nil, err
	}

	var result DeleteDocumentResponse
	resp, err := s.base.Call(ctx, b, opts.Headers, &result)
	if err != nil {
		return nil, resp, err
	}
	return &result, resp, nil
}

// Query searches a collection
func (s *Service) Query(ctx context.Context, opts *QueryOptions) (*QueryResponse, *core.DetailedResponse, error) {
	if err := opts.Validate(); err != nil {
		return nil, nil, err
	}
	b, err := s.newRequest(http.MethodGet, "/v1/environments/{environment_id}/collections/{collection_id}/query",
		collectionParams(opts.EnvironmentID, opts.CollectionID))
	if err != nil {
		return nil, nil, err
	}
	b.Optional().
		String("filter", opts.Filter).
		String("query", opts.Query).
		String("natural_language_query", opts.NaturalLanguageQuery).
		Bool("passages", opts.Passages).
		String("aggregation", opts.Aggregation).
		Int64("count", opts.Count).
		Strings("return", opts.Return).
		Int64("offset", opts.Offset).
		Strings("sort", opts.Sort).
		Bool("highlight", opts.Highlight).
		Bool("deduplicate", opts.Deduplicate).
		String("deduplicate.field", opts.DeduplicateField)

	var result QueryResponse
	resp, err := s.base.Call(ctx, b, opts.Headers, &result)
	if err != nil {
		return nil, resp, err
	}

	matching := int64(0)
	if result.MatchingResults != nil {
		matching = *result.MatchingResults
	}
	s.logger.Debug("Query completed",
		logger.String("collection_id", opts.CollectionID),
		logger.Int64("matching_results", matching),
		logger.Int("returned", len(result.Results)))
	return &result, resp, nil
}
