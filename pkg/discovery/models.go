package discovery

import (
	"time"

	"github.com/yegors/watson-go/pkg/core"
)

// Environment statuses
const (
	EnvironmentStatusActive      = "active"
	EnvironmentStatusPending     = "pending"
	EnvironmentStatusMaintenance = "maintenance"
)

// Document statuses
const (
	DocumentStatusAvailable            = "available"
	DocumentStatusAvailableWithNotices = "available with notices"
	DocumentStatusFailed               = "failed"
	DocumentStatusProcessing           = "processing"
	DocumentStatusPending              = "pending"
)

type DiskUsage struct {
	UsedBytes    *int64 `json:"used_bytes,omitempty"`
	MaximumBytes *int64 `json:"maximum_allowed_bytes,omitempty"`
}

type EnvironmentDocuments struct {
	Indexed        *int64 `json:"indexed,omitempty"`
	MaximumAllowed *int64 `json:"maximum_allowed,omitempty"`
}

type IndexCapacity struct {
	Documents   *EnvironmentDocuments `json:"documents,omitempty"`
	DiskUsage   *DiskUsage            `json:"disk_usage,omitempty"`
	Collections *core.DynamicModel    `json:"collections,omitempty"`
}

type Environment struct {
	EnvironmentID *string        `json:"environment_id,omitempty"`
	Name          *string        `json:"name,omitempty"`
	Description   *string        `json:"description,omitempty"`
	Created       *time.Time     `json:"created,omitempty"`
	Updated       *time.Time     `json:"updated,omitempty"`
	Status        *string        `json:"status,omitempty"`
	ReadOnly      *bool          `json:"read_only,omitempty"`
	Size          *string        `json:"size,omitempty"`
	IndexCapacity *IndexCapacity `json:"index_capacity,omitempty"`
}

type ListEnvironmentsResponse struct {
	Environments []Environment `json:"environments,omitempty"`
}

type DocumentCounts struct {
	Available  *int64 `json:"available,omitempty"`
	Processing *int64 `json:"processing,omitempty"`
	Failed     *int64 `json:"failed,omitempty"`
	Pending    *int64 `json:"pending,omitempty"`
}

type Collection struct {
	CollectionID    *string         `json:"collection_id,omitempty"`
	Name            *string         `json:"name,omitempty"`
	Description     *string         `json:"description,omitempty"`
	Created         *time.Time      `json:"created,omitempty"`
	Updated         *time.Time      `json:"updated,omitempty"`
	Status          *string         `json:"status,omitempty"`
	ConfigurationID *string         `json:"configuration_id,omitempty"`
	Language        *string         `json:"language,omitempty"`
	DocumentCounts  *DocumentCounts `json:"document_counts,omitempty"`
}

type ListCollectionsResponse struct {
	Collections []Collection `json:"collections,omitempty"`
}

type DeleteCollectionResponse struct {
	CollectionID string `json:"collection_id"`
	Status       string `json:"status"`
}

// Field is one indexed field of a collection
type Field struct {
	FieldName *string `json:"field,omitempty"`
	FieldType *string `json:"type,omitempty"`
}

type ListCollectionFieldsResponse struct {
	Fields []Field `json:"fields,omitempty"`
}

type Notice struct {
	NoticeID    *string    `json:"notice_id,omitempty"`
	Created     *time.Time `json:"created,omitempty"`
	DocumentID  *string    `json:"document_id,omitempty"`
	QueryID     *string    `json:"query_id,omitempty"`
	Severity    *string    `json:"severity,omitempty"`
	Step        *string    `json:"step,omitempty"`
	Description *string    `json:"description,omitempty"`
}

// DocumentAccepted is returned by AddDocument and UpdateDocument
type DocumentAccepted struct {
	DocumentID *string  `json:"document_id,omitempty"`
	Status     *string  `json:"status,omitempty"`
	Notices    []Notice `json:"notices,omitempty"`
}

type DocumentStatus struct {
	DocumentID        string     `json:"document_id"`
	ConfigurationID   *string    `json:"configuration_id,omitempty"`
	Created           *time.Time `json:"created,omitempty"`
	Updated           *time.Time `json:"updated,omitempty"`
	Status            string     `json:"status"`
	StatusDescription string     `json:"status_description"`
	Filename          *string    `json:"filename,omitempty"`
	FileType          *string    `json:"file_type,omitempty"`
	Sha1              *string    `json:"sha1,omitempty"`
	Notices           []Notice   `json:"notices"`
}

type DeleteDocumentResponse struct {
	DocumentID *string `json:"document_id,omitempty"`
	Status     *string `json:"status,omitempty"`
}

// QueryResult is an open-schema search hit. Enriched documents carry
// arbitrary fields, so only the stable ones get typed accessors.
type QueryResult struct {
	core.DynamicModel
}

func (r QueryResult) ID() string {
	id, _ := r.GetString("id")
	return id
}

// Score returns result_metadata.score, falling back to the legacy top-level score
func (r QueryResult) Score() float64 {
	if score, ok := r.GetFloat("result_metadata.score"); ok {
		return score
	}
	score, _ := r.GetFloat("score")
	return score
}

func (r QueryResult) Metadata() core.DynamicModel {
	m, _ := r.GetModel("metadata")
	return m
}

type QueryPassage struct {
	DocumentID   *string  `json:"document_id,omitempty"`
	PassageScore *float64 `json:"passage_score,omitempty"`
	PassageText  *string  `json:"passage_text,omitempty"`
	StartOffset  *int64   `json:"start_offset,omitempty"`
	EndOffset    *int64   `json:"end_offset,omitempty"`
	Field        *string  `json:"field,omitempty"`
}

type QueryResponse struct {
	MatchingResults   *int64              `json:"matching_results,omitempty"`
	Results           []QueryResult       `json:"results,omitempty"`
	Aggregations      []core.DynamicModel `json:"aggregations,omitempty"`
	Passages          []QueryPassage      `json:"passages,omitempty"`
	DuplicatesRemoved *int64              `json:"duplicates_removed,omitempty"`
	SessionToken      *string             `json:"session_token,omitempty"`
}
