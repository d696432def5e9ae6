package core

import (
	"strconv"
	"strings"
)

func StringPtr(v string) *string    { return &v }
func BoolPtr(v bool) *bool          { return &v }
func Int64Ptr(v int64) *int64       { return &v }
func Float64Ptr(v float64) *float64 { return &v }

// QueryBuilder collects optional query params, skipping unset pointers
type QueryBuilder struct {
	b *RequestBuilder
}

func (b *RequestBuilder) Optional() QueryBuilder { return QueryBuilder{b: b} }

func (q QueryBuilder) String(name string, v *string) QueryBuilder {
	if v != nil {
		q.b.AddQuery(name, *v)
	}
	return q
}

func (q QueryBuilder) Bool(name string, v *bool) QueryBuilder {
	if v != nil {
		q.b.AddQuery(name, strconv.FormatBool(*v))
	}
	return q
}

func (q QueryBuilder) Int64(name string, v *int64) QueryBuilder {
	if v != nil {
		q.b.AddQuery(name, strconv.FormatInt(*v, 10))
	}
	return q
}

func (q QueryBuilder) Float64(name string, v *float64) QueryBuilder {
	if v != nil {
		q.b.AddQuery(name, strconv.FormatFloat(*v, 'f', -1, 64))
	}
	return q
}

func (q QueryBuilder) Strings(name string, v []string) QueryBuilder {
	q.b.AddQuerySlice(name, v)
	return q
}

// IsJSONMimeType reports whether a content type carries JSON
func IsJSONMimeType(mimeType string) bool {
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}
	return mimeType == "application/json" || strings.HasSuffix(mimeType, "+json")
}
