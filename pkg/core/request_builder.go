package core

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
)

// FormData is one part of a multipart/form-data body
type FormData struct {
	FieldName   string
	FileName    string
	ContentType string
	Contents    io.Reader
}

// RequestBuilder accumulates the pieces of a single REST call.
type RequestBuilder struct {
	Method string
	URL    *url.URL
	Header http.Header
	Query  url.Values
	Form   []FormData

	body        io.Reader
	contentType string
	err         error
}

func NewRequestBuilder(method string) *RequestBuilder {
	return &RequestBuilder{
		Method: method,
		Header: make(http.Header),
		Query:  make(url.Values),
	}
}

// ResolveRequestURL joins the service URL with a path template such as
// "/v1/workspaces/{workspace_id}/message". Path params are escaped.
func (b *RequestBuilder) ResolveRequestURL(serviceURL, path string, pathParams map[string]string) (*RequestBuilder, error) {
	if serviceURL == "" {
		return b, &ValidationError{Field: "service_url"}
	}

	for name, value := range pathParams {
		if value == "" {
			return b, &ValidationError{Field: name}
		}
		path = strings.ReplaceAll(path, "{"+name+"}", url.PathEscape(value))
	}
	if strings.Contains(path, "{") {
		return b, fmt.Errorf("unresolved path parameter in %q", path)
	}

	u, err := url.Parse(strings.TrimRight(serviceURL, "/") + path)
	if err != nil {
		return b, fmt.Errorf("failed to parse request url: %w", err)
	}
	b.URL = u
	return b, nil
}

func (b *RequestBuilder) AddHeader(name, value string) *RequestBuilder {
	b.Header.Set(name, value)
	return b
}

func (b *RequestBuilder) AddQuery(name, value string) *RequestBuilder {
	b.Query.Add(name, value)
	return b
}

// AddQuerySlice joins values with commas, the convention the Watson APIs use
// for list-valued query params.
func (b *RequestBuilder) AddQuerySlice(name string, values []string) *RequestBuilder {
	if len(values) > 0 {
		b.Query.Set(name, strings.Join(values, ","))
	}
	return b
}

// SetBodyContentJSON marshals v as the request body
func (b *RequestBuilder) SetBodyContentJSON(v any) *RequestBuilder {
	data, err := json.Marshal(v)
	if err != nil {
		b.err = fmt.Errorf("failed to marshal request body: %w", err)
		return b
	}
	b.body = bytes.NewReader(data)
	b.contentType = "application/json"
	return b
}

// SetBodyContent streams body as-is with the given content type
func (b *RequestBuilder) SetBodyContent(contentType string, body io.Reader) *RequestBuilder {
	b.body = body
	b.contentType = contentType
	return b
}

func (b *RequestBuilder) AddFormData(fieldName, fileName, contentType string, contents io.Reader) *RequestBuilder {
	b.Form = append(b.Form, FormData{
		FieldName:   fieldName,
		FileName:    fileName,
		ContentType: contentType,
		Contents:    contents,
	})
	return b
}

// AddFormDataJSON adds a JSON-encoded metadata part
func (b *RequestBuilder) AddFormDataJSON(fieldName string, v any) *RequestBuilder {
	data, err := json.Marshal(v)
	if err != nil {
		b.err = fmt.Errorf("failed to marshal %s: %w", fieldName, err)
		return b
	}
	return b.AddFormData(fieldName, "", "application/json", bytes.NewReader(data))
}

// Build produces the http.Request. Form data wins over a plain body.
func (b *RequestBuilder) Build(ctx context.Context) (*http.Request, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.URL == nil {
		return nil, fmt.Errorf("request url was not resolved")
	}

	u := *b.URL
	if len(b.Query) > 0 {
		q := u.Query()
		for name, values := range b.Query {
			for _, v := range values {
				q.Add(name, v)
			}
		}
		u.RawQuery = q.Encode()
	}

	body, contentType := b.body, b.contentType
	if len(b.Form) > 0 {
		var err error
		body, contentType, err = encodeMultipart(b.Form)
		if err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, b.Method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	for name, values := range b.Header {
		for _, v := range values {
			req.Header.Add(name, v)
		}
	}
	if contentType != "" && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", contentType)
	}
	return req, nil
}

func encodeMultipart(parts []FormData) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, part := range parts {
		h := make(textproto.MIMEHeader)
		disposition := fmt.Sprintf(`form-data; name="%s"`, escapeQuotes(part.FieldName))
		if part.FileName != "" {
			disposition += fmt.Sprintf(`; filename="%s"`, escapeQuotes(part.FileName))
		}
		h.Set("Content-Disposition", disposition)
		if part.ContentType != "" {
			h.Set("Content-Type", part.ContentType)
		} else if part.FileName != "" {
			h.Set("Content-Type", "application/octet-stream")
		}

		pw, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create form part %s: %w", part.FieldName, err)
		}
		if part.Contents != nil {
			if _, err := io.Copy(pw, part.Contents); err != nil {
				return nil, "", fmt.Errorf("failed to write form part %s: %w", part.FieldName, err)
			}
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finish multipart body: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
