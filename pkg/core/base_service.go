package core

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/net/http/httpguts"

	"github.com/yegors/watson-go/pkg/logger"
)

// Version is reported in the User-Agent header
const Version = "0.4.0"

// ServiceOptions configures a BaseService
type ServiceOptions struct {
	URL           string
	Authenticator Authenticator
	HTTPClient    *http.Client
	Logger        *logger.Logger
	Headers       http.Header
}

// DetailedResponse carries the decoded result plus transport details
type DetailedResponse struct {
	StatusCode int
	Headers    http.Header
	Result     any
	RawResult  []byte
}

// BaseService holds what every Watson service client shares: endpoint,
// credentials, default headers and the HTTP transport.
type BaseService struct {
	url            string
	authenticator  Authenticator
	httpClient     *http.Client
	defaultHeaders http.Header
	logger         *logger.Logger
}

// NewBaseService validates opts and applies defaultURL when opts.URL is empty
func NewBaseService(opts *ServiceOptions, defaultURL string) (*BaseService, error) {
	if opts == nil {
		return nil, &ValidationError{Field: "options", Reason: "cannot be nil"}
	}
	if opts.Authenticator == nil {
		return nil, &ValidationError{Field: "authenticator", Reason: "cannot be nil"}
	}
	if err := opts.Authenticator.Validate(); err != nil {
		return nil, err
	}

	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: 60 * time.Second,
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
				DialContext: (&net.Dialer{
					Timeout:   30 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
			},
		}
	}

	s := &BaseService{
		authenticator:  opts.Authenticator,
		httpClient:     httpClient,
		defaultHeaders: make(http.Header),
		logger:         log,
	}

	serviceURL := opts.URL
	if serviceURL == "" {
		serviceURL = defaultURL
	}
	if err := s.SetServiceURL(serviceURL); err != nil {
		return nil, err
	}
	if err := s.SetDefaultHeaders(opts.Headers); err != nil {
		return nil, err
	}
	return s, nil
}

// SetServiceURL points the client at another endpoint, e.g. a regional one
func (s *BaseService) SetServiceURL(serviceURL string) error {
	if serviceURL == "" {
		return &ValidationError{Field: "service_url"}
	}
	u, err := url.Parse(serviceURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return &ValidationError{Field: "service_url", Reason: fmt.Sprintf("invalid url %q", serviceURL)}
	}
	s.url = serviceURL
	return nil
}

func (s *BaseService) ServiceURL() string { return s.url }

func (s *BaseService) Authenticator() Authenticator { return s.authenticator }

func (s *BaseService) HTTPClient() *http.Client { return s.httpClient }

func (s *BaseService) Logger() *logger.Logger { return s.logger }

// SetDefaultHeaders replaces the headers sent with every request
func (s *BaseService) SetDefaultHeaders(headers http.Header) error {
	if err := ValidateHeaders(headers); err != nil {
		return err
	}
	s.defaultHeaders = headers.Clone()
	if s.defaultHeaders == nil {
		s.defaultHeaders = make(http.Header)
	}
	return nil
}

// ValidateHeaders rejects names or values that net/http would send malformed
func ValidateHeaders(headers http.Header) error {
	for name, values := range headers {
		if !httpguts.ValidHeaderFieldName(name) {
			return &ValidationError{Field: "headers", Reason: fmt.Sprintf("invalid header name %q", name)}
		}
		for _, v := range values {
			if !httpguts.ValidHeaderFieldValue(v) {
				return &ValidationError{Field: "headers", Reason: fmt.Sprintf("invalid value for header %q", name)}
			}
		}
	}
	return nil
}

// PrepareHeaders returns default headers, per-call headers and credentials
// merged for a request to target. The websocket handshake uses it directly.
func (s *BaseService) PrepareHeaders(target string, extra http.Header) (http.Header, error) {
	if err := ValidateHeaders(extra); err != nil {
		return nil, err
	}
	req, err := http.NewRequest(http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create handshake request: %w", err)
	}
	s.applyHeaders(req, extra)
	if err := s.authenticator.Authenticate(req); err != nil {
		return nil, fmt.Errorf("failed to authenticate request: %w", err)
	}
	return req.Header, nil
}

func (s *BaseService) applyHeaders(req *http.Request, extra http.Header) {
	req.Header.Set("User-Agent", "watson-go/"+Version)
	for name, values := range s.defaultHeaders {
		req.Header[http.CanonicalHeaderKey(name)] = append([]string(nil), values...)
	}
	for name, values := range extra {
		req.Header[http.CanonicalHeaderKey(name)] = append([]string(nil), values...)
	}
}

// Request executes req and decodes a JSON answer into result. A nil result
// drops the body; an *io.ReadCloser result receives the raw stream.
func (s *BaseService) Request(req *http.Request, result any) (*DetailedResponse, error) {
	return s.RequestWithHeaders(req, nil, result)
}

// RequestWithHeaders is Request with per-call headers layered over the defaults
func (s *BaseService) RequestWithHeaders(req *http.Request, extra http.Header, result any) (*DetailedResponse, error) {
	if err := ValidateHeaders(extra); err != nil {
		return nil, err
	}
	s.applyHeaders(req, extra)
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}
	if err := s.authenticator.Authenticate(req); err != nil {
		return nil, fmt.Errorf("failed to authenticate request: %w", err)
	}

	start := time.Now()
	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.Debug("Watson request failed",
			logger.String("method", req.Method),
			logger.String("url", req.URL.Redacted()),
			logger.Error(err))
		return nil, fmt.Errorf("failed to execute HTTP request: %w", err)
	}

	s.logger.Debug("Watson request",
		logger.String("method", req.Method),
		logger.String("url", req.URL.Redacted()),
		logger.Int("status", resp.StatusCode),
		logger.Duration("duration", time.Since(start)))

	detailed := &DetailedResponse{StatusCode: resp.StatusCode, Headers: resp.Header}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		body, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			s.logger.Error("Failed to read error response body", logger.Error(readErr))
		}
		return detailed, newServiceResponseError(resp, body)
	}

	if stream, ok := result.(*io.ReadCloser); ok {
		*stream = resp.Body
		detailed.Result = resp.Body
		return detailed, nil
	}

	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return detailed, fmt.Errorf("failed to read response body: %w", err)
	}
	detailed.RawResult = body

	if result == nil || len(body) == 0 {
		return detailed, nil
	}
	if err := json.Unmarshal(body, result); err != nil {
		return detailed, fmt.Errorf("failed to decode response: %w", err)
	}
	detailed.Result = result
	return detailed, nil
}

// Validator is implemented by every option object
type Validator interface {
	Validate() error
}

// Call builds b and executes it
func (s *BaseService) Call(ctx context.Context, b *RequestBuilder, headers http.Header, result any) (*DetailedResponse, error) {
	req, err := b.Build(ctx)
	if err != nil {
		return nil, err
	}
	return s.RequestWithHeaders(req, headers, result)
}
