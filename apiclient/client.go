package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	"github.com/jrsteele09/go-catalog-admin/internal/errors"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
)

// Client talks to the catalog backend. Every call is a single attempt; the
// backend owns retries and reliability.
type Client struct {
	rest *resty.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	rest := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetJSONMarshaler(json.Marshal).
		SetJSONUnmarshaler(json.Unmarshal)
	return &Client{rest: rest}
}

// Request describes one backend call. JSON and Form are mutually exclusive.
type Request struct {
	Method string
	Path   string
	Token  string
	Query  map[string]string
	JSON   any
	Form   map[string]string
	Result any
}

// APIError is a response with status >= 400.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Error %d: %s", e.StatusCode, e.Message())
}

// Message is the server supplied detail, or a generic fallback.
func (e *APIError) Message() string {
	if e.Detail == "" {
		return "Unknown error"
	}
	return e.Detail
}

func (e *APIError) Unwrap() error {
	return errors.ErrBackendRejected
}

// NetworkError is a transport failure: the backend was never reached or never answered.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("Network error: %s", e.Err)
}

func (e *NetworkError) Unwrap() []error {
	return []error{errors.ErrNetwork, e.Err}
}

// Do performs the request and decodes a 2xx body into req.Result when set.
func (c *Client) Do(ctx context.Context, req Request) error {
	r := c.rest.R().SetContext(ctx)
	if req.Token != "" {
		r.SetAuthToken(req.Token)
	}
	if len(req.Query) > 0 {
		r.SetQueryParams(req.Query)
	}
	switch {
	case req.Form != nil:
		r.SetFormData(req.Form)
	case req.JSON != nil:
		r.SetHeader("Content-Type", "application/json").SetBody(req.JSON)
	}

	resp, err := r.Execute(req.Method, req.Path)
	if err != nil {
		log.Warn().Err(err).Str("method", req.Method).Str("path", req.Path).Msg("backend unreachable")
		return &NetworkError{Err: err}
	}
	if err := checkResponse(resp); err != nil {
		log.Warn().Err(err).Str("method", req.Method).Str("path", req.Path).Msg("backend rejected request")
		return err
	}

	if req.Result == nil || len(resp.Body()) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), req.Result); err != nil {
		return errors.Wrapf(err, "decoding %s %s response", req.Method, req.Path)
	}
	return nil
}

func checkResponse(resp *resty.Response) error {
	if resp.StatusCode() < http.StatusBadRequest {
		return nil
	}
	return &APIError{StatusCode: resp.StatusCode(), Detail: detailFromBody(resp.String())}
}

// detailFromBody reads the "detail" field. Validation failures arrive as a list of
// {"loc", "msg"} objects and are joined; non JSON bodies are returned as-is.
func detailFromBody(body string) string {
	body = strings.TrimSpace(body)
	if body == "" {
		return ""
	}
	if !gjson.Valid(body) {
		return body
	}

	detail := gjson.Get(body, "detail")
	switch {
	case !detail.Exists():
		return ""
	case detail.IsArray():
		var msgs []string
		for _, m := range detail.Get("#.msg").Array() {
			msgs = append(msgs, m.String())
		}
		if len(msgs) == 0 {
			return detail.Raw
		}
		return strings.Join(msgs, "; ")
	case detail.IsObject():
		return detail.Raw
	default:
		return detail.String()
	}
}

// Message turns any error from this package into text suitable for the operator.
func Message(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	return err.Error()
}
