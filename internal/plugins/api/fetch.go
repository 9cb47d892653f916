package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/net/html/charset"

	"github.com/nagusamecs/opennotes-desktop/host/internal/shared/types"
)

// Envelope is the fetch outcome handed back to the webview. A non-2xx
// status is still a successful invocation; OK just reports the class.
type Envelope struct {
	Status uint16 `json:"status"`
	Body   string `json:"body"`
	OK     bool   `json:"ok"`
}

// ToMap converts the envelope to an invocation data map
func (e Envelope) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"status": e.Status,
		"body":   e.Body,
		"ok":     e.OK,
	}
}

// normalizeMethod maps the optional method parameter onto the wire method.
// Matching is case-insensitive; anything unrecognized falls back to GET, so
// only these four methods can ever go out.
func normalizeMethod(method string) string {
	switch strings.ToUpper(method) {
	case http.MethodPost:
		return http.MethodPost
	case http.MethodPut:
		return http.MethodPut
	case http.MethodDelete:
		return http.MethodDelete
	default:
		return http.MethodGet
	}
}

// fetch performs the proxied request. The url is used exactly as supplied;
// no request body is sent regardless of method.
func (p *Provider) fetch(ctx context.Context, params map[string]interface{}, invCtx *types.Context) (*types.Result, error) {
	url, err := types.GetString(params, "url", true)
	if err != nil {
		return types.Failure(err.Error())
	}

	methodParam, err := types.GetString(params, "method", false)
	if err != nil {
		return types.Failure(err.Error())
	}
	method := normalizeMethod(methodParam)

	start := time.Now()

	resp, err := p.client.resty.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Execute(method, url)
	if err != nil {
		p.recordFetch(method, "transport_error", time.Since(start))
		return types.Failure(fmt.Sprintf("Request failed: %v", err))
	}

	raw := resp.RawBody()
	defer raw.Close()

	body, err := decodeBody(raw, resp.Header().Get("Content-Type"))
	if err != nil {
		p.recordFetch(method, "decode_error", time.Since(start))
		return types.Failure(fmt.Sprintf("Failed to read body: %v", err))
	}

	p.recordFetch(method, "success", time.Since(start))

	env := Envelope{
		Status: uint16(resp.StatusCode()),
		Body:   body,
		OK:     resp.IsSuccess(),
	}
	return types.Success(env.ToMap())
}

// decodeBody reads the raw response body as text. Read errors, charset
// conversion errors, and non-UTF-8 results all fail decoding.
func decodeBody(r io.Reader, contentType string) (string, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}

	if name := charsetName(contentType); name != "" && !strings.EqualFold(name, "utf-8") {
		converted, err := charset.NewReader(bytes.NewReader(raw), contentType)
		if err != nil {
			return "", err
		}
		raw, err = io.ReadAll(converted)
		if err != nil {
			return "", err
		}
	}

	if !utf8.Valid(raw) {
		return "", errors.New("response body is not valid UTF-8 text")
	}

	return string(raw), nil
}

// charsetName extracts the charset parameter from a Content-Type value
func charsetName(contentType string) string {
	if contentType == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return params["charset"]
}
