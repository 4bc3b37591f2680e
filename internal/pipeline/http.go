package pipeline

import (
	"io"
	"net/http"
	"net/url"
)

// HTTPRequest adapts a net/http request to Request.
type HTTPRequest struct {
	w        http.ResponseWriter
	r        *http.Request
	maxBytes int64
	query    map[string]string
	body     any
}

// NewHTTPRequest wraps r. ReadBody refuses payloads above maxBytes.
func NewHTTPRequest(w http.ResponseWriter, r *http.Request, maxBytes int64) *HTTPRequest {
	return &HTTPRequest{w: w, r: r, maxBytes: maxBytes}
}

func (h *HTTPRequest) Method() string {
	return h.r.Method
}

func (h *HTTPRequest) Path() string {
	return h.r.URL.Path
}

func (h *HTTPRequest) Header() http.Header {
	return h.r.Header
}

func (h *HTTPRequest) Query() map[string]string {
	if h.query == nil {
		h.query = LastValues(h.r.URL.Query())
	}
	return h.query
}

func (h *HTTPRequest) ReadBody() ([]byte, error) {
	if h.r.Body == nil || h.r.Body == http.NoBody {
		return nil, nil
	}

	// limit the size of the request body to prevent malicious large payloads
	body := http.MaxBytesReader(h.w, h.r.Body, h.maxBytes)
	defer body.Close()

	return io.ReadAll(body)
}

func (h *HTTPRequest) Body() any {
	return h.body
}

func (h *HTTPRequest) SetBody(body any) {
	h.body = body
}

// LastValues flattens a query string, keeping the last value of repeated keys.
func LastValues(qs url.Values) map[string]string {
	flat := make(map[string]string, len(qs))
	for key, values := range qs {
		if len(values) > 0 {
			flat[key] = values[len(values)-1]
		}
	}
	return flat
}
