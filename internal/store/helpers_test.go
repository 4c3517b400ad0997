package store

import (
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/zhaohz/homeseek/internal/api"
)

// roundTripperFunc lets tests stub the transport of an http.Client.
type roundTripperFunc func(req *http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func newClients(fn roundTripperFunc) *api.Clients {
	h := &http.Client{Transport: fn, Timeout: 5 * time.Second}
	return api.NewClients(api.NewClient("http://test/api", api.WithHTTPClient(h)))
}

func jsonResp(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": {"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func testLogger() *zap.Logger { return zap.NewNop() }
