package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/zhaohz/homeseek/internal/models"
)

// roundTripperFunc lets tests stub the transport of an http.Client.
type roundTripperFunc func(req *http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func newTestClients(fn roundTripperFunc) *Clients {
	h := &http.Client{Transport: fn, Timeout: time.Second}
	return NewClients(NewClient("http://example.com/api", WithHTTPClient(h)))
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": {"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestLogin_BuildsRequest(t *testing.T) {
	var captured *http.Request
	clients := newTestClients(func(req *http.Request) (*http.Response, error) {
		captured = req
		return jsonResponse(200, `{"userId":7,"username":"alice","message":"ok"}`), nil
	})

	resp, err := clients.Auth.Login(context.Background(), models.LoginRequest{
		Username: "alice", Password: "x",
	})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if resp.UserID == nil || *resp.UserID != 7 {
		t.Errorf("unexpected response: %+v", resp)
	}

	if captured.Method != http.MethodPost || captured.URL.String() != "http://example.com/api/login" {
		t.Errorf("unexpected request: %s %s", captured.Method, captured.URL)
	}
	if ct := captured.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	if captured.Header.Get("X-Request-Id") == "" {
		t.Error("missing X-Request-Id header")
	}
	body, _ := io.ReadAll(captured.Body)
	if !strings.Contains(string(body), `"username":"alice"`) {
		t.Errorf("unexpected body: %s", body)
	}
}

func TestLogin_MissingUserID(t *testing.T) {
	clients := newTestClients(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(200, `{"message":"ok"}`), nil
	})
	resp, err := clients.Auth.Login(context.Background(), models.LoginRequest{})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	// no client-side validation at this layer: the store decides
	if resp.UserID != nil {
		t.Errorf("expected nil UserID, got %v", *resp.UserID)
	}
}

func TestDo_HTTPError(t *testing.T) {
	clients := newTestClients(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(401, `{"message":"bad credentials"}`), nil
	})
	_, err := clients.Auth.Login(context.Background(), models.LoginRequest{})
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *api.Error, got %v", err)
	}
	if apiErr.StatusCode != 401 || apiErr.Message != "bad credentials" {
		t.Errorf("unexpected error: %+v", apiErr)
	}
}

func TestDo_ErrorBodyFallsBackToErrorKey(t *testing.T) {
	clients := newTestClients(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(500, `{"error":"boom"}`), nil
	})
	_, err := clients.Auth.HomeOverview(context.Background())
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *api.Error, got %v", err)
	}
	if apiErr.Message != "boom" {
		t.Errorf("Message = %q, want boom", apiErr.Message)
	}
}

func TestDo_NetworkError(t *testing.T) {
	clients := newTestClients(func(req *http.Request) (*http.Response, error) {
		return nil, errors.New("connection refused")
	})
	_, err := clients.Query.SearchProperties(context.Background(), models.QueryParams{})
	if err == nil || !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("expected transport error, got %v", err)
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		t.Error("transport failure must not be an *api.Error")
	}
}

func TestSearchProperties_EncodesFilters(t *testing.T) {
	var captured *http.Request
	clients := newTestClients(func(req *http.Request) (*http.Response, error) {
		captured = req
		return jsonResponse(200, `{"items":[],"count":0,"message":"ok"}`), nil
	})

	_, err := clients.Query.SearchProperties(context.Background(), models.QueryParams{
		Keyword:     "loft",
		District:    "Nanshan",
		MinPrice:    100,
		MaxBedrooms: 3,
		Status:      "for_sale",
	})
	if err != nil {
		t.Fatalf("SearchProperties failed: %v", err)
	}

	q := captured.URL.Query()
	if q.Get("keyword") != "loft" || q.Get("district") != "Nanshan" {
		t.Errorf("unexpected query: %s", captured.URL.RawQuery)
	}
	if q.Get("minPrice") != "100" || q.Get("maxBedrooms") != "3" || q.Get("status") != "for_sale" {
		t.Errorf("unexpected query: %s", captured.URL.RawQuery)
	}
	if q.Has("maxPrice") || q.Has("minBedrooms") {
		t.Errorf("zero filters must be omitted: %s", captured.URL.RawQuery)
	}
}

func TestFavorite_QueryParams(t *testing.T) {
	tests := []struct {
		name   string
		call   func(c *Clients, ctx context.Context) error
		method string
	}{
		{
			name: "add",
			call: func(c *Clients, ctx context.Context) error {
				_, err := c.Query.AddFavorite(ctx, 7, 101)
				return err
			},
			method: http.MethodPost,
		},
		{
			name: "remove",
			call: func(c *Clients, ctx context.Context) error {
				_, err := c.Query.RemoveFavorite(ctx, 7, 101)
				return err
			},
			method: http.MethodDelete,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var captured *http.Request
			clients := newTestClients(func(req *http.Request) (*http.Response, error) {
				captured = req
				return jsonResponse(200, `{"message":"ok","userId":7,"propertyId":101}`), nil
			})
			if err := tt.call(clients, context.Background()); err != nil {
				t.Fatalf("call failed: %v", err)
			}
			if captured.Method != tt.method || captured.URL.Path != "/api/query/favorite" {
				t.Errorf("unexpected request: %s %s", captured.Method, captured.URL)
			}
			q := captured.URL.Query()
			if q.Get("userId") != "7" || q.Get("propertyId") != "101" {
				t.Errorf("unexpected query: %s", captured.URL.RawQuery)
			}
		})
	}
}

func TestMyProfile_UserIDParam(t *testing.T) {
	var captured *http.Request
	clients := newTestClients(func(req *http.Request) (*http.Response, error) {
		captured = req
		return jsonResponse(200, `{"profile":{"userId":7,"username":"alice"},"message":"ok"}`), nil
	})
	resp, err := clients.Auth.MyProfile(context.Background(), 7)
	if err != nil {
		t.Fatalf("MyProfile failed: %v", err)
	}
	if captured.URL.Path != "/api/home/me" || captured.URL.Query().Get("userId") != "7" {
		t.Errorf("unexpected request URL: %s", captured.URL)
	}
	if resp.Profile == nil || resp.Profile.UserID != 7 {
		t.Errorf("unexpected profile: %+v", resp.Profile)
	}
}
