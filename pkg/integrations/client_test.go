package integrations

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/keggrest/kegg/pkg/cache"
	kerrors "github.com/keggrest/kegg/pkg/errors"
	"github.com/keggrest/kegg/pkg/httputil"
)

func TestNewClient(t *testing.T) {
	c, _ := cache.NewFileCache(t.TempDir())
	defer c.Close()

	headers := map[string]string{"User-Agent": "kegg-test"}
	client := NewClient(c, "kegg", time.Hour, WithHeaders(headers))

	if client == nil {
		t.Fatal("NewClient() returned nil")
	}
	if client.http == nil {
		t.Error("NewClient() http client is nil")
	}
	if client.cache != c {
		t.Error("NewClient() cache not set correctly")
	}
	if client.headers["User-Agent"] != "kegg-test" {
		t.Error("NewClient() headers not set correctly")
	}
	if client.attempts != 1 {
		t.Errorf("NewClient() attempts = %d, want 1", client.attempts)
	}
	if client.http.Timeout != DefaultTimeout {
		t.Errorf("NewClient() timeout = %v, want %v", client.http.Timeout, DefaultTimeout)
	}
}

func TestNewClientNilCache(t *testing.T) {
	client := NewClient(nil, "kegg", 0)
	if _, ok := client.cache.(*cache.NullCache); !ok {
		t.Errorf("NewClient(nil) cache = %T, want *cache.NullCache", client.cache)
	}
}

func TestClientOptions(t *testing.T) {
	client := NewClient(nil, "kegg", 0,
		WithTimeout(5*time.Second),
		WithRetry(3, time.Millisecond),
		WithRefresh(true),
	)
	if client.http.Timeout != 5*time.Second {
		t.Errorf("timeout = %v, want 5s", client.http.Timeout)
	}
	if client.attempts != 3 || client.delay != time.Millisecond {
		t.Errorf("retry = (%d, %v), want (3, 1ms)", client.attempts, client.delay)
	}
	if !client.refresh {
		t.Error("refresh should be set")
	}

	client = NewClient(nil, "kegg", 0, WithRetry(0, 0))
	if client.attempts != 1 {
		t.Errorf("WithRetry(0) attempts = %d, want 1", client.attempts)
	}
}

func TestWithTimeoutKeepsSharedClient(t *testing.T) {
	shared := &http.Client{Timeout: time.Minute}
	client := NewClient(nil, "kegg", 0, WithHTTPClient(shared), WithTimeout(5*time.Second))

	if shared.Timeout != time.Minute {
		t.Errorf("shared client timeout = %v, want 1m", shared.Timeout)
	}
	if client.http.Timeout != 5*time.Second {
		t.Errorf("client timeout = %v, want 5s", client.http.Timeout)
	}
	if client.http == shared {
		t.Error("WithTimeout should not modify the caller's http.Client")
	}
}

func TestClientGetText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		w.Write([]byte("\n  path:map00010\tGlycolysis  \n\n"))
	}))
	defer server.Close()

	client := NewClient(nil, "kegg", 0, WithHTTPClient(server.Client()))

	text, err := client.GetText(context.Background(), server.URL+"/list/pathway")
	if err != nil {
		t.Fatalf("GetText() error: %v", err)
	}
	if want := "path:map00010\tGlycolysis"; text != want {
		t.Errorf("GetText() = %q, want %q", text, want)
	}
}

func TestClientGetTextCleansURL(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	client := NewClient(nil, "kegg", 0, WithHTTPClient(server.Client()))

	if _, err := client.GetText(context.Background(), server.URL+"/get/cpd:C00031"); err != nil {
		t.Fatalf("GetText() error: %v", err)
	}
	if want := "/get/cpd%3aC00031"; gotPath != want {
		t.Errorf("request path = %q, want %q", gotPath, want)
	}
}

func TestClientHeaders(t *testing.T) {
	var received string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received = r.Header.Get("X-Custom")
	}))
	defer server.Close()

	client := NewClient(nil, "kegg", 0,
		WithHTTPClient(server.Client()),
		WithHeaders(map[string]string{"X-Custom": "custom"}),
	)
	if _, err := client.GetText(context.Background(), server.URL); err != nil {
		t.Fatalf("GetText() error: %v", err)
	}
	if received != "custom" {
		t.Errorf("header = %q, want %q", received, "custom")
	}
}

func TestClientGetText404(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("no such entry\n"))
	}))
	defer server.Close()

	client := NewClient(nil, "kegg", 0, WithHTTPClient(server.Client()))

	_, err := client.GetText(context.Background(), server.URL+"/get/xyz")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GetText() error = %v, want ErrNotFound", err)
	}

	var te *kerrors.TransportError
	if !errors.As(err, &te) {
		t.Fatalf("GetText() error should be TransportError, got %T", err)
	}
	if te.Status != http.StatusNotFound {
		t.Errorf("Status = %d, want 404", te.Status)
	}
	if te.Body != "no such entry" {
		t.Errorf("Body = %q, want %q", te.Body, "no such entry")
	}
	if httputil.IsRetryable(err) {
		t.Error("404 should not be retryable")
	}
}

func TestClientGetText500(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(nil, "kegg", 0, WithHTTPClient(server.Client()))

	_, err := client.GetText(context.Background(), server.URL)
	if err == nil {
		t.Fatal("GetText() should return error for 500")
	}
	if !errors.Is(err, ErrNetwork) {
		t.Errorf("GetText() error = %v, want ErrNetwork", err)
	}
	if !httputil.IsRetryable(err) {
		t.Errorf("GetText() error should be retryable, got %T", err)
	}
}

func TestClientGetTextConnectionError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewClient(nil, "kegg", 0)
	_, err := client.GetText(context.Background(), url)
	if !errors.Is(err, ErrNetwork) {
		t.Errorf("GetText() error = %v, want ErrNetwork", err)
	}
	if !httputil.IsRetryable(err) {
		t.Error("connection errors should be retryable")
	}
}

func TestClientFetchUsesCache(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte("body"))
	}))
	defer server.Close()

	c, _ := cache.NewFileCache(t.TempDir())
	defer c.Close()
	client := NewClient(c, "kegg", time.Hour, WithHTTPClient(server.Client()))

	for i := 0; i < 3; i++ {
		got, err := client.Fetch(context.Background(), server.URL+"/info/kegg")
		if err != nil {
			t.Fatalf("Fetch() error: %v", err)
		}
		if got != "body" {
			t.Errorf("Fetch() = %q, want %q", got, "body")
		}
	}
	if hits != 1 {
		t.Errorf("server hits = %d, want 1", hits)
	}

	refreshing := NewClient(c, "kegg", time.Hour, WithHTTPClient(server.Client()), WithRefresh(true))
	if _, err := refreshing.Fetch(context.Background(), server.URL+"/info/kegg"); err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if hits != 2 {
		t.Errorf("server hits after refresh = %d, want 2", hits)
	}
}

func TestClientCachedRetries(t *testing.T) {
	client := NewClient(nil, "kegg", 0, WithRetry(3, time.Millisecond))

	calls := 0
	got, err := client.Cached(context.Background(), "key", func() (string, error) {
		calls++
		if calls < 3 {
			return "", httputil.Retryable(ErrNetwork)
		}
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("Cached() error: %v", err)
	}
	if got != "ok" || calls != 3 {
		t.Errorf("Cached() = %q after %d calls, want %q after 3", got, calls, "ok")
	}
}

func TestClientCachedFetchError(t *testing.T) {
	client := NewClient(nil, "kegg", 0, WithRetry(3, time.Millisecond))

	calls := 0
	_, err := client.Cached(context.Background(), "key", func() (string, error) {
		calls++
		return "", ErrNotFound
	})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Cached() error = %v, want ErrNotFound", err)
	}
	if calls != 1 {
		t.Errorf("non-retryable error fetched %d times, want 1", calls)
	}
}

func TestCheckStatus(t *testing.T) {
	tests := []struct {
		name       string
		code       int
		wantErr    bool
		wantType   error
		isRetryErr bool
	}{
		{name: "200 OK", code: 200},
		{name: "204 No Content", code: 204},
		{name: "404 Not Found", code: 404, wantErr: true, wantType: ErrNotFound},
		{name: "500 Internal Server Error", code: 500, wantErr: true, wantType: ErrNetwork, isRetryErr: true},
		{name: "502 Bad Gateway", code: 502, wantErr: true, wantType: ErrNetwork, isRetryErr: true},
		{name: "400 Bad Request", code: 400, wantErr: true, wantType: ErrNetwork},
		{name: "403 Forbidden", code: 403, wantErr: true, wantType: ErrNetwork},
		{name: "429 Too Many Requests", code: 429, wantErr: true, wantType: ErrNetwork, isRetryErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkStatus("http://example.test/x", tt.code, nil)

			if !tt.wantErr {
				if err != nil {
					t.Errorf("checkStatus() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("checkStatus() should return error")
			}
			if !errors.Is(err, tt.wantType) {
				t.Errorf("checkStatus() error = %v, want %v", err, tt.wantType)
			}
			if got := httputil.IsRetryable(err); got != tt.isRetryErr {
				t.Errorf("IsRetryable() = %v, want %v", got, tt.isRetryErr)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("abc", 5); got != "abc" {
		t.Errorf("truncate short = %q", got)
	}
	if got := truncate("abcdef", 3); got != "abc..." {
		t.Errorf("truncate long = %q", got)
	}
}
