package pipeline

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/propascan/propascan/internal/model"
)

func fetcherConfig() model.HTTPConfig {
	cfg := model.DefaultConfig()
	return cfg.HTTP
}

func TestFetch_Success(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body>hello</body></html>"))
	}))
	defer srv.Close()

	f := NewFetcher(fetcherConfig(), model.RateLimitConfig{RequestsPerSecond: 100, Burst: 10})

	result, err := f.Fetch(context.Background(), srv.URL+"/article")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if !strings.Contains(result.HTML, "hello") {
		t.Errorf("HTML = %q", result.HTML)
	}
	if result.StatusCode != http.StatusOK {
		t.Errorf("StatusCode = %d", result.StatusCode)
	}
	if !strings.HasPrefix(gotUA, "Propascan/") {
		t.Errorf("User-Agent = %q, want Propascan prefix", gotUA)
	}
}

func TestFetch_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	f := NewFetcher(fetcherConfig(), model.RateLimitConfig{})

	if _, err := f.Fetch(context.Background(), srv.URL+"/article"); err == nil {
		t.Fatal("Expected error for 500 response")
	}
}

func TestFetch_BodySizeCapped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(strings.Repeat("x", 4096)))
	}))
	defer srv.Close()

	cfg := fetcherConfig()
	cfg.MaxBodyBytes = 1024

	f := NewFetcher(cfg, model.RateLimitConfig{})

	result, err := f.Fetch(context.Background(), srv.URL+"/big")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(result.HTML) != 1024 {
		t.Errorf("body length = %d, want capped at 1024", len(result.HTML))
	}
}

func TestFetch_RobotsDisallowed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			_, _ = w.Write([]byte("User-agent: *\nDisallow: /private/\n"))
			return
		}
		_, _ = w.Write([]byte("<html></html>"))
	}))
	defer srv.Close()

	f := NewFetcher(fetcherConfig(), model.RateLimitConfig{})

	if _, err := f.Fetch(context.Background(), srv.URL+"/private/doc"); err == nil {
		t.Fatal("Expected robots.txt disallow error")
	}

	// Paths outside the disallowed prefix still fetch.
	if _, err := f.Fetch(context.Background(), srv.URL+"/public/doc"); err != nil {
		t.Fatalf("allowed path should fetch: %v", err)
	}
}

func TestFetch_RobotsDisabled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			_, _ = w.Write([]byte("User-agent: *\nDisallow: /\n"))
			return
		}
		_, _ = w.Write([]byte("<html></html>"))
	}))
	defer srv.Close()

	cfg := fetcherConfig()
	cfg.RespectRobots = false

	f := NewFetcher(cfg, model.RateLimitConfig{})

	if _, err := f.Fetch(context.Background(), srv.URL+"/anything"); err != nil {
		t.Fatalf("robots checking disabled, fetch should succeed: %v", err)
	}
}

func TestFetch_RedirectCap(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		// Every request redirects to itself; the client must give up.
		http.Redirect(w, r, srv.URL+r.URL.Path, http.StatusFound)
	}))
	defer srv.Close()

	f := NewFetcher(fetcherConfig(), model.RateLimitConfig{RequestsPerSecond: 100, Burst: 10})

	if _, err := f.Fetch(context.Background(), srv.URL+"/loop"); err == nil {
		t.Fatal("Expected error after redirect cap")
	}
}

func TestFetchHTML_FollowsRedirectURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/robots.txt":
			http.NotFound(w, r)
		case "/old":
			http.Redirect(w, r, "/new", http.StatusMovedPermanently)
		default:
			_, _ = w.Write([]byte("<html><body>moved content</body></html>"))
		}
	}))
	defer srv.Close()

	f := NewFetcher(fetcherConfig(), model.RateLimitConfig{})

	html, finalURL, err := f.FetchHTML(context.Background(), srv.URL+"/old")
	if err != nil {
		t.Fatalf("FetchHTML failed: %v", err)
	}
	if !strings.Contains(html, "moved content") {
		t.Errorf("html = %q", html)
	}
	if !strings.HasSuffix(finalURL, "/new") {
		t.Errorf("finalURL = %q, want post-redirect path", finalURL)
	}
}
