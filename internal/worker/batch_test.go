package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/propascan/propascan/internal/model"
)

// stubAnalyzer succeeds for every URL except those listed in fail.
type stubAnalyzer struct {
	fail map[string]bool
}

func (s *stubAnalyzer) Analyze(ctx context.Context, url, content string) (*model.PropagandaReport, error) {
	if s.fail[url] {
		return nil, errors.New("extraction failed")
	}
	return &model.PropagandaReport{
		Metadata:        model.ReportMetadata{Source: url},
		PropagandaScore: 10,
	}, nil
}

func TestProcessURLs_AllSucceed(t *testing.T) {
	b := NewBatchProcessor(&stubAnalyzer{}, 3)

	urls := []string{
		"https://example.com/one",
		"https://example.com/two",
		"https://example.com/three",
	}

	results := b.ProcessURLs(context.Background(), urls)
	if len(results) != len(urls) {
		t.Fatalf("got %d results, want %d", len(results), len(urls))
	}

	got := make([]string, len(results))
	for i, r := range results {
		if r.GetError() != nil {
			t.Errorf("%s: unexpected error %v", r.URL, r.Error)
		}
		if r.Report == nil || r.Report.Metadata.Source != r.URL {
			t.Errorf("%s: report source mismatch", r.URL)
		}
		got[i] = r.URL
	}

	sort.Strings(got)
	sort.Strings(urls)
	for i := range urls {
		if got[i] != urls[i] {
			t.Errorf("missing result for %s", urls[i])
		}
	}
}

func TestProcessURLs_FailureDoesNotAbortBatch(t *testing.T) {
	b := NewBatchProcessor(&stubAnalyzer{fail: map[string]bool{"https://bad.example.com": true}}, 2)

	results := b.ProcessURLs(context.Background(), []string{
		"https://ok.example.com",
		"https://bad.example.com",
	})

	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}

	failures := 0
	for _, r := range results {
		if r.GetError() != nil {
			failures++
			if r.URL != "https://bad.example.com" {
				t.Errorf("unexpected failure for %s", r.URL)
			}
		}
	}
	if failures != 1 {
		t.Errorf("failures = %d, want 1", failures)
	}
}

func TestProcessURLs_Empty(t *testing.T) {
	b := NewBatchProcessor(&stubAnalyzer{}, 2)
	if results := b.ProcessURLs(context.Background(), nil); len(results) != 0 {
		t.Errorf("got %d results for empty input", len(results))
	}
}

func TestReadURLsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.txt")
	content := `# sources to check
https://example.com/a

https://example.com/b
https://example.com/a
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	urls, err := ReadURLsFromFile(path)
	if err != nil {
		t.Fatalf("ReadURLsFromFile failed: %v", err)
	}

	want := []string{"https://example.com/a", "https://example.com/b"}
	if len(urls) != len(want) {
		t.Fatalf("urls = %v, want %v", urls, want)
	}
	for i := range want {
		if urls[i] != want[i] {
			t.Errorf("urls[%d] = %q, want %q", i, urls[i], want[i])
		}
	}
}

func TestReadURLsFromFile_Missing(t *testing.T) {
	if _, err := ReadURLsFromFile(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Fatal("Expected error for missing file")
	}
}
