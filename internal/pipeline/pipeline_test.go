package pipeline

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/propascan/propascan/internal/ai"
	"github.com/propascan/propascan/internal/extract"
	"github.com/propascan/propascan/internal/model"
	"github.com/propascan/propascan/internal/patterns"
	"github.com/propascan/propascan/internal/score"
)

// stubProvider returns a canned AI response or error.
type stubProvider struct {
	output string
	err    error
	delay  time.Duration
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) Analyze(ctx context.Context, prompt string) (string, error) {
	if s.delay > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(s.delay):
		}
	}
	if s.err != nil {
		return "", s.err
	}
	return s.output, nil
}

func (s *stubProvider) IsAvailable(ctx context.Context) bool { return true }

func testPipeline(provider ai.Provider) *Pipeline {
	cfg := model.DefaultConfig()
	scanner := patterns.NewScanner(cfg.Analysis)
	fuser := score.NewFuser(cfg.Analysis)
	normalizer := extract.NewNormalizer(nil, nil, 0)

	var scorer *ai.Scorer
	if provider != nil {
		scorer = ai.NewScorerWithProvider(provider)
	}

	return newPipelineWith(normalizer, scanner, scorer, fuser)
}

func wordsOfText(n int) string {
	words := make([]string, n)
	for i := range words {
		words[i] = fmt.Sprintf("word%d", i)
	}
	return strings.Join(words, " ")
}

func TestAnalyze_CleanTextNoAI(t *testing.T) {
	p := testPipeline(nil)

	rep, err := p.Analyze(context.Background(), "", wordsOfText(100))
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if rep.PropagandaScore != 0 {
		t.Errorf("score = %d, want 0 for text without indicators", rep.PropagandaScore)
	}
	if !strings.Contains(rep.Analysis, "factual and well-balanced") {
		t.Errorf("expected factual band, got %q", rep.Analysis)
	}
	if rep.Metadata.Source != model.SourceDirectInput {
		t.Errorf("Source = %q, want %q", rep.Metadata.Source, model.SourceDirectInput)
	}
	if len(rep.DetectedTechniques) != 0 {
		t.Errorf("DetectedTechniques = %v, want empty", rep.DetectedTechniques)
	}
}

func TestAnalyze_DenseIndicatorsNoAI(t *testing.T) {
	p := testPipeline(nil)

	// 10 words, two indicator hits: density scoring saturates at 100.
	text := "a shocking report about the deepening crisis in town hall"

	rep, err := p.Analyze(context.Background(), "", text)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if rep.PropagandaScore != 100 {
		t.Errorf("score = %d, want 100", rep.PropagandaScore)
	}
	if !strings.Contains(rep.Analysis, "High likelihood") {
		t.Errorf("expected high band, got %q", rep.Analysis)
	}
	if rep.Metadata.WordCount != 10 {
		t.Errorf("WordCount = %d, want 10", rep.Metadata.WordCount)
	}
}

func TestAnalyze_MalformedAIRecovered(t *testing.T) {
	// Near-JSON in prose with a trailing comma: the repair parse should
	// still recover likelihood 45 and fuse it with the pattern score.
	p := testPipeline(&stubProvider{
		output: `Here is my assessment: {"propaganda_likelihood": 45, "detected_techniques": [],} Hope that helps.`,
	})

	// One match in 100 words: pattern score round(1/100*2000) = 20.
	text := wordsOfText(99) + " crisis"

	rep, err := p.Analyze(context.Background(), "", text)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	// round(20*0.4 + 45*0.6) = 35
	if rep.PropagandaScore != 35 {
		t.Errorf("score = %d, want 35", rep.PropagandaScore)
	}
	if !strings.Contains(rep.Analysis, "signs of bias") {
		t.Errorf("expected moderate band, got %q", rep.Analysis)
	}
}

func TestAnalyze_AITimeoutFallsBackToPatternScore(t *testing.T) {
	p := testPipeline(&stubProvider{
		output: `{"propaganda_likelihood": 90}`,
		delay:  200 * time.Millisecond,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	text := wordsOfText(99) + " crisis"

	rep, err := p.Analyze(ctx, "", text)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if rep.PropagandaScore != 20 {
		t.Errorf("score = %d, want pattern score 20 after AI timeout", rep.PropagandaScore)
	}
}

func TestAnalyze_AIErrorDegradesSilently(t *testing.T) {
	p := testPipeline(&stubProvider{err: errors.New("upstream down")})

	rep, err := p.Analyze(context.Background(), "", wordsOfText(50))
	if err != nil {
		t.Fatalf("AI failure must not surface: %v", err)
	}
	if rep.PropagandaScore != 0 {
		t.Errorf("score = %d, want 0", rep.PropagandaScore)
	}
}

func TestAnalyze_AITechniquesAppearInReport(t *testing.T) {
	p := testPipeline(&stubProvider{
		output: `{
			"propaganda_likelihood": 80,
			"detected_techniques": [{"name": "Appeal to fear", "example": "crisis", "explanation": "frames events as emergencies"}],
			"overall_analysis": "Relies on alarmist framing.",
			"suggested_corrections": "Verify the claims against primary sources."
		}`,
	})

	text := wordsOfText(99) + " crisis"

	rep, err := p.Analyze(context.Background(), "", text)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	// round(20*0.4 + 80*0.6) = 56
	if rep.PropagandaScore != 56 {
		t.Errorf("score = %d, want 56", rep.PropagandaScore)
	}

	want := []string{"fear_mongering", "Appeal to fear"}
	if len(rep.DetectedTechniques) != len(want) {
		t.Fatalf("DetectedTechniques = %v, want %v", rep.DetectedTechniques, want)
	}
	for i, name := range want {
		if rep.DetectedTechniques[i] != name {
			t.Errorf("DetectedTechniques[%d] = %q, want %q", i, rep.DetectedTechniques[i], name)
		}
	}

	if rep.Correction != "Verify the claims against primary sources." {
		t.Errorf("Correction = %q", rep.Correction)
	}
	if !strings.Contains(rep.Analysis, "Relies on alarmist framing.") {
		t.Errorf("AI overall analysis missing from %q", rep.Analysis)
	}
}

func TestAnalyze_NoUsableContent(t *testing.T) {
	p := testPipeline(nil)

	_, err := p.Analyze(context.Background(), "", "   ")
	if !errors.Is(err, extract.ErrNoContent) {
		t.Fatalf("err = %v, want ErrNoContent", err)
	}
}

func TestAnalyze_FromURL(t *testing.T) {
	article := `<html><head><title>Town Report</title></head><body><article><p>` +
		wordsOfText(80) + ` a shocking crisis unfolds downtown today quickly</p></article></body></html>`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(article))
	}))
	defer srv.Close()

	cfg := model.DefaultConfig()
	fetcher := NewFetcher(cfg.HTTP, cfg.RateLimit)
	normalizer := extract.NewNormalizer(fetcher, nil, 0)
	p := newPipelineWith(normalizer, patterns.NewScanner(cfg.Analysis), nil, score.NewFuser(cfg.Analysis))

	rep, err := p.Analyze(context.Background(), srv.URL+"/article", "")
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if rep.Metadata.Source == model.SourceDirectInput {
		t.Error("URL analysis should carry the origin URL as source")
	}
	if len(rep.DetailedMatches[model.CategoryEmotionalLanguage]) == 0 {
		t.Error("expected an emotional_language match from fetched article")
	}
	if len(rep.DetailedMatches[model.CategoryFearMongering]) == 0 {
		t.Error("expected a fear_mongering match from fetched article")
	}
}
