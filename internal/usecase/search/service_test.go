package search

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/newsdex/internal/domain"
	"github.com/kailas-cloud/newsdex/internal/engine"
	"github.com/kailas-cloud/newsdex/internal/query"
)

// --- Mocks ---

type mockExecutor struct {
	res   *engine.Result
	err   error
	calls int
	last  query.Descriptor
}

func (m *mockExecutor) Execute(_ context.Context, desc query.Descriptor) (*engine.Result, error) {
	m.calls++
	m.last = desc
	return m.res, m.err
}

func newService(exec *mockExecutor) *Service {
	return New(exec, query.NewBuilder("news", 10))
}

// --- FullText ---

func TestFullText_ProjectsEveryHit(t *testing.T) {
	exec := &mockExecutor{res: &engine.Result{Total: 3, Hits: []engine.Hit{
		{ID: "1", Score: 3, Source: map[string]any{"Title": "a", "Date": "2024-01-01"}},
		{ID: "2", Score: 2, Source: map[string]any{"Title": "b"}},
		{ID: "3", Score: 1, Source: map[string]any{"Title": "c", "Georeferences": []any{"Texas"}}},
	}}}
	svc := newService(exec)

	got, err := svc.FullText(context.Background(), "oil", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 results, got %d", len(got))
	}
	if got[0].Title != "a" || got[1].Title != "b" || got[2].Title != "c" {
		t.Errorf("order not preserved: %+v", got)
	}
	if got[2].Georeferences[0] != "Texas" {
		t.Errorf("georeferences = %v", got[2].Georeferences)
	}
}

func TestFullText_PassesOptionalClauses(t *testing.T) {
	exec := &mockExecutor{res: &engine.Result{}}
	svc := newService(exec)

	if _, err := svc.FullText(context.Background(), "oil", "2024", "Texas"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ft, ok := exec.last.(*query.FullText)
	if !ok {
		t.Fatalf("expected *query.FullText, got %T", exec.last)
	}
	if len(ft.Should) != 2 || ft.MinimumShouldMatch != 1 {
		t.Errorf("should = %+v msm = %d", ft.Should, ft.MinimumShouldMatch)
	}
}

func TestFullText_MissingQuery(t *testing.T) {
	exec := &mockExecutor{}
	svc := newService(exec)

	_, err := svc.FullText(context.Background(), "   ", "", "")
	if !errors.Is(err, domain.ErrMissingQuery) || !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrMissingQuery, got %v", err)
	}
	if exec.calls != 0 {
		t.Error("engine must not be called for invalid input")
	}
}

func TestFullText_EngineError(t *testing.T) {
	exec := &mockExecutor{err: engine.Unavailable(engine.OpSearch, errors.New("down"))}
	svc := newService(exec)

	_, err := svc.FullText(context.Background(), "oil", "", "")
	if !errors.Is(err, domain.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestFullText_EmptyResult(t *testing.T) {
	svc := newService(&mockExecutor{res: &engine.Result{}})

	got, err := svc.FullText(context.Background(), "oil", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", got)
	}
}

// --- Autocomplete ---

func TestAutocomplete_ShortPrefixSkipsEngine(t *testing.T) {
	for _, prefix := range []string{"", "o", "oi", "Öl", "   "} {
		exec := &mockExecutor{}
		svc := newService(exec)

		got, err := svc.Autocomplete(context.Background(), prefix)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", prefix, err)
		}
		if got == nil || len(got) != 0 {
			t.Errorf("%q: expected empty list, got %#v", prefix, got)
		}
		if exec.calls != 0 {
			t.Errorf("%q: engine called %d times", prefix, exec.calls)
		}
	}
}

func TestAutocomplete_PaddedPrefixReachesEngine(t *testing.T) {
	for _, prefix := range []string{"ab ", "  oi  "} {
		exec := &mockExecutor{res: &engine.Result{}}
		svc := newService(exec)

		got, err := svc.Autocomplete(context.Background(), prefix)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", prefix, err)
		}
		if got == nil || len(got) != 0 {
			t.Errorf("%q: expected empty list, got %#v", prefix, got)
		}
		if exec.calls != 1 {
			t.Errorf("%q: engine called %d times, want 1", prefix, exec.calls)
		}
	}
}

func TestAutocomplete_ReturnsTitles(t *testing.T) {
	exec := &mockExecutor{res: &engine.Result{Hits: []engine.Hit{
		{Source: map[string]any{"Title": "Oil prices surge"}},
		{Source: map[string]any{"Title": "Oil output cut"}},
	}}}
	svc := newService(exec)

	got, err := svc.Autocomplete(context.Background(), "oil")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0] != "Oil prices surge" || got[1] != "Oil output cut" {
		t.Errorf("got %q", got)
	}
	if exec.last.Intent() != query.IntentAutocomplete {
		t.Errorf("intent = %s", exec.last.Intent())
	}
}

func TestAutocomplete_EngineError(t *testing.T) {
	svc := newService(&mockExecutor{err: engine.Timeout(engine.OpSearch, context.DeadlineExceeded)})

	_, err := svc.Autocomplete(context.Background(), "oil")
	if !errors.Is(err, domain.ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
}
