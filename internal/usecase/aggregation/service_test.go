package aggregation

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/newsdex/internal/domain"
	"github.com/kailas-cloud/newsdex/internal/engine"
	"github.com/kailas-cloud/newsdex/internal/query"
)

type mockExecutor struct {
	res  *engine.Result
	err  error
	last query.Descriptor
}

func (m *mockExecutor) Execute(_ context.Context, desc query.Descriptor) (*engine.Result, error) {
	m.last = desc
	return m.res, m.err
}

func TestTopGeoreferences(t *testing.T) {
	exec := &mockExecutor{res: &engine.Result{Buckets: []engine.Bucket{
		{Key: "Texas", DocCount: 4},
		{Key: "London", DocCount: 2},
	}}}
	svc := New(exec, query.NewBuilder("news", 10))

	got, err := svc.TopGeoreferences(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []domain.GeoBucket{{Key: "Texas", DocCount: 4}, {Key: "London", DocCount: 2}}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("got %+v, want %+v", got, want)
	}

	tt, ok := exec.last.(*query.TopTerms)
	if !ok {
		t.Fatalf("expected *query.TopTerms, got %T", exec.last)
	}
	if tt.Size != domain.MaxBuckets || tt.Field != domain.FieldGeoreferenceKeyword {
		t.Errorf("descriptor = %+v", tt)
	}
}

func TestTopGeoreferences_Empty(t *testing.T) {
	svc := New(&mockExecutor{res: &engine.Result{}}, query.NewBuilder("news", 10))

	got, err := svc.TopGeoreferences(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", got)
	}
}

func TestDistribution(t *testing.T) {
	exec := &mockExecutor{res: &engine.Result{Buckets: []engine.Bucket{
		{Key: "2024-01-01", DocCount: 1},
		{Key: "2024-01-02", DocCount: 3},
	}}}
	svc := New(exec, query.NewBuilder("news", 10))

	got, err := svc.Distribution(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].Date != "2024-01-01" || got[1].DocCount != 3 {
		t.Errorf("got %+v", got)
	}
	if exec.last.Intent() != query.IntentDateHistogram {
		t.Errorf("intent = %s", exec.last.Intent())
	}
}

func TestAggregations_EngineError(t *testing.T) {
	exec := &mockExecutor{err: engine.QueryError(engine.OpAggregate, errors.New("bad field"))}
	svc := New(exec, query.NewBuilder("news", 10))

	if _, err := svc.TopGeoreferences(context.Background()); !errors.Is(err, domain.ErrQuery) {
		t.Errorf("TopGeoreferences: expected ErrQuery, got %v", err)
	}
	if _, err := svc.Distribution(context.Background()); !errors.Is(err, domain.ErrQuery) {
		t.Errorf("Distribution: expected ErrQuery, got %v", err)
	}
}
