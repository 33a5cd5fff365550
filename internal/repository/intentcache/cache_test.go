package intentcache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kinhostella/atletismo/internal/db"
	"github.com/kinhostella/atletismo/internal/domain"
)

type mockExtractor struct {
	calls int
	fn    func(ctx context.Context, question string) (domain.Intent, error)
}

func (m *mockExtractor) Extract(ctx context.Context, question string) (domain.Intent, error) {
	m.calls++
	return m.fn(ctx, question)
}

type mockStore struct {
	getFn func(ctx context.Context, key string) ([]byte, error)
	setFn func(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

func (m *mockStore) Get(ctx context.Context, key string) ([]byte, error) {
	return m.getFn(ctx, key)
}

func (m *mockStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return m.setFn(ctx, key, value, ttl)
}

func searchIntent(athlete string) domain.Intent {
	return domain.Intent{Action: domain.ActionSearch, Athlete: &athlete}
}

func TestExtract_MissThenHit(t *testing.T) {
	stored := map[string][]byte{}
	s := &mockStore{
		getFn: func(_ context.Context, key string) ([]byte, error) {
			if data, ok := stored[key]; ok {
				return data, nil
			}
			return nil, db.ErrKeyNotFound
		},
		setFn: func(_ context.Context, key string, value []byte, ttl time.Duration) error {
			if ttl != time.Hour {
				t.Errorf("expected 1h TTL, got %v", ttl)
			}
			stored[key] = value
			return nil
		},
	}
	inner := &mockExtractor{fn: func(context.Context, string) (domain.Intent, error) {
		return searchIntent("Jose Perez"), nil
	}}

	cached := New(inner, s, time.Hour, nil, zap.NewNop())

	for i := 0; i < 2; i++ {
		intent, err := cached.Extract(context.Background(), "marca de Jose Perez")
		if err != nil {
			t.Fatalf("Extract: %v", err)
		}
		if intent.Athlete == nil || *intent.Athlete != "Jose Perez" {
			t.Errorf("unexpected intent: %+v", intent)
		}
	}

	if inner.calls != 1 {
		t.Errorf("expected 1 inner call, got %d", inner.calls)
	}
}

func TestExtract_KeyIgnoresCaseAndAccents(t *testing.T) {
	var keys []string
	s := &mockStore{
		getFn: func(_ context.Context, key string) ([]byte, error) {
			keys = append(keys, key)
			return nil, db.ErrKeyNotFound
		},
		setFn: func(context.Context, string, []byte, time.Duration) error { return nil },
	}
	inner := &mockExtractor{fn: func(context.Context, string) (domain.Intent, error) {
		return domain.Intent{Action: domain.ActionSearch}, nil
	}}
	cached := New(inner, s, time.Hour, nil, zap.NewNop())

	_, _ = cached.Extract(context.Background(), "Marca de PÉREZ")
	_, _ = cached.Extract(context.Background(), "marca de perez")

	if len(keys) != 2 || keys[0] != keys[1] {
		t.Errorf("expected identical cache keys, got %v", keys)
	}
}

func TestExtract_StoreFailureFallsThrough(t *testing.T) {
	s := &mockStore{
		getFn: func(context.Context, string) ([]byte, error) {
			return nil, errors.New("connection refused")
		},
		setFn: func(context.Context, string, []byte, time.Duration) error {
			return errors.New("connection refused")
		},
	}
	inner := &mockExtractor{fn: func(context.Context, string) (domain.Intent, error) {
		return searchIntent("Anton Souto"), nil
	}}
	cached := New(inner, s, time.Hour, nil, zap.NewNop())

	intent, err := cached.Extract(context.Background(), "pregunta")
	if err != nil {
		t.Fatalf("cache failure must not fail the request: %v", err)
	}
	if intent.Athlete == nil || *intent.Athlete != "Anton Souto" {
		t.Errorf("unexpected intent: %+v", intent)
	}
}

func TestExtract_CorruptEntryFallsThrough(t *testing.T) {
	s := &mockStore{
		getFn: func(context.Context, string) ([]byte, error) {
			return []byte("{not json"), nil
		},
		setFn: func(context.Context, string, []byte, time.Duration) error { return nil },
	}
	inner := &mockExtractor{fn: func(context.Context, string) (domain.Intent, error) {
		return searchIntent("Jose Perez"), nil
	}}
	cached := New(inner, s, time.Hour, nil, zap.NewNop())

	if _, err := cached.Extract(context.Background(), "pregunta"); err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if inner.calls != 1 {
		t.Errorf("expected fallthrough to inner extractor, got %d calls", inner.calls)
	}
}

func TestExtract_InnerErrorPropagates(t *testing.T) {
	s := &mockStore{
		getFn: func(context.Context, string) ([]byte, error) { return nil, db.ErrKeyNotFound },
		setFn: func(context.Context, string, []byte, time.Duration) error { return nil },
	}
	inner := &mockExtractor{fn: func(context.Context, string) (domain.Intent, error) {
		return domain.Intent{}, domain.ErrIntentExtraction
	}}
	cached := New(inner, s, time.Hour, nil, zap.NewNop())

	if _, err := cached.Extract(context.Background(), "pregunta"); !errors.Is(err, domain.ErrIntentExtraction) {
		t.Fatalf("expected ErrIntentExtraction, got %v", err)
	}
}

func TestExtract_StoredValueRoundTrips(t *testing.T) {
	var stored []byte
	s := &mockStore{
		getFn: func(context.Context, string) ([]byte, error) { return nil, db.ErrKeyNotFound },
		setFn: func(_ context.Context, _ string, value []byte, _ time.Duration) error {
			stored = value
			return nil
		},
	}
	year := domain.NewFlexValue(2024)
	inner := &mockExtractor{fn: func(context.Context, string) (domain.Intent, error) {
		return domain.Intent{Action: domain.ActionCountByEventYear, Year: year}, nil
	}}
	cached := New(inner, s, time.Hour, nil, zap.NewNop())

	if _, err := cached.Extract(context.Background(), "pregunta"); err != nil {
		t.Fatalf("Extract: %v", err)
	}

	var got domain.Intent
	if err := json.Unmarshal(stored, &got); err != nil {
		t.Fatalf("stored intent is not valid JSON: %v", err)
	}
	if got.Action != domain.ActionCountByEventYear {
		t.Errorf("action lost in cache: %+v", got)
	}
	if got.Year == nil {
		t.Fatal("year lost in cache")
	}
	if n, ok := got.Year.Int(); !ok || n != 2024 {
		t.Errorf("year mangled in cache: %v", got.Year)
	}
}
