package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

type fakeService struct {
	items  map[string][]byte
	getErr error
	setErr error
	sets   int
}

func newFake() *fakeService {
	return &fakeService{items: make(map[string][]byte)}
}

func (f *fakeService) Get(_ context.Context, key string) ([]byte, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	v, ok := f.items[key]
	if !ok {
		return nil, ErrMiss
	}
	return v, nil
}

func (f *fakeService) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.sets++
	f.items[key] = value
	return nil
}

func (f *fakeService) Health(context.Context) map[string]any {
	return map[string]any{"status": "healthy"}
}

func TestGetItems(t *testing.T) {

	ctx := context.Background()
	want := []string{"a", "b"}

	tests := []struct {
		name      string
		svc       Service
		callErr   error
		wantErr   bool
		wantCalls int
	}{
		{"nil service", nil, nil, false, 2},
		{"cache hit on second call", newFake(), nil, false, 1},
		{"broken cache", &fakeService{getErr: errors.New("down"), setErr: errors.New("down")}, nil, false, 2},
		{"callable error", newFake(), errors.New("boom"), true, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {

			calls := 0
			callable := func() ([]string, error) {
				calls++
				if tt.callErr != nil {
					return nil, tt.callErr
				}
				return want, nil
			}

			for range 2 {
				got, err := GetItems(ctx, tt.svc, "key", time.Minute, callable)
				if gotErr := err != nil; gotErr != tt.wantErr {
					t.Fatalf("got error = %v, want error = %t", err, tt.wantErr)
				}

				if !tt.wantErr {
					if diff := cmp.Diff(want, got); diff != "" {
						t.Errorf("items mismatch (-want +got):\n%s", diff)
					}
				}
			}

			if calls != tt.wantCalls {
				t.Errorf("got %d calls, want %d", calls, tt.wantCalls)
			}
		})
	}
}

func TestGetItemsCorruptValue(t *testing.T) {
	svc := newFake()
	svc.items["key"] = []byte("not json")

	got, err := GetItems(context.Background(), svc, "key", time.Minute, func() (int, error) {
		return 7, nil
	})

	if err != nil {
		t.Fatalf("got error = %v, want no error", err)
	}

	if got != 7 {
		t.Errorf("got %d, want 7", got)
	}

	if string(svc.items["key"]) != "7" {
		t.Errorf("expected the corrupt value to be replaced, got %q", svc.items["key"])
	}
}

func TestCached(t *testing.T) {
	svc := newFake()
	svc.items["present"] = []byte("1")

	tests := []struct {
		name string
		svc  Service
		key  string
		want bool
	}{
		{"nil service", nil, "present", false},
		{"present", svc, "present", true},
		{"absent", svc, "absent", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Cached(context.Background(), tt.svc, tt.key); got != tt.want {
				t.Errorf("got %t, want %t", got, tt.want)
			}
		})
	}
}
