package classifications_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/calyxlabs/calyx/internal/classifications"
	"github.com/calyxlabs/calyx/pkg/pagination"
)

type mockSystem struct {
	listFn     func(ctx context.Context, page pagination.PageRequest, filters classifications.Filters) (*pagination.PageResult[classifications.Classification], error)
	findFn     func(ctx context.Context, id uuid.UUID) (*classifications.Classification, error)
	classifyFn func(ctx context.Context, cmd classifications.ClassifyCommand) (*classifications.Classification, error)
	deleteFn   func(ctx context.Context, id uuid.UUID) error
}

func (m *mockSystem) Handler() *classifications.Handler {
	return classifications.NewHandler(m, slog.New(slog.NewTextHandler(io.Discard, nil)), pagination.Config{DefaultPageSize: 20, MaxPageSize: 100})
}

func (m *mockSystem) List(ctx context.Context, page pagination.PageRequest, filters classifications.Filters) (*pagination.PageResult[classifications.Classification], error) {
	return m.listFn(ctx, page, filters)
}

func (m *mockSystem) Find(ctx context.Context, id uuid.UUID) (*classifications.Classification, error) {
	return m.findFn(ctx, id)
}

func (m *mockSystem) Classify(ctx context.Context, cmd classifications.ClassifyCommand) (*classifications.Classification, error) {
	return m.classifyFn(ctx, cmd)
}

func (m *mockSystem) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteFn(ctx, id)
}

func setupMux(h *classifications.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	group := h.Routes()
	for _, route := range group.Routes {
		pattern := route.Method + " " + group.Prefix + route.Pattern
		mux.HandleFunc(pattern, route.Handler)
	}
	return mux
}

func sampleClassification() classifications.Classification {
	return classifications.Classification{
		ID:          uuid.MustParse("6f1c0a06-4f6e-4f7d-9a3c-2f9a6e1b0c44"),
		DatasetID:   uuid.MustParse("550e8400-e29b-41d4-a716-446655440000"),
		SepalLength: 5.1,
		SepalWidth:  3.5,
		PetalLength: 1.4,
		PetalWidth:  0.2,
		Species:     "Iris-setosa",
		K:           5,
		Distance:    "euclidean",
		CreatedAt:   time.Date(2026, 3, 2, 14, 0, 0, 0, time.UTC),
	}
}

func TestHandlerClassify(t *testing.T) {
	result := sampleClassification()

	t.Run("classifies unknown sample", func(t *testing.T) {
		var captured classifications.ClassifyCommand
		sys := &mockSystem{
			classifyFn: func(_ context.Context, cmd classifications.ClassifyCommand) (*classifications.Classification, error) {
				captured = cmd
				return &result, nil
			},
		}
		mux := setupMux(sys.Handler())

		body := `{
			"dataset_id": "550e8400-e29b-41d4-a716-446655440000",
			"sepal_length": 5.1,
			"sepal_width": 3.5,
			"petal_length": 1.4,
			"petal_width": 0.2,
			"k": 3,
			"distance": "manhattan"
		}`

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest("POST", "/classifications", strings.NewReader(body)))

		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
		}
		if captured.DatasetID != result.DatasetID {
			t.Errorf("dataset_id = %v, want %v", captured.DatasetID, result.DatasetID)
		}
		if captured.K == nil || *captured.K != 3 {
			t.Errorf("k = %v, want 3", captured.K)
		}
		if captured.Distance == nil || *captured.Distance != "manhattan" {
			t.Errorf("distance = %v, want manhattan", captured.Distance)
		}

		var got classifications.Classification
		if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if got.Species != "Iris-setosa" {
			t.Errorf("species = %q, want Iris-setosa", got.Species)
		}
	})

	t.Run("omitted overrides stay nil", func(t *testing.T) {
		var captured classifications.ClassifyCommand
		sys := &mockSystem{
			classifyFn: func(_ context.Context, cmd classifications.ClassifyCommand) (*classifications.Classification, error) {
				captured = cmd
				return &result, nil
			},
		}
		mux := setupMux(sys.Handler())

		body := `{"dataset_id": "550e8400-e29b-41d4-a716-446655440000", "sepal_length": 5.1}`

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest("POST", "/classifications", strings.NewReader(body)))

		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201", rec.Code)
		}
		if captured.K != nil {
			t.Errorf("k = %v, want nil", captured.K)
		}
		if captured.Distance != nil {
			t.Errorf("distance = %v, want nil", captured.Distance)
		}
	})

	t.Run("missing dataset_id returns 400", func(t *testing.T) {
		sys := &mockSystem{}
		mux := setupMux(sys.Handler())

		body := `{"sepal_length": 5.1, "sepal_width": 3.5}`

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest("POST", "/classifications", strings.NewReader(body)))

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("malformed body returns 400", func(t *testing.T) {
		sys := &mockSystem{}
		mux := setupMux(sys.Handler())

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest("POST", "/classifications", strings.NewReader("not-json")))

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("invalid request error returns 400", func(t *testing.T) {
		sys := &mockSystem{
			classifyFn: func(_ context.Context, _ classifications.ClassifyCommand) (*classifications.Classification, error) {
				return nil, classifications.ErrInvalidRequest
			},
		}
		mux := setupMux(sys.Handler())

		body := `{"dataset_id": "550e8400-e29b-41d4-a716-446655440000", "k": 0}`

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest("POST", "/classifications", strings.NewReader(body)))

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestHandlerFind(t *testing.T) {
	result := sampleClassification()
	sys := &mockSystem{
		findFn: func(_ context.Context, id uuid.UUID) (*classifications.Classification, error) {
			if id != result.ID {
				return nil, classifications.ErrNotFound
			}
			return &result, nil
		},
	}

	mux := setupMux(sys.Handler())

	t.Run("returns classification", func(t *testing.T) {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest("GET", "/classifications/"+result.ID.String(), nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
	})

	t.Run("unknown id returns 404", func(t *testing.T) {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest("GET", "/classifications/"+uuid.NewString(), nil))

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})
}

func TestHandlerList(t *testing.T) {
	result := sampleClassification()

	var captured classifications.Filters
	sys := &mockSystem{
		listFn: func(_ context.Context, _ pagination.PageRequest, filters classifications.Filters) (*pagination.PageResult[classifications.Classification], error) {
			captured = filters
			page := pagination.NewPageResult([]classifications.Classification{result}, 1, 1, 20)
			return &page, nil
		},
	}

	mux := setupMux(sys.Handler())

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/classifications?species=Iris-setosa&k=5", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if captured.Species == nil || *captured.Species != "Iris-setosa" {
		t.Errorf("species filter = %v, want Iris-setosa", captured.Species)
	}
	if captured.K == nil || *captured.K != 5 {
		t.Errorf("k filter = %v, want 5", captured.K)
	}
}

func TestHandlerDelete(t *testing.T) {
	result := sampleClassification()
	sys := &mockSystem{
		deleteFn: func(_ context.Context, id uuid.UUID) error {
			if id != result.ID {
				return classifications.ErrNotFound
			}
			return nil
		},
	}

	mux := setupMux(sys.Handler())

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("DELETE", "/classifications/"+result.ID.String(), nil))

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
}
