package pagination_test

import (
	"encoding/json"
	"net/url"
	"testing"

	"github.com/calyxlabs/calyx/pkg/pagination"
	"github.com/calyxlabs/calyx/pkg/query"
)

var testConfig = pagination.Config{
	DefaultPageSize: 20,
	MaxPageSize:     100,
}

func TestPageRequestNormalize(t *testing.T) {
	tests := []struct {
		name         string
		request      pagination.PageRequest
		wantPage     int
		wantPageSize int
	}{
		{"zero values use defaults", pagination.PageRequest{}, 1, 20},
		{"negative page clamped", pagination.PageRequest{Page: -3, PageSize: 10}, 1, 10},
		{"oversized page size clamped", pagination.PageRequest{Page: 2, PageSize: 500}, 2, 100},
		{"valid values unchanged", pagination.PageRequest{Page: 3, PageSize: 50}, 3, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.request.Normalize(testConfig)
			if tt.request.Page != tt.wantPage {
				t.Errorf("Page = %d, want %d", tt.request.Page, tt.wantPage)
			}
			if tt.request.PageSize != tt.wantPageSize {
				t.Errorf("PageSize = %d, want %d", tt.request.PageSize, tt.wantPageSize)
			}
		})
	}
}

func TestPageRequestOffset(t *testing.T) {
	tests := []struct {
		name    string
		request pagination.PageRequest
		want    int
	}{
		{"first page", pagination.PageRequest{Page: 1, PageSize: 20}, 0},
		{"second page", pagination.PageRequest{Page: 2, PageSize: 20}, 20},
		{"fifth page of ten", pagination.PageRequest{Page: 5, PageSize: 10}, 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.request.Offset(); got != tt.want {
				t.Errorf("Offset() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPageRequestFromQuery(t *testing.T) {
	values := url.Values{}
	values.Set("page", "2")
	values.Set("page_size", "30")
	values.Set("search", "setosa")
	values.Set("sort", "name,-uploaded_at")

	req := pagination.PageRequestFromQuery(values, testConfig)

	if req.Page != 2 {
		t.Errorf("Page = %d, want 2", req.Page)
	}
	if req.PageSize != 30 {
		t.Errorf("PageSize = %d, want 30", req.PageSize)
	}
	if req.Search == nil || *req.Search != "setosa" {
		t.Errorf("Search = %v, want setosa", req.Search)
	}
	if len(req.Sort) != 2 {
		t.Fatalf("len(Sort) = %d, want 2", len(req.Sort))
	}
	if req.Sort[0].Field != "name" || req.Sort[0].Descending {
		t.Errorf("Sort[0] = %+v, want ascending name", req.Sort[0])
	}
	if req.Sort[1].Field != "uploaded_at" || !req.Sort[1].Descending {
		t.Errorf("Sort[1] = %+v, want descending uploaded_at", req.Sort[1])
	}
}

func TestPageRequestFromQueryEmpty(t *testing.T) {
	req := pagination.PageRequestFromQuery(url.Values{}, testConfig)

	if req.Page != 1 {
		t.Errorf("Page = %d, want 1", req.Page)
	}
	if req.PageSize != testConfig.DefaultPageSize {
		t.Errorf("PageSize = %d, want %d", req.PageSize, testConfig.DefaultPageSize)
	}
	if req.Search != nil {
		t.Errorf("Search = %v, want nil", req.Search)
	}
}

func TestSortFieldsUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []query.SortField
	}{
		{
			"string format",
			`"name,-uploaded_at"`,
			[]query.SortField{{Field: "name"}, {Field: "uploaded_at", Descending: true}},
		},
		{
			"array format",
			`[{"field":"quality","descending":true}]`,
			[]query.SortField{{Field: "quality", Descending: true}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got pagination.SortFields
			if err := json.Unmarshal([]byte(tt.input), &got); err != nil {
				t.Fatalf("unmarshal error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("field %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestNewPageResult(t *testing.T) {
	tests := []struct {
		name           string
		data           []string
		total          int
		page           int
		pageSize       int
		wantTotalPages int
	}{
		{"even division", []string{"a", "b"}, 40, 1, 20, 2},
		{"remainder adds page", []string{"a"}, 41, 1, 20, 3},
		{"empty result", nil, 0, 1, 20, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := pagination.NewPageResult(tt.data, tt.total, tt.page, tt.pageSize)

			if result.TotalPages != tt.wantTotalPages {
				t.Errorf("TotalPages = %d, want %d", result.TotalPages, tt.wantTotalPages)
			}
			if result.Data == nil {
				t.Error("Data is nil, want empty slice")
			}
			if result.Total != tt.total {
				t.Errorf("Total = %d, want %d", result.Total, tt.total)
			}
		})
	}
}

func TestConfigFinalize(t *testing.T) {
	var cfg pagination.Config
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize error: %v", err)
	}
	if cfg.DefaultPageSize != 20 {
		t.Errorf("DefaultPageSize = %d, want 20", cfg.DefaultPageSize)
	}
	if cfg.MaxPageSize != 100 {
		t.Errorf("MaxPageSize = %d, want 100", cfg.MaxPageSize)
	}
}

func TestConfigFinalizeInvalid(t *testing.T) {
	cfg := pagination.Config{DefaultPageSize: 200, MaxPageSize: 100}
	if err := cfg.Finalize(nil); err == nil {
		t.Error("expected error when default_page_size exceeds max_page_size")
	}
}

func TestConfigMerge(t *testing.T) {
	cfg := pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}
	cfg.Merge(&pagination.Config{DefaultPageSize: 50})

	if cfg.DefaultPageSize != 50 {
		t.Errorf("DefaultPageSize = %d, want 50", cfg.DefaultPageSize)
	}
	if cfg.MaxPageSize != 100 {
		t.Errorf("MaxPageSize = %d, want 100", cfg.MaxPageSize)
	}
}
