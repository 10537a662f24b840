package knn_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/calyxlabs/calyx/pkg/knn"
)

func TestReadCSV(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{
			name: "with header",
			input: "sepal_length,sepal_width,petal_length,petal_width,species\n" +
				"5.1,3.5,1.4,0.2,Iris-setosa\n" +
				"7.0,3.2,4.7,1.4,Iris-versicolour\n",
			want: 2,
		},
		{
			name:  "without header",
			input: "5.1,3.5,1.4,0.2,Iris-setosa\n6.3,3.3,6.0,2.5,Iris-virginica\n",
			want:  2,
		},
		{
			name:    "unknown species",
			input:   "5.1,3.5,1.4,0.2,nothing known by this app\n",
			wantErr: true,
		},
		{
			name:    "unparseable measurement",
			input:   "5.1,wide,1.4,0.2,Iris-setosa\n",
			wantErr: true,
		},
		{
			name:    "short row",
			input:   "5.1,3.5,1.4\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			samples, err := knn.ReadCSV(strings.NewReader(tt.input))
			if tt.wantErr {
				if !errors.Is(err, knn.ErrInvalidSample) {
					t.Fatalf("error: got %v, want ErrInvalidSample", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(samples) != tt.want {
				t.Errorf("sample count: got %d, want %d", len(samples), tt.want)
			}
		})
	}
}

func TestReadCSVFieldRoundTrip(t *testing.T) {
	input := "5.1,3.5,1.4,0.2,Iris-setosa\n"

	samples, err := knn.ReadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	want := known(5.1, 3.5, 1.4, 0.2, knn.Setosa)
	if samples[0] != want {
		t.Errorf("parsed sample: got %+v, want %+v", samples[0], want)
	}
}

func TestReadJSON(t *testing.T) {
	input := `[
		{"sepal_length": 5.1, "sepal_width": 3.5, "petal_length": 1.4, "petal_width": 0.2, "species": "Iris-setosa"},
		{"sepal_length": "7.0", "sepal_width": "3.2", "petal_length": "4.7", "petal_width": "1.4", "species": "Iris-versicolour"}
	]`

	samples, err := knn.ReadJSON(strings.NewReader(input))
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(samples) != 2 {
		t.Fatalf("sample count: got %d, want 2", len(samples))
	}
	if samples[1].Species != knn.Versicolour || samples[1].PetalLength != 4.7 {
		t.Errorf("string-valued measurements misparsed: %+v", samples[1])
	}
}

func TestReadJSONInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "not an array", input: `{"sepal_length": 5.1}`},
		{name: "bad species", input: `[{"sepal_length": 5.1, "sepal_width": 3.5, "petal_length": 1.4, "petal_width": 0.2, "species": "Rosa-rugosa"}]`},
		{name: "missing measurement", input: `[{"species": "Iris-setosa"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := knn.ReadJSON(strings.NewReader(tt.input)); !errors.Is(err, knn.ErrInvalidSample) {
				t.Errorf("error: got %v, want ErrInvalidSample", err)
			}
		})
	}
}
