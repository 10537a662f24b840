package knn

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// Header is the canonical column order for iris CSV files.
var Header = []string{
	"sepal_length", "sepal_width",
	"petal_length", "petal_width",
	"species",
}

// ReadCSV parses labeled samples from CSV rows in Header order. A leading
// header row is detected and skipped. Errors carry the 1-based row number.
func ReadCSV(r io.Reader) ([]KnownSample, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(Header)
	reader.TrimLeadingSpace = true

	var samples []KnownSample
	row := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrInvalidSample, row+1, err)
		}
		row++

		// Bare datasets like bezdekiris.data carry no header row.
		if row == 1 && record[0] == Header[0] {
			continue
		}

		ks, err := sampleFromRecord(record)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		samples = append(samples, ks)
	}

	return samples, nil
}

type rawSample struct {
	SepalLength json.Number `json:"sepal_length"`
	SepalWidth  json.Number `json:"sepal_width"`
	PetalLength json.Number `json:"petal_length"`
	PetalWidth  json.Number `json:"petal_width"`
	Species     string      `json:"species"`
}

// ReadJSON parses labeled samples from a JSON array of row objects.
// Measurement values may be numbers or numeric strings.
func ReadJSON(r io.Reader) ([]KnownSample, error) {
	var rows []rawSample
	dec := json.NewDecoder(r)
	if err := dec.Decode(&rows); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSample, err)
	}

	samples := make([]KnownSample, 0, len(rows))
	for i, raw := range rows {
		ks, err := sampleFromRecord([]string{
			raw.SepalLength.String(),
			raw.SepalWidth.String(),
			raw.PetalLength.String(),
			raw.PetalWidth.String(),
			raw.Species,
		})
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		samples = append(samples, ks)
	}

	return samples, nil
}

func sampleFromRecord(record []string) (KnownSample, error) {
	species, err := ParseSpecies(record[4])
	if err != nil {
		return KnownSample{}, err
	}

	values := make([]float64, 4)
	for i, field := range record[:4] {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return KnownSample{}, fmt.Errorf("%w: %s %q", ErrInvalidSample, Header[i], field)
		}
		values[i] = v
	}

	return KnownSample{
		Sample: Sample{
			SepalLength: values[0],
			SepalWidth:  values[1],
			PetalLength: values[2],
			PetalWidth:  values[3],
		},
		Species: species,
	}, nil
}
