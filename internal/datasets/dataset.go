// Package datasets implements the dataset domain for Calyx. It provides
// types, data access, and business logic for uploading labeled iris sample
// files, partitioning them into training and testing sets, and blob storage
// integration for the raw files.
package datasets

import (
	"time"

	"github.com/google/uuid"
)

// Dataset represents an uploaded, partitioned sample collection with its
// blob storage reference.
type Dataset struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	Filename      string     `json:"filename"`
	ContentType   string     `json:"content_type"`
	SizeBytes     int64      `json:"size_bytes"`
	StorageKey    string     `json:"storage_key"`
	SampleCount   int        `json:"sample_count"`
	TrainingCount int        `json:"training_count"`
	TestingCount  int        `json:"testing_count"`
	SplitPolicy   string     `json:"split_policy"`
	UploadedAt    time.Time  `json:"uploaded_at"`
	TestedAt      *time.Time `json:"tested_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// CreateCommand carries the data needed to upload and register a new dataset.
// Data holds the raw file bytes in CSV or JSON form.
type CreateCommand struct {
	Data        []byte
	Name        string
	Filename    string
	ContentType string
}
