package datasets

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/calyxlabs/calyx/pkg/knn"
	"github.com/calyxlabs/calyx/pkg/pagination"
	"github.com/calyxlabs/calyx/pkg/query"
	"github.com/calyxlabs/calyx/pkg/repository"
	"github.com/calyxlabs/calyx/pkg/storage"
)

// Sample partition labels as stored in dataset_samples.partition.
const (
	PartitionTraining = "training"
	PartitionTesting  = "testing"
)

type repo struct {
	db          *sql.DB
	storage     storage.System
	logger      *slog.Logger
	pagination  pagination.Config
	splitter    knn.Splitter
	splitPolicy string
}

// New creates a dataset repository implementing the System interface.
// Uploaded samples are partitioned with the given splitter; splitPolicy is
// the name recorded on each dataset.
func New(
	db *sql.DB,
	store storage.System,
	logger *slog.Logger,
	pagination pagination.Config,
	splitter knn.Splitter,
	splitPolicy string,
) System {
	return &repo{
		db:          db,
		storage:     store,
		logger:      logger.With("system", "datasets"),
		pagination:  pagination,
		splitter:    splitter,
		splitPolicy: splitPolicy,
	}
}

func (r *repo) Handler(maxUploadSize int64) *Handler {
	return NewHandler(r, r.logger, r.pagination, maxUploadSize)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Dataset], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Name", "Filename")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count datasets: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	sets, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanDataset)
	if err != nil {
		return nil, fmt.Errorf("query datasets: %w", err)
	}

	result := pagination.NewPageResult(sets, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Dataset, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	d, err := repository.QueryOne(ctx, r.db, q, args, scanDataset)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &d, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Dataset, error) {
	samples, err := parseSamples(cmd.Data, cmd.Filename, cmd.ContentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidFile, err)
	}
	if len(samples) == 0 {
		return nil, ErrEmptyDataset
	}

	part, err := r.splitter.Split(samples)
	if err != nil {
		return nil, fmt.Errorf("partition samples: %w", err)
	}

	id := uuid.New()
	key := buildStorageKey(id, sanitizeFilename(cmd.Filename))

	exists, err := r.storage.Exists(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("check storage key: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: storage key %s", ErrDuplicate, key)
	}

	if err := r.storage.Upload(ctx, key, bytes.NewReader(cmd.Data), cmd.ContentType); err != nil {
		return nil, fmt.Errorf("upload dataset blob: %w", err)
	}

	q := `
		INSERT INTO datasets(id, name, filename, content_type, size_bytes, storage_key, sample_count, training_count, testing_count, split_policy)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, name, filename, content_type, size_bytes, storage_key, sample_count, training_count, testing_count, split_policy, uploaded_at, tested_at, updated_at`

	insertArgs := []any{
		id,
		cmd.Name,
		cmd.Filename,
		cmd.ContentType,
		int64(len(cmd.Data)),
		key,
		len(samples),
		len(part.Training),
		len(part.Testing),
		r.splitPolicy,
	}

	d, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Dataset, error) {
		d, err := repository.QueryOne(ctx, tx, q, insertArgs, scanDataset)
		if err != nil {
			return d, err
		}

		if err := insertSamples(ctx, tx, id, part); err != nil {
			return d, err
		}

		return d, nil
	})

	if err != nil {
		if delErr := r.storage.Delete(ctx, key); delErr != nil {
			r.logger.Warn("compensating blob delete failed", "key", key, "error", delErr)
		}
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info(
		"dataset created",
		"id", d.ID,
		"name", d.Name,
		"samples", d.SampleCount,
		"training", d.TrainingCount,
		"testing", d.TestingCount,
	)
	return &d, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	set, err := r.Find(ctx, id)
	if err != nil {
		return err
	}

	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM datasets WHERE id = $1",
			id,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	if delErr := r.storage.Delete(ctx, set.StorageKey); delErr != nil {
		r.logger.Warn(
			"blob delete failed after DB delete",
			"key", set.StorageKey,
			"error", delErr,
		)
	}

	r.logger.Info("dataset deleted", "id", id)
	return nil
}

func (r *repo) Download(ctx context.Context, id uuid.UUID) (*Dataset, io.ReadCloser, error) {
	set, err := r.Find(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	reader, err := r.storage.Download(ctx, set.StorageKey)
	if err != nil {
		return nil, nil, fmt.Errorf("download dataset blob: %w", err)
	}

	return set, reader, nil
}

func (r *repo) Training(ctx context.Context, id uuid.UUID) ([]knn.TrainingSample, error) {
	known, err := r.samples(ctx, id, PartitionTraining)
	if err != nil {
		return nil, err
	}

	training := make([]knn.TrainingSample, len(known))
	for i, k := range known {
		training[i] = knn.TrainingSample{KnownSample: k}
	}
	return training, nil
}

func (r *repo) Testing(ctx context.Context, id uuid.UUID) ([]knn.TestingSample, error) {
	known, err := r.samples(ctx, id, PartitionTesting)
	if err != nil {
		return nil, err
	}

	testing := make([]knn.TestingSample, len(known))
	for i, k := range known {
		testing[i] = knn.TestingSample{KnownSample: k}
	}
	return testing, nil
}

func (r *repo) MarkTested(ctx context.Context, id uuid.UUID) error {
	err := repository.ExecExpectOne(
		ctx, r.db,
		"UPDATE datasets SET tested_at = now(), updated_at = now() WHERE id = $1",
		id,
	)
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return nil
}

func (r *repo) samples(ctx context.Context, id uuid.UUID, partition string) ([]knn.KnownSample, error) {
	if _, err := r.Find(ctx, id); err != nil {
		return nil, err
	}

	q := `
		SELECT sepal_length, sepal_width, petal_length, petal_width, species
		FROM dataset_samples
		WHERE dataset_id = $1 AND partition = $2
		ORDER BY position`

	known, err := repository.QueryMany(ctx, r.db, q, []any{id, partition}, scanKnownSample)
	if err != nil {
		return nil, fmt.Errorf("query %s samples: %w", partition, err)
	}
	return known, nil
}

func insertSamples(ctx context.Context, tx *sql.Tx, datasetID uuid.UUID, part knn.Partition) error {
	q := `
		INSERT INTO dataset_samples(id, dataset_id, partition, position, sepal_length, sepal_width, petal_length, petal_width, species)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	stmt, err := tx.PrepareContext(ctx, q)
	if err != nil {
		return fmt.Errorf("prepare sample insert: %w", err)
	}
	defer stmt.Close()

	insert := func(partition string, position int, s knn.KnownSample) error {
		_, err := stmt.ExecContext(
			ctx,
			uuid.New(),
			datasetID,
			partition,
			position,
			s.SepalLength,
			s.SepalWidth,
			s.PetalLength,
			s.PetalWidth,
			string(s.Species),
		)
		return err
	}

	for i, s := range part.Training {
		if err := insert(PartitionTraining, i, s.KnownSample); err != nil {
			return fmt.Errorf("insert training sample %d: %w", i, err)
		}
	}

	for i, s := range part.Testing {
		if err := insert(PartitionTesting, i, s.KnownSample); err != nil {
			return fmt.Errorf("insert testing sample %d: %w", i, err)
		}
	}

	return nil
}

func parseSamples(data []byte, filename, contentType string) ([]knn.KnownSample, error) {
	if isJSON(filename, contentType) {
		return knn.ReadJSON(bytes.NewReader(data))
	}
	return knn.ReadCSV(bytes.NewReader(data))
}

func isJSON(filename, contentType string) bool {
	if strings.Contains(contentType, "json") {
		return true
	}
	return strings.EqualFold(filepath.Ext(filename), ".json")
}

func buildStorageKey(id uuid.UUID, filename string) string {
	return fmt.Sprintf("datasets/%s/%s", id, filename)
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	if name == "." || name == "" {
		name = "dataset"
	}
	return url.PathEscape(name)
}
