package tunings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/calyxlabs/calyx/internal/datasets"
	"github.com/calyxlabs/calyx/pkg/knn"
	"github.com/calyxlabs/calyx/pkg/pagination"
	"github.com/calyxlabs/calyx/pkg/query"
	"github.com/calyxlabs/calyx/pkg/repository"
)

type repo struct {
	db         *sql.DB
	sets       datasets.System
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a tuning repository implementing the System interface.
func New(
	db *sql.DB,
	sets datasets.System,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		sets:       sets,
		logger:     logger.With("system", "tunings"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Tuning], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Distance")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count tunings: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanTuning)
	if err != nil {
		return nil, fmt.Errorf("query tunings: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Tuning, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	t, err := repository.QueryOne(ctx, r.db, q, args, scanTuning)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &t, nil
}

func (r *repo) Run(ctx context.Context, cmd RunCommand) ([]Tuning, error) {
	ks := cmd.Ks
	if len(ks) == 0 {
		ks = DefaultKs
	}
	for _, k := range ks {
		if k < 1 {
			return nil, fmt.Errorf("%w: k must be positive, got %d", ErrInvalidRequest, k)
		}
	}

	names := cmd.Distances
	if len(names) == 0 {
		names = DefaultDistances
	}

	distances := make([]knn.Distance, len(names))
	for i, name := range names {
		dist, err := knn.ParseDistance(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidRequest, err)
		}
		distances[i] = dist
	}

	training, err := r.sets.Training(ctx, cmd.DatasetID)
	if err != nil {
		if errors.Is(err, datasets.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load training partition: %w", err)
	}

	testing, err := r.sets.Testing(ctx, cmd.DatasetID)
	if err != nil {
		return nil, fmt.Errorf("load testing partition: %w", err)
	}

	timings, err := knn.TuneGrid(ctx, training, testing, ks, distances)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRequest, err)
	}

	results, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) ([]Tuning, error) {
		return insertTunings(ctx, tx, cmd.DatasetID, timings)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	if err := r.sets.MarkTested(ctx, cmd.DatasetID); err != nil {
		r.logger.Warn("mark dataset tested failed", "dataset", cmd.DatasetID, "error", err)
	}

	r.logger.Info(
		"tuning grid evaluated",
		"dataset", cmd.DatasetID,
		"cells", len(results),
	)
	return results, nil
}

func (r *repo) Best(ctx context.Context, datasetID uuid.UUID) (*Tuning, error) {
	q := `
		SELECT id, dataset_id, k, distance, quality, elapsed_us, created_at
		FROM tunings
		WHERE dataset_id = $1
		ORDER BY quality DESC, k ASC, created_at DESC
		LIMIT 1`

	t, err := repository.QueryOne(ctx, r.db, q, []any{datasetID}, scanTuning)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoResults
		}
		return nil, fmt.Errorf("query best tuning: %w", err)
	}
	return &t, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	err := repository.ExecExpectOne(
		ctx, r.db,
		"DELETE FROM tunings WHERE id = $1",
		id,
	)
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("tuning deleted", "id", id)
	return nil
}

func insertTunings(
	ctx context.Context,
	tx *sql.Tx,
	datasetID uuid.UUID,
	timings []knn.Timing,
) ([]Tuning, error) {
	q := `
		INSERT INTO tunings(id, dataset_id, k, distance, quality, elapsed_us)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, dataset_id, k, distance, quality, elapsed_us, created_at`

	results := make([]Tuning, 0, len(timings))
	for _, timing := range timings {
		args := []any{
			uuid.New(),
			datasetID,
			timing.K,
			timing.Distance,
			timing.Quality,
			timing.Elapsed.Microseconds(),
		}

		t, err := repository.QueryOne(ctx, tx, q, args, scanTuning)
		if err != nil {
			return nil, fmt.Errorf("insert tuning k=%d distance=%s: %w", timing.K, timing.Distance, err)
		}
		results = append(results, t)
	}

	return results, nil
}
