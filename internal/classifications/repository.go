package classifications

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
	db              *sql.DB
	sets            datasets.System
	logger          *slog.Logger
	pagination      pagination.Config
	defaultK        int
	defaultDistance string
}

// New creates a classification repository implementing the System interface.
// defaultK and defaultDistance apply when a classify request omits them.
func New(
	db *sql.DB,
	sets datasets.System,
	logger *slog.Logger,
	pagination pagination.Config,
	defaultK int,
	defaultDistance string,
) System {
	return &repo{
		db:              db,
		sets:            sets,
		logger:          logger.With("system", "classifications"),
		pagination:      pagination,
		defaultK:        defaultK,
		defaultDistance: defaultDistance,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Classification], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Species", "Distance")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count classifications: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanClassification)
	if err != nil {
		return nil, fmt.Errorf("query classifications: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Classification, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	c, err := repository.QueryOne(ctx, r.db, q, args, scanClassification)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &c, nil
}

func (r *repo) Classify(ctx context.Context, cmd ClassifyCommand) (*Classification, error) {
	k := r.defaultK
	if cmd.K != nil {
		k = *cmd.K
	}

	distName := r.defaultDistance
	if cmd.Distance != nil {
		distName = *cmd.Distance
	}

	dist, err := knn.ParseDistance(distName)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRequest, err)
	}

	training, err := r.sets.Training(ctx, cmd.DatasetID)
	if err != nil {
		if errors.Is(err, datasets.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load training partition: %w", err)
	}

	unknown := knn.UnknownSample{Sample: knn.Sample{
		SepalLength: cmd.SepalLength,
		SepalWidth:  cmd.SepalWidth,
		PetalLength: cmd.PetalLength,
		PetalWidth:  cmd.PetalWidth,
	}}

	species, err := knn.Classify(k, dist, training, unknown)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRequest, err)
	}

	q := `
		INSERT INTO classifications(id, dataset_id, sepal_length, sepal_width, petal_length, petal_width, species, k, distance)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, dataset_id, sepal_length, sepal_width, petal_length, petal_width, species, k, distance, created_at`

	insertArgs := []any{
		uuid.New(),
		cmd.DatasetID,
		cmd.SepalLength,
		cmd.SepalWidth,
		cmd.PetalLength,
		cmd.PetalWidth,
		string(species),
		k,
		dist.Name(),
	}

	c, err := repository.QueryOne(ctx, r.db, q, insertArgs, scanClassification)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info(
		"sample classified",
		"id", c.ID,
		"dataset", c.DatasetID,
		"species", c.Species,
		"k", c.K,
		"distance", c.Distance,
	)
	return &c, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	err := repository.ExecExpectOne(
		ctx, r.db,
		"DELETE FROM classifications WHERE id = $1",
		id,
	)
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("classification deleted", "id", id)
	return nil
}
