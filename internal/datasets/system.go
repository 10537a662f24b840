package datasets

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/calyxlabs/calyx/pkg/knn"
	"github.com/calyxlabs/calyx/pkg/pagination"
)

// System defines the public contract for dataset domain operations.
type System interface {
	Handler(maxUploadSize int64) *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Dataset], error)

	Find(ctx context.Context, id uuid.UUID) (*Dataset, error)
	Create(ctx context.Context, cmd CreateCommand) (*Dataset, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// Download streams the raw uploaded file; the caller closes the reader.
	Download(ctx context.Context, id uuid.UUID) (*Dataset, io.ReadCloser, error)

	// Training returns the training partition in upload order.
	Training(ctx context.Context, id uuid.UUID) ([]knn.TrainingSample, error)

	// Testing returns the testing partition in upload order.
	Testing(ctx context.Context, id uuid.UUID) ([]knn.TestingSample, error)

	// MarkTested records that a tuning run evaluated the dataset.
	MarkTested(ctx context.Context, id uuid.UUID) error
}
