package tunings

import (
	"context"

	"github.com/google/uuid"

	"github.com/calyxlabs/calyx/pkg/pagination"
)

// System defines the public contract for tuning domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Tuning], error)

	Find(ctx context.Context, id uuid.UUID) (*Tuning, error)

	// Run evaluates the grid and stores one Tuning per cell.
	Run(ctx context.Context, cmd RunCommand) ([]Tuning, error)

	// Best returns the stored tuning with the highest quality for a dataset.
	Best(ctx context.Context, datasetID uuid.UUID) (*Tuning, error)

	Delete(ctx context.Context, id uuid.UUID) error
}
