package users

import (
	"context"

	"github.com/google/uuid"

	"github.com/calyxlabs/calyx/pkg/middleware"
	"github.com/calyxlabs/calyx/pkg/pagination"
)

// System defines the public contract for user domain operations. It also
// satisfies middleware.Authenticator so the API can gate requests on the
// stored credentials.
type System interface {
	middleware.Authenticator

	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[User], error)

	Find(ctx context.Context, id uuid.UUID) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	Create(ctx context.Context, cmd CreateCommand) (*User, error)
	SetPassword(ctx context.Context, id uuid.UUID, cmd SetPasswordCommand) error
	Delete(ctx context.Context, id uuid.UUID) error
}
