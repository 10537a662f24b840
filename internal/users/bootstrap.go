package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/calyxlabs/calyx/pkg/pagination"
)

// Bootstrap seeds an initial account when the user store is empty, so a
// fresh deployment has credentials that can pass authentication. It is a
// no-op when any user already exists, and tolerates a concurrent seed
// racing ahead of it.
func Bootstrap(ctx context.Context, sys System, cmd CreateCommand) error {
	page, err := sys.List(ctx, pagination.PageRequest{Page: 1, PageSize: 1}, Filters{})
	if err != nil {
		return fmt.Errorf("check user store: %w", err)
	}
	if page.Total > 0 {
		return nil
	}

	if _, err := sys.Create(ctx, cmd); err != nil {
		if errors.Is(err, ErrDuplicate) {
			return nil
		}
		return fmt.Errorf("seed initial user: %w", err)
	}

	return nil
}
