package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/calyxlabs/calyx/pkg/middleware"
	"github.com/calyxlabs/calyx/pkg/pagination"
	"github.com/calyxlabs/calyx/pkg/query"
	"github.com/calyxlabs/calyx/pkg/repository"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a user repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "users"),
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
) (*pagination.PageResult[User], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Username")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanUser)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*User, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	u, err := repository.QueryOne(ctx, r.db, q, args, scanUser)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &u, nil
}

func (r *repo) FindByUsername(ctx context.Context, username string) (*User, error) {
	q, args := query.NewBuilder(projection).BuildSingle("Username", username)

	u, err := repository.QueryOne(ctx, r.db, q, args, scanUser)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &u, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*User, error) {
	if cmd.Username == "" || cmd.Password == "" {
		return nil, ErrInvalidRequest
	}
	if !ValidRole(cmd.Role) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRole, cmd.Role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cmd.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	q := `
		INSERT INTO users(id, username, email, real_name, role, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, username, email, real_name, role, created_at, updated_at`

	insertArgs := []any{uuid.New(), cmd.Username, cmd.Email, cmd.RealName, cmd.Role, string(hash)}

	u, err := repository.QueryOne(ctx, r.db, q, insertArgs, scanUser)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("user created", "id", u.ID, "username", u.Username, "role", u.Role)
	return &u, nil
}

func (r *repo) SetPassword(ctx context.Context, id uuid.UUID, cmd SetPasswordCommand) error {
	if cmd.Password == "" {
		return ErrInvalidRequest
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cmd.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	err = repository.ExecExpectOne(
		ctx, r.db,
		"UPDATE users SET password_hash = $1, updated_at = now() WHERE id = $2",
		string(hash), id,
	)
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("user password updated", "id", id)
	return nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	err := repository.ExecExpectOne(
		ctx, r.db,
		"DELETE FROM users WHERE id = $1",
		id,
	)
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("user deleted", "id", id)
	return nil
}

// Authenticate resolves HTTP Basic credentials against the stored bcrypt
// hashes. Unknown usernames and mismatched passwords both return
// ErrInvalidCredentials.
func (r *repo) Authenticate(ctx context.Context, username, password string) (*middleware.Principal, error) {
	q := "SELECT password_hash, role FROM users WHERE username = $1"

	var (
		hash string
		role string
	)
	err := r.db.QueryRowContext(ctx, q, username).Scan(&hash, &role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("query credentials: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &middleware.Principal{Username: username, Role: role}, nil
}
