package users

import (
	"net/url"

	"github.com/calyxlabs/calyx/pkg/query"
	"github.com/calyxlabs/calyx/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "users", "u").
	Project("id", "ID").
	Project("username", "Username").
	Project("email", "Email").
	Project("real_name", "RealName").
	Project("role", "Role").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field: "Username",
}

// Filters contains optional filtering criteria for user queries. Nil fields
// are ignored. Role uses exact matching; Username uses case-insensitive
// contains matching.
type Filters struct {
	Username *string `json:"username,omitempty"`
	Role     *string `json:"role,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereContains("Username", f.Username).
		WhereEquals("Role", f.Role)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if u := values.Get("username"); u != "" {
		f.Username = &u
	}

	if r := values.Get("role"); r != "" {
		f.Role = &r
	}

	return f
}

func scanUser(s repository.Scanner) (User, error) {
	var u User
	err := s.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.RealName,
		&u.Role,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}
