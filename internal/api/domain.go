package api

import (
	"github.com/calyxlabs/calyx/internal/classifications"
	"github.com/calyxlabs/calyx/internal/datasets"
	"github.com/calyxlabs/calyx/internal/tunings"
	"github.com/calyxlabs/calyx/internal/users"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Datasets        datasets.System
	Classifications classifications.System
	Tunings         tunings.System
	Users           users.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	datasetsSystem := datasets.New(
		runtime.Database.Connection(),
		runtime.Storage,
		runtime.Logger,
		runtime.Pagination,
		runtime.Model.Splitter(),
		runtime.Model.SplitPolicy,
	)

	classificationsSystem := classifications.New(
		runtime.Database.Connection(),
		datasetsSystem,
		runtime.Logger,
		runtime.Pagination,
		runtime.Model.DefaultK,
		runtime.Model.DefaultDistance,
	)

	tuningsSystem := tunings.New(
		runtime.Database.Connection(),
		datasetsSystem,
		runtime.Logger,
		runtime.Pagination,
	)

	usersSystem := users.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
	)

	return &Domain{
		Datasets:        datasetsSystem,
		Classifications: classificationsSystem,
		Tunings:         tuningsSystem,
		Users:           usersSystem,
	}
}
