package api

import (
	"github.com/calyxlabs/calyx/internal/config"
	"github.com/calyxlabs/calyx/pkg/openapi"
)

// BuildSpec assembles the OpenAPI document for the API module.
func BuildSpec(cfg *config.Config) *openapi.Spec {
	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.API.OpenAPI.Description)
	spec.AddServer(cfg.API.BasePath)
	spec.RequireBasicAuth("User credentials managed through the users endpoints.")

	spec.Components.AddSchemas(map[string]*openapi.Schema{
		"Sample":         sampleSchema(),
		"Dataset":        datasetSchema(),
		"Classification": classificationSchema(),
		"Tuning":         tuningSchema(),
		"TuningRun":      tuningRunSchema(),
		"User":           userSchema(),
		"UserCreate":     userCreateSchema(),
	})

	registerDatasetPaths(spec)
	registerClassificationPaths(spec)
	registerTuningPaths(spec)
	registerUserPaths(spec)

	return spec
}

func registerDatasetPaths(spec *openapi.Spec) {
	spec.Paths["/datasets"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "List datasets",
			Tags:    []string{"datasets"},
			Parameters: []*openapi.Parameter{
				openapi.QueryParam("page", "integer", "Page number", false),
				openapi.QueryParam("page_size", "integer", "Results per page", false),
				openapi.QueryParam("search", "string", "Search name and filename", false),
				openapi.QueryParam("split_policy", "string", "Filter by split policy", false),
			},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Paginated datasets", "Dataset"),
			},
		},
		Post: &openapi.Operation{
			Summary:     "Upload dataset",
			Description: "Multipart upload of a labeled sample file in CSV or JSON form. The file is partitioned into training and testing sets on ingest.",
			Tags:        []string{"datasets"},
			Responses: map[int]*openapi.Response{
				201: openapi.ResponseJSON("Registered dataset", "Dataset"),
				400: openapi.ResponseRef("BadRequest"),
				409: openapi.ResponseRef("Conflict"),
			},
		},
	}

	spec.Paths["/datasets/{id}"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "Find dataset",
			Tags:       []string{"datasets"},
			Parameters: []*openapi.Parameter{openapi.PathParam("id", "Dataset ID")},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Dataset", "Dataset"),
				404: openapi.ResponseRef("NotFound"),
			},
		},
		Delete: &openapi.Operation{
			Summary:    "Delete dataset",
			Tags:       []string{"datasets"},
			Parameters: []*openapi.Parameter{openapi.PathParam("id", "Dataset ID")},
			Responses: map[int]*openapi.Response{
				204: {Description: "Deleted"},
				404: openapi.ResponseRef("NotFound"),
			},
		},
	}

	spec.Paths["/datasets/{id}/download"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "Download original dataset file",
			Tags:       []string{"datasets"},
			Parameters: []*openapi.Parameter{openapi.PathParam("id", "Dataset ID")},
			Responses: map[int]*openapi.Response{
				200: {Description: "Raw file stream"},
				404: openapi.ResponseRef("NotFound"),
			},
		},
	}
}

func registerClassificationPaths(spec *openapi.Spec) {
	spec.Paths["/classifications"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "List classifications",
			Tags:    []string{"classifications"},
			Parameters: []*openapi.Parameter{
				openapi.QueryParam("dataset_id", "string", "Filter by dataset", false),
				openapi.QueryParam("species", "string", "Filter by result species", false),
			},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Paginated classifications", "Classification"),
			},
		},
		Post: &openapi.Operation{
			Summary:     "Classify sample",
			Description: "Classifies an unknown sample against the dataset's training partition using k-nearest-neighbor voting.",
			Tags:        []string{"classifications"},
			RequestBody: openapi.RequestBodyJSON("Sample", true),
			Responses: map[int]*openapi.Response{
				201: openapi.ResponseJSON("Stored result", "Classification"),
				400: openapi.ResponseRef("BadRequest"),
				404: openapi.ResponseRef("NotFound"),
			},
		},
	}

	spec.Paths["/classifications/{id}"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "Find classification",
			Tags:       []string{"classifications"},
			Parameters: []*openapi.Parameter{openapi.PathParam("id", "Classification ID")},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Classification", "Classification"),
				404: openapi.ResponseRef("NotFound"),
			},
		},
		Delete: &openapi.Operation{
			Summary:    "Delete classification",
			Tags:       []string{"classifications"},
			Parameters: []*openapi.Parameter{openapi.PathParam("id", "Classification ID")},
			Responses: map[int]*openapi.Response{
				204: {Description: "Deleted"},
				404: openapi.ResponseRef("NotFound"),
			},
		},
	}
}

func registerTuningPaths(spec *openapi.Spec) {
	spec.Paths["/tunings"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "List tunings",
			Tags:    []string{"tunings"},
			Parameters: []*openapi.Parameter{
				openapi.QueryParam("dataset_id", "string", "Filter by dataset", false),
			},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Paginated tunings", "Tuning"),
			},
		},
		Post: &openapi.Operation{
			Summary:     "Run tuning grid",
			Description: "Evaluates every k and distance combination against the dataset's testing partition and stores one result per cell.",
			Tags:        []string{"tunings"},
			RequestBody: openapi.RequestBodyJSON("TuningRun", true),
			Responses: map[int]*openapi.Response{
				201: openapi.ResponseJSON("Stored grid results", "Tuning"),
				400: openapi.ResponseRef("BadRequest"),
				404: openapi.ResponseRef("NotFound"),
			},
		},
	}

	spec.Paths["/tunings/best/{dataset_id}"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "Best tuning for dataset",
			Tags:       []string{"tunings"},
			Parameters: []*openapi.Parameter{openapi.PathParam("dataset_id", "Dataset ID")},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Highest quality tuning", "Tuning"),
				404: openapi.ResponseRef("NotFound"),
			},
		},
	}

	spec.Paths["/tunings/{id}"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "Find tuning",
			Tags:       []string{"tunings"},
			Parameters: []*openapi.Parameter{openapi.PathParam("id", "Tuning ID")},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Tuning", "Tuning"),
				404: openapi.ResponseRef("NotFound"),
			},
		},
		Delete: &openapi.Operation{
			Summary:    "Delete tuning",
			Tags:       []string{"tunings"},
			Parameters: []*openapi.Parameter{openapi.PathParam("id", "Tuning ID")},
			Responses: map[int]*openapi.Response{
				204: {Description: "Deleted"},
				404: openapi.ResponseRef("NotFound"),
			},
		},
	}
}

func registerUserPaths(spec *openapi.Spec) {
	spec.Paths["/users"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "List users",
			Tags:    []string{"users"},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Paginated users", "User"),
			},
		},
		Post: &openapi.Operation{
			Summary:     "Create user",
			Tags:        []string{"users"},
			RequestBody: openapi.RequestBodyJSON("UserCreate", true),
			Responses: map[int]*openapi.Response{
				201: openapi.ResponseJSON("Created user", "User"),
				400: openapi.ResponseRef("BadRequest"),
				409: openapi.ResponseRef("Conflict"),
			},
		},
	}

	spec.Paths["/users/whoami"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "Authenticated identity",
			Tags:    []string{"users"},
			Responses: map[int]*openapi.Response{
				200: {Description: "Username and role of the caller"},
				401: openapi.ResponseRef("Unauthorized"),
			},
		},
	}

	spec.Paths["/users/{id}"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "Find user",
			Tags:       []string{"users"},
			Parameters: []*openapi.Parameter{openapi.PathParam("id", "User ID")},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("User", "User"),
				404: openapi.ResponseRef("NotFound"),
			},
		},
		Delete: &openapi.Operation{
			Summary:    "Delete user",
			Tags:       []string{"users"},
			Parameters: []*openapi.Parameter{openapi.PathParam("id", "User ID")},
			Responses: map[int]*openapi.Response{
				204: {Description: "Deleted"},
				404: openapi.ResponseRef("NotFound"),
			},
		},
	}
}

func sampleSchema() *openapi.Schema {
	return &openapi.Schema{
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"dataset_id":   {Type: "string", Format: "uuid"},
			"sepal_length": {Type: "number", Example: 5.1},
			"sepal_width":  {Type: "number", Example: 3.5},
			"petal_length": {Type: "number", Example: 1.4},
			"petal_width":  {Type: "number", Example: 0.2},
			"k":            {Type: "integer", Description: "Optional neighbor count override"},
			"distance":     {Type: "string", Description: "Optional distance override", Enum: []any{"euclidean", "manhattan", "chebyshev", "sorensen"}},
		},
		Required: []string{"dataset_id", "sepal_length", "sepal_width", "petal_length", "petal_width"},
	}
}

func datasetSchema() *openapi.Schema {
	return &openapi.Schema{
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"id":             {Type: "string", Format: "uuid"},
			"name":           {Type: "string"},
			"filename":       {Type: "string"},
			"content_type":   {Type: "string"},
			"size_bytes":     {Type: "integer"},
			"sample_count":   {Type: "integer"},
			"training_count": {Type: "integer"},
			"testing_count":  {Type: "integer"},
			"split_policy":   {Type: "string"},
			"uploaded_at":    {Type: "string", Format: "date-time"},
			"tested_at":      {Type: "string", Format: "date-time"},
		},
	}
}

func classificationSchema() *openapi.Schema {
	return &openapi.Schema{
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"id":           {Type: "string", Format: "uuid"},
			"dataset_id":   {Type: "string", Format: "uuid"},
			"sepal_length": {Type: "number"},
			"sepal_width":  {Type: "number"},
			"petal_length": {Type: "number"},
			"petal_width":  {Type: "number"},
			"species":      {Type: "string", Description: "Assigned species"},
			"k":            {Type: "integer"},
			"distance":     {Type: "string"},
			"created_at":   {Type: "string", Format: "date-time"},
		},
	}
}

func tuningSchema() *openapi.Schema {
	return &openapi.Schema{
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"id":         {Type: "string", Format: "uuid"},
			"dataset_id": {Type: "string", Format: "uuid"},
			"k":          {Type: "integer"},
			"distance":   {Type: "string"},
			"quality":    {Type: "number", Description: "Fraction of testing samples classified correctly"},
			"elapsed_us": {Type: "integer", Description: "Evaluation time in microseconds"},
			"created_at": {Type: "string", Format: "date-time"},
		},
	}
}

func tuningRunSchema() *openapi.Schema {
	return &openapi.Schema{
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"dataset_id": {Type: "string", Format: "uuid"},
			"ks":         {Type: "array", Items: &openapi.Schema{Type: "integer"}},
			"distances":  {Type: "array", Items: &openapi.Schema{Type: "string"}},
		},
		Required: []string{"dataset_id"},
	}
}

func userSchema() *openapi.Schema {
	return &openapi.Schema{
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"id":         {Type: "string", Format: "uuid"},
			"username":   {Type: "string"},
			"email":      {Type: "string"},
			"real_name":  {Type: "string"},
			"role":       {Type: "string", Enum: []any{"botanist", "researcher"}},
			"created_at": {Type: "string", Format: "date-time"},
			"updated_at": {Type: "string", Format: "date-time"},
		},
	}
}

func userCreateSchema() *openapi.Schema {
	return &openapi.Schema{
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"username":  {Type: "string"},
			"email":     {Type: "string"},
			"real_name": {Type: "string"},
			"password":  {Type: "string"},
			"role":      {Type: "string", Enum: []any{"botanist", "researcher"}},
		},
		Required: []string{"username", "password", "role"},
	}
}
