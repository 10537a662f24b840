package openapi

import "maps"

// NewComponents creates Components with shared schemas and error responses.
func NewComponents() *Components {
	return &Components{
		Schemas: map[string]*Schema{
			"PageRequest": {
				Type: "object",
				Properties: map[string]*Schema{
					"page":      {Type: "integer", Description: "Page number (1-indexed)", Example: 1},
					"page_size": {Type: "integer", Description: "Results per page", Example: 20},
					"search":    {Type: "string", Description: "Search query"},
					"sort":      {Type: "string", Description: "Comma-separated sort fields. Prefix with - for descending. Example: name,-created_at"},
				},
			},
		},
		Responses: map[string]*Response{
			"BadRequest":   errorResponse("Invalid request"),
			"Unauthorized": errorResponse("Missing or invalid credentials"),
			"Forbidden":    errorResponse("Insufficient role"),
			"NotFound":     errorResponse("Resource not found"),
			"Conflict":     errorResponse("Resource conflict (duplicate name)"),
		},
		SecuritySchemes: make(map[string]*SecurityScheme),
	}
}

func errorResponse(description string) *Response {
	return &Response{
		Description: description,
		Content: map[string]*MediaType{
			"application/json": {
				Schema: &Schema{
					Type: "object",
					Properties: map[string]*Schema{
						"error": {Type: "string", Description: "Error message"},
					},
				},
			},
		},
	}
}

// Components holds reusable schemas, responses, and security schemes.
type Components struct {
	Schemas         map[string]*Schema         `json:"schemas,omitempty"`
	Responses       map[string]*Response       `json:"responses,omitempty"`
	SecuritySchemes map[string]*SecurityScheme `json:"securitySchemes,omitempty"`
}

// AddSchemas merges the given schemas into the component schemas.
func (c *Components) AddSchemas(schemas map[string]*Schema) {
	maps.Copy(c.Schemas, schemas)
}

// AddResponses merges the given responses into the component responses.
func (c *Components) AddResponses(responses map[string]*Response) {
	maps.Copy(c.Responses, responses)
}

// SchemaRef returns a Schema with a $ref to the named component schema.
func SchemaRef(name string) *Schema {
	return &Schema{Ref: "#/components/schemas/" + name}
}

// ResponseRef returns a Response with a $ref to the named component response.
func ResponseRef(name string) *Response {
	return &Response{Ref: "#/components/responses/" + name}
}

// RequestBodyJSON creates a JSON request body referencing the named schema.
func RequestBodyJSON(schemaName string, required bool) *RequestBody {
	return &RequestBody{
		Required: required,
		Content: map[string]*MediaType{
			"application/json": {Schema: SchemaRef(schemaName)},
		},
	}
}

// ResponseJSON creates a JSON response referencing the named schema.
func ResponseJSON(description, schemaName string) *Response {
	return &Response{
		Description: description,
		Content: map[string]*MediaType{
			"application/json": {Schema: SchemaRef(schemaName)},
		},
	}
}

// PathParam creates a required UUID path parameter.
func PathParam(name, description string) *Parameter {
	return &Parameter{
		Name:        name,
		In:          "path",
		Required:    true,
		Description: description,
		Schema:      &Schema{Type: "string", Format: "uuid"},
	}
}

// QueryParam creates a query parameter with the given type.
func QueryParam(name, typ, description string, required bool) *Parameter {
	return &Parameter{
		Name:        name,
		In:          "query",
		Required:    required,
		Description: description,
		Schema:      &Schema{Type: typ},
	}
}
