package openapi

import "maps"

func errorResponse(description string) *Response {
	return &Response{
		Description: description,
		Content: map[string]*MediaType{
			"application/json": {Schema: SchemaRef("Error")},
		},
	}
}

// NewComponents creates Components with the shared error schema and
// error responses.
func NewComponents() *Components {
	return &Components{
		Schemas: map[string]*Schema{
			"Error": {
				Type: "object",
				Properties: map[string]*Schema{
					"error": {Type: "string", Description: "Error message"},
				},
				Required: []string{"error"},
			},
		},
		Responses: map[string]*Response{
			"BadRequest":         errorResponse("Invalid request"),
			"PayloadTooLarge":    errorResponse("Request body exceeds the configured limit"),
			"TooManyRequests":    errorResponse("Rate limit exceeded"),
			"ServiceUnavailable": errorResponse("Model artifacts not loaded"),
			"InternalError":      errorResponse("Internal server error"),
		},
	}
}

// AddSchemas merges the given schemas into the component schemas.
func (c *Components) AddSchemas(schemas map[string]*Schema) {
	maps.Copy(c.Schemas, schemas)
}

// AddResponses merges the given responses into the component responses.
func (c *Components) AddResponses(responses map[string]*Response) {
	maps.Copy(c.Responses, responses)
}
