// Package docs builds the OpenAPI 3.0 description of the video API from the
// shared field definitions and publishes it through swag.
package docs

import (
	"encoding/json"
	"sync"

	"github.com/nijaru/video-api/models"
	"github.com/swaggo/swag"
)

// Spec represents an OpenAPI 3.0 specification.
type Spec struct {
	OpenAPI    string              `json:"openapi"`
	Info       Info                `json:"info"`
	Paths      map[string]PathItem `json:"paths"`
	Components Components          `json:"components"`
	Tags       []Tag               `json:"tags,omitempty"`
}

type Info struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Version     string `json:"version"`
}

type PathItem struct {
	Get    *Operation `json:"get,omitempty"`
	Put    *Operation `json:"put,omitempty"`
	Patch  *Operation `json:"patch,omitempty"`
	Delete *Operation `json:"delete,omitempty"`
}

type Operation struct {
	Tags        []string            `json:"tags,omitempty"`
	Summary     string              `json:"summary,omitempty"`
	Description string              `json:"description,omitempty"`
	OperationID string              `json:"operationId,omitempty"`
	Parameters  []Parameter         `json:"parameters,omitempty"`
	RequestBody *RequestBody        `json:"requestBody,omitempty"`
	Responses   map[string]Response `json:"responses"`
}

type Parameter struct {
	Name        string  `json:"name"`
	In          string  `json:"in"` // path, query
	Description string  `json:"description,omitempty"`
	Required    bool    `json:"required,omitempty"`
	Schema      *Schema `json:"schema,omitempty"`
}

type RequestBody struct {
	Description string               `json:"description,omitempty"`
	Required    bool                 `json:"required,omitempty"`
	Content     map[string]MediaType `json:"content"`
}

type Response struct {
	Description string               `json:"description"`
	Content     map[string]MediaType `json:"content,omitempty"`
}

type MediaType struct {
	Schema *Schema `json:"schema,omitempty"`
}

// Schema represents the subset of JSON Schema the API uses.
type Schema struct {
	Type        string             `json:"type,omitempty"`
	Format      string             `json:"format,omitempty"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Required    []string           `json:"required,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Ref         string             `json:"$ref,omitempty"`
	MinLength   *int               `json:"minLength,omitempty"`
	Minimum     *int64             `json:"minimum,omitempty"`
	Maximum     *int64             `json:"maximum,omitempty"`
	Default     any                `json:"default,omitempty"`
}

type Components struct {
	Schemas map[string]*Schema `json:"schemas"`
}

type Tag struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

const (
	Title       = "Video API"
	Description = "RESTful API for managing videos"

	tagVideos = "videos"
	jsonType  = "application/json"
)

// New builds the API description for the given version.
func New(version string) *Spec {
	return &Spec{
		OpenAPI: "3.0.2",
		Info: Info{
			Title:       Title,
			Description: Description,
			Version:     version,
		},
		Tags: []Tag{{Name: tagVideos, Description: "Video records"}},
		Paths: map[string]PathItem{
			"/api/videos":            collectionPath(),
			"/api/videos/{video_id}": itemPath(),
		},
		Components: Components{
			Schemas: map[string]*Schema{
				"Video":           objectSchema(append([]models.Field{models.IDField}, models.VideoFields...), true),
				"VideoInput":      objectSchema(models.VideoFields, true),
				"VideoPatch":      objectSchema(models.VideoFields, false),
				"PaginatedVideos": paginatedSchema(),
				"Error":           errorSchema(),
			},
		},
	}
}

// JSON returns the indented JSON encoding of the document.
func (s *Spec) JSON() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

func fieldSchema(f models.Field) *Schema {
	s := &Schema{
		Type:        string(f.Type),
		Description: f.Description,
		Minimum:     f.Minimum,
	}
	if f.Type == models.FieldInteger {
		s.Format = "int64"
	}
	if f.MinLength > 0 {
		minLength := f.MinLength
		s.MinLength = &minLength
	}
	return s
}

func objectSchema(fields []models.Field, withRequired bool) *Schema {
	s := &Schema{
		Type:       "object",
		Properties: make(map[string]*Schema, len(fields)),
	}
	for _, f := range fields {
		s.Properties[f.Name] = fieldSchema(f)
		if withRequired && f.Required {
			s.Required = append(s.Required, f.Name)
		}
	}
	return s
}

func paginatedSchema() *Schema {
	integer := func(desc string) *Schema {
		return &Schema{Type: "integer", Description: desc}
	}
	return &Schema{
		Type: "object",
		Properties: map[string]*Schema{
			"items": {
				Type:        "array",
				Description: "Videos on the current page",
				Items:       ref("Video"),
			},
			"page":     integer("Current page number"),
			"per_page": integer("Items per page"),
			"total":    integer("Total number of videos"),
			"pages":    integer("Total number of pages"),
		},
		Required: []string{"items", "page", "per_page", "total", "pages"},
	}
}

func errorSchema() *Schema {
	return &Schema{
		Type: "object",
		Properties: map[string]*Schema{
			"message": {Type: "string", Description: "Human readable error"},
		},
		Required: []string{"message"},
	}
}

func ref(name string) *Schema {
	return &Schema{Ref: "#/components/schemas/" + name}
}

func jsonContent(schema string) map[string]MediaType {
	return map[string]MediaType{jsonType: {Schema: ref(schema)}}
}

func errorResponse(desc string) Response {
	return Response{Description: desc, Content: jsonContent("Error")}
}

func videoIDParam(desc string) Parameter {
	return Parameter{
		Name:        "video_id",
		In:          "path",
		Description: desc,
		Required:    true,
		Schema:      &Schema{Type: "integer", Format: "int64", Minimum: new(int64)},
	}
}

func collectionPath() PathItem {
	defaultPage := int64(models.DefaultPage)
	maxPerPage := int64(models.MaxPerPage)
	minOne := int64(1)

	return PathItem{
		Get: &Operation{
			Tags:        []string{tagVideos},
			Summary:     "List videos",
			Description: "Returns a page of videos ordered by id",
			OperationID: "listVideos",
			Parameters: []Parameter{
				{
					Name:        "page",
					In:          "query",
					Description: "Page number",
					Schema:      &Schema{Type: "integer", Default: defaultPage, Minimum: &minOne},
				},
				{
					Name:        "per_page",
					In:          "query",
					Description: "Items per page",
					Schema: &Schema{
						Type:    "integer",
						Default: models.DefaultPerPage,
						Minimum: &minOne,
						Maximum: &maxPerPage,
					},
				},
			},
			Responses: map[string]Response{
				"200": {Description: "Paginated list of videos", Content: jsonContent("PaginatedVideos")},
			},
		},
	}
}

func itemPath() PathItem {
	return PathItem{
		Get: &Operation{
			Tags:        []string{tagVideos},
			Summary:     "Get a video by id",
			OperationID: "getVideo",
			Parameters:  []Parameter{videoIDParam("Video ID")},
			Responses: map[string]Response{
				"200": {Description: "Video found", Content: jsonContent("Video")},
				"404": errorResponse("Video not found"),
			},
		},
		Put: &Operation{
			Tags:        []string{tagVideos},
			Summary:     "Create a video",
			Description: "Creates a video under the id given in the path",
			OperationID: "createVideo",
			Parameters:  []Parameter{videoIDParam("ID for the new video")},
			RequestBody: &RequestBody{Required: true, Content: jsonContent("VideoInput")},
			Responses: map[string]Response{
				"201": {Description: "Video created", Content: jsonContent("Video")},
				"400": errorResponse("Invalid video data"),
				"409": errorResponse("Video ID already exists"),
			},
		},
		Patch: &Operation{
			Tags:        []string{tagVideos},
			Summary:     "Update a video",
			Description: "Updates only the fields present in the body",
			OperationID: "updateVideo",
			Parameters:  []Parameter{videoIDParam("ID of the video to update")},
			RequestBody: &RequestBody{Content: jsonContent("VideoPatch")},
			Responses: map[string]Response{
				"200": {Description: "Video updated", Content: jsonContent("Video")},
				"400": errorResponse("Invalid video data"),
				"404": errorResponse("Video not found"),
			},
		},
		Delete: &Operation{
			Tags:        []string{tagVideos},
			Summary:     "Delete a video",
			OperationID: "deleteVideo",
			Parameters:  []Parameter{videoIDParam("ID of the video to delete")},
			Responses: map[string]Response{
				"204": {Description: "Video deleted"},
				"404": errorResponse("Video not found"),
			},
		},
	}
}

// registry adapts the current document to swag.Swagger. swag.Register panics
// on a second registration, so it is registered once and the document swapped.
type registry struct {
	mu  sync.RWMutex
	doc []byte
}

func (r *registry) ReadDoc() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return string(r.doc)
}

var (
	swaggerDoc   = &registry{}
	registerOnce sync.Once
)

// Register publishes spec under swag's default instance name, replacing any
// previously registered document.
func Register(spec *Spec) ([]byte, error) {
	data, err := spec.JSON()
	if err != nil {
		return nil, err
	}

	swaggerDoc.mu.Lock()
	swaggerDoc.doc = data
	swaggerDoc.mu.Unlock()

	registerOnce.Do(func() {
		swag.Register(swag.Name, swaggerDoc)
	})

	return data, nil
}
