package models

type FieldType string

const (
	FieldString  FieldType = "string"
	FieldInteger FieldType = "integer"
)

// Field describes one attribute of a video as accepted on the wire. Validation
// and the published API description are both derived from VideoFields.
type Field struct {
	Name        string
	Type        FieldType
	Description string
	// Required applies to creation only; updates accept any subset.
	Required  bool
	MinLength int
	Minimum   *int64
}

var zero int64

// IDField describes the client-chosen identifier taken from the request path.
var IDField = Field{
	Name:        "id",
	Type:        FieldInteger,
	Description: "Unique video ID",
	Required:    true,
}

// VideoFields lists the body fields of a video in wire order.
var VideoFields = []Field{
	{
		Name:        "name",
		Type:        FieldString,
		Description: "Name or title of the video",
		Required:    true,
		MinLength:   1,
	},
	{
		Name:        "views",
		Type:        FieldInteger,
		Description: "Number of views",
		Required:    true,
		Minimum:     &zero,
	},
	{
		Name:        "likes",
		Type:        FieldInteger,
		Description: "Number of likes",
		Required:    true,
		Minimum:     &zero,
	},
}
