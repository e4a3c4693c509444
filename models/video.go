package models

// Video is a single video record. The ID is chosen by the client on creation.
type Video struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Views int64  `json:"views"`
	Likes int64  `json:"likes"`
}

// VideoInput holds the fields required to create a video.
type VideoInput struct {
	Name  string
	Views int64
	Likes int64
}

// ToVideo builds the record stored under id.
func (in VideoInput) ToVideo(id int64) *Video {
	return &Video{
		ID:    id,
		Name:  in.Name,
		Views: in.Views,
		Likes: in.Likes,
	}
}

// VideoPatch holds a partial update. A nil field is left untouched.
type VideoPatch struct {
	Name  *string
	Views *int64
	Likes *int64
}

func (p VideoPatch) IsEmpty() bool {
	return p.Name == nil && p.Views == nil && p.Likes == nil
}

// Apply copies the supplied fields onto v.
func (p VideoPatch) Apply(v *Video) {
	if p.Name != nil {
		v.Name = *p.Name
	}
	if p.Views != nil {
		v.Views = *p.Views
	}
	if p.Likes != nil {
		v.Likes = *p.Likes
	}
}
