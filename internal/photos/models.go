package photos

import (
	"time"

	"github.com/google/uuid"
)

// PhotoDTO is the API representation of a progress photo
type PhotoDTO struct {
	ID          uuid.UUID `json:"id"`
	ProfileID   uuid.UUID `json:"profile_id"`
	Date        string    `json:"date"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	CreatedAt   time.Time `json:"created_at"`
}

// PhotosResponse is the list response
type PhotosResponse struct {
	Photos []PhotoDTO `json:"photos"`
}
