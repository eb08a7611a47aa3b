package avatar

import (
	"time"

	"github.com/google/uuid"
)

// Avatar represents the stored profile picture of a member. At most one
// row exists per member; a new upload supersedes the previous one.
type Avatar struct {
	MemberID    uuid.UUID `json:"member_id"`
	ObjectPath  string    `json:"object_path"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
