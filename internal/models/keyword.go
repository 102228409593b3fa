package models

import (
	"time"

	"github.com/google/uuid"
)

// Keyword represents a skill keyword that CVs are matched against.
type Keyword struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
