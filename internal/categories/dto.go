package categories

import (
	"time"

	"github.com/google/uuid"
)

// CategoryInput is the admin payload for create and update.
type CategoryInput struct {
	NameAr   string
	NameFr   string
	ImageRef *string
}

// CategoryDTO is the read model shared by the storefront and the back office.
// Images holds zero or one resolved URL.
type CategoryDTO struct {
	ID        uuid.UUID `json:"id"`
	NameAr    string    `json:"nameAr"`
	NameFr    string    `json:"nameFr"`
	ImageRef  *string   `json:"imageRef,omitempty"`
	Images    []string  `json:"images"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
