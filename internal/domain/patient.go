package domain

import (
	"time"
)

type Patient struct {
	ID        int64     `json:"id"`
	Reference string    `json:"reference"` // national-ID style identifier
	FullName  string    `json:"fullName"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}
