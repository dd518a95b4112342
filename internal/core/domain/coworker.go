package domain

import (
	"errors"
	"time"
)

var ErrCoWorkerNotFound = errors.New("co-worker not found")

// CoWorker is an external collaborator registered by a CSR.
type CoWorker struct {
	ID        string    `json:"id"`
	FullName  string    `json:"fullName"`
	CNIC      string    `json:"cnic"`
	Reference string    `json:"reference,omitempty"`
	Purpose   string    `json:"purpose,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
