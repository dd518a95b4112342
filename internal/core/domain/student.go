package domain

import (
	"errors"
	"time"
)

var ErrStudentNotFound = errors.New("student not found")

// Student is an enrolled or prospective student managed by CSRs.
type Student struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	GuardianName string    `json:"guardianName"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	CreatedBy    string    `json:"createdBy,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
