package domain

import (
	"errors"
	"time"
)

var ErrCourseNotFound = errors.New("course not found")

// CourseDuration captures the offered schedule formats for a course.
type CourseDuration struct {
	Weekend3Months  bool `json:"weekend3Months" bson:"weekend3Months"`
	Weekdays2Months bool `json:"weekdays2Months" bson:"weekdays2Months"`
	OneMonth        bool `json:"oneMonth" bson:"oneMonth"`
	Levelwise       bool `json:"levelwise" bson:"levelwise"`
}

// Course is a training course offered by the organization.
type Course struct {
	ID          string         `json:"id"`
	CourseName  string         `json:"courseName"`
	TrainerName string         `json:"trainerName"`
	Price       float64        `json:"price"`
	Duration    CourseDuration `json:"duration"`
	CreatedBy   string         `json:"createdBy,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}
