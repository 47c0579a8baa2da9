package employee

import "time"

type EmploymentStatus string

const (
	StatusActive   EmploymentStatus = "active"
	StatusInactive EmploymentStatus = "inactive"
)

type Employee struct {
	ID         string
	FullName   string
	Department *string
	Position   *string
	Status     EmploymentStatus
	JoinedAt   time.Time
}
