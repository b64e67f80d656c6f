package domain

import "time"

// Category classifies a job posting.
type Category string

const (
	CategoryWeb       Category = "web"
	CategoryMobile    Category = "mobile"
	CategoryDesign    Category = "design"
	CategoryWriting   Category = "writing"
	CategoryMarketing Category = "marketing"
	CategoryOther     Category = "other"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryWeb,
	CategoryMobile,
	CategoryDesign,
	CategoryWriting,
	CategoryMarketing,
	CategoryOther,
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ApplicationStatus is the decision state of an application.
type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "pending"
	StatusAccepted ApplicationStatus = "accepted"
	StatusRejected ApplicationStatus = "rejected"
)

// IsDecision reports whether s is a status a client may set.
func (s ApplicationStatus) IsDecision() bool {
	return s == StatusAccepted || s == StatusRejected
}

// CanTransitionTo reports whether a decision may move the application from s
// to next. With allowRevision a decided application may be flipped again.
func (s ApplicationStatus) CanTransitionTo(next ApplicationStatus, allowRevision bool) bool {
	if !next.IsDecision() {
		return false
	}
	if s == StatusPending {
		return true
	}
	return allowRevision
}

// Job is a client-posted work request. Deadline is a calendar date (YYYY-MM-DD).
type Job struct {
	ID          string    `json:"id"`
	ClientID    string    `json:"client_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    Category  `json:"category"`
	Budget      float64   `json:"budget"`
	Deadline    string    `json:"deadline"`
	CreatedAt   time.Time `json:"created_at"`
}

// Application is a freelancer's proposal against a job. FreelancerName is a
// snapshot taken at submission and is not re-synced.
type Application struct {
	ID             string            `json:"id"`
	JobID          string            `json:"job_id"`
	FreelancerID   string            `json:"freelancer_id"`
	FreelancerName string            `json:"freelancer_name"`
	CoverLetter    string            `json:"cover_letter"`
	ProposedBudget float64           `json:"proposed_budget"`
	Status         ApplicationStatus `json:"status"`
	CreatedAt      time.Time         `json:"created_at"`
}
