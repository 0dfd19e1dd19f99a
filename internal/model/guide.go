package model

import (
	"time"

	"github.com/google/uuid"
)

// PeriodType labels how a guide groups its terms. It has no effect on the
// prerequisite logic, only on display.
type PeriodType string

const (
	PeriodSemester  PeriodType = "semester"
	PeriodQuarter   PeriodType = "quarter"
	PeriodTrimester PeriodType = "trimester"
	PeriodBimester  PeriodType = "bimester"
)

// Valid reports whether p is one of the known period types.
func (p PeriodType) Valid() bool {
	switch p {
	case PeriodSemester, PeriodQuarter, PeriodTrimester, PeriodBimester:
		return true
	}
	return false
}

// Label returns the Spanish singular term name for the period type.
func (p PeriodType) Label() string {
	switch p {
	case PeriodQuarter:
		return "Cuatrimestre"
	case PeriodTrimester:
		return "Trimestre"
	case PeriodBimester:
		return "Bimestre"
	default:
		return "Semestre"
	}
}

// SubjectStatus enumerates the progression states of a subject.
type SubjectStatus string

const (
	StatusBlocked    SubjectStatus = "blocked"
	StatusAvailable  SubjectStatus = "available"
	StatusInProgress SubjectStatus = "in_progress"
	StatusApproved   SubjectStatus = "approved"
)

// Valid reports whether s is one of the known statuses.
func (s SubjectStatus) Valid() bool {
	switch s {
	case StatusBlocked, StatusAvailable, StatusInProgress, StatusApproved:
		return true
	}
	return false
}

// Subject is one course inside a guide. Subjects are embedded in the guide
// document (the subjects JSONB column), not a separate table.
type Subject struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Credits       int           `json:"credits"`
	Period        int           `json:"period"`
	Prerequisites []string      `json:"prerequisites"`
	Status        SubjectStatus `json:"status"`
	// Score is the grade in [0,100]; present only while Status is approved.
	Score *float64 `json:"score,omitempty"`
}

// Guide is a user's curriculum map, the root persisted aggregate.
type Guide struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"user_id"`
	Name       string     `json:"name"`
	University string     `json:"university"`
	PeriodType PeriodType `json:"period_type"`
	Theme      Theme      `json:"theme"`
	IsPublic   bool       `json:"is_public"`
	Subjects   []Subject  `json:"subjects"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// MaxPeriod returns the highest period index among the guide's subjects,
// 0 for an empty guide.
func (g *Guide) MaxPeriod() int {
	max := 0
	for _, s := range g.Subjects {
		if s.Period > max {
			max = s.Period
		}
	}
	return max
}

// SubjectByID returns the subject with the given id, or nil.
func (g *Guide) SubjectByID(id string) *Subject {
	for i := range g.Subjects {
		if g.Subjects[i].ID == id {
			return &g.Subjects[i]
		}
	}
	return nil
}

// PublicGuide is a guide joined with its owner's public profile, as shown in
// the public listing.
type PublicGuide struct {
	Guide
	OwnerName    string `json:"owner_name"`
	OwnerCountry string `json:"owner_country"`
}

// CreateGuideRequest is the payload for creating a new guide.
type CreateGuideRequest struct {
	Name       string     `json:"name" binding:"required,min=2,max=150"`
	University string     `json:"university" binding:"required,min=2,max=150"`
	PeriodType PeriodType `json:"period_type" binding:"required,oneof=semester quarter trimester bimester"`
}

// AddSubjectRequest is the payload for adding a subject to a guide.
type AddSubjectRequest struct {
	Name          string   `json:"name" binding:"required,min=2,max=150"`
	Credits       int      `json:"credits" binding:"required"`
	Period        int      `json:"period" binding:"required"`
	Prerequisites []string `json:"prerequisites"`
}

// ChangeStatusRequest is the payload for moving a subject through its states.
type ChangeStatusRequest struct {
	Status SubjectStatus `json:"status" binding:"required,oneof=blocked available in_progress approved"`
	Score  *float64      `json:"score"`
}

// SetVisibilityRequest toggles the public flag of a guide.
type SetVisibilityRequest struct {
	IsPublic *bool `json:"is_public" binding:"required"`
}

// SetThemeRequest changes the visual theme of a guide.
type SetThemeRequest struct {
	Theme Theme `json:"theme" binding:"required"`
}
