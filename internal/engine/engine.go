// Package engine implements the prerequisite-driven state machine that governs
// subject progression inside a guide. All operations are pure computations over
// an in-memory guide; persistence is the caller's job.
package engine

import (
	"math"

	"github.com/crist-12/malla-curricular/internal/model"
	"github.com/google/uuid"
)

// AddSubjectInput carries the user-supplied fields of a new subject.
type AddSubjectInput struct {
	Name          string
	Credits       int
	Period        int
	Prerequisites []string
}

// AddSubject validates the input, assigns a fresh id and appends the subject
// to the guide. The initial status is available when the prerequisite set is
// empty and blocked otherwise — the current state of the referenced
// prerequisites is deliberately not consulted.
func AddSubject(g *model.Guide, in AddSubjectInput) (*model.Subject, error) {
	if in.Credits <= 0 {
		return nil, ErrNonPositiveCredits
	}
	if in.Period <= 0 {
		return nil, ErrNonPositivePeriod
	}
	for _, preID := range in.Prerequisites {
		pre := g.SubjectByID(preID)
		if pre == nil {
			return nil, ErrUnknownPrerequisite
		}
		if pre.Period >= in.Period {
			return nil, ErrPrerequisitePeriod
		}
	}

	status := model.StatusAvailable
	if len(in.Prerequisites) > 0 {
		status = model.StatusBlocked
	}

	prereqs := in.Prerequisites
	if prereqs == nil {
		prereqs = []string{}
	}

	subject := model.Subject{
		ID:            uuid.NewString(),
		Name:          in.Name,
		Credits:       in.Credits,
		Period:        in.Period,
		Prerequisites: prereqs,
		Status:        status,
	}

	g.Subjects = append(g.Subjects, subject)
	return &g.Subjects[len(g.Subjects)-1], nil
}

// allowedTransitions is the direct transition table. Blocked subjects have no
// direct transitions; they only leave blocked via propagation.
var allowedTransitions = map[model.SubjectStatus][]model.SubjectStatus{
	model.StatusAvailable:  {model.StatusInProgress, model.StatusApproved},
	model.StatusInProgress: {model.StatusAvailable, model.StatusApproved},
	model.StatusApproved:   {model.StatusAvailable},
	model.StatusBlocked:    {},
}

func transitionAllowed(from, to model.SubjectStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ChangeStatus applies a direct status transition to the subject with the
// given id and then re-derives the eligibility of its direct dependents
// against the post-change snapshot: a dependent becomes available when every
// one of its prerequisites is approved, blocked otherwise. Propagation is one
// hop deep — a chain of dependents settles one link per call.
//
// All validation happens before any mutation; on error the guide is unchanged.
func ChangeStatus(g *model.Guide, subjectID string, newStatus model.SubjectStatus, score *float64) error {
	if !newStatus.Valid() {
		return ErrUnknownStatus
	}

	subject := g.SubjectByID(subjectID)
	if subject == nil {
		return ErrSubjectNotFound
	}
	if subject.Status == model.StatusBlocked {
		return ErrSubjectBlocked
	}
	if !transitionAllowed(subject.Status, newStatus) {
		return ErrIllegalTransition
	}

	if newStatus == model.StatusApproved {
		if score == nil {
			return ErrScoreRequired
		}
		if *score < 0 || *score > 100 {
			return ErrScoreOutOfRange
		}
	}

	subject.Status = newStatus
	if newStatus == model.StatusApproved {
		v := *score
		subject.Score = &v
	} else {
		subject.Score = nil
	}

	propagate(g, subjectID)
	return nil
}

// propagate re-evaluates the direct dependents of the changed subject.
// Eligibility is computed against the snapshot taken right after the direct
// change, so dependents rewritten earlier in the loop do not influence later
// ones. A dependent forced out of approved loses its score, keeping scores
// attached to approved subjects only.
func propagate(g *model.Guide, changedID string) {
	snapshot := make(map[string]model.SubjectStatus, len(g.Subjects))
	for _, s := range g.Subjects {
		snapshot[s.ID] = s.Status
	}

	for i := range g.Subjects {
		dep := &g.Subjects[i]
		if dep.ID == changedID || !contains(dep.Prerequisites, changedID) {
			continue
		}

		eligible := true
		for _, preID := range dep.Prerequisites {
			if snapshot[preID] != model.StatusApproved {
				eligible = false
				break
			}
		}

		if eligible {
			dep.Status = model.StatusAvailable
		} else {
			dep.Status = model.StatusBlocked
		}
		dep.Score = nil
	}
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// Progress returns the share of approved credits over total credits as a
// percentage, rounded to one decimal place. An empty guide reports 0.
func Progress(g *model.Guide) float64 {
	total := 0
	approved := 0
	for _, s := range g.Subjects {
		total += s.Credits
		if s.Status == model.StatusApproved {
			approved += s.Credits
		}
	}
	if total == 0 {
		return 0
	}
	pct := float64(approved) / float64(total) * 100
	return math.Round(pct*10) / 10
}

// WeightedAverage returns the credit-weighted mean score of approved subjects,
// rounded to two decimal places. Returns 0 when no subject is approved.
func WeightedAverage(g *model.Guide) float64 {
	weighted := 0.0
	credits := 0
	for _, s := range g.Subjects {
		if s.Status != model.StatusApproved || s.Score == nil {
			continue
		}
		weighted += *s.Score * float64(s.Credits)
		credits += s.Credits
	}
	if credits == 0 {
		return 0
	}
	avg := weighted / float64(credits)
	return math.Round(avg*100) / 100
}
