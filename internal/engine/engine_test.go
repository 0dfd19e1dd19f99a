package engine

import (
	"errors"
	"reflect"
	"testing"

	"github.com/crist-12/malla-curricular/internal/model"
)

func newGuide(subjects ...model.Subject) *model.Guide {
	return &model.Guide{
		Name:       "Ingeniería de Sistemas",
		University: "UNAH",
		PeriodType: model.PeriodSemester,
		Theme:      model.ThemeDefault,
		Subjects:   subjects,
	}
}

func score(v float64) *float64 { return &v }

func mustAdd(t *testing.T, g *model.Guide, in AddSubjectInput) *model.Subject {
	t.Helper()
	s, err := AddSubject(g, in)
	if err != nil {
		t.Fatalf("AddSubject(%q): %v", in.Name, err)
	}
	return s
}

func TestAddSubjectInitialStatus(t *testing.T) {
	g := newGuide()

	a := mustAdd(t, g, AddSubjectInput{Name: "Cálculo I", Credits: 4, Period: 1})
	if a.Status != model.StatusAvailable {
		t.Errorf("no prerequisites: status = %s, want available", a.Status)
	}

	// Even with an already-approved prerequisite, a new subject starts blocked.
	if err := ChangeStatus(g, a.ID, model.StatusApproved, score(90)); err != nil {
		t.Fatalf("approve A: %v", err)
	}
	b := mustAdd(t, g, AddSubjectInput{Name: "Cálculo II", Credits: 4, Period: 2, Prerequisites: []string{a.ID}})
	if b.Status != model.StatusBlocked {
		t.Errorf("with prerequisites: status = %s, want blocked", b.Status)
	}
}

func TestAddSubjectAssignsUniqueIDs(t *testing.T) {
	g := newGuide()
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		s := mustAdd(t, g, AddSubjectInput{Name: "Materia", Credits: 3, Period: 1})
		if s.ID == "" {
			t.Fatal("empty subject id")
		}
		if seen[s.ID] {
			t.Fatalf("duplicate subject id %s", s.ID)
		}
		seen[s.ID] = true
	}
}

func TestAddSubjectRoundTrip(t *testing.T) {
	g := newGuide()
	added := mustAdd(t, g, AddSubjectInput{Name: "Física I", Credits: 5, Period: 1})

	got := g.SubjectByID(added.ID)
	if got == nil {
		t.Fatal("added subject not found by id")
	}
	if got.Name != "Física I" || got.Credits != 5 || got.Period != 1 || got.Status != model.StatusAvailable {
		t.Errorf("lookup mismatch: %+v", got)
	}
	if got.Score != nil {
		t.Errorf("new subject has score %v, want none", *got.Score)
	}
}

func TestAddSubjectValidation(t *testing.T) {
	base := newGuide()
	a := mustAdd(t, base, AddSubjectInput{Name: "Cálculo I", Credits: 4, Period: 1})

	tests := []struct {
		name string
		in   AddSubjectInput
		want error
	}{
		{"zero credits", AddSubjectInput{Name: "X", Credits: 0, Period: 1}, ErrNonPositiveCredits},
		{"negative credits", AddSubjectInput{Name: "X", Credits: -2, Period: 1}, ErrNonPositiveCredits},
		{"zero period", AddSubjectInput{Name: "X", Credits: 3, Period: 0}, ErrNonPositivePeriod},
		{"unknown prerequisite", AddSubjectInput{Name: "X", Credits: 3, Period: 2, Prerequisites: []string{"missing"}}, ErrUnknownPrerequisite},
		{"same-period prerequisite", AddSubjectInput{Name: "X", Credits: 3, Period: 1, Prerequisites: []string{a.ID}}, ErrPrerequisitePeriod},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := len(base.Subjects)
			_, err := AddSubject(base, tt.in)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
			if len(base.Subjects) != before {
				t.Error("rejected AddSubject mutated the guide")
			}
		})
	}
}

func TestChangeStatusTransitions(t *testing.T) {
	tests := []struct {
		name  string
		from  model.SubjectStatus
		to    model.SubjectStatus
		score *float64
		want  error
	}{
		{"available to in_progress", model.StatusAvailable, model.StatusInProgress, nil, nil},
		{"available to approved", model.StatusAvailable, model.StatusApproved, score(75), nil},
		{"in_progress to available", model.StatusInProgress, model.StatusAvailable, nil, nil},
		{"in_progress to approved", model.StatusInProgress, model.StatusApproved, score(88), nil},
		{"approved to available", model.StatusApproved, model.StatusAvailable, nil, nil},
		{"available to blocked", model.StatusAvailable, model.StatusBlocked, nil, ErrIllegalTransition},
		{"approved to in_progress", model.StatusApproved, model.StatusInProgress, nil, ErrIllegalTransition},
		{"available to available", model.StatusAvailable, model.StatusAvailable, nil, ErrIllegalTransition},
		{"blocked to approved", model.StatusBlocked, model.StatusApproved, score(80), ErrSubjectBlocked},
		{"blocked to available", model.StatusBlocked, model.StatusAvailable, nil, ErrSubjectBlocked},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subj := model.Subject{ID: "s1", Name: "Materia", Credits: 3, Period: 1, Prerequisites: []string{}, Status: tt.from}
			if tt.from == model.StatusApproved {
				subj.Score = score(90)
			}
			g := newGuide(subj)

			err := ChangeStatus(g, "s1", tt.to, tt.score)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if tt.want != nil {
				if g.Subjects[0].Status != tt.from {
					t.Error("rejected transition mutated the subject")
				}
				return
			}
			if g.Subjects[0].Status != tt.to {
				t.Errorf("status = %s, want %s", g.Subjects[0].Status, tt.to)
			}
		})
	}
}

func TestChangeStatusScoreRules(t *testing.T) {
	g := newGuide(model.Subject{ID: "s1", Name: "Materia", Credits: 3, Period: 1, Prerequisites: []string{}, Status: model.StatusAvailable})

	if err := ChangeStatus(g, "s1", model.StatusApproved, nil); !errors.Is(err, ErrScoreRequired) {
		t.Errorf("approve without score: err = %v, want ErrScoreRequired", err)
	}
	if err := ChangeStatus(g, "s1", model.StatusApproved, score(150)); !errors.Is(err, ErrScoreOutOfRange) {
		t.Errorf("approve with 150: err = %v, want ErrScoreOutOfRange", err)
	}
	if err := ChangeStatus(g, "s1", model.StatusApproved, score(-1)); !errors.Is(err, ErrScoreOutOfRange) {
		t.Errorf("approve with -1: err = %v, want ErrScoreOutOfRange", err)
	}
	if g.Subjects[0].Status != model.StatusAvailable || g.Subjects[0].Score != nil {
		t.Error("rejected approvals mutated the subject")
	}

	if err := ChangeStatus(g, "s1", model.StatusApproved, score(100)); err != nil {
		t.Fatalf("approve with 100: %v", err)
	}
	if g.Subjects[0].Score == nil || *g.Subjects[0].Score != 100 {
		t.Errorf("score = %v, want 100", g.Subjects[0].Score)
	}

	// Un-approving clears the score.
	if err := ChangeStatus(g, "s1", model.StatusAvailable, nil); err != nil {
		t.Fatalf("unapprove: %v", err)
	}
	if g.Subjects[0].Score != nil {
		t.Errorf("score after unapprove = %v, want none", *g.Subjects[0].Score)
	}
}

func TestChangeStatusUnknownSubject(t *testing.T) {
	g := newGuide()
	if err := ChangeStatus(g, "missing", model.StatusInProgress, nil); !errors.Is(err, ErrSubjectNotFound) {
		t.Errorf("err = %v, want ErrSubjectNotFound", err)
	}
}

func TestRejectionLeavesGuideUnchanged(t *testing.T) {
	g := newGuide(
		model.Subject{ID: "a", Name: "A", Credits: 4, Period: 1, Prerequisites: []string{}, Status: model.StatusApproved, Score: score(90)},
		model.Subject{ID: "b", Name: "B", Credits: 3, Period: 2, Prerequisites: []string{"a"}, Status: model.StatusAvailable},
	)
	before := make([]model.Subject, len(g.Subjects))
	copy(before, g.Subjects)

	if err := ChangeStatus(g, "b", model.StatusApproved, score(120)); err == nil {
		t.Fatal("want error for out-of-range score")
	}
	if !reflect.DeepEqual(g.Subjects, before) {
		t.Error("rejected call mutated the subject list")
	}
}

func TestPropagationUnlocksDependent(t *testing.T) {
	g := newGuide(
		model.Subject{ID: "a", Name: "A", Credits: 4, Period: 1, Prerequisites: []string{}, Status: model.StatusAvailable},
		model.Subject{ID: "b", Name: "B", Credits: 3, Period: 2, Prerequisites: []string{"a"}, Status: model.StatusBlocked},
	)

	if err := ChangeStatus(g, "a", model.StatusApproved, score(90)); err != nil {
		t.Fatalf("approve A: %v", err)
	}
	if got := g.SubjectByID("b").Status; got != model.StatusAvailable {
		t.Errorf("B after approving A: %s, want available", got)
	}
}

func TestPropagationRequiresAllPrerequisites(t *testing.T) {
	g := newGuide(
		model.Subject{ID: "a", Name: "A", Credits: 4, Period: 1, Prerequisites: []string{}, Status: model.StatusAvailable},
		model.Subject{ID: "c", Name: "C", Credits: 4, Period: 1, Prerequisites: []string{}, Status: model.StatusAvailable},
		model.Subject{ID: "b", Name: "B", Credits: 3, Period: 2, Prerequisites: []string{"a", "c"}, Status: model.StatusBlocked},
	)

	if err := ChangeStatus(g, "a", model.StatusApproved, score(80)); err != nil {
		t.Fatal(err)
	}
	if got := g.SubjectByID("b").Status; got != model.StatusBlocked {
		t.Errorf("B with one of two prerequisites approved: %s, want blocked", got)
	}

	if err := ChangeStatus(g, "c", model.StatusApproved, score(85)); err != nil {
		t.Fatal(err)
	}
	if got := g.SubjectByID("b").Status; got != model.StatusAvailable {
		t.Errorf("B with all prerequisites approved: %s, want available", got)
	}
}

func TestPropagationRelocksDependent(t *testing.T) {
	g := newGuide(
		model.Subject{ID: "a", Name: "A", Credits: 4, Period: 1, Prerequisites: []string{}, Status: model.StatusApproved, Score: score(90)},
		model.Subject{ID: "b", Name: "B", Credits: 3, Period: 2, Prerequisites: []string{"a"}, Status: model.StatusApproved, Score: score(70)},
	)

	if err := ChangeStatus(g, "a", model.StatusAvailable, nil); err != nil {
		t.Fatalf("unapprove A: %v", err)
	}
	b := g.SubjectByID("b")
	if b.Status != model.StatusBlocked {
		t.Errorf("B after unapproving A: %s, want blocked", b.Status)
	}
	if b.Score != nil {
		t.Errorf("B keeps score %v after losing approved, want none", *b.Score)
	}
}

func TestPropagationIsSingleHop(t *testing.T) {
	g := newGuide(
		model.Subject{ID: "a", Name: "A", Credits: 4, Period: 1, Prerequisites: []string{}, Status: model.StatusAvailable},
		model.Subject{ID: "b", Name: "B", Credits: 3, Period: 2, Prerequisites: []string{"a"}, Status: model.StatusBlocked},
		model.Subject{ID: "c", Name: "C", Credits: 3, Period: 3, Prerequisites: []string{"b"}, Status: model.StatusBlocked},
	)

	// Approving A unlocks only B; C waits for B's own approval.
	if err := ChangeStatus(g, "a", model.StatusApproved, score(95)); err != nil {
		t.Fatal(err)
	}
	if got := g.SubjectByID("b").Status; got != model.StatusAvailable {
		t.Fatalf("B: %s, want available", got)
	}
	if got := g.SubjectByID("c").Status; got != model.StatusBlocked {
		t.Errorf("C after approving A: %s, want blocked (single hop)", got)
	}

	if err := ChangeStatus(g, "b", model.StatusApproved, score(85)); err != nil {
		t.Fatal(err)
	}
	if got := g.SubjectByID("c").Status; got != model.StatusAvailable {
		t.Errorf("C after approving B: %s, want available", got)
	}
}

func TestProgress(t *testing.T) {
	empty := newGuide()
	if got := Progress(empty); got != 0 {
		t.Errorf("empty guide progress = %v, want 0", got)
	}

	g := newGuide(
		model.Subject{ID: "a", Name: "A", Credits: 4, Period: 1, Prerequisites: []string{}, Status: model.StatusApproved, Score: score(90)},
		model.Subject{ID: "b", Name: "B", Credits: 3, Period: 2, Prerequisites: []string{"a"}, Status: model.StatusBlocked},
	)
	if got := Progress(g); got != 57.1 {
		t.Errorf("progress = %v, want 57.1", got)
	}

	none := newGuide(
		model.Subject{ID: "a", Name: "A", Credits: 4, Period: 1, Prerequisites: []string{}, Status: model.StatusAvailable},
	)
	if got := Progress(none); got != 0 {
		t.Errorf("no approved subjects: progress = %v, want 0", got)
	}
}

func TestProgressBounds(t *testing.T) {
	g := newGuide(
		model.Subject{ID: "a", Name: "A", Credits: 4, Period: 1, Prerequisites: []string{}, Status: model.StatusApproved, Score: score(60)},
		model.Subject{ID: "b", Name: "B", Credits: 6, Period: 1, Prerequisites: []string{}, Status: model.StatusApproved, Score: score(100)},
	)
	if got := Progress(g); got != 100 {
		t.Errorf("all approved: progress = %v, want 100", got)
	}
}

func TestWeightedAverage(t *testing.T) {
	empty := newGuide()
	if got := WeightedAverage(empty); got != 0 {
		t.Errorf("empty guide average = %v, want 0", got)
	}

	g := newGuide(
		model.Subject{ID: "a", Name: "A", Credits: 4, Period: 1, Prerequisites: []string{}, Status: model.StatusApproved, Score: score(90)},
		model.Subject{ID: "b", Name: "B", Credits: 3, Period: 2, Prerequisites: []string{"a"}, Status: model.StatusBlocked},
	)
	if got := WeightedAverage(g); got != 90.00 {
		t.Errorf("average = %v, want 90.00", got)
	}

	g2 := newGuide(
		model.Subject{ID: "a", Name: "A", Credits: 4, Period: 1, Prerequisites: []string{}, Status: model.StatusApproved, Score: score(80)},
		model.Subject{ID: "b", Name: "B", Credits: 2, Period: 1, Prerequisites: []string{}, Status: model.StatusApproved, Score: score(95)},
	)
	// (80*4 + 95*2) / 6 = 85
	if got := WeightedAverage(g2); got != 85.00 {
		t.Errorf("average = %v, want 85.00", got)
	}
}
