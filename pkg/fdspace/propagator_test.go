package fdspace

import "testing"

func TestGateSkipsWhenRevisionsUnchanged(t *testing.T) {
	x := NewVariableWithDomain(Range(0, 10))
	y := NewVariableWithDomain(Range(0, 10))
	var g gate

	skip, commit := g.checkStep(x, y)
	if skip {
		t.Fatalf("first checkStep should not skip")
	}
	commit()

	skip, _ = g.checkStep(x, y)
	if !skip {
		t.Fatalf("checkStep with unchanged revisions should skip")
	}

	_ = x.Constrain(Range(0, 5))
	skip, _ = g.checkStep(x, y)
	if skip {
		t.Fatalf("checkStep after a revision bump should not skip")
	}
}

func TestGateCommitReportsDelta(t *testing.T) {
	x := NewVariableWithDomain(Range(0, 10))
	var g gate

	_, commit := g.checkStep(x)
	_ = x.Constrain(Range(0, 3))
	_ = x.Constrain(Range(1, 2))
	if delta := commit(); delta != 2 {
		t.Fatalf("commit() = %d, want 2 (two revision bumps)", delta)
	}
}

func TestGateMarkSolvedIfDetermined(t *testing.T) {
	x := NewVariableWithDomain(Range(0, 10))
	y := NewVariableWithDomain(Range(0, 10))
	var g gate

	g.markSolvedIfDetermined(x, y)
	if g.IsSolved() {
		t.Fatalf("gate should not be solved while variables are undetermined")
	}

	_ = x.Constrain(Single(3))
	_ = y.Constrain(Single(4))
	g.markSolvedIfDetermined(x, y)
	if !g.IsSolved() {
		t.Fatalf("gate should be solved once all variables are singleton")
	}

	// Idempotent: a later undetermined variable must not unset solved.
	g.solved = true
	z := NewVariableWithDomain(Range(0, 10))
	g.markSolvedIfDetermined(z)
	if !g.IsSolved() {
		t.Fatalf("markSolvedIfDetermined must never unset solved")
	}
}

func TestGateSkipsOnceSolved(t *testing.T) {
	x := NewVariableWithDomain(Single(1))
	var g gate
	g.solved = true
	skip, commit := g.checkStep(x)
	if !skip || commit != nil {
		t.Fatalf("solved gate must always skip with a nil commit")
	}
}
