package fdspace

import "testing"

func TestSpaceDeclDefaultDomain(t *testing.T) {
	sp := NewSpace()
	x := Name("X")
	if _, err := sp.Decl(x); err != nil {
		t.Fatalf("Decl returned error: %v", err)
	}
	if !sp.Var(x).Domain().Equal(Full()) {
		t.Fatalf("default domain = %v, want Full()", sp.Var(x).Domain())
	}
}

func TestSpaceDeclWithSUP(t *testing.T) {
	sp := NewSpace(WithSUP(10))
	x := Name("X")
	if _, err := sp.Decl(x); err != nil {
		t.Fatalf("Decl returned error: %v", err)
	}
	if !sp.Var(x).Domain().Equal(Range(0, 10)) {
		t.Fatalf("default domain under WithSUP(10) = %v, want [0,10]", sp.Var(x).Domain())
	}
}

func TestSpaceNumOutOfRange(t *testing.T) {
	sp := NewSpace(WithSUP(10))
	if _, err := sp.Num(Name("X"), 11); err != ErrOutOfRange {
		t.Fatalf("Num(11) with SUP=10 returned %v, want ErrOutOfRange", err)
	}
}

func TestSpaceTempExcludedFromSolution(t *testing.T) {
	sp := NewSpace()
	x := Name("X")
	if _, err := sp.Num(x, 5); err != nil {
		t.Fatalf("Num returned error: %v", err)
	}
	sp.Temp(Single(9))

	sol := sp.Solution()
	if len(sol) != 1 {
		t.Fatalf("Solution() has %d entries, want 1 (temps excluded)", len(sol))
	}
	if sol["X"].Value != 5 {
		t.Fatalf("Solution()[X] = %+v, want Value=5", sol["X"])
	}
}

func TestSpacePropagateFixpoint(t *testing.T) {
	sp := NewSpace()
	x, y, z := Name("X"), Name("Y"), Name("Z")
	if _, err := sp.Num(x, 3); err != nil {
		t.Fatalf("Num: %v", err)
	}
	if _, err := sp.Decl(y); err != nil {
		t.Fatalf("Decl: %v", err)
	}
	if _, err := sp.Num(z, 10); err != nil {
		t.Fatalf("Num: %v", err)
	}
	PostPlus(sp, x, y, z)

	if err := sp.Propagate(); err != nil {
		t.Fatalf("Propagate returned error: %v", err)
	}
	if !sp.IsSolved() {
		t.Fatalf("space should be solved after propagation: %v", sp.Solution())
	}
	if sp.Var(y).Value() != 7 {
		t.Fatalf("Y = %d, want 7", sp.Var(y).Value())
	}
}

func TestSpacePropagateFailPropagates(t *testing.T) {
	sp := NewSpace()
	x, y, z := Name("X"), Name("Y"), Name("Z")
	if _, err := sp.Num(x, 13); err != nil {
		t.Fatalf("Num: %v", err)
	}
	if _, err := sp.Decl(y, Single(0)); err != nil {
		t.Fatalf("Decl: %v", err)
	}
	if _, err := sp.Num(z, 10); err != nil {
		t.Fatalf("Num: %v", err)
	}
	PostPlus(sp, x, y, z)

	if err := sp.Propagate(); err != errFail {
		t.Fatalf("Propagate() = %v, want errFail (13 + 0 != 10)", err)
	}
	if !sp.Failed() {
		t.Fatalf("space should be marked failed")
	}
}

func TestSpaceCloneIndependence(t *testing.T) {
	sp := NewSpace()
	x := Name("X")
	if _, err := sp.Decl(x); err != nil {
		t.Fatalf("Decl: %v", err)
	}

	child := sp.Clone()
	if err := child.Var(x).Constrain(Single(1)); err != nil {
		t.Fatalf("Constrain on clone: %v", err)
	}
	if sp.Var(x).IsDetermined() {
		t.Fatalf("narrowing the clone's variable must not affect the parent")
	}
	if !child.Var(x).IsDetermined() {
		t.Fatalf("clone's own variable should be narrowed")
	}
}

func TestSpaceCloneDropsSolvedPropagators(t *testing.T) {
	sp := NewSpace()
	x, y := Name("X"), Name("Y")
	if _, err := sp.Num(x, 5); err != nil {
		t.Fatalf("Num: %v", err)
	}
	if _, err := sp.Num(y, 5); err != nil {
		t.Fatalf("Num: %v", err)
	}
	Eq(sp, x, y)
	if err := sp.Propagate(); err != nil {
		t.Fatalf("Propagate: %v", err)
	}

	child := sp.Clone()
	if len(child.props) != 0 {
		t.Fatalf("clone kept %d propagators, want 0 (eq already solved)", len(child.props))
	}
}

func TestSpaceDoneRollsUpAccounting(t *testing.T) {
	root := NewSpace()
	child := root.Clone()
	child.Done(true)

	succeeded, failed, stable := root.Stats()
	if succeeded != 1 || failed != 0 || stable != 0 {
		t.Fatalf("Stats() = (%d,%d,%d), want (1,0,0)", succeeded, failed, stable)
	}
}

func TestSpaceDoneMarksParentFailedWhenNoChildSucceeds(t *testing.T) {
	root := NewSpace()
	c1 := root.Clone()
	c1.isFailed = true
	c1.Done(false)

	if !root.Failed() {
		t.Fatalf("parent should be marked failed once a child fails and none has succeeded")
	}
}

func TestMustVarPanicsOnUnknownName(t *testing.T) {
	sp := NewSpace()
	defer func() {
		if recover() == nil {
			t.Fatalf("MustVar on an undeclared name should panic")
		}
	}()
	sp.MustVar(Name("nope"))
}
