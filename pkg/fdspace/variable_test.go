package fdspace

import "testing"

func TestVariableConstrainBumpsRevisionOnChange(t *testing.T) {
	v := NewVariableWithDomain(Range(0, 10))
	if v.Revision() != 0 {
		t.Fatalf("initial revision = %d, want 0", v.Revision())
	}
	if err := v.Constrain(Range(0, 5)); err != nil {
		t.Fatalf("Constrain returned error: %v", err)
	}
	if v.Revision() != 1 {
		t.Fatalf("revision after narrowing = %d, want 1", v.Revision())
	}
	if !v.Domain().Equal(Range(0, 5)) {
		t.Fatalf("domain = %v, want [0,5]", v.Domain())
	}
}

func TestVariableConstrainNoOpWhenUnchanged(t *testing.T) {
	v := NewVariableWithDomain(Range(0, 10))
	if err := v.Constrain(Range(-5, 20)); err != nil {
		t.Fatalf("Constrain returned error: %v", err)
	}
	if v.Revision() != 0 {
		t.Fatalf("revision = %d, want 0 (intersection unchanged)", v.Revision())
	}
}

func TestVariableConstrainFailsOnEmptyIntersection(t *testing.T) {
	v := NewVariableWithDomain(Range(0, 5))
	if err := v.Constrain(Range(10, 20)); err != errFail {
		t.Fatalf("Constrain returned %v, want errFail", err)
	}
}

func TestVariableDeterminedStates(t *testing.T) {
	v := NewVariableWithDomain(Single(7))
	if !v.IsDetermined() || v.IsUndetermined() {
		t.Fatalf("singleton variable should be determined")
	}
	if v.Value() != 7 {
		t.Fatalf("Value() = %d, want 7", v.Value())
	}

	failed := NewVariableWithDomain(Empty)
	if !failed.IsFailed() {
		t.Fatalf("empty-domain variable should report IsFailed")
	}
}

func TestVariableCloneResetsRevision(t *testing.T) {
	v := NewVariableWithDomain(Range(0, 10))
	_ = v.Constrain(Range(0, 5))
	clone := v.clone()
	if clone.Revision() != 0 {
		t.Fatalf("clone revision = %d, want reset to 0", clone.Revision())
	}
	if !clone.Domain().Equal(v.Domain()) {
		t.Fatalf("clone domain = %v, want %v", clone.Domain(), v.Domain())
	}
	_ = clone.Constrain(Range(0, 2))
	if v.Domain().Equal(clone.Domain()) {
		t.Fatalf("mutating clone should not affect original")
	}
}
