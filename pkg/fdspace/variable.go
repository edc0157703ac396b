package fdspace

// Variable is a named finite-domain variable: a current Domain plus a
// revision counter that is bumped exactly when the domain is replaced
// with a different one (equality-by-value, per spec §3). Revisions are
// monotonically nondecreasing and never decrease across a Propagate.
type Variable struct {
	dom      Domain
	revision uint64
}

// NewVariableWithDomain creates a variable holding dom at revision 0.
func NewVariableWithDomain(dom Domain) *Variable {
	return &Variable{dom: dom}
}

// Domain returns the variable's current domain.
func (v *Variable) Domain() Domain {
	return v.dom
}

// Revision returns the variable's current revision counter.
func (v *Variable) Revision() uint64 {
	return v.revision
}

// IsUndetermined reports whether the variable's domain has more than one
// value.
func (v *Variable) IsUndetermined() bool {
	return !v.dom.IsSingleton()
}

// IsDetermined reports whether the domain is a singleton.
func (v *Variable) IsDetermined() bool {
	return v.dom.IsSingleton()
}

// IsFailed reports whether the domain is empty.
func (v *Variable) IsFailed() bool {
	return v.dom.IsEmpty()
}

// Value returns the singleton value. Undefined if !IsDetermined().
func (v *Variable) Value() int {
	return v.dom.SingletonValue()
}

// Min, Max, Mid, and RoughMid delegate to the underlying domain.
func (v *Variable) Min() int      { return v.dom.Min() }
func (v *Variable) Max() int      { return v.dom.Max() }
func (v *Variable) Mid() int      { return v.dom.Mid() }
func (v *Variable) RoughMid() int { return v.dom.RoughMid() }

// Size delegates to the underlying domain's cardinality.
func (v *Variable) Size() int { return v.dom.Size() }

// SetDom replaces the variable's domain, bumping the revision counter iff
// the new domain differs (by value) from the current one.
func (v *Variable) SetDom(d Domain) {
	if v.dom.Equal(d) {
		return
	}
	v.dom = d
	v.revision++
}

// Constrain narrows the variable's domain to its intersection with d,
// returning errFail if that intersection is empty.
func (v *Variable) Constrain(d Domain) error {
	next := Intersection(v.dom, d)
	if next.IsEmpty() {
		return errFail
	}
	v.SetDom(next)
	return nil
}

// clone returns an independent copy of v with the same domain and a reset
// revision counter, matching spec §3's clone semantics ("same initial
// domain, reset revision is permitted").
func (v *Variable) clone() *Variable {
	return &Variable{dom: v.dom}
}
