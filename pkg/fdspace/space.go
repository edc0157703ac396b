package fdspace

import "fmt"

// Space is a computation space: a container of variables, propagators,
// and a brancher queue, with cheap cloning semantics (spec §3).
//
// Variables in a cloned Space are independent copies of the parent's
// variables. Propagators are rebuilt in the clone, skipping those already
// proven solved. The brancher queue is shared by reference among all
// descendants; each descendant owns its own cursor.
type Space struct {
	vars  map[VarID]*Variable
	order []VarID // declaration order, for deterministic iteration/solution output
	props []Propagator

	brancher *Brancher
	temps    tempCounter

	commit      *Choice
	nextChoice  int

	parent *Space

	succeededChildren int
	failedChildren    int
	stableChildren    int
	isFailed          bool

	sup     int
	monitor *SpaceStats
}

// SpaceOption configures a Space at construction time.
type SpaceOption func(*Space)

// WithSUP overrides the domain upper bound for NewSpace's default
// domain (spec §4.3's decl default is [[0, SUP]]). It has no effect on a
// cloned Space, which inherits its parent's SUP.
func WithSUP(n int) SpaceOption {
	return func(sp *Space) { sp.sup = n }
}

// WithMonitor attaches m to the root Space. Every Space cloned from it
// shares the same monitor, which aggregates accounting across an entire
// search run (spec §4.8).
func WithMonitor(m *SpaceStats) SpaceOption {
	return func(sp *Space) { sp.monitor = m }
}

// NewSpace creates an empty root Space: no variables, no propagators, an
// empty brancher queue.
func NewSpace(opts ...SpaceOption) *Space {
	sp := &Space{
		vars:     make(map[VarID]*Variable),
		brancher: newBrancher(nil),
		sup:      SUP,
	}
	for _, o := range opts {
		o(sp)
	}
	return sp
}

// defaultDomain returns [[0, SUP]] using this space's configured SUP.
func (sp *Space) defaultDomain() Domain {
	if sp.sup == SUP {
		return Full()
	}
	return Range(0, sp.sup)
}

// Decl creates the variable named n if absent (default domain [[0, SUP]]);
// if present and dom is supplied, constrains it to dom. Returns sp for
// chaining.
func (sp *Space) Decl(n VarID, dom ...Domain) (*Space, error) {
	v, exists := sp.vars[n]
	if !exists {
		d := sp.defaultDomain()
		if len(dom) > 0 {
			d = dom[0]
		}
		sp.vars[n] = NewVariableWithDomain(d)
		sp.order = append(sp.order, n)
		return sp, nil
	}
	if len(dom) > 0 {
		if err := v.Constrain(dom[0]); err != nil {
			return sp, err
		}
	}
	return sp, nil
}

// DeclAll batch-declares names, in order, with an optional shared domain.
func (sp *Space) DeclAll(names []VarID, dom ...Domain) (*Space, error) {
	for _, n := range names {
		if _, err := sp.Decl(n, dom...); err != nil {
			return sp, err
		}
	}
	return sp, nil
}

// Temp allocates a fresh integer-named variable, omitted from Solution's
// output. An optional domain overrides the default [[0, SUP]].
func (sp *Space) Temp(dom ...Domain) VarID {
	id := sp.temps.new()
	d := sp.defaultDomain()
	if len(dom) > 0 {
		d = dom[0]
	}
	sp.vars[id] = NewVariableWithDomain(d)
	sp.order = append(sp.order, id)
	return id
}

// Num declares name as the constant singleton domain {n}. Fails with
// ErrOutOfRange if n is outside [0, SUP].
func (sp *Space) Num(n VarID, value int) (*Space, error) {
	if value < 0 || value > sp.sup {
		return sp, ErrOutOfRange
	}
	return sp.Decl(n, Single(value))
}

// Konst allocates a temporary constrained to the singleton domain {n}.
// Fails with ErrOutOfRange if n is outside [0, SUP].
func (sp *Space) Konst(n int) (VarID, error) {
	if n < 0 || n > sp.sup {
		return VarID{}, ErrOutOfRange
	}
	return sp.Temp(Single(n)), nil
}

// Var returns the Variable bound to n, or nil if n has not been declared.
func (sp *Space) Var(n VarID) *Variable {
	return sp.vars[n]
}

// MustVar is like Var but panics if n is undeclared — used internally by
// propagator constructors, which are always handed names already passed
// through Decl/Temp/Num.
func (sp *Space) MustVar(n VarID) *Variable {
	v, ok := sp.vars[n]
	if !ok {
		panic(fmt.Sprintf("fdspace: %v: %v", ErrUnknownVariable, n))
	}
	return v
}

// AddPropagator appends p to the space's propagator list. Propagators are
// never removed; they self-short-circuit via IsSolved once solved.
func (sp *Space) AddPropagator(p Propagator) {
	sp.props = append(sp.props, p)
}

// Brancher returns the space's local brancher (shared queue, own cursor).
func (sp *Space) Brancher() *Brancher {
	return sp.brancher
}

// Propagate runs the fixpoint loop (spec §4.3): until a full pass
// produces zero revision increments, iterate every propagator in
// insertion order and sum their reported increments. Any propagator
// failing aborts the loop and marks the space failed.
func (sp *Space) Propagate() error {
	sp.monitor.startPropagation()
	passes, bumps := 0, 0
	for {
		passes++
		total := 0
		for _, p := range sp.props {
			if p.IsSolved() {
				continue
			}
			delta, err := p.Step()
			if err != nil {
				sp.isFailed = true
				sp.monitor.endPropagation(passes, bumps)
				return err
			}
			total += delta
		}
		bumps += total
		if total == 0 {
			sp.monitor.endPropagation(passes, bumps)
			return nil
		}
	}
}

// IsSolved reports whether every declared variable has a singleton
// domain.
func (sp *Space) IsSolved() bool {
	for _, n := range sp.order {
		if sp.vars[n].IsUndetermined() {
			return false
		}
	}
	return true
}

// SolutionValue is the per-variable result Solution produces: either a
// bound integer, an unsolved Domain, or a failure marker.
type SolutionValue struct {
	Bound   bool
	Value   int
	Domain  Domain
	Failed  bool
}

// Solution returns a mapping over all non-temporary variables: the
// integer value if the domain is a singleton, the raw domain if unsolved,
// or a failure marker if the domain is empty (spec §4.3).
func (sp *Space) Solution() map[string]SolutionValue {
	out := make(map[string]SolutionValue)
	for _, n := range sp.order {
		if n.IsTemp() {
			continue
		}
		v := sp.vars[n]
		switch {
		case v.IsFailed():
			out[n.name] = SolutionValue{Failed: true}
		case v.IsDetermined():
			out[n.name] = SolutionValue{Bound: true, Value: v.Value()}
		default:
			out[n.name] = SolutionValue{Domain: v.Domain()}
		}
	}
	return out
}

// Clone deep-copies every variable (same initial domain, reset revision),
// rebuilds every not-yet-solved propagator with a fresh per-space binding
// of its variables, and creates a new brancher sharing this space's queue
// with its own cursor starting equal to this space's cursor (spec §3,
// §4.3).
func (sp *Space) Clone() *Space {
	child := &Space{
		vars:     make(map[VarID]*Variable, len(sp.vars)),
		order:    append([]VarID(nil), sp.order...),
		brancher: sp.brancher.child(),
		temps:    sp.temps,
		parent:   sp,
		sup:      sp.sup,
		monitor:  sp.monitor,
	}
	for n, v := range sp.vars {
		child.vars[n] = v.clone()
	}
	child.props = make([]Propagator, 0, len(sp.props))
	for _, p := range sp.props {
		if p.IsSolved() {
			continue
		}
		if rebound := p.rebind(child); rebound != nil {
			child.props = append(child.props, rebound)
		}
	}
	return child
}

// Done counts this space's outcome (succeeded, failed, or stable) in its
// parent's accounting counters and, if the parent then has at least one
// failed child and no succeeded child, marks the parent failed (spec
// §4.3). A root space (no parent) is left unchanged.
func (sp *Space) Done(succeeded bool) {
	if sp.parent == nil {
		return
	}
	p := sp.parent
	if succeeded {
		p.succeededChildren++
	} else if sp.isFailed {
		p.failedChildren++
	} else {
		p.stableChildren++
	}
	if p.succeededChildren == 0 && p.failedChildren > 0 {
		p.isFailed = true
	}
}

// Failed reports whether this space has been marked failed, either by a
// propagator raising Fail or by Done's rollup rule.
func (sp *Space) Failed() bool {
	return sp.isFailed
}

// Stats returns the space's own accounting counters, as rolled up from
// its children by Done.
func (sp *Space) Stats() (succeeded, failed, stable int) {
	return sp.succeededChildren, sp.failedChildren, sp.stableChildren
}
