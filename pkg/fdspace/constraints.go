package fdspace

// This file implements the primitive relational propagators of spec
// §4.4: eq, neq, and the four order relations, plus distinct, the
// decomposition-based pairwise-distinct helper. Each is grounded on the
// narrowing shape of the teacher's interval_arithmetic.go / fd_ineq.go:
// a gated Step that narrows both operands toward each other and reports
// the revision delta it produced.

// eqProp narrows x and y toward their intersection.
type eqProp struct {
	gate
	x, y VarID
	vx   *Variable
	vy   *Variable
}

func newEqProp(x, y VarID, vx, vy *Variable) *eqProp {
	return &eqProp{x: x, y: y, vx: vx, vy: vy}
}

// Eq posts x == y to sp and returns the propagator.
func Eq(sp *Space, x, y VarID) Propagator {
	p := newEqProp(x, y, sp.MustVar(x), sp.MustVar(y))
	sp.AddPropagator(p)
	return p
}

func (p *eqProp) AllVars() []VarID { return []VarID{p.x, p.y} }
func (p *eqProp) DepVars() []VarID { return p.AllVars() }

func (p *eqProp) Step() (int, error) {
	skip, commit := p.checkStep(p.vx, p.vy)
	if skip {
		return 0, nil
	}
	inter := Intersection(p.vx.Domain(), p.vy.Domain())
	if inter.IsEmpty() {
		return 0, errFail
	}
	if err := p.vx.Constrain(inter); err != nil {
		return 0, err
	}
	if err := p.vy.Constrain(inter); err != nil {
		return 0, err
	}
	delta := commit()
	p.markSolvedIfDetermined(p.vx, p.vy)
	return delta, nil
}

func (p *eqProp) rebind(sp *Space) Propagator {
	return &eqProp{gate: p.gate, x: p.x, y: p.y, vx: sp.MustVar(p.x), vy: sp.MustVar(p.y)}
}

// neqProp removes y's value from x's domain (and vice versa) once either
// is determined.
type neqProp struct {
	gate
	x, y VarID
	vx   *Variable
	vy   *Variable
}

func newNeqProp(x, y VarID, vx, vy *Variable) *neqProp {
	return &neqProp{x: x, y: y, vx: vx, vy: vy}
}

// Neq posts x != y to sp and returns the propagator.
func Neq(sp *Space, x, y VarID) Propagator {
	p := newNeqProp(x, y, sp.MustVar(x), sp.MustVar(y))
	sp.AddPropagator(p)
	return p
}

func (p *neqProp) AllVars() []VarID { return []VarID{p.x, p.y} }
func (p *neqProp) DepVars() []VarID { return p.AllVars() }

func (p *neqProp) Step() (int, error) {
	skip, commit := p.checkStep(p.vx, p.vy)
	if skip {
		return 0, nil
	}
	if p.vx.IsDetermined() {
		if err := p.vy.Constrain(Complement(Single(p.vx.Value()))); err != nil {
			return 0, err
		}
	}
	if p.vy.IsDetermined() {
		if err := p.vx.Constrain(Complement(Single(p.vy.Value()))); err != nil {
			return 0, err
		}
	}
	delta := commit()
	if p.vx.IsDetermined() && p.vy.IsDetermined() {
		p.gate.solved = true
	}
	return delta, nil
}

func (p *neqProp) rebind(sp *Space) Propagator {
	return &neqProp{gate: p.gate, x: p.x, y: p.y, vx: sp.MustVar(p.x), vy: sp.MustVar(p.y)}
}

// order is one of the four strict/non-strict relations lt/lte/gt/gte.
type order int

const (
	orderLT order = iota
	orderLTE
	orderGT
	orderGTE
)

// orderProp narrows x rel y toward bound-consistency: each side's range
// is clipped to what the relation permits given the other side's current
// bounds.
type orderProp struct {
	gate
	rel  order
	x, y VarID
	vx   *Variable
	vy   *Variable
}

func newOrderProp(rel order, x, y VarID, vx, vy *Variable) *orderProp {
	return &orderProp{rel: rel, x: x, y: y, vx: vx, vy: vy}
}

func postOrder(sp *Space, rel order, x, y VarID) Propagator {
	p := newOrderProp(rel, x, y, sp.MustVar(x), sp.MustVar(y))
	sp.AddPropagator(p)
	return p
}

// Lt posts x < y. Lte posts x <= y. Gt posts x > y. Gte posts x >= y.
func Lt(sp *Space, x, y VarID) Propagator  { return postOrder(sp, orderLT, x, y) }
func Lte(sp *Space, x, y VarID) Propagator { return postOrder(sp, orderLTE, x, y) }
func Gt(sp *Space, x, y VarID) Propagator  { return postOrder(sp, orderGT, x, y) }
func Gte(sp *Space, x, y VarID) Propagator { return postOrder(sp, orderGTE, x, y) }

func (p *orderProp) AllVars() []VarID { return []VarID{p.x, p.y} }
func (p *orderProp) DepVars() []VarID { return p.AllVars() }

func (p *orderProp) Step() (int, error) {
	skip, commit := p.checkStep(p.vx, p.vy)
	if skip {
		return 0, nil
	}
	xLo, xHi := p.vx.Min(), p.vx.Max()
	yLo, yHi := p.vy.Min(), p.vy.Max()
	switch p.rel {
	case orderLT:
		if err := p.vx.Constrain(Range(0, yHi-1)); err != nil {
			return 0, err
		}
		if err := p.vy.Constrain(Range(xLo+1, SUP)); err != nil {
			return 0, err
		}
	case orderLTE:
		if err := p.vx.Constrain(Range(0, yHi)); err != nil {
			return 0, err
		}
		if err := p.vy.Constrain(Range(xLo, SUP)); err != nil {
			return 0, err
		}
	case orderGT:
		if err := p.vx.Constrain(Range(yLo+1, SUP)); err != nil {
			return 0, err
		}
		if err := p.vy.Constrain(Range(0, xHi-1)); err != nil {
			return 0, err
		}
	case orderGTE:
		if err := p.vx.Constrain(Range(yLo, SUP)); err != nil {
			return 0, err
		}
		if err := p.vy.Constrain(Range(0, xHi)); err != nil {
			return 0, err
		}
	}
	delta := commit()
	p.markSolvedIfDetermined(p.vx, p.vy)
	return delta, nil
}

func (p *orderProp) rebind(sp *Space) Propagator {
	return &orderProp{gate: p.gate, rel: p.rel, x: p.x, y: p.y, vx: sp.MustVar(p.x), vy: sp.MustVar(p.y)}
}

// Distinct decomposes an all-different constraint over names into the
// pairwise Neq propagators spec §4.4's Non-goals permit ("no global
// constraints beyond pairwise-distinct, via decomposition"). Grounded on
// the teacher's circuit.go / gcc.go, which build global constraints atop
// simpler pairwise primitives.
func Distinct(sp *Space, names []VarID) []Propagator {
	out := make([]Propagator, 0, len(names)*(len(names)-1)/2)
	for i := 0; i < len(names); i++ {
		for j := i + 1; j < len(names); j++ {
			out = append(out, Neq(sp, names[i], names[j]))
		}
	}
	return out
}
