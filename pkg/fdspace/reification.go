package fdspace

// This file implements reified comparisons (spec §4.4): tying the truth
// of one of eq/neq/lt/lte/gt/gte to a Boolean variable via a positive
// and a negative sub-propagator. While the Boolean is undetermined,
// fresh single-use copies of both are stepped speculatively under
// snapshot/restore; once it is determined, the matching sub-propagator,
// instantiated once per owning space, is stepped for real. Grounded on the
// teacher's reification.go ReifiedConstraint, which holds the same
// positive/negative pair and narrows the reifier from speculative
// outcomes.

func complementOp(op string) (string, error) {
	switch op {
	case "eq":
		return "neq", nil
	case "neq":
		return "eq", nil
	case "lt":
		return "gte", nil
	case "gte":
		return "lt", nil
	case "gt":
		return "lte", nil
	case "lte":
		return "gt", nil
	}
	return "", ErrUnknownOperator
}

func buildOp(op string, x, y VarID, vx, vy *Variable) (Propagator, error) {
	switch op {
	case "eq":
		return newEqProp(x, y, vx, vy), nil
	case "neq":
		return newNeqProp(x, y, vx, vy), nil
	case "lt":
		return newOrderProp(orderLT, x, y, vx, vy), nil
	case "lte":
		return newOrderProp(orderLTE, x, y, vx, vy), nil
	case "gt":
		return newOrderProp(orderGT, x, y, vx, vy), nil
	case "gte":
		return newOrderProp(orderGTE, x, y, vx, vy), nil
	}
	return nil, ErrUnknownOperator
}

// varSnapshot captures a variable's (domain, revision) pair so a
// speculative step can be unwound unconditionally.
type varSnapshot struct {
	dom Domain
	rev uint64
}

func snapshot(v *Variable) varSnapshot {
	return varSnapshot{dom: v.dom, rev: v.revision}
}

func (s varSnapshot) restore(v *Variable) {
	v.dom = s.dom
	v.revision = s.rev
}

// reifiedProp ties op(x, y) to the Boolean variable b (spec §4.4).
type reifiedProp struct {
	gate
	op      string
	x, y, b VarID
	vx, vy  *Variable
	vb      *Variable

	// pos and neg are lazily built on first use, owned by this space
	// alone — never shared with a clone's rebind, which builds its own.
	// They are stepped for real only once b is determined, committing
	// their narrowing permanently; a speculative trial never touches
	// them, since a sub-propagator's gate has no way to unlatch once
	// markSolvedIfDetermined fires, and a speculative outcome that gets
	// unwound must not leave that latch set.
	pos, neg Propagator
}

// Reified posts reified(op, [x, y], b?) to sp and returns the name of
// the Boolean variable: b if supplied (declared with domain {0, 1} if
// absent, otherwise constrained to {0, 1}), else a fresh temporary with
// domain {0, 1}. Returns ErrUnknownOperator for op outside
// {eq, neq, lt, lte, gt, gte}.
func Reified(sp *Space, op string, x, y VarID, b ...VarID) (VarID, error) {
	if _, err := complementOp(op); err != nil {
		return VarID{}, err
	}
	var name VarID
	if len(b) > 0 {
		name = b[0]
		if _, err := sp.Decl(name, Range(0, 1)); err != nil {
			return VarID{}, err
		}
	} else {
		name = sp.Temp(Range(0, 1))
	}
	vb := sp.MustVar(name)
	p := &reifiedProp{op: op, x: x, y: y, b: name, vx: sp.MustVar(x), vy: sp.MustVar(y), vb: vb}
	sp.AddPropagator(p)
	return name, nil
}

func (p *reifiedProp) AllVars() []VarID { return []VarID{p.x, p.y, p.b} }
func (p *reifiedProp) DepVars() []VarID { return p.AllVars() }

func (p *reifiedProp) ensureSubProps() error {
	if p.pos == nil {
		pos, err := buildOp(p.op, p.x, p.y, p.vx, p.vy)
		if err != nil {
			return err
		}
		p.pos = pos
	}
	if p.neg == nil {
		negOp, err := complementOp(p.op)
		if err != nil {
			return err
		}
		neg, err := buildOp(negOp, p.x, p.y, p.vx, p.vy)
		if err != nil {
			return err
		}
		p.neg = neg
	}
	return nil
}

func (p *reifiedProp) Step() (int, error) {
	skip, commit := p.checkStep(p.vx, p.vy, p.vb)
	if skip {
		return 0, nil
	}

	switch {
	case p.vb.IsDetermined() && p.vb.Value() == 1:
		if err := p.ensureSubProps(); err != nil {
			return 0, err
		}
		if _, err := p.pos.Step(); err != nil {
			return 0, err
		}
	case p.vb.IsDetermined() && p.vb.Value() == 0:
		if err := p.ensureSubProps(); err != nil {
			return 0, err
		}
		if _, err := p.neg.Step(); err != nil {
			return 0, err
		}
	default:
		posSub, err := buildOp(p.op, p.x, p.y, p.vx, p.vy)
		if err != nil {
			return 0, err
		}
		if err := p.speculate(posSub, 0); err != nil {
			return 0, err
		}
		if p.vb.IsUndetermined() {
			negOp, err := complementOp(p.op)
			if err != nil {
				return 0, err
			}
			negSub, err := buildOp(negOp, p.x, p.y, p.vx, p.vy)
			if err != nil {
				return 0, err
			}
			if err := p.speculate(negSub, 1); err != nil {
				return 0, err
			}
		}
	}

	delta := commit()
	p.markSolvedIfDetermined(p.vx, p.vy, p.vb)
	return delta, nil
}

// speculate steps a freshly built, never-reused sub against a snapshot
// of x and y; on failure it restores x and y and constrains b to
// failValue instead of propagating the failure. On success it always
// restores x and y too — the speculative step's only legitimate output
// is proof that op(x, y) remains, or does not remain, consistent. sub is
// discarded afterward either way, so its gate never latches solved on a
// narrowing this function is about to undo.
func (p *reifiedProp) speculate(sub Propagator, failValue int) error {
	sx, sy := snapshot(p.vx), snapshot(p.vy)
	_, err := sub.Step()
	sx.restore(p.vx)
	sy.restore(p.vy)
	if err != nil {
		return p.vb.Constrain(Single(failValue))
	}
	return nil
}

func (p *reifiedProp) rebind(sp *Space) Propagator {
	return &reifiedProp{
		gate: p.gate, op: p.op, x: p.x, y: p.y, b: p.b,
		vx: sp.MustVar(p.x), vy: sp.MustVar(p.y), vb: sp.MustVar(p.b),
	}
}
