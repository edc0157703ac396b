package fdspace

// Propagator is a constraint-specific narrowing operator on one or more
// variables' domains (spec §3, §4.4). Each concrete propagator embeds a
// gate to implement the change-detection cache described there: a cached
// last_step (the sum of referenced variables' revisions the last time the
// propagator ran) that lets Step short-circuit when nothing relevant has
// changed since.
type Propagator interface {
	// AllVars returns the names of every variable this propagator
	// references. The solved flag itself is set by the gate from the
	// propagator's bound Variables, not from this list.
	AllVars() []VarID

	// DepVars returns the subset of AllVars whose change should trigger
	// recomputation. For most propagators this equals AllVars.
	DepVars() []VarID

	// Step narrows domains and returns the number of revision-counter
	// increments it produced, or errFail if a narrowing emptied a domain.
	Step() (int, error)

	// IsSolved reports whether this propagator has been marked solved and
	// will never need to run again.
	IsSolved() bool

	// rebind produces a fresh instance of this propagator bound to sp's
	// own Variable pointers, for use when sp is cloned from the space
	// that owns the receiver. Space.Clone never calls it on a propagator
	// that is already solved; such propagators are omitted from the
	// clone entirely (spec §3: "skip those already proven solved").
	rebind(sp *Space) Propagator
}

// gate implements the change-detection cache shared by every concrete
// propagator: a cached last_step and a monotonic solved flag.
//
// The conservative reading of the open question in spec §9
// ("propagator_is_solved") is implemented here: solved is set once, and
// only once, in markSolvedIfDetermined — never unset, and never set
// speculatively before every one of the propagator's AllVars is a
// singleton.
type gate struct {
	lastStep uint64
	ran      bool
	solved   bool
}

func sumRevisions(vars ...*Variable) uint64 {
	var s uint64
	for _, v := range vars {
		s += v.Revision()
	}
	return s
}

// checkStep is the per-Step entry point: it returns (skip=true, nil) when
// the cached last_step already reflects the current revision sum, and
// otherwise returns a commit function the caller invokes after narrowing
// to update the cache and compute the net revision delta.
func (g *gate) checkStep(vars ...*Variable) (skip bool, commit func() int) {
	if g.solved {
		return true, nil
	}
	before := sumRevisions(vars...)
	if g.ran && before == g.lastStep {
		return true, nil
	}
	g.ran = true
	return false, func() int {
		after := sumRevisions(vars...)
		g.lastStep = after
		return int(after - before)
	}
}

// markSolvedIfDetermined sets g.solved once every variable in vars is a
// singleton, and leaves it false otherwise. It is idempotent.
func (g *gate) markSolvedIfDetermined(vars ...*Variable) {
	if g.solved {
		return
	}
	for _, v := range vars {
		if v.IsUndetermined() {
			return
		}
	}
	g.solved = true
}

func (g *gate) IsSolved() bool { return g.solved }
