package fdspace

// This file implements the brancher queue and the variable-selection /
// value-selection strategies that turn a stable space into a finite
// sequence of child spaces (spec §4.5).

// Choice is a callable-with-a-count: the result of a value strategy
// applied to a chosen variable. Apply narrows sp according to choice
// index idx, one of [0, NumChoices).
type Choice struct {
	NumChoices int
	apply      func(sp *Space, idx int) error
}

// Apply runs the idx'th branch of the choice against sp, returning
// ErrInvalidChoice if idx is out of range.
func (c *Choice) Apply(sp *Space, idx int) error {
	if idx < 0 || idx >= c.NumChoices {
		return ErrInvalidChoice
	}
	return c.apply(sp, idx)
}

// FilterFn selects the subsequence of names a strategy is interested in.
type FilterFn func(sp *Space, names []VarID) []VarID

// OrderingFn reports whether a should be preferred over b as the next
// variable to branch on.
type OrderingFn func(sp *Space, a, b VarID) bool

// ValueFn produces the Choice for a chosen variable.
type ValueFn func(name VarID) *Choice

// FilterUndet is the default filter: variables with non-singleton
// domains.
func FilterUndet(sp *Space, names []VarID) []VarID {
	out := make([]VarID, 0, len(names))
	for _, n := range names {
		if v := sp.Var(n); v != nil && v.IsUndetermined() {
			out = append(out, n)
		}
	}
	return out
}

// OrderingNaive always prefers a over b. Combined with strategy's
// left-fold candidate selection, this deterministically settles on the
// last candidate in filter order — a stable, reproducible choice (spec
// §5's determinism guarantee), even though it does not special-case
// "first declared".
func OrderingNaive(sp *Space, a, b VarID) bool { return true }

// OrderingSize prefers the variable with the smaller domain (fail-first).
func OrderingSize(sp *Space, a, b VarID) bool {
	return sp.Var(a).Size() < sp.Var(b).Size()
}

// OrderingMin prefers the variable with the smaller minimum.
func OrderingMin(sp *Space, a, b VarID) bool {
	return sp.Var(a).Min() < sp.Var(b).Min()
}

// OrderingMax prefers the variable with the larger maximum.
func OrderingMax(sp *Space, a, b VarID) bool {
	return sp.Var(a).Max() > sp.Var(b).Max()
}

// ValueMin splits on the variable's minimum: choice 0 assigns v = min(v);
// choice 1 constrains v to [min(v)+1, max(v)].
func ValueMin(name VarID) *Choice {
	return &Choice{NumChoices: 2, apply: func(sp *Space, idx int) error {
		v := sp.MustVar(name)
		lo, hi := v.Min(), v.Max()
		switch idx {
		case 0:
			return v.Constrain(Single(lo))
		case 1:
			return v.Constrain(Range(lo+1, hi))
		}
		return ErrInvalidChoice
	}}
}

// ValueMax splits on the variable's maximum: choice 0 assigns v =
// max(v); choice 1 constrains v to [min(v), max(v)-1].
func ValueMax(name VarID) *Choice {
	return &Choice{NumChoices: 2, apply: func(sp *Space, idx int) error {
		v := sp.MustVar(name)
		lo, hi := v.Min(), v.Max()
		switch idx {
		case 0:
			return v.Constrain(Single(hi))
		case 1:
			return v.Constrain(Range(lo, hi-1))
		}
		return ErrInvalidChoice
	}}
}

// ValueMid splits on the variable's exact middle value: choice 0 assigns
// v = mid(v); choice 1 removes that value from v's domain.
func ValueMid(name VarID) *Choice {
	return &Choice{NumChoices: 2, apply: func(sp *Space, idx int) error {
		v := sp.MustVar(name)
		m := v.Mid()
		switch idx {
		case 0:
			return v.Constrain(Single(m))
		case 1:
			return v.Constrain(Complement(Single(m)))
		}
		return ErrInvalidChoice
	}}
}

// ValueSplitMin splits the variable's range in half: choice 0 constrains
// v to the lower half [lo, m]; choice 1 to the upper half [m+1, hi],
// where m = (lo+hi)/2.
func ValueSplitMin(name VarID) *Choice {
	return &Choice{NumChoices: 2, apply: func(sp *Space, idx int) error {
		v := sp.MustVar(name)
		lo, hi := v.Min(), v.Max()
		m := (lo + hi) / 2
		switch idx {
		case 0:
			return v.Constrain(Range(lo, m))
		case 1:
			return v.Constrain(Range(m+1, hi))
		}
		return ErrInvalidChoice
	}}
}

// ValueSplitMax is ValueSplitMin with the two halves tried in the
// opposite order: the upper half first, then the lower half.
func ValueSplitMax(name VarID) *Choice {
	return &Choice{NumChoices: 2, apply: func(sp *Space, idx int) error {
		v := sp.MustVar(name)
		lo, hi := v.Min(), v.Max()
		m := (lo + hi) / 2
		switch idx {
		case 0:
			return v.Constrain(Range(m+1, hi))
		case 1:
			return v.Constrain(Range(lo, m))
		}
		return ErrInvalidChoice
	}}
}

// strategy is a bound branch-strategy record: a filter/ordering/value
// triple together with the fixed candidate list it was posted against.
type strategy struct {
	names    []VarID
	filter   FilterFn
	ordering OrderingFn
	value    ValueFn
}

func (s *strategy) branch(sp *Space) *Choice {
	cands := s.filter(sp, s.names)
	if len(cands) == 0 {
		return nil
	}
	best := cands[0]
	for _, n := range cands[1:] {
		if s.ordering(sp, n, best) {
			best = n
		}
	}
	return s.value(best)
}

// brancherQueue is the FIFO of branch-strategy records shared by
// reference among a family of spaces (spec §3, §4.5). It is append-only
// during problem construction and read-only once search begins.
type brancherQueue struct {
	strategies []*strategy
}

// Brancher holds a shared queue handle plus a local cursor. Each
// descendant space owns its own cursor, initialised to the parent's
// cursor value at clone time, so it can skip past strategies whose
// variables are already fully determined.
type Brancher struct {
	queue  *brancherQueue
	cursor int
}

func newBrancher(q *brancherQueue) *Brancher {
	if q == nil {
		q = &brancherQueue{}
	}
	return &Brancher{queue: q}
}

func (b *Brancher) child() *Brancher {
	return &Brancher{queue: b.queue, cursor: b.cursor}
}

func (b *Brancher) post(s *strategy) {
	b.queue.strategies = append(b.queue.strategies, s)
}

// Branch returns the next choice function for sp, advancing the cursor
// through the queue as each strategy exhausts (its filter yields no
// candidates, meaning it will never yield any for this space's
// descendants either, since domains only shrink). Returns nil when no
// queued strategy can branch sp.
func (b *Brancher) Branch(sp *Space) *Choice {
	for b.cursor < len(b.queue.strategies) {
		s := b.queue.strategies[b.cursor]
		if c := s.branch(sp); c != nil {
			return c
		}
		b.cursor++
	}
	return nil
}

// DistributeSpec configures a call to Space.Distribute: the three
// pluggable fields of spec §4.5, each defaultable.
type DistributeSpec struct {
	Filter   FilterFn
	Ordering OrderingFn
	Value    ValueFn
}

// Distribute posts a generic branch strategy over names to sp's
// brancher queue, using spec's fields or their defaults (FilterUndet,
// OrderingNaive) where omitted. Value has no default; it must be
// supplied.
func (sp *Space) Distribute(names []VarID, spec DistributeSpec) {
	filter := spec.Filter
	if filter == nil {
		filter = FilterUndet
	}
	ordering := spec.Ordering
	if ordering == nil {
		ordering = OrderingNaive
	}
	sp.brancher.post(&strategy{names: names, filter: filter, ordering: ordering, value: spec.Value})
}

// DistributeNaive posts the naive preset: {undet, naive, min}.
func (sp *Space) DistributeNaive(names []VarID) {
	sp.Distribute(names, DistributeSpec{Value: ValueMin})
}

// DistributeFailFirst posts the fail_first preset: {undet, size, min}.
func (sp *Space) DistributeFailFirst(names []VarID) {
	sp.Distribute(names, DistributeSpec{Ordering: OrderingSize, Value: ValueMin})
}

// DistributeSplit posts the split preset: {undet, size, splitMin}.
func (sp *Space) DistributeSplit(names []VarID) {
	sp.Distribute(names, DistributeSpec{Ordering: OrderingSize, Value: ValueSplitMin})
}
