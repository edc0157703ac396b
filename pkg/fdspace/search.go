package fdspace

// This file implements the two search drivers of spec §4.6: a
// stack-of-spaces depth-first search and a branch-and-bound variant
// that narrows subsequent children against the best solution found so
// far. Grounded on the teacher's solver.go (explicit stack, propagate,
// branch, clone, push) and optimize.go (incumbent bookkeeping via a
// caller-supplied improvement constraint).

// SolvedTest reports whether sp should be treated as a solution.
type SolvedTest func(sp *Space) bool

// SolveForVariables returns a SolvedTest requiring every named variable
// to be singleton, regardless of any other variable's state.
func SolveForVariables(names []VarID) SolvedTest {
	return func(sp *Space) bool {
		for _, n := range names {
			if sp.MustVar(n).IsUndetermined() {
				return false
			}
		}
		return true
	}
}

// SolveForPropagators returns a SolvedTest requiring every propagator in
// sp to report IsSolved.
func SolveForPropagators() SolvedTest {
	return func(sp *Space) bool {
		for _, p := range sp.props {
			if !p.IsSolved() {
				return false
			}
		}
		return true
	}
}

// SearchResult is the outcome of one Next call on a search driver.
type SearchResult struct {
	Status string // "solved" or "end"
	More   bool   // stack not empty: another Next call may find more
	Space  *Space // the solved space; nil when Status == "end"
}

// DepthFirst is the explicit-stack search driver of spec §4.6.
type DepthFirst struct {
	stack    []*Space
	isSolved SolvedTest
}

// NewDepthFirst creates a driver rooted at root. isSolved defaults to
// root.IsSolved (every declared variable singleton) if omitted.
func NewDepthFirst(root *Space, isSolved ...SolvedTest) *DepthFirst {
	test := SolvedTest((*Space).IsSolved)
	if len(isSolved) > 0 {
		test = isSolved[0]
	}
	return &DepthFirst{stack: []*Space{root}, isSolved: test}
}

// Next runs the stack loop until a solution is found or the stack
// empties, per spec §4.6's five-step algorithm.
func (d *DepthFirst) Next() *SearchResult {
	for len(d.stack) > 0 {
		s := d.stack[len(d.stack)-1]

		if err := s.Propagate(); err != nil {
			d.stack = d.stack[:len(d.stack)-1]
			s.Done(false)
			s.monitor.recordBacktrack()
			continue
		}
		s.monitor.recordNode()

		if d.isSolved(s) {
			d.stack = d.stack[:len(d.stack)-1]
			s.Done(true)
			s.monitor.recordSolution()
			return &SearchResult{Status: "solved", More: len(d.stack) > 0, Space: s}
		}

		if s.commit == nil {
			s.commit = s.brancher.Branch(s)
			s.nextChoice = 0
		}

		if s.commit != nil && s.nextChoice < s.commit.NumChoices {
			child := s.Clone()
			idx := s.nextChoice
			s.nextChoice++
			if err := s.commit.Apply(child, idx); err != nil {
				child.isFailed = true
				child.Done(false)
				continue
			}
			d.stack = append(d.stack, child)
			continue
		}

		d.stack = d.stack[:len(d.stack)-1]
		s.Done(false)
		s.monitor.recordBacktrack()
	}
	return &SearchResult{Status: "end"}
}

// ImproveFn constrains child to be strictly better than the incumbent
// best, returning an error (typically Fail, propagated from a failed
// Constrain) if no such improvement is possible from child's current
// domains.
type ImproveFn func(child, best *Space) error

// BranchAndBound is the incumbent-tracking search driver of spec §4.6.
type BranchAndBound struct {
	stack      []*Space
	isSolved   SolvedTest
	improve    ImproveFn
	best       *Space
	SingleStep bool
}

// NewBranchAndBound creates a driver rooted at root. improve is applied
// to every child pushed after a best solution is known, to constrain
// the search to strict improvements. isSolved defaults as in
// NewDepthFirst.
func NewBranchAndBound(root *Space, improve ImproveFn, isSolved ...SolvedTest) *BranchAndBound {
	test := SolvedTest((*Space).IsSolved)
	if len(isSolved) > 0 {
		test = isSolved[0]
	}
	return &BranchAndBound{stack: []*Space{root}, isSolved: test, improve: improve}
}

// Best returns the best solution found so far, or nil if none yet.
func (d *BranchAndBound) Best() *Space { return d.best }

// Next drives the search. In SingleStep mode it returns as soon as any
// solution is found (caller decides whether to call Next again). In
// exhaustive mode (the default) it runs to completion, returning best
// once the stack empties, or "end" if no solution was ever found.
func (d *BranchAndBound) Next() *SearchResult {
	for len(d.stack) > 0 {
		s := d.stack[len(d.stack)-1]

		if err := s.Propagate(); err != nil {
			d.stack = d.stack[:len(d.stack)-1]
			s.Done(false)
			s.monitor.recordBacktrack()
			continue
		}
		s.monitor.recordNode()

		if d.isSolved(s) {
			d.stack = d.stack[:len(d.stack)-1]
			s.Done(true)
			s.monitor.recordSolution()
			d.best = s
			if d.SingleStep {
				return &SearchResult{Status: "solved", More: len(d.stack) > 0, Space: s}
			}
			continue
		}

		if s.commit == nil {
			s.commit = s.brancher.Branch(s)
			s.nextChoice = 0
		}

		if s.commit != nil && s.nextChoice < s.commit.NumChoices {
			child := s.Clone()
			idx := s.nextChoice
			s.nextChoice++
			if err := s.commit.Apply(child, idx); err != nil {
				child.isFailed = true
				child.Done(false)
				continue
			}
			if d.best != nil {
				if err := d.improve(child, d.best); err != nil {
					child.isFailed = true
					child.Done(false)
					continue
				}
			}
			d.stack = append(d.stack, child)
			continue
		}

		d.stack = d.stack[:len(d.stack)-1]
		s.Done(false)
		s.monitor.recordBacktrack()
	}
	if d.best != nil {
		return &SearchResult{Status: "solved", More: false, Space: d.best}
	}
	return &SearchResult{Status: "end"}
}
