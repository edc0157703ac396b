package fdspace

import (
	"fmt"
	"time"
)

// SpaceStats is an optional, attachable observer in the shape of the
// teacher's SolverMonitor (spec §4.8): nodes explored, propagation
// passes, revision bumps, backtrack count, solutions found, and
// wall-clock time spent in Propagate. SearchTime is not recorded by the
// search drivers and stays zero. Nothing is collected unless a SpaceStats is
// attached to a root Space via WithMonitor; every descendant Space
// created by Clone shares the same *SpaceStats, so it aggregates across
// an entire search run, not just one Space.
//
// Unlike the teacher's SolverMonitor, this is not safe for concurrent
// use — the engine is single-threaded cooperative throughout (spec §5),
// so there is nothing to guard against.
type SpaceStats struct {
	NodesExplored     int
	Backtracks        int
	SolutionsFound    int
	PropagationPasses int
	RevisionBumps     int
	SearchTime        time.Duration
	PropagationTime   time.Duration

	propStart time.Time
}

// NewSpaceStats returns a zeroed monitor ready to attach via WithMonitor.
func NewSpaceStats() *SpaceStats {
	return &SpaceStats{}
}

func (m *SpaceStats) startPropagation() {
	if m == nil {
		return
	}
	m.propStart = time.Now()
}

func (m *SpaceStats) endPropagation(passes, bumps int) {
	if m == nil {
		return
	}
	m.PropagationTime += time.Since(m.propStart)
	m.PropagationPasses += passes
	m.RevisionBumps += bumps
}

func (m *SpaceStats) recordNode() {
	if m == nil {
		return
	}
	m.NodesExplored++
}

func (m *SpaceStats) recordBacktrack() {
	if m == nil {
		return
	}
	m.Backtracks++
}

func (m *SpaceStats) recordSolution() {
	if m == nil {
		return
	}
	m.SolutionsFound++
}

// String renders a one-line summary, in the shape of a CLI -stats
// printout.
func (m *SpaceStats) String() string {
	return fmt.Sprintf(
		"nodes=%d backtracks=%d solutions=%d passes=%d revisions=%d propagation=%s search=%s",
		m.NodesExplored, m.Backtracks, m.SolutionsFound, m.PropagationPasses, m.RevisionBumps,
		m.PropagationTime, m.SearchTime,
	)
}
