// Package fdspace provides a finite-domain constraint-programming engine
// built around the "computation spaces" abstraction: cloneable containers
// of variables and propagators that a search driver commits to branching
// choices.
//
// This file defines Domain, the canonical-sorted-interval-sequence (CSIS)
// representation of a variable's possible values, and the set-theoretic
// and arithmetic operations on it.
package fdspace

import (
	"fmt"
	"sort"
	"strings"
)

// SUP is the default upper bound of any domain value. Every operation that
// produces a domain clamps its bounds to [0, SUP].
const SUP = 100_000_000

// Interval is a closed range of integers [Lo, Hi], Lo <= Hi.
type Interval struct {
	Lo, Hi int
}

// Domain is a finite set of nonnegative integers represented in canonical
// form: intervals sorted by Lo, no two adjacent intervals overlapping or
// touching (Intervals[i].Hi+1 < Intervals[i+1].Lo), and no empty interval.
// The empty domain is the empty slice. Domain values are immutable — every
// operation that would modify a domain instead returns a new one.
type Domain struct {
	Intervals []Interval
}

// Empty is the domain containing no values.
var Empty = Domain{}

// Full returns the domain [0, SUP].
func Full() Domain {
	return Domain{Intervals: []Interval{{Lo: 0, Hi: SUP}}}
}

// Single returns the singleton domain {n}.
func Single(n int) Domain {
	return Domain{Intervals: []Interval{{Lo: n, Hi: n}}}
}

// Range returns the domain [lo, hi]. If hi < lo the result is Empty.
func Range(lo, hi int) Domain {
	if hi < lo {
		return Empty
	}
	return Domain{Intervals: []Interval{{Lo: lo, Hi: hi}}}
}

// FromIntervals builds a canonical Domain from a literal list of [lo,hi]
// pairs, in the "domain literal format" of spec §6: an ordered list of
// two-element integer arrays. The input need not already be canonical.
func FromIntervals(pairs [][2]int) Domain {
	ivs := make([]Interval, len(pairs))
	for i, p := range pairs {
		ivs[i] = Interval{Lo: p[0], Hi: p[1]}
	}
	return canonicalize(ivs)
}

// IsEmpty reports whether the domain contains no values.
func (d Domain) IsEmpty() bool {
	return len(d.Intervals) == 0
}

// IsSingleton reports whether the domain contains exactly one value.
func (d Domain) IsSingleton() bool {
	return len(d.Intervals) == 1 && d.Intervals[0].Lo == d.Intervals[0].Hi
}

// SingletonValue returns the sole value of a singleton domain. The result
// is undefined if !d.IsSingleton().
func (d Domain) SingletonValue() int {
	return d.Intervals[0].Lo
}

// Bounds returns the domain's (min, max). It fails (ok=false) on the empty
// domain.
func (d Domain) Bounds() (lo, hi int, ok bool) {
	if d.IsEmpty() {
		return 0, 0, false
	}
	return d.Intervals[0].Lo, d.Intervals[len(d.Intervals)-1].Hi, true
}

// Min returns the smallest value in the domain, or 0 if empty.
func (d Domain) Min() int {
	if d.IsEmpty() {
		return 0
	}
	return d.Intervals[0].Lo
}

// Max returns the largest value in the domain, or 0 if empty.
func (d Domain) Max() int {
	if d.IsEmpty() {
		return 0
	}
	return d.Intervals[len(d.Intervals)-1].Hi
}

// Size returns the number of integers represented by the domain.
func (d Domain) Size() int {
	n := 0
	for _, iv := range d.Intervals {
		n += iv.Hi - iv.Lo + 1
	}
	return n
}

// Has reports whether v is a member of the domain. Uses binary search over
// the canonical interval sequence.
func (d Domain) Has(v int) bool {
	ivs := d.Intervals
	lo, hi := 0, len(ivs)-1
	for lo <= hi {
		mid := (lo + hi) / 2
		switch {
		case v < ivs[mid].Lo:
			hi = mid - 1
		case v > ivs[mid].Hi:
			lo = mid + 1
		default:
			return true
		}
	}
	return false
}

// Mid returns the exact middle integer of the domain, counting across all
// intervals (the value at index Size()/2 in the domain's sorted
// enumeration). Undefined on the empty domain.
func (d Domain) Mid() int {
	target := d.Size() / 2
	count := 0
	for _, iv := range d.Intervals {
		width := iv.Hi - iv.Lo + 1
		if count+width > target {
			return iv.Lo + (target - count)
		}
		count += width
	}
	return d.Intervals[len(d.Intervals)-1].Hi
}

// RoughMid returns the midpoint of the domain's middle interval — an O(1)
// approximation of Mid that avoids walking the whole interval list.
func (d Domain) RoughMid() int {
	mid := len(d.Intervals) / 2
	iv := d.Intervals[mid]
	return (iv.Lo + iv.Hi) / 2
}

// Equal reports structural equality on canonical form.
func (d Domain) Equal(o Domain) bool {
	if len(d.Intervals) != len(o.Intervals) {
		return false
	}
	for i, iv := range d.Intervals {
		if iv != o.Intervals[i] {
			return false
		}
	}
	return true
}

// String renders the domain using the canonical interval literal syntax.
func (d Domain) String() string {
	if d.IsEmpty() {
		return "[]"
	}
	parts := make([]string, len(d.Intervals))
	for i, iv := range d.Intervals {
		parts[i] = fmt.Sprintf("[%d,%d]", iv.Lo, iv.Hi)
	}
	return "[" + strings.Join(parts, ",") + "]"
}

// isCanonical reports whether ivs is already sorted, non-overlapping,
// non-touching, and free of empty intervals — the fast path canonicalize
// checks before doing any work.
func isCanonical(ivs []Interval) bool {
	for i, iv := range ivs {
		if iv.Hi < iv.Lo {
			return false
		}
		if i > 0 && ivs[i-1].Hi+1 >= iv.Lo {
			return false
		}
	}
	return true
}

// canonicalize sorts intervals by Lo, drops empty ones, and merges
// touching or overlapping neighbours, producing the canonical form spec
// §4.1 requires. Already-canonical input is detected and returned
// unchanged (no allocation).
func canonicalize(ivs []Interval) Domain {
	if isCanonical(ivs) {
		return Domain{Intervals: ivs}
	}

	filtered := make([]Interval, 0, len(ivs))
	for _, iv := range ivs {
		if iv.Lo <= iv.Hi {
			filtered = append(filtered, iv)
		}
	}
	if len(filtered) == 0 {
		return Empty
	}

	sort.Slice(filtered, func(i, j int) bool { return filtered[i].Lo < filtered[j].Lo })

	merged := make([]Interval, 0, len(filtered))
	cur := filtered[0]
	for _, iv := range filtered[1:] {
		if iv.Lo <= cur.Hi+1 {
			if iv.Hi > cur.Hi {
				cur.Hi = iv.Hi
			}
		} else {
			merged = append(merged, cur)
			cur = iv
		}
	}
	merged = append(merged, cur)

	return Domain{Intervals: merged}
}

// Canonicalize is the exported form of canonicalize, for callers building
// Domains from ad-hoc interval lists (e.g. deserializing the domain
// literal format of spec §6).
func Canonicalize(ivs []Interval) Domain {
	return canonicalize(ivs)
}

// Intersection returns the canonical domain of integers present in both a
// and b. Runs in O(|a|+|b|) via a merge over the two sorted interval
// sequences.
func Intersection(a, b Domain) Domain {
	var out []Interval
	i, j := 0, 0
	ai, bi := a.Intervals, b.Intervals
	for i < len(ai) && j < len(bi) {
		lo := max(ai[i].Lo, bi[j].Lo)
		hi := min(ai[i].Hi, bi[j].Hi)
		if lo <= hi {
			out = append(out, Interval{Lo: lo, Hi: hi})
		}
		if ai[i].Hi < bi[j].Hi {
			i++
		} else {
			j++
		}
	}
	// out is already sorted and non-overlapping by construction; still run
	// through canonicalize as a cheap no-op fast path in case of adjacency.
	return canonicalize(out)
}

// Union returns the canonical domain of integers present in either a or b.
func Union(a, b Domain) Domain {
	merged := make([]Interval, 0, len(a.Intervals)+len(b.Intervals))
	merged = append(merged, a.Intervals...)
	merged = append(merged, b.Intervals...)
	return canonicalize(merged)
}

// Complement returns the canonical domain of integers in [0, SUP] that are
// not in d. Walks every interval of d, inserting the gap before it and,
// after the loop, the gap following the last interval — see the open
// question in spec §9 about domain_complement's off-by-one.
func Complement(d Domain) Domain {
	if d.IsEmpty() {
		return Range(0, SUP)
	}
	var out []Interval
	prevHi := -1
	for _, iv := range d.Intervals {
		if iv.Lo > prevHi+1 {
			out = append(out, Interval{Lo: prevHi + 1, Hi: iv.Lo - 1})
		}
		prevHi = iv.Hi
	}
	if prevHi < SUP {
		out = append(out, Interval{Lo: prevHi + 1, Hi: SUP})
	}
	return Domain{Intervals: out}
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > SUP {
		return SUP
	}
	return v
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// minWidth returns the width of the narrowest interval in d. Used by
// closeGaps2. Returns 0 for the empty domain.
func minWidth(d Domain) int {
	if d.IsEmpty() {
		return 0
	}
	w := d.Intervals[0].Hi - d.Intervals[0].Lo + 1
	for _, iv := range d.Intervals[1:] {
		if width := iv.Hi - iv.Lo + 1; width < w {
			w = width
		}
	}
	return w
}

// closeGaps2 is the gap-closing pre-simplification spec §4.1 requires
// before plus/minus: repeatedly, for each operand, merge adjacent
// intervals whose separation is strictly less than the smallest interval
// width of the *other* operand, until neither operand shrinks further.
// This caps output fragmentation: when adding, each interval expands by
// the other's extent, so narrow gaps would vanish anyway.
func closeGaps2(a, b Domain) (Domain, Domain) {
	for {
		wa, wb := minWidth(a), minWidth(b)
		na := mergeGapsNarrowerThan(a, wb)
		nb := mergeGapsNarrowerThan(b, wa)
		if len(na.Intervals) == len(a.Intervals) && len(nb.Intervals) == len(b.Intervals) {
			return na, nb
		}
		a, b = na, nb
	}
}

// mergeGapsNarrowerThan merges adjacent intervals of d whose gap (the
// count of missing integers strictly between them) is < threshold.
func mergeGapsNarrowerThan(d Domain, threshold int) Domain {
	if len(d.Intervals) < 2 || threshold <= 0 {
		return d
	}
	out := make([]Interval, 0, len(d.Intervals))
	cur := d.Intervals[0]
	for _, iv := range d.Intervals[1:] {
		gap := iv.Lo - cur.Hi - 1
		if gap < threshold {
			cur.Hi = iv.Hi
		} else {
			out = append(out, cur)
			cur = iv
		}
	}
	out = append(out, cur)
	return Domain{Intervals: out}
}

// Plus computes canonicalize({[a.Lo+b.Lo, a.Hi+b.Hi] for all interval
// pairs}), clamped to [0, SUP], after gap-closing pre-simplification.
func Plus(a, b Domain) Domain {
	a, b = closeGaps2(a, b)
	out := make([]Interval, 0, len(a.Intervals)*len(b.Intervals))
	for _, x := range a.Intervals {
		for _, y := range b.Intervals {
			out = append(out, Interval{Lo: clamp(x.Lo + y.Lo), Hi: clamp(x.Hi + y.Hi)})
		}
	}
	return canonicalize(out)
}

// Minus computes canonicalize({[max(0,a.Lo-b.Hi), a.Hi-b.Lo] : a.Hi >=
// b.Lo}), clamped to [0, SUP], after gap-closing pre-simplification.
func Minus(a, b Domain) Domain {
	a, b = closeGaps2(a, b)
	out := make([]Interval, 0, len(a.Intervals)*len(b.Intervals))
	for _, x := range a.Intervals {
		for _, y := range b.Intervals {
			if x.Hi < y.Lo {
				continue
			}
			out = append(out, Interval{Lo: clamp(x.Lo - y.Hi), Hi: clamp(x.Hi - y.Lo)})
		}
	}
	return canonicalize(out)
}

// Times computes canonicalize({[a.Lo*b.Lo, a.Hi*b.Hi]}), clamped to
// [0, SUP]. This is bounds-only — not domain-consistent — per spec §4.1
// and the Non-goal that multiplication need not be domain-consistent.
func Times(a, b Domain) Domain {
	out := make([]Interval, 0, len(a.Intervals)*len(b.Intervals))
	for _, x := range a.Intervals {
		for _, y := range b.Intervals {
			out = append(out, Interval{Lo: clamp(x.Lo * y.Lo), Hi: clamp(x.Hi * y.Hi)})
		}
	}
	return canonicalize(out)
}

// Divby computes canonicalize({[floor(a.Lo/b.Hi), floor(a.Hi/b.Lo)] :
// b.Hi > 0}), with Hi = SUP when b.Lo == 0 — spec §4.1's literal rule.
// A divisor interval that is exactly {0} (Hi == 0) is the only case
// skipped, since every quotient would be a division by zero.
func Divby(a, b Domain) Domain {
	out := make([]Interval, 0, len(a.Intervals)*len(b.Intervals))
	for _, x := range a.Intervals {
		for _, y := range b.Intervals {
			if y.Hi <= 0 {
				continue
			}
			hi := SUP
			if y.Lo > 0 {
				hi = floorDiv(x.Hi, y.Lo)
			}
			lo := floorDiv(x.Lo, y.Hi)
			out = append(out, Interval{Lo: clamp(lo), Hi: clamp(hi)})
		}
	}
	return canonicalize(out)
}

func floorDiv(a, b int) int {
	if b == 0 {
		return 0
	}
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
