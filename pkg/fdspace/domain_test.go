package fdspace

import "testing"

func TestDomainConstructors(t *testing.T) {
	if !Full().Equal(Range(0, SUP)) {
		t.Fatalf("Full() = %v, want Range(0, SUP)", Full())
	}
	if !Single(5).IsSingleton() || Single(5).SingletonValue() != 5 {
		t.Fatalf("Single(5) = %v, want singleton 5", Single(5))
	}
	if !Range(3, 1).IsEmpty() {
		t.Fatalf("Range(3, 1) = %v, want Empty", Range(3, 1))
	}
}

func TestFromIntervalsCanonicalizes(t *testing.T) {
	tests := []struct {
		name string
		in   [][2]int
		want string
	}{
		{"already_canonical", [][2]int{{0, 2}, {5, 7}}, "[[0,2],[5,7]]"},
		{"unsorted", [][2]int{{5, 7}, {0, 2}}, "[[0,2],[5,7]]"},
		{"touching_merges", [][2]int{{0, 2}, {3, 5}}, "[[0,5]]"},
		{"overlapping_merges", [][2]int{{0, 4}, {2, 6}}, "[[0,6]]"},
		{"empty_interval_dropped", [][2]int{{5, 3}, {0, 1}}, "[[0,1]]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromIntervals(tt.in).String()
			if got != tt.want {
				t.Fatalf("FromIntervals(%v) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestIntersection(t *testing.T) {
	a := FromIntervals([][2]int{{0, 5}, {10, 15}})
	b := FromIntervals([][2]int{{3, 12}})
	got := Intersection(a, b)
	want := "[[3,5],[10,12]]"
	if got.String() != want {
		t.Fatalf("Intersection = %s, want %s", got.String(), want)
	}
}

func TestUnion(t *testing.T) {
	a := FromIntervals([][2]int{{0, 2}})
	b := FromIntervals([][2]int{{3, 5}})
	got := Union(a, b).String()
	want := "[[0,5]]"
	if got != want {
		t.Fatalf("Union = %s, want %s", got, want)
	}
}

func TestComplement(t *testing.T) {
	tests := []struct {
		name string
		in   Domain
		want string
	}{
		{"empty_is_full", Empty, Full().String()},
		{"single_middle", Single(5), "[[0,4],[6,100000000]]"},
		{"covers_start", Range(0, 3), "[[4,100000000]]"},
		{"covers_end", Range(SUP-2, SUP), "[[0,99999997]]"},
		{"two_intervals", FromIntervals([][2]int{{2, 4}, {8, 10}}), "[[0,1],[5,7],[11,100000000]]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Complement(tt.in).String()
			if got != tt.want {
				t.Fatalf("Complement(%v) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestComplementInvolution(t *testing.T) {
	d := FromIntervals([][2]int{{2, 4}, {8, 10}, {50, 60}})
	got := Complement(Complement(d))
	if !got.Equal(d) {
		t.Fatalf("Complement(Complement(d)) = %v, want %v", got, d)
	}
}

func TestPlus(t *testing.T) {
	a := Range(1, 3)
	b := Range(10, 10)
	got := Plus(a, b).String()
	want := "[[11,13]]"
	if got != want {
		t.Fatalf("Plus = %s, want %s", got, want)
	}
}

func TestPlusClampsToSUP(t *testing.T) {
	a := Range(SUP-1, SUP)
	b := Range(1, 2)
	got := Plus(a, b)
	if got.Max() != SUP {
		t.Fatalf("Plus max = %d, want clamped to %d", got.Max(), SUP)
	}
}

func TestMinus(t *testing.T) {
	a := Range(10, 15)
	b := Range(3, 5)
	got := Minus(a, b).String()
	want := "[[5,12]]"
	if got != want {
		t.Fatalf("Minus = %s, want %s", got, want)
	}
}

func TestMinusSkipsImpossiblePairs(t *testing.T) {
	a := Single(2)
	b := Single(10)
	got := Minus(a, b)
	if !got.IsEmpty() {
		t.Fatalf("Minus(2, 10) = %v, want Empty (2-10 underflows)", got)
	}
}

func TestTimesBoundsOnly(t *testing.T) {
	a := Range(2, 3)
	b := Range(4, 5)
	got := Times(a, b).String()
	want := "[[8,15]]"
	if got != want {
		t.Fatalf("Times = %s, want %s", got, want)
	}
}

func TestDivby(t *testing.T) {
	a := Range(10, 20)
	b := Range(2, 2)
	got := Divby(a, b).String()
	want := "[[5,10]]"
	if got != want {
		t.Fatalf("Divby = %s, want %s", got, want)
	}
}

func TestDivbyUsesSUPWhenDivisorLoIsZero(t *testing.T) {
	a := Range(10, 20)
	b := Range(0, 2)
	got := Divby(a, b)
	want := Range(5, SUP)
	if !got.Equal(want) {
		t.Fatalf("Divby by [0,2] = %v, want %v (spec §4.1: Hi = SUP when b.Lo == 0)", got, want)
	}
}

func TestDivbySkipsExactZeroDivisor(t *testing.T) {
	a := Range(10, 20)
	b := Single(0)
	got := Divby(a, b)
	if !got.IsEmpty() {
		t.Fatalf("Divby by {0} = %v, want Empty (division by zero)", got)
	}
}

func TestHas(t *testing.T) {
	d := FromIntervals([][2]int{{0, 2}, {5, 7}})
	for _, v := range []int{0, 1, 2, 5, 6, 7} {
		if !d.Has(v) {
			t.Fatalf("Has(%d) = false, want true", v)
		}
	}
	for _, v := range []int{3, 4, 8, -1} {
		if d.Has(v) {
			t.Fatalf("Has(%d) = true, want false", v)
		}
	}
}

func TestMid(t *testing.T) {
	d := FromIntervals([][2]int{{0, 1}, {10, 11}})
	if got := d.Mid(); got != 10 {
		t.Fatalf("Mid() = %d, want 10", got)
	}
}

func TestSize(t *testing.T) {
	d := FromIntervals([][2]int{{0, 2}, {10, 10}})
	if got := d.Size(); got != 4 {
		t.Fatalf("Size() = %d, want 4", got)
	}
}

func TestCloseGaps2MergesNarrowGaps(t *testing.T) {
	// a's intervals have width 2; b has a gap of width 1 between [0,0]
	// and [2,2], narrower than a's minimum width, so it should close.
	a := FromIntervals([][2]int{{0, 1}, {10, 11}})
	b := FromIntervals([][2]int{{0, 0}, {2, 2}})
	na, nb := closeGaps2(a, b)
	if !na.Equal(a) {
		t.Fatalf("closeGaps2 changed a to %v, want unchanged %v", na, a)
	}
	wantB := FromIntervals([][2]int{{0, 2}})
	if !nb.Equal(wantB) {
		t.Fatalf("closeGaps2(a, b) nb = %v, want %v", nb, wantB)
	}
}
