package fdspace

// This file implements the arithmetic propagators of spec §4.4: the
// generic ring decomposition behind plus/times, scale, and the
// temporary-based decompositions sum/product/wsum/times_plus. Grounded
// on the teacher's scale.go (directed domain-shrink propagator) and
// sum.go's LinearSum (balanced decomposition via temporaries).

// outVar returns out[0] if supplied, else a fresh temporary.
func outVar(sp *Space, out ...VarID) VarID {
	if len(out) > 0 {
		return out[0]
	}
	return sp.Temp()
}

// bindOut equates v with out[0], if supplied, and returns whichever
// name should be treated as the operation's result.
func bindOut(sp *Space, v VarID, out ...VarID) VarID {
	if len(out) == 0 {
		return v
	}
	Eq(sp, v, out[0])
	return out[0]
}

// ringProp implements the generic three-propagator ring decomposition of
// s = x ⊕ y (spec §4.4): s ← s ∩ (x⊕y); x ← x ∩ (s⊖y); y ← y ∩ (s⊖x).
type ringProp struct {
	gate
	x, y, s    VarID
	vx, vy, vs *Variable
	combine    func(a, b Domain) Domain
	uncombine  func(a, b Domain) Domain
}

func (p *ringProp) AllVars() []VarID { return []VarID{p.x, p.y, p.s} }
func (p *ringProp) DepVars() []VarID { return p.AllVars() }

func (p *ringProp) Step() (int, error) {
	skip, commit := p.checkStep(p.vx, p.vy, p.vs)
	if skip {
		return 0, nil
	}
	if err := p.vs.Constrain(p.combine(p.vx.Domain(), p.vy.Domain())); err != nil {
		return 0, err
	}
	if err := p.vx.Constrain(p.uncombine(p.vs.Domain(), p.vy.Domain())); err != nil {
		return 0, err
	}
	if err := p.vy.Constrain(p.uncombine(p.vs.Domain(), p.vx.Domain())); err != nil {
		return 0, err
	}
	delta := commit()
	p.markSolvedIfDetermined(p.vx, p.vy, p.vs)
	return delta, nil
}

func (p *ringProp) rebind(sp *Space) Propagator {
	return &ringProp{
		gate: p.gate, x: p.x, y: p.y, s: p.s,
		vx: sp.MustVar(p.x), vy: sp.MustVar(p.y), vs: sp.MustVar(p.s),
		combine: p.combine, uncombine: p.uncombine,
	}
}

func ringPost(sp *Space, combine, uncombine func(Domain, Domain) Domain, x, y VarID, out ...VarID) VarID {
	s := outVar(sp, out...)
	p := &ringProp{
		x: x, y: y, s: s,
		vx: sp.MustVar(x), vy: sp.MustVar(y), vs: sp.MustVar(s),
		combine: combine, uncombine: uncombine,
	}
	sp.AddPropagator(p)
	return s
}

// PostPlus posts s = x + y (allocating s if out is omitted) and returns s.
func PostPlus(sp *Space, x, y VarID, out ...VarID) VarID {
	return ringPost(sp, Plus, Minus, x, y, out...)
}

// PostTimes posts p = x * y (allocating p if out is omitted) and returns p.
// Bounds-only, per Times's Non-goal of domain-consistency.
func PostTimes(sp *Space, x, y VarID, out ...VarID) VarID {
	return ringPost(sp, Times, Divby, x, y, out...)
}

func scaleDomain(d Domain, k int) Domain {
	out := make([]Interval, 0, len(d.Intervals))
	for _, iv := range d.Intervals {
		out = append(out, Interval{Lo: clamp(iv.Lo * k), Hi: clamp(iv.Hi * k)})
	}
	return canonicalize(out)
}

func unscaleDomain(d Domain, k int) Domain {
	out := make([]Interval, 0, len(d.Intervals))
	for _, iv := range d.Intervals {
		out = append(out, Interval{Lo: clamp(floorDiv(iv.Lo, k)), Hi: clamp(floorDiv(iv.Hi, k))})
	}
	return canonicalize(out)
}

// scaleProp narrows p toward k*v and v toward p/k (spec §4.4's scale).
type scaleProp struct {
	gate
	k    int
	v, p VarID
	vv   *Variable
	vp   *Variable
}

func (p *scaleProp) AllVars() []VarID { return []VarID{p.v, p.p} }
func (p *scaleProp) DepVars() []VarID { return p.AllVars() }

func (p *scaleProp) Step() (int, error) {
	skip, commit := p.checkStep(p.vv, p.vp)
	if skip {
		return 0, nil
	}
	if err := p.vp.Constrain(scaleDomain(p.vv.Domain(), p.k)); err != nil {
		return 0, err
	}
	if err := p.vv.Constrain(unscaleDomain(p.vp.Domain(), p.k)); err != nil {
		return 0, err
	}
	delta := commit()
	p.markSolvedIfDetermined(p.vv, p.vp)
	return delta, nil
}

func (p *scaleProp) rebind(sp *Space) Propagator {
	return &scaleProp{gate: p.gate, k: p.k, v: p.v, p: p.p, vv: sp.MustVar(p.v), vp: sp.MustVar(p.p)}
}

// PostScale posts p = k*v (spec §4.4). Degenerate cases: k == 0 posts
// eq(temp({0}), p); k == 1 posts eq(v, p). Returns ErrNegativeScale for
// k < 0.
func PostScale(sp *Space, k int, v VarID, out ...VarID) (VarID, error) {
	if k < 0 {
		return VarID{}, ErrNegativeScale
	}
	p := outVar(sp, out...)
	switch k {
	case 0:
		zero, err := sp.Konst(0)
		if err != nil {
			return VarID{}, err
		}
		Eq(sp, zero, p)
	case 1:
		Eq(sp, v, p)
	default:
		sp.AddPropagator(&scaleProp{k: k, v: v, p: p, vv: sp.MustVar(v), vp: sp.MustVar(p)})
	}
	return p, nil
}

// PostSum posts s = vars[0] + ... + vars[n-1] via balanced binary
// decomposition through temporaries (spec §4.4) and returns s.
// ErrEmptySum if vars is empty.
func PostSum(sp *Space, vars []VarID, out ...VarID) (VarID, error) {
	if len(vars) == 0 {
		return VarID{}, ErrEmptySum
	}
	return bindOut(sp, sumRec(sp, vars), out...), nil
}

func sumRec(sp *Space, vars []VarID) VarID {
	if len(vars) == 1 {
		return vars[0]
	}
	mid := len(vars) / 2
	left := sumRec(sp, vars[:mid])
	right := sumRec(sp, vars[mid:])
	return PostPlus(sp, left, right)
}

// PostProduct posts p = vars[0] * ... * vars[n-1] via balanced binary
// decomposition and returns p. ErrEmptySum if vars is empty.
func PostProduct(sp *Space, vars []VarID, out ...VarID) (VarID, error) {
	if len(vars) == 0 {
		return VarID{}, ErrEmptySum
	}
	return bindOut(sp, productRec(sp, vars), out...), nil
}

func productRec(sp *Space, vars []VarID) VarID {
	if len(vars) == 1 {
		return vars[0]
	}
	mid := len(vars) / 2
	left := productRec(sp, vars[:mid])
	right := productRec(sp, vars[mid:])
	return PostTimes(sp, left, right)
}

// PostWSum posts s = ks[0]*vars[0] + ... + ks[n-1]*vars[n-1] (spec §4.4:
// for each i, t_i = scale(k_i, vars_i), then sum(t_i, s)) and returns s.
// ks and vars must have equal length.
func PostWSum(sp *Space, ks []int, vars []VarID, out ...VarID) (VarID, error) {
	ts := make([]VarID, len(vars))
	for i, v := range vars {
		t, err := PostScale(sp, ks[i], v)
		if err != nil {
			return VarID{}, err
		}
		ts[i] = t
	}
	s, err := PostSum(sp, ts)
	if err != nil {
		return VarID{}, err
	}
	return bindOut(sp, s, out...), nil
}

// PostTimesPlus posts r = k1*v1 + k2*v2 (spec §4.4) and returns r.
func PostTimesPlus(sp *Space, k1 int, v1 VarID, k2 int, v2 VarID, out ...VarID) (VarID, error) {
	t1, err := PostScale(sp, k1, v1)
	if err != nil {
		return VarID{}, err
	}
	t2, err := PostScale(sp, k2, v2)
	if err != nil {
		return VarID{}, err
	}
	return bindOut(sp, PostPlus(sp, t1, t2), out...), nil
}
