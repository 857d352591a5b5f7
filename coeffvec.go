package chemexpr

// CoeffVec is an ordered list of keys with integer coefficients. Each key
// appears at most once, compared with its Equal method, and keys keep the
// order in which they were first given a nonzero coefficient. A key with a
// zero coefficient is not present.
//
// The zero value is an empty vector ready to use.
type CoeffVec[K interface{ Equal(K) bool }] struct {
	pairs []Pair[K]
}

// Pair is one key and its coefficient in a CoeffVec.
type Pair[K any] struct {
	Key   K
	Coeff int
}

func (v *CoeffVec[K]) index(key K) int {
	for i, p := range v.pairs {
		if p.Key.Equal(key) {
			return i
		}
	}
	return -1
}

// Get returns the coefficient of key, which is zero if key is not present.
func (v *CoeffVec[K]) Get(key K) int {
	if i := v.index(key); i >= 0 {
		return v.pairs[i].Coeff
	}
	return 0
}

// Set sets the coefficient of key. Setting a coefficient to zero removes the
// key. A key not yet present is added at the end.
func (v *CoeffVec[K]) Set(key K, coeff int) {
	i := v.index(key)
	switch {
	case i < 0 && coeff == 0: // do nothing
	case i < 0:
		v.pairs = append(v.pairs, Pair[K]{key, coeff})
	case coeff == 0:
		v.pairs = append(v.pairs[:i], v.pairs[i+1:]...)
	default:
		v.pairs[i].Coeff = coeff
	}
}

// Len returns the number of keys with nonzero coefficients.
func (v *CoeffVec[K]) Len() int {
	return len(v.pairs)
}

// Pairs returns a copy of the pairs in order.
func (v *CoeffVec[K]) Pairs() []Pair[K] {
	return append(([]Pair[K])(nil), v.pairs...)
}

// Add adds the coefficients of w to those of v, key by key. Keys of w not in
// v are added in w's order.
func (v *CoeffVec[K]) Add(w *CoeffVec[K]) {
	for _, p := range w.Pairs() {
		v.Set(p.Key, v.Get(p.Key)+p.Coeff)
	}
}

// Scale multiplies every coefficient by k. Scaling by zero removes all keys.
func (v *CoeffVec[K]) Scale(k int) {
	if k == 0 {
		v.pairs = nil
		return
	}
	for i := range v.pairs {
		v.pairs[i].Coeff *= k
	}
}

// Clone returns a copy of v. Keys are shared.
func (v *CoeffVec[K]) Clone() CoeffVec[K] {
	return CoeffVec[K]{pairs: v.Pairs()}
}

// Equal reports whether v and w have the same coefficient for every key,
// regardless of order.
func (v *CoeffVec[K]) Equal(w *CoeffVec[K]) bool {
	if len(v.pairs) != len(w.pairs) {
		return false
	}
	for _, p := range v.pairs {
		if w.Get(p.Key) != p.Coeff {
			return false
		}
	}
	return true
}
