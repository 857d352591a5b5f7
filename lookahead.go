package chemexpr

// Lookahead is a peekable queue in front of a pull-based source. Items are
// always produced in source order. The buffer only grows as far as the deepest
// Peek requested.
type Lookahead[T any] struct {
	buf  []T
	next func() (T, bool)
	done bool
}

// NewLookahead creates a Lookahead over next, which returns false once the
// source is exhausted. After next returns false, it is not called again.
func NewLookahead[T any](next func() (T, bool)) *Lookahead[T] {
	return &Lookahead[T]{next: next}
}

// fill pulls from the source until the buffer holds n items or the source is
// exhausted.
func (l *Lookahead[T]) fill(n int) bool {
	for len(l.buf) < n {
		if l.done {
			return false
		}
		v, ok := l.next()
		if !ok {
			l.done = true
			return false
		}
		l.buf = append(l.buf, v)
	}
	return true
}

// Peek returns the k-th unconsumed item, counting from 0, without consuming
// it. The second result is false if the source ends before k or k is
// negative.
func (l *Lookahead[T]) Peek(k int) (T, bool) {
	if k < 0 || !l.fill(k+1) {
		var zero T
		return zero, false
	}
	return l.buf[k], true
}

// Next consumes and returns the front item.
func (l *Lookahead[T]) Next() (T, bool) {
	if len(l.buf) > 0 {
		v := l.buf[0]
		var zero T
		l.buf[0] = zero
		l.buf = l.buf[1:]
		return v, true
	}
	if l.done {
		var zero T
		return zero, false
	}
	v, ok := l.next()
	if !ok {
		l.done = true
	}
	return v, ok
}

// PushFront restores an item so that it is the next one returned.
func (l *Lookahead[T]) PushFront(v T) {
	l.buf = append(l.buf, v)
	copy(l.buf[1:], l.buf)
	l.buf[0] = v
}

// NextIf consumes and returns the next item only if it satisfies pred.
// Otherwise the item stays in place and the second result is false.
func (l *Lookahead[T]) NextIf(pred func(T) bool) (T, bool) {
	v, ok := l.Peek(0)
	if !ok || !pred(v) {
		var zero T
		return zero, false
	}
	return l.Next()
}
