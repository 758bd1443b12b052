package ttlmemo

import "fmt"

// Wrap returns fn memoized through m. The result of a cache hit is the value
// fn returned when the entry was stored. If m is shared with a wrapper of a
// different result type, a hit on that wrapper's entry fails with
// ErrResultType.
func Wrap[R any](m *Memoizer, fn func(args ...any) (R, error)) func(args ...any) (R, error) {
	target := func(args ...any) (any, error) {
		return fn(args...)
	}
	return func(args ...any) (R, error) {
		v, err := m.Call(target, args...)
		if err != nil {
			var zero R
			return zero, err
		}
		r, ok := v.(R)
		if !ok && v != nil {
			return r, fmt.Errorf("%w: cached %T, want %T", ErrResultType, v, r)
		}
		return r, nil
	}
}

// arg returns args[i] as A. A nil interface argument yields A's zero value.
func arg[A any](args []any, i int) A {
	a, _ := args[i].(A)
	return a
}

func Wrap0[R any](m *Memoizer, fn func() (R, error)) func() (R, error) {
	w := Wrap(m, func(...any) (R, error) {
		return fn()
	})
	return func() (R, error) {
		return w()
	}
}

func Wrap1[A, R any](m *Memoizer, fn func(A) (R, error)) func(A) (R, error) {
	w := Wrap(m, func(args ...any) (R, error) {
		return fn(arg[A](args, 0))
	})
	return func(a A) (R, error) {
		return w(a)
	}
}

func Wrap2[A, B, R any](m *Memoizer, fn func(A, B) (R, error)) func(A, B) (R, error) {
	w := Wrap(m, func(args ...any) (R, error) {
		return fn(arg[A](args, 0), arg[B](args, 1))
	})
	return func(a A, b B) (R, error) {
		return w(a, b)
	}
}

func Wrap3[A, B, C, R any](m *Memoizer, fn func(A, B, C) (R, error)) func(A, B, C) (R, error) {
	w := Wrap(m, func(args ...any) (R, error) {
		return fn(arg[A](args, 0), arg[B](args, 1), arg[C](args, 2))
	})
	return func(a A, b B, c C) (R, error) {
		return w(a, b, c)
	}
}

// Memoize is shorthand for a fresh silent Memoizer wrapping a single-argument
// function.
func Memoize[A comparable, R any](ttl int, fn func(A) (R, error)) (func(A) (R, error), error) {
	m, err := New(ttl, Options{})
	if err != nil {
		return nil, err
	}
	return Wrap1(m, fn), nil
}
