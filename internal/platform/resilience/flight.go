package resilience

import "golang.org/x/sync/singleflight"

// Flight collapses concurrent loads of the same key into one call whose
// result is shared by every waiter.
type Flight[T any] struct {
	group singleflight.Group
}

// Do runs fn once per in-flight key. shared reports whether the result was
// handed to more than one caller.
func (f *Flight[T]) Do(key string, fn func() (T, error)) (value T, err error, shared bool) {
	raw, err, shared := f.group.Do(key, func() (any, error) {
		return fn()
	})
	if err != nil {
		var zero T
		return zero, err, shared
	}
	value, _ = raw.(T)
	return value, nil, shared
}

// Forget drops key so the next Do starts a fresh call.
func (f *Flight[T]) Forget(key string) {
	f.group.Forget(key)
}
