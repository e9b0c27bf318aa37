package application

// Option is a field that may or may not have been supplied by the caller.
// The zero value is unset.
type Option[T any] struct {
	value T
	set   bool
}

func Some[T any](v T) Option[T] { return Option[T]{value: v, set: true} }

func None[T any]() Option[T] { return Option[T]{} }

// FromPtr is Some(*p) for non-nil p.
func FromPtr[T any](p *T) Option[T] {
	if p == nil {
		return Option[T]{}
	}
	return Some(*p)
}

func (o Option[T]) Get() (T, bool) { return o.value, o.set }

func (o Option[T]) IsSet() bool { return o.set }

func (o Option[T]) OrElse(def T) T {
	if o.set {
		return o.value
	}
	return def
}

// Apply overwrites *dst only when o is set.
func (o Option[T]) Apply(dst *T) {
	if o.set {
		*dst = o.value
	}
}
