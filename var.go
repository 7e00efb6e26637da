package gimgen

// A Var is a variable that can be awaited.
// To retrieve the value, call the Get method.
//
// Awaiting a Var suspends a [Coroutine] until the next call of Set (or
// Update), and resumes it with the new value.
//
// A Var must not be shared by more than one [Executor].
type Var[T any] struct {
	changed *ManualSignal
	value   T
}

// NewVar creates a new [Var] with its initial value set to v.
func NewVar[T any](v T) *Var[T] {
	return &Var[T]{changed: NewManualSignal(), value: v}
}

// String implements the [Signal] interface.
func (x *Var[T]) String() string {
	return "var"
}

// CreateCompletion implements the [Signal] interface.
func (x *Var[T]) CreateCompletion() *Completion {
	c, resolve, _ := NewCompletion()
	x.changed.CreateCompletion().Then(func(v any) {
		resolve(v.([]any)[0])
	}, nil)
	return c
}

// Get retrieves the value of x.
func (x *Var[T]) Get() T {
	return x.value
}

// Set updates the value of x and resumes any coroutine that is awaiting x.
func (x *Var[T]) Set(v T) {
	x.value = v
	x.changed.Trigger(v)
}

// Update sets the value of x to f(x.Get()) and resumes any coroutine that
// is awaiting x.
func (x *Var[T]) Update(f func(v T) T) {
	x.Set(f(x.value))
}
