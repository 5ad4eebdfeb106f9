package grab

import "go.uber.org/multierr"

// Disposer undoes a single side effect of activation.
type Disposer interface {
	Dispose() error
}

// DisposeFunc adapts function to Disposer.
type DisposeFunc func() error

func (f DisposeFunc) Dispose() error {
	return f()
}

// Stack keeps disposers in order of registration.
type Stack struct {
	items []Disposer
}

// Push adds disposer on top of the stack.
func (s *Stack) Push(d Disposer) {
	s.items = append(s.items, d)
}

// Len returns number of disposers not yet run.
func (s *Stack) Len() int {
	return len(s.items)
}

// DisposeAll runs every disposer in reverse order of registration and empties
// the stack. Failure of one disposer does not prevent others from running,
// all errors are returned combined.
func (s *Stack) DisposeAll() (err error) {
	items := s.items
	s.items = nil
	for i := len(items) - 1; i >= 0; i-- {
		err = multierr.Append(err, items[i].Dispose())
	}
	return err
}
