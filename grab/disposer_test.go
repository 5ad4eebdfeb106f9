package grab

import (
	"errors"
	"testing"

	"go.uber.org/multierr"
)

func TestStack_DisposeAllReverseOrder(t *testing.T) {
	var order []int
	var s Stack
	for i := range 3 {
		s.Push(DisposeFunc(func() error {
			order = append(order, i)
			return nil
		}))
	}
	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}

	if err := s.DisposeAll(); err != nil {
		t.Fatalf("DisposeAll() error = %v", err)
	}
	if len(order) != 3 || order[0] != 2 || order[1] != 1 || order[2] != 0 {
		t.Errorf("disposal order = %v, want [2 1 0]", order)
	}
	if s.Len() != 0 {
		t.Errorf("Len() after DisposeAll = %d, want 0", s.Len())
	}
}

func TestStack_DisposeAllCollectsErrors(t *testing.T) {
	errFirst := errors.New("first")
	errThird := errors.New("third")

	ran := 0
	var s Stack
	s.Push(DisposeFunc(func() error { ran++; return errFirst }))
	s.Push(DisposeFunc(func() error { ran++; return nil }))
	s.Push(DisposeFunc(func() error { ran++; return errThird }))

	err := s.DisposeAll()
	if ran != 3 {
		t.Errorf("ran %d disposers, want 3", ran)
	}
	if !errors.Is(err, errFirst) || !errors.Is(err, errThird) {
		t.Errorf("DisposeAll() error = %v, want both errors", err)
	}
	if n := len(multierr.Errors(err)); n != 2 {
		t.Errorf("got %d errors, want 2", n)
	}

	// second run has nothing to do
	if err := s.DisposeAll(); err != nil {
		t.Errorf("second DisposeAll() error = %v", err)
	}
	if ran != 3 {
		t.Errorf("disposers ran again, count %d", ran)
	}
}
