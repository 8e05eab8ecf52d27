// stack_test.go - Simple test-cases for our stack

package stack

import "testing"

// TestEmpty: Test that the Empty() function works as expected.
func TestEmpty(t *testing.T) {
	s := New[string]()

	if !s.Empty() {
		t.Errorf("New stack is not empty!")
	}

	s.Push("33")

	if s.Empty() {
		t.Errorf("Despite storing a value the stack is still empty!")
	}
}

// TestEmptyPop: Test that pop'ing from an empty stack fails.
func TestEmptyPop(t *testing.T) {
	s := New[string]()

	_, err := s.Pop()
	if err == nil {
		t.Errorf("Expected an error popping from an empty stack!")
	}
}

// TestPushPop: Test that we can store/retrieve as we expect.
func TestPushPop(t *testing.T) {
	s := New[string]()

	s.Push("33")

	out, err := s.Pop()
	if err != nil {
		t.Errorf("We shouldn't get an error popping from our stack")
	}
	if out != "33" {
		t.Errorf("We retrieved a value from our stack, but it was wrong")
	}
}

// TestPeek: Test that peeking doesn't remove the item.
func TestPeek(t *testing.T) {
	s := New[int]()

	s.Push(7)

	v, err := s.Peek()
	if err != nil {
		t.Errorf("unexpected error peeking: %s", err)
	}
	if v != 7 {
		t.Errorf("peek returned wrong value: %d", v)
	}
	if s.Empty() {
		t.Errorf("peek should not remove the item")
	}
}

// TestIntStack: the stack is generic - it works for non-string payloads
// such as the operator/operand pairs the parser pushes while climbing
// arexpr precedence.
func TestIntStack(t *testing.T) {
	s := New[int]()

	s.Push(1)
	s.Push(2)
	s.Push(3)

	for _, want := range []int{3, 2, 1} {
		got, err := s.Pop()
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
		if got != want {
			t.Fatalf("expected %d, got %d", want, got)
		}
	}
}
