// Package scope models the nesting of assembly contexts as an explicit
// stack. Each generation pipeline invocation owns its own Stack; sharing one
// across concurrently processed documents is a caller bug.
package scope

// Stack tracks the active scope names, innermost last. The zero value is an
// empty stack and ready to use. Stack is not safe for concurrent use.
type Stack struct {
	names []string
}

// Enter pushes a scope name, making it the current scope.
func (s *Stack) Enter(name string) {
	s.names = append(s.names, name)
}

// Leave pops the current scope and restores whatever was active before the
// matching Enter. Leaving with an empty stack is a no-op.
func (s *Stack) Leave() {
	if len(s.names) == 0 {
		return
	}
	s.names = s.names[:len(s.names)-1]
}

// Current returns the innermost scope name, or false when no scope is active.
func (s *Stack) Current() (string, bool) {
	if len(s.names) == 0 {
		return "", false
	}
	return s.names[len(s.names)-1], true
}

// Depth reports how many scopes are currently active.
func (s *Stack) Depth() int { return len(s.names) }
