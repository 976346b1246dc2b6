// Package conditional implements the #ifdef/#ifndef nesting stack.
package conditional

// MaxDepth is the hard cap on conditional nesting. It is independent
// of any runtime configuration.
const MaxDepth = 64

// frame is one level of #ifdef/#ifndef nesting. active reports
// whether the current branch at this level emits output; taken
// reports whether some branch at this level has already been taken,
// which determines the effect of #else.
type frame struct {
	active bool
	taken  bool
}

// Stack tracks nested conditional-compilation blocks. The zero value
// is an empty stack, ready to use.
type Stack struct {
	frames []frame
}

// Depth returns the current nesting depth.
func (s *Stack) Depth() int {
	return len(s.frames)
}

// Active reports whether plain text should currently be emitted:
// true only when every frame on the stack is active.
func (s *Stack) Active() bool {
	for i := range s.frames {
		if !s.frames[i].active {
			return false
		}
	}
	return true
}

// Push opens a new conditional level whose branch is active when
// cond is true. It reports false when the nesting cap is reached.
func (s *Stack) Push(cond bool) bool {
	if len(s.frames) >= MaxDepth {
		return false
	}
	s.frames = append(s.frames, frame{active: cond, taken: cond})
	return true
}

// Else flips the innermost frame: the branch becomes active exactly
// when no branch at that level was taken before. It reports false
// when the stack is empty.
func (s *Stack) Else() bool {
	if len(s.frames) == 0 {
		return false
	}
	top := &s.frames[len(s.frames)-1]
	top.active = !top.taken
	return true
}

// Pop closes the innermost conditional level. It reports false when
// the stack is empty.
func (s *Stack) Pop() bool {
	if len(s.frames) == 0 {
		return false
	}
	s.frames = s.frames[:len(s.frames)-1]
	return true
}
