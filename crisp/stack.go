package crisp

import (
	"fmt"
	"io"
)

// CallStack is a combiner call stack.
type CallStack struct {
	Frames []CallFrame
}

// CallFrame is one frame in the CallStack.
type CallFrame struct {
	FID string
}

// Copy creates a copy of the current stack so that it can be attached to
// a runtime error.
func (s *CallStack) Copy() *CallStack {
	frames := make([]CallFrame, len(s.Frames))
	copy(frames, s.Frames)
	return &CallStack{frames}
}

// Top returns the CallFrame at the top of the stack or nil if none
// exists.
func (s *CallStack) Top() *CallFrame {
	if s == nil || len(s.Frames) == 0 {
		return nil
	}
	return &s.Frames[len(s.Frames)-1]
}

// PushFID pushes a new stack frame with the given FID onto s.
func (s *CallStack) PushFID(fid string) {
	s.Frames = append(s.Frames, CallFrame{FID: fid})
}

// Pop removes the top CallFrame from the stack and returns it.
func (s *CallStack) Pop() CallFrame {
	if len(s.Frames) < 1 {
		panic("pop called on an empty stack")
	}
	f := s.Frames[len(s.Frames)-1]
	s.Frames[len(s.Frames)-1] = CallFrame{}
	s.Frames = s.Frames[:len(s.Frames)-1]
	return f
}

// DebugPrint prints s
func (s *CallStack) DebugPrint(w io.Writer) (int, error) {
	n, err := fmt.Fprintf(w, "Stack Trace [%d frames -- entrypoint last]:\n", len(s.Frames))
	if err != nil {
		return n, err
	}
	for i := len(s.Frames) - 1; i >= 0; i-- {
		_n, err := fmt.Fprintf(w, "  height %d: %s\n", i, s.Frames[i].FID)
		n += _n
		if err != nil {
			return n, err
		}
	}
	return n, nil
}
