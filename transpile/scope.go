package transpile

import (
	"github.com/teranos/py2rs/errors"
)

// Marker identifies the kind of lexical block the traversal is inside.
type Marker int

const (
	// Module is the implicit outermost block. It is never pushed.
	Module Marker = iota
	Class
	Function
	ConditionalBlock
	LoopBlock
	WhileBlock
	ExceptionBlock
	ResourceBlock
)

var markerNames = [...]string{
	Module:           "module",
	Class:            "class",
	Function:         "function",
	ConditionalBlock: "conditional",
	LoopBlock:        "loop",
	WhileBlock:       "while",
	ExceptionBlock:   "exception",
	ResourceBlock:    "resource",
}

func (m Marker) String() string {
	if m >= 0 && int(m) < len(markerNames) {
		return markerNames[m]
	}
	return "unknown"
}

type frame struct {
	marker Marker
	label  string
	bound  map[string]struct{}
}

// Scope is the stack of blocks enclosing the node being translated.
//
// Rules push exactly one marker when they open a block and pop it when they
// leave, on every return path. A Scope belongs to a single traversal.
type Scope struct {
	frames []frame
	global map[string]struct{}
}

// NewScope returns an empty stack (module level).
func NewScope() *Scope {
	return &Scope{global: make(map[string]struct{})}
}

// Push enters a block.
func (s *Scope) Push(m Marker) {
	s.PushLabeled(m, "")
}

// PushLabeled enters a block carrying a label, e.g. the name an exception
// handler binds.
func (s *Scope) PushLabeled(m Marker, label string) {
	s.frames = append(s.frames, frame{marker: m, label: label})
}

// Pop leaves the innermost block. Popping an empty stack is a defect in a
// translation rule and panics.
func (s *Scope) Pop() Marker {
	if len(s.frames) == 0 {
		panic(errors.AssertionFailedf("scope: pop on empty stack"))
	}
	top := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]
	return top.marker
}

// Depth is the number of open blocks.
func (s *Scope) Depth() int {
	return len(s.frames)
}

// AtGlobalScope reports whether no block is open.
func (s *Scope) AtGlobalScope() bool {
	return len(s.frames) == 0
}

// InnermostIs reports whether the innermost open block is one of kinds.
func (s *Scope) InnermostIs(kinds ...Marker) bool {
	if len(s.frames) == 0 {
		return false
	}
	top := s.frames[len(s.frames)-1].marker
	for _, k := range kinds {
		if top == k {
			return true
		}
	}
	return false
}

// Label returns the label of the nearest enclosing block of kind m. Like
// IsBound, the search stops at the nearest function or class boundary.
func (s *Scope) Label(m Marker) (string, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		f := s.frames[i]
		if f.marker == m {
			return f.label, true
		}
		if f.marker == Function || f.marker == Class {
			break
		}
	}
	return "", false
}

// Bind records name as introduced in the innermost block.
func (s *Scope) Bind(name string) {
	if len(s.frames) == 0 {
		s.global[name] = struct{}{}
		return
	}
	top := &s.frames[len(s.frames)-1]
	if top.bound == nil {
		top.bound = make(map[string]struct{})
	}
	top.bound[name] = struct{}{}
}

// IsBound reports whether name was already introduced in a block that is
// visible from here. The search stops at the nearest function or class
// boundary; module-level names are only visible when no such boundary
// encloses the current block.
func (s *Scope) IsBound(name string) bool {
	for i := len(s.frames) - 1; i >= 0; i-- {
		f := s.frames[i]
		if _, ok := f.bound[name]; ok {
			return true
		}
		if f.marker == Function || f.marker == Class {
			return false
		}
	}
	_, ok := s.global[name]
	return ok
}
