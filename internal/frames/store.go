// Package frames holds the ordered sequence of animation frames and the
// cursor that selects the frame being edited or displayed.
package frames

import (
	"fmt"

	"github.com/san-kum/pixanim/internal/pixel"
)

// DefaultName is the naming policy for newly created frames.
func DefaultName(position int) string {
	return fmt.Sprintf("Frame%d", position)
}

// Frame pairs a grid with its display name.
type Frame struct {
	Grid *pixel.Grid
	Name string
}

// Store is an ordered, never-empty list of frames plus a current index.
// All structural changes clamp the cursor back into range.
type Store struct {
	dim     int
	frames  []*Frame
	current int
}

// New creates a store holding one blank frame of dimension n.
func New(n int) (*Store, error) {
	g, err := pixel.NewBlankGrid(n)
	if err != nil {
		return nil, err
	}
	return &Store{
		dim:    n,
		frames: []*Frame{{Grid: g, Name: DefaultName(1)}},
	}, nil
}

func (s *Store) Dim() int          { return s.dim }
func (s *Store) Len() int          { return len(s.frames) }
func (s *Store) CurrentIndex() int { return s.current }
func (s *Store) Current() *Frame   { return s.frames[s.current] }

// At returns the frame at i, or nil when i is out of range.
func (s *Store) At(i int) *Frame {
	if i < 0 || i >= len(s.frames) {
		return nil
	}
	return s.frames[i]
}

// InsertAfter adds a blank frame after index and makes it current. The new
// frame is named from the resulting length. Returns the new frame's index.
func (s *Store) InsertAfter(index int) int {
	index = s.clamp(index)
	g, _ := pixel.NewBlankGrid(s.dim)
	f := &Frame{Grid: g, Name: DefaultName(len(s.frames) + 1)}

	pos := index + 1
	s.frames = append(s.frames, nil)
	copy(s.frames[pos+1:], s.frames[pos:])
	s.frames[pos] = f
	s.current = pos
	return pos
}

// DeleteAt removes the frame at index. Deleting the only frame, or an
// out-of-range index, is refused and reports false.
func (s *Store) DeleteAt(index int) bool {
	if len(s.frames) <= 1 || index < 0 || index >= len(s.frames) {
		return false
	}
	copy(s.frames[index:], s.frames[index+1:])
	s.frames[len(s.frames)-1] = nil
	s.frames = s.frames[:len(s.frames)-1]
	s.current = s.clamp(index - 1)
	return true
}

// MoveCurrent shifts the cursor by delta, clamped to the valid range.
func (s *Store) MoveCurrent(delta int) int {
	s.current = s.clamp(s.current + delta)
	return s.current
}

// SetCurrent moves the cursor to index, clamped to the valid range.
func (s *Store) SetCurrent(index int) int {
	s.current = s.clamp(index)
	return s.current
}

// Rename changes the display name of one frame.
func (s *Store) Rename(index int, name string) bool {
	f := s.At(index)
	if f == nil {
		return false
	}
	f.Name = name
	return true
}

func (s *Store) Names() []string {
	names := make([]string, len(s.frames))
	for i, f := range s.frames {
		names[i] = f.Name
	}
	return names
}

// Snapshot deep-copies every grid in order. The result is safe to hand to
// another goroutine while editing continues.
func (s *Store) Snapshot() []*pixel.Grid {
	out := make([]*pixel.Grid, len(s.frames))
	for i, f := range s.frames {
		out[i] = f.Grid.Clone()
	}
	return out
}

func (s *Store) clamp(i int) int {
	if i < 0 {
		return 0
	}
	if i >= len(s.frames) {
		return len(s.frames) - 1
	}
	return i
}
