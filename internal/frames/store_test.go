package frames

import (
	"errors"
	"testing"

	"github.com/san-kum/pixanim/internal/pixel"
)

func newStore(t *testing.T, n int) *Store {
	t.Helper()
	s, err := New(n)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return s
}

func isBlank(g *pixel.Grid) bool {
	return g.CountNot(pixel.Blank) == 0
}

func TestNewStore(t *testing.T) {
	s := newStore(t, 16)
	if s.Len() != 1 {
		t.Fatalf("expected 1 frame, got %d", s.Len())
	}
	if s.CurrentIndex() != 0 {
		t.Errorf("expected current 0, got %d", s.CurrentIndex())
	}
	if s.Current().Name != "Frame1" {
		t.Errorf("expected Frame1, got %s", s.Current().Name)
	}
	if !isBlank(s.Current().Grid) {
		t.Error("initial frame should be blank")
	}
}

func TestNewStoreBadDim(t *testing.T) {
	if _, err := New(4); !errors.Is(err, pixel.ErrDimension) {
		t.Errorf("expected ErrDimension, got %v", err)
	}
}

func TestInsertAfter(t *testing.T) {
	s := newStore(t, 8)
	s.Current().Grid.Set(0, 0, pixel.Black)

	for want := 2; want <= 5; want++ {
		before := s.Len()
		idx := s.InsertAfter(s.CurrentIndex())
		if s.Len() != before+1 {
			t.Fatalf("expected length %d, got %d", before+1, s.Len())
		}
		if idx != s.CurrentIndex() {
			t.Errorf("expected current %d, got %d", idx, s.CurrentIndex())
		}
		if !isBlank(s.Current().Grid) {
			t.Error("inserted frame should be blank")
		}
		if s.Current().Name != DefaultName(want) {
			t.Errorf("expected %s, got %s", DefaultName(want), s.Current().Name)
		}
	}
}

func TestInsertAfterMiddle(t *testing.T) {
	s := newStore(t, 8)
	s.InsertAfter(0)
	s.InsertAfter(1)
	s.SetCurrent(0)

	idx := s.InsertAfter(0)
	if idx != 1 {
		t.Fatalf("expected new frame at 1, got %d", idx)
	}
	want := []string{"Frame1", "Frame4", "Frame2", "Frame3"}
	got := s.Names()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestDeleteSingleFrameIsNoop(t *testing.T) {
	s := newStore(t, 8)
	s.Current().Grid.Set(2, 2, pixel.Black)
	before := s.Current().Grid.Clone()

	if s.DeleteAt(0) {
		t.Error("deleting the only frame should report false")
	}
	if s.Len() != 1 {
		t.Errorf("expected 1 frame, got %d", s.Len())
	}
	if !s.Current().Grid.Equal(before) {
		t.Error("content changed after refused delete")
	}
}

func TestDeleteClampsCurrent(t *testing.T) {
	tests := []struct {
		name        string
		frames      int
		deleteAt    int
		wantLen     int
		wantCurrent int
	}{
		{"first", 3, 0, 2, 0},
		{"middle", 3, 1, 2, 0},
		{"last", 3, 2, 2, 1},
		{"out of range", 3, 5, 3, 2},
		{"negative", 3, -1, 3, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStore(t, 8)
			for s.Len() < tt.frames {
				s.InsertAfter(s.CurrentIndex())
			}
			s.DeleteAt(tt.deleteAt)
			if s.Len() != tt.wantLen {
				t.Errorf("expected length %d, got %d", tt.wantLen, s.Len())
			}
			if s.CurrentIndex() != tt.wantCurrent {
				t.Errorf("expected current %d, got %d", tt.wantCurrent, s.CurrentIndex())
			}
		})
	}
}

func TestDeleteScenario(t *testing.T) {
	s := newStore(t, 16)
	red := pixel.RGB(255, 0, 0)
	s.Current().Grid.Set(0, 0, red)

	s.InsertAfter(s.CurrentIndex())
	if s.Len() != 2 || s.CurrentIndex() != 1 {
		t.Fatalf("expected 2 frames with current 1, got %d/%d", s.Len(), s.CurrentIndex())
	}
	if !isBlank(s.Current().Grid) {
		t.Fatal("second frame should be blank")
	}

	if !s.DeleteAt(0) {
		t.Fatal("first delete should succeed")
	}
	if s.Len() != 1 {
		t.Fatalf("expected 1 frame, got %d", s.Len())
	}
	if s.Current().Name != "Frame2" || !isBlank(s.Current().Grid) {
		t.Errorf("remaining frame should be blank Frame2, got %s", s.Current().Name)
	}

	if s.DeleteAt(0) {
		t.Error("second delete should be refused")
	}
	if s.Len() != 1 {
		t.Errorf("expected 1 frame, got %d", s.Len())
	}
}

func TestNamesAreNotRenumbered(t *testing.T) {
	s := newStore(t, 8)
	s.InsertAfter(0)
	s.InsertAfter(1)
	s.DeleteAt(1)

	got := s.Names()
	if got[0] != "Frame1" || got[1] != "Frame3" {
		t.Errorf("expected [Frame1 Frame3], got %v", got)
	}

	// resulting length is 3 again, so the generated name repeats
	s.InsertAfter(1)
	if s.Current().Name != "Frame3" {
		t.Errorf("expected Frame3, got %s", s.Current().Name)
	}
}

func TestMoveCurrent(t *testing.T) {
	s := newStore(t, 8)
	s.InsertAfter(0)
	s.InsertAfter(1)

	if got := s.MoveCurrent(1); got != 2 {
		t.Errorf("expected clamp at 2, got %d", got)
	}
	if got := s.MoveCurrent(-1); got != 1 {
		t.Errorf("expected 1, got %d", got)
	}
	if got := s.MoveCurrent(-10); got != 0 {
		t.Errorf("expected clamp at 0, got %d", got)
	}
}

func TestRename(t *testing.T) {
	s := newStore(t, 8)
	s.InsertAfter(0)

	if !s.Rename(0, "walk-1") {
		t.Fatal("rename should succeed")
	}
	if s.At(0).Name != "walk-1" || s.At(1).Name != "Frame2" {
		t.Errorf("unexpected names %v", s.Names())
	}
	if s.Rename(7, "nope") {
		t.Error("rename out of range should report false")
	}
}

func TestSnapshotIsIndependent(t *testing.T) {
	s := newStore(t, 8)
	s.InsertAfter(0)
	snap := s.Snapshot()

	s.At(0).Grid.Set(0, 0, pixel.Black)
	if !isBlank(snap[0]) {
		t.Error("snapshot changed after editing the store")
	}
	if len(snap) != 2 {
		t.Errorf("expected 2 grids, got %d", len(snap))
	}
}
