package photo

import (
	"github.com/pixelveil/pixelveil/config"
	"github.com/pixelveil/pixelveil/pkg/region"
)

// History is one photo's bounded undo/redo stacks of face-list snapshots.
// History is never shared or merged across photos.
type History struct {
	undo []region.Snapshot
	redo []region.Snapshot
}

// Push records the pre-mutation state on the undo stack and clears redo.
// When the stack exceeds the cap the oldest snapshot is dropped first.
func (h *History) Push(s region.Snapshot) {
	h.undo = append(h.undo, s)
	if len(h.undo) > config.MaxHistory {
		h.undo = h.undo[len(h.undo)-config.MaxHistory:]
	}
	h.redo = nil
}

// Undo pops the most recent snapshot, pushing the current state onto redo.
// Returns the restored snapshot and false when there is nothing to undo.
func (h *History) Undo(current region.Snapshot) (region.Snapshot, bool) {
	if len(h.undo) == 0 {
		return region.Snapshot{}, false
	}
	top := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, current)
	if len(h.redo) > config.MaxHistory {
		h.redo = h.redo[len(h.redo)-config.MaxHistory:]
	}
	return top, true
}

// Redo is the mirror of Undo.
func (h *History) Redo(current region.Snapshot) (region.Snapshot, bool) {
	if len(h.redo) == 0 {
		return region.Snapshot{}, false
	}
	top := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, current)
	if len(h.undo) > config.MaxHistory {
		h.undo = h.undo[len(h.undo)-config.MaxHistory:]
	}
	return top, true
}

// CanUndo reports whether an undo snapshot is available.
func (h *History) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo reports whether a redo snapshot is available.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// Depth returns the current undo stack length.
func (h *History) Depth() int { return len(h.undo) }
