package scene

import "slices"

// Selection tracks the set of selected nodes of a scene.
type Selection struct {
	selected map[int]Node
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{selected: make(map[int]Node)}
}

// Len returns the number of selected nodes.
func (sel *Selection) Len() int { return len(sel.selected) }

// Has reports whether n is selected.
func (sel *Selection) Has(n Node) bool {
	_, ok := sel.selected[n.ID()]
	return ok
}

// Nodes returns the selected nodes ordered by ID.
func (sel *Selection) Nodes() []Node {
	out := make([]Node, 0, len(sel.selected))
	for _, n := range sel.selected {
		out = append(out, n)
	}
	slices.SortFunc(out, func(a, b Node) int { return a.ID() - b.ID() })
	return out
}

// Clear deselects everything.
func (sel *Selection) Clear() {
	clear(sel.selected)
}

// SelectBox replaces the selection with every node whose bounds intersect box.
// box is in scene coordinates.
func (sel *Selection) SelectBox(s *Scene, box Rect) int {
	sel.Clear()
	for _, n := range s.nodes {
		if box.Intersects(n.Bounds()) {
			sel.selected[n.ID()] = n
		}
	}
	return len(sel.selected)
}

// Click applies a pointer click on target, which is nil for a click on empty
// canvas. A click on empty canvas always clears the selection. Without meta
// a click on a node selects only that node; with meta the target's
// membership is toggled and everything else is left alone.
func (sel *Selection) Click(target Node, meta bool) {
	if target == nil {
		sel.Clear()
		return
	}
	id := target.ID()
	_, was := sel.selected[id]
	switch {
	case !meta && !was:
		sel.Clear()
		sel.selected[id] = target
	case meta && was:
		delete(sel.selected, id)
	case meta:
		sel.selected[id] = target
	}
}

// HitTest returns the topmost node whose bounds contain the scene point, or
// nil. Later nodes are drawn above earlier ones.
func HitTest(s *Scene, x, y float64) Node {
	for i := len(s.nodes) - 1; i >= 0; i-- {
		if s.nodes[i].Bounds().Contains(x, y) {
			return s.nodes[i]
		}
	}
	return nil
}
