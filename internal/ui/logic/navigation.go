package logic

// Navigator handles cursor movement and viewport management over a flat list
type Navigator struct {
	selectedIndex  int
	viewportOffset int
	viewportHeight int
	totalItems     int
}

// NewNavigator creates a new navigator
func NewNavigator() *Navigator {
	return &Navigator{}
}

// UpdateState updates the navigator's view of the model state
func (n *Navigator) UpdateState(selectedIndex, viewportOffset, viewportHeight, totalItems int) {
	n.selectedIndex = selectedIndex
	n.viewportOffset = viewportOffset
	n.viewportHeight = viewportHeight
	n.totalItems = totalItems
}

// MaxIndex returns the maximum selectable index
func (n *Navigator) MaxIndex() int {
	if n.totalItems == 0 {
		return 0
	}
	return n.totalItems - 1
}

// Move shifts the cursor by delta and returns the clamped cursor and viewport offset
func (n *Navigator) Move(delta int) (int, int) {
	n.selectedIndex += delta
	return n.clamp()
}

// SetSelectedIndex sets the cursor and ensures it is visible
func (n *Navigator) SetSelectedIndex(index int) (int, int) {
	n.selectedIndex = index
	return n.clamp()
}

// PageSize returns the step used for page up/down
func (n *Navigator) PageSize() int {
	size := n.viewportHeight - 2 // leave some overlap
	if size < 1 {
		size = 1
	}
	return size
}

func (n *Navigator) clamp() (int, int) {
	if max := n.MaxIndex(); n.selectedIndex > max {
		n.selectedIndex = max
	}
	if n.selectedIndex < 0 {
		n.selectedIndex = 0
	}
	n.ensureSelectedVisible()
	return n.selectedIndex, n.viewportOffset
}

// ensureSelectedVisible adjusts the viewport to keep the cursor in view
func (n *Navigator) ensureSelectedVisible() {
	if n.viewportHeight <= 0 {
		return
	}
	if n.selectedIndex < n.viewportOffset {
		n.viewportOffset = n.selectedIndex
	}
	if n.selectedIndex >= n.viewportOffset+n.viewportHeight {
		n.viewportOffset = n.selectedIndex - n.viewportHeight + 1
	}
	if n.viewportOffset < 0 {
		n.viewportOffset = 0
	}
}
