package reorder

// Rect is the vertical extent of an item inside its container, in container units.
type Rect struct {
	Top    int
	Height int
}

func (r Rect) Bottom() int { return r.Top + r.Height }

// Mid returns the vertical midpoint used for drop-index decisions.
func (r Rect) Mid() int { return r.Top + r.Height/2 }

func (r Rect) Contains(y int) bool { return y >= r.Top && y < r.Bottom() }

// Box is one reorderable child of a container in layout order.
type Box struct {
	ID   string
	Rect Rect
}
