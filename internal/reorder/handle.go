package reorder

// Options configure one attached item.
type Options struct {
	// Index is the item's current position in the list.
	Index int
	// OnReorder is called once per committed drag whose drop index differs from the origin.
	OnReorder func(from, to int) error
}

// Handle is the interaction binding for one item.
type Handle struct {
	c        *Container
	id       string
	opts     Options
	detached bool
}

// Attach binds an item. Attaching an ID that is already attached updates it instead.
func (c *Container) Attach(id string, opts Options) *Handle {
	if h, ok := c.handles[id]; ok {
		h.Update(opts)
		return h
	}
	h := &Handle{c: c, id: id, opts: opts}
	c.handles[id] = h
	return h
}

func (h *Handle) ID() string { return h.id }

func (h *Handle) Index() int { return h.opts.Index }

// Update replaces the index and callback without re-attaching. The new index is the
// baseline for the next press; a session already in flight keeps its origin.
func (h *Handle) Update(opts Options) {
	if h.detached {
		return
	}
	h.opts = opts
}

// Detach cancels anything this item has pending or in flight, without committing,
// and removes the item's listeners.
func (h *Handle) Detach() {
	if h.detached {
		return
	}
	c := h.c
	if c.sess.owner == h {
		_ = c.finish(false)
	}
	h.detached = true
	delete(c.handles, h.id)
}

func (h *Handle) onPress(ev *Event) {
	if h.detached {
		return
	}
	h.c.press(h, ev.Y)
}

func (h *Handle) onMove(ev *Event) {
	if h.detached || h.c.sess.owner != h {
		return
	}
	h.c.gateMove(ev.Y)
}

func (h *Handle) onRelease(ev *Event) error {
	if h.c.sess.owner != h {
		return nil
	}
	return h.c.finish(true)
}
