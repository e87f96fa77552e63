package modal

import "github.com/nikbrunner/folio/internal/model"

// State is the modal visibility state.
type State int

const (
	Closed State = iota
	Open
)

// String returns the state name.
func (s State) String() string {
	if s == Open {
		return "open"
	}
	return "closed"
}

// ScrollLock suspends background scrolling while the modal is open.
type ScrollLock interface {
	Lock()
	Unlock()
}

// Controller drives the Closed -> Open -> Closed cycle.
// The scroll lock is held for exactly as long as the state is Open.
type Controller struct {
	state State
	view  View
	lock  ScrollLock
}

// NewController creates a closed Controller. lock may be nil.
func NewController(lock ScrollLock) *Controller {
	return &Controller{lock: lock}
}

// State returns the current state.
func (c *Controller) State() State {
	return c.state
}

// IsOpen returns true if the modal is open.
func (c *Controller) IsOpen() bool {
	return c.state == Open
}

// View returns the content of the open modal, or the zero View when closed.
func (c *Controller) View() View {
	if c.state != Open {
		return View{}
	}
	return c.view
}

// Open presents p and transitions to Open. Opening an already open modal
// replaces its content without taking the scroll lock again.
func (c *Controller) Open(p model.Payload) View {
	c.view = Present(p)
	if c.state != Open {
		c.state = Open
		if c.lock != nil {
			c.lock.Lock()
		}
	}
	return c.view
}

// Close transitions to Closed and releases the scroll lock.
// Returns false if the modal was already closed.
func (c *Controller) Close() bool {
	if c.state != Open {
		return false
	}
	c.state = Closed
	c.view = View{}
	if c.lock != nil {
		c.lock.Unlock()
	}
	return true
}
