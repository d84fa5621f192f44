package tui

// modeSwitch is the part of combine.Handler the control drives.
type modeSwitch interface {
	Cancel()
	SetCombineMode(enabled bool)
}

// Control is the combine button of the editor. It keeps its own pressed
// state, which the handler's completion callback brings back in line via Sync.
type Control struct {
	mode     modeSwitch
	active   bool
	disabled bool
}

// NewControl returns an inactive control driving mode.
func NewControl(mode modeSwitch) *Control {
	return &Control{mode: mode}
}

// Active reports whether the control is pressed.
func (c *Control) Active() bool { return c.active }

// Disabled reports whether the control ignores input.
func (c *Control) Disabled() bool { return c.disabled }

// Toggle presses or releases the control.
func (c *Control) Toggle() {
	c.Set(!c.active)
}

// Set presses (enabled) or releases the control. Pressing first cancels any
// leftover operation so combine mode always starts from an empty selection.
func (c *Control) Set(enabled bool) {
	if c.disabled {
		return
	}
	if enabled {
		c.mode.Cancel()
		c.active = true
		c.mode.SetCombineMode(true)
		return
	}
	c.active = false
	c.mode.SetCombineMode(false)
}

// Sync releases or presses the control to match the handler after it
// finished. Releasing forwards to the handler, which ignores the call when
// it is already idle.
func (c *Control) Sync(active bool) {
	c.active = active
	if !active {
		c.mode.SetCombineMode(false)
	}
}

// SetDisabled enables or disables the control. Disabling a pressed control
// cancels the running operation.
func (c *Control) SetDisabled(disabled bool) {
	if disabled && c.active {
		c.active = false
		c.mode.Cancel()
	}
	c.disabled = disabled
}
