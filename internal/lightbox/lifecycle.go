package lightbox

import "sync/atomic"

// KeySource delivers key releases for the whole process. The returned
// function removes the listener.
type KeySource interface {
	AddKeyListener(l func(KeyEvent)) (remove func())
}

// openCount is the process-wide "a viewer is open" flag, counted so stacked
// viewers do not clear it for each other.
var openCount atomic.Int32

// IsOpen reports whether any viewer is mounted.
func IsOpen() bool {
	return openCount.Load() > 0
}

// OpenCount returns how many viewers are mounted.
func OpenCount() int {
	return int(openCount.Load())
}

// Mount registers the viewer's key listener on src when keyboard interaction
// is enabled and marks a viewer as open. Mounting a mounted viewer does
// nothing.
func (v *Viewer) Mount(src KeySource) {
	if v.mounted {
		return
	}
	v.mounted = true
	openCount.Add(1)

	if v.opts.KeyboardInteraction && src != nil {
		v.removeListener = src.AddKeyListener(v.HandleKey)
	}
}

// Unmount removes the key listener and clears the open mark. It is safe to
// call more than once and on a viewer that was never mounted.
func (v *Viewer) Unmount() {
	if v.removeListener != nil {
		v.removeListener()
		v.removeListener = nil
	}
	if !v.mounted {
		return
	}
	v.mounted = false
	openCount.Add(-1)
}

// Mounted reports whether Mount was called without a matching Unmount.
func (v *Viewer) Mounted() bool {
	return v.mounted
}
