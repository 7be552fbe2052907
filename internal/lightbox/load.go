package lightbox

// Ticket identifies the image a pending load was issued for.
type Ticket struct {
	Generation uint64
	Index      int
	URL        string
}

// LoadTicket returns a ticket for the image currently displayed. The host
// passes it back to MarkLoaded once that image is decoded.
func (v *Viewer) LoadTicket() Ticket {
	url, _ := v.CurrentImage()
	return Ticket{Generation: v.generation, Index: v.state.Current, URL: url}
}

// MarkLoaded clears the loading flag if t still refers to the displayed
// image. Tickets from images shown earlier are ignored. It reports whether
// the ticket was current.
func (v *Viewer) MarkLoaded(t Ticket) bool {
	if t.Generation != v.generation {
		Logger().Debug("ignoring stale image readiness",
			"url", t.URL, "index", t.Index, "current", v.state.Current)
		return false
	}
	v.state.Loading = false
	return true
}
