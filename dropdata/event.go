// Package dropdata models a canvas drop event and extracts the typed payload
// carried by its data transfer.
package dropdata

import "droppables/core"

// Transfer formats read from a drop.
const (
	FormatPlainText = "text/plain"
	FormatText      = "text"
)

// Transfer is the data attached to a drag-and-drop operation.
type Transfer struct {
	// Data maps a format such as "text/plain" to its string value.
	Data  map[string]string
	Files []core.File
}

// GetData returns the value stored for format, or "".
func (t Transfer) GetData(format string) string {
	if t.Data == nil {
		return ""
	}
	return t.Data[format]
}

// Event is one drop onto the canvas.
type Event struct {
	ClientX  float64
	ClientY  float64
	AltKey   bool
	Transfer Transfer

	defaultPrevented bool
}

// PreventDefault marks the event as consumed so the host skips its own
// drop handling.
func (e *Event) PreventDefault() {
	e.defaultPrevented = true
}

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

// Text returns the transfer's plain-text value.
func (e *Event) Text() string {
	if text := e.Transfer.GetData(FormatPlainText); text != "" {
		return text
	}
	return e.Transfer.GetData(FormatText)
}
