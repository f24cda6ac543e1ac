package dropdata

import (
	"strings"

	"github.com/tidwall/gjson"

	"droppables/core"
)

// Kind is the document type named by structured drag data.
type Kind string

// Kinds the handlers recognize. Drag data may carry other document types;
// they pass through unchanged and no handler accepts them.
const (
	KindNone   Kind = ""
	KindFolder Kind = "Folder"
	KindActor  Kind = "Actor"
)

// Payload is the typed content of a drop. It is built once by Extract and not
// modified afterwards.
type Payload struct {
	Kind Kind
	// Ref is the document reference (uuid) of the dragged document.
	Ref string
	// X, Y and Elevation are explicit placement overrides, nil when absent.
	X         *float64
	Y         *float64
	Elevation *float64

	Files []core.File
	// URL is the dropped link, empty when the transfer text was drag data.
	URL string
}

// Recognized reports whether the payload names a document kind or carries files.
func (p Payload) Recognized() bool {
	return p.Kind != KindNone || len(p.Files) > 0
}

// Origin returns the explicit placement coordinates, falling back to
// fallback per axis.
func (p Payload) Origin(fallback core.Point) core.Point {
	origin := fallback
	if p.X != nil {
		origin.X = *p.X
	}
	if p.Y != nil {
		origin.Y = *p.Y
	}
	return origin
}

// ElevationOr returns the explicit elevation or def.
func (p Payload) ElevationOr(def float64) float64 {
	if p.Elevation != nil {
		return *p.Elevation
	}
	return def
}

// Extract parses the event's transfer into a Payload. It never fails: a
// missing or malformed payload yields one that no handler recognizes.
func Extract(ev *Event) Payload {
	if ev == nil {
		return Payload{}
	}

	var payload Payload
	if len(ev.Transfer.Files) > 0 {
		payload.Files = make([]core.File, len(ev.Transfer.Files))
		copy(payload.Files, ev.Transfer.Files)
	}

	text := strings.TrimSpace(ev.Text())
	if text == "" {
		return payload
	}

	if !gjson.Valid(text) {
		payload.URL = text
		return payload
	}

	doc := gjson.Parse(text)
	if !doc.IsObject() {
		// Bare JSON scalars such as a quoted string are not drag data.
		if doc.Type == gjson.String {
			payload.URL = strings.TrimSpace(doc.String())
		}
		return payload
	}

	payload.Kind = Kind(stringField(doc, "type"))
	payload.Ref = stringField(doc, "uuid")
	payload.X = numberField(doc, "x")
	payload.Y = numberField(doc, "y")
	payload.Elevation = numberField(doc, "elevation")
	return payload
}

// FilterFiles returns the files whose MIME type contains any of kinds, in
// their original order.
func FilterFiles(files []core.File, kinds ...string) []core.File {
	var out []core.File
	for _, f := range files {
		for _, k := range kinds {
			if strings.Contains(f.Type, k) {
				out = append(out, f)
				break
			}
		}
	}
	return out
}

func stringField(doc gjson.Result, path string) string {
	v := doc.Get(path)
	if v.Type != gjson.String {
		return ""
	}
	return v.Str
}

func numberField(doc gjson.Result, path string) *float64 {
	v := doc.Get(path)
	if v.Type != gjson.Number {
		return nil
	}
	n := v.Num
	return &n
}
