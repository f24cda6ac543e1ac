// Package handlers implements the capability-gated drop handlers. Each
// handler is built fresh for one drop event, decides whether it can handle
// the drop, and performs the drop's effect through the injected host.
package handlers

import (
	"context"
	"math"
	"strings"
	"time"

	"droppables/core"
	"droppables/dropdata"
	"droppables/layout"
	"droppables/logging"
	"droppables/picker"
	"droppables/settings"
)

// Handler is one capability-gated drop handler.
type Handler interface {
	// Name identifies the handler in logs and drop history.
	Name() string
	// CanHandleDrop reports whether this handler accepts the drop. It may
	// emit one permission warning through the notifier.
	CanHandleDrop() bool
	// RetrieveData returns the payload the handler extracted at construction.
	RetrieveData() dropdata.Payload
	// HandleDrop re-validates, prevents the event default and performs the
	// effect. A false result means the handler declined after all.
	HandleDrop(ctx context.Context) (bool, error)
}

// Factory builds a handler for one drop event.
type Factory func(ev *dropdata.Event, env *Env) Handler

// Upload namespace and folders.
const (
	UploadNamespace = "droppables"
	FolderTokens    = "tokens"
	FolderTiles     = "tiles"
	FolderSounds    = "sounds"
	FolderJournals  = "journals"
)

// Env is everything a handler may touch while handling one drop.
type Env struct {
	Host     core.Host
	Settings settings.Values
	// Styles persists the style picked in the layout dialog. May be nil.
	Styles picker.StyleRecorder
	Logger *logging.Logger
	Now    func() time.Time
}

func (e *Env) logger() *logging.Logger {
	if e.Logger == nil {
		return logging.NewNop()
	}
	return e.Logger
}

func (e *Env) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

func (e *Env) picker() *picker.Picker {
	return picker.New(e.Host.Dialogs, e.Host.Localizer, e.Styles, e.Settings.LastUsedDropStyle, e.logger())
}

// onLayer reports whether the active canvas layer is name.
func (e *Env) onLayer(name string) bool {
	if e.Host.Canvas == nil {
		return false
	}
	return strings.Contains(e.Host.Canvas.ActiveLayer(), name)
}

// cellUnder returns the top-left of the grid cell under the event pointer.
func (e *Env) cellUnder(ev *dropdata.Event) core.Point {
	return e.Host.Grid.TopLeft(ev.ClientX, ev.ClientY)
}

// requirement is a permission and the message shown when it is missing.
type requirement struct {
	permission string
	message    string
}

var (
	needUpload       = requirement{core.PermissionFilesUpload, "Droppables.NoUploadFiles"}
	needTokenCreate  = requirement{core.PermissionTokenCreate, "Droppables.NoCreateTokens"}
	needActorCreate  = requirement{core.PermissionActorCreate, "Droppables.NoCreateActors"}
	needJournalWrite = requirement{core.PermissionJournalCreate, "Droppables.NoCreateJournals"}
	needNoteCreate   = requirement{core.PermissionNoteCreate, "Droppables.NoCreateNotes"}
)

// permitted checks reqs in order. A GM passes. Otherwise the first missing
// permission is warned about and nothing further is checked.
func (e *Env) permitted(reqs ...requirement) bool {
	if e.Host.User.IsGM() {
		return true
	}
	for _, r := range reqs {
		if !e.Host.User.HasPermission(r.permission) {
			e.Host.Notifier.Warn(e.Host.Localizer.Localize(r.message))
			return false
		}
	}
	return true
}

// normalizeElevation maps NaN to 0.
func normalizeElevation(e float64) float64 {
	if math.IsNaN(e) {
		return 0
	}
	return e
}

// tokenFor builds the token source for actor at a placement.
func tokenFor(actor core.Actor, x, y, elevation float64, hidden bool) core.TokenSource {
	texture := actor.Prototype.Texture
	if texture == "" {
		texture = actor.Img
	}
	return core.TokenSource{
		ActorID:    actor.ID,
		Name:       actor.Name,
		TextureSrc: texture,
		X:          x,
		Y:          y,
		Width:      actor.Footprint().Width,
		Height:     actor.Footprint().Height,
		Elevation:  normalizeElevation(elevation),
		Hidden:     hidden,
		ActorLink:  actor.Prototype.ActorLink,
	}
}

// dropActors lays actors out and creates their tokens one at a time, in
// placement order.
func dropActors(ctx context.Context, env *Env, req layout.Request[core.Actor]) ([]core.Token, error) {
	placements, err := layout.Plan(req, env.Host.Grid.CellSize())
	if err != nil {
		return nil, err
	}

	env.logger().Debugf("Dropping %d onto the canvas via %s", len(placements), req.Style)

	created := make([]core.Token, 0, len(placements))
	for _, p := range placements {
		tokens, err := env.Host.Documents.CreateTokens(ctx, []core.TokenSource{
			tokenFor(p.Item, p.X, p.Y, p.Elevation, p.Hidden),
		})
		if err != nil {
			return created, err
		}
		created = append(created, tokens...)
	}
	return created, nil
}
