package core

import "context"

// File is a file carried by a drop. Type is the browser-reported MIME type.
type File struct {
	Name string
	Type string
	Data []byte
}

// Grid translates client (viewport) coordinates into the top-left corner of
// the enclosing grid cell, taking the canvas pan and zoom into account.
type Grid interface {
	TopLeft(clientX, clientY float64) Point
	// CellSize returns the width and height of one grid cell in pixels.
	CellSize() Size
}

// DocumentStore is the host's document API. World-scoped calls resolve and
// create actors and journals; scene-scoped calls create placeables on the
// scene currently viewed.
type DocumentStore interface {
	ResolveFolder(ctx context.Context, ref string) (*Folder, error)
	ResolveActor(ctx context.Context, ref string) (*Actor, error)
	// ActorTypes lists the actor types known to the game system.
	ActorTypes(ctx context.Context) ([]string, error)

	CreateActors(ctx context.Context, sources []ActorSource) ([]Actor, error)
	UpdateActorPrototype(ctx context.Context, actorID string, token TokenSource) error
	CreateJournalEntry(ctx context.Context, source JournalSource) (*JournalEntry, error)

	CreateTokens(ctx context.Context, sources []TokenSource) ([]Token, error)
	CreateNotes(ctx context.Context, sources []NoteSource) ([]Note, error)
	CreateTiles(ctx context.Context, sources []TileSource) ([]Tile, error)
	CreateAmbientSounds(ctx context.Context, sources []AmbientSoundSource) ([]AmbientSound, error)
}

// Uploader persists a file under namespace/folder and returns its path.
type Uploader interface {
	Upload(ctx context.Context, namespace, folder string, file File) (UploadResult, error)
}

// User is the caller of a drop.
type User interface {
	// IsGM reports the privileged role that bypasses permission checks.
	IsGM() bool
	HasPermission(name string) bool
}

// SettingsStore is a client-scoped key-value store. The bool result reports
// whether a value was stored for the key.
type SettingsStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Form describes a modal dialog with named fields.
type Form struct {
	Title    string
	Template string
	Data     map[string]any
	Fields   []Field
	// Button is the label of the confirming action.
	Button string
}

// Field is one input of a Form.
type Field struct {
	Name    string
	Label   string
	Default string
	// Options restricts the value to a choice list when non-empty.
	Options []Option
}

// Option is a selectable value of a Field.
type Option struct {
	Value string
	Label string
}

// Dialogs renders modal prompts. Prompt blocks until the user confirms or
// dismisses the dialog; ok is false on dismissal.
type Dialogs interface {
	Prompt(ctx context.Context, form Form) (values map[string]string, ok bool, err error)
	Confirm(ctx context.Context, title, content string) (bool, error)
}

// Notifier surfaces messages to the user.
type Notifier interface {
	Warn(message string)
	Info(message string)
}

// Localizer translates message keys.
type Localizer interface {
	Localize(key string) string
	Format(key string, args map[string]string) string
	Has(key string) bool
}

// Canvas exposes the live canvas state handlers gate on.
type Canvas interface {
	ActiveLayer() string
	// ToolActive reports whether a toggle tool of a control group is on, such
	// as the tiles "foreground" tool.
	ToolActive(control, tool string) bool
	SceneName() string
}

// LayerActivator is implemented by canvases that can switch layers.
type LayerActivator interface {
	ActivateLayer(name string)
}

// TextureLoader reports the native pixel size of an image or video source.
type TextureLoader interface {
	Dimensions(ctx context.Context, src string) (Size, error)
}

// Host bundles the capabilities a drop handler is allowed to use.
type Host struct {
	Grid      Grid
	Documents DocumentStore
	Uploads   Uploader
	User      User
	Dialogs   Dialogs
	Notifier  Notifier
	Localizer Localizer
	Canvas    Canvas
	Textures  TextureLoader
}
