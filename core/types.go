// Package core holds the shared document types, host capability interfaces
// and configuration for the droppables engine.
package core

// Point is a canvas coordinate in pixels.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Size is a width/height pair. Depending on context it is measured in grid
// cells (token footprints) or pixels (grid cell size, texture size).
type Size struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Document types a folder can contain.
const (
	DocumentActor        = "Actor"
	DocumentJournalEntry = "JournalEntry"
)

// Canvas layer names.
const (
	LayerTokens = "TokenLayer"
	LayerTiles  = "TilesLayer"
	LayerSounds = "SoundsLayer"
	LayerNotes  = "NotesLayer"
)

// Journal page types.
const (
	PageImage = "image"
	PagePDF   = "pdf"
	PageVideo = "video"
	PageText  = "text"
)

// ActorTypeBase is the abstract actor type that cannot be instantiated.
const ActorTypeBase = "base"

// ActorTypeNPC marks actors whose unlinked tokens are meant to be repeated.
const ActorTypeNPC = "npc"

// TokenPrototype is the token template stored on an actor.
type TokenPrototype struct {
	Width     float64 `json:"width,omitempty" yaml:"width,omitempty"`
	Height    float64 `json:"height,omitempty" yaml:"height,omitempty"`
	ActorLink bool    `json:"actorLink,omitempty" yaml:"actorLink,omitempty"`
	Texture   string  `json:"texture,omitempty" yaml:"texture,omitempty"`
}

// Actor is a world-level character or creature.
type Actor struct {
	ID        string         `json:"id" yaml:"id"`
	Name      string         `json:"name" yaml:"name"`
	Type      string         `json:"type" yaml:"type"`
	Img       string         `json:"img,omitempty" yaml:"img,omitempty"`
	Prototype TokenPrototype `json:"prototypeToken" yaml:"prototypeToken"`
}

// Footprint returns the actor's token size in grid cells, defaulting each
// dimension to one cell.
func (a Actor) Footprint() Size {
	size := Size{Width: a.Prototype.Width, Height: a.Prototype.Height}
	if size.Width <= 0 {
		size.Width = 1
	}
	if size.Height <= 0 {
		size.Height = 1
	}
	return size
}

// IsRepeatable reports whether dropping the actor should offer to place
// several unlinked copies.
func (a Actor) IsRepeatable() bool {
	return a.Type == ActorTypeNPC && !a.Prototype.ActorLink
}

// JournalPage is one page of a journal entry.
type JournalPage struct {
	Name      string `json:"name" yaml:"name"`
	Type      string `json:"type" yaml:"type"`
	Src       string `json:"src,omitempty" yaml:"src,omitempty"`
	Text      string `json:"text,omitempty" yaml:"text,omitempty"`
	PageCount int    `json:"pageCount,omitempty" yaml:"pageCount,omitempty"`
}

// JournalEntry is a world-level journal.
type JournalEntry struct {
	ID    string        `json:"id" yaml:"id"`
	Name  string        `json:"name" yaml:"name"`
	Pages []JournalPage `json:"pages,omitempty" yaml:"pages,omitempty"`
}

// Folder groups world documents of a single type.
type Folder struct {
	ID      string         `json:"id" yaml:"id"`
	Name    string         `json:"name" yaml:"name"`
	Type    string         `json:"type" yaml:"type"`
	Actors  []Actor        `json:"actors,omitempty" yaml:"actors,omitempty"`
	Entries []JournalEntry `json:"entries,omitempty" yaml:"entries,omitempty"`
}

// ActorSource describes an actor to create.
type ActorSource struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Img  string `json:"img"`
}

// JournalSource describes a journal entry to create.
type JournalSource struct {
	Name  string        `json:"name"`
	Pages []JournalPage `json:"pages"`
}

// TokenSource describes a token to create on the current scene.
type TokenSource struct {
	ActorID    string  `json:"actorId"`
	Name       string  `json:"name,omitempty"`
	TextureSrc string  `json:"texture,omitempty"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Width      float64 `json:"width,omitempty"`
	Height     float64 `json:"height,omitempty"`
	Elevation  float64 `json:"elevation"`
	Hidden     bool    `json:"hidden"`
	ActorLink  bool    `json:"actorLink"`
}

// NoteSource describes a map note pinned to a journal entry.
type NoteSource struct {
	EntryID string  `json:"entryId"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
}

// TileSource describes a tile to create. Zero Width/Height leave sizing to
// the host.
type TileSource struct {
	TextureSrc string  `json:"texture"`
	Width      float64 `json:"width,omitempty"`
	Height     float64 `json:"height,omitempty"`
	Elevation  float64 `json:"elevation"`
	Hidden     bool    `json:"hidden"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
}

// AmbientSoundSource describes an ambient sound to create.
type AmbientSoundSource struct {
	Path   string  `json:"path"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
	Easing bool    `json:"easing"`
	Repeat bool    `json:"repeat"`
	Volume float64 `json:"volume"`
}

// Token is a created token document.
type Token struct {
	ID string `json:"id"`
	TokenSource
}

// Note is a created note document.
type Note struct {
	ID string `json:"id"`
	NoteSource
}

// Tile is a created tile document.
type Tile struct {
	ID string `json:"id"`
	TileSource
}

// AmbientSound is a created ambient sound document.
type AmbientSound struct {
	ID string `json:"id"`
	AmbientSoundSource
}

// UploadResult is the outcome of a persistent upload.
type UploadResult struct {
	Path string `json:"path"`
}

// Permission names checked before creating documents.
const (
	PermissionFilesUpload   = "FILES_UPLOAD"
	PermissionTokenCreate   = "TOKEN_CREATE"
	PermissionActorCreate   = "ACTOR_CREATE"
	PermissionJournalCreate = "JOURNAL_CREATE"
	PermissionNoteCreate    = "NOTE_CREATE"
)
