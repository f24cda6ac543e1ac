// Package coretest provides recording fakes of the core host interfaces.
package coretest

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"

	"droppables/core"
)

// Grid snaps to a square grid of cell Size with no pan or zoom.
type Grid struct {
	Cell core.Size
}

func (g Grid) TopLeft(clientX, clientY float64) core.Point {
	return core.Point{
		X: math.Floor(clientX/g.Cell.Width) * g.Cell.Width,
		Y: math.Floor(clientY/g.Cell.Height) * g.Cell.Height,
	}
}

func (g Grid) CellSize() core.Size { return g.Cell }

// Documents is an in-memory DocumentStore that records every call. Set an
// entry in Errors, keyed by method name, to make that method fail.
type Documents struct {
	mu sync.Mutex

	Folders    map[string]*core.Folder
	Actors     map[string]*core.Actor
	Types      []string
	Errors     map[string]error
	Calls      []string
	Tokens     []core.Token
	Notes      []core.Note
	Tiles      []core.Tile
	Sounds     []core.AmbientSound
	Journals   []core.JournalEntry
	NewActors  []core.Actor
	Prototypes map[string]core.TokenSource

	seq int
}

func (d *Documents) record(method string) error {
	d.Calls = append(d.Calls, method)
	if err, ok := d.Errors[method]; ok {
		return err
	}
	return nil
}

func (d *Documents) nextID(prefix string) string {
	d.seq++
	return fmt.Sprintf("%s-%d", prefix, d.seq)
}

// CreateCalls counts recorded calls whose name starts with "Create".
func (d *Documents) CreateCalls() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for _, c := range d.Calls {
		if strings.HasPrefix(c, "Create") {
			n++
		}
	}
	return n
}

func (d *Documents) ResolveFolder(_ context.Context, ref string) (*core.Folder, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.record("ResolveFolder"); err != nil {
		return nil, err
	}
	return d.Folders[ref], nil
}

func (d *Documents) ResolveActor(_ context.Context, ref string) (*core.Actor, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.record("ResolveActor"); err != nil {
		return nil, err
	}
	return d.Actors[ref], nil
}

func (d *Documents) ActorTypes(context.Context) ([]string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.record("ActorTypes"); err != nil {
		return nil, err
	}
	return d.Types, nil
}

func (d *Documents) CreateActors(_ context.Context, sources []core.ActorSource) ([]core.Actor, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.record("CreateActors"); err != nil {
		return nil, err
	}
	out := make([]core.Actor, len(sources))
	for i, s := range sources {
		out[i] = core.Actor{ID: d.nextID("actor"), Name: s.Name, Type: s.Type, Img: s.Img}
	}
	d.NewActors = append(d.NewActors, out...)
	return out, nil
}

func (d *Documents) UpdateActorPrototype(_ context.Context, actorID string, token core.TokenSource) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.record("UpdateActorPrototype"); err != nil {
		return err
	}
	if d.Prototypes == nil {
		d.Prototypes = map[string]core.TokenSource{}
	}
	d.Prototypes[actorID] = token
	return nil
}

func (d *Documents) CreateJournalEntry(_ context.Context, source core.JournalSource) (*core.JournalEntry, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.record("CreateJournalEntry"); err != nil {
		return nil, err
	}
	entry := core.JournalEntry{ID: d.nextID("journal"), Name: source.Name, Pages: source.Pages}
	d.Journals = append(d.Journals, entry)
	return &entry, nil
}

func (d *Documents) CreateTokens(_ context.Context, sources []core.TokenSource) ([]core.Token, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.record("CreateTokens"); err != nil {
		return nil, err
	}
	out := make([]core.Token, len(sources))
	for i, s := range sources {
		out[i] = core.Token{ID: d.nextID("token"), TokenSource: s}
	}
	d.Tokens = append(d.Tokens, out...)
	return out, nil
}

func (d *Documents) CreateNotes(_ context.Context, sources []core.NoteSource) ([]core.Note, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.record("CreateNotes"); err != nil {
		return nil, err
	}
	out := make([]core.Note, len(sources))
	for i, s := range sources {
		out[i] = core.Note{ID: d.nextID("note"), NoteSource: s}
	}
	d.Notes = append(d.Notes, out...)
	return out, nil
}

func (d *Documents) CreateTiles(_ context.Context, sources []core.TileSource) ([]core.Tile, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.record("CreateTiles"); err != nil {
		return nil, err
	}
	out := make([]core.Tile, len(sources))
	for i, s := range sources {
		out[i] = core.Tile{ID: d.nextID("tile"), TileSource: s}
	}
	d.Tiles = append(d.Tiles, out...)
	return out, nil
}

func (d *Documents) CreateAmbientSounds(_ context.Context, sources []core.AmbientSoundSource) ([]core.AmbientSound, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.record("CreateAmbientSounds"); err != nil {
		return nil, err
	}
	out := make([]core.AmbientSound, len(sources))
	for i, s := range sources {
		out[i] = core.AmbientSound{ID: d.nextID("sound"), AmbientSoundSource: s}
	}
	d.Sounds = append(d.Sounds, out...)
	return out, nil
}

// Uploads records uploads and returns namespace/folder/name paths.
type Uploads struct {
	mu      sync.Mutex
	Err     error
	Uploads []string
}

func (u *Uploads) Upload(_ context.Context, namespace, folder string, file core.File) (core.UploadResult, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.Err != nil {
		return core.UploadResult{}, u.Err
	}
	path := namespace + "/" + folder + "/" + file.Name
	u.Uploads = append(u.Uploads, path)
	return core.UploadResult{Path: path}, nil
}

// User is a fixed user.
type User struct {
	GM          bool
	Permissions map[string]bool
}

func (u User) IsGM() bool { return u.GM }

func (u User) HasPermission(name string) bool { return u.Permissions[name] }

// Dialogs answers prompts from a script. Each Prompt consumes the next entry
// of Answers; a nil entry dismisses the dialog.
type Dialogs struct {
	Answers  []map[string]string
	Confirms []bool
	Err      error

	Forms  []core.Form
	Titles []string
}

func (d *Dialogs) Prompt(_ context.Context, form core.Form) (map[string]string, bool, error) {
	d.Forms = append(d.Forms, form)
	if d.Err != nil {
		return nil, false, d.Err
	}
	if len(d.Answers) == 0 {
		return nil, false, nil
	}
	answer := d.Answers[0]
	d.Answers = d.Answers[1:]
	if answer == nil {
		return nil, false, nil
	}
	return answer, true, nil
}

func (d *Dialogs) Confirm(_ context.Context, title, content string) (bool, error) {
	d.Titles = append(d.Titles, title)
	if d.Err != nil {
		return false, d.Err
	}
	if len(d.Confirms) == 0 {
		return false, nil
	}
	ok := d.Confirms[0]
	d.Confirms = d.Confirms[1:]
	return ok, nil
}

// Notifier records messages.
type Notifier struct {
	Warnings []string
	Infos    []string
}

func (n *Notifier) Warn(message string) { n.Warnings = append(n.Warnings, message) }
func (n *Notifier) Info(message string) { n.Infos = append(n.Infos, message) }

// Localizer looks keys up in Messages and returns unknown keys unchanged.
type Localizer struct {
	Messages map[string]string
}

func (l Localizer) Localize(key string) string {
	if m, ok := l.Messages[key]; ok {
		return m
	}
	return key
}

func (l Localizer) Format(key string, args map[string]string) string {
	text := l.Localize(key)
	for k, v := range args {
		text = strings.ReplaceAll(text, "{"+k+"}", v)
	}
	return text
}

func (l Localizer) Has(key string) bool {
	_, ok := l.Messages[key]
	return ok
}

// Canvas is a fixed canvas state. ActivateLayer switches Layer.
type Canvas struct {
	Layer string
	Tools map[string]bool // "control/tool"
	Scene string
}

func (c *Canvas) ActiveLayer() string { return c.Layer }

func (c *Canvas) ToolActive(control, tool string) bool {
	return c.Tools[control+"/"+tool]
}

func (c *Canvas) SceneName() string { return c.Scene }

func (c *Canvas) ActivateLayer(name string) { c.Layer = name }

// Textures reports fixed sizes per source.
type Textures struct {
	Sizes map[string]core.Size
	Err   error
}

func (t Textures) Dimensions(_ context.Context, src string) (core.Size, error) {
	if t.Err != nil {
		return core.Size{}, t.Err
	}
	size, ok := t.Sizes[src]
	if !ok {
		return core.Size{}, fmt.Errorf("texture %s not found", src)
	}
	return size, nil
}

// Host returns a core.Host wired from the given fakes.
func Host(grid Grid, docs *Documents, uploads *Uploads, user User, dialogs *Dialogs, notifier *Notifier, canvas *Canvas, textures Textures) core.Host {
	return core.Host{
		Grid:      grid,
		Documents: docs,
		Uploads:   uploads,
		User:      user,
		Dialogs:   dialogs,
		Notifier:  notifier,
		Localizer: Localizer{},
		Canvas:    canvas,
		Textures:  textures,
	}
}
