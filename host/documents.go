package host

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"droppables/core"
	"droppables/db"
)

// World and scene document kinds as stored in the database.
const (
	KindFolder       = "Folder"
	KindActor        = core.DocumentActor
	KindJournalEntry = core.DocumentJournalEntry
	KindToken        = "Token"
	KindNote         = "Note"
	KindTile         = "Tile"
	KindAmbientSound = "AmbientSound"
)

// DefaultActorTypes are the actor types of the reference game system.
var DefaultActorTypes = []string{core.ActorTypeBase, "character", core.ActorTypeNPC, "vehicle"}

// folderData is the JSON body of a stored folder.
type folderData struct {
	Type string `json:"type"`
}

// Documents is a core.DocumentStore over the SQLite repository. World
// documents are addressed by "Kind.id" references; placeables are created on
// one scene.
type Documents struct {
	repo       *db.Repository
	sceneID    string
	actorTypes []string
	newID      func() string
}

// NewDocuments returns a store creating placeables on sceneID.
func NewDocuments(repo *db.Repository, sceneID string) *Documents {
	return &Documents{
		repo:       repo,
		sceneID:    sceneID,
		actorTypes: DefaultActorTypes,
		newID:      uuid.NewString,
	}
}

// SetActorTypes replaces the known actor types.
func (d *Documents) SetActorTypes(types []string) {
	if len(types) > 0 {
		d.actorTypes = types
	}
}

// Ref returns the reference of a world document.
func Ref(kind, id string) string {
	return kind + "." + id
}

// parseRef splits "Kind.id". ok is false for references of another kind.
func parseRef(ref, kind string) (id string, ok bool) {
	k, id, found := strings.Cut(ref, ".")
	if !found || k != kind || id == "" {
		return "", false
	}
	return id, true
}

func (d *Documents) ResolveFolder(ctx context.Context, ref string) (*core.Folder, error) {
	id, ok := parseRef(ref, KindFolder)
	if !ok {
		return nil, nil
	}
	doc, err := d.repo.GetWorldDocument(ctx, KindFolder, id)
	if errors.Is(err, db.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var data folderData
	if err := json.Unmarshal([]byte(doc.Data), &data); err != nil {
		return nil, fmt.Errorf("decode folder %s: %w", id, err)
	}
	folder := &core.Folder{ID: id, Name: doc.Name, Type: data.Type}

	contents, err := d.repo.ListWorldDocuments(ctx, id, data.Type)
	if err != nil {
		return nil, err
	}
	for _, c := range contents {
		switch data.Type {
		case core.DocumentActor:
			var actor core.Actor
			if err := json.Unmarshal([]byte(c.Data), &actor); err != nil {
				return nil, fmt.Errorf("decode actor %s: %w", c.ID, err)
			}
			folder.Actors = append(folder.Actors, actor)
		case core.DocumentJournalEntry:
			var entry core.JournalEntry
			if err := json.Unmarshal([]byte(c.Data), &entry); err != nil {
				return nil, fmt.Errorf("decode journal entry %s: %w", c.ID, err)
			}
			folder.Entries = append(folder.Entries, entry)
		}
	}
	return folder, nil
}

func (d *Documents) ResolveActor(ctx context.Context, ref string) (*core.Actor, error) {
	id, ok := parseRef(ref, KindActor)
	if !ok {
		return nil, nil
	}
	actor, err := d.actor(ctx, id)
	if errors.Is(err, db.ErrNotFound) {
		return nil, nil
	}
	return actor, err
}

func (d *Documents) actor(ctx context.Context, id string) (*core.Actor, error) {
	doc, err := d.repo.GetWorldDocument(ctx, KindActor, id)
	if err != nil {
		return nil, err
	}
	var actor core.Actor
	if err := json.Unmarshal([]byte(doc.Data), &actor); err != nil {
		return nil, fmt.Errorf("decode actor %s: %w", id, err)
	}
	return &actor, nil
}

func (d *Documents) ActorTypes(context.Context) ([]string, error) {
	out := make([]string, len(d.actorTypes))
	copy(out, d.actorTypes)
	return out, nil
}

// PutFolder stores a folder and its contents.
func (d *Documents) PutFolder(ctx context.Context, folder core.Folder) error {
	data, err := json.Marshal(folderData{Type: folder.Type})
	if err != nil {
		return err
	}
	if err := d.repo.PutWorldDocument(ctx, db.WorldDocument{
		Kind: KindFolder, ID: folder.ID, Name: folder.Name, Data: string(data),
	}); err != nil {
		return err
	}
	for i, a := range folder.Actors {
		if err := d.putActor(ctx, a, folder.ID, i); err != nil {
			return err
		}
	}
	for i, e := range folder.Entries {
		if err := d.putJournalEntry(ctx, e, folder.ID, i); err != nil {
			return err
		}
	}
	return nil
}

// PutActor stores a top-level actor.
func (d *Documents) PutActor(ctx context.Context, actor core.Actor) error {
	return d.putActor(ctx, actor, "", 0)
}

func (d *Documents) putActor(ctx context.Context, actor core.Actor, folderID string, sort int) error {
	data, err := json.Marshal(actor)
	if err != nil {
		return err
	}
	return d.repo.PutWorldDocument(ctx, db.WorldDocument{
		Kind: KindActor, ID: actor.ID, Name: actor.Name, FolderID: folderID, Sort: sort, Data: string(data),
	})
}

func (d *Documents) putJournalEntry(ctx context.Context, entry core.JournalEntry, folderID string, sort int) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return d.repo.PutWorldDocument(ctx, db.WorldDocument{
		Kind: KindJournalEntry, ID: entry.ID, Name: entry.Name, FolderID: folderID, Sort: sort, Data: string(data),
	})
}

func (d *Documents) CreateActors(ctx context.Context, sources []core.ActorSource) ([]core.Actor, error) {
	out := make([]core.Actor, 0, len(sources))
	for _, s := range sources {
		actor := core.Actor{ID: d.newID(), Name: s.Name, Type: s.Type, Img: s.Img}
		if err := d.PutActor(ctx, actor); err != nil {
			return out, err
		}
		out = append(out, actor)
	}
	return out, nil
}

func (d *Documents) UpdateActorPrototype(ctx context.Context, actorID string, token core.TokenSource) error {
	actor, err := d.actor(ctx, actorID)
	if err != nil {
		return err
	}
	actor.Prototype = core.TokenPrototype{
		Width:     token.Width,
		Height:    token.Height,
		ActorLink: token.ActorLink,
		Texture:   token.TextureSrc,
	}
	return d.PutActor(ctx, *actor)
}

func (d *Documents) CreateJournalEntry(ctx context.Context, source core.JournalSource) (*core.JournalEntry, error) {
	entry := core.JournalEntry{ID: d.newID(), Name: source.Name, Pages: source.Pages}
	if err := d.putJournalEntry(ctx, entry, "", 0); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (d *Documents) CreateTokens(ctx context.Context, sources []core.TokenSource) ([]core.Token, error) {
	out := make([]core.Token, 0, len(sources))
	for _, s := range sources {
		tok := core.Token{ID: d.newID(), TokenSource: s}
		if err := d.insert(ctx, KindToken, tok.ID, tok); err != nil {
			return out, err
		}
		out = append(out, tok)
	}
	return out, nil
}

func (d *Documents) CreateNotes(ctx context.Context, sources []core.NoteSource) ([]core.Note, error) {
	out := make([]core.Note, 0, len(sources))
	for _, s := range sources {
		note := core.Note{ID: d.newID(), NoteSource: s}
		if err := d.insert(ctx, KindNote, note.ID, note); err != nil {
			return out, err
		}
		out = append(out, note)
	}
	return out, nil
}

func (d *Documents) CreateTiles(ctx context.Context, sources []core.TileSource) ([]core.Tile, error) {
	out := make([]core.Tile, 0, len(sources))
	for _, s := range sources {
		tile := core.Tile{ID: d.newID(), TileSource: s}
		if err := d.insert(ctx, KindTile, tile.ID, tile); err != nil {
			return out, err
		}
		out = append(out, tile)
	}
	return out, nil
}

func (d *Documents) CreateAmbientSounds(ctx context.Context, sources []core.AmbientSoundSource) ([]core.AmbientSound, error) {
	out := make([]core.AmbientSound, 0, len(sources))
	for _, s := range sources {
		sound := core.AmbientSound{ID: d.newID(), AmbientSoundSource: s}
		if err := d.insert(ctx, KindAmbientSound, sound.ID, sound); err != nil {
			return out, err
		}
		out = append(out, sound)
	}
	return out, nil
}

func (d *Documents) insert(ctx context.Context, kind, id string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", kind, err)
	}
	return d.repo.InsertSceneDocument(ctx, db.SceneDocument{
		ID: id, SceneID: d.sceneID, Kind: kind, Data: string(data),
	})
}
