package handlers

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"droppables/core"
	"droppables/layout"
	"droppables/picker"
)

func positions(tokens []core.Token) []core.Point {
	out := make([]core.Point, len(tokens))
	for i, tok := range tokens {
		out[i] = core.Point{X: tok.X, Y: tok.Y}
	}
	return out
}

func TestFolderHorizontalLine(t *testing.T) {
	f := newFixture()
	f.values.DropStyle = layout.StyleHorizontalLine
	f.docs.Folders = map[string]*core.Folder{
		"Folder.f1": {ID: "f1", Name: "Goblins", Type: core.DocumentActor, Actors: []core.Actor{
			actor("a", 1, 1), actor("b", 1, 1), actor("c", 1, 1), actor("d", 1, 1),
		}},
	}
	ev := textEvent(`{"type":"Folder","uuid":"Folder.f1","x":100,"y":100}`, 420, 420)

	h := NewFolderHandler(ev, f.env())
	if !h.CanHandleDrop() {
		t.Fatal("CanHandleDrop() = false, want true")
	}
	handled, err := h.HandleDrop(context.Background())
	if err != nil || !handled {
		t.Fatalf("HandleDrop() = %v, %v; want true, nil", handled, err)
	}
	if !ev.DefaultPrevented() {
		t.Error("event default not prevented")
	}

	want := []core.Point{{X: 100, Y: 100}, {X: 150, Y: 100}, {X: 200, Y: 100}, {X: 250, Y: 100}}
	if diff := cmp.Diff(want, positions(f.docs.Tokens)); diff != "" {
		t.Errorf("token positions mismatch (-want +got):\n%s", diff)
	}
	if got := f.docs.CreateCalls(); got != 4 {
		t.Errorf("CreateTokens called %d times, want one per token", got)
	}
	if len(f.dialogs.Forms) != 0 {
		t.Errorf("dialog shown for a fixed style")
	}
}

func TestFolderDialogCancelCreatesNothing(t *testing.T) {
	f := newFixture()
	f.values.DropStyle = layout.StyleDialog
	f.docs.Folders = map[string]*core.Folder{
		"Folder.f1": {Type: core.DocumentActor, Actors: []core.Actor{actor("a", 1, 1)}},
	}
	f.dialogs.Answers = []map[string]string{nil}

	handled, err := NewFolderHandler(textEvent(`{"type":"Folder","uuid":"Folder.f1"}`, 0, 0), f.env()).
		HandleDrop(context.Background())
	if err != nil || !handled {
		t.Fatalf("HandleDrop() = %v, %v; want true, nil", handled, err)
	}
	if len(f.dialogs.Forms) != 1 {
		t.Fatalf("got %d dialogs, want 1", len(f.dialogs.Forms))
	}
	if n := f.docs.CreateCalls(); n != 0 {
		t.Errorf("created %d documents after cancel", n)
	}
	if len(f.styles.styles) != 0 {
		t.Errorf("recorded style after cancel: %v", f.styles.styles)
	}
}

func TestFolderDialogBlankElevationIsZero(t *testing.T) {
	f := newFixture()
	f.values.DropStyle = layout.StyleDialog
	f.docs.Folders = map[string]*core.Folder{
		"Folder.f1": {Type: core.DocumentActor, Actors: []core.Actor{actor("a", 1, 1), actor("b", 1, 1)}},
	}
	f.dialogs.Answers = []map[string]string{{"drop-style": "stack", "elevation": ""}}

	if _, err := NewFolderHandler(textEvent(`{"type":"Folder","uuid":"Folder.f1"}`, 60, 60), f.env()).
		HandleDrop(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(f.docs.Tokens) != 2 {
		t.Fatalf("got %d tokens, want 2", len(f.docs.Tokens))
	}
	for _, tok := range f.docs.Tokens {
		if tok.Elevation != 0 || tok.X != 50 || tok.Y != 50 {
			t.Errorf("token = %+v, want elevation 0 at (50,50)", tok.TokenSource)
		}
	}
	if diff := cmp.Diff([]layout.Style{layout.StyleStack}, f.styles.styles); diff != "" {
		t.Errorf("recorded styles mismatch (-want +got):\n%s", diff)
	}
}

func TestFolderUnresolved(t *testing.T) {
	f := newFixture()
	ev := textEvent(`{"type":"Folder","uuid":"Folder.missing"}`, 0, 0)
	handled, err := NewFolderHandler(ev, f.env()).HandleDrop(context.Background())
	if err != nil || handled {
		t.Errorf("HandleDrop() = %v, %v; want false, nil", handled, err)
	}
}

func TestFolderResolveError(t *testing.T) {
	f := newFixture()
	boom := errors.New("boom")
	f.docs.Errors = map[string]error{"ResolveFolder": boom}
	handled, err := NewFolderHandler(textEvent(`{"type":"Folder","uuid":"Folder.f1"}`, 0, 0), f.env()).
		HandleDrop(context.Background())
	if !handled || !errors.Is(err, boom) {
		t.Errorf("HandleDrop() = %v, %v; want true, boom", handled, err)
	}
}

func TestJournalFolder(t *testing.T) {
	tests := []struct {
		name      string
		confirm   bool
		wantNotes int
	}{
		{"confirmed", true, 2},
		{"declined", false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.messages = map[string]string{"Droppables.DropJournalFolder": "Drop Journal Folder"}
			f.docs.Folders = map[string]*core.Folder{
				"Folder.j": {Name: "Lore", Type: core.DocumentJournalEntry, Entries: []core.JournalEntry{
					{ID: "e1", Name: "One"}, {ID: "e2", Name: "Two"},
				}},
			}
			f.dialogs.Confirms = []bool{tt.confirm}

			handled, err := NewFolderHandler(textEvent(`{"type":"Folder","uuid":"Folder.j"}`, 120, 70), f.env()).
				HandleDrop(context.Background())
			if err != nil || !handled {
				t.Fatalf("HandleDrop() = %v, %v; want true, nil", handled, err)
			}
			if diff := cmp.Diff([]string{"Drop Journal Folder"}, f.dialogs.Titles); diff != "" {
				t.Errorf("confirm titles mismatch (-want +got):\n%s", diff)
			}
			if len(f.docs.Notes) != tt.wantNotes {
				t.Fatalf("got %d notes, want %d", len(f.docs.Notes), tt.wantNotes)
			}
			for i, n := range f.docs.Notes {
				want := core.NoteSource{EntryID: f.docs.Folders["Folder.j"].Entries[i].ID, X: 100, Y: 50}
				if n.NoteSource != want {
					t.Errorf("note %d = %+v, want %+v", i, n.NoteSource, want)
				}
			}
		})
	}
}

func TestSingleActor(t *testing.T) {
	f := newFixture()
	hero := actor("hero", 2, 2)
	hero.Prototype.ActorLink = true
	f.docs.Actors = map[string]*core.Actor{"Actor.hero": &hero}
	ev := textEvent(`{"type":"Actor","uuid":"Actor.hero","elevation":10}`, 75, 30)
	ev.AltKey = true

	handled, err := NewSingleActorHandler(ev, f.env()).HandleDrop(context.Background())
	if err != nil || !handled {
		t.Fatalf("HandleDrop() = %v, %v; want true, nil", handled, err)
	}
	want := []core.TokenSource{{
		ActorID: "hero", Name: "hero", TextureSrc: "hero.webp",
		X: 50, Y: 0, Width: 2, Height: 2, Elevation: 10, Hidden: true, ActorLink: true,
	}}
	got := make([]core.TokenSource, len(f.docs.Tokens))
	for i, tok := range f.docs.Tokens {
		got[i] = tok.TokenSource
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
	if len(f.dialogs.Forms) != 0 {
		t.Error("dialog shown for a linked actor")
	}
}

func TestSingleActorRepeatedNPC(t *testing.T) {
	f := newFixture()
	goblin := actor("goblin", 1, 1)
	goblin.Type = core.ActorTypeNPC
	f.docs.Actors = map[string]*core.Actor{"Actor.goblin": &goblin}
	f.dialogs.Answers = []map[string]string{{"drop-style": "horizontalLine", "elevation": "5", "count": "3"}}

	handled, err := NewSingleActorHandler(textEvent(`{"type":"Actor","uuid":"Actor.goblin"}`, 10, 10), f.env()).
		HandleDrop(context.Background())
	if err != nil || !handled {
		t.Fatalf("HandleDrop() = %v, %v; want true, nil", handled, err)
	}
	want := []core.Point{{X: 0, Y: 0}, {X: 50, Y: 0}, {X: 100, Y: 0}}
	if diff := cmp.Diff(want, positions(f.docs.Tokens)); diff != "" {
		t.Errorf("token positions mismatch (-want +got):\n%s", diff)
	}
	for _, tok := range f.docs.Tokens {
		if tok.Elevation != 5 {
			t.Errorf("elevation = %v, want 5", tok.Elevation)
		}
	}
}

func TestSingleActorRepeatedNPCCountClamped(t *testing.T) {
	f := newFixture()
	goblin := actor("goblin", 1, 1)
	goblin.Type = core.ActorTypeNPC
	f.docs.Actors = map[string]*core.Actor{"Actor.goblin": &goblin}
	f.dialogs.Answers = []map[string]string{{"drop-style": "stack", "elevation": "", "count": "1000000000"}}

	handled, err := NewSingleActorHandler(textEvent(`{"type":"Actor","uuid":"Actor.goblin"}`, 10, 10), f.env()).
		HandleDrop(context.Background())
	if err != nil || !handled {
		t.Fatalf("HandleDrop() = %v, %v; want true, nil", handled, err)
	}
	if len(f.docs.Tokens) != picker.MaxCount {
		t.Errorf("created %d tokens, want %d", len(f.docs.Tokens), picker.MaxCount)
	}
}

func TestSingleActorRepeatedNPCCancel(t *testing.T) {
	f := newFixture()
	goblin := actor("goblin", 1, 1)
	goblin.Type = core.ActorTypeNPC
	f.docs.Actors = map[string]*core.Actor{"Actor.goblin": &goblin}

	handled, err := NewSingleActorHandler(textEvent(`{"type":"Actor","uuid":"Actor.goblin"}`, 10, 10), f.env()).
		HandleDrop(context.Background())
	if err != nil || !handled {
		t.Fatalf("HandleDrop() = %v, %v; want true, nil", handled, err)
	}
	if len(f.docs.Tokens) != 0 {
		t.Errorf("created %d tokens after cancel", len(f.docs.Tokens))
	}
}

func TestPermissionWarnsOnce(t *testing.T) {
	f := newFixture()
	f.user = coretestUser(false)
	h := NewTokenFilesHandler(fileEvent(0, 0, core.File{Name: "a.png", Type: "image/png"}), f.env())

	if h.CanHandleDrop() {
		t.Fatal("CanHandleDrop() = true without permissions")
	}
	if diff := cmp.Diff([]string{"Droppables.NoUploadFiles"}, f.notifier.Warnings); diff != "" {
		t.Errorf("warnings mismatch (-want +got):\n%s", diff)
	}
}

func TestPermissionOrderWithURL(t *testing.T) {
	f := newFixture()
	f.user = coretestUser(false, core.PermissionTokenCreate)
	h := NewTokenFilesHandler(textEvent("https://example.com/art/orc.png", 0, 0), f.env())

	if h.CanHandleDrop() {
		t.Fatal("CanHandleDrop() = true without ACTOR_CREATE")
	}
	if diff := cmp.Diff([]string{"Droppables.NoCreateActors"}, f.notifier.Warnings); diff != "" {
		t.Errorf("warnings mismatch (-want +got):\n%s", diff)
	}
}

func TestUploadDisabledDeclinesSilently(t *testing.T) {
	f := newFixture()
	f.values.EnableCanvasDragUpload = false
	f.user = coretestUser(false)
	h := NewTokenFilesHandler(fileEvent(0, 0, core.File{Name: "a.png", Type: "image/png"}), f.env())
	if h.CanHandleDrop() {
		t.Error("CanHandleDrop() = true with uploads disabled")
	}
	if len(f.notifier.Warnings) != 0 {
		t.Errorf("unexpected warnings %v", f.notifier.Warnings)
	}
}

func TestTokenFiles(t *testing.T) {
	f := newFixture()
	f.docs.Types = []string{"base", "character", "npc"}
	f.messages = map[string]string{"Droppables.ActorType.npc": "Non-Player Character"}
	f.dialogs.Answers = []map[string]string{{"type-0": "npc", "type-1": "character"}}
	ev := fileEvent(130, 20,
		core.File{Name: "goblin.png", Type: "image/png"},
		core.File{Name: "notes.txt", Type: "text/plain"},
		core.File{Name: "hero.final.webp", Type: "image/webp"},
	)

	handled, err := NewTokenFilesHandler(ev, f.env()).HandleDrop(context.Background())
	if err != nil || !handled {
		t.Fatalf("HandleDrop() = %v, %v; want true, nil", handled, err)
	}

	if diff := cmp.Diff([]string{"droppables/tokens/goblin.png", "droppables/tokens/hero.final.webp"}, f.uploads.Uploads); diff != "" {
		t.Errorf("uploads mismatch (-want +got):\n%s", diff)
	}
	form := f.dialogs.Forms[0]
	if len(form.Fields) != 2 {
		t.Fatalf("got %d fields, want 2", len(form.Fields))
	}
	wantOptions := []core.Option{{Value: "character", Label: "character"}, {Value: "npc", Label: "Non-Player Character"}}
	if diff := cmp.Diff(wantOptions, form.Fields[0].Options); diff != "" {
		t.Errorf("options mismatch (-want +got):\n%s", diff)
	}

	wantActors := []core.Actor{
		{ID: "actor-1", Name: "goblin", Type: "npc", Img: "droppables/tokens/goblin.png"},
		{ID: "actor-2", Name: "hero", Type: "character", Img: "droppables/tokens/hero.final.webp"},
	}
	if diff := cmp.Diff(wantActors, f.docs.NewActors); diff != "" {
		t.Errorf("actors mismatch (-want +got):\n%s", diff)
	}
	if len(f.docs.Tokens) != 2 || f.docs.Tokens[1].X != 100 || f.docs.Tokens[1].Y != 0 {
		t.Errorf("tokens = %+v", f.docs.Tokens)
	}
	if _, ok := f.docs.Prototypes["actor-2"]; !ok {
		t.Error("prototype of actor-2 not updated")
	}
	wantCalls := []string{"ActorTypes", "CreateActors", "UpdateActorPrototype", "UpdateActorPrototype", "CreateTokens"}
	if diff := cmp.Diff(wantCalls, f.docs.Calls); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenFilesURL(t *testing.T) {
	f := newFixture()
	f.docs.Types = []string{"character"}
	f.dialogs.Answers = []map[string]string{{"type-0": "character"}}

	handled, err := NewTokenFilesHandler(textEvent("https://example.com/art/Cave%20Troll.PNG", 0, 0), f.env()).
		HandleDrop(context.Background())
	if err != nil || !handled {
		t.Fatalf("HandleDrop() = %v, %v; want true, nil", handled, err)
	}
	if len(f.uploads.Uploads) != 0 {
		t.Errorf("URL drop uploaded %v", f.uploads.Uploads)
	}
	if got := f.docs.NewActors[0]; got.Name != "Cave Troll" || got.Img != "https://example.com/art/Cave%20Troll.PNG" {
		t.Errorf("actor = %+v", got)
	}
}

func TestTokenFilesNonImageURLDeclines(t *testing.T) {
	f := newFixture()
	if NewTokenFilesHandler(textEvent("https://example.com/page", 0, 0), f.env()).CanHandleDrop() {
		t.Error("CanHandleDrop() = true for a non-image URL")
	}
}

func TestTileFiles(t *testing.T) {
	f := newFixture()
	f.canvas.Layer = core.LayerTiles
	f.canvas.Tools = map[string]bool{"tiles/foreground": true}
	f.textures = coretestTextures(map[string]core.Size{"droppables/tiles/map.webp": {Width: 2000, Height: 1500}})
	ev := fileEvent(260, 140,
		core.File{Name: "map.webp", Type: "image/webp"},
		core.File{Name: "intro.webm", Type: "video/webm"},
		core.File{Name: "theme.ogg", Type: "audio/ogg"},
	)
	ev.AltKey = true

	handled, err := NewTileFilesHandler(ev, f.env()).HandleDrop(context.Background())
	if err != nil || !handled {
		t.Fatalf("HandleDrop() = %v, %v; want true, nil", handled, err)
	}
	want := []core.TileSource{
		{TextureSrc: "droppables/tiles/map.webp", Width: 2000, Height: 1500, Elevation: 20, Hidden: true, X: 250, Y: 100},
		{TextureSrc: "droppables/tiles/intro.webm", Elevation: 20, Hidden: true, X: 250, Y: 100},
	}
	got := make([]core.TileSource, len(f.docs.Tiles))
	for i, tile := range f.docs.Tiles {
		got[i] = tile.TileSource
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tiles mismatch (-want +got):\n%s", diff)
	}
	if n := f.docs.CreateCalls(); n != 1 {
		t.Errorf("CreateTiles called %d times, want 1", n)
	}
}

func TestTileFilesURL(t *testing.T) {
	f := newFixture()
	f.canvas.Layer = core.LayerTiles
	url := "https://example.com/maps/keep.jpg"
	f.textures = coretestTextures(map[string]core.Size{url: {Width: 400, Height: 300}})

	handled, err := NewTileFilesHandler(textEvent(url, 0, 0), f.env()).HandleDrop(context.Background())
	if err != nil || !handled {
		t.Fatalf("HandleDrop() = %v, %v; want true, nil", handled, err)
	}
	if len(f.uploads.Uploads) != 0 {
		t.Errorf("URL drop uploaded %v", f.uploads.Uploads)
	}
	want := core.TileSource{TextureSrc: url, Width: 400, Height: 300}
	if len(f.docs.Tiles) != 1 || f.docs.Tiles[0].TileSource != want {
		t.Errorf("tiles = %+v, want %+v", f.docs.Tiles, want)
	}
}

func TestTileFilesWrongLayer(t *testing.T) {
	f := newFixture()
	h := NewTileFilesHandler(fileEvent(0, 0, core.File{Name: "map.webp", Type: "image/webp"}), f.env())
	if h.CanHandleDrop() {
		t.Error("CanHandleDrop() = true on the token layer")
	}
}

func TestSoundFiles(t *testing.T) {
	f := newFixture()
	f.canvas.Layer = core.LayerSounds
	ev := fileEvent(90, 90,
		core.File{Name: "rain.ogg", Type: "audio/ogg"},
		core.File{Name: "wind.mp3", Type: "audio/mpeg"},
	)

	handled, err := NewSoundFilesHandler(ev, f.env()).HandleDrop(context.Background())
	if err != nil || !handled {
		t.Fatalf("HandleDrop() = %v, %v; want true, nil", handled, err)
	}
	if len(f.docs.Sounds) != 2 {
		t.Fatalf("got %d sounds, want 2", len(f.docs.Sounds))
	}
	want := core.AmbientSoundSource{Path: "droppables/sounds/wind.mp3", X: 50, Y: 50, Radius: 10, Easing: true, Repeat: true, Volume: 1}
	if got := f.docs.Sounds[1].AmbientSoundSource; got != want {
		t.Errorf("sound = %+v, want %+v", got, want)
	}
}

func TestSoundFilesDeclinesWithURL(t *testing.T) {
	f := newFixture()
	f.canvas.Layer = core.LayerSounds
	ev := fileEvent(0, 0, core.File{Name: "rain.ogg", Type: "audio/ogg"})
	ev.Transfer.Data = map[string]string{"text/plain": "https://example.com/rain.ogg"}
	if NewSoundFilesHandler(ev, f.env()).CanHandleDrop() {
		t.Error("CanHandleDrop() = true with a URL present")
	}
}

func TestNoteFiles(t *testing.T) {
	f := newFixture()
	f.canvas.Layer = core.LayerNotes
	f.messages = map[string]string{"Droppables.JournalSceneName": "{name} ({dateTime})"}
	ev := fileEvent(160, 40,
		core.File{Name: "handout.txt", Type: "text/plain", Data: []byte("The door is locked.")},
		core.File{Name: "map.png", Type: "image/png"},
		core.File{Name: "rules.pdf", Type: "application/pdf", Data: []byte("not a pdf")},
		core.File{Name: "theme.ogg", Type: "audio/ogg"},
	)

	handled, err := NewNoteFilesHandler(ev, f.env()).HandleDrop(context.Background())
	if err != nil || !handled {
		t.Fatalf("HandleDrop() = %v, %v; want true, nil", handled, err)
	}

	want := []core.JournalEntry{{
		ID:   "journal-1",
		Name: "Crypt (Mar 4, 03:07 PM)",
		Pages: []core.JournalPage{
			{Name: "handout.txt", Type: core.PageText, Text: "The door is locked."},
			{Name: "map.png", Type: core.PageImage, Src: "droppables/journals/map.png"},
			{Name: "rules.pdf", Type: core.PagePDF, Src: "droppables/journals/rules.pdf"},
		},
	}}
	if diff := cmp.Diff(want, f.docs.Journals); diff != "" {
		t.Errorf("journals mismatch (-want +got):\n%s", diff)
	}
	wantNotes := []core.NoteSource{{EntryID: "journal-1", X: 150, Y: 0}}
	gotNotes := make([]core.NoteSource, len(f.docs.Notes))
	for i, n := range f.docs.Notes {
		gotNotes[i] = n.NoteSource
	}
	if diff := cmp.Diff(wantNotes, gotNotes); diff != "" {
		t.Errorf("notes mismatch (-want +got):\n%s", diff)
	}
}

func TestNoteFilesVideoURL(t *testing.T) {
	f := newFixture()
	f.canvas.Layer = core.LayerNotes
	f.user = coretestUser(false, core.PermissionJournalCreate, core.PermissionNoteCreate)

	handled, err := NewNoteFilesHandler(textEvent("https://example.com/clips/intro.webm", 0, 0), f.env()).
		HandleDrop(context.Background())
	if err != nil || !handled {
		t.Fatalf("HandleDrop() = %v, %v; want true, nil", handled, err)
	}
	want := []core.JournalPage{{Name: "intro.webm", Type: core.PageVideo, Src: "https://example.com/clips/intro.webm"}}
	if diff := cmp.Diff(want, f.docs.Journals[0].Pages); diff != "" {
		t.Errorf("pages mismatch (-want +got):\n%s", diff)
	}
}

func TestNoteFilesPermissionOrder(t *testing.T) {
	f := newFixture()
	f.canvas.Layer = core.LayerNotes
	f.user = coretestUser(false, core.PermissionFilesUpload, core.PermissionJournalCreate)
	h := NewNoteFilesHandler(fileEvent(0, 0, core.File{Name: "map.png", Type: "image/png"}), f.env())
	if h.CanHandleDrop() {
		t.Fatal("CanHandleDrop() = true without NOTE_CREATE")
	}
	if diff := cmp.Diff([]string{"Droppables.NoCreateNotes"}, f.notifier.Warnings); diff != "" {
		t.Errorf("warnings mismatch (-want +got):\n%s", diff)
	}
}

func TestDropFolderDataActivatesTokenLayer(t *testing.T) {
	f := newFixture()
	f.canvas.Layer = core.LayerNotes
	f.values.DropStyle = layout.StyleStack
	f.docs.Folders = map[string]*core.Folder{
		"Folder.f1": {Type: core.DocumentActor, Actors: []core.Actor{actor("a", 1, 1)}},
	}
	x, y := 200.0, 300.0
	payload := NewFolderHandler(textEvent(`{"type":"Folder","uuid":"Folder.f1"}`, 0, 0), f.env()).RetrieveData()
	payload.X, payload.Y = &x, &y

	handled, err := DropFolderData(context.Background(), f.env(), nil, payload)
	if err != nil || !handled {
		t.Fatalf("DropFolderData() = %v, %v; want true, nil", handled, err)
	}
	if f.canvas.Layer != core.LayerTokens {
		t.Errorf("active layer = %q, want %q", f.canvas.Layer, core.LayerTokens)
	}
	if diff := cmp.Diff([]core.Point{{X: 200, Y: 300}}, positions(f.docs.Tokens)); diff != "" {
		t.Errorf("token positions mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizeElevation(t *testing.T) {
	if got := tokenFor(actor("a", 0, 0), 0, 0, math.NaN(), false); got.Elevation != 0 || got.Width != 1 || got.Height != 1 {
		t.Errorf("tokenFor() = %+v, want elevation 0 and a 1x1 footprint", got)
	}
	if got := normalizeElevation(-5); got != -5 {
		t.Errorf("normalizeElevation(-5) = %v", got)
	}
}
