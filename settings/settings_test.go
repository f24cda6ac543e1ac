package settings_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"droppables/db"
	"droppables/layout"
	"droppables/settings"

	"github.com/google/go-cmp/cmp"
)

func TestLoadDefaults(t *testing.T) {
	s := settings.New(settings.NewMemoryStore(nil), nil)

	got, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if diff := cmp.Diff(settings.Defaults(), got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadStoredValues(t *testing.T) {
	store := settings.NewMemoryStore(map[string]string{
		settings.KeyDropStyle:              "verticalLine",
		settings.KeyLastUsedDropStyle:      "stack",
		settings.KeyEnableCanvasDragUpload: "false",
	})
	got, err := settings.New(store, nil).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	want := settings.Values{
		DropStyle:              layout.StyleVerticalLine,
		LastUsedDropStyle:      layout.StyleStack,
		EnableCanvasDragUpload: false,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestInvalidStoredValueFallsBack(t *testing.T) {
	store := settings.NewMemoryStore(map[string]string{
		settings.KeyDropStyle:         "diagonal",
		settings.KeyLastUsedDropStyle: "dialog",
	})
	got, err := settings.New(store, nil).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if got.DropStyle != layout.StyleDialog {
		t.Errorf("DropStyle = %q, want dialog", got.DropStyle)
	}
	if got.LastUsedDropStyle != layout.StyleRandom {
		t.Errorf("LastUsedDropStyle = %q, want random", got.LastUsedDropStyle)
	}
}

func TestSetValidates(t *testing.T) {
	ctx := context.Background()
	s := settings.New(settings.NewMemoryStore(nil), nil)

	tests := []struct {
		key     string
		value   string
		wantErr error
	}{
		{settings.KeyDropStyle, "stack", nil},
		{settings.KeyDropStyle, "dialog", nil},
		{settings.KeyDropStyle, "sideways", layout.ErrUnknownStyle},
		{settings.KeyLastUsedDropStyle, "dialog", layout.ErrUnknownStyle},
		{"gridColor", "red", settings.ErrUnknownKey},
	}
	for _, tt := range tests {
		err := s.Set(ctx, tt.key, tt.value)
		if tt.wantErr == nil && err != nil {
			t.Errorf("Set(%s, %s) returned %v", tt.key, tt.value, err)
		}
		if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
			t.Errorf("Set(%s, %s) error = %v, want %v", tt.key, tt.value, err, tt.wantErr)
		}
	}

	if err := s.Set(ctx, settings.KeyEnableCanvasDragUpload, "maybe"); err == nil {
		t.Error("Set(enableCanvasDragUpload, maybe) returned nil")
	}
	if _, err := s.Get(ctx, "gridColor"); !errors.Is(err, settings.ErrUnknownKey) {
		t.Errorf("Get(unknown) error = %v, want ErrUnknownKey", err)
	}
}

func TestSQLiteStorePersistsPerUser(t *testing.T) {
	ctx := context.Background()
	database, err := db.Open(filepath.Join(t.TempDir(), "settings.db"))
	if err != nil {
		t.Fatalf("db.Open() returned error: %v", err)
	}
	defer database.Close()
	repo := db.NewRepository(database, nil)

	alice := settings.New(settings.NewSQLiteStore(repo, "alice"), nil)
	if err := alice.SetLastUsedDropStyle(ctx, layout.StyleHorizontalLine); err != nil {
		t.Fatalf("SetLastUsedDropStyle() returned error: %v", err)
	}

	got, err := settings.New(settings.NewSQLiteStore(repo, "alice"), nil).Get(ctx, settings.KeyLastUsedDropStyle)
	if err != nil || got != "horizontalLine" {
		t.Errorf("Get() = %q, %v; want horizontalLine", got, err)
	}
	other, err := settings.New(settings.NewSQLiteStore(repo, "bob"), nil).Get(ctx, settings.KeyLastUsedDropStyle)
	if err != nil || other != "random" {
		t.Errorf("other user Get() = %q, %v; want random", other, err)
	}
}

func TestKeys(t *testing.T) {
	want := []string{"dropStyle", "enableCanvasDragUpload", "lastUsedDropStyle"}
	if diff := cmp.Diff(want, settings.Keys()); diff != "" {
		t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
	}
}
