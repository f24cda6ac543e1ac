package i18n

import (
	"os"
	"path/filepath"
	"testing"
)

func mustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestLoadEmbedded(t *testing.T) {
	bundle, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("LoadEmbedded() returned error: %v", err)
	}
	for _, locale := range []string{"en-US", "de-DE"} {
		if !bundle.HasLocale(locale) {
			t.Errorf("missing locale %s", locale)
		}
	}
	required := []string{
		"Droppables.NoUploadFiles",
		"Droppables.NoCreateTokens",
		"Droppables.NoCreateActors",
		"Droppables.NoCreateJournals",
		"Droppables.NoCreateNotes",
		"Droppables.StackedUp",
		"Droppables.Randomly",
		"Droppables.HorizontalLine",
		"Droppables.VerticalLine",
		"Droppables.DropActorsFolder",
		"Droppables.DropButton",
		"Droppables.DropJournalFolder",
		"Droppables.DropJournalFolderExplanation",
		"Droppables.TokenActorTypes",
		"Droppables.Confirm",
		"Droppables.JournalSceneName",
	}
	for _, key := range required {
		if _, ok := bundle.Message(BaseLocale, key); !ok {
			t.Errorf("base locale missing %s", key)
		}
	}
}

func TestLoadFromFSRejectsLocaleMismatch(t *testing.T) {
	dir := t.TempDir()
	mustWriteFile(t, filepath.Join(dir, "locales/en-US/droppables.yaml"), `locale: "en-GB"
namespace: "droppables"
messages:
  a: "b"
`)
	if _, err := LoadFromFS(os.DirFS(dir)); err == nil {
		t.Fatal("expected error for locale mismatch")
	}
}

func TestLoadFromFSRejectsDuplicateKeys(t *testing.T) {
	dir := t.TempDir()
	mustWriteFile(t, filepath.Join(dir, "locales/en-US/a.yaml"), `locale: "en-US"
namespace: "a"
messages:
  shared: "one"
`)
	mustWriteFile(t, filepath.Join(dir, "locales/en-US/b.yaml"), `locale: "en-US"
namespace: "b"
messages:
  shared: "two"
`)
	if _, err := LoadFromFS(os.DirFS(dir)); err == nil {
		t.Fatal("expected error for duplicate key")
	}
}

func TestLoadFromFSRequiresBaseLocale(t *testing.T) {
	dir := t.TempDir()
	mustWriteFile(t, filepath.Join(dir, "locales/fr-FR/droppables.yaml"), `locale: "fr-FR"
namespace: "droppables"
messages:
  a: "b"
`)
	if _, err := LoadFromFS(os.DirFS(dir)); err == nil {
		t.Fatal("expected error without base locale")
	}
}

func TestLocalizer(t *testing.T) {
	en, err := Default("en-US")
	if err != nil {
		t.Fatalf("Default() returned error: %v", err)
	}
	de, err := Default("de-DE")
	if err != nil {
		t.Fatalf("Default() returned error: %v", err)
	}
	fallback, err := Default("xx-YY")
	if err != nil {
		t.Fatalf("Default() returned error: %v", err)
	}

	tests := []struct {
		name string
		l    *Localizer
		key  string
		want string
	}{
		{"english", en, "Droppables.DropButton", "Drop"},
		{"german", de, "Droppables.DropButton", "Ablegen"},
		{"german falls back to base", de, "Droppables.TokenActorTypes", "Actor type for each dropped image"},
		{"unknown locale uses base", fallback, "Droppables.Randomly", "Randomly"},
		{"unknown key returned as is", en, "Droppables.Nope", "Droppables.Nope"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.l.Localize(tt.key); got != tt.want {
				t.Errorf("Localize(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}

	if fallback.Locale() != BaseLocale {
		t.Errorf("Locale() = %q, want %q", fallback.Locale(), BaseLocale)
	}
	if !en.Has("Droppables.Count") || en.Has("Droppables.Nope") {
		t.Error("Has() reported wrong presence")
	}
}

func TestFormat(t *testing.T) {
	l, err := Default("en-US")
	if err != nil {
		t.Fatalf("Default() returned error: %v", err)
	}
	got := l.Format("Droppables.JournalSceneName", map[string]string{
		"name":     "Goblin Cave",
		"dateTime": "Jan 2, 03:04 PM",
	})
	if want := "Goblin Cave (Jan 2, 03:04 PM)"; got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}

	partial := l.Format("Droppables.JournalSceneName", map[string]string{"name": "Crypt"})
	if want := "Crypt ({dateTime})"; partial != want {
		t.Errorf("Format() = %q, want %q", partial, want)
	}
}
