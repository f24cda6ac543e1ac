package host

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"droppables/core"
)

// World is the YAML seed of world documents.
type World struct {
	ActorTypes []string            `yaml:"actorTypes"`
	Folders    []core.Folder       `yaml:"folders"`
	Actors     []core.Actor        `yaml:"actors"`
	Journals   []core.JournalEntry `yaml:"journals"`
}

// LoadWorldFile reads a world seed file.
func LoadWorldFile(path string) (*World, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read world file: %w", err)
	}
	var w World
	if err := yaml.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("parse world file %s: %w", path, err)
	}
	if err := w.validate(); err != nil {
		return nil, fmt.Errorf("world file %s: %w", path, err)
	}
	return &w, nil
}

func (w *World) validate() error {
	for _, f := range w.Folders {
		if f.ID == "" {
			return fmt.Errorf("folder %q has no id", f.Name)
		}
		if f.Type != core.DocumentActor && f.Type != core.DocumentJournalEntry {
			return fmt.Errorf("folder %s: unsupported type %q", f.ID, f.Type)
		}
		for _, a := range f.Actors {
			if a.ID == "" {
				return fmt.Errorf("folder %s: actor %q has no id", f.ID, a.Name)
			}
		}
		for _, e := range f.Entries {
			if e.ID == "" {
				return fmt.Errorf("folder %s: entry %q has no id", f.ID, e.Name)
			}
		}
	}
	for _, a := range w.Actors {
		if a.ID == "" {
			return fmt.Errorf("actor %q has no id", a.Name)
		}
	}
	for _, e := range w.Journals {
		if e.ID == "" {
			return fmt.Errorf("journal %q has no id", e.Name)
		}
	}
	return nil
}

// Import stores every document of w. Existing documents with the same id
// are replaced.
func (w *World) Import(ctx context.Context, docs *Documents) error {
	docs.SetActorTypes(w.ActorTypes)
	for _, f := range w.Folders {
		if err := docs.PutFolder(ctx, f); err != nil {
			return fmt.Errorf("import folder %s: %w", f.ID, err)
		}
	}
	for _, a := range w.Actors {
		if err := docs.PutActor(ctx, a); err != nil {
			return fmt.Errorf("import actor %s: %w", a.ID, err)
		}
	}
	for _, e := range w.Journals {
		if err := docs.putJournalEntry(ctx, e, "", 0); err != nil {
			return fmt.Errorf("import journal %s: %w", e.ID, err)
		}
	}
	return nil
}
