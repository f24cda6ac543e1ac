// Package settings defines the client-scoped drop settings and reads them
// through a core.SettingsStore.
package settings

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"droppables/core"
	"droppables/layout"
	"droppables/logging"

	"go.uber.org/zap"
)

// Setting keys.
const (
	KeyDropStyle              = "dropStyle"
	KeyLastUsedDropStyle      = "lastUsedDropStyle"
	KeyEnableCanvasDragUpload = "enableCanvasDragUpload"
)

// ErrUnknownKey is returned for a key that is not registered.
var ErrUnknownKey = errors.New("unknown setting")

type definition struct {
	def      string
	validate func(string) error
}

var definitions = map[string]definition{
	KeyDropStyle:              {def: string(layout.StyleDialog), validate: validStyle},
	KeyLastUsedDropStyle:      {def: string(layout.StyleRandom), validate: validPlacementStyle},
	KeyEnableCanvasDragUpload: {def: "true", validate: validBool},
}

func validStyle(v string) error {
	if !layout.Style(v).Valid() {
		return fmt.Errorf("%w: %q", layout.ErrUnknownStyle, v)
	}
	return nil
}

func validPlacementStyle(v string) error {
	if !layout.Style(v).IsPlacement() {
		return fmt.Errorf("%w: %q", layout.ErrUnknownStyle, v)
	}
	return nil
}

func validBool(v string) error {
	_, err := strconv.ParseBool(v)
	return err
}

// Keys lists the registered keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(definitions))
	for k := range definitions {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Default returns the declared default for key.
func Default(key string) (string, error) {
	d, ok := definitions[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return d.def, nil
}

// Values is a snapshot of every setting taken at the start of a dispatch.
type Values struct {
	DropStyle              layout.Style
	LastUsedDropStyle      layout.Style
	EnableCanvasDragUpload bool
}

// Defaults returns the declared defaults.
func Defaults() Values {
	return Values{
		DropStyle:              layout.StyleDialog,
		LastUsedDropStyle:      layout.StyleRandom,
		EnableCanvasDragUpload: true,
	}
}

// Settings reads and writes the registered keys.
type Settings struct {
	store  core.SettingsStore
	logger *logging.Logger
}

// New returns Settings backed by store. A nil logger discards output.
func New(store core.SettingsStore, logger *logging.Logger) *Settings {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Settings{store: store, logger: logger}
}

// Get returns the stored value of key or its default. A stored value that no
// longer validates is reported and replaced by the default.
func (s *Settings) Get(ctx context.Context, key string) (string, error) {
	d, ok := definitions[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	value, found, err := s.store.Get(ctx, key)
	if err != nil {
		return "", fmt.Errorf("read setting %s: %w", key, err)
	}
	if !found {
		return d.def, nil
	}
	if err := d.validate(value); err != nil {
		s.logger.Warn("Ignoring invalid stored setting",
			zap.String("key", key),
			zap.String("value", value),
			zap.Error(err))
		return d.def, nil
	}
	return value, nil
}

// Set validates and stores value for key.
func (s *Settings) Set(ctx context.Context, key, value string) error {
	d, ok := definitions[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	if err := d.validate(value); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	if err := s.store.Set(ctx, key, value); err != nil {
		return fmt.Errorf("write setting %s: %w", key, err)
	}
	return nil
}

// SetLastUsedDropStyle records the style the user last picked.
func (s *Settings) SetLastUsedDropStyle(ctx context.Context, style layout.Style) error {
	return s.Set(ctx, KeyLastUsedDropStyle, string(style))
}

// Load reads every key into a Values snapshot.
func (s *Settings) Load(ctx context.Context) (Values, error) {
	v := Defaults()

	style, err := s.Get(ctx, KeyDropStyle)
	if err != nil {
		return v, err
	}
	v.DropStyle = layout.Style(style)

	last, err := s.Get(ctx, KeyLastUsedDropStyle)
	if err != nil {
		return v, err
	}
	v.LastUsedDropStyle = layout.Style(last)

	upload, err := s.Get(ctx, KeyEnableCanvasDragUpload)
	if err != nil {
		return v, err
	}
	v.EnableCanvasDragUpload, _ = strconv.ParseBool(upload)

	return v, nil
}
