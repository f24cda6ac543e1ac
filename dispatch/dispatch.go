// Package dispatch routes a canvas drop to the first registered handler that
// accepts it.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"droppables/core"
	"droppables/db"
	"droppables/dropdata"
	"droppables/handlers"
	"droppables/logging"
	"droppables/picker"
	"droppables/settings"
)

var (
	// ErrDuplicateHandler is returned when a name is registered twice.
	ErrDuplicateHandler = errors.New("handler already registered")
	// ErrHandlerNotFound is returned by RegisterBefore for an unknown target.
	ErrHandlerNotFound = errors.New("handler not registered")
)

// SettingsLoader returns the settings snapshot used for one dispatch.
type SettingsLoader interface {
	Load(ctx context.Context) (settings.Values, error)
}

// Recorder stores one drop-history row per dispatch.
type Recorder interface {
	InsertDropRecord(ctx context.Context, rec db.DropRecord) (int64, error)
}

// Config wires a Dispatcher. Only Host is required.
type Config struct {
	Host     core.Host
	Settings SettingsLoader
	// Styles persists the style picked in the layout dialog.
	Styles   picker.StyleRecorder
	Recorder Recorder
	Logger   *logging.Logger
	SceneID  string
	Now      func() time.Time
}

type registration struct {
	name    string
	factory handlers.Factory
}

// Dispatcher holds an ordered list of handler factories.
type Dispatcher struct {
	cfg    Config
	logger *logging.Logger

	mu       sync.RWMutex
	handlers []registration
}

// New returns a Dispatcher with no handlers registered.
func New(cfg Config) *Dispatcher {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Dispatcher{cfg: cfg, logger: logger.Named("dispatch")}
}

// Default returns a Dispatcher with the built-in handlers registered in
// priority order.
func Default(cfg Config) *Dispatcher {
	d := New(cfg)
	for _, r := range []registration{
		{"singleActor", handlers.NewSingleActorHandler},
		{"folder", handlers.NewFolderHandler},
		{"tokenFiles", handlers.NewTokenFilesHandler},
		{"tileFiles", handlers.NewTileFilesHandler},
		{"soundFiles", handlers.NewSoundFilesHandler},
		{"noteFiles", handlers.NewNoteFilesHandler},
	} {
		// names are unique
		_ = d.Register(r.name, r.factory)
	}
	return d
}

// Register appends factory under name.
func (d *Dispatcher) Register(name string, factory handlers.Factory) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.indexOf(name) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateHandler, name)
	}
	d.handlers = append(d.handlers, registration{name: name, factory: factory})
	return nil
}

// RegisterBefore inserts factory under name ahead of target.
func (d *Dispatcher) RegisterBefore(target, name string, factory handlers.Factory) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.indexOf(name) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateHandler, name)
	}
	i := d.indexOf(target)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrHandlerNotFound, target)
	}
	d.handlers = append(d.handlers, registration{})
	copy(d.handlers[i+1:], d.handlers[i:])
	d.handlers[i] = registration{name: name, factory: factory}
	return nil
}

// Names lists the registered handlers in dispatch order.
func (d *Dispatcher) Names() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	names := make([]string, len(d.handlers))
	for i, r := range d.handlers {
		names[i] = r.name
	}
	return names
}

func (d *Dispatcher) indexOf(name string) int {
	for i, r := range d.handlers {
		if r.name == name {
			return i
		}
	}
	return -1
}

// Dispatch offers ev to each handler in order. The first handler whose
// CanHandleDrop is true handles the drop and its result is returned; later
// handlers are not consulted. A false result means the host should run its
// default drop behavior.
func (d *Dispatcher) Dispatch(ctx context.Context, ev *dropdata.Event) (bool, error) {
	start := d.cfg.Now()
	correlationID := uuid.NewString()
	logger := d.logger.With(zap.String("correlation_id", correlationID))

	env := &handlers.Env{
		Host:     d.cfg.Host,
		Settings: d.snapshot(ctx, logger),
		Styles:   d.cfg.Styles,
		Logger:   logger,
		Now:      d.cfg.Now,
	}

	d.mu.RLock()
	regs := make([]registration, len(d.handlers))
	copy(regs, d.handlers)
	d.mu.RUnlock()

	for _, r := range regs {
		h, ok := d.accepts(r, ev, env, logger)
		if !ok {
			continue
		}

		handled, panicked, err := d.handle(ctx, r.name, h, logger)
		if panicked {
			continue
		}
		d.record(ctx, correlationID, r.name, handled, err, start, logger)
		if err != nil {
			logger.Error("Drop handler failed", zap.String("handler", r.name), zap.Error(err))
			return true, err
		}
		logger.Info("Drop dispatched", zap.String("handler", r.name), zap.Bool("handled", handled))
		return handled, nil
	}

	logger.Debug("No handler accepted the drop")
	d.record(ctx, correlationID, "", false, nil, start, logger)
	return false, nil
}

// DropFolderData places a folder payload that arrived outside a canvas drop,
// bypassing the registered handlers. It is recorded in the drop history under
// the "folderData" handler name.
func (d *Dispatcher) DropFolderData(ctx context.Context, ev *dropdata.Event, payload dropdata.Payload) (bool, error) {
	start := d.cfg.Now()
	correlationID := uuid.NewString()
	logger := d.logger.With(zap.String("correlation_id", correlationID))

	env := &handlers.Env{
		Host:     d.cfg.Host,
		Settings: d.snapshot(ctx, logger),
		Styles:   d.cfg.Styles,
		Logger:   logger,
		Now:      d.cfg.Now,
	}
	handled, err := handlers.DropFolderData(ctx, env, ev, payload)
	d.record(ctx, correlationID, "folderData", handled, err, start, logger)
	if err != nil {
		logger.Error("Folder data drop failed", zap.Error(err))
		return true, err
	}
	logger.Info("Folder data dropped", zap.Bool("handled", handled))
	return handled, nil
}

// snapshot loads the settings once for the whole dispatch.
func (d *Dispatcher) snapshot(ctx context.Context, logger *logging.Logger) settings.Values {
	if d.cfg.Settings == nil {
		return settings.Defaults()
	}
	values, err := d.cfg.Settings.Load(ctx)
	if err != nil {
		logger.Warn("Failed to load settings, using defaults", zap.Error(err))
		return settings.Defaults()
	}
	return values
}

// accepts builds the handler and asks whether it takes the drop.
func (d *Dispatcher) accepts(r registration, ev *dropdata.Event, env *handlers.Env, logger *logging.Logger) (h handlers.Handler, ok bool) {
	defer func() {
		if p := recover(); p != nil {
			logger.Warn("Drop handler panicked", zap.String("handler", r.name), zap.Any("panic", p))
			h, ok = nil, false
		}
	}()
	h = r.factory(ev, env)
	if h == nil {
		return nil, false
	}
	return h, h.CanHandleDrop()
}

// handle runs HandleDrop. A panic is reported as panicked so the caller
// moves on to the next registration.
func (d *Dispatcher) handle(ctx context.Context, name string, h handlers.Handler, logger *logging.Logger) (handled, panicked bool, err error) {
	defer func() {
		if p := recover(); p != nil {
			logger.Warn("Drop handler panicked", zap.String("handler", name), zap.Any("panic", p))
			handled, panicked, err = false, true, nil
		}
	}()
	handled, err = h.HandleDrop(ctx)
	return handled, false, err
}

func (d *Dispatcher) record(ctx context.Context, correlationID, handler string, handled bool, err error, start time.Time, logger *logging.Logger) {
	if d.cfg.Recorder == nil {
		return
	}
	rec := db.DropRecord{
		CorrelationID: correlationID,
		SceneID:       d.cfg.SceneID,
		Handler:       handler,
		Handled:       handled,
		Status:        db.StatusDeclined,
		DurationMS:    d.cfg.Now().Sub(start).Milliseconds(),
	}
	switch {
	case err != nil:
		rec.Status = db.StatusError
		rec.ErrorMessage = err.Error()
	case handled:
		rec.Status = db.StatusHandled
	}
	if _, rerr := d.cfg.Recorder.InsertDropRecord(ctx, rec); rerr != nil {
		logger.Warn("Failed to record drop", zap.Error(rerr))
	}
}
