package host

import (
	"io"

	"droppables/core"
	"droppables/db"
	"droppables/logging"
)

// Options configures a Reference host.
type Options struct {
	Config    *core.Config
	Repo      *db.Repository
	Localizer core.Localizer
	Dialogs   core.Dialogs
	Out       io.Writer
	Logger    *logging.Logger
	// Layer is the active canvas layer, core.LayerTokens when empty.
	Layer string
	// Tools are the toggled "control/tool" names.
	Tools []string
}

// Reference is the assembled terminal host.
type Reference struct {
	Grid      *SquareGrid
	Documents *Documents
	Uploads   *Uploads
	Canvas    *StaticCanvas
	Notifier  *ConsoleNotifier
	Textures  *Textures
	User      StaticUser
	Localizer core.Localizer
	Dialogs   core.Dialogs
}

// New wires the reference host from opts.
func New(opts Options) *Reference {
	cfg := opts.Config
	layer := opts.Layer
	if layer == "" {
		layer = core.LayerTokens
	}
	uploads := NewUploads(cfg.UploadDir, opts.Logger)
	return &Reference{
		Grid:      NewSquareGrid(cfg.GridSize),
		Documents: NewDocuments(opts.Repo, cfg.SceneID),
		Uploads:   uploads,
		Canvas:    NewStaticCanvas(LayerName(layer), cfg.SceneName, opts.Tools...),
		Notifier:  NewConsoleNotifier(opts.Out, opts.Logger),
		Textures:  NewTextures(uploads, core.GetDefaultHTTPClient(cfg)),
		User:      UserFromConfig(cfg),
		Localizer: opts.Localizer,
		Dialogs:   opts.Dialogs,
	}
}

// Core returns the capability bundle handed to the drop engine.
func (r *Reference) Core() core.Host {
	return core.Host{
		Grid:      r.Grid,
		Documents: r.Documents,
		Uploads:   r.Uploads,
		User:      r.User,
		Dialogs:   r.Dialogs,
		Notifier:  r.Notifier,
		Localizer: r.Localizer,
		Canvas:    r.Canvas,
		Textures:  r.Textures,
	}
}
