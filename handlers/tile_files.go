package handlers

import (
	"context"
	"fmt"

	"droppables/core"
	"droppables/dropdata"

	"go.uber.org/zap"
)

// Tile elevation while the tiles foreground tool is active.
const overheadElevation = 20

// TileFilesHandler creates one tile per dropped image or video, or one tile
// for a dropped URL.
type TileFilesHandler struct {
	event   *dropdata.Event
	env     *Env
	payload dropdata.Payload
	files   []core.File
}

// NewTileFilesHandler is the Factory for TileFilesHandler.
func NewTileFilesHandler(ev *dropdata.Event, env *Env) Handler {
	payload := dropdata.Extract(ev)
	return &TileFilesHandler{
		event:   ev,
		env:     env,
		payload: payload,
		files:   dropdata.FilterFiles(payload.Files, "image", "video"),
	}
}

func (h *TileFilesHandler) Name() string { return "tileFiles" }

func (h *TileFilesHandler) RetrieveData() dropdata.Payload { return h.payload }

func (h *TileFilesHandler) CanHandleDrop() bool {
	if !h.env.Settings.EnableCanvasDragUpload || !h.env.onLayer(core.LayerTiles) || (len(h.files) == 0 && h.payload.URL == "") {
		return false
	}
	if h.payload.URL != "" {
		return true
	}
	return h.env.permitted(needUpload)
}

func (h *TileFilesHandler) HandleDrop(ctx context.Context) (bool, error) {
	if !h.CanHandleDrop() {
		return false, nil
	}
	h.event.PreventDefault()

	paths, err := h.paths(ctx)
	if err != nil {
		return true, err
	}

	elevation := 0.0
	if h.env.Host.Canvas.ToolActive("tiles", "foreground") {
		elevation = overheadElevation
	}
	topLeft := h.env.cellUnder(h.event)

	sources := make([]core.TileSource, 0, len(paths))
	for _, p := range paths {
		src := core.TileSource{
			TextureSrc: p,
			Elevation:  elevation,
			Hidden:     h.event.AltKey,
			X:          topLeft.X,
			Y:          topLeft.Y,
		}
		if h.env.Host.Textures != nil {
			size, err := h.env.Host.Textures.Dimensions(ctx, p)
			if err != nil {
				h.env.logger().Warn("Could not read tile texture size", zap.String("src", p), zap.Error(err))
			} else {
				src.Width, src.Height = size.Width, size.Height
			}
		}
		sources = append(sources, src)
	}

	if _, err := h.env.Host.Documents.CreateTiles(ctx, sources); err != nil {
		return true, fmt.Errorf("create tiles: %w", err)
	}
	return true, nil
}

func (h *TileFilesHandler) paths(ctx context.Context) ([]string, error) {
	if h.payload.URL != "" {
		return []string{h.payload.URL}, nil
	}
	paths := make([]string, 0, len(h.files))
	for _, f := range h.files {
		res, err := h.env.Host.Uploads.Upload(ctx, UploadNamespace, FolderTiles, f)
		if err != nil {
			return nil, fmt.Errorf("upload %s: %w", f.Name, err)
		}
		paths = append(paths, res.Path)
	}
	return paths, nil
}
