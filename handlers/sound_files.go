package handlers

import (
	"context"
	"fmt"

	"droppables/core"
	"droppables/dropdata"
)

// Ambient sound defaults.
const (
	soundRadius = 10
	soundVolume = 1.0
)

// SoundFilesHandler creates one ambient sound per dropped audio file.
type SoundFilesHandler struct {
	event   *dropdata.Event
	env     *Env
	payload dropdata.Payload
	files   []core.File
}

// NewSoundFilesHandler is the Factory for SoundFilesHandler.
func NewSoundFilesHandler(ev *dropdata.Event, env *Env) Handler {
	payload := dropdata.Extract(ev)
	return &SoundFilesHandler{
		event:   ev,
		env:     env,
		payload: payload,
		files:   dropdata.FilterFiles(payload.Files, "audio"),
	}
}

func (h *SoundFilesHandler) Name() string { return "soundFiles" }

func (h *SoundFilesHandler) RetrieveData() dropdata.Payload { return h.payload }

func (h *SoundFilesHandler) CanHandleDrop() bool {
	if !h.env.Settings.EnableCanvasDragUpload || !h.env.onLayer(core.LayerSounds) || len(h.files) == 0 {
		return false
	}
	// URL drops are left to the host.
	if h.payload.URL != "" {
		return false
	}
	return h.env.permitted(needUpload)
}

func (h *SoundFilesHandler) HandleDrop(ctx context.Context) (bool, error) {
	if !h.CanHandleDrop() {
		return false, nil
	}
	h.event.PreventDefault()

	sources := make([]core.AmbientSoundSource, 0, len(h.files))
	for _, f := range h.files {
		res, err := h.env.Host.Uploads.Upload(ctx, UploadNamespace, FolderSounds, f)
		if err != nil {
			return true, fmt.Errorf("upload %s: %w", f.Name, err)
		}
		topLeft := h.env.cellUnder(h.event)
		sources = append(sources, core.AmbientSoundSource{
			Path:   res.Path,
			X:      topLeft.X,
			Y:      topLeft.Y,
			Radius: soundRadius,
			Easing: true,
			Repeat: true,
			Volume: soundVolume,
		})
	}

	if _, err := h.env.Host.Documents.CreateAmbientSounds(ctx, sources); err != nil {
		return true, fmt.Errorf("create ambient sounds: %w", err)
	}
	return true, nil
}
