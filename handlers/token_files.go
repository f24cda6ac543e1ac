package handlers

import (
	"context"
	"fmt"
	"strconv"

	"droppables/core"
	"droppables/dropdata"
)

// TokenFilesHandler turns dropped images into new actors with a token each.
type TokenFilesHandler struct {
	event   *dropdata.Event
	env     *Env
	payload dropdata.Payload
	files   []core.File
}

// NewTokenFilesHandler is the Factory for TokenFilesHandler.
func NewTokenFilesHandler(ev *dropdata.Event, env *Env) Handler {
	payload := dropdata.Extract(ev)
	return &TokenFilesHandler{
		event:   ev,
		env:     env,
		payload: payload,
		files:   dropdata.FilterFiles(payload.Files, "image"),
	}
}

func (h *TokenFilesHandler) Name() string { return "tokenFiles" }

func (h *TokenFilesHandler) RetrieveData() dropdata.Payload { return h.payload }

// dropURL returns the payload URL when it points at an image.
func (h *TokenFilesHandler) dropURL() string {
	if h.payload.URL != "" && imageURL(h.payload.URL) {
		return h.payload.URL
	}
	return ""
}

func (h *TokenFilesHandler) CanHandleDrop() bool {
	u := h.dropURL()
	if !h.env.Settings.EnableCanvasDragUpload || !h.env.onLayer(core.LayerTokens) || (len(h.files) == 0 && u == "") {
		return false
	}

	var reqs []requirement
	if u == "" {
		reqs = append(reqs, needUpload)
	}
	reqs = append(reqs, needTokenCreate, needActorCreate)
	return h.env.permitted(reqs...)
}

// tokenImage is one image waiting for an actor type.
type tokenImage struct {
	fileName string
	path     string
}

func (h *TokenFilesHandler) HandleDrop(ctx context.Context) (bool, error) {
	if !h.CanHandleDrop() {
		return false, nil
	}
	h.event.PreventDefault()

	types, labels, err := h.actorTypes(ctx)
	if err != nil {
		return true, err
	}

	images, err := h.images(ctx)
	if err != nil {
		return true, err
	}

	chosen, ok, err := h.promptTypes(ctx, images, types, labels)
	if err != nil || !ok {
		return true, err
	}

	if err := h.createActorsAndTokens(ctx, images, chosen); err != nil {
		return true, err
	}
	return true, nil
}

// actorTypes returns the instantiable actor types and their display labels.
func (h *TokenFilesHandler) actorTypes(ctx context.Context) ([]string, map[string]string, error) {
	all, err := h.env.Host.Documents.ActorTypes(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list actor types: %w", err)
	}
	loc := h.env.Host.Localizer
	var types []string
	labels := map[string]string{}
	for _, t := range all {
		if t == core.ActorTypeBase {
			continue
		}
		types = append(types, t)
		key := "Droppables.ActorType." + t
		if loc.Has(key) {
			labels[t] = loc.Localize(key)
		} else {
			labels[t] = t
		}
	}
	return types, labels, nil
}

// images uploads each file in order, or uses the image URL as is.
func (h *TokenFilesHandler) images(ctx context.Context) ([]tokenImage, error) {
	if u := h.dropURL(); u != "" {
		return []tokenImage{{fileName: fileNameFromURL(u, defaultImageName), path: u}}, nil
	}
	images := make([]tokenImage, 0, len(h.files))
	for _, f := range h.files {
		res, err := h.env.Host.Uploads.Upload(ctx, UploadNamespace, FolderTokens, f)
		if err != nil {
			return nil, fmt.Errorf("upload %s: %w", f.Name, err)
		}
		images = append(images, tokenImage{fileName: f.Name, path: res.Path})
	}
	return images, nil
}

// promptTypes asks for one actor type per image in a single dialog.
func (h *TokenFilesHandler) promptTypes(ctx context.Context, images []tokenImage, types []string, labels map[string]string) ([]string, bool, error) {
	options := make([]core.Option, len(types))
	for i, t := range types {
		options[i] = core.Option{Value: t, Label: labels[t]}
	}
	selected := ""
	if len(types) > 0 {
		selected = types[0]
	}

	fields := make([]core.Field, len(images))
	rows := make([]map[string]any, len(images))
	for i, img := range images {
		fields[i] = core.Field{
			Name:    typeField(i),
			Label:   img.fileName,
			Default: selected,
			Options: options,
		}
		rows[i] = map[string]any{"fileName": img.fileName, "filePath": img.path, "selectedType": selected}
	}

	loc := h.env.Host.Localizer
	values, ok, err := h.env.Host.Dialogs.Prompt(ctx, core.Form{
		Title:    loc.Localize("Droppables.TokenActorTypes"),
		Template: "drop-token-files-dialog",
		Data:     map[string]any{"uploadedData": rows, "types": labels},
		Fields:   fields,
		Button:   loc.Localize("Droppables.Confirm"),
	})
	if err != nil {
		return nil, false, fmt.Errorf("actor type prompt: %w", err)
	}
	if !ok {
		return nil, false, nil
	}

	chosen := make([]string, len(images))
	for i := range images {
		chosen[i] = values[typeField(i)]
		if chosen[i] == "" {
			chosen[i] = core.ActorTypeBase
		}
	}
	return chosen, true, nil
}

func typeField(i int) string {
	return "type-" + strconv.Itoa(i)
}

func (h *TokenFilesHandler) createActorsAndTokens(ctx context.Context, images []tokenImage, types []string) error {
	sources := make([]core.ActorSource, len(images))
	for i, img := range images {
		sources[i] = core.ActorSource{Name: baseName(img.fileName), Type: types[i], Img: img.path}
	}

	actors, err := h.env.Host.Documents.CreateActors(ctx, sources)
	if err != nil {
		return fmt.Errorf("create actors: %w", err)
	}

	tokens := make([]core.TokenSource, 0, len(actors))
	for _, actor := range actors {
		topLeft := h.env.cellUnder(h.event)
		src := core.TokenSource{
			ActorID:    actor.ID,
			TextureSrc: actor.Img,
			X:          topLeft.X,
			Y:          topLeft.Y,
			Hidden:     h.event.AltKey,
			ActorLink:  false,
		}
		tokens = append(tokens, src)

		if err := h.env.Host.Documents.UpdateActorPrototype(ctx, actor.ID, src); err != nil {
			return fmt.Errorf("update prototype of %s: %w", actor.Name, err)
		}
	}

	if _, err := h.env.Host.Documents.CreateTokens(ctx, tokens); err != nil {
		return fmt.Errorf("create tokens: %w", err)
	}
	return nil
}
