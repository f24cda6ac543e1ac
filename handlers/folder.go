package handlers

import (
	"context"
	"fmt"

	"droppables/core"
	"droppables/dropdata"
	"droppables/layout"
	"droppables/picker"

	"go.uber.org/zap"
)

// FolderHandler drops every actor of an actor folder as tokens, or pins a
// note for every entry of a journal folder.
type FolderHandler struct {
	event   *dropdata.Event
	env     *Env
	payload dropdata.Payload
}

// NewFolderHandler is the Factory for FolderHandler.
func NewFolderHandler(ev *dropdata.Event, env *Env) Handler {
	return newFolderHandler(ev, env, dropdata.Extract(ev))
}

func newFolderHandler(ev *dropdata.Event, env *Env, payload dropdata.Payload) *FolderHandler {
	return &FolderHandler{event: ev, env: env, payload: payload}
}

func (h *FolderHandler) Name() string { return "folder" }

func (h *FolderHandler) RetrieveData() dropdata.Payload { return h.payload }

func (h *FolderHandler) CanHandleDrop() bool {
	return h.payload.Kind == dropdata.KindFolder
}

func (h *FolderHandler) HandleDrop(ctx context.Context) (bool, error) {
	if !h.CanHandleDrop() {
		return false, nil
	}
	h.event.PreventDefault()

	folder, err := h.env.Host.Documents.ResolveFolder(ctx, h.payload.Ref)
	if err != nil {
		return true, fmt.Errorf("resolve folder %s: %w", h.payload.Ref, err)
	}
	if folder == nil {
		return false, nil
	}

	switch folder.Type {
	case core.DocumentActor:
		return true, h.dropActorFolder(ctx, folder)
	case core.DocumentJournalEntry:
		return true, h.dropJournalFolder(ctx, folder)
	default:
		h.env.logger().Debug("Folder type not droppable", zap.String("type", folder.Type))
		return false, nil
	}
}

func (h *FolderHandler) dropActorFolder(ctx context.Context, folder *core.Folder) error {
	if len(folder.Actors) == 0 {
		return nil
	}

	req := layout.Request[core.Actor]{
		Items:     folder.Actors,
		Origin:    h.payload.Origin(h.env.cellUnder(h.event)),
		Elevation: h.payload.ElevationOr(0),
		Hidden:    h.event.AltKey,
		Style:     h.env.Settings.DropStyle,
	}

	if req.Style == layout.StyleDialog {
		choice, ok, err := h.env.picker().Choose(ctx, picker.Request{
			Title:     "Droppables.DropActorsFolder",
			Elevation: req.Elevation,
		})
		if err != nil || !ok {
			return err
		}
		req.Style = choice.Style
		req.Elevation = choice.Elevation
	}

	if _, err := dropActors(ctx, h.env, req); err != nil {
		return fmt.Errorf("drop actor folder %s: %w", folder.Name, err)
	}
	return nil
}

func (h *FolderHandler) dropJournalFolder(ctx context.Context, folder *core.Folder) error {
	topLeft := h.env.cellUnder(h.event)
	loc := h.env.Host.Localizer

	ok, err := h.env.Host.Dialogs.Confirm(ctx,
		loc.Localize("Droppables.DropJournalFolder"),
		loc.Format("Droppables.DropJournalFolderExplanation", map[string]string{"folderName": folder.Name}))
	if err != nil {
		return fmt.Errorf("confirm journal folder drop: %w", err)
	}
	if !ok {
		return nil
	}

	for _, entry := range folder.Entries {
		_, err := h.env.Host.Documents.CreateNotes(ctx, []core.NoteSource{
			{EntryID: entry.ID, X: topLeft.X, Y: topLeft.Y},
		})
		if err != nil {
			return fmt.Errorf("create note for %s: %w", entry.Name, err)
		}
	}
	return nil
}
