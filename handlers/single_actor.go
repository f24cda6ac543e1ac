package handlers

import (
	"context"
	"fmt"

	"droppables/core"
	"droppables/dropdata"
	"droppables/layout"
	"droppables/picker"
)

// SingleActorHandler drops one actor. Unlinked NPCs can be dropped several
// times at once through the layout dialog.
type SingleActorHandler struct {
	event   *dropdata.Event
	env     *Env
	payload dropdata.Payload
}

// NewSingleActorHandler is the Factory for SingleActorHandler.
func NewSingleActorHandler(ev *dropdata.Event, env *Env) Handler {
	return &SingleActorHandler{event: ev, env: env, payload: dropdata.Extract(ev)}
}

func (h *SingleActorHandler) Name() string { return "singleActor" }

func (h *SingleActorHandler) RetrieveData() dropdata.Payload { return h.payload }

func (h *SingleActorHandler) CanHandleDrop() bool {
	return h.payload.Kind == dropdata.KindActor
}

func (h *SingleActorHandler) HandleDrop(ctx context.Context) (bool, error) {
	if !h.CanHandleDrop() {
		return false, nil
	}
	h.event.PreventDefault()

	actor, err := h.env.Host.Documents.ResolveActor(ctx, h.payload.Ref)
	if err != nil {
		return true, fmt.Errorf("resolve actor %s: %w", h.payload.Ref, err)
	}
	if actor == nil {
		return false, nil
	}

	req := layout.Request[core.Actor]{
		Items:     []core.Actor{*actor},
		Origin:    h.payload.Origin(h.env.cellUnder(h.event)),
		Elevation: h.payload.ElevationOr(0),
		Hidden:    h.event.AltKey,
		Style:     layout.StyleStack,
	}

	if actor.IsRepeatable() {
		choice, ok, err := h.env.picker().Choose(ctx, picker.Request{
			Title:      "Droppables.DropActorsFolder",
			Elevation:  req.Elevation,
			AllowCount: true,
		})
		if err != nil {
			return true, err
		}
		if !ok {
			return true, nil
		}
		req.Items = make([]core.Actor, choice.Count)
		for i := range req.Items {
			req.Items[i] = *actor
		}
		req.Style = choice.Style
		req.Elevation = choice.Elevation
	}

	if _, err := dropActors(ctx, h.env, req); err != nil {
		return true, fmt.Errorf("drop actor %s: %w", actor.Name, err)
	}
	return true, nil
}
