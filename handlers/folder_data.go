package handlers

import (
	"context"

	"droppables/core"
	"droppables/dropdata"
)

// DropFolderData drops a folder payload that did not come from a canvas
// drop, such as a folder dragged from the sidebar onto the scene list. The
// token layer is activated first when the canvas supports it.
func DropFolderData(ctx context.Context, env *Env, ev *dropdata.Event, payload dropdata.Payload) (bool, error) {
	if activator, ok := env.Host.Canvas.(core.LayerActivator); ok {
		activator.ActivateLayer(core.LayerTokens)
	}
	if ev == nil {
		ev = &dropdata.Event{}
	}
	return newFolderHandler(ev, env, payload).HandleDrop(ctx)
}
