package handlers

import (
	"context"
	"time"

	"droppables/core"
	"droppables/core/coretest"
	"droppables/dropdata"
	"droppables/layout"
	"droppables/settings"
)

// fixture wires recording fakes into an Env.
type fixture struct {
	docs     *coretest.Documents
	uploads  *coretest.Uploads
	dialogs  *coretest.Dialogs
	notifier *coretest.Notifier
	canvas   *coretest.Canvas
	user     coretest.User
	textures coretest.Textures
	messages map[string]string
	values   settings.Values
	styles   *styleRecorder
}

func newFixture() *fixture {
	return &fixture{
		docs:     &coretest.Documents{},
		uploads:  &coretest.Uploads{},
		dialogs:  &coretest.Dialogs{},
		notifier: &coretest.Notifier{},
		canvas:   &coretest.Canvas{Layer: core.LayerTokens, Scene: "Crypt"},
		user:     coretest.User{GM: true},
		values:   settings.Defaults(),
		styles:   &styleRecorder{},
	}
}

func (f *fixture) env() *Env {
	host := coretest.Host(coretest.Grid{Cell: core.Size{Width: 50, Height: 50}},
		f.docs, f.uploads, f.user, f.dialogs, f.notifier, f.canvas, f.textures)
	host.Localizer = coretest.Localizer{Messages: f.messages}
	return &Env{
		Host:     host,
		Settings: f.values,
		Styles:   f.styles,
		Now:      func() time.Time { return time.Date(2026, time.March, 4, 15, 7, 0, 0, time.UTC) },
	}
}

type styleRecorder struct {
	styles []layout.Style
}

func (r *styleRecorder) SetLastUsedDropStyle(_ context.Context, style layout.Style) error {
	r.styles = append(r.styles, style)
	return nil
}

func textEvent(text string, x, y float64) *dropdata.Event {
	return &dropdata.Event{
		ClientX:  x,
		ClientY:  y,
		Transfer: dropdata.Transfer{Data: map[string]string{dropdata.FormatPlainText: text}},
	}
}

func fileEvent(x, y float64, files ...core.File) *dropdata.Event {
	return &dropdata.Event{ClientX: x, ClientY: y, Transfer: dropdata.Transfer{Files: files}}
}

func actor(id string, w, h float64) core.Actor {
	return core.Actor{ID: id, Name: id, Type: "character", Img: id + ".webp",
		Prototype: core.TokenPrototype{Width: w, Height: h}}
}

func coretestUser(gm bool, permissions ...string) coretest.User {
	u := coretest.User{GM: gm, Permissions: map[string]bool{}}
	for _, p := range permissions {
		u.Permissions[p] = true
	}
	return u
}

func coretestTextures(sizes map[string]core.Size) coretest.Textures {
	return coretest.Textures{Sizes: sizes}
}
