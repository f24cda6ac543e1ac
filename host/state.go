package host

import (
	"strings"
	"sync"

	"droppables/core"
)

// StaticUser is a user with a fixed role and permission set.
type StaticUser struct {
	GM          bool
	Permissions map[string]bool
}

// UserFromConfig builds the configured user.
func UserFromConfig(cfg *core.Config) StaticUser {
	u := StaticUser{GM: cfg.IsGM(), Permissions: map[string]bool{}}
	for _, p := range cfg.Permissions {
		if p != "" {
			u.Permissions[p] = true
		}
	}
	return u
}

func (u StaticUser) IsGM() bool { return u.GM }

func (u StaticUser) HasPermission(name string) bool {
	return u.Permissions[strings.ToUpper(name)]
}

// StaticCanvas holds the active layer, toggled tools and scene name. It is
// safe for concurrent use.
type StaticCanvas struct {
	mu    sync.RWMutex
	layer string
	tools map[string]bool
	scene string
}

// NewStaticCanvas returns a canvas on layer. Tools are "control/tool" names
// that are switched on, such as "tiles/foreground".
func NewStaticCanvas(layer, scene string, tools ...string) *StaticCanvas {
	c := &StaticCanvas{layer: layer, scene: scene, tools: map[string]bool{}}
	for _, t := range tools {
		c.tools[t] = true
	}
	return c
}

func (c *StaticCanvas) ActiveLayer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.layer
}

func (c *StaticCanvas) ToolActive(control, tool string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tools[control+"/"+tool]
}

func (c *StaticCanvas) SceneName() string {
	return c.scene
}

// ActivateLayer switches the active layer.
func (c *StaticCanvas) ActivateLayer(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.layer = name
}

// LayerName maps a short layer name ("tokens", "tiles", "sounds", "notes")
// to its canvas layer. Unknown names are returned unchanged.
func LayerName(short string) string {
	switch strings.ToLower(short) {
	case "tokens", "token":
		return core.LayerTokens
	case "tiles", "tile":
		return core.LayerTiles
	case "sounds", "sound":
		return core.LayerSounds
	case "notes", "note":
		return core.LayerNotes
	}
	return short
}
