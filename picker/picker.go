// Package picker asks the user how a multi-entity drop should be laid out.
package picker

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"droppables/core"
	"droppables/layout"
	"droppables/logging"

	"go.uber.org/zap"
)

// Form field names.
const (
	FieldDropStyle = "drop-style"
	FieldElevation = "elevation"
	FieldCount     = "count"
)

// MaxCount caps how many copies of an actor one drop can place.
const MaxCount = 100

// Template is the name of the form template hosts render.
const Template = "drop-dialog"

// StyleRecorder persists the last style the user picked.
type StyleRecorder interface {
	SetLastUsedDropStyle(ctx context.Context, style layout.Style) error
}

// Request describes one prompt.
type Request struct {
	// Title is a message key.
	Title string
	// Elevation seeds the elevation input.
	Elevation float64
	// AllowCount adds the count input.
	AllowCount bool
}

// Choice is the confirmed answer. Elevation is NaN when the input was not a
// number. Count is at least 1.
type Choice struct {
	Style     layout.Style
	Elevation float64
	Count     int
}

// Picker prompts through core.Dialogs.
type Picker struct {
	dialogs   core.Dialogs
	localizer core.Localizer
	recorder  StyleRecorder
	lastUsed  layout.Style
	logger    *logging.Logger
}

// New returns a Picker whose style selector starts at lastUsed.
func New(dialogs core.Dialogs, localizer core.Localizer, recorder StyleRecorder, lastUsed layout.Style, logger *logging.Logger) *Picker {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Picker{
		dialogs:   dialogs,
		localizer: localizer,
		recorder:  recorder,
		lastUsed:  lastUsed,
		logger:    logger,
	}
}

// StyleLabelKey returns the message key naming style.
func StyleLabelKey(style layout.Style) string {
	switch style {
	case layout.StyleStack:
		return "Droppables.StackedUp"
	case layout.StyleRandom:
		return "Droppables.Randomly"
	case layout.StyleHorizontalLine:
		return "Droppables.HorizontalLine"
	case layout.StyleVerticalLine:
		return "Droppables.VerticalLine"
	case layout.StyleDialog:
		return "Droppables.Dialog"
	}
	return string(style)
}

// Form builds the dialog for req.
func (p *Picker) Form(req Request) core.Form {
	styles := layout.PlacementStyles()
	options := make([]core.Option, len(styles))
	for i, s := range styles {
		options[i] = core.Option{Value: string(s), Label: p.localizer.Localize(StyleLabelKey(s))}
	}

	seed := startingElevation(req.Elevation)
	fields := []core.Field{
		{Name: FieldDropStyle, Label: p.localizer.Localize("Droppables.DropStyle"), Default: string(p.lastUsed), Options: options},
		{Name: FieldElevation, Label: p.localizer.Localize("Droppables.Elevation"), Default: seed},
	}
	data := map[string]any{
		"dropStyles":        options,
		"savedDropStyle":    string(p.lastUsed),
		"startingElevation": seed,
	}
	if req.AllowCount {
		fields = append(fields, core.Field{Name: FieldCount, Label: p.localizer.Localize("Droppables.Count"), Default: "1"})
		data["allowCount"] = true
		data["defaultCount"] = 1
	}

	return core.Form{
		Title:    p.localizer.Localize(req.Title),
		Template: Template,
		Data:     data,
		Fields:   fields,
		Button:   p.localizer.Localize("Droppables.DropButton"),
	}
}

// Choose prompts and returns the confirmed choice. ok is false when the user
// dismissed the dialog or picked a style with no placement algorithm; neither
// is an error. A valid style is recorded as last used before returning.
func (p *Picker) Choose(ctx context.Context, req Request) (Choice, bool, error) {
	values, ok, err := p.dialogs.Prompt(ctx, p.Form(req))
	if err != nil {
		return Choice{}, false, fmt.Errorf("drop style prompt: %w", err)
	}
	if !ok {
		p.logger.Debug("Drop style prompt dismissed")
		return Choice{}, false, nil
	}

	style := layout.Style(strings.TrimSpace(values[FieldDropStyle]))
	if !style.IsPlacement() {
		p.logger.Warn("Ignoring unknown drop style", zap.String("style", string(style)))
		return Choice{}, false, nil
	}

	if p.recorder != nil {
		if err := p.recorder.SetLastUsedDropStyle(ctx, style); err != nil {
			return Choice{}, false, fmt.Errorf("save last used drop style: %w", err)
		}
	}
	p.lastUsed = style

	choice := Choice{
		Style:     style,
		Elevation: ParseElevation(values[FieldElevation]),
		Count:     1,
	}
	if req.AllowCount {
		choice.Count = ParseCount(values[FieldCount])
	}
	return choice, true, nil
}

// startingElevation is the rounded elevation, or empty for zero and NaN.
func startingElevation(e float64) string {
	if e == 0 || math.IsNaN(e) {
		return ""
	}
	return strconv.FormatFloat(math.Round(e), 'f', -1, 64)
}

// ParseElevation reads the longest numeric prefix of s, returning NaN when
// there is none.
func ParseElevation(s string) float64 {
	s = strings.TrimSpace(s)
	for end := len(s); end > 0; end-- {
		if v, err := strconv.ParseFloat(s[:end], 64); err == nil {
			return v
		}
	}
	return math.NaN()
}

// ParseCount reads a leading integer from s. Anything below 1, and input
// with no leading integer, yields 1. Larger counts are clamped to MaxCount.
func ParseCount(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(s[:end])
	switch {
	case errors.Is(err, strconv.ErrRange) && n > 0:
		return MaxCount
	case err != nil || n < 1:
		return 1
	case n > MaxCount:
		return MaxCount
	}
	return n
}
