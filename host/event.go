package host

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"droppables/core"
	"droppables/dropdata"
)

// EventFile is the YAML description of a drop:
//
//	clientX: 420
//	clientY: 300
//	altKey: false
//	text: '{"type":"Folder","uuid":"Folder.goblins"}'
//	files:
//	  - path: ./art/goblin.png
type EventFile struct {
	ClientX float64           `yaml:"clientX"`
	ClientY float64           `yaml:"clientY"`
	AltKey  bool              `yaml:"altKey"`
	Text    string            `yaml:"text"`
	Data    map[string]string `yaml:"data"`
	Files   []EventFileEntry  `yaml:"files"`
}

// EventFileEntry is a dropped file read from disk. Name defaults to the base
// name of Path and Type to the MIME type of its extension.
type EventFileEntry struct {
	Path string `yaml:"path"`
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// LoadEvent reads an event file. Relative file paths are resolved against
// the event file's directory.
func LoadEvent(path string) (*dropdata.Event, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read event file: %w", err)
	}
	var ef EventFile
	if err := yaml.Unmarshal(raw, &ef); err != nil {
		return nil, fmt.Errorf("parse event file %s: %w", path, err)
	}
	return ef.Event(filepath.Dir(path))
}

// Event builds the drop event, reading files relative to dir.
func (ef EventFile) Event(dir string) (*dropdata.Event, error) {
	ev := &dropdata.Event{
		ClientX:  ef.ClientX,
		ClientY:  ef.ClientY,
		AltKey:   ef.AltKey,
		Transfer: dropdata.Transfer{Data: map[string]string{}},
	}
	for k, v := range ef.Data {
		ev.Transfer.Data[k] = v
	}
	if ef.Text != "" {
		ev.Transfer.Data[dropdata.FormatPlainText] = ef.Text
	}

	for _, f := range ef.Files {
		p := f.Path
		if !filepath.IsAbs(p) {
			p = filepath.Join(dir, p)
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("read dropped file: %w", err)
		}
		file := core.File{Name: f.Name, Type: f.Type, Data: data}
		if file.Name == "" {
			file.Name = filepath.Base(p)
		}
		if file.Type == "" {
			file.Type = mimeType(file.Name)
		}
		ev.Transfer.Files = append(ev.Transfer.Files, file)
	}
	return ev, nil
}

// Media types that system MIME tables disagree on.
var extraMIMETypes = map[string]string{
	".flac": "audio/flac",
	".m4a":  "audio/mp4",
	".md":   "text/markdown",
	".mp3":  "audio/mpeg",
	".mp4":  "video/mp4",
	".ogg":  "audio/ogg",
	".ogv":  "video/ogg",
	".txt":  "text/plain",
	".wav":  "audio/wav",
	".webm": "video/webm",
	".webp": "image/webp",
}

func mimeType(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if t, ok := extraMIMETypes[ext]; ok {
		return t
	}
	return mime.TypeByExtension(ext)
}
