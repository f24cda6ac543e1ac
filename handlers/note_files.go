package handlers

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"droppables/core"
	"droppables/dropdata"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

// journalDateLayout matches a short month, day, and 12-hour time.
const journalDateLayout = "Jan 2, 03:04 PM"

// NoteFilesHandler bundles dropped media into one journal entry and pins a
// single note to it.
type NoteFilesHandler struct {
	event   *dropdata.Event
	env     *Env
	payload dropdata.Payload
	files   []core.File
}

// NewNoteFilesHandler is the Factory for NoteFilesHandler.
func NewNoteFilesHandler(ev *dropdata.Event, env *Env) Handler {
	payload := dropdata.Extract(ev)
	return &NoteFilesHandler{
		event:   ev,
		env:     env,
		payload: payload,
		files:   dropdata.FilterFiles(payload.Files, "image", "pdf", "video", "text"),
	}
}

func (h *NoteFilesHandler) Name() string { return "noteFiles" }

func (h *NoteFilesHandler) RetrieveData() dropdata.Payload { return h.payload }

// urlType returns the page type of the dropped URL, "" when it is not media.
func (h *NoteFilesHandler) urlType() string {
	if h.payload.URL == "" {
		return ""
	}
	return mediaURLType(h.payload.URL)
}

func (h *NoteFilesHandler) CanHandleDrop() bool {
	urlType := h.urlType()
	if !h.env.Settings.EnableCanvasDragUpload || !h.env.onLayer(core.LayerNotes) || (len(h.files) == 0 && urlType == "") {
		return false
	}

	var reqs []requirement
	if urlType == "" {
		reqs = append(reqs, needUpload)
	}
	reqs = append(reqs, needJournalWrite, needNoteCreate)
	return h.env.permitted(reqs...)
}

func (h *NoteFilesHandler) HandleDrop(ctx context.Context) (bool, error) {
	if !h.CanHandleDrop() {
		return false, nil
	}
	h.event.PreventDefault()

	pages, err := h.pages(ctx)
	if err != nil {
		return true, err
	}

	name := h.env.Host.Localizer.Format("Droppables.JournalSceneName", map[string]string{
		"name":     h.env.Host.Canvas.SceneName(),
		"dateTime": h.env.now().Format(journalDateLayout),
	})
	journal, err := h.env.Host.Documents.CreateJournalEntry(ctx, core.JournalSource{Name: name, Pages: pages})
	if err != nil {
		return true, fmt.Errorf("create journal entry: %w", err)
	}

	topLeft := h.env.cellUnder(h.event)
	note := core.NoteSource{X: topLeft.X, Y: topLeft.Y}
	if journal != nil {
		note.EntryID = journal.ID
	}
	if _, err := h.env.Host.Documents.CreateNotes(ctx, []core.NoteSource{note}); err != nil {
		return true, fmt.Errorf("create note: %w", err)
	}
	return true, nil
}

// pages builds one journal page per file, or a single page for a media URL.
func (h *NoteFilesHandler) pages(ctx context.Context) ([]core.JournalPage, error) {
	if t := h.urlType(); t != "" {
		return []core.JournalPage{{
			Name: fileNameFromURL(h.payload.URL, defaultMediaName),
			Type: t,
			Src:  h.payload.URL,
		}}, nil
	}

	pages := make([]core.JournalPage, 0, len(h.files))
	for _, f := range h.files {
		page := core.JournalPage{Name: f.Name, Type: pageType(f)}
		if page.Type == core.PageText {
			page.Text = string(f.Data)
			pages = append(pages, page)
			continue
		}

		res, err := h.env.Host.Uploads.Upload(ctx, UploadNamespace, FolderJournals, f)
		if err != nil {
			return nil, fmt.Errorf("upload %s: %w", f.Name, err)
		}
		page.Src = res.Path
		if page.Type == core.PagePDF {
			page.PageCount = h.pdfPageCount(f)
		}
		pages = append(pages, page)
	}
	return pages, nil
}

func pageType(f core.File) string {
	switch {
	case strings.Contains(f.Type, "pdf"):
		return core.PagePDF
	case strings.Contains(f.Type, "video"):
		return core.PageVideo
	case strings.Contains(f.Type, "text"):
		return core.PageText
	}
	return core.PageImage
}

// pdfPageCount returns the number of pages in f, or 0 when it cannot be read.
func (h *NoteFilesHandler) pdfPageCount(f core.File) (n int) {
	defer func() {
		// the pdf reader panics on some malformed input
		if r := recover(); r != nil {
			h.env.logger().Warn("Could not read PDF", zap.String("file", f.Name), zap.Any("panic", r))
			n = 0
		}
	}()
	r, err := pdf.NewReader(bytes.NewReader(f.Data), int64(len(f.Data)))
	if err != nil {
		h.env.logger().Warn("Could not read PDF", zap.String("file", f.Name), zap.Error(err))
		return 0
	}
	return r.NumPage()
}
