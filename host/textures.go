package host

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"net/http"
	"strings"

	// decoders for DecodeConfig
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"droppables/core"
)

// maxTextureFetch bounds the bytes read from a remote texture.
const maxTextureFetch = 32 << 20

// Textures is a core.TextureLoader that decodes image headers from the upload
// store or over HTTP. Video and vector sources have no known size.
type Textures struct {
	uploads *Uploads
	client  *http.Client
}

// NewTextures returns a loader reading uploads and fetching URLs with client.
func NewTextures(uploads *Uploads, client *http.Client) *Textures {
	if client == nil {
		client = http.DefaultClient
	}
	return &Textures{uploads: uploads, client: client}
}

func (t *Textures) Dimensions(ctx context.Context, src string) (core.Size, error) {
	r, err := t.open(ctx, src)
	if err != nil {
		return core.Size{}, err
	}
	defer r.Close()

	cfg, _, err := image.DecodeConfig(r)
	if err != nil {
		return core.Size{}, fmt.Errorf("decode texture %s: %w", src, err)
	}
	return core.Size{Width: float64(cfg.Width), Height: float64(cfg.Height)}, nil
}

func (t *Textures) open(ctx context.Context, src string) (io.ReadCloser, error) {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
		if err != nil {
			return nil, err
		}
		resp, err := t.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("fetch texture: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("fetch texture %s: unexpected status %d", src, resp.StatusCode)
		}
		return struct {
			io.Reader
			io.Closer
		}{io.LimitReader(resp.Body, maxTextureFetch), resp.Body}, nil
	}

	if t.uploads == nil || !t.uploads.Has(src) {
		return nil, fmt.Errorf("texture %s not found", src)
	}
	data, err := t.uploads.Read(src)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}
