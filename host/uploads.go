package host

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/peterbourgon/diskv/v3"
	"go.uber.org/zap"

	"droppables/core"
	"droppables/logging"
)

// Uploads is a core.Uploader storing files under a base directory with
// diskv. Keys are "namespace/folder/name" paths, which are also the returned
// upload paths.
type Uploads struct {
	d      *diskv.Diskv
	logger *logging.Logger
}

// NewUploads returns an upload store rooted at basePath. A nil logger
// discards output.
func NewUploads(basePath string, logger *logging.Logger) *Uploads {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Uploads{logger: logger, d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      8 * 1024 * 1024, // 8MB
	})}
}

func (u *Uploads) Upload(_ context.Context, namespace, folder string, file core.File) (core.UploadResult, error) {
	name := path.Base(strings.ReplaceAll(file.Name, "\\", "/"))
	if name == "" || name == "." || name == "/" {
		return core.UploadResult{}, errors.New("upload: file has no name")
	}
	key := path.Join(namespace, folder, name)
	if err := u.d.Write(key, file.Data); err != nil {
		return core.UploadResult{}, fmt.Errorf("upload %s: %w", key, err)
	}
	u.logger.Debug("Stored upload",
		zap.String("path", key),
		zap.String("type", file.Type),
		zap.String("size", core.FormatBytes(int64(len(file.Data)))))
	return core.UploadResult{Path: key}, nil
}

// Read returns the bytes stored at an upload path.
func (u *Uploads) Read(key string) ([]byte, error) {
	return u.d.Read(key)
}

// Has reports whether an upload path exists.
func (u *Uploads) Has(key string) bool {
	return u.d.Has(key)
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "/")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return path.Join(append(append([]string{}, pathKey.Path...), pathKey.FileName)...)
}
