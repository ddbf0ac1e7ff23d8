package upload

import (
	"bytes"
	"fmt"
	"io"
	"math/rand"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"go-skillmarket-backend/pkg/apperror"
	"go-skillmarket-backend/pkg/logger"
)

// %PDF magic bytes; the declared Content-Type alone is not trusted.
var pdfMagic = []byte{0x25, 0x50, 0x44, 0x46}

// Saver writes certification PDFs to local disk under a fixed directory,
// creating it on first use. Stored names are <timestamp>-<random>-<name>
// so concurrent uploads never collide.
type Saver struct {
	Dir     string
	MaxSize int64
}

func NewSaver(dir string, maxSize int64) *Saver {
	return &Saver{Dir: dir, MaxSize: maxSize}
}

// SavedFile describes a stored upload.
type SavedFile struct {
	Filename     string
	OriginalName string
	Path         string
	Size         int64
}

// Save validates and persists one multipart file. Validation failures
// come back as AppErrors so handlers can surface them directly.
func (s *Saver) Save(header *multipart.FileHeader) (*SavedFile, error) {
	if header.Size > s.MaxSize {
		return nil, apperror.BadRequest(fmt.Sprintf("File exceeds the maximum size of %d bytes", s.MaxSize))
	}

	src, err := header.Open()
	if err != nil {
		return nil, apperror.Internal("Could not read upload", err)
	}
	defer src.Close()

	head := make([]byte, len(pdfMagic))
	if _, err := io.ReadFull(src, head); err != nil || !bytes.Equal(head, pdfMagic) {
		return nil, apperror.BadRequest("Only PDF files are allowed")
	}

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return nil, apperror.Internal("Could not prepare upload directory", err)
	}

	name := fmt.Sprintf("%d-%d-%s", time.Now().UnixMilli(), rand.Int63n(1e9), filepath.Base(header.Filename))
	dst, err := os.Create(filepath.Join(s.Dir, name))
	if err != nil {
		return nil, apperror.Internal("Could not store upload", err)
	}
	defer dst.Close()

	written, err := io.Copy(dst, io.MultiReader(bytes.NewReader(head), src))
	if err != nil {
		Cleanup(dst.Name())
		return nil, apperror.Internal("Could not store upload", err)
	}

	return &SavedFile{
		Filename:     name,
		OriginalName: header.Filename,
		Path:         dst.Name(),
		Size:         written,
	}, nil
}

// Cleanup removes a stored file best-effort: failures are logged and
// never propagated to the caller.
func Cleanup(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logger.Log.Warn("Failed to remove uploaded file", "path", path, "error", err)
	}
}
