package demo

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// ErrNotRegularFile is returned when an attachment path is a directory or
// other non-regular file.
var ErrNotRegularFile = errors.New("not a regular file")

// Attachment is a local file about to be sent.
type Attachment struct {
	Path string
	Name string
	Size int64
	MIME string // media type without parameters
}

// NewAttachment stats path and sniffs its content type.
func NewAttachment(path string) (Attachment, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Attachment{}, err
	}
	if !info.Mode().IsRegular() {
		return Attachment{}, fmt.Errorf("%s: %w", path, ErrNotRegularFile)
	}

	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return Attachment{}, fmt.Errorf("sniffing %s: %w", path, err)
	}
	media, _, _ := strings.Cut(mt.String(), ";")

	return Attachment{
		Path: path,
		Name: filepath.Base(path),
		Size: info.Size(),
		MIME: media,
	}, nil
}

// IsImage reports whether the attachment should be shown as an image.
func (a Attachment) IsImage() bool {
	return strings.HasPrefix(a.MIME, "image/")
}

// URL is a file:// link to the attachment.
func (a Attachment) URL() string {
	abs, err := filepath.Abs(a.Path)
	if err != nil {
		abs = a.Path
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String()
}
