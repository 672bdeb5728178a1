// Package storage archives user-uploaded resume PDFs.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Uploader interface {
	Upload(ctx context.Context, objectName string, contentType string, r io.Reader) (storedPath string, err error)
}

// UploadObjectName places an upload under its owner with a collision-free
// name; anonymous uploads share the "anonymous" prefix.
func UploadObjectName(ownerID, filename string, at time.Time) string {
	owner := strings.TrimSpace(ownerID)
	if owner == "" {
		owner = "anonymous"
	}
	ext := strings.ToLower(path.Ext(filename))
	if ext == "" {
		ext = ".pdf"
	}
	return fmt.Sprintf("uploads/%s/%s-%s%s", owner, at.UTC().Format("20060102"), uuid.NewString(), ext)
}
