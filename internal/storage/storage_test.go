package storage

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUploadObjectName(t *testing.T) {
	at := time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC)

	name := UploadObjectName("user-1", "My CV.PDF", at)
	assert.True(t, strings.HasPrefix(name, "uploads/user-1/20240309-"), name)
	assert.True(t, strings.HasSuffix(name, ".pdf"), name)

	anon := UploadObjectName("", "cv", at)
	assert.True(t, strings.HasPrefix(anon, "uploads/anonymous/"), anon)
	assert.True(t, strings.HasSuffix(anon, ".pdf"), anon)
	assert.NotEqual(t, anon, UploadObjectName("", "cv", at))
}
