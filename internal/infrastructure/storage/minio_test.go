package storage

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRewritePublicURL(t *testing.T) {
	u, err := url.Parse("http://minio:9000/meeting-notes/uploads/abc/a.mp3?X-Amz-Signature=xyz")
	require.NoError(t, err)

	assert.Equal(t, u.String(), rewritePublicURL(u, ""))
	assert.Equal(t,
		"https://files.example.com/meeting-notes/uploads/abc/a.mp3?X-Amz-Signature=xyz",
		rewritePublicURL(u, "https://files.example.com"))
}
