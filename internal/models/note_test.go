package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNoteID(t *testing.T) {
	now := time.Unix(1700000000, 0)
	assert.Equal(t, "u1_1700000000", NewNoteID("u1", now))
}

func TestAttachMedia_ReplacesSameType(t *testing.T) {
	n := &Note{}

	require.NoError(t, n.AttachMedia(Media{URI: "/tmp/a.jpg", Type: MediaTypeImage}))
	require.NoError(t, n.AttachMedia(Media{URI: "/tmp/v.mp4", Type: MediaTypeVideo}))
	require.NoError(t, n.AttachMedia(Media{URI: "/tmp/b.jpg", Type: MediaTypeImage}))

	media, err := n.Media()
	require.NoError(t, err)
	require.Len(t, media, 2)
	assert.Equal(t, "/tmp/b.jpg", media[0].URI)
	assert.Equal(t, MediaTypeImage, media[0].Type)
	assert.Equal(t, "/tmp/v.mp4", media[1].URI)
}

func TestMedia_EmptyList(t *testing.T) {
	n := &Note{}

	media, err := n.Media()
	require.NoError(t, err)
	assert.Nil(t, media)
}

func TestMediaListString_RoundTripEmpty(t *testing.T) {
	s, err := MediaListString(nil)
	require.NoError(t, err)
	assert.Empty(t, s)
}

func TestParseMediaList_Invalid(t *testing.T) {
	_, err := ParseMediaList("{not json")
	require.Error(t, err)
}

func TestMediaTypeExt(t *testing.T) {
	ext, err := MediaTypeImage.Ext()
	require.NoError(t, err)
	assert.Equal(t, ".jpg", ext)

	ext, err = MediaTypeVideo.Ext()
	require.NoError(t, err)
	assert.Equal(t, ".mp4", ext)

	_, err = MediaType("AUDIO").Ext()
	require.Error(t, err)
}

func TestStorageKey(t *testing.T) {
	key, err := MediaTypeImage.StorageKey("u1_1")
	require.NoError(t, err)
	assert.Equal(t, "notes_images/u1_1.jpg", key)

	key, err = MediaTypeVideo.StorageKey("u1_1")
	require.NoError(t, err)
	assert.Equal(t, "notes_videos/u1_1.mp4", key)
}
