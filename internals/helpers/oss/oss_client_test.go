package helper

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildObjectKeyAndPublicURL(t *testing.T) {
	s := &OSSService{Endpoint: "https://oss-ap-southeast-5.aliyuncs.com", BucketName: "teecha", Prefix: "teecha"}

	key := s.BuildObjectKey("/avatars/abc/", "My Photo.WEBP")
	assert.True(t, strings.HasPrefix(key, "teecha/avatars/abc/my-photo_"), key)
	assert.True(t, strings.HasSuffix(key, ".webp"), key)

	assert.Equal(t, "https://teecha.oss-ap-southeast-5.aliyuncs.com/k.webp", s.PublicURL("k.webp"))
	s.PublicBase = "https://cdn.teecha.test"
	assert.Equal(t, "https://cdn.teecha.test/k.webp", s.PublicURL("k.webp"))
	assert.Equal(t, "", s.PublicURL(""))
}

func TestDecodeImageRejectsUnknownFormats(t *testing.T) {
	_, err := decodeImage([]byte("GIF89a not really"), "x.gif")
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))

	_, err = decodeImage(nil, "x.png")
	assert.Error(t, err)
}

func TestDecodeAndDownscale(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 400, 200))
	src.Set(1, 1, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, src))

	img, err := decodeImage(buf.Bytes(), "x.png")
	require.NoError(t, err)
	assert.Equal(t, 400, img.Bounds().Dx())

	small := downscaleIfNeeded(img, 100, 100)
	assert.Equal(t, 100, small.Bounds().Dx())
	assert.Equal(t, 50, small.Bounds().Dy())

	same := downscaleIfNeeded(img, 0, 0)
	assert.Equal(t, img, same)
}
