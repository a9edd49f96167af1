package helper

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"math"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"

	"teecha_backend/internals/configs"
)

var ErrUnsupportedFormat = errors.New("unsupported image format")

/* =======================================================================
   WebP options (env driven, overridable per call)
======================================================================= */

type WebPOptions struct {
	MaxW        int
	MaxH        int
	TargetKB    int // 0 = single pass with Quality
	Quality     float32
	MinQ        float32
	MaxQ        float32
	ToleranceKB int
	Square      int // >0 = center crop to a Square x Square avatar
}

func DefaultWebPOptions() WebPOptions {
	return WebPOptions{
		MaxW:        configs.GetEnvInt("IMAGE_WEBP_MAX_W", 1600),
		MaxH:        configs.GetEnvInt("IMAGE_WEBP_MAX_H", 1600),
		TargetKB:    configs.GetEnvInt("IMAGE_WEBP_TARGET_KB", 0),
		Quality:     float32(configs.GetEnvInt("IMAGE_WEBP_QUALITY", 80)),
		MinQ:        45,
		MaxQ:        85,
		ToleranceKB: configs.GetEnvInt("IMAGE_WEBP_TOLERANCE_KB", 8),
	}
}

// AvatarWebPOptions crops to a square before encoding.
func AvatarWebPOptions() WebPOptions {
	o := DefaultWebPOptions()
	o.Square = configs.GetEnvInt("IMAGE_AVATAR_SIZE", 400)
	o.MaxW, o.MaxH = o.Square, o.Square
	return o
}

/* =======================================================================
   Decode (jpeg/png/webp) with MIME sniffing
======================================================================= */

func decodeImage(all []byte, filename string) (image.Image, error) {
	if len(all) == 0 {
		return nil, fmt.Errorf("empty file")
	}
	head := all
	if len(head) > 512 {
		head = head[:512]
	}
	kind := http.DetectContentType(head)
	if !strings.HasPrefix(kind, "image/") {
		kind = strings.ToLower(filepath.Ext(filename))
	}

	switch {
	case strings.Contains(kind, "jpeg"), kind == ".jpg":
		return jpeg.Decode(bytes.NewReader(all))
	case strings.Contains(kind, "png"):
		return png.Decode(bytes.NewReader(all))
	case strings.Contains(kind, "webp"):
		return webp.Decode(bytes.NewReader(all))
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, kind)
}

func downscaleIfNeeded(src image.Image, maxW, maxH int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if (maxW <= 0 || w <= maxW) && (maxH <= 0 || h <= maxH) {
		return src
	}
	scale := 1.0
	if maxW > 0 {
		scale = math.Min(scale, float64(maxW)/float64(w))
	}
	if maxH > 0 {
		scale = math.Min(scale, float64(maxH)/float64(h))
	}
	nw := int(math.Max(1, math.Round(float64(w)*scale)))
	nh := int(math.Max(1, math.Round(float64(h)*scale)))
	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

// encodeToWebP binary-searches quality when a target size is set.
func encodeToWebP(img image.Image, opt WebPOptions) ([]byte, error) {
	encodeQ := func(q float32) ([]byte, error) {
		buf := new(bytes.Buffer)
		if err := webp.Encode(buf, img, &webp.Options{Quality: q}); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}

	if opt.TargetKB <= 0 {
		q := opt.Quality
		if q <= 0 {
			q = 80
		}
		return encodeQ(q)
	}

	limit := (opt.TargetKB + opt.ToleranceKB) * 1024
	low, high := opt.MinQ, opt.MaxQ
	if low <= 0 {
		low = 45
	}
	if high <= low {
		high = 85
	}

	var best []byte
	for i := 0; i < 7; i++ {
		q := (low + high) / 2
		data, err := encodeQ(q)
		if err != nil {
			return nil, err
		}
		if len(data) <= limit {
			best = data
			low = q
		} else {
			high = q
		}
	}
	if best == nil {
		return encodeQ(low)
	}
	return best, nil
}

// ConvertToWebP reads, decodes, optionally crops/resizes and re-encodes to WebP.
func ConvertToWebP(r io.Reader, filename string, opt WebPOptions) ([]byte, error) {
	all, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	img, err := decodeImage(all, filename)
	if err != nil {
		return nil, err
	}
	if opt.Square > 0 {
		img = imaging.Fill(img, opt.Square, opt.Square, imaging.Center, imaging.Lanczos)
	} else {
		img = downscaleIfNeeded(img, opt.MaxW, opt.MaxH)
	}
	return encodeToWebP(img, opt)
}
