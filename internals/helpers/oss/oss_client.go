package helper

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"mime"
	"mime/multipart"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"

	"teecha_backend/internals/configs"
	helper "teecha_backend/internals/helpers"
)

const MaxUploadSize = int64(5 * 1024 * 1024)

var ErrFileTooLarge = errors.New("file too large")

// ImageHost stores an uploaded image and returns its public URL.
type ImageHost interface {
	UploadImage(ctx context.Context, fh *multipart.FileHeader, dir string, opt WebPOptions) (string, error)
}

/* =======================================================================
   OSS service
======================================================================= */

type OSSService struct {
	Client     *oss.Client
	Bucket     *oss.Bucket
	Endpoint   string
	BucketName string
	PublicBase string
	Prefix     string
}

func NewOSSServiceFromEnv(prefix string) (*OSSService, error) {
	endpoint := configs.GetEnv("ALI_OSS_ENDPOINT")
	ak := configs.GetEnv("ALI_OSS_ACCESS_KEY")
	sk := configs.GetEnv("ALI_OSS_SECRET_KEY")
	bucketName := configs.GetEnv("ALI_OSS_BUCKET")
	if endpoint == "" || ak == "" || sk == "" || bucketName == "" {
		return nil, fmt.Errorf("missing env: ALI_OSS_ENDPOINT/ACCESS_KEY/SECRET_KEY/BUCKET")
	}

	client, err := oss.New(endpoint, ak, sk)
	if err != nil {
		return nil, fmt.Errorf("oss.New: %w", err)
	}
	bkt, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("client.Bucket: %w", err)
	}

	return &OSSService{
		Client:     client,
		Bucket:     bkt,
		Endpoint:   endpoint,
		BucketName: bucketName,
		PublicBase: strings.TrimRight(configs.GetEnv("ALI_OSS_PUBLIC_BASE"), "/"),
		Prefix:     strings.Trim(prefix, "/"),
	}, nil
}

var (
	defaultHost     ImageHost
	defaultHostErr  error
	defaultHostOnce sync.Once
)

// DefaultImageHost lazily builds the OSS service from env.
func DefaultImageHost() (ImageHost, error) {
	defaultHostOnce.Do(func() {
		svc, err := NewOSSServiceFromEnv("teecha")
		if err != nil {
			log.Printf("[OSS] image host disabled: %v", err)
			defaultHostErr = err
			return
		}
		defaultHost = svc
	})
	return defaultHost, defaultHostErr
}

// UploadImage recompresses to WebP and puts the object under dir.
func (s *OSSService) UploadImage(ctx context.Context, fh *multipart.FileHeader, dir string, opt WebPOptions) (string, error) {
	if fh == nil {
		return "", fmt.Errorf("nil file header")
	}
	if fh.Size > MaxUploadSize {
		return "", fmt.Errorf("%w (max %d bytes)", ErrFileTooLarge, MaxUploadSize)
	}
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open file: %w", err)
	}
	defer src.Close()

	data, err := ConvertToWebP(src, fh.Filename, opt)
	if err != nil {
		return "", err
	}

	key := s.BuildObjectKey(dir, strings.TrimSuffix(fh.Filename, filepath.Ext(fh.Filename))+".webp")
	err = s.Bucket.PutObject(key, bytes.NewReader(data),
		oss.WithContext(ctx),
		oss.ContentType("image/webp"),
		oss.ContentDisposition("inline"),
		oss.CacheControl("public, max-age=31536000, immutable"),
	)
	if err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}
	return s.PublicURL(key), nil
}

func (s *OSSService) DeleteObject(ctx context.Context, key string) error {
	return s.Bucket.DeleteObject(key, oss.WithContext(ctx))
}

func (s *OSSService) PublicURL(key string) string {
	if key == "" {
		return ""
	}
	if s.PublicBase != "" {
		return s.PublicBase + "/" + key
	}
	end := strings.TrimPrefix(strings.TrimPrefix(s.Endpoint, "https://"), "http://")
	return fmt.Sprintf("https://%s.%s/%s", s.BucketName, end, key)
}

// BuildObjectKey: <prefix>/<dir>/<slug>_<yyyymmdd_hhmmss>_<rand><ext>
func (s *OSSService) BuildObjectKey(dir, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	base := helper.Slugify(strings.TrimSuffix(filename, ext), 40)
	if base == "" {
		base = "image"
	}

	parts := make([]string, 0, 3)
	for _, p := range []string{s.Prefix, strings.Trim(dir, "/")} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	name := fmt.Sprintf("%s_%s_%s%s", base, time.Now().Format("20060102_150405"), randHex(3), ext)
	return strings.Join(append(parts, name), "/")
}

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func init() {
	_ = mime.AddExtensionType(".webp", "image/webp")
}
