package storage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// MaxImageSize caps a single upload.
const MaxImageSize = 5 << 20

// Kind groups uploads by what they decorate.
type Kind string

const (
	KindLogo       Kind = "logo"
	KindBackground Kind = "background"
	KindProgram    Kind = "program"
)

var (
	ErrUnsupportedKind  = errors.New("unsupported upload kind")
	ErrUnsupportedImage = errors.New("only jpeg, png, gif, webp and svg images are accepted")
	ErrTooLarge         = fmt.Errorf("image larger than %d bytes", MaxImageSize)
)

// ParseKind accepts the kind names used by the admin form.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindLogo, KindBackground, KindProgram:
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedKind, s)
}

type Storage interface {
	// SaveImage stores the upload and returns the URL the player loads it from.
	SaveImage(kind Kind, fileHeader *multipart.FileHeader) (string, error)
}

type LocalStorage struct {
	uploadDir string
	publicURL string
}

type SpacesStorage struct {
	client s3iface.S3API
	bucket string
	cdnURL string
}

// NewLocalStorage writes under uploadDir; files are served at publicURL.
func NewLocalStorage(uploadDir, publicURL string) *LocalStorage {
	return &LocalStorage{uploadDir: uploadDir, publicURL: strings.TrimSuffix(publicURL, "/")}
}

func NewSpacesStorage(endpoint, region, bucket, cdnURL, accessKey, secretKey string) (*SpacesStorage, error) {
	config := &aws.Config{
		Credentials:      credentials.NewStaticCredentials(accessKey, secretKey, ""),
		Endpoint:         aws.String(endpoint),
		Region:           aws.String(region),
		S3ForcePathStyle: aws.Bool(false),
	}

	sess, err := session.NewSession(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &SpacesStorage{
		client: s3.New(sess),
		bucket: bucket,
		cdnURL: cdnURL,
	}, nil
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// normalizeFilename creates a unique, normalized filename without spaces
func normalizeFilename(originalFilename string) string {
	ext := strings.ToLower(filepath.Ext(originalFilename))
	baseName := strings.TrimSuffix(filepath.Base(originalFilename), filepath.Ext(originalFilename))

	baseName = strings.ReplaceAll(baseName, " ", "_")
	baseName = unsafeChars.ReplaceAllString(baseName, "")
	if baseName == "" {
		baseName = "image"
	}

	timestamp := time.Now().Format("20060102_150405")
	return fmt.Sprintf("%s_%s_%s%s", baseName, timestamp, uuid.NewString()[:8], ext)
}

// checkImage validates size and extension and returns the content type.
func checkImage(kind Kind, fileHeader *multipart.FileHeader) (string, error) {
	if _, err := ParseKind(string(kind)); err != nil {
		return "", err
	}
	if fileHeader.Size > MaxImageSize {
		return "", ErrTooLarge
	}
	contentType := getContentType(fileHeader.Filename)
	if contentType == "" {
		return "", ErrUnsupportedImage
	}
	return contentType, nil
}

func (ls *LocalStorage) SaveImage(kind Kind, fileHeader *multipart.FileHeader) (string, error) {
	if _, err := checkImage(kind, fileHeader); err != nil {
		return "", err
	}
	normalizedFilename := normalizeFilename(fileHeader.Filename)
	log.Debug().Str("original", fileHeader.Filename).Str("normalized", normalizedFilename).Msg("image upload normalized")

	dir := filepath.Join(ls.uploadDir, string(kind))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(dir, normalizedFilename))
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	return ls.publicURL + "/" + path.Join(string(kind), normalizedFilename), nil
}

func (ss *SpacesStorage) SaveImage(kind Kind, fileHeader *multipart.FileHeader) (string, error) {
	contentType, err := checkImage(kind, fileHeader)
	if err != nil {
		return "", err
	}
	normalizedFilename := normalizeFilename(fileHeader.Filename)
	log.Debug().Str("original", fileHeader.Filename).Str("normalized", normalizedFilename).Msg("image upload normalized")

	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	key := path.Join("uploads", string(kind), normalizedFilename)

	_, err = ss.client.PutObject(&s3.PutObjectInput{
		Bucket:      aws.String(ss.bucket),
		Key:         aws.String(key),
		Body:        src,
		ContentType: aws.String(contentType),
		ACL:         aws.String("public-read"),
	})
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to upload image to Spaces")
		return "", fmt.Errorf("failed to upload to Spaces: %w", err)
	}

	return fmt.Sprintf("%s/%s", strings.TrimSuffix(ss.cdnURL, "/"), key), nil
}

// getContentType returns "" for anything that is not an accepted image.
func getContentType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".svg":
		return "image/svg+xml"
	default:
		return ""
	}
}
