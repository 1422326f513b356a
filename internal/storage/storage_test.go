package storage

import (
	"bytes"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileHeader(t *testing.T, name string, body []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(body)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })
	return form.File["file"][0]
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind(" Logo ")
	require.NoError(t, err)
	assert.Equal(t, KindLogo, k)

	_, err = ParseKind("avatar")
	assert.ErrorIs(t, err, ErrUnsupportedKind)
}

func TestNormalizeFilename(t *testing.T) {
	name := normalizeFilename("../My Show (final).PNG")
	assert.True(t, strings.HasPrefix(name, "My_Show_final_"), name)
	assert.True(t, strings.HasSuffix(name, ".png"), name)
	assert.NotContains(t, name, "/")

	assert.True(t, strings.HasPrefix(normalizeFilename("???.jpg"), "image_"))
}

func TestLocalSaveImage(t *testing.T) {
	dir := t.TempDir()
	ls := NewLocalStorage(dir, "/uploads/")

	url, err := ls.SaveImage(KindBackground, fileHeader(t, "sky.jpg", []byte("jpeg-bytes")))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/background/sky_"), url)

	saved := filepath.Join(dir, "background", filepath.Base(url))
	body, err := os.ReadFile(saved)
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(body))
}

func TestLocalSaveImageRejects(t *testing.T) {
	ls := NewLocalStorage(t.TempDir(), "/uploads")

	_, err := ls.SaveImage(KindLogo, fileHeader(t, "clip.mp4", []byte("x")))
	assert.ErrorIs(t, err, ErrUnsupportedImage)

	_, err = ls.SaveImage("avatar", fileHeader(t, "a.png", []byte("x")))
	assert.ErrorIs(t, err, ErrUnsupportedKind)

	big := fileHeader(t, "big.png", []byte("x"))
	big.Size = MaxImageSize + 1
	_, err = ls.SaveImage(KindLogo, big)
	assert.ErrorIs(t, err, ErrTooLarge)
}

type fakeS3 struct {
	s3iface.S3API
	input *s3.PutObjectInput
	body  []byte
}

func (f *fakeS3) PutObject(in *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
	f.input = in
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, nil
}

func TestSpacesSaveImage(t *testing.T) {
	fake := &fakeS3{}
	ss := &SpacesStorage{client: fake, bucket: "radio", cdnURL: "https://cdn.example.com/"}

	url, err := ss.SaveImage(KindProgram, fileHeader(t, "jazz night.webp", []byte("webp")))
	require.NoError(t, err)

	key := aws.StringValue(fake.input.Key)
	assert.True(t, strings.HasPrefix(key, "uploads/program/jazz_night_"), key)
	assert.Equal(t, "https://cdn.example.com/"+key, url)
	assert.Equal(t, "image/webp", aws.StringValue(fake.input.ContentType))
	assert.Equal(t, "public-read", aws.StringValue(fake.input.ACL))
	assert.Equal(t, "radio", aws.StringValue(fake.input.Bucket))
	assert.Equal(t, "webp", string(fake.body))
}
