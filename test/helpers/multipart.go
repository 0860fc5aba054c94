package helpers

import (
	"bytes"
	"image"
	"image/png"
	"mime"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/require"
)

// UploadFile - файл для multipart-запроса
type UploadFile struct {
	Field   string
	Name    string
	Content []byte
}

// MultipartBody собирает тело multipart/form-data и возвращает его Content-Type
func MultipartBody(t *testing.T, fields map[string]string, file *UploadFile) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if file != nil {
		part, err := w.CreateFormFile(file.Field, file.Name)
		require.NoError(t, err)
		_, err = part.Write(file.Content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

// FileHeader возвращает *multipart.FileHeader так же, как его видит gin после разбора формы
func FileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()

	body, contentType := MultipartBody(t, nil, &UploadFile{Field: "arquivo", Name: name, Content: content})
	_, params, err := mime.ParseMediaType(contentType)
	require.NoError(t, err)

	form, err := multipart.NewReader(body, params["boundary"]).ReadForm(64 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	files := form.File["arquivo"]
	require.Len(t, files, 1)
	return files[0]
}

// PNGBytes - однотонная картинка w x h
func PNGBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0x80
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}
