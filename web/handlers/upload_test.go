package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// multipartCSV builds a multipart body with the CSV payload under the given
// field name.
func multipartCSV(t *testing.T, field, payload string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile(field, "people.csv")
	require.NoError(t, err)
	_, err = fw.Write([]byte(payload))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestUpload_NoFile(t *testing.T) {
	h, _ := newTestHandlers(t, nil)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("note", "no file here"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	h.Upload(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpload_NotMultipart(t *testing.T) {
	h, _ := newTestHandlers(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/upload", bytes.NewBufferString("name\nCryptoGame\n"))
	req.Header.Set("Content-Type", "text/csv")
	rec := httptest.NewRecorder()
	h.Upload(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpload_EndToEnd(t *testing.T) {
	h, store := newTestHandlers(t, nil)

	csv := "name,category,p2e_score\n" +
		"CryptoGame,Gaming,8.5\n" +
		"ArtNFT,Marketplace,3\n" +
		"MetaWorld,Metaverse,7.2\n"
	body, contentType := multipartCSV(t, "file", csv)

	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.Upload(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp UploadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.ParsedRows)
	assert.Equal(t, 3, resp.TotalUpserted)
	assert.Equal(t, 3, resp.DBCount)

	people, err := store.FindByName(req.Context(), "MetaWorld", 10)
	require.NoError(t, err)
	require.Len(t, people, 1)
	assert.Equal(t, 7.2, people[0].P2EScore)
}

func TestUpload_ReuploadReportsOnlyChanges(t *testing.T) {
	h, _ := newTestHandlers(t, nil)

	csv := "name,category\nCryptoGame,Gaming\nArtNFT,Marketplace\n"

	body, contentType := multipartCSV(t, "file", csv)
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.Upload(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	body, contentType = multipartCSV(t, "file", csv)
	req = httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec = httptest.NewRecorder()
	h.Upload(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp UploadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.ParsedRows)
	assert.Equal(t, 0, resp.TotalUpserted)
	assert.Equal(t, 2, resp.DBCount)
}

func TestUpload_WrongFieldName(t *testing.T) {
	h, _ := newTestHandlers(t, nil)

	body, contentType := multipartCSV(t, "document", "name\nCryptoGame\n")
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.Upload(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
