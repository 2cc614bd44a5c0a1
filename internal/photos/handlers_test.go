package photos

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pratofit/server/internal/dailylog"
	"github.com/pratofit/server/internal/storage/memory"
)

func newTestPNG(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode test png: %v", err)
	}

	return buf.Bytes()
}

func uploadRequest(t *testing.T, profileID, date string, filename, contentType string, data []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	writer.WriteField("profile_id", profileID)
	writer.WriteField("date", date)

	part, err := writer.CreatePart(map[string][]string{
		"Content-Disposition": {`form-data; name="file"; filename="` + filename + `"`},
		"Content-Type":        {contentType},
	})
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	part.Write(data)
	writer.Close()

	req := httptest.NewRequest("POST", "/v1/photos", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return req
}

func TestPhotosHandlers(t *testing.T) {
	memStorage := memory.New()
	logs := dailylog.NewService(memStorage.GetDailyLogStorage(), memStorage)
	service := NewService(memStorage.GetPhotosStorage(), memStorage, logs, nil, 10, "image/jpeg,image/png,image/heic", 900)
	handlers := NewHandlers(service)

	profiles, _ := memStorage.ListProfiles(context.Background())
	ownerID := profiles[0].ID

	t.Run("UploadNormalizesToSquareJPEG", func(t *testing.T) {
		req := uploadRequest(t, ownerID.String(), "2024-03-01", "front.png", "image/png", newTestPNG(t, 400, 300))
		w := httptest.NewRecorder()

		handlers.HandleUpload(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
		}

		var dto PhotoDTO
		json.NewDecoder(w.Body).Decode(&dto)

		if dto.ContentType != "image/jpeg" {
			t.Errorf("Expected normalized content type image/jpeg, got %s", dto.ContentType)
		}
		if dto.Date != "2024-03-01" {
			t.Errorf("Expected date 2024-03-01, got %s", dto.Date)
		}

		// Download and verify the stored image is the square canvas
		dlReq := httptest.NewRequest("GET", "/v1/photos/"+dto.ID.String()+"/download", nil)
		dlReq.SetPathValue("id", dto.ID.String())
		dlW := httptest.NewRecorder()
		handlers.HandleDownload(dlW, dlReq)

		if dlW.Code != http.StatusOK {
			t.Fatalf("Expected status 200 on download, got %d", dlW.Code)
		}

		data, _ := io.ReadAll(dlW.Body)
		img, err := jpeg.Decode(bytes.NewReader(data))
		if err != nil {
			t.Fatalf("stored photo is not a decodable JPEG: %v", err)
		}
		if b := img.Bounds(); b.Dx() != 1080 || b.Dy() != 1080 {
			t.Errorf("Expected 1080x1080 canvas, got %dx%d", b.Dx(), b.Dy())
		}
	})

	t.Run("UploadLinksDailyLog", func(t *testing.T) {
		req := uploadRequest(t, ownerID.String(), "2024-03-02", "side.png", "image/png", newTestPNG(t, 100, 100))
		w := httptest.NewRecorder()

		handlers.HandleUpload(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
		}

		var dto PhotoDTO
		json.NewDecoder(w.Body).Decode(&dto)

		log, ok, err := memStorage.GetDailyLogStorage().GetLog(context.Background(), "default", ownerID, "2024-03-02")
		if err != nil || !ok {
			t.Fatalf("expected daily log for 2024-03-02, ok=%v err=%v", ok, err)
		}
		if log.PhotoID == nil || *log.PhotoID != dto.ID {
			t.Errorf("Expected daily log photo_id %s, got %v", dto.ID, log.PhotoID)
		}
	})

	t.Run("UndecodableImageStoredAsUploaded", func(t *testing.T) {
		raw := []byte("fake heic data")
		req := uploadRequest(t, ownerID.String(), "2024-03-03", "photo.heic", "image/heic", raw)
		w := httptest.NewRecorder()

		handlers.HandleUpload(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
		}

		var dto PhotoDTO
		json.NewDecoder(w.Body).Decode(&dto)

		if dto.ContentType != "image/heic" {
			t.Errorf("Expected original content type image/heic, got %s", dto.ContentType)
		}

		dlReq := httptest.NewRequest("GET", "/v1/photos/"+dto.ID.String()+"/download", nil)
		dlReq.SetPathValue("id", dto.ID.String())
		dlW := httptest.NewRecorder()
		handlers.HandleDownload(dlW, dlReq)

		downloaded, _ := io.ReadAll(dlW.Body)
		if !bytes.Equal(downloaded, raw) {
			t.Errorf("Downloaded data mismatch for pass-through upload")
		}
	})

	t.Run("RejectsUnsupportedMime", func(t *testing.T) {
		req := uploadRequest(t, ownerID.String(), "2024-03-04", "notes.txt", "text/plain", []byte("hello"))
		w := httptest.NewRecorder()

		handlers.HandleUpload(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400 for unsupported mime, got %d", w.Code)
		}
	})

	t.Run("RejectsBadDate", func(t *testing.T) {
		req := uploadRequest(t, ownerID.String(), "03/05/2024", "front.png", "image/png", newTestPNG(t, 10, 10))
		w := httptest.NewRecorder()

		handlers.HandleUpload(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400 for bad date, got %d", w.Code)
		}
	})

	t.Run("ListNewestFirst", func(t *testing.T) {
		httpReq := httptest.NewRequest("GET", "/v1/photos?profile_id="+ownerID.String(), nil)
		w := httptest.NewRecorder()

		handlers.HandleList(w, httpReq)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", w.Code)
		}

		var resp PhotosResponse
		json.NewDecoder(w.Body).Decode(&resp)

		if len(resp.Photos) < 3 {
			t.Fatalf("Expected at least 3 photos, got %d", len(resp.Photos))
		}
		for i := 1; i < len(resp.Photos); i++ {
			if resp.Photos[i-1].Date < resp.Photos[i].Date {
				t.Errorf("Expected newest first ordering, got %s before %s", resp.Photos[i-1].Date, resp.Photos[i].Date)
			}
		}
	})

	t.Run("DeletePhoto", func(t *testing.T) {
		req := uploadRequest(t, ownerID.String(), "2024-03-06", "gone.png", "image/png", newTestPNG(t, 50, 50))
		w := httptest.NewRecorder()
		handlers.HandleUpload(w, req)

		var dto PhotoDTO
		json.NewDecoder(w.Body).Decode(&dto)

		delReq := httptest.NewRequest("DELETE", "/v1/photos/"+dto.ID.String(), nil)
		delReq.SetPathValue("id", dto.ID.String())
		delW := httptest.NewRecorder()
		handlers.HandleDelete(delW, delReq)

		if delW.Code != http.StatusNoContent {
			t.Errorf("Expected status 204, got %d", delW.Code)
		}

		dlReq := httptest.NewRequest("GET", "/v1/photos/"+dto.ID.String()+"/download", nil)
		dlReq.SetPathValue("id", dto.ID.String())
		dlW := httptest.NewRecorder()
		handlers.HandleDownload(dlW, dlReq)

		if dlW.Code != http.StatusNotFound {
			t.Errorf("Expected status 404 after delete, got %d", dlW.Code)
		}
	})
}
