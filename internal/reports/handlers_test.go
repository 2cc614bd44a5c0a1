package reports

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pratofit/server/internal/storage"
	"github.com/pratofit/server/internal/storage/memory"
)

func TestReportsHandlers(t *testing.T) {
	memStorage := memory.New()
	generator := NewGenerator(memStorage.GetDailyLogStorage(), memStorage.GetMealPlanStorage(), memStorage.GetRecipesStorage())
	service := NewService(memStorage.GetReportsStorage(), memStorage, generator, nil, 90, 900)
	handlers := NewHandlers(service)

	ctx := context.Background()
	profiles, _ := memStorage.ListProfiles(ctx)
	ownerID := profiles[0].ID

	// Seed a few logged days and one planned meal inside the report range.
	weight := 71.5
	memStorage.GetDailyLogStorage().UpsertLog(ctx, &storage.DailyLog{
		OwnerUserID: "default",
		ProfileID:   ownerID,
		Date:        "2024-04-01",
		WaterMl:     1800,
		SleepHours:  7.5,
		WeightKg:    &weight,
	})
	memStorage.GetDailyLogStorage().UpsertLog(ctx, &storage.DailyLog{
		OwnerUserID: "default",
		ProfileID:   ownerID,
		Date:        "2024-04-03",
		WaterMl:     2200,
		SleepHours:  8,
	})

	catalog, _, _ := memStorage.GetRecipesStorage().ListRecipes(ctx, "", "", 0, 0)
	if len(catalog) == 0 {
		t.Fatal("expected seeded recipe catalog")
	}
	recipeID := catalog[0].ID
	memStorage.GetMealPlanStorage().UpsertSlot(ctx, &storage.MealSlot{
		OwnerUserID: "default",
		ProfileID:   ownerID,
		Date:        "2024-04-02",
		MealType:    "lunch",
		RecipeID:    &recipeID,
	})

	var created ReportDTO

	t.Run("CreateReport", func(t *testing.T) {
		body, _ := json.Marshal(CreateReportRequest{
			ProfileID: ownerID,
			From:      "2024-04-01",
			To:        "2024-04-07",
		})
		httpReq := httptest.NewRequest("POST", "/v1/reports", bytes.NewReader(body))
		w := httptest.NewRecorder()

		handlers.HandleCreate(w, httpReq)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
		}

		json.NewDecoder(w.Body).Decode(&created)

		if created.Status != StatusReady {
			t.Errorf("Expected status ready, got %s", created.Status)
		}
		if created.SizeBytes == 0 {
			t.Error("Expected non-empty report")
		}
		if created.DownloadURL == "" {
			t.Error("Expected download URL")
		}
	})

	t.Run("DownloadPDF", func(t *testing.T) {
		httpReq := httptest.NewRequest("GET", "/v1/reports/"+created.ID.String()+"/download", nil)
		httpReq.SetPathValue("id", created.ID.String())
		w := httptest.NewRecorder()

		handlers.HandleDownload(w, httpReq)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}
		if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
			t.Errorf("Expected application/pdf, got %s", ct)
		}

		data, _ := io.ReadAll(w.Body)
		if !bytes.HasPrefix(data, []byte("%PDF")) {
			t.Error("Expected PDF magic bytes")
		}
	})

	t.Run("ListReports", func(t *testing.T) {
		httpReq := httptest.NewRequest("GET", "/v1/reports?profile_id="+ownerID.String(), nil)
		w := httptest.NewRecorder()

		handlers.HandleList(w, httpReq)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", w.Code)
		}

		var resp ReportsResponse
		json.NewDecoder(w.Body).Decode(&resp)

		if resp.Total < 1 || len(resp.Reports) < 1 {
			t.Fatalf("Expected at least 1 report, got total=%d len=%d", resp.Total, len(resp.Reports))
		}
	})

	t.Run("RangeTooLarge", func(t *testing.T) {
		body, _ := json.Marshal(CreateReportRequest{
			ProfileID: ownerID,
			From:      "2024-01-01",
			To:        "2024-12-31",
		})
		httpReq := httptest.NewRequest("POST", "/v1/reports", bytes.NewReader(body))
		w := httptest.NewRecorder()

		handlers.HandleCreate(w, httpReq)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
		if !strings.Contains(w.Body.String(), "range_too_large") {
			t.Errorf("Expected range_too_large code, got %s", w.Body.String())
		}
	})

	t.Run("InvertedRange", func(t *testing.T) {
		body, _ := json.Marshal(CreateReportRequest{
			ProfileID: ownerID,
			From:      "2024-04-07",
			To:        "2024-04-01",
		})
		httpReq := httptest.NewRequest("POST", "/v1/reports", bytes.NewReader(body))
		w := httptest.NewRecorder()

		handlers.HandleCreate(w, httpReq)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})

	t.Run("DeleteReport", func(t *testing.T) {
		httpReq := httptest.NewRequest("DELETE", "/v1/reports/"+created.ID.String(), nil)
		httpReq.SetPathValue("id", created.ID.String())
		w := httptest.NewRecorder()

		handlers.HandleDelete(w, httpReq)

		if w.Code != http.StatusNoContent {
			t.Fatalf("Expected status 204, got %d", w.Code)
		}

		httpReq = httptest.NewRequest("GET", "/v1/reports/"+created.ID.String()+"/download", nil)
		httpReq.SetPathValue("id", created.ID.String())
		w = httptest.NewRecorder()
		handlers.HandleDownload(w, httpReq)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status 404 after delete, got %d", w.Code)
		}
	})
}
