package dailylog

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/pratofit/server/internal/storage"
	"github.com/pratofit/server/internal/storage/memory"
)

func newTestHandler() *Handler {
	store := memory.New()
	return NewHandler(NewService(store.GetDailyLogStorage(), store))
}

func postJSON(t *testing.T, handler http.HandlerFunc, url string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler(w, req)

	return w
}

func decodeLog(t *testing.T, w *httptest.ResponseRecorder) DailyLogDTO {
	t.Helper()

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var log DailyLogDTO
	if err := json.NewDecoder(w.Body).Decode(&log); err != nil {
		t.Fatalf("failed to decode log: %v", err)
	}

	return log
}

func TestHandleWater_AccumulatesDeltas(t *testing.T) {
	handler := newTestHandler()
	profileID := uuid.NewString()

	postJSON(t, handler.HandleWater, "/v1/log/water", WaterRequest{
		ProfileID: profileID, Date: "2024-01-01", DeltaMl: 250,
	})
	w := postJSON(t, handler.HandleWater, "/v1/log/water", WaterRequest{
		ProfileID: profileID, Date: "2024-01-01", DeltaMl: 500,
	})

	log := decodeLog(t, w)
	if log.WaterMl != 750 {
		t.Errorf("expected 750 ml, got %d", log.WaterMl)
	}
}

func TestHandleWater_NegativeDeltaClampsAtZero(t *testing.T) {
	handler := newTestHandler()
	profileID := uuid.NewString()

	w := postJSON(t, handler.HandleWater, "/v1/log/water", WaterRequest{
		ProfileID: profileID, Date: "2024-01-01", DeltaMl: -500,
	})

	log := decodeLog(t, w)
	if log.WaterMl != 0 {
		t.Errorf("expected water clamped to 0, got %d", log.WaterMl)
	}
}

func TestHandleSleep_OverwritesPreviousValue(t *testing.T) {
	handler := newTestHandler()
	profileID := uuid.NewString()

	postJSON(t, handler.HandleSleep, "/v1/log/sleep", SleepRequest{
		ProfileID: profileID, Date: "2024-01-01", Hours: 5,
	})
	w := postJSON(t, handler.HandleSleep, "/v1/log/sleep", SleepRequest{
		ProfileID: profileID, Date: "2024-01-01", Hours: 3,
	})

	log := decodeLog(t, w)
	if log.SleepHours != 3 {
		t.Errorf("expected sleep 3 hours after overwrite, got %v", log.SleepHours)
	}
}

func TestHandleSleep_NegativeClampsAtZero(t *testing.T) {
	handler := newTestHandler()

	w := postJSON(t, handler.HandleSleep, "/v1/log/sleep", SleepRequest{
		ProfileID: uuid.NewString(), Date: "2024-01-01", Hours: -2,
	})

	log := decodeLog(t, w)
	if log.SleepHours != 0 {
		t.Errorf("expected sleep clamped to 0, got %v", log.SleepHours)
	}
}

func TestHandleWeight_LastWriteWins(t *testing.T) {
	handler := newTestHandler()
	profileID := uuid.NewString()

	postJSON(t, handler.HandleWeight, "/v1/log/weight", WeightRequest{
		ProfileID: profileID, Date: "2024-01-01", WeightKg: 71.5,
	})
	w := postJSON(t, handler.HandleWeight, "/v1/log/weight", WeightRequest{
		ProfileID: profileID, Date: "2024-01-01", WeightKg: 70.8,
	})

	log := decodeLog(t, w)
	if log.WeightKg == nil || *log.WeightKg != 70.8 {
		t.Errorf("expected weight 70.8, got %v", log.WeightKg)
	}
}

func TestHandleWeight_RejectsNonPositive(t *testing.T) {
	handler := newTestHandler()

	w := postJSON(t, handler.HandleWeight, "/v1/log/weight", WeightRequest{
		ProfileID: uuid.NewString(), Date: "2024-01-01", WeightKg: 0,
	})

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

func TestHandleRange_ForwardFillsWeight(t *testing.T) {
	handler := newTestHandler()
	profileID := uuid.NewString()

	postJSON(t, handler.HandleWeight, "/v1/log/weight", WeightRequest{
		ProfileID: profileID, Date: "2024-01-01", WeightKg: 70,
	})
	postJSON(t, handler.HandleWeight, "/v1/log/weight", WeightRequest{
		ProfileID: profileID, Date: "2024-01-04", WeightKg: 69,
	})

	req := httptest.NewRequest(http.MethodGet,
		"/v1/log/range?profile_id="+profileID+"&from=2024-01-01&to=2024-01-05", nil)
	w := httptest.NewRecorder()

	handler.HandleRange(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp RangeResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(resp.Days) != 5 {
		t.Fatalf("expected 5 days, got %d", len(resp.Days))
	}

	effective := func(e DayEntryDTO) float64 {
		if e.WeightKg != nil {
			return *e.WeightKg
		}
		if e.FallbackWeight != nil {
			return *e.FallbackWeight
		}
		return 0
	}

	want := []float64{70, 70, 70, 69, 69}
	for i, expected := range want {
		if got := effective(resp.Days[i]); got != expected {
			t.Errorf("day %s: expected effective weight %v, got %v", resp.Days[i].Date, expected, got)
		}
	}

	// Only days 0 and 3 have recorded weights; the rest are fills.
	if resp.Days[1].WeightKg != nil {
		t.Error("day 2 should not have a recorded weight")
	}
	if resp.Days[1].FallbackWeight == nil {
		t.Error("day 2 should carry a fallback weight")
	}
}

func TestHandleRange_FillReachesBeforeRangeStart(t *testing.T) {
	handler := newTestHandler()
	profileID := uuid.NewString()

	postJSON(t, handler.HandleWeight, "/v1/log/weight", WeightRequest{
		ProfileID: profileID, Date: "2023-12-28", WeightKg: 72,
	})

	req := httptest.NewRequest(http.MethodGet,
		"/v1/log/range?profile_id="+profileID+"&from=2024-01-01&to=2024-01-02", nil)
	w := httptest.NewRecorder()

	handler.HandleRange(w, req)

	var resp RangeResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Days[0].FallbackWeight == nil || *resp.Days[0].FallbackWeight != 72 {
		t.Errorf("expected fallback weight 72 from before range, got %v", resp.Days[0].FallbackWeight)
	}
}

func TestHandleRange_FallbackWeightSeedsEmptyHistory(t *testing.T) {
	handler := newTestHandler()
	profileID := uuid.NewString()

	req := httptest.NewRequest(http.MethodGet,
		"/v1/log/range?profile_id="+profileID+"&from=2024-01-01&to=2024-01-03&fallback_weight=68.5", nil)
	w := httptest.NewRecorder()

	handler.HandleRange(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp RangeResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(resp.Days) != 3 {
		t.Fatalf("expected 3 days, got %d", len(resp.Days))
	}
	for _, day := range resp.Days {
		if day.WeightKg != nil {
			t.Errorf("day %s should have no recorded weight", day.Date)
		}
		if day.FallbackWeight == nil || *day.FallbackWeight != 68.5 {
			t.Errorf("day %s: expected fallback weight 68.5, got %v", day.Date, day.FallbackWeight)
		}
	}
}

func TestHandleRange_ProfileWeightSeedsEmptyHistory(t *testing.T) {
	store := memory.New()
	handler := NewHandler(NewService(store.GetDailyLogStorage(), store))

	profile := &storage.Profile{OwnerUserID: "default", Name: "Ana", WeightKg: 71}
	if err := store.CreateProfile(context.Background(), profile); err != nil {
		t.Fatalf("create profile: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet,
		"/v1/log/range?profile_id="+profile.ID.String()+"&from=2024-01-01&to=2024-01-02", nil)
	w := httptest.NewRecorder()

	handler.HandleRange(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp RangeResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	for _, day := range resp.Days {
		if day.FallbackWeight == nil || *day.FallbackWeight != 71 {
			t.Errorf("day %s: expected profile weight 71 as fallback, got %v", day.Date, day.FallbackWeight)
		}
	}
}

func TestHandleRange_RejectsNonPositiveFallbackWeight(t *testing.T) {
	handler := newTestHandler()
	profileID := uuid.NewString()

	req := httptest.NewRequest(http.MethodGet,
		"/v1/log/range?profile_id="+profileID+"&from=2024-01-01&to=2024-01-02&fallback_weight=-2", nil)
	w := httptest.NewRecorder()

	handler.HandleRange(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

func TestHandleRange_ZeroFillsWaterAndSleep(t *testing.T) {
	handler := newTestHandler()
	profileID := uuid.NewString()

	postJSON(t, handler.HandleWater, "/v1/log/water", WaterRequest{
		ProfileID: profileID, Date: "2024-01-02", DeltaMl: 300,
	})

	req := httptest.NewRequest(http.MethodGet,
		"/v1/log/range?profile_id="+profileID+"&from=2024-01-01&to=2024-01-03", nil)
	w := httptest.NewRecorder()

	handler.HandleRange(w, req)

	var resp RangeResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Days[0].WaterMl != 0 || resp.Days[0].SleepHours != 0 {
		t.Error("expected empty day to zero-fill water and sleep")
	}
	if resp.Days[1].WaterMl != 300 {
		t.Errorf("expected 300 ml on logged day, got %d", resp.Days[1].WaterMl)
	}
}

func TestHandleRange_InvalidOrder(t *testing.T) {
	handler := newTestHandler()

	req := httptest.NewRequest(http.MethodGet,
		"/v1/log/range?profile_id="+uuid.NewString()+"&from=2024-01-05&to=2024-01-01", nil)
	w := httptest.NewRecorder()

	handler.HandleRange(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}
