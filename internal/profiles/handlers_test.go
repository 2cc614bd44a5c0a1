package profiles

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pratofit/server/internal/storage/memory"
)

func newTestHandler() *Handler {
	return NewHandler(NewService(memory.New()))
}

func TestHandleList_SeedsOwnerProfile(t *testing.T) {
	handler := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/v1/profiles", nil)
	w := httptest.NewRecorder()

	handler.HandleList(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	var resp ProfilesResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(resp.Profiles) != 1 {
		t.Errorf("expected 1 profile, got %d", len(resp.Profiles))
	}
}

func TestHandleCreate_ComputesGoals(t *testing.T) {
	handler := newTestHandler()

	reqBody := CreateProfileRequest{
		Name:          "Alex",
		WeightKg:      70,
		HeightCm:      175,
		Age:           25,
		Sex:           "male",
		ActivityLevel: "moderate",
		GoalIntent:    "maintain",
	}
	body, _ := json.Marshal(reqBody)

	req := httptest.NewRequest(http.MethodPost, "/v1/profiles", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.HandleCreate(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d. Body: %s", w.Code, w.Body.String())
	}

	var profile ProfileDTO
	if err := json.NewDecoder(w.Body).Decode(&profile); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if profile.CalorieGoal != 2638 {
		t.Errorf("expected calorie goal 2638, got %d", profile.CalorieGoal)
	}
	if profile.ProteinGoalG != 198 {
		t.Errorf("expected protein goal 198, got %d", profile.ProteinGoalG)
	}
	if profile.WaterGoalMl != 2450 {
		t.Errorf("expected water goal 2450, got %d", profile.WaterGoalMl)
	}
}

func TestHandleCreate_EmptyName(t *testing.T) {
	handler := newTestHandler()

	body, _ := json.Marshal(CreateProfileRequest{
		Name: "  ", WeightKg: 70, HeightCm: 175, Age: 25, Sex: "male",
	})
	req := httptest.NewRequest(http.MethodPost, "/v1/profiles", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.HandleCreate(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

func TestHandleCreate_InvalidSex(t *testing.T) {
	handler := newTestHandler()

	body, _ := json.Marshal(CreateProfileRequest{
		Name: "Alex", WeightKg: 70, HeightCm: 175, Age: 25, Sex: "other",
	})
	req := httptest.NewRequest(http.MethodPost, "/v1/profiles", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.HandleCreate(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

func TestHandleUpdate_RecomputesGoalsOnWeightChange(t *testing.T) {
	handler := newTestHandler()

	body, _ := json.Marshal(CreateProfileRequest{
		Name: "Alex", WeightKg: 70, HeightCm: 175, Age: 25, Sex: "male",
		ActivityLevel: "moderate", GoalIntent: "maintain",
	})
	req := httptest.NewRequest(http.MethodPost, "/v1/profiles", bytes.NewReader(body))
	w := httptest.NewRecorder()
	handler.HandleCreate(w, req)

	var created ProfileDTO
	if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
		t.Fatalf("failed to decode create response: %v", err)
	}

	newWeight := 80.0
	patch, _ := json.Marshal(UpdateProfileRequest{WeightKg: &newWeight})
	req = httptest.NewRequest(http.MethodPatch, "/v1/profiles/"+created.ID, bytes.NewReader(patch))
	req.SetPathValue("id", created.ID)
	w = httptest.NewRecorder()

	handler.HandleUpdate(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d. Body: %s", w.Code, w.Body.String())
	}

	var updated ProfileDTO
	if err := json.NewDecoder(w.Body).Decode(&updated); err != nil {
		t.Fatalf("failed to decode update response: %v", err)
	}

	if updated.CalorieGoal <= created.CalorieGoal {
		t.Errorf("expected calorie goal to increase after weight gain, got %d -> %d",
			created.CalorieGoal, updated.CalorieGoal)
	}
	if updated.WaterGoalMl != 2800 {
		t.Errorf("expected water goal 2800 at 80 kg, got %d", updated.WaterGoalMl)
	}
}

func TestHandleUpdate_NameOnlyKeepsGoals(t *testing.T) {
	handler := newTestHandler()

	body, _ := json.Marshal(CreateProfileRequest{
		Name: "Alex", WeightKg: 70, HeightCm: 175, Age: 25, Sex: "male",
		ActivityLevel: "moderate", GoalIntent: "maintain",
	})
	req := httptest.NewRequest(http.MethodPost, "/v1/profiles", bytes.NewReader(body))
	w := httptest.NewRecorder()
	handler.HandleCreate(w, req)

	var created ProfileDTO
	json.NewDecoder(w.Body).Decode(&created)

	name := "Alexandra"
	patch, _ := json.Marshal(UpdateProfileRequest{Name: &name})
	req = httptest.NewRequest(http.MethodPatch, "/v1/profiles/"+created.ID, bytes.NewReader(patch))
	req.SetPathValue("id", created.ID)
	w = httptest.NewRecorder()

	handler.HandleUpdate(w, req)

	var updated ProfileDTO
	if err := json.NewDecoder(w.Body).Decode(&updated); err != nil {
		t.Fatalf("failed to decode update response: %v", err)
	}

	if updated.Name != "Alexandra" {
		t.Errorf("expected name 'Alexandra', got '%s'", updated.Name)
	}
	if updated.CalorieGoal != created.CalorieGoal {
		t.Errorf("expected calorie goal unchanged, got %d -> %d", created.CalorieGoal, updated.CalorieGoal)
	}
}

func TestHandleDelete_NotFound(t *testing.T) {
	handler := newTestHandler()

	req := httptest.NewRequest(http.MethodDelete, "/v1/profiles/7f0c0000-0000-0000-0000-000000000001", nil)
	req.SetPathValue("id", "7f0c0000-0000-0000-0000-000000000001")
	w := httptest.NewRecorder()

	handler.HandleDelete(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
}
