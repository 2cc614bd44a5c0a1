package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"
)

const (
	defaultAPIBase = "http://localhost:8080"
)

var (
	apiBase    string
	token      string
	profileID  string
	client     = &http.Client{Timeout: 30 * time.Second}
	testDate   string
	createdIDs = make(map[string]string) // track created resources for cleanup
)

func main() {
	fmt.Println("=== Pratofit E2E Smoke Test ===")
	fmt.Println()

	// Load config from env
	apiBase = getEnv("API_BASE_URL", defaultAPIBase)
	token = getEnv("SMOKE_TOKEN", "")
	profileID = getEnv("SMOKE_PROFILE_ID", "")

	fmt.Printf("API Base: %s\n", apiBase)
	fmt.Printf("Token: %s\n", maskString(token))
	fmt.Printf("Profile ID: %s\n", maskString(profileID))
	fmt.Println()

	// Test date (today)
	testDate = time.Now().Format("2006-01-02")

	// Run smoke tests
	steps := []struct {
		name string
		fn   func() error
	}{
		{"Healthz", testHealthz},
		{"Dev Token", testDevToken},
		{"Get Profile ID", testGetProfileID},
		{"Log Water", testLogWater},
		{"Log Weight", testLogWeight},
		{"Get Log Day", testGetLogDay},
		{"Generate Meal Week", testGenerateMealWeek},
		{"Get Meal Day", testGetMealDay},
		{"Get Nutrition Day", testGetNutritionDay},
		{"Regenerate Shopping List", testRegenerateShopping},
		{"Upload Photo", testUploadPhoto},
		{"List Photos", testListPhotos},
		{"Download Photo", testDownloadPhoto},
		{"Create Report (PDF)", testCreateReport},
		{"List Reports", testListReports},
		{"Download Report", testDownloadReport},
		{"Delete Photo", testDeletePhoto},
		{"Delete Report", testDeleteReport},
	}

	failed := false
	for i, step := range steps {
		fmt.Printf("[%d/%d] %s... ", i+1, len(steps), step.name)
		if err := step.fn(); err != nil {
			fmt.Printf("❌ FAILED\n")
			fmt.Printf("  Error: %v\n\n", err)
			failed = true
			break
		}
		fmt.Printf("✅ OK\n")
	}

	fmt.Println()
	if failed {
		fmt.Println("❌ SMOKE TEST FAILED")
		os.Exit(1)
	}

	fmt.Println("✅ ALL SMOKE TESTS PASSED")
}

func testHealthz() error {
	req, err := http.NewRequest("GET", apiBase+"/healthz", nil)
	if err != nil {
		return err
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("status=%d body=%s", resp.StatusCode, string(body))
	}

	return nil
}

func testDevToken() error {
	// If a token was passed via env, use it as-is
	if token != "" {
		return nil
	}

	req, err := http.NewRequest("POST", apiBase+"/v1/auth/dev", nil)
	if err != nil {
		return err
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	// Server may run with auth disabled; anything other than 200 just
	// means we keep going without a token
	if resp.StatusCode != http.StatusOK {
		return nil
	}

	var result struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode failed: %w", err)
	}

	token = result.AccessToken
	return nil
}

func testGetProfileID() error {
	// If profile ID already set via env, skip
	if profileID != "" {
		return nil
	}

	req, err := http.NewRequest("GET", apiBase+"/v1/profiles", nil)
	if err != nil {
		return err
	}
	addAuth(req)

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("status=%d body=%s", resp.StatusCode, string(body))
	}

	var result struct {
		Profiles []struct {
			ID string `json:"id"`
		} `json:"profiles"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode failed: %w", err)
	}

	if len(result.Profiles) == 0 {
		return fmt.Errorf("no profiles found")
	}

	profileID = result.Profiles[0].ID
	return nil
}

func testLogWater() error {
	payload := map[string]interface{}{
		"profile_id": profileID,
		"date":       testDate,
		"delta_ml":   500,
	}
	return postJSON("/v1/log/water", payload, http.StatusOK, nil)
}

func testLogWeight() error {
	payload := map[string]interface{}{
		"profile_id": profileID,
		"date":       testDate,
		"weight_kg":  72.5,
	}
	return postJSON("/v1/log/weight", payload, http.StatusOK, nil)
}

func testGetLogDay() error {
	url := fmt.Sprintf("%s/v1/log/day?profile_id=%s&date=%s", apiBase, profileID, testDate)
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return err
	}
	addAuth(req)

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("status=%d body=%s", resp.StatusCode, string(body))
	}

	var entry struct {
		WaterMl  int      `json:"water_ml"`
		WeightKg *float64 `json:"weight_kg"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&entry); err != nil {
		return fmt.Errorf("decode failed: %w", err)
	}

	if entry.WaterMl < 500 {
		return fmt.Errorf("water_ml=%d, expected at least 500", entry.WaterMl)
	}
	if entry.WeightKg == nil {
		return fmt.Errorf("weight_kg not set after logging")
	}

	return nil
}

func testGenerateMealWeek() error {
	payload := map[string]interface{}{
		"profile_id": profileID,
		"start_date": testDate,
	}
	var result struct {
		Slots []struct {
			ID string `json:"id"`
		} `json:"slots"`
	}
	if err := postJSON("/v1/meal/generate", payload, http.StatusOK, &result); err != nil {
		return err
	}
	if len(result.Slots) == 0 {
		return fmt.Errorf("no slots generated")
	}
	return nil
}

func testGetMealDay() error {
	url := fmt.Sprintf("%s/v1/meal/day?profile_id=%s&date=%s", apiBase, profileID, testDate)
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return err
	}
	addAuth(req)

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("status=%d body=%s", resp.StatusCode, string(body))
	}

	var result struct {
		Slots []struct {
			MealType string  `json:"meal_type"`
			RecipeID *string `json:"recipe_id"`
		} `json:"slots"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode failed: %w", err)
	}

	if len(result.Slots) == 0 {
		return fmt.Errorf("no slots on generated day")
	}

	return nil
}

func testGetNutritionDay() error {
	url := fmt.Sprintf("%s/v1/nutrition/day?profile_id=%s&date=%s", apiBase, profileID, testDate)
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return err
	}
	addAuth(req)

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("status=%d body=%s", resp.StatusCode, string(body))
	}

	return nil
}

func testRegenerateShopping() error {
	payload := map[string]interface{}{
		"profile_id": profileID,
	}
	var result struct {
		Items []struct {
			ID string `json:"id"`
		} `json:"items"`
	}
	if err := postJSON("/v1/shopping/regenerate", payload, http.StatusOK, &result); err != nil {
		return err
	}
	if len(result.Items) == 0 {
		return fmt.Errorf("no shopping items after regenerate")
	}
	return nil
}

func testUploadPhoto() error {
	// Generate a minimal PNG image (1x1 pixel, red)
	pngData := []byte{
		0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, // PNG signature
		0x00, 0x00, 0x00, 0x0D, 0x49, 0x48, 0x44, 0x52, // IHDR chunk
		0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01, // width=1, height=1
		0x08, 0x02, 0x00, 0x00, 0x00, 0x90, 0x77, 0x53,
		0xDE, 0x00, 0x00, 0x00, 0x0C, 0x49, 0x44, 0x41, // IDAT chunk
		0x54, 0x08, 0xD7, 0x63, 0xF8, 0xCF, 0xC0, 0x00,
		0x00, 0x03, 0x01, 0x01, 0x00, 0x18, 0xDD, 0x8D,
		0xB4, 0x00, 0x00, 0x00, 0x00, 0x49, 0x45, 0x4E, // IEND chunk
		0x44, 0xAE, 0x42, 0x60, 0x82,
	}

	// Create multipart body
	var b bytes.Buffer
	boundary := "----SmokeTestBoundary123"
	w := io.Writer(&b)

	// Write profile_id field
	fmt.Fprintf(w, "--%s\r\n", boundary)
	fmt.Fprintf(w, "Content-Disposition: form-data; name=\"profile_id\"\r\n\r\n")
	fmt.Fprintf(w, "%s\r\n", profileID)

	// Write date field
	fmt.Fprintf(w, "--%s\r\n", boundary)
	fmt.Fprintf(w, "Content-Disposition: form-data; name=\"date\"\r\n\r\n")
	fmt.Fprintf(w, "%s\r\n", testDate)

	// Write file field
	fmt.Fprintf(w, "--%s\r\n", boundary)
	fmt.Fprintf(w, "Content-Disposition: form-data; name=\"file\"; filename=\"test.png\"\r\n")
	fmt.Fprintf(w, "Content-Type: image/png\r\n\r\n")
	w.Write(pngData)
	fmt.Fprintf(w, "\r\n--%s--\r\n", boundary)

	req, err := http.NewRequest("POST", apiBase+"/v1/photos", &b)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", fmt.Sprintf("multipart/form-data; boundary=%s", boundary))
	addAuth(req)

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("status=%d body=%s", resp.StatusCode, string(body))
	}

	var result struct {
		ID        string `json:"id"`
		SizeBytes int64  `json:"size_bytes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode failed: %w", err)
	}

	if result.SizeBytes <= 0 {
		return fmt.Errorf("photo size is %d bytes", result.SizeBytes)
	}

	createdIDs["photo"] = result.ID
	return nil
}

func testListPhotos() error {
	url := fmt.Sprintf("%s/v1/photos?profile_id=%s", apiBase, profileID)
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return err
	}
	addAuth(req)

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("status=%d body=%s", resp.StatusCode, string(body))
	}

	var result struct {
		Photos []struct {
			ID string `json:"id"`
		} `json:"photos"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode failed: %w", err)
	}

	if len(result.Photos) == 0 {
		return fmt.Errorf("no photos found")
	}

	return nil
}

func testDownloadPhoto() error {
	photoID := createdIDs["photo"]
	if photoID == "" {
		return fmt.Errorf("no photo ID to download")
	}
	return downloadBinary(fmt.Sprintf("%s/v1/photos/%s/download", apiBase, photoID))
}

func testCreateReport() error {
	from := time.Now().AddDate(0, 0, -7).Format("2006-01-02")
	payload := map[string]interface{}{
		"profile_id": profileID,
		"from":       from,
		"to":         testDate,
	}

	var result struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	if err := postJSON("/v1/reports", payload, http.StatusCreated, &result); err != nil {
		return err
	}

	if result.Status != "ready" {
		return fmt.Errorf("report status=%q, expected ready", result.Status)
	}

	createdIDs["report"] = result.ID
	return nil
}

func testListReports() error {
	url := fmt.Sprintf("%s/v1/reports?profile_id=%s", apiBase, profileID)
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return err
	}
	addAuth(req)

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("status=%d body=%s", resp.StatusCode, string(body))
	}

	var result struct {
		Reports []struct {
			ID string `json:"id"`
		} `json:"reports"`
		Total int `json:"total"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode failed: %w", err)
	}

	if result.Total == 0 {
		return fmt.Errorf("no reports found")
	}

	return nil
}

func testDownloadReport() error {
	reportID := createdIDs["report"]
	if reportID == "" {
		return fmt.Errorf("no report ID to download")
	}
	return downloadBinary(fmt.Sprintf("%s/v1/reports/%s/download", apiBase, reportID))
}

func testDeletePhoto() error {
	photoID := createdIDs["photo"]
	if photoID == "" {
		return fmt.Errorf("no photo ID to delete")
	}
	return deleteResource(fmt.Sprintf("%s/v1/photos/%s", apiBase, photoID))
}

func testDeleteReport() error {
	reportID := createdIDs["report"]
	if reportID == "" {
		return fmt.Errorf("no report ID to delete")
	}
	return deleteResource(fmt.Sprintf("%s/v1/reports/%s", apiBase, reportID))
}

// Helper functions

func postJSON(path string, payload interface{}, wantStatus int, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest("POST", apiBase+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	addAuth(req)

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("status=%d body=%s", resp.StatusCode, string(body))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode failed: %w", err)
		}
	}

	return nil
}

// downloadBinary fetches a blob endpoint, accepting either a direct serve
// (local mode, 200) or a presigned redirect (S3 mode, 302).
func downloadBinary(url string) error {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return err
	}
	addAuth(req)

	// Don't follow redirects automatically
	originalCheckRedirect := client.CheckRedirect
	client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}
	defer func() { client.CheckRedirect = originalCheckRedirect }()

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		// Direct serve (local mode)
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("failed to read body: %w", err)
		}
		if len(data) < 10 {
			return fmt.Errorf("download too small: %d bytes", len(data))
		}
		return nil
	}

	if resp.StatusCode == http.StatusFound {
		// Redirect (S3 mode)
		location := resp.Header.Get("Location")
		if location == "" {
			return fmt.Errorf("redirect without Location header")
		}

		getReq, err := http.NewRequest("GET", location, nil)
		if err != nil {
			return fmt.Errorf("failed to create redirect request: %w", err)
		}

		getResp, err := client.Do(getReq)
		if err != nil {
			return fmt.Errorf("failed to follow redirect: %w", err)
		}
		defer getResp.Body.Close()

		if getResp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(io.LimitReader(getResp.Body, 4096))
			return fmt.Errorf("redirect failed: status=%d body=%s", getResp.StatusCode, string(body))
		}

		data, err := io.ReadAll(getResp.Body)
		if err != nil {
			return fmt.Errorf("failed to read redirected body: %w", err)
		}
		if len(data) < 10 {
			return fmt.Errorf("download too small: %d bytes", len(data))
		}
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return fmt.Errorf("unexpected status=%d body=%s", resp.StatusCode, string(body))
}

func deleteResource(url string) error {
	req, err := http.NewRequest("DELETE", url, nil)
	if err != nil {
		return err
	}
	addAuth(req)

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("status=%d body=%s", resp.StatusCode, string(body))
	}

	return nil
}

func addAuth(req *http.Request) {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func maskString(s string) string {
	if s == "" {
		return "(not set)"
	}
	if len(s) <= 8 {
		return "***"
	}
	return s[:4] + "..." + s[len(s)-4:]
}
