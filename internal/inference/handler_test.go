package inference

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func newPredictRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api/v1")
	NewHandler(NewService(NewRandomProvider(99), nil)).RegisterRoutes(api)
	return router
}

func postPredict(t *testing.T, router *gin.Engine, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/predict", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	var payload map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode body %q: %v", resp.Body.String(), err)
	}
	return resp, payload
}

func TestPredictAnomalyModel(t *testing.T) {
	router := newPredictRouter()
	resp, payload := postPredict(t, router, `{"model_name":"anomaly_detector","features":{"cpu":0.93}}`)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if payload["model_name"] != "anomaly_detector" {
		t.Fatalf("model name not echoed: %v", payload["model_name"])
	}
	if label := payload["prediction"]; label != "normal" && label != "anomaly" {
		t.Fatalf("unexpected label %v", label)
	}
	if conf := payload["confidence"].(float64); conf < 0.7 || conf > 0.99 {
		t.Fatalf("confidence out of range: %f", conf)
	}
	ts := int64(payload["timestamp"].(float64))
	if diff := time.Now().Unix() - ts; diff < -5 || diff > 5 {
		t.Fatalf("timestamp %d too far from now", ts)
	}
	if _, ok := payload["processing_time_ms"].(float64); !ok {
		t.Fatalf("missing processing_time_ms")
	}
}

func TestPredictForecastModel(t *testing.T) {
	router := newPredictRouter()
	resp, payload := postPredict(t, router, `{"model_name":"sales_forecast","features":{}}`)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	forecast, ok := payload["prediction"].(map[string]any)
	if !ok {
		t.Fatalf("expected object prediction, got %T", payload["prediction"])
	}
	if len(forecast) != 3 {
		t.Fatalf("expected exactly 3 keys, got %v", forecast)
	}
	ranges := map[string]Bounds{
		"next_hour": NextHourRange,
		"next_day":  NextDayRange,
		"next_week": NextWeekRange,
	}
	for key, bounds := range ranges {
		v, ok := forecast[key].(float64)
		if !ok || !bounds.Contains(v) {
			t.Fatalf("%s out of range: %v", key, forecast[key])
		}
	}
	if conf := payload["confidence"].(float64); conf < 0.6 || conf > 0.95 {
		t.Fatalf("confidence out of range: %f", conf)
	}
}

func TestPredictGenericModel(t *testing.T) {
	router := newPredictRouter()
	resp, payload := postPredict(t, router, `{"model_name":"generic_model","features":{"x":[1,2,3],"y":"z"}}`)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	v, ok := payload["prediction"].(float64)
	if !ok || v < 0 || v > 100 {
		t.Fatalf("unexpected scalar prediction %v", payload["prediction"])
	}
	if conf := payload["confidence"].(float64); conf < 0.5 || conf > 0.99 {
		t.Fatalf("confidence out of range: %f", conf)
	}
}

func TestPredictRejectsMalformedBodies(t *testing.T) {
	router := newPredictRouter()
	bodies := []string{
		`{"model_name":`,
		`{"features":{}}`,
		`{"model_name":"generic_model"}`,
		`{"model_name":"generic_model","features":[1,2]}`,
		`{"model_name":42,"features":{}}`,
		`{"model_name":null,"features":{}}`,
		`{"model_name":"generic_model","features":null}`,
	}
	for _, body := range bodies {
		resp, payload := postPredict(t, router, body)
		if resp.Code != http.StatusUnprocessableEntity {
			t.Fatalf("body %s: expected 422, got %d", body, resp.Code)
		}
		errBody, ok := payload["error"].(map[string]any)
		if !ok || errBody["code"] != "validation_error" {
			t.Fatalf("body %s: unexpected error envelope %v", body, payload)
		}
	}
}

func TestPredictEmptyModelNameIsGeneric(t *testing.T) {
	router := newPredictRouter()
	resp, payload := postPredict(t, router, `{"model_name":"","features":{}}`)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if payload["model_name"] != "" {
		t.Fatalf("model name not echoed: %v", payload["model_name"])
	}
	v, ok := payload["prediction"].(float64)
	if !ok || v < 0 || v > 100 {
		t.Fatalf("expected scalar prediction, got %v", payload["prediction"])
	}
}
