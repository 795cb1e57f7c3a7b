package inference

// InferenceRequest is the body accepted by the predict endpoint.
// Features are accepted as-is and passed to the provider.
type InferenceRequest struct {
	ModelName string
	Features  map[string]any
}

// inferenceBody is the wire form of InferenceRequest. Both fields must be
// present and non-null; an empty model name is allowed.
type inferenceBody struct {
	ModelName *string        `json:"model_name" binding:"required"`
	Features  map[string]any `json:"features" binding:"required"`
}

func (b inferenceBody) request() InferenceRequest {
	return InferenceRequest{ModelName: *b.ModelName, Features: b.Features}
}

// InferenceResponse is returned by the predict endpoint. Prediction holds a
// string label, a float64 or a Forecast depending on the model family.
type InferenceResponse struct {
	ModelName        string  `json:"model_name"`
	Prediction       any     `json:"prediction"`
	Confidence       float64 `json:"confidence"`
	Timestamp        int64   `json:"timestamp"`
	ProcessingTimeMs float64 `json:"processing_time_ms"`
}

// Forecast is the prediction shape for forecasting models.
type Forecast struct {
	NextHour float64 `json:"next_hour"`
	NextDay  float64 `json:"next_day"`
	NextWeek float64 `json:"next_week"`
}

// Prediction is what a Provider produces for one request.
type Prediction struct {
	Value      any
	Confidence float64
}
