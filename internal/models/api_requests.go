package models

type PredictRequest struct {
	Factor  string  `json:"factor" validate:"required"`
	Context Context `json:"context"`
}

type PredictMultiRequest struct {
	Factors []string  `json:"factors" validate:"required,min=1"`
	Context Context   `json:"context"`
	Weights []float64 `json:"weights,omitempty"`
}

type SportInfo struct {
	Sport        string   `json:"sport"`
	Competitions []string `json:"competitions"`
	DrawCapable  bool     `json:"draw_capable"`
}
