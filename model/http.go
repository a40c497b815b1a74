package model

type StyleInfo struct {
	Name string `json:"name"`
}

type LevelInfo struct {
	Level        int     `json:"level"`
	Difficulty   float64 `json:"difficulty"`
	JitterAmount float64 `json:"jitter"`
	Quantize     bool    `json:"quantize"`
}

type ScaleInfo struct {
	Name    string    `json:"name"`
	Pitches []float64 `json:"pitches"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
