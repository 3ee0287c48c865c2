package validation

import "io"

// Upload is a submitted photo. Content must be seekable because the gate
// inspects it and leaves the cursor at the start for downstream consumers.
type Upload struct {
	Filename string
	Content  io.ReadSeeker
}

// Outcome captures the result of the image gate.
type Outcome struct {
	Valid   bool
	Message string
}

// Result is the pipeline output for one submission. Score is a 3-digit
// string ("000".."100"); the caller applies its own threshold policy.
type Result struct {
	ImageValid   bool   `json:"image_valid"`
	ImageMessage string `json:"image_message"`
	Caption      string `json:"caption"`
	Score        string `json:"score"`
}
