package api

// dateTimeFormat is used for RFC3339 timestamps in API payloads.
const dateTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// CreateCompositionRequest is the body of POST /compositions. When both
// imageRef and videoRef are empty the server picks from its configured assets.
type CreateCompositionRequest struct {
	Script   string `json:"script"`
	AudioRef string `json:"audioRef" binding:"required"`
	ImageRef string `json:"imageRef"`
	VideoRef string `json:"videoRef"`
}

// ScrubRequest is the body of POST /playback/scrub.
type ScrubRequest struct {
	Frame *int `json:"frame" binding:"required"`
}

// Visual describes the background layer.
type Visual struct {
	Kind string `json:"kind"`
	Ref  string `json:"ref"`
}

// Composition describes the active composition.
type Composition struct {
	ID          string   `json:"id"`
	Script      string   `json:"script"`
	Segments    []string `json:"segments"`
	AudioRef    string   `json:"audioRef"`
	Visual      Visual   `json:"visual"`
	FPS         int      `json:"fps"`
	Seconds     float64  `json:"seconds"`
	TotalFrames int      `json:"totalFrames"`
	Fallback    bool     `json:"fallback"`
	Spans       []Span   `json:"spans,omitempty"`
	CreatedAt   string   `json:"createdAt,omitempty"`
}

// Span is the frame range of one segment.
type Span struct {
	Index      int `json:"index"`
	StartFrame int `json:"startFrame"`
	EndFrame   int `json:"endFrame"`
}

// Frame is the render descriptor for one frame.
type Frame struct {
	Frame        int    `json:"frame"`
	Visual       Visual `json:"visual"`
	SubtitleText string `json:"subtitleText"`
	Segment      int    `json:"segment"`
	AudioRef     string `json:"audioRef"`
}

// PlaybackStatus reports the host transport state.
type PlaybackStatus struct {
	CompositionID string  `json:"compositionId,omitempty"`
	Phase         string  `json:"phase"`
	Resolved      bool    `json:"resolved"`
	Frame         int     `json:"frame"`
	TotalFrames   int     `json:"totalFrames"`
	FPS           int     `json:"fps"`
	Seconds       float64 `json:"seconds"`
	Fallback      bool    `json:"fallback"`
	AudioRef      string  `json:"audioRef,omitempty"`
	Current       *Frame  `json:"current,omitempty"`
}

// HistoryEntry is a stored composition.
type HistoryEntry struct {
	ID           string  `json:"id"`
	Script       string  `json:"script"`
	SegmentCount int     `json:"segmentCount"`
	AudioRef     string  `json:"audioRef"`
	Visual       Visual  `json:"visual"`
	Seconds      float64 `json:"seconds"`
	Frames       int     `json:"frames"`
	Degraded     bool    `json:"degraded"`
	CreatedAt    string  `json:"createdAt,omitempty"`
}

// ErrorResponse is returned for every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
