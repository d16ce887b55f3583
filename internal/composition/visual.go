package composition

import "strings"

// VisualKind identifies the background layer type.
type VisualKind string

const (
	VisualVideo VisualKind = "video"
	VisualImage VisualKind = "image"
)

// Visual is the background layer of a composition.
type Visual struct {
	Kind VisualKind `json:"kind" yaml:"kind"`
	Ref  string     `json:"ref" yaml:"ref"`
}

// AssetPair is the candidate background pair handed over by asset selection.
type AssetPair struct {
	ImageRef string `json:"image_ref" yaml:"image_ref"`
	VideoRef string `json:"video_ref" yaml:"video_ref"`
}

// SelectVisual applies video precedence: a non-empty video reference wins,
// otherwise the image reference is used (possibly empty).
func SelectVisual(pair AssetPair) Visual {
	if video := strings.TrimSpace(pair.VideoRef); video != "" {
		return Visual{Kind: VisualVideo, Ref: video}
	}
	return Visual{Kind: VisualImage, Ref: strings.TrimSpace(pair.ImageRef)}
}

// Looping reports whether the visual repeats for the length of the narration.
func (v Visual) Looping() bool {
	return v.Kind == VisualVideo
}
