package clips

import (
	"clipcutter/internal/domain/captions"
	"clipcutter/internal/types"
)

// Renderable pairs a validated clip with its re-based caption subset. It is
// derived on demand for the render step and discarded afterwards; nothing
// persists it.
type Renderable struct {
	Clip types.Clip
	Cues []captions.Cue
}

// NewRenderable cuts the clip's window out of the full-video caption track
// and shifts it to start at zero.
func NewRenderable(c types.Clip, track []captions.Cue) Renderable {
	return Renderable{
		Clip: c,
		Cues: captions.ExtractWindow(track, c.Start, c.End),
	}
}

// SubtitleVTT renders the clip-local cues as a WebVTT document for the
// external encoder. Empty when the window held no captions.
func (r Renderable) SubtitleVTT() string {
	if len(r.Cues) == 0 {
		return ""
	}
	return captions.RenderVTT(r.Cues)
}
