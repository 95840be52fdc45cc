package modes

import (
	"github.com/charmbracelet/bubbles/textinput"

	"pantrycrm/internal/ui/input/types"
)

type SegmentMode struct {
	TextInputMode
}

func NewSegmentMode(ti *textinput.Model) *SegmentMode {
	return &SegmentMode{
		TextInputMode: NewTextInputMode(types.ModeSegment, "segment", "Segment: ", ti),
	}
}
