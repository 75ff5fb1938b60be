package pick

// TooltipOffset is the distance in pixels from the pointer to the tooltip
const TooltipOffset = 10

// Tooltip is the overlay state for the picked body
type Tooltip struct {
	Text    string  `json:"text"`
	Visible bool    `json:"visible"`
	Left    float32 `json:"left"`
	Top     float32 `json:"top"`
}

// TooltipFor places a tooltip next to the pointer for hit, or hides it
func TooltipFor(hit Hit, ok bool, pointer Pointer) Tooltip {
	if !ok || !pointer.Seen {
		return Tooltip{}
	}
	return Tooltip{
		Text:    hit.Body.Name,
		Visible: true,
		Left:    pointer.ClientX + TooltipOffset,
		Top:     pointer.ClientY + TooltipOffset,
	}
}

// Resolve runs the whole hit-test for one frame. Without a pointer event or a
// usable viewport nothing is picked.
func (p *Picker) Resolve(pointer Pointer, viewport Viewport, camera Camera, scales Scales) (Hit, Tooltip) {
	if !pointer.Seen || !viewport.Valid() {
		return Hit{}, Tooltip{}
	}

	ray := camera.WithViewport(viewport).Ray(pointer.NDC(viewport))
	hit, ok := p.PickWithin(ray, scales, camera.Near, camera.Far)
	return hit, TooltipFor(hit, ok, pointer)
}
