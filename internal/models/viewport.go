package models

// Viewport is the map camera
type Viewport struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Zoom    float64 `json:"zoom"`
	Pitch   float64 `json:"pitch"`
	Bearing float64 `json:"bearing"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
}

// ViewportPatch is a partial Viewport; nil fields are left unchanged
type ViewportPatch struct {
	Lat     *float64 `json:"lat,omitempty"`
	Lng     *float64 `json:"lng,omitempty"`
	Zoom    *float64 `json:"zoom,omitempty"`
	Pitch   *float64 `json:"pitch,omitempty"`
	Bearing *float64 `json:"bearing,omitempty"`
}

// Apply returns a new Viewport with the patch merged in
func (v Viewport) Apply(p ViewportPatch) Viewport {
	if p.Lat != nil {
		v.Lat = *p.Lat
	}
	if p.Lng != nil {
		v.Lng = *p.Lng
	}
	if p.Zoom != nil {
		v.Zoom = *p.Zoom
	}
	if p.Pitch != nil {
		v.Pitch = *p.Pitch
	}
	if p.Bearing != nil {
		v.Bearing = *p.Bearing
	}
	return v
}
