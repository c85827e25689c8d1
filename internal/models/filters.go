package models

// FilterState is the dashboard's layer visibility and route selection
type FilterState struct {
	ShowPOIs     bool            `json:"showPois"`
	ShowRoutes   bool            `json:"showRoutes"`
	ShowBoundary bool            `json:"showBoundary"`
	ShowGates    bool            `json:"showGates"`
	Modes        []TransportMode `json:"modes"` // empty means all
	Gates        []GateKey       `json:"gates"` // empty means all
}

// DefaultFilterState shows everything
func DefaultFilterState() FilterState {
	return FilterState{
		ShowPOIs:     true,
		ShowRoutes:   true,
		ShowBoundary: true,
		ShowGates:    true,
	}
}

// FilterPatch is a partial FilterState; nil fields are left unchanged.
// A non-nil empty slice clears the selection back to "all".
type FilterPatch struct {
	ShowPOIs     *bool            `json:"showPois,omitempty"`
	ShowRoutes   *bool            `json:"showRoutes,omitempty"`
	ShowBoundary *bool            `json:"showBoundary,omitempty"`
	ShowGates    *bool            `json:"showGates,omitempty"`
	Modes        *[]TransportMode `json:"modes,omitempty"`
	Gates        *[]GateKey       `json:"gates,omitempty"`
}

// Apply returns a new FilterState with the patch merged in
func (f FilterState) Apply(p FilterPatch) FilterState {
	out := f.Clone()
	if p.ShowPOIs != nil {
		out.ShowPOIs = *p.ShowPOIs
	}
	if p.ShowRoutes != nil {
		out.ShowRoutes = *p.ShowRoutes
	}
	if p.ShowBoundary != nil {
		out.ShowBoundary = *p.ShowBoundary
	}
	if p.ShowGates != nil {
		out.ShowGates = *p.ShowGates
	}
	if p.Modes != nil {
		out.Modes = append([]TransportMode(nil), (*p.Modes)...)
	}
	if p.Gates != nil {
		out.Gates = append([]GateKey(nil), (*p.Gates)...)
	}
	return out
}

// Clone deep-copies the selection slices
func (f FilterState) Clone() FilterState {
	out := f
	out.Modes = append([]TransportMode(nil), f.Modes...)
	out.Gates = append([]GateKey(nil), f.Gates...)
	return out
}

// AllowsMode reports whether routes with the mode pass the mode selection
func (f FilterState) AllowsMode(m TransportMode) bool {
	if len(f.Modes) == 0 {
		return true
	}
	for _, sel := range f.Modes {
		if sel == m {
			return true
		}
	}
	return false
}

// AllowsGate reports whether routes ending at the gate pass the gate selection
func (f FilterState) AllowsGate(k GateKey) bool {
	if len(f.Gates) == 0 {
		return true
	}
	for _, sel := range f.Gates {
		if sel == k {
			return true
		}
	}
	return false
}
