package interaction

import (
	"fmt"

	"github.com/jengzang/mobility-map-backend/internal/models"
	"github.com/jengzang/mobility-map-backend/internal/render"
)

// ToggleLayer shows or hides a whole layer
func (l *Layer) ToggleLayer(id render.LayerID, visible bool) (models.FilterState, error) {
	var patch models.FilterPatch
	switch id {
	case render.LayerPOIs:
		patch.ShowPOIs = &visible
	case render.LayerRoutes:
		patch.ShowRoutes = &visible
	case render.LayerBoundary:
		patch.ShowBoundary = &visible
	case render.LayerGates:
		patch.ShowGates = &visible
	default:
		return models.FilterState{}, fmt.Errorf("%w: %s", ErrUnknownLayer, id)
	}
	return l.apply(patch), nil
}

// SelectModes restricts routes to the given transport modes. An empty
// selection shows all modes.
func (l *Layer) SelectModes(modes []models.TransportMode) (models.FilterState, error) {
	if err := validateModes(modes); err != nil {
		return models.FilterState{}, err
	}
	sel := append([]models.TransportMode{}, modes...)
	return l.apply(models.FilterPatch{Modes: &sel}), nil
}

// SelectGates restricts routes to the given destination gates. An empty
// selection shows all gates.
func (l *Layer) SelectGates(gates []models.GateKey) (models.FilterState, error) {
	if err := validateGates(gates); err != nil {
		return models.FilterState{}, err
	}
	sel := append([]models.GateKey{}, gates...)
	return l.apply(models.FilterPatch{Gates: &sel}), nil
}

// Apply validates and forwards a raw filter patch
func (l *Layer) Apply(patch models.FilterPatch) (models.FilterState, error) {
	if patch.Modes != nil {
		if err := validateModes(*patch.Modes); err != nil {
			return models.FilterState{}, err
		}
	}
	if patch.Gates != nil {
		if err := validateGates(*patch.Gates); err != nil {
			return models.FilterState{}, err
		}
	}
	return l.apply(patch), nil
}

func validateModes(modes []models.TransportMode) error {
	for _, m := range modes {
		if m != models.ModeUnknown && models.ParseTransportMode(string(m)) != m {
			return fmt.Errorf("%w: %s", ErrUnknownMode, m)
		}
	}
	return nil
}

func validateGates(gates []models.GateKey) error {
	for _, g := range gates {
		if _, ok := models.GateByKey(g); !ok {
			return fmt.Errorf("%w: %s", ErrUnknownGate, g)
		}
	}
	return nil
}

// apply pushes the patch to the renderer and closes any open popup, whose
// target may no longer be drawn
func (l *Layer) apply(patch models.FilterPatch) models.FilterState {
	state := l.renderer.SetFilter(patch)
	l.ClosePopup()
	return state
}
