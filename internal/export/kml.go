package export

import (
	"fmt"
	"io"

	kml "github.com/twpayne/go-kml"

	"github.com/jengzang/mobility-map-backend/internal/models"
	"github.com/jengzang/mobility-map-backend/internal/spatial"
)

// routeAlpha is the stroke opacity for exported routes
const routeAlpha = 0xcc

// WriteKML writes the segments and the static gates as a KML document.
// Each gate gets a shared line style; segments reference the style of the
// gate they end at.
func WriteKML(w io.Writer, title string, segments []models.RouteSegment) error {
	gates := models.Gates()

	styles := make(map[models.GateKey]*kml.SharedElement, len(gates))
	children := []kml.Element{kml.Name(title)}
	for _, g := range gates {
		style := gateStyle(g)
		styles[g.Key] = style
		children = append(children, style)
	}

	gateMarks := []kml.Element{kml.Name("Gates")}
	for _, g := range gates {
		gateMarks = append(gateMarks, kml.Placemark(
			kml.Name(g.Name),
			kml.Description(g.ID),
			kml.StyleURL(styles[g.Key].URL()),
			kml.Point(kml.Coordinates(kml.Coordinate{Lon: g.Lng, Lat: g.Lat})),
		))
	}
	children = append(children, kml.Folder(gateMarks...))

	routeMarks := []kml.Element{kml.Name("Routes")}
	for _, seg := range segments {
		coords := make([]kml.Coordinate, len(seg.Coordinates))
		for i, p := range seg.Coordinates {
			coords[i] = kml.Coordinate{Lon: p.Lon(), Lat: p.Lat()}
		}

		mark := []kml.Element{
			kml.Name(seg.RouteID),
			kml.Description(fmt.Sprintf("%s to %s, %.2f km, %d overlapping",
				seg.TransportMode, seg.DestinationName, seg.Distance, seg.LocalDensity-1)),
		}
		if style, ok := styles[seg.GateKey]; ok {
			mark = append(mark, kml.StyleURL(style.URL()))
		}
		mark = append(mark, kml.LineString(kml.Coordinates(coords...)))

		routeMarks = append(routeMarks, kml.Placemark(mark...))
	}
	children = append(children, kml.Folder(routeMarks...))

	doc := kml.KML(kml.Document(children...))
	if err := doc.WriteIndent(w, "", "  "); err != nil {
		return fmt.Errorf("failed to write kml: %w", err)
	}
	return nil
}

func gateStyle(g models.Gate) *kml.SharedElement {
	c, err := spatial.ParseHexColor(g.Color)
	if err != nil {
		c, _ = spatial.ParseHexColor(spatial.FallbackColor)
	}
	c.A = routeAlpha

	return kml.SharedStyle("gate-"+string(g.Key),
		kml.LineStyle(
			kml.Color(c),
			kml.Width(3),
		),
	)
}
