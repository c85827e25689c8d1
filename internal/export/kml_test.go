package export

import (
	"bytes"
	"encoding/xml"
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/mobility-map-backend/internal/models"
)

func TestWriteKML(t *testing.T) {
	segs := []models.RouteSegment{
		{
			RouteID:         "101",
			Coordinates:     []orb.Point{{34.7983, 31.2627}, {34.801138, 31.261222}},
			GateKey:         models.GateSouth,
			LocalDensity:    2,
			Distance:        1.25,
			TransportMode:   models.ModeWalking,
			DestinationName: "South Gate",
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteKML(&buf, "Student routes", segs))
	out := buf.String()

	assert.Contains(t, out, "<name>Student routes</name>")
	assert.Contains(t, out, `<Style id="gate-south">`)
	assert.Contains(t, out, "<styleUrl>#gate-south</styleUrl>")
	assert.Contains(t, out, "walking to South Gate, 1.25 km, 1 overlapping")
	assert.Contains(t, out, "34.7983,31.2627")
	assert.Equal(t, 3+1, strings.Count(out, "<Placemark>"))

	// well-formed XML
	dec := xml.NewDecoder(strings.NewReader(out))
	for {
		_, err := dec.Token()
		if err != nil {
			assert.Equal(t, "EOF", err.Error())
			break
		}
	}
}

func TestWriteKML_NoSegments(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteKML(&buf, "empty", nil))

	assert.Equal(t, 3, strings.Count(buf.String(), "<Placemark>"))
}
