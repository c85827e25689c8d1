package models

// Dataset sources
const (
	SourceRemote    = "remote"
	SourceSynthetic = "synthetic"
)

// DatasetMetadata is the exporter's header block
type DatasetMetadata struct {
	ExportedAt string `json:"exportedAt,omitempty"`
	Source     string `json:"source,omitempty"`
	Version    string `json:"version,omitempty"`
}

// Dataset is the full survey payload held in memory
type Dataset struct {
	Metadata   DatasetMetadata `json:"metadata"`
	Statistics Statistics      `json:"statistics"`
	POIs       []POI           `json:"pois"`
	Routes     []Route         `json:"routes"`

	// Source is "remote" or "synthetic"; not part of the payload
	Source string `json:"-"`
}
