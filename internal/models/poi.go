package models

// POI is a point of interest reported by a survey respondent
type POI struct {
	ID           FlexID  `json:"id"`
	SubmissionID FlexID  `json:"submissionId,omitempty"`
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lng"`
	Comment      string  `json:"comment,omitempty"`
	HasComment   bool    `json:"hasComment"`
}

// NoCommentText is what the exporter writes when a respondent left no comment
const NoCommentText = "No comment provided"

// DisplayComment returns the comment to show in a popup
func (p POI) DisplayComment() string {
	if !p.HasComment || p.Comment == "" {
		return NoCommentText
	}
	return p.Comment
}
