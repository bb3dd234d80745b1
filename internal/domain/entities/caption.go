package entities

import "time"

// CaptionFragment is one caption line observed on screen at a poll instant
type CaptionFragment struct {
	Text       string    `json:"text"`
	ObservedAt time.Time `json:"observed_at"`
}

// FragmentTexts returns the texts of the given fragments in order
func FragmentTexts(fragments []CaptionFragment) []string {
	texts := make([]string, 0, len(fragments))
	for _, f := range fragments {
		texts = append(texts, f.Text)
	}
	return texts
}
