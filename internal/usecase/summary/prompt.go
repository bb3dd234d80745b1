package summary

import (
	"fmt"
	"unicode/utf8"
)

const promptTemplate = `Analyze this %s meeting transcript and provide a structured summary in JSON format.

Transcript: %s

Output only valid JSON with this exact structure:
{
    "summary": "brief overall summary",
    "key_points": ["point1", "point2", ...],
    "decisions": ["decision1", "decision2", ...],
    "action_items": [
        {"task": "task description", "owner": "person name", "due_date": "date if mentioned"}
    ],
    "agenda": [
        {"topic": "topic name", "summary": "brief discussion summary"}
    ]
}

Extract owners from the transcript if mentioned (look for phrases like 'John will handle', 'assigned to Sarah').`

// BuildPrompt embeds the meeting type and the (already truncated) transcript
func BuildPrompt(transcript, meetingType string) string {
	return fmt.Sprintf(promptTemplate, meetingType, transcript)
}

// truncate keeps the first max characters of s. It is not word-aware.
func truncate(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max])
}
