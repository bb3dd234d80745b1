package summary

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
)

// RepairRule is a set of rewrites applied to a raw backend response
type RepairRule uint8

const (
	RepairTrim RepairRule = 1 << iota
	RepairStripFence
	RepairBraceSlice
)

// Has reports whether r includes rule
func (r RepairRule) Has(rule RepairRule) bool {
	return r&rule != 0
}

func (r RepairRule) String() string {
	var names []string
	if r.Has(RepairTrim) {
		names = append(names, "trim")
	}
	if r.Has(RepairStripFence) {
		names = append(names, "strip_fence")
	}
	if r.Has(RepairBraceSlice) {
		names = append(names, "brace_slice")
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "+")
}

// ExtractCandidate isolates the JSON object inside a backend response.
// Rules run in order: trim whitespace, strip a leading ```json or ``` fence
// and a trailing ``` fence, then slice from the first '{' to the last '}'.
// The returned rule set names the rewrites that changed the text.
func ExtractCandidate(raw string) (string, RepairRule, bool) {
	var applied RepairRule

	content := strings.TrimSpace(raw)
	if content != raw {
		applied |= RepairTrim
	}

	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
		content = strings.TrimSpace(content)
		applied |= RepairStripFence
	}

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end < start {
		return "", applied, false
	}
	if start != 0 || end != len(content)-1 {
		applied |= RepairBraceSlice
	}
	return content[start : end+1], applied, true
}

// ParseResponse turns a raw backend response into a normalized record
func ParseResponse(raw string) (entities.SummaryRecord, error) {
	if strings.TrimSpace(raw) == "" {
		return entities.SummaryRecord{}, &entities.ResponseParseError{Reason: entities.ParseReasonEmpty}
	}

	candidate, _, ok := ExtractCandidate(raw)
	if !ok {
		return entities.SummaryRecord{}, &entities.ResponseParseError{
			Reason: entities.ParseReasonMalformed,
			Err:    fmt.Errorf("no JSON object in response"),
		}
	}

	rec, err := decodeRecord(candidate)
	if err != nil {
		return entities.SummaryRecord{}, &entities.ResponseParseError{Reason: entities.ParseReasonMalformed, Err: err}
	}
	rec.Normalize()
	return rec, nil
}

func decodeRecord(candidate string) (entities.SummaryRecord, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(candidate), &fields); err != nil {
		return entities.SummaryRecord{}, fmt.Errorf("failed to parse JSON response: %w", err)
	}
	if fields == nil {
		return entities.SummaryRecord{}, fmt.Errorf("response is not a JSON object")
	}

	// Missing and null fields keep their zero value; a present field of the wrong type is rejected.
	var rec entities.SummaryRecord
	if err := json.Unmarshal([]byte(candidate), &rec); err != nil {
		return entities.SummaryRecord{}, fmt.Errorf("unexpected field type: %w", err)
	}
	return rec, nil
}
