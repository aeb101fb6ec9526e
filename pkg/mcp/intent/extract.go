package intent

import (
	"fmt"
	"regexp"
	"strings"
)

// Parameter keys set by the extractors.
const (
	ParamEventName    = "event_name"
	ParamOldTime      = "old_time"
	ParamNewTime      = "new_time"
	ParamNewLocation  = "new_location"
	ParamQuerySubject = "query_subject"
)

const (
	rephraseAction = "Please rephrase your request more clearly"
	genericAction  = "Process the request according to the identified intent"
	cancelAction   = "Cancel the specified event and notify all attendees"
)

var (
	eventKeywords = []string{"keynote", "lunch", "panel", "workshop", "registration", "coffee", "break"}
	querySubjects = []string{"wifi", "password", "parking", "location", "schedule", "lunch", "time"}

	timeRangePattern = regexp.MustCompile(`from (\d{1,2}:?\d{0,2})\s*(?:am|pm)?\s*to (\d{1,2}:?\d{0,2})\s*(?:am|pm)?`)

	locationPatterns = []*regexp.Regexp{
		regexp.MustCompile(`to (room [a-z])`),
		regexp.MustCompile(`to (.+?)(?:\s+due to|\s+because|\s*$)`),
	}
)

// extractParameters runs the extractor of a single intent over lower-cased text.
func extractParameters(name IntentName, lower string) map[string]string {
	params := make(map[string]string)

	switch name {
	case TimeChange:
		if m := timeRangePattern.FindStringSubmatch(lower); m != nil {
			params[ParamOldTime] = m[1]
			params[ParamNewTime] = m[2]
		}
		setFirst(params, ParamEventName, lower, eventKeywords)

	case LocationChange:
		for _, pattern := range locationPatterns {
			if m := pattern.FindStringSubmatch(lower); m != nil {
				params[ParamNewLocation] = strings.TrimSpace(m[1])
				break
			}
		}
		setFirst(params, ParamEventName, lower, eventKeywords)

	case QueryInfo:
		setFirst(params, ParamQuerySubject, lower, querySubjects)
	}

	return params
}

func setFirst(params map[string]string, key, lower string, candidates []string) {
	for _, candidate := range candidates {
		if strings.Contains(lower, candidate) {
			params[key] = candidate
			return
		}
	}
}

// suggestAction builds the human readable next step for a classification.
func suggestAction(name IntentName, params map[string]string) string {
	switch name {
	case TimeChange:
		return fmt.Sprintf("Update %s time from %s to %s and notify attendees",
			paramOr(params, ParamEventName, "event"),
			paramOr(params, ParamOldTime, "current time"),
			paramOr(params, ParamNewTime, "new time"))
	case LocationChange:
		return fmt.Sprintf("Change event location to %s and notify attendees",
			paramOr(params, ParamNewLocation, "new location"))
	case QueryInfo:
		return fmt.Sprintf("Provide %s information from event data",
			paramOr(params, ParamQuerySubject, "information"))
	case CancelEvent:
		return cancelAction
	case Unknown:
		return rephraseAction
	default:
		return genericAction
	}
}

func paramOr(params map[string]string, key, fallback string) string {
	if v, ok := params[key]; ok {
		return v
	}
	return fallback
}
