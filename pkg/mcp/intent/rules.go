package intent

import (
	"regexp"
	"strings"
)

const (
	keywordWeight = 0.3
	boostWeight   = 0.8
)

// Bonus adds Score when Pattern matches, or when every literal in AllOf is
// present. A bonus with both set requires both.
type Bonus struct {
	Score   float64
	Pattern *regexp.Regexp
	AllOf   []string
}

func (b Bonus) matches(lower string) bool {
	if b.Pattern == nil && len(b.AllOf) == 0 {
		return false
	}
	if b.Pattern != nil && !b.Pattern.MatchString(lower) {
		return false
	}
	for _, literal := range b.AllOf {
		if !strings.Contains(lower, literal) {
			return false
		}
	}
	return true
}

// Definition descreve as regras de pontuação de uma intenção
type Definition struct {
	Name          IntentName
	Keywords      []string
	BoostPatterns []*regexp.Regexp
	Bonuses       []Bonus
}

// score computes keyword, boost and bonus contributions in that order.
func (d Definition) score(lower string) float64 {
	matches := 0
	for _, keyword := range d.Keywords {
		if strings.Contains(lower, keyword) {
			matches++
		}
	}
	score := float64(matches) * keywordWeight

	for _, pattern := range d.BoostPatterns {
		if pattern.MatchString(lower) {
			score += boostWeight
		}
	}
	for _, bonus := range d.Bonuses {
		if bonus.matches(lower) {
			score += bonus.Score
		}
	}
	return score
}

// definitions is the intent table. Order matters: on equal scores the earlier
// definition wins.
var definitions = []Definition{
	{
		Name: TimeChange,
		Keywords: []string{
			"move", "change time", "reschedule", "shift", "delay",
			"earlier", "later", "from", "to",
		},
		BoostPatterns: compileAll(
			`from \d+:\d+ to \d+:\d+`,
			`at \d+:\d+`,
			`time.*change`,
		),
	},
	{
		Name: LocationChange,
		Keywords: []string{
			"move to", "change location", "relocate", "different room",
			"new venue", "room", "hall",
		},
		BoostPatterns: compileAll(
			`to room [a-z]`,
			`move.*to.*room`,
			`location.*change`,
		),
		Bonuses: []Bonus{
			{Score: 1.0, Pattern: regexp.MustCompile(`move.*to\s+room\s+[a-z]`)},
			{Score: 0.7, AllOf: []string{"room", "move"}},
		},
	},
	{
		Name:     SpeakerChange,
		Keywords: []string{"replace speaker", "new speaker", "speaker change", "substitute"},
		BoostPatterns: compileAll(
			`speaker.*change`,
			`replace.*speaker`,
		),
	},
	{
		Name:     CancelEvent,
		Keywords: []string{"cancel", "remove", "delete event", "call off"},
		BoostPatterns: compileAll(
			`cancel.*event`,
			`cancel.*workshop`,
			`call off`,
		),
		Bonuses: []Bonus{
			{Score: 0.8, AllOf: []string{"cancel"}},
		},
	},
	{
		Name:     AddEvent,
		Keywords: []string{"add", "create", "new event", "schedule"},
		BoostPatterns: compileAll(
			`add.*event`,
			`create.*event`,
			`new.*event`,
		),
	},
	{
		Name:     QueryInfo,
		Keywords: []string{"what", "when", "where", "who", "how", "tell me", "info about"},
		BoostPatterns: compileAll(
			`what.*\?`,
			`when.*\?`,
			`where.*\?`,
			`tell me about`,
		),
	},
}

// Definitions returns a copy of the intent table in declaration order.
func Definitions() []Definition {
	out := make([]Definition, len(definitions))
	copy(out, definitions)
	return out
}

// Names returns the recognised intents in declaration order.
func Names() []IntentName {
	names := make([]IntentName, 0, len(definitions))
	for _, d := range definitions {
		names = append(names, d.Name)
	}
	return names
}

func compileAll(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, regexp.MustCompile(p))
	}
	return out
}
