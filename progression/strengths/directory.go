package strengths

import (
	"strings"

	"github.com/ellavondegurechaff/strengthforge/progression/database/models"
)

var defaultDirectory = map[string][]string{
	"executing":          {"Achiever", "Arranger", "Consistency", "Discipline", "Focus", "Responsibility"},
	"influencing":        {"Activator", "Command", "Communication", "Competition", "Self-Assurance", "Woo"},
	"relationship":       {"Adaptability", "Developer", "Empathy", "Harmony", "Includer", "Positivity"},
	"strategic_thinking": {"Analytical", "Context", "Futuristic", "Ideation", "Learner", "Strategic"},
}

// DefaultDirectory is the strength catalog seeded into a fresh database. Ids
// are the lower-cased names.
func DefaultDirectory() []*models.Strength {
	var out []*models.Strength
	for _, domain := range []string{"executing", "influencing", "relationship", "strategic_thinking"} {
		for _, name := range defaultDirectory[domain] {
			out = append(out, &models.Strength{ID: strings.ToLower(name), Name: name, Domain: domain})
		}
	}
	return out
}
