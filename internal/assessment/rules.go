package assessment

import (
	"encoding/json"
	"fmt"
	"os"
)

// Score increments applied by the urgency rules.
const (
	highUrgencyIncrement   = 10
	mediumUrgencyIncrement = 5
	recentOnsetIncrement   = 3
)

const genericFollowUp = "Could you tell me a bit more about that?"

// shortResponseTokenThreshold is the word count below which a response is
// considered too terse and always earns a generic follow-up.
const shortResponseTokenThreshold = 3

// RuleSet carries every vocabulary and keyword table the extraction and
// scoring heuristics match against. Keeping the tables as data rather than
// inline literals lets deployments tune them without touching control flow.
type RuleSet struct {
	BodyRegions     []string `json:"body_regions"`
	PainDescriptors []string `json:"pain_descriptors"`
	Mechanisms      []string `json:"injury_mechanisms"`

	HighUrgency   []string `json:"high_urgency"`
	MediumUrgency []string `json:"medium_urgency"`
	RecentOnset   []string `json:"recent_onset"`

	RedFlags []string `json:"red_flags"`

	SevereSeverity []string `json:"severe_severity"`
	FallMechanism  []string `json:"fall_mechanism"`
}

// DefaultRules returns the built-in rule tables.
func DefaultRules() *RuleSet {
	return &RuleSet{
		BodyRegions: []string{
			"head", "neck", "shoulder", "arm", "elbow", "wrist", "hand",
			"chest", "back", "abdomen", "hip", "thigh", "knee", "shin",
			"ankle", "foot", "spine", "lower back", "upper back",
		},
		PainDescriptors: []string{
			"sharp", "dull", "burning", "aching", "throbbing", "stabbing",
			"cramping", "shooting", "tingling", "numbness", "stiffness",
		},
		Mechanisms: []string{
			"fall", "twist", "lift", "bend", "slip", "trip", "crash",
			"sports", "accident", "sudden", "gradual", "repetitive",
		},
		HighUrgency: []string{
			"10", "severe", "unbearable", "worst", "emergency",
			"numbness", "weakness", "can't move", "tingling",
			"fever", "nausea", "dizzy", "confused",
		},
		MediumUrgency: []string{
			"8", "9", "very painful", "difficult", "hard to",
			"swelling", "bruising", "stiff", "limited",
		},
		RecentOnset: []string{
			"today", "yesterday", "sudden", "suddenly", "just started",
		},
		RedFlags: []string{
			"numbness", "weakness", "can't move", "paralysis",
			"severe headache", "fever", "nausea", "vomiting",
			"loss of consciousness", "confusion", "chest pain",
		},
		SevereSeverity: []string{"10", "severe", "terrible", "worst"},
		FallMechanism:  []string{"fall", "fell", "trip"},
	}
}

// LoadRules reads rule tables from a JSON file. Fields absent from the file
// keep their default values, so a deployment can override a single table.
func LoadRules(path string) (*RuleSet, error) {
	rules := DefaultRules()
	if path == "" {
		return rules, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}

	if err := json.Unmarshal(data, rules); err != nil {
		return nil, fmt.Errorf("parse rules file: %w", err)
	}

	return rules, nil
}
