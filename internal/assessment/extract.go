package assessment

import (
	"regexp"
	"strconv"
	"strings"
)

var integerToken = regexp.MustCompile(`\b(\d+)\b`)

// extractDataPoints pulls structured fields out of a free-text response.
// Matching is case-insensitive substring containment; there is no stemming
// and no negation handling ("no numbness" still matches "numbness"), a
// known limitation of the vocabulary approach.
func extractDataPoints(rules *RuleSet, question Question, response string) map[string]any {
	extracted := make(map[string]any)
	lower := strings.ToLower(response)

	switch question.ID {
	case "pain_severity":
		if m := integerToken.FindStringSubmatch(response); m != nil {
			if level, err := strconv.Atoi(m[1]); err == nil {
				extracted["pain_level_current"] = level
			}
		}
	case "pain_location":
		if regions := matchVocabulary(lower, rules.BodyRegions); len(regions) > 0 {
			extracted["affected_body_regions"] = regions
		}
	case "pain_quality":
		if descriptors := matchVocabulary(lower, rules.PainDescriptors); len(descriptors) > 0 {
			extracted["pain_descriptors"] = descriptors
		}
	case "injury_mechanism":
		if mechanisms := matchVocabulary(lower, rules.Mechanisms); len(mechanisms) > 0 {
			extracted["injury_mechanisms"] = mechanisms
		}
	}

	// Every question also stores the verbatim response under each of its
	// declared data point names.
	for _, dataPoint := range question.DataPoints {
		extracted[dataPoint+"_raw"] = response
	}

	return extracted
}

// scoreResponse returns the priority increment a response earns. The high
// and medium urgency rules are mutually exclusive; the recent-onset bonus
// for the chief complaint stacks on top of either.
func scoreResponse(rules *RuleSet, questionID, response string) int {
	lower := strings.ToLower(response)

	score := 0
	if containsAny(lower, rules.HighUrgency) {
		score += highUrgencyIncrement
	} else if containsAny(lower, rules.MediumUrgency) {
		score += mediumUrgencyIncrement
	}

	if questionID == "pain_chief_complaint" && containsAny(lower, rules.RecentOnset) {
		score += recentOnsetIncrement
	}

	return score
}

// followUpFor decides whether a follow-up prompt should be asked for a
// response, returning "" when none is warranted... which never happens
// today: terse answers get the generic prompt and everything else falls
// through to the adaptive lookup.
func followUpFor(rules *RuleSet, question Question, response string) string {
	if len(strings.Fields(response)) < shortResponseTokenThreshold {
		return genericFollowUp
	}
	return adaptiveFollowUp(rules, question, response)
}

// adaptiveFollowUp selects a follow-up based on the response content, with
// three hand-tuned special cases, falling back to the question's first
// declared follow-up.
func adaptiveFollowUp(rules *RuleSet, question Question, response string) string {
	lower := strings.ToLower(response)

	switch {
	case question.ID == "pain_severity" && containsAny(lower, rules.SevereSeverity):
		return "That sounds very intense. Have you experienced pain this severe before? Have you been able to find anything that helps even a little?"
	case question.ID == "pain_location" && strings.Contains(lower, "back"):
		return "When you say back pain, can you be more specific? Is it in your lower back, middle back, or upper back? Does it go into your legs at all?"
	case question.ID == "injury_mechanism" && containsAny(lower, rules.FallMechanism):
		return "That sounds like it could have been quite a fall. Did you land on a specific part of your body? Did you hit your head at all?"
	}

	if len(question.FollowUps) > 0 {
		return question.FollowUps[0]
	}
	return "Can you tell me more about that?"
}

func matchVocabulary(lower string, vocabulary []string) []string {
	var matched []string
	for _, term := range vocabulary {
		if strings.Contains(lower, term) {
			matched = append(matched, term)
		}
	}
	return matched
}

func containsAny(lower string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}
