package assessment

// Question is a single interview prompt. Questions are defined once at
// bank construction and never mutated afterwards.
type Question struct {
	ID         string   `json:"id"`
	Phase      Phase    `json:"phase"`
	Text       string   `json:"question"`
	FollowUps  []string `json:"follow_ups"`
	DataPoints []string `json:"data_points"`
	// Priority ranks questions within a phase, 1 is most critical, 5 least.
	Priority int `json:"priority"`
}
