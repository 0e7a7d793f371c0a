package recordinterview

type Input struct {
	ApplicationID    string          `json:"applicationId"`
	ChecklistResults map[string]bool `json:"checklistResults"`
	// SkillComments is keyed by the offer's skill index.
	SkillComments map[int]string `json:"skillComments"`
	Notes         string         `json:"notes"`
}

type Output struct {
	ApplicationID     string `json:"applicationId"`
	ApplicationStatus string `json:"applicationStatus"`
	RespondedAt       string `json:"respondedAt"`
	ChecklistPassed   int    `json:"checklistPassed"`
	ChecklistTotal    int    `json:"checklistTotal"`
}
