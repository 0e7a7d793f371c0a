package changeapplicationstatus

// Input sets either a status literal or one of the named review actions
// (review, interview, accept, reject).
type Input struct {
	ApplicationID string  `json:"applicationId"`
	Status        string  `json:"status"`
	Action        string  `json:"action"`
	Comment       *string `json:"comment"`
}

type Output struct {
	ApplicationID     string  `json:"applicationId"`
	ApplicationStatus string  `json:"applicationStatus"`
	RespondedAt       string  `json:"respondedAt"`
	RecruiterComment  *string `json:"recruiterComment"`
	Terminal          bool    `json:"terminal"`
}
