package getapplication

import "recruit-workers/internal/lifecycle"

type Input struct {
	ApplicationID string `json:"applicationId"`
}

type Output struct {
	Application       *lifecycle.Application `json:"application"`
	ApplicationStatus string                 `json:"applicationStatus"`
	Score             int                    `json:"compatibilityScore"`
}
