package models

import "time"

// DispatchReport summarises one dispatch tick.
type DispatchReport struct {
	Now       string        `json:"now"`
	Selected  int           `json:"selected"`
	Emitted   int           `json:"emitted"`
	Marked    int           `json:"marked"`
	SMSSent   int           `json:"smsSent"`
	SMSFailed int           `json:"smsFailed"`
	Pushed    int           `json:"pushed"`
	Skipped   int           `json:"skipped"`
	Duration  time.Duration `json:"duration"`
}
