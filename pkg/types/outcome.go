// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Outcome is the full record of one research run: the screening
// decision, the assembled research result when screening allowed it, and
// the verification report. Blocked runs carry only the decision.
type Outcome struct {
	RunID     string    `json:"run_id" yaml:"run_id"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`

	Request Request        `json:"request" yaml:"request"`
	Safety  SafetyDecision `json:"safety" yaml:"safety"`

	Result *ResearchResult     `json:"result,omitempty" yaml:"result,omitempty"`
	Report *VerificationReport `json:"report,omitempty" yaml:"report,omitempty"`
}

// Status summarizes the outcome for listings: "blocked" for screened-out
// runs, otherwise the verification status.
func (o *Outcome) Status() string {
	if !o.Safety.Allowed {
		return "blocked"
	}
	if o.Report == nil {
		return ""
	}
	return string(o.Report.Status)
}
