package demande

const (
	StatusPending    = "PENDING"
	StatusApproved   = "APPROVED"
	StatusRefused    = "REFUSED"
	StatusInProgress = "IN_PROGRESS"
)

// DeriveStatus computes the demande status from the two approval flags.
// A single explicit refusal always wins. A request is approved once every
// responsable the employee actually has answered yes: when there is no
// second responsable, the first approval is enough. Anything still
// unanswered stays pending.
func DeriveStatus(approve1, approve2 *bool, hasResponsable2 bool) string {
	if (approve1 != nil && !*approve1) || (approve2 != nil && !*approve2) {
		return StatusRefused
	}
	if approve1 != nil && *approve1 {
		if !hasResponsable2 {
			return StatusApproved
		}
		if approve2 != nil && *approve2 {
			return StatusApproved
		}
	}
	return StatusPending
}
