package question

// RevalidationPolicy controls whether a confirmed change re-runs Validate.
type RevalidationPolicy int

const (
	// Lazy leaves validation to the caller.
	Lazy RevalidationPolicy = iota
	// Eager re-validates after every confirmed change. It is terminal.
	Eager
)

// Escalate returns the policy in effect after a completed validation. The
// only transition is Lazy to Eager, taken when the validation failed.
func (p RevalidationPolicy) Escalate(valid bool) RevalidationPolicy {
	if p == Eager || valid {
		return p
	}
	return Eager
}

func (p RevalidationPolicy) String() string {
	switch p {
	case Lazy:
		return "lazy"
	case Eager:
		return "eager"
	default:
		return "unknown"
	}
}
