package enums

// ValidationOutcome labels a cart verdict for metrics and logs.
type ValidationOutcome string

const (
	ValidationOutcomeCheckoutAllowed ValidationOutcome = "checkout_allowed"
	ValidationOutcomeCheckoutBlocked ValidationOutcome = "checkout_blocked"
)

// String implements fmt.Stringer.
func (v ValidationOutcome) String() string {
	return string(v)
}

// OutcomeFor maps the checkout gate onto a ValidationOutcome.
func OutcomeFor(canProceed bool) ValidationOutcome {
	if canProceed {
		return ValidationOutcomeCheckoutAllowed
	}
	return ValidationOutcomeCheckoutBlocked
}
