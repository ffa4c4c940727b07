package domain

// Raw, unvalidated form state as submitted by the browser.
// MaxLoad is kept as text so that parse failures surface as validation
// notifications rather than decode errors.
type FormInput struct {
	Depot       string
	MaxLoad     string
	Constraints []ConstraintRow
}

// One origin/destination row of the form, in display order.
type ConstraintRow struct {
	Origin      string
	Destination string
}
