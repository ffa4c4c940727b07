package domain

// Directional origin -> destination pairing entered by the user.
// Both codes are validated against the location registry.
type Constraint struct {
	Origin      string
	Destination string
}

// Validated input handed to the remote solver.
//
// Constraints are collected and validated but are not part of the wire
// payload the solver accepts today.
type SolveRequest struct {
	DepotCode   string
	Depot       Coordinates
	MaxLoad     int
	Constraints []Constraint
}

// Represents a single vehicle route produced by the remote solver.
// Stops are location codes in visiting order. EstimatedTime is an opaque
// display string and is never parsed.
type Route struct {
	Stops         []string
	TotalWeight   float64
	Cost          float64
	EstimatedTime string
}

// Solver output. An empty Routes slice means "no routes found" and is not
// an error.
type SolveResponse struct {
	Routes []Route
}
