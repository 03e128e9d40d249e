package model

// Constraint is anything registered in a model. Callers discover the capabilities a constraint offers through type assertions
type Constraint interface {
	// Returns a human-readable name for the constraint
	Name() string
}

// StaffEligibility is the capability of a constraint that stands for a single staff member
type StaffEligibility interface {
	Constraint

	// Returns the identity of the staff member the constraint stands for
	StaffId() string

	// Checks whether the staff member may be assigned to the request
	CanTeach(request *Request) bool
}
