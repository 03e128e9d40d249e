package model

import "fmt"

// Assignment pairs a request with a staff member that was eligible for it when the pair was built
type Assignment struct {
	request *Request
	staff   StaffEligibility
}

func NewAssignment(request *Request, staff StaffEligibility) Assignment {
	return Assignment{request: request, staff: staff}
}

func (assignment Assignment) Request() *Request {
	return assignment.request
}

func (assignment Assignment) Staff() StaffEligibility {
	return assignment.staff
}

// Two assignments are equal when they pair the same request (by reference) with the same staff member
func (assignment Assignment) Equal(other Assignment) bool {
	return assignment.request == other.request && assignment.staff.StaffId() == other.staff.StaffId()
}

func (assignment Assignment) String() string {
	return fmt.Sprintf("%v := %v", assignment.request.Name(), assignment.staff.StaffId())
}
