package model

import (
	"fmt"
	"slices"

	"github.com/samber/lo"
)

// Staff is the eligibility constraint of a single staff member (a teaching assistant or an instructor)
type Staff struct {
	Id          string          `mapstructure:"id"`
	FullName    string          `mapstructure:"name"`
	Courses     []string        `mapstructure:"courses"`     // Course families the staff member is qualified for
	MaxLoad     float64         `mapstructure:"maxLoad"`     // Zero means unlimited
	Unavailable []*TimeLocation `mapstructure:"unavailable"` // Times the staff member cannot teach at
	Level       string          `mapstructure:"level"`       // If set, only requests with students at this level are taught
}

func (staff *Staff) Name() string {
	return fmt.Sprintf("%v (%v)", staff.FullName, staff.Id)
}

func (staff *Staff) StaffId() string {
	return staff.Id
}

func (staff *Staff) CanTeach(request *Request) bool {
	// Check that:
	// - Staff member is qualified for the course family
	// - Request's load does not exceed the staff member's maximum load
	// - None of the request's sections collide with the staff member's unavailable times
	// - Request has students at the staff member's level
	if !slices.Contains(staff.Courses, request.CourseFamily()) {
		return false
	}
	if staff.MaxLoad > 0 && request.Load() > staff.MaxLoad {
		return false
	}
	if lo.SomeBy(request.sections, func(section *Section) bool {
		return section.HasTime() && lo.SomeBy(staff.Unavailable, func(unavailable *TimeLocation) bool {
			return unavailable != nil && section.Time.HasIntersection(unavailable)
		})
	}) {
		return false
	}
	if staff.Level != "" && request.levels[staff.Level] == 0 {
		return false
	}
	return true
}
