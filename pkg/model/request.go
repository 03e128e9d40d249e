package model

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Request is a teaching assignment to be staffed: one or more sections that must all be taught by the same person
type Request struct {
	id         uint64
	courseName string
	sections   []*Section
	link       string // Cross-listing tag, empty when there is none
	load       float64
	loadSet    bool
	levels     map[string]int

	//** Domain cache
	model          *Model
	values         []Assignment
	valuesComputed bool // Distinguishes an absent cache from a computed but empty domain
}

// NewRequest builds a single-section request out of raw section fields. The section takes the request's id
func NewRequest(id uint64, course, section string, dayCode uint, start, length int, room, link string) *Request {
	time := NewTimeLocation(dayCode, start, length, DefaultBreakTime(length))
	return newRequest(id, course, []*Section{NewSection(id, section, time, room, false)}, link)
}

func NewRequestFromSections(id uint64, course string, sections []*Section, link string) (*Request, error) {
	if len(sections) == 0 {
		return nil, fmt.Errorf("request %v (%v): %w", id, course, ErrNoSections)
	}
	return newRequest(id, course, slices.Clone(sections), link), nil
}

// sections must be non-empty and owned by the request
func newRequest(id uint64, course string, sections []*Section, link string) *Request {
	return &Request{
		id:         id,
		courseName: course,
		sections:   sections,
		link:       link,
		levels:     make(map[string]int),
	}
}

func (request *Request) Id() uint64 {
	return request.id
}

func (request *Request) CourseName() string {
	return request.courseName
}

// Returns the course name up to its first space, which identifies the course family (e.g. "CS101" for "CS101 Lab")
func (request *Request) CourseFamily() string {
	family, _, _ := strings.Cut(request.courseName, " ")
	return family
}

func (request *Request) Sections() []*Section {
	return slices.Clone(request.sections)
}

func (request *Request) Link() string {
	return request.link
}

func (request *Request) HasLink() bool {
	return request.link != ""
}

func (request *Request) Levels() map[string]int {
	return request.levels
}

func (request *Request) SetLevel(level string, count int) {
	request.levels[level] = count
}

// SetLoad finalizes the request's load. It can only be done once
func (request *Request) SetLoad(load float64) error {
	if request.loadSet {
		return fmt.Errorf("request %v: %w", request.id, ErrLoadAlreadySet)
	}
	request.load = load
	request.loadSet = true
	return nil
}

func (request *Request) Load() float64 {
	return request.load
}

func (request *Request) LoadSet() bool {
	return request.loadSet
}

func (request *Request) Model() *Model {
	return request.model
}

// Values returns the domain of the request: one assignment per eligible staff member, in the order the
// model holds its constraints. The domain is computed on the first call and cached until ClearValues.
// The returned slice is a copy; writing to it leaves the cache untouched
func (request *Request) Values() []Assignment {
	if request.valuesComputed {
		return slices.Clone(request.values)
	}

	values := make([]Assignment, 0)
	logger := zap.NewNop()
	if request.model != nil {
		logger = request.model.logger
		for _, constraint := range request.model.Constraints() {
			if staff, ok := constraint.(StaffEligibility); ok && staff.CanTeach(request) {
				values = append(values, NewAssignment(request, staff))
			}
		}
	}
	request.SetValues(slices.Clone(values))

	if len(values) == 0 {
		logger.Warn("no staff available for this request", zap.Uint64("request", request.id), zap.String("name", request.Name()))
	} else {
		logger.Debug("computed request domain", zap.Uint64("request", request.id), zap.String("name", request.Name()), zap.Int("values", len(values)))
	}
	return values
}

func (request *Request) SetValues(values []Assignment) {
	request.values = values
	request.valuesComputed = true
}

// ClearValues drops the cached domain so the next call to Values recomputes it
func (request *Request) ClearValues() {
	request.values = nil
	request.valuesComputed = false
}

//** Predicates

// Checks whether both requests belong to the same course family and have at least one section in common
func (request *Request) SameCourse(other *Request) bool {
	return request.CourseFamily() == other.CourseFamily() && request.SameSections(other) > 0
}

// Number of sections of this request that are also sections of the other request
func (request *Request) SameSections(other *Request) int {
	return lo.CountBy(request.sections, func(section *Section) bool {
		return section.Contained(other.sections)
	})
}

func (request *Request) Overlaps(other *Request) bool {
	return lo.SomeBy(request.sections, func(section *Section) bool {
		return section.IsOverlapping(other.sections)
	})
}

func (request *Request) Share(other *Request) int {
	return lo.SumBy(request.sections, func(section *Section) int {
		return section.Share(other.sections)
	})
}

func (request *Request) IsBackToBack(other *Request) int {
	return lo.SumBy(request.sections, func(section *Section) int {
		return section.IsBackToBack(other.sections)
	})
}

func (request *Request) IsBackToBackSameRoom(other *Request) bool {
	return lo.SomeBy(request.sections, func(section *Section) bool {
		return section.IsBackToBackSameRoom(other.sections)
	})
}

//** Display

func (request *Request) Name() string {
	name := request.courseName + " " + strings.Join(lo.Map(request.sections, func(section *Section, _ int) string { return section.String() }), " ")
	if request.HasLink() {
		name += " " + request.link
	}
	return name
}

// String renders the request as a single comma-separated report row:
//
//	<id>,<course>,"<section id>, ...","<time>, ...","<room>, ...",<link>,"<levels>",<load>
func (request *Request) String() string {
	sectionNames := lo.Map(request.sections, func(section *Section, _ int) string {
		if section.SectionName == "" {
			return ""
		}
		return section.String()
	})
	times := lo.Map(request.sections, func(section *Section, _ int) string {
		if !section.HasTime() {
			return ""
		}
		return section.Time.Name(true)
	})
	rooms := lo.Map(request.sections, func(section *Section, _ int) string { return section.Room })

	return fmt.Sprintf("%v,%v,\"%v\",\"%v\",\"%v\",%v,\"%v\",%v",
		request.id,
		request.courseName,
		strings.Join(sectionNames, ", "),
		strings.Join(times, ", "),
		strings.Join(rooms, ", "),
		request.link,
		request.levelsString(),
		formatLoad(request.load),
	)
}

func (request *Request) levelsString() string {
	if len(request.levels) == 0 {
		return "-"
	}

	levels := lo.Keys(request.levels)
	slices.Sort(levels)
	return "{" + strings.Join(lo.Map(levels, func(level string, _ int) string {
		return fmt.Sprintf("%v=%v", level, request.levels[level])
	}), ", ") + "}"
}

// Rounds the shortest decimal form of the load half-up to two decimals and trims trailing zeros
// (3 -> "3", 3.5 -> "3.5", 1.005 -> "1.01", -0.001 -> "0")
func formatLoad(load float64) string {
	if math.IsNaN(load) || math.IsInf(load, 0) {
		return strconv.FormatFloat(load, 'f', -1, 64)
	}
	return decimal.NewFromFloat(load).Round(2).String()
}
