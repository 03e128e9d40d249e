package model

import (
	"fmt"

	"github.com/samber/lo"
)

// Section is a single meeting pattern of a course (a lecture, a lab, a discussion)
type Section struct {
	SectionId    uint64
	SectionName  string
	Time         *TimeLocation // nil when the section has no assigned time
	Room         string        // Empty when the section has no assigned room
	AllowOverlap bool          // Linked sections that may be overlapped by anything
}

func NewSection(sectionId uint64, sectionName string, time *TimeLocation, room string, allowOverlap bool) *Section {
	return &Section{
		SectionId:    sectionId,
		SectionName:  sectionName,
		Time:         time,
		Room:         room,
		AllowOverlap: allowOverlap,
	}
}

func (section *Section) HasTime() bool {
	return section.Time != nil
}

func (section *Section) HasRoom() bool {
	return section.Room != ""
}

// Two sections are equal when they have the same section id
func (section *Section) Equal(other *Section) bool {
	return other != nil && section.SectionId == other.SectionId
}

func (section *Section) Contained(sections []*Section) bool {
	return lo.SomeBy(sections, section.Equal)
}

func (section *Section) overlapsWith(other *Section) bool {
	if section.AllowOverlap || other.AllowOverlap || !section.HasTime() || !other.HasTime() {
		return false
	}
	return section.Time.HasIntersection(other.Time)
}

// Checks whether the section overlaps in time with any of the given sections
func (section *Section) IsOverlapping(sections []*Section) bool {
	return lo.SomeBy(sections, section.overlapsWith)
}

// Minutes this section shares with the given sections, summed over every overlapping pair
func (section *Section) Share(sections []*Section) int {
	return lo.SumBy(sections, func(other *Section) int {
		if !section.overlapsWith(other) {
			return 0
		}
		return section.Time.NrSharedDays(other.Time) * section.Time.NrSharedSlots(other.Time) * SlotMinutes
	})
}

func (section *Section) backToBackWith(other *Section) bool {
	return section.HasTime() && other.HasTime() && section.Time.IsBackToBack(other.Time)
}

// Number of given sections that are back-to-back with this one, regardless of the room
func (section *Section) IsBackToBack(sections []*Section) int {
	return lo.CountBy(sections, section.backToBackWith)
}

// Checks whether any of the given sections is back-to-back with this one in the very same room
func (section *Section) IsBackToBackSameRoom(sections []*Section) bool {
	return lo.SomeBy(sections, func(other *Section) bool {
		return section.HasRoom() && other.HasRoom() && section.Room == other.Room && section.backToBackWith(other)
	})
}

func (section *Section) String() string {
	return fmt.Sprintf("%v %v", section.SectionName, section.SectionId)
}
