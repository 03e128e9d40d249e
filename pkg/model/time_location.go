package model

import (
	"fmt"
	"math/bits"
	"strings"
)

// Day codes are bit flags, Monday being the most significant one
const (
	Monday    uint = 64
	Tuesday   uint = 32
	Wednesday uint = 16
	Thursday  uint = 8
	Friday    uint = 4
	Saturday  uint = 2
	Sunday    uint = 1
)

const SlotMinutes = 5

var dayCodes = []uint{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}
var dayNamesShort = []string{"M", "T", "W", "Th", "F", "S", "Su"}

// TimeLocation is a weekly meeting pattern: a set of days plus a start slot and a length (both in 5-minute slots)
type TimeLocation struct {
	DayCode   uint
	StartSlot int
	Length    int
	BreakTime int // Minutes taken off the printed end time
}

func NewTimeLocation(dayCode uint, startSlot, length, breakTime int) *TimeLocation {
	return &TimeLocation{
		DayCode:   dayCode,
		StartSlot: startSlot,
		Length:    length,
		BreakTime: breakTime,
	}
}

// Break time of a standard meeting: 15 minutes for 90-minute meetings, 10 otherwise
func DefaultBreakTime(length int) int {
	if length == 18 {
		return 15
	}
	return 10
}

func (time *TimeLocation) EndSlot() int {
	return time.StartSlot + time.Length
}

// Checks whether both time locations meet on at least one common day
func (time *TimeLocation) ShareDays(other *TimeLocation) bool {
	return time.DayCode&other.DayCode != 0
}

// Checks whether the slot ranges [start, start+length) intersect
func (time *TimeLocation) ShareHours(other *TimeLocation) bool {
	return time.StartSlot < other.EndSlot() && other.StartSlot < time.EndSlot()
}

func (time *TimeLocation) HasIntersection(other *TimeLocation) bool {
	return time.ShareDays(other) && time.ShareHours(other)
}

func (time *TimeLocation) NrSharedDays(other *TimeLocation) int {
	return bits.OnesCount(time.DayCode & other.DayCode)
}

func (time *TimeLocation) NrSharedSlots(other *TimeLocation) int {
	shared := min(time.EndSlot(), other.EndSlot()) - max(time.StartSlot, other.StartSlot)
	return max(shared, 0)
}

// Checks whether one time location ends exactly when the other starts on a common day
func (time *TimeLocation) IsBackToBack(other *TimeLocation) bool {
	return time.ShareDays(other) && (time.EndSlot() == other.StartSlot || other.EndSlot() == time.StartSlot)
}

func (time *TimeLocation) DayHeader() string {
	var builder strings.Builder
	for i, code := range dayCodes {
		if time.DayCode&code != 0 {
			builder.WriteString(dayNamesShort[i])
		}
	}
	return builder.String()
}

func (time *TimeLocation) StartTimeHeader(useAmPm bool) string {
	return formatMinutes(time.StartSlot*SlotMinutes, useAmPm)
}

func (time *TimeLocation) EndTimeHeader(useAmPm bool) string {
	return formatMinutes(time.EndSlot()*SlotMinutes-time.BreakTime, useAmPm)
}

// Name returns a label such as "MWF 7:30a - 8:20a"
func (time *TimeLocation) Name(useAmPm bool) string {
	return fmt.Sprintf("%s %s - %s", time.DayHeader(), time.StartTimeHeader(useAmPm), time.EndTimeHeader(useAmPm))
}

func (time *TimeLocation) String() string {
	return time.Name(true)
}

func formatMinutes(minutes int, useAmPm bool) string {
	hour, minute := minutes/60, minutes%60
	if !useAmPm {
		return fmt.Sprintf("%02d:%02d", hour, minute)
	}

	suffix := "a"
	if hour >= 12 && hour < 24 {
		suffix = "p"
	}
	hour = hour % 12
	if hour == 0 {
		hour = 12
	}
	return fmt.Sprintf("%d:%02d%s", hour, minute, suffix)
}
