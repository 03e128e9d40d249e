package model

import (
	"math"
	"math/rand"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRequest(t *testing.T, id uint64, course string, sections []*Section, link string) *Request {
	t.Helper()
	request, err := NewRequestFromSections(id, course, sections, link)
	require.NoError(t, err)
	return request
}

func TestNewRequest(t *testing.T) {
	t.Run("Single section from raw fields", func(t *testing.T) {
		request := NewRequest(7, "CS101 Lecture", "A", mwf, 90, 18, "ENG 101", "")

		sections := request.Sections()
		assert.Len(t, sections, 1)
		assert.Equal(t, uint64(7), sections[0].SectionId)
		assert.Equal(t, 15, sections[0].Time.BreakTime)
		assert.False(t, sections[0].AllowOverlap)
		assert.False(t, request.HasLink())
		assert.NotNil(t, request.Levels())
		assert.Empty(t, request.Levels())
		assert.Equal(t, "CS101", request.CourseFamily())

		assert.Equal(t, 10, NewRequest(8, "CS101", "B", mwf, 90, 12, "", "X").Sections()[0].Time.BreakTime)
	})

	t.Run("Empty section list is rejected", func(t *testing.T) {
		request, err := NewRequestFromSections(1, "CS101", nil, "")
		assert.Nil(t, request)
		assert.ErrorIs(t, err, ErrNoSections)
	})

	t.Run("Sections are copied", func(t *testing.T) {
		sections := []*Section{NewSection(1, "A", nil, "", false)}
		request := mustRequest(t, 1, "CS101", sections, "")
		sections[0] = NewSection(2, "B", nil, "", false)
		assert.Equal(t, uint64(1), request.Sections()[0].SectionId)
	})
}

func TestRequestLoad(t *testing.T) {
	g := NewWithT(t)
	request := NewRequest(1, "CS101", "A", mwf, 90, 12, "", "")
	g.Expect(request.LoadSet()).To(BeFalse())

	g.Expect(request.SetLoad(2.5)).To(Succeed())
	g.Expect(request.LoadSet()).To(BeTrue())
	g.Expect(request.Load()).To(Equal(2.5))

	g.Expect(request.SetLoad(4)).To(MatchError(ErrLoadAlreadySet))
	g.Expect(request.Load()).To(Equal(2.5))
}

func TestSameCourseAndSections(t *testing.T) {
	//** Arrange
	lecture := NewSection(1, "Lec", NewTimeLocation(mwf, 90, 12, 10), "ENG 101", false)
	lab := NewSection(2, "Lab", NewTimeLocation(tth, 90, 12, 10), "ENG 201", false)
	otherLab := NewSection(3, "Lab", NewTimeLocation(tth, 120, 12, 10), "ENG 201", false)

	a := mustRequest(t, 1, "CS101 Intro", []*Section{lecture, lab}, "")
	b := mustRequest(t, 2, "CS101 Labs", []*Section{NewSection(2, "Lab", nil, "", false), otherLab}, "")
	c := mustRequest(t, 3, "CS101 Other", []*Section{otherLab}, "")
	d := mustRequest(t, 4, "MATH200", []*Section{lecture}, "")

	//** Act & Assert
	assert.Equal(t, 1, a.SameSections(b))
	assert.True(t, a.SameCourse(b))

	// Same family, no shared section
	assert.Equal(t, 0, a.SameSections(c))
	assert.False(t, a.SameCourse(c))

	// Shared section, different family
	assert.Equal(t, 1, a.SameSections(d))
	assert.False(t, a.SameCourse(d))

	assert.Equal(t, 2, a.SameSections(a))
}

func TestConflictPredicates(t *testing.T) {
	t.Run("Back-to-back in different rooms", func(t *testing.T) {
		a := NewRequest(1, "CS101", "A", mwf, 90, 12, "ENG 101", "")
		b := NewRequest(2, "CS102", "B", mwf, 102, 12, "ENG 102", "")

		assert.Equal(t, 1, a.IsBackToBack(b))
		assert.False(t, a.IsBackToBackSameRoom(b))
		assert.False(t, a.Overlaps(b))
		assert.Equal(t, 0, a.Share(b))
	})

	t.Run("Back-to-back in the same room", func(t *testing.T) {
		a := NewRequest(1, "CS101", "A", mwf, 90, 12, "ENG 101", "")
		b := NewRequest(2, "CS102", "B", mwf, 102, 12, "ENG 101", "")

		assert.Equal(t, 1, a.IsBackToBack(b))
		assert.True(t, a.IsBackToBackSameRoom(b))
	})

	t.Run("Multiple sections accumulate", func(t *testing.T) {
		a := mustRequest(t, 1, "CS101", []*Section{
			NewSection(1, "Lec", NewTimeLocation(mwf, 90, 12, 10), "ENG 101", false),
			NewSection(2, "Lab", NewTimeLocation(mwf, 126, 12, 10), "ENG 101", false),
		}, "")
		b := mustRequest(t, 2, "CS102", []*Section{
			NewSection(3, "Lec", NewTimeLocation(mwf, 102, 12, 10), "ENG 102", false),
			NewSection(4, "Lab", NewTimeLocation(Monday, 120, 12, 10), "ENG 103", false),
		}, "")

		assert.Equal(t, 1, a.IsBackToBack(b))
		assert.True(t, a.Overlaps(b))
		assert.True(t, b.Overlaps(a))
		// Lab vs lab: Monday only, slots 126-132
		assert.Equal(t, 30, a.Share(b))
		assert.Equal(t, a.Share(b), b.Share(a))
	})

	t.Run("Sections without time never contribute", func(t *testing.T) {
		a := mustRequest(t, 1, "CS101", []*Section{NewSection(1, "Online", nil, "", false)}, "")
		b := NewRequest(2, "CS102", "B", mwf, 90, 12, "ENG 101", "")

		assert.False(t, a.Overlaps(b))
		assert.Equal(t, 0, a.Share(b))
		assert.Equal(t, 0, a.IsBackToBack(b))
		assert.False(t, a.IsBackToBackSameRoom(b))
	})
}

func TestPredicateProperties(t *testing.T) {
	random := rand.New(rand.NewSource(42))
	randomRequest := func(id uint64) *Request {
		sections := make([]*Section, 0)
		for _, sectionId := range random.Perm(12)[:random.Intn(4)+1] {
			var time *TimeLocation
			if random.Intn(5) > 0 {
				time = NewTimeLocation(uint(random.Intn(127)+1), 84+6*random.Intn(20), 6*(random.Intn(3)+1), 10)
			}
			sections = append(sections, NewSection(uint64(sectionId), "S", time, "", random.Intn(6) == 0))
		}
		return mustRequest(t, id, "CS101", sections, "")
	}

	for i := 0; i < 200; i++ {
		a, b := randomRequest(uint64(2*i)), randomRequest(uint64(2*i+1))

		assert.Equal(t, a.Overlaps(b), b.Overlaps(a))
		assert.LessOrEqual(t, a.SameSections(b), min(len(a.Sections()), len(b.Sections())))
		if !a.Overlaps(b) {
			assert.Equal(t, 0, a.Share(b))
		}
		if a.SameCourse(b) {
			assert.Equal(t, a.CourseFamily(), b.CourseFamily())
		}
	}
}

func TestRequestDisplay(t *testing.T) {
	t.Run("Report row", func(t *testing.T) {
		request := mustRequest(t, 101, "CS101", []*Section{
			NewSection(202, "A", NewTimeLocation(mwf, 90, 12, 10), "ENG 101", false),
		}, "")
		require.NoError(t, request.SetLoad(3.0))

		assert.Equal(t, `101,CS101,"A 202","MWF 7:30a - 8:20a","ENG 101",,"-",3`, request.String())
	})

	t.Run("Absent time and room keep their slot", func(t *testing.T) {
		request := mustRequest(t, 5, "CS101 Lab", []*Section{
			NewSection(6, "L1", nil, "ENG 201", false),
			NewSection(7, "L2", NewTimeLocation(tth, 156, 18, 15), "", false),
		}, "X1")
		request.SetLevel("U", 3)
		request.SetLevel("G", 2)
		require.NoError(t, request.SetLoad(1.456))

		assert.Equal(t, `5,CS101 Lab,"L1 6, L2 7",", TTh 1:00p - 2:15p","ENG 201, ",X1,"{G=2, U=3}",1.46`, request.String())
	})

	t.Run("Load rounding", func(t *testing.T) {
		scenarios := map[float64]string{
			0:     "0",
			3:     "3",
			3.5:   "3.5",
			0.125: "0.13",
			2.999: "3",
			// Decimal ties that are not exact in binary
			1.005: "1.01",
			1.255: "1.26",
			0.285: "0.29",
			2.675: "2.68",
			4.445: "4.45",
			1.115: "1.12",
			// Negative values that round to zero lose their sign
			-0.001: "0",
			-0.004: "0",
		}
		for load, expected := range scenarios {
			assert.Equal(t, expected, formatLoad(load), "load %v", load)
		}
		assert.Equal(t, "NaN", formatLoad(math.NaN()))
		assert.Equal(t, "+Inf", formatLoad(math.Inf(1)))
	})

	t.Run("Name", func(t *testing.T) {
		request := mustRequest(t, 1, "CS101", []*Section{
			NewSection(1, "Lec", nil, "", false),
			NewSection(2, "Lab", nil, "", false),
		}, "X1")
		assert.Equal(t, "CS101 Lec 1 Lab 2 X1", request.Name())
		assert.Equal(t, "CS101 A 3", NewRequest(3, "CS101", "A", mwf, 90, 12, "", "").Name())
	})
}
