package csvio

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/limaJavier/tarequests/pkg/model"
	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// SectionRow is one line of a requests file. Rows sharing a request id make up a multi-section request
type SectionRow struct {
	RequestId    uint64  `csv:"request_id"`
	Course       string  `csv:"course"`
	SectionName  string  `csv:"section"`
	SectionId    uint64  `csv:"section_id"`
	DayCode      uint    `csv:"day_code"` // Zero when the section has no time
	Start        int     `csv:"start"`
	Length       int     `csv:"length"`
	Room         string  `csv:"room"`
	Link         string  `csv:"link"`
	Load         float64 `csv:"load"`
	Levels       string  `csv:"levels"` // Formatted as "G:2;U:3"
	AllowOverlap bool    `csv:"allow_overlap"`
}

var (
	errInvalidLevels    = errors.New("invalid levels")
	errInconsistentRow  = errors.New("row disagrees with the first row of its request")
	errMissingStaffId   = errors.New("missing id")
	errEmptyUnavailable = errors.New("empty unavailable time")
)

type rowError struct {
	line int
	err  error
}

func (err rowError) Error() string {
	return fmt.Sprintf("line %d: %v", err.line, err.err)
}

func (err rowError) Unwrap() error {
	return err.err
}

// LoadRequests parses the rows of a requests file and builds one request per distinct request id, in order of
// first appearance. Each request's load (the sum of its rows' loads) is set once all of its rows are read
func LoadRequests(in io.Reader, delimiter rune, logger *zap.Logger) ([]*model.Request, error) {
	reader := csv.NewReader(in)
	reader.Comma = delimiter

	rows := []*SectionRow{}
	if err := gocsv.UnmarshalCSV(reader, &rows); err != nil {
		return nil, fmt.Errorf("cannot parse requests: %w", err)
	}

	order := lo.Uniq(lo.Map(rows, func(row *SectionRow, _ int) uint64 { return row.RequestId }))
	lines := make(map[*SectionRow]int, len(rows))
	for i, row := range rows {
		lines[row] = i + 2 // Header is line 1
	}
	grouped := lo.GroupBy(rows, func(row *SectionRow) uint64 { return row.RequestId })

	requests := make([]*model.Request, 0, len(order))
	for _, id := range order {
		request, err := buildRequest(grouped[id], lines)
		if err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}

	logger.Info("loaded requests", zap.Int("rows", len(rows)), zap.Int("requests", len(requests)))
	return requests, nil
}

func buildRequest(rows []*SectionRow, lines map[*SectionRow]int) (*model.Request, error) {
	first := rows[0]
	for _, row := range rows[1:] {
		if row.Course != first.Course || row.Link != first.Link {
			return nil, rowError{line: lines[row], err: fmt.Errorf("%w: request %v", errInconsistentRow, row.RequestId)}
		}
	}

	sections := lo.Map(rows, func(row *SectionRow, _ int) *model.Section {
		var time *model.TimeLocation
		if row.DayCode != 0 {
			time = model.NewTimeLocation(row.DayCode, row.Start, row.Length, model.DefaultBreakTime(row.Length))
		}
		return model.NewSection(row.SectionId, row.SectionName, time, row.Room, row.AllowOverlap)
	})

	request, err := model.NewRequestFromSections(first.RequestId, first.Course, sections, first.Link)
	if err != nil {
		return nil, rowError{line: lines[first], err: err}
	}

	for _, row := range rows {
		levels, err := parseLevels(row.Levels)
		if err != nil {
			return nil, rowError{line: lines[row], err: err}
		}
		for level, count := range levels {
			request.SetLevel(level, request.Levels()[level]+count)
		}
	}

	if err := request.SetLoad(lo.SumBy(rows, func(row *SectionRow) float64 { return row.Load })); err != nil {
		return nil, rowError{line: lines[first], err: err}
	}
	return request, nil
}

func parseLevels(levels string) (map[string]int, error) {
	result := make(map[string]int)
	for _, pair := range strings.Split(levels, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		level, countStr, ok := strings.Cut(pair, ":")
		if !ok {
			return nil, fmt.Errorf("%w: %q", errInvalidLevels, pair)
		}
		count, err := strconv.Atoi(strings.TrimSpace(countStr))
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", errInvalidLevels, pair, err)
		}
		result[strings.TrimSpace(level)] += count
	}
	return result, nil
}

// DecodeStaff turns a generic record (as decoded from JSON) into a staff constraint
func DecodeStaff(record map[string]any) (*model.Staff, error) {
	var staff model.Staff
	if err := mapstructure.Decode(record, &staff); err != nil {
		return nil, fmt.Errorf("cannot decode staff record: %w", err)
	}
	if staff.Id == "" {
		return nil, fmt.Errorf("cannot decode staff record: %w", errMissingStaffId)
	}
	if slices.Contains(staff.Unavailable, nil) {
		return nil, fmt.Errorf("cannot decode staff record %v: %w", staff.Id, errEmptyUnavailable)
	}
	return &staff, nil
}

// LoadStaff reads a JSON array of staff records
func LoadStaff(in io.Reader, logger *zap.Logger) ([]*model.Staff, error) {
	var records []map[string]any
	if err := json.NewDecoder(in).Decode(&records); err != nil {
		return nil, fmt.Errorf("cannot parse staff: %w", err)
	}

	staff := make([]*model.Staff, 0, len(records))
	for i, record := range records {
		member, err := DecodeStaff(record)
		if err != nil {
			return nil, fmt.Errorf("staff record %d: %w", i, err)
		}
		staff = append(staff, member)
	}

	logger.Info("loaded staff", zap.Int("staff", len(staff)))
	return staff, nil
}

// LoadModel builds a model out of a requests file and a staff file. Staff constraints are registered in file order
func LoadModel(requestsIn, staffIn io.Reader, delimiter rune, logger *zap.Logger) (*model.Model, error) {
	requests, err := LoadRequests(requestsIn, delimiter, logger)
	if err != nil {
		return nil, err
	}
	staff, err := LoadStaff(staffIn, logger)
	if err != nil {
		return nil, err
	}

	m := model.NewModel().WithLogger(logger)
	for _, request := range requests {
		if err := m.AddRequest(request); err != nil {
			return nil, err
		}
	}
	for _, member := range staff {
		if err := m.AddConstraint(member); err != nil {
			return nil, err
		}
	}

	if unassignable := m.Unassignable(); len(unassignable) > 0 {
		logger.Warn("some requests cannot be staffed", zap.Int("requests", len(unassignable)))
	}
	return m, nil
}
