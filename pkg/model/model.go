package model

import (
	"fmt"
	"slices"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Model holds the requests (variables) and constraints of a single solving session. The search engine
// reads constraints through it and owns the per-request domain caches
type Model struct {
	requests    []*Request
	constraints []Constraint
	logger      *zap.Logger
}

func NewModel() *Model {
	return &Model{
		requests:    make([]*Request, 0),
		constraints: make([]Constraint, 0),
		logger:      zap.NewNop(),
	}
}

func (model *Model) WithLogger(logger *zap.Logger) *Model {
	model.logger = logger
	return model
}

// AddRequest registers the request in the model. A request can only belong to one model
func (model *Model) AddRequest(request *Request) error {
	if request.model != nil || lo.SomeBy(model.requests, func(registered *Request) bool { return registered.id == request.id }) {
		return fmt.Errorf("request %v: %w", request.id, ErrDuplicateRequest)
	}
	request.model = model
	model.requests = append(model.requests, request)
	return nil
}

// AddConstraint appends the constraint. The registration order is the order domains are built in
func (model *Model) AddConstraint(constraint Constraint) error {
	if staff, ok := constraint.(StaffEligibility); ok {
		if _, exists := model.Staff(staff.StaffId()); exists {
			return fmt.Errorf("staff %v: %w", staff.StaffId(), ErrDuplicateStaff)
		}
	}
	model.constraints = append(model.constraints, constraint)
	return nil
}

func (model *Model) Constraints() []Constraint {
	return slices.Clone(model.constraints)
}

func (model *Model) Requests() []*Request {
	return slices.Clone(model.requests)
}

func (model *Model) Request(id uint64) (*Request, bool) {
	return lo.Find(model.requests, func(request *Request) bool { return request.id == id })
}

func (model *Model) Staff(staffId string) (StaffEligibility, bool) {
	for _, constraint := range model.constraints {
		if staff, ok := constraint.(StaffEligibility); ok && staff.StaffId() == staffId {
			return staff, true
		}
	}
	return nil, false
}

// ClearValues invalidates the domain cache of every registered request. It must be called whenever the set of
// constraints (or their eligibility answers) changes
func (model *Model) ClearValues() {
	lo.ForEach(model.requests, func(request *Request, _ int) { request.ClearValues() })
	model.logger.Debug("cleared request domains", zap.Int("requests", len(model.requests)))
}

// Unassignable returns the requests no registered staff member can teach
func (model *Model) Unassignable() []*Request {
	return lo.Filter(model.requests, func(request *Request, _ int) bool { return len(request.Values()) == 0 })
}
