package service

import (
	"context"

	"github.com/cardvault/cardvault-server/internal/domain"
	apperrors "github.com/cardvault/cardvault-server/internal/errors"
)

// Operation identifies which write use case a rule set guards.
type Operation int

const (
	OpCreate Operation = iota
	OpUpdate
	OpDelete
)

func (op Operation) String() string {
	switch op {
	case OpCreate:
		return "create"
	case OpUpdate:
		return "update"
	case OpDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Rule is one business check applied to a series before a write proceeds.
type Rule interface {
	Name() string
	Validate(ctx context.Context, s *domain.Series) error
}

// RuleSet maps each write operation to its ordered rules. Rules run in
// slice order and the first failure stops the evaluation.
type RuleSet map[Operation][]Rule

// DefaultRules builds the standard rule set backed by the given store.
func DefaultRules(st SeriesStore) RuleSet {
	return RuleSet{
		OpCreate: {
			&codeIsUnique{store: st},
			&nameIsUnique{store: st},
		},
		OpUpdate: {
			&hasIdentifier{},
			&existsByID{store: st},
			&codeIsUnique{store: st, excludeSelf: true},
			&nameIsUnique{store: st, excludeSelf: true},
		},
		OpDelete: {
			&existsByID{store: st},
		},
	}
}

// evaluate runs the rules registered for op against s, stopping at the
// first failure.
func (rs RuleSet) evaluate(ctx context.Context, op Operation, s *domain.Series) error {
	for _, rule := range rs[op] {
		if err := rule.Validate(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

// hasIdentifier rejects series that have not been assigned an ID yet.
type hasIdentifier struct{}

func (r *hasIdentifier) Name() string { return "has_identifier" }

func (r *hasIdentifier) Validate(_ context.Context, s *domain.Series) error {
	if !s.Persisted() {
		return apperrors.Validation("series identifier is required")
	}
	return nil
}

// existsByID rejects series whose identifier is unknown to the store.
type existsByID struct {
	store SeriesStore
}

func (r *existsByID) Name() string { return "exists_by_id" }

func (r *existsByID) Validate(ctx context.Context, s *domain.Series) error {
	exists, err := r.store.ExistsByID(ctx, s.ID)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeInternal, "check series existence")
	}
	if !exists {
		return apperrors.NotFoundf("series %q not found", s.ID)
	}
	return nil
}

// codeIsUnique rejects a series whose code is already taken. With
// excludeSelf set, the series being written does not count as a conflict.
type codeIsUnique struct {
	store       SeriesStore
	excludeSelf bool
}

func (r *codeIsUnique) Name() string { return "code_is_unique" }

func (r *codeIsUnique) Validate(ctx context.Context, s *domain.Series) error {
	other, err := r.store.FindByCode(ctx, s.Code)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return apperrors.Wrap(err, apperrors.CodeInternal, "check code uniqueness")
	}
	if r.excludeSelf && other.ID == s.ID {
		return nil
	}
	return apperrors.AlreadyExistsf("series with code %q already exists", s.Code)
}

// nameIsUnique rejects a series whose name is already taken. Name matching
// is case-insensitive with collapsed whitespace, same as the store indexes.
type nameIsUnique struct {
	store       SeriesStore
	excludeSelf bool
}

func (r *nameIsUnique) Name() string { return "name_is_unique" }

func (r *nameIsUnique) Validate(ctx context.Context, s *domain.Series) error {
	other, err := r.store.FindByName(ctx, s.Name)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return apperrors.Wrap(err, apperrors.CodeInternal, "check name uniqueness")
	}
	if r.excludeSelf && other.ID == s.ID {
		return nil
	}
	return apperrors.AlreadyExistsf("series with name %q already exists", s.Name)
}
