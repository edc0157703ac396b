package fdspace

import "errors"

// errFail is the single dedicated failure condition (spec §5, §7.1): it is
// returned by any domain narrowing that would leave an empty domain, and
// unwinds through Propagate and the search driver to mark a Space failed.
// It is never surfaced to the caller directly — a depth_first/branch_and_bound
// run that never finds a solution simply reports status "end", the same
// way the teacher's IntervalArithmetic/LinearSum constraints report
// inconsistency via a plain error value rather than a panic.
var errFail = errors.New("fdspace: domain narrowed to empty (Fail)")

// Usage errors (spec §7.2): programmer errors raised at construction or
// call time, distinct from Fail. Modeled on the teacher's fd.go sentinel
// errors (ErrInconsistent, ErrInvalidArgument, ...).
var (
	// ErrUnknownOperator is returned by Reified for an operator outside
	// {eq, neq, lt, lte, gt, gte}.
	ErrUnknownOperator = errors.New("fdspace: unknown reified operator")

	// ErrNegativeScale is returned by PostScale (and so by PostWSum and
	// PostTimesPlus) for a negative scale factor.
	ErrNegativeScale = errors.New("fdspace: scale factor must be >= 0")

	// ErrEmptySum is returned by PostSum/PostProduct/PostWSum when given
	// no variables.
	ErrEmptySum = errors.New("fdspace: sum/product requires at least one variable")

	// ErrInvalidChoice is returned by a choice function given an index
	// outside [0, NumChoices).
	ErrInvalidChoice = errors.New("fdspace: invalid choice index")

	// ErrOutOfRange is returned by Num/Konst for a constant outside
	// [0, SUP].
	ErrOutOfRange = errors.New("fdspace: constant value out of [0, SUP]")

	// ErrUnknownVariable names a reference to an undeclared variable. No
	// function returns it: Space.MustVar panics with its text when given
	// a name that has no declared variable.
	ErrUnknownVariable = errors.New("fdspace: unknown variable name")
)
