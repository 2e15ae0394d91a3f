package pool

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrRuleViolation marks every business-rule failure raised by Validate.
// Callers discriminate the kind with errors.Is and read the specifics from
// RuleViolation via errors.As.
var ErrRuleViolation = errors.New("business rule violation")

// RuleViolation identifies the exact player, field, value and allowed
// range that triggered a hard validation failure. Vague errors are a
// quality defect here, not a fallback.
type RuleViolation struct {
	Player  string
	Field   string
	Value   string
	Allowed string
}

func (e *RuleViolation) Error() string {
	return fmt.Sprintf("player %q: field %s value %s outside allowed %s", e.Player, e.Field, e.Value, e.Allowed)
}

func violation(player, field, value, allowed string) error {
	return errors.Mark(&RuleViolation{
		Player:  player,
		Field:   field,
		Value:   value,
		Allowed: allowed,
	}, ErrRuleViolation)
}

// Rules holds the per-record validation bounds. Zero value is unusable;
// construct with DefaultRules or from configuration.
type Rules struct {
	SalaryMin int
	SalaryMax int
	positions map[string]struct{}
}

func NewRules(salaryMin, salaryMax int, positions []string) Rules {
	set := make(map[string]struct{}, len(positions))
	for _, p := range positions {
		p = strings.ToUpper(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		set[p] = struct{}{}
	}
	return Rules{
		SalaryMin: salaryMin,
		SalaryMax: salaryMax,
		positions: set,
	}
}

func DefaultRules() Rules {
	return NewRules(2000, 50000, []string{"QB", "RB", "WR", "TE", "DST", "K"})
}

func (r Rules) allowedPositions() string {
	out := make([]string, 0, len(r.positions))
	for p := range r.positions {
		out = append(out, p)
	}
	sort.Strings(out)
	return "{" + strings.Join(out, ",") + "}"
}

// Validate coerces and range-checks one uniform record. The returned bool
// reports whether a transposed ceiling/floor pair was soft-corrected to the
// projection value; that case is never a hard error because sources
// occasionally swap the two columns.
func (r Rules) Validate(rec UniformRecord) (UniformRecord, bool, error) {
	rec.Name = strings.TrimSpace(rec.Name)
	rec.Team = strings.ToUpper(strings.TrimSpace(rec.Team))
	rec.Position = strings.ToUpper(strings.TrimSpace(rec.Position))

	if rec.Name == "" {
		return rec, false, violation(rec.Name, "name", "<empty>", "non-empty display name")
	}
	if rec.Team == "" {
		return rec, false, violation(rec.Name, "team", "<empty>", "non-empty team abbreviation")
	}
	if _, ok := r.positions[rec.Position]; !ok {
		return rec, false, violation(rec.Name, "position", rec.Position, r.allowedPositions())
	}

	if rec.Salary != nil {
		if *rec.Salary < r.SalaryMin || *rec.Salary > r.SalaryMax {
			return rec, false, violation(rec.Name, "salary",
				fmt.Sprintf("%d", *rec.Salary),
				fmt.Sprintf("[%d,%d]", r.SalaryMin, r.SalaryMax))
		}
	}

	if rec.Projection != nil && *rec.Projection < 0 {
		return rec, false, violation(rec.Name, "projection",
			fmt.Sprintf("%g", *rec.Projection), "[0,+inf)")
	}

	if rec.Ownership != nil {
		normalized := NormalizeOwnership(*rec.Ownership)
		if normalized < 0 || normalized > 1 {
			return rec, false, violation(rec.Name, "ownership",
				fmt.Sprintf("%g", *rec.Ownership), "[0,1] after percentage normalization")
		}
		rec.Ownership = &normalized
	}

	corrected := false
	if rec.Ceiling != nil && rec.Floor != nil && *rec.Ceiling < *rec.Floor {
		projection := 0.0
		if rec.Projection != nil {
			projection = *rec.Projection
		}
		ceiling, floor := projection, projection
		rec.Ceiling = &ceiling
		rec.Floor = &floor
		corrected = true
	}

	return rec, corrected, nil
}

// ValidateShare bound-checks a snap/target/touch share for historical
// records, applying the same percentage normalization as ownership.
func (r Rules) ValidateShare(player, field string, v float64) (float64, error) {
	normalized := NormalizeOwnership(v)
	if normalized < 0 || normalized > 1 {
		return 0, violation(player, field,
			fmt.Sprintf("%g", v), "[0,1] after percentage normalization")
	}
	return normalized, nil
}
