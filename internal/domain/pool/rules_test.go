package pool

import (
	"testing"

	"github.com/cockroachdb/errors"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestRules_Validate_NormalizesFields(t *testing.T) {
	t.Parallel()

	rec, corrected, err := DefaultRules().Validate(UniformRecord{
		Name:     "  Josh Allen ",
		Team:     "buf",
		Position: "qb",
		Salary:   intPtr(8500),
	})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if corrected {
		t.Fatalf("nothing to correct for a clean record")
	}
	if rec.Name != "Josh Allen" || rec.Team != "BUF" || rec.Position != "QB" {
		t.Fatalf("unexpected normalization: %+v", rec)
	}
}

func TestRules_Validate_SalaryBounds(t *testing.T) {
	t.Parallel()

	for _, salary := range []int{1999, 50001} {
		_, _, err := DefaultRules().Validate(UniformRecord{
			Name:     "Josh Allen",
			Team:     "BUF",
			Position: "QB",
			Salary:   intPtr(salary),
		})
		if !errors.Is(err, ErrRuleViolation) {
			t.Fatalf("salary %d: want rule violation, got %v", salary, err)
		}

		var v *RuleViolation
		if !errors.As(err, &v) {
			t.Fatalf("salary %d: violation details missing from %v", salary, err)
		}
		if v.Player != "Josh Allen" || v.Field != "salary" || v.Allowed != "[2000,50000]" {
			t.Fatalf("unexpected violation details: %+v", v)
		}
	}

	// Boundary values pass.
	for _, salary := range []int{2000, 50000} {
		if _, _, err := DefaultRules().Validate(UniformRecord{
			Name: "Josh Allen", Team: "BUF", Position: "QB", Salary: intPtr(salary),
		}); err != nil {
			t.Fatalf("salary %d must be allowed: %v", salary, err)
		}
	}
}

func TestRules_Validate_PositionWhitelist(t *testing.T) {
	t.Parallel()

	_, _, err := DefaultRules().Validate(UniformRecord{
		Name: "Sauce Gardner", Team: "NYJ", Position: "CB",
	})
	if !errors.Is(err, ErrRuleViolation) {
		t.Fatalf("want rule violation, got %v", err)
	}

	var v *RuleViolation
	if !errors.As(err, &v) {
		t.Fatalf("violation details missing from %v", err)
	}
	if v.Field != "position" || v.Value != "CB" || v.Allowed != "{DST,K,QB,RB,TE,WR}" {
		t.Fatalf("unexpected violation details: %+v", v)
	}
}

func TestRules_Validate_OwnershipPercentageNormalized(t *testing.T) {
	t.Parallel()

	rec, _, err := DefaultRules().Validate(UniformRecord{
		Name: "Josh Allen", Team: "BUF", Position: "QB",
		Ownership: floatPtr(42.5),
	})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if rec.Ownership == nil || *rec.Ownership != 0.425 {
		t.Fatalf("unexpected ownership: %+v", rec.Ownership)
	}

	// Already normalized values pass through unchanged.
	rec, _, err = DefaultRules().Validate(UniformRecord{
		Name: "Josh Allen", Team: "BUF", Position: "QB",
		Ownership: floatPtr(0.425),
	})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if *rec.Ownership != 0.425 {
		t.Fatalf("unexpected ownership: %g", *rec.Ownership)
	}

	// 150% normalizes to 1.5 and is still out of range.
	_, _, err = DefaultRules().Validate(UniformRecord{
		Name: "Josh Allen", Team: "BUF", Position: "QB",
		Ownership: floatPtr(150),
	})
	if !errors.Is(err, ErrRuleViolation) {
		t.Fatalf("want rule violation, got %v", err)
	}
}

func TestRules_Validate_TransposedCeilingFloorSoftCorrected(t *testing.T) {
	t.Parallel()

	rec, corrected, err := DefaultRules().Validate(UniformRecord{
		Name: "Josh Allen", Team: "BUF", Position: "QB",
		Projection: floatPtr(22.4),
		Ceiling:    floatPtr(10),
		Floor:      floatPtr(30),
	})
	if err != nil {
		t.Fatalf("transposed ceiling/floor must not hard-fail: %v", err)
	}
	if !corrected {
		t.Fatalf("correction flag must be set")
	}
	if *rec.Ceiling != 22.4 || *rec.Floor != 22.4 {
		t.Fatalf("both bounds collapse to projection: ceiling=%g floor=%g", *rec.Ceiling, *rec.Floor)
	}
}

func TestRules_ValidateShare(t *testing.T) {
	t.Parallel()

	got, err := DefaultRules().ValidateShare("Josh Allen", "snap_share", 65)
	if err != nil {
		t.Fatalf("validate share: %v", err)
	}
	if got != 0.65 {
		t.Fatalf("unexpected share: got=%g want=%g", got, 0.65)
	}

	if _, err := DefaultRules().ValidateShare("Josh Allen", "snap_share", -0.1); !errors.Is(err, ErrRuleViolation) {
		t.Fatalf("negative share must violate, got %v", err)
	}
}

func TestValidScope(t *testing.T) {
	t.Parallel()

	for scope, want := range map[string]bool{
		"2025-14":  true,
		"2025-1":   true,
		"2025":     false,
		"25-14":    false,
		"2025-140": false,
		"week-14":  false,
		"":         false,
	} {
		if got := ValidScope(scope); got != want {
			t.Fatalf("ValidScope(%q): got=%t want=%t", scope, got, want)
		}
	}
}
