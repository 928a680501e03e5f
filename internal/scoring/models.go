// Package scoring holds the employee record schema, its constraint table and
// feature derivation. Everything here is pure; persistence and inference live
// behind interfaces in the service layer.
package scoring

import (
	"fmt"
	"strings"

	dErrors "attrisk/pkg/domain-errors"
)

// Overtime category values. The wire schema keeps the field names of the
// classifier's training data, hence the French values.
const (
	OvertimeYes = "Oui"
	OvertimeNo  = "Non"
)

// EmployeeRecord is one employee as submitted for scoring. Field names map
// the classifier's training schema; json tags are the wire contract.
type EmployeeRecord struct {
	Age                     int     `json:"age"`
	MonthlyIncome           float64 `json:"revenu_mensuel"`
	CommuteDistance         float64 `json:"distance_domicile_travail"`
	EnvironmentSatisfaction int     `json:"satisfaction_environnement"`
	Overtime                string  `json:"heures_supp"`
	YearsSincePromotion     int     `json:"annees_promo"`
	WorkLifeBalance         int     `json:"satisfaction_equilibre"`
	SavingsPlanCount        int     `json:"pee"`
	YearsInRole             int     `json:"poste_actuel"`
	YearsAtCompany          int     `json:"anciennete"`
	TotalExperience         float64 `json:"exp_totale"`
}

// numericConstraint declares the accepted range for one numeric field.
// Constraints are evaluated uniformly so all violations are collected in a
// single pass instead of failing on the first.
type numericConstraint struct {
	field  string
	value  func(*EmployeeRecord) float64
	min    float64
	max    float64
	hasMax bool
}

func (c numericConstraint) reason() string {
	if c.hasMax {
		return fmt.Sprintf("must be between %g and %g", c.min, c.max)
	}
	return fmt.Sprintf("must be greater than or equal to %g", c.min)
}

var numericConstraints = []numericConstraint{
	{field: "age", value: func(r *EmployeeRecord) float64 { return float64(r.Age) }, min: 18, max: 70, hasMax: true},
	{field: "revenu_mensuel", value: func(r *EmployeeRecord) float64 { return r.MonthlyIncome }, min: 0},
	{field: "distance_domicile_travail", value: func(r *EmployeeRecord) float64 { return r.CommuteDistance }, min: 0},
	{field: "satisfaction_environnement", value: func(r *EmployeeRecord) float64 { return float64(r.EnvironmentSatisfaction) }, min: 1, max: 4, hasMax: true},
	{field: "annees_promo", value: func(r *EmployeeRecord) float64 { return float64(r.YearsSincePromotion) }, min: 0},
	{field: "satisfaction_equilibre", value: func(r *EmployeeRecord) float64 { return float64(r.WorkLifeBalance) }, min: 1, max: 4, hasMax: true},
	{field: "pee", value: func(r *EmployeeRecord) float64 { return float64(r.SavingsPlanCount) }, min: 0},
	{field: "poste_actuel", value: func(r *EmployeeRecord) float64 { return float64(r.YearsInRole) }, min: 0},
	{field: "anciennete", value: func(r *EmployeeRecord) float64 { return float64(r.YearsAtCompany) }, min: 0},
	{field: "exp_totale", value: func(r *EmployeeRecord) float64 { return r.TotalExperience }, min: 0},
}

// Normalize canonicalizes the overtime category ("oui " -> "Oui") so the
// enum check and feature derivation see one spelling.
func (r *EmployeeRecord) Normalize() {
	switch strings.ToLower(strings.TrimSpace(r.Overtime)) {
	case strings.ToLower(OvertimeYes):
		r.Overtime = OvertimeYes
	case strings.ToLower(OvertimeNo):
		r.Overtime = OvertimeNo
	default:
		r.Overtime = strings.TrimSpace(r.Overtime)
	}
}

// Validate checks every declared constraint and reports all violations
// together. No field is clamped; an out-of-range value always rejects the
// record before it can reach feature derivation.
func (r *EmployeeRecord) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	var violations []dErrors.FieldViolation
	for _, c := range numericConstraints {
		v := c.value(r)
		if v < c.min || (c.hasMax && v > c.max) {
			violations = append(violations, dErrors.FieldViolation{Field: c.field, Reason: c.reason()})
		}
	}

	if r.Overtime != OvertimeYes && r.Overtime != OvertimeNo {
		violations = append(violations, dErrors.FieldViolation{
			Field:  "heures_supp",
			Reason: fmt.Sprintf("must be %q or %q", OvertimeYes, OvertimeNo),
		})
	}

	if len(violations) > 0 {
		return dErrors.NewValidation(violations)
	}
	return nil
}

// ScoreResult is the classifier verdict for one record.
type ScoreResult struct {
	Prediction  int     `json:"prediction"`
	Probability float64 `json:"probability"`
}

// Result messages, fixed per label.
const (
	MessageAtRisk = "Employé à risque de départ"
	MessageStable = "Employé stable"
)

// Message returns the fixed human-readable verdict for a label.
func (s ScoreResult) Message() string {
	if s.Prediction == 1 {
		return MessageAtRisk
	}
	return MessageStable
}
