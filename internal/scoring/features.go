package scoring

// Feature names as the classifier expects them. Order matters only to the
// artifact, which lists the names it was trained with; lookup is by name.
const (
	FeatureAge                     = "age"
	FeatureMonthlyIncome           = "revenu_mensuel"
	FeatureCommuteDistance         = "distance_domicile_travail"
	FeatureEnvironmentSatisfaction = "satisfaction_environnement"
	FeatureOvertime                = "heures_supp"
	FeatureYearsSincePromotion     = "annees_promo"
	FeatureWorkLifeBalance         = "satisfaction_equilibre"
	FeatureSavingsPlanCount        = "pee"
	FeatureRoleStagnation          = "ratio_stagnation"
	FeatureIncomePerExperience     = "revenu_par_exp"
)

// FeatureVector is the model-ready view of one validated record. Constructed
// per request, consumed once by the inference adapter, then discarded.
type FeatureVector struct {
	Age                     float64
	MonthlyIncome           float64
	CommuteDistance         float64
	EnvironmentSatisfaction float64
	Overtime                float64
	YearsSincePromotion     float64
	WorkLifeBalance         float64
	SavingsPlanCount        float64
	RoleStagnationRatio     float64
	IncomePerExperienceYear float64
}

// Derive computes the engineered features from a validated record. Pure
// function: same record in, same vector out.
//
// Both ratios substitute 1 for a zero denominator instead of failing the
// request. Zero-tenure and zero-experience employees are legitimate inputs;
// the numerator is never adjusted. Preserve this exactly.
func Derive(rec EmployeeRecord) FeatureVector {
	companyYears := float64(rec.YearsAtCompany)
	if companyYears == 0 {
		companyYears = 1
	}
	experience := rec.TotalExperience
	if experience == 0 {
		experience = 1
	}

	overtime := 0.0
	if rec.Overtime == OvertimeYes {
		overtime = 1
	}

	return FeatureVector{
		Age:                     float64(rec.Age),
		MonthlyIncome:           rec.MonthlyIncome,
		CommuteDistance:         rec.CommuteDistance,
		EnvironmentSatisfaction: float64(rec.EnvironmentSatisfaction),
		Overtime:                overtime,
		YearsSincePromotion:     float64(rec.YearsSincePromotion),
		WorkLifeBalance:         float64(rec.WorkLifeBalance),
		SavingsPlanCount:        float64(rec.SavingsPlanCount),
		RoleStagnationRatio:     float64(rec.YearsInRole) / companyYears,
		IncomePerExperienceYear: rec.MonthlyIncome / experience,
	}
}

// Value returns the named feature, for artifact-driven coefficient lookup.
func (v FeatureVector) Value(name string) (float64, bool) {
	switch name {
	case FeatureAge:
		return v.Age, true
	case FeatureMonthlyIncome:
		return v.MonthlyIncome, true
	case FeatureCommuteDistance:
		return v.CommuteDistance, true
	case FeatureEnvironmentSatisfaction:
		return v.EnvironmentSatisfaction, true
	case FeatureOvertime:
		return v.Overtime, true
	case FeatureYearsSincePromotion:
		return v.YearsSincePromotion, true
	case FeatureWorkLifeBalance:
		return v.WorkLifeBalance, true
	case FeatureSavingsPlanCount:
		return v.SavingsPlanCount, true
	case FeatureRoleStagnation:
		return v.RoleStagnationRatio, true
	case FeatureIncomePerExperience:
		return v.IncomePerExperienceYear, true
	}
	return 0, false
}
