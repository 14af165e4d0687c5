package engine

import "cardiocheck/internal/model"

// Each clinical field has an ordered cascade of guard/result rules evaluated
// top-down, first match wins. Keeping the cascades as data under a single
// interpreter keeps the tables auditable and testable field by field.

type ruleOp int

const (
	opGE ruleOp = iota // value >= bound
	opGT               // value > bound
	opLT               // value < bound
	opEQ               // value == bound
	opAny              // always matches; every table ends with one
)

type impactRule struct {
	op       ruleOp
	bound    float64
	score    int
	category model.ImpactCategory
	desc     string
}

func (r impactRule) matches(v float64) bool {
	switch r.op {
	case opGE:
		return v >= r.bound
	case opGT:
		return v > r.bound
	case opLT:
		return v < r.bound
	case opEQ:
		return v == r.bound
	default:
		return true
	}
}

var impactTables = map[string][]impactRule{
	"age": {
		{opGE, 65, 70, model.ImpactHigh, "age 65 or older is a major non-modifiable risk factor"},
		{opGE, 45, 40, model.ImpactModerate, "middle age carries an elevated baseline risk"},
		{opAny, 0, 10, model.ImpactLow, "age is not a significant contributor yet"},
	},
	"sex": {
		{opEQ, 1, 30, model.ImpactModerate, "male sex carries a higher baseline cardiovascular risk"},
		{opAny, 0, 20, model.ImpactLow, "female sex carries a lower baseline risk"},
	},
	"cp": {
		{opEQ, 0, 80, model.ImpactHigh, "typical angina strongly suggests obstructive coronary disease"},
		{opEQ, 1, 60, model.ImpactModerate, "atypical angina warrants cardiac evaluation"},
		{opEQ, 2, 40, model.ImpactModerate, "non-anginal pain is less specific but still notable"},
		{opEQ, 3, 20, model.ImpactLow, "asymptomatic presentation"},
		{opAny, 0, 50, model.ImpactModerate, "unclassified chest pain pattern"},
	},
	"trestbps": {
		{opGE, 180, 90, model.ImpactVeryHigh, "resting blood pressure in the hypertensive crisis range"},
		{opGE, 140, 70, model.ImpactHigh, "stage 2 hypertension"},
		{opGE, 130, 50, model.ImpactModerate, "stage 1 hypertension"},
		{opGE, 120, 30, model.ImpactModerate, "elevated blood pressure"},
		{opAny, 0, 10, model.ImpactLow, "normal resting blood pressure"},
	},
	"chol": {
		{opGE, 300, 85, model.ImpactHigh, "severely elevated total cholesterol"},
		{opGE, 240, 70, model.ImpactHigh, "high total cholesterol"},
		{opGE, 200, 50, model.ImpactModerate, "borderline high cholesterol"},
		{opAny, 0, 10, model.ImpactLow, "cholesterol within the desirable range"},
	},
	"fbs": {
		{opEQ, 1, 60, model.ImpactModerate, "fasting blood sugar above 120 mg/dL indicates impaired glucose control"},
		{opAny, 0, 10, model.ImpactLow, "fasting blood sugar within normal range"},
	},
	"restecg": {
		{opEQ, 2, 80, model.ImpactHigh, "probable left ventricular hypertrophy on resting ECG"},
		{opEQ, 1, 60, model.ImpactModerate, "ST-T wave abnormality on resting ECG"},
		{opAny, 0, 10, model.ImpactLow, "normal resting ECG"},
	},
	"thalach": {
		{opLT, 100, 80, model.ImpactHigh, "markedly reduced maximum heart rate"},
		{opLT, 120, 60, model.ImpactModerate, "reduced maximum heart rate"},
		{opLT, 150, 40, model.ImpactModerate, "below average maximum heart rate"},
		{opAny, 0, 20, model.ImpactLow, "healthy maximum heart rate response"},
	},
	"exang": {
		{opEQ, 1, 85, model.ImpactHigh, "exercise induced angina is a strong ischemia signal"},
		{opAny, 0, 10, model.ImpactLow, "no angina during exercise"},
	},
	"oldpeak": {
		{opGT, 2.0, 90, model.ImpactVeryHigh, "severe exercise-induced ST depression"},
		{opGT, 1.0, 70, model.ImpactHigh, "significant ST depression"},
		{opGT, 0.5, 50, model.ImpactModerate, "mild ST depression"},
		{opAny, 0, 10, model.ImpactLow, "no meaningful ST depression"},
	},
	"slope": {
		{opEQ, 2, 75, model.ImpactHigh, "downsloping ST segment during peak exercise"},
		{opEQ, 1, 50, model.ImpactModerate, "flat ST segment during peak exercise"},
		{opAny, 0, 10, model.ImpactLow, "upsloping ST segment during peak exercise"},
	},
}

// impactOrder fixes the series order the report renderer relies on
var impactOrder = []string{
	"age", "sex", "cp", "trestbps", "chol", "fbs",
	"restecg", "thalach", "exang", "oldpeak", "slope",
}

// ScoreFeature maps one clinical field value to its heuristic impact. A nil
// value scores zero rather than erroring; absent data is a valid input.
func ScoreFeature(name string, value *float64) model.FeatureImpact {
	if value == nil {
		return model.FeatureImpact{
			Name:        name,
			Score:       0,
			Category:    model.ImpactLow,
			Description: "no data available",
		}
	}
	rules, ok := impactTables[name]
	if !ok {
		return model.FeatureImpact{
			Name:        name,
			Value:       value,
			Score:       0,
			Category:    model.ImpactLow,
			Description: "no data available",
		}
	}
	for _, r := range rules {
		if r.matches(*value) {
			return model.FeatureImpact{
				Name:        name,
				Value:       value,
				Score:       r.score,
				Category:    r.category,
				Description: r.desc,
			}
		}
	}
	// Unreachable: every table ends with opAny
	return model.FeatureImpact{Name: name, Value: value, Category: model.ImpactLow, Description: "no data available"}
}

// ImpactSeries scores every core field of the canonical vector in the fixed
// display order
func ImpactSeries(in model.CanonicalInput) []model.FeatureImpact {
	f := func(v float64) *float64 { return &v }
	values := map[string]*float64{
		"age":      f(float64(in.Age)),
		"sex":      f(float64(in.Sex)),
		"cp":       f(float64(in.CP)),
		"trestbps": f(float64(in.Trestbps)),
		"chol":     f(float64(in.Chol)),
		"fbs":      f(float64(in.FBS)),
		"restecg":  f(float64(in.Restecg)),
		"thalach":  f(float64(in.Thalach)),
		"oldpeak":  f(in.Oldpeak),
		"slope":    f(float64(in.Slope)),
	}
	if in.Exang != nil {
		values["exang"] = f(float64(*in.Exang))
	} else {
		values["exang"] = nil
	}

	series := make([]model.FeatureImpact, 0, len(impactOrder))
	for _, name := range impactOrder {
		series = append(series, ScoreFeature(name, values[name]))
	}
	return series
}
