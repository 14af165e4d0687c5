package model

// AssessmentMode selects the intake depth: quick collects the minimal set
// plus a blood report, full walks every clinical step.
type AssessmentMode string

const (
	ModeQuick AssessmentMode = "quick"
	ModeFull  AssessmentMode = "full"
)

// IsValid reports whether the mode is one of the known intake depths
func (m AssessmentMode) IsValid() bool {
	return m == ModeQuick || m == ModeFull
}

// FinalStep is the last form step of the mode
func (m AssessmentMode) FinalStep() int {
	if m == ModeQuick {
		return 1
	}
	return 3
}

// AccuracyPercentage is the advertised model accuracy for the mode; quick
// mode trades depth for speed
func (m AssessmentMode) AccuracyPercentage() int {
	if m == ModeQuick {
		return 75
	}
	return 95
}

// RawFormInput holds the form exactly as entered: every field is a string,
// empty meaning not yet filled. Parsing only happens at normalization.
type RawFormInput struct {
	Age          string `json:"age,omitempty"`
	Sex          string `json:"sex,omitempty"`
	CP           string `json:"cp,omitempty"`
	Trestbps     string `json:"trestbps,omitempty"`
	Chol         string `json:"chol,omitempty"`
	FBS          string `json:"fbs,omitempty"`
	Restecg      string `json:"restecg,omitempty"`
	Thalach      string `json:"thalach,omitempty"`
	Exang        string `json:"exang,omitempty"`
	Oldpeak      string `json:"oldpeak,omitempty"`
	Slope        string `json:"slope,omitempty"`
	DiabetesType string `json:"diabetesType,omitempty"`

	// Lifestyle and history fields collected by the full-mode step 3 form.
	// They enrich the record but are not part of the core clinical vector.
	BPSystolic    string `json:"bpSystolic,omitempty"`
	BPDiastolic   string `json:"bpDiastolic,omitempty"`
	HeightCm      string `json:"heightCm,omitempty"`
	WeightKg      string `json:"weightKg,omitempty"`
	Smoking       string `json:"smoking,omitempty"`
	ActivityDays  string `json:"activityDays,omitempty"`
	FamilyHistory string `json:"familyHistory,omitempty"`
	DietQuality   string `json:"dietQuality,omitempty"`
	AlcoholWeekly string `json:"alcoholWeekly,omitempty"`
	StressLevel   string `json:"stressLevel,omitempty"`
	SleepHours    string `json:"sleepHours,omitempty"`
	SleepApnea    string `json:"sleepApnea,omitempty"`
	Comorbidities string `json:"comorbidities,omitempty"`
}

// rawSetters maps API field names to their slot in the form
var rawSetters = map[string]func(*RawFormInput, string){
	"age":          func(r *RawFormInput, v string) { r.Age = v },
	"sex":          func(r *RawFormInput, v string) { r.Sex = v },
	"cp":           func(r *RawFormInput, v string) { r.CP = v },
	"trestbps":     func(r *RawFormInput, v string) { r.Trestbps = v },
	"chol":         func(r *RawFormInput, v string) { r.Chol = v },
	"fbs":          func(r *RawFormInput, v string) { r.FBS = v },
	"restecg":      func(r *RawFormInput, v string) { r.Restecg = v },
	"thalach":      func(r *RawFormInput, v string) { r.Thalach = v },
	"exang":        func(r *RawFormInput, v string) { r.Exang = v },
	"oldpeak":      func(r *RawFormInput, v string) { r.Oldpeak = v },
	"slope":        func(r *RawFormInput, v string) { r.Slope = v },
	"diabetesType": func(r *RawFormInput, v string) { r.DiabetesType = v },

	"bpSystolic":    func(r *RawFormInput, v string) { r.BPSystolic = v },
	"bpDiastolic":   func(r *RawFormInput, v string) { r.BPDiastolic = v },
	"heightCm":      func(r *RawFormInput, v string) { r.HeightCm = v },
	"weightKg":      func(r *RawFormInput, v string) { r.WeightKg = v },
	"smoking":       func(r *RawFormInput, v string) { r.Smoking = v },
	"activityDays":  func(r *RawFormInput, v string) { r.ActivityDays = v },
	"familyHistory": func(r *RawFormInput, v string) { r.FamilyHistory = v },
	"dietQuality":   func(r *RawFormInput, v string) { r.DietQuality = v },
	"alcoholWeekly": func(r *RawFormInput, v string) { r.AlcoholWeekly = v },
	"stressLevel":   func(r *RawFormInput, v string) { r.StressLevel = v },
	"sleepHours":    func(r *RawFormInput, v string) { r.SleepHours = v },
	"sleepApnea":    func(r *RawFormInput, v string) { r.SleepApnea = v },
	"comorbidities": func(r *RawFormInput, v string) { r.Comorbidities = v },
}

// Apply merges a field patch into the form and returns the names it did not
// recognize. Nothing is applied when any name is unknown, so a typo cannot
// half-apply a patch.
func (r *RawFormInput) Apply(fields map[string]string) []string {
	var unknown []string
	for name := range fields {
		if _, ok := rawSetters[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		return unknown
	}
	for name, value := range fields {
		rawSetters[name](r, value)
	}
	return nil
}

// CanonicalInput is the normalized clinical vector handed to the prediction
// service. All core fields are total; exang is nullable because "unknown" is
// clinically distinct from "no".
type CanonicalInput struct {
	Age      int     `json:"age" bson:"age"`
	Sex      int     `json:"sex" bson:"sex"`
	CP       int     `json:"cp" bson:"cp"`
	Trestbps int     `json:"trestbps" bson:"trestbps"`
	Chol     int     `json:"chol" bson:"chol"`
	FBS      int     `json:"fbs" bson:"fbs"`
	Restecg  int     `json:"restecg" bson:"restecg"`
	Thalach  int     `json:"thalach" bson:"thalach"`
	Exang    *int    `json:"exang" bson:"exang,omitempty"`
	Oldpeak  float64 `json:"oldpeak" bson:"oldpeak"`
	Slope    int     `json:"slope" bson:"slope"`

	BPSystolic    *int     `json:"bpSystolic,omitempty" bson:"bpSystolic,omitempty"`
	BPDiastolic   *int     `json:"bpDiastolic,omitempty" bson:"bpDiastolic,omitempty"`
	HeightCm      *float64 `json:"heightCm,omitempty" bson:"heightCm,omitempty"`
	WeightKg      *float64 `json:"weightKg,omitempty" bson:"weightKg,omitempty"`
	Smoking       *int     `json:"smoking,omitempty" bson:"smoking,omitempty"`
	ActivityDays  *int     `json:"activityDays,omitempty" bson:"activityDays,omitempty"`
	FamilyHistory *int     `json:"familyHistory,omitempty" bson:"familyHistory,omitempty"`
	DietQuality   *int     `json:"dietQuality,omitempty" bson:"dietQuality,omitempty"`
	AlcoholWeekly *int     `json:"alcoholWeekly,omitempty" bson:"alcoholWeekly,omitempty"`
	StressLevel   *int     `json:"stressLevel,omitempty" bson:"stressLevel,omitempty"`
	SleepHours    *float64 `json:"sleepHours,omitempty" bson:"sleepHours,omitempty"`
	SleepApnea    *int     `json:"sleepApnea,omitempty" bson:"sleepApnea,omitempty"`
	Comorbidities string   `json:"comorbidities,omitempty" bson:"comorbidities,omitempty"`
}
