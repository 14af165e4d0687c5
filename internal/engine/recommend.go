package engine

import "cardiocheck/internal/model"

// Recommendation lists are fixed and hand-authored, ordered most urgent
// first. Consumers may slice them into display buckets; the ordering here is
// what makes that slicing meaningful.

var highRiskRecommendations = []string{
	"Seek medical attention promptly: schedule a cardiologist appointment within the next week.",
	"Do not ignore chest pain, shortness of breath, or palpitations; call emergency services if they occur.",
	"Start a strict heart-healthy diet low in saturated fat, trans fat, sodium, and added sugar.",
	"Stop smoking immediately and avoid secondhand smoke.",
	"Take all prescribed medications exactly as directed and do not stop them without medical advice.",
	"Monitor your blood pressure and heart rate daily and keep a log for your doctor.",
	"Limit strenuous physical exertion until a doctor clears you for exercise.",
	"Reduce alcohol intake to a minimum or eliminate it entirely.",
	"Manage stress with relaxation techniques such as breathing exercises or meditation.",
	"Arrange follow-up testing such as an ECG, stress test, and lipid panel as recommended by your physician.",
}

var mediumRiskRecommendations = []string{
	"Schedule a check-up with your primary care physician within the next month.",
	"Get a full lipid profile and fasting glucose test if you have not had one recently.",
	"Adopt a balanced diet rich in vegetables, whole grains, lean protein, and healthy fats.",
	"Aim for at least 150 minutes of moderate aerobic exercise per week.",
	"Monitor your blood pressure at least weekly and track the readings.",
	"If you smoke, make a concrete plan to quit and seek support programs.",
	"Keep alcohol consumption within recommended limits.",
	"Work toward a healthy body weight through gradual, sustainable changes.",
	"Prioritize 7 to 9 hours of sleep per night and address snoring or apnea symptoms.",
	"Reassess your cardiovascular risk in 3 to 6 months.",
}

var lowRiskRecommendations = []string{
	"Maintain your current healthy lifestyle and keep up regular physical activity.",
	"Continue eating a heart-healthy diet with plenty of fruits and vegetables.",
	"Schedule routine annual check-ups including blood pressure and cholesterol screening.",
	"Stay physically active with at least 30 minutes of movement most days.",
	"Keep your weight within a healthy range.",
	"Avoid taking up smoking and limit exposure to secondhand smoke.",
	"Drink alcohol only in moderation, if at all.",
	"Manage everyday stress with hobbies, social connection, or mindfulness.",
	"Maintain good sleep hygiene and a consistent sleep schedule.",
	"Stay informed about changes in family history and report new symptoms early.",
}

// Recommend returns the ordered guidance list for a risk tier. The returned
// slice is a copy; callers may slice and regroup it freely.
func Recommend(level model.RiskLevel) []string {
	var src []string
	switch level {
	case model.RiskHigh:
		src = highRiskRecommendations
	case model.RiskMedium:
		src = mediumRiskRecommendations
	default:
		src = lowRiskRecommendations
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}
