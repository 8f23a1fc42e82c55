package domain

// QuestionnaireQuestion is one question of the fixed onboarding instrument.
// Weight is stored for future weighted derivation; current rule evaluation
// is unweighted keyword matching against the selected option text.
type QuestionnaireQuestion struct {
	ID                 string   `json:"id"`
	QuestionText       string   `json:"question_text"`
	QuestionType       string   `json:"question_type"`
	Options            []string `json:"options"`
	CognitiveDimension string   `json:"cognitive_dimension"`
	Weight             float64  `json:"weight"`
}

// QuestionnaireAnswer is one (question, selected option text) pair.
type QuestionnaireAnswer struct {
	QuestionID string `json:"question_id"`
	Answer     string `json:"answer"`
}

// OnboardingSubmission is a learner's complete questionnaire submission.
type OnboardingSubmission struct {
	Responses                []QuestionnaireAnswer `json:"responses"`
	LearningGoal             string                `json:"learning_goal"`
	AvailableHoursPerWeek    int                   `json:"available_hours_per_week"`
	PreferredSessionDuration int                   `json:"preferred_session_duration"`
}

// AnswerMap indexes responses by question id for rule evaluation.
func (s OnboardingSubmission) AnswerMap() map[string]string {
	m := make(map[string]string, len(s.Responses))
	for _, r := range s.Responses {
		m[r.QuestionID] = r.Answer
	}
	return m
}
