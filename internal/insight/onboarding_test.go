package insight

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/pathwise/pathwise-backend/internal/domain"
)

func submissionWith(answers map[string]string) domain.OnboardingSubmission {
	var responses []domain.QuestionnaireAnswer
	for id, answer := range answers {
		responses = append(responses, domain.QuestionnaireAnswer{QuestionID: id, Answer: answer})
	}
	return domain.OnboardingSubmission{Responses: responses}
}

func TestQuestionnaireShape(t *testing.T) {
	questions := Questionnaire()
	if len(questions) != 12 {
		t.Fatalf("expected 12 questions, got %d", len(questions))
	}
	seen := make(map[string]struct{}, len(questions))
	for _, q := range questions {
		if q.ID == "" || q.QuestionText == "" || q.CognitiveDimension == "" {
			t.Fatalf("incomplete question: %+v", q)
		}
		if len(q.Options) < 2 {
			t.Fatalf("question %s has %d options", q.ID, len(q.Options))
		}
		if _, dup := seen[q.ID]; dup {
			t.Fatalf("duplicate question id %s", q.ID)
		}
		seen[q.ID] = struct{}{}
		if q.Weight <= 0 {
			t.Fatalf("question %s has non-positive weight", q.ID)
		}
	}
}

func TestDeriveProfileChallengeSeeker(t *testing.T) {
	sub := submissionWith(map[string]string{
		QComplexityComfort: "Excited - I enjoy challenging material",
	})
	p := DeriveProfile(uuid.New(), sub, time.Now().UTC())

	if p.ComplexityTolerance != domain.ComplexityHigh {
		t.Fatalf("complexity: %q", p.ComplexityTolerance)
	}
	if !almostEqual(p.ComplexityToleranceConfidence, 0.8) {
		t.Fatalf("confidence: %v", p.ComplexityToleranceConfidence)
	}
}

func TestDeriveProfileEmptySubmissionDefaults(t *testing.T) {
	p := DeriveProfile(uuid.New(), domain.OnboardingSubmission{}, time.Now().UTC())

	if p.ProfileVersion != 1 || p.TotalAdaptations != 0 {
		t.Fatalf("counters: %d/%d", p.ProfileVersion, p.TotalAdaptations)
	}
	if p.InputPreference != domain.InputPreferenceMixed || !almostEqual(p.InputPreferenceConfidence, 0.6) {
		t.Fatalf("input preference: %q %v", p.InputPreference, p.InputPreferenceConfidence)
	}
	if p.ComplexityTolerance != domain.ComplexityMedium || !almostEqual(p.ComplexityToleranceConfidence, 0.7) {
		t.Fatalf("complexity: %q %v", p.ComplexityTolerance, p.ComplexityToleranceConfidence)
	}
	if p.EngagementStyle != domain.EngagementStyleMixed || !almostEqual(p.EngagementStyleConfidence, 0.65) {
		t.Fatalf("engagement: %q %v", p.EngagementStyle, p.EngagementStyleConfidence)
	}
	if p.InstructionFlow != domain.InstructionFlowMixed {
		t.Fatalf("instruction flow: %q", p.InstructionFlow)
	}
	if p.LearningAutonomy != domain.LearningAutonomyMixed {
		t.Fatalf("autonomy: %q", p.LearningAutonomy)
	}
}

func TestDeriveProfileFullSubmission(t *testing.T) {
	sub := submissionWith(map[string]string{
		QLearningMedium:    "Video tutorials with visual demonstrations",
		QComplexityComfort: "Overwhelmed - I prefer simpler explanations first",
		QLearningActivity:  "By doing - hands-on practice and experimentation",
		QLearningPath:      "Step-by-step in a structured order",
		QGuidanceLevel:     "Clear guidance and structured lessons",
		QConceptPreference: "Concrete examples and practical applications",
		QFeedbackTiming:    "Immediately after each attempt",
		QMotivation:        "Personal curiosity and love of learning",
	})
	userID := uuid.New()
	p := DeriveProfile(userID, sub, time.Now().UTC())

	if p.UserID != userID {
		t.Fatalf("user id: %v", p.UserID)
	}
	if p.InputPreference != domain.InputPreferenceVisual || !almostEqual(p.InputPreferenceConfidence, 0.75) {
		t.Fatalf("input preference: %q %v", p.InputPreference, p.InputPreferenceConfidence)
	}
	if p.ComplexityTolerance != domain.ComplexityLow || !almostEqual(p.ComplexityToleranceConfidence, 0.8) {
		t.Fatalf("complexity: %q %v", p.ComplexityTolerance, p.ComplexityToleranceConfidence)
	}
	if p.EngagementStyle != domain.EngagementStyleActive || !almostEqual(p.EngagementStyleConfidence, 0.8) {
		t.Fatalf("engagement: %q %v", p.EngagementStyle, p.EngagementStyleConfidence)
	}
	if p.InstructionFlow != domain.InstructionFlowLinear || !almostEqual(p.InstructionFlowConfidence, 0.8) {
		t.Fatalf("instruction flow: %q %v", p.InstructionFlow, p.InstructionFlowConfidence)
	}
	if p.LearningAutonomy != domain.LearningAutonomyGuided || !almostEqual(p.LearningAutonomyConfidence, 0.75) {
		t.Fatalf("autonomy: %q %v", p.LearningAutonomy, p.LearningAutonomyConfidence)
	}
	if p.ConceptType != domain.ConceptTypeConcrete {
		t.Fatalf("concept type: %q", p.ConceptType)
	}
	if p.FeedbackPreference != domain.FeedbackImmediate {
		t.Fatalf("feedback: %q", p.FeedbackPreference)
	}
	if p.MotivationType != domain.MotivationIntrinsic {
		t.Fatalf("motivation: %q", p.MotivationType)
	}
}

func TestDeriveProfileUnrecognizedAnswersFallThrough(t *testing.T) {
	sub := submissionWith(map[string]string{
		QLearningMedium:    "telepathy",
		QComplexityComfort: "42",
	})
	p := DeriveProfile(uuid.New(), sub, time.Now().UTC())

	if p.InputPreference != domain.InputPreferenceMixed {
		t.Fatalf("input preference: %q", p.InputPreference)
	}
	if p.ComplexityTolerance != domain.ComplexityMedium {
		t.Fatalf("complexity: %q", p.ComplexityTolerance)
	}
}

func TestExtractSummaries(t *testing.T) {
	answers := map[string]string{
		QLearningMedium:    "Written articles and documentation",
		QLearningPace:      "Fast - I grasp concepts quickly",
		QExperience:        "Intermediate - comfortable with fundamentals",
		QConceptPreference: "Abstract theories and underlying principles",
		QLearningPath:      "Jump around based on my interests",
		QComplexityComfort: "Excited - I enjoy challenging material",
	}
	if got := ExtractLearningMedium(answers); got != "text" {
		t.Fatalf("medium: %q", got)
	}
	if got := ExtractLearningPace(answers); got != "fast" {
		t.Fatalf("pace: %q", got)
	}
	if got := ExtractExperience(answers); got != "intermediate" {
		t.Fatalf("experience: %q", got)
	}
	if got := ExtractConceptPreference(answers); got != "theory" {
		t.Fatalf("concept preference: %q", got)
	}
	if got := ExtractFlowPreference(answers); got != "overview" {
		t.Fatalf("flow: %q", got)
	}
	if got := ExtractComplexityComfort(answers); got != "high" {
		t.Fatalf("complexity comfort: %q", got)
	}
}
