package insight

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pathwise/pathwise-backend/internal/domain"
)

// Question ids of the fixed onboarding instrument.
const (
	QLearningMedium     = "q1_learning_medium"
	QExplanationStyle   = "q2_explanation_style"
	QComplexityComfort  = "q3_complexity_comfort"
	QLearningPace       = "q4_learning_pace"
	QLearningActivity   = "q5_learning_activity"
	QPracticePreference = "q6_practice_preference"
	QLearningPath       = "q7_learning_path"
	QGuidanceLevel      = "q8_guidance_level"
	QConceptPreference  = "q9_concept_preference"
	QFeedbackTiming     = "q10_feedback_timing"
	QMotivation         = "q11_motivation"
	QExperience         = "q12_experience"
)

// Questionnaire returns the fixed 12-question instrument. One or two
// questions per cognitive dimension plus prior experience, which is stored
// but not mapped to a dimension.
func Questionnaire() []domain.QuestionnaireQuestion {
	return []domain.QuestionnaireQuestion{
		{
			ID:           QLearningMedium,
			QuestionText: "When learning a new programming concept, which format helps you understand best?",
			QuestionType: "multiple_choice",
			Options: []string{
				"Video tutorials with visual demonstrations",
				"Written articles and documentation",
				"Interactive coding exercises",
				"A mix of all formats",
			},
			CognitiveDimension: domain.DimInputPreference,
			Weight:             1.5,
		},
		{
			ID:           QExplanationStyle,
			QuestionText: "How do you prefer explanations to be presented?",
			QuestionType: "multiple_choice",
			Options: []string{
				"Diagrams, flowcharts, and visual representations",
				"Detailed written descriptions",
				"Code examples with comments",
				"Real-world analogies and stories",
			},
			CognitiveDimension: domain.DimInputPreference,
			Weight:             1.2,
		},
		{
			ID:           QComplexityComfort,
			QuestionText: "When faced with a complex topic, how do you typically feel?",
			QuestionType: "multiple_choice",
			Options: []string{
				"Excited - I enjoy challenging material",
				"Comfortable - I can handle it with some effort",
				"Overwhelmed - I prefer simpler explanations first",
				"It depends on the topic",
			},
			CognitiveDimension: domain.DimComplexityTolerance,
			Weight:             1.5,
		},
		{
			ID:           QLearningPace,
			QuestionText: "What learning pace works best for you?",
			QuestionType: "multiple_choice",
			Options: []string{
				"Fast - I grasp concepts quickly",
				"Moderate - I need time to understand thoroughly",
				"Slow - I prefer to master each step before moving on",
				"Variable - depends on the topic",
			},
			CognitiveDimension: domain.DimComplexityTolerance,
			Weight:             1.3,
		},
		{
			ID:           QLearningActivity,
			QuestionText: "How do you learn most effectively?",
			QuestionType: "multiple_choice",
			Options: []string{
				"By doing - hands-on practice and experimentation",
				"By watching - observing examples and demonstrations",
				"By reading - studying theory and documentation",
				"By discussing - talking through concepts with others",
			},
			CognitiveDimension: domain.DimEngagementStyle,
			Weight:             1.5,
		},
		{
			ID:           QPracticePreference,
			QuestionText: "After learning a new concept, what do you prefer to do?",
			QuestionType: "multiple_choice",
			Options: []string{
				"Immediately try coding it myself",
				"Review more examples first",
				"Take notes and summarize",
				"Move on to the next topic",
			},
			CognitiveDimension: domain.DimEngagementStyle,
			Weight:             1.2,
		},
		{
			ID:           QLearningPath,
			QuestionText: "How do you prefer to navigate learning materials?",
			QuestionType: "multiple_choice",
			Options: []string{
				"Step-by-step in a structured order",
				"Jump around based on my interests",
				"Follow recommendations but explore side topics",
				"No strong preference",
			},
			CognitiveDimension: domain.DimInstructionFlow,
			Weight:             1.4,
		},
		{
			ID:           QGuidanceLevel,
			QuestionText: "When learning, do you prefer:",
			QuestionType: "multiple_choice",
			Options: []string{
				"Clear guidance and structured lessons",
				"Freedom to explore on my own",
				"A balance of both",
				"It depends on my familiarity with the topic",
			},
			CognitiveDimension: domain.DimLearningAutonomy,
			Weight:             1.3,
		},
		{
			ID:           QConceptPreference,
			QuestionText: "Which type of content resonates with you more?",
			QuestionType: "multiple_choice",
			Options: []string{
				"Concrete examples and practical applications",
				"Abstract theories and underlying principles",
				"Both equally",
				"Depends on the context",
			},
			CognitiveDimension: domain.DimConceptType,
			Weight:             1.2,
		},
		{
			ID:           QFeedbackTiming,
			QuestionText: "When practicing, how do you prefer to receive feedback?",
			QuestionType: "multiple_choice",
			Options: []string{
				"Immediately after each attempt",
				"After completing a section",
				"Only when I ask for it",
				"No strong preference",
			},
			CognitiveDimension: domain.DimFeedbackPreference,
			Weight:             1.1,
		},
		{
			ID:           QMotivation,
			QuestionText: "What motivates you most to learn programming?",
			QuestionType: "multiple_choice",
			Options: []string{
				"Personal curiosity and love of learning",
				"Career goals and job requirements",
				"Building specific projects",
				"A combination of reasons",
			},
			CognitiveDimension: domain.DimMotivationType,
			Weight:             1.0,
		},
		{
			ID:           QExperience,
			QuestionText: "What is your current programming experience level?",
			QuestionType: "multiple_choice",
			Options: []string{
				"Complete beginner - no prior experience",
				"Beginner - some basic knowledge",
				"Intermediate - comfortable with fundamentals",
				"Advanced - experienced programmer",
			},
			CognitiveDimension: "prior_experience",
			Weight:             1.5,
		},
	}
}

// answerRule is one branch of a dimension's keyword table: structurally
// the twin of the behavioral Rule, but keyed on answer-text fragments.
type answerRule struct {
	match      func(answers map[string]string) bool
	value      string
	confidence float64
}

func anyFragment(questionID, fragment string) func(map[string]string) bool {
	return func(answers map[string]string) bool {
		return strings.Contains(answers[questionID], fragment)
	}
}

func either(a, b func(map[string]string) bool) func(map[string]string) bool {
	return func(answers map[string]string) bool {
		return a(answers) || b(answers)
	}
}

func evaluateAnswers(answers map[string]string, rules []answerRule) (string, float64) {
	for _, r := range rules {
		if r.match == nil || r.match(answers) {
			return r.value, r.confidence
		}
	}
	return "", 0
}

// Keyword tables per dimension. Fragment matching is case-sensitive on
// purpose: fragments are taken verbatim from the option texts above. An
// unrecognized answer falls through to the dimension's default branch.
var (
	onboardInputPreference = []answerRule{
		{either(anyFragment(QLearningMedium, "Video"), anyFragment(QExplanationStyle, "Diagrams")), string(domain.InputPreferenceVisual), 0.75},
		{either(anyFragment(QLearningMedium, "Written"), anyFragment(QExplanationStyle, "written")), string(domain.InputPreferenceVerbal), 0.75},
		{nil, string(domain.InputPreferenceMixed), 0.6},
	}
	onboardComplexity = []answerRule{
		{either(anyFragment(QComplexityComfort, "Excited"), anyFragment(QLearningPace, "Fast")), string(domain.ComplexityHigh), 0.8},
		{either(anyFragment(QComplexityComfort, "Overwhelmed"), anyFragment(QLearningPace, "Slow")), string(domain.ComplexityLow), 0.8},
		{nil, string(domain.ComplexityMedium), 0.7},
	}
	onboardEngagement = []answerRule{
		{either(anyFragment(QLearningActivity, "doing"), anyFragment(QPracticePreference, "Immediately try")), string(domain.EngagementStyleActive), 0.8},
		{either(anyFragment(QLearningActivity, "watching"), anyFragment(QPracticePreference, "Review more")), string(domain.EngagementStylePassive), 0.75},
		{nil, string(domain.EngagementStyleMixed), 0.65},
	}
	onboardInstructionFlow = []answerRule{
		{anyFragment(QLearningPath, "Step-by-step"), string(domain.InstructionFlowLinear), 0.8},
		{anyFragment(QLearningPath, "Jump around"), string(domain.InstructionFlowExploratory), 0.8},
		{nil, string(domain.InstructionFlowMixed), 0.65},
	}
	onboardAutonomy = []answerRule{
		{anyFragment(QGuidanceLevel, "Clear guidance"), string(domain.LearningAutonomyGuided), 0.75},
		{anyFragment(QGuidanceLevel, "Freedom to explore"), string(domain.LearningAutonomyIndependent), 0.75},
		{nil, string(domain.LearningAutonomyMixed), 0.6},
	}
	onboardConceptType = []answerRule{
		{anyFragment(QConceptPreference, "Concrete"), string(domain.ConceptTypeConcrete), 0.75},
		{anyFragment(QConceptPreference, "Abstract"), string(domain.ConceptTypeAbstract), 0.75},
		{nil, string(domain.ConceptTypeMixed), 0.6},
	}
	onboardFeedback = []answerRule{
		{anyFragment(QFeedbackTiming, "Immediately"), string(domain.FeedbackImmediate), 0.7},
		{anyFragment(QFeedbackTiming, "After completing"), string(domain.FeedbackDelayed), 0.7},
		{nil, string(domain.FeedbackMixed), 0.6},
	}
	onboardMotivation = []answerRule{
		{anyFragment(QMotivation, "curiosity"), string(domain.MotivationIntrinsic), 0.7},
		{anyFragment(QMotivation, "Career"), string(domain.MotivationExtrinsic), 0.7},
		{nil, string(domain.MotivationMixed), 0.6},
	}
)

// DeriveProfile turns a questionnaire submission into the learner's
// initial cognitive profile, version 1. This is the only path that sets
// instruction_flow, concept_type, motivation_type and feedback_preference.
func DeriveProfile(userID uuid.UUID, submission domain.OnboardingSubmission, now time.Time) *domain.CognitiveProfile {
	if now.IsZero() {
		now = time.Now().UTC()
	}
	answers := submission.AnswerMap()

	p := &domain.CognitiveProfile{
		UserID:           userID,
		ProfileVersion:   1,
		TotalAdaptations: 0,
		LastUpdated:      now,
		CreatedAt:        now,
	}

	value, confidence := evaluateAnswers(answers, onboardInputPreference)
	p.InputPreference = domain.InputPreference(value)
	p.InputPreferenceConfidence = confidence

	value, confidence = evaluateAnswers(answers, onboardComplexity)
	p.ComplexityTolerance = domain.ComplexityTolerance(value)
	p.ComplexityToleranceConfidence = confidence

	value, confidence = evaluateAnswers(answers, onboardEngagement)
	p.EngagementStyle = domain.EngagementStyle(value)
	p.EngagementStyleConfidence = confidence

	value, confidence = evaluateAnswers(answers, onboardInstructionFlow)
	p.InstructionFlow = domain.InstructionFlow(value)
	p.InstructionFlowConfidence = confidence

	value, confidence = evaluateAnswers(answers, onboardAutonomy)
	p.LearningAutonomy = domain.LearningAutonomy(value)
	p.LearningAutonomyConfidence = confidence

	value, confidence = evaluateAnswers(answers, onboardConceptType)
	p.ConceptType = domain.ConceptTypePreference(value)
	p.ConceptTypeConfidence = confidence

	value, confidence = evaluateAnswers(answers, onboardFeedback)
	p.FeedbackPreference = domain.FeedbackPreference(value)
	p.FeedbackPreferenceConfidence = confidence

	value, confidence = evaluateAnswers(answers, onboardMotivation)
	p.MotivationType = domain.MotivationType(value)
	p.MotivationTypeConfidence = confidence

	return p
}

// Summary extraction for the persisted onboarding record.

func ExtractLearningMedium(answers map[string]string) string {
	answer := answers[QLearningMedium]
	switch {
	case strings.Contains(answer, "Video"):
		return "video"
	case strings.Contains(answer, "Written"):
		return "text"
	case strings.Contains(answer, "Interactive"):
		return "interactive"
	default:
		return "mixed"
	}
}

func ExtractLearningPace(answers map[string]string) string {
	answer := answers[QLearningPace]
	switch {
	case strings.Contains(answer, "Fast"):
		return "fast"
	case strings.Contains(answer, "Slow"):
		return "slow"
	default:
		return "moderate"
	}
}

func ExtractExperience(answers map[string]string) string {
	answer := answers[QExperience]
	switch {
	case strings.Contains(answer, "Complete beginner"):
		return "none"
	case strings.Contains(answer, "Beginner"):
		return "beginner"
	case strings.Contains(answer, "Intermediate"):
		return "intermediate"
	default:
		return "advanced"
	}
}

func ExtractConceptPreference(answers map[string]string) string {
	answer := answers[QConceptPreference]
	switch {
	case strings.Contains(answer, "Concrete"):
		return "examples"
	case strings.Contains(answer, "Abstract"):
		return "theory"
	default:
		return "both"
	}
}

func ExtractFlowPreference(answers map[string]string) string {
	answer := answers[QLearningPath]
	switch {
	case strings.Contains(answer, "Step-by-step"):
		return "step_by_step"
	case strings.Contains(answer, "Jump"):
		return "overview"
	default:
		return "both"
	}
}

func ExtractComplexityComfort(answers map[string]string) string {
	answer := answers[QComplexityComfort]
	switch {
	case strings.Contains(answer, "Excited"):
		return "high"
	case strings.Contains(answer, "Overwhelmed"):
		return "low"
	default:
		return "medium"
	}
}
