package domain

// Cognitive dimension values. Every dimension always holds exactly one
// value; the zero value of these types is never stored.

type InstructionFlow string

const (
	InstructionFlowLinear      InstructionFlow = "linear"
	InstructionFlowExploratory InstructionFlow = "exploratory"
	InstructionFlowMixed       InstructionFlow = "mixed"
)

type InputPreference string

const (
	InputPreferenceVisual InputPreference = "visual"
	InputPreferenceVerbal InputPreference = "verbal"
	InputPreferenceMixed  InputPreference = "mixed"
)

type EngagementStyle string

const (
	EngagementStylePassive EngagementStyle = "passive"
	EngagementStyleActive  EngagementStyle = "active"
	EngagementStyleMixed   EngagementStyle = "mixed"
)

type ConceptTypePreference string

const (
	ConceptTypeConcrete ConceptTypePreference = "concrete"
	ConceptTypeAbstract ConceptTypePreference = "abstract"
	ConceptTypeMixed    ConceptTypePreference = "mixed"
)

type LearningAutonomy string

const (
	LearningAutonomyGuided      LearningAutonomy = "guided"
	LearningAutonomyIndependent LearningAutonomy = "independent"
	LearningAutonomyMixed       LearningAutonomy = "mixed"
)

type MotivationType string

const (
	MotivationIntrinsic MotivationType = "intrinsic"
	MotivationExtrinsic MotivationType = "extrinsic"
	MotivationMixed     MotivationType = "mixed"
)

type FeedbackPreference string

const (
	FeedbackImmediate FeedbackPreference = "immediate"
	FeedbackDelayed   FeedbackPreference = "delayed"
	FeedbackMixed     FeedbackPreference = "mixed"
)

type ComplexityTolerance string

const (
	ComplexityLow    ComplexityTolerance = "low"
	ComplexityMedium ComplexityTolerance = "medium"
	ComplexityHigh   ComplexityTolerance = "high"
)

// Dimension names the merge engine and rule tables key on.
const (
	DimInstructionFlow     = "instruction_flow"
	DimInputPreference     = "input_preference"
	DimEngagementStyle     = "engagement_style"
	DimConceptType         = "concept_type"
	DimLearningAutonomy    = "learning_autonomy"
	DimMotivationType      = "motivation_type"
	DimFeedbackPreference  = "feedback_preference"
	DimComplexityTolerance = "complexity_tolerance"
)

type ResourceType string

const (
	ResourceVideo       ResourceType = "video"
	ResourceArticle     ResourceType = "article"
	ResourceInteractive ResourceType = "interactive"
	ResourceCodeExample ResourceType = "code_example"
	ResourceQuiz        ResourceType = "quiz"
	ResourceChat        ResourceType = "chat"
)

type MasteryLevel string

const (
	MasteryNotStarted MasteryLevel = "not_started"
	MasteryLearning   MasteryLevel = "learning"
	MasteryPracticing MasteryLevel = "practicing"
	MasteryProficient MasteryLevel = "proficient"
	MasteryMastered   MasteryLevel = "mastered"
)

type DifficultyLevel string

const (
	DifficultyBeginner     DifficultyLevel = "beginner"
	DifficultyIntermediate DifficultyLevel = "intermediate"
	DifficultyAdvanced     DifficultyLevel = "advanced"
)
