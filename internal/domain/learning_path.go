package domain

// Graph-store entities read by the ranking function. The catalog lives in
// Neo4j; these are plain value copies of node and relationship data.

type LearningResource struct {
	ID              string          `json:"id"`
	ResourceType    ResourceType    `json:"resource_type"`
	Title           string          `json:"title"`
	URL             string          `json:"url"`
	DurationMinutes int             `json:"duration_minutes,omitempty"`
	ThumbnailURL    string          `json:"thumbnail_url,omitempty"`
	DifficultyLevel DifficultyLevel `json:"difficulty_level"`

	// EngagementScore and CompletionRate are running values updated by
	// exponential smoothing on every interaction close.
	EngagementScore float64 `json:"engagement_score"`
	CompletionRate  float64 `json:"completion_rate"`

	LearningStyle   string   `json:"learning_style"`
	InteractionType string   `json:"interaction_type"`
	Language        string   `json:"language"`
	Description     string   `json:"description,omitempty"`
	Tags            []string `json:"tags,omitempty"`
}

// ConceptResource is a candidate resource with its declared order within
// the owning concept (the ranking tie-break).
type ConceptResource struct {
	Resource      LearningResource `json:"resource"`
	ResourceOrder int              `json:"resource_order"`
}

// ConceptEdge is one PREREQUISITE_FOR relationship; From is a prerequisite
// of To.
type ConceptEdge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// ConceptRef carries the concept fields the ranking function needs.
type ConceptRef struct {
	Name           string  `json:"name"`
	EstimatedHours float64 `json:"estimated_hours"`
}

// ConceptDetail is a concept with its resources and graph-derived counts.
type ConceptDetail struct {
	ID                 string             `json:"id"`
	Name               string             `json:"name"`
	Type               string             `json:"type"`
	Complexity         string             `json:"complexity"`
	EstimatedHours     float64            `json:"estimated_hours"`
	CognitiveTags      []string           `json:"cognitive_tags,omitempty"`
	LearningStyles     []string           `json:"learning_styles,omitempty"`
	Description        string             `json:"description,omitempty"`
	PrerequisitesCount int                `json:"prerequisites_count"`
	SubtopicsCount     int                `json:"subtopics_count"`
	Resources          []LearningResource `json:"resources"`
}

// ScoredResource is one ranked candidate with its score breakdown, kept
// for explainability.
type ScoredResource struct {
	Resource        LearningResource `json:"resource"`
	ResourceOrder   int              `json:"resource_order"`
	StyleScore      float64          `json:"style_score"`
	DifficultyScore float64          `json:"difficulty_score"`
	MatchScore      float64          `json:"match_score"`
}

// PersonalizedLearningPath is the ranking function's output for one
// (profile, concept) pair.
type PersonalizedLearningPath struct {
	ConceptName          string           `json:"concept_name"`
	RecommendedResources []ScoredResource `json:"recommended_resources"`
	EstimatedTimeMinutes int              `json:"estimated_time_minutes"`
	DifficultyMatchScore float64          `json:"difficulty_match_score"`
	StyleMatchScore      float64          `json:"style_match_score"`
	NextConcepts         []string         `json:"next_concepts"`
}
