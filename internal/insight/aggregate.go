package insight

import (
	"fmt"
	"sort"
	"time"

	"github.com/pathwise/pathwise-backend/internal/domain"
	pkgerrors "github.com/pathwise/pathwise-backend/internal/pkg/errors"

	"github.com/google/uuid"
)

// AggregateInput carries the already-filtered record collections for one
// learner. Window filtering on started_at is the aggregator's job for
// interactions and sessions; masteries are never time-filtered.
type AggregateInput struct {
	UserID     uuid.UUID
	WindowDays int
	Now        time.Time

	Interactions []*domain.ResourceInteraction
	Sessions     []*domain.LearningSession
	Masteries    []*domain.ConceptMastery
}

// Aggregate reduces the raw records to the three stat bundles. It is a
// pure function of its input.
func Aggregate(in AggregateInput) (domain.BehavioralAggregate, error) {
	if in.WindowDays <= 0 {
		return domain.BehavioralAggregate{}, fmt.Errorf("window of %d days: %w", in.WindowDays, pkgerrors.ErrInvalidWindow)
	}
	now := in.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}
	cutoff := now.AddDate(0, 0, -in.WindowDays)

	agg := domain.BehavioralAggregate{
		UserID:      in.UserID,
		WindowDays:  in.WindowDays,
		PeriodStart: cutoff,
		PeriodEnd:   now,

		ResourcePreferences: aggregateResourcePreferences(in.Interactions, cutoff),
		LearningPatterns:    aggregateLearningPatterns(in.Sessions, cutoff),
		MasteryProgression:  aggregateMasteryProgression(in.Masteries),
	}
	if err := agg.Validate(); err != nil {
		return domain.BehavioralAggregate{}, fmt.Errorf("aggregate: %w", err)
	}
	return agg, nil
}

// DefaultAggregate is the fully-specified cold-start aggregate: what
// Aggregate returns over empty collections. It is also the fallback when a
// collaborator read fails.
func DefaultAggregate(userID uuid.UUID, windowDays int, now time.Time) domain.BehavioralAggregate {
	if now.IsZero() {
		now = time.Now().UTC()
	}
	return domain.BehavioralAggregate{
		UserID:      userID,
		WindowDays:  windowDays,
		PeriodStart: now.AddDate(0, 0, -windowDays),
		PeriodEnd:   now,

		ResourcePreferences: defaultResourcePreferences(),
		LearningPatterns:    defaultLearningPatterns(),
		MasteryProgression:  defaultMasteryProgression(),
	}
}

func aggregateResourcePreferences(interactions []*domain.ResourceInteraction, cutoff time.Time) domain.ResourcePreferenceStats {
	var videoCount, textCount, interactiveCount int
	var videoCompletion, textCompletion, interCompletion float64
	var videoEngagement, textEngagement []float64

	seen := 0
	for _, ri := range interactions {
		if ri == nil || ri.StartedAt.Before(cutoff) {
			continue
		}
		seen++
		switch {
		case ri.ResourceType == domain.ResourceVideo:
			videoCount++
			videoCompletion += ri.CompletionPercentage
			if ri.EngagementScore != nil {
				videoEngagement = append(videoEngagement, float64(*ri.EngagementScore))
			}
		case ri.IsTextLike():
			textCount++
			textCompletion += ri.CompletionPercentage
			if ri.EngagementScore != nil {
				textEngagement = append(textEngagement, float64(*ri.EngagementScore))
			}
		case ri.ResourceType == domain.ResourceInteractive:
			interactiveCount++
			interCompletion += ri.CompletionPercentage
		}
	}
	if seen == 0 {
		return defaultResourcePreferences()
	}

	avgVideoEngagement := mean(videoEngagement)
	avgTextEngagement := mean(textEngagement)

	return domain.ResourcePreferenceStats{
		VideoCount:       videoCount,
		TextCount:        textCount,
		InteractiveCount: interactiveCount,
		TotalResources:   videoCount + textCount + interactiveCount,

		VideoToTextRatio: float64(videoCount) / float64(textCount+1),

		AvgVideoCompletion:       safeDiv(videoCompletion, videoCount),
		AvgTextCompletion:        safeDiv(textCompletion, textCount),
		AvgInteractiveCompletion: safeDiv(interCompletion, interactiveCount),

		AvgVideoEngagement: avgVideoEngagement,
		AvgTextEngagement:  avgTextEngagement,

		PreferredResourceType: preferredResourceType(videoCount, textCount, interactiveCount, avgVideoEngagement, avgTextEngagement),
	}
}

func preferredResourceType(videoCount, textCount, interactiveCount int, videoEngagement, textEngagement float64) string {
	switch {
	case videoCount > textCount && videoEngagement > textEngagement:
		return "video"
	case textCount > videoCount && textEngagement > videoEngagement:
		return "text"
	case interactiveCount > max(videoCount, textCount):
		return "interactive"
	default:
		return "mixed"
	}
}

func aggregateLearningPatterns(sessions []*domain.LearningSession, cutoff time.Time) domain.LearningPatternStats {
	var windowed []*domain.LearningSession
	for _, s := range sessions {
		if s == nil || s.StartedAt.Before(cutoff) {
			continue
		}
		windowed = append(windowed, s)
	}
	if len(windowed) == 0 {
		return defaultLearningPatterns()
	}

	totalDuration := 0
	frustration := 0
	var focusScores, completionRates []float64
	var allConcepts []string
	hourOrder := make([]int, 0, 24)
	hourCounts := make(map[int]int, 24)

	for _, s := range windowed {
		totalDuration += s.DurationSeconds
		frustration += s.FrustrationIndicators

		hour := s.StartedAt.Hour()
		if _, ok := hourCounts[hour]; !ok {
			hourOrder = append(hourOrder, hour)
		}
		hourCounts[hour]++

		if s.FocusScore != nil {
			focusScores = append(focusScores, *s.FocusScore)
		}
		if s.CompletionRate != nil {
			completionRates = append(completionRates, *s.CompletionRate)
		}
		allConcepts = append(allConcepts, s.ConceptsCovered...)
	}

	uniqueConcepts := countDistinct(allConcepts)
	revisitRate := 1.0
	if uniqueConcepts > 0 {
		revisitRate = float64(len(allConcepts)) / float64(uniqueConcepts)
	}

	return domain.LearningPatternStats{
		TotalSessions:             len(windowed),
		AvgSessionDurationMinutes: float64(totalDuration) / float64(len(windowed)) / 60,
		TotalLearningTimeHours:    float64(totalDuration) / 3600,
		PreferredLearningHours:    topHours(hourOrder, hourCounts, 3),

		AvgFocusScore:     meanOr(focusScores, 0.5),
		AvgCompletionRate: meanOr(completionRates, 0.5),
		FrustrationEvents: frustration,

		UniqueConceptsExplored: uniqueConcepts,
		ConceptRevisitRate:     revisitRate,
		LearningConsistency:    learningConsistency(windowed),
	}
}

// learningConsistency is distinct-session-dates over the spanned days,
// clamped to 1.0. Fewer than two sessions is an uninformative 0.5.
func learningConsistency(sessions []*domain.LearningSession) float64 {
	if len(sessions) < 2 {
		return 0.5
	}
	distinct := make(map[string]struct{}, len(sessions))
	minDate, maxDate := sessions[0].StartedAt, sessions[0].StartedAt
	for _, s := range sessions {
		distinct[s.StartedAt.UTC().Format("2006-01-02")] = struct{}{}
		if s.StartedAt.Before(minDate) {
			minDate = s.StartedAt
		}
		if s.StartedAt.After(maxDate) {
			maxDate = s.StartedAt
		}
	}
	spanDays := int(truncateToDay(maxDate).Sub(truncateToDay(minDate)).Hours()/24) + 1
	if spanDays <= 0 {
		return 0.5
	}
	consistency := float64(len(distinct)) / float64(spanDays)
	if consistency > 1.0 {
		return 1.0
	}
	return consistency
}

func aggregateMasteryProgression(masteries []*domain.ConceptMastery) domain.MasteryProgressionStats {
	live := make([]*domain.ConceptMastery, 0, len(masteries))
	for _, m := range masteries {
		if m != nil {
			live = append(live, m)
		}
	}
	if len(live) == 0 {
		return defaultMasteryProgression()
	}

	distribution := make(map[domain.MasteryLevel]int, 5)
	totalTime := 0
	var velocities, retentions []float64
	for _, m := range live {
		distribution[m.CurrentLevel]++
		totalTime += m.TotalTimeSpentSeconds
		if m.LearningVelocity != nil {
			velocities = append(velocities, *m.LearningVelocity)
		}
		if m.RetentionScore != nil {
			retentions = append(retentions, *m.RetentionScore)
		}
	}

	return domain.MasteryProgressionStats{
		TotalConceptsTracked: len(live),
		MasteryDistribution:  distribution,

		AvgLearningVelocity: meanOr(velocities, 0.5),
		AvgRetentionScore:   meanOr(retentions, 0.5),

		AvgTimePerConceptHours: float64(totalTime) / float64(len(live)) / 3600,
		ConceptsMastered:       distribution[domain.MasteryMastered],
		ConceptsInProgress:     distribution[domain.MasteryLearning] + distribution[domain.MasteryPracticing],
	}
}

func defaultResourcePreferences() domain.ResourcePreferenceStats {
	return domain.ResourcePreferenceStats{
		VideoToTextRatio:      1.0,
		PreferredResourceType: "mixed",
	}
}

func defaultLearningPatterns() domain.LearningPatternStats {
	return domain.LearningPatternStats{
		AvgFocusScore:       0.5,
		AvgCompletionRate:   0.5,
		ConceptRevisitRate:  1.0,
		LearningConsistency: 0.5,
	}
}

func defaultMasteryProgression() domain.MasteryProgressionStats {
	return domain.MasteryProgressionStats{
		MasteryDistribution: map[domain.MasteryLevel]int{},
		AvgLearningVelocity: 0.5,
		AvgRetentionScore:   0.5,
	}
}

// topHours returns the n most frequent session-start hours, ties broken by
// first-seen order.
func topHours(order []int, counts map[int]int, n int) []domain.PreferredHour {
	hours := make([]domain.PreferredHour, 0, len(order))
	for _, h := range order {
		hours = append(hours, domain.PreferredHour{Hour: h, Sessions: counts[h]})
	}
	sort.SliceStable(hours, func(i, j int) bool {
		return hours[i].Sessions > hours[j].Sessions
	})
	if len(hours) > n {
		hours = hours[:n]
	}
	return hours
}

func truncateToDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

func countDistinct(values []string) int {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return len(set)
}

func mean(values []float64) float64 {
	return meanOr(values, 0)
}

func meanOr(values []float64, def float64) float64 {
	if len(values) == 0 {
		return def
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func safeDiv(sum float64, count int) float64 {
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}
