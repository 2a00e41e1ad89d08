package report

// Tier thresholds
const (
	StabilityExcellent = 95.0
	StabilityGood      = 85.0

	LatencyExcellentMs  = 50.0
	LatencyAcceptableMs = 100.0

	StatusExcellent = 90.0
	StatusGood      = 75.0
	StatusFair      = 60.0
)

// Network score penalty per failed operation, capped
const (
	failurePenalty    = 10
	maxFailurePenalty = 50
)

// Level is the health grade of a tier
type Level string

const (
	LevelExcellent Level = "excellent"
	LevelGood      Level = "good"
	LevelFair      Level = "fair"
	LevelPoor      Level = "poor"
)

// Tier is a graded classification with its display text
type Tier struct {
	Level   Level
	Icon    string
	Message string
	Advice  []string
}

// StabilityTier classifies a stability score
func StabilityTier(score float64) Tier {
	switch {
	case score >= StabilityExcellent:
		return Tier{Level: LevelExcellent, Icon: "✅", Message: "Excellent stability. System ready for production."}
	case score >= StabilityGood:
		return Tier{Level: LevelGood, Icon: "⚠️ ", Message: "Good stability. Monitor in production."}
	default:
		return Tier{
			Level:   LevelPoor,
			Icon:    "❌",
			Message: "Insufficient stability. Needs optimization.",
			Advice: []string{
				"Check server resources",
				"Review network configuration",
				"Consider more powerful hardware",
			},
		}
	}
}

// LatencyTier classifies an average latency in milliseconds
func LatencyTier(avgMs float64) Tier {
	switch {
	case avgMs < LatencyExcellentMs:
		return Tier{Level: LevelExcellent, Icon: "✅", Message: "Excellent latency for streaming"}
	case avgMs < LatencyAcceptableMs:
		return Tier{Level: LevelGood, Icon: "⚠️ ", Message: "Acceptable latency for streaming"}
	default:
		return Tier{Level: LevelPoor, Icon: "❌", Message: "High latency - may affect quality"}
	}
}

// StatusTier classifies the overall score
func StatusTier(overall float64) Tier {
	switch {
	case overall >= StatusExcellent:
		return Tier{Level: LevelExcellent, Icon: "🟢", Message: "STATUS: EXCELLENT - Ready for production"}
	case overall >= StatusGood:
		return Tier{Level: LevelGood, Icon: "🟡", Message: "STATUS: GOOD - Monitoring recommended"}
	case overall >= StatusFair:
		return Tier{Level: LevelFair, Icon: "🟠", Message: "STATUS: FAIR - Optimization needed"}
	default:
		return Tier{Level: LevelPoor, Icon: "🔴", Message: "STATUS: CRITICAL - Requires immediate attention"}
	}
}

// NetworkScore is 100 minus 10 points per failed operation, losing at most 50
func NetworkScore(failedOperations int) float64 {
	penalty := failedOperations * failurePenalty
	if penalty > maxFailurePenalty {
		penalty = maxFailurePenalty
	}
	return float64(100 - penalty)
}

// OverallScore averages the stability and network scores
func OverallScore(stabilityScore, networkScore float64) float64 {
	return (stabilityScore + networkScore) / 2
}

// Summary holds the scores behind the executive summary
type Summary struct {
	StabilityScore float64 `json:"stability_score"`
	NetworkScore   float64 `json:"network_score"`
	OverallScore   float64 `json:"overall_score"`
	Level          Level   `json:"level"`
	Status         string  `json:"status"`
}

// Summarize computes the executive summary scores.
// It returns false unless both source files were discovered. A discovered
// input whose analysis is absent contributes a score of 0.
func Summarize(in Input) (Summary, bool) {
	if !in.Sources.Complete() {
		return Summary{}, false
	}

	var s Summary
	if in.Stability != nil {
		s.StabilityScore = in.Stability.StabilityScore
	}
	if in.Network != nil {
		s.NetworkScore = NetworkScore(in.Network.FailedOperations)
	}
	s.OverallScore = OverallScore(s.StabilityScore, s.NetworkScore)

	tier := StatusTier(s.OverallScore)
	s.Level = tier.Level
	s.Status = tier.Message
	return s, true
}
