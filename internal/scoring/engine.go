// Package scoring implements the pure interview scoring computations:
// weighted section scores, difficulty adjustment, readiness verdicts and the
// post-completion analysis (performance tier, section breakdown, action
// plan). Nothing in this package performs I/O; identical inputs always
// produce identical outputs, which is what makes scores auditable across
// replays.
package scoring

import (
	"math"
	"sort"

	"github.com/arjunmehta12/mockmate/pkg/apperror"
	"github.com/arjunmehta12/mockmate/pkg/model"
)

// Round2 rounds to two decimals, half up on the cent.
func Round2(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}

func clampRaw(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 10 {
		return 10
	}
	return v
}

// WeightedScore converts raw 0-10 section scores into a 0-100 score using
// the profile's section weights. Sections missing from raw count as 0.
func WeightedScore(raw map[string]float64, profile *model.RoleProfile) float64 {
	var sum float64
	for _, s := range profile.Sections {
		sum += clampRaw(raw[s.Name]) * 10 * float64(s.Weight) / 100
	}
	return Round2(sum)
}

// ApplyDifficulty scales a weighted score by the model's per-level
// multiplier, capped at 100.
func ApplyDifficulty(weighted float64, level model.DifficultyLevel, sm *model.ScoringModel) (float64, error) {
	mult, ok := sm.Multipliers[level]
	if !ok || mult <= 0 {
		return 0, apperror.Validation("no multiplier for difficulty level " + string(level))
	}
	v := weighted * mult
	if v > 100 {
		v = 100
	}
	return Round2(v), nil
}

type FinalResult struct {
	WeightedScore   float64
	OverallScore    float64
	ReadinessStatus model.ReadinessStatus
	ReadinessGap    float64
}

// ComputeFinalResult runs the full pipeline: weighting, difficulty
// adjustment, readiness verdict. The gap is 0 exactly when ready.
func ComputeFinalResult(raw map[string]float64, profile *model.RoleProfile, level model.DifficultyLevel, sm *model.ScoringModel) (FinalResult, error) {
	weighted := WeightedScore(raw, profile)
	overall, err := ApplyDifficulty(weighted, level, sm)
	if err != nil {
		return FinalResult{}, err
	}
	res := FinalResult{WeightedScore: weighted, OverallScore: overall}
	if overall >= profile.ReadinessThreshold {
		res.ReadinessStatus = model.ReadinessReady
		res.ReadinessGap = 0
	} else {
		res.ReadinessStatus = model.ReadinessNotReady
		res.ReadinessGap = Round2(profile.ReadinessThreshold - overall)
	}
	return res, nil
}

// Tier buckets an overall score into a performance tier.
func Tier(overall float64) string {
	switch {
	case overall >= 90:
		return "elite"
	case overall >= 80:
		return "strong_candidate"
	case overall >= 70:
		return "interview_ready"
	case overall >= 60:
		return "approaching_readiness"
	default:
		return "developing"
	}
}

// Breakdown ranks sections by weighted contribution, descending. Ties keep
// the profile's section order.
func Breakdown(raw map[string]float64, profile *model.RoleProfile) []model.SectionResult {
	out := make([]model.SectionResult, 0, len(profile.Sections))
	for _, s := range profile.Sections {
		r := clampRaw(raw[s.Name])
		out = append(out, model.SectionResult{
			Name:          s.Name,
			Weight:        s.Weight,
			RawScore:      r,
			WeightedScore: Round2(r * 10 * float64(s.Weight) / 100),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].WeightedScore > out[j].WeightedScore
	})
	return out
}

// BuildActionPlan recommends the minimum raw-score increase on the weakest
// section that closes the gap to threshold+confidenceBuffer. Returns nil
// when the candidate is already at or above the target, or when the weakest
// section carries no weight (a zero-weight section cannot move the score).
func BuildActionPlan(breakdown []model.SectionResult, profile *model.RoleProfile, overall float64) *model.ActionPlan {
	target := profile.ReadinessThreshold + profile.ConfidenceBuffer
	gap := target - overall
	if gap <= 0 || len(breakdown) == 0 {
		return nil
	}

	weakest := &breakdown[len(breakdown)-1]
	if weakest.Weight == 0 {
		return nil
	}

	// Each raw point on a section moves the weighted score by weight/10.
	increase := Round2(gap * 10 / float64(weakest.Weight))
	if room := 10 - weakest.RawScore; increase > room {
		increase = Round2(room)
	}
	return &model.ActionPlan{
		FocusSection:      weakest.Name,
		TargetScore:       Round2(target),
		RawScoreIncrease:  increase,
		CurrentRawScore:   weakest.RawScore,
		RecommendedAction: "improve " + weakest.Name + " to close the readiness gap",
	}
}
