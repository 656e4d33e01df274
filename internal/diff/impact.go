package diff

import "strings"

type Impact string

const (
	ImpactLow    Impact = "low"
	ImpactMedium Impact = "medium"
	ImpactHigh   Impact = "high"
)

var (
	highImpactTerms   = []string{"primary", "background", "foreground"}
	mediumImpactTerms = []string{"secondary", "accent", PathTypography, PathBrand}
)

const (
	highRiskHighImpact   = 5
	highRiskTotal        = 20
	mediumRiskHighImpact = 2
	mediumRiskTotal      = 10
)

// ClassifyImpact grades a change by the role its path names.
func ClassifyImpact(change Change) Impact {
	for _, term := range highImpactTerms {
		if strings.Contains(change.Path, term) {
			return ImpactHigh
		}
	}
	for _, term := range mediumImpactTerms {
		if strings.Contains(change.Path, term) {
			return ImpactMedium
		}
	}
	return ImpactLow
}

type RiskAssessment struct {
	Level  Impact `json:"level"`
	High   int    `json:"high"`
	Medium int    `json:"medium"`
	Low    int    `json:"low"`
	Total  int    `json:"total"`
}

// AssessRisk rates a whole diff: high past 5 high-impact or 20 total changes,
// medium past 2 high-impact or 10 total.
func AssessRisk(d Diff) RiskAssessment {
	assessment := RiskAssessment{Total: len(d.Changes)}
	for _, change := range d.Changes {
		switch ClassifyImpact(change) {
		case ImpactHigh:
			assessment.High++
		case ImpactMedium:
			assessment.Medium++
		default:
			assessment.Low++
		}
	}

	switch {
	case assessment.High > highRiskHighImpact || assessment.Total > highRiskTotal:
		assessment.Level = ImpactHigh
	case assessment.High > mediumRiskHighImpact || assessment.Total > mediumRiskTotal:
		assessment.Level = ImpactMedium
	default:
		assessment.Level = ImpactLow
	}
	return assessment
}
