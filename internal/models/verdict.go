package models

import "strings"

// ParseVerdict maps loosely formatted model output ("cult leader", "Cult-Leader") onto a Verdict.
func ParseVerdict(raw string) (Verdict, bool) {
	normalized := strings.ToUpper(strings.TrimSpace(raw))
	normalized = strings.NewReplacer(" ", "_", "-", "_").Replace(normalized)

	switch v := Verdict(normalized); v {
	case VerdictSafe, VerdictCaution, VerdictDanger, VerdictCultLeader:
		return v, true
	}
	return "", false
}

// VerdictForScore is used when the model returns a verdict outside the enumeration.
func VerdictForScore(score int) Verdict {
	switch {
	case score >= 9:
		return VerdictCultLeader
	case score >= 7:
		return VerdictDanger
	case score >= 4:
		return VerdictCaution
	default:
		return VerdictSafe
	}
}

func ClampScore(score int) int {
	if score < MinCultScore {
		return MinCultScore
	}
	if score > MaxCultScore {
		return MaxCultScore
	}
	return score
}

// Normalize enforces the score bounds and the verdict enumeration. ImageURL is left as reported.
func (p *Profile) Normalize() {
	p.CultScore = ClampScore(p.CultScore)
	if v, ok := ParseVerdict(string(p.Verdict)); ok {
		p.Verdict = v
	} else {
		p.Verdict = VerdictForScore(p.CultScore)
	}
}
