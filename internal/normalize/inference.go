package normalize

import (
	"github.com/ibnfzy/gizichain/internal/coerce"
	"github.com/ibnfzy/gizichain/internal/model"
)

// requirementBases is the precedence ladder for locating energy/protein/fluid
// across backend schema generations. Highest precedence first; the empty base
// means the flat top-level field.
var requirementBases = []string{
	"output.requirements",
	"output.daily_requirements",
	"requirements",
	"daily_requirements",
	"",
}

// RequirementValue resolves one nutrition requirement ("energy", "protein",
// "fluid") from whichever nesting generation the payload uses, falling back
// to 0 when no source holds a parseable number.
func RequirementValue(raw any, key string) float64 {
	m := AsMap(raw)
	if m == nil {
		return 0
	}
	paths := make([]string, 0, len(requirementBases))
	for _, base := range requirementBases {
		if base == "" {
			paths = append(paths, key)
			continue
		}
		paths = append(paths, base+"."+key)
	}
	f, _ := firstFloat(m, paths...)
	return f
}

// ParseStatus resolves the inference status, which is either a plain string
// or a structured object carrying code/label/badge/tone/source. The resolved
// status is code, then label, then "unknown"; structured metadata is kept for
// display.
func ParseStatus(raw any) (string, *model.StatusMeta) {
	switch t := raw.(type) {
	case string:
		if s := coerce.String(t, ""); s != "" {
			return s, nil
		}
		return "unknown", nil
	case map[string]any:
		meta := &model.StatusMeta{
			Code:   coerce.String(t["code"], ""),
			Label:  coerce.String(t["label"], ""),
			Badge:  coerce.String(t["badge"], ""),
			Tone:   coerce.String(t["tone"], ""),
			Source: coerce.String(t["source"], ""),
		}
		status := meta.Code
		if status == "" {
			status = meta.Label
		}
		if status == "" {
			status = "unknown"
		}
		return status, meta
	default:
		return "unknown", nil
	}
}

// ParseInference builds an InferenceResult from a raw inference payload.
// Returns nil when the payload is not an object.
func ParseInference(raw any) *model.InferenceResult {
	m := AsMap(raw)
	if m == nil {
		return nil
	}
	status, meta := ParseStatus(m["status"])
	return &model.InferenceResult{
		Status:         status,
		StatusMeta:     meta,
		Recommendation: firstString(m, "recommendation", "notes"),
		Energy:         RequirementValue(m, "energy"),
		Protein:        RequirementValue(m, "protein"),
		Fluid:          RequirementValue(m, "fluid"),
		UpdatedAt:      firstString(m, "created_at_human", "updated_at", "updatedAt"),
	}
}
