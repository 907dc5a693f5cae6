package diagnostic

import (
	"go.uber.org/zap"

	"op-overloading/internal/analyze"
)

// Type checker error codes raised by operators applied to objects.
const (
	TSOperatorNotApplicable = 2365 // Operator 'X' cannot be applied to types ...
	TSLeftHandArithmetic    = 2362 // The left-hand side of an arithmetic operation must be ...
	TSRightHandArithmetic   = 2363 // The right-hand side of an arithmetic operation must be ...
	TSNoIndexSignature      = 2460 // Type 'X' has no property 'Y' and no string index signature
)

// OperatorErrorCodes is the set of codes hidden in files that opt in.
var OperatorErrorCodes = map[int]bool{
	TSOperatorNotApplicable: true,
	TSLeftHandArithmetic:    true,
	TSRightHandArithmetic:   true,
	TSNoIndexSignature:      true,
}

// TypeScriptDiagnostic is a type checker diagnostic in the JSON form emitted
// by editor tooling.
type TypeScriptDiagnostic struct {
	Code     int    `json:"code"`
	Category int    `json:"category,omitempty"`
	Message  string `json:"message"`
	Start    int    `json:"start,omitempty"`
	Length   int    `json:"length,omitempty"`
	File     string `json:"file,omitempty"`
}

// Filter removes operator errors from files carrying the directive.
type Filter struct {
	Logger *zap.Logger
	// Debug logs every suppressed diagnostic.
	Debug bool
}

// Apply returns diags without operator errors if source has the directive,
// and diags unchanged otherwise.
func (f *Filter) Apply(fileID, source string, diags []TypeScriptDiagnostic) []TypeScriptDiagnostic {
	if !analyze.HasDirective(source, fileID) {
		return diags
	}

	logger := f.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	filtered := make([]TypeScriptDiagnostic, 0, len(diags))

	for _, d := range diags {
		if OperatorErrorCodes[d.Code] {
			if f.Debug {
				logger.Info("Suppressing error", zap.Int("code", d.Code), zap.String("file", fileID))
			}

			continue
		}

		filtered = append(filtered, d)
	}

	if f.Debug && len(filtered) < len(diags) {
		logger.Info("Filtered operator errors",
			zap.Int("count", len(diags)-len(filtered)),
			zap.String("file", fileID))
	}

	return filtered
}

// FilterOperatorErrors is Apply without logging.
func FilterOperatorErrors(fileID, source string, diags []TypeScriptDiagnostic) []TypeScriptDiagnostic {
	return (&Filter{}).Apply(fileID, source, diags)
}
