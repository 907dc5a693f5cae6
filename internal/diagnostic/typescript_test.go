package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func sample() []TypeScriptDiagnostic {
	return []TypeScriptDiagnostic{
		{Code: 2365, Message: "Operator '+' cannot be applied to types 'Vec' and 'Vec'."},
		{Code: 2304, Message: "Cannot find name 'x'."},
		{Code: 2362, Message: "The left-hand side of an arithmetic operation must be ..."},
		{Code: 2460, Message: "..."},
		{Code: 2363, Message: "..."},
	}
}

func TestFilterOperatorErrors_WithDirective(t *testing.T) {
	src := "'use operator overloading';\nconst v = a + b;\n"

	got := FilterOperatorErrors("a.ts", src, sample())

	require.Len(t, got, 1)
	assert.Equal(t, 2304, got[0].Code)
}

func TestFilterOperatorErrors_WithoutDirective(t *testing.T) {
	src := "const v = a + b;\n"

	got := FilterOperatorErrors("a.ts", src, sample())
	assert.Equal(t, sample(), got)
}

func TestFilterOperatorErrors_DirectiveTooLate(t *testing.T) {
	src := "a;\nb;\nc;\n'use operator overloading';\n"

	got := FilterOperatorErrors("a.ts", src, sample())
	assert.Len(t, got, len(sample()))
}

func TestFilter_DebugLogs(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	f := &Filter{Logger: zap.New(core), Debug: true}

	got := f.Apply("v.ts", "\"use operator overloading\"\n", sample())
	assert.Len(t, got, 1)

	assert.Equal(t, 4, logs.FilterMessage("Suppressing error").Len())

	summary := logs.FilterMessage("Filtered operator errors").All()
	require.Len(t, summary, 1)
	assert.Equal(t, int64(4), summary[0].ContextMap()["count"])
}

func TestFilter_QuietWithoutDebug(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	f := &Filter{Logger: zap.New(core)}

	f.Apply("v.ts", "\"use operator overloading\"\n", sample())
	assert.Zero(t, logs.Len())
}
