package dispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func searchSchema() Schema {
	return Schema{Fields: []Field{
		{Name: "query", Kind: KindString, Required: true},
		{Name: "remote", Kind: KindBool},
		{Name: "min_salary", Kind: KindFloat, Min: fptr(0)},
		{Name: "experience_level", Kind: KindEnum, Choices: []string{"entry", "mid", "senior"}},
		{Name: "limit", Kind: KindInt, Min: fptr(1), Max: fptr(25), Default: 10},
	}}
}

func TestValidate_AppliesDefaults(t *testing.T) {
	got, err := searchSchema().Validate(map[string]any{"query": "ml engineer"})
	require.NoError(t, err)

	assert.Equal(t, "ml engineer", got["query"])
	assert.Equal(t, 10, got["limit"])
	_, present := got["remote"]
	assert.False(t, present)
}

func TestValidate_RequiredMissing(t *testing.T) {
	_, err := searchSchema().Validate(map[string]any{})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "required", verr.Fields["query"])
}

func TestValidate_RequiredEmptyString(t *testing.T) {
	_, err := searchSchema().Validate(map[string]any{"query": "   "})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields["query"], "empty")
}

func TestValidate_JSONNumbersCoerceToInt(t *testing.T) {
	got, err := searchSchema().Validate(map[string]any{"query": "x", "limit": float64(5)})
	require.NoError(t, err)
	assert.Equal(t, 5, got["limit"])
}

func TestValidate_FractionalIntRejected(t *testing.T) {
	_, err := searchSchema().Validate(map[string]any{"query": "x", "limit": 5.5})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields["limit"], "integer")
}

func TestValidate_RangeBounds(t *testing.T) {
	_, err := searchSchema().Validate(map[string]any{"query": "x", "limit": float64(100)})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields["limit"], "<= 25")

	_, err = searchSchema().Validate(map[string]any{"query": "x", "min_salary": float64(-1)})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields["min_salary"], ">= 0")
}

func TestValidate_EnumCaseInsensitive(t *testing.T) {
	got, err := searchSchema().Validate(map[string]any{"query": "x", "experience_level": "Senior"})
	require.NoError(t, err)
	assert.Equal(t, "senior", got["experience_level"])

	_, err = searchSchema().Validate(map[string]any{"query": "x", "experience_level": "principal"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields["experience_level"], "one of")
}

func TestValidate_UnknownParameterRejected(t *testing.T) {
	_, err := searchSchema().Validate(map[string]any{"query": "x", "salary": float64(1)})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "unknown parameter", verr.Fields["salary"])
}

func TestValidate_CollectsAllProblems(t *testing.T) {
	_, err := searchSchema().Validate(map[string]any{
		"remote": "yes",
		"limit":  float64(0),
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Fields, 3) // query missing, remote wrong type, limit below range
	assert.Contains(t, err.Error(), "query")
}
