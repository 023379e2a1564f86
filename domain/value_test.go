package domain

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFinite_NonFiniteBecomesOverflow(t *testing.T) {
	assert.True(t, Finite(math.Inf(1)).Overflow)
	assert.True(t, Finite(math.Inf(-1)).Overflow)
	assert.True(t, Finite(math.NaN()).Overflow)

	v := Finite(12.5)
	assert.False(t, v.Overflow)
	assert.Equal(t, 12.5, v.Amount)
}

func TestValue_JSON(t *testing.T) {
	out, err := json.Marshal(ScenarioResult{
		FinalNetValue:    OverflowValue(),
		TotalContributed: Finite(100),
		NetGain:          Finite(-3.5),
		TaxAmount:        Finite(0),
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"finalNetValue":"overflow","totalContributed":100,"netGain":-3.5,"taxAmount":0}`, string(out))

	var back ScenarioResult
	require.NoError(t, json.Unmarshal(out, &back))
	assert.True(t, back.FinalNetValue.Overflow)
	assert.Equal(t, -3.5, back.NetGain.Amount)
}

func TestValue_RejectsUnknownString(t *testing.T) {
	var v Value
	err := json.Unmarshal([]byte(`"infinity"`), &v)
	assert.Error(t, err)
}

func TestSaveTarget(t *testing.T) {
	_, update := Create().Update()
	assert.False(t, update)

	var zero SaveTarget
	_, update = zero.Update()
	assert.False(t, update)

	idx, update := UpdateAt(3).WithExpectedID("abc").Update()
	assert.True(t, update)
	assert.Equal(t, 3, idx)
}

func TestErrStaleIndex_MatchesOutOfRange(t *testing.T) {
	assert.ErrorIs(t, ErrStaleIndex, ErrIndexOutOfRange)
}
