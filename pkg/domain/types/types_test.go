package types_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/wanderstone-dev/wanderstone/pkg/domain/types"
)

func TestParseStoneID(t *testing.T) {
	id, err := types.ParseStoneID("42")
	gt.NoError(t, err)
	gt.Value(t, id).Equal(types.StoneID(42))

	for _, input := range []string{"", "abc", "-1", "0", "1.5"} {
		t.Run(input, func(t *testing.T) {
			_, err := types.ParseStoneID(input)
			gt.Error(t, err)
		})
	}
}

func TestIntakeState(t *testing.T) {
	for _, s := range types.AllIntakeStates() {
		gt.True(t, s.IsValid())
	}
	gt.False(t, types.IntakeState("waiting").IsValid())

	gt.True(t, types.IntakeStateDone.IsTerminal())
	gt.False(t, types.IntakeStateAwaitingLocation.IsTerminal())

	_, err := types.ParseIntakeState("nope")
	gt.Error(t, err)

	state, err := types.ParseIntakeState("awaiting_name")
	gt.NoError(t, err)
	gt.Value(t, state).Equal(types.IntakeStateAwaitingName)
}

func TestSignal(t *testing.T) {
	gt.True(t, types.SignalSkip.IsValid())
	gt.True(t, types.SignalConfirmDelete.IsValid())
	gt.False(t, types.Signal("Skip").IsValid())
	gt.False(t, types.Signal("").IsValid())
}

func TestLanguageNormalize(t *testing.T) {
	gt.Value(t, types.Language("").Normalize()).Equal(types.DefaultLanguage)
	gt.Value(t, types.Language("de").Normalize()).Equal(types.DefaultLanguage)
	gt.Value(t, types.LanguageEnglish.Normalize()).Equal(types.LanguageEnglish)
}
