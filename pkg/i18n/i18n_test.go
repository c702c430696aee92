package i18n_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/wanderstone-dev/wanderstone/pkg/domain/types"
	"github.com/wanderstone-dev/wanderstone/pkg/i18n"
)

func TestText(t *testing.T) {
	t.Run("translates per language", func(t *testing.T) {
		gt.Value(t, i18n.Text(types.LanguagePolish, i18n.KeyBtnSkip)).Equal("Pomiń")
		gt.Value(t, i18n.Text(types.LanguageEnglish, i18n.KeyBtnSkip)).Equal("Skip")
		gt.Value(t, i18n.Text(types.LanguageRussian, i18n.KeyBtnSkip)).Equal("Пропустить")
	})

	t.Run("unknown language falls back to default", func(t *testing.T) {
		gt.Value(t, i18n.Text(types.Language("de"), i18n.KeyBtnSkip)).Equal("Pomiń")
		gt.Value(t, i18n.Text(types.Language(""), i18n.KeyBtnSkip)).Equal("Pomiń")
	})

	t.Run("every language has every key of the default catalog", func(t *testing.T) {
		for _, lang := range types.AllLanguages() {
			for _, key := range []i18n.Key{
				i18n.KeyWelcome, i18n.KeyHelp, i18n.KeyAnalyzing,
				i18n.KeyStoneRegistered, i18n.KeyDeleteConfirm,
				i18n.KeyPageInfo, i18n.KeyFindNone, i18n.KeyErrorGeneric,
			} {
				gt.Value(t, i18n.Text(lang, key)).NotEqual(string(key))
			}
		}
	})
}

func TestTextf(t *testing.T) {
	got := i18n.Textf(types.LanguageEnglish, i18n.KeyStoneRegistered, "Ziggy")
	gt.Value(t, got).Equal("✅ Rock «Ziggy» registered!")

	got = i18n.Textf(types.LanguagePolish, i18n.KeyPageInfo, 2, 3, 23)
	gt.Value(t, got).Equal("📄 Strona 2/3 (kamyków: 23)")
}

func TestSynonyms(t *testing.T) {
	syn := i18n.DefaultSynonyms()

	t.Run("matches typed variants across languages", func(t *testing.T) {
		for _, tc := range []struct {
			text   string
			signal types.Signal
		}{
			{"skip", types.SignalSkip},
			{"Pomiń", types.SignalSkip},
			{"ПРОПУСТИТЬ", types.SignalSkip},
			{"-", types.SignalSkip},
			{"cancel", types.SignalCancel},
			{"anuluj", types.SignalCancel},
			{"отмена", types.SignalCancel},
			{"zip code", types.SignalEnterZip},
			{"  индекс  ", types.SignalEnterZip},
		} {
			signal, ok := syn.Match(tc.text)
			gt.True(t, ok)
			gt.Value(t, signal).Equal(tc.signal)
		}
	})

	t.Run("matches localized button labels", func(t *testing.T) {
		signal, ok := syn.Match("wpisz kod pocztowy")
		gt.True(t, ok)
		gt.Value(t, signal).Equal(types.SignalEnterZip)
	})

	t.Run("ordinary text is not a signal", func(t *testing.T) {
		for _, text := range []string{"", "   ", "Ziggy", "52.23 21.01", "00-001"} {
			_, ok := syn.Match(text)
			gt.Value(t, ok).Equal(false)
		}
	})
}
