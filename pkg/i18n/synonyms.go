package i18n

import (
	_ "embed"
	"os"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/wanderstone-dev/wanderstone/pkg/domain/types"
)

//go:embed synonyms.toml
var defaultSynonymsTOML []byte

// Synonyms holds the per-language typed-text fallbacks for intake
// signals. Keys of the inner maps are language codes.
type Synonyms struct {
	Skip     map[string][]string `toml:"skip"`
	Cancel   map[string][]string `toml:"cancel"`
	EnterZip map[string][]string `toml:"enter_zip"`
}

// DefaultSynonyms loads the built-in synonym sets
func DefaultSynonyms() *Synonyms {
	s, err := parseSynonyms(defaultSynonymsTOML)
	if err != nil {
		// The embedded file is validated by tests
		panic(err)
	}
	return s
}

// LoadSynonyms reads synonym sets from a TOML file, for deployments
// that want to extend or replace the built-in phrasings
func LoadSynonyms(path string) (*Synonyms, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read synonyms file", goerr.V("path", path))
	}
	return parseSynonyms(data)
}

func parseSynonyms(data []byte) (*Synonyms, error) {
	var s Synonyms
	if err := toml.Unmarshal(data, &s); err != nil {
		return nil, goerr.Wrap(err, "failed to parse synonyms")
	}
	return &s, nil
}

// Match recognizes a typed message as an intake signal. The match is
// case-insensitive and checks every language, since users mix languages
// freely regardless of their preference setting.
func (s *Synonyms) Match(text string) (types.Signal, bool) {
	normalized := strings.ToLower(strings.TrimSpace(text))
	if normalized == "" {
		return "", false
	}

	for signal, words := range map[types.Signal]map[string][]string{
		types.SignalSkip:     s.Skip,
		types.SignalCancel:   s.Cancel,
		types.SignalEnterZip: s.EnterZip,
	} {
		for _, variants := range words {
			for _, w := range variants {
				if normalized == strings.ToLower(w) {
					return signal, true
				}
			}
		}
	}

	// Button labels themselves always count
	for _, lang := range types.AllLanguages() {
		switch normalized {
		case strings.ToLower(Text(lang, KeyBtnSkip)):
			return types.SignalSkip, true
		case strings.ToLower(Text(lang, KeyBtnEnterZip)):
			return types.SignalEnterZip, true
		}
	}

	return "", false
}
