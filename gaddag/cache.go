package gaddag

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/wordsmithgame/wordsmith/config"
)

// CompiledPath is where the compiled form of the lexicon lives.
func CompiledPath(cfg *config.Config, lexicon string) string {
	return filepath.Join(cfg.GetString(config.ConfigLexiconPath), "gaddag", lexicon+".gaddag")
}

// WordListPath is where the plain-text word list of the lexicon lives.
func WordListPath(cfg *config.Config, lexicon string) string {
	return filepath.Join(cfg.GetString(config.ConfigLexiconPath), lexicon+".txt")
}

// LoadOrGenerate loads the compiled lexicon, or builds it from its word
// list if there is no compiled form yet. A freshly built lexicon is saved
// next to the others; failing to save it is not an error.
func LoadOrGenerate(cfg *config.Config, lexicon string) (*Gaddag, error) {
	compiled := CompiledPath(cfg, lexicon)
	g, err := LoadFromFile(compiled)
	if err == nil {
		return g, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	log.Info().Str("lexicon", lexicon).Msg("no compiled gaddag, generating")
	g, err = GenerateFromFile(WordListPath(cfg, lexicon))
	if err != nil {
		return nil, err
	}
	g.lexiconName = lexicon
	if err := os.MkdirAll(filepath.Dir(compiled), 0o755); err != nil {
		log.Err(err).Msg("could-not-create-gaddag-dir")
		return g, nil
	}
	if err := g.SaveToFile(compiled); err != nil {
		log.Err(err).Str("filename", compiled).Msg("could-not-save-gaddag")
	}
	return g, nil
}

// CacheLoadFunc loads a lexicon into a cache.Cache keyed by lexicon name.
func CacheLoadFunc(cfg *config.Config, key string) (*Gaddag, error) {
	return LoadOrGenerate(cfg, key)
}
