package shell

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/samber/lo"

	"github.com/wordsmithgame/wordsmith/config"
)

// ShellCompleter provides context-aware autocomplete for shell commands
type ShellCompleter struct {
	sc *ShellController
}

func NewShellCompleter(sc *ShellController) *ShellCompleter {
	return &ShellCompleter{sc: sc}
}

// CommandMetadata holds autocomplete information for a command
type CommandMetadata struct {
	Options []string // Available options for this command (e.g., "-threads")
	Args    []string // Possible argument values (for non-option arguments)
}

var commandMetadata = map[string]CommandMetadata{
	"gen": {
		Options: []string{"-yaml"},
	},
	"autoplay": {
		Options: []string{"-threads", "-file"},
	},
	"help": {
		Args: helpTopics,
	},
}

var commandNames = []string{
	"help", "lexicon", "new", "place", "rack", "gen", "play", "board",
	"cgp", "autoplay", "exit",
}

// lexicaOnDisk lists the word lists under the lexicon path.
func (c *ShellCompleter) lexicaOnDisk() []string {
	dir := c.sc.cfg.GetString(config.ConfigLexiconPath)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	return lo.FilterMap(entries, func(e os.DirEntry, _ int) (string, bool) {
		name := e.Name()
		return strings.TrimSuffix(name, ".txt"),
			!e.IsDir() && filepath.Ext(name) == ".txt"
	})
}

// Do implements the readline.AutoComplete interface
// It provides context-aware autocomplete based on what's been typed
func (c *ShellCompleter) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])

	fields, err := shellquote.Split(text)
	if err != nil {
		// If we can't parse, fall back to simple space splitting
		fields = strings.Fields(text)
	}

	// Check if we're in the middle of typing a word or just after a space
	endsWithSpace := len(text) > 0 && text[len(text)-1] == ' '

	var prefix string
	var completions []string

	if len(fields) == 0 || (len(fields) == 1 && !endsWithSpace) {
		if len(fields) == 1 {
			prefix = fields[0]
		}
		completions = commandNames
	} else {
		cmdName := fields[0]
		if !endsWithSpace {
			prefix = fields[len(fields)-1]
		}

		switch cmdName {
		case "lexicon":
			completions = c.lexicaOnDisk()
		case "play":
			completions = lo.Times(len(c.sc.curPlays), func(i int) string {
				return strconv.Itoa(i + 1)
			})
		}

		if completions == nil {
			if metadata, exists := commandMetadata[cmdName]; exists {
				if strings.HasPrefix(prefix, "-") || len(metadata.Args) == 0 {
					completions = metadata.Options
				} else {
					completions = metadata.Args
				}
			}
		}
	}

	// Filter completions based on prefix
	var matches [][]rune
	for _, completion := range completions {
		if strings.HasPrefix(completion, prefix) {
			// Return only the part that needs to be added
			suffix := completion[len(prefix):]
			matches = append(matches, []rune(suffix))
		}
	}

	return matches, len(prefix)
}
