package cmdline

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

const maxSuggestions = 3

// Suggest ranks the visible subcommand and option aliases of cmd that look
// like a mistyped word.
func Suggest(word string, cmd *Command) []string {
	if word == "" || cmd == nil {
		return nil
	}

	var candidates []string
	for _, sub := range cmd.Subcommands() {
		if !sub.Hidden {
			candidates = append(candidates, sub.Aliases()...)
		}
	}
	for _, opt := range cmd.VisibleOptions() {
		if !opt.Hidden {
			candidates = append(candidates, opt.Aliases()...)
		}
	}

	type ranked struct {
		alias    string
		distance int
	}
	threshold := len(word)/3 + 1
	var matches []ranked
	for _, c := range candidates {
		d := fuzzy.LevenshteinDistance(word, c)
		if d <= threshold || fuzzy.MatchFold(word, c) {
			matches = append(matches, ranked{alias: c, distance: d})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].distance < matches[j].distance
	})

	var out []string
	for _, m := range matches {
		if m.alias == word {
			continue
		}
		out = append(out, m.alias)
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}
