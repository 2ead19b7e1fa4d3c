// Package cmdline matches command line words against a declared tree of
// commands, options and arguments.
//
// # Overview
//
// Applications declare a root Command with subcommands, options and
// positional arguments, each argument carrying an Arity. A Parser turns the
// words of a command line into a ParseResult: a tree of SymbolResults that
// mirrors the commands that were invoked, the values bound to each option and
// argument, and a list of errors for anything that could not be placed.
//
// # Architecture
//
//	┌─────────────┐     ┌─────────────┐     ┌─────────────┐     ┌─────────────┐
//	│    args     │────▶│  Tokenize   │────▶│   matcher   │────▶│   results   │
//	│  (words)    │     │  (tokens)   │     │ (SyntaxNode)│     │(SymbolResult)│
//	└─────────────┘     └─────────────┘     └─────────────┘     └─────────────┘
//	                                               │                   │
//	                                               ▼                   ▼
//	                                        ┌─────────────┐     ┌─────────────┐
//	                                        │  unmatched  │     │ completions │
//	                                        │   tokens    │     │  & values   │
//	                                        └─────────────┘     └─────────────┘
//
// # Matching
//
// The matcher makes a single pass over the tokens with no backtracking. An
// option takes the argument tokens that follow it up to the maximum of its
// arity; with AllowMultipleArgumentsPerToken unset it takes at most one per
// occurrence. A boolean option only takes a following token that reads as
// true or false, so a bare flag can precede a positional value:
//
//	app --verbose input.txt    # --verbose is true, input.txt is positional
//	app --verbose false        # --verbose is false
//
// Positional arguments are filled in declaration order, each up to its
// maximum. Tokens left over are unmatched and, unless every command in the
// invocation disables TreatUnmatchedTokensAsErrors, reported as errors.
//
// Directives are bracketed words right after the root command:
//
//	app [debug] [config:verbose] build
//
// # Values
//
// GetValue searches the result tree for the exact option or argument and
// converts its tokens. Options and arguments declaring a default get an
// implicit result when they were not typed, so their default is returned.
// Anything else yields the zero value of its ValueType.
//
// # Completion
//
// Completions and CompletionsAt find the most specific result at the cursor:
// the last command or option, walking breadth first from the innermost
// command, that can still take a value. Options already holding all the
// values they accept are not suggested again.
package cmdline
