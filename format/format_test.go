package format

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dhamidi/cmdline/cmdline"
)

func sampleResult() *cmdline.ParseResult {
	count := cmdline.MustOption("--count", cmdline.NewArgument("count", cmdline.TypeInt).SetDefaultValue(2))
	build := cmdline.MustCommand("build").MustAdd(cmdline.NewArgument("target", cmdline.TypeString))
	root := cmdline.MustCommand("app").MustAdd(count, build)
	return cmdline.NewParser(root).Parse([]string{"[debug]", "build", "main", "x"})
}

func encode(t *testing.T, e Encoder, buf *bytes.Buffer) string {
	t.Helper()
	if err := e.Encode(sampleResult()); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	return buf.String()
}

func TestTextEncoder(t *testing.T) {
	var buf bytes.Buffer
	got := encode(t, NewTextEncoder(&buf), &buf)

	want := `Command app
  Command build
    Argument target [main]
  Option --count (implicit)
    Argument count (implicit)
directive debug
unmatched x
error: Unrecognized command or argument 'x'.
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("text output mismatch (-want +got):\n%s", diff)
	}
}

func TestLineEncoder(t *testing.T) {
	var buf bytes.Buffer
	got := encode(t, NewLineEncoder(&buf), &buf)

	want := "token\tDirective\t0\t[debug]\n" +
		"token\tCommand\t1\tbuild\n" +
		"token\tArgument\t2\tmain\n" +
		"token\tArgument\t3\tx\n" +
		"unmatched\t3\tx\n" +
		"error\tUnrecognized command or argument 'x'.\t\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("line output mismatch (-want +got):\n%s", diff)
	}
}

func TestLineEncoderCompletions(t *testing.T) {
	var buf bytes.Buffer
	items := []cmdline.CompletionItem{
		{Label: "build", Detail: "Build\n  the project"},
		{Label: "--verbose"},
	}
	if err := NewLineEncoder(&buf).EncodeCompletions(items); err != nil {
		t.Fatal(err)
	}
	want := "build\tBuild the project\n--verbose\n"
	if got := buf.String(); got != want {
		t.Errorf("completions = %q, want %q", got, want)
	}
}

func TestJSONEncoder(t *testing.T) {
	var buf bytes.Buffer
	out := encode(t, NewJSONEncoder(&buf), &buf)

	var got struct {
		Command string `json:"command"`
		Tree    struct {
			Name     string `json:"name"`
			Children []struct {
				Kind     string `json:"kind"`
				Name     string `json:"name"`
				Implicit bool   `json:"implicit"`
				Children []struct {
					Name   string   `json:"name"`
					Tokens []string `json:"tokens"`
					Value  any      `json:"value"`
				} `json:"children"`
			} `json:"children"`
		} `json:"tree"`
		Tokens     []jsonToken          `json:"tokens"`
		Unmatched  []jsonToken          `json:"unmatched"`
		Errors     []jsonError          `json:"errors"`
		Directives map[string][]*string `json:"directives"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}

	if got.Command != "build" || got.Tree.Name != "app" {
		t.Errorf("command = %q, tree root = %q", got.Command, got.Tree.Name)
	}
	if len(got.Tree.Children) != 2 {
		t.Fatalf("root has %d children, want 2", len(got.Tree.Children))
	}
	target := got.Tree.Children[0].Children[0]
	if target.Name != "target" || !cmp.Equal(target.Tokens, []string{"main"}) || target.Value != "main" {
		t.Errorf("unexpected target result %+v", target)
	}
	count := got.Tree.Children[1]
	if !count.Implicit || count.Children[0].Value != 2.0 {
		t.Errorf("unexpected --count result %+v", count)
	}
	if len(got.Tokens) != 4 || got.Tokens[0].Kind != "Directive" {
		t.Errorf("tokens = %+v", got.Tokens)
	}
	wantUnmatched := []jsonToken{{Value: "x", Kind: "Argument", Position: 3}}
	if diff := cmp.Diff(wantUnmatched, got.Unmatched); diff != "" {
		t.Errorf("unmatched mismatch (-want +got):\n%s", diff)
	}
	if len(got.Errors) != 1 || got.Errors[0].Symbol != "app" || got.Errors[0].Token.Value != "x" {
		t.Errorf("errors = %+v", got.Errors)
	}
	if vals, ok := got.Directives["debug"]; !ok || len(vals) != 1 || vals[0] != nil {
		t.Errorf("directives = %+v", got.Directives)
	}
}

func TestSyntaxJSONEncoder(t *testing.T) {
	var buf bytes.Buffer
	out := encode(t, NewSyntaxJSONEncoder(&buf), &buf)

	var got syntaxJSONNode
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	zero, one, two := 0, 1, 2
	want := syntaxJSONNode{
		Kind:   "Command",
		Token:  "app",
		Symbol: "app",
		Children: []*syntaxJSONNode{
			{Kind: "Directive", Token: "[debug]", Position: &zero, Name: "debug"},
			{Kind: "Command", Token: "build", Position: &one, Symbol: "build", Children: []*syntaxJSONNode{
				{Kind: "CommandArgument", Token: "main", Position: &two, Symbol: "target"},
			}},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("syntax tree mismatch (-want +got):\n%s", diff)
	}
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	for _, name := range Names() {
		if New(name, &buf) == nil {
			t.Errorf("New(%q) returned nil", name)
		}
	}
	if New("xml", &buf) != nil {
		t.Error("unknown encoders must be nil")
	}
}
