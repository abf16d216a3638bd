package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/xiaobogaga/minic/compiler"
)

type sample struct {
	title  string
	source string
}

var samples = []sample{
	{title: "VALID PROGRAM", source: `
int add(int a, int b) {
    int c;
    c = a + b;
    return c;
}

int main() {
    int x;
    x = add(10, 20);
    return x;
}`},
	{title: "UNDEFINED VARIABLE", source: `
int main() {
    return y;
}`},
	{title: "WRONG ARGUMENT COUNT", source: `
int add(int a, int b) {
    return a + b;
}

int main() {
    return add(5);
}`},
	{title: "ARGUMENT TYPE MISMATCH", source: `
int add(int a, int b) {
    return a + b;
}

int main() {
    return add(1, true);
}`},
	{title: "MISSING RETURN", source: `
int bad(int x) {
    int y;
    y = x + 1;
}`},
	{title: "VOID RETURN WITH VALUE", source: `
void f() {
    return 5;
}`},
	{title: "INVALID ASSIGNMENT TARGET", source: `
int main() {
    5 = 10;
    return 0;
}`},
	{title: "FUNCTION CALL EXPRESSION", source: `
int square(int x) {
    return x * x;
}

int main() {
    int y;
    y = square(5);
    return y;
}`},
}

var (
	colorSuccess = lipgloss.Color("#10B981")
	colorError   = lipgloss.Color("#EF4444")
	colorMuted   = lipgloss.Color("#6B7280")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(colorMuted)

	sourceStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			PaddingLeft(2)

	passedStyle = lipgloss.NewStyle().
			Foreground(colorSuccess).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true)
)

var stageTitles = map[compiler.Stage]string{
	compiler.LexerStage:    "Lexer",
	compiler.ParserStage:   "Parser",
	compiler.SemanticStage: "Semantic",
}

func newSamplesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "samples",
		Short: "Run the built-in sample programs and print a report per stage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(cmd)
			if err != nil {
				return err
			}
			opts := cfg.CompilerOptions(logger)
			out := cmd.OutOrStdout()
			passed := 0
			for _, s := range samples {
				if runSample(out, s, opts) {
					passed++
				}
			}
			fmt.Fprintf(out, "\n%d of %d samples passed\n", passed, len(samples))
			return nil
		},
	}
}

// runSample prints the source of s and one line per stage that ran.
func runSample(out io.Writer, s sample, opts *compiler.Options) bool {
	fmt.Fprintln(out)
	fmt.Fprintln(out, titleStyle.Render(s.title))
	fmt.Fprintln(out, sourceStyle.Render(strings.TrimSpace(s.source)))
	fmt.Fprintln(out)

	result, err := compiler.Compile(s.source, opts)
	for _, report := range result.Stages {
		if report.Passed {
			fmt.Fprintln(out, passedStyle.Render(stageTitles[report.Stage]+": PASSED"))
		}
	}
	if err != nil {
		fmt.Fprintln(out, errorStyle.Render("ERROR: "+err.Error()))
		return false
	}
	return true
}
