// Package main provides the entry point for the weeknotes CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/eastgate/weeknotes/internal/output"
)

// skillResult holds the structured skill documentation.
type skillResult struct {
	Concepts skillConcepts  `json:"concepts"`
	Workflow skillWorkflow  `json:"workflow"`
	Commands []skillCommand `json:"commands"`
	Contract skillContract  `json:"contract"`
}

// skillConcepts describes core weeknotes concepts.
type skillConcepts struct {
	Definition string   `json:"definition"`
	Journal    string   `json:"journal"`
	Item       string   `json:"item"`
	Week       string   `json:"week"`
	Draft      string   `json:"draft"`
	KeyPoints  []string `json:"key_points"`
}

// skillWorkflow describes the typical workflow.
type skillWorkflow struct {
	Description string      `json:"description"`
	Phases      []workPhase `json:"phases"`
}

// workPhase describes a workflow phase.
type workPhase struct {
	Name        string `json:"name"`
	Command     string `json:"command"`
	Description string `json:"description"`
}

// skillCommand documents a single command.
type skillCommand struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Usage       string        `json:"usage"`
	Flags       []commandFlag `json:"flags,omitempty"`
	Examples    []string      `json:"examples,omitempty"`
}

// commandFlag documents a command flag.
type commandFlag struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Default     string `json:"default,omitempty"`
}

// skillContract documents the output contract.
type skillContract struct {
	ExitCodes   []exitCode `json:"exit_codes"`
	ErrorFormat string     `json:"error_format"`
	JSONSupport string     `json:"json_support"`
}

// exitCode documents an exit code.
type exitCode struct {
	Code        int    `json:"code"`
	Meaning     string `json:"meaning"`
	Description string `json:"description"`
}

// newSkillCmd creates the skill command.
func newSkillCmd() *cobra.Command {
	var formatFlag string
	var includeExamples bool

	cmd := &cobra.Command{
		Use:   "skill",
		Short: "Output skill documentation for building agent skills",
		Long: `Skill outputs documentation for building AI agent skills.

This command provides:
  - Core concepts: journal, items, weeks, drafts
  - Workflow patterns: import, review, draft
  - Command reference: all commands with flags
  - Contract: exit codes, error format

Examples:
  weeknotes skill                     # Output as markdown
  weeknotes skill --format json       # Output as JSON
  weeknotes skill --include-examples  # Include usage examples`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSkill(cmd, formatFlag, includeExamples)
		},
	}

	cmd.Flags().StringVar(&formatFlag, "format", "md", "Output format: md or json")
	cmd.Flags().BoolVar(&includeExamples, "include-examples", false, "Include usage examples")

	return cmd
}

// runSkill executes the skill command.
func runSkill(cmd *cobra.Command, formatFlag string, includeExamples bool) error {
	printer := newPrinter(cmd)

	if formatFlag != "md" && formatFlag != "json" {
		err := output.NewUserError("--format must be 'md' or 'json'")
		printer.Error(err)
		return err
	}

	result := buildSkillData(includeExamples)

	if isJSONMode(cmd) || formatFlag == "json" {
		return printer.WriteJSON(result)
	}

	outputSkillMarkdown(printer, result, includeExamples)
	return nil
}

// buildSkillData constructs the skill documentation data.
func buildSkillData(includeExamples bool) *skillResult {
	return &skillResult{
		Concepts: buildConcepts(),
		Workflow: buildWorkflow(),
		Commands: buildCommands(includeExamples),
		Contract: buildContract(),
	}
}

// buildConcepts returns the core concepts section.
func buildConcepts() skillConcepts {
	return skillConcepts{
		Definition: "Weeknotes is a local-first journal of a week's online activity that assembles Jekyll-ready blog post skeletons.",
		Journal:    "The journal is a SQLite database of items imported from exported Mastodon and Linkding JSON.",
		Item:       "An item is one piece of activity: a Mastodon post or a Linkding bookmark, deduplicated on (source, external_id).",
		Week:       "A week is an ISO week: Monday through Sunday, numbered per ISO 8601, anchored at any date inside it.",
		Draft:      "A draft is the generated post skeleton: Jekyll frontmatter plus per-source sections, recorded per week.",
		KeyPoints: []string{
			"Everything is local: imports read exported JSON files, never the network",
			"Re-importing the same export is safe; items are upserted",
			"Draft generation is structural; the prose is yours to write",
			"All commands support --json for structured output",
		},
	}
}

// buildWorkflow returns the workflow patterns section.
func buildWorkflow() skillWorkflow {
	return skillWorkflow{
		Description: "A typical week follows: import -> list -> draft -> write",
		Phases: []workPhase{
			{Name: "Initialize", Command: "weeknotes init", Description: "One-time setup of config dir and database."},
			{Name: "Import", Command: "weeknotes import --dir data/latest", Description: "Load exported posts and bookmarks."},
			{Name: "Review", Command: "weeknotes list", Description: "See what the week collected."},
			{Name: "Anchor", Command: "weeknotes week", Description: "Confirm week number, title, and filename."},
			{Name: "Draft", Command: "weeknotes draft", Description: "Generate the post skeleton."},
			{Name: "Write", Command: "(your editor)", Description: "Turn the skeleton into prose."},
		},
	}
}

// buildCommands returns the command reference.
func buildCommands(includeExamples bool) []skillCommand {
	commands := getCoreCommands()
	if includeExamples {
		addExamplesToCommands(commands)
	}
	return commands
}

// getCoreCommands returns the base command definitions.
func getCoreCommands() []skillCommand {
	return []skillCommand{
		{Name: "import", Description: "Import exported posts and bookmarks",
			Usage: "weeknotes import [flags]",
			Flags: []commandFlag{
				{Name: "--dir", Description: "Directory with mastodon.json / linkding.json", Default: "data/latest"},
			}},
		{Name: "list", Description: "List items for a week or date range",
			Usage: "weeknotes list [flags]",
			Flags: []commandFlag{
				{Name: "--date", Description: "Week containing this date (YYYY-MM-DD)"},
				{Name: "--start", Description: "Range start (inclusive)"},
				{Name: "--end", Description: "Range end (exclusive)"},
				{Name: "--source", Description: "mastodon or linkding"},
			}},
		{Name: "week", Description: "Show week number, window, title, filename",
			Usage: "weeknotes week [flags]",
			Flags: []commandFlag{
				{Name: "--date", Description: "Date in YYYY-MM-DD format", Default: "today"},
			}},
		{Name: "draft", Description: "Generate the post skeleton",
			Usage: "weeknotes draft [flags]",
			Flags: []commandFlag{
				{Name: "--date", Description: "Week containing this date"},
				{Name: "--stdout", Description: "Print instead of writing a file"},
				{Name: "--force", Description: "Overwrite an existing draft"},
			}},
		{Name: "status", Description: "Show journal state",
			Usage: "weeknotes status [flags]"},
		{Name: "migrate", Description: "Bring the schema up to date",
			Usage: "weeknotes migrate [status]"},
		{Name: "config", Description: "Inspect the resolved configuration",
			Usage: "weeknotes config <show|path>"},
		{Name: "doctor", Description: "Check setup health",
			Usage: "weeknotes doctor [flags]",
			Flags: []commandFlag{{Name: "--quiet", Description: "Only failures and warnings"}}},
		{Name: "serve", Description: "Run as MCP server over stdio",
			Usage: "weeknotes serve"},
	}
}

// addExamplesToCommands adds examples to each command.
func addExamplesToCommands(commands []skillCommand) {
	for i := range commands {
		commands[i].Examples = getCommandExamples(commands[i].Name)
	}
}

// getCommandExamples returns examples for a command.
func getCommandExamples(name string) []string {
	examples := map[string][]string{
		"import":  {`weeknotes import`, `weeknotes import --dir exports/2026-08-24`},
		"list":    {`weeknotes list`, `weeknotes list --date 2026-08-26 --source linkding`},
		"week":    {`weeknotes week`, `weeknotes week --date 2026-08-26 --json`},
		"draft":   {`weeknotes draft`, `weeknotes draft --stdout`, `weeknotes draft --force`},
		"status":  {`weeknotes status`, `weeknotes status --json`},
		"migrate": {`weeknotes migrate`, `weeknotes migrate status`},
		"config":  {`weeknotes config show`, `weeknotes config path`},
		"doctor":  {`weeknotes doctor`, `weeknotes doctor --quiet`},
		"serve":   {`weeknotes serve`},
	}
	return examples[name]
}

// buildContract returns the contract section.
func buildContract() skillContract {
	return skillContract{
		ExitCodes: []exitCode{
			{Code: 0, Meaning: "Success", Description: "Command completed successfully"},
			{Code: 1, Meaning: "User error", Description: "Bad arguments, missing input, nothing to do"},
			{Code: 2, Meaning: "System error", Description: "I/O failure, store unreachable"},
			{Code: 3, Meaning: "Configuration error", Description: "Unparseable config or bad setting value"},
			{Code: 4, Meaning: "Migration error", Description: "Schema migration failed or drift detected"},
		},
		ErrorFormat: `{"error": "message", "code": N}`,
		JSONSupport: "All commands support --json for structured output",
	}
}

// outputSkillMarkdown writes the skill data as markdown.
func outputSkillMarkdown(printer *output.Printer, result *skillResult, includeExamples bool) {
	printer.Println("# Weeknotes Skill Documentation")
	printer.Println()
	outputConceptsMarkdown(printer, &result.Concepts)
	outputWorkflowMarkdown(printer, &result.Workflow)
	outputCommandsMarkdown(printer, result.Commands, includeExamples)
	outputContractMarkdown(printer, &result.Contract)
}

func outputConceptsMarkdown(printer *output.Printer, concepts *skillConcepts) {
	printer.Println("## Core Concepts")
	printer.Println()
	printer.Print("**Weeknotes**: %s\n\n", concepts.Definition)
	printer.Print("**Journal**: %s\n\n", concepts.Journal)
	printer.Print("**Item**: %s\n\n", concepts.Item)
	printer.Print("**Week**: %s\n\n", concepts.Week)
	printer.Print("**Draft**: %s\n\n", concepts.Draft)
	printer.Println("### Key Points")
	printer.Println()
	for _, point := range concepts.KeyPoints {
		printer.Print("- %s\n", point)
	}
	printer.Println()
}

func outputWorkflowMarkdown(printer *output.Printer, w *skillWorkflow) {
	printer.Println("## Workflow Patterns")
	printer.Println()
	printer.Println(w.Description)
	printer.Println()
	for _, phase := range w.Phases {
		printer.Print("### %s\n**Command**: `%s`\n\n%s\n\n", phase.Name, phase.Command, phase.Description)
	}
}

func outputCommandsMarkdown(printer *output.Printer, commands []skillCommand, includeExamples bool) {
	printer.Println("## Command Reference")
	printer.Println()
	for _, cmd := range commands {
		outputSingleCommandMarkdown(printer, &cmd, includeExamples)
	}
}

func outputSingleCommandMarkdown(printer *output.Printer, cmd *skillCommand, includeExamples bool) {
	printer.Print("### %s\n\n%s\n\n**Usage**: `%s`\n\n", cmd.Name, cmd.Description, cmd.Usage)
	if len(cmd.Flags) > 0 {
		printer.Println("**Flags**:")
		for _, flag := range cmd.Flags {
			if flag.Default != "" {
				printer.Print("- `%s`: %s (default: %s)\n", flag.Name, flag.Description, flag.Default)
			} else {
				printer.Print("- `%s`: %s\n", flag.Name, flag.Description)
			}
		}
		printer.Println()
	}
	if includeExamples && len(cmd.Examples) > 0 {
		printer.Println("**Examples**:")
		for _, example := range cmd.Examples {
			printer.Print("```bash\n%s\n```\n", example)
		}
		printer.Println()
	}
}

func outputContractMarkdown(printer *output.Printer, contract *skillContract) {
	printer.Println("## Contract")
	printer.Println()
	printer.Print("**JSON Support**: %s\n\n", contract.JSONSupport)
	printer.Print("**Error Format**: `%s`\n\n", contract.ErrorFormat)
	printer.Println("### Exit Codes")
	printer.Println()
	printer.Println("| Code | Meaning | Description |")
	printer.Println("|------|---------|-------------|")
	for _, ec := range contract.ExitCodes {
		printer.Print("| %d | %s | %s |\n", ec.Code, ec.Meaning, ec.Description)
	}
}
