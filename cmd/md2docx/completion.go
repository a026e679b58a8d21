package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/alnah/go-md2docx"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash       Shell = "bash"
	ShellZsh        Shell = "zsh"
	ShellFish       Shell = "fish"
	ShellPowerShell Shell = "powershell"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota // default
	flagBool
	flagInt
	flagFloat
	flagEnum // has predefined values
	flagFile // file with glob pattern
	flagDir  // directory
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string   // --output
	Short    string   // -o (empty if none)
	Type     flagType // completion type
	Desc     string   // help text
	Values   []string // for enum flags
	FileGlob string   // for file flags
}

// commandDef describes a command for completion.
type commandDef struct {
	Name        string
	Desc        string
	Flags       []flagDef
	Args        []string // fixed positional values (shells, commands)
	TakesFiles  bool     // accepts file arguments
	FilePattern string   // glob for file arguments (e.g., "*.md")
}

// completionMeta holds completion-specific metadata for flags.
// Flag names, types, and descriptions come from the FlagSet.
type completionMeta struct {
	Values   []string // enum values
	FileGlob string   // file glob pattern
	IsDir    bool     // directory completion
}

// flagCompletionMeta maps flag names to their completion metadata.
// The profile values are filled from the embedded registry.
func flagCompletionMeta() map[string]completionMeta {
	return map[string]completionMeta{
		// Enum flags
		"orientation": {Values: []string{md2docx.OrientationPortrait, md2docx.OrientationLandscape}},
		"transport":   {Values: []string{"stdio", "http"}},
		"log-level":   {Values: []string{"debug", "info", "warn", "error"}},
		"log-format":  {Values: []string{"console", "json"}},
		"profile":     {Values: profileValues()},

		// File flags with glob patterns
		"config": {FileGlob: "*.yaml,*.yml"},

		// Directory flags
		"output":     {IsDir: true},
		"styles-dir": {IsDir: true},
	}
}

// profileValues lists slugs then names of the embedded profiles.
func profileValues() []string {
	conv, err := md2docx.NewConverter(md2docx.WithLogger(zap.NewNop()))
	if err != nil {
		return nil
	}
	profiles, err := conv.Profiles()
	if err != nil {
		return nil
	}
	values := make([]string, 0, 2*len(profiles))
	for _, p := range profiles {
		values = append(values, p.Slug)
	}
	for _, p := range profiles {
		values = append(values, p.Name)
	}
	return values
}

// extractFlagsFromFlagSet extracts flag definitions from a pflag.FlagSet.
// Enriches with completion metadata.
func extractFlagsFromFlagSet(fs *flag.FlagSet, meta map[string]completionMeta) []flagDef {
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Desc:  f.Usage,
		}

		// Determine base type from pflag type
		switch f.Value.Type() {
		case "bool":
			fd.Type = flagBool
		case "int", "int8", "int16", "int32", "int64", "uint", "uint8", "uint16", "uint32", "uint64":
			fd.Type = flagInt
		case "float32", "float64":
			fd.Type = flagFloat
		default:
			fd.Type = flagString
		}

		// Override type based on completion metadata
		if m, ok := meta[f.Name]; ok {
			switch {
			case len(m.Values) > 0:
				fd.Type = flagEnum
				fd.Values = m.Values
			case m.FileGlob != "":
				fd.Type = flagFile
				fd.FileGlob = m.FileGlob
			case m.IsDir:
				fd.Type = flagDir
			}
		}

		flags = append(flags, fd)
	})

	return flags
}

// getCommands returns the command registry for completion.
// Flags are extracted from the actual FlagSets.
func getCommands() []commandDef {
	meta := flagCompletionMeta()
	shells := []string{string(ShellBash), string(ShellZsh), string(ShellFish), string(ShellPowerShell)}

	cmds := []commandDef{
		{
			Name:        "convert",
			Desc:        "Convert markdown files to Word documents",
			Flags:       extractFlagsFromFlagSet(newConvertFlagSet(&convertFlags{}), meta),
			TakesFiles:  true,
			FilePattern: "*.md,*.markdown",
		},
		{
			Name:  "serve",
			Desc:  "Serve the markdown_to_docx tool",
			Flags: extractFlagsFromFlagSet(newServeFlagSet(&serveFlags{}), meta),
		},
		{
			Name:  "profiles",
			Desc:  "List style profiles",
			Flags: extractFlagsFromFlagSet(newProfilesFlagSet(&profilesFlags{}), meta),
		},
		{
			Name:  "doctor",
			Desc:  "Check styles, conversion and environment",
			Flags: extractFlagsFromFlagSet(newDoctorFlagSet(&doctorFlags{}), meta),
		},
		{
			Name: "completion",
			Desc: "Generate shell completion script",
			Args: shells,
		},
		{
			Name: "version",
			Desc: "Show version information",
		},
		{
			Name: "help",
			Desc: "Show help for a command",
		},
	}

	var names []string
	for _, c := range cmds {
		names = append(names, c.Name)
	}
	cmds[len(cmds)-1].Args = names

	return cmds
}

// GenerateCompletion writes shell completion script to w.
// Returns error if shell is unsupported or write fails.
func GenerateCompletion(w io.Writer, shell Shell) error {
	switch shell {
	case ShellBash:
		return generateBash(w, getCommands())
	case ShellZsh:
		return generateZsh(w, getCommands())
	case ShellFish:
		return generateFish(w, getCommands())
	case ShellPowerShell:
		return generatePowerShell(w, getCommands())
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish, powershell)", ErrUnsupportedShell, shell)
	}
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}

	shell := Shell(args[0])
	return GenerateCompletion(env.Stdout, shell)
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2docx completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w, "  powershell  PowerShell completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    # Add to ~/.bashrc:")
	fmt.Fprintln(w, "    eval \"$(md2docx completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Add to ~/.zshrc (before compinit):")
	fmt.Fprintln(w, "    eval \"$(md2docx completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    md2docx completion fish > ~/.config/fish/completions/md2docx.fish")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  PowerShell:")
	fmt.Fprintln(w, "    # Add to $PROFILE:")
	fmt.Fprintln(w, "    md2docx completion powershell | Out-String | Invoke-Expression")
}
