package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2docx <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert     Convert markdown files to Word documents")
	fmt.Fprintln(w, "  serve       Serve the markdown_to_docx tool (MCP stdio or HTTP)")
	fmt.Fprintln(w, "  profiles    List style profiles")
	fmt.Fprintln(w, "  doctor      Check styles, conversion and environment")
	fmt.Fprintln(w, "  completion  Generate shell completion script")
	fmt.Fprintln(w, "  version     Show version information")
	fmt.Fprintln(w, "  help        Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Running 'md2docx <file.md>' is shorthand for 'md2docx convert <file.md>'.")
	fmt.Fprintln(w, "Run 'md2docx help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2docx convert <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert markdown files to Word documents with Chinese typography.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Markdown file, directory, or - for stdin")
	fmt.Fprintln(w, "           (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output .docx file or directory (- for stdout)")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "  -t, --timeout <dur>       Per-file timeout (default 30s)")
	fmt.Fprintln(w, "      --html                Write intermediate HTML alongside the document")
	fmt.Fprintln(w, "      --summary             Print the JSON summary of each document")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Style:")
	fmt.Fprintln(w, "  -p, --profile <name>      Profile name, slug or alias (default 学术论文)")
	fmt.Fprintln(w, "      --styles-dir <dir>    Directory with custom profiles/*.yaml")
	fmt.Fprintln(w, "      --h1-font <font>      Heading 1 font (also --h2 to --h5)")
	fmt.Fprintln(w, "      --h1-size <pt>        Heading 1 size in points (also --h2 to --h5)")
	fmt.Fprintln(w, "      --body-font <font>    Body font")
	fmt.Fprintln(w, "      --body-size <pt>      Body size in points")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page (millimetres):")
	fmt.Fprintln(w, "      --page-width <mm>     Page width")
	fmt.Fprintln(w, "      --page-height <mm>    Page height")
	fmt.Fprintln(w, "      --margin-top <mm>     Top margin (also --margin-bottom/left/right)")
	fmt.Fprintln(w, "      --orientation <o>     portrait or landscape")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing")
	fmt.Fprintln(w, "      --log-level <level>   debug, info, warn, error")
	fmt.Fprintln(w, "      --log-format <fmt>    console or json")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  md2docx convert report.md")
	fmt.Fprintln(w, "  md2docx convert docs/ -o out/ --profile 公文")
	fmt.Fprintln(w, "  md2docx convert notes.md --h1-font 黑体 --h1-size 22 --orientation landscape")
	fmt.Fprintln(w, "  cat notes.md | md2docx convert - > notes.docx")
}

// printServeUsage prints usage for the serve command.
func printServeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2docx serve [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Serve the markdown_to_docx and list_style_profiles tools.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --transport <t>       stdio (MCP, default) or http")
	fmt.Fprintln(w, "      --addr <host:port>    HTTP listen address (default 127.0.0.1:8080)")
	fmt.Fprintln(w, "      --max-body-bytes <n>  HTTP request body limit (default 10 MiB)")
	fmt.Fprintln(w, "  -w, --workers <n>         Concurrent conversions (0 = auto)")
	fmt.Fprintln(w, "  -t, --timeout <dur>       Per-call timeout (default 30s)")
	fmt.Fprintln(w, "      --styles-dir <dir>    Directory with custom profiles/*.yaml")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --log-level <level>   debug, info, warn, error")
	fmt.Fprintln(w, "      --log-format <fmt>    console or json")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Logs go to stderr. HTTP routes: POST /v1/tools/markdown_to_docx,")
	fmt.Fprintln(w, "POST /v1/convert, GET /v1/profiles, GET /healthz, GET /metrics.")
}

// printProfilesUsage prints usage for the profiles command.
func printProfilesUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2docx profiles [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "List style profiles. The configured profile is marked with *.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --json                Print as JSON")
	fmt.Fprintln(w, "      --styles-dir <dir>    Directory with custom profiles/*.yaml")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2docx doctor [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Load styles, convert a sample document and check the environment.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --json                Print as JSON")
	fmt.Fprintln(w, "      --styles-dir <dir>    Directory with custom profiles/*.yaml")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "serve":
		printServeUsage(env.Stdout)
	case "profiles":
		printProfilesUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: md2docx version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: md2docx help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
