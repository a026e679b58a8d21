package main

import (
	"fmt"
	"io"
	"strings"
)

const progName = "md2docx"

// globExts turns "*.md,*.markdown" into ["md", "markdown"].
func globExts(glob string) []string {
	var exts []string
	for _, g := range strings.Split(glob, ",") {
		if ext := strings.TrimPrefix(strings.TrimSpace(g), "*."); ext != "" {
			exts = append(exts, ext)
		}
	}
	return exts
}

// flagNames returns "--long" and, when set, "-s".
func flagNames(f flagDef) []string {
	names := []string{"--" + f.Long}
	if f.Short != "" {
		names = append(names, "-"+f.Short)
	}
	return names
}

func commandNames(cmds []commandDef) []string {
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	return names
}

// singleQuoted quotes s for POSIX shells.
func singleQuoted(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// ---------------------------------------------------------------------------
// Bash
// ---------------------------------------------------------------------------

func generateBash(w io.Writer, cmds []commandDef) error {
	var b strings.Builder
	fn := "_" + progName + "_completions"

	fmt.Fprintf(&b, "# bash completion for %s\n", progName)
	fmt.Fprintf(&b, "%s() {\n", fn)
	b.WriteString("    local cur prev cmd\n")
	b.WriteString("    COMPREPLY=()\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("    cmd=\"${COMP_WORDS[1]}\"\n\n")
	b.WriteString("    if [[ ${COMP_CWORD} -eq 1 ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=( $(compgen -W %s -- \"${cur}\") )\n", singleQuoted(strings.Join(commandNames(cmds), " ")))
	b.WriteString("        return 0\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    case \"${cmd}\" in\n")

	for _, c := range cmds {
		fmt.Fprintf(&b, "        %s)\n", c.Name)

		var valued []string
		for _, f := range c.Flags {
			var action string
			switch f.Type {
			case flagEnum:
				action = fmt.Sprintf("compgen -W %s -- \"${cur}\"", singleQuoted(strings.Join(f.Values, " ")))
			case flagFile:
				action = fmt.Sprintf("compgen -f -X '!*.@(%s)' -- \"${cur}\"", strings.Join(globExts(f.FileGlob), "|"))
			case flagDir:
				action = "compgen -d -- \"${cur}\""
			default:
				continue
			}
			valued = append(valued, fmt.Sprintf("                %s) COMPREPLY=( $(%s) ); return 0 ;;\n",
				strings.Join(flagNames(f), "|"), action))
		}
		if len(valued) > 0 {
			b.WriteString("            case \"${prev}\" in\n")
			for _, v := range valued {
				b.WriteString(v)
			}
			b.WriteString("            esac\n")
		}

		var all []string
		for _, f := range c.Flags {
			all = append(all, flagNames(f)...)
		}
		switch {
		case len(all) > 0 && c.TakesFiles:
			b.WriteString("            if [[ ${cur} == -* ]]; then\n")
			fmt.Fprintf(&b, "                COMPREPLY=( $(compgen -W %s -- \"${cur}\") )\n", singleQuoted(strings.Join(all, " ")))
			b.WriteString("            else\n")
			fmt.Fprintf(&b, "                COMPREPLY=( $(compgen -f -X '!*.@(%s)' -- \"${cur}\") $(compgen -d -- \"${cur}\") )\n",
				strings.Join(globExts(c.FilePattern), "|"))
			b.WriteString("            fi\n")
		case len(all) > 0:
			fmt.Fprintf(&b, "            COMPREPLY=( $(compgen -W %s -- \"${cur}\") )\n", singleQuoted(strings.Join(all, " ")))
		case len(c.Args) > 0:
			fmt.Fprintf(&b, "            COMPREPLY=( $(compgen -W %s -- \"${cur}\") )\n", singleQuoted(strings.Join(c.Args, " ")))
		}
		b.WriteString("            ;;\n")
	}

	b.WriteString("    esac\n")
	b.WriteString("}\n")
	fmt.Fprintf(&b, "complete -F %s %s\n", fn, progName)

	_, err := io.WriteString(w, b.String())
	return err
}

// ---------------------------------------------------------------------------
// Zsh
// ---------------------------------------------------------------------------

// zshDesc strips characters that end an _arguments description.
func zshDesc(s string) string {
	return strings.NewReplacer("[", "(", "]", ")", "'", "", ":", " ").Replace(s)
}

func generateZsh(w io.Writer, cmds []commandDef) error {
	var b strings.Builder
	fn := "_" + progName

	fmt.Fprintf(&b, "#compdef %s\n\n", progName)
	fmt.Fprintf(&b, "%s() {\n", fn)
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        '%s:%s'\n", c.Name, zshDesc(c.Desc))
	}
	b.WriteString("    )\n\n")
	b.WriteString("    if (( CURRENT == 2 )); then\n")
	b.WriteString("        _describe 'command' commands\n")
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    case \"$words[2]\" in\n")

	for _, c := range cmds {
		fmt.Fprintf(&b, "        %s)\n", c.Name)
		var specs []string
		for _, f := range c.Flags {
			var action string
			switch f.Type {
			case flagBool:
				action = ""
			case flagEnum:
				action = fmt.Sprintf(":value:(%s)", strings.Join(f.Values, " "))
			case flagFile:
				action = fmt.Sprintf(":file:_files -g \"*.(%s)\"", strings.Join(globExts(f.FileGlob), "|"))
			case flagDir:
				action = ":dir:_files -/"
			default:
				action = ":value:"
			}
			desc := zshDesc(f.Desc)
			if f.Short != "" {
				specs = append(specs, fmt.Sprintf("'(-%s --%s)'{-%s,--%s}'[%s]%s'", f.Short, f.Long, f.Short, f.Long, desc, action))
			} else {
				specs = append(specs, fmt.Sprintf("'--%s[%s]%s'", f.Long, desc, action))
			}
		}
		if c.TakesFiles {
			specs = append(specs, fmt.Sprintf("'*:file:_files -g \"*.(%s)\"'", strings.Join(globExts(c.FilePattern), "|")))
		}
		if len(c.Args) > 0 {
			specs = append(specs, fmt.Sprintf("'1:value:(%s)'", strings.Join(c.Args, " ")))
		}
		if len(specs) > 0 {
			b.WriteString("            _arguments \\\n")
			for i, s := range specs {
				b.WriteString("                " + s)
				if i < len(specs)-1 {
					b.WriteString(" \\")
				}
				b.WriteString("\n")
			}
		}
		b.WriteString("            ;;\n")
	}

	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	fmt.Fprintf(&b, "%s \"$@\"\n", fn)

	_, err := io.WriteString(w, b.String())
	return err
}

// ---------------------------------------------------------------------------
// Fish
// ---------------------------------------------------------------------------

func generateFish(w io.Writer, cmds []commandDef) error {
	var b strings.Builder
	needs := "__fish_" + progName + "_needs_command"
	using := "__fish_" + progName + "_using_command"

	fmt.Fprintf(&b, "# fish completion for %s\n", progName)
	fmt.Fprintf(&b, "function %s\n", needs)
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -eq 1\n")
	b.WriteString("end\n\n")
	fmt.Fprintf(&b, "function %s\n", using)
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -gt 1; and test $cmd[2] = $argv[1]\n")
	b.WriteString("end\n\n")
	fmt.Fprintf(&b, "complete -c %s -f\n", progName)

	for _, c := range cmds {
		fmt.Fprintf(&b, "complete -c %s -n %s -a %s -d %s\n", progName, needs, c.Name, singleQuoted(c.Desc))
	}

	for _, c := range cmds {
		cond := singleQuoted(using + " " + c.Name)
		for _, f := range c.Flags {
			line := fmt.Sprintf("complete -c %s -n %s", progName, cond)
			if f.Short != "" {
				line += " -s " + f.Short
			}
			line += " -l " + f.Long
			switch f.Type {
			case flagBool:
			case flagEnum:
				line += " -x -a " + singleQuoted(strings.Join(f.Values, " "))
			case flagFile:
				line += " -r -F"
			case flagDir:
				line += " -x -a '(__fish_complete_directories)'"
			default:
				line += " -x"
			}
			line += " -d " + singleQuoted(f.Desc)
			b.WriteString(line + "\n")
		}
		if c.TakesFiles {
			var suffixes []string
			for _, ext := range globExts(c.FilePattern) {
				suffixes = append(suffixes, "(__fish_complete_suffix ."+ext+")")
			}
			fmt.Fprintf(&b, "complete -c %s -n %s -a %s\n", progName, cond, singleQuoted(strings.Join(suffixes, " ")))
		}
		if len(c.Args) > 0 {
			fmt.Fprintf(&b, "complete -c %s -n %s -a %s\n", progName, cond, singleQuoted(strings.Join(c.Args, " ")))
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// ---------------------------------------------------------------------------
// PowerShell
// ---------------------------------------------------------------------------

func psQuoted(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func generatePowerShell(w io.Writer, cmds []commandDef) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# powershell completion for %s\n", progName)
	fmt.Fprintf(&b, "Register-ArgumentCompleter -Native -CommandName %s -ScriptBlock {\n", progName)
	b.WriteString("    param($wordToComplete, $commandAst, $cursorPosition)\n\n")

	b.WriteString("    $commands = [ordered]@{\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        %s = %s\n", psQuoted(c.Name), psQuoted(c.Desc))
	}
	b.WriteString("    }\n\n")

	b.WriteString("    $values = @{\n")
	for _, c := range cmds {
		var vals []string
		for _, f := range c.Flags {
			vals = append(vals, flagNames(f)...)
		}
		vals = append(vals, c.Args...)
		if len(vals) == 0 {
			continue
		}
		quoted := make([]string, len(vals))
		for i, v := range vals {
			quoted[i] = psQuoted(v)
		}
		fmt.Fprintf(&b, "        %s = @(%s)\n", psQuoted(c.Name), strings.Join(quoted, ", "))
	}
	b.WriteString("    }\n\n")

	b.WriteString("    $words = @($commandAst.CommandElements | ForEach-Object { $_.ToString() })\n")
	b.WriteString("    if ($words.Count -le 1 -or ($words.Count -eq 2 -and $wordToComplete -ne '')) {\n")
	b.WriteString("        $commands.GetEnumerator() | Where-Object { $_.Key -like \"$wordToComplete*\" } | ForEach-Object {\n")
	b.WriteString("            [System.Management.Automation.CompletionResult]::new($_.Key, $_.Key, 'ParameterValue', $_.Value)\n")
	b.WriteString("        }\n")
	b.WriteString("        return\n")
	b.WriteString("    }\n\n")
	b.WriteString("    $cmd = $words[1]\n")
	b.WriteString("    if ($values.ContainsKey($cmd)) {\n")
	b.WriteString("        $values[$cmd] | Where-Object { $_ -like \"$wordToComplete*\" } | ForEach-Object {\n")
	b.WriteString("            [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterName', $_)\n")
	b.WriteString("        }\n")
	b.WriteString("    }\n")
	b.WriteString("}\n")

	_, err := io.WriteString(w, b.String())
	return err
}
