package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash Shell = "bash"
	ShellZsh  Shell = "zsh"
	ShellFish Shell = "fish"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

type flagType int

const (
	flagString flagType = iota
	flagBool
	flagInt
	flagEnum
	flagFile
	flagDir
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string
	Short    string
	Type     flagType
	Desc     string
	Values   []string
	FileGlob []string
}

// commandDef describes a command for completion.
type commandDef struct {
	Name       string
	Desc       string
	Flags      []flagDef
	TakesFiles bool
	FileGlob   []string
}

// completionMeta holds completion hints. Flag names, types and descriptions
// come from the FlagSets.
type completionMeta struct {
	Values   []string
	FileGlob []string
	IsDir    bool
}

var inputGlob = []string{"*.html", "*.htm", "*.txt", "*.text", "*.md", "*.markdown"}

var flagCompletionMeta = map[string]completionMeta{
	"format": {Values: []string{"html", "png", "pdf"}},
	"color":  {Values: []string{"auto", "always", "never"}},

	"config": {FileGlob: []string{"*.yaml", "*.yml"}},
	"layout": {FileGlob: []string{"*.yaml", "*.yml"}},

	"template-dir": {IsDir: true},
	"output":       {IsDir: true},
}

// extractFlagsFromFlagSet turns a FlagSet into completion definitions.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{Long: f.Name, Short: f.Shorthand, Desc: f.Usage}

		switch f.Value.Type() {
		case "bool":
			fd.Type = flagBool
		case "int", "int64":
			fd.Type = flagInt
		default:
			fd.Type = flagString
		}

		if meta, ok := flagCompletionMeta[f.Name]; ok {
			switch {
			case len(meta.Values) > 0:
				fd.Type = flagEnum
				fd.Values = meta.Values
			case len(meta.FileGlob) > 0:
				fd.Type = flagFile
				fd.FileGlob = meta.FileGlob
			case meta.IsDir:
				fd.Type = flagDir
			}
		}

		flags = append(flags, fd)
	})

	return flags
}

// getCommands returns the command registry for completion.
func getCommands() []commandDef {
	return []commandDef{
		{
			Name:       "render",
			Desc:       "Render files or directories",
			Flags:      extractFlagsFromFlagSet(newRenderFlagSet(&renderFlags{})),
			TakesFiles: true,
			FileGlob:   inputGlob,
		},
		{
			Name:       "preview",
			Desc:       "Render one input as a standalone page",
			Flags:      extractFlagsFromFlagSet(newPreviewFlagSet(&previewFlags{})),
			TakesFiles: true,
			FileGlob:   inputGlob,
		},
		{
			Name:       "blocks",
			Desc:       "Dump parsed blocks as YAML",
			Flags:      extractFlagsFromFlagSet(newBlocksFlagSet(&blocksFlags{})),
			TakesFiles: true,
			FileGlob:   inputGlob,
		},
		{
			Name:       "stats",
			Desc:       "Show readability statistics",
			Flags:      extractFlagsFromFlagSet(newStatsFlagSet(&statsFlags{})),
			TakesFiles: true,
			FileGlob:   inputGlob,
		},
		{
			Name:  "serve",
			Desc:  "Serve the JSON API",
			Flags: extractFlagsFromFlagSet(newServeFlagSet(&serveFlags{})),
		},
		{
			Name:  "doctor",
			Desc:  "Check the system for snapshot support",
			Flags: []flagDef{{Long: "json", Type: flagBool, Desc: "print results as JSON"}},
		},
		{Name: "completion", Desc: "Generate shell completion script"},
		{Name: "version", Desc: "Show version information"},
		{Name: "help", Desc: "Show help for a command"},
	}
}

// GenerateCompletion writes a completion script for shell to w.
func GenerateCompletion(w io.Writer, shell Shell) error {
	var b strings.Builder
	switch shell {
	case ShellBash:
		generateBash(&b, getCommands())
	case ShellZsh:
		generateZsh(&b, getCommands())
	case ShellFish:
		generateFish(&b, getCommands())
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish)", ErrUnsupportedShell, shell)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func commandNames(cmds []commandDef) []string {
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	return names
}

func flagWords(flags []flagDef) []string {
	var words []string
	for _, f := range flags {
		words = append(words, "--"+f.Long)
		if f.Short != "" {
			words = append(words, "-"+f.Short)
		}
	}
	return words
}

func generateBash(b *strings.Builder, cmds []commandDef) {
	b.WriteString("# bash completion for blockforge\n\n")
	b.WriteString("_blockforge() {\n")
	b.WriteString("    local cur prev cmd\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("    cmd=\"${COMP_WORDS[1]}\"\n\n")
	b.WriteString("    if [[ ${COMP_CWORD} -eq 1 ]]; then\n")
	fmt.Fprintf(b, "        COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", strings.Join(commandNames(cmds), " "))
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")

	b.WriteString("    case \"$prev\" in\n")
	seen := map[string]bool{}
	for _, c := range cmds {
		for _, f := range c.Flags {
			if seen[f.Long] {
				continue
			}
			pattern := "--" + f.Long
			if f.Short != "" {
				pattern += "|-" + f.Short
			}
			switch f.Type {
			case flagEnum:
				seen[f.Long] = true
				fmt.Fprintf(b, "        %s)\n            COMPREPLY=($(compgen -W %q -- \"$cur\"))\n            return\n            ;;\n",
					pattern, strings.Join(f.Values, " "))
			case flagDir:
				seen[f.Long] = true
				fmt.Fprintf(b, "        %s)\n            COMPREPLY=($(compgen -d -- \"$cur\"))\n            return\n            ;;\n", pattern)
			case flagFile:
				seen[f.Long] = true
				fmt.Fprintf(b, "        %s)\n            COMPREPLY=($(compgen -f -- \"$cur\"))\n            return\n            ;;\n", pattern)
			}
		}
	}
	b.WriteString("    esac\n\n")

	b.WriteString("    case \"$cmd\" in\n")
	for _, c := range cmds {
		if len(c.Flags) == 0 && !c.TakesFiles {
			continue
		}
		fmt.Fprintf(b, "        %s)\n", c.Name)
		fmt.Fprintf(b, "            if [[ \"$cur\" == -* ]]; then\n")
		fmt.Fprintf(b, "                COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", strings.Join(flagWords(c.Flags), " "))
		if c.TakesFiles {
			b.WriteString("            else\n")
			b.WriteString("                COMPREPLY=($(compgen -f -- \"$cur\"))\n")
		}
		b.WriteString("            fi\n            ;;\n")
	}
	fmt.Fprintf(b, "        help)\n            COMPREPLY=($(compgen -W %q -- \"$cur\"))\n            ;;\n", strings.Join(commandNames(cmds), " "))
	fmt.Fprintf(b, "        completion)\n            COMPREPLY=($(compgen -W \"bash zsh fish\" -- \"$cur\"))\n            ;;\n")
	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("complete -F _blockforge blockforge\n")
}

// zshEscape escapes characters that break _arguments specs.
func zshEscape(s string) string {
	r := strings.NewReplacer("[", "\\[", "]", "\\]", ":", "\\:", "'", "'\\''")
	return r.Replace(s)
}

func zshAction(f flagDef) string {
	switch f.Type {
	case flagBool:
		return ""
	case flagEnum:
		return ":value:(" + strings.Join(f.Values, " ") + ")"
	case flagDir:
		return ":directory:_files -/"
	case flagFile:
		return ":file:_files -g \"(" + strings.Join(f.FileGlob, "|") + ")\""
	default:
		return ":value:"
	}
}

func generateZsh(b *strings.Builder, cmds []commandDef) {
	b.WriteString("#compdef blockforge\n\n")
	b.WriteString("_blockforge() {\n")
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, c := range cmds {
		fmt.Fprintf(b, "        '%s:%s'\n", c.Name, zshEscape(c.Desc))
	}
	b.WriteString("    )\n\n")
	b.WriteString("    if (( CURRENT == 2 )); then\n")
	b.WriteString("        _describe 'command' commands\n")
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    case \"${words[2]}\" in\n")
	for _, c := range cmds {
		if len(c.Flags) == 0 && !c.TakesFiles {
			continue
		}
		specs := make([]string, 0, len(c.Flags)+1)
		for _, f := range c.Flags {
			desc := zshEscape(f.Desc)
			action := zshAction(f)
			if f.Short != "" {
				specs = append(specs, fmt.Sprintf("'(-%s --%s)'{-%s,--%s}'[%s]%s'", f.Short, f.Long, f.Short, f.Long, desc, action))
			} else {
				specs = append(specs, fmt.Sprintf("'--%s[%s]%s'", f.Long, desc, action))
			}
		}
		if c.TakesFiles {
			specs = append(specs, fmt.Sprintf("'*:input:_files -g \"(%s)\"'", strings.Join(c.FileGlob, "|")))
		}
		fmt.Fprintf(b, "        %s)\n", c.Name)
		fmt.Fprintf(b, "            _arguments \\\n                %s\n", strings.Join(specs, " \\\n                "))
		b.WriteString("            ;;\n")
	}
	b.WriteString("        help)\n            _describe 'command' commands\n            ;;\n")
	b.WriteString("        completion)\n            _values 'shell' bash zsh fish\n            ;;\n")
	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("compdef _blockforge blockforge\n")
}

func fishEscape(s string) string {
	return strings.ReplaceAll(s, "'", "\\'")
}

func generateFish(b *strings.Builder, cmds []commandDef) {
	names := strings.Join(commandNames(cmds), " ")
	b.WriteString("# fish completion for blockforge\n\n")
	b.WriteString("complete -c blockforge -f\n")
	for _, c := range cmds {
		fmt.Fprintf(b, "complete -c blockforge -n 'not __fish_seen_subcommand_from %s' -a %s -d '%s'\n",
			names, c.Name, fishEscape(c.Desc))
	}
	b.WriteString("\n")

	for _, c := range cmds {
		cond := fmt.Sprintf("__fish_seen_subcommand_from %s", c.Name)
		if c.TakesFiles {
			fmt.Fprintf(b, "complete -c blockforge -n '%s' -F\n", cond)
		}
		for _, f := range c.Flags {
			line := fmt.Sprintf("complete -c blockforge -n '%s' -l %s", cond, f.Long)
			if f.Short != "" {
				line += " -s " + f.Short
			}
			switch f.Type {
			case flagBool:
			case flagEnum:
				line += fmt.Sprintf(" -x -a '%s'", strings.Join(f.Values, " "))
			case flagDir:
				line += " -x -a '(__fish_complete_directories)'"
			case flagFile:
				line += " -r -F"
			default:
				line += " -x"
			}
			line += fmt.Sprintf(" -d '%s'", fishEscape(f.Desc))
			b.WriteString(line + "\n")
		}
	}
	fmt.Fprintf(b, "\ncomplete -c blockforge -n '__fish_seen_subcommand_from help' -x -a '%s'\n", names)
	b.WriteString("complete -c blockforge -n '__fish_seen_subcommand_from completion' -x -a 'bash zsh fish'\n")
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}
	return GenerateCompletion(env.Stdout, Shell(args[0]))
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: blockforge completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate a completion script for bash, zsh or fish.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w, "  Bash: eval \"$(blockforge completion bash)\"   # in ~/.bashrc")
	fmt.Fprintln(w, "  Zsh:  eval \"$(blockforge completion zsh)\"    # in ~/.zshrc, before compinit")
	fmt.Fprintln(w, "  Fish: blockforge completion fish > ~/.config/fish/completions/blockforge.fish")
}
