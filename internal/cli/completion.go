package cli

import (
	"fmt"
	"strings"

	"github.com/AndreyAkinshin/fuzzy/internal/errors"
)

// flagInfo describes a global flag for shell completion.
type flagInfo struct {
	name        string // without leading dashes
	description string
	values      string // space-separated fixed values, "" when free-form or boolean
	takesValue  bool
}

var completionFlags = []flagInfo{
	{"quiet", "Minimal output", "", false},
	{"config", "Configuration file", "", true},
	{"profile", "Comparison profile", "", true},
	{"precision", "Floating point width", "32 64", true},
	{"margin", "Absolute margin of error", "", true},
	{"ulps", "Tolerance in ULPs", "", true},
	{"scale", "Boundary scale", "", true},
	{"hashed", "Use hash-compatible equality", "", false},
	{"help", "Show help", "", false},
	{"version", "Show version", "", false},
}

const (
	configSubcommands = "show validate profiles"
	completionShells  = "bash zsh fish"
)

// cmdCompletion generates shell completion scripts.
func cmdCompletion(args []string) int {
	shell := ""
	alias := ""

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "-h" || arg == "--help":
			printCompletionUsage()
			return 0
		case strings.HasPrefix(arg, "--alias="):
			alias = strings.TrimPrefix(arg, "--alias=")
		case arg == "--alias":
			return fail(errors.Usagef("completion", "--alias requires a value (--alias=<name>)"))
		case strings.HasPrefix(arg, "-"):
			return fail(errors.Usagef("completion", "unknown flag: %s", arg))
		default:
			if shell != "" {
				return fail(errors.Usagef("completion", "unexpected argument: %s", arg))
			}
			shell = arg
		}
	}

	if shell == "" {
		return fail(errors.Usagef("completion", "shell required (bash, zsh, fish)"))
	}

	cmdName := "fuzzy"
	if alias != "" {
		cmdName = alias
	}

	switch shell {
	case "bash":
		out.Print("%s", generateBashCompletion(cmdName))
	case "zsh":
		out.Print("%s", generateZshCompletion(cmdName))
	case "fish":
		out.Print("%s", generateFishCompletion(cmdName))
	default:
		return fail(errors.Usagef("completion", "unsupported shell %q (use bash, zsh, or fish)", shell))
	}
	return 0
}

func printCompletionUsage() {
	out.HelpTitle("fuzzy completion - generate shell completion scripts")

	out.HelpSection("Usage:")
	out.HelpUsage("fuzzy completion <shell> [--alias=<name>]")

	out.HelpSection("Arguments:")
	out.HelpFlag("<shell>", "Shell type: bash, zsh, or fish", 10)

	out.HelpSection("Options:")
	out.HelpFlag("--alias=<name>", "Generate completion for command alias", 14)
	out.HelpFlag("-h, --help", "Show this help", 14)

	out.HelpSection("Examples:")
	out.HelpExample("fuzzy completion bash", "Generate bash completion")
	out.HelpExample("fuzzy completion zsh", "Generate zsh completion")
	out.HelpExample("fuzzy completion fish --alias=fz", "Generate fish completion for alias 'fz'")

	out.HelpSection("Installation:")
	out.Println("  Bash:  eval \"$(fuzzy completion bash)\"")
	out.Println("  Zsh:   eval \"$(fuzzy completion zsh)\"")
	out.Println("  Fish:  fuzzy completion fish | source")
	out.Println("")
}

func commandNames() []string {
	names := make([]string, len(commands))
	for i, c := range commands {
		names[i] = c.name
	}
	return names
}

func flagNames() []string {
	names := make([]string, len(completionFlags))
	for i, f := range completionFlags {
		names[i] = "--" + f.name
	}
	return names
}

func aliasNote(cmdName, howto string) string {
	if cmdName == "fuzzy" {
		return fmt.Sprintf(`
# Alias support:
# If you use an alias (e.g., alias fz="fuzzy"), add completion for it:
#   %s
`, howto)
	}
	return fmt.Sprintf(`
# This completion is generated for the alias "%s"
# Make sure you have the alias defined: alias %s="fuzzy"
`, cmdName, cmdName)
}

func generateBashCompletion(cmdName string) string {
	funcName := "_" + strings.ReplaceAll(cmdName, "-", "_") + "_completions"

	return fmt.Sprintf(`# fuzzy bash completion
# Add to ~/.bashrc: eval "$(fuzzy completion bash)"
%s
%s() {
    local cur prev words cword
    _init_completion || return

    local commands="%s"
    local flags="%s"

    case "${prev}" in
        --profile)
            COMPREPLY=($(compgen -W "$(%s config profiles 2>/dev/null)" -- "${cur}"))
            return
            ;;
        --precision)
            COMPREPLY=($(compgen -W "32 64" -- "${cur}"))
            return
            ;;
        --config)
            _filedir '@(json|yaml|yml)'
            return
            ;;
        --margin|--ulps|--scale)
            return
            ;;
        config)
            COMPREPLY=($(compgen -W "%s" -- "${cur}"))
            return
            ;;
        completion)
            COMPREPLY=($(compgen -W "%s" -- "${cur}"))
            return
            ;;
    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=($(compgen -W "${flags}" -- "${cur}"))
        return
    fi

    local word
    for word in "${words[@]:1:cword-1}"; do
        case "${word}" in
            diff)
                _filedir '@(json|yaml|yml)'
                return
                ;;
            check)
                _filedir -d
                return
                ;;
        esac
    done

    COMPREPLY=($(compgen -W "${commands}" -- "${cur}"))
}

complete -F %s %s
`, aliasNote(cmdName, "complete -F "+funcName+" fz"), funcName,
		strings.Join(commandNames(), " "), strings.Join(flagNames(), " "),
		cmdName, configSubcommands, completionShells, funcName, cmdName)
}

func generateZshCompletion(cmdName string) string {
	funcName := "_" + strings.ReplaceAll(cmdName, "-", "_")

	var sb strings.Builder
	fmt.Fprintf(&sb, "#compdef %s\n# fuzzy zsh completion\n# Add to ~/.zshrc: eval \"$(fuzzy completion zsh)\"\n", cmdName)
	sb.WriteString(aliasNote(cmdName, "compdef "+funcName+" fz"))
	fmt.Fprintf(&sb, "\n%s() {\n    local -a commands flags\n\n    commands=(\n", funcName)
	for _, c := range commands {
		fmt.Fprintf(&sb, "        '%s:%s'\n", c.name, c.description)
	}
	sb.WriteString("    )\n\n    flags=(\n")
	for _, f := range completionFlags {
		switch {
		case f.name == "profile":
			fmt.Fprintf(&sb, "        '--%s=[%s]:profile:(${(f)\"$(%s config profiles 2>/dev/null)\"})'\n", f.name, f.description, cmdName)
		case f.name == "config":
			fmt.Fprintf(&sb, "        '--%s=[%s]:file:_files -g \"*.(json|yaml|yml)\"'\n", f.name, f.description)
		case f.values != "":
			fmt.Fprintf(&sb, "        '--%s=[%s]:%s:(%s)'\n", f.name, f.description, f.name, f.values)
		case f.takesValue:
			fmt.Fprintf(&sb, "        '--%s=[%s]:%s:'\n", f.name, f.description, f.name)
		default:
			fmt.Fprintf(&sb, "        '--%s[%s]'\n", f.name, f.description)
		}
	}
	fmt.Fprintf(&sb, `    )

    _arguments -s $flags[@] \
        '1:command:->command' \
        '*::arg:->args'

    case $state in
        command)
            _describe -t commands 'command' commands
            ;;
        args)
            case ${words[1]} in
                config)
                    _values 'subcommand' %s
                    ;;
                completion)
                    _values 'shell' %s
                    ;;
                diff)
                    _files -g "*.(json|yaml|yml)"
                    ;;
                check)
                    _files -/
                    ;;
            esac
            ;;
    esac
}

compdef %s %s
`, configSubcommands, completionShells, funcName, cmdName)
	return sb.String()
}

func generateFishCompletion(cmdName string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# fuzzy fish completion\n# Add to config: fuzzy completion fish | source\n")
	sb.WriteString(aliasNote(cmdName, "complete -c fz -w fuzzy"))
	fmt.Fprintf(&sb, "\n# Disable file completion by default\ncomplete -c %s -f\n", cmdName)

	sb.WriteString("\n# Commands\n")
	for _, c := range commands {
		fmt.Fprintf(&sb, "complete -c %s -n '__fish_use_subcommand' -a '%s' -d '%s'\n", cmdName, c.name, c.description)
	}

	sb.WriteString("\n# Global flags\n")
	for _, f := range completionFlags {
		switch {
		case f.name == "profile":
			fmt.Fprintf(&sb, "complete -c %s -l %s -d '%s' -xa '(%s config profiles 2>/dev/null)'\n", cmdName, f.name, f.description, cmdName)
		case f.name == "config":
			fmt.Fprintf(&sb, "complete -c %s -l %s -d '%s' -rF\n", cmdName, f.name, f.description)
		case f.values != "":
			fmt.Fprintf(&sb, "complete -c %s -l %s -d '%s' -xa '%s'\n", cmdName, f.name, f.description, f.values)
		case f.takesValue:
			fmt.Fprintf(&sb, "complete -c %s -l %s -d '%s' -x\n", cmdName, f.name, f.description)
		default:
			fmt.Fprintf(&sb, "complete -c %s -l %s -d '%s'\n", cmdName, f.name, f.description)
		}
	}
	fmt.Fprintf(&sb, "complete -c %s -s q -d 'Minimal output'\n", cmdName)

	sb.WriteString("\n# Subcommand arguments\n")
	fmt.Fprintf(&sb, "complete -c %s -n '__fish_seen_subcommand_from config' -a '%s'\n", cmdName, configSubcommands)
	fmt.Fprintf(&sb, "complete -c %s -n '__fish_seen_subcommand_from completion' -a '%s'\n", cmdName, completionShells)
	fmt.Fprintf(&sb, "complete -c %s -n '__fish_seen_subcommand_from diff' -F\n", cmdName)
	fmt.Fprintf(&sb, "complete -c %s -n '__fish_seen_subcommand_from check' -xa '(__fish_complete_directories)'\n", cmdName)

	return sb.String()
}
