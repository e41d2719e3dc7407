// Package cli é o mini framework de comandos do binário prisma: comandos,
// subcomandos e flags no formato --nome valor, -n valor ou --bool.
package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// Command represents a CLI command
type Command struct {
	Name        string
	Short       string
	Long        string
	Usage       string
	Run         func(args []string) error
	Subcommands []*Command
	Flags       []*Flag
}

// Flag represents a command flag
type Flag struct {
	Name     string
	Short    string
	Usage    string
	Required bool
	Value    interface{} // *string, *bool, *int ou *time.Duration
}

// App represents the CLI application
type App struct {
	Name        string
	Version     string
	Description string
	Commands    []*Command
	GlobalFlags []*Flag

	// Out recebe ajuda e versão; os.Stdout quando nil
	Out io.Writer
}

// NewApp creates a new CLI application
func NewApp(name, version, description string) *App {
	return &App{
		Name:        name,
		Version:     version,
		Description: description,
		Commands:    []*Command{},
		GlobalFlags: []*Flag{},
	}
}

// AddCommand adds a command to the app
func (a *App) AddCommand(cmd *Command) {
	a.Commands = append(a.Commands, cmd)
}

// AddGlobalFlag adds a global flag to the app
func (a *App) AddGlobalFlag(flag *Flag) {
	a.GlobalFlags = append(a.GlobalFlags, flag)
}

func (a *App) out() io.Writer {
	if a.Out != nil {
		return a.Out
	}
	return os.Stdout
}

// Execute runs the CLI application with os.Args
func (a *App) Execute() error {
	return a.Run(os.Args[1:])
}

// Run executa a linha de comando args (sem o nome do binário)
func (a *App) Run(args []string) error {
	w := a.out()
	if len(args) == 0 {
		a.printUsage(w)
		return nil
	}

	switch args[0] {
	case "--version":
		fmt.Fprintf(w, "%s version %s\n", a.Name, a.Version)
		return nil
	case "--help", "-h", "help":
		a.printUsage(w)
		return nil
	}

	// flags globais podem vir em qualquer posição
	_, remaining, err := parseFlags(args, a.GlobalFlags)
	if err != nil {
		return err
	}
	if len(remaining) == 0 {
		a.printUsage(w)
		return nil
	}

	cmd := findCommand(a.Commands, remaining[0])
	if cmd == nil {
		a.printUsage(w)
		return fmt.Errorf("comando desconhecido: %s", remaining[0])
	}
	cmdArgs := remaining[1:]

	if len(cmdArgs) > 0 && len(cmd.Subcommands) > 0 && cmdArgs[0] != "" && cmdArgs[0][0] != '-' {
		if sub := findCommand(cmd.Subcommands, cmdArgs[0]); sub != nil {
			return runCommand(w, sub, cmdArgs[1:])
		}
		if cmd.Run == nil {
			cmd.PrintUsage(w)
			return fmt.Errorf("subcomando desconhecido: %s %s", cmd.Name, cmdArgs[0])
		}
	}

	if cmd.Run == nil {
		cmd.PrintUsage(w)
		return nil
	}
	return runCommand(w, cmd, cmdArgs)
}

func findCommand(cmds []*Command, name string) *Command {
	for _, c := range cmds {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func runCommand(w io.Writer, cmd *Command, args []string) error {
	for _, arg := range args {
		if arg == "--help" || arg == "-h" {
			cmd.PrintUsage(w)
			return nil
		}
	}
	_, rest, err := parseFlags(args, cmd.Flags)
	if err != nil {
		return err
	}
	if cmd.Run == nil {
		return fmt.Errorf("comando %s não tem ação", cmd.Name)
	}
	return cmd.Run(rest)
}

// parseFlags separa as flags conhecidas dos argumentos. Flags desconhecidas
// seguem como argumentos, para o próximo nível interpretar.
func parseFlags(args []string, flags []*Flag) (map[string]interface{}, []string, error) {
	parsed := make(map[string]interface{})
	remaining := []string{}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if len(arg) < 2 || arg[0] != '-' {
			remaining = append(remaining, arg)
			continue
		}

		name := arg[1:]
		if arg[1] == '-' {
			name = arg[2:]
		}
		value, hasValue := "", false
		for j := 0; j < len(name); j++ {
			if name[j] == '=' {
				name, value, hasValue = name[:j], name[j+1:], true
				break
			}
		}

		var flag *Flag
		for _, f := range flags {
			if f.Name == name || (f.Short != "" && f.Short == name) {
				flag = f
				break
			}
		}
		if flag == nil {
			remaining = append(remaining, arg)
			continue
		}

		if _, isBool := flag.Value.(*bool); isBool && !hasValue {
			value, hasValue = "true", true
		}
		if !hasValue {
			if i+1 >= len(args) {
				return nil, nil, fmt.Errorf("flag --%s precisa de um valor", flag.Name)
			}
			i++
			value = args[i]
		}
		if err := setFlagValue(flag, value); err != nil {
			return nil, nil, err
		}
		parsed[flag.Name] = value
	}

	for _, flag := range flags {
		if flag.Required {
			if _, ok := parsed[flag.Name]; !ok {
				return nil, nil, fmt.Errorf("flag --%s é obrigatória", flag.Name)
			}
		}
	}
	return parsed, remaining, nil
}

// setFlagValue sets the value of a flag
func setFlagValue(flag *Flag, value string) error {
	switch v := flag.Value.(type) {
	case *string:
		*v = value
	case *bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("flag --%s: valor booleano inválido %q", flag.Name, value)
		}
		*v = b
	case *int:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("flag --%s: número inválido %q", flag.Name, value)
		}
		*v = n
	case *time.Duration:
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("flag --%s: duração inválida %q", flag.Name, value)
		}
		*v = d
	default:
		return fmt.Errorf("flag --%s: tipo %T não suportado", flag.Name, flag.Value)
	}
	return nil
}

func (a *App) printUsage(w io.Writer) {
	fmt.Fprintf(w, "%s - %s\n\n", a.Name, a.Description)
	fmt.Fprintf(w, "Uso:\n  %s [comando] [flags] [argumentos]\n\n", a.Name)

	if len(a.Commands) > 0 {
		fmt.Fprintln(w, "Comandos:")
		for _, cmd := range a.Commands {
			fmt.Fprintf(w, "  %-15s %s\n", cmd.Name, cmd.Short)
		}
		fmt.Fprintln(w)
	}

	if len(a.GlobalFlags) > 0 {
		fmt.Fprintln(w, "Flags globais:")
		printFlags(w, a.GlobalFlags)
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Use '%s [comando] --help' para ver os detalhes de um comando.\n", a.Name)
}

// PrintUsage prints usage for a specific command
func (cmd *Command) PrintUsage(w io.Writer) {
	if cmd.Long != "" {
		fmt.Fprintln(w, cmd.Long)
		fmt.Fprintln(w)
	}

	usage := cmd.Usage
	if usage == "" {
		usage = cmd.Name
	}
	fmt.Fprintf(w, "Uso:\n  %s\n\n", usage)

	if len(cmd.Flags) > 0 {
		fmt.Fprintln(w, "Flags:")
		printFlags(w, cmd.Flags)
		fmt.Fprintln(w)
	}

	if len(cmd.Subcommands) > 0 {
		fmt.Fprintln(w, "Subcomandos:")
		for _, sub := range cmd.Subcommands {
			fmt.Fprintf(w, "  %-15s %s\n", sub.Name, sub.Short)
		}
		fmt.Fprintln(w)
	}
}

func printFlags(w io.Writer, flags []*Flag) {
	for _, flag := range flags {
		short := ""
		if flag.Short != "" {
			short = fmt.Sprintf("-%s, ", flag.Short)
		}
		required := ""
		if flag.Required {
			required = " (obrigatória)"
		}
		fmt.Fprintf(w, "  %s--%s\t%s%s\n", short, flag.Name, flag.Usage, required)
	}
}
