package commands

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// InteractiveCmd creates the interactive command
func InteractiveCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "interactive",
		Short: "Start an interactive session (connect once, run multiple commands)",
		Long: `Start an interactive session where you can run multiple commands against one database connection.
The session will keep running until you type 'exit' or 'quit'.

Type 'help' to see available commands.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd.Parent(), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	return cmd
}

func runInteractive(rootCmd *cobra.Command, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, "\n🚀 Starting interactive session...")
	fmt.Fprintln(out, "Type 'help' for available commands, 'exit' or 'quit' to leave")

	commands := make(map[string]*cobra.Command)
	for _, subCmd := range rootCmd.Commands() {
		switch subCmd.Name() {
		case "interactive", "completion", "help", "serve":
			continue
		}
		commands[subCmd.Name()] = subCmd
	}

	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprint(out, "> ")

		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts, err := parseCommandLine(line)
		if err != nil {
			fmt.Fprintf(out, "❌ Error parsing command: %v\n\n", err)
			continue
		}
		if len(parts) == 0 {
			continue
		}
		cmdName := parts[0]
		cmdArgs := parts[1:]

		if cmdName == "exit" || cmdName == "quit" {
			fmt.Fprintln(out, "👋 Goodbye!")
			return nil
		}

		if cmdName == "help" {
			printInteractiveHelp(out, commands)
			continue
		}

		targetCmd, exists := commands[cmdName]
		if !exists {
			fmt.Fprintf(out, "❌ Unknown command: %s (type 'help' for available commands)\n\n", cmdName)
			continue
		}

		// Flags keep their values between runs unless reset
		targetCmd.Flags().VisitAll(func(flag *pflag.Flag) {
			flag.Changed = false
			if sv, ok := flag.Value.(pflag.SliceValue); ok {
				_ = sv.Replace(nil)
				return
			}
			_ = flag.Value.Set(flag.DefValue)
		})

		// RunE is called directly so PersistentPreRunE does not reconnect
		if err := targetCmd.ParseFlags(cmdArgs); err != nil {
			fmt.Fprintf(out, "❌ Error parsing flags: %v\n\n", err)
			continue
		}

		cmdArgs = targetCmd.Flags().Args()

		if targetCmd.Args != nil {
			if err := targetCmd.Args(targetCmd, cmdArgs); err != nil {
				fmt.Fprintf(out, "❌ Error: %v\n\n", err)
				continue
			}
		}
		if err := targetCmd.ValidateRequiredFlags(); err != nil {
			fmt.Fprintf(out, "❌ Error: %v\n\n", err)
			continue
		}

		targetCmd.SetOut(out)
		if targetCmd.RunE != nil {
			if err := targetCmd.RunE(targetCmd, cmdArgs); err != nil {
				fmt.Fprintf(out, "❌ Error: %v\n\n", err)
			}
		} else if targetCmd.Run != nil {
			targetCmd.Run(targetCmd, cmdArgs)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading input: %w", err)
	}

	return nil
}

func printInteractiveHelp(out io.Writer, commands map[string]*cobra.Command) {
	fmt.Fprintln(out, "\nAvailable commands:")

	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		cmd := commands[name]
		fmt.Fprintf(out, "  %-30s %s\n", cmd.Use, cmd.Short)
	}

	fmt.Fprintln(out, "\n  help                           Show this help message")
	fmt.Fprintln(out, "  exit, quit                     Exit the interactive session")
}

// parseCommandLine splits a command line into arguments, respecting quoted strings
// Supports both single and double quotes
func parseCommandLine(line string) ([]string, error) {
	var args []string
	var current strings.Builder
	var inQuote rune // 0 if not in quote, '"' or '\'' if in quote

	for _, r := range line {
		switch {
		case inQuote != 0:
			if r == inQuote {
				inQuote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '"' || r == '\'':
			inQuote = r
		case unicode.IsSpace(r):
			if current.Len() > 0 {
				args = append(args, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(r)
		}
	}

	if inQuote != 0 {
		return nil, fmt.Errorf("unclosed quote: %c", inQuote)
	}

	if current.Len() > 0 {
		args = append(args, current.String())
	}

	return args, nil
}
