package settings

import (
	"encoding/json"
	"fmt"
	"io"
)

// HandleConfigCommand runs "config <show|env|get|init>" and writes the
// result to out.
func HandleConfigCommand(args []string, out io.Writer) error {
	if len(args) < 1 {
		printConfigHelp(out)
		return fmt.Errorf("missing config command")
	}

	v := NewViper()
	if err := v.ReadInConfig(); err != nil {
		v = NewViper()
	}

	switch args[0] {
	case "show":
		fmt.Fprintf(out, "%-35s %-40s %-20s %-20s %s\n", "JSON KEY", "ENV VAR", "CURRENT", "DEFAULT", "DESCRIPTION")
		for _, c := range Registry {
			fmt.Fprintf(out, "%-35s %-40s %-20v %-20v %s\n", c.Key, EnvVar(c.Key), v.Get(c.Key), c.Default, c.Description)
		}
	case "env":
		fmt.Fprintf(out, "%-40s %s\n", "ENV VAR", "JSON KEY")
		for _, c := range Registry {
			fmt.Fprintf(out, "%-40s %s\n", EnvVar(c.Key), c.Key)
		}
	case "get":
		if len(args) != 2 {
			return fmt.Errorf("usage: todolist config get <json-key>")
		}
		for _, c := range Registry {
			if c.Key == args[1] {
				fmt.Fprintln(out, v.Get(c.Key))
				return nil
			}
		}
		return fmt.Errorf("unknown config key: %s", args[1])
	case "init":
		defaults := map[string]any{}
		for _, c := range Registry {
			defaults[c.Key] = c.Default
		}
		b, err := json.MarshalIndent(defaults, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(b))
	default:
		printConfigHelp(out)
		return fmt.Errorf("unknown config command: %s", args[0])
	}
	return nil
}

func printConfigHelp(out io.Writer) {
	fmt.Fprintln(out, `Usage:
  todolist config show
  todolist config env
  todolist config get <json-key>
  todolist config init`)
}
