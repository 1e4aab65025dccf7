package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// CommandArgs is "<command> -name value -name=value -flag". A flag without a
// value is "true".
type CommandArgs struct {
	commandName string
	params      map[string]string
}

func NewCommandArgs(args []string) *CommandArgs {
	var ca = &CommandArgs{params: make(map[string]string)}
	for i := 1; i < len(args); i++ {
		var arg = args[i]
		if !strings.HasPrefix(arg, "-") {
			if ca.commandName == "" {
				ca.commandName = arg
			}
			continue
		}
		var key = strings.TrimLeft(arg, "-")
		if k, v, ok := strings.Cut(key, "="); ok {
			ca.params[k] = v
			continue
		}
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			ca.params[key] = args[i+1]
			i++
			continue
		}
		ca.params[key] = "true"
	}
	return ca
}

func (ca *CommandArgs) CommandName() string {
	return ca.commandName
}

func (ca *CommandArgs) GetString(name string, defaultVal string) string {
	if val, ok := ca.params[name]; ok {
		return val
	}
	return defaultVal
}

func (ca *CommandArgs) GetInt(name string, defaultVal int) int {
	var v, err = strconv.Atoi(ca.params[name])
	if err != nil {
		return defaultVal
	}
	return v
}

func (ca *CommandArgs) GetInt64(name string, defaultVal int64) int64 {
	var v, err = strconv.ParseInt(ca.params[name], 10, 64)
	if err != nil {
		return defaultVal
	}
	return v
}

type Cli struct {
	args     *CommandArgs
	commands map[string]func() error
}

func NewCli(args []string) *Cli {
	return &Cli{
		args:     NewCommandArgs(args),
		commands: make(map[string]func() error),
	}
}

func (c *Cli) AddCommand(name string, handler func() error) {
	c.commands[name] = handler
}

func (c *Cli) Params() *CommandArgs {
	return c.args
}

func (c *Cli) Execute() error {
	var handler, found = c.commands[c.args.CommandName()]
	if !found {
		return fmt.Errorf("command not found %q", c.args.CommandName())
	}
	return handler()
}

// mapPath expands "~/" to the home directory.
func mapPath(path string) string {
	var rest, ok = strings.CutPrefix(path, "~/")
	if !ok {
		return path
	}
	var home, err = os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, rest)
}
