package app

import (
	"fmt"
	"strings"

	"github.com/smokyabdulrahman/adhan-clock/internal/config"
	"github.com/smokyabdulrahman/adhan-clock/internal/prayer"
)

// CommandKind enumerates the user controls available while the clock runs.
type CommandKind int

const (
	CmdRefresh CommandKind = iota
	CmdSetMethod
	CmdPlay
	CmdStop
	CmdShowTime
	CmdQuit
)

// Command is one user request delivered to the scheduler.
type Command struct {
	Kind   CommandKind
	Method int       // CmdSetMethod
	Prayer prayer.ID // CmdShowTime
}

// Help is printed for an unknown command.
const Help = "commands: r (refresh location), m <id> (method), p (play adhan), s (stop), t <prayer> (show time), q (quit)"

// msgNoPlayer answers "p" when no adhan file is configured.
const msgNoPlayer = "No adhan file configured; start with --adhan <file>."

// ParseCommand reads a stdin line such as "m 4" or "t asr".
func ParseCommand(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, fmt.Errorf("empty command; %s", Help)
	}

	arg := ""
	if len(fields) > 1 {
		arg = fields[1]
	}

	switch strings.ToLower(fields[0]) {
	case "r", "refresh":
		return Command{Kind: CmdRefresh}, nil
	case "m", "method":
		if arg == "" {
			return Command{}, fmt.Errorf("method command needs an ID, e.g. \"m 4\"")
		}
		m, err := config.ParseMethod(arg)
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: CmdSetMethod, Method: m}, nil
	case "p", "play":
		return Command{Kind: CmdPlay}, nil
	case "s", "stop":
		return Command{Kind: CmdStop}, nil
	case "t", "time":
		id, err := prayer.ParseID(arg)
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: CmdShowTime, Prayer: id}, nil
	case "q", "quit", "exit":
		return Command{Kind: CmdQuit}, nil
	default:
		return Command{}, fmt.Errorf("unknown command %q; %s", fields[0], Help)
	}
}
