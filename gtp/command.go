package gtp

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"

	"github.com/pkg/errors"
)

type Command interface {
	Do(id int, args []string, e *Engine) (int, string, error)
}

type stdlib func(e *Engine) string

type stdlib2 func(e *Engine, args []string) (string, error)

func (f stdlib) Do(id int, args []string, e *Engine) (int, string, error) {
	str := f(e)
	return id, str, nil
}

func (f stdlib2) Do(id int, args []string, e *Engine) (int, string, error) {
	str, err := f(e, args)
	return id, str, err
}

func protocolVersion(e *Engine) string { return "2" }
func name(e *Engine) string            { return e.name }
func version(e *Engine) string         { return e.version }

func listCommands(e *Engine) string {
	cmds := make([]string, 0, len(e.known))
	for c := range e.known {
		cmds = append(cmds, c)
	}
	sort.Strings(cmds)

	var buf bytes.Buffer
	for i, c := range cmds {
		if i > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(c)
	}
	return buf.String()
}

func quit(e *Engine) string       { return "" }
func clearBoard(e *Engine) string { e.g.Reset(); return "" }
func showboard(e *Engine) string  { return fmt.Sprintf("\n%s", e.g.State()) }

func knownCommand(e *Engine, args []string) (string, error) {
	if len(args) == 0 {
		return "", errors.New("Not enough arguments for \"known_command\"")
	}
	if _, ok := e.known[args[0]]; ok {
		return "true", nil
	}
	return "false", nil
}

// boardSize only accepts the size the session was started with. Board sizes are fixed at start up.
func boardSize(e *Engine, args []string) (string, error) {
	if len(args) == 0 {
		return "", errors.New("Not enough arguments for \"boardsize\"")
	}
	size, err := strconv.Atoi(args[0])
	if err != nil {
		return "", errors.WithMessage(err, "Unable to parse first argument of boardsize")
	}
	m, n := e.g.State().BoardSize()
	if size != m || (len(args) > 1 && args[1] != strconv.Itoa(n)) {
		return "", errors.Errorf("unacceptable size. Board size is fixed at %dx%d", m, n)
	}
	return "", nil
}

// play plays the human's mark at a row and a column. Attempts that are not allowed are silently ignored.
func play(e *Engine, args []string) (string, error) {
	if len(args) < 2 {
		return "", errors.New("Not enough arguments for \"play\"")
	}
	row, err := strconv.Atoi(args[0])
	if err != nil {
		return "", errors.WithMessage(err, "Unable to parse row")
	}
	col, err := strconv.Atoi(args[1])
	if err != nil {
		return "", errors.WithMessage(err, "Unable to parse col")
	}
	outcome, ok := e.g.HumanMove(row, col)
	if !ok {
		return "", nil
	}
	return outcome.String(), nil
}

// genmove lets the AI make its move. A move into an occupied cell is silently ignored.
func genmove(e *Engine, args []string) (string, error) {
	outcome, ok := e.g.AIMove()
	if !ok {
		return "", nil
	}
	last := e.g.State().LastMove()
	n, _ := e.g.State().BoardSize()
	return fmt.Sprintf("%s %d %d", outcome, int(last.Single)/n, int(last.Single)%n), nil
}

func finalStatus(e *Engine) string {
	if !e.g.Ended() {
		return "continue"
	}
	return e.g.Message()
}

func StandardLib() map[string]Command {
	return map[string]Command{
		"protocol_version": stdlib(protocolVersion),
		"name":             stdlib(name),
		"version":          stdlib(version),
		"list_commands":    stdlib(listCommands),
		"quit":             stdlib(quit),
		"clear_board":      stdlib(clearBoard),
		"showboard":        stdlib(showboard),
		"final_status":     stdlib(finalStatus),

		"known_command": stdlib2(knownCommand),
		"boardsize":     stdlib2(boardSize),
		"play":          stdlib2(play),
		"genmove":       stdlib2(genmove),
	}
}
