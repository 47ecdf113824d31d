// Package gtp is a line oriented text protocol, modelled on the Go Text Protocol, through which a front end
// (a renderer, a console, a test) drives a play session.
//
// Every command is one line: an optional numeric id, the command name and its arguments.
// Every response is "= [id] result" or "? [id] error", followed by an empty line.
package gtp

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gorgonia/qttt"
	"github.com/gorgonia/qttt/game"
	"github.com/pkg/errors"
)

// Game is the session an Engine drives.
type Game interface {
	HumanMove(row, col int) (qttt.Outcome, bool)
	AIMove() (qttt.Outcome, bool)
	Reset()
	Ended() bool
	Message() string
	State() game.State
}

type Engine struct {
	g Game

	known map[string]Command

	ch  chan string
	ret chan string

	name, version string
}

func New(g Game, name, version string, known map[string]Command) *Engine {
	if known == nil {
		known = StandardLib()
	}
	return &Engine{
		g:       g,
		known:   known,
		name:    name,
		version: version,
	}
}

// Start starts serving commands. Closing input, or sending "quit", stops the engine.
func (e *Engine) Start() (input chan<- string, output <-chan string) {
	e.ch = make(chan string)
	e.ret = make(chan string)
	go e.start()
	return e.ch, e.ret
}

func (e *Engine) Game() Game { return e.g }

func (e *Engine) start() {
	defer close(e.ret)
	for cmd := range e.ch {
		resp, quit := e.Exec(cmd)
		if resp == "" {
			continue
		}
		e.ret <- resp
		if quit {
			return
		}
	}
}

// Exec runs a single command synchronously. An empty line yields an empty response.
func (e *Engine) Exec(cmd string) (resp string, quit bool) {
	id, x, name, args, err := e.parse(cmd)
	if x == nil && err == nil {
		return "", false
	}
	if err != nil {
		return handleErr(id, err), false
	}
	id, result, err := x.Do(id, args, e)
	return handleResult(id, result, err), name == "quit" && err == nil
}

func (e *Engine) parse(cmd string) (id int, x Command, name string, args []string, err error) {
	cmd = preprocess(cmd)
	tokens := strings.Fields(cmd)
	if len(tokens) == 0 {
		return -1, nil, "", nil, nil
	}
	if id, err = strconv.Atoi(tokens[0]); err == nil {
		// we've consumed ID
		tokens = tokens[1:]
	} else {
		// set err to nil because ID is optional
		err = nil
		id = -1
	}

	if len(tokens) == 0 {
		return id, nil, "", nil, nil // an ID may be passed in but it'll be ignored
	}

	var ok bool
	if x, ok = e.known[tokens[0]]; !ok {
		return id, nil, "", nil, errors.Errorf("Unknown command %q", tokens[0])
	}
	name = tokens[0]
	if len(tokens) > 1 {
		args = tokens[1:]
	}
	return
}

func preprocess(a string) string {
	if i := strings.IndexByte(a, '#'); i >= 0 {
		a = a[:i]
	}
	return strings.ToLower(strings.TrimSpace(a))
}

func handleErr(id int, err error) string {
	if id != -1 {
		return fmt.Sprintf("? %d %v\n\n", id, err)
	}
	return fmt.Sprintf("? %v\n\n", err)
}

func handleResult(id int, result string, err error) string {
	if err != nil {
		return handleErr(id, err)
	}

	if id != -1 {
		return fmt.Sprintf("= %d %v\n\n", id, result)
	}
	return fmt.Sprintf("= %v\n\n", result)
}
