package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// Entity kinds accepted by add, edit, delete and list.
const (
	kindProject = "project"
	kindWork    = "work"
	kindSubwork = "subwork"
	kindEntry   = "entry"
)

var kinds = map[string]string{
	"project": kindProject, "projects": kindProject, "p": kindProject,
	"work": kindWork, "works": kindWork, "w": kindWork,
	"subwork": kindSubwork, "subworks": kindSubwork, "s": kindSubwork,
	"entry": kindEntry, "entries": kindEntry, "e": kindEntry,
}

// execIface defines the command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Status(ctx context.Context) error
	Sync(ctx context.Context) error
	List(ctx context.Context, kind string, args []string) error
	Add(ctx context.Context, kind string, args []string) error
	Edit(ctx context.Context, kind string, args []string) error
	Delete(ctx context.Context, kind string, args []string) error
	Export(ctx context.Context, args []string) error
}

const helpText = `Commands:
  projects                      list projects
  works <project>               list works of a project
  subworks <work>               list subworks of a work
  entries <subwork>             list entries with totals
  add project
  add work <project>
  add subwork <work>
  add entry <subwork>
  edit <kind> <id>              kind: project, work, subwork, entry
  delete <kind> <id>            deletes cascade to children
  export <subwork>              write the measurement sheet (.xlsx)
  sync                          push local changes and pull the server state
  status                        connectivity, session and last sync
  login | logout
  exit | quit
Ids may be shortened to any unique prefix.`

// runREPL reads commands from reader until EOF, "exit" or "quit" and
// dispatches them to a. Command errors are printed and the loop goes on.
//
// Everything works offline against the local store; sync and login need
// the server.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("civigo %s> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help", "?":
			printlnFn(helpText)

		case "login":
			cmdErr = a.Login(ctx)
		case "logout":
			cmdErr = a.Logout(ctx)
		case "status":
			cmdErr = a.Status(ctx)
		case "sync":
			cmdErr = a.Sync(ctx)

		case "projects", "works", "subworks", "entries", "ls":
			kind := kinds[cmd]
			if cmd == "ls" {
				kind, args = kindArg(args)
			}
			if kind == "" {
				printlnFn("Usage: ls <kind> [parent]")
				continue
			}
			cmdErr = a.List(ctx, kind, args)

		case "add", "edit", "delete", "rm":
			kind, rest := kindArg(args)
			if kind == "" {
				printlnFn(fmt.Sprintf("Usage: %s <project|work|subwork|entry> ...", cmd))
				continue
			}
			switch cmd {
			case "add":
				cmdErr = a.Add(ctx, kind, rest)
			case "edit":
				cmdErr = a.Edit(ctx, kind, rest)
			default:
				cmdErr = a.Delete(ctx, kind, rest)
			}

		case "export":
			cmdErr = a.Export(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn(errorStyle.Render("ERROR: " + cmdErr.Error()))
		}
	}
}

func kindArg(args []string) (string, []string) {
	if len(args) == 0 {
		return "", nil
	}
	return kinds[strings.ToLower(args[0])], args[1:]
}
