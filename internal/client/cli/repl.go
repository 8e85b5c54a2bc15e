package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	isAdmin() bool

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	DeleteAccount(ctx context.Context) error

	List(ctx context.Context) error
	Search(ctx context.Context, text string) error
	Statuses(ctx context.Context) error
	FilterStatus(ctx context.Context, value string) error
	FilterCategory(ctx context.Context, value string) error
	Sort(ctx context.Context, value string) error
	More(ctx context.Context) error
	Retry(ctx context.Context) error

	Show(ctx context.Context, id string) error
	Report(ctx context.Context) error
	Rate(ctx context.Context, id, rating string) error

	Pin(ctx context.Context, id string) error
	Pinned(ctx context.Context) error

	Validate(ctx context.Context, id string) error
	Resolve(ctx context.Context, id string) error
	Deny(ctx context.Context, id string) error

	Stats(ctx context.Context) error
}

func printHelp(a execIface) {
	if !a.isLoggedIn() {
		printlnFn("Available commands: register, login, list, search, status, category, sort, more, show, stats, exit")
		return
	}
	printlnFn("Available commands: (l)ist, search <text>, status <value|->, category <value|->, sort <asc|desc>, more, retry, show <id>, report, rate <id> <1-5>, pin <id>, pinned, stats, delete-account, logout, exit")
	if a.isAdmin() {
		printlnFn("Admin commands: validate <id>, resolve <id>, deny <id>")
	}
}

// printErr prints a command failure; handlers already performed any session
// cleanup before returning.
func printErr(err error) {
	if err != nil {
		printlnFn("Error:", err.Error())
	}
}

// runREPL starts a simple read-eval-print loop for the CivicWatch CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("cw %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		arg := func(usage string) (string, bool) {
			if len(args) == 0 {
				printlnFn("Usage: " + usage)
				return "", false
			}
			return args[0], true
		}

		switch cmd {
		case "help":
			printHelp(a)

		case "register":
			printErr(a.Register(ctx))

		case "login":
			printErr(a.Login(ctx))

		case "logout":
			printErr(a.Logout(ctx))

		case "delete-account":
			printErr(a.DeleteAccount(ctx))

		case "l", "list":
			printErr(a.List(ctx))

		case "search":
			// An empty search clears the query.
			printErr(a.Search(ctx, strings.Join(args, " ")))

		case "status":
			// Bare "status" lists the values the backend accepts.
			if len(args) == 0 {
				printErr(a.Statuses(ctx))
				continue
			}
			printErr(a.FilterStatus(ctx, args[0]))

		case "category":
			if v, ok := arg("category <value|->"); ok {
				printErr(a.FilterCategory(ctx, v))
			}

		case "sort":
			if v, ok := arg("sort <asc|desc>"); ok {
				printErr(a.Sort(ctx, v))
			}

		case "more":
			printErr(a.More(ctx))

		case "retry":
			printErr(a.Retry(ctx))

		case "show":
			if v, ok := arg("show <id>"); ok {
				printErr(a.Show(ctx, v))
			}

		case "report":
			printErr(a.Report(ctx))

		case "rate":
			if len(args) < 2 {
				printlnFn("Usage: rate <id> <1-5>")
				continue
			}
			printErr(a.Rate(ctx, args[0], args[1]))

		case "pin":
			if v, ok := arg("pin <id>"); ok {
				printErr(a.Pin(ctx, v))
			}

		case "pinned":
			printErr(a.Pinned(ctx))

		case "validate":
			if v, ok := arg("validate <id>"); ok {
				printErr(a.Validate(ctx, v))
			}

		case "resolve":
			if v, ok := arg("resolve <id>"); ok {
				printErr(a.Resolve(ctx, v))
			}

		case "deny":
			if v, ok := arg("deny <id>"); ok {
				printErr(a.Deny(ctx, v))
			}

		case "stats":
			printErr(a.Stats(ctx))

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
