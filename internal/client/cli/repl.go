package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL drives. App satisfies it; tests
// use a stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Register(ctx context.Context) error
	Logout(ctx context.Context) error
	Go(ctx context.Context, path string) error
	Refresh(ctx context.Context) error
	Connect(ctx context.Context, id string) error
	Disconnect(ctx context.Context, id string) error
	SetPeriod(ctx context.Context, period string) error
	SetMetric(ctx context.Context, metric string) error
	EditProfile(ctx context.Context) error
	flush()
}

const (
	helpGuest  = "Available commands: login, register, go <path>, exit"
	helpMember = "Available commands: dashboard, devices, metrics, profile, go <path>, refresh, " +
		"connect <id>, disconnect <id>, period day|week|month, metric <type>, edit, logout, exit"
)

// runREPL reads commands line by line and dispatches them to a. Handler
// errors are printed and the loop goes on; it ends on EOF, "exit" or
// "quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("vs %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpMember)
			} else {
				printlnFn(helpGuest)
			}

		case "login":
			cmdErr = a.Login(ctx)
		case "register":
			cmdErr = a.Register(ctx)
		case "logout":
			cmdErr = a.Logout(ctx)

		case "dashboard", "devices", "metrics", "profile":
			cmdErr = a.Go(ctx, "/"+cmd)
		case "go":
			if len(args) == 0 {
				printlnFn("Usage: go <path>")
				continue
			}
			cmdErr = a.Go(ctx, args[0])

		case "refresh":
			cmdErr = a.Refresh(ctx)
		case "connect", "disconnect":
			if len(args) == 0 {
				printlnFn(fmt.Sprintf("Usage: %s <device id>", cmd))
				continue
			}
			if cmd == "connect" {
				cmdErr = a.Connect(ctx, args[0])
			} else {
				cmdErr = a.Disconnect(ctx, args[0])
			}

		case "period", "metric":
			if len(args) == 0 {
				printlnFn(fmt.Sprintf("Usage: %s <value>", cmd))
				continue
			}
			if cmd == "period" {
				cmdErr = a.SetPeriod(ctx, args[0])
			} else {
				cmdErr = a.SetMetric(ctx, args[0])
			}

		case "edit":
			cmdErr = a.EditProfile(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		a.flush()
		if cmdErr != nil {
			printlnFn("error:", cmdErr)
		}
		if err != nil {
			return
		}
	}
}
