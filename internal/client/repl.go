package client

import (
	"context"
	"fmt"
	"strings"
)

const (
	guestHelp = "Available commands: feed, expand N, collapse N, register-club, register-student, login-club, login-student, exit"
	userHelp  = "Available commands: feed, expand N, collapse N, whoami, logout, exit"
	clubHelp  = "Available commands: feed, expand N, collapse N, post, whoami, logout, exit"
)

// Run reads commands from the same reader the prompts use, until EOF or
// exit. Command errors are reported by the
// handlers themselves and do not stop the loop.
func (a *App) Run(ctx context.Context) {
	for {
		fmt.Fprintf(a.out, "clubhub [%s]> ", a.status())
		line, err := readLine(a.in)
		if err != nil {
			fmt.Fprintln(a.out)
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		arg := ""
		if len(parts) > 1 {
			arg = parts[1]
		}
		if !a.dispatch(ctx, parts[0], arg) {
			return
		}
		if ctx.Err() != nil {
			return
		}
	}
}

// dispatch runs one command and reports whether the loop should continue.
func (a *App) dispatch(ctx context.Context, cmd, arg string) bool {
	switch cmd {
	case "help":
		switch {
		case a.isClub():
			fmt.Fprintln(a.out, clubHelp)
		case a.isLoggedIn():
			fmt.Fprintln(a.out, userHelp)
		default:
			fmt.Fprintln(a.out, guestHelp)
		}
	case "feed", "f":
		_ = a.Feed(ctx)
	case "expand", "e":
		_ = a.Expand(arg)
	case "collapse", "c":
		_ = a.Collapse(arg)
	case "register-club":
		_ = a.RegisterClub(ctx)
	case "register-student":
		_ = a.RegisterStudent(ctx)
	case "login-club":
		_ = a.LoginClub(ctx)
	case "login-student":
		_ = a.LoginStudent(ctx)
	case "whoami":
		_ = a.WhoAmI(ctx)
	case "post":
		_ = a.PostEvent(ctx)
	case "logout":
		_ = a.Logout(ctx)
	case "exit", "quit":
		fmt.Fprintln(a.out, "Bye!")
		return false
	default:
		fmt.Fprintln(a.out, "Unknown command:", cmd)
	}
	return true
}
