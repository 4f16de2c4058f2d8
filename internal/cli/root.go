package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

func (a *App) getStatus() string {
	if a.userEmail != "" {
		return fmt.Sprintf("(%s)", a.userEmail)
	}
	return ""
}

// Root runs the read-eval-print loop. Command handlers report their own
// errors; the loop only dispatches.
func (a *App) Root(ctx context.Context) {

	fmt.Println("Welcome to NoteKeeper CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Printf("nk %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Println("Available commands: (l)ist, add, view <id>, delete <id>, sync, fetch, logout, exit")
			} else {
				fmt.Println("Available commands: register, login, tokenlogin, exit")
			}

		case "register":
			_ = a.Register(ctx)
		case "login":
			_ = a.Login(ctx)
		case "tokenlogin":
			_ = a.LoginWithToken(ctx)
		case "add":
			_ = a.addNote(ctx)
		case "l", "list":
			_ = a.list(ctx, args)
		case "view":
			_ = a.view(ctx, args)
		case "delete":
			_ = a.deleteNote(ctx, args)
		case "sync":
			_ = a.syncPending(ctx)
		case "fetch":
			_ = a.fetch(ctx)
		case "logout":
			_ = a.Logout(ctx)
		case "exit", "quit":
			fmt.Println("Bye!")
			return
		default:
			fmt.Println("Unknown command:", cmd)
		}
	}
}
