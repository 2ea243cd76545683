// Command hoopsctl administers login accounts directly against the database
// configured for the hoops service. It reads the same environment variables.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"github.com/aussiebroadwan/hoops/internal/hoops/app"
	"github.com/aussiebroadwan/hoops/internal/hoops/service"
	"github.com/aussiebroadwan/hoops/pkg/cryptox"
)

var errUsage = errors.New("usage")

func main() {
	os.Exit(exitCode(os.Args[1:]))
}

// exitCode runs one command and maps the outcome to a process exit status
// once every deferred close has run.
func exitCode(args []string) int {
	if len(args) < 1 {
		printUsage(os.Stderr)
		return 2
	}

	cfg, err := app.LoadConfig()
	if err != nil {
		log.Printf("failed to load configuration: %v", err)
		return 1
	}

	ctx := context.Background()
	db, err := app.OpenStore(ctx, cfg)
	if err != nil {
		log.Print(err)
		return 1
	}
	defer db.Close()

	hasher, err := app.NewHasher(cfg)
	if err != nil {
		log.Print(err)
		return 1
	}

	svc := &service.AccountService{Store: db, Hasher: hasher}
	if err := run(ctx, svc, args, os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			printUsage(os.Stderr)
			return 2
		}
		log.Print(err)
		return 1
	}
	return 0
}

func run(ctx context.Context, svc *service.AccountService, args []string, out io.Writer) error {
	command, args := args[0], args[1:]

	switch command {
	case "create":
		if len(args) < 1 || len(args) > 2 {
			return errUsage
		}
		password, generated, err := passwordArg(args)
		if err != nil {
			return err
		}
		acc, err := svc.CreateAccount(ctx, args[0], password, true)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "created %s (%s)\n", acc.Email, acc.ID)
		if generated {
			fmt.Fprintf(out, "password: %s\n", password)
		}

	case "activate", "deactivate":
		if len(args) != 1 {
			return errUsage
		}
		if err := svc.SetActive(ctx, args[0], command == "activate"); err != nil {
			return err
		}
		fmt.Fprintf(out, "%sd %s\n", command, args[0])

	case "set-password":
		if len(args) < 1 || len(args) > 2 {
			return errUsage
		}
		password, generated, err := passwordArg(args)
		if err != nil {
			return err
		}
		if err := svc.ChangePassword(ctx, args[0], password); err != nil {
			return err
		}
		fmt.Fprintf(out, "password changed for %s\n", args[0])
		if generated {
			fmt.Fprintf(out, "password: %s\n", password)
		}

	case "list":
		accounts, err := svc.List(ctx)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tEMAIL\tACTIVE\tCREATED")
		for _, acc := range accounts {
			fmt.Fprintf(tw, "%s\t%s\t%t\t%s\n", acc.ID, acc.Email, acc.IsActive, acc.CreatedAt.UTC().Format(time.RFC3339))
		}
		return tw.Flush()

	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, command)
	}
	return nil
}

// passwordArg returns the second argument, or a generated password when it
// is absent.
func passwordArg(args []string) (string, bool, error) {
	if len(args) == 2 {
		return args[1], false, nil
	}
	password, err := cryptox.GeneratePassword()
	return password, true, err
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `Usage: hoopsctl <command> [arguments]

Commands:
  create <email> [password]        create an active account
  activate <email>                 allow the account to log in
  deactivate <email>               block the account from logging in
  set-password <email> [password]  replace the account password
  list                             list all accounts

A missing password is generated and printed once.`)
}
