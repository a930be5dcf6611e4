package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/openshelf/gateway/config"
	"github.com/openshelf/gateway/internal/adapters/libraryapi"
	"github.com/openshelf/gateway/internal/bootstrap"
	"github.com/openshelf/gateway/internal/domain/auth"
	"github.com/openshelf/gateway/internal/ports"
)

type commandFn func(ctx *commandContext, args []string) error

type command struct {
	name        string
	description string
	run         commandFn
}

type commandContext struct {
	Ctx    context.Context
	Logger *slog.Logger
	Config config.AppConfig
}

func main() {
	logger := bootstrap.InitLogger()

	if len(os.Args) < 2 {
		if err := printUsage(); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when no command is provided
	}

	cmdName := os.Args[1]
	cmd, ok := commands()[cmdName]
	if !ok {
		if err := writef(os.Stderr, "unknown command %q\n\n", cmdName); err != nil {
			logger.Error("print unknown command message failed", "error", err)
		}
		if err := printUsage(); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when command is unknown
	}

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		logger.ErrorContext(context.Background(), "load config", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal configuration load failure to shell scripts
	}

	cmdCtx := &commandContext{
		Ctx:    context.Background(),
		Logger: logger,
		Config: cfg,
	}
	if runErr := cmd.run(cmdCtx, os.Args[2:]); runErr != nil {
		logger.ErrorContext(cmdCtx.Ctx, "command failed", "command", cmdName, "error", runErr)
		os.Exit(1) //nolint:forbidigo // CLI must propagate command execution failure to callers
	}
}

func commands() map[string]command {
	return map[string]command{
		"login": {
			name:        "login",
			description: "Authenticate against the library backend and print the issued credential",
			run:         runLogin,
		},
		"whoami": {
			name:        "whoami",
			description: "Verify a credential and print the session it maps to",
			run:         runWhoami,
		},
		"check-role": {
			name:        "check-role",
			description: "Ask the backend whether a credential is authenticated and an admin",
			run:         runCheckRole,
		},
		"logout": {
			name:        "logout",
			description: "Invalidate a credential on the backend",
			run:         runLogout,
		},
	}
}

func printUsage() error {
	if err := writef(os.Stdout, "Usage: gatewayctl <command> [flags]\n\n"); err != nil {
		return err
	}
	if err := writef(os.Stdout, "Available commands:\n"); err != nil {
		return err
	}
	for _, c := range commands() {
		if err := writef(os.Stdout, "  %-12s %s\n", c.name, c.description); err != nil {
			return err
		}
	}
	return nil
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func newClient(ctx *commandContext) (*libraryapi.Client, error) {
	return libraryapi.New(libraryapi.Options{
		BaseURL: ctx.Config.Backend.BaseURL,
		Timeout: ctx.Config.Backend.Timeout,
		Logger:  ctx.Logger,
	})
}

func credentialFromToken(ctx *commandContext, token string) (ports.Credential, error) {
	if token == "" {
		return ports.Credential{}, errors.New("-token is required")
	}
	return ports.CredentialFromCookies([]*http.Cookie{{
		Name:  ctx.Config.HTTP.CredentialCookie,
		Value: token,
	}}), nil
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return writef(os.Stdout, "%s\n", out)
}

func runLogin(ctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" || *password == "" {
		return errors.New("-email and -password are required")
	}

	client, err := newClient(ctx)
	if err != nil {
		return err
	}

	result, err := client.Login(ctx.Ctx, ports.LoginInput{Email: *email, Password: *password})
	if err != nil {
		var loginErr *auth.LoginError
		if errors.As(err, &loginErr) {
			return fmt.Errorf("login rejected (%s): %s", loginErr.Kind, loginErr.Message)
		}
		return err
	}

	cookieName := ctx.Config.HTTP.CredentialCookie
	token := ""
	for _, c := range result.SetCookies {
		if c.Name == cookieName {
			token = c.Value
		}
	}

	return printJSON(map[string]any{
		"user":  result.User,
		"token": token,
	})
}

func runWhoami(ctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("whoami", flag.ContinueOnError)
	token := fs.String("token", "", "credential cookie value")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cred, err := credentialFromToken(ctx, *token)
	if err != nil {
		return err
	}

	client, err := newClient(ctx)
	if err != nil {
		return err
	}

	result, err := client.Verify(ctx.Ctx, cred)
	if err != nil {
		return err
	}
	if !result.Authenticated {
		return printJSON(map[string]any{"authenticated": false})
	}
	return printJSON(map[string]any{
		"authenticated": true,
		"user":          result.User,
	})
}

func runCheckRole(ctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("check-role", flag.ContinueOnError)
	token := fs.String("token", "", "credential cookie value")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cred, err := credentialFromToken(ctx, *token)
	if err != nil {
		return err
	}

	client, err := newClient(ctx)
	if err != nil {
		return err
	}

	rc, err := client.VerifyRole(ctx.Ctx, cred)
	if err != nil {
		return err
	}
	return printJSON(rc)
}

func runLogout(ctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("logout", flag.ContinueOnError)
	token := fs.String("token", "", "credential cookie value")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cred, err := credentialFromToken(ctx, *token)
	if err != nil {
		return err
	}

	client, err := newClient(ctx)
	if err != nil {
		return err
	}

	if _, err := client.Logout(ctx.Ctx, cred); err != nil {
		return err
	}
	return writef(os.Stdout, "logged out\n")
}
