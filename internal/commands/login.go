package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"minitask/internal/backend/googletasks"
	"minitask/internal/config"
	"minitask/internal/exitcode"
	"minitask/internal/output"
	"minitask/internal/service"
)

func init() {
	Register(&LoginCmd{})
}

// LoginCmd implements the login command.
type LoginCmd struct{}

func (c *LoginCmd) Name() string      { return "login" }
func (c *LoginCmd) Aliases() []string { return nil }
func (c *LoginCmd) Synopsis() string  { return "Authenticate with Google for export" }
func (c *LoginCmd) Usage() string     { return "minitask login [common flags]" }
func (c *LoginCmd) NeedsStore() bool  { return false }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *LoginCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if !cfg.HasOAuthClient() {
		fmt.Fprintf(errOut, "error: oauth_client.json not found in %s\n\n", cfg.Dir)
		fmt.Fprint(errOut, oauthSetupText)
		fmt.Fprintf(errOut, "Save the downloaded file as %s and run 'minitask login' again.\n", cfg.OAuthClientPath())
		return exitcode.AuthError
	}

	f := output.New(out, cfg.JSON(), cfg.Quiet)
	if cfg.HasToken() && googletasks.TokenValid(ctx, cfg) {
		f.Success("Already logged in")
		return exitcode.Success
	}

	oauthConfig, err := googletasks.LoadOAuthConfig(cfg)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.AuthError
	}

	token, err := googletasks.Authorize(ctx, oauthConfig, func(authURL string) {
		fmt.Fprintln(errOut, "Open this URL in your browser:")
		fmt.Fprintln(errOut, authURL)
	})
	if err != nil {
		if errors.Is(err, googletasks.ErrCancelled) {
			fmt.Fprintln(errOut, "error: cancelled")
		} else {
			fmt.Fprintf(errOut, "error: %v\n", err)
		}
		return exitcode.AuthError
	}

	if err := cfg.EnsureDir(); err != nil {
		fmt.Fprintf(errOut, "error: failed to create config directory: %v\n", err)
		return exitcode.AuthError
	}
	if err := googletasks.SaveToken(cfg.TokenPath(), token); err != nil {
		fmt.Fprintf(errOut, "error: failed to save token: %v\n", err)
		return exitcode.AuthError
	}

	f.Success("Logged in")
	return exitcode.Success
}

const oauthSetupText = `Export needs OAuth credentials for the Google Tasks API:

1. Go to https://console.cloud.google.com/apis/credentials
2. Create or select a project and enable the Google Tasks API
3. Create an OAuth client ID of type 'Desktop app'
4. Download the JSON file
`
