// Command client drives the onboarding pipeline from a terminal: it binds a
// Discord identity, captures consent, starts a checkout, and fetches the
// reconciled receipt. Navigation handoffs (the provider's authorize URL and
// the processor's hosted checkout) are printed for the user to open in a
// browser.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"membership-backend-go/internal/discord"
	"membership-backend-go/internal/flow"
	"membership-backend-go/internal/telemetry"
)

const usage = `usage:
  client login                     print the provider authorization URL
  client callback <redirect-url>   complete login from the pasted redirect URL
  client whoami                    show the bound identity
  client logout                    clear the bound identity
  client checkout <plan> [--no-display] [--no-roles]
  client receipt <session-id>      fetch the reconciled receipt
`

// terminalNavigator prints navigation handoffs instead of performing them.
type terminalNavigator struct{}

func (terminalNavigator) ReplaceURL(string) {}

func (terminalNavigator) Navigate(target string) {
	fmt.Println("Open this URL in your browser:")
	fmt.Println("  " + target)
}

func main() {
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to initialize logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	backendURL := envOr("BACKEND_URL", "http://localhost:8080")
	stateDir := envOr("MEMBERSHIP_STATE_DIR", defaultStateDir())

	apiClient := flow.NewClient(backendURL, nil)
	store := flow.NewIdentityStore(stateDir)
	reporter := telemetry.New(logger)
	nav := terminalNavigator{}

	// Only the public half of the OAuth application is needed client-side.
	provider := discord.NewClient(
		os.Getenv("DISCORD_CLIENT_ID"), "",
		envOr("DISCORD_REDIRECT_URI", backendURL+"/auth/callback"),
	)

	binder := flow.NewBinder(apiClient, store, nav, provider.AuthorizeURL, reporter)
	defer binder.Close()

	ctx := context.Background()

	switch os.Args[1] {
	case "login":
		binder.BeginLogin()

	case "callback":
		if len(os.Args) < 3 {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		redirect, err := url.Parse(os.Args[2])
		if err != nil {
			fmt.Fprintln(os.Stderr, "invalid redirect URL:", err)
			os.Exit(1)
		}
		binder.HandleCallback(ctx, redirect)
		if msg := binder.LastError(); msg != "" {
			fmt.Fprintln(os.Stderr, msg)
			os.Exit(1)
		}
		identity := binder.Identity()
		if identity == nil {
			fmt.Fprintln(os.Stderr, "no authorization code found in the URL")
			os.Exit(1)
		}
		fmt.Printf("Logged in as %s#%s\n", identity.Name, identity.Discriminator)

	case "whoami":
		identity := binder.Identity()
		if identity == nil {
			fmt.Println("not logged in")
			return
		}
		fmt.Printf("%s#%s (%s)\n", identity.Name, identity.Discriminator, identity.ID)

	case "logout":
		binder.Logout()
		fmt.Println("logged out")

	case "checkout":
		checkoutFlags := flag.NewFlagSet("checkout", flag.ExitOnError)
		noDisplay := checkoutFlags.Bool("no-display", false, "withhold supporter-display consent")
		noRoles := checkoutFlags.Bool("no-roles", false, "withhold role-grant consent")
		args := os.Args[2:]
		if len(args) == 0 {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		plan := args[0]
		_ = checkoutFlags.Parse(args[1:])

		consent := flow.NewConsent()
		if *noDisplay {
			consent.ToggleDisplay()
		}
		if *noRoles {
			consent.ToggleRoleGrant()
		}

		identity := binder.Identity()
		if !flow.CanCheckout(identity, plan, consent) {
			fmt.Fprintln(os.Stderr, "checkout requires a login, a plan, and role-grant consent")
			os.Exit(1)
		}

		initiator := flow.NewInitiator(apiClient, nav, reporter)
		if err := initiator.Initiate(ctx, plan, identity, consent.Record()); err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}

	case "receipt":
		if len(os.Args) < 3 {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		receipt, err := apiClient.GetReceipt(ctx, os.Args[2])
		if err != nil {
			fmt.Fprintln(os.Stderr, "決済情報の取得に失敗しました。")
			logger.Warn("receipt fetch failed", zap.Error(err))
			os.Exit(1)
		}
		pretty, _ := json.MarshalIndent(receipt, "", "  ")
		fmt.Println(string(pretty))
		if !receipt.Succeeded() {
			fmt.Println("決済ステータスが未確定です。反映まで数分かかる場合があります。")
		}

	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func defaultStateDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(base, "membership-client")
}
