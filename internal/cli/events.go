package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/google/uuid"

	"github.com/leshachaplin/eventreporter/domain"
	"github.com/leshachaplin/eventreporter/reporter"
)

type installCommand struct {
	fs  *flag.FlagSet
	env Env

	title           string
	installID       string
	platform        string
	sessionID       string
	fingerprintPath string
	session         bool
}

func InstallCommand(env Env) Command {
	return newInstallCommand("install", env, false)
}

func SessionCommand(env Env) Command {
	return newInstallCommand("session", env, true)
}

func newInstallCommand(name string, env Env, session bool) *installCommand {
	cmd := &installCommand{
		fs:      flag.NewFlagSet(name, flag.ContinueOnError),
		env:     env,
		session: session,
	}
	cmd.fs.SetOutput(env.Stderr)

	cmd.fs.StringVar(&cmd.title, "title", "", "Title id")
	cmd.fs.StringVar(&cmd.installID, "install-id", "", "User install id, generated when empty")
	cmd.fs.StringVar(&cmd.platform, "platform", "", "Platform label")
	cmd.fs.StringVar(&cmd.fingerprintPath, "fingerprint", "", "Path to a fingerprint JSON file")
	if session {
		cmd.fs.StringVar(&cmd.sessionID, "session", "", "Session id, generated when empty")
	}

	return cmd
}

func (c *installCommand) Init(args []string) error {
	if err := c.fs.Parse(args); err != nil {
		return err
	}
	if c.title == "" || c.platform == "" {
		return errors.New("-title and -platform are required")
	}
	if c.installID == "" {
		c.installID = uuid.NewString()
	}
	if c.session && c.sessionID == "" {
		c.sessionID = uuid.NewString()
	}
	return nil
}

func (c *installCommand) Run(ctx context.Context) error {
	client, err := c.env.newClient()
	if err != nil {
		return err
	}

	var fingerprint *domain.Fingerprint
	if c.fingerprintPath != "" {
		if fingerprint, err = readFingerprint(c.fingerprintPath); err != nil {
			return err
		}
	}

	var res reporter.Result
	if c.session {
		res = client.RecordSession(ctx, c.title, c.installID, c.platform, c.sessionID, fingerprint)
	} else {
		res = client.RecordInstall(ctx, c.title, c.installID, c.platform, fingerprint)
	}
	return c.env.report(res)
}

func (c *installCommand) Name() string {
	return c.fs.Name()
}

func (c *installCommand) Description() string {
	if c.session {
		return "Send a session (retention) ping"
	}
	return "Send an install record"
}

type purchaseCommand struct {
	fs  *flag.FlagSet
	env Env

	title    string
	purchase domain.Purchase
}

func PurchaseCommand(env Env) Command {
	cmd := &purchaseCommand{
		fs:  flag.NewFlagSet("purchase", flag.ContinueOnError),
		env: env,
	}
	cmd.fs.SetOutput(env.Stderr)

	cmd.fs.StringVar(&cmd.title, "title", "", "Title id")
	cmd.fs.StringVar(&cmd.purchase.GameInstallID, "game-install", "", "Install record id returned by the install call")
	cmd.fs.Float64Var(&cmd.purchase.Amount, "amount", 0, "Purchase amount")
	cmd.fs.StringVar(&cmd.purchase.Currency, "currency", "USD", "Currency code")
	cmd.fs.StringVar(&cmd.purchase.ItemSKU, "sku", "", "Item SKU")
	cmd.fs.StringVar(&cmd.purchase.ItemName, "name", "", "Item name")
	cmd.fs.IntVar(&cmd.purchase.Quantity, "quantity", domain.DefaultQuantity, "Quantity")

	return cmd
}

func (c *purchaseCommand) Init(args []string) error {
	if err := c.fs.Parse(args); err != nil {
		return err
	}
	if c.title == "" || c.purchase.GameInstallID == "" {
		return errors.New("-title and -game-install are required")
	}
	return nil
}

func (c *purchaseCommand) Run(ctx context.Context) error {
	client, err := c.env.newClient()
	if err != nil {
		return err
	}
	return c.env.report(client.RecordPurchase(ctx, c.title, c.purchase))
}

func (c *purchaseCommand) Name() string {
	return c.fs.Name()
}

func (c *purchaseCommand) Description() string {
	return "Send a purchase event"
}

func (e Env) report(res reporter.Result) error {
	if !res.OK() {
		return fmt.Errorf("request failed: %w", res.Err)
	}
	_, err := fmt.Fprintln(e.Stdout, res.Body)
	return err
}
