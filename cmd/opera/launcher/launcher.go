package launcher

import (
	"errors"

	"github.com/rony4d/go-opera-psb/flags"
	"gopkg.in/urfave/cli.v1"
)

var app = flags.NewApp()

func init() {
	app.Action = runAction
}

// runAction builds the node config from CLI flags/config file, wires up the
// root logger (text/JSON, verbosity, optional Sentry hook), and logs a
// startup line. The node itself is not started yet.
func runAction(ctx *cli.Context) error {
	cfg := MakeAllConfigs(ctx)
	log := SetupLogging(cfg.Node.Logging)
	log.WithField("network", cfg.Opera.NetworkName).Info("opera-asset launcher configured")
	return nil
}

// Launch parses flags, runs config/logging setup via runAction, and reports
// that node startup itself is not implemented yet.
func Launch(args []string) error {
	if err := app.Run(args); err != nil {
		return err
	}
	return errors.New("opera launcher not implemented yet")
}
