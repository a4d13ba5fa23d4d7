// omadactl is a small command line front end for the go-omada client.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mheath/go-omada/config"
	"github.com/mheath/go-omada/omada"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:           "omadactl",
	Short:         "Inspect and manage a TP-Link Omada controller",
	Long:          "omadactl talks to a TP-Link Omada controller: list clients and devices, read alerts and events, and run device commands.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(cmd, cfgFile)
		if err != nil {
			return err
		}
		cfg = c

		level, err := logrus.ParseLevel(cfg.LogLevel)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
		}
		logrus.SetLevel(level)
		return nil
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "path to the omadactl config file")
	flags.String("host", "", "controller address (host or host:port)")
	flags.String("site", "Default", "controller site")
	flags.String("username", "", "controller username")
	flags.String("password", "", "controller password")
	flags.Bool("verify-ssl", true, "verify the controller's TLS certificate")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		clientsCmd,
		devicesCmd,
		alertsCmd,
		eventsCmd,
		rebootCmd,
		blockCmd,
		unblockCmd,
		statusCmd,
	)
}

// newClient logs in to the configured controller. Callers must Logout.
func newClient(ctx context.Context) (omada.Client, error) {
	var level omada.LoggingLevel
	switch logrus.GetLevel() {
	case logrus.DebugLevel, logrus.TraceLevel:
		level = omada.DebugLevel
	case logrus.WarnLevel:
		level = omada.WarnLevel
	case logrus.ErrorLevel:
		level = omada.ErrorLevel
	default:
		level = omada.InfoLevel
	}
	return omada.NewClient(ctx, &omada.ClientConfig{
		Host:      cfg.Host,
		Site:      cfg.Site,
		User:      cfg.Username,
		Password:  cfg.Password,
		VerifySSL: cfg.VerifySSL,
		Timeout:   cfg.Timeout,
		PageSize:  cfg.PageSize,
		Logger:    omada.NewDefaultLogger(level),
	})
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logrus.Error(err.Error())
		os.Exit(1)
	}
}
