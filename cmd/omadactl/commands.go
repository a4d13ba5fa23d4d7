package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/mheath/go-omada/omada"
)

var clientsCmd = &cobra.Command{
	Use:   "clients",
	Short: "List the clients connected to the site",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		c, err := newClient(ctx)
		if err != nil {
			return err
		}
		defer c.Logout(ctx)

		clients, err := c.ListClients(ctx)
		if err != nil {
			return err
		}
		w := newTable()
		fmt.Fprintln(w, "MAC\tNAME\tIP\tCONNECTION\tUPTIME")
		for _, nc := range clients {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				nc.Mac, nc.Name, nc.IP, connection(nc), formatUptime(nc.Uptime))
		}
		return w.Flush()
	},
}

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List the site's adopted devices",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		c, err := newClient(ctx)
		if err != nil {
			return err
		}
		defer c.Logout(ctx)

		devices, err := c.ListDevices(ctx)
		if err != nil {
			return err
		}
		w := newTable()
		fmt.Fprintln(w, "MAC\tNAME\tTYPE\tMODEL\tIP\tVERSION\tCLIENTS")
		for _, d := range devices {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%d\n",
				d.Mac, d.Name, d.Type, d.Model, d.IP, d.Version, d.ClientNum)
		}
		return w.Flush()
	},
}

var alertsCmd = &cobra.Command{
	Use:   "alerts",
	Short: "List the site's alerts",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		archived, _ := cmd.Flags().GetBool("archived")
		level, _ := cmd.Flags().GetString("level")
		module, _ := cmd.Flags().GetString("module")
		search, _ := cmd.Flags().GetString("search")

		c, err := newClient(ctx)
		if err != nil {
			return err
		}
		defer c.Logout(ctx)

		alerts, err := c.ListAlerts(ctx, omada.AlertFilter{
			Archived: archived,
			Level:    level,
			Module:   module,
			Search:   search,
		})
		if err != nil {
			return err
		}
		w := newTable()
		fmt.Fprintln(w, "TIME\tLEVEL\tMODULE\tCONTENT")
		for _, a := range alerts {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", formatTime(a.Time), a.Level, a.Module, a.Content)
		}
		return w.Flush()
	},
}

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "List the site's events",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		level, _ := cmd.Flags().GetString("level")
		module, _ := cmd.Flags().GetString("module")
		search, _ := cmd.Flags().GetString("search")

		c, err := newClient(ctx)
		if err != nil {
			return err
		}
		defer c.Logout(ctx)

		events, err := c.ListEvents(ctx, omada.EventFilter{
			Level:  level,
			Module: module,
			Search: search,
		})
		if err != nil {
			return err
		}
		w := newTable()
		fmt.Fprintln(w, "TIME\tLEVEL\tMODULE\tCONTENT")
		for _, e := range events {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", formatTime(e.Time), e.Level, e.Module, e.Content)
		}
		return w.Flush()
	},
}

var rebootCmd = &cobra.Command{
	Use:   "reboot <mac>",
	Short: "Reboot a device",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		c, err := newClient(ctx)
		if err != nil {
			return err
		}
		defer c.Logout(ctx)

		if err := c.RebootDevice(ctx, args[0]); err != nil {
			return err
		}
		fmt.Printf("reboot requested for %s\n", args[0])
		return nil
	},
}

var blockCmd = &cobra.Command{
	Use:   "block <mac>",
	Short: "Block a client from the network",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		c, err := newClient(ctx)
		if err != nil {
			return err
		}
		defer c.Logout(ctx)

		if err := c.BlockClient(ctx, args[0]); err != nil {
			return err
		}
		fmt.Printf("blocked %s\n", args[0])
		return nil
	},
}

var unblockCmd = &cobra.Command{
	Use:   "unblock <mac>",
	Short: "Lift a block placed on a client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		c, err := newClient(ctx)
		if err != nil {
			return err
		}
		defer c.Logout(ctx)

		if err := c.UnblockClient(ctx, args[0]); err != nil {
			return err
		}
		fmt.Printf("unblocked %s\n", args[0])
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Summarize the site: clients, devices, and pending alerts",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		c, err := newClient(ctx)
		if err != nil {
			return err
		}
		defer c.Logout(ctx)

		var (
			clients []omada.NetworkClient
			devices []omada.Device
			alerts  []omada.Alert
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			clients, err = c.ListClients(gctx)
			return err
		})
		g.Go(func() error {
			var err error
			devices, err = c.ListDevices(gctx)
			return err
		})
		g.Go(func() error {
			var err error
			alerts, err = c.ListAlerts(gctx, omada.AlertFilter{})
			return err
		})
		if err := g.Wait(); err != nil {
			return err
		}

		upgradable := 0
		for _, d := range devices {
			if d.NeedUpgrade {
				upgradable++
			}
		}
		fmt.Printf("controller: %s (site %s)\n", cfg.Host, cfg.Site)
		fmt.Printf("clients:    %d\n", len(clients))
		fmt.Printf("devices:    %d (%d upgradable)\n", len(devices), upgradable)
		fmt.Printf("alerts:     %d\n", len(alerts))
		return nil
	},
}

func init() {
	alertsCmd.Flags().Bool("archived", false, "show archived alerts instead of open ones")
	alertsCmd.Flags().String("level", "", "filter by level (Error, Warning, Information)")
	alertsCmd.Flags().String("module", "", "filter by module (Device, Operation, System)")
	alertsCmd.Flags().String("search", "", "filter by search term")
	eventsCmd.Flags().String("level", "", "filter by level (Error, Warning, Information)")
	eventsCmd.Flags().String("module", "", "filter by module (Device, Operation, System)")
	eventsCmd.Flags().String("search", "", "filter by search term")
}

func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
}

// connection describes how a client is attached to the network.
func connection(nc omada.NetworkClient) string {
	if nc.Wireless {
		return fmt.Sprintf("wifi %s (%s)", nc.SSID, nc.ApName)
	}
	if nc.SwitchName != "" {
		return fmt.Sprintf("wired %s port %d", nc.SwitchName, nc.Port)
	}
	return "wired"
}

func formatUptime(seconds int64) string {
	if seconds <= 0 {
		return "-"
	}
	d := time.Duration(seconds) * time.Second
	if d >= 24*time.Hour {
		return fmt.Sprintf("%dd%dh", int(d.Hours())/24, int(d.Hours())%24)
	}
	if d >= time.Hour {
		return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
	}
	return fmt.Sprintf("%dm", int(d.Minutes()))
}

// formatTime renders the controller's millisecond timestamps.
func formatTime(millis int64) string {
	if millis <= 0 {
		return "-"
	}
	return time.UnixMilli(millis).Format("2006-01-02 15:04:05")
}
