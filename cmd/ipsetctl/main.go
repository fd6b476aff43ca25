package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/danmuck/ipsetctl/internal/config"
	"github.com/danmuck/ipsetctl/internal/ipset"
	"github.com/danmuck/ipsetctl/internal/logging"
)

const version = "0.1.0"

var (
	configPath string

	rootCmd = &cobra.Command{
		Use:   "ipsetctl",
		Short: "manage kernel ipset membership over netlink",
		Long: `ipsetctl issues add, del and flush commands against kernel-resident
netfilter sets by speaking raw netlink directly, with no ipset binary
involved. Sets must already exist; ipsetctl only manages their entries.`,
		SilenceUsage: true,
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the ipsetctl version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("ipsetctl v%s\n", version)
		},
	}

	addCmd = &cobra.Command{
		Use:   "add [set] <ip-or-mac>",
		Short: "Add an IP or MAC entry to a set",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(args, false)
		},
	}

	delCmd = &cobra.Command{
		Use:   "del [set] <ip>",
		Short: "Remove an IP entry from a set",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(args, true)
		},
	}

	flushCmd = &cobra.Command{
		Use:   "flush [set]",
		Short: "Remove all entries from a set",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runFlush,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to TOML config file")
	rootCmd.AddCommand(addCmd, delCmd, flushCmd, versionCmd)
}

func loadConfig() (config.Config, error) {
	if configPath == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, err
	}
	if cfg.LogLevel != "" {
		logging.SetLevel(cfg.LogLevel)
	}
	return cfg, nil
}

// resolveTarget maps (optional set arg, remaining args) onto a kernel set
// name, falling back to the configured default set.
func resolveTarget(cfg config.Config, args []string, want int) (string, []string, error) {
	if len(args) == want+1 {
		return cfg.ResolveSet(args[0]), args[1:], nil
	}
	if cfg.DefaultSet == "" {
		return "", nil, fmt.Errorf("no set given and no default_set configured")
	}
	return cfg.DefaultSet, args, nil
}

func newClient(cfg config.Config) (*ipset.Client, *ipset.Conn, error) {
	conn, err := ipset.Dial(
		ipset.WithRetryLimit(cfg.RetryLimit),
		ipset.WithRetryInterval(cfg.RetryInterval),
	)
	if err != nil {
		return nil, nil, err
	}
	client := ipset.NewClient(conn,
		ipset.WithLogger(logging.New("ipsetctl")),
		ipset.WithCapacity(cfg.BufferCapacity),
	)
	return client, conn, nil
}

func runApply(args []string, remove bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	set, rest, err := resolveTarget(cfg, args, 1)
	if err != nil {
		return err
	}
	client, conn, err := newClient(cfg)
	if err != nil {
		return err
	}
	defer conn.Close()
	return client.Apply(set, rest[0], remove)
}

func runFlush(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	set, _, err := resolveTarget(cfg, args, 0)
	if err != nil {
		return err
	}
	client, conn, err := newClient(cfg)
	if err != nil {
		return err
	}
	defer conn.Close()
	return client.Flush(set)
}

func main() {
	logging.ConfigureRuntime()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
