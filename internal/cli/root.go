package cli

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/tcheinen/bandwhich/internal/logger"
	"github.com/tcheinen/bandwhich/internal/probe"
	"github.com/tcheinen/bandwhich/internal/ui"
)

var (
	intervalFlag      time.Duration
	noResolveFlag     bool
	interfacesFlag    []string
	allInterfacesFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "bandwhich",
	Short: "Live bandwidth utilization by process, connection and remote address",
	Long: `bandwhich shows current network utilization in the terminal, broken
down three ways: by connection, by owning process, and by remote address.

Utilization is derived from kernel socket tables and interface byte
counters; no packet capture and no elevated privileges are required,
though process names may be missing without them.

Examples:
  bandwhich
  bandwhich --interval 2s
  bandwhich --interface eth0 --interface wlan0
  bandwhich --no-resolve`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDashboard()
	},
}

func init() {
	rootCmd.Flags().DurationVarP(&intervalFlag, "interval", "n", time.Second, "sampling interval")
	rootCmd.Flags().BoolVar(&noResolveFlag, "no-resolve", false, "show raw addresses, skip reverse DNS")
	rootCmd.Flags().StringArrayVarP(&interfacesFlag, "interface", "i", nil, "only monitor these interfaces (repeatable)")
	rootCmd.Flags().BoolVarP(&allInterfacesFlag, "all-interfaces", "a", false, "include loopback and virtual interfaces")
}

// SetVersionInfo records build-time version info on the root command.
func SetVersionInfo(version string) {
	rootCmd.Version = version
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runDashboard() error {
	log := logger.NewEnvLogger("[bandwhich]")

	filter := probe.NewInterfaceFilter(interfacesFlag, allInterfacesFlag)
	sampler := probe.NewSampler(filter, log)

	var resolver *probe.Resolver
	if !noResolveFlag {
		resolver = probe.NewResolver(log)
		defer resolver.Close()
	}

	p := tea.NewProgram(
		ui.NewModel(sampler, resolver, intervalFlag),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
