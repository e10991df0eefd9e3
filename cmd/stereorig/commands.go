package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/arrvision/stereorig/internal/capture"
	"github.com/arrvision/stereorig/internal/discovery"
	"github.com/arrvision/stereorig/internal/fleet"
	"github.com/arrvision/stereorig/internal/logging"
	"github.com/arrvision/stereorig/internal/tui"
)

// Command flags
var (
	configPath   string
	scanTimeout  int
	outputFormat string
	serialsFlag  []string
	forceInit    bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default: stereorig.ini next to cwd or binary)")
	rootCmd.PersistentFlags().IntVar(&scanTimeout, "timeout", 5, "Discovery timeout in seconds")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(reconcileCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(wizardCmd)
}

// resolvedConfigPath returns the --config value or the probed default.
func resolvedConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return fleet.DefaultPath()
}

// loadOrNew loads the config file, falling back to factory defaults when
// the file does not exist. Corrupt files (bad numeric values) stay fatal.
func loadOrNew(path string) (cfg *fleet.FleetConfig, created bool, err error) {
	cfg, err = fleet.Load(path)
	if err == nil {
		logging.LogConfigFile(path, "load")
		return cfg, false, nil
	}

	var ve *fleet.ValueError
	if errors.As(err, &ve) {
		return nil, false, err
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, false, err
	}

	cfg = fleet.New()
	cfg.Normalize()
	logging.LogConfigFile(path, "create")
	return cfg, true, nil
}

// detectSerials runs discovery, or returns the --serial override list.
func detectSerials() ([]string, error) {
	if len(serialsFlag) > 0 {
		return serialsFlag, nil
	}
	return discovery.ScanSerials(time.Duration(scanTimeout) * time.Second)
}

// resolveOutputDir fills in the output directory when the config leaves it
// empty: captures land next to the binary.
func resolveOutputDir(cfg *fleet.FleetConfig) {
	if cfg.OutputDir != "" {
		return
	}
	exe, err := os.Executable()
	if err != nil {
		cfg.OutputDir = "captures"
		return
	}
	cfg.OutputDir = filepath.Join(filepath.Dir(exe), "captures")
}

// runDefault is the bare "stereorig" behavior: wizard on a terminal,
// status print otherwise (cron jobs and pipes get the non-interactive path).
func runDefault(cmd *cobra.Command, args []string) error {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		return runWizard(cmd, args)
	}
	return runShow(cmd, args)
}

// scanCmd discovers camera heads on the network
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan for stereo camera heads on the network",
	Long: `Scan for stereo camera heads using mDNS/DNS-SD discovery.

This command listens for mDNS broadcasts from camera heads and displays
all discovered heads with their IP addresses, serial numbers, and metadata.`,
	Example: `  # Scan with the default 5-second timeout
  stereorig scan

  # Longer scan for networks with many heads
  stereorig scan --timeout 15`,
	RunE: runScan,
}

func runScan(cmd *cobra.Command, args []string) error {
	fmt.Printf("Scanning for stereo camera heads (timeout: %ds)...\n\n", scanTimeout)

	heads, err := discovery.ScanForHeads(time.Duration(scanTimeout) * time.Second)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if len(heads) == 0 {
		fmt.Println("No heads found.")
		fmt.Println("\nTroubleshooting:")
		fmt.Println("  - Ensure heads are powered on and linked up")
		fmt.Println("  - Verify your machine is on the rig's network segment")
		fmt.Println("  - Check that the switch passes multicast (mDNS, UDP 5353)")
		fmt.Println("  - Try increasing --timeout for slower networks")
		return nil
	}

	fmt.Printf("Found %d head(s):\n\n", len(heads))

	for i, head := range heads {
		fmt.Printf("%d. %s\n", i+1, head.Hostname)
		fmt.Printf("   Serial: %s\n", head.Serial)
		fmt.Printf("   IP:     %s:%d\n", head.IP, head.Port)
		if head.Model != "" {
			fmt.Printf("   Model:  %s\n", head.Model)
		}
		fmt.Println()
	}

	fmt.Println("Use 'stereorig reconcile' to place detected heads into the fleet")

	return nil
}

// showCmd displays the persisted fleet configuration
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the fleet configuration",
	Long: `Display the persisted fleet configuration.

Reads the INI file and prints the resolved fleet: global capture settings
and every slot with its serial, name, orientation and enabled state.
Per-device parameter overrides are resolved against the fleet defaults
before display.`,
	Example: `  # Human-readable fleet summary
  stereorig show

  # JSON output for scripting
  stereorig show --format json

  # YAML output
  stereorig show --format yaml`,
	RunE: runShow,
}

func init() {
	showCmd.Flags().StringVar(&outputFormat, "format", "detailed", "Output format (detailed, json, yaml)")
}

func runShow(cmd *cobra.Command, args []string) error {
	path := resolvedConfigPath()

	cfg, err := fleet.Load(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("no config at %s (run 'stereorig init' or 'stereorig reconcile' first)", path)
		}
		return err
	}

	switch outputFormat {
	case "json":
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(data))
	case "yaml":
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal YAML: %w", err)
		}
		fmt.Print(string(data))
	case "detailed":
		fallthrough
	default:
		printFleet(path, cfg)
	}

	return nil
}

// printFleet writes the human-readable fleet summary.
func printFleet(path string, cfg *fleet.FleetConfig) {
	fmt.Printf("Fleet configuration (%s)\n\n", path)
	fmt.Printf("  Output dir:      %s\n", valueOr(cfg.OutputDir, "(next to binary)"))
	fmt.Printf("  Capture timeout: %dms\n", cfg.CaptureTimeoutMs)
	fmt.Printf("  Fleet size:      %d\n", cfg.MaxSize)
	fmt.Printf("  Auto-add:        %v\n", cfg.AutoAddDetected)
	fmt.Printf("  Auto-name:       %v (prefix %q)\n\n", cfg.AutoNameFromSerial, cfg.NamePrefix)

	for i, d := range cfg.Devices {
		state := "enabled"
		if !d.Enabled {
			state = "disabled"
		}
		fmt.Printf("  Slot %d: %-16s %s\n", i, d.Name, state)
		fmt.Printf("          serial=%s orient=%s height=%.2fm\n",
			valueOr(d.Serial, "(unassigned)"), d.Orientation, d.Mount.HeightM)

		var overrides []string
		if !fleet.ParamsEqual(d.Params, cfg.DefaultParams) {
			overrides = append(overrides, "params")
		}
		if !fleet.ControlEqual(d.Control, cfg.DefaultControl) {
			overrides = append(overrides, "control")
		}
		if len(overrides) > 0 {
			fmt.Printf("          overrides: %s\n", strings.Join(overrides, ", "))
		}
	}
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// reconcileCmd is the startup path: discover, reconcile, persist, prepare.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Reconcile the fleet against detected heads",
	Long: `Reconcile the persisted fleet against the heads on the network.

Loads the config file (creating factory defaults when missing), discovers
camera heads over mDNS, places detected serials into the fleet (filling
unassigned slots, then appending while under the size cap), persists the
file when anything changed, and prepares the artifact directory tree for
every enabled camera.

This is the command a rig runs at startup.`,
	Example: `  # Discover and reconcile
  stereorig reconcile

  # Reconcile against a fixed serial list (no mDNS)
  stereorig reconcile --serial 23074101 --serial 23074102

  # Longer discovery window
  stereorig reconcile --timeout 15`,
	RunE: runReconcile,
}

func init() {
	reconcileCmd.Flags().StringArrayVar(&serialsFlag, "serial", nil, "Detected serial (repeatable; skips mDNS discovery)")
}

func runReconcile(cmd *cobra.Command, args []string) error {
	path := resolvedConfigPath()

	cfg, created, err := loadOrNew(path)
	if err != nil {
		return err
	}

	serials, err := detectSerials()
	if err != nil {
		return fmt.Errorf("discovery failed: %w", err)
	}
	fmt.Printf("Detected %d head(s): %s\n", len(serials), strings.Join(serials, ", "))

	changed := cfg.Reconcile(serials)
	logging.LogFleetChange(serials, changed)

	if changed || created {
		if err := fleet.Save(path, cfg); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		logging.LogConfigFile(path, "save")
		fmt.Printf("Config written to %s\n", path)
	} else {
		fmt.Println("Fleet unchanged.")
	}

	resolveOutputDir(cfg)
	plan := capture.Plan(cfg)
	if err := capture.EnsureAll(cfg, plan); err != nil {
		return fmt.Errorf("failed to prepare artifact dirs: %w", err)
	}
	fmt.Printf("Prepared artifact dirs for %d camera(s) under %s\n\n", len(plan), cfg.OutputDir)

	printFleet(path, cfg)
	return nil
}

// initCmd writes a factory-default config file
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a factory-default config file",
	Long: `Write a factory-default fleet configuration.

Creates stereorig.ini with the standard three-slot fleet, default mount
geometry and processing parameters. Refuses to overwrite an existing
file unless --force is given.`,
	Example: `  # Create stereorig.ini in the working directory
  stereorig init

  # Overwrite an existing file
  stereorig init --force

  # Explicit location
  stereorig init --config /etc/stereorig/stereorig.ini`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&forceInit, "force", false, "Overwrite an existing config file")
}

func runInit(cmd *cobra.Command, args []string) error {
	path := configPath
	if path == "" {
		path = fleet.ConfigFileName
	}

	if !forceInit {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}

	cfg := fleet.New()
	cfg.Normalize()
	if err := fleet.Save(path, cfg); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	logging.LogConfigFile(path, "create")

	fmt.Printf("Wrote factory defaults to %s\n", path)
	return nil
}

// wizardCmd launches the interactive TUI wizard
var wizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Launch the interactive fleet wizard",
	Long: `Launch an interactive TUI wizard for the fleet configuration.

The wizard lists every slot with its serial, orientation and enabled
state, lets you toggle slots on and off, re-runs discovery and
reconciliation on demand, and saves the result.`,
	Example: `  # Launch the wizard
  stereorig wizard
  # Or simply (wizard is default on a terminal):
  stereorig`,
	RunE: runWizard,
}

func runWizard(cmd *cobra.Command, args []string) error {
	path := resolvedConfigPath()

	scan := func() ([]string, error) {
		return detectSerials()
	}

	if err := tui.Run(path, scan); err != nil {
		return fmt.Errorf("wizard error: %w", err)
	}
	return nil
}
