package main

import (
	"fmt"
	stdlog "log"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/san-kum/phasekit/internal/config"
	"github.com/san-kum/phasekit/internal/phase"
	"github.com/san-kum/phasekit/internal/storage"
	"github.com/san-kum/phasekit/internal/viz"
)

var (
	settings = viper.New()
	logger   = logr.Discard()

	// mixture selection and state overrides
	preset      string
	configFile  string
	temperature float64
	density     float64
	moleFracs   string
	massFracs   string
	basis       string

	// sweep
	sweepFrom  float64
	sweepTo    float64
	sweepSteps int

	snapshot  int
	plotSpecs []string
	outFile   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "phasekit",
		Short:         "multi-species phase state toolkit",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			stdr.SetVerbosity(settings.GetInt("verbosity"))
			logger = stdr.New(stdlog.New(os.Stderr, "", stdlog.LstdFlags)).WithName("phasekit")
		},
	}

	rootCmd.PersistentFlags().String("data", ".phasekit", "checkpoint directory")
	rootCmd.PersistentFlags().IntP("verbosity", "v", 0, "log verbosity")
	cobra.CheckErr(bindSettings(rootCmd.PersistentFlags(), "data", "verbosity"))
	settings.SetEnvPrefix("PHASEKIT")
	settings.AutomaticEnv()

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in mixtures",
		RunE:  listPresets,
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "print the state of a mixture",
		RunE:  showState,
	}
	addMixtureFlags(showCmd)
	showCmd.Flags().StringVar(&basis, "basis", "mole", "fraction basis (mole|mass)")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "save a temperature sweep as a checkpoint",
		RunE:  runSweep,
	}
	addMixtureFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 300, "start temperature (K)")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 2000, "end temperature (K)")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 20, "number of snapshots")

	dumpCmd := &cobra.Command{
		Use:   "dump-config [path]",
		Short: "write the selected mixture as yaml",
		Args:  cobra.ExactArgs(1),
		RunE:  dumpConfig,
	}
	addMixtureFlags(dumpCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list checkpoints",
		RunE:  listCheckpoints,
	}

	restoreCmd := &cobra.Command{
		Use:   "restore [id]",
		Short: "restore a snapshot and print it",
		Args:  cobra.ExactArgs(1),
		RunE:  restoreCheckpoint,
	}
	restoreCmd.Flags().IntVar(&snapshot, "index", -1, "snapshot index (negative counts from the end)")
	restoreCmd.Flags().StringVar(&basis, "basis", "mole", "fraction basis (mole|mass)")

	plotCmd := &cobra.Command{
		Use:   "plot [id]",
		Short: "plot temperature and mass fractions across snapshots",
		Args:  cobra.ExactArgs(1),
		RunE:  plotCheckpoint,
	}
	plotCmd.Flags().StringSliceVar(&plotSpecs, "species", nil, "species to plot (default: first 4)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [id]",
		Short: "export checkpoint to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	viewCmd := &cobra.Command{
		Use:   "view [id]",
		Short: "browse checkpoint snapshots",
		Args:  cobra.ExactArgs(1),
		RunE:  viewCheckpoint,
	}

	rootCmd.AddCommand(presetsCmd, showCmd, sweepCmd, dumpCmd, listCmd, restoreCmd, plotCmd, exportJSONCmd, viewCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// bindSettings binds each named flag into settings. A missing flag is an
// error rather than a silent loss of its env override.
func bindSettings(flags *pflag.FlagSet, names ...string) error {
	for _, name := range names {
		f := flags.Lookup(name)
		if f == nil {
			return fmt.Errorf("no flag %q to bind", name)
		}
		if err := settings.BindPFlag(name, f); err != nil {
			return fmt.Errorf("bind %s: %w", name, err)
		}
	}
	return nil
}

func addMixtureFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&preset, "preset", config.DefaultMixture, "built-in mixture")
	cmd.Flags().StringVar(&configFile, "config", "", "mixture file (yaml), overrides --preset")
	cmd.Flags().Float64Var(&temperature, "T", 0, "temperature (K)")
	cmd.Flags().Float64Var(&density, "rho", 0, "density (kg/m^3)")
	cmd.Flags().StringVar(&moleFracs, "X", "", "mole fractions, e.g. \"O2:1, N2:3.76\"")
	cmd.Flags().StringVar(&massFracs, "Y", "", "mass fractions")
	cmd.MarkFlagsMutuallyExclusive("X", "Y")
}

func store() *storage.Store {
	return storage.New(settings.GetString("data")).WithLogger(logger.WithName("storage"))
}

func loadMixture() (*config.Config, error) {
	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		return cfg, nil
	}
	cfg := config.GetPreset(preset)
	if cfg == nil {
		return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
	}
	return cfg, nil
}

// buildPhase applies the config's init state, then the flag overrides in
// the same composition, temperature, density order.
func buildPhase() (*config.Config, *phase.Phase, error) {
	cfg, err := loadMixture()
	if err != nil {
		return nil, nil, err
	}
	p, err := cfg.NewPhase(phase.WithLogger(logger.WithName("phase")))
	if err != nil {
		return nil, nil, err
	}

	overrides := config.InitStateConfig{
		Temperature:   temperature,
		Density:       density,
		MoleFractions: moleFracs,
		MassFractions: massFracs,
	}
	if err := overrides.Apply(p); err != nil {
		return nil, nil, err
	}
	return cfg, p, nil
}

func parseBasis() (viz.Basis, error) {
	switch strings.ToLower(basis) {
	case "mole", "x":
		return viz.MoleBasis, nil
	case "mass", "y":
		return viz.MassBasis, nil
	}
	return 0, fmt.Errorf("unknown basis: %s", basis)
}

func printState(title string, p *phase.Phase) error {
	b, err := parseBasis()
	if err != nil {
		return err
	}
	fmt.Println(viz.Title.Render(title))
	fmt.Println(viz.Panel.Render(viz.RenderState(p, b, 30)))
	fmt.Printf("%s %.6g C/kmol\n", viz.MetricLabel.Render("charge density"), p.ChargeDensity())
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSPECIES\tCOMPOSITION")
	for _, name := range config.ListPresets() {
		cfg := config.GetPreset(name)
		names, _, _ := cfg.Tables()
		fmt.Fprintf(w, "%s\t%s\t%s\n", name, strings.Join(names, " "), cfg.InitState.MoleFractions)
	}
	return w.Flush()
}

func showState(cmd *cobra.Command, args []string) error {
	cfg, p, err := buildPhase()
	if err != nil {
		return err
	}
	return printState(cfg.Mixture, p)
}

func runSweep(cmd *cobra.Command, args []string) error {
	if sweepSteps < 2 {
		return fmt.Errorf("steps must be at least 2, got %d", sweepSteps)
	}
	cfg, p, err := buildPhase()
	if err != nil {
		return err
	}

	states := make([][]float64, 0, sweepSteps)
	for i := 0; i < sweepSteps; i++ {
		t := sweepFrom + (sweepTo-sweepFrom)*float64(i)/float64(sweepSteps-1)
		p.SetTemperature(t)
		states = append(states, p.SaveState(nil))
	}

	st := store()
	if err := st.Init(); err != nil {
		return err
	}
	names, weights, charges := cfg.Tables()
	id, err := st.Save(storage.Checkpoint{
		Mixture:          cfg.Mixture,
		Species:          names,
		MolecularWeights: weights,
		Charges:          charges,
		States:           states,
	})
	if err != nil {
		return err
	}

	fmt.Printf("checkpoint id: %s\n", id)
	fmt.Printf("snapshots: %d (%.1f K → %.1f K)\n", len(states), sweepFrom, sweepTo)
	return nil
}

func dumpConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadMixture()
	if err != nil {
		return err
	}
	if moleFracs != "" || massFracs != "" {
		cfg.InitState.MoleFractions, cfg.InitState.MassFractions = moleFracs, massFracs
	}
	if temperature > 0 {
		cfg.InitState.Temperature = temperature
	}
	if density > 0 {
		cfg.InitState.Density = density
	}
	if _, err := cfg.NewPhase(); err != nil {
		return err
	}
	return config.Save(args[0], cfg)
}

func listCheckpoints(cmd *cobra.Command, args []string) error {
	runs, err := store().List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no checkpoints found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMIXTURE\tTIME\tSPECIES\tSNAPSHOTS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\n",
			run.ID,
			run.Mixture,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			len(run.Species),
			run.Snapshots,
		)
	}
	return w.Flush()
}

// openCheckpoint loads a checkpoint and a phase built from its species
// tables.
func openCheckpoint(id string) (*storage.Metadata, [][]float64, *phase.Phase, error) {
	st := store()
	meta, err := st.Load(id)
	if err != nil {
		return nil, nil, nil, err
	}
	states, err := st.LoadStates(id)
	if err != nil {
		return nil, nil, nil, err
	}

	cfg := config.FromTables(meta.Mixture, meta.Species, meta.MolecularWeights, meta.Charges)
	p, err := cfg.NewPhase(phase.WithLogger(logger.WithName("phase")))
	if err != nil {
		return nil, nil, nil, err
	}
	return meta, states, p, nil
}

func restoreCheckpoint(cmd *cobra.Command, args []string) error {
	meta, states, p, err := openCheckpoint(args[0])
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("checkpoint %s has no snapshots", meta.ID)
	}

	idx := snapshot
	if idx < 0 {
		idx += len(states)
	}
	if idx < 0 || idx >= len(states) {
		return fmt.Errorf("snapshot index %d out of range [0, %d)", snapshot, len(states))
	}
	if err := p.RestoreState(states[idx]); err != nil {
		return err
	}
	return printState(fmt.Sprintf("%s  snapshot %d/%d", meta.ID, idx+1, len(states)), p)
}

func plotCheckpoint(cmd *cobra.Command, args []string) error {
	meta, states, p, err := openCheckpoint(args[0])
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to plot")
	}

	names := plotSpecs
	if len(names) == 0 {
		names = p.SpeciesNames()
		if len(names) > 4 {
			names = names[:4]
		}
	}

	temps := make([]float64, len(states))
	series := make([][]float64, len(names))
	for i := range series {
		series[i] = make([]float64, len(states))
	}
	for i, s := range states {
		if err := p.RestoreState(s); err != nil {
			return fmt.Errorf("snapshot %d: %w", i, err)
		}
		temps[i] = p.Temperature()
		for j, name := range names {
			series[j][i] = p.MassFractionByName(name)
		}
	}

	fmt.Printf("checkpoint: %s\n", meta.ID)
	fmt.Printf("mixture: %s\n", meta.Mixture)
	fmt.Printf("snapshots: %d\n\n", len(states))

	fmt.Println(asciigraph.Plot(temps,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("temperature (K)"),
	))
	fmt.Println()

	for j, name := range names {
		if _, ok := p.SpeciesIndex(name); !ok {
			logger.Info("species not in checkpoint, plotting zeros", "species", name)
		}
		fmt.Println(asciigraph.Plot(series[j],
			asciigraph.Height(6),
			asciigraph.Width(80),
			asciigraph.Caption("Y_"+name),
		))
		fmt.Println()
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := store()
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	states, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}

	if outFile == "" {
		return storage.ExportJSON(os.Stdout, meta, states)
	}
	f, err := os.Create(outFile)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := storage.ExportJSON(f, meta, states); err != nil {
		return err
	}
	fmt.Printf("exported %d snapshots to %s\n", len(states), outFile)
	return nil
}

func viewCheckpoint(cmd *cobra.Command, args []string) error {
	meta, states, p, err := openCheckpoint(args[0])
	if err != nil {
		return err
	}
	return viz.RunBrowser(p, meta, states)
}
