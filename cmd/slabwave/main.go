package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/san-kum/slabwave/internal/analysis"
	"github.com/san-kum/slabwave/internal/config"
	"github.com/san-kum/slabwave/internal/guide"
	"github.com/san-kum/slabwave/internal/viz"
)

var (
	dataDir string
	verbose bool

	// Waveguide
	core       float64
	substrate  float64
	cover      float64
	thickness  float64
	wavelength float64
	pol        string
	theory     string

	// Solver
	samples int
	tol     float64
	maxIter int
	floor   float64

	// Config file
	configFile string
	// Preset as family/name
	preset string
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("slabwave: ")

	rootCmd := &cobra.Command{
		Use:   "slabwave",
		Short: "guided modes of planar dielectric waveguides",
		RunE:  browse,
	}
	themeHelp := "browser color theme (" + strings.Join(viz.ThemeNames(), ", ") + ")"
	rootCmd.Flags().String("theme", viz.ThemeSilica.Name, themeHelp)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", config.DataDir(), "data directory (env "+config.DataDirEnv+")")
	pf.BoolVarP(&verbose, "verbose", "v", false, "log skipped brackets")
	pf.Float64Var(&core, "core", config.DefaultCore, "core index n1")
	pf.Float64Var(&substrate, "substrate", config.DefaultSubstrate, "substrate index")
	pf.Float64Var(&cover, "cover", 0, "cover index (0 = same as substrate)")
	pf.Float64Var(&thickness, "thickness", config.DefaultThickness, "core thickness")
	pf.Float64Var(&wavelength, "wavelength", config.DefaultWavelength, "free-space wavelength, same unit as thickness")
	pf.StringVar(&pol, "pol", "TE", "polarization (TE or TM)")
	pf.StringVar(&theory, "theory", config.DefaultTheory, "ray or wave")
	pf.IntVar(&samples, "samples", 0, "scan grid cells (0 = default)")
	pf.Float64Var(&tol, "tol", 0, "root tolerance (0 = default)")
	pf.IntVar(&maxIter, "max-iter", 0, "bisection iteration cap (0 = default)")
	pf.Float64Var(&floor, "floor", analysis.DefaultCutoffFloor, "smallest normalized propagation constant b counted as guided")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset waveguide (family/name)")

	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "find the guided modes of a waveguide",
		RunE:  analyzeModes,
	}
	analyzeCmd.Flags().Bool("save", false, "store the run in the data directory")
	analyzeCmd.Flags().Bool("all", false, "solve both theories and polarizations")

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "compare ray and wave theory on the same waveguide",
		RunE:  compareTheories,
	}
	compareCmd.Flags().Bool("diff", false, "print a unified diff of the mode tables")
	compareCmd.Flags().Int("digits", 6, "decimals compared in the diff")

	fieldCmd := &cobra.Command{
		Use:   "field [m]",
		Short: "plot the field profile of mode m",
		Args:  cobra.MaximumNArgs(1),
		RunE:  plotField,
	}
	fieldCmd.Flags().String("svg", "", "also write an SVG plot to this path")

	couplerCmd := &cobra.Command{
		Use:   "coupler",
		Short: "power exchange between two coupled guides",
		RunE:  runCoupler,
	}
	couplerCmd.Flags().Float64("neff1", 0, "effective index of guide a (0 = fundamental mode of the waveguide)")
	couplerCmd.Flags().Float64("neff2", 0, "effective index of guide b (0 = next mode of the waveguide)")
	couplerCmd.Flags().Float64("transfer", 0.5, "peak fraction of power transferred")
	couplerCmd.Flags().String("svg", "", "also write an SVG plot to this path")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "mode count and effective indices against core thickness",
		RunE:  sweepThickness,
	}
	sweepCmd.Flags().Float64("from", 0.1, "smallest thickness")
	sweepCmd.Flags().Float64("to", 10, "largest thickness")
	sweepCmd.Flags().Int("steps", 40, "number of thicknesses")

	curveCmd := &cobra.Command{
		Use:   "curve",
		Short: "plot the mode equation over its domain",
		RunE:  plotCurve,
	}
	curveCmd.Flags().Int("points", 400, "samples across the domain")
	curveCmd.Flags().Float64("clip", 0, "hide values above this magnitude (0 = automatic)")
	curveCmd.Flags().String("svg", "", "also write an SVG plot to this path")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export the modes of a run to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringP("out", "o", "", "output file (default stdout)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a run to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringP("out", "o", "", "output file (default stdout)")

	presetsCmd := &cobra.Command{
		Use:   "presets [family]",
		Short: "list available waveguide presets",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	batchCmd := &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "run a scripted list of analyses",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}

	browseCmd := &cobra.Command{
		Use:   "browse",
		Short: "interactive mode browser",
		RunE:  browse,
	}
	browseCmd.Flags().String("theme", viz.ThemeSilica.Name, themeHelp)

	rootCmd.AddCommand(analyzeCmd, compareCmd, fieldCmd, couplerCmd, sweepCmd, curveCmd, listCmd, showCmd, exportCSVCmd, exportJSONCmd, presetsCmd, batchCmd, browseCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolve builds the effective configuration: preset, then config file,
// then explicitly set flags.
func resolve(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		family, name, ok := strings.Cut(preset, "/")
		p := config.GetPreset(family, name)
		if !ok || p == nil {
			return nil, fmt.Errorf("unknown preset: %s (see slabwave presets)", preset)
		}
		c := *p
		cfg = &c
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("core") {
		cfg.Waveguide.Core = core
	}
	if flags.Changed("substrate") {
		cfg.Waveguide.Substrate = substrate
	}
	if flags.Changed("cover") {
		cfg.Waveguide.Cover = cover
	}
	if flags.Changed("thickness") {
		cfg.Waveguide.Thickness = thickness
	}
	if flags.Changed("wavelength") {
		cfg.Waveguide.Wavelength = wavelength
	}
	if flags.Changed("pol") {
		p, err := guide.ParsePolarization(pol)
		if err != nil {
			return nil, err
		}
		cfg.Waveguide.Polarization = p
	}
	if flags.Changed("theory") {
		cfg.Theory = theory
	}
	if flags.Changed("samples") {
		cfg.Solver.Samples = samples
	}
	if flags.Changed("tol") {
		cfg.Solver.Tol = tol
	}
	if flags.Changed("max-iter") {
		cfg.Solver.MaxIter = maxIter
	}
	if flags.Changed("floor") {
		cfg.Solver.CutoffFloor = floor
	}
	return cfg, nil
}

// setup resolves the configuration into the inputs of an analysis.
func setup(cmd *cobra.Command) (guide.Spec, guide.Theory, analysis.Options, error) {
	cfg, err := resolve(cmd)
	if err != nil {
		return guide.Spec{}, "", analysis.Options{}, err
	}
	th, err := cfg.GetTheory()
	if err != nil {
		return guide.Spec{}, "", analysis.Options{}, err
	}
	opts := cfg.AnalysisOptions()
	if !verbose {
		opts.Scan.Logger = log.New(io.Discard, "", 0)
	}
	return cfg.Waveguide, th, opts, nil
}
