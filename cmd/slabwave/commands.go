package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/slabwave/internal/analysis"
	"github.com/san-kum/slabwave/internal/automation"
	"github.com/san-kum/slabwave/internal/config"
	"github.com/san-kum/slabwave/internal/export"
	"github.com/san-kum/slabwave/internal/guide"
	"github.com/san-kum/slabwave/internal/physics"
	"github.com/san-kum/slabwave/internal/storage"
	"github.com/san-kum/slabwave/internal/viz"
)

func analyzeModes(cmd *cobra.Command, args []string) error {
	spec, th, opts, err := setup(cmd)
	if err != nil {
		return err
	}

	all, _ := cmd.Flags().GetBool("all")
	var results []*analysis.Result
	if all {
		results, err = analysis.AnalyzeAll(cmd.Context(), spec,
			[]guide.Theory{guide.Ray, guide.Wave},
			[]guide.Polarization{guide.TE, guide.TM}, opts)
	} else {
		var r *analysis.Result
		r, err = analysis.Run(spec, th, opts)
		results = []*analysis.Result{r}
	}
	if err != nil {
		return err
	}

	fmt.Println(viz.SpecSummary(spec))
	for i, r := range results {
		fmt.Println()
		if i > 0 {
			fmt.Println(viz.Separator(60))
		}
		fmt.Println(viz.Header(fmt.Sprintf("%s %s: %d modes", r.Theory, r.Spec.Polarization, len(r.Modes))))
		printResult(r)
	}

	save, _ := cmd.Flags().GetBool("save")
	if !save {
		return nil
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	for _, r := range results {
		runID, err := st.Save(r)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}
	return nil
}

func printResult(r *analysis.Result) {
	if len(r.Modes) == 0 {
		fmt.Println(viz.Subtle.Render("no guided modes"))
	} else {
		fmt.Println(viz.ModeTable(r.Modes))
	}
	if len(r.Skipped) > 0 {
		fmt.Println(viz.ErrorText.Render(fmt.Sprintf("%d brackets skipped (rerun with -v)", len(r.Skipped))))
	}
}

func compareTheories(cmd *cobra.Command, args []string) error {
	spec, _, opts, err := setup(cmd)
	if err != nil {
		return err
	}

	results, err := analysis.AnalyzeAll(cmd.Context(), spec,
		[]guide.Theory{guide.Ray, guide.Wave},
		[]guide.Polarization{spec.Polarization}, opts)
	if err != nil {
		return err
	}
	ray, wave := results[0], results[1]

	fmt.Println(viz.SpecSummary(spec))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\nM\tRAY N_EFF\tWAVE N_EFF\tDELTA")
	n := len(ray.Modes)
	if len(wave.Modes) > n {
		n = len(wave.Modes)
	}
	for i := 0; i < n; i++ {
		rv, wv := "-", "-"
		delta := ""
		if i < len(ray.Modes) {
			rv = strconv.FormatFloat(ray.Modes[i].EffectiveIndex(), 'f', 9, 64)
		}
		if i < len(wave.Modes) {
			wv = strconv.FormatFloat(wave.Modes[i].EffectiveIndex(), 'f', 9, 64)
		}
		if i < len(ray.Modes) && i < len(wave.Modes) {
			delta = fmt.Sprintf("%.2e", ray.Modes[i].EffectiveIndex()-wave.Modes[i].EffectiveIndex())
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", i, rv, wv, delta)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(ray.Modes) == len(wave.Modes) {
		fmt.Println(viz.OKText.Render(fmt.Sprintf("\nboth theories find %d modes", len(ray.Modes))))
	} else {
		fmt.Println(viz.ErrorText.Render(fmt.Sprintf("\nray finds %d modes, wave finds %d", len(ray.Modes), len(wave.Modes))))
	}

	showDiff, _ := cmd.Flags().GetBool("diff")
	if !showDiff {
		return nil
	}
	digits, _ := cmd.Flags().GetInt("digits")
	diff, err := viz.DiffModes("ray", ray.Modes, "wave", wave.Modes, digits)
	if err != nil {
		return err
	}
	if diff == "" {
		fmt.Printf("mode tables agree to %d decimals\n", digits)
		return nil
	}
	fmt.Print(diff)
	return nil
}

func plotField(cmd *cobra.Command, args []string) error {
	spec, th, opts, err := setup(cmd)
	if err != nil {
		return err
	}
	m := 0
	if len(args) == 1 {
		m, err = strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("mode number: %w", err)
		}
	}

	modes, err := analysis.Analyze(spec, th, opts)
	if err != nil {
		return err
	}
	if m < 0 || m >= len(modes) {
		return fmt.Errorf("mode %d not guided (%d modes)", m, len(modes))
	}
	mode := modes[m]
	if mode.Err != nil {
		return mode.Err
	}

	f := analysis.ModeField(spec, mode)
	fmt.Println(viz.PlotField(f, fmt.Sprintf("%s%d transverse (green) and longitudinal (blue), core |x| < %g", spec.Polarization, m, spec.Thickness/2)))
	fmt.Printf("confinement: %.4f\n", f.Confinement())

	path, _ := cmd.Flags().GetString("svg")
	if path == "" {
		return nil
	}
	xs, tr, lg := f.Sample(f.Window(), 400)
	svg := export.PlotToSVG([]export.Series{
		{Name: "transverse", Xs: xs, Ys: tr},
		{Name: "longitudinal", Xs: xs, Ys: normalize(lg)},
	}, 800, 400)
	return os.WriteFile(path, []byte(svg), 0644)
}

func normalize(ys []float64) []float64 {
	peak := 0.0
	for _, y := range ys {
		if y > peak {
			peak = y
		} else if -y > peak {
			peak = -y
		}
	}
	out := make([]float64, len(ys))
	for i, y := range ys {
		if peak > 0 {
			y /= peak
		}
		out[i] = y
	}
	return out
}

func runCoupler(cmd *cobra.Command, args []string) error {
	spec, th, opts, err := setup(cmd)
	if err != nil {
		return err
	}
	n1, _ := cmd.Flags().GetFloat64("neff1")
	n2, _ := cmd.Flags().GetFloat64("neff2")
	transfer, _ := cmd.Flags().GetFloat64("transfer")

	if n1 == 0 || n2 == 0 {
		modes, err := analysis.Analyze(spec, th, opts)
		if err != nil {
			return err
		}
		valid := make([]guide.Mode, 0, len(modes))
		for _, m := range modes {
			if m.Valid() {
				valid = append(valid, m)
			}
		}
		if len(valid) < 2 {
			return fmt.Errorf("need two guided modes for a default coupler, found %d; pass --neff1 and --neff2", len(valid))
		}
		if n1 == 0 {
			n1 = valid[0].EffectiveIndex()
		}
		if n2 == 0 {
			n2 = valid[1].EffectiveIndex()
		}
	}

	c, err := physics.NewCoupler(n1, n2, spec.Wavelength, transfer)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "beta_a\t%.6g\n", c.Beta1())
	fmt.Fprintf(w, "beta_b\t%.6g\n", c.Beta2())
	fmt.Fprintf(w, "delta\t%.6g\n", c.Delta())
	fmt.Fprintf(w, "kappa\t%.6g\n", c.Kappa())
	fmt.Fprintf(w, "psi\t%.6g\n", c.Psi())
	fmt.Fprintf(w, "coupling length\t%.6g\n", c.CouplingLength())
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Println()
	fmt.Println(viz.PlotCoupler(c))

	path, _ := cmd.Flags().GetString("svg")
	if path == "" {
		return nil
	}
	zs, pa, pb := c.Sample(2*c.CouplingLength(), 400)
	svg := export.PlotToSVG([]export.Series{
		{Name: "P_a", Xs: zs, Ys: pa},
		{Name: "P_b", Xs: zs, Ys: pb},
	}, 800, 400)
	return os.WriteFile(path, []byte(svg), 0644)
}

func sweepThickness(cmd *cobra.Command, args []string) error {
	spec, th, opts, err := setup(cmd)
	if err != nil {
		return err
	}
	from, _ := cmd.Flags().GetFloat64("from")
	to, _ := cmd.Flags().GetFloat64("to")
	steps, _ := cmd.Flags().GetInt("steps")

	points, err := analysis.ThicknessSweep(cmd.Context(), spec, th, from, to, steps, opts)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "THICKNESS\tMODES\tN_EFF")
	for _, p := range points {
		neff := make([]string, len(p.NEff))
		for i, n := range p.NEff {
			neff[i] = strconv.FormatFloat(n, 'f', 6, 64)
		}
		fmt.Fprintf(w, "%.4g\t%d\t%s\n", p.Thickness, p.Modes, strings.Join(neff, " "))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Println()
	fmt.Println(viz.PlotSweep(points))
	return nil
}

func plotCurve(cmd *cobra.Command, args []string) error {
	spec, th, opts, err := setup(cmd)
	if err != nil {
		return err
	}
	points, _ := cmd.Flags().GetInt("points")
	clip, _ := cmd.Flags().GetFloat64("clip")

	xs, ys, err := analysis.Curve(spec, th, opts.CutoffFloor, points)
	if err != nil {
		return err
	}
	if len(xs) == 0 {
		fmt.Println("mode equation has an empty domain")
		return nil
	}
	if clip <= 0 {
		v := spec.V()
		clip = 4 * v * v
		if th == guide.Ray {
			clip = 1.5
		}
	}

	variable := "U"
	if th == guide.Ray {
		variable = "psi"
	}
	caption := fmt.Sprintf("%s %s mode equation, %s in [%.4g, %.4g]", th, spec.Polarization, variable, xs[0], xs[len(xs)-1])
	fmt.Println(viz.PlotCurve(ys, clip, caption))

	path, _ := cmd.Flags().GetString("svg")
	if path == "" {
		return nil
	}
	svg := export.PlotToSVG([]export.Series{{Name: caption, Xs: xs, Ys: viz.Clip(ys, clip)}}, 800, 400)
	return os.WriteFile(path, []byte(svg), 0644)
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTHEORY\tPOL\tTIME\tV\tMODES\tN_EFF0")

	for _, run := range runs {
		neff := "-"
		if v, ok := run.Summary["n_eff_fundamental"]; ok {
			neff = strconv.FormatFloat(v, 'f', 6, 64)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.4f\t%d/%d\t%s\n",
			run.ID,
			run.Theory,
			run.Spec.Polarization,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.V,
			run.Valid,
			run.Modes,
			neff,
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	modes, err := st.LoadModes(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("theory: %s\n", meta.Theory)
	fmt.Printf("time: %s\n\n", meta.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Println(viz.SpecSummary(meta.Spec))
	fmt.Println()
	if len(modes) == 0 {
		fmt.Println("no guided modes")
		return nil
	}
	fmt.Println(viz.ModeTable(modes))
	return nil
}

// output returns the --out file or stdout.
func output(cmd *cobra.Command) (io.Writer, func() error, error) {
	path, _ := cmd.Flags().GetString("out")
	if path == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	modes, err := st.LoadModes(args[0])
	if err != nil {
		return err
	}

	w, done, err := output(cmd)
	if err != nil {
		return err
	}
	if err := export.WriteModesCSV(w, modes); err != nil {
		done()
		return err
	}
	return done()
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	modes, err := st.LoadModes(args[0])
	if err != nil {
		return err
	}
	r := &analysis.Result{
		Spec:    meta.Spec,
		Theory:  meta.Theory,
		Modes:   modes,
		Samples: meta.Samples,
	}

	w, done, err := output(cmd)
	if err != nil {
		return err
	}
	if err := export.WriteJSON(w, r); err != nil {
		done()
		return err
	}
	return done()
}

func listPresets(cmd *cobra.Command, args []string) error {
	families := config.ListFamilies()
	if len(args) == 1 {
		families = []string{args[0]}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tTHEORY\tWAVEGUIDE")
	for _, family := range families {
		names := config.ListPresets(family)
		if len(names) == 0 {
			fmt.Printf("no presets for family: %s\n", family)
			continue
		}
		for _, name := range names {
			p := config.GetPreset(family, name)
			fmt.Fprintf(w, "%s/%s\t%s\t%s\n", family, name, p.Theory, p.Waveguide)
		}
	}
	return w.Flush()
}

func runBatch(cmd *cobra.Command, args []string) error {
	_, _, opts, err := setup(cmd)
	if err != nil {
		return err
	}
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("scenario: %s\n", scenario.Name)
	results, err := automation.RunScenario(cmd.Context(), scenario, opts, st, log.Default())
	for _, sr := range results {
		fmt.Println()
		fmt.Println(viz.Header(fmt.Sprintf("step %d: %s %s", sr.Step, sr.Result.Theory, sr.Result.Spec)))
		printResult(sr.Result)
		if sr.RunID != "" {
			fmt.Printf("run id: %s\n", sr.RunID)
		}
	}
	return err
}

func browse(cmd *cobra.Command, args []string) error {
	spec, th, opts, err := setup(cmd)
	if err != nil {
		return err
	}
	if err := spec.Validate(); err != nil {
		return err
	}
	name, _ := cmd.Flags().GetString("theme")
	if _, ok := viz.GetTheme(name); !ok {
		return fmt.Errorf("unknown theme %q (have %s)", name, strings.Join(viz.ThemeNames(), ", "))
	}
	cache, err := analysis.NewCache(256, opts)
	if err != nil {
		return err
	}
	return viz.RunBrowser(spec, th, cache, name)
}
