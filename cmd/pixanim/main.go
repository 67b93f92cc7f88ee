package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"text/tabwriter"

	"github.com/san-kum/pixanim/internal/config"
	"github.com/san-kum/pixanim/internal/encode"
	"github.com/san-kum/pixanim/internal/logger"
	"github.com/san-kum/pixanim/internal/session"
	"github.com/san-kum/pixanim/internal/storage"
	"github.com/san-kum/pixanim/internal/tui"
	"github.com/san-kum/pixanim/internal/viz"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configFile string
	preset     string
	gridDim    int
	cellSize   int
	theme      string
	outDir     string
	baseName   string
	delayMs    int
	verbose    bool
	logFile    string
	// demo only
	demoFrames int
)

// main registers the editor and its helper commands and executes the root
// command. It exits with status 1 if command execution returns an error.
func main() {
	rootCmd := &cobra.Command{
		Use:          "pixanim",
		Short:        "pixel-art frame editor with png and gif export",
		SilenceUsage: true,
		RunE:         runEditor,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "grid preset: "+fmt.Sprint(config.ListPresets()))
	pf.IntVar(&gridDim, "grid", 0, "grid dimension (8..64, step 8)")
	pf.IntVar(&cellSize, "cell", 0, "cell size in pixels (5..40, step 5)")
	pf.StringVar(&theme, "theme", "", "chrome theme")
	pf.StringVar(&outDir, "out", "", "export directory")
	pf.StringVar(&baseName, "name", "", "animated export base name")
	pf.IntVar(&delayMs, "delay", 0, "frame delay in milliseconds")
	pf.BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	pf.StringVar(&logFile, "log", "", "log file (editor logs are discarded without it)")

	demoCmd := &cobra.Command{
		Use:   "demo",
		Short: "render a built-in animation to png, svg and gif",
		RunE:  runDemo,
	}
	demoCmd.Flags().IntVar(&demoFrames, "frames", 8, "number of frames")

	inspectCmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "show frames, delays and size of an export",
		Args:  cobra.ExactArgs(1),
		RunE:  inspectFile,
	}

	themesCmd := &cobra.Command{
		Use:   "themes",
		Short: "list chrome themes",
		RunE:  listThemes,
	}

	exportsCmd := &cobra.Command{
		Use:   "exports",
		Short: "list files in the export directory",
		RunE:  listExports,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "show or write configuration",
	}
	configShowCmd := &cobra.Command{
		Use:   "show",
		Short: "print the effective configuration",
		RunE:  showConfig,
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the effective configuration to a file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	}
	configCmd.AddCommand(configShowCmd, configInitCmd)

	rootCmd.AddCommand(demoCmd, inspectCmd, themesCmd, exportsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig starts from the file (or defaults), lets a preset set the grid
// and cell size, then applies explicit flags.
func loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset %q (have %v)", preset, config.ListPresets())
		}
		cfg.GridDimension = p.GridDimension
		cfg.CellSizePx = p.CellSizePx
	}
	if gridDim != 0 {
		cfg.GridDimension = gridDim
	}
	if cellSize != 0 {
		cfg.CellSizePx = cellSize
	}
	if theme != "" {
		cfg.Theme = theme
	}
	if outDir != "" {
		cfg.ExportDir = outDir
	}
	if baseName != "" {
		cfg.ExportBaseName = baseName
	}
	if delayMs != 0 {
		cfg.FrameDelayMs = delayMs
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setup builds the logger and a cancellable context. In editor mode the
// logger writes to --log or nowhere.
func setup(editor bool) (context.Context, func(), error) {
	var l *zap.Logger
	var err error
	switch {
	case editor && logFile == "":
		l = zap.NewNop()
	default:
		l, err = logger.New(verbose, logFile)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	zap.ReplaceGlobals(l)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	ctx = logger.NewContext(ctx, l)
	return ctx, func() {
		stop()
		_ = l.Sync()
	}, nil
}

func runEditor(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx, done, err := setup(true)
	if err != nil {
		return err
	}
	defer done()

	sess, err := session.New(ctx, cfg)
	if err != nil {
		return err
	}
	return tui.Run(ctx, sess, storage.New(cfg.ExportDir))
}

func runDemo(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx, done, err := setup(false)
	if err != nil {
		return err
	}
	defer done()
	log := logger.FromContext(ctx)

	sess, err := session.New(ctx, cfg)
	if err != nil {
		return err
	}
	paintDemo(sess, cfg.GridDimension, demoFrames)

	st := storage.New(cfg.ExportDir)
	still, err := sess.ExportStill()
	if err != nil {
		return err
	}
	stillPath, err := st.Save(still)
	if err != nil {
		return err
	}

	vector, err := sess.ExportSVG()
	if err != nil {
		return err
	}
	vectorPath, err := st.Save(vector)
	if err != nil {
		return err
	}

	res := <-sess.ExportAnimatedAsync()
	if res.Err != nil {
		return res.Err
	}
	animPath, err := st.Save(res.Artifact)
	if err != nil {
		return err
	}

	log.Info("demo exported",
		zap.String("still", stillPath),
		zap.String("vector", vectorPath),
		zap.String("animation", animPath),
		zap.Int("frames", res.Artifact.Frames))
	fmt.Printf("%s\n%s\n%s\n", stillPath, vectorPath, animPath)
	return nil
}

func inspectFile(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	info, err := encode.Inspect(data)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "format\t%s\n", info.Format)
	fmt.Fprintf(w, "size\t%dx%d\n", info.Width, info.Height)
	fmt.Fprintf(w, "frames\t%d\n", info.Frames)
	fmt.Fprintf(w, "colours\t%d\n", info.Colors)
	for i, d := range info.Delays {
		fmt.Fprintf(w, "delay[%d]\t%v\n", i, d)
	}
	return w.Flush()
}

func listThemes(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tBACKGROUND\tFOREGROUND")
	for _, t := range viz.Themes {
		fmt.Fprintf(w, "%s\t%s\t%s\n", t.Name, t.Background, t.Foreground)
	}
	return w.Flush()
}

func listExports(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	entries, err := storage.New(cfg.ExportDir).List()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("no exports found")
		return nil
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Timestamp.After(entries[j].Timestamp) })

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tKIND\tFRAMES\tBYTES\tTIMESTAMP")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n", e.Name, e.Kind, e.Frames, e.Bytes, e.Timestamp.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}

func showConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}

func initConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	path := "pixanim.yaml"
	if len(args) == 1 {
		path = args[0]
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}
