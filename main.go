package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"gioui.org/f32"
	"golang.org/x/term"

	"github.com/pleimann/gesture-bridge/internal/config"
	"github.com/pleimann/gesture-bridge/internal/dispatch"
	"github.com/pleimann/gesture-bridge/internal/gesture"
	"github.com/pleimann/gesture-bridge/internal/hid"
	"github.com/pleimann/gesture-bridge/internal/input"
	"github.com/pleimann/gesture-bridge/internal/script"
	"github.com/pleimann/gesture-bridge/internal/trace"
	"github.com/pleimann/gesture-bridge/internal/ui"
)

const Version = "0.1.0"

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "replay":
			runReplay(os.Args[2:])
			return
		case "ranges":
			runRanges(os.Args[2:])
			return
		case "list-devices":
			runListDevices(os.Args[2:])
			return
		case "set-device", "select-device":
			runSetDevice(os.Args[2:])
			return
		case "set-orientation":
			runSetOrientation(os.Args[2:])
			return
		case "init":
			runInit(os.Args[2:])
			return
		case "help", "-h", "--help":
			printUsage()
			os.Exit(0)
		}
	}

	version := flag.Bool("version", false, "print version and exit")

	flag.Usage = printUsage
	flag.Parse()

	if *version {
		ui.PrintVersion(Version)
		os.Exit(0)
	}

	printUsage()
	os.Exit(1)
}

func printUsage() {
	ui.PrintUsage(Version)
}

func interactive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// runReplay handles the replay subcommand
func runReplay(args []string) {
	fs := flag.NewFlagSet("replay", flag.ExitOnError)
	configPath := fs.String("config", "config.yaml", "path to configuration file")
	pngPath := fs.String("png", "", "write a PNG trace of pointer paths")
	realtime := fs.Bool("realtime", false, "wait between steps according to at_ms")
	watch := fs.Bool("watch", false, "apply config file changes while replaying")
	quiet := fs.Bool("quiet", false, "only print the summary")
	verbose := fs.Bool("verbose", false, "enable verbose logging")
	fs.Usage = func() {
		ui.PrintReplayUsage()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() != 1 {
		ui.PrintFatalError("Invalid arguments", "Exactly one script file must be provided")
		os.Exit(1)
	}
	scriptPath := fs.Arg(0)

	if *watch && !config.Exists(*configPath) {
		ui.PrintFatalError("Cannot watch config", fmt.Sprintf("%s does not exist; run init first", *configPath))
		os.Exit(1)
	}

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		ui.PrintFatalError("Failed to load config", err.Error())
		os.Exit(1)
	}

	sc, err := script.Load(scriptPath)
	if err != nil {
		ui.PrintFatalError("Failed to load script", err.Error())
		os.Exit(1)
	}

	if *verbose {
		log.Printf("Loaded configuration from %s", *configPath)
		log.Printf("Device: id=%d VendorID=0x%04X, ProductID=0x%04X",
			cfg.Device.ID, cfg.Device.VendorID, cfg.Device.ProductID)
		log.Printf("Display: %dx%d, orientation %d", cfg.Display.Width, cfg.Display.Height, cfg.Display.Orientation)
		log.Printf("Script %q: %d steps", sc.Name, len(sc.Steps))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	app := newApp(cfg, appOptions{
		verbose:  *verbose,
		quiet:    *quiet,
		realtime: *realtime,
		pngPath:  *pngPath,
	})

	if *watch {
		watcher, err := config.NewWatcher(*configPath)
		if err != nil {
			ui.PrintFatalError("Failed to watch config", err.Error())
			os.Exit(1)
		}
		watcher.OnReload(app.queueReload)
		watcher.Start()
		defer watcher.Stop()
	}

	go func() {
		<-sigChan
		if *verbose {
			log.Println("Received shutdown signal")
		}
		cancel()
	}()

	if err := app.Run(ctx, sc); err != nil {
		ui.PrintFatalError("Replay failed", err.Error())
		os.Exit(1)
	}

	if *verbose {
		log.Println("Shutdown complete")
	}
}

// runRanges handles the ranges subcommand
func runRanges(args []string) {
	fs := flag.NewFlagSet("ranges", flag.ExitOnError)
	configPath := fs.String("config", "config.yaml", "path to configuration file")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		ui.PrintFatalError("Failed to load config", err.Error())
		os.Exit(1)
	}

	info := input.DeviceInfo{ID: cfg.Device.ID, Name: cfg.Device.Name}
	if info.Name == "" && cfg.Device.VendorID != 0 {
		if device, err := hid.FindDevice(cfg.Device.VendorID, cfg.Device.ProductID); err == nil && device != nil {
			info.Name = ui.DeviceName(toUIDevices([]hid.DeviceInfo{*device})[0])
		}
	}
	gesture.NewConverter(cfg, nil).PopulateMotionRanges(&info)

	fmt.Println()
	fmt.Println(ui.Title(fmt.Sprintf("Device %d %s", info.ID, info.Name)))
	fmt.Println(ui.FormatRanges(info.Ranges))
}

// runListDevices handles the list-devices subcommand
func runListDevices(args []string) {
	fs := flag.NewFlagSet("list-devices", flag.ExitOnError)
	all := fs.Bool("all", false, "list every HID device, not only touchpads")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	devices, err := hid.ListDevices()
	if err != nil {
		ui.PrintFatalError("Failed to list devices", err.Error())
		os.Exit(1)
	}

	title := "HID Devices"
	if !*all {
		devices = hid.FilterTouchpads(devices)
		title = "Touchpads"
	}
	ui.PrintDeviceList(toUIDevices(devices), title)
}

func toUIDevices(devices []hid.DeviceInfo) []ui.DeviceInfo {
	out := make([]ui.DeviceInfo, len(devices))
	for i, d := range devices {
		out[i] = ui.DeviceInfo{
			VendorID:     d.VendorID,
			ProductID:    d.ProductID,
			Manufacturer: d.Manufacturer,
			Product:      d.Product,
			Touchpad:     d.IsTouchpad(),
		}
	}
	return out
}

// runSetDevice handles the set-device subcommand
func runSetDevice(args []string) {
	fs := flag.NewFlagSet("set-device", flag.ExitOnError)
	configPath := fs.String("config", "config.yaml", "path to configuration file")
	fs.Usage = func() {
		ui.PrintSetDeviceUsage()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	remaining := fs.Args()

	var vendorID, productID uint16
	var name string

	if len(remaining) >= 2 {
		vid, err := parseID(remaining[0])
		if err != nil {
			ui.PrintFatalError("Invalid vendor_id", fmt.Sprintf("%q: %v", remaining[0], err))
			os.Exit(1)
		}
		pid, err := parseID(remaining[1])
		if err != nil {
			ui.PrintFatalError("Invalid product_id", fmt.Sprintf("%q: %v", remaining[1], err))
			os.Exit(1)
		}
		vendorID = vid
		productID = pid

		device, err := hid.FindDevice(vendorID, productID)
		if err != nil {
			ui.PrintFatalError("Failed to look up device", err.Error())
			os.Exit(1)
		}
		if device == nil {
			fmt.Println(ui.Warning(fmt.Sprintf("No device 0x%04X:0x%04X is connected; saving anyway", vendorID, productID)))
		} else {
			name = ui.DeviceName(toUIDevices([]hid.DeviceInfo{*device})[0])
		}
	} else if len(remaining) == 1 {
		ui.PrintFatalError("Invalid arguments", "Both vendor_id and product_id must be provided, or neither")
		os.Exit(1)
	} else {
		if !interactive() {
			ui.PrintFatalError("Invalid arguments", "vendor_id and product_id are required when not running in a terminal")
			os.Exit(1)
		}
		device, err := selectDevice()
		if err != nil {
			ui.PrintFatalError("Device selection failed", err.Error())
			os.Exit(1)
		}
		if device == nil {
			fmt.Println(ui.Muted("No device selected"))
			os.Exit(0)
		}
		vendorID = device.VendorID
		productID = device.ProductID
		name = ui.DeviceName(*device)
	}

	if !config.Exists(*configPath) {
		if err := config.CreateDefaultConfig(*configPath, 0); err != nil {
			ui.PrintFatalError("Failed to create config", err.Error())
			os.Exit(1)
		}
	}
	if err := config.UpdateDeviceIDs(*configPath, vendorID, productID); err != nil {
		ui.PrintFatalError("Failed to update config", err.Error())
		os.Exit(1)
	}
	ui.PrintDeviceUpdated(*configPath, vendorID, productID, name)
}

// parseID parses a vendor or product ID from string (supports hex with 0x prefix or decimal)
func parseID(s string) (uint16, error) {
	s = strings.TrimSpace(s)

	var val uint64
	var err error

	if strings.HasPrefix(strings.ToLower(s), "0x") {
		val, err = strconv.ParseUint(s[2:], 16, 16)
	} else {
		val, err = strconv.ParseUint(s, 10, 16)
	}

	if err != nil {
		return 0, err
	}

	return uint16(val), nil
}

// selectDevice displays an interactive touchpad selection menu using huh
func selectDevice() (*ui.DeviceInfo, error) {
	devices, err := hid.ListTouchpads()
	if err != nil {
		return nil, fmt.Errorf("failed to list devices: %w", err)
	}

	if len(devices) == 0 {
		return nil, fmt.Errorf("no touchpads found")
	}

	return ui.SelectDevice(toUIDevices(devices))
}

// runSetOrientation handles the set-orientation subcommand
func runSetOrientation(args []string) {
	fs := flag.NewFlagSet("set-orientation", flag.ExitOnError)
	configPath := fs.String("config", "config.yaml", "path to configuration file")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	var degrees int
	switch fs.NArg() {
	case 1:
		d, err := strconv.Atoi(fs.Arg(0))
		if err != nil {
			ui.PrintFatalError("Invalid orientation", fmt.Sprintf("%q: %v", fs.Arg(0), err))
			os.Exit(1)
		}
		degrees = d
	case 0:
		if !interactive() {
			ui.PrintFatalError("Invalid arguments", "degrees are required when not running in a terminal")
			os.Exit(1)
		}
		current := 0
		if cfg, err := config.LoadOrDefault(*configPath); err == nil {
			current = cfg.Display.Orientation
		}
		d, ok, err := ui.SelectOrientation(current)
		if err != nil {
			ui.PrintFatalError("Orientation selection failed", err.Error())
			os.Exit(1)
		}
		if !ok {
			fmt.Println(ui.Muted("No orientation selected"))
			os.Exit(0)
		}
		degrees = d
	default:
		ui.PrintFatalError("Invalid arguments", "Expected at most one argument: 0, 90, 180 or 270")
		os.Exit(1)
	}

	if _, err := input.RotationFromDegrees(degrees); err != nil {
		ui.PrintFatalError("Invalid orientation", err.Error())
		os.Exit(1)
	}

	if config.Exists(*configPath) {
		if err := config.UpdateOrientation(*configPath, degrees); err != nil {
			ui.PrintFatalError("Failed to update config", err.Error())
			os.Exit(1)
		}
		ui.PrintOrientationUpdated(*configPath, degrees, false)
		return
	}
	if err := config.CreateDefaultConfig(*configPath, degrees); err != nil {
		ui.PrintFatalError("Failed to create config", err.Error())
		os.Exit(1)
	}
	ui.PrintOrientationUpdated(*configPath, degrees, true)
}

// runInit handles the init subcommand
func runInit(args []string) {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	configPath := fs.String("config", "config.yaml", "path to configuration file")
	force := fs.Bool("force", false, "overwrite an existing config file")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if config.Exists(*configPath) && !*force {
		ui.PrintFatalError("Config already exists", fmt.Sprintf("%s exists; use -force to overwrite", *configPath))
		os.Exit(1)
	}
	if err := config.CreateDefaultConfig(*configPath, 0); err != nil {
		ui.PrintFatalError("Failed to create config", err.Error())
		os.Exit(1)
	}
	fmt.Println(ui.Success("Configuration created at " + *configPath))
}

type appOptions struct {
	verbose  bool
	quiet    bool
	realtime bool
	pngPath  string
}

type App struct {
	opts appOptions

	converter  *gesture.Converter
	dispatcher *dispatch.Dispatcher
	verifier   *dispatch.Verifier
	recorder   *dispatch.Recorder
	tracer     *trace.Renderer

	// reloads funnels watcher callbacks into the replay loop
	reloads chan *config.Config
}

// cursorLog reports cursor updates when verbose logging is enabled
type cursorLog struct{}

func (cursorLog) SetPosition(p f32.Point) {
	log.Printf("Cursor at (%.1f, %.1f)", p.X, p.Y)
}

func newApp(cfg *config.Config, opts appOptions) *App {
	app := &App{
		opts:     opts,
		verifier: dispatch.NewVerifier(),
		recorder: dispatch.NewRecorder(),
		reloads:  make(chan *config.Config, 1),
	}

	var cursor gesture.CursorController
	if opts.verbose {
		cursor = cursorLog{}
	}
	app.converter = gesture.NewConverter(cfg, cursor)

	app.dispatcher = dispatch.NewDispatcher(app.verifier, app.recorder)
	if !opts.quiet {
		app.dispatcher.Add(ui.NewEventPrinter(os.Stdout))
	}
	if opts.pngPath != "" {
		width, height := cfg.Display.Width, cfg.Display.Height
		if width <= 0 || height <= 0 {
			width, height = 1920, 1080
		}
		app.tracer = trace.NewRenderer(width, height)
		app.dispatcher.Add(app.tracer)
	}

	if opts.verbose {
		log.Printf("Dispatching to %d listeners", app.dispatcher.Count())
	}

	return app
}

// queueReload hands a reloaded config to the replay loop, replacing any
// reload that has not been applied yet.
func (a *App) queueReload(cfg *config.Config) {
	for {
		select {
		case a.reloads <- cfg:
			return
		default:
		}
		select {
		case <-a.reloads:
		default:
		}
	}
}

// Run replays every step of the script, then resets the converter so that
// no pointer is left down.
func (a *App) Run(ctx context.Context, sc *script.Script) error {
	start := time.Now()
	var now time.Duration

	for i := range sc.Steps {
		step := &sc.Steps[i]

		if err := a.waitFor(ctx, start, step.At()); err != nil {
			return err
		}
		if err := a.applyReload(step.At()); err != nil {
			return err
		}

		now = step.At()
		if err := a.runStep(now, a.readTime(start, now), step); err != nil {
			return fmt.Errorf("step %d (%s): %w", i, step.Kind(), err)
		}
	}

	return a.finish(now, len(sc.Steps))
}

// waitFor blocks until the step time in realtime mode, applying config
// reloads while it waits.
func (a *App) waitFor(ctx context.Context, start time.Time, at time.Duration) error {
	if !a.opts.realtime {
		return ctx.Err()
	}

	timer := time.NewTimer(time.Until(start.Add(at)))
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case cfg := <-a.reloads:
			if err := a.reconfigure(time.Since(start), cfg); err != nil {
				return err
			}
		case <-timer.C:
			return nil
		}
	}
}

func (a *App) applyReload(when time.Duration) error {
	select {
	case cfg := <-a.reloads:
		return a.reconfigure(when, cfg)
	default:
		return nil
	}
}

func (a *App) reconfigure(when time.Duration, cfg *config.Config) error {
	if a.opts.verbose {
		log.Printf("Applying reloaded config: orientation %d", cfg.Display.Orientation)
	}
	return a.dispatcher.Dispatch(a.converter.Reconfigure(when, when, cfg))
}

func (a *App) readTime(start time.Time, when time.Duration) time.Duration {
	if a.opts.realtime {
		return time.Since(start)
	}
	return when
}

func (a *App) runStep(when, readTime time.Duration, step *script.Step) error {
	var events []input.MotionEvent

	switch {
	case step.Kind() == script.KindReset:
		events = a.converter.Reset(when, readTime)
	case step.Kind() == script.KindExpire:
		events = a.converter.Expire(when, readTime)
	case step.Configures():
		// settings never change under an open session, same as a config reload
		events = a.converter.Reset(when, readTime)
		if err := a.configure(step); err != nil {
			return err
		}
	default:
		g, err := step.Gesture()
		if err != nil {
			return err
		}
		if a.opts.verbose {
			log.Printf("Gesture: %s", g)
		}
		events = a.converter.HandleGesture(when, readTime, g)
	}

	return a.dispatcher.Dispatch(events)
}

func (a *App) configure(step *script.Step) error {
	switch step.Kind() {
	case script.KindOrientation:
		r, err := step.Rotation()
		if err != nil {
			return err
		}
		if a.opts.verbose {
			log.Printf("Orientation set to %s", r)
		}
		a.converter.SetOrientation(r)
	case script.KindDisplay:
		if a.opts.verbose {
			log.Printf("Display set to %.0fx%.0f", step.Display.Width, step.Display.Height)
		}
		a.converter.SetDisplaySize(step.Display.Width, step.Display.Height)
	case script.KindAxes:
		x, y, err := step.AxisInfo()
		if err != nil {
			return err
		}
		if a.opts.verbose {
			log.Printf("Axes set to x %s, y %s", x, y)
		}
		a.converter.SetAxisInfo(x, y)
	default:
		return fmt.Errorf("%q step does not configure the converter", step.Kind())
	}
	return nil
}

func (a *App) finish(now time.Duration, steps int) error {
	if err := a.dispatcher.Dispatch(a.converter.Reset(now, now)); err != nil {
		return fmt.Errorf("final reset: %w", err)
	}
	if err := a.verifier.Finish(); err != nil {
		return err
	}

	if a.tracer != nil {
		if err := a.tracer.SavePNG(a.opts.pngPath); err != nil {
			return err
		}
	}

	if !a.opts.quiet {
		fmt.Println()
		fmt.Println(ui.FormatDump("Converter state", a.converter.Dump()))
	}
	ui.PrintReplaySummary(steps, a.recorder.Len(), a.opts.pngPath)
	return nil
}
