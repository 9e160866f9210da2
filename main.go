package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"pickgrip/internal/config"
	"pickgrip/internal/discovery"
	"pickgrip/internal/domain"
	"pickgrip/internal/eventbus"
	"pickgrip/internal/selectable"
	"pickgrip/internal/ui"
)

// options holds the command line flags
type options struct {
	dir        string
	configPath string
	stdin      bool
	attr       string
	fallback   string
	selected   string
	print      bool
	logFile    string
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(args []string) (*options, *pflag.FlagSet, error) {
	opts := &options{}
	flagSet := pflag.NewFlagSet("pickgrip", pflag.ContinueOnError)
	flagSet.StringVarP(&opts.dir, "dir", "d", "", "directory to list (default: current directory)")
	flagSet.StringVarP(&opts.configPath, "config", "c", "", "config file (default: <dir>/"+config.FileName+")")
	flagSet.BoolVar(&opts.stdin, "stdin", false, "read items from stdin, one per line")
	flagSet.StringVar(&opts.attr, "attr", "", "select items by this property or attribute instead of by index")
	flagSet.StringVar(&opts.fallback, "fallback", "", "value selected when the selection matches no item")
	flagSet.StringVar(&opts.selected, "select", "", "initial selection value")
	flagSet.BoolVar(&opts.print, "print", false, "print the final selection value to stdout")
	flagSet.StringVar(&opts.logFile, "log-file", "pickgrip.log", "log file path")

	if err := flagSet.Parse(args); err != nil {
		return nil, flagSet, err
	}
	if opts.dir == "" && flagSet.NArg() > 0 {
		opts.dir = flagSet.Arg(0)
	}
	return opts, flagSet, nil
}

func run(args []string) error {
	opts, flagSet, err := parseFlags(args)
	if err != nil {
		return err
	}

	targetDir := opts.dir
	if targetDir == "" {
		if targetDir, err = os.Getwd(); err != nil {
			return fmt.Errorf("getting current directory: %w", err)
		}
	}
	absDir, err := filepath.Abs(targetDir)
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}

	// Set up logging
	logFile, err := os.OpenFile(opts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.SetOutput(io.Discard)
	} else {
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	bus := eventbus.New()
	defer bus.Close()

	configSvc := config.NewConfigServiceWithBus(bus)
	configPath := opts.configPath
	var cfg *config.Config
	if configPath == "" {
		configPath = filepath.Join(absDir, config.FileName)
		cfg, err = configSvc.Load(absDir)
	} else {
		cfg, err = configSvc.LoadFromPath(configPath)
	}
	if err != nil {
		return err
	}
	applyFlags(cfg, opts, flagSet)

	list := selectable.New(cfg.Mapper(), bus)
	list.OnActivate(selectable.DisabledGuard(cfg.Selection.DisabledAttribute))
	if cfg.Selection.Selected != nil {
		list.Select(cfg.Selection.Selected)
	}

	// Items are pushed into the list on the UI goroutine only
	var items []*domain.Item
	var discoverySvc discovery.DiscoveryService
	scanRoot := cfg.ScanRoot(filepath.Dir(configPath))
	title := "pickgrip"
	if opts.stdin {
		if items, err = discovery.ReadLines(os.Stdin); err != nil {
			return err
		}
		title += " · stdin"
	} else {
		if err := discovery.Stat(scanRoot); err != nil {
			return err
		}
		discoverySvc = discovery.NewDiscoveryService(bus, discovery.Scanner{
			Root:       scanRoot,
			Pattern:    cfg.Source.Pattern,
			Exclude:    cfg.Source.Exclude,
			MaxDepth:   cfg.Source.MaxDepth,
			ShowHidden: cfg.Source.ShowHidden,
		})
		title += " · " + scanRoot
	}

	model := ui.NewModel(bus, cfg, list, title)
	programOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if opts.stdin {
		// stdin carried the items; keys come from the terminal
		tty, err := os.Open("/dev/tty")
		if err != nil {
			return fmt.Errorf("opening terminal: %w", err)
		}
		defer tty.Close()
		programOpts = append(programOpts, tea.WithInput(tty))
	}
	if opts.print {
		programOpts = append(programOpts, tea.WithOutput(os.Stderr))
	}
	p := tea.NewProgram(model, programOpts...)
	model.SetProgram(p)

	// Forward events to the program
	eventChan := make(chan eventbus.DomainEvent, 100)
	forwardEvent := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		default:
			log.Println("Event channel full, dropping event")
		}
	}
	for _, eventType := range []eventbus.EventType{
		eventbus.EventItemsDiscovered,
		eventbus.EventScanStarted,
		eventbus.EventScanCompleted,
		eventbus.EventSelectionChanged,
		eventbus.EventError,
	} {
		bus.Subscribe(eventType, forwardEvent)
	}
	bus.Subscribe(eventbus.EventItemActivated, func(e eventbus.DomainEvent) {
		if event, ok := e.(domain.ItemActivatedEvent); ok {
			log.Printf("Activated %s (value %v)", event.Item.Name, event.Value)
		}
	})

	go func() {
		for {
			select {
			case event := <-eventChan:
				p.Send(ui.EventMsg{Event: event})
			case <-ctx.Done():
				return
			}
		}
	}()

	if opts.stdin {
		model.Preload(domain.ItemsDiscoveredEvent{Source: "stdin", Items: items})
	} else {
		if err := discoverySvc.StartScan(ctx, scanRoot); err != nil {
			return err
		}
	}

	if os.Getenv("PICKGRIP_E2E_TEST") != "" {
		fmt.Fprintln(os.Stderr, "__READY__")
	}

	log.Printf("Starting UI...")
	_, runErr := p.Run()
	if discoverySvc != nil {
		discoverySvc.StopScan()
	}
	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		return fmt.Errorf("running program: %w", runErr)
	}
	log.Printf("UI exited")

	value, item := model.Result()
	if cfg.UI.RememberSelection && !opts.stdin && value != nil {
		cfg.Selection.Selected = value
		if err := configSvc.SaveToPath(cfg, configPath); err != nil {
			log.Printf("Failed to save config: %v", err)
		} else {
			log.Printf("Config saved to %s", configPath)
		}
	}

	if opts.print {
		if item == nil {
			return ui.ErrNoSelection
		}
		fmt.Fprintln(os.Stdout, value)
	}
	return nil
}

// applyFlags overlays explicitly set flags on the loaded configuration
func applyFlags(cfg *config.Config, opts *options, flagSet *pflag.FlagSet) {
	if flagSet.Changed("attr") {
		cfg.Selection.AttrForSelected = opts.attr
	}
	if flagSet.Changed("fallback") {
		cfg.Selection.Fallback = opts.fallback
	}
	if flagSet.Changed("select") {
		cfg.Selection.Selected = opts.selected
	}
}
