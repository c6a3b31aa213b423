package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jessevdk/go-flags"

	"github.com/jask/jaskwallet/internal/config"
	"github.com/jask/jaskwallet/internal/database"
	"github.com/jask/jaskwallet/internal/database/repository"
	"github.com/jask/jaskwallet/internal/engine"
	"github.com/jask/jaskwallet/internal/logging"
	"github.com/jask/jaskwallet/internal/platform"
	"github.com/jask/jaskwallet/internal/prefs"
	"github.com/jask/jaskwallet/internal/secrets"
	"github.com/jask/jaskwallet/internal/service"
	"github.com/jask/jaskwallet/internal/store"
	"github.com/jask/jaskwallet/internal/testdata"
	"github.com/jask/jaskwallet/internal/tui"
)

// Version is set with -ldflags.
var Version = "dev"

var log = logging.Logger(logging.Main)

type options struct {
	ConfigFile  string `short:"C" long:"configfile" description:"Path to configuration file"`
	AppData     string `short:"A" long:"appdata" description:"Directory for wallet data and logs"`
	DebugLevel  string `short:"d" long:"debuglevel" description:"Logging level {trace, debug, info, warn, error, critical}"`
	ShowVersion bool   `short:"V" long:"version" description:"Display version information and exit"`
	ResetWallet bool   `long:"resetwallet" description:"Erase the vault, stored credential and flags, then exit"`
	DemoData    int    `long:"demodata" description:"Record N sample transactions for the restored wallet, then exit"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return nil
		}
		return err
	}
	if opts.ShowVersion {
		fmt.Printf("jaskwallet version %s\n", Version)
		return nil
	}

	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		return err
	}
	if opts.AppData != "" {
		cfg.Data.Dir = opts.AppData
	}
	if opts.DebugLevel != "" {
		cfg.Log.Level = opts.DebugLevel
	}

	if err := os.MkdirAll(cfg.Data.Dir, 0o700); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	if err := logging.InitRotator(filepath.Join(cfg.Data.Dir, "logs"), cfg.Log.MaxRolls); err != nil {
		return err
	}
	defer logging.Close()
	if err := logging.SetLogLevels(cfg.Log.Level); err != nil {
		return err
	}
	useLoggers()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := database.Open(filepath.Join(cfg.Data.Dir, "wallet.db"))
	if err != nil {
		return err
	}
	defer db.Close()
	if err := database.RunMigrations(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	flagStore, err := prefs.Open(filepath.Join(cfg.Data.Dir, "prefs.db"))
	if err != nil {
		return err
	}
	defer flagStore.Close()

	passcodeEnv := cfg.Security.PasscodeEnv
	creds := secrets.New(filepath.Join(cfg.Data.Dir, "secrets"), func() string {
		return os.Getenv(passcodeEnv)
	}, cfg.Security.Biometry)

	if opts.ResetWallet {
		return resetWallet(ctx, db, creds, flagStore)
	}

	engineOpts := engine.Options{
		HTTPClient:      &http.Client{Timeout: 15 * time.Second},
		DefaultProvider: cfg.Network.Provider,
		RateURL:         cfg.Currency.RateURL,
		Currency:        cfg.Currency.Code,
		IPFSGateway:     cfg.Gateways.Default,
	}
	if cfg.Network.RPCURL != "" {
		engineOpts.StatusEndpoints = map[string]string{cfg.Network.Provider: cfg.Network.RPCURL}
	}
	if err := database.SeedDefaults(ctx, db, engine.SeedSettings(engineOpts)); err != nil {
		return fmt.Errorf("seed defaults: %w", err)
	}
	e := engine.New(db, engineOpts)
	st := store.New(e, repository.NewSettingsRepo(db))

	if opts.DemoData > 0 {
		return seedDemo(ctx, e, opts.DemoData)
	}

	gateways, err := service.LoadGateways(cfg.Gateways.File)
	if err != nil {
		return err
	}
	exportDir := filepath.Join(cfg.Data.Dir, "exports")
	if err := os.MkdirAll(exportDir, 0o700); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}

	router := tui.NewRouter()
	deps := tui.Deps{
		AppName: cfg.App.Name,
		Restore: &service.RestoreService{
			Vault:       e.Keyring,
			Credentials: creds,
			Flags:       flagStore,
			Nav:         router,
		},
		Settings: &service.SettingsService{
			State:       st,
			Credentials: creds,
			Nav:         router,
		},
		Advanced: &service.AdvancedService{
			Transactions: e.Transactions,
			Preferences:  e.Preferences,
			Network:      e.Network,
			Store:        st,
			Prober:       &service.GatewayProber{Timeout: cfg.Gateways.ProbeTimeout},
			Gateways:     gateways,
			Nav:          router,
		},
		Diagnostics: &service.DiagnosticsService{
			State:    st,
			Keyrings: e.Keyring,
			Sharer:   &platform.FileSharer{Dir: exportDir},
			App:      service.AppInfo{Name: cfg.App.Name, Version: cfg.App.Version, Build: cfg.App.Build},
			Dir:      exportDir,
		},
		State:        st,
		Transactions: e.Transactions,
		Users:        flagStore,
	}

	go refresh(ctx, e)

	log.Infof("Starting %s %s (data %s)", cfg.App.Name, Version, cfg.Data.Dir)
	p := tea.NewProgram(tui.NewModel(ctx, deps, router), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	log.Infof("Shutdown complete")
	return nil
}

func useLoggers() {
	prefs.UseLogger(logging.Logger(logging.Prefs))
	secrets.UseLogger(logging.Logger(logging.Secrets))
	engine.UseLogger(logging.Logger(logging.Engine))
	service.UseLogger(logging.Logger(logging.Service))
	platform.UseLogger(logging.Logger(logging.Platform))
	database.UseLogger(logging.Logger(logging.DB))
	tui.UseLogger(logging.Logger(logging.UI))
}

// refresh loads the conversion rate and network status once at start.
func refresh(ctx context.Context, e *engine.Engine) {
	if _, err := e.CurrencyRate.Refresh(ctx); err != nil {
		log.Warnf("Conversion rate refresh failed: %v", err)
	}
	status, err := e.NetworkStatus.Check(ctx)
	if err != nil {
		log.Warnf("Network status check failed: %v", err)
		return
	}
	log.Debugf("Network status: %s", status)
}

func resetWallet(ctx context.Context, db *sql.DB, creds *secrets.Store, flagStore *prefs.Store) error {
	m := &service.MaintenanceService{DB: db, Credentials: creds, Flags: flagStore}
	if err := m.Reset(ctx); err != nil {
		return fmt.Errorf("reset wallet: %w", err)
	}
	fmt.Println("Wallet data erased.")
	return nil
}

func seedDemo(ctx context.Context, e *engine.Engine, n int) error {
	addr, err := e.Keyring.SelectedAddress(ctx)
	if err != nil {
		return fmt.Errorf("read selected address: %w", err)
	}
	if addr == "" {
		return errors.New("demo data needs a restored wallet")
	}
	if err := testdata.Seed(ctx, e.Transactions, addr, n, time.Now().UnixNano()); err != nil {
		return err
	}
	fmt.Printf("Recorded %d sample transactions for %s\n", n, addr)
	return nil
}
