package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/BrandonKowalski/shoppinglist/pkg/shoppinglist"
	"github.com/BrandonKowalski/shoppinglist/pkg/shoppinglist/config"
	"github.com/BrandonKowalski/shoppinglist/pkg/shoppinglist/constants"
	"github.com/BrandonKowalski/shoppinglist/pkg/shoppinglist/metrics"
	"github.com/BrandonKowalski/shoppinglist/pkg/shoppinglist/router"
	"github.com/BrandonKowalski/shoppinglist/pkg/shoppinglist/state"
	"github.com/BrandonKowalski/shoppinglist/pkg/shoppinglist/storage"
)

var (
	configPath  string
	dbPath      string
	useMemory   bool
	lang        string
	logLevel    string
	metricsAddr string

	appCtx      *shoppinglist.App
	stopMetrics context.CancelFunc
)

func Execute() error {
	defer shoppinglist.CloseLogger()
	return run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

// run executes one command line and releases the app it opened.
func run(args []string, in io.Reader, out, errOut io.Writer) error {
	root := rootCmd()
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)
	defer closeApp()
	return root.Execute()
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "shoppinglist",
		Short:        "Keep shopping lists from the terminal",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector())

			appCtx, err = shoppinglist.Init(cmd.Context(), shoppinglist.Options{
				Config:     cfg,
				Registerer: reg,
			})
			if err != nil {
				return err
			}

			if cfg.MetricsAddr != "" {
				ctx, cancel := context.WithCancel(cmd.Context())
				stopMetrics = cancel
				go func() {
					if err := metrics.Serve(ctx, cfg.MetricsAddr, reg, shoppinglist.GetLogger()); err != nil {
						shoppinglist.GetLogger().Error("metrics server stopped", "error", err)
					}
				}()
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", constants.DefaultConfigFile, "TOML config file")
	root.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite database file (overrides config)")
	root.PersistentFlags().BoolVar(&useMemory, "memory", false, "keep everything in memory for this run")
	root.PersistentFlags().StringVar(&lang, "lang", "", "message language, e.g. en or de")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error")
	root.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")

	root.AddCommand(
		listsCmd(),
		productsCmd(),
		createCmd(),
		addCmd(),
		archiveCmd(),
		unarchiveCmd(),
		removeCmd(),
		shellCmd(),
		configCmd(),
	)
	return root
}

// loadConfig layers the command line flags over config.Load.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	flags := cmd.Flags()

	cfg, err := config.Load(configPath, flags.Changed("config"))
	if err != nil {
		return config.Config{}, err
	}
	if flags.Changed("db") {
		cfg.Storage = constants.StorageSQLite
		cfg.DatabasePath = dbPath
	}
	if useMemory {
		cfg.Storage = constants.StorageMemory
	}
	if flags.Changed("lang") {
		cfg.Language = lang
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("metrics-addr") {
		cfg.MetricsAddr = metricsAddr
	}
	return cfg, cfg.Validate()
}

func closeApp() {
	if stopMetrics != nil {
		stopMetrics()
		stopMetrics = nil
	}
	if appCtx != nil {
		if err := appCtx.Close(); err != nil {
			shoppinglist.GetLogger().Error("close failed", "error", err)
		}
		appCtx = nil
	}
}

func settle(cmd *cobra.Command) (state.ScreenState, error) {
	ctx, cancel := context.WithTimeout(cmd.Context(), constants.DefaultSettleTimeout)
	defer cancel()
	return appCtx.Settle(ctx)
}

// mutate starts a mutation with fn, waits for it and returns its failure, if any.
func mutate(cmd *cobra.Command, fn func()) error {
	fn()
	appCtx.State.Wait()
	select {
	case err := <-appCtx.State.Failures():
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), constants.Failed, appCtx.Localizer.Failure(err))
			return err
		}
	default:
	}
	return nil
}

// findList looks up a list by id among the current and then the archived lists.
// It leaves the navigator at the root.
func findList(cmd *cobra.Command, id int64) (state.ShoppingListUI, error) {
	defer appCtx.Navigator.Reset()

	for _, screen := range []router.Screen{router.ShoppingListCurrent(), router.ShoppingListArchived()} {
		appCtx.Navigator.Reset()
		if screen.Kind() != router.KindShoppingListCurrent {
			appCtx.Navigator.Push(screen)
		}

		st, err := settle(cmd)
		if err != nil {
			return state.ShoppingListUI{}, err
		}
		if err := st.ShoppingLists.Err(); err != nil {
			return state.ShoppingListUI{}, err
		}
		lists, _ := st.ShoppingLists.Data()
		for _, list := range lists {
			if list.ID == id {
				return list, nil
			}
		}
	}
	return state.ShoppingListUI{}, fmt.Errorf("shopping list %d: %w", id, storage.ErrNotFound)
}

// openList shows the products screen for list and returns its settled state.
func openList(cmd *cobra.Command, list state.ShoppingListUI) (state.ScreenState, error) {
	appCtx.Navigator.Push(productScreen(list))
	st, err := settle(cmd)
	if err != nil {
		return state.ScreenState{}, err
	}
	return st, st.Products.Err()
}

func productScreen(list state.ShoppingListUI) router.Screen {
	if list.IsArchived {
		return router.ProductListArchived(list.Domain())
	}
	return router.ProductListCurrent(list.Domain())
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

func show(cmd *cobra.Command) error {
	st, err := settle(cmd)
	if err != nil {
		return err
	}
	renderState(cmd.OutOrStdout(), appCtx.Localizer, st)
	return nil
}
