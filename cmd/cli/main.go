package main

import (
	"context"
	"fmt"
	"os"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/workforce-scheduler/cmd/cli/commands"
	"github.com/jakechorley/workforce-scheduler/internal/config"
	"github.com/jakechorley/workforce-scheduler/pkg/core/services"
	"github.com/jakechorley/workforce-scheduler/pkg/db"
	"github.com/jakechorley/workforce-scheduler/pkg/runlock"
	"github.com/jakechorley/workforce-scheduler/pkg/utils/logging"
)

var (
	env         string
	verbose     bool
	logDir      string
	app         = &commands.AppContext{}
	redisClient *redis.Client
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cli",
		Short: "Workforce Scheduler CLI - Generate draft shift rotas",
		Long:  `A CLI tool for filling weekly shift templates with compliant, fairly distributed draft shifts.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return closeApp()
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show debug logs on the console")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", logging.DefaultDir, "Directory for JSON log files")
	_ = rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(commands.AutoScheduleCmd(app))
	rootCmd.AddCommand(commands.ListTemplatesCmd(app))
	rootCmd.AddCommand(commands.MigrateCmd(app))
	rootCmd.AddCommand(commands.ServeCmd(app))
	rootCmd.AddCommand(commands.VerifyAuditCmd(app))
	rootCmd.AddCommand(commands.InteractiveCmd(app))

	if err := rootCmd.Execute(); err != nil {
		_ = closeApp()
		os.Exit(1)
	}
}

// initApp sets up logger, config, database, run lock and compliance oracle
func initApp() error {
	var err error
	app.Ctx = context.Background()

	app.Logger, err = logging.New(env, logging.Options{Dir: logDir, Verbose: verbose})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Debug("Starting application", zap.String("environment", env))

	app.Cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Logger.Debug("Configuration loaded successfully", zap.String("driver", app.Cfg.Database.Driver))

	target := app.Cfg.Database.URL
	if app.Cfg.Database.Driver == db.DriverSQLite {
		target = app.Cfg.Database.SQLitePath
	}
	app.Database, err = db.Open(app.Ctx, app.Cfg.Database.Driver, target)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	app.Logger.Debug("Database connected")

	if app.Cfg.Redis.Addr != "" {
		redisClient, err = runlock.NewClient(app.Ctx, app.Cfg.Redis.Addr, app.Cfg.Redis.Password)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		app.Locker = runlock.NewRedisLocker(redisClient, app.Cfg.Redis.LockTTL)
		app.Logger.Debug("Run lock enabled", zap.String("redis_addr", app.Cfg.Redis.Addr))
	}

	app.Oracle = services.NewComplianceOracle(app.Cfg, app.Database, app.Logger)

	return nil
}

func closeApp() error {
	var err error
	if app.Database != nil {
		err = app.Database.Close()
		app.Database = nil
	}
	if redisClient != nil {
		_ = redisClient.Close()
		redisClient = nil
	}
	if app.Logger != nil {
		_ = app.Logger.Sync()
	}
	return err
}
