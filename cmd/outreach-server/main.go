package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/palliacare/outreach/internal/config"
	"github.com/palliacare/outreach/internal/domain/allocation"
	"github.com/palliacare/outreach/internal/domain/analytics"
	"github.com/palliacare/outreach/internal/domain/inventory"
	"github.com/palliacare/outreach/internal/domain/patient"
	"github.com/palliacare/outreach/internal/domain/visit"
	"github.com/palliacare/outreach/internal/export"
	"github.com/palliacare/outreach/internal/platform/db"
	"github.com/palliacare/outreach/internal/platform/httpapi"
	"github.com/palliacare/outreach/internal/platform/middleware"
	"github.com/palliacare/outreach/internal/platform/translate"
)

// AllocationSourceAdapter adapts an allocation.Repository to the
// inventory.AllocationSource interface, avoiding circular imports between
// the inventory and allocation packages.
type AllocationSourceAdapter struct {
	repo allocation.Repository
}

func NewAllocationSourceAdapter(repo allocation.Repository) *AllocationSourceAdapter {
	return &AllocationSourceAdapter{repo: repo}
}

// ListByInventoryItem implements inventory.AllocationSource.
func (a *AllocationSourceAdapter) ListByInventoryItem(ctx context.Context, itemID int64) ([]inventory.AllocationRecord, error) {
	allocs, err := a.repo.ListByInventoryItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return toRecords(allocs), nil
}

// ListLegacyByName implements inventory.AllocationSource.
func (a *AllocationSourceAdapter) ListLegacyByName(ctx context.Context, itemName string) ([]inventory.AllocationRecord, error) {
	allocs, err := a.repo.ListLegacyByName(ctx, itemName)
	if err != nil {
		return nil, err
	}
	return toRecords(allocs), nil
}

func toRecords(allocs []*allocation.Allocation) []inventory.AllocationRecord {
	out := make([]inventory.AllocationRecord, len(allocs))
	for i, al := range allocs {
		out[i] = inventory.AllocationRecord{
			ID:             al.ID,
			PatientID:      al.PatientID,
			PatientName:    al.PatientName,
			MaterialName:   al.MaterialName,
			AllocationDate: al.AllocationDate,
			IsReturnable:   al.IsReturnable,
			ReturnDate:     al.ReturnDate,
			IsDamaged:      al.IsDamaged,
		}
	}
	return out
}

// PatientSourceAdapter adapts a patient.Repository to the
// analytics.PatientSource interface.
type PatientSourceAdapter struct {
	repo patient.Repository
}

func NewPatientSourceAdapter(repo patient.Repository) *PatientSourceAdapter {
	return &PatientSourceAdapter{repo: repo}
}

// Snapshot implements analytics.PatientSource.
func (a *PatientSourceAdapter) Snapshot(ctx context.Context) ([]analytics.PatientSnapshot, error) {
	patients, err := a.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]analytics.PatientSnapshot, len(patients))
	for i, p := range patients {
		out[i] = analytics.PatientSnapshot{
			Age:           p.Age,
			Disease:       p.Disease,
			IsExpired:     p.IsExpired,
			CurrentStatus: p.CurrentStatus,
		}
	}
	return out, nil
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "outreach-server",
		Short: "Palliative care outreach records API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			count, err := migrator.Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	upCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(upCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			statuses, err := migrator.Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			for _, s := range statuses {
				status := "pending"
				appliedAt := ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	}
	statusCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(statusCmd)

	return cmd
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if cfg.IsDev() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Database
	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = httpapi.ErrorHandler(e)

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Content-Type", "X-Request-ID"},
	}))

	// Repositories
	patientRepo := patient.NewRepoPG(pool)
	visitRepo := visit.NewRepoPG(pool)
	inventoryRepo := inventory.NewRepoPG(pool)
	allocationRepo := allocation.NewRepoPG(pool)

	// Services
	patientSvc := patient.NewService(patientRepo, allocationRepo)
	visitSvc := visit.NewService(visitRepo, patientRepo)
	inventorySvc := inventory.NewService(inventoryRepo, NewAllocationSourceAdapter(allocationRepo))
	allocationSvc := allocation.NewService(allocationRepo, inventoryRepo,
		func(ctx context.Context, fn func(ctx context.Context) error) error {
			return db.WithTx(ctx, pool, fn)
		})
	analyticsSvc := analytics.NewService(NewPatientSourceAdapter(patientRepo))
	translator := translate.NewClient(cfg.TranslateURL, cfg.TranslateSource, cfg.TranslateTarget)

	// Routes
	api := e.Group("/api")
	patient.NewHandler(patientSvc).RegisterRoutes(api)
	visit.NewHandler(visitSvc).RegisterRoutes(api)
	inventory.NewHandler(inventorySvc).RegisterRoutes(api)
	allocation.NewHandler(allocationSvc).RegisterRoutes(api)
	analytics.NewHandler(analyticsSvc).RegisterRoutes(api)
	translate.NewHandler(translator).RegisterRoutes(api)
	export.NewHandler(export.NewSourcePG(pool)).RegisterRoutes(api)

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
