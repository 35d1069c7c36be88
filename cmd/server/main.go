package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"

	"github.com/valencia-move/listings-backend/internal/api"
	"github.com/valencia-move/listings-backend/internal/config"
	"github.com/valencia-move/listings-backend/internal/database"
	"github.com/valencia-move/listings-backend/internal/filter"
	"github.com/valencia-move/listings-backend/internal/logger"
	"github.com/valencia-move/listings-backend/internal/middleware"
	"github.com/valencia-move/listings-backend/internal/models"
	"github.com/valencia-move/listings-backend/internal/render"
	"github.com/valencia-move/listings-backend/internal/repository"
	"github.com/valencia-move/listings-backend/internal/service"
)

var (
	searchFilters models.RawFilters
	costRequest   models.CostRequest
	tokenSubject  string
	tokenTTL      time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "server",
	Short: "Valencia apartment listings service",
	Long:  `Serves the filtered listing cards and map markers for apartments in Valencia.`,
	RunE:  runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the seed listings into the database",
	Long:  `Replace the stored listings with the YAML seed (SEED_PATH, or the embedded Valencia set).`,
	RunE:  runSeed,
}

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Filter listings from the command line",
	RunE:  runSearch,
}

var costCmd = &cobra.Command{
	Use:   "cost",
	Short: "Estimate the up-front and monthly cost of a rental",
	RunE:  runCost,
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue an admin token signed with JWT_SECRET",
	RunE:  runToken,
}

func init() {
	searchCmd.Flags().StringVar(&searchFilters.Area, "area", filter.All, "Area slug")
	searchCmd.Flags().StringVar(&searchFilters.Price, "price", filter.All, `Price band, e.g. "800-1200" or "1600+"`)
	searchCmd.Flags().StringVar(&searchFilters.Beds, "beds", filter.All, "Bedrooms")
	searchCmd.Flags().StringVar(&searchFilters.Feature, "feature", filter.All, "Feature tag")

	costCmd.Flags().Float64Var(&costRequest.MonthlyRent, "rent", 0, "Monthly rent in EUR")
	costCmd.Flags().IntVar(&costRequest.DepositMonths, "deposit", service.DefaultDepositMonths, "Deposit in months of rent")
	costCmd.Flags().BoolVar(&costRequest.AgencyFee, "agency", false, "Include a one-month agency fee")
	costCmd.Flags().BoolVar(&costRequest.IncludeUtilities, "utilities", false, "Add average Valencia utilities")

	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "admin", "Token subject")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", time.Hour, "Token lifetime")

	rootCmd.AddCommand(serveCmd, seedCmd, searchCmd, costCmd, tokenCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app holds what every command needs
type app struct {
	cfg      *config.Config
	log      *slog.Logger
	listings *service.ListingService
}

func newApp() (*app, error) {
	// 加载配置
	cfg := config.Load()

	log := logger.New(logger.Config{
		Level: logger.ParseLevel(cfg.LogLevel),
		JSON:  cfg.LogFormat == "json",
	})
	slog.SetDefault(log)

	// 初始化数据库
	if err := database.Init(database.Config{Path: cfg.DBPath}); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	listings := service.NewListingService(repository.NewListingRepository(database.GetDB()), service.ListingServiceConfig{
		SeedPath:   cfg.SeedPath,
		PriceBands: cfg.PriceBands,
		Parser:     filter.NewParser(cfg.TopBedroomBand),
		Strict:     !cfg.IsProduction(),
		Logger:     log,
	})

	return &app{cfg: cfg, log: log, listings: listings}, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer database.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.listings.Bootstrap(ctx); err != nil {
		return err
	}

	// 初始化路由
	router := api.SetupRouter(ctx, a.cfg, api.Deps{
		Listings: a.listings,
		Costs:    service.NewCostService(service.ValenciaUtilities),
		Logger:   a.log,
	})

	srv := &http.Server{
		Addr:              a.cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		// 启动服务器
		a.log.Info("server starting", "addr", a.cfg.Port, "env", a.cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}

func runSeed(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer database.Close()

	if err := a.listings.Reload(cmd.Context()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "seeded %d listings into %s\n", len(a.listings.Listings()), a.cfg.DBPath)
	return nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer database.Close()

	if err := a.listings.Bootstrap(cmd.Context()); err != nil {
		return err
	}

	res, err := a.listings.Search(searchFilters)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if res.Empty {
		fmt.Fprintln(out, render.EmptyMessage)
		return nil
	}
	for _, l := range res.Data {
		fmt.Fprintf(out, "%-4d %-32s %-14s %-14s %s, %s, %s\n",
			l.ID, l.Title, render.AreaLabel(l.Area), render.Price(l.Price),
			render.Count(l.Beds, "Bed"), render.Count(l.Baths, "Bath"), render.Size(l.Size))
	}
	fmt.Fprintf(out, "\n%s\n", render.Count(res.Count, "listing"))
	if v := res.Viewport; v != nil {
		fmt.Fprintf(out, "viewport: %.4f,%.4f -> %.4f,%.4f\n", v.MinLat, v.MinLon, v.MaxLat, v.MaxLon)
	}
	return nil
}

func runCost(cmd *cobra.Command, args []string) error {
	b, err := service.NewCostService(service.ValenciaUtilities).Calculate(costRequest)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Deposit (%d months): %s\n", b.DepositMonths, render.Money(b.Deposit))
	if b.AgencyFee > 0 {
		fmt.Fprintf(out, "Agency fee:          %s\n", render.Money(b.AgencyFee))
	}
	fmt.Fprintf(out, "Initial total:       %s\n", render.Money(b.InitialTotal))
	if u := b.Utilities; u != nil {
		fmt.Fprintf(out, "Utilities:           %s/month\n", render.Money(u.Total()))
	}
	fmt.Fprintf(out, "Monthly total:       %s\n", render.Money(b.MonthlyTotal))
	return nil
}

func runToken(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	now := time.Now()
	token, err := middleware.SignAdminToken(cfg.JWTSecret, tokenSubject, jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
	})
	if err != nil {
		return fmt.Errorf("failed to sign token: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
