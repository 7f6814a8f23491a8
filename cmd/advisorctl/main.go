package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/policy-advisor/internal/domain/catalog"
	"github.com/yanqian/policy-advisor/internal/domain/recommendation"
	"github.com/yanqian/policy-advisor/internal/infra/catalogrepo"
	"github.com/yanqian/policy-advisor/internal/infra/catalogstore"
	"github.com/yanqian/policy-advisor/internal/infra/config"
	"github.com/yanqian/policy-advisor/internal/infra/postgres"
	"github.com/yanqian/policy-advisor/pkg/logger"
	"github.com/yanqian/policy-advisor/pkg/money"
)

// exitErr carries a numeric exit code through the cobra error path.
type exitErr struct {
	code int
	msg  string
}

func (e *exitErr) Error() string { return e.msg }

func codeError(code int, format string, args ...any) error {
	return &exitErr{code: code, msg: fmt.Sprintf(format, args...)}
}

var errorColor = color.New(color.FgRed, color.Bold)

type quoteFlags struct {
	age        int
	income     float64
	dependents int
	risk       string
	jsonOut    bool
}

func main() {
	if err := newRootCmd(os.Stdout, config.Load).Execute(); err != nil {
		var ee *exitErr
		if errors.As(err, &ee) {
			errorColor.Fprintln(os.Stderr, "Error:", ee.msg)
			os.Exit(ee.code)
		}
		errorColor.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer, loadConfig func() (*config.Config, error)) *cobra.Command {
	root := &cobra.Command{
		Use:           "advisorctl",
		Short:         "Operate the policy advisor service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create the recommendation and catalog tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return codeError(3, "load config: %s", err)
			}
			return runMigrate(cmd.Context(), cmd.OutOrStdout(), cfg)
		},
	}

	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Upsert the default product catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return codeError(3, "load config: %s", err)
			}
			return runSeed(cmd.Context(), cmd.OutOrStdout(), cfg)
		},
	}

	var qf quoteFlags
	quoteCmd := &cobra.Command{
		Use:   "quote",
		Short: "Evaluate a profile without storing the result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return codeError(3, "load config: %s", err)
			}
			return runQuote(cmd.OutOrStdout(), cfg, qf)
		},
	}
	f := quoteCmd.Flags()
	f.IntVar(&qf.age, "age", 0, "Applicant age (18-100)")
	f.Float64Var(&qf.income, "income", 0, "Annual income in USD")
	f.IntVar(&qf.dependents, "dependents", 0, "Number of dependents (0-20)")
	f.StringVar(&qf.risk, "risk", "", "Risk tolerance: low, medium, or high")
	f.BoolVar(&qf.jsonOut, "json", false, "Print the quote as JSON")
	_ = quoteCmd.MarkFlagRequired("age")
	_ = quoteCmd.MarkFlagRequired("income")
	_ = quoteCmd.MarkFlagRequired("risk")

	root.AddCommand(migrateCmd, seedCmd, quoteCmd)
	return root
}

func openDatabase(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.Database.DSN) == "" {
		return nil, codeError(3, "DATABASE_URL is not set")
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	db, err := postgres.Open(ctx, postgres.PoolConfig{
		DSN:      cfg.Database.DSN,
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return nil, codeError(2, "connect to database: %s", err)
	}
	return db, nil
}

func runMigrate(ctx context.Context, out io.Writer, cfg *config.Config) error {
	db, err := openDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := postgres.Migrate(ctx, db); err != nil {
		return codeError(2, "migrate: %s", err)
	}
	fmt.Fprintf(out, "migrated tables: %s\n", strings.Join(postgres.Tables, ", "))
	return nil
}

func runSeed(ctx context.Context, out io.Writer, cfg *config.Config) error {
	db, err := openDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	log := logger.New(logger.Options{Level: cfg.Log.Level, Format: "text", Output: os.Stderr})
	store, closeStore := catalogStore(ctx, cfg, log)
	defer closeStore()

	svc := catalog.NewService(catalog.Config{CacheTTL: cfg.Cache.CatalogTTL}, catalogrepo.NewPostgresRepository(db), store, log)
	products, err := svc.Seed(ctx)
	if err != nil {
		return codeError(2, "seed catalog: %s", err)
	}
	return renderProducts(out, products)
}

// catalogStore connects to the shared cache so seeding invalidates what
// running servers see. Without a cache a memory store stands in.
func catalogStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (catalog.Store, func()) {
	if !cfg.Cache.Enabled {
		return catalogstore.NewMemoryStore(), func() {}
	}
	opt, err := catalogstore.ClientOptions(cfg.Cache.Addr)
	if err != nil {
		log.Warn("invalid valkey address, cache not invalidated", "error", err)
		return catalogstore.NewMemoryStore(), func() {}
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		log.Warn("valkey unavailable, cache not invalidated", "error", err)
		return catalogstore.NewMemoryStore(), func() {}
	}
	return catalogstore.NewValkeyStore(client, cfg.Cache.Prefix), client.Close
}

func runQuote(out io.Writer, cfg *config.Config, qf quoteFlags) error {
	profile := recommendation.UserProfile{
		Age:           qf.age,
		Income:        qf.income,
		Dependents:    qf.dependents,
		RiskTolerance: recommendation.RiskTolerance(strings.ToLower(qf.risk)),
	}
	if err := profile.Validate(); err != nil {
		return codeError(3, "%s", err)
	}

	engine := recommendation.NewEngine(cfg.Recommendation.EngineConfig())
	quote, err := engine.Evaluate(profile)
	if err != nil {
		return codeError(2, "%s", err)
	}

	if qf.jsonOut {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			recommendation.Draft
			Rule string `json:"rule"`
		}{Draft: quote.Draft, Rule: quote.RuleID})
	}

	term := "-"
	if quote.TermYears != nil {
		term = strconv.Itoa(*quote.TermYears) + " years"
	}
	data := pterm.TableData{
		{"Field", "Value"},
		{"Product", quote.Category.DisplayName()},
		{"Term", term},
		{"Coverage", money.FormatUSD(quote.CoverageAmount)},
		{"Monthly premium", money.FormatUSD(quote.MonthlyPremium)},
		{"Rule", quote.RuleID},
	}
	table, err := pterm.DefaultTable.WithHasHeader(true).WithBoxed(true).WithData(data).Srender()
	if err != nil {
		return err
	}
	fmt.Fprintln(out, table)
	fmt.Fprintln(out, quote.Explanation)
	return nil
}

func renderProducts(out io.Writer, products []catalog.Product) error {
	data := pterm.TableData{{"Category", "Name", "Rate / $1,000", "Max coverage", "Ages", "Terms"}}
	for _, p := range products {
		terms := "-"
		if len(p.TermOptions) > 0 {
			parts := make([]string, len(p.TermOptions))
			for i, t := range p.TermOptions {
				parts[i] = strconv.Itoa(t)
			}
			terms = strings.Join(parts, "/")
		}
		data = append(data, []string{
			p.Category.DisplayName(),
			p.Name,
			strconv.FormatFloat(p.RatePerThousand(), 'f', 2, 64),
			money.FormatUSD(p.MaxCoverage),
			fmt.Sprintf("%d-%d", p.MinAge, p.MaxAge),
			terms,
		})
	}
	table, err := pterm.DefaultTable.WithHasHeader(true).WithBoxed(true).WithData(data).Srender()
	if err != nil {
		return err
	}
	fmt.Fprintln(out, table)
	return nil
}
