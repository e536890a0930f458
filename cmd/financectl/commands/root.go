package commands

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	appanalytics "github.com/jhoicas/Financeiro-api/internal/application/analytics"
	"github.com/jhoicas/Financeiro-api/internal/application/importer"
	"github.com/jhoicas/Financeiro-api/internal/application/transaction"
	infrapdf "github.com/jhoicas/Financeiro-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Financeiro-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Financeiro-api/pkg/config"
	"github.com/jhoicas/Financeiro-api/pkg/logger"
)

var (
	cfg *config.Config
	log *logger.Logger

	verbose bool
)

func Execute() error {
	root := &cobra.Command{
		Use:           "financectl",
		Short:         "Ferramentas de linha de comando do Financeiro",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load()
			if err != nil {
				return err
			}
			level := "warn"
			if verbose {
				level = "debug"
			}
			log = logger.New(logger.Config{Env: "development", Level: level, Out: cmd.ErrOrStderr()})
			return nil
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log detalhado")

	root.AddCommand(migrateCmd(), importCmd(), reportCmd())
	return root.Execute()
}

// services abre o pool e monta os casos de uso usados pelos subcomandos.
type services struct {
	pool         *pgxpool.Pool
	transactions *transaction.UseCase
	importer     *importer.UseCase
	dashboard    *appanalytics.DashboardUseCase
}

func openServices(ctx context.Context) (*services, error) {
	pool, err := postgres.NewPool(ctx, cfg.DB, postgres.PoolOptions{MaxConns: 4})
	if err != nil {
		return nil, err
	}
	log.Debug().Str("dsn", postgres.RedactDSN(cfg.DB.ConnectionString())).Msg("conectado ao PostgreSQL")

	txRepo := postgres.NewTransactionRepository(pool)
	loc := cfg.App.Location()
	txUC := transaction.NewUseCase(txRepo, postgres.NewCategoryRepository(pool), postgres.NewTxRunner(pool), transaction.Config{
		DefaultCategoryID: cfg.Import.DefaultCategoryID,
		Location:          loc,
	})
	return &services{
		pool:         pool,
		transactions: txUC,
		importer:     importer.NewUseCase(txUC),
		dashboard:    appanalytics.NewDashboardUseCase(txRepo, infrapdf.NewMarotoReportGenerator(), loc, nil, cfg.App.Name),
	}, nil
}

func (s *services) Close() { s.pool.Close() }
