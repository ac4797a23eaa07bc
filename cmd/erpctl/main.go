// cmd/erpctl/main.go
// CLI de operação: consultas rápidas contra o banco, sem subir o API

package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/denilsonjj/sistema-erp-sub001/internal/config"
	mysqlrepo "github.com/denilsonjj/sistema-erp-sub001/internal/repositories/mysql"
	"github.com/denilsonjj/sistema-erp-sub001/internal/services"
	"github.com/denilsonjj/sistema-erp-sub001/internal/util"
	pkgdb "github.com/denilsonjj/sistema-erp-sub001/pkg/db"
)

var (
	cfg    *config.Config
	logger *zap.Logger
)

func openDB() (*sql.DB, error) {
	db, err := pkgdb.NewMySQL(cfg)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping mysql: %w", err)
	}
	return db, nil
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func main() {
	cfg = config.Load()
	logger = util.NewLogger(cfg.LogLevel, "console")
	defer logger.Sync()

	root := &cobra.Command{
		Use:           "erpctl",
		Short:         "Consultas de operação do ERP de frota",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(pingCmd(), paradasCmd(), timelineCmd(), tanqueCmd())

	if err := root.Execute(); err != nil {
		logger.Error("command failed", zap.Error(err))
		os.Exit(1)
	}
}

func pingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Testa a conexão com o MySQL",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()
			fmt.Println("ok")
			return nil
		},
	}
}

func paradasCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "paradas",
		Short: "Métricas de paradas da frota",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
			defer cancel()

			repo := &mysqlrepo.MachineRepo{DB: db}
			all, err := repo.List(ctx, mysqlrepo.MachineFilter{})
			if err != nil {
				return err
			}
			stopped := services.FilterStopped(all)
			printJSON(services.ComputeDowntimeMetrics(stopped, all, time.Now()))
			return nil
		},
	}
}

func timelineCmd() *cobra.Command {
	var id string
	var limit int

	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Linha do tempo de uma máquina",
		RunE: func(cmd *cobra.Command, args []string) error {
			if id == "" {
				return fmt.Errorf("--id é obrigatório")
			}
			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
			defer cancel()

			repo := &mysqlrepo.MachineRepo{DB: db}
			m, err := repo.Get(ctx, id)
			if err != nil {
				return err
			}
			printJSON(services.BuildTimeline(m, time.Now(), limit))
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "id da máquina")
	cmd.Flags().IntVar(&limit, "limit", 0, "máximo de eventos (0 = todos)")
	return cmd
}

func tanqueCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tanque",
		Short: "Nível corrente do tanque de diesel",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
			defer cancel()

			repo := &mysqlrepo.FuelRepo{DB: db}
			deliveries, err := repo.Deliveries(ctx)
			if err != nil {
				return err
			}
			logs, err := repo.DieselConsumption(ctx)
			if err != nil {
				return err
			}
			printJSON(services.ComputeTankStatus(deliveries, logs, cfg.Tank.CapacityLiters, cfg.Tank.CriticalLiters))
			return nil
		},
	}
}
