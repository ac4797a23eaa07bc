// cmd/report/main.go
// Servidor de relatórios internos (porta separada do API principal)

package main

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/denilsonjj/sistema-erp-sub001/internal/config"
	"github.com/denilsonjj/sistema-erp-sub001/internal/server"
	"github.com/denilsonjj/sistema-erp-sub001/internal/util"
	pkgdb "github.com/denilsonjj/sistema-erp-sub001/pkg/db"
)

func main() {
	cfg := config.Load()
	logger := util.NewLogger(cfg.LogLevel, cfg.LogFormat)
	defer logger.Sync()

	db, err := pkgdb.NewMySQL(cfg)
	if err != nil {
		logger.Fatal("open mysql", zap.Error(err))
	}
	if err := db.Ping(); err != nil {
		logger.Fatal("ping mysql", zap.Error(err))
	}

	router := server.NewReportRouter(db, cfg.Tank.CapacityLiters, cfg.Tank.CriticalLiters)

	addr := ":" + cfg.ReportPort
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	logger.Info("report server running", zap.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("listen", zap.Error(err))
	}
}
