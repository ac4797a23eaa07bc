// internal/app/app.go
package app

import (
	"database/sql"
	"net/http"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/denilsonjj/sistema-erp-sub001/internal/config"
	hh "github.com/denilsonjj/sistema-erp-sub001/internal/handlers/http"
	"github.com/denilsonjj/sistema-erp-sub001/internal/llm"
	mysqlrepo "github.com/denilsonjj/sistema-erp-sub001/internal/repositories/mysql"
	"github.com/denilsonjj/sistema-erp-sub001/internal/util"
	pkgdb "github.com/denilsonjj/sistema-erp-sub001/pkg/db"
)

// App concentra router, logger e dependências compartilhadas.
type App struct {
	Router *mux.Router
	Logger *zap.Logger
	Config *config.Config
	DB     *sql.DB
}

// New carrega a configuração, abre o MySQL e injeta os repos nos
// handlers. O servidor sobe mesmo sem banco; os endpoints respondem
// 503 até a dependência existir.
func New() *App {
	cfg := config.Load()
	logger := util.NewLogger(cfg.LogLevel, cfg.LogFormat)

	r := mux.NewRouter()
	a := &App{Router: r, Logger: logger, Config: cfg}

	db, err := pkgdb.NewMySQL(cfg)
	if err != nil {
		logger.Warn("open mysql failed", zap.Error(err))
	} else {
		// retry de ping para aguentar o container do banco subindo
		var pingErr error
		for i := 0; i < 20; i++ {
			pingErr = db.Ping()
			if pingErr == nil {
				break
			}
			logger.Warn("ping mysql failed", zap.Int("try", i+1), zap.Error(pingErr))
			time.Sleep(3 * time.Second)
		}
		if pingErr != nil {
			logger.Error("mysql not ready after retries", zap.Error(pingErr))
		} else {
			a.DB = db
			hh.SetMachineRepo(&mysqlrepo.MachineRepo{DB: db})
			hh.SetFuelRepo(&mysqlrepo.FuelRepo{DB: db})
		}
	}

	hh.SetTankLimits(cfg.Tank.CapacityLiters, cfg.Tank.CriticalLiters)

	// LLM é opcional: sem chave, o resumo usa o texto determinístico
	if client, lerr := llm.NewFromEnv(); lerr != nil {
		logger.Info("llm disabled", zap.Error(lerr))
	} else {
		hh.SetLLMClient(client)
		logger.Info("llm enabled", zap.String("model", client.Model()))
	}

	RegisterRoutes(r)
	return a
}

// Run sobe o servidor HTTP principal.
func (a *App) Run(addr string) {
	a.Logger.Info("server running", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, a.Router); err != nil {
		a.Logger.Fatal("server error", zap.Error(err))
	}
}
