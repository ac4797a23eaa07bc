// internal/config/config.go
// Loader de configuração a partir de variáveis de ambiente

package config

import (
	"fmt"
	"os"
)

type Config struct {
	AppName    string
	AppEnv     string
	AppPort    string
	ReportPort string
	LogLevel   string
	LogFormat  string

	MySQL struct {
		Host     string
		Port     string
		DB       string
		User     string
		Password string
		MaxOpen  int
		MaxIdle  int
	}

	// Tanque de diesel da obra
	Tank struct {
		CapacityLiters float64
		CriticalLiters float64
	}

	LLM struct {
		Provider string // default: openai
		APIKey   string
		APIBase  string
		Model    string
	}
}

func Load() *Config {
	c := &Config{}
	c.AppName = getEnv("APP_NAME", "sistema-erp")
	c.AppEnv = getEnv("APP_ENV", "development")
	c.AppPort = getEnv("APP_PORT", "8080")
	c.ReportPort = getEnv("REPORT_PORT", "8090")
	c.LogLevel = getEnv("LOG_LEVEL", "info")
	c.LogFormat = getEnv("LOG_FORMAT", "json")

	c.MySQL.Host = getEnv("MYSQL_HOST", "localhost")
	c.MySQL.Port = getEnv("MYSQL_PORT", "3306")
	c.MySQL.DB = getEnv("MYSQL_DB", "erp")
	c.MySQL.User = getEnv("MYSQL_USER", "root")
	c.MySQL.Password = getEnv("MYSQL_PASSWORD", "")
	c.MySQL.MaxOpen = getEnvInt("MYSQL_MAX_OPEN_CONNS", 10)
	c.MySQL.MaxIdle = getEnvInt("MYSQL_MAX_IDLE_CONNS", 5)

	c.Tank.CapacityLiters = getEnvFloat("TANK_CAPACITY_LITERS", 15000)
	c.Tank.CriticalLiters = getEnvFloat("TANK_CRITICAL_LITERS", 3000)

	// LLM / OpenAI (opcional; sem a chave o resumo degrada para texto fixo)
	c.LLM.Provider = getEnv("LLM_PROVIDER", "openai")
	c.LLM.APIKey = getEnv("OPENAI_API_KEY", "")
	c.LLM.APIBase = getEnv("OPENAI_API_BASE", "https://api.openai.com/v1")
	c.LLM.Model = getEnv("OPENAI_MODEL", "gpt-4o-mini")

	return c
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		var i int
		_, err := fmt.Sscanf(v, "%d", &i)
		if err == nil {
			return i
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		var f float64
		_, err := fmt.Sscanf(v, "%g", &f)
		if err == nil {
			return f
		}
	}
	return def
}
