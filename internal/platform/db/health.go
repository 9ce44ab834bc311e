package db

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
)

const pingTimeout = 5 * time.Second

// PoolHealth is the payload of the scheduling database health endpoint.
type PoolHealth struct {
	Service       string `json:"service"`
	Status        string `json:"status"`
	Error         string `json:"error,omitempty"`
	TotalConns    int32  `json:"total_conns"`
	IdleConns     int32  `json:"idle_conns"`
	AcquiredConns int32  `json:"acquired_conns"`
	MaxConns      int32  `json:"max_conns"`
}

func poolHealth(pool *pgxpool.Pool) PoolHealth {
	stat := pool.Stat()
	return PoolHealth{
		Service:       "caresched-db",
		TotalConns:    stat.TotalConns(),
		IdleConns:     stat.IdleConns(),
		AcquiredConns: stat.AcquiredConns(),
		MaxConns:      stat.MaxConns(),
	}
}

// HealthHandler pings the scheduling database and reports pool occupancy.
func HealthHandler(pool *pgxpool.Pool) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), pingTimeout)
		defer cancel()

		health := poolHealth(pool)
		if err := pool.Ping(ctx); err != nil {
			health.Status = "unhealthy"
			health.Error = err.Error()
			return c.JSON(http.StatusServiceUnavailable, health)
		}

		health.Status = "healthy"
		return c.JSON(http.StatusOK, health)
	}
}
