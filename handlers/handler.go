package handlers

import (
	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/cboland/raceledger/results"
)

// Handler holds shared dependencies used by all route handlers.
type Handler struct {
	db      *bun.DB
	JWTKey  []byte
	logsDir string
	charts  *results.Client
	log     *zap.Logger
}

// New creates a Handler. logsDir is the default directory scanned by the
// ingest endpoint; charts is the official-results lookup client.
func New(db *bun.DB, jwtKey []byte, logsDir string, charts *results.Client, log *zap.Logger) *Handler {
	return &Handler{db: db, JWTKey: jwtKey, logsDir: logsDir, charts: charts, log: log}
}
