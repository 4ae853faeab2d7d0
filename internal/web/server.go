package web

import (
	"database/sql"
	"net/http"

	"truthchain/internal/ipfs"
	"truthchain/internal/ledger"
	"truthchain/internal/record"
)

// Server holds the dependencies for the web server.
type Server struct {
	db      *sql.DB
	records *record.Repository
	store   ipfs.Store
	ledger  ledger.Client
}

// NewServer creates a new server with the given dependencies.
func NewServer(db *sql.DB, store ipfs.Store, ledgerClient ledger.Client) *Server {
	return &Server{
		db:      db,
		records: record.NewRepository(db),
		store:   store,
		ledger:  ledgerClient,
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.routes().ServeHTTP(w, r)
}
