package controller

import (
	"net/http"
	"os"

	"truthchain/internal/config"
	"truthchain/internal/ipfs"
)

// Misc provides the service status handlers.
type Misc struct {
	Store ipfs.Store
}

// Register registers the misc routes.
func (m *Misc) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/contract-address", m.contractAddress)
	mux.HandleFunc("GET /api/status", m.status)
}

// contractAddress tells clients where the attestation contract lives; null
// signals degraded mode.
func (m *Misc) contractAddress(w http.ResponseWriter, r *http.Request) {
	var address *string
	if addr := config.ContractAddress(); addr != "" {
		address = &addr
	}
	respondJSON(w, http.StatusOK, map[string]any{"address": address})
}

// status reports which optional backends and credentials are configured so
// the client can gate features.
func (m *Misc) status(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"storageMode":        m.Store.Mode(),
		"hasPinataJwt":       os.Getenv("PINATA_JWT") != "",
		"hasWeb3Token":       os.Getenv("WEB3_STORAGE_TOKEN") != "",
		"hasPolygonKey":      os.Getenv("POLYGON_PRIVATE_KEY") != "",
		"hasContractAddress": config.ContractAddress() != "",
	})
}
