package web

import (
	"net/http"

	"truthchain/internal/web/controller"
)

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	// Files written by the local storage fallback are served back directly.
	mux.Handle("/uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir("uploads"))))

	recordController := controller.Record{Records: s.records, Store: s.store, Ledger: s.ledger}
	recordController.Register(mux)

	miscController := controller.Misc{Store: s.store}
	miscController.Register(mux)

	return mux
}
