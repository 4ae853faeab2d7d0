package main

import (
	"flag"
	"log"
	"net/http"

	"truthchain/internal/config"
	"truthchain/internal/database"
	"truthchain/internal/ipfs"
	"truthchain/internal/ledger"
	"truthchain/internal/web"
)

func main() {
	var dsn = flag.String("dsn", "truthchain.db", "The database connection string.")
	var addr = flag.String("addr", ":8080", "The address to listen on.")
	flag.Parse()

	db, err := database.New(*dsn)
	if err != nil {
		log.Fatal(err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	log.Println("database migrated")

	store := ipfs.NewFromEnv()
	log.Println("content store mode:", store.Mode())

	ledgerClient, err := ledger.Dial(config.RPCURL())
	if err != nil {
		log.Fatal(err)
	}

	server := web.NewServer(db, store, ledgerClient)

	log.Println("starting server on", *addr)
	if err := http.ListenAndServe(*addr, server); err != nil {
		log.Fatal(err)
	}
}
