package controller

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/mattn/go-sqlite3"

	"truthchain/internal/config"
	"truthchain/internal/hashing"
	"truthchain/internal/ipfs"
	"truthchain/internal/ledger"
	"truthchain/internal/models"
	"truthchain/internal/record"
	"truthchain/internal/verify"
)

const maxUploadBytes = 50 << 20

// Timestamps are fixed at hashing time with millisecond precision; the
// exact string is part of the hash preimage, so it is stored and echoed
// verbatim.
const timestampLayout = "2006-01-02T15:04:05.000Z"

// Record provides the attestation record handlers.
type Record struct {
	Records *record.Repository
	Store   ipfs.Store
	Ledger  ledger.Client
}

// Register registers the record routes.
func (c *Record) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/records", c.list)
	mux.HandleFunc("POST /api/prepare-upload", c.prepareUpload)
	mux.HandleFunc("POST /api/save-record", c.saveRecord)
}

func (c *Record) list(w http.ResponseWriter, r *http.Request) {
	records, err := c.Records.GetAll()
	if err != nil {
		log.Printf("Error fetching records: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch records", err.Error())
		return
	}
	if records == nil {
		records = []models.NewsRecord{}
	}
	respondJSON(w, http.StatusOK, records)
}

// prepareUpload stores the file and returns the content identifier, the
// hashing timestamp and the fingerprint the client must attest on-chain.
// Nothing is persisted here.
func (c *Record) prepareUpload(w http.ResponseWriter, r *http.Request) {
	// ParseMultipartForm alone only bounds in-memory buffering; the reader
	// cap is what actually rejects oversize uploads.
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respondError(w, http.StatusBadRequest, "Upload preparation failed", "the uploaded file is too big")
		return
	}

	text := r.FormValue("text")
	file, handler, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Missing required fields", "both text and file are required")
		return
	}
	defer file.Close()

	if text == "" {
		respondError(w, http.StatusBadRequest, "Missing required fields", "both text and file are required")
		return
	}

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Upload preparation failed", "error reading the file")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	cid, err := c.Store.Upload(ctx, fileBytes, handler.Filename)
	if err != nil {
		log.Printf("Error uploading to content store: %v", err)
		switch {
		case errors.Is(err, ipfs.ErrUploadRejected):
			respondError(w, http.StatusBadRequest, string(verify.KindValidation), "the storage backend rejected the file")
		case errors.Is(err, ipfs.ErrStorageUnavailable):
			respondError(w, http.StatusBadGateway, string(verify.KindStorageUnavailable), "the storage backend is unavailable")
		default:
			respondError(w, http.StatusInternalServerError, "Upload preparation failed", err.Error())
		}
		return
	}

	timestamp := time.Now().UTC().Format(timestampLayout)
	hash := hashing.Generate(text, cid, timestamp)
	log.Printf("Prepared upload cid=%s hash=%s...", cid, hash[:16])

	respondJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"cid":       cid,
		"hash":      hash,
		"timestamp": timestamp,
		"fileName":  handler.Filename,
		"fileType":  handler.Header.Get("Content-Type"),
	})
}

type saveRecordRequest struct {
	Text          string `json:"text"`
	CID           string `json:"cid"`
	Hash          string `json:"hash"`
	Tx            string `json:"tx"`
	FileName      string `json:"fileName"`
	FileType      string `json:"fileType"`
	Timestamp     string `json:"timestamp"`
	WalletAddress string `json:"walletAddress"`
}

// saveRecord verifies a client's attestation claim end to end and persists
// the record only when every gate passes.
func (c *Record) saveRecord(w http.ResponseWriter, r *http.Request) {
	var req saveRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, string(verify.KindValidation), "invalid request body")
		return
	}

	if req.Text == "" || req.CID == "" || req.Hash == "" || req.Tx == "" || req.Timestamp == "" {
		respondError(w, http.StatusBadRequest, string(verify.KindValidation), "text, cid, hash, tx and timestamp are required")
		return
	}

	existing, err := c.Records.GetAll()
	if err != nil {
		log.Printf("Error fetching records: %v", err)
		respondError(w, http.StatusInternalServerError, string(verify.KindUnknown), err.Error())
		return
	}

	// The contract address is resolved per request so a freshly deployed
	// contract takes effect without a restart.
	verifier := &verify.Verifier{
		Ledger:          c.Ledger,
		ContractAddress: config.ContractAddress(),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	mode, err := verifier.Verify(ctx, verify.Submission{
		Text:          req.Text,
		CID:           req.CID,
		Hash:          req.Hash,
		Tx:            req.Tx,
		Timestamp:     req.Timestamp,
		WalletAddress: req.WalletAddress,
	}, existing)
	if err != nil {
		var verr *verify.Error
		if errors.As(err, &verr) {
			respondError(w, statusForKind(verr.Kind), string(verr.Kind), verr.Message)
			return
		}
		respondError(w, http.StatusInternalServerError, string(verify.KindUnknown), err.Error())
		return
	}
	if mode == verify.ModeTrusted {
		log.Printf("Transaction and event verified on-chain: %s", req.Tx)
	} else {
		log.Printf("No contract configured, saving record unverified: %s", req.Tx)
	}

	fileName := req.FileName
	if fileName == "" {
		fileName = "unknown"
	}
	fileType := req.FileType
	if fileType == "" {
		fileType = "application/octet-stream"
	}
	insert := models.InsertNewsRecord{
		Text:      req.Text,
		CID:       req.CID,
		Hash:      verify.CanonicalHash(req.Hash),
		Tx:        &req.Tx,
		FileName:  fileName,
		FileType:  fileType,
		Timestamp: req.Timestamp,
		Mode:      mode.String(),
	}
	if req.WalletAddress != "" {
		insert.WalletAddress = &req.WalletAddress
	}

	rec, err := c.Records.Create(ctx, insert)
	if err != nil {
		// Two submissions racing past the verifier's duplicate scan land
		// here; the unique indexes on hash and tx reject the second insert.
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
			respondError(w, http.StatusConflict, string(verify.KindDuplicate), "this content has already been verified")
			return
		}
		log.Printf("Error saving record: %v", err)
		respondError(w, http.StatusInternalServerError, string(verify.KindUnknown), err.Error())
		return
	}

	log.Printf("Record saved: %s", rec.ID)
	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"record":  rec,
		"mode":    mode.String(),
	})
}

func statusForKind(kind verify.Kind) int {
	switch kind {
	case verify.KindDuplicate:
		return http.StatusConflict
	case verify.KindLedgerUnreachable, verify.KindStorageUnavailable:
		return http.StatusBadGateway
	case verify.KindUnknown:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}
