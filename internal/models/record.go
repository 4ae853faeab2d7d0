package models

import "time"

// NewsRecord represents a verified claim: the text, the content identifier
// of the uploaded file, the hash binding them to a timestamp, and the
// on-chain transaction that attested the hash.
type NewsRecord struct {
	ID            string    `json:"id"`
	Text          string    `json:"text"`
	CID           string    `json:"cid"`
	Hash          string    `json:"hash"`
	Tx            *string   `json:"tx"`
	FileName      string    `json:"fileName"`
	FileType      string    `json:"fileType"`
	Timestamp     string    `json:"timestamp"`
	WalletAddress *string   `json:"walletAddress"`
	Mode          string    `json:"mode"`
	CreatedAt     time.Time `json:"createdAt"`
}

// InsertNewsRecord is the caller-supplied portion of a record. The
// repository assigns the ID and CreatedAt on insert.
type InsertNewsRecord struct {
	Text          string
	CID           string
	Hash          string
	Tx            *string
	FileName      string
	FileType      string
	Timestamp     string
	WalletAddress *string
	Mode          string
}
