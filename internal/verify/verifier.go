package verify

import (
	"context"
	"errors"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/crypto/sha3"

	"truthchain/internal/hashing"
	"truthchain/internal/ledger"
	"truthchain/internal/models"
)

// Mode reports how much trust a successful verification established.
type Mode int

const (
	// ModeTrusted means the attestation was matched against an on-ledger
	// event emitted by the configured contract.
	ModeTrusted Mode = iota
	// ModeDegraded means no contract address is configured; the record was
	// accepted on hash recomputation alone.
	ModeDegraded
)

func (m Mode) String() string {
	if m == ModeDegraded {
		return "degraded"
	}
	return "trusted"
}

// RecordStoredSignature is the attestation event the contract emits when a
// hash is recorded on-ledger.
const RecordStoredSignature = "RecordStored(bytes32,string,address,uint256)"

// RecordStoredID is the canonical event signature identifier: the
// Keccak-256 of the event signature, matched against topics[0].
var RecordStoredID = EventID(RecordStoredSignature)

// EventID computes the canonical signature identifier for an event shape.
func EventID(signature string) common.Hash {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(signature))
	return common.BytesToHash(h.Sum(nil))
}

// CanonicalHash normalizes a hex fingerprint to its stored form: no 0x
// prefix, lowercase. Every hash comparison and every persisted hash goes
// through this, so one fingerprint has exactly one representation.
func CanonicalHash(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, "0x"))
}

// Submission is a client's claim that a transaction attested a hash.
// Nothing in it is trusted: the hash is recomputed and the transaction is
// checked against the ledger.
type Submission struct {
	Text          string
	CID           string
	Hash          string
	Tx            string
	Timestamp     string
	WalletAddress string
}

// Verifier independently confirms that a submission's attestation was truly
// recorded on-ledger by the configured contract. An empty ContractAddress
// disables ledger checks and downgrades every acceptance to ModeDegraded.
type Verifier struct {
	Ledger          ledger.Client
	ContractAddress string
}

// Verify runs the gate sequence over a submission. Gates are strictly
// ordered and fail-fast: the first failing gate rejects the attempt with a
// typed error and nothing is persisted. On acceptance the returned Mode
// reports whether the ledger was consulted.
func (v *Verifier) Verify(ctx context.Context, sub Submission, existing []models.NewsRecord) (Mode, error) {
	expected := hashing.Generate(sub.Text, sub.CID, sub.Timestamp)
	claimed := CanonicalHash(sub.Hash)
	if expected != claimed {
		return 0, fail(KindHashMismatch, "the provided hash does not match the content")
	}

	for _, rec := range existing {
		if CanonicalHash(rec.Hash) == claimed {
			return 0, fail(KindDuplicate, "this content has already been verified")
		}
		if rec.Tx != nil && strings.EqualFold(*rec.Tx, sub.Tx) {
			return 0, fail(KindDuplicate, "this transaction has already been recorded")
		}
	}

	if v.ContractAddress == "" {
		return ModeDegraded, nil
	}
	contract := common.HexToAddress(v.ContractAddress)

	receipt, err := v.Ledger.Receipt(ctx, sub.Tx)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			return 0, fail(KindTxNotFound, "transaction not found on blockchain")
		}
		return 0, fail(KindLedgerUnreachable, "could not reach the blockchain: "+err.Error())
	}
	if !receipt.Status {
		return 0, fail(KindTxFailed, "transaction failed on blockchain")
	}

	if receipt.To == nil || *receipt.To != contract {
		return 0, fail(KindWrongContract, "transaction was not sent to the attestation contract")
	}

	event, ok := findRecordStored(receipt.Logs, contract)
	if !ok {
		return 0, fail(KindEventNotFound, "RecordStored event not found in transaction")
	}

	// topics[1] carries the recorded hash, left-padded to 32 bytes.
	if event.Topics[1] != common.HexToHash(claimed) {
		return 0, fail(KindEventHashMismatch, "the hash in the blockchain event does not match")
	}

	if sub.WalletAddress != "" {
		// topics[2] carries the submitter, right-aligned in the 32-byte topic.
		submitter := common.BytesToAddress(event.Topics[2].Bytes())
		if submitter != common.HexToAddress(sub.WalletAddress) {
			return 0, fail(KindSubmitterMismatch, "the transaction was not submitted by the provided wallet")
		}
	}

	return ModeTrusted, nil
}

// findRecordStored scans the receipt's events for a RecordStored emitted by
// the expected contract. Both the signature topic and the emitting address
// must match; a matching signature from another contract is not an
// attestation.
func findRecordStored(logs []ledger.Log, contract common.Address) (ledger.Log, bool) {
	for _, l := range logs {
		if len(l.Topics) >= 3 && l.Topics[0] == RecordStoredID && l.Address == contract {
			return l, true
		}
	}
	return ledger.Log{}, false
}
