package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
)

// ErrNotFound indicates the transaction is unknown to the ledger.
var ErrNotFound = errors.New("transaction not found")

// Log is one event record emitted during a transaction.
type Log struct {
	Address common.Address
	Topics  []common.Hash
	Data    []byte
}

// Receipt is the outcome of a mined transaction: overall status, the
// destination address and the events it emitted, in emission order.
type Receipt struct {
	Status bool
	To     *common.Address
	Logs   []Log
}

// Client provides read-only access to transaction receipts.
type Client interface {
	Receipt(ctx context.Context, txHash string) (*Receipt, error)
}

// RPCClient fetches receipts over JSON-RPC. It holds no state beyond the
// connection and never retries; retry policy belongs to the caller.
type RPCClient struct {
	eth *ethclient.Client
}

func Dial(rawurl string) (*RPCClient, error) {
	eth, err := ethclient.Dial(rawurl)
	if err != nil {
		return nil, fmt.Errorf("error dialing ledger rpc: %w", err)
	}
	return &RPCClient{eth: eth}, nil
}

func (c *RPCClient) Receipt(ctx context.Context, txHash string) (*Receipt, error) {
	hash := common.HexToHash(txHash)

	receipt, err := c.eth.TransactionReceipt(ctx, hash)
	if err != nil {
		if errors.Is(err, ethereum.NotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching receipt: %w", err)
	}

	// The receipt does not carry the destination; that lives on the
	// transaction itself.
	tx, _, err := c.eth.TransactionByHash(ctx, hash)
	if err != nil {
		if errors.Is(err, ethereum.NotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching transaction: %w", err)
	}

	out := &Receipt{
		Status: receipt.Status == 1,
		To:     tx.To(),
	}
	for _, l := range receipt.Logs {
		out.Logs = append(out.Logs, Log{
			Address: l.Address,
			Topics:  l.Topics,
			Data:    l.Data,
		})
	}
	return out, nil
}
