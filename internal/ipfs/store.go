package ipfs

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// ErrStorageUnavailable indicates the storage backend could not be reached
// or is not configured for remote pinning.
var ErrStorageUnavailable = errors.New("storage unavailable")

// ErrUploadRejected indicates the backend refused the payload.
var ErrUploadRejected = errors.New("upload rejected")

// Store uploads file bytes and returns a stable content identifier.
type Store interface {
	Upload(ctx context.Context, data []byte, name string) (string, error)
	Mode() string
}

// NewFromEnv selects a backend from the environment: Pinata when PINATA_JWT
// is set, otherwise local disk under uploads/.
func NewFromEnv() Store {
	if jwt := os.Getenv("PINATA_JWT"); jwt != "" {
		return NewPinataStore(jwt)
	}
	return NewLocalStore("uploads")
}

const pinataEndpoint = "https://api.pinata.cloud/pinning/pinFileToIPFS"

// PinataStore pins files to IPFS through the Pinata HTTP API.
type PinataStore struct {
	jwt      string
	endpoint string
	client   *http.Client
}

func NewPinataStore(jwt string) *PinataStore {
	return &PinataStore{
		jwt:      jwt,
		endpoint: pinataEndpoint,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *PinataStore) Mode() string { return "pinata" }

func (s *PinataStore) Upload(ctx context.Context, data []byte, name string) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", name)
	if err != nil {
		return "", fmt.Errorf("error building upload body: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("error building upload body: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("error building upload body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, &body)
	if err != nil {
		return "", fmt.Errorf("error creating pinata request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.jwt)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return "", fmt.Errorf("%w: pinata returned %d: %s", ErrUploadRejected, resp.StatusCode, respBody)
		}
		return "", fmt.Errorf("%w: pinata returned %d: %s", ErrStorageUnavailable, resp.StatusCode, respBody)
	}

	var result struct {
		IpfsHash string `json:"IpfsHash"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("error decoding pinata response: %w", err)
	}
	if result.IpfsHash == "" {
		return "", fmt.Errorf("%w: pinata response missing IpfsHash", ErrStorageUnavailable)
	}
	return result.IpfsHash, nil
}

// LocalStore writes files to local disk. It is the fallback when no pinning
// credentials are configured; identifiers it returns are filenames served
// back over /uploads/.
type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) *LocalStore {
	return &LocalStore{dir: dir}
}

func (s *LocalStore) Mode() string { return "local" }

func (s *LocalStore) Upload(ctx context.Context, data []byte, name string) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	hash := sha256.Sum256(data)
	uniqueFilename := fmt.Sprintf("%s-%d%s",
		hex.EncodeToString(hash[:16]),
		time.Now().Unix(),
		filepath.Ext(name))

	if err := os.WriteFile(filepath.Join(s.dir, uniqueFilename), data, 0o644); err != nil {
		return "", fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return uniqueFilename, nil
}
