package sqlite

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/ericfisherdev/statuspanel/internal/domain/model"
	"github.com/ericfisherdev/statuspanel/internal/domain/port/driven"
)

// WorkspacesKey is the credentials row holding the encrypted workspace list.
const WorkspacesKey = "workspaces"

// Compile-time interface satisfaction check.
var _ driven.CredentialStore = (*CredentialRepo)(nil)

// CredentialRepo is the encrypted SQLite implementation of the CredentialStore port.
// The serialized workspace list is encrypted with AES-256-GCM before write and
// decrypted after read; it never touches the plain preferences table.
type CredentialRepo struct {
	db  *DB
	key []byte // 32-byte AES-256 key; nil when encryption is disabled.
}

// NewCredentialRepo creates a new CredentialRepo. key must be 32 bytes for AES-256-GCM,
// or nil to disable credential storage (all operations will return ErrEncryptionKeyNotSet).
func NewCredentialRepo(db *DB, key []byte) *CredentialRepo {
	return &CredentialRepo{db: db, key: key}
}

// Load returns the decrypted workspace list, or (nil, nil) when none is stored.
func (r *CredentialRepo) Load(ctx context.Context) ([]model.Workspace, error) {
	if r.key == nil {
		return nil, driven.ErrEncryptionKeyNotSet
	}

	const query = `SELECT value FROM credentials WHERE key = ?`
	var encoded string
	err := r.db.Reader.QueryRowContext(ctx, query, WorkspacesKey).Scan(&encoded)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get credentials: %w", err)
	}

	plaintext, err := r.open(WorkspacesKey, encoded)
	if err != nil {
		return nil, fmt.Errorf("decrypt credentials: %w", err)
	}

	var workspaces []model.Workspace
	if err := json.Unmarshal(plaintext, &workspaces); err != nil {
		return nil, fmt.Errorf("decode credentials: %w", err)
	}
	return workspaces, nil
}

// Save encrypts and replaces the stored workspace list.
func (r *CredentialRepo) Save(ctx context.Context, workspaces []model.Workspace) error {
	if r.key == nil {
		return driven.ErrEncryptionKeyNotSet
	}
	if workspaces == nil {
		workspaces = []model.Workspace{}
	}

	data, err := json.Marshal(workspaces)
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}

	encoded, err := r.seal(WorkspacesKey, data)
	if err != nil {
		return fmt.Errorf("encrypt credentials: %w", err)
	}

	const query = `INSERT OR REPLACE INTO credentials (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)`
	if _, err := r.db.Writer.ExecContext(ctx, query, WorkspacesKey, encoded); err != nil {
		return fmt.Errorf("set credentials: %w", err)
	}
	return nil
}

// seal encrypts plaintext with AES-256-GCM and returns base64(nonce || ciphertext || tag).
// The row key is authenticated as additional data, so a value copied into
// another row fails to open.
func (r *CredentialRepo) seal(rowKey string, plaintext []byte) (string, error) {
	gcm, err := r.aead()
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("rand nonce: %w", err)
	}

	sealed := gcm.Seal(nonce, nonce, plaintext, []byte(rowKey))
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// open reverses seal for the value stored under rowKey.
func (r *CredentialRepo) open(rowKey, encoded string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("base64 decode: %w", err)
	}

	gcm, err := r.aead()
	if err != nil {
		return nil, err
	}

	if len(data) < gcm.NonceSize() {
		return nil, errors.New("ciphertext too short")
	}

	nonce, ciphertext := data[:gcm.NonceSize()], data[gcm.NonceSize():]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, []byte(rowKey))
	if err != nil {
		return nil, fmt.Errorf("gcm open: %w", err)
	}
	return plaintext, nil
}

func (r *CredentialRepo) aead() (cipher.AEAD, error) {
	block, err := aes.NewCipher(r.key)
	if err != nil {
		return nil, fmt.Errorf("aes cipher: %w", err)
	}
	return cipher.NewGCM(block)
}
