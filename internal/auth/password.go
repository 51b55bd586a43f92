// internal/auth/password.go
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

var ErrMalformedHash = errors.New("malformed password hash")

// PasswordConfig holds the argon2id cost parameters for new hashes. Stored
// hashes carry their own parameters, so raising these never locks anyone out.
type PasswordConfig struct {
	Time      uint32 `json:"time"`
	MemoryKiB uint32 `json:"memory_kib"`
	Threads   uint8  `json:"threads"`
	KeyLen    uint32 `json:"key_len"`
}

func DefaultPasswordConfig() PasswordConfig {
	return PasswordConfig{Time: 1, MemoryKiB: 64 * 1024, Threads: 4, KeyLen: 32}
}

type PasswordHasher struct {
	config PasswordConfig
}

func NewPasswordHasher() *PasswordHasher {
	return NewPasswordHasherWithConfig(DefaultPasswordConfig())
}

// NewPasswordHasherWithConfig fills zero fields from the defaults.
func NewPasswordHasherWithConfig(cfg PasswordConfig) *PasswordHasher {
	def := DefaultPasswordConfig()
	if cfg.Time == 0 {
		cfg.Time = def.Time
	}
	if cfg.MemoryKiB == 0 {
		cfg.MemoryKiB = def.MemoryKiB
	}
	if cfg.Threads == 0 {
		cfg.Threads = def.Threads
	}
	if cfg.KeyLen == 0 {
		cfg.KeyLen = def.KeyLen
	}
	return &PasswordHasher{config: cfg}
}

// Hash encodes password as $argon2id$v=19$m=<KiB>,t=<passes>,p=<threads>$salt$key.
func (p *PasswordHasher) Hash(password string) (string, error) {
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	c := p.config
	key := argon2.IDKey([]byte(password), salt, c.Time, c.MemoryKiB, c.Threads, c.KeyLen)
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, c.MemoryKiB, c.Time, c.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify checks password against a stored hash using the hash's own cost
// parameters.
func (p *PasswordHasher) Verify(password, encodedHash string) (bool, error) {
	stored, salt, key, err := decodeHash(encodedHash)
	if err != nil {
		return false, err
	}
	candidate := argon2.IDKey([]byte(password), salt, stored.Time, stored.MemoryKiB, stored.Threads, stored.KeyLen)
	return subtle.ConstantTimeCompare(key, candidate) == 1, nil
}

// NeedsRehash reports whether a stored hash was made with different cost
// parameters than new hashes get. Unreadable hashes always need one.
func (p *PasswordHasher) NeedsRehash(encodedHash string) bool {
	stored, _, _, err := decodeHash(encodedHash)
	if err != nil {
		return true
	}
	return stored != p.config
}

func decodeHash(encoded string) (PasswordConfig, []byte, []byte, error) {
	var cfg PasswordConfig

	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return cfg, nil, nil, ErrMalformedHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return cfg, nil, nil, fmt.Errorf("%w: unsupported version %q", ErrMalformedHash, parts[2])
	}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &cfg.MemoryKiB, &cfg.Time, &cfg.Threads); err != nil {
		return cfg, nil, nil, fmt.Errorf("%w: %v", ErrMalformedHash, err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return cfg, nil, nil, fmt.Errorf("%w: salt: %v", ErrMalformedHash, err)
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return cfg, nil, nil, fmt.Errorf("%w: key: %v", ErrMalformedHash, err)
	}
	cfg.KeyLen = uint32(len(key))
	return cfg, salt, key, nil
}
