// Package argon2id contains utilities for the argon2id protocol.
package argon2id

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

var (
	ErrInvalidHash         = errors.New("the encoded hash is not in the correct format")
	ErrIncompatibleVersion = errors.New("incompatible version of argon2")
)

const (
	defaultMemory      = 64 * 1024 // KiB
	defaultIterations  = 1
	defaultParallelism = 4
	defaultSaltLength  = 16
	defaultKeyLength   = 32

	numHashSections = 6
)

type Params struct {
	Memory      uint32
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

var DefaultParams = Params{
	Memory:      defaultMemory,
	Iterations:  defaultIterations,
	Parallelism: defaultParallelism,
	SaltLength:  defaultSaltLength,
	KeyLength:   defaultKeyLength,
}

// Hash derives an encoded argon2id hash with a fresh random salt.
func Hash(password string, p Params) (string, error) {
	salt := make([]byte, p.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}
	return encodeWithSalt(password, p, salt), nil
}

// Verify reports whether password matches the encoded hash, in
// constant time over the derived keys.
func Verify(password, encodedHash string) (bool, error) {
	p, salt, trueKey, err := decode(encodedHash)
	if err != nil {
		return false, err
	}

	givenKey := argon2.IDKey([]byte(password), salt, p.Iterations, p.Memory,
		p.Parallelism, p.KeyLength)
	return subtle.ConstantTimeCompare(givenKey, trueKey) == 1, nil
}

func encodeWithSalt(password string, p Params, salt []byte) string {
	key := argon2.IDKey([]byte(password), salt, p.Iterations, p.Memory,
		p.Parallelism, p.KeyLength)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, p.Memory, p.Iterations, p.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key))
}

func decode(encodedHash string) (p Params, salt, key []byte, err error) {
	sections := strings.Split(encodedHash, "$")
	if len(sections) != numHashSections || sections[1] != "argon2id" {
		return p, nil, nil, ErrInvalidHash
	}

	var version int
	if _, err := fmt.Sscanf(sections[2], "v=%d", &version); err != nil {
		return p, nil, nil, ErrInvalidHash
	}
	if version != argon2.Version {
		return p, nil, nil, ErrIncompatibleVersion
	}

	if _, err := fmt.Sscanf(sections[3], "m=%d,t=%d,p=%d",
		&p.Memory, &p.Iterations, &p.Parallelism); err != nil {
		return p, nil, nil, ErrInvalidHash
	}

	salt, err = base64.RawStdEncoding.Strict().DecodeString(sections[4])
	if err != nil {
		return p, nil, nil, ErrInvalidHash
	}
	p.SaltLength = uint32(len(salt))

	key, err = base64.RawStdEncoding.Strict().DecodeString(sections[5])
	if err != nil {
		return p, nil, nil, ErrInvalidHash
	}
	p.KeyLength = uint32(len(key))

	return p, salt, key, nil
}
