/*
 * Copyright (c) 2025, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

// Package hash provides one-way hashing and verification of shared secrets.
package hash

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// CredAlgorithm names a supported hashing algorithm.
type CredAlgorithm string

const (
	// SHA256 is a salted SHA-256 digest of input followed by salt.
	SHA256 CredAlgorithm = "SHA256"
	// PBKDF2 is PBKDF2-HMAC-SHA256 with a 32 byte derived key.
	PBKDF2 CredAlgorithm = "PBKDF2"
)

const (
	// DefaultPBKDF2Iterations is used when a PBKDF2 credential does not state its iteration count.
	DefaultPBKDF2Iterations = 10000
	pbkdf2KeyLength         = 32
	saltLength              = 16
)

// Credential is a stored one-way hash of a secret.
type Credential struct {
	Algorithm  CredAlgorithm `json:"algorithm" yaml:"algorithm"`
	Hash       string        `json:"hash" yaml:"hash"`
	Salt       string        `json:"salt,omitempty" yaml:"salt,omitempty"`
	Iterations int           `json:"iterations,omitempty" yaml:"iterations,omitempty"`
}

// HasherInterface creates credentials from plaintext secrets.
type HasherInterface interface {
	Algorithm() CredAlgorithm
	NewCredential(input []byte) (Credential, error)
}

type sha256Hasher struct{}

type pbkdf2Hasher struct {
	iterations int
}

// NewHasher returns a hasher for the named algorithm.
func NewHasher(algorithm string, iterations int) (HasherInterface, error) {
	switch CredAlgorithm(strings.ToUpper(algorithm)) {
	case SHA256:
		return &sha256Hasher{}, nil
	case PBKDF2:
		if iterations <= 0 {
			iterations = DefaultPBKDF2Iterations
		}
		return &pbkdf2Hasher{iterations: iterations}, nil
	default:
		return nil, fmt.Errorf("unsupported hash algorithm: %s", algorithm)
	}
}

func (h *sha256Hasher) Algorithm() CredAlgorithm {
	return SHA256
}

func (h *sha256Hasher) NewCredential(input []byte) (Credential, error) {
	salt, err := GenerateSalt()
	if err != nil {
		return Credential{}, err
	}
	return NewSHA256Credential(input, salt), nil
}

func (h *pbkdf2Hasher) Algorithm() CredAlgorithm {
	return PBKDF2
}

func (h *pbkdf2Hasher) NewCredential(input []byte) (Credential, error) {
	salt, err := GenerateSalt()
	if err != nil {
		return Credential{}, err
	}
	return NewPBKDF2Credential(input, salt, h.iterations), nil
}

// NewSHA256Credential hashes the input with the given salt using SHA-256.
func NewSHA256Credential(input []byte, salt string) Credential {
	return Credential{
		Algorithm: SHA256,
		Hash:      sha256Hex(input, salt),
		Salt:      salt,
	}
}

// NewPBKDF2Credential derives a key from the input with the given salt and iteration count.
func NewPBKDF2Credential(input []byte, salt string, iterations int) Credential {
	return Credential{
		Algorithm:  PBKDF2,
		Hash:       pbkdf2Hex(input, salt, iterations),
		Salt:       salt,
		Iterations: iterations,
	}
}

// IsSupported reports whether the algorithm can be verified.
func IsSupported(algorithm CredAlgorithm) bool {
	return algorithm == SHA256 || algorithm == PBKDF2
}

// Verify hashes the input the same way the credential was produced and compares in constant time.
func Verify(input []byte, cred Credential) bool {
	var computed string
	switch cred.Algorithm {
	case SHA256:
		computed = sha256Hex(input, cred.Salt)
	case PBKDF2:
		iterations := cred.Iterations
		if iterations <= 0 {
			iterations = DefaultPBKDF2Iterations
		}
		computed = pbkdf2Hex(input, cred.Salt, iterations)
	default:
		return false
	}
	return subtle.ConstantTimeCompare([]byte(computed), []byte(strings.ToLower(cred.Hash))) == 1
}

// GenerateSalt generates a random base64 encoded salt.
func GenerateSalt() (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(salt), nil
}

func sha256Hex(input []byte, salt string) string {
	h := sha256.New()
	h.Write(input)
	h.Write([]byte(salt))
	return hex.EncodeToString(h.Sum(nil))
}

func pbkdf2Hex(input []byte, salt string, iterations int) string {
	return hex.EncodeToString(pbkdf2.Key(input, []byte(salt), iterations, pbkdf2KeyLength, sha256.New))
}
