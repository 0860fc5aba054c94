package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	VerificationCodeTTL = 15 * time.Minute
	SessionTTL          = 24 * time.Hour
)

// GenerateVerificationCode возвращает 4 случайные цифры
func GenerateVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return "", fmt.Errorf("generate verification code: %w", err)
	}
	return fmt.Sprintf("%04d", n.Int64()), nil
}

func CodeExpiry(now time.Time, ttl time.Duration) time.Time {
	return now.Add(ttl)
}

// GenerateSessionToken returns 64 hex characters.
func GenerateSessionToken() string {
	a := strings.ReplaceAll(uuid.NewString(), "-", "")
	b := strings.ReplaceAll(uuid.NewString(), "-", "")
	return a + b
}
