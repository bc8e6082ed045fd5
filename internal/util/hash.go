package util

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
)

// ContentHash derives the cache key for a summarization request. Every input
// that can change the engine's output is part of the key.
func ContentHash(text, title string, maxSentences int) string {
	hasher := sha256.New()
	hasher.Write([]byte(strconv.Itoa(maxSentences)))
	hasher.Write([]byte{0})
	hasher.Write([]byte(title))
	hasher.Write([]byte{0})
	hasher.Write([]byte(text))
	return hex.EncodeToString(hasher.Sum(nil))[:32]
}
