package project

import (
	"crypto/sha256"
	"encoding/hex"
)

// Digest - фиксированный 256 битный хеш содержимого.
type Digest [32]byte

// Sum hashes raw file content.
func Sum(content []byte) Digest {
	return sha256.Sum256(content)
}

// Combine строит агрегированный хеш: H( content || dep1 || dep2 ... ).
// Порядок deps должен быть детерминированным (порядок include-заголовков).
func Combine(content Digest, deps ...Digest) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, d := range deps {
		_, _ = h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// IsZero reports whether d was never computed.
func (d Digest) IsZero() bool {
	return d == Digest{}
}

func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}
