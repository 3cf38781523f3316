package utils

import (
    "crypto/rand"
    "encoding/binary"
    "strconv"
)

// NewResetCode draws a uniform 4-digit password-reset code from
// [1000, 9999] using crypto/rand and returns it as its canonical digit
// string.  Rejection sampling keeps the draw unbiased.
func NewResetCode() (string, error) {
    const span = 9000 // number of values in [1000, 9999]
    // Largest multiple of span that fits in a uint32; values at or above it
    // would skew the modulo and are redrawn.
    const limit = (1 << 32) / span * span
    var buf [4]byte
    for {
        if _, err := rand.Read(buf[:]); err != nil {
            return "", err
        }
        v := binary.BigEndian.Uint32(buf[:])
        if v >= limit {
            continue
        }
        return strconv.Itoa(int(v%span) + 1000), nil
    }
}
