package utils

import (
	crand "crypto/rand"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
)

const bookingCodeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

var codeCounter uint32

// GenerateBookingCode creates a human-shareable booking reference.
// Format: BMS + millisecond timestamp in base36 + 2-char sequence + 4 random
// base36 chars. The sequence keeps codes distinct within one millisecond;
// the booking_code unique constraint backstops the rest and callers
// regenerate on collision.
func GenerateBookingCode() string {
	timePart := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))
	seq := atomic.AddUint32(&codeCounter, 1)

	buf := make([]byte, 4)
	if _, err := crand.Read(buf); err != nil {
		// fall back to the sequence bits
		for i := range buf {
			buf[i] = byte(seq >> (8 * i))
		}
	}

	var b strings.Builder
	b.Grow(len("BMS") + len(timePart) + 6)
	b.WriteString("BMS")
	b.WriteString(timePart)
	b.WriteByte(bookingCodeAlphabet[(seq/36)%36])
	b.WriteByte(bookingCodeAlphabet[seq%36])
	for _, c := range buf {
		b.WriteByte(bookingCodeAlphabet[int(c)%len(bookingCodeAlphabet)])
	}

	return b.String()
}
