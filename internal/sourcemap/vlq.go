package sourcemap

import "strings"

const base64Chars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

const (
	vlqShift    = 5
	vlqBase     = 1 << vlqShift
	vlqMask     = vlqBase - 1
	vlqContinue = vlqBase
)

// writeVLQ appends the base64 VLQ encoding of v.
func writeVLQ(b *strings.Builder, v int) {
	u := v << 1
	if v < 0 {
		u = (-v << 1) | 1
	}

	for {
		digit := u & vlqMask
		u >>= vlqShift

		if u > 0 {
			digit |= vlqContinue
		}

		b.WriteByte(base64Chars[digit])

		if u == 0 {
			return
		}
	}
}
