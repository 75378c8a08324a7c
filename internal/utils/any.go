package utils

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"

	"github.com/google/uuid"
)

func ToJSONString(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "<marshal error>"
	}
	return string(b)
}

// UUIDHex returns a uuid4 as 32 lowercase hex characters, no dashes.
func UUIDHex() string {
	u := uuid.New()
	return hex.EncodeToString(u[:])
}

// RandomDigits returns n uniformly random decimal digits, e.g. for OTP
// codes. Bytes >= 250 are rejected so the mod-10 map stays unbiased.
func RandomDigits(n int) string {
	out := make([]byte, 0, n)
	buf := make([]byte, n)
	for len(out) < n {
		if _, err := rand.Read(buf); err != nil {
			panic(err)
		}
		for _, b := range buf {
			if b >= 250 {
				continue
			}
			out = append(out, '0'+b%10)
			if len(out) == n {
				break
			}
		}
	}
	return string(out)
}
