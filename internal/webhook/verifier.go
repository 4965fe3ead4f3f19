package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Verifier authenticates inbound deliveries. The platform signs
// "<timestamp>.<body>" with a shared secret and sends the result in a
// header shaped like "t=<unix>,v1=<hex>".
type Verifier struct {
	secret []byte
	skew   time.Duration
	now    func() time.Time
}

func NewVerifier(secret string, skew time.Duration) *Verifier {
	return &Verifier{
		secret: []byte(secret),
		skew:   skew,
		now:    time.Now,
	}
}

// Verify checks the signature header against the raw body. Any failure is an
// authentication error: terminal, and the body must not be parsed further.
func (v *Verifier) Verify(body []byte, header string) error {
	ts, sig, err := parseSignatureHeader(header)
	if err != nil {
		return Authentication(err)
	}

	age := v.now().Sub(time.Unix(ts, 0))
	if age > v.skew || age < -v.skew {
		return Authentication(fmt.Errorf("signed timestamp outside allowed skew of %s", v.skew))
	}

	mac := hmac.New(sha256.New, v.secret)
	fmt.Fprintf(mac, "%d.", ts)
	mac.Write(body)
	expected := mac.Sum(nil)

	given, err := hex.DecodeString(sig)
	if err != nil {
		return Authentication(fmt.Errorf("signature is not valid hex"))
	}

	if !hmac.Equal(expected, given) {
		return Authentication(fmt.Errorf("signature mismatch"))
	}

	return nil
}

func parseSignatureHeader(header string) (ts int64, sig string, err error) {
	if header == "" {
		return 0, "", fmt.Errorf("missing signature header")
	}

	for _, part := range strings.Split(header, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch k {
		case "t":
			ts, err = strconv.ParseInt(v, 10, 64)
			if err != nil {
				return 0, "", fmt.Errorf("invalid signature timestamp: %w", err)
			}
		case "v1":
			sig = v
		}
	}

	if ts == 0 || sig == "" {
		return 0, "", fmt.Errorf("signature header is missing t or v1")
	}

	return ts, sig, nil
}
