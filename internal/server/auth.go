package server

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"os"
	"strconv"
	"time"
)

func parseSkew() time.Duration {
	defaultSkew := 5 * time.Minute
	minutes, err := strconv.Atoi(os.Getenv("ALLOWED_SKEW_MINUTES"))
	if err != nil {
		return defaultSkew
	}

	if minutes <= 0 {
		return 0 // disabled in local dev
	}

	return time.Duration(minutes) * time.Minute
}

// Sign returns the hex HMAC-SHA256 over timestamp, method and path.
func Sign(secret []byte, ts, method, path string) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(ts + "\n" + method + "\n" + path))
	return hex.EncodeToString(mac.Sum(nil))
}

func verifyHMAC(r *http.Request, secret []byte, now time.Time) bool {
	sig := r.Header.Get("X-Signature")
	ts := r.Header.Get("X-Timestamp")

	tsInt, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return false
	}

	if allowedSkew := parseSkew(); allowedSkew != 0 {
		t := time.Unix(tsInt, 0)
		if t.Before(now.Add(-allowedSkew)) || t.After(now.Add(allowedSkew)) {
			return false // stale or future request
		}
	}

	expectedSig := Sign(secret, ts, r.Method, r.URL.Path)
	return hmac.Equal([]byte(sig), []byte(expectedSig))
}

/*
Middleware factory is used to pass in the secret auth keys
*/
func AuthMiddleware(secrets map[string][]byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			secret, ok := secrets[r.Header.Get("X-Key-ID")]
			if !ok {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			if !verifyHMAC(r, secret, time.Now()) {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
