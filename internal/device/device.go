// Package device classifies the calling client from its User-Agent and
// derives the session fingerprint bound to it at login.
package device

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	ua "github.com/mileusna/useragent"
)

// Info is the classified client.
type Info struct {
	Browser    string
	OS         string
	DeviceType string
	IsMobile   int
}

// Detect parses the User-Agent header. Desktop clients report IsMobile 0,
// everything else 1.
func Detect(userAgent string) Info {
	parsed := ua.Parse(userAgent)

	deviceType := "desktop"
	isMobile := 0
	switch {
	case parsed.Tablet:
		deviceType = "tablet"
		isMobile = 1
	case parsed.Mobile:
		deviceType = "mobile"
		isMobile = 1
	case parsed.Bot:
		deviceType = "bot"
		isMobile = 1
	}

	browser := parsed.Name
	if browser == "" {
		browser = "unknown"
	}
	os := parsed.OS
	if os == "" {
		os = "unknown"
	}

	return Info{
		Browser:    browser,
		OS:         os,
		DeviceType: deviceType,
		IsMobile:   isMobile,
	}
}

// Fingerprint hashes the raw User-Agent, the classified client and the
// connection IP into the hex digest the auth server stores alongside the
// session token.
func Fingerprint(userAgent string, info Info, ip string) string {
	seed := fmt.Sprintf("%s%d%s%s%s%s",
		userAgent, info.IsMobile, info.Browser, info.OS, ip, info.DeviceType)
	sum := sha256.Sum256([]byte(seed))
	return hex.EncodeToString(sum[:])
}
