// Package device turns raw User-Agent headers into short display names for request logs.
package device

import (
	"strings"

	"github.com/mssola/useragent"
)

const unknownDevice = "Unknown Device"

// DisplayName formats a User-Agent as "<browser> on <os>".
func DisplayName(userAgent string) string {
	userAgent = strings.TrimSpace(userAgent)
	if userAgent == "" {
		return unknownDevice
	}

	ua := useragent.New(userAgent)
	browser, _ := ua.Browser()
	if ua.Bot() {
		if browser == "" {
			return "Bot"
		}
		return "Bot (" + browser + ")"
	}
	if browser == "" {
		browser = "Unknown Browser"
	}

	system := strings.TrimSpace(ua.OS())
	if system == "" {
		system = strings.TrimSpace(ua.Platform())
	}
	if system == "" {
		system = "Unknown OS"
	}
	return browser + " on " + system
}
