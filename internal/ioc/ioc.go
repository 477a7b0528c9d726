// IOC extraction and classification for investigation graph labels.
package ioc

import (
	"regexp"
	"strconv"
	"strings"
)

// Type identifies the kind of indicator.
type Type string

// Supported indicator types.
const (
	TypeIP     Type = "ip"
	TypeDomain Type = "domain"
	TypeHash   Type = "hash"
	TypeURL    Type = "url"
)

// IOC is one validated indicator of compromise.
type IOC struct {
	Type  Type   `json:"type"`
	Value string `json:"value"`
}

var (
	ipPattern     = regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}\b`)
	domainPattern = regexp.MustCompile(`(?i)(?:[a-z0-9-]+\.)+[a-z]{2,}`)
	hashPattern   = regexp.MustCompile(`(?i)\b(?:[a-f0-9]{32}|[a-f0-9]{40}|[a-f0-9]{64})\b`)
	urlPattern    = regexp.MustCompile(`(?i)https?://[^\s/$.?#].[^\s]*`)
)

// Refang rewrites defanged notations like "example[.]com" back to plain form.
func Refang(text string) string {
	return strings.ReplaceAll(text, "[.]", ".")
}

func validIP(ip string) bool {
	parts := strings.Split(ip, ".")
	if len(parts) != 4 {
		return false
	}
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || n > 255 {
			return false
		}
	}
	return true
}

// Extract returns the unique valid indicators found in text.
// Defanged representations are normalized before matching.
// Result order follows first occurrence per type: ip, domain, hash, url.
func Extract(text string) []IOC {
	if text == "" {
		return nil
	}
	text = Refang(text)

	seen := make(map[IOC]bool)
	var out []IOC
	add := func(i IOC) {
		if !seen[i] {
			seen[i] = true
			out = append(out, i)
		}
	}

	for _, m := range ipPattern.FindAllString(text, -1) {
		if validIP(m) {
			add(IOC{TypeIP, m})
		}
	}
	for _, m := range domainPattern.FindAllString(text, -1) {
		v := strings.ToLower(m)
		// skip if it's actually an IP
		if ipPattern.MatchString(v) && validIP(v) {
			continue
		}
		add(IOC{TypeDomain, v})
	}
	for _, m := range hashPattern.FindAllString(text, -1) {
		add(IOC{TypeHash, strings.ToLower(m)})
	}
	for _, m := range urlPattern.FindAllString(text, -1) {
		add(IOC{TypeURL, m})
	}
	return out
}

// Classify returns the indicator type of a single label, or "" when the
// label does not parse as exactly one known indicator form.
func Classify(label string) Type {
	label = strings.TrimSpace(Refang(label))
	if label == "" {
		return ""
	}
	if urlPattern.FindString(label) == label {
		return TypeURL
	}
	if ipPattern.FindString(label) == label && validIP(label) {
		return TypeIP
	}
	if hashPattern.FindString(label) == label {
		return TypeHash
	}
	if strings.EqualFold(domainPattern.FindString(label), label) {
		return TypeDomain
	}
	return ""
}
