// Package sites matches URLs against parent-managed allow and block
// lists by comparing registrable domains, so "m.badsite.com/page"
// matches a "badsite.com" list entry.
package sites

import (
	"net/url"
	"strings"

	"github.com/weppos/publicsuffix-go/publicsuffix"
)

// RootDomain extracts the registrable domain (eTLD+1) from a URL or
// bare host. Returns false when no domain can be determined.
func RootDomain(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}

	// A scope string that looks like a domain but lacks a scheme makes
	// url.Parse miss the host; prepending one makes parsing reliable.
	parseable := raw
	if !strings.Contains(parseable, "://") && strings.Contains(parseable, ".") {
		parseable = "http://" + parseable
	}

	host := raw
	if u, err := url.Parse(parseable); err == nil && u.Host != "" {
		host = u.Hostname()
	} else {
		// Fallback for things that are not valid URLs.
		host = strings.Split(host, "/")[0]
		host = strings.Split(host, ":")[0]
	}

	host = strings.ToLower(host)
	if !strings.Contains(host, ".") {
		return "", false
	}

	domain, err := publicsuffix.Domain(host)
	if err != nil {
		return "", false
	}
	return strings.ToLower(domain), true
}

// Matches reports whether rawURL falls under any entry of the list.
// Entries are compared by registrable domain; entries that have no
// parseable domain fall back to substring containment.
func Matches(list []string, rawURL string) (string, bool) {
	root, haveRoot := RootDomain(rawURL)
	lowerURL := strings.ToLower(rawURL)

	for _, entry := range list {
		if entry == "" {
			continue
		}
		if entryRoot, ok := RootDomain(entry); ok && haveRoot {
			if entryRoot == root {
				return entryRoot, true
			}
			continue
		}
		if strings.Contains(lowerURL, strings.ToLower(strings.TrimSpace(entry))) {
			return entry, true
		}
	}
	return "", false
}
