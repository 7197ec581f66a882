package api

import (
	"net/http"
	"strconv"

	"github.com/cardvault/cardvault-server/internal/store"
)

// parsePageParams reads the one-based page and page_size query parameters
// and converts them to the zero-based paging the store expects. Malformed
// values fall back to the defaults.
func parsePageParams(r *http.Request) (page, pageSize int) {
	page = 0
	pageSize = store.DefaultPageSize

	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p >= 1 {
			page = p - 1
		}
	}

	if sizeStr := r.URL.Query().Get("page_size"); sizeStr != "" {
		if size, err := strconv.Atoi(sizeStr); err == nil {
			pageSize = size
		}
	}

	page, pageSize = store.NormalizePaging(page, pageSize)
	return page, pageSize
}

// getClientIP extracts the client IP from the request, preferring proxy
// headers over RemoteAddr.
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// Take the first IP in the chain.
		for i := 0; i < len(xff); i++ {
			if xff[i] == ',' {
				return xff[:i]
			}
		}
		return xff
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	// Fall back to RemoteAddr (strip port).
	ip := r.RemoteAddr
	for i := len(ip) - 1; i >= 0; i-- {
		if ip[i] == ':' {
			return ip[:i]
		}
	}
	return ip
}
