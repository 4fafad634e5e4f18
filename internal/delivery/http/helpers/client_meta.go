package helpers

import (
	"net"
	"net/http"
	"strings"

	"topicmatcher/internal/domain"
)

// ClientMeta extracts the client IP and User-Agent from the request into a
// domain.RequestMeta. The first entry of X-Forwarded-For wins over X-Real-IP,
// which wins over RemoteAddr. Missing values are left nil.
func ClientMeta(r *http.Request) domain.RequestMeta {
	var meta domain.RequestMeta

	ip := ""
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		ip = strings.TrimSpace(strings.Split(fwd, ",")[0])
	} else if real := r.Header.Get("X-Real-IP"); real != "" {
		ip = strings.TrimSpace(real)
	} else if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		ip = host
	}
	if ip != "" {
		meta.IPAddress = &ip
	}

	if ua := r.UserAgent(); ua != "" {
		meta.UserAgent = &ua
	}
	return meta
}
