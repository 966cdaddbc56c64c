package ratelimit

import "strings"

// unlimited lists the method+path pairs that are never rate limited
var unlimited = map[string]bool{
	"GET /health": true,
}

// MatchEndpoint returns the configuration governing a request, or nil when
// the default limit applies. An exact path wins; otherwise the longest
// configured prefix ending in "/" matches, so "/api/resumes/" covers
// "/api/resumes/{id}/document". Unlimited endpoints return a zero limit.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if unlimited[method+" "+path] {
		return &EndpointConfig{Path: path, Method: method}
	}

	var best *EndpointConfig
	for i := range configs {
		c := &configs[i]
		if c.Method != method {
			continue
		}
		if c.Path == path {
			return c
		}
		if strings.HasSuffix(c.Path, "/") && strings.HasPrefix(path, c.Path) {
			if best == nil || len(c.Path) > len(best.Path) {
				best = c
			}
		}
	}
	return best
}
