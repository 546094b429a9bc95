package middlewares

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const HeaderAPIKey = "X-API-Key"

// ParseNetworks reads CIDR notations. A bare IP is taken as a single host.
func ParseNetworks(cidrs []string) ([]*net.IPNet, error) {
	networks := []*net.IPNet{}
	for _, c := range cidrs {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if !strings.Contains(c, "/") {
			ip := net.ParseIP(c)
			if ip == nil {
				return nil, fmt.Errorf("invalid address %q", c)
			}
			if ip.To4() != nil {
				c += "/32"
			} else {
				c += "/128"
			}
		}
		_, network, err := net.ParseCIDR(c)
		if err != nil {
			return nil, err
		}
		networks = append(networks, network)
	}
	return networks, nil
}

func networksContain(networks []*net.IPNet, ip net.IP) bool {
	for _, n := range networks {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}

func hasValidAPIKey(c *gin.Context, validKeys []string) bool {
	key := c.GetHeader(HeaderAPIKey)
	if key == "" {
		return false
	}
	for _, vk := range validKeys {
		if key == vk {
			return true
		}
	}
	return false
}

// AllowedClients lets a request through when the client address is inside
// one of the networks, or when it carries one of the API keys. With no
// networks and no keys every client is allowed.
// The client address is gin's ClientIP, so forwarding headers only count
// when the router's trusted proxies are set.
func AllowedClients(networks []*net.IPNet, validKeys []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if len(networks) == 0 && len(validKeys) == 0 {
			c.Next()
			return
		}

		ip := net.ParseIP(c.ClientIP())
		if ip != nil && networksContain(networks, ip) {
			c.Next()
			return
		}
		if hasValidAPIKey(c, validKeys) {
			c.Next()
			return
		}

		slog.Warn("client not allowed", slog.String("clientIP", c.ClientIP()), slog.String("path", c.Request.URL.Path))
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "this service is only available from allowed networks"})
	}
}
