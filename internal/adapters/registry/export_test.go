package registry

import (
	"net/http"

	"go.trai.ch/shift/internal/core/domain"
)

// NewClientWithHTTP exports newClientWithHTTP for testing.
func NewClientWithHTTP(settings domain.RegistrySettings, client *http.Client) *Client {
	return newClientWithHTTP(settings, client)
}
