package registry

import (
	"net/url"

	"go.trai.ch/shift/internal/core/domain"
	"go.trai.ch/shift/internal/core/ports"
	"go.trai.ch/zerr"
)

// Connector implements ports.RegistryConnector.
type Connector struct{}

// NewConnector creates a new Connector.
func NewConnector() *Connector {
	return &Connector{}
}

// Connect validates settings and returns a Client for them.
func (c *Connector) Connect(settings domain.RegistrySettings) (ports.Registry, error) {
	for key, raw := range map[string]string{"registry.url": settings.URL, "registry.files": settings.FilesURL} {
		u, err := url.Parse(raw)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrInvalidRegistryURL.Error()), key, raw)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return nil, zerr.With(domain.ErrInvalidRegistryURL, key, raw)
		}
	}
	if settings.Timeout <= 0 {
		settings.Timeout = domain.DefaultRegistryTimeout
	}
	return NewClient(settings), nil
}
