// Package registry implements the metadata provider over an npm-compatible registry.
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.trai.ch/shift/internal/core/domain"
	"go.trai.ch/zerr"
)

// Client implements ports.Registry over HTTP.
type Client struct {
	registryURL string
	filesURL    string
	httpClient  *http.Client
}

// NewClient creates a Client for the given settings.
func NewClient(settings domain.RegistrySettings) *Client {
	return newClientWithHTTP(settings, &http.Client{Timeout: settings.Timeout})
}

func newClientWithHTTP(settings domain.RegistrySettings, client *http.Client) *Client {
	return &Client{
		registryURL: strings.TrimRight(settings.URL, "/"),
		filesURL:    strings.TrimRight(settings.FilesURL, "/"),
		httpClient:  client,
	}
}

// FetchMetadata returns the version, update buckets and migrations published by name at version.
// It returns nil, nil when the registry does not know the package or version.
func (c *Client) FetchMetadata(
	ctx context.Context,
	name string,
	version domain.Version,
) (*domain.PackageMetadata, error) {
	manifest, err := c.fetchManifest(ctx, name, version.String())
	if err != nil || manifest == nil {
		return nil, err
	}

	metadata := &domain.PackageMetadata{Version: domain.CoerceVersion(manifest.Version)}

	path := manifest.migrationsPath()
	if path == "" {
		return metadata, nil
	}

	data, err := c.fetchFile(ctx, name, manifest.Version, path)
	if err != nil {
		return nil, err
	}
	if err := parseMigrations(data, metadata); err != nil {
		err = zerr.With(err, "package", name)
		return nil, zerr.With(err, "path", path)
	}
	return metadata, nil
}

// ResolveTag returns the version a dist-tag of name points at.
func (c *Client) ResolveTag(ctx context.Context, name, tag string) (string, error) {
	manifest, err := c.fetchManifest(ctx, name, tag)
	if err != nil {
		return "", err
	}
	if manifest == nil {
		tagErr := zerr.With(domain.ErrTagNotFound, "package", name)
		return "", zerr.With(tagErr, "tag", tag)
	}
	return domain.CoerceVersion(manifest.Version).String(), nil
}

func (c *Client) fetchManifest(ctx context.Context, name, versionOrTag string) (*packageManifest, error) {
	u := fmt.Sprintf("%s/%s/%s", c.registryURL, url.PathEscape(name), url.PathEscape(versionOrTag))

	body, found, err := c.get(ctx, u)
	if err != nil {
		err = zerr.With(err, "package", name)
		return nil, zerr.With(err, "version", versionOrTag)
	}
	if !found {
		return nil, nil
	}

	var manifest packageManifest
	if err := json.Unmarshal(body, &manifest); err != nil {
		parseErr := zerr.With(zerr.Wrap(err, domain.ErrRegistryParseFailed.Error()), "package", name)
		return nil, zerr.With(parseErr, "version", versionOrTag)
	}
	return &manifest, nil
}

func (c *Client) fetchFile(ctx context.Context, name, version, path string) ([]byte, error) {
	u := fmt.Sprintf("%s/%s@%s/%s", c.filesURL, name, version, path)

	body, found, err := c.get(ctx, u)
	if err != nil {
		err = zerr.Wrap(err, domain.ErrMigrationsFetchFailed.Error())
	} else if !found {
		err = zerr.With(domain.ErrMigrationsFetchFailed, "status_code", http.StatusNotFound)
	}
	if err != nil {
		err = zerr.With(err, "package", name)
		return nil, zerr.With(err, "path", path)
	}
	return body, nil
}

// get performs a GET request. A 404 reports found == false without an error.
func (c *Client) get(ctx context.Context, u string) (body []byte, found bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, false, zerr.Wrap(err, domain.ErrRegistryRequestFailed.Error())
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, false, zerr.Wrap(err, domain.ErrRegistryRequestFailed.Error())
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusNotFound {
		return nil, false, nil
	}
	if resp.StatusCode != http.StatusOK {
		apiErr := zerr.With(domain.ErrRegistryRequestFailed, "status_code", resp.StatusCode)
		return nil, false, zerr.With(apiErr, "url", u)
	}

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, zerr.Wrap(err, domain.ErrRegistryRequestFailed.Error())
	}
	return body, true, nil
}
