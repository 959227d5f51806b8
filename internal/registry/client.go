// Package registry is the high-level client for a forge's package
// registry. It layers validation, duplicate refusal, progress
// instrumentation and a typed error taxonomy over a low-level session.
package registry

import (
	"github.com/rs/zerolog"

	"pkgforge/internal/session"
)

// Client bundles the operation managers sharing one forge session.
// Releases, Pipelines and Branches are placeholders; Packages and
// Projects are the implemented surfaces.
type Client struct {
	Packages  *Packages
	Projects  *Discovery
	Releases  *Releases
	Pipelines *Pipelines
	Branches  *Branches
}

// NewClient creates a client over an authenticated session. A nil
// logger silences the client.
func NewClient(sess session.Session, logger *zerolog.Logger) *Client {
	log := zerolog.Nop()
	if logger != nil {
		log = *logger
	}

	return &Client{
		Packages:  NewPackages(sess, log),
		Projects:  NewDiscovery(sess, log),
		Releases:  &Releases{sess: sess},
		Pipelines: &Pipelines{sess: sess},
		Branches:  &Branches{sess: sess},
	}
}
