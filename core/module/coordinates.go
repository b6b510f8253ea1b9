// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package module

import (
	"strings"

	"github.com/juju/errors"
)

// Coordinates locate a module artifact in a repository.
type Coordinates struct {
	GroupID    string
	ArtifactID string
	Extension  string
	Classifier string
	Version    string
}

// Validate returns an error if the coordinates are incomplete.
func (c Coordinates) Validate() error {
	if c.GroupID == "" {
		return errors.NotValidf("empty group id")
	}
	if c.ArtifactID == "" {
		return errors.NotValidf("empty artifact id")
	}
	if c.Version == "" {
		return errors.NotValidf("empty version")
	}
	if c.Classifier != "" && c.Extension == "" {
		return errors.NotValidf("classifier %q without extension", c.Classifier)
	}
	return nil
}

// String renders the coordinates as
// group:artifact[:extension[:classifier]]:version.
func (c Coordinates) String() string {
	parts := []string{c.GroupID, c.ArtifactID}
	if c.Extension != "" {
		parts = append(parts, c.Extension)
	}
	if c.Classifier != "" {
		parts = append(parts, c.Classifier)
	}
	parts = append(parts, c.Version)
	return strings.Join(parts, ":")
}

// ParseCoordinates is the inverse of Coordinates.String.
func ParseCoordinates(s string) (Coordinates, error) {
	parts := strings.Split(s, ":")
	var c Coordinates
	switch len(parts) {
	case 3:
		c = Coordinates{GroupID: parts[0], ArtifactID: parts[1], Version: parts[2]}
	case 4:
		c = Coordinates{GroupID: parts[0], ArtifactID: parts[1], Extension: parts[2], Version: parts[3]}
	case 5:
		c = Coordinates{
			GroupID:    parts[0],
			ArtifactID: parts[1],
			Extension:  parts[2],
			Classifier: parts[3],
			Version:    parts[4],
		}
	default:
		return Coordinates{}, errors.NotValidf("coordinates %q", s)
	}
	if err := c.Validate(); err != nil {
		return Coordinates{}, errors.Annotatef(err, "parsing coordinates %q", s)
	}
	return c, nil
}
