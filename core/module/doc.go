// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package module holds the request model handed to a module deployer: the
// coordinates of the artifact to run, the definition of the module inside its
// stream, and the identifier a deployment is addressed by afterwards.
package module
