// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

/*
Package core holds the concepts and pure logic of the deployer's domain:
what a module deployment request is, and how the states of its instances
fold into one module state.

Nothing in here may refer to a particular cluster substrate, to transport
or to serialization. In particular:

  - it's fine to import from any subpackage of "github.com/juju/moduledeployer/core"
  - but *never* import from any *other* subpackage of "github.com/juju/moduledeployer"
*/
package core
