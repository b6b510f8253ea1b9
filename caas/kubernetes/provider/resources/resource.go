// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package resources

import (
	"context"
	"fmt"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
)

// Resource is a kubernetes object managed by the module deployer.
type Resource interface {
	metav1.ObjectMetaAccessor
	// Clone returns a copy of the resource.
	Clone() Resource
	// ID returns a comparable ID for the resource.
	ID() ID
	// Apply creates or patches the resource.
	Apply(ctx context.Context, client kubernetes.Interface) error
	// Get refreshes the resource, returning a NotFound error when it does
	// not exist.
	Get(ctx context.Context, client kubernetes.Interface) error
	// Delete removes the resource. A missing resource is not an error.
	Delete(ctx context.Context, client kubernetes.Interface) error
}

// ID identifies a resource.
type ID struct {
	Type      string
	Name      string
	Namespace string
}

func (id ID) String() string {
	return fmt.Sprintf("%s %s/%s", id.Type, id.Namespace, id.Name)
}

// Applier queues resource operations and runs them in order.
type Applier interface {
	Apply(...Resource)
	Delete(...Resource)
	ApplySet(current []Resource, desired []Resource)
	Run(ctx context.Context, client kubernetes.Interface, noRollback bool) error
}
