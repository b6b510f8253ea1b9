// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package provider

import (
	"sync"

	"github.com/go-logr/logr"
	"github.com/juju/errors"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/klog/v2"

	"github.com/juju/moduledeployer/caas"
)

var klogOnce sync.Once

// Open returns a deployer for the cluster described by cfg.
func Open(cfg *Config) (caas.ModuleDeployer, error) {
	klogOnce.Do(func() {
		klog.SetLogger(logr.New(newKlogAdapter()))
	})
	restCfg, err := NewRestConfig(cfg)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return NewK8sDeployer(cfg, restCfg, newK8sClient)
}

func newK8sClient(c *rest.Config) (kubernetes.Interface, error) {
	client, err := kubernetes.NewForConfig(c)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return client, nil
}

// inClusterConfig is patched in tests.
var inClusterConfig = rest.InClusterConfig

// NewRestConfig returns the client configuration for cfg. The pod service
// account is used when in-cluster is set or when no kubeconfig can be found.
func NewRestConfig(cfg *Config) (*rest.Config, error) {
	if cfg.InCluster() {
		restCfg, err := inClusterConfig()
		return restCfg, errors.Annotate(err, "loading in-cluster config")
	}
	rules := clientcmd.NewDefaultClientConfigLoadingRules()
	if path := cfg.Kubeconfig(); path != "" {
		rules.ExplicitPath = path
	}
	overrides := &clientcmd.ConfigOverrides{CurrentContext: cfg.Context()}
	restCfg, err := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(rules, overrides).ClientConfig()
	if clientcmd.IsEmptyConfig(err) && cfg.Kubeconfig() == "" {
		logger.Debugf("no kubeconfig found, trying in-cluster config")
		restCfg, err = inClusterConfig()
		return restCfg, errors.Annotate(err, "loading in-cluster config")
	}
	if err != nil {
		return nil, errors.Annotate(err, "loading kubeconfig")
	}
	return restCfg, nil
}
