// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package provider

import (
	"fmt"
	"strings"

	"github.com/go-logr/logr"
	"github.com/juju/loggo"
)

// klogAdapter routes client-go logging through loggo.
type klogAdapter struct {
	loggo.Logger
	values []interface{}
}

var _ logr.LogSink = (*klogAdapter)(nil)

func newKlogAdapter() *klogAdapter {
	return &klogAdapter{
		Logger: loggo.GetLogger("moduledeployer.kubernetes.klog"),
	}
}

// Init see https://pkg.go.dev/github.com/go-logr/logr#LogSink
func (k *klogAdapter) Init(logr.RuntimeInfo) {}

// Enabled see https://pkg.go.dev/github.com/go-logr/logr#LogSink
func (k *klogAdapter) Enabled(level int) bool {
	if level > 0 {
		return k.IsTraceEnabled()
	}
	return k.IsDebugEnabled()
}

// Info see https://pkg.go.dev/github.com/go-logr/logr#LogSink
func (k *klogAdapter) Info(level int, msg string, keysAndValues ...interface{}) {
	if level > 0 {
		k.Tracef("%s%s", msg, k.format(keysAndValues))
		return
	}
	k.Debugf("%s%s", msg, k.format(keysAndValues))
}

// Error see https://pkg.go.dev/github.com/go-logr/logr#LogSink
func (k *klogAdapter) Error(err error, msg string, keysAndValues ...interface{}) {
	if err != nil {
		msg = msg + ": " + err.Error()
	}
	k.Errorf("%s%s", msg, k.format(keysAndValues))
}

// WithValues see https://pkg.go.dev/github.com/go-logr/logr#LogSink
func (k *klogAdapter) WithValues(keysAndValues ...interface{}) logr.LogSink {
	values := append(append([]interface{}{}, k.values...), keysAndValues...)
	return &klogAdapter{Logger: k.Logger, values: values}
}

// WithName see https://pkg.go.dev/github.com/go-logr/logr#LogSink
func (k *klogAdapter) WithName(name string) logr.LogSink {
	return &klogAdapter{
		Logger: loggo.GetLogger(k.Name() + "." + name),
		values: k.values,
	}
}

func (k *klogAdapter) format(keysAndValues []interface{}) string {
	all := append(append([]interface{}{}, k.values...), keysAndValues...)
	if len(all) == 0 {
		return ""
	}
	var b strings.Builder
	for i := 0; i < len(all); i += 2 {
		b.WriteString(" ")
		if i+1 < len(all) {
			fmt.Fprintf(&b, "%v=%v", all[i], all[i+1])
		} else {
			fmt.Fprintf(&b, "%v", all[i])
		}
	}
	return b.String()
}
