// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package provider

import (
	"regexp"
	"sort"
	"strings"
)

var shellUnsafe = regexp.MustCompile(`[^A-Za-z0-9_\-.,:/@\n]`)

// bashEscape backslash-escapes every shell-sensitive character of s and
// renders newlines as '\n'.
func bashEscape(s string) string {
	s = shellUnsafe.ReplaceAllString(s, `\$0`)
	return strings.ReplaceAll(s, "\n", `'\n'`)
}

// qualifyArgs prefixes every key of args.
func qualifyArgs(prefix string, args map[string]string) map[string]string {
	out := make(map[string]string, len(args))
	for k, v := range args {
		out[prefix+k] = v
	}
	return out
}

// mergeArgs merges the maps in order, later keys win.
func mergeArgs(maps ...map[string]string) map[string]string {
	out := map[string]string{}
	for _, m := range maps {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}

// commandArgs renders args as escaped --key=value flags sorted by key.
func commandArgs(args map[string]string) []string {
	keys := make([]string, 0, len(args))
	for k := range args {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = "--" + bashEscape(k) + "=" + bashEscape(args[k])
	}
	return out
}
