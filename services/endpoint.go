package services

import "strings"

// DefaultKeyPrefix tags every call-statistics storage key.
const DefaultKeyPrefix = "svc-expenseService-"

// IsUUID reports whether s has the canonical UUID shape: 36 characters in
// five hyphen-separated groups of 8-4-4-4-12. Group contents are not checked.
func IsUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	groups := strings.Split(s, "-")
	if len(groups) != 5 {
		return false
	}
	for i, want := range []int{8, 4, 4, 4, 12} {
		if len(groups[i]) != want {
			return false
		}
	}
	return true
}

// NormalizeEndpoint drops empty and UUID-shaped segments from path, so
// "/{user_id}/expenses/create" becomes "/expenses/create".
func NormalizeEndpoint(path string) string {
	var kept []string
	for _, seg := range strings.Split(path, "/") {
		if seg == "" || IsUUID(seg) {
			continue
		}
		kept = append(kept, seg)
	}
	if len(kept) == 0 {
		return "/"
	}
	return "/" + strings.Join(kept, "/")
}

// StorageKey flattens a canonical endpoint into a document id.
func StorageKey(prefix, endpoint string) string {
	name := strings.ReplaceAll(strings.TrimPrefix(endpoint, "/"), "/", "_")
	return prefix + name
}

// EndpointFromKey reverses StorageKey. Underscores that were part of a
// segment come back as slashes.
func EndpointFromKey(prefix, key string) string {
	return "/" + strings.ReplaceAll(strings.TrimPrefix(key, prefix), "_", "/")
}
