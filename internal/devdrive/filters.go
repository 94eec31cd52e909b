package devdrive

import "strings"

// Filesystem minifilter drivers allowed to attach to the Dev Drive. The base
// list is fixed; the optional entries are gated on feature flags.
const (
	baseFilters      = "MsSecFlt,ProcMon24"
	gvfsFilter       = "PrjFlt"
	containerFilters = "wcifs,bindFlt"
)

// ComposeFilterList builds the minifilter allow-list for the volume
func ComposeFilterList(enableGVFS, enableContainers bool) string {
	parts := []string{baseFilters}
	if enableGVFS {
		parts = append(parts, gvfsFilter)
	}
	if enableContainers {
		parts = append(parts, containerFilters)
	}
	return strings.Join(parts, ",")
}
