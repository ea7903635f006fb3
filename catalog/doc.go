/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

/*
Package catalog loads named format templates from YAML or JSON files.

A catalog file looks like:

	name: ui
	messages:
	  page_of:
	    template: "Page {0} of {1}"
	    args: [int, int]
	  disk_usage:
	    template: "%s: %d%%"
	    args: [string, int]
	    description: Disk usage line in the status bar

Every message is compiled when the catalog is loaded, so a malformed
template is reported at startup rather than when it is first used. When a
message declares its argument kinds, the declaration must list one kind
per argument the template reads and each kind must be accepted by the
directives reading it.

	c, err := catalog.Load(ctx, "messages.yaml")
	if err != nil {
		// Handle load error
	}
	s, err := c.Format("page_of", format.Int(3), format.Int(10))

Lookups, misses and failed formats are exported as Prometheus counters
labelled with the catalog name. Schema returns a JSON schema for the file
format, and Live keeps a catalog up to date as its file changes.
*/
package catalog
