/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package catalog

import "github.com/invopop/jsonschema"

// Schema returns the JSON schema of the catalog file format. It can be
// published next to catalogs so editors validate them.
func Schema() *jsonschema.Schema {
	r := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		ExpandedStruct:             true,
		DoNotReference:             true,
	}
	s := r.Reflect(&File{})
	s.Title = "strfmt message catalog"
	return s
}
