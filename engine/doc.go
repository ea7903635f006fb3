/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

/*
Package engine wraps the format package for long-running services.

An Engine keeps a bounded LRU cache of compiled programs, so templates
that are formatted repeatedly are compiled once. Every Format call runs in
an OpenTelemetry span named "strfmt.format" and is counted:

	strfmt.compile     templates compiled
	strfmt.eval        programs evaluated
	strfmt.cache.hit   cache lookups served from the cache
	strfmt.cache.miss  cache lookups that compiled
	strfmt.failures    failed calls, by "reason"

Failures are also logged at warn level through the clog logger found in
the context.

# Configuration

	cfg, err := engine.LoadConfig(ctx)
	if err != nil {
		// Handle bad environment
	}
	e, err := engine.New(cfg)

The variables are:

	STRFMT_MAX_INSTRUCTIONS  program capacity (default 32)
	STRFMT_CACHE_SIZE        cached programs, 0 disables the cache (default 256)
	STRFMT_STRICT            compile even without arguments (default false)

In the default mode a call left without arguments returns the template
unchanged, like format.Format. Strict mode compiles it anyway so that a
template containing directives is reported as missing its arguments.
*/
package engine
