// Package main implements the buildnum CLI tool.
//
// The buildnum tool increments the build number kept in a JSON version file,
// for use as a step in a build pipeline. It reads the file, adds one to the
// integer at version.build (a missing "version" object or "build" field
// counts as 0), and rewrites the whole file with 4-space indentation. All
// other fields are kept.
//
// Command Usage:
//
//	buildnum <path-to-version-json>
//
// Exactly one positional argument is accepted and no flags are parsed.
//
// Output (stdout):
//
//	Updated build number to <new_build>            on success, exit 0
//	Usage: version.py <path-to-version-json>       wrong argument count, exit 1
//	Version file not found: <path>                 path does not exist, exit 1
//
// A file that is not a JSON object, has a non-object "version", or has a
// build number that is not a non-negative integer is left untouched; the
// failure is logged on stderr and the exit code is 1. Write failures are
// reported the same way.
//
// Examples:
//
//	# {"version": {"build": 5}} becomes {"version": {"build": 6}}
//	buildnum ./version.json
//
// The file is rewritten in place without locking, so pipeline steps must not
// run buildnum against the same file concurrently.
//
// For the library API, see the documentation in the "pkg" package.
package main
