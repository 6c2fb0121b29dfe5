// Package buildnum provides a library for incrementing the build number kept
// in a JSON version file.
//
// A version file is any JSON object. The build number lives at version.build:
//
//	{
//	    "name": "app",
//	    "version": {
//	        "major": 1,
//	        "build": 41
//	    }
//	}
//
// Each update reads the file, adds one to version.build (treating a missing
// "version" object or "build" field as 0), and rewrites the whole file with
// 4-space indentation. Every other field keeps its value and its position.
//
// Updates are not idempotent and are not locked: running twice adds two, and
// two processes updating the same file at once can lose an increment. The
// file is truncated and rewritten directly, so an interrupted write can leave
// it incomplete.
//
// Usage Example:
//
//	import (
//	    "log"
//	    "github.com/bcomnes/buildnum/pkg"
//	)
//
//	func main() {
//	    meta, err := buildnum.Run("./version.json")
//	    if err != nil {
//	        log.Fatalf("build number update failed: %v", err)
//	    }
//	    log.Printf("build %d -> %d", meta.OldBuild, meta.NewBuild)
//	}
package buildnum
