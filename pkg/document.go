package buildnum

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

const (
	versionKey = "version"
	buildPath  = "version.build"
)

// DefaultIndent is the indentation used when writing the version file.
const DefaultIndent = "    "

// document is a version file held as raw JSON. Edits go through path
// operations on the raw bytes so keys the tool does not know about keep
// their values and their order.
type document struct {
	raw []byte
}

// parseDocument validates data as a JSON object whose "version" member,
// when present, is itself an object.
func parseDocument(data []byte) (*document, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("invalid JSON")
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("root must be a JSON object, got %s", describe(root))
	}
	if hasDuplicateKey(root, versionKey) {
		return nil, fmt.Errorf("duplicate %q key", versionKey)
	}
	v := root.Get(versionKey)
	if v.Exists() && !v.IsObject() {
		return nil, fmt.Errorf("%q must be a JSON object, got %s", versionKey, describe(v))
	}
	if hasDuplicateKey(v, "build") {
		return nil, fmt.Errorf("duplicate %q key", buildPath)
	}
	return &document{raw: data}, nil
}

// hasDuplicateKey reports whether obj has name as a member more than once.
// Path reads and writes only see the first member, so a later duplicate
// would silently win for other JSON readers.
func hasDuplicateKey(obj gjson.Result, name string) bool {
	n := 0
	obj.ForEach(func(key, _ gjson.Result) bool {
		if key.String() == name {
			n++
		}
		return n < 2
	})
	return n > 1
}

// build returns the current build number and whether it was present.
func (d *document) build() (int64, bool, error) {
	res := gjson.GetBytes(d.raw, buildPath)
	if !res.Exists() {
		return 0, false, nil
	}
	if res.Type != gjson.Number {
		return 0, true, fmt.Errorf("%q must be a non-negative integer, got %s", buildPath, describe(res))
	}
	n, err := strconv.ParseInt(res.Raw, 10, 64)
	if err != nil || n < 0 {
		return 0, true, fmt.Errorf("%q must be a non-negative integer, got %s", buildPath, res.Raw)
	}
	return n, true, nil
}

// withBuild returns a copy of the document with version.build set to n.
func (d *document) withBuild(n int64) (*document, error) {
	raw, err := sjson.SetRawBytes(d.raw, buildPath, []byte(strconv.FormatInt(n, 10)))
	if err != nil {
		return nil, fmt.Errorf("setting %s: %w", buildPath, err)
	}
	return &document{raw: raw}, nil
}

// render formats the document with the given indent and a single trailing
// newline. Arrays are always expanded one element per line.
func (d *document) render(indent string) []byte {
	out := pretty.PrettyOptions(d.raw, &pretty.Options{
		Width:    0,
		Indent:   indent,
		SortKeys: false,
	})
	out = bytes.TrimRight(out, "\r\n")
	return append(out, '\n')
}

// nextBuild increments n, refusing to wrap around.
func nextBuild(n int64) (int64, error) {
	if n == math.MaxInt64 {
		return 0, fmt.Errorf("%q cannot be incremented past %d", buildPath, n)
	}
	return n + 1, nil
}

func describe(r gjson.Result) string {
	switch {
	case r.IsObject():
		return "object"
	case r.IsArray():
		return "array"
	}
	switch r.Type {
	case gjson.Null:
		return "null"
	case gjson.True, gjson.False:
		return "boolean"
	case gjson.String:
		return "string " + strconv.Quote(r.Str)
	case gjson.Number:
		return "number " + r.Raw
	}
	return r.Type.String()
}
