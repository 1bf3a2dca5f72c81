package fetchcache

import (
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

/*
Key derives a deterministic cache key from an operation name and its
arguments: the same logical request always yields the same key, and
distinct requests collide with negligible probability (xxhash64 over
the rendered arguments — low collision probability, not guaranteed
distinctness).

The operation name is kept as a readable prefix so keys remain
greppable in metrics and logs:

	Key("user.profile", 42)  →  "user.profile:<16 hex digits>"

Arguments are rendered with fmt, which is stable for the usual key
material (strings, numbers, bools, structs of those). Types with an
unstable rendering (pointers, unordered custom Stringers) should be
reduced to stable values by the caller first.
*/
func Key(op string, args ...any) string {
	d := xxhash.New()
	_, _ = d.WriteString(op)
	for _, a := range args {
		// Separator guards against adjacent arguments gluing
		// together ("ab","c" vs "a","bc").
		_, _ = d.Write([]byte{0x1f})
		_, _ = fmt.Fprintf(d, "%v", a)
	}
	return op + ":" + strconv.FormatUint(d.Sum64(), 16)
}
