package corpus

import (
	"errors"
	"fmt"
	"strings"
)

// Boundary is the document terminator: the closing tag of the per-entry
// markup skeleton. The collector relies on every document ending with it
// and Compile splits on it.
const Boundary = "</html>"

const (
	titleOpen  = "<title>"
	titleClose = "</title>"
)

// ErrMalformedDocument reports a corpus fragment without an extractable
// title. Dropping such a fragment silently would produce an archive with
// missing headwords and no diagnostic, so compilation fails instead.
var ErrMalformedDocument = errors.New("corpus fragment has no title")

// Index is the compiled headword-to-markup mapping handed to the archive
// writer. Keys are case-preserving and unique.
type Index map[string]string

// Compile splits the serialized corpus on the document boundary and
// reduces the fragments into an Index. When two documents share a key the
// later one in corpus order wins; duplicate reverse entries for common
// translations collapse that way by design.
func Compile(content string) (Index, error) {
	index := make(Index)
	for _, fragment := range strings.Split(content, Boundary) {
		fragment = strings.TrimSpace(fragment)
		if fragment == "" {
			continue
		}
		key, err := ExtractTitle(fragment)
		if err != nil {
			return nil, err
		}
		index[key] = fragment + Boundary
	}
	return index, nil
}

// ExtractTitle returns the text of the first title span in a fragment. The
// text is returned raw; an entity-escaped headword stays escaped so the
// archive key matches the rendered title byte for byte.
func ExtractTitle(fragment string) (string, error) {
	start := strings.Index(fragment, titleOpen)
	if start < 0 {
		return "", fmt.Errorf("%w: %s", ErrMalformedDocument, snippet(fragment))
	}
	rest := fragment[start+len(titleOpen):]
	end := strings.Index(rest, titleClose)
	if end < 0 {
		return "", fmt.Errorf("%w: %s", ErrMalformedDocument, snippet(fragment))
	}
	return strings.TrimSpace(rest[:end]), nil
}

// snippet shortens a fragment for error messages.
func snippet(fragment string) string {
	const max = 60
	if len(fragment) > max {
		return fragment[:max] + "..."
	}
	return fragment
}
