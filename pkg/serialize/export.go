package serialize

import (
	"fmt"

	"howett.net/plist"

	"github.com/mesh-intelligence/profileforge/pkg/payload"
)

// Export produces the final property-list document for a payload tree:
// blank identity fields are populated, the tree is serialized with the
// given options, and the renderer wraps the result in the XML plist
// envelope. The root payload is mutated by the identity population; that
// is the one irreversible side effect of an export.
func Export(root *payload.Payload, opts Options) ([]byte, error) {
	if err := root.PopulateIDs(); err != nil {
		return nil, fmt.Errorf("populating identity fields: %w", err)
	}
	tree, err := Serialize(root, opts)
	if err != nil {
		return nil, err
	}
	out, err := plist.MarshalIndent(tree, plist.XMLFormat, "\t")
	if err != nil {
		return nil, fmt.Errorf("rendering plist: %w", err)
	}
	return out, nil
}
