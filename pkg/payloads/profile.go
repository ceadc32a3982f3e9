package payloads

import (
	"github.com/mesh-intelligence/profileforge/pkg/payload"
	"github.com/mesh-intelligence/profileforge/pkg/types"
)

// Profile scope values for the macOS-only PayloadScope key.
const (
	ScopeSystem = "System"
	ScopeUser   = "User"
)

// Profile is the top-level configuration profile family. Its
// PayloadContent array carries the concrete payloads; any registered
// family may appear as an element. The removal keys control whether and
// when a device lets the user delete the installed profile.
var Profile = &payload.Family{
	Name: "profile",
	Schema: commonSchema("Configuration").Extend(
		types.Field{Name: "PayloadContent", Desc: types.FieldDescriptor{Type: types.TypeArray, Subtype: types.TypeClass, Targets: baseline()}},
		types.Field{Name: "PayloadRemovalDisallowed", Desc: types.FieldDescriptor{Type: types.TypeBoolean, Optional: true, Targets: baseline()}},
		types.Field{Name: "PayloadScope", Desc: types.FieldDescriptor{Type: types.TypeString, Optional: true, Targets: macOnly("10.7")}},
		types.Field{Name: "PayloadExpirationDate", Desc: types.FieldDescriptor{Type: types.TypeDate, Optional: true, Targets: baseline()}},
		types.Field{Name: "RemovalDate", Desc: types.FieldDescriptor{Type: types.TypeDate, Optional: true, Targets: baseline()}},
		types.Field{Name: "DurationUntilRemoval", Desc: types.FieldDescriptor{Type: types.TypeReal, Optional: true, Targets: baseline()}},
		types.Field{Name: "ConsentText", Desc: types.FieldDescriptor{Type: types.TypeDict, Subtype: types.TypeString, Optional: true, Targets: baseline()}},
	),
	Checks: []payload.Check{
		enumCheck("PayloadScope", ScopeSystem, ScopeUser),
	},
}
