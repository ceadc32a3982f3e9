package payloads

import (
	"github.com/mesh-intelligence/profileforge/pkg/payload"
	"github.com/mesh-intelligence/profileforge/pkg/types"
)

// Font installs a TrueType or OpenType font. iOS only.
var Font = &payload.Family{
	Name: "font",
	Schema: commonSchema("com.apple.font").Extend(
		types.Field{Name: "Name", Desc: types.FieldDescriptor{Type: types.TypeString, Optional: true, Targets: iosOnly("7.0")}},
		types.Field{Name: "Font", Desc: types.FieldDescriptor{Type: types.TypeData, Targets: iosOnly("7.0")}},
	),
}
