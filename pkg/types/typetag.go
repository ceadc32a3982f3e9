package types

// TypeTag identifies the declared type of a payload field. Array and Dict
// are container tags; their element type is carried by the descriptor's
// Subtype. Class marks a nested payload object.
type TypeTag int

const (
	TypeInvalid TypeTag = iota
	TypeString
	TypeInteger
	TypeReal
	TypeBoolean
	TypeData
	TypeDate
	TypeDict
	TypeArray
	TypeUUID
	TypeIdentifier
	TypeClass
	TypeNSDataBlob
)

// typeNames maps each tag to its display name.
var typeNames = map[TypeTag]string{
	TypeInvalid:    "invalid",
	TypeString:     "string",
	TypeInteger:    "integer",
	TypeReal:       "real",
	TypeBoolean:    "boolean",
	TypeData:       "data",
	TypeDate:       "date",
	TypeDict:       "dict",
	TypeArray:      "array",
	TypeUUID:       "uuid",
	TypeIdentifier: "identifier",
	TypeClass:      "class",
	TypeNSDataBlob: "nsdata",
}

// String returns the display name of the tag.
func (t TypeTag) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "invalid"
}

// IsContainer reports whether the tag is Array or Dict, the two tags that
// require an element Subtype in their descriptor.
func (t TypeTag) IsContainer() bool {
	return t == TypeArray || t == TypeDict
}

// IsValid reports whether the tag is one of the recognized type tags.
func (t TypeTag) IsValid() bool {
	_, ok := typeNames[t]
	return ok && t != TypeInvalid
}
