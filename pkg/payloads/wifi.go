package payloads

import (
	"github.com/mesh-intelligence/profileforge/pkg/payload"
	"github.com/mesh-intelligence/profileforge/pkg/types"
)

// Wi-Fi encryption type values.
const (
	EncryptionWEP  = "WEP"
	EncryptionWPA  = "WPA"
	EncryptionWPA2 = "WPA2"
	EncryptionAny  = "Any"
	EncryptionNone = "None"
)

// Wi-Fi proxy type values.
const (
	ProxyNone   = "None"
	ProxyManual = "Manual"
	ProxyAuto   = "Auto"
)

// WiFi configures a wireless network, optionally with a manual or
// auto-discovered proxy.
var WiFi = &payload.Family{
	Name: "wifi",
	Schema: commonSchema("com.apple.wifi.managed").Extend(
		types.Field{Name: "SSID_STR", Desc: types.FieldDescriptor{Type: types.TypeString, Targets: baseline()}},
		types.Field{Name: "HIDDEN_NETWORK", Desc: types.FieldDescriptor{Type: types.TypeBoolean, Optional: true, Targets: baseline()}},
		types.Field{Name: "AutoJoin", Desc: types.FieldDescriptor{Type: types.TypeBoolean, Optional: true, Targets: both("5.0", "10.9")}},
		types.Field{Name: "EncryptionType", Desc: types.FieldDescriptor{Type: types.TypeString, Targets: baseline()}},
		types.Field{Name: "Password", Desc: types.FieldDescriptor{Type: types.TypeString, Optional: true, Private: true, Targets: baseline()}},
		types.Field{Name: "IsHotspot", Desc: types.FieldDescriptor{Type: types.TypeBoolean, Optional: true, Targets: both("7.0", "10.9")}},
		types.Field{Name: "ProxyType", Desc: types.FieldDescriptor{Type: types.TypeString, Optional: true, Targets: baseline()}},
		types.Field{Name: "ProxyServer", Desc: types.FieldDescriptor{Type: types.TypeString, Optional: true, Targets: baseline()}},
		types.Field{Name: "ProxyServerPort", Desc: types.FieldDescriptor{Type: types.TypeInteger, Optional: true, Targets: baseline()}},
		types.Field{Name: "ProxyUsername", Desc: types.FieldDescriptor{Type: types.TypeString, Optional: true, Targets: baseline()}},
		types.Field{Name: "ProxyPassword", Desc: types.FieldDescriptor{Type: types.TypeString, Optional: true, Private: true, Targets: baseline()}},
		types.Field{Name: "ProxyPACURL", Desc: types.FieldDescriptor{Type: types.TypeString, Optional: true, Targets: baseline()}},
	),
	Checks: []payload.Check{
		enumCheck("EncryptionType", EncryptionWEP, EncryptionWPA, EncryptionWPA2, EncryptionAny, EncryptionNone),
		enumCheck("ProxyType", ProxyNone, ProxyManual, ProxyAuto),
		hostnameCheck("ProxyServer"),
		portCheck("ProxyServerPort"),
	},
}
