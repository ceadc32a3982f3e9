package payloads

import (
	"github.com/mesh-intelligence/profileforge/pkg/payload"
	"github.com/mesh-intelligence/profileforge/pkg/types"
)

// Email account type values.
const (
	EmailTypePOP  = "EmailTypePOP"
	EmailTypeIMAP = "EmailTypeIMAP"
)

// Email server authentication values.
const (
	EmailAuthPassword = "EmailAuthPassword"
	EmailAuthNone     = "EmailAuthNone"
)

// Email configures a POP or IMAP mail account. The family is iOS-only;
// exporting it for macOS with strict completeness fails.
var Email = &payload.Family{
	Name: "email",
	Schema: commonSchema("com.apple.mail.managed").Extend(
		types.Field{Name: "EmailAccountDescription", Desc: types.FieldDescriptor{Type: types.TypeString, Optional: true, Targets: iosOnly("5.0")}},
		types.Field{Name: "EmailAccountName", Desc: types.FieldDescriptor{Type: types.TypeString, Optional: true, Targets: iosOnly("5.0")}},
		types.Field{Name: "EmailAccountType", Desc: types.FieldDescriptor{Type: types.TypeString, Targets: iosOnly("5.0")}},
		types.Field{Name: "EmailAddress", Desc: types.FieldDescriptor{Type: types.TypeString, Targets: iosOnly("5.0")}},
		types.Field{Name: "IncomingMailServerAuthentication", Desc: types.FieldDescriptor{Type: types.TypeString, Targets: iosOnly("5.0")}},
		types.Field{Name: "IncomingMailServerHostName", Desc: types.FieldDescriptor{Type: types.TypeString, Targets: iosOnly("5.0")}},
		types.Field{Name: "IncomingMailServerPortNumber", Desc: types.FieldDescriptor{Type: types.TypeInteger, Optional: true, Targets: iosOnly("5.0")}},
		types.Field{Name: "IncomingMailServerUseSSL", Desc: types.FieldDescriptor{Type: types.TypeBoolean, Optional: true, Targets: iosOnly("5.0")}},
		types.Field{Name: "IncomingMailServerUsername", Desc: types.FieldDescriptor{Type: types.TypeString, Optional: true, Targets: iosOnly("5.0")}},
		types.Field{Name: "IncomingPassword", Desc: types.FieldDescriptor{Type: types.TypeString, Optional: true, Private: true, Targets: iosOnly("5.0")}},
		types.Field{Name: "OutgoingMailServerAuthentication", Desc: types.FieldDescriptor{Type: types.TypeString, Targets: iosOnly("5.0")}},
		types.Field{Name: "OutgoingMailServerHostName", Desc: types.FieldDescriptor{Type: types.TypeString, Targets: iosOnly("5.0")}},
		types.Field{Name: "OutgoingMailServerPortNumber", Desc: types.FieldDescriptor{Type: types.TypeInteger, Optional: true, Targets: iosOnly("5.0")}},
		types.Field{Name: "OutgoingMailServerUseSSL", Desc: types.FieldDescriptor{Type: types.TypeBoolean, Optional: true, Targets: iosOnly("5.0")}},
		types.Field{Name: "OutgoingMailServerUsername", Desc: types.FieldDescriptor{Type: types.TypeString, Optional: true, Targets: iosOnly("5.0")}},
		types.Field{Name: "OutgoingPassword", Desc: types.FieldDescriptor{Type: types.TypeString, Optional: true, Private: true, Targets: iosOnly("5.0")}},
		types.Field{Name: "OutgoingPasswordSameAsIncomingPassword", Desc: types.FieldDescriptor{Type: types.TypeBoolean, Optional: true, Targets: iosOnly("5.0")}},
		types.Field{Name: "PreventMove", Desc: types.FieldDescriptor{Type: types.TypeBoolean, Optional: true, Targets: iosOnly("5.0")}},
		types.Field{Name: "PreventAppSheet", Desc: types.FieldDescriptor{Type: types.TypeBoolean, Optional: true, Targets: iosOnly("5.0")}},
		types.Field{Name: "SMIMEEnabled", Desc: types.FieldDescriptor{Type: types.TypeBoolean, Optional: true, Targets: iosOnly("10.3")}},
		types.Field{Name: "disableMailRecentsSyncing", Desc: types.FieldDescriptor{Type: types.TypeBoolean, Optional: true, Targets: iosOnly("6.0")}},
	),
	Checks: []payload.Check{
		enumCheck("EmailAccountType", EmailTypePOP, EmailTypeIMAP),
		enumCheck("IncomingMailServerAuthentication", EmailAuthPassword, EmailAuthNone),
		enumCheck("OutgoingMailServerAuthentication", EmailAuthPassword, EmailAuthNone),
		emailCheck("EmailAddress"),
		hostnameCheck("IncomingMailServerHostName", "OutgoingMailServerHostName"),
		portCheck("IncomingMailServerPortNumber", "OutgoingMailServerPortNumber"),
	},
}
