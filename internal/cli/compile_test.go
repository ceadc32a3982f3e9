package cli

import (
	"errors"
	"testing"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/profileforge/pkg/payload"
	"github.com/mesh-intelligence/profileforge/pkg/serialize"
	"github.com/mesh-intelligence/profileforge/pkg/types"
)

func newTestConfig(t *testing.T, values map[string]any) *viper.Viper {
	t.Helper()
	cfg := viper.New()
	for k, v := range values {
		cfg.Set(k, v)
	}
	return cfg
}

const sampleDefinition = `
profile:
  identifier: com.example.office
  display_name: Office setup
  organization: Example Corp
  removal_disallowed: true
payloads:
  - kind: wifi
    fields:
      SSID_STR: Office Network
      EncryptionType: WPA2
      Password: s3cret
  - kind: email
    fields:
      EmailAccountType: EmailTypeIMAP
      EmailAddress: user@example.com
      IncomingMailServerAuthentication: EmailAuthPassword
      IncomingMailServerHostName: imap.example.com
      IncomingMailServerPortNumber: 993
      OutgoingMailServerAuthentication: EmailAuthPassword
      OutgoingMailServerHostName: smtp.example.com
`

func parseDefinition(t *testing.T, text string) profileDefinition {
	t.Helper()
	var def profileDefinition
	if err := yaml.Unmarshal([]byte(text), &def); err != nil {
		t.Fatalf("yaml.Unmarshal: %v", err)
	}
	return def
}

func TestBuildProfile(t *testing.T) {
	root, err := buildProfile(parseDefinition(t, sampleDefinition))
	if err != nil {
		t.Fatalf("buildProfile: %v", err)
	}
	if v, _ := root.Get("PayloadIdentifier"); v != "com.example.office" {
		t.Errorf("PayloadIdentifier = %v", v)
	}
	if v, _ := root.Get("PayloadRemovalDisallowed"); v != true {
		t.Errorf("PayloadRemovalDisallowed = %v", v)
	}
	content, _ := root.Get("PayloadContent")
	arr := content.(*payload.Array)
	if arr.Len() != 2 {
		t.Fatalf("PayloadContent len = %d, want 2", arr.Len())
	}
	first, _ := arr.Get(0)
	if got := first.(*payload.Payload).Family().Name; got != "wifi" {
		t.Errorf("first payload family = %q, want wifi", got)
	}

	// Field names in definitions are case-sensitive payload keys.
	wifi := first.(*payload.Payload)
	if v, _ := wifi.Get("SSID_STR"); v != "Office Network" {
		t.Errorf("SSID_STR = %v", v)
	}
}

func TestBuildProfileRejectsBadDefinitions(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{
			"unknown kind",
			"payloads:\n  - kind: carrier-pigeon\n",
		},
		{
			"unknown field",
			"payloads:\n  - kind: wifi\n    fields:\n      NotAField: x\n",
		},
		{
			"invalid value",
			"payloads:\n  - kind: wifi\n    fields:\n      EncryptionType: ROT13\n",
		},
		{
			"invalid profile identifier",
			"profile:\n  identifier: \"has space\"\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := buildProfile(parseDefinition(t, tt.text)); err == nil {
				t.Error("buildProfile accepted a bad definition")
			}
		})
	}
}

func TestExportOptionsTargets(t *testing.T) {
	tests := []struct {
		in      string
		want    types.Target
		wantErr bool
	}{
		{"", "", false},
		{"ios", types.TargetIOS, false},
		{"macos", types.TargetMacOS, false},
		{"windows", "", true},
	}
	for _, tt := range tests {
		t.Run("target "+tt.in, func(t *testing.T) {
			cfg := newTestConfig(t, map[string]any{"target": tt.in})
			opts, err := exportOptions(cfg)
			if tt.wantErr {
				if err == nil {
					t.Error("exportOptions accepted an unknown target")
				}
				return
			}
			if err != nil {
				t.Fatalf("exportOptions: %v", err)
			}
			if opts.Target != tt.want {
				t.Errorf("Target = %q, want %q", opts.Target, tt.want)
			}
		})
	}
}

func TestExportOptionsMinVersionNeedsTarget(t *testing.T) {
	cfg := newTestConfig(t, map[string]any{"min_version": "9.0"})
	opts, err := exportOptions(cfg)
	if err != nil {
		t.Fatalf("exportOptions: %v", err)
	}
	// The serializer enforces the pairing; the options just pass through.
	root, _ := buildProfile(profileDefinition{})
	if _, err := serialize.Serialize(root, opts); !errors.Is(err, types.ErrTargetRequired) {
		t.Errorf("error = %v, want ErrTargetRequired", err)
	}
}
