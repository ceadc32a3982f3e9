package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/profileforge/pkg/payload"
	"github.com/mesh-intelligence/profileforge/pkg/payloads"
	"github.com/mesh-intelligence/profileforge/pkg/serialize"
	"github.com/mesh-intelligence/profileforge/pkg/types"
)

// profileDefinition is the structure of the YAML file compile consumes.
type profileDefinition struct {
	Profile  profileMeta         `yaml:"profile"`
	Payloads []payloadDefinition `yaml:"payloads"`
}

// profileMeta maps onto the top-level profile keys. Identifier and UUID
// may be left blank; export fills them in.
type profileMeta struct {
	Identifier        string            `yaml:"identifier"`
	UUID              string            `yaml:"uuid"`
	DisplayName       string            `yaml:"display_name"`
	Description       string            `yaml:"description"`
	Organization      string            `yaml:"organization"`
	Scope             string            `yaml:"scope"`
	RemovalDisallowed *bool             `yaml:"removal_disallowed"`
	ConsentText       map[string]string `yaml:"consent_text"`
}

// payloadDefinition names a registered payload family and gives its field
// values. Field names are the payload keys, case-sensitive.
type payloadDefinition struct {
	Kind   string         `yaml:"kind"`
	Fields map[string]any `yaml:"fields"`
}

func newCompileCmd(cfg *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Compile a YAML profile definition into a .mobileconfig",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(cmd, cfg)
		},
	}
	cmd.Flags().StringP("file", "f", "profile.yaml", "profile definition to compile")
	cmd.Flags().StringP("output", "o", "profile.mobileconfig", "output document path")
	cmd.Flags().String("target", "", "restrict the export to one platform (ios or macos)")
	cmd.Flags().String("min-version", "", "exclude fields newer than this platform version (requires --target)")
	cmd.Flags().Bool("strict", false, "fail instead of omitting filtered fields")

	// Environment variables provide flag defaults: PROFILECTL_TARGET,
	// PROFILECTL_MIN_VERSION, PROFILECTL_STRICT.
	cfg.BindPFlag("target", cmd.Flags().Lookup("target"))
	cfg.BindPFlag("min_version", cmd.Flags().Lookup("min-version"))
	cfg.BindPFlag("strict", cmd.Flags().Lookup("strict"))
	return cmd
}

func runCompile(cmd *cobra.Command, cfg *viper.Viper) error {
	path, _ := cmd.Flags().GetString("file")
	outPath, _ := cmd.Flags().GetString("output")

	opts, err := exportOptions(cfg)
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return exitError(cmd, exitSysError, fmt.Sprintf("reading definition: %s", err))
	}
	var def profileDefinition
	if err := yaml.Unmarshal(raw, &def); err != nil {
		return fmt.Errorf("parsing definition: %w", err)
	}

	root, err := buildProfile(def)
	if err != nil {
		return err
	}
	if !root.Exportable() {
		log.Warn().Msg("profile has unset required fields; export may be incomplete")
	}

	doc, err := serialize.Export(root, opts)
	if err != nil {
		return fmt.Errorf("exporting profile: %w", err)
	}
	if err := os.WriteFile(outPath, doc, 0o644); err != nil {
		return exitError(cmd, exitSysError, fmt.Sprintf("writing %s: %s", outPath, err))
	}
	log.Debug().Int("payloads", len(def.Payloads)).Int("bytes", len(doc)).Str("output", outPath).Msg("profile compiled")
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d payloads)\n", outPath, len(def.Payloads))
	return nil
}

// exportOptions resolves the target/version/strict settings from flags and
// their PROFILECTL_* environment fallbacks.
func exportOptions(cfg *viper.Viper) (serialize.Options, error) {
	opts := serialize.Options{
		MinVersion: cfg.GetString("min_version"),
		Strict:     cfg.GetBool("strict"),
	}
	switch target := cfg.GetString("target"); target {
	case "":
	case "ios", "iOS":
		opts.Target = types.TargetIOS
	case "macos", "macOS":
		opts.Target = types.TargetMacOS
	default:
		return opts, fmt.Errorf("unknown target %q (use ios or macos)", target)
	}
	return opts, nil
}

// buildProfile constructs the payload tree from a parsed definition. Every
// field value passes through the typed containers, so a bad definition
// fails here with the offending payload and field named.
func buildProfile(def profileDefinition) (*payload.Payload, error) {
	root := payloads.Profile.New()
	meta := map[string]any{
		"PayloadIdentifier":   def.Profile.Identifier,
		"PayloadUUID":         def.Profile.UUID,
		"PayloadDisplayName":  def.Profile.DisplayName,
		"PayloadDescription":  def.Profile.Description,
		"PayloadOrganization": def.Profile.Organization,
		"PayloadScope":        def.Profile.Scope,
	}
	for field, value := range meta {
		if value == "" {
			continue
		}
		if err := root.Set(field, value); err != nil {
			return nil, fmt.Errorf("profile: %w", err)
		}
	}
	if def.Profile.RemovalDisallowed != nil {
		if err := root.Set("PayloadRemovalDisallowed", *def.Profile.RemovalDisallowed); err != nil {
			return nil, fmt.Errorf("profile: %w", err)
		}
	}
	if len(def.Profile.ConsentText) > 0 {
		consent := make(map[string]any, len(def.Profile.ConsentText))
		for locale, text := range def.Profile.ConsentText {
			consent[locale] = text
		}
		if err := root.Set("ConsentText", consent); err != nil {
			return nil, fmt.Errorf("profile: %w", err)
		}
	}

	content, err := root.Get("PayloadContent")
	if err != nil {
		return nil, err
	}
	for i, pd := range def.Payloads {
		child, err := buildPayload(pd)
		if err != nil {
			return nil, fmt.Errorf("payload %d (%s): %w", i, pd.Kind, err)
		}
		if err := content.(*payload.Array).Append(child); err != nil {
			return nil, fmt.Errorf("payload %d (%s): %w", i, pd.Kind, err)
		}
	}
	return root, nil
}

func buildPayload(pd payloadDefinition) (*payload.Payload, error) {
	family, ok := payload.Lookup(pd.Kind)
	if !ok {
		return nil, fmt.Errorf("unknown payload kind %q (known: %v)", pd.Kind, payload.Families())
	}
	p := family.New()
	for field, value := range pd.Fields {
		v, err := resolveFieldValue(p, field, value)
		if err != nil {
			return nil, err
		}
		if err := p.Set(field, v); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// resolveFieldValue loads Data-typed fields from disk: in a definition
// file, certificate and font content is given as a file path.
func resolveFieldValue(p *payload.Payload, field string, value any) (any, error) {
	desc, ok := p.Schema().Get(field)
	if !ok {
		// Let Set produce the unknown-field error.
		return value, nil
	}
	if desc.Type != types.TypeData && desc.Type != types.TypeNSDataBlob {
		return value, nil
	}
	path, ok := value.(string)
	if !ok {
		return value, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("field %q: reading %s: %w", field, path, err)
	}
	return raw, nil
}
