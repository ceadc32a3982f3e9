// Package payloads declares the built-in payload families: the common
// payload keys shared by every family, the top-level configuration profile,
// and the concrete payload kinds (email, Wi-Fi, certificates, font). Each
// family is a declarative schema table plus any semantic checks layered
// over the generic validators.
package payloads

import "github.com/mesh-intelligence/profileforge/pkg/payload"

func init() {
	for _, f := range []*payload.Family{
		Profile, Email, WiFi, Font,
		CertificateRoot, CertificatePKCS1, CertificatePEM, CertificatePKCS12,
	} {
		payload.Register(f)
	}
}
