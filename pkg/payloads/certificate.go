package payloads

import (
	"fmt"
	"io"

	"github.com/mesh-intelligence/profileforge/pkg/payload"
	"github.com/mesh-intelligence/profileforge/pkg/types"
	"github.com/mesh-intelligence/profileforge/pkg/validate"
)

// Certificate content format tags handed to the sniffer.
const (
	FormatDER    = "DER"
	FormatPEM    = "PEM"
	FormatPKCS12 = "PKCS12"
)

// Sniffer inspects certificate bytes and reports whether they are in the
// expected format. Implementations typically shell out to a certificate
// toolchain; none is bundled here.
type Sniffer interface {
	Sniff(r io.ReadSeeker, format string) error
}

// sniffer is the installed content sniffer. Nil means certificate content
// is accepted without a format check.
var sniffer Sniffer

// SetSniffer installs the certificate content sniffer. Install once at
// program start; the certificate checks read it without locking.
func SetSniffer(s Sniffer) {
	sniffer = s
}

// contentCheck claims PayloadContent for a certificate family: the value
// must pass the generic data validation, and when a sniffer is installed
// the stream is rewound, sniffed against the family's format, and rewound
// again so the serializer sees the full content.
func contentCheck(format string) payload.Check {
	return func(p *payload.Payload, name string, raw any) (any, bool, error) {
		if name != "PayloadContent" {
			return nil, false, nil
		}
		rs, err := validate.Data(raw)
		if err != nil {
			return nil, false, err
		}
		if sniffer != nil {
			if _, err := rs.Seek(0, io.SeekStart); err != nil {
				return nil, false, fmt.Errorf("%w: rewinding for sniff: %v", types.ErrStreamUnusable, err)
			}
			if err := sniffer.Sniff(rs, format); err != nil {
				return nil, false, fmt.Errorf("%w: certificate content: %v", types.ErrInvalidValue, err)
			}
			if _, err := rs.Seek(0, io.SeekStart); err != nil {
				return nil, false, fmt.Errorf("%w: rewinding after sniff: %v", types.ErrStreamUnusable, err)
			}
		}
		return rs, true, nil
	}
}

// certificateFamily builds one certificate variant. All variants share the
// same shape: a file name hint and the certificate bytes.
func certificateFamily(name, payloadType, format string) *payload.Family {
	return &payload.Family{
		Name: name,
		Schema: commonSchema(payloadType).Extend(
			types.Field{Name: "PayloadCertificateFileName", Desc: types.FieldDescriptor{Type: types.TypeString, Optional: true, Targets: baseline()}},
			types.Field{Name: "PayloadContent", Desc: types.FieldDescriptor{Type: types.TypeData, Targets: baseline()}},
		),
		Checks: []payload.Check{contentCheck(format)},
	}
}

// The certificate families. Root and PKCS1 carry DER bytes, PEM carries a
// PEM block, and PKCS12 carries a passphrase-protected identity.
var (
	CertificateRoot   = certificateFamily("certificate.root", "com.apple.security.root", FormatDER)
	CertificatePKCS1  = certificateFamily("certificate.pkcs1", "com.apple.security.pkcs1", FormatDER)
	CertificatePEM    = certificateFamily("certificate.pem", "com.apple.security.pem", FormatPEM)
	CertificatePKCS12 = newPKCS12Family()
)

func newPKCS12Family() *payload.Family {
	f := certificateFamily("certificate.pkcs12", "com.apple.security.pkcs12", FormatPKCS12)
	f.Schema = f.Schema.Extend(
		types.Field{Name: "Password", Desc: types.FieldDescriptor{Type: types.TypeString, Optional: true, Private: true, Targets: baseline()}},
	)
	return f
}
