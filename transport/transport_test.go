package transport

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"errors"
	"math/big"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewClient_Defaults(t *testing.T) {
	client, err := NewClient(Config{})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if client.Timeout != 0 {
		t.Errorf("Timeout = %v, want 0 (attempts bound their own requests)", client.Timeout)
	}

	tr, ok := client.Transport.(*http.Transport)
	if !ok {
		t.Fatalf("Transport = %T, want *http.Transport", client.Transport)
	}
	var h2 bool
	for _, proto := range tr.TLSClientConfig.NextProtos {
		if proto == "h2" {
			h2 = true
		}
	}
	if !h2 {
		t.Errorf("NextProtos = %v, want h2 advertised", tr.TLSClientConfig.NextProtos)
	}
}

func TestNewClient_CustomCA(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ca.pem")
	if err := os.WriteFile(path, selfSignedPEM(t), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := NewClient(Config{CAFile: path}); err != nil {
		t.Errorf("NewClient with CA = %v, want nil", err)
	}
}

func TestNewClient_CAErrors(t *testing.T) {
	if _, err := NewClient(Config{CAFile: filepath.Join(t.TempDir(), "absent.pem")}); err == nil {
		t.Error("expected error for missing CA file")
	}

	path := filepath.Join(t.TempDir(), "junk.pem")
	if err := os.WriteFile(path, []byte("not pem"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := NewClient(Config{CAFile: path}); !errors.Is(err, ErrBadCACertificate) {
		t.Errorf("NewClient = %v, want ErrBadCACertificate", err)
	}
}

func selfSignedPEM(t *testing.T) []byte {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	tmpl := &x509.Certificate{
		SerialNumber:          big.NewInt(1),
		Subject:               pkix.Name{CommonName: "probewatch test ca"},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().Add(time.Hour),
		IsCA:                  true,
		KeyUsage:              x509.KeyUsageCertSign,
		BasicConstraintsValid: true,
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	if err != nil {
		t.Fatalf("CreateCertificate: %v", err)
	}
	return pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
}
