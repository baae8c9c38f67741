package testutil

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// MakeCertAndKeyPemFiles writes a freshly generated, self-signed server
// certificate for dnsName and its private key to PEM files in a
// temporary directory. It returns the paths of both files.
func MakeCertAndKeyPemFiles(t *testing.T, dnsName string, notAfter time.Time) (string, string) {
	t.Helper()
	privateKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("can't generate private key: %v", err)
	}
	serialNumber, err := rand.Int(rand.Reader, big.NewInt(1<<62))
	if err != nil {
		t.Fatalf("can't generate serial number: %v", err)
	}
	template := &x509.Certificate{
		SerialNumber: serialNumber,
		Subject: pkix.Name{
			Organization: []string{"Storage Locator Test"},
			CommonName:   dnsName,
		},
		DNSNames:              []string{dnsName},
		NotBefore:             notAfter.Add(-2 * time.Hour),
		NotAfter:              notAfter,
		KeyUsage:              x509.KeyUsageDigitalSignature,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		BasicConstraintsValid: true,
	}
	certData, err := x509.CreateCertificate(rand.Reader, template, template, privateKey.Public(), privateKey)
	if err != nil {
		t.Fatalf("can't create certificate: %v", err)
	}
	keyData, err := x509.MarshalPKCS8PrivateKey(privateKey)
	if err != nil {
		t.Fatalf("can't marshal private key: %v", err)
	}

	tmp := t.TempDir()
	certPath := filepath.Join(tmp, "hostcert.pem")
	keyPath := filepath.Join(tmp, "hostkey.pem")
	writePEMFile(t, certPath, "CERTIFICATE", certData)
	writePEMFile(t, keyPath, "PRIVATE KEY", keyData)
	return certPath, keyPath
}

func writePEMFile(t *testing.T, path, blockType string, data []byte) {
	t.Helper()
	if err := os.WriteFile(path, pem.EncodeToMemory(&pem.Block{Type: blockType, Bytes: data}), 0o600); err != nil {
		t.Fatalf("can't write %s: %v", path, err)
	}
}
