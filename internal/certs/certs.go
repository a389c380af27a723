// Package certs keeps a self-signed localhost certificate for serving the API
// over HTTPS.
package certs

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"net"
	"os"
	"path/filepath"
	"time"
)

// Validity is how long a generated certificate lasts.
const Validity = 365 * 24 * time.Hour

// ErrInvalidCertificate is returned when a stored certificate cannot be used.
var ErrInvalidCertificate = errors.New("invalid certificate")

// Store keeps a certificate and key pair in a directory.
type Store struct {
	now      func() time.Time
	dir      string
	certFile string
	keyFile  string
}

// NewStore creates a store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{
		now:      time.Now,
		dir:      dir,
		certFile: filepath.Join(dir, "localhost.crt"),
		keyFile:  filepath.Join(dir, "localhost.key"),
	}
}

// Paths returns the certificate and key file paths.
func (s *Store) Paths() (certFile, keyFile string) {
	return s.certFile, s.keyFile
}

// LoadOrCreate returns the stored certificate, generating a new one when none
// exists or the stored one is unreadable, expired or not valid for localhost.
func (s *Store) LoadOrCreate() (tls.Certificate, error) {
	cert, err := s.load()
	if err == nil {
		return cert, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		slog.Warn("Regenerating localhost certificate", "dir", s.dir, "reason", err)
	}
	return s.generate()
}

// TLSConfig returns a server configuration using the stored certificate.
func (s *Store) TLSConfig() (*tls.Config, error) {
	cert, err := s.LoadOrCreate()
	if err != nil {
		return nil, err
	}
	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
	}, nil
}

func (s *Store) load() (tls.Certificate, error) {
	for _, path := range []string{s.certFile, s.keyFile} {
		if _, err := os.Stat(path); err != nil {
			return tls.Certificate{}, err
		}
	}

	cert, err := tls.LoadX509KeyPair(s.certFile, s.keyFile)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("%w: %w", ErrInvalidCertificate, err)
	}
	if err := s.verify(cert); err != nil {
		return tls.Certificate{}, err
	}
	return cert, nil
}

func (s *Store) verify(cert tls.Certificate) error {
	if len(cert.Certificate) == 0 {
		return fmt.Errorf("%w: no certificates found", ErrInvalidCertificate)
	}
	leaf, err := x509.ParseCertificate(cert.Certificate[0])
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidCertificate, err)
	}

	now := s.now()
	if now.Before(leaf.NotBefore) || now.After(leaf.NotAfter) {
		return fmt.Errorf("%w: outside its validity period", ErrInvalidCertificate)
	}
	if err := leaf.VerifyHostname("localhost"); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidCertificate, err)
	}
	return nil
}

func (s *Store) generate() (tls.Certificate, error) {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return tls.Certificate{}, fmt.Errorf("failed to create certificate directory: %w", err)
	}

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("failed to generate private key: %w", err)
	}
	serial, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 128))
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("failed to generate serial number: %w", err)
	}

	now := s.now()
	template := x509.Certificate{
		SerialNumber: serial,
		Subject: pkix.Name{
			Organization: []string{"Snowball Debt Planner"},
			CommonName:   "localhost",
		},
		NotBefore:             now.Add(-time.Minute),
		NotAfter:              now.Add(Validity),
		KeyUsage:              x509.KeyUsageDigitalSignature,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		BasicConstraintsValid: true,
		IPAddresses:           []net.IP{net.IPv4(127, 0, 0, 1), net.IPv6loopback},
		DNSNames:              []string{"localhost"},
	}

	certDER, err := x509.CreateCertificate(rand.Reader, &template, &template, &key.PublicKey, key)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("failed to create certificate: %w", err)
	}
	keyDER, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("failed to encode private key: %w", err)
	}

	if err := writePEM(s.certFile, "CERTIFICATE", certDER); err != nil {
		return tls.Certificate{}, err
	}
	if err := writePEM(s.keyFile, "PRIVATE KEY", keyDER); err != nil {
		return tls.Certificate{}, err
	}

	slog.Info("Generated localhost certificate", "cert", s.certFile, "expires", template.NotAfter.Format(time.DateOnly))
	return tls.LoadX509KeyPair(s.certFile, s.keyFile)
}

func writePEM(path, blockType string, der []byte) error {
	data := pem.EncodeToMemory(&pem.Block{Type: blockType, Bytes: der})
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return nil
}
