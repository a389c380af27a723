package certs

import (
	"crypto/tls"
	"crypto/x509"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func leaf(t *testing.T, cert tls.Certificate) *x509.Certificate {
	t.Helper()
	require.Len(t, cert.Certificate, 1)
	parsed, err := x509.ParseCertificate(cert.Certificate[0])
	require.NoError(t, err)
	return parsed
}

func TestStore_LoadOrCreate(t *testing.T) {
	tests := []struct {
		setup       func(t *testing.T, s *Store)
		name        string
		wantNewCert bool
	}{
		{
			name:        "creates a certificate when none exists",
			setup:       func(_ *testing.T, _ *Store) {},
			wantNewCert: true,
		},
		{
			name: "reuses a valid certificate",
			setup: func(t *testing.T, s *Store) {
				t.Helper()
				_, err := s.LoadOrCreate()
				require.NoError(t, err)
			},
			wantNewCert: false,
		},
		{
			name: "replaces unreadable files",
			setup: func(t *testing.T, s *Store) {
				t.Helper()
				require.NoError(t, os.MkdirAll(s.dir, 0o700))
				require.NoError(t, os.WriteFile(s.certFile, []byte("garbage"), 0o600))
				require.NoError(t, os.WriteFile(s.keyFile, []byte("garbage"), 0o600))
			},
			wantNewCert: true,
		},
		{
			name: "replaces an expired certificate",
			setup: func(t *testing.T, s *Store) {
				t.Helper()
				s.now = func() time.Time { return time.Now().Add(-2 * Validity) }
				_, err := s.LoadOrCreate()
				require.NoError(t, err)
				s.now = time.Now
			},
			wantNewCert: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore(filepath.Join(t.TempDir(), "certs"))
			tt.setup(t, s)

			var before []byte
			if data, err := os.ReadFile(s.certFile); err == nil {
				before = data
			}

			cert, err := s.LoadOrCreate()
			require.NoError(t, err)

			x := leaf(t, cert)
			assert.Equal(t, "Snowball Debt Planner", x.Subject.Organization[0])
			require.NoError(t, x.VerifyHostname("localhost"))
			require.NoError(t, x.VerifyHostname("127.0.0.1"))
			assert.True(t, x.NotAfter.After(time.Now().Add(364*24*time.Hour)))

			after, err := os.ReadFile(s.certFile)
			require.NoError(t, err)
			if tt.wantNewCert {
				assert.NotEqual(t, before, after)
			} else {
				assert.Equal(t, before, after)
			}

			info, err := os.Stat(s.keyFile)
			require.NoError(t, err)
			assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
		})
	}
}

func TestStore_TLSConfig(t *testing.T) {
	s := NewStore(t.TempDir())

	cfg, err := s.TLSConfig()
	require.NoError(t, err)
	require.Len(t, cfg.Certificates, 1)
	assert.Equal(t, uint16(tls.VersionTLS12), cfg.MinVersion)

	certFile, keyFile := s.Paths()
	assert.FileExists(t, certFile)
	assert.FileExists(t, keyFile)
}

func TestStore_UnwritableDir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(file, nil, 0o600))

	_, err := NewStore(filepath.Join(file, "certs")).LoadOrCreate()
	assert.Error(t, err)
}
