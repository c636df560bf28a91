package warehouse_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/salesdash/internal/provision"
	"github.com/okian/salesdash/internal/warehouse"
	"github.com/smartystreets/goconvey/convey"
)

func credentialParams() provision.Params {
	return provision.Params{
		Mode:     provision.AuthCredential,
		Account:  "acme-prod",
		User:     "reporting",
		Password: "hunter2",
		Database: "SALES",
		Schema:   "PUBLIC",
		Port:     443,
	}
}

func writePKCS8Key(t *testing.T, dir string) string {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	der, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		t.Fatalf("marshal key: %v", err)
	}
	path := filepath.Join(dir, "rsa_key.p8")
	out := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})
	if err := os.WriteFile(path, out, 0600); err != nil {
		t.Fatalf("write key: %v", err)
	}
	return path
}

func TestSQLConnector(t *testing.T) {
	convey.Convey("Given a snowflake connector", t, func() {
		ctx := context.Background()
		c := warehouse.NewSQLConnector(warehouse.DriverSnowflake)

		convey.Convey("When connecting with password credentials", func() {
			h, err := c.Connect(ctx, credentialParams())

			convey.Convey("Then a lazily-opened handle is returned", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(h, convey.ShouldNotBeNil)
				convey.So(h.Close(), convey.ShouldBeNil)
			})
		})

		convey.Convey("When connecting with a session token", func() {
			p := provision.Params{
				Mode:    provision.AuthToken,
				Account: "acme-prod",
				Host:    "acme.warehouse.internal",
				Port:    443,
				Token:   "tok-1",
			}
			h, err := c.Connect(ctx, p)

			convey.Convey("Then a handle is returned", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(h, convey.ShouldNotBeNil)
				convey.So(h.Close(), convey.ShouldBeNil)
			})
		})

		convey.Convey("When connecting with a valid PKCS#8 key", func() {
			p := credentialParams()
			p.Password = ""
			p.PrivateKeyPath = writePKCS8Key(t, t.TempDir())

			h, err := c.Connect(ctx, p)

			convey.Convey("Then key-pair auth is configured", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(h, convey.ShouldNotBeNil)
				convey.So(h.Close(), convey.ShouldBeNil)
			})
		})

		convey.Convey("When the private key file is missing", func() {
			p := credentialParams()
			p.Password = ""
			p.PrivateKeyPath = filepath.Join(t.TempDir(), "absent.p8")

			_, err := c.Connect(ctx, p)

			convey.Convey("Then it should fail with a credential error", func() {
				convey.So(errors.Is(err, provision.ErrCredential), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the private key file is not PEM", func() {
			dir := t.TempDir()
			path := filepath.Join(dir, "junk.p8")
			convey.So(os.WriteFile(path, []byte("not a key"), 0600), convey.ShouldBeNil)

			p := credentialParams()
			p.Password = ""
			p.PrivateKeyPath = path

			_, err := c.Connect(ctx, p)

			convey.Convey("Then it should fail with a credential error", func() {
				convey.So(errors.Is(err, provision.ErrCredential), convey.ShouldBeTrue)
			})
		})
	})

	convey.Convey("Given a mysql connector for local development", t, func() {
		ctx := context.Background()
		c := warehouse.NewSQLConnector(warehouse.DriverMySQL)

		convey.Convey("When connecting", func() {
			p := credentialParams()
			p.Host = "127.0.0.1"
			p.Port = 3306

			h, err := c.Connect(ctx, p)

			convey.Convey("Then a lazily-opened handle is returned", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(h, convey.ShouldNotBeNil)
				convey.So(h.Close(), convey.ShouldBeNil)
			})
		})
	})
}
