package gcs

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"
)

func TestSignedReadURLSuccess(t *testing.T) {
	t.Parallel()

	key := mustGenerateKey(t)
	fixed := time.Unix(1_700_000_000, 0)
	client := &Client{
		defaultBucket: "tenue-media",
		serviceAccount: &serviceAccountInfo{
			clientEmail: "signer@example.iam.gserviceaccount.com",
			privateKey:  key,
		},
		now: func() time.Time { return fixed },
	}

	object := "products/robe soirée.jpg"
	urlStr, err := client.SignedReadURL("", object, 5*time.Minute)
	if err != nil {
		t.Fatalf("SignedReadURL returned error: %v", err)
	}

	parsed, err := url.Parse(urlStr)
	if err != nil {
		t.Fatalf("parse signed read url: %v", err)
	}
	if !strings.EqualFold(parsed.Host, storageHost) {
		t.Fatalf("unexpected host %s", parsed.Host)
	}
	resource := parsed.EscapedPath()
	if resource != "/tenue-media/products/robe%20soir%C3%A9e.jpg" {
		t.Fatalf("unexpected path %s", resource)
	}

	values := parsed.Query()
	if got := values.Get("GoogleAccessId"); got != "signer@example.iam.gserviceaccount.com" {
		t.Fatalf("unexpected GoogleAccessId %q", got)
	}
	expires := values.Get("Expires")
	if expires != strconv.FormatInt(fixed.Add(5*time.Minute).Unix(), 10) {
		t.Fatalf("unexpected Expires %q", expires)
	}

	rawSig, err := base64.StdEncoding.DecodeString(values.Get("Signature"))
	if err != nil {
		t.Fatalf("decode signature: %v", err)
	}
	hash := sha256.Sum256([]byte("GET\n\n\n" + expires + "\n" + resource))
	if err := rsa.VerifyPKCS1v15(&key.PublicKey, crypto.SHA256, hash[:], rawSig); err != nil {
		t.Fatalf("verify read signature: %v", err)
	}
}

func TestSignedReadURLErrors(t *testing.T) {
	t.Parallel()

	client := &Client{
		serviceAccount: &serviceAccountInfo{
			clientEmail: "test@example.com",
			privateKey:  mustGenerateKey(t),
		},
	}

	cases := []struct {
		name    string
		bucket  string
		object  string
		expires time.Duration
	}{
		{"missing bucket", "", "object", time.Minute},
		{"missing object", "bucket", " ", time.Minute},
		{"negative ttl", "bucket", "object", -time.Minute},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := client.SignedReadURL(tc.bucket, tc.object, tc.expires); err == nil {
				t.Fatalf("expected error for %s", tc.name)
			}
		})
	}

	emptyClient := &Client{defaultBucket: "bucket"}
	if _, err := emptyClient.SignedReadURL("", "object", time.Minute); err == nil {
		t.Fatal("expected error without service account")
	}
}

func TestObjectURLPublicMode(t *testing.T) {
	t.Parallel()

	client := &Client{defaultBucket: "tenue-media"}
	got, err := client.ObjectURL("categories/caftan.png")
	if err != nil {
		t.Fatalf("ObjectURL: %v", err)
	}
	if got != "https://storage.googleapis.com/tenue-media/categories/caftan.png" {
		t.Fatalf("unexpected public url %s", got)
	}
	if _, err := client.ObjectURL(""); err == nil {
		t.Fatal("expected empty key to fail")
	}
}

func TestObjectKeyFromURL(t *testing.T) {
	t.Parallel()

	client := &Client{defaultBucket: "tenue-media"}
	cases := []struct {
		name string
		raw  string
		want string
		ok   bool
	}{
		{"path style", "https://storage.googleapis.com/tenue-media/products/a.jpg", "products/a.jpg", true},
		{"signed url", "https://storage.googleapis.com/tenue-media/products/a%20b.jpg?Expires=1&Signature=x", "products/a b.jpg", true},
		{"virtual host", "https://tenue-media.storage.googleapis.com/products/a.jpg", "products/a.jpg", true},
		{"firebase", "https://firebasestorage.googleapis.com/v0/b/tenue-media/o/products%2Fa.jpg?alt=media", "products/a.jpg", true},
		{"other bucket", "https://storage.googleapis.com/other/products/a.jpg", "", false},
		{"foreign host", "https://cdn.example.com/tenue-media/products/a.jpg", "", false},
		{"bucket only", "https://storage.googleapis.com/tenue-media/", "", false},
		{"not a url", "products/a.jpg", "", false},
	}
	for _, tc := range cases {
		got, ok := client.ObjectKeyFromURL(tc.raw)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("%s: expected (%q,%v) got (%q,%v)", tc.name, tc.want, tc.ok, got, ok)
		}
	}
}

func TestSignedURLRoundTripsThroughKeyExtraction(t *testing.T) {
	t.Parallel()

	client := &Client{
		defaultBucket: "tenue-media",
		serviceAccount: &serviceAccountInfo{
			clientEmail: "signer@example.com",
			privateKey:  mustGenerateKey(t),
		},
		signed: true,
		expiry: time.Hour,
	}
	signed, err := client.ObjectURL("products/gandoura.jpg")
	if err != nil {
		t.Fatalf("ObjectURL: %v", err)
	}
	key, ok := client.ObjectKeyFromURL(signed)
	if !ok || key != "products/gandoura.jpg" {
		t.Fatalf("expected key from signed url, got %q ok=%v", key, ok)
	}
}

func mustGenerateKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate rsa key: %v", err)
	}
	return key
}
