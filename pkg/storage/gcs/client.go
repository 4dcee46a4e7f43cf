package gcs

import (
	"context"
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/tenuestore/tenue-backend/pkg/config"
	"github.com/tenuestore/tenue-backend/pkg/logger"
)

const (
	storageHost  = "storage.googleapis.com"
	firebaseHost = "firebasestorage.googleapis.com"
	readScope    = "https://www.googleapis.com/auth/devstorage.read_only"
	pingTimeout  = 5 * time.Second
)

// Client resolves object keys in a single bucket to browser-usable URLs.
type Client struct {
	httpClient     *http.Client
	defaultBucket  string
	signed         bool
	expiry         time.Duration
	serviceAccount *serviceAccountInfo
	now            func() time.Time
}

type serviceAccountInfo struct {
	clientEmail string
	privateKey  *rsa.PrivateKey
}

type Pinger interface {
	Ping(ctx context.Context) error
}

// NewClient loads credentials and checks bucket access. Signed mode requires
// service account JSON because V2 signatures need the private key; public mode
// works without credentials and skips the startup check.
func NewClient(ctx context.Context, cfg config.GCSConfig, gcp config.GCPConfig, signed bool, logg *logger.Logger) (*Client, error) {
	if cfg.BucketName == "" {
		return nil, errors.New("gcs bucket name is required")
	}

	credsJSON, err := loadCredentialsJSON(gcp)
	if err != nil {
		return nil, err
	}

	client := &Client{
		httpClient:    &http.Client{Timeout: 10 * time.Second},
		defaultBucket: cfg.BucketName,
		signed:        signed,
		expiry:        cfg.DownloadURLExpiry,
		now:           time.Now,
	}

	if len(credsJSON) > 0 {
		jwtCfg, err := google.JWTConfigFromJSON(credsJSON, readScope)
		if err != nil {
			return nil, fmt.Errorf("parsing service account credentials: %w", err)
		}
		key, err := parsePrivateKey(jwtCfg.PrivateKey)
		if err != nil {
			return nil, err
		}
		client.serviceAccount = &serviceAccountInfo{clientEmail: jwtCfg.Email, privateKey: key}
		client.httpClient = oauth2.NewClient(ctx, jwtCfg.TokenSource(ctx))
		client.httpClient.Timeout = 10 * time.Second
	}

	if signed && client.serviceAccount == nil {
		return nil, errors.New("signed media access requires service account credentials")
	}

	if client.serviceAccount != nil {
		if err := client.Ping(ctx); err != nil {
			return nil, fmt.Errorf("gcs health check failed: %w", err)
		}
	}

	if logg != nil {
		ctx = logg.WithFields(ctx, map[string]any{"bucket": cfg.BucketName, "signed": signed})
		logg.Info(ctx, "gcs client initialized")
	}

	return client, nil
}

func loadCredentialsJSON(gcp config.GCPConfig) ([]byte, error) {
	switch {
	case strings.TrimSpace(gcp.CredentialsJSON) != "":
		return []byte(gcp.CredentialsJSON), nil
	case strings.TrimSpace(gcp.ApplicationCredentials) != "":
		data, err := os.ReadFile(gcp.ApplicationCredentials)
		if err != nil {
			return nil, fmt.Errorf("reading credentials file: %w", err)
		}
		return data, nil
	default:
		return nil, nil
	}
}

func (c *Client) DefaultBucket() string {
	if c == nil {
		return ""
	}
	return c.defaultBucket
}

// Signed reports whether ObjectURL produces signed URLs.
func (c *Client) Signed() bool {
	return c != nil && c.signed
}

// ObjectURL returns a signed or public URL for key depending on the access mode.
func (c *Client) ObjectURL(key string) (string, error) {
	if c == nil {
		return "", errors.New("gcs client not initialized")
	}
	if c.signed {
		return c.SignedReadURL(c.defaultBucket, key, c.expiry)
	}
	return c.PublicURL(key)
}

// PublicURL builds the unauthenticated object URL in the default bucket.
func (c *Client) PublicURL(key string) (string, error) {
	key = strings.TrimLeft(strings.TrimSpace(key), "/")
	if key == "" {
		return "", errors.New("object key is required")
	}
	if c.defaultBucket == "" {
		return "", errors.New("bucket is required")
	}
	return "https://" + storageHost + "/" + c.defaultBucket + "/" + escapeObjectPath(key), nil
}

// SignedReadURL returns a V2 signed GET URL valid for expires.
func (c *Client) SignedReadURL(bucket, object string, expires time.Duration) (string, error) {
	if c == nil || c.serviceAccount == nil {
		return "", errors.New("service account credentials are required for signing")
	}
	if bucket == "" {
		bucket = c.defaultBucket
	}
	if bucket == "" {
		return "", errors.New("bucket is required")
	}
	object = strings.TrimLeft(strings.TrimSpace(object), "/")
	if object == "" {
		return "", errors.New("object key is required")
	}
	if expires <= 0 {
		return "", errors.New("expiry must be positive")
	}

	now := time.Now
	if c.now != nil {
		now = c.now
	}
	expiration := strconv.FormatInt(now().Add(expires).Unix(), 10)
	resource := "/" + bucket + "/" + escapeObjectPath(object)
	stringToSign := strings.Join([]string{http.MethodGet, "", "", expiration, resource}, "\n")

	signature, err := signV2(stringToSign, c.serviceAccount.privateKey)
	if err != nil {
		return "", err
	}

	query := url.Values{}
	query.Set("GoogleAccessId", c.serviceAccount.clientEmail)
	query.Set("Expires", expiration)
	query.Set("Signature", signature)

	return "https://" + storageHost + resource + "?" + query.Encode(), nil
}

// ObjectKeyFromURL extracts the object key from a URL that points into the
// default bucket, either path style (storage.googleapis.com/<bucket>/<key>)
// or the Firebase download form (/v0/b/<bucket>/o/<escaped key>).
func (c *Client) ObjectKeyFromURL(raw string) (string, bool) {
	if c == nil || c.defaultBucket == "" {
		return "", false
	}
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return "", false
	}

	path := u.EscapedPath()
	var escapedKey string
	switch strings.ToLower(u.Host) {
	case storageHost:
		prefix := "/" + url.PathEscape(c.defaultBucket) + "/"
		if !strings.HasPrefix(path, prefix) {
			return "", false
		}
		escapedKey = strings.TrimPrefix(path, prefix)
	case strings.ToLower(c.defaultBucket) + "." + storageHost:
		escapedKey = strings.TrimPrefix(path, "/")
	case firebaseHost:
		prefix := "/v0/b/" + url.PathEscape(c.defaultBucket) + "/o/"
		if !strings.HasPrefix(path, prefix) {
			return "", false
		}
		escapedKey = strings.TrimPrefix(path, prefix)
	default:
		return "", false
	}

	key, err := url.PathUnescape(escapedKey)
	if err != nil || strings.TrimSpace(key) == "" {
		return "", false
	}
	return key, true
}

func (c *Client) Close() error {
	return nil
}

// Ping lists at most one object to verify bucket access.
func (c *Client) Ping(ctx context.Context) error {
	if c == nil || c.httpClient == nil {
		return errors.New("gcs client not initialized")
	}
	if c.defaultBucket == "" {
		return errors.New("gcs bucket not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	u := fmt.Sprintf(
		"https://%s/storage/v1/b/%s/o?maxResults=1",
		storageHost,
		url.PathEscape(c.defaultBucket),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		if len(b) > 0 {
			return fmt.Errorf("gcs object check failed: %s: %s", resp.Status, strings.TrimSpace(string(b)))
		}
		return fmt.Errorf("gcs object check failed: %s", resp.Status)
	}

	return nil
}

func escapeObjectPath(key string) string {
	segments := strings.Split(key, "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return strings.Join(segments, "/")
}

func parsePrivateKey(pemData []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(pemData)
	if block == nil {
		return nil, errors.New("invalid private key")
	}
	key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err == nil {
		if priv, ok := key.(*rsa.PrivateKey); ok {
			return priv, nil
		}
	}
	priv, err := x509.ParsePKCS1PrivateKey(block.Bytes)
	if err != nil {
		return nil, errors.New("unsupported private key format")
	}
	return priv, nil
}

func signV2(stringToSign string, key *rsa.PrivateKey) (string, error) {
	hash := sha256.Sum256([]byte(stringToSign))
	signature, err := rsa.SignPKCS1v15(rand.Reader, key, crypto.SHA256, hash[:])
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(signature), nil
}
