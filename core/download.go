package core

import (
	"context"
	"crypto/sha1"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// UserAgent is sent with every request horizr makes
const UserAgent = "horizr/horizr (+https://github.com/horizr/horizr)"

// GetWithUA performs a GET request with the horizr user agent and fails on non-2xx responses.
// The caller must close the response body.
func GetWithUA(url string, contentType string) (*http.Response, error) {
	return GetWithUAContext(context.Background(), url, contentType)
}

func GetWithUAContext(ctx context.Context, url string, contentType string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", UserAgent)
	if contentType != "" {
		req.Header.Set("Accept", contentType)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		_ = res.Body.Close()
		return nil, fmt.Errorf("request to %s failed with status %d", url, res.StatusCode)
	}
	return res, nil
}

// FileDigest holds what a FileRecord needs to know about downloaded bytes
type FileDigest struct {
	SHA1   string
	SHA512 string
	Size   int64
}

// DownloadAndHash downloads url without storing it and returns its hashes and size
func DownloadAndHash(ctx context.Context, url string) (FileDigest, error) {
	res, err := GetWithUAContext(ctx, url, "")
	if err != nil {
		return FileDigest{}, err
	}
	defer res.Body.Close()

	sha1Hash := sha1.New()
	sha512Hash := sha512.New()
	size, err := io.Copy(io.MultiWriter(sha1Hash, sha512Hash), res.Body)
	if err != nil {
		return FileDigest{}, fmt.Errorf("failed to download %s: %w", url, err)
	}
	return FileDigest{
		SHA1:   hex.EncodeToString(sha1Hash.Sum(nil)),
		SHA512: hex.EncodeToString(sha512Hash.Sum(nil)),
		Size:   size,
	}, nil
}

// ErrHashMismatch is returned when downloaded bytes do not match the recorded hash
var ErrHashMismatch = errors.New("hash mismatch")

// DownloadVerified downloads url to dest and checks the sha512 of the downloaded bytes.
// dest is only created when the hash matches.
func DownloadVerified(ctx context.Context, url string, dest string, wantSHA512 string) error {
	res, err := GetWithUAContext(ctx, url, "")
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if err := os.MkdirAll(filepath.Dir(dest), os.ModePerm); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(dest), "."+filepath.Base(dest)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	h := sha512.New()
	if _, err := io.Copy(io.MultiWriter(tmp, h), res.Body); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to download %s: %w", url, err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if got := hex.EncodeToString(h.Sum(nil)); !strings.EqualFold(got, wantSHA512) {
		return fmt.Errorf("%s: %w (expected %s, got %s)", url, ErrHashMismatch, wantSHA512, got)
	}
	return os.Rename(tmp.Name(), dest)
}
