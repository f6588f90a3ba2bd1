// Package downloader fetches ggml whisper weights from the whisper.cpp HuggingFace
// repository into the local models directory.
package downloader

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/samber/lo"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
	"go.uber.org/zap"

	apperrors "v2t/internal/app/errors"
	"v2t/internal/app/util/files"
)

const DefaultBaseURL = "https://huggingface.co/ggerganov/whisper.cpp/resolve/main"

// Sizes are the ggml model sizes published upstream, smallest first.
var Sizes = []string{
	"tiny", "tiny.en",
	"base", "base.en",
	"small", "small.en",
	"medium", "medium.en",
	"large-v3",
}

// FileName returns the ggml file name for size.
func FileName(size string) string {
	return "ggml-" + size + ".bin"
}

// KnownSize reports whether size is listed in Sizes.
func KnownSize(size string) bool {
	return lo.Contains(Sizes, size)
}

// InstalledModel is a ggml file found in the models directory.
type InstalledModel struct {
	Size  string
	Path  string
	Bytes int64
}

type ModelDownloader struct {
	BaseURL string
	Dir     string
	Client  *http.Client
	// Progress receives an mpb bar per download. Nil disables it.
	Progress io.Writer
	Logger   *zap.Logger
}

// NewModelDownloader returns a downloader writing into dir.
func NewModelDownloader(dir string, logger *zap.Logger) *ModelDownloader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ModelDownloader{
		BaseURL: DefaultBaseURL,
		Dir:     dir,
		Client:  http.DefaultClient,
		Logger:  logger,
	}
}

// Download fetches ggml-<size>.bin and returns its local path. An existing non-empty
// file is kept as is. The body is written to a .tmp file that is renamed once
// complete; when the server sends X-Linked-Etag the SHA-256 must match it.
func (d *ModelDownloader) Download(ctx context.Context, size string) (string, error) {
	if !KnownSize(size) {
		return "", apperrors.InvalidField("model size", fmt.Sprintf("%q, expected one of %s", size, strings.Join(Sizes, ", ")))
	}
	if err := files.EnsureDir(d.Dir); err != nil {
		return "", err
	}

	name := FileName(size)
	destPath := filepath.Join(d.Dir, name)
	if info, err := os.Stat(destPath); err == nil && info.Size() > 0 {
		d.Logger.Info("model already exists", zap.String("path", destPath), zap.Int64("bytes", info.Size()))
		return destPath, nil
	}

	url := strings.TrimSuffix(d.BaseURL, "/") + "/" + name
	d.Logger.Info("downloading model", zap.String("url", url), zap.String("path", destPath))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := d.client().Do(req)
	if err != nil {
		return "", fmt.Errorf("downloading %s: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download failed: HTTP %d (%s)", resp.StatusCode, url)
	}

	tmpPath := destPath + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}

	hash := sha256.New()
	written, copyErr := d.copyWithProgress(io.MultiWriter(f, hash), resp, name)
	closeErr := f.Close()
	if copyErr == nil {
		copyErr = closeErr
	}
	if copyErr != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("writing model file: %w", copyErr)
	}

	if want := linkedSHA256(resp); want != "" {
		if got := hex.EncodeToString(hash.Sum(nil)); got != want {
			os.Remove(tmpPath)
			return "", fmt.Errorf("checksum mismatch for %s: got %s, want %s", name, got, want)
		}
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("moving model file: %w", err)
	}

	d.Logger.Info("model downloaded", zap.String("path", destPath), zap.Int64("bytes", written))
	return destPath, nil
}

func (d *ModelDownloader) copyWithProgress(dst io.Writer, resp *http.Response, name string) (int64, error) {
	if d.Progress == nil {
		return io.Copy(dst, resp.Body)
	}

	p := mpb.New(mpb.WithOutput(d.Progress))
	total := resp.ContentLength
	if total < 0 {
		total = 0
	}
	bar := p.AddBar(total,
		mpb.PrependDecorators(
			decor.Name(name+" ", decor.WC{C: decor.DindentRight}),
			decor.CountersKibiByte("% .1f / % .1f"),
		),
		mpb.AppendDecorators(
			decor.EwmaETA(decor.ET_STYLE_GO, 30),
			decor.Name(" "),
			decor.EwmaSpeed(decor.SizeB1024(0), "% .1f", 30),
		),
	)

	reader := bar.ProxyReader(resp.Body)
	written, err := io.Copy(dst, reader)
	reader.Close()
	if err != nil {
		bar.Abort(false)
	} else {
		bar.SetTotal(-1, true)
	}
	p.Wait()
	return written, err
}

func (d *ModelDownloader) client() *http.Client {
	if d.Client != nil {
		return d.Client
	}
	return http.DefaultClient
}

// Installed lists the ggml files in the models directory, ordered by name.
func (d *ModelDownloader) Installed() ([]InstalledModel, error) {
	matches, err := filepath.Glob(filepath.Join(d.Dir, "ggml-*.bin"))
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)

	var out []InstalledModel
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || info.IsDir() {
			continue
		}
		size := strings.TrimSuffix(strings.TrimPrefix(filepath.Base(m), "ggml-"), ".bin")
		out = append(out, InstalledModel{Size: size, Path: m, Bytes: info.Size()})
	}
	return out, nil
}

// linkedSHA256 returns the expected hash from resp or, when the final response
// lacks it, from the redirects that led to it. HuggingFace sends X-Linked-Etag on
// the resolve/ redirect, not on the CDN response.
func linkedSHA256(resp *http.Response) string {
	for r := resp; r != nil; {
		if want := expectedSHA256(r.Header); want != "" {
			return want
		}
		if r.Request == nil {
			break
		}
		r = r.Request.Response
	}
	return ""
}

// expectedSHA256 returns the LFS object hash HuggingFace sends for resolved files.
func expectedSHA256(h http.Header) string {
	etag := strings.Trim(h.Get("X-Linked-Etag"), `"`)
	if len(etag) != sha256.Size*2 {
		return ""
	}
	if _, err := hex.DecodeString(etag); err != nil {
		return ""
	}
	return strings.ToLower(etag)
}
