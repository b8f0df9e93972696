package selfupdate

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

var (
	ErrDevBuild      = errors.New("cannot update a development build")
	ErrAlreadyLatest = errors.New("already running the latest version")
	ErrChecksum      = errors.New("checksum verification failed")
)

// Stage names a step of an update.
type Stage string

const (
	StageCheck    Stage = "check"
	StageDownload Stage = "download"
	StageVerify   Stage = "verify"
	StageExtract  Stage = "extract"
	StageInstall  Stage = "install"
	StageDone     Stage = "done"
)

type UpdateInput struct {
	CurrentVersion string
	// TargetVersion pins a release tag. Empty means the latest release.
	TargetVersion string
}

type UpdateProgress struct {
	Stage   Stage
	Message string
}

type UpdateResult struct {
	Version string
	Path    string
}

type archiveKind int

const (
	tarGz archiveKind = iota
	zipArchive
)

// platformAsset describes the release archive for one GOOS/GOARCH pair.
type platformAsset struct {
	Name   string
	Kind   archiveKind
	Binary string
}

func currentAsset() (platformAsset, error) {
	return assetFor(runtime.GOOS, runtime.GOARCH)
}

func assetFor(goos, goarch string) (platformAsset, error) {
	if goos == "darwin" {
		return platformAsset{Name: "adaptly_Darwin_all.tar.gz", Kind: tarGz, Binary: "adaptly"}, nil
	}

	arch, ok := map[string]string{"amd64": "x86_64", "arm64": "arm64", "386": "i386"}[goarch]
	switch {
	case goos != "linux" && goos != "windows":
		return platformAsset{}, fmt.Errorf("unsupported operating system: %s", goos)
	case !ok:
		return platformAsset{}, fmt.Errorf("unsupported architecture: %s", goarch)
	case goos == "windows":
		return platformAsset{Name: "adaptly_Windows_" + arch + ".zip", Kind: zipArchive, Binary: "adaptly.exe"}, nil
	default:
		return platformAsset{Name: "adaptly_Linux_" + arch + ".tar.gz", Kind: tarGz, Binary: "adaptly"}, nil
	}
}

// Update downloads the release archive for this platform, checks it against
// the published checksums and swaps it in for the running executable.
func (c *Checker) Update(ctx context.Context, input *UpdateInput, progress func(UpdateProgress)) (*UpdateResult, error) {
	if progress == nil {
		progress = func(UpdateProgress) {}
	}
	if input.CurrentVersion == "(devel)" {
		return nil, ErrDevBuild
	}

	tag, err := c.resolveTag(ctx, input, progress)
	if err != nil {
		return nil, err
	}

	asset, err := currentAsset()
	if err != nil {
		return nil, err
	}

	target, err := c.execPath()
	if err != nil {
		return nil, fmt.Errorf("resolve executable path: %w", err)
	}
	work, err := os.MkdirTemp(filepath.Dir(target), ".adaptly-update-*")
	if err != nil {
		return nil, fmt.Errorf("create work dir: %w", err)
	}
	defer func() { _ = os.RemoveAll(work) }()

	progress(UpdateProgress{Stage: StageDownload, Message: fmt.Sprintf("Downloading %s...", tag)})
	archivePath := filepath.Join(work, asset.Name)
	sum, err := c.fetchTo(ctx, c.releaseURL(tag, asset.Name), archivePath)
	if err != nil {
		return nil, fmt.Errorf("download archive: %w", err)
	}

	progress(UpdateProgress{Stage: StageVerify, Message: "Verifying checksum..."})
	if err := c.verifyRelease(ctx, tag, asset.Name, sum); err != nil {
		return nil, err
	}

	progress(UpdateProgress{Stage: StageExtract, Message: "Extracting binary..."})
	binPath := filepath.Join(work, asset.Binary)
	binSum, err := extractTo(archivePath, asset, binPath)
	if err != nil {
		return nil, fmt.Errorf("extract binary: %w", err)
	}

	progress(UpdateProgress{Stage: StageInstall, Message: "Installing..."})
	if err := install(binPath, target, binSum); err != nil {
		return nil, fmt.Errorf("install: %w", err)
	}

	progress(UpdateProgress{Stage: StageDone, Message: fmt.Sprintf("Updated to %s", tag)})
	return &UpdateResult{Version: tag, Path: target}, nil
}

func (c *Checker) resolveTag(ctx context.Context, input *UpdateInput, progress func(UpdateProgress)) (string, error) {
	if input.TargetVersion != "" {
		return input.TargetVersion, nil
	}
	progress(UpdateProgress{Stage: StageCheck, Message: "Checking for latest version..."})
	res, err := c.Check(ctx, &CheckInput{Version: input.CurrentVersion})
	if err != nil {
		return "", fmt.Errorf("check for updates: %w", err)
	}
	if !res.UpdateAvailable {
		return "", ErrAlreadyLatest
	}
	return res.LatestVersion, nil
}

func (c *Checker) releaseURL(tag, file string) string {
	return fmt.Sprintf("%s/%s/%s/releases/download/%s/%s",
		strings.TrimRight(c.downloadBaseURL, "/"), c.owner, c.repo, tag, file)
}

func (c *Checker) verifyRelease(ctx context.Context, tag, asset, sum string) error {
	var buf strings.Builder
	if err := c.get(ctx, c.releaseURL(tag, "checksums.txt"), &buf); err != nil {
		return fmt.Errorf("download checksums: %w", err)
	}
	want, ok := parseChecksums(buf.String())[asset]
	if !ok {
		return fmt.Errorf("no checksum found for %s in checksums.txt", asset)
	}
	return compareSum(sum, want)
}

// fetchTo streams url into path and returns the hex sha256 of the body.
func (c *Checker) fetchTo(ctx context.Context, url, path string) (string, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return "", err
	}
	h := sha256.New()
	err = c.get(ctx, url, io.MultiWriter(f, h))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func (c *Checker) get(ctx context.Context, url string, w io.Writer) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}
	_, err = io.Copy(w, resp.Body)
	return err
}

// parseChecksums reads goreleaser's "<sha256>  <file>" lines.
func parseChecksums(data string) map[string]string {
	sums := make(map[string]string)
	for _, line := range strings.Split(data, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 2 {
			sums[fields[1]] = fields[0]
		}
	}
	return sums
}

func compareSum(got, want string) error {
	if !strings.EqualFold(got, want) {
		return fmt.Errorf("%w: expected %s, got %s", ErrChecksum, want, got)
	}
	return nil
}

// extractTo copies the asset's binary out of the archive at src into dst
// and returns its hex sha256.
func extractTo(src string, asset platformAsset, dst string) (string, error) {
	var (
		rc  io.ReadCloser
		err error
	)
	switch asset.Kind {
	case zipArchive:
		rc, err = openZipMember(src, asset.Binary)
	default:
		rc, err = openTarMember(src, asset.Binary)
	}
	if err != nil {
		return "", err
	}
	defer func() { _ = rc.Close() }()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return "", err
	}
	h := sha256.New()
	_, err = io.Copy(io.MultiWriter(out, h), rc)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

type multiCloser struct {
	io.Reader
	closers []io.Closer
}

func (m multiCloser) Close() error {
	var errs []error
	for i := len(m.closers) - 1; i >= 0; i-- {
		errs = append(errs, m.closers[i].Close())
	}
	return errors.Join(errs...)
}

func openTarMember(path, name string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	gz, err := gzip.NewReader(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("open gzip: %w", err)
	}
	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			_ = gz.Close()
			_ = f.Close()
			return nil, fmt.Errorf("read tar: %w", err)
		}
		if hdr.Typeflag == tar.TypeReg && filepath.Base(hdr.Name) == name {
			return multiCloser{Reader: tr, closers: []io.Closer{f, gz}}, nil
		}
	}
	_ = gz.Close()
	_ = f.Close()
	return nil, fmt.Errorf("binary %q not found in archive", name)
}

func openZipMember(path, name string) (io.ReadCloser, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open zip: %w", err)
	}
	for _, f := range zr.File {
		if filepath.Base(f.Name) != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			_ = zr.Close()
			return nil, err
		}
		return multiCloser{Reader: rc, closers: []io.Closer{zr, rc}}, nil
	}
	_ = zr.Close()
	return nil, fmt.Errorf("binary %q not found in archive", name)
}

// install re-hashes the staged binary at src, then renames it over target
// keeping target's file mode.
func install(src, target, wantSum string) error {
	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("stat target: %w", err)
	}

	f, err := os.Open(src)
	if err != nil {
		return err
	}
	h := sha256.New()
	_, err = io.Copy(h, f)
	_ = f.Close()
	if err != nil {
		return fmt.Errorf("re-read staged binary: %w", err)
	}
	if err := compareSum(hex.EncodeToString(h.Sum(nil)), wantSum); err != nil {
		return fmt.Errorf("staged binary changed after extraction: %w", err)
	}

	if err := os.Chmod(src, info.Mode()); err != nil {
		return fmt.Errorf("chmod: %w", err)
	}
	if err := os.Rename(src, target); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
