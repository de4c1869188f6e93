package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	getter "github.com/hashicorp/go-getter"
)

// Fetch resolves src to a local config file. Existing local paths are
// returned unchanged; anything else is treated as a go-getter source
// (git::, s3::, https://, file:: ...) and downloaded into dir.
func Fetch(ctx context.Context, src, dir string) (string, error) {
	if fi, err := os.Stat(src); err == nil && !fi.IsDir() {
		return src, nil
	}

	pwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	dst := filepath.Join(dir, "config.json")
	client := &getter.Client{
		Ctx:  ctx,
		Src:  src,
		Dst:  dst,
		Pwd:  pwd,
		Mode: getter.ClientModeFile,
	}
	if err := client.Get(); err != nil {
		return "", fmt.Errorf("fetch config %s: %w", src, err)
	}
	return dst, nil
}
