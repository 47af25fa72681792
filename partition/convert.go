package partition

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// Converter produces a modern-format copy of an office document. The
// converted file takes the base name of sourcePath with targetFormat as
// its extension and is written into outDir. filter names a converter
// output profile; empty means the converter's default.
type Converter interface {
	Convert(ctx context.Context, sourcePath, outDir, targetFormat, filter string) error
}

// LibreOffice converts documents by invoking the soffice command-line
// program that ships with LibreOffice. The call blocks until the process
// exits; cancellation comes from ctx.
type LibreOffice struct {
	// Binary overrides the executable name. Defaults to "soffice".
	Binary string
}

func (lo LibreOffice) Convert(ctx context.Context, sourcePath, outDir, targetFormat, filter string) error {
	bin := lo.Binary
	if bin == "" {
		bin = "soffice"
	}
	cmd := exec.CommandContext(ctx, bin,
		"--headless",
		"--convert-to", convertTarget(targetFormat, filter),
		"--outdir", outDir,
		sourcePath,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return fmt.Errorf("converting %s to %s: %w: %s", filepath.Base(sourcePath), targetFormat, err, msg)
		}
		return fmt.Errorf("converting %s to %s: %w", filepath.Base(sourcePath), targetFormat, err)
	}
	return nil
}

// convertTarget builds the soffice --convert-to argument: the bare format,
// or format:filter when a named output profile is requested.
func convertTarget(format, filter string) string {
	if filter == "" {
		return format
	}
	return format + ":" + filter
}

// convertedPath is where the converter leaves its output: outDir joined
// with the source base name, extension swapped for the target format.
func convertedPath(sourcePath, outDir, targetFormat string) string {
	base := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))
	return filepath.Join(outDir, base+"."+targetFormat)
}
