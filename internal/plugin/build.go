package plugin

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
)

// Builder hands a declared plugin to the tool that packages it for the host
type Builder interface {
	Build(ctx context.Context, outputFolder string, p *Plugin) error
}

// ManifestBuilder writes <output>/<name>/plugin.toml and, when Command is
// set, runs it with the manifest path appended as the last argument
type ManifestBuilder struct {
	Command []string
	logger  *logrus.Logger
}

func NewManifestBuilder(command []string, logger *logrus.Logger) *ManifestBuilder {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &ManifestBuilder{
		Command: command,
		logger:  logger,
	}
}

func (b *ManifestBuilder) Build(ctx context.Context, outputFolder string, p *Plugin) error {
	start := time.Now()

	if err := p.Validate(); err != nil {
		return fmt.Errorf("invalid plugin: %w", err)
	}

	dir := filepath.Join(outputFolder, p.Name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output folder: %w", err)
	}

	manifest := filepath.Join(dir, ManifestFile)
	if err := WriteManifest(manifest, p); err != nil {
		return err
	}

	log := b.logger.WithFields(logrus.Fields{
		"plugin":   p.Name,
		"manifest": manifest,
	})
	log.WithField("parameters", len(p.Parameters)).Info("Plugin manifest written")

	if len(b.Command) == 0 {
		log.Debug("No build command configured, stopping after manifest")
		return nil
	}

	args := append(append([]string(nil), b.Command[1:]...), manifest)
	cmd := exec.CommandContext(ctx, b.Command[0], args...)
	cmd.Dir = dir
	out := log.WriterLevel(logrus.InfoLevel)
	defer out.Close()
	cmd.Stdout = out
	cmd.Stderr = out

	log.WithField("command", b.Command[0]).Info("Running plugin build tool")
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("build tool %s: %w", b.Command[0], err)
	}

	log.WithField("duration", time.Since(start).Round(time.Millisecond)).Info("Plugin built")
	return nil
}
