/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/joho/godotenv"

	"inspiraview/internal/blobstore"
	"inspiraview/internal/config"
	"inspiraview/internal/crash"
	applog "inspiraview/internal/log"
	"inspiraview/internal/persist"
	"inspiraview/internal/telemetry"
	"inspiraview/internal/ui"
	"inspiraview/internal/version"
)

const cliTimeout = 30 * time.Second

func usage() {
	fmt.Println("InspiraView: reference moodboard")
	fmt.Printf("Version: %s\n", version.String())
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  inspiraview version|-v|--version    Show version")
	fmt.Println("  inspiraview info                    Show configuration, storage and scene summary")
	fmt.Println("  inspiraview export <file>           Write the saved scene as a JSON array to <file>")
	fmt.Println("  inspiraview import <file>           Replace the saved scene with the JSON array in <file>")
	fmt.Println("  inspiraview ui                      Launch desktop UI (build with -tags fyne for full UI)")
}

func main() {
	if code := runCLI(os.Args); code != 0 {
		os.Exit(code)
	}
}

// runCLI returns the process exit code.
func runCLI(args []string) int {
	// a missing .env is the normal case
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "warning: .env:", err)
	}
	cfg, sec, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "warning: config:", err)
	}
	applog.Init(applog.Options{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: cfg.Logging.Source,
		File:      cfg.Logging.File,
	})
	l := applog.WithComponent("cli")
	dir, err := config.ConfigDir()
	if err != nil {
		l.Warn("no config directory; using working directory", slog.Any("err", err))
		dir = "."
	}
	defer crash.Recover(crash.Guard{Dir: filepath.Join(dir, "crash")})

	tcfg := telemetry.FromEnv()
	tcfg.OptIn = tcfg.OptIn || cfg.General.TelemetryOptIn
	tel := telemetry.NewDefault(tcfg)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		tel.Flush(ctx)
	}()

	l.Debug("start", slog.Int("args", len(args)))
	if len(args) < 2 {
		usage()
		return 0
	}
	code := 0
	switch args[1] {
	case "version", "--version", "-v":
		fmt.Println("InspiraView")
		fmt.Println(version.String())
	case "info":
		code = run(l, func(ctx context.Context) error { return info(ctx, cfg, sec, dir) })
	case "export":
		if len(args) < 3 {
			fmt.Println("export requires <file>")
			usage()
			return 2
		}
		code = run(l, func(ctx context.Context) error { return exportScene(ctx, cfg, sec, dir, args[2]) })
	case "import":
		if len(args) < 3 {
			fmt.Println("import requires <file>")
			usage()
			return 2
		}
		code = run(l, func(ctx context.Context) error { return importScene(ctx, cfg, sec, dir, args[2]) })
	case "ui":
		telemetry.Event(telemetry.EventStarted, map[string]any{"os": runtime.GOOS})
		if err := ui.Run(ui.Options{Config: cfg, Secrets: sec, ConfigDir: dir}); err != nil {
			fmt.Println("Error:", err)
			code = 1
		}
	default:
		usage()
		code = 2
	}
	return code
}

func run(l *slog.Logger, fn func(ctx context.Context) error) int {
	ctx, cancel := context.WithTimeout(context.Background(), cliTimeout)
	defer cancel()
	if err := fn(ctx); err != nil {
		l.Error("command failed", slog.Any("err", err))
		fmt.Println("Error:", err)
		return 1
	}
	return 0
}

func openStore(ctx context.Context, cfg config.AppConfig, sec config.Secrets, dir string) (blobstore.Store, error) {
	opts := cfg.BlobOptions(dir, sec)
	s, err := blobstore.Open(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", opts.Backend, err)
	}
	return s, nil
}

func info(ctx context.Context, cfg config.AppConfig, sec config.Secrets, dir string) error {
	fmt.Println("Version:", version.String())
	fmt.Println("Config:", filepath.Join(dir, "config.yaml"))
	fmt.Println("Storage:", cfg.Storage.Backend)
	fmt.Println("Autosave:", cfg.Autosave.AutosaveInterval())
	fmt.Println("Telemetry:", cfg.General.TelemetryOptIn)
	s, err := openStore(ctx, cfg, sec, dir)
	if err != nil {
		return err
	}
	defer s.Close()
	items := persist.LoadScene(ctx, s)
	fmt.Println("Items:", len(items))
	return nil
}

func exportScene(ctx context.Context, cfg config.AppConfig, sec config.Secrets, dir, path string) error {
	s, err := openStore(ctx, cfg, sec, dir)
	if err != nil {
		return err
	}
	defer s.Close()
	data, err := persist.Export(persist.LoadScene(ctx, s))
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	telemetry.Event(telemetry.EventSceneExport, map[string]any{"source": "cli"})
	fmt.Println("Exported scene to", path)
	return nil
}

func importScene(ctx context.Context, cfg config.AppConfig, sec config.Secrets, dir, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	items, err := persist.Import(data)
	if err != nil {
		return err
	}
	s, err := openStore(ctx, cfg, sec, dir)
	if err != nil {
		return err
	}
	defer s.Close()
	if err := persist.SaveScene(ctx, s, items); err != nil {
		return err
	}
	telemetry.Event(telemetry.EventSceneImport, map[string]any{"source": "cli", "items": len(items)})
	fmt.Printf("Imported %d items from %s\n", len(items), path)
	return nil
}
