// Package logging provides the loader's leveled console output. No repo
// in the corpus carries a logging library — the teacher reports progress
// with plain fmt.Printf/Println banners (internal/indexer.Run) — so this
// wraps log/slog, the stdlib's structured-logging facility, rather than
// inventing an unseen third-party dependency (see DESIGN.md). Call sites
// still log the same load-lifecycle events the teacher prints, just as
// structured key-value pairs instead of formatted banners.
package logging

import (
	"log/slog"
	"os"
)

var std = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

// Default returns the package-level logger used throughout the loader.
func Default() *slog.Logger {
	return std
}

// SetLevel replaces Default() with a logger at the given minimum level,
// letting a CLI driver's -verbose flag dial output up or down the way
// the teacher's IndexerConfig.Verbose flag does.
func SetLevel(level slog.Level) {
	std = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
