// Package logfields holds the canonical slog attribute keys used across scssc.
package logfields

import (
	"log/slog"
	"time"
)

const (
	KeyAsset      = "asset"
	KeyPath       = "path"
	KeySource     = "source"
	KeyDurationMS = "duration_ms"
	KeySizeBytes  = "size_bytes"
	KeyForce      = "force"
	KeyError      = "error"
)

func Asset(name string) slog.Attr     { return slog.String(KeyAsset, name) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Source(p string) slog.Attr       { return slog.String(KeySource, p) }
func SizeBytes(n int64) slog.Attr     { return slog.Int64(KeySizeBytes, n) }
func Force(force bool) slog.Attr      { return slog.Bool(KeyForce, force) }
func Duration(d time.Duration) slog.Attr {
	return slog.Float64(KeyDurationMS, float64(d.Microseconds())/1000)
}

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
