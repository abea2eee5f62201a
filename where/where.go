// Package where resolves the directories playalong reads and writes.
// Every directory returned is created on the filesystem backend first.
package where

import (
	"os"
	"path/filepath"

	"github.com/playalong-cli/playalong/constant"
	"github.com/playalong-cli/playalong/filesystem"
	"github.com/samber/lo"
)

// EnvConfigPath overrides the configuration directory.
const EnvConfigPath = "PLAYALONG_CONFIG_PATH"

func mkdir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config holds playalong.toml and, below it, the logs.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok && custom != "" {
		return mkdir(custom)
	}
	return mkdir(filepath.Join(lo.Must(os.UserConfigDir()), constant.Playalong))
}

func Logs() string {
	return mkdir(filepath.Join(Config(), "logs"))
}

// Cache falls back to ./cache when the user has no cache directory.
func Cache() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = filepath.Join(".", "cache")
	}
	return mkdir(filepath.Join(base, constant.Playalong))
}

// Probes is the file of cached video availability probes.
func Probes() string {
	return filepath.Join(Cache(), "probes.json")
}

// Temp holds player IPC sockets. It is safe to remove when no session runs.
func Temp() string {
	return mkdir(filepath.Join(os.TempDir(), constant.Playalong))
}

// Socket is the IPC socket path of the player session identified by id.
func Socket(id string) string {
	return filepath.Join(Temp(), id+".sock")
}
