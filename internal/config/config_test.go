package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestManager_ReadWrite_RoundTrip(t *testing.T) {
	original := &Config{
		BaseDir:      "/home/user/.local/share/profilesave",
		LogDir:       "/home/user/.local/share/profilesave/log",
		BackupRoot:   "/mnt/backup/office",
		DefaultItems: []string{"Templates", "Signatures"},
		Copy:         CopyConfig{Exclude: []string{"*.tmp", "*.bak"}},
		Guard:        GuardConfig{Applications: []string{"WINWORD.EXE"}},
		History:      HistoryConfig{Type: "sqlite", DataDir: "/home/user/.local/share/profilesave"},
	}

	var buf bytes.Buffer
	m := &Manager{}

	if err := m.Write(&buf, original); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got, err := m.Read(&buf)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if got.BaseDir != original.BaseDir {
		t.Errorf("BaseDir = %q, want %q", got.BaseDir, original.BaseDir)
	}
	if got.LogDir != original.LogDir {
		t.Errorf("LogDir = %q, want %q", got.LogDir, original.LogDir)
	}
	if got.BackupRoot != original.BackupRoot {
		t.Errorf("BackupRoot = %q, want %q", got.BackupRoot, original.BackupRoot)
	}
	if len(got.DefaultItems) != 2 || got.DefaultItems[1] != "Signatures" {
		t.Errorf("DefaultItems = %v, want %v", got.DefaultItems, original.DefaultItems)
	}
	if len(got.Copy.Exclude) != 2 {
		t.Fatalf("len(Copy.Exclude) = %d, want 2", len(got.Copy.Exclude))
	}
	if len(got.Guard.Applications) != 1 || got.Guard.Applications[0] != "WINWORD.EXE" {
		t.Errorf("Guard.Applications = %v, want [WINWORD.EXE]", got.Guard.Applications)
	}
	if got.History.Type != "sqlite" {
		t.Errorf("History.Type = %q, want %q", got.History.Type, "sqlite")
	}
}

func TestNewConfig(t *testing.T) {
	cfg := NewConfig("/data/profilesave")

	if cfg.BaseDir != "/data/profilesave" {
		t.Errorf("BaseDir = %q, want %q", cfg.BaseDir, "/data/profilesave")
	}
	if cfg.LogDir != filepath.Join("/data/profilesave", "log") {
		t.Errorf("LogDir = %q, want %q", cfg.LogDir, filepath.Join("/data/profilesave", "log"))
	}
	if len(cfg.Guard.Applications) != len(DefaultApplications) {
		t.Errorf("len(Guard.Applications) = %d, want %d", len(cfg.Guard.Applications), len(DefaultApplications))
	}
	if cfg.History.Type != "sqlite" || cfg.History.DataDir != "/data/profilesave" {
		t.Errorf("History = %+v, want sqlite in base dir", cfg.History)
	}

	// Defaults are copies; mutating one config must not leak into the next.
	cfg.Guard.Applications[0] = "changed"
	if DefaultApplications[0] == "changed" {
		t.Error("NewConfig shares DefaultApplications backing array")
	}
}

func TestInit(t *testing.T) {
	t.Run("creates config file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "profilesave.toml")

		if err := Init(path, NewConfig(dir)); err != nil {
			t.Fatalf("Init() error = %v", err)
		}

		if _, err := os.Stat(path); err != nil {
			t.Fatalf("config file not created: %v", err)
		}
	})

	t.Run("fails if file already exists", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "profilesave.toml")
		cfg := NewConfig(dir)

		if err := Init(path, cfg); err != nil {
			t.Fatalf("first Init() error = %v", err)
		}

		if err := Init(path, cfg); err == nil {
			t.Fatal("second Init() expected error")
		}
	})
}

func TestReadFromFile(t *testing.T) {
	t.Run("reads valid config", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "profilesave.toml")
		cfg := NewConfig(dir)
		cfg.BackupRoot = "/srv/backups"
		cfg.History = HistoryConfig{Type: "memory"}

		if err := Init(path, cfg); err != nil {
			t.Fatalf("Init() error = %v", err)
		}

		got, err := ReadFromFile(path, dir)
		if err != nil {
			t.Fatalf("ReadFromFile() error = %v", err)
		}
		if got.BackupRoot != "/srv/backups" {
			t.Errorf("BackupRoot = %q, want %q", got.BackupRoot, "/srv/backups")
		}
		if got.History.Type != "memory" {
			t.Errorf("History.Type = %q, want %q", got.History.Type, "memory")
		}
	})

	t.Run("missing keys keep defaults", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "profilesave.toml")
		if err := os.WriteFile(path, []byte("backup_root = \"/srv/b\"\n"), 0644); err != nil {
			t.Fatalf("writing config: %v", err)
		}

		got, err := ReadFromFile(path, dir)
		if err != nil {
			t.Fatalf("ReadFromFile() error = %v", err)
		}
		if got.BaseDir != dir {
			t.Errorf("BaseDir = %q, want %q", got.BaseDir, dir)
		}
		if len(got.Guard.Applications) == 0 {
			t.Error("Guard.Applications should keep defaults")
		}
	})

	t.Run("base_dir in file roots derived dirs", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "profilesave.toml")
		if err := os.WriteFile(path, []byte("base_dir = \"/srv/ps\"\n"), 0644); err != nil {
			t.Fatalf("writing config: %v", err)
		}

		got, err := ReadFromFile(path, "/home/default/.local/share/profilesave")
		if err != nil {
			t.Fatalf("ReadFromFile() error = %v", err)
		}
		if got.BaseDir != "/srv/ps" {
			t.Errorf("BaseDir = %q, want %q", got.BaseDir, "/srv/ps")
		}
		if want := filepath.Join("/srv/ps", "log"); got.LogDir != want {
			t.Errorf("LogDir = %q, want %q", got.LogDir, want)
		}
		if got.History.DataDir != "/srv/ps" {
			t.Errorf("History.DataDir = %q, want %q", got.History.DataDir, "/srv/ps")
		}
		if got.History.Type != "sqlite" {
			t.Errorf("History.Type = %q, want %q", got.History.Type, "sqlite")
		}
		if len(got.Copy.Exclude) != len(DefaultExclude) {
			t.Errorf("Copy.Exclude = %v, want %v", got.Copy.Exclude, DefaultExclude)
		}
	})

	t.Run("explicit empty lists are kept", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "profilesave.toml")
		data := "[copy]\nexclude = []\n[guard]\napplications = []\n"
		if err := os.WriteFile(path, []byte(data), 0644); err != nil {
			t.Fatalf("writing config: %v", err)
		}

		got, err := ReadFromFile(path, dir)
		if err != nil {
			t.Fatalf("ReadFromFile() error = %v", err)
		}
		if len(got.Copy.Exclude) != 0 || len(got.Guard.Applications) != 0 {
			t.Errorf("Copy.Exclude = %v, Guard.Applications = %v, want both empty", got.Copy.Exclude, got.Guard.Applications)
		}
	})

	t.Run("returns error for missing file", func(t *testing.T) {
		if _, err := ReadFromFile("/nonexistent/path/profilesave.toml", "/tmp"); err == nil {
			t.Fatal("ReadFromFile() expected error for missing file")
		}
	})
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(filepath.Join(dir, "absent.toml"), dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.BaseDir != dir {
		t.Errorf("BaseDir = %q, want %q", cfg.BaseDir, dir)
	}
}
