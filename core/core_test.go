package core

import (
	"errors"
	"fmt"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DROPPABLES_USER_ROLE", " Player ")
	t.Setenv("DROPPABLES_USER_PERMISSIONS", "files_upload, token_create")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() returned error: %v", err)
	}
	if cfg.IsGM() {
		t.Error("IsGM() = true for a player")
	}
	if cfg.GridSize != 100 || cfg.Locale != "en-US" || cfg.SceneID != "default" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	want := []string{PermissionFilesUpload, PermissionTokenCreate}
	if len(cfg.Permissions) != 2 || cfg.Permissions[0] != want[0] || cfg.Permissions[1] != want[1] {
		t.Errorf("Permissions = %v, want %v", cfg.Permissions, want)
	}
}

func TestValidate(t *testing.T) {
	valid := Config{DBPath: "d.db", UploadDir: "u", UserRole: RoleGM, GridSize: 50}
	tests := []struct {
		name     string
		mutate   func(*Config)
		wantCode string
	}{
		{"valid", func(*Config) {}, ""},
		{"missing db path", func(c *Config) { c.DBPath = "" }, ErrCodeMissingConfig},
		{"missing upload dir", func(c *Config) { c.UploadDir = "" }, ErrCodeMissingConfig},
		{"bad role", func(c *Config) { c.UserRole = "admin" }, ErrCodeInvalidValue},
		{"zero grid", func(c *Config) { c.GridSize = 0 }, ErrCodeInvalidValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantCode == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			cfgErr, ok := IsConfigError(err)
			if !ok || cfgErr.Code != tt.wantCode {
				t.Errorf("Validate() = %v, want code %s", err, tt.wantCode)
			}
		})
	}
}

func TestLoadConfigParseFailure(t *testing.T) {
	t.Setenv("DROPPABLES_GRID_SIZE", "wide")
	_, err := LoadConfig()
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) || cfgErr.Code != ErrCodeParseFailed {
		t.Errorf("LoadConfig() = %v, want a parse failure", err)
	}
}

func TestGetErrorCode(t *testing.T) {
	wrapped := fmt.Errorf("open app: %w", ErrMissingConfig("DROPPABLES_DB_PATH"))
	if got := GetErrorCode(wrapped); got != ErrCodeMissingConfig {
		t.Errorf("GetErrorCode(wrapped) = %q, want %q", got, ErrCodeMissingConfig)
	}
	if got := GetErrorCode(errors.New("boom")); got != "" {
		t.Errorf("GetErrorCode(plain) = %q, want empty", got)
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{-1, "0 B"},
		{512, "512 B"},
		{1536, "1.50 KB"},
		{5 * BytesPerMB, "5.00 MB"},
		{3 * BytesPerGB / 2, "1.50 GB"},
	}
	for _, tt := range tests {
		if got := FormatBytes(tt.in); got != tt.want {
			t.Errorf("FormatBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExitCodeName(t *testing.T) {
	for code, want := range map[int]string{
		ExitCodeSuccess:    "success",
		ExitCodeNotHandled: "not handled",
		ExitCodeSIGINT:     "interrupted (SIGINT)",
		42:                 "unknown",
	} {
		if got := ExitCodeName(code); got != want {
			t.Errorf("ExitCodeName(%d) = %q, want %q", code, got, want)
		}
	}
}

func TestActorFootprintAndRepeatable(t *testing.T) {
	a := Actor{Type: ActorTypeNPC, Prototype: TokenPrototype{Width: 3}}
	if got := a.Footprint(); got != (Size{Width: 3, Height: 1}) {
		t.Errorf("Footprint() = %+v", got)
	}
	if !a.IsRepeatable() {
		t.Error("unlinked NPC not repeatable")
	}
	a.Prototype.ActorLink = true
	if a.IsRepeatable() {
		t.Error("linked NPC repeatable")
	}
}
