package storagefactory

import (
	"context"
	"strings"
	"testing"

	"novelhub/internal/config"
)

func TestNewStorage(t *testing.T) {
	tmpDir := t.TempDir()
	baseURL := "http://localhost:8080/storage"

	tests := []struct {
		name     string
		cfg      *config.StorageConfig
		wantType string
		wantNil  bool
		wantErr  bool
	}{
		{
			name: "valid local storage config",
			cfg: &config.StorageConfig{
				Type:  "local",
				Local: &config.LocalConfig{BasePath: tmpDir, BaseURL: baseURL},
			},
			wantType: "local",
		},
		{
			name:    "storage disabled",
			cfg:     &config.StorageConfig{},
			wantNil: true,
		},
		{
			name:    "missing local config",
			cfg:     &config.StorageConfig{Type: "local"},
			wantErr: true,
		},
		{
			name:    "missing oss config",
			cfg:     &config.StorageConfig{Type: "oss"},
			wantErr: true,
		},
		{
			name:    "unsupported storage type",
			cfg:     &config.StorageConfig{Type: "s3"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, err := NewStorage(tt.cfg)

			if tt.wantErr {
				if err == nil {
					t.Errorf("NewStorage() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewStorage() unexpected error: %v", err)
			}
			if tt.wantNil {
				if st != nil {
					t.Errorf("NewStorage() expected nil storage, got %v", st)
				}
				return
			}
			if st == nil {
				t.Fatalf("NewStorage() expected storage instance, got nil")
			}
			if st.GetStorageType() != tt.wantType {
				t.Errorf("GetStorageType() = %v, want %v", st.GetStorageType(), tt.wantType)
			}
		})
	}
}

func TestLocalStorage_Operations(t *testing.T) {
	ctx := context.Background()
	st, err := NewStorage(&config.StorageConfig{
		Type:  "local",
		Local: &config.LocalConfig{BasePath: t.TempDir(), BaseURL: "http://localhost:8080/storage"},
	})
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	testKey := "thumbnails/1/test.png"
	url, err := st.Upload(ctx, testKey, strings.NewReader("fake png"), "image/png")
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if want := "http://localhost:8080/storage/" + testKey; url != want {
		t.Errorf("Upload() url = %v, want %v", url, want)
	}

	exists, err := st.Exists(ctx, testKey)
	if err != nil || !exists {
		t.Fatalf("Exists() = %v, %v, want true", exists, err)
	}

	if err := st.Delete(ctx, testKey); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	exists, err = st.Exists(ctx, testKey)
	if err != nil || exists {
		t.Errorf("Exists() = %v, %v, want false after delete", exists, err)
	}
}
