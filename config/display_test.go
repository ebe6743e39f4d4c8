package config

import (
	"errors"
	"strings"
	"testing"
)

func TestLoadDisplay(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		env     map[string]string
		want    Display
		wantErr string
	}{
		{
			name: "defaults_fill_missing",
			doc:  "title: demo\n",
			want: Display{Title: "demo", Width: 1280, Height: 720, Resizable: true, VSync: true, TPS: 60},
		},
		{
			name: "env_overrides_yaml",
			doc:  "title: demo\nwidth: 800\nheight: 600\n",
			env:  map[string]string{"ARCBALL_WIDTH": "1024", "ARCBALL_VSYNC": "false"},
			want: Display{Title: "demo", Width: 1024, Height: 600, Resizable: true, VSync: false, TPS: 60},
		},
		{
			name:    "bad_env",
			doc:     "title: demo\n",
			env:     map[string]string{"ARCBALL_HEIGHT": "tall"},
			wantErr: "parse env:",
		},
		{
			name:    "invalid_size",
			doc:     "width: 0\n",
			wantErr: "invalid display",
		},
		{
			name:    "bad_yaml",
			doc:     "width: [",
			wantErr: "unmarshal display",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			got, err := LoadDisplay([]byte(tc.doc))
			if tc.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
					t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %+v, got %+v", tc.want, got)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	d := DefaultDisplay()
	d.TPS = 0
	if err := d.Validate(); !errors.Is(err, ErrInvalidDisplay) {
		t.Fatalf("expected ErrInvalidDisplay, got %v", err)
	}
}

func TestLoadDisplayWithOverrides(t *testing.T) {
	tests := []struct {
		name      string
		doc       string
		env       map[string]string
		overrides Overrides
		want      Display
	}{
		{
			name: "no_overrides",
			doc:  "width: 800\nheight: 600\n",
			want: Display{Title: "arcball", Width: 800, Height: 600, Resizable: true, VSync: true, TPS: 60},
		},
		{
			name:      "flags_win_over_yaml",
			doc:       "width: 800\nheight: 600\n",
			overrides: Overrides{Width: 1920, Height: 1080},
			want:      Display{Title: "arcball", Width: 1920, Height: 1080, Resizable: true, VSync: true, TPS: 60},
		},
		{
			name:      "flags_win_over_env",
			doc:       "width: 800\nheight: 600\n",
			env:       map[string]string{"ARCBALL_WIDTH": "1024", "ARCBALL_HEIGHT": "768"},
			overrides: Overrides{Width: 640},
			want:      Display{Title: "arcball", Width: 640, Height: 768, Resizable: true, VSync: true, TPS: 60},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			got, err := LoadDisplayWith([]byte(tc.doc), tc.overrides)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestLoadDisplayWithKeepsOverridesAcrossReloads(t *testing.T) {
	o := Overrides{Width: 1600, Height: 900}
	for i, doc := range []string{"width: 800\nheight: 600\n", "width: 1024\nheight: 768\ntps: 30\n"} {
		got, err := LoadDisplayWith([]byte(doc), o)
		if err != nil {
			t.Fatalf("load %d: %v", i, err)
		}
		if got.Width != 1600 || got.Height != 900 {
			t.Fatalf("load %d: size = %dx%d, want 1600x900", i, got.Width, got.Height)
		}
	}
}
