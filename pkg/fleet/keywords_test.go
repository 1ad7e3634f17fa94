// Test Type: Unit Test
// Description: Tests for the pull-output change-detection predicate

package fleet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpdatesDetected(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   bool
	}{
		{
			name:   "pull_complete",
			output: "a1b2c3: Pull complete\n",
			want:   true,
		},
		{
			name:   "downloaded_newer_image",
			output: "Status: Downloaded newer image for nginx:latest\n",
			want:   true,
		},
		{
			name:   "pulling_layer",
			output: "Pulling web ... done\n",
			want:   true,
		},
		{
			name:   "case_insensitive",
			output: "STATUS: DOWNLOADED NEWER IMAGE FOR redis:7\n",
			want:   true,
		},
		{
			name:   "up_to_date",
			output: "Status: Image is up to date for nginx:latest\n",
			want:   false,
		},
		{
			name:   "empty_output",
			output: "",
			want:   false,
		},
		{
			name:   "unrelated_text",
			output: "web uses an image, skipping\n",
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UpdatesDetected(tt.output))
		})
	}
}

func TestExcluded(t *testing.T) {
	tests := []struct {
		name string
		path string
		want bool
	}{
		{"overlay_storage", "/home/u/.local/share/containers/storage/overlay/abc/merged/app", true},
		{"tmp", "/tmp/scratch/app", true},
		{"cache", "/home/u/.cache/build/app", true},
		{"var_tmp", "/var/tmp/app", true},
		{"regular_home_dir", "/home/u/ganymede", false},
		{"projects_dir", "/home/u/projects/stack", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Excluded(tt.path))
		})
	}
}
