// Test Type: Unit Test
// Description: Tests for the platform package - os-release parsing and family predicates

package platform_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/waynelloyd/system-updater/pkg/platform"
)

func TestParseOSRelease(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    platform.Family
	}{
		{
			name:    "ubuntu",
			content: "NAME=\"Ubuntu\"\nID=ubuntu\nID_LIKE=debian\nVERSION_ID=\"24.04\"\n",
			want:    platform.Ubuntu,
		},
		{
			name:    "debian_maps_to_ubuntu_family",
			content: "PRETTY_NAME=\"Debian GNU/Linux 12 (bookworm)\"\nID=debian\n",
			want:    platform.Ubuntu,
		},
		{
			name:    "fedora",
			content: "NAME=\"Fedora Linux\"\nID=fedora\nVERSION_ID=41\n",
			want:    platform.Fedora,
		},
		{
			name:    "centos_maps_to_rhel_family",
			content: "NAME=\"CentOS Stream\"\nID=\"centos\"\n",
			want:    platform.RHEL,
		},
		{
			name:    "rhel",
			content: "NAME=\"Red Hat Enterprise Linux\"\nID=\"rhel\"\n",
			want:    platform.RHEL,
		},
		{
			name:    "case_insensitive",
			content: "NAME=\"UBUNTU\"\n",
			want:    platform.Ubuntu,
		},
		{
			name:    "unrecognized",
			content: "NAME=\"Arch Linux\"\nID=arch\n",
			want:    platform.Unknown,
		},
		{
			name:    "empty",
			content: "",
			want:    platform.Unknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, platform.ParseOSRelease(tt.content))
		})
	}
}

func TestFamilyPredicates(t *testing.T) {
	assert.True(t, platform.MacOS.Supported())
	assert.True(t, platform.Ubuntu.Supported())
	assert.True(t, platform.Fedora.Supported())
	assert.True(t, platform.RHEL.Supported())
	assert.False(t, platform.Unknown.Supported())

	assert.False(t, platform.MacOS.Linux())
	assert.True(t, platform.Ubuntu.Linux())
	assert.True(t, platform.Fedora.Linux())
	assert.True(t, platform.RHEL.Linux())
	assert.False(t, platform.Unknown.Linux())
}
