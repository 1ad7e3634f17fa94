// Package platform detects which operating-system family the updater
// is running on. Detection is a static lookup: runtime.GOOS first,
// then /etc/os-release content, then package-manager binary probes as
// a fallback for stripped-down distributions.
package platform

import (
	"os"
	"runtime"
	"strings"
)

// Family identifies a supported platform family. Exactly one family is
// detected per run; tasks are composed per family.
type Family string

const (
	MacOS   Family = "macos"
	Ubuntu  Family = "ubuntu"
	Fedora  Family = "fedora"
	RHEL    Family = "rhel"
	Unknown Family = "unknown"
)

const osReleasePath = "/etc/os-release"

// Supported reports whether the family has a task list. Unsupported
// platforms run zero tasks.
func (f Family) Supported() bool {
	return f == MacOS || f == Ubuntu || f == Fedora || f == RHEL
}

// Linux reports whether the family is one of the Linux distributions.
func (f Family) Linux() bool {
	return f == Ubuntu || f == Fedora || f == RHEL
}

// Detect returns the platform family of the current host.
func Detect() Family {
	switch runtime.GOOS {
	case "darwin":
		return MacOS
	case "linux":
		return detectLinuxDistro()
	default:
		return Unknown
	}
}

func detectLinuxDistro() Family {
	if content, err := os.ReadFile(osReleasePath); err == nil {
		if family := ParseOSRelease(string(content)); family != Unknown {
			return family
		}
	}

	// Fallback detection via package-manager binaries.
	if fileExists("/usr/bin/apt") {
		return Ubuntu
	}
	if fileExists("/usr/bin/dnf") {
		return Fedora
	}
	if fileExists("/usr/bin/yum") {
		return RHEL
	}

	return Unknown
}

// ParseOSRelease maps the content of an os-release file to a platform
// family. Ubuntu and Debian share the apt family; CentOS and RHEL
// share the yum family.
func ParseOSRelease(content string) Family {
	lower := strings.ToLower(content)
	switch {
	case strings.Contains(lower, "ubuntu"), strings.Contains(lower, "debian"):
		return Ubuntu
	case strings.Contains(lower, "fedora"):
		return Fedora
	case strings.Contains(lower, "centos"), strings.Contains(lower, "rhel"):
		return RHEL
	default:
		return Unknown
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
