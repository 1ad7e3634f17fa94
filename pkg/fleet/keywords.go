package fleet

import "strings"

// updateKeywords are the fragments of docker-compose pull output that
// indicate an image was actually fetched, as opposed to "already up to
// date". Matching is case-insensitive.
var updateKeywords = []string{
	"pulling",
	"downloaded",
	"pull complete",
	"status: downloaded newer image",
}

// UpdatesDetected reports whether the captured pull output shows that
// at least one image was fetched. Only then is a restart warranted;
// restarting on an up-to-date stack is pointless downtime.
func UpdatesDetected(output string) bool {
	lower := strings.ToLower(output)
	for _, keyword := range updateKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}
