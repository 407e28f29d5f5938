package youtube

import "regexp"

var (
	videoURLRe = regexp.MustCompile(`^(https?://)?(www\.)?(youtube\.com/watch\?v=|youtu\.be/)[\w-]{11}(&\S*)?$`)
	videoIDRe  = regexp.MustCompile(`(?:v=|youtu\.be/)([\w-]{11})`)
)

// IsVideoURL reports whether s is a watch or short link to a single video.
func IsVideoURL(s string) bool {
	return videoURLRe.MatchString(s)
}

// VideoID extracts the 11 character video id, or "" when s has none.
func VideoID(s string) string {
	m := videoIDRe.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	return m[1]
}
