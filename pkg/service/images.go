package service

import "regexp"

// Google Drive share links come in two shapes:
//
//	https://drive.google.com/file/d/<id>/view?usp=sharing
//	https://drive.google.com/open?id=<id>
//
// Neither serves as an <img> source, so both are rewritten to the direct
// content URL. Anything else passes through unchanged.
var (
	driveFilePattern = regexp.MustCompile(`drive\.google\.com/file/d/([a-zA-Z0-9_-]+)`)
	driveOpenPattern = regexp.MustCompile(`drive\.google\.com/(?:open|uc)\?.*?id=([a-zA-Z0-9_-]+)`)
)

func NormalizeImageURL(url string) string {
	if m := driveFilePattern.FindStringSubmatch(url); m != nil {
		return "https://drive.google.com/uc?export=view&id=" + m[1]
	}
	if m := driveOpenPattern.FindStringSubmatch(url); m != nil {
		return "https://drive.google.com/uc?export=view&id=" + m[1]
	}
	return url
}
