package media

import (
	"net/url"
	"strings"
)

type Kind string

const (
	KindVideo        Kind = "video"
	KindPlaylist     Kind = "playlist"
	KindUnrecognized Kind = "unrecognized"
)

// shortLinkHost marks share links whose path is the video id.
const shortLinkHost = "youtu.be"

type Target struct {
	Kind Kind   `json:"kind"`
	ID   string `json:"id,omitempty"`
}

func (t Target) Recognized() bool {
	return t.Kind == KindVideo || t.Kind == KindPlaylist
}

func unrecognized() Target {
	return Target{Kind: KindUnrecognized}
}

// Classify maps a source URL to the media it names. A playlist parameter
// wins over a video parameter; anything that is not an absolute URL is
// unrecognized.
func Classify(raw string) Target {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return unrecognized()
	}

	if strings.Contains(parsed.Hostname(), shortLinkHost) {
		id := strings.TrimPrefix(parsed.Path, "/")
		if id == "" {
			return unrecognized()
		}
		return Target{Kind: KindVideo, ID: id}
	}

	query := parsed.Query()
	if list := query.Get("list"); list != "" {
		return Target{Kind: KindPlaylist, ID: list}
	}
	if video := query.Get("v"); video != "" {
		return Target{Kind: KindVideo, ID: video}
	}
	return unrecognized()
}
