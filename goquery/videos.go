package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pkarbownik/newsprint"
)

// videoEmbedHosts are host substrings that identify an iframe as a video
// embed. Hosts not matched here still classify as videos when their URL
// ends in a direct video file extension.
var videoEmbedHosts = []string{
	"youtube",
	"youtu.be",
	"vimeo",
	"dailymotion",
	"wistia",
	"twitch",
	"streamable",
}

var directVideoExts = []string{".mp4", ".webm", ".mov"}

// extractVideos enumerates video elements and video-embed iframes over the
// whole tree, in document order.
func extractVideos(doc *goquery.Document, base *url.URL) []newsprint.Video {
	var out []newsprint.Video
	seen := make(map[string]bool)

	doc.Find("video, iframe").Each(func(_ int, sel *goquery.Selection) {
		isIframe := goquery.NodeName(sel) == "iframe"

		src, _ := sel.Attr("src")
		if strings.TrimSpace(src) == "" && !isIframe {
			src, _ = sel.Find("source").First().Attr("src")
		}
		resolved := resolveURL(base, src)
		if resolved == "" || seen[resolved] {
			return
		}

		u, err := url.Parse(resolved)
		if err != nil {
			return
		}
		// Iframes host arbitrary content; only recognized embeds count.
		if isIframe && !isVideoEmbed(u) {
			return
		}
		seen[resolved] = true

		video := newsprint.Video{
			URL:      resolved,
			Title:    videoTitle(sel),
			Platform: classifyPlatform(u),
		}
		if d, ok := sel.Attr("duration"); ok {
			d = strings.TrimSpace(d)
			video.Duration = &d
		} else if d, ok := sel.Attr("data-duration"); ok {
			d = strings.TrimSpace(d)
			video.Duration = &d
		}
		out = append(out, video)
	})

	return out
}

// videoTitle takes the title attribute, falling back to a caption in the
// enclosing figure.
func videoTitle(sel *goquery.Selection) string {
	if title := strings.TrimSpace(sel.AttrOr("title", "")); title != "" {
		return title
	}
	return normalizeSpace(sel.Closest("figure").Find("figcaption").First().Text())
}

func isVideoEmbed(u *url.URL) bool {
	host := strings.ToLower(u.Host)
	for _, h := range videoEmbedHosts {
		if strings.Contains(host, h) {
			return true
		}
	}
	return hasDirectVideoExt(u.Path)
}

func hasDirectVideoExt(path string) bool {
	path = strings.ToLower(path)
	for _, ext := range directVideoExts {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// classifyPlatform maps a video URL to its platform variant. Unrecognized
// embed hosts classify as "other", carrying the host as payload.
func classifyPlatform(u *url.URL) newsprint.Platform {
	host := strings.ToLower(u.Host)
	switch {
	case strings.Contains(host, "youtube") || strings.Contains(host, "youtu.be"):
		return newsprint.Platform{Kind: newsprint.PlatformYouTube}
	case strings.Contains(host, "vimeo"):
		return newsprint.Platform{Kind: newsprint.PlatformVimeo}
	case hasDirectVideoExt(u.Path):
		return newsprint.Platform{Kind: newsprint.PlatformDirect}
	default:
		return newsprint.Platform{Kind: newsprint.PlatformOther, Host: u.Host}
	}
}
