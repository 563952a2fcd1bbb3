package domain

import (
	"regexp"
	"strings"
)

// Platform is the external service a URL belongs to
type Platform string

const (
	PlatformYouTube    Platform = "youtube"
	PlatformTwitch     Platform = "twitch"
	PlatformInstagram  Platform = "instagram"
	PlatformTikTok     Platform = "tiktok"
	PlatformTwitter    Platform = "twitter"
	PlatformDiscord    Platform = "discord"
	PlatformSpotify    Platform = "spotify"
	PlatformSoundCloud Platform = "soundcloud"
	PlatformGitHub     Platform = "github"
	PlatformLinkedIn   Platform = "linkedin"
	PlatformFacebook   Platform = "facebook"
	PlatformSnapchat   Platform = "snapchat"
	PlatformPinterest  Platform = "pinterest"
	PlatformReddit     Platform = "reddit"
	PlatformTelegram   Platform = "telegram"
	PlatformWhatsApp   Platform = "whatsapp"
	PlatformPatreon    Platform = "patreon"
	PlatformKofi       Platform = "kofi"
	PlatformOnlyFans   Platform = "onlyfans"
	PlatformThreads    Platform = "threads"
	PlatformBluesky    Platform = "bluesky"
)

type platformPattern struct {
	platform Platform
	re       *regexp.Regexp
}

// Order matters: the first matching entry wins.
// Short hosts (x.com, t.me, wa.me) are anchored on a word boundary so that
// e.g. dropbox.com does not resolve to twitter.
var platformPatterns = []platformPattern{
	{PlatformYouTube, regexp.MustCompile(`(?i)youtube\.com|youtu\.be`)},
	{PlatformTwitch, regexp.MustCompile(`(?i)twitch\.tv`)},
	{PlatformInstagram, regexp.MustCompile(`(?i)instagram\.com`)},
	{PlatformTikTok, regexp.MustCompile(`(?i)tiktok\.com`)},
	{PlatformTwitter, regexp.MustCompile(`(?i)twitter\.com|\bx\.com`)},
	{PlatformDiscord, regexp.MustCompile(`(?i)discord\.gg|discord\.com`)},
	{PlatformSpotify, regexp.MustCompile(`(?i)spotify\.com`)},
	{PlatformSoundCloud, regexp.MustCompile(`(?i)soundcloud\.com`)},
	{PlatformGitHub, regexp.MustCompile(`(?i)github\.com`)},
	{PlatformLinkedIn, regexp.MustCompile(`(?i)linkedin\.com`)},
	{PlatformFacebook, regexp.MustCompile(`(?i)facebook\.com`)},
	{PlatformSnapchat, regexp.MustCompile(`(?i)snapchat\.com`)},
	{PlatformPinterest, regexp.MustCompile(`(?i)pinterest\.com`)},
	{PlatformReddit, regexp.MustCompile(`(?i)reddit\.com`)},
	{PlatformTelegram, regexp.MustCompile(`(?i)\bt\.me|telegram\.me`)},
	{PlatformWhatsApp, regexp.MustCompile(`(?i)\bwa\.me|whatsapp\.com`)},
	{PlatformPatreon, regexp.MustCompile(`(?i)patreon\.com`)},
	{PlatformKofi, regexp.MustCompile(`(?i)ko-fi\.com`)},
	{PlatformOnlyFans, regexp.MustCompile(`(?i)onlyfans\.com`)},
	{PlatformThreads, regexp.MustCompile(`(?i)threads\.net`)},
	{PlatformBluesky, regexp.MustCompile(`(?i)bsky\.app`)},
}

var (
	twitchUserRe   = regexp.MustCompile(`(?i)twitch\.tv/([a-zA-Z0-9_]+)`)
	youtubeIDRe    = regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/)([a-zA-Z0-9_-]{11})`)
	youtubeThumbRe = regexp.MustCompile(`/vi/([a-zA-Z0-9_-]{11})/`)
	tiktokVideoRe  = regexp.MustCompile(`tiktok\.com/@[^/]+/video/(\d+)`)
)

// DetectPlatform returns the platform a URL belongs to. Unknown or malformed
// URLs report false.
func DetectPlatform(url string) (Platform, bool) {
	for _, p := range platformPatterns {
		if p.re.MatchString(url) {
			return p.platform, true
		}
	}
	return "", false
}

// DetectVideoPlatform narrows detection to the platforms a featured video can come from.
func DetectVideoPlatform(url string) (Platform, bool) {
	switch {
	case strings.Contains(url, "youtube.com"), strings.Contains(url, "youtu.be"):
		return PlatformYouTube, true
	case strings.Contains(url, "twitch.tv"):
		return PlatformTwitch, true
	case strings.Contains(url, "tiktok.com"):
		return PlatformTikTok, true
	}
	return "", false
}

// ExtractTwitchUsername returns the channel name following twitch.tv/.
func ExtractTwitchUsername(url string) (string, bool) {
	return firstGroup(twitchUserRe, url)
}

// ExtractYouTubeVideoID returns the 11 character id of watch?v= and youtu.be/ URLs.
// Other YouTube URL shapes are left to oEmbed resolution.
func ExtractYouTubeVideoID(url string) (string, bool) {
	return firstGroup(youtubeIDRe, url)
}

// ExtractYouTubeIDFromThumbnail reads the video id out of an img.youtube.com / i.ytimg.com thumbnail URL.
func ExtractYouTubeIDFromThumbnail(thumbnailURL string) (string, bool) {
	return firstGroup(youtubeThumbRe, thumbnailURL)
}

func ExtractTikTokVideoID(url string) (string, bool) {
	return firstGroup(tiktokVideoRe, url)
}

func TikTokEmbedURL(videoID string) string {
	return "https://www.tiktok.com/embed/v2/" + videoID
}

func YouTubeThumbnail(videoID string) string {
	return "https://img.youtube.com/vi/" + videoID + "/maxresdefault.jpg"
}

func YouTubeWatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}

func YouTubeEmbedURL(videoID string) string {
	return "https://www.youtube.com/embed/" + videoID
}

func firstGroup(re *regexp.Regexp, s string) (string, bool) {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	return m[1], true
}
