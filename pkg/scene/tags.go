package scene

import (
	"regexp"
	"strings"
)

// resolutionRegex matches resolution markers like 720p, 1080p, 2160p, 480i.
var resolutionRegex = regexp.MustCompile(`(?i)^\d{3,4}[pi]$`)

// knownTags is the maintained vocabulary of release tags. A title ends at the
// first token found here; everything after is quality/source/codec/group noise.
var knownTags = map[string]bool{
	// resolution aliases without the trailing p/i
	"4k": true, "uhd": true, "sd": true, "hd": true,

	// source
	"bluray": true, "blu-ray": true, "bdrip": true, "brrip": true, "bd": true,
	"remux": true, "web": true, "webdl": true, "web-dl": true, "webrip": true,
	"web-rip": true, "hdtv": true, "pdtv": true, "dvdrip": true, "dvd": true,
	"cam": true, "camrip": true, "ts": true, "telesync": true, "hdcam": true,

	// streaming services
	"nf": true, "amzn": true, "dsnp": true, "hulu": true, "max": true,
	"hmax": true, "atvp": true, "pcok": true, "pmtp": true,

	// video codec
	"x264": true, "x265": true, "h264": true, "h265": true, "h.264": true,
	"h.265": true, "hevc": true, "avc": true, "av1": true, "vp9": true,
	"xvid": true, "divx": true, "10bit": true, "8bit": true,

	// audio
	"aac": true, "ac3": true, "eac3": true, "dd": true, "ddp": true,
	"dd+": true, "ddp5": true, "dts": true, "dts-hd": true, "dtshd": true,
	"truehd": true, "atmos": true, "flac": true, "opus": true, "mp3": true,
	"pcm": true, "ma": true,

	// HDR
	"hdr": true, "hdr10": true, "hdr10+": true, "dv": true, "dovi": true,
	"hlg": true, "sdr": true,

	// release flags
	"proper": true, "repack": true, "rerip": true, "internal": true,
	"extended": true, "unrated": true, "limited": true, "uncut": true,
	"remastered": true, "imax": true, "complete": true, "multi": true,
	"dual": true, "subbed": true, "dubbed": true, "retail": true,
}

// channelRegex matches audio channel layouts such as 5.1, 7.1, 2.0.
var channelRegex = regexp.MustCompile(`^\d\.\d$`)

// isTagToken reports whether a token belongs to the release-tag vocabulary.
func isTagToken(tok string) bool {
	t := strings.ToLower(tok)
	if knownTags[t] {
		return true
	}
	if resolutionRegex.MatchString(t) {
		return true
	}
	return channelRegex.MatchString(t)
}
