package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lrstanley/go-ytdlp"

	"github.com/kvisuru/musicbox/internal/modules/music/application/ports"
)

// Tab-separated field templates handed to yt-dlp's --print. Metadata-only
// lookups run with --flat-playlist, where %(url)s is the entry's page URL;
// full lookups select an audio format first, making %(url)s the direct
// stream URL.
const (
	metadataFields = "%(id)s\t%(title)s\t%(url)s\t%(duration)s\t%(uploader)s\t%(uploader_url)s\t%(thumbnail)s"
	fullFields     = "%(id)s\t%(title)s\t%(webpage_url)s\t%(url)s\t%(duration)s\t%(uploader)s\t%(uploader_url)s\t%(thumbnail)s"
)

// YtdlpResolver resolves queries by shelling out to yt-dlp.
type YtdlpResolver struct{}

// NewYtdlpResolver creates a new YtdlpResolver.
func NewYtdlpResolver() *YtdlpResolver {
	return &YtdlpResolver{}
}

var _ ports.MediaResolver = (*YtdlpResolver)(nil)

// Lookup implements ports.MediaResolver. Free-text queries are turned into
// YouTube searches; URLs are extracted directly.
func (r *YtdlpResolver) Lookup(
	ctx context.Context,
	query string,
	opts ports.LookupOptions,
) (*ports.LookupResult, error) {
	target := query
	if !isURL(query) {
		// Searches resolve only the top hit; collections come from URLs.
		target = "ytsearch1:" + query
	}

	if opts.MetadataOnly {
		return r.lookupMetadata(ctx, target, opts.PlaylistLimit)
	}
	return r.lookupFull(ctx, target)
}

func (r *YtdlpResolver) lookupMetadata(
	ctx context.Context,
	target string,
	limit int,
) (*ports.LookupResult, error) {
	cmd := ytdlp.New().
		FlatPlaylist().
		Print(metadataFields).
		NoWarnings().
		IgnoreConfig()
	if limit > 0 {
		cmd = cmd.PlaylistItems(fmt.Sprintf("1-%d", limit))
	}

	res, err := cmd.Run(ctx, target)
	if err != nil {
		return nil, err
	}

	entries := parseEntries(res.Stdout, false)
	if len(entries) == 0 {
		return nil, errors.New("no results")
	}
	return &ports.LookupResult{Entries: entries, Playlist: len(entries) > 1}, nil
}

func (r *YtdlpResolver) lookupFull(ctx context.Context, target string) (*ports.LookupResult, error) {
	res, err := ytdlp.New().
		Print(fullFields).
		Format("bestaudio/best").
		NoPlaylist().
		NoCheckFormats().
		NoWarnings().
		IgnoreConfig().
		Run(ctx, "--skip-download", target)
	if err != nil {
		return nil, err
	}

	entries := parseEntries(res.Stdout, true)
	if len(entries) == 0 {
		return nil, errors.New("no results")
	}
	return &ports.LookupResult{Entries: entries, Playlist: len(entries) > 1}, nil
}

// parseEntries splits yt-dlp's printed output into one MediaInfo per line.
// Malformed lines are dropped.
func parseEntries(stdout string, full bool) []*ports.MediaInfo {
	want := 7
	if full {
		want = 8
	}

	var entries []*ports.MediaInfo
	for _, line := range strings.Split(strings.TrimSpace(stdout), "\n") {
		fields := strings.Split(line, "\t")
		if len(fields) < want {
			continue
		}
		for i, f := range fields {
			// yt-dlp prints NA for fields it could not fill.
			if f == "NA" {
				fields[i] = ""
			}
		}

		info := &ports.MediaInfo{
			Identifier: fields[0],
			Title:      fields[1],
		}
		if full {
			info.WebpageURL = fields[2]
			info.StreamURL = fields[3]
			info.Duration = parseSeconds(fields[4])
			info.Uploader = fields[5]
			info.UploaderURL = fields[6]
			info.ThumbnailURL = fields[7]
		} else {
			info.WebpageURL = fields[2]
			info.Duration = parseSeconds(fields[3])
			info.Uploader = fields[4]
			info.UploaderURL = fields[5]
			info.ThumbnailURL = fields[6]
		}
		entries = append(entries, info)
	}
	return entries
}

func parseSeconds(s string) int {
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return int(f)
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
