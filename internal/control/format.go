package control

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/jfmyers9/mediactl/internal/media"
)

// writeMediaInfo renders the metadata and playback state of one session
func writeMediaInfo(w io.Writer, id string, props *media.Properties, info *media.PlaybackInfo, tl *media.Timeline) {
	fmt.Fprintf(w, "Media from %s\n", id)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Title: %s\n", props.Title)
	fmt.Fprintf(w, "Subtitle: %s\n", props.Subtitle)
	fmt.Fprintf(w, "Artist: %s\n", props.Artist)
	fmt.Fprintf(w, "Album: %s\n", props.AlbumTitle)
	fmt.Fprintf(w, "Album Artist: %s\n", props.AlbumArtist)
	fmt.Fprintf(w, "Track Number: %d\n", props.TrackNumber)
	fmt.Fprintf(w, "Track Count: %d\n", props.TrackCount)
	fmt.Fprintf(w, "Genres: %s\n", strings.Join(props.Genres, ", "))
	fmt.Fprintf(w, "Media Type: %s\n", info.Type)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Playback Status: %s\n", info.Status)
	fmt.Fprintf(w, "Playback Rate: %s\n", strconv.FormatFloat(info.Rate, 'g', -1, 64))
	fmt.Fprintf(w, "Playback Position: %s / %s\n", formatClock(tl.Position), formatClock(tl.EndTime))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Shuffle: %t\n", info.Shuffle)
	fmt.Fprintf(w, "Repeat: %s\n", info.Repeat)
	fmt.Fprintln(w)
}

// formatClock formats d as hh:mm:ss. Hours are not wrapped at 24 and
// negative durations clamp to zero.
func formatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, total/60%60, total%60)
}
