// Package render turns a partition result into text or JSON for people and
// scripts.
package render

import (
	"fmt"
	"io"
	"strings"

	"arrangio/internal/partition"
)

// FormatClock formats seconds as H:MM:SS. Hours are not padded and not
// folded into days.
func FormatClock(seconds int64) string {
	sign := ""
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}
	return fmt.Sprintf("%s%d:%02d:%02d", sign, seconds/3600, seconds%3600/60, seconds%60)
}

// Text writes r the way the command line prints it:
//
//	Difference (in seconds): 8
//	Groups:
//	  [1] 0:18:41 ['song05 (0:05:54)', 'song06 (0:05:16)']
//	  [2] 0:18:49 ['song03 (0:05:37)']
func Text(w io.Writer, r partition.Result) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Difference (in seconds): %d\n", r.Difference)
	b.WriteString("Groups:\n")
	for gi, g := range r.Partition {
		songs := make([]string, len(g.Members))
		for i, it := range g.Members {
			songs[i] = fmt.Sprintf("'%s (%s)'", it.Label, FormatClock(it.Duration))
		}
		fmt.Fprintf(&b, "  [%d] %s [%s]\n", gi+1, FormatClock(g.Total), strings.Join(songs, ", "))
	}

	_, err := io.WriteString(w, b.String())
	return err
}
