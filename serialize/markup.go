package serialize

import "tgrab/snapshot"

// Markup returns outer HTML of the table captured with the snapshot.
func Markup(s *snapshot.Snapshot) string {
	return s.Markup
}
