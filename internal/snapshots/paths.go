package snapshots

import "fmt"

// Key returns the object key holding the snapshot for a tournament and kind.
func Key(tournament, kind string) string {
	return fmt.Sprintf("%s/rosters/%s.json", tournament, kind)
}

func manifestKey(tournament string) string {
	return fmt.Sprintf("%s/rosters/manifest.json", tournament)
}
