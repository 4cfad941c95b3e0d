// bckpcln keeps a folder of dated backup snapshots under a maximum size.
//
// Snapshots are sub-directories named YYYY-MM-DD_HHMM_SS (UTC). When the
// folder is too large, snapshots are evicted so that the survivors stay
// spread over the whole time range: the snapshot closest in time to a
// neighbor goes first, the oldest and newest go last.
//
// Usage:
//
//	# Explain what would be removed to fit in 6 GiB
//	bckpcln -d /srv/backups -m 6G
//
//	# Actually delete, without prompting
//	bckpcln -d /srv/backups -m 6G --delete -f
//
//	# Move evicted snapshots to cold storage instead
//	bckpcln -d /srv/backups -m 6G --move /mnt/cold
//
//	# Keep running: clean up every night and whenever a snapshot appears
//	bckpcln --config /etc/bckpcln.yaml --schedule "0 3 * * *" --watch
package main

func main() {
	Execute()
}
