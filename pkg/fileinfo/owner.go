package fileinfo

import (
	"os/user"
	"strconv"
)

// ownerName resolves uid to a user name, falling back to the numeric id.
func ownerName(uid uint32) string {
	id := strconv.FormatUint(uint64(uid), 10)
	u, err := user.LookupId(id)
	if err != nil || u.Username == "" {
		return id
	}
	return u.Username
}
