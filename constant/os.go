package constant

// GOOS values the browser opener and the mpv launcher branch on.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
	Android = "android"
	FreeBSD = "freebsd"
	OpenBSD = "openbsd"
)
