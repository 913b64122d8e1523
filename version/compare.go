// Package version compares grauman releases and looks up the latest one.
package version

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
)

var ErrInvalidVersion = errors.New("release version must look like MAJOR.MINOR.PATCH")

type release struct {
	major, minor, patch int
}

// parseRelease reads a release tag such as v0.3.1. Anything after the patch
// number, like a -rc suffix, is ignored.
func parseRelease(tag string) (release, error) {
	var r release
	if _, err := fmt.Sscanf(strings.TrimPrefix(tag, "v"), "%d.%d.%d", &r.major, &r.minor, &r.patch); err != nil {
		return release{}, fmt.Errorf("%w: %q", ErrInvalidVersion, tag)
	}
	return r, nil
}

// Compare orders two grauman release tags: 1 when a is newer, -1 when b is,
// 0 when they name the same release.
func Compare(a, b string) (int, error) {
	ra, err := parseRelease(a)
	if err != nil {
		return 0, err
	}

	rb, err := parseRelease(b)
	if err != nil {
		return 0, err
	}

	for _, part := range []lo.Tuple2[int, int]{
		{A: ra.major, B: rb.major},
		{A: ra.minor, B: rb.minor},
		{A: ra.patch, B: rb.patch},
	} {
		switch {
		case part.A > part.B:
			return 1, nil
		case part.A < part.B:
			return -1, nil
		}
	}

	return 0, nil
}
