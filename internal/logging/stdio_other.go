//go:build !unix

package logging

import "errors"

var errRedirectUnsupported = errors.New("stdio redirect is not supported on this platform")

func RedirectStdIO(path string) error {
	if path == "" {
		return nil
	}
	return errRedirectUnsupported
}
