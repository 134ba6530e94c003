//go:build !windows

package shell

// EnableUTF8 is a no-op where terminals already use UTF-8
func EnableUTF8() error {
	return nil
}
