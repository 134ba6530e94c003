//go:build windows

package shell

import (
	"fmt"

	"golang.org/x/sys/windows"
)

const codePageUTF8 = 65001

// EnableUTF8 switches the console input and output code pages to UTF-8
func EnableUTF8() error {
	if err := windows.SetConsoleCP(codePageUTF8); err != nil {
		return fmt.Errorf("failed to set console input code page: %w", err)
	}
	if err := windows.SetConsoleOutputCP(codePageUTF8); err != nil {
		return fmt.Errorf("failed to set console output code page: %w", err)
	}
	return nil
}
