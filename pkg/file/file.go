// Package file provides file helpers of the datagen CLI.
package file

import "os"

// Exists check is file exists
func Exists(path string) bool {
	_, err := os.Stat(path)
	if err != nil {
		return os.IsExist(err)
	}
	return true
}
