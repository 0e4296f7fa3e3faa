package cmn

import (
	"fmt"
	"io/ioutil"
	"os"
	"path"
	"strings"
)

/*
	IterateSource walks sourcePath (a file or a directory) and feeds the
	content of every yml file to cb. directories are read in lexical
	order, so declaration order is the file name order. files with other
	suffixes are skipped, empty files are an error.
*/
func IterateSource(
	sourcePath string,
	cb func(path string, fc []byte, args interface{}) error,
	args interface{}) error {

	fi, err := os.Stat(sourcePath)
	if err != nil {
		return err
	}

	if fi.IsDir() {
		var di []os.FileInfo
		if di, err = ioutil.ReadDir(sourcePath); err != nil {
			return err
		}
		for _, fi = range di {
			if err = IterateSource(
				path.Join(sourcePath, fi.Name()),
				cb, args); err != nil {
				return err
			}
		}
		return nil
	}

	if !strings.HasSuffix(sourcePath, ".yml") &&
		!strings.HasSuffix(sourcePath, ".yaml") {
		return nil
	}

	fc, err := ioutil.ReadFile(sourcePath)
	if err != nil {
		return err
	}
	if len(fc) == 0 {
		return fmt.Errorf("%s - empty file content", sourcePath)
	}
	return cb(sourcePath, fc, args)
}
