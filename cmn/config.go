package cmn

import (
	"fmt"
	"io/ioutil"
	"os"
	"path"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"
)

/*
	one emit step of a target. Type is what gets generated:
		ddl    - create table statements
		index  - create index statements
		insert - insert statements for the rows read from xml
	Out is the file the text goes to, relative paths resolve against
	the config file directory. empty Out means stdout.
*/
type Emit struct {
	Type string
	Out  string
}

type Target struct {
	Name string
	Emit []Emit
}

/*
	Schema is the directory with table declaration files, Data the
	directory with the xml files. Base is the directory every relative
	path resolves against, defaulted to the config files directory.
*/
type Config struct {
	Schema  string
	Data    string
	Base    string
	Targets []*Target
}

const notFoundMsg = "stat *.yml: no such file or directory"

func CreateFromText(c *Config, j []byte) error {
	return yaml.Unmarshal(j, c)
}

/* resolves p against the config base unless p is already absolute */
func (c *Config) AbsPath(p string) string {
	if p == "" || path.IsAbs(p) {
		return p
	}
	return path.Join(c.Base, p)
}

func configGetBufFromDir(dir string) (string, []byte, error) {

	var bf []byte

	fs, err := ioutil.ReadDir(dir)
	if err != nil {
		return "", nil, err
	}

	for i := 0; i < len(fs); i++ {
		n := path.Join(dir, fs[i].Name())
		if strings.HasSuffix(n, ".yml") {
			if bf, err = ioutil.ReadFile(n); err != nil {
				return "", nil, err
			}
			return n, bf, nil
		}
	}

	return "", nil, fmt.Errorf(notFoundMsg)
}

func ConfigNewFromPath(configPath string) (*Config, error) {
	var bf []byte
	var err error
	var fpath string
	var c Config
	var fi os.FileInfo

	if configPath == "" {
		if fpath, bf, err = configGetBufFromDir("."); err != nil {
			return nil, err
		}
	} else {
		if fi, err = os.Stat(configPath); err != nil {
			return nil, err
		}
		if fi.IsDir() {
			if fpath, bf, err = configGetBufFromDir(configPath); err != nil {
				return nil, err
			}
		} else {
			if bf, err = ioutil.ReadFile(configPath); err != nil {
				return nil, err
			}
			fpath = configPath
		}
	}

	if err = CreateFromText(&c, bf); err != nil {
		return nil, err
	}

	if c.Base == "" {
		if fpath, err = filepath.Abs(fpath); err != nil {
			return nil, err
		}
		c.Base = filepath.Dir(fpath)
	}

	return &c, err
}
