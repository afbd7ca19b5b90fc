package base

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

var datadir string

// Sets the directory that definitions are loaded from. Setting it twice to
// different values is a programming error.
func SetDatadir(_datadir string) error {
	if datadir == _datadir {
		return nil
	}
	if !fileExists(_datadir) {
		return fmt.Errorf("datadir %q does not exist", _datadir)
	}
	if datadir != "" {
		panic(fmt.Errorf("double-setting datadir! was %q, new %q", datadir, _datadir))
	}
	datadir = _datadir
	return nil
}

func GetDataDir() string {
	return datadir
}

// Opens the file named by path, reads it all, decodes it as json into target,
// then closes the file.  Returns the first error found while doing this or nil.
func LoadJson(path string, target interface{}) error {
	data, err := readAll(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("couldn't decode json %q: %w", path, err)
	}
	return nil
}

// Like LoadJson but for yaml documents.
func LoadYaml(path string, target interface{}) error {
	data, err := readAll(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, target); err != nil {
		return fmt.Errorf("couldn't decode yaml %q: %w", path, err)
	}
	return nil
}

func SaveJson(path string, source interface{}) error {
	data, err := json.MarshalIndent(source, "", "  ")
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.Write(data)
	return err
}

func readAll(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("couldn't read %q: %w", path, err)
	}
	return data, nil
}
