package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type FmterType int

const (
	IgnoreFmter FmterType = iota
	JsonFmter
	YamlFmter
)

var extensionToFmter = map[string]FmterType{
	"":     IgnoreFmter,
	".log": IgnoreFmter,
	".txt": IgnoreFmter,
	".md":  IgnoreFmter,

	".json": JsonFmter,
	".yaml": YamlFmter,
	".yml":  YamlFmter,
}

// Returns the canonical form of a file's contents.
type Fmter func(contents []byte) ([]byte, error)

func jsonfmt(contents []byte) ([]byte, error) {
	var v any
	if err := json.Unmarshal(contents, &v); err != nil {
		return nil, err
	}
	formatted, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return nil, err
	}
	return append(formatted, '\n'), nil
}

// Round trips through a yaml.Node so comments and key order survive.
func yamlfmt(contents []byte) ([]byte, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(contents, &doc); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func getfmter(tp FmterType) Fmter {
	switch tp {
	case JsonFmter:
		return jsonfmt
	case YamlFmter:
		return yamlfmt
	}
	return nil
}

// Reports whether the file at targetPath isn't in canonical form. Unless
// readOnly, such files are rewritten.
func processFile(targetPath string, readOnly bool) (bool, error) {
	ext := strings.ToLower(filepath.Ext(targetPath))
	fmterType, found := extensionToFmter[ext]
	if !found {
		return false, fmt.Errorf("unknown extension(%s) for file %q", ext, targetPath)
	}
	fmter := getfmter(fmterType)
	if fmter == nil {
		return false, nil
	}

	contents, err := os.ReadFile(targetPath)
	if err != nil {
		return false, err
	}
	formatted, err := fmter(contents)
	if err != nil {
		return false, fmt.Errorf("couldn't format %q: %w", targetPath, err)
	}

	diff := !bytes.Equal(contents, formatted)
	if readOnly || !diff {
		return diff, nil
	}
	if err := os.WriteFile(targetPath, formatted, 0o644); err != nil {
		return diff, fmt.Errorf("couldn't rewrite %q: %w", targetPath, err)
	}
	return diff, nil
}

func processTree(root string, readOnly bool) (changed []string, err error) {
	err = filepath.WalkDir(root, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		diff, err := processFile(path, readOnly)
		if err != nil {
			return err
		}
		if diff {
			changed = append(changed, path)
		}
		return nil
	})
	return changed, err
}

func getCheckFlag(flagname string) bool {
	for idx, arg := range os.Args[1:] {
		if arg == flagname {
			os.Args = append(os.Args[:idx+1], os.Args[idx+2:]...)
			return true
		}
	}
	return false
}

// like 'go fmt' but for things under 'data/'
func main() {
	readOnly := getCheckFlag("--check")

	ok := true
	for _, arg := range os.Args[1:] {
		changed, err := processTree(arg, readOnly)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			ok = false
		}
		for _, path := range changed {
			fmt.Println(path)
		}
		if readOnly && len(changed) > 0 {
			ok = false
		}
	}

	if !ok {
		os.Exit(1)
	}
}
