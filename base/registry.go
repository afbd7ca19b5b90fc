package base

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"

	"github.com/caffeine-storm/shipyard/logging"
)

// Definitions follow this shape
//   type Foo struct {
//     Defname string
//     *FooDef
//     FooInst
//   }
// A Foo is something that can be instanced many times (a cargo hold, a crew
// cabin), FooDef is the data shared between all such instances and FooInst is
// what makes an instance unique (where it is, who owns it).
//
// A registry is then a map[string]*FooDef keyed by FooDef.Name, and a Foo is
// made by naming the FooDef it wants in Defname and calling GetObject.
//
// Tags:
// `registry:"loadfrom-foo"` on a pointer field makes ProcessObject fill that
// field from the "foo" registry using the Defname of the enclosing struct.
//
// `registry:"autoload"` calls a zero-in zero-out Load() method on the tagged
// value once its data has been decoded.

var (
	registry_registry map[string]reflect.Value
)

func init() {
	registry_registry = make(map[string]reflect.Value)
}

func RemoveRegistry(name string) {
	delete(registry_registry, name)
}

// Registers a registry which must be a map from string to
// pointer-to-struct where the struct has a string field called Name.
func RegisterRegistry(name string, registry interface{}) error {
	if strings.Contains(name, " ") {
		return fmt.Errorf("registry name %q cannot contain spaces", name)
	}
	mr := reflect.ValueOf(registry)
	if mr.Kind() != reflect.Map {
		return fmt.Errorf("registry %q must be a map, got %v", name, mr.Kind())
	}
	if mr.Type().Key().Kind() != reflect.String {
		return fmt.Errorf("registry %q must use string keys, got %v", name, mr.Type().Key())
	}
	if mr.Type().Elem().Kind() != reflect.Pointer {
		return fmt.Errorf("registry %q must store pointers, got %v", name, mr.Type().Elem())
	}
	if field, ok := mr.Type().Elem().Elem().FieldByName("Name"); !ok || field.Type.Kind() != reflect.String {
		return fmt.Errorf("registry %q must store values with a Name field of type string", name)
	}
	if _, ok := registry_registry[name]; ok {
		return fmt.Errorf("cannot register two registries named %q", name)
	}
	registry_registry[name] = mr
	return nil
}

// Registers object in the named registry. object must be a pointer of the
// type appropriate for that registry.
func RegisterObject(registry_name string, object interface{}) error {
	reg, ok := registry_registry[registry_name]
	if !ok {
		return fmt.Errorf("unknown registry %q", registry_name)
	}

	obj_val := reflect.ValueOf(object)
	if obj_val.Kind() != reflect.Pointer {
		return fmt.Errorf("can only register pointers, got %v", obj_val.Kind())
	}
	if obj_val.Elem().Type() != reg.Type().Elem().Elem() {
		return fmt.Errorf("registry %q stores %v, got %v", registry_name, reg.Type().Elem().Elem(), obj_val.Elem().Type())
	}

	object_name := obj_val.Elem().FieldByName("Name").String()
	if object_name == "" {
		return fmt.Errorf("registry %q: object has an empty Name", registry_name)
	}
	if reg.MapIndex(reflect.ValueOf(object_name)).IsValid() {
		return fmt.Errorf("registry %q already has an entry named %q", registry_name, object_name)
	}
	reg.SetMapIndex(reflect.ValueOf(object_name), obj_val)
	return nil
}

// Fills the embedded def of object from the named registry. object must be a
// pointer to a struct with a Defname string field and an exported embedded
// pointer of the registry's element type.
func GetObject(registry_name string, object interface{}) error {
	reg, ok := registry_registry[registry_name]
	if !ok {
		return fmt.Errorf("load from unknown registry %q", registry_name)
	}

	object_val := reflect.ValueOf(object)
	if object_val.Kind() != reflect.Pointer {
		return fmt.Errorf("tried to load into a %v, need a pointer", object_val.Kind())
	}

	object_name := object_val.Elem().FieldByName("Defname")
	if !object_name.IsValid() || object_name.Kind() != reflect.String {
		return fmt.Errorf("%v is missing a Defname field", object_val.Elem().Type())
	}

	cur_val := reg.MapIndex(object_name)
	if !cur_val.IsValid() {
		return fmt.Errorf("registry %q has no object named %q", registry_name, object_name.String())
	}
	fieldName := cur_val.Elem().Type().Name()
	field := object_val.Elem().FieldByName(fieldName)
	if !field.IsValid() {
		return fmt.Errorf("%v has no embedded %v", object_val.Elem().Type(), cur_val.Type())
	}
	if !field.CanSet() {
		panic(fmt.Errorf("can't set value through field named %q", fieldName))
	}
	field.Set(cur_val)
	return nil
}

// Returns a sorted list of all names in the specified registry.
func GetAllNamesInRegistry(registry_name string) []string {
	reg, ok := registry_registry[registry_name]
	if !ok {
		logging.Error("Unknown registry", "registry_name", registry_name)
		return nil
	}
	var names []string
	for _, key := range reg.MapKeys() {
		names = append(names, key.String())
	}
	sort.Strings(names)
	return names
}

// Decodes the file at path into target using format ("json" or "yaml") and
// then runs ProcessObject over it. Does NOT register the object anywhere.
func LoadAndProcessObject(path, format string, target interface{}) error {
	logging.Debug("LoadAndProcessObject", "path", path, "format", format)
	var err error
	switch format {
	case "json":
		err = LoadJson(path, target)

	case "yaml":
		err = LoadYaml(path, target)

	default:
		return fmt.Errorf("unknown format %q for %q", format, path)
	}
	if err != nil {
		return err
	}

	return ProcessObject(reflect.ValueOf(target), "")
}

// Recursively decends through a value's type hierarchy and applies processing
// according to any tags that have been set on those types.
func ProcessObject(val reflect.Value, tag string) error {
	switch val.Type().Kind() {
	case reflect.Pointer:
		if val.IsNil() {
			break
		}
		loadfrom_tag := "loadfrom-"
		if strings.HasPrefix(tag, loadfrom_tag) {
			source := tag[len(loadfrom_tag):]
			if err := GetObject(source, val.Interface()); err != nil {
				return err
			}
		}
		if err := ProcessObject(val.Elem(), tag); err != nil {
			return err
		}
	case reflect.Struct:
		for i := 0; i < val.NumField(); i++ {
			if !val.Type().Field(i).IsExported() {
				continue
			}
			if err := ProcessObject(val.Field(i), val.Type().Field(i).Tag.Get("registry")); err != nil {
				return err
			}
		}

	case reflect.Array, reflect.Slice:
		for i := 0; i < val.Len(); i++ {
			if err := ProcessObject(val.Index(i), tag); err != nil {
				return err
			}
		}
	}

	if tag == "autoload" {
		load := val.MethodByName("Load")
		if !load.IsValid() && val.CanAddr() {
			load = val.Addr().MethodByName("Load")
		}
		if load.IsValid() && load.Type().NumIn() == 0 && load.Type().NumOut() == 0 {
			load.Call(nil)
		}
	}
	return nil
}

// Walks dir recursively and registers every file ending in suffix into the
// named registry. Files and directories beginning with '.' are skipped. A
// file that fails to load is logged and skipped; walk errors are returned.
func RegisterAllObjectsInDir(registry_name, dir, suffix, format string) error {
	logging.Info("Registering directory", "dir", dir, "registry", registry_name)
	reg, ok := registry_registry[registry_name]
	if !ok {
		return fmt.Errorf("tried to load objects into unknown registry %q", registry_name)
	}
	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("error walking %q: %w", path, err)
		}
		if strings.HasPrefix(entry.Name(), ".") && path != dir {
			if entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), suffix) {
			return nil
		}
		target := reflect.New(reg.Type().Elem().Elem())
		if err := LoadAndProcessObject(path, format, target.Interface()); err != nil {
			logging.Error("Error loading file", "path", path, "err", err)
			return nil
		}
		if err := RegisterObject(registry_name, target.Interface()); err != nil {
			logging.Error("Error registering file", "path", path, "err", err)
		}
		return nil
	})
	logging.Info("Completed directory", "dir", dir, "registry", registry_name)
	return err
}

// Picks a decoding format from a file's extension.
func FormatForPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json", nil
	case ".yaml", ".yml":
		return "yaml", nil
	}
	return "", fmt.Errorf("can't tell the format of %q", path)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
