package base_test

import (
	"path/filepath"
	"testing"

	"github.com/caffeine-storm/shipyard/base"
	. "github.com/smartystreets/goconvey/convey"
)

func DatadirSpec() {
	Convey("a missing datadir is an error", func() {
		So(base.SetDatadir(filepath.Join(base.GetDataDir(), "does-not-exist")), ShouldNotBeNil)
	})

	Convey("setting the same datadir twice is fine", func() {
		So(base.SetDatadir(base.GetDataDir()), ShouldBeNil)
	})

	Convey("changing the datadir panics", func() {
		So(func() { base.SetDatadir("..") }, ShouldPanic)
	})
}

func TestDatadir(t *testing.T) {
	if err := base.SetDatadir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	Convey("base.SetDatadir", t, DatadirSpec)
}

type sample struct {
	Name  string   `json:"name" yaml:"name"`
	Sizes []int    `json:"sizes" yaml:"sizes"`
	Tags  []string `json:"tags,omitempty" yaml:"tags"`
}

func TestJsonAndYaml(t *testing.T) {
	Convey("base file loaders", t, func() {
		dir := t.TempDir()
		want := sample{Name: "hold", Sizes: []int{2, 3}}

		Convey("save then load json", func() {
			path := filepath.Join(dir, "sample.json")
			So(base.SaveJson(path, want), ShouldBeNil)

			var got sample
			So(base.LoadJson(path, &got), ShouldBeNil)
			So(got, ShouldResemble, want)
		})

		Convey("load yaml", func() {
			path := writeFile(t, dir, "sample.yaml", "name: hold\nsizes: [2, 3]\n")
			var got sample
			So(base.LoadYaml(path, &got), ShouldBeNil)
			So(got, ShouldResemble, want)
		})

		Convey("bad documents are errors", func() {
			var got sample
			So(base.LoadJson(writeFile(t, dir, "bad.json", "{"), &got), ShouldNotBeNil)
			So(base.LoadYaml(writeFile(t, dir, "bad.yaml", "name: [\n"), &got), ShouldNotBeNil)
			So(base.LoadJson(filepath.Join(dir, "missing.json"), &got), ShouldNotBeNil)
		})
	})
}
