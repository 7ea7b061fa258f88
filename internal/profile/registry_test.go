package profile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/semmidev/stackvault/internal/domain"
	. "github.com/smartystreets/goconvey/convey"
)

func writeFile(t *testing.T, root, relPath, content string) {
	t.Helper()
	full := filepath.Join(root, relPath)
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(full, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestDetect(t *testing.T) {
	Convey("Given a backup root directory", t, func() {
		root := t.TempDir()

		Convey("When no fingerprint file is present", func() {
			_, ok := Detect(root)

			Convey("It should report no profile", func() {
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When a single fingerprint is present", func() {
			cases := map[domain.Profile]string{
				domain.ProfileMoodle:    "config.php",
				domain.ProfileWordPress: "wp-config.php",
				domain.ProfileNextcloud: filepath.Join("config", "config.php"),
				domain.ProfileJoomla:    "configuration.php",
			}

			for want, fingerprint := range cases {
				dir := t.TempDir()
				writeFile(t, dir, fingerprint, "<?php\n")

				entry, ok := Detect(dir)

				Convey("It should detect "+string(want), func() {
					So(ok, ShouldBeTrue)
					So(entry.Profile, ShouldEqual, want)
					So(entry.Extract, ShouldNotBeNil)
				})
			}
		})

		Convey("When several fingerprints coexist", func() {
			writeFile(t, root, "wp-config.php", "<?php\n")
			writeFile(t, root, "configuration.php", "<?php\n")
			writeFile(t, root, "config.php", "<?php\n")

			entry, ok := Detect(root)

			Convey("It should pick the highest-priority profile", func() {
				So(ok, ShouldBeTrue)
				So(entry.Profile, ShouldEqual, domain.ProfileMoodle)
			})

			Convey("And removing it should promote the next one", func() {
				So(os.Remove(filepath.Join(root, "config.php")), ShouldBeNil)

				entry, ok = Detect(root)
				So(ok, ShouldBeTrue)
				So(entry.Profile, ShouldEqual, domain.ProfileWordPress)
			})
		})
	})
}

func TestRegistry(t *testing.T) {
	Convey("Given the profile registry", t, func() {
		entries := Registry()

		Convey("It should keep the fixed priority order", func() {
			So(len(entries), ShouldEqual, 4)
			So(entries[0].Profile, ShouldEqual, domain.ProfileMoodle)
			So(entries[1].Profile, ShouldEqual, domain.ProfileWordPress)
			So(entries[2].Profile, ShouldEqual, domain.ProfileNextcloud)
			So(entries[3].Profile, ShouldEqual, domain.ProfileJoomla)
		})

		Convey("It should return a copy callers cannot reorder", func() {
			entries[0], entries[1] = entries[1], entries[0]

			again := Registry()
			So(again[0].Profile, ShouldEqual, domain.ProfileMoodle)
		})
	})
}
