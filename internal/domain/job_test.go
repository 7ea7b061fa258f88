package domain

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCredentials(t *testing.T) {
	Convey("Given credential values", t, func() {
		Convey("All three fields present means complete", func() {
			So(Credentials{Database: "x", User: "u", Password: "p"}.Complete(), ShouldBeTrue)
		})

		Convey("Any empty field means incomplete", func() {
			So(Credentials{}.Complete(), ShouldBeFalse)
			So(Credentials{Database: "x", User: "u"}.Complete(), ShouldBeFalse)
			So(Credentials{Database: "x", Password: "p"}.Complete(), ShouldBeFalse)
			So(Credentials{User: "u", Password: "p"}.Complete(), ShouldBeFalse)
		})
	})
}

func TestBackupJob(t *testing.T) {
	Convey("Given a fresh job", t, func() {
		job := NewJob("/srv/site", "sitea")

		Convey("Its include set starts with the root", func() {
			So(job.Includes, ShouldResemble, []string{"/srv/site"})
			So(job.Profile, ShouldEqual, ProfileNone)
		})

		Convey("WithConfig appends the extra includes without touching the original", func() {
			extra := ExtraPaths{
				Includes: []string{"/data/m1"},
				Excludes: []string{"/data/m1/cache"},
			}
			next := job.WithConfig(Credentials{Database: "x", User: "u", Password: "p"}, extra)

			So(next.Includes, ShouldResemble, []string{"/srv/site", "/data/m1"})
			So(job.Includes, ShouldResemble, []string{"/srv/site"})

			Convey("WithDump appends the artifact exactly once", func() {
				dumped := next.WithDump("/var/backups/dump/x.sql")

				So(dumped.DumpPath, ShouldEqual, "/var/backups/dump/x.sql")
				So(dumped.Includes, ShouldResemble, []string{"/srv/site", "/data/m1", "/var/backups/dump/x.sql"})
				So(next.Includes, ShouldResemble, []string{"/srv/site", "/data/m1"})
			})
		})
	})
}

func TestSnapshotRequest(t *testing.T) {
	Convey("Given jobs with and without an exclusion set", t, func() {
		base := NewJob("/srv/site", "sitea")

		Convey("An unset exclusion list yields a request with no flags", func() {
			req := base.SnapshotRequest()

			So(req.Includes, ShouldResemble, []string{"/srv/site"})
			So(req.Excludes, ShouldBeNil)
			So(req.Quiet, ShouldBeTrue)
		})

		Convey("A set exclusion list is carried through in order", func() {
			job := base.WithConfig(Credentials{}, ExtraPaths{
				Excludes: []string{"/a", "/b", "/c"},
			})

			So(job.SnapshotRequest().Excludes, ShouldResemble, []string{"/a", "/b", "/c"})
		})
	})
}

func TestDefaultRetention(t *testing.T) {
	Convey("The retention constants are 7 daily, 5 weekly, 12 monthly", t, func() {
		So(DefaultRetention, ShouldResemble, RetentionPolicy{KeepDaily: 7, KeepWeekly: 5, KeepMonthly: 12})
	})
}
