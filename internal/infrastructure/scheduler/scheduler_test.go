package scheduler

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestScheduler(t *testing.T) {
	Convey("Given a Scheduler", t, func() {
		Convey("New should create a scheduler", func() {
			s := New()
			So(s, ShouldNotBeNil)
			So(s.cron, ShouldNotBeNil)
		})

		Convey("When adding a job with a valid cron spec", func() {
			s := New()
			tempDir := t.TempDir()
			marker := filepath.Join(tempDir, "job.log")

			job := func(ctx context.Context) error {
				return os.WriteFile(marker, []byte("executed"), 0644)
			}

			err := s.AddJob(context.Background(), "* * * * * *", job) // every second

			Convey("It should run the job after starting", func() {
				So(err, ShouldBeNil)

				s.Start()
				time.Sleep(2 * time.Second)
				s.Stop()

				content, err := os.ReadFile(marker)
				So(err, ShouldBeNil)
				So(string(content), ShouldEqual, "executed")
			})
		})

		Convey("When adding a job with an invalid cron spec", func() {
			s := New()
			err := s.AddJob(context.Background(), "invalid spec", func(ctx context.Context) error { return nil })

			Convey("It should return an error", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "expected exactly 6 fields")
			})
		})

		Convey("When stopping after a run", func() {
			s := New()
			tempDir := t.TempDir()
			marker := filepath.Join(tempDir, "job.log")

			err := s.AddJob(context.Background(), "* * * * * *", func(ctx context.Context) error {
				return os.WriteFile(marker, []byte("executed"), 0644)
			})
			So(err, ShouldBeNil)

			Convey("No further executions should happen once stopped", func() {
				s.Start()
				time.Sleep(2 * time.Second)
				s.Stop()

				os.Remove(marker)
				time.Sleep(2 * time.Second)
				_, err := os.Stat(marker)
				So(os.IsNotExist(err), ShouldBeTrue)
			})
		})
	})
}
