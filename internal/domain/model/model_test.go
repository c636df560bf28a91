package model_test

import (
	"testing"
	"time"

	"github.com/okian/salesdash/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestParseFilters(t *testing.T) {
	convey.Convey("Given raw query-string values", t, func() {
		convey.Convey("When both values are empty", func() {
			f := model.ParseFilters("", "")

			convey.Convey("Then both collapse to the all sentinels", func() {
				convey.So(f.Period, convey.ShouldEqual, model.PeriodAll)
				convey.So(f.Category, convey.ShouldEqual, model.CategoryAll)
			})
		})

		convey.Convey("When the period is unrecognized", func() {
			f := model.ParseFilters("next-tuesday", "all")

			convey.Convey("Then it behaves exactly like all", func() {
				convey.So(f.Period, convey.ShouldEqual, model.PeriodAll)
				_, _, ok := f.Range()
				convey.So(ok, convey.ShouldBeFalse)
			})
		})

		convey.Convey("When the period has stray case and spacing", func() {
			f := model.ParseFilters("  First-Half ", "all")

			convey.Convey("Then it is normalized to the bucket", func() {
				convey.So(f.Period, convey.ShouldEqual, model.PeriodFirstHalf)
			})
		})

		convey.Convey("When a category is given", func() {
			f := model.ParseFilters("all", "Electronics")
			c, ok := f.CategoryValue()

			convey.Convey("Then it is preserved verbatim", func() {
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(c, convey.ShouldEqual, "Electronics")
			})
		})

		convey.Convey("When the category is the all sentinel in any case", func() {
			_, ok := model.ParseFilters("all", "ALL").CategoryValue()

			convey.Convey("Then no category filtering applies", func() {
				convey.So(ok, convey.ShouldBeFalse)
			})
		})
	})
}

func TestPeriodRanges(t *testing.T) {
	convey.Convey("Given the fixed period buckets", t, func() {
		cases := map[model.Period][2]time.Time{
			model.PeriodFirstHalf:    {time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)},
			model.PeriodSecondHalf:   {time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
			model.PeriodFirstQuarter: {time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)},
			model.PeriodLastQuarter:  {time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		}

		convey.Convey("When looking up each bucket", func() {
			for period, want := range cases {
				f := model.Filters{Period: period}
				start, end, ok := f.Range()

				convey.So(ok, convey.ShouldBeTrue)
				convey.So(start, convey.ShouldEqual, want[0])
				convey.So(end, convey.ShouldEqual, want[1])
			}
		})

		convey.Convey("When looking up the all bucket", func() {
			_, _, ok := model.Filters{Period: model.PeriodAll}.Range()

			convey.Convey("Then no bounds apply", func() {
				convey.So(ok, convey.ShouldBeFalse)
			})
		})

		convey.Convey("Then the half-year buckets do not overlap", func() {
			_, firstEnd, _ := model.Filters{Period: model.PeriodFirstHalf}.Range()
			secondStart, _, _ := model.Filters{Period: model.PeriodSecondHalf}.Range()
			convey.So(firstEnd, convey.ShouldEqual, secondStart)
		})
	})
}
