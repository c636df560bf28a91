package warehouse_test

import (
	"testing"

	"github.com/okian/salesdash/internal/domain/model"
	"github.com/okian/salesdash/internal/warehouse"
	"github.com/smartystreets/goconvey/convey"
)

func TestSummaryStatement(t *testing.T) {
	convey.Convey("Given a snowflake statement builder", t, func() {
		b := warehouse.NewBuilder(warehouse.DriverSnowflake)

		convey.Convey("When period and category are both the all sentinel", func() {
			st := b.Summary(model.ParseFilters("all", "all"))

			convey.Convey("Then the parameter set is empty and nothing is filtered", func() {
				convey.So(st.Args, convey.ShouldBeEmpty)
				convey.So(st.SQL, convey.ShouldNotContainSubstring, "WHERE")
				convey.So(st.SQL, convey.ShouldNotContainSubstring, "JOIN")
			})
		})

		convey.Convey("When the period is unrecognized", func() {
			st := b.Summary(model.ParseFilters("fiscal-eon", "all"))
			all := b.Summary(model.ParseFilters("all", "all"))

			convey.Convey("Then the statement is identical to the all bucket", func() {
				convey.So(st.SQL, convey.ShouldEqual, all.SQL)
				convey.So(st.Args, convey.ShouldBeEmpty)
			})
		})

		convey.Convey("When a period bucket applies", func() {
			st := b.Summary(model.ParseFilters("first-half", "all"))

			convey.Convey("Then both bounds are bound as arguments", func() {
				convey.So(st.Args, convey.ShouldResemble, []any{"2024-01-01", "2024-07-01"})
				convey.So(st.SQL, convey.ShouldContainSubstring, "o.order_date >= ? AND o.order_date < ?")
			})
		})

		convey.Convey("When a category filter applies", func() {
			st := b.Summary(model.ParseFilters("all", "Electronics"))

			convey.Convey("Then the category is bound, never spliced into the SQL", func() {
				convey.So(st.Args, convey.ShouldResemble, []any{"Electronics"})
				convey.So(st.SQL, convey.ShouldNotContainSubstring, "Electronics")
				convey.So(st.SQL, convey.ShouldContainSubstring, "p.category = ?")
				convey.So(st.SQL, convey.ShouldContainSubstring, "JOIN products p")
			})
		})

		convey.Convey("When both filters apply", func() {
			st := b.Summary(model.ParseFilters("last-quarter", "Books"))

			convey.Convey("Then period bounds precede the category argument", func() {
				convey.So(st.Args, convey.ShouldResemble, []any{"2024-10-01", "2025-01-01", "Books"})
			})
		})
	})
}

func TestMonthlyRevenueStatement(t *testing.T) {
	convey.Convey("Given statement builders for both dialects", t, func() {
		snow := warehouse.NewBuilder(warehouse.DriverSnowflake)
		my := warehouse.NewBuilder(warehouse.DriverMySQL)
		f := model.ParseFilters("all", "all")

		convey.Convey("When building the monthly revenue statement", func() {
			st := snow.MonthlyRevenue(f)

			convey.Convey("Then months group and order ascending on the bucket", func() {
				convey.So(st.SQL, convey.ShouldContainSubstring, "GROUP BY 1 ORDER BY 1 ASC")
				convey.So(st.Args, convey.ShouldBeEmpty)
			})

			convey.Convey("Then the month expression matches the dialect", func() {
				convey.So(st.SQL, convey.ShouldContainSubstring, "DATE_TRUNC('MONTH', o.order_date)")
				convey.So(my.MonthlyRevenue(f).SQL, convey.ShouldContainSubstring, "DATE_FORMAT(o.order_date, '%Y-%m')")
			})
		})
	})
}

func TestCategorySalesStatement(t *testing.T) {
	convey.Convey("Given a statement builder", t, func() {
		b := warehouse.NewBuilder(warehouse.DriverSnowflake)

		convey.Convey("When the category filter is the all sentinel", func() {
			st := b.CategorySales(model.ParseFilters("all", "all"))

			convey.Convey("Then rows break down per category", func() {
				convey.So(st.SQL, convey.ShouldContainSubstring, "GROUP BY p.category")
				convey.So(st.Args, convey.ShouldBeEmpty)
			})
		})

		convey.Convey("When a specific category is given", func() {
			st := b.CategorySales(model.ParseFilters("all", "Electronics"))

			convey.Convey("Then rows break down per product within the bound category", func() {
				convey.So(st.SQL, convey.ShouldContainSubstring, "GROUP BY p.name")
				convey.So(st.SQL, convey.ShouldContainSubstring, "p.category = ?")
				convey.So(st.Args, convey.ShouldResemble, []any{"Electronics"})
			})
		})
	})
}

func TestCategoriesStatement(t *testing.T) {
	convey.Convey("Given a statement builder", t, func() {
		b := warehouse.NewBuilder(warehouse.DriverSnowflake)

		convey.Convey("When building the categories statement", func() {
			st := b.Categories()

			convey.Convey("Then it selects distinct names ascending with no arguments", func() {
				convey.So(st.SQL, convey.ShouldContainSubstring, "SELECT DISTINCT category")
				convey.So(st.SQL, convey.ShouldContainSubstring, "ORDER BY category ASC")
				convey.So(st.Args, convey.ShouldBeEmpty)
			})
		})
	})
}

func TestTopProductsStatement(t *testing.T) {
	convey.Convey("Given a statement builder", t, func() {
		b := warehouse.NewBuilder(warehouse.DriverSnowflake)

		convey.Convey("When building the top products statement", func() {
			st := b.TopProducts(model.ParseFilters("first-quarter", "Electronics"))

			convey.Convey("Then it caps at five rows and orders deterministically", func() {
				convey.So(st.SQL, convey.ShouldContainSubstring, "LIMIT 5")
				convey.So(st.SQL, convey.ShouldContainSubstring, "ORDER BY revenue DESC, p.name ASC")
				convey.So(st.Args, convey.ShouldResemble, []any{"2024-01-01", "2024-04-01", "Electronics"})
			})
		})
	})
}
