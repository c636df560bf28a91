package warehouse

import (
	"strings"

	"github.com/okian/salesdash/internal/domain/model"
)

// dateLayout is how period bounds are bound; both dialects compare DATE and
// TIMESTAMP columns against it correctly.
const dateLayout = "2006-01-02"

// topProductsLimit caps the top-products breakdown.
const topProductsLimit = "5"

// Statement is one parameterized aggregate query ready for execution.
// Filter values appear only in Args, never in SQL.
type Statement struct {
	SQL  string
	Args []any
}

// Builder composes the aggregate statements for one SQL dialect.
type Builder struct {
	driver Driver
}

// NewBuilder creates a statement builder for the given driver dialect.
func NewBuilder(driver Driver) *Builder {
	if driver == "" {
		driver = DriverSnowflake
	}
	return &Builder{driver: driver}
}

// monthExpr buckets order dates into "YYYY-MM" strings.
func (b *Builder) monthExpr() string {
	if b.driver == DriverMySQL {
		return "DATE_FORMAT(o.order_date, '%Y-%m')"
	}
	return "TO_VARCHAR(DATE_TRUNC('MONTH', o.order_date), 'YYYY-MM')"
}

// predicate accumulates WHERE conditions and their bound arguments in the
// order they will be interpolated by the driver.
type predicate struct {
	conds []string
	args  []any
}

func (p *predicate) period(f model.Filters) {
	if start, end, ok := f.Range(); ok {
		p.conds = append(p.conds, "o.order_date >= ? AND o.order_date < ?")
		p.args = append(p.args, start.Format(dateLayout), end.Format(dateLayout))
	}
}

// category appends the bound category condition and reports whether the
// products relation must be joined.
func (p *predicate) category(f model.Filters) bool {
	c, ok := f.CategoryValue()
	if !ok {
		return false
	}
	p.conds = append(p.conds, "p.category = ?")
	p.args = append(p.args, c)
	return true
}

func (p *predicate) where() string {
	if len(p.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(p.conds, " AND ")
}

const (
	fromOrders       = " FROM orders o"
	joinProducts     = " JOIN products p ON p.id = o.product_id"
	fromOrderProduct = fromOrders + joinProducts
)

// Summary builds the aggregate row behind GET /api/data.
func (b *Builder) Summary(f model.Filters) Statement {
	var p predicate
	p.period(f)
	from := fromOrders
	if p.category(f) {
		from = fromOrderProduct
	}
	return Statement{
		SQL: "SELECT COUNT(DISTINCT o.customer_id), COUNT(o.id), " +
			"COALESCE(SUM(o.amount), 0), COALESCE(AVG(o.amount), 0)" +
			from + p.where(),
		Args: p.args,
	}
}

// MonthlyRevenue builds one row per calendar month, ascending and without
// duplicate month keys (the month bucket is the grouping key).
func (b *Builder) MonthlyRevenue(f model.Filters) Statement {
	var p predicate
	p.period(f)
	from := fromOrders
	if p.category(f) {
		from = fromOrderProduct
	}
	return Statement{
		SQL: "SELECT " + b.monthExpr() + " AS month, " +
			"COALESCE(SUM(o.amount), 0), COUNT(o.id), COUNT(DISTINCT o.customer_id)" +
			from + p.where() +
			" GROUP BY 1 ORDER BY 1 ASC",
		Args: p.args,
	}
}

// CategorySales builds a per-category breakdown when the category filter is
// the "all" sentinel, and a per-product breakdown within the bound category
// otherwise.
func (b *Builder) CategorySales(f model.Filters) Statement {
	var p predicate
	p.period(f)
	dim := "p.category"
	if p.category(f) {
		dim = "p.name"
	}
	return Statement{
		SQL: "SELECT " + dim + ", COALESCE(SUM(o.amount), 0) AS revenue, COUNT(o.id)" +
			fromOrderProduct + p.where() +
			" GROUP BY " + dim + " ORDER BY revenue DESC",
		Args: p.args,
	}
}

// Categories builds the distinct ascending category list.
func (b *Builder) Categories() Statement {
	return Statement{
		SQL: "SELECT DISTINCT category FROM products ORDER BY category ASC",
	}
}

// TopProducts builds the top products by revenue, capped at five rows.
// Revenue ties break on product name so ordering is deterministic.
func (b *Builder) TopProducts(f model.Filters) Statement {
	var p predicate
	p.period(f)
	p.category(f)
	return Statement{
		SQL: "SELECT p.name, p.category, COALESCE(SUM(o.quantity), 0), " +
			"COALESCE(SUM(o.amount), 0) AS revenue" +
			fromOrderProduct + p.where() +
			" GROUP BY p.name, p.category ORDER BY revenue DESC, p.name ASC LIMIT " + topProductsLimit,
		Args: p.args,
	}
}
