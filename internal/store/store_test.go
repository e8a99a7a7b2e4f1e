package store

import (
	"errors"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/theirongolddev/debtpath/internal/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open("", filepath.Join(t.TempDir(), "nested", "debtpath.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func testDebt(id, balance string) model.Debt {
	return model.Debt{
		ID:             id,
		Name:           "Debt " + id,
		Kind:           model.KindCreditCard,
		Balance:        decimal.RequireFromString(balance),
		APR:            decimal.RequireFromString("19.99"),
		MinimumPayment: decimal.RequireFromString("35.50"),
	}
}

func TestDriverFor(t *testing.T) {
	tests := []struct {
		driver, dsn, want string
	}{
		{"", "/home/me/.local/share/debtpath/debtpath.db", DriverSQLite},
		{"", "postgres://user@localhost/debts", DriverPostgres},
		{"", "postgresql://localhost/debts", DriverPostgres},
		{"postgres", "host=localhost dbname=debts", DriverPostgres},
	}
	for _, tc := range tests {
		if got := DriverFor(tc.driver, tc.dsn); got != tc.want {
			t.Fatalf("DriverFor(%q, %q) = %q, want %q", tc.driver, tc.dsn, got, tc.want)
		}
	}
}

func TestRebind(t *testing.T) {
	pg := &Store{driver: DriverPostgres}
	if got := pg.rebind("SELECT a FROM t WHERE x = ? AND y = ?"); got != "SELECT a FROM t WHERE x = $1 AND y = $2" {
		t.Fatalf("postgres rebind = %q", got)
	}
	lite := &Store{driver: DriverSQLite}
	if got := lite.rebind("WHERE x = ?"); got != "WHERE x = ?" {
		t.Fatalf("sqlite rebind = %q", got)
	}
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	if _, err := Open("mysql", "whatever"); err == nil {
		t.Fatal("want error for unsupported driver")
	}
}

func TestDebtsCRUD(t *testing.T) {
	s := openTemp(t)

	for _, d := range []model.Debt{testDebt("b", "2000"), testDebt("a", "1000.25"), testDebt("c", "500")} {
		if err := s.UpsertDebt(d); err != nil {
			t.Fatalf("UpsertDebt(%s): %v", d.ID, err)
		}
	}

	debts, err := s.ListDebts()
	if err != nil {
		t.Fatalf("ListDebts: %v", err)
	}
	var ids []string
	for _, d := range debts {
		ids = append(ids, d.ID)
	}
	if len(ids) != 3 || ids[0] != "b" || ids[1] != "a" || ids[2] != "c" {
		t.Fatalf("ids = %v, want insertion order [b a c]", ids)
	}
	if !debts[1].Balance.Equal(decimal.RequireFromString("1000.25")) {
		t.Fatalf("balance = %s, want 1000.25", debts[1].Balance)
	}
	if !debts[1].MinimumPayment.Equal(decimal.RequireFromString("35.5")) {
		t.Fatalf("minimum = %s, want 35.50", debts[1].MinimumPayment)
	}

	// Updating keeps position.
	updated := testDebt("b", "1500")
	updated.Name = "Renamed"
	if err := s.UpsertDebt(updated); err != nil {
		t.Fatalf("UpsertDebt update: %v", err)
	}
	got, err := s.GetDebt("b")
	if err != nil {
		t.Fatalf("GetDebt: %v", err)
	}
	if got.Name != "Renamed" || !got.Balance.Equal(decimal.NewFromInt(1500)) {
		t.Fatalf("updated debt = %+v", got)
	}
	debts, _ = s.ListDebts()
	if debts[0].ID != "b" {
		t.Fatalf("updated debt moved to %s", debts[0].ID)
	}

	if err := s.DeleteDebt("a"); err != nil {
		t.Fatalf("DeleteDebt: %v", err)
	}
	if err := s.DeleteDebt("a"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete err = %v, want ErrNotFound", err)
	}
	if _, err := s.GetDebt("a"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetDebt deleted err = %v, want ErrNotFound", err)
	}

	n, err := s.DebtCount()
	if err != nil || n != 2 {
		t.Fatalf("DebtCount = %d, %v; want 2", n, err)
	}
}

func TestImportDebts(t *testing.T) {
	s := openTemp(t)
	if err := s.UpsertDebt(testDebt("existing", "100")); err != nil {
		t.Fatal(err)
	}

	err := s.ImportDebts([]model.Debt{testDebt("existing", "90"), testDebt("new1", "10"), testDebt("new2", "20")})
	if err != nil {
		t.Fatalf("ImportDebts: %v", err)
	}
	debts, err := s.ListDebts()
	if err != nil {
		t.Fatalf("ListDebts: %v", err)
	}
	if len(debts) != 3 {
		t.Fatalf("len = %d, want 3", len(debts))
	}
	if debts[0].ID != "existing" || !debts[0].Balance.Equal(decimal.NewFromInt(90)) {
		t.Fatalf("existing = %+v", debts[0])
	}
}

func TestPlans(t *testing.T) {
	s := openTemp(t)

	res := model.SimulationResult{
		Strategy:          model.Strategy{Kind: model.Snowball},
		MonthlyBudget:     decimal.NewFromInt(200),
		Payoffs:           []model.Payoff{{DebtID: "C", Period: 5}, {DebtID: "A", Period: 11}},
		MonthsToPayoff:    20,
		TotalInterestPaid: decimal.RequireFromString("312.47"),
		TotalPaid:         decimal.RequireFromString("3812.47"),
	}
	saved, err := s.SavePlan("first", res)
	if err != nil {
		t.Fatalf("SavePlan: %v", err)
	}
	if saved.ID == "" {
		t.Fatal("SavePlan returned no id")
	}
	if _, err := s.SavePlan("second", res); err != nil {
		t.Fatalf("SavePlan: %v", err)
	}

	plans, err := s.ListPlans(0)
	if err != nil {
		t.Fatalf("ListPlans: %v", err)
	}
	if len(plans) != 2 {
		t.Fatalf("len = %d, want 2", len(plans))
	}
	var first Plan
	for _, p := range plans {
		if p.ID == saved.ID {
			first = p
		}
	}
	if first.Label != "first" || first.Strategy != "snowball" || first.Months != 20 {
		t.Fatalf("plan = %+v", first)
	}
	if !first.TotalInterest.Equal(res.TotalInterestPaid) {
		t.Fatalf("interest = %s", first.TotalInterest)
	}
	if len(first.PayoffOrder) != 2 || first.PayoffOrder[0] != "C" {
		t.Fatalf("order = %v", first.PayoffOrder)
	}
	if first.CreatedAt.IsZero() {
		t.Fatal("CreatedAt not parsed")
	}

	limited, err := s.ListPlans(1)
	if err != nil {
		t.Fatalf("ListPlans(1): %v", err)
	}
	if len(limited) != 1 {
		t.Fatalf("limited len = %d, want 1", len(limited))
	}
}

func newMock(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS debts").WillReturnResult(sqlmock.NewResult(0, 0))
	s, err := NewWithDB(db, DriverPostgres)
	if err != nil {
		t.Fatalf("NewWithDB: %v", err)
	}
	return s, mock
}

func TestPostgres_GetDebtUsesNumberedPlaceholders(t *testing.T) {
	s, mock := newMock(t)

	rows := sqlmock.NewRows([]string{"id", "name", "kind", "balance", "apr", "minimum_payment"}).
		AddRow("visa", "Visa", "credit_card", "4200.50", "24.99", "105")
	mock.ExpectQuery(regexp.QuoteMeta("FROM debts WHERE id = $1")).
		WithArgs("visa").
		WillReturnRows(rows)

	d, err := s.GetDebt("visa")
	if err != nil {
		t.Fatalf("GetDebt: %v", err)
	}
	if !d.Balance.Equal(decimal.RequireFromString("4200.5")) {
		t.Fatalf("balance = %s", d.Balance)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPostgres_DeleteMissing(t *testing.T) {
	s, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM debts WHERE id = $1")).
		WithArgs("ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := s.DeleteDebt("ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPostgres_ImportRollsBackOnError(t *testing.T) {
	s, mock := newMock(t)

	mock.ExpectBegin()
	prep := mock.ExpectPrepare(regexp.QuoteMeta("INSERT INTO debts"))
	prep.ExpectExec().WillReturnResult(sqlmock.NewResult(1, 1))
	prep.ExpectExec().WillReturnError(errors.New("constraint violated"))
	mock.ExpectRollback()

	err := s.ImportDebts([]model.Debt{testDebt("a", "1"), testDebt("b", "2")})
	if err == nil {
		t.Fatal("want error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
