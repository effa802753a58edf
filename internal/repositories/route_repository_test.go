package repositories

import (
	"testing"

	"safariops/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
)

var legacyRouteColumns = []string{
	"id", "name", "description", "origin", "destination", "day",
	"vehicle_fee", "park_fee", "transit_fee",
}

var splitRouteColumns = append(append([]string{}, legacyRouteColumns...),
	"park_fee_adult", "park_fee_child")

func TestRouteListLegacySchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	// neither split column exists
	mock.ExpectQuery("information_schema\\.columns").WithArgs("routes", "park_fee_adult").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}))
	mock.ExpectQuery("information_schema\\.columns").WithArgs("routes", "park_fee_child").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}))

	mock.ExpectQuery("FROM routes").
		WillReturnRows(sqlmock.NewRows(legacyRouteColumns).
			AddRow(1, "Arusha to Tarangire", "", "Arusha", "Tarangire", 1, 200.0, 83.0, 50.0))

	repo := RouteRepository{DB: db}
	list, err := repo.List("", 0, 0)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 route, got %d", len(list))
	}

	rt := list[0]
	if rt.HasSplitParkFee() {
		t.Fatalf("legacy row must not report split park fee")
	}
	if rt.ParkFee == nil || *rt.ParkFee != 83 {
		t.Fatalf("flat park fee not scanned: %+v", rt.ParkFee)
	}
	if sched := rt.FeeSchedule(); sched.Park.Mode != domain.ParkFeeFlat || sched.Park.Flat != 83 {
		t.Fatalf("unexpected fee schedule: %+v", sched.Park)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRouteGetByIDsSplitSchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	// first column probe hits, second is short-circuited
	mock.ExpectQuery("information_schema\\.columns").WithArgs("routes", "park_fee_adult").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}).AddRow("park_fee_adult"))

	mock.ExpectQuery("FROM routes WHERE id IN").WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows(splitRouteColumns).
			AddRow(2, "Tarangire to Serengeti", "", "Tarangire", "Serengeti", 2, 250.0, nil, 0.0, 60.0, 30.0))

	repo := RouteRepository{DB: db}
	// duplicate and invalid ids collapse to a single parameter
	list, err := repo.GetByIDs([]int64{2, 2, 0, -1})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 route, got %d", len(list))
	}

	rt := list[0]
	if !rt.HasSplitParkFee() {
		t.Fatalf("split row must report split park fee")
	}
	sched := rt.FeeSchedule()
	if sched.Park.Mode != domain.ParkFeePerPerson {
		t.Fatalf("expected per-person park fee, got %+v", sched.Park)
	}
	total := sched.Park.Total(domain.PartyComposition{Adults: 2, Children: 1})
	if total != 150 {
		t.Fatalf("expected park total 150, got %v", total)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRouteSplitRowWithZeroFeesStaysSplit(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("information_schema\\.columns").WithArgs("routes", "park_fee_adult").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}).AddRow("park_fee_adult"))

	// split columns present and zero: the row is split with zero fees, the
	// legacy flat value is ignored
	mock.ExpectQuery("FROM routes WHERE id IN").WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(splitRouteColumns).
			AddRow(3, "Free crossing", "", "", "", 1, 0.0, 83.0, 0.0, 0.0, 0.0))

	repo := RouteRepository{DB: db}
	list, err := repo.GetByIDs([]int64{3})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	sched := list[0].FeeSchedule()
	if sched.Park.Mode != domain.ParkFeePerPerson {
		t.Fatalf("zero split fees must still win over legacy flat, got %+v", sched.Park)
	}
	if got := sched.Park.Total(domain.PartyComposition{Adults: 4}); got != 0 {
		t.Fatalf("expected 0 park total, got %v", got)
	}
}
