package repositories

import (
	"database/sql"
	"fmt"
	"strings"

	intconfig "safariops/internal/config"
	intdb "safariops/internal/db"
	"safariops/internal/domain"
	"safariops/internal/domain/models"
)

// RouteRepository reads/writes the route fee catalog. Park fees exist in
// two schema generations (legacy flat park_fee, current split
// park_fee_adult/park_fee_child); column presence is detected per process
// and NULL-ness per row, so mixed catalogs still resolve.
type RouteRepository struct {
	DB *sql.DB
}

func (r RouteRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r RouteRepository) selectColumns(db *sql.DB) (string, bool) {
	hasSplit := intdb.HasColumn(db, "routes", "park_fee_adult") || intdb.HasColumn(db, "routes", "park_fee_child")

	cols := `id,
		COALESCE(name,''),
		COALESCE(description,''),
		COALESCE(origin,''),
		COALESCE(destination,''),
		COALESCE(day,1),
		COALESCE(vehicle_fee,0),
		park_fee,
		transit_fee`
	if hasSplit {
		cols += `,
		park_fee_adult,
		park_fee_child`
	}
	return cols, hasSplit
}

func scanRoute(rows *sql.Rows, hasSplit bool) (models.Route, error) {
	var (
		rt         models.Route
		parkFee    sql.NullFloat64
		transitFee sql.NullFloat64
		adultFee   sql.NullFloat64
		childFee   sql.NullFloat64
	)

	dest := []any{
		&rt.ID, &rt.Name, &rt.Description, &rt.Origin, &rt.Destination,
		&rt.Day, &rt.VehicleFee, &parkFee, &transitFee,
	}
	if hasSplit {
		dest = append(dest, &adultFee, &childFee)
	}
	if err := rows.Scan(dest...); err != nil {
		return rt, err
	}

	if parkFee.Valid {
		v := parkFee.Float64
		rt.ParkFee = &v
	}
	if transitFee.Valid {
		rt.TransitFee = transitFee.Float64
	}
	if adultFee.Valid {
		v := adultFee.Float64
		rt.ParkFeeAdult = &v
	}
	if childFee.Valid {
		v := childFee.Float64
		rt.ParkFeeChild = &v
	}
	return rt, nil
}

// List returns catalog routes ordered by day then name, optionally filtered
// by a name/destination substring.
func (r RouteRepository) List(q string, page, limit int) ([]models.Route, error) {
	db := r.db()
	if db == nil {
		return nil, fmt.Errorf("db not available for routes")
	}

	cols, hasSplit := r.selectColumns(db)
	query := "SELECT " + cols + " FROM routes"
	args := []any{}

	q = strings.TrimSpace(q)
	if q != "" {
		query += " WHERE (name LIKE ? OR destination LIKE ?)"
		like := "%" + q + "%"
		args = append(args, like, like)
	}
	query += " ORDER BY day ASC, name ASC"

	if page > 0 && limit > 0 {
		if limit > 200 {
			limit = 200
		}
		query += " LIMIT ? OFFSET ?"
		args = append(args, limit, (page-1)*limit)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Route{}
	for rows.Next() {
		rt, err := scanRoute(rows, hasSplit)
		if err != nil {
			return out, err
		}
		out = append(out, rt)
	}
	return out, rows.Err()
}

// GetByIDs fetches the id set in one query; missing ids are simply absent
// from the result, never an error.
func (r RouteRepository) GetByIDs(ids []int64) ([]models.Route, error) {
	db := r.db()
	if db == nil {
		return nil, fmt.Errorf("db not available for routes")
	}
	if len(ids) == 0 {
		return []models.Route{}, nil
	}

	seen := map[int64]bool{}
	args := []any{}
	ph := []string{}
	for _, id := range ids {
		if id <= 0 || seen[id] {
			continue
		}
		seen[id] = true
		args = append(args, id)
		ph = append(ph, "?")
	}
	if len(args) == 0 {
		return []models.Route{}, nil
	}

	cols, hasSplit := r.selectColumns(db)
	rows, err := db.Query("SELECT "+cols+" FROM routes WHERE id IN ("+strings.Join(ph, ",")+")", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Route{}
	for rows.Next() {
		rt, err := scanRoute(rows, hasSplit)
		if err != nil {
			return out, err
		}
		out = append(out, rt)
	}
	return out, rows.Err()
}

// FeeSchedules resolves the tagged park-fee variant for each record.
func FeeSchedules(routes []models.Route) []domain.RouteFeeSchedule {
	out := make([]domain.RouteFeeSchedule, 0, len(routes))
	for _, rt := range routes {
		out = append(out, rt.FeeSchedule())
	}
	return out
}

// Create inserts a route; split park fees are stored when provided,
// otherwise the legacy flat column is used.
func (r RouteRepository) Create(rt models.Route) (int64, error) {
	db := r.db()
	if db == nil {
		return 0, fmt.Errorf("db not available for routes")
	}

	cols := []string{"name", "description", "origin", "destination", "day", "vehicle_fee", "transit_fee"}
	vals := []any{
		strings.TrimSpace(rt.Name),
		strings.TrimSpace(rt.Description),
		strings.TrimSpace(rt.Origin),
		strings.TrimSpace(rt.Destination),
		rt.Day,
		rt.VehicleFee,
		rt.TransitFee,
	}

	if rt.HasSplitParkFee() && intdb.HasColumn(db, "routes", "park_fee_adult") {
		cols = append(cols, "park_fee_adult", "park_fee_child")
		vals = append(vals, nullableFloat(rt.ParkFeeAdult), nullableFloat(rt.ParkFeeChild))
	} else {
		cols = append(cols, "park_fee")
		vals = append(vals, nullableFloat(rt.ParkFee))
	}

	cols = append(cols, "created_at", "updated_at")
	ph := make([]string, len(cols))
	for i := range ph {
		ph[i] = "?"
	}
	ph[len(ph)-2] = "NOW()"
	ph[len(ph)-1] = "NOW()"

	res, err := db.Exec(
		"INSERT INTO routes ("+strings.Join(cols, ", ")+") VALUES ("+strings.Join(ph, ", ")+")",
		vals...,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Update rewrites a route record in place.
func (r RouteRepository) Update(id int64, rt models.Route) error {
	db := r.db()
	if db == nil {
		return fmt.Errorf("db not available for routes")
	}
	if id <= 0 {
		return domain.ValidationError{Field: "id", Msg: "must be positive"}
	}

	set := []string{"name=?", "description=?", "origin=?", "destination=?", "day=?", "vehicle_fee=?", "transit_fee=?", "updated_at=NOW()"}
	args := []any{
		strings.TrimSpace(rt.Name),
		strings.TrimSpace(rt.Description),
		strings.TrimSpace(rt.Origin),
		strings.TrimSpace(rt.Destination),
		rt.Day,
		rt.VehicleFee,
		rt.TransitFee,
	}

	if intdb.HasColumn(db, "routes", "park_fee_adult") {
		set = append(set, "park_fee_adult=?", "park_fee_child=?")
		args = append(args, nullableFloat(rt.ParkFeeAdult), nullableFloat(rt.ParkFeeChild))
	}
	if intdb.HasColumn(db, "routes", "park_fee") {
		set = append(set, "park_fee=?")
		args = append(args, nullableFloat(rt.ParkFee))
	}

	args = append(args, id)
	res, err := db.Exec("UPDATE routes SET "+strings.Join(set, ", ")+" WHERE id=?", args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if !r.exists(db, id) {
			return domain.NotFoundError{Resource: "route"}
		}
	}
	return nil
}

// Delete removes a route. Saved itineraries keep their snapshots.
func (r RouteRepository) Delete(id int64) error {
	db := r.db()
	if db == nil {
		return fmt.Errorf("db not available for routes")
	}
	res, err := db.Exec("DELETE FROM routes WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "route"}
	}
	return nil
}

func (r RouteRepository) exists(db *sql.DB, id int64) bool {
	var one int
	err := db.QueryRow("SELECT 1 FROM routes WHERE id=? LIMIT 1", id).Scan(&one)
	return err == nil
}

func nullableFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
