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

// AccommodationRepository reads/writes the lodging catalog. Pricing comes in
// two generations (flat price+concession_fee vs adult_price/child_price);
// handled the same way as route park fees.
type AccommodationRepository struct {
	DB *sql.DB
}

func (r AccommodationRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r AccommodationRepository) selectColumns(db *sql.DB) (string, bool) {
	hasSplit := intdb.HasColumn(db, "accommodations", "adult_price") || intdb.HasColumn(db, "accommodations", "child_price")

	cols := `id,
		COALESCE(name,''),
		COALESCE(place,''),
		COALESCE(is_luxury,0),
		COALESCE(price,0),
		COALESCE(concession_fee,0)`
	if hasSplit {
		cols += `,
		adult_price,
		child_price`
	}
	return cols, hasSplit
}

func scanAccommodation(rows *sql.Rows, hasSplit bool) (models.Accommodation, error) {
	var (
		acc        models.Accommodation
		adultPrice sql.NullFloat64
		childPrice sql.NullFloat64
	)

	dest := []any{&acc.ID, &acc.Name, &acc.Place, &acc.IsLuxury, &acc.Price, &acc.ConcessionFee}
	if hasSplit {
		dest = append(dest, &adultPrice, &childPrice)
	}
	if err := rows.Scan(dest...); err != nil {
		return acc, err
	}

	if adultPrice.Valid {
		v := adultPrice.Float64
		acc.AdultPrice = &v
	}
	if childPrice.Valid {
		v := childPrice.Float64
		acc.ChildPrice = &v
	}
	return acc, nil
}

// List returns catalog accommodations ordered by name.
func (r AccommodationRepository) List(q string, page, limit int) ([]models.Accommodation, error) {
	db := r.db()
	if db == nil {
		return nil, fmt.Errorf("db not available for accommodations")
	}

	cols, hasSplit := r.selectColumns(db)
	query := "SELECT " + cols + " FROM accommodations"
	args := []any{}

	q = strings.TrimSpace(q)
	if q != "" {
		query += " WHERE (name LIKE ? OR place LIKE ?)"
		like := "%" + q + "%"
		args = append(args, like, like)
	}
	query += " ORDER BY name ASC"

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

	out := []models.Accommodation{}
	for rows.Next() {
		acc, err := scanAccommodation(rows, hasSplit)
		if err != nil {
			return out, err
		}
		out = append(out, acc)
	}
	return out, rows.Err()
}

// GetByIDs fetches the id set in one query; unresolved ids degrade to the
// caller's sentinel handling, never an error here.
func (r AccommodationRepository) GetByIDs(ids []int64) ([]models.Accommodation, error) {
	db := r.db()
	if db == nil {
		return nil, fmt.Errorf("db not available for accommodations")
	}
	if len(ids) == 0 {
		return []models.Accommodation{}, nil
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
		return []models.Accommodation{}, nil
	}

	cols, hasSplit := r.selectColumns(db)
	rows, err := db.Query("SELECT "+cols+" FROM accommodations WHERE id IN ("+strings.Join(ph, ",")+")", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Accommodation{}
	for rows.Next() {
		acc, err := scanAccommodation(rows, hasSplit)
		if err != nil {
			return out, err
		}
		out = append(out, acc)
	}
	return out, rows.Err()
}

// Create inserts an accommodation record.
func (r AccommodationRepository) Create(acc models.Accommodation) (int64, error) {
	db := r.db()
	if db == nil {
		return 0, fmt.Errorf("db not available for accommodations")
	}

	cols := []string{"name", "place", "is_luxury", "price", "concession_fee"}
	vals := []any{
		strings.TrimSpace(acc.Name),
		strings.TrimSpace(acc.Place),
		acc.IsLuxury,
		acc.Price,
		acc.ConcessionFee,
	}

	if acc.HasSplitPrice() && intdb.HasColumn(db, "accommodations", "adult_price") {
		cols = append(cols, "adult_price", "child_price")
		vals = append(vals, nullableFloat(acc.AdultPrice), nullableFloat(acc.ChildPrice))
	}

	cols = append(cols, "created_at", "updated_at")
	ph := make([]string, len(cols))
	for i := range ph {
		ph[i] = "?"
	}
	ph[len(ph)-2] = "NOW()"
	ph[len(ph)-1] = "NOW()"

	res, err := db.Exec(
		"INSERT INTO accommodations ("+strings.Join(cols, ", ")+") VALUES ("+strings.Join(ph, ", ")+")",
		vals...,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Update rewrites an accommodation record in place.
func (r AccommodationRepository) Update(id int64, acc models.Accommodation) error {
	db := r.db()
	if db == nil {
		return fmt.Errorf("db not available for accommodations")
	}
	if id <= 0 {
		return domain.ValidationError{Field: "id", Msg: "must be positive"}
	}

	set := []string{"name=?", "place=?", "is_luxury=?", "price=?", "concession_fee=?", "updated_at=NOW()"}
	args := []any{
		strings.TrimSpace(acc.Name),
		strings.TrimSpace(acc.Place),
		acc.IsLuxury,
		acc.Price,
		acc.ConcessionFee,
	}

	if intdb.HasColumn(db, "accommodations", "adult_price") {
		set = append(set, "adult_price=?", "child_price=?")
		args = append(args, nullableFloat(acc.AdultPrice), nullableFloat(acc.ChildPrice))
	}

	args = append(args, id)
	res, err := db.Exec("UPDATE accommodations SET "+strings.Join(set, ", ")+" WHERE id=?", args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var one int
		if err := db.QueryRow("SELECT 1 FROM accommodations WHERE id=? LIMIT 1", id).Scan(&one); err != nil {
			return domain.NotFoundError{Resource: "accommodation"}
		}
	}
	return nil
}

// Delete removes an accommodation. Itinerary snapshots are unaffected.
func (r AccommodationRepository) Delete(id int64) error {
	db := r.db()
	if db == nil {
		return fmt.Errorf("db not available for accommodations")
	}
	res, err := db.Exec("DELETE FROM accommodations WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "accommodation"}
	}
	return nil
}
