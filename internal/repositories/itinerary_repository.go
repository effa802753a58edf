package repositories

import (
	"database/sql"
	"fmt"
	"strings"

	intconfig "safariops/internal/config"
	"safariops/internal/domain"
	"safariops/internal/domain/models"
	"safariops/internal/utils"
)

// ItineraryRepository persists priced quotes. Totals, profit and narrative
// are stored as written; nothing is recomputed on read, so catalog edits
// never change a saved itinerary.
type ItineraryRepository struct {
	DB *sql.DB
}

func (r ItineraryRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// List returns summaries newest-first.
func (r ItineraryRepository) List() ([]models.ItinerarySummary, error) {
	db := r.db()
	if db == nil {
		return nil, fmt.Errorf("db not available for itineraries")
	}

	rows, err := db.Query(`
		SELECT i.id,
			   COALESCE(i.title,''),
			   COALESCE(i.client_name,''),
			   COALESCE(DATE_FORMAT(i.start_date, '%Y-%m-%d'),''),
			   COALESCE(i.total_grand,0),
			   COALESCE(i.total_grand,0) + COALESCE(i.profit_amount,0),
			   COALESCE(DATE_FORMAT(i.created_at, '%Y-%m-%d %H:%i:%s'),''),
			   (SELECT COUNT(*) FROM itinerary_days d WHERE d.itinerary_id = i.id)
		FROM itineraries i
		ORDER BY i.created_at DESC, i.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.ItinerarySummary{}
	for rows.Next() {
		var s models.ItinerarySummary
		if err := rows.Scan(&s.ID, &s.Title, &s.ClientName, &s.StartDate, &s.Grand, &s.GrandWithProfit, &s.CreatedAt, &s.DayCount); err != nil {
			return out, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetByID loads one itinerary with its day rows in stored order.
func (r ItineraryRepository) GetByID(id int64) (models.Itinerary, error) {
	db := r.db()
	var it models.Itinerary
	if db == nil {
		return it, fmt.Errorf("db not available for itineraries")
	}

	var inclusions, exclusions string
	err := db.QueryRow(`
		SELECT id,
			   COALESCE(title,''),
			   COALESCE(client_name,''),
			   COALESCE(DATE_FORMAT(start_date, '%Y-%m-%d'),''),
			   COALESCE(adults,0),
			   COALESCE(children,0),
			   COALESCE(total_accommodation,0),
			   COALESCE(total_vehicle,0),
			   COALESCE(total_park,0),
			   COALESCE(total_transit,0),
			   COALESCE(total_grand,0),
			   COALESCE(profit_percent,0),
			   COALESCE(profit_amount,0),
			   COALESCE(overview,''),
			   COALESCE(inclusions,''),
			   COALESCE(exclusions,''),
			   COALESCE(notes,''),
			   COALESCE(DATE_FORMAT(created_at, '%Y-%m-%d %H:%i:%s'),''),
			   COALESCE(DATE_FORMAT(updated_at, '%Y-%m-%d %H:%i:%s'),'')
		FROM itineraries
		WHERE id=? LIMIT 1`, id).Scan(
		&it.ID, &it.Title, &it.ClientName, &it.StartDate,
		&it.Pax.Adults, &it.Pax.Children,
		&it.Totals.Accommodation, &it.Totals.Vehicle, &it.Totals.Park, &it.Totals.Transit, &it.Totals.Grand,
		&it.Profit.Percent, &it.Profit.Amount,
		&it.Overview, &inclusions, &exclusions, &it.Notes,
		&it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return it, domain.NotFoundError{Resource: "itinerary"}
		}
		return it, err
	}
	it.Profit.GrandWithProfit = it.Totals.Grand + it.Profit.Amount
	it.Inclusions = utils.TextAreaToList(inclusions)
	it.Exclusions = utils.TextAreaToList(exclusions)

	rows, err := db.Query(`
		SELECT COALESCE(position,0),
			   COALESCE(day_no,1),
			   COALESCE(route_id,0),
			   COALESCE(route_name,''),
			   COALESCE(acc_name,''),
			   COALESCE(pax_split,0),
			   COALESCE(adult_price,0),
			   COALESCE(child_price,0),
			   COALESCE(flat_price,0),
			   COALESCE(concession_fee,0)
		FROM itinerary_days
		WHERE itinerary_id=?
		ORDER BY position ASC`, id)
	if err != nil {
		return it, err
	}
	defer rows.Close()

	it.Days = []models.ItineraryDay{}
	for rows.Next() {
		var d models.ItineraryDay
		if err := rows.Scan(
			&d.Position, &d.Day, &d.RouteID, &d.RouteName,
			&d.Accommodation.Name, &d.Accommodation.PaxSplit,
			&d.Accommodation.AdultPrice, &d.Accommodation.ChildPrice,
			&d.Accommodation.Price, &d.Accommodation.ConcessionFee,
		); err != nil {
			return it, err
		}
		it.Days = append(it.Days, d)
	}
	return it, rows.Err()
}

// Create inserts header and day rows in one transaction.
func (r ItineraryRepository) Create(it models.Itinerary) (int64, error) {
	db := r.db()
	if db == nil {
		return 0, fmt.Errorf("db not available for itineraries")
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		INSERT INTO itineraries
			(title, client_name, start_date, adults, children,
			 total_accommodation, total_vehicle, total_park, total_transit, total_grand,
			 profit_percent, profit_amount, overview, inclusions, exclusions, notes,
			 created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())`,
		strings.TrimSpace(it.Title),
		nullIfEmpty(it.ClientName),
		nullIfEmpty(it.StartDate),
		it.Pax.Adults,
		it.Pax.Children,
		it.Totals.Accommodation,
		it.Totals.Vehicle,
		it.Totals.Park,
		it.Totals.Transit,
		it.Totals.Grand,
		it.Profit.Percent,
		it.Profit.Amount,
		it.Overview,
		utils.JoinLines(it.Inclusions),
		utils.JoinLines(it.Exclusions),
		strings.TrimSpace(it.Notes),
	)
	if err != nil {
		return 0, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if err := insertDays(tx, id, it.Days); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// Update rewrites header and replaces day rows in one transaction.
func (r ItineraryRepository) Update(it models.Itinerary) error {
	db := r.db()
	if db == nil {
		return fmt.Errorf("db not available for itineraries")
	}
	if it.ID <= 0 {
		return domain.ValidationError{Field: "id", Msg: "must be positive"}
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		UPDATE itineraries SET
			title=?, client_name=?, start_date=?, adults=?, children=?,
			total_accommodation=?, total_vehicle=?, total_park=?, total_transit=?, total_grand=?,
			profit_percent=?, profit_amount=?, overview=?, inclusions=?, exclusions=?, notes=?,
			updated_at=NOW()
		WHERE id=?`,
		strings.TrimSpace(it.Title),
		nullIfEmpty(it.ClientName),
		nullIfEmpty(it.StartDate),
		it.Pax.Adults,
		it.Pax.Children,
		it.Totals.Accommodation,
		it.Totals.Vehicle,
		it.Totals.Park,
		it.Totals.Transit,
		it.Totals.Grand,
		it.Profit.Percent,
		it.Profit.Amount,
		it.Overview,
		utils.JoinLines(it.Inclusions),
		utils.JoinLines(it.Exclusions),
		strings.TrimSpace(it.Notes),
		it.ID,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var one int
		if err := tx.QueryRow("SELECT 1 FROM itineraries WHERE id=? LIMIT 1", it.ID).Scan(&one); err != nil {
			return domain.NotFoundError{Resource: "itinerary"}
		}
	}

	if _, err := tx.Exec("DELETE FROM itinerary_days WHERE itinerary_id=?", it.ID); err != nil {
		return err
	}
	if err := insertDays(tx, it.ID, it.Days); err != nil {
		return err
	}

	return tx.Commit()
}

// Delete removes an itinerary and its day rows.
func (r ItineraryRepository) Delete(id int64) error {
	db := r.db()
	if db == nil {
		return fmt.Errorf("db not available for itineraries")
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM itinerary_days WHERE itinerary_id=?", id); err != nil {
		return err
	}
	res, err := tx.Exec("DELETE FROM itineraries WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "itinerary"}
	}
	return tx.Commit()
}

// MonthlySales aggregates stored (frozen) figures per month.
type MonthlySales struct {
	Month       string  `json:"month"`
	Itineraries int     `json:"itineraries"`
	Grand       float64 `json:"grand"`
	Profit      float64 `json:"profit"`
}

// SalesByMonth reports per-month counts and totals for one year.
func (r ItineraryRepository) SalesByMonth(year int) ([]MonthlySales, error) {
	db := r.db()
	if db == nil {
		return nil, fmt.Errorf("db not available for itineraries")
	}

	rows, err := db.Query(`
		SELECT DATE_FORMAT(created_at, '%Y-%m') AS month,
			   COUNT(*),
			   COALESCE(SUM(total_grand),0),
			   COALESCE(SUM(profit_amount),0)
		FROM itineraries
		WHERE YEAR(created_at) = ?
		GROUP BY month
		ORDER BY month ASC`, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []MonthlySales{}
	for rows.Next() {
		var m MonthlySales
		if err := rows.Scan(&m.Month, &m.Itineraries, &m.Grand, &m.Profit); err != nil {
			return out, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func insertDays(tx *sql.Tx, itineraryID int64, days []models.ItineraryDay) error {
	for i, d := range days {
		if _, err := tx.Exec(`
			INSERT INTO itinerary_days
				(itinerary_id, position, day_no, route_id, route_name,
				 acc_name, pax_split, adult_price, child_price, flat_price, concession_fee)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			itineraryID, i+1, d.Day, d.RouteID, d.RouteName,
			d.Accommodation.Name, d.Accommodation.PaxSplit,
			d.Accommodation.AdultPrice, d.Accommodation.ChildPrice,
			d.Accommodation.Price, d.Accommodation.ConcessionFee,
		); err != nil {
			return err
		}
	}
	return nil
}

func nullIfEmpty(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return strings.TrimSpace(s)
}
