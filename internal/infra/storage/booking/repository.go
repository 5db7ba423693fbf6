package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/hybrid24/H24-BookingService/internal/domain"
	"github.com/hybrid24/H24-BookingService/pkg/psqlbuilder"
)

// bookingColumns полный набор колонок таблицы bookings в порядке сканирования
var bookingColumns = []string{
	"id",
	"customer_name",
	"customer_phone",
	"customer_email",
	"service_type",
	"promotion",
	"car_brand",
	"car_model",
	"preferred_date",
	"preferred_time",
	"comment",
	"status",
	"synced_to_1c",
	"synced_to_1c_at",
	"kontragent_key",
	"avtomobil_key",
	"car_vin",
	"car_plate",
	"car_year",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с заявками
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заявок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую заявку
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"customer_name",
			"customer_phone",
			"customer_email",
			"service_type",
			"promotion",
			"car_brand",
			"car_model",
			"preferred_date",
			"preferred_time",
			"comment",
			"status",
		).
		Values(
			booking.CustomerName,
			booking.CustomerPhone,
			booking.CustomerEmail,
			booking.ServiceType,
			booking.Promotion,
			booking.CarBrand,
			booking.CarModel,
			booking.PreferredDate,
			booking.PreferredTime,
			booking.Comment,
			booking.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает заявку по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := r.scanBooking(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetWithFilter получает заявки с гибкой фильтрацией
// Поддерживает фильтрацию по:
// - Статусу (Status) - опционально
// - Периоду создания (StartDate, EndDate) - опционально
// - Только непереданным в 1С (OnlyUnsynced)
func (r *Repository) GetWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		OrderBy("created_at DESC")

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"created_at": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"created_at": *filter.EndDate})
	}
	if filter.OnlyUnsynced {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"synced_to_1c": false})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// UpdateStatus обновляет статус заявки
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// MarkSynced отмечает заявку переданной в 1С и сохраняет полученные ключи.
// Время первой успешной передачи не перезаписывается при повторных вызовах.
func (r *Repository) MarkSynced(ctx context.Context, id int64, info domain.SyncInfo) error {
	updateBuilder := psqlbuilder.Update("bookings").
		Set("synced_to_1c", true).
		Set("synced_to_1c_at", squirrel.Expr("COALESCE(synced_to_1c_at, NOW())")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if info.KontragentKey != nil {
		updateBuilder = updateBuilder.Set("kontragent_key", *info.KontragentKey)
	}
	if info.AvtomobilKey != nil {
		updateBuilder = updateBuilder.Set("avtomobil_key", *info.AvtomobilKey)
	}
	if info.CarVIN != nil {
		updateBuilder = updateBuilder.Set("car_vin", *info.CarVIN)
	}
	if info.CarPlate != nil {
		updateBuilder = updateBuilder.Set("car_plate", *info.CarPlate)
	}
	if info.CarYear != nil {
		updateBuilder = updateBuilder.Set("car_year", *info.CarYear)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkSynced - build update query: %v", ErrBuildQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkSynced - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkSynced - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// DeleteByDateRange удаляет заявки, созданные в указанном периоде.
// Возвращает количество удалённых заявок.
func (r *Repository) DeleteByDateRange(ctx context.Context, start, end time.Time) (int64, error) {
	query, args, err := psqlbuilder.Delete("bookings").
		Where(squirrel.GtOrEq{"created_at": start}).
		Where(squirrel.Lt{"created_at": end}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByDateRange - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByDateRange - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByDateRange - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanBooking сканирует одну строку в заявку
func (r *Repository) scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var email, serviceType, promotion, carBrand, carModel, preferredTime, comment sql.NullString
	var preferredDate, syncedAt, createdAt, updatedAt sql.NullTime
	var kontragentKey, avtomobilKey, carVIN, carPlate, carYear sql.NullString

	err := row.Scan(
		&booking.ID,
		&booking.CustomerName,
		&booking.CustomerPhone,
		&email,
		&serviceType,
		&promotion,
		&carBrand,
		&carModel,
		&preferredDate,
		&preferredTime,
		&comment,
		&booking.Status,
		&booking.SyncedTo1C,
		&syncedAt,
		&kontragentKey,
		&avtomobilKey,
		&carVIN,
		&carPlate,
		&carYear,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CustomerEmail = email.String
	booking.ServiceType = serviceType.String
	booking.Promotion = promotion.String
	booking.CarBrand = carBrand.String
	booking.CarModel = carModel.String
	booking.PreferredTime = preferredTime.String
	booking.Comment = comment.String
	if preferredDate.Valid {
		booking.PreferredDate = &preferredDate.Time
	}
	if syncedAt.Valid {
		booking.SyncedTo1CAt = &syncedAt.Time
	}
	if kontragentKey.Valid {
		booking.KontragentKey = &kontragentKey.String
	}
	if avtomobilKey.Valid {
		booking.AvtomobilKey = &avtomobilKey.String
	}
	if carVIN.Valid {
		booking.CarVIN = &carVIN.String
	}
	if carPlate.Valid {
		booking.CarPlate = &carPlate.String
	}
	if carYear.Valid {
		booking.CarYear = &carYear.String
	}
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс заявок
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := r.scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
