package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/rxtech-lab/argo-broker/internal/types"
	"github.com/rxtech-lab/argo-broker/pkg/errors"
)

var orderDetailColumns = []string{
	"o.id", "o.user_id", "o.instrument_id", "o.size", "o.price",
	"o.order_type", "o.side", "o.status", "o.created_at",
	"i.id", "i.ticker", "i.name", "i.type",
}

// InsertOrders inserts the given orders as one atomic batch and returns their
// identifiers. Either every row is written or none is; the paired asset and
// cash legs of a trade rely on this.
func (s *Store) InsertOrders(ctx context.Context, orders []types.Order) ([]string, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to begin transaction", err)
	}

	identifiers := make([]string, 0, len(orders))

	for _, order := range orders {
		if order.ID == "" {
			order.ID = uuid.New().String()
		}

		if order.CreatedAt.IsZero() {
			order.CreatedAt = time.Now().UTC()
		}

		insertQuery := s.sq.
			Insert("orders").
			Columns(
				"id", "user_id", "instrument_id", "size", "price",
				"order_type", "side", "status", "created_at",
			).
			Values(
				order.ID, order.UserID, order.InstrumentID, order.Size, order.Price,
				order.Type, order.Side, order.Status, order.CreatedAt,
			).
			RunWith(tx)

		if _, err := insertQuery.ExecContext(ctx); err != nil {
			tx.Rollback()
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to insert order", err)
		}

		identifiers = append(identifiers, order.ID)
	}

	if err := tx.Commit(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to commit order batch", err)
	}

	return identifiers, nil
}

// FindFilledOrdersByUser returns every FILLED order of the user joined with
// its instrument.
func (s *Store) FindFilledOrdersByUser(ctx context.Context, userID int64) ([]types.OrderDetail, error) {
	query := s.sq.
		Select(orderDetailColumns...).
		From("orders o").
		Join("instruments i ON i.id = o.instrument_id").
		Where(squirrel.Eq{"o.user_id": userID, "o.status": types.OrderStatusFilled}).
		OrderBy("o.created_at ASC")

	return s.queryOrderDetails(ctx, query)
}

// FindFilledOrdersByUserAndInstrument returns the user's FILLED orders for one
// instrument.
func (s *Store) FindFilledOrdersByUserAndInstrument(ctx context.Context, userID, instrumentID int64) ([]types.OrderDetail, error) {
	query := s.sq.
		Select(orderDetailColumns...).
		From("orders o").
		Join("instruments i ON i.id = o.instrument_id").
		Where(squirrel.Eq{
			"o.user_id":       userID,
			"o.instrument_id": instrumentID,
			"o.status":        types.OrderStatusFilled,
		}).
		OrderBy("o.created_at ASC")

	return s.queryOrderDetails(ctx, query)
}

// FindCashOrdersByUser returns the user's CASH_IN and CASH_OUT orders.
func (s *Store) FindCashOrdersByUser(ctx context.Context, userID int64) ([]types.OrderDetail, error) {
	query := s.sq.
		Select(orderDetailColumns...).
		From("orders o").
		Join("instruments i ON i.id = o.instrument_id").
		Where(squirrel.Eq{
			"o.user_id": userID,
			"o.side":    []types.OrderSide{types.OrderSideCashIn, types.OrderSideCashOut},
		}).
		OrderBy("o.created_at ASC")

	return s.queryOrderDetails(ctx, query)
}

// FindDistinctInstrumentIDs returns the distinct instrument ids across the
// user's FILLED orders.
func (s *Store) FindDistinctInstrumentIDs(ctx context.Context, userID int64) ([]int64, error) {
	query := s.sq.
		Select("DISTINCT o.instrument_id").
		From("orders o").
		Where(squirrel.Eq{"o.user_id": userID, "o.status": types.OrderStatusFilled})

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build query", err)
	}

	rows, err := s.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query instrument ids", err)
	}
	defer rows.Close()

	var ids []int64

	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan instrument id", err)
		}

		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// FindOrderByIDAndUser returns the order with the given id belonging to the
// user, joined with its instrument.
func (s *Store) FindOrderByIDAndUser(ctx context.Context, orderID string, userID int64) (types.OrderDetail, error) {
	query := s.sq.
		Select(orderDetailColumns...).
		From("orders o").
		Join("instruments i ON i.id = o.instrument_id").
		Where(squirrel.Eq{"o.id": orderID, "o.user_id": userID})

	details, err := s.queryOrderDetails(ctx, query)
	if err != nil {
		return types.OrderDetail{}, err
	}

	if len(details) == 0 {
		return types.OrderDetail{}, errors.Newf(errors.ErrCodeOrderNotFound,
			"no order found with id %s for the given user", orderID)
	}

	return details[0], nil
}

// FindMarketOrdersByUser returns one page of the user's BUY and SELL orders
// (cash legs excluded) together with the total row count.
func (s *Store) FindMarketOrdersByUser(ctx context.Context, userID int64, pagination types.Pagination) ([]types.OrderDetail, int, error) {
	sideFilter := squirrel.Eq{
		"o.user_id": userID,
		"o.side":    types.TransactionSides,
	}

	query := s.sq.
		Select(orderDetailColumns...).
		From("orders o").
		Join("instruments i ON i.id = o.instrument_id").
		Where(sideFilter).
		OrderBy("o.created_at ASC").
		Offset(uint64(pagination.Skip())).
		Limit(uint64(pagination.Limit))

	details, err := s.queryOrderDetails(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	countQuery, args, err := s.sq.
		Select("COUNT(*)").
		From("orders o").
		Where(sideFilter).
		ToSql()
	if err != nil {
		return nil, 0, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build count query", err)
	}

	var total int
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, errors.Wrap(errors.ErrCodeQueryFailed, "failed to count orders", err)
	}

	return details, total, nil
}

func (s *Store) queryOrderDetails(ctx context.Context, query squirrel.SelectBuilder) ([]types.OrderDetail, error) {
	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build query", err)
	}

	rows, err := s.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query orders", err)
	}
	defer rows.Close()

	var details []types.OrderDetail

	for rows.Next() {
		detail, err := scanOrderDetail(rows)
		if err != nil {
			return nil, err
		}

		details = append(details, detail)
	}

	return details, rows.Err()
}

func scanOrderDetail(rows *sql.Rows) (types.OrderDetail, error) {
	var detail types.OrderDetail

	err := rows.Scan(
		&detail.ID, &detail.UserID, &detail.InstrumentID, &detail.Size, &detail.Price,
		&detail.Type, &detail.Side, &detail.Status, &detail.CreatedAt,
		&detail.Instrument.ID, &detail.Instrument.Ticker, &detail.Instrument.Name, &detail.Instrument.Type,
	)
	if err != nil {
		return types.OrderDetail{}, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan order", err)
	}

	return detail, nil
}
