package store

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-broker/internal/types"
	"github.com/rxtech-lab/argo-broker/pkg/errors"
)

var marketDataColumns = []string{
	"id", "instrument_id", "high", "low", "open", "close", "previous_close", "date",
}

// CreateMarketData inserts one daily snapshot and returns its id.
func (s *Store) CreateMarketData(ctx context.Context, data types.MarketData) (int64, error) {
	query := s.sq.
		Insert("market_data").
		Columns("instrument_id", "high", "low", "open", "close", "previous_close", "date").
		Values(
			data.InstrumentID,
			optionalFloat(data.High), optionalFloat(data.Low),
			optionalFloat(data.Open), optionalFloat(data.Close),
			data.PreviousClose, data.Date,
		).
		Suffix("RETURNING id").
		RunWith(s.db)

	var id int64
	if err := query.QueryRowContext(ctx).Scan(&id); err != nil {
		return 0, errors.Wrap(errors.ErrCodeQueryFailed, "failed to insert market data", err)
	}

	return id, nil
}

// LatestMarketDataByInstrument returns the most recent snapshot for the
// instrument. Missing data is an error because every priced operation needs a
// closing price.
func (s *Store) LatestMarketDataByInstrument(ctx context.Context, instrumentID int64) (types.MarketData, error) {
	query := s.sq.
		Select(marketDataColumns...).
		From("market_data").
		Where(squirrel.Eq{"instrument_id": instrumentID}).
		OrderBy("date DESC").
		Limit(1)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return types.MarketData{}, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build query", err)
	}

	row := s.db.QueryRowContext(ctx, sqlQuery, args...)

	data, err := scanMarketData(row)
	if err == sql.ErrNoRows {
		return types.MarketData{}, errors.Newf(errors.ErrCodeMarketDataNotFound,
			"no market data found for instrument %d", instrumentID)
	}

	return data, err
}

// LatestMarketDataByInstruments returns the most recent snapshot per
// instrument, keyed by instrument id. Instruments with no snapshot are simply
// absent from the result.
func (s *Store) LatestMarketDataByInstruments(ctx context.Context, instrumentIDs []int64) (map[int64]types.MarketData, error) {
	result := make(map[int64]types.MarketData, len(instrumentIDs))
	if len(instrumentIDs) == 0 {
		return result, nil
	}

	query := s.sq.
		Select(marketDataColumns...).
		From("market_data").
		Where(squirrel.Eq{"instrument_id": instrumentIDs}).
		Suffix("QUALIFY row_number() OVER (PARTITION BY instrument_id ORDER BY date DESC) = 1")

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build query", err)
	}

	rows, err := s.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query market data", err)
	}
	defer rows.Close()

	for rows.Next() {
		data, err := scanMarketData(rows)
		if err != nil {
			return nil, err
		}

		result[data.InstrumentID] = data
	}

	return result, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMarketData(row rowScanner) (types.MarketData, error) {
	var (
		data                                       types.MarketData
		highPrice, lowPrice, openPrice, closePrice sql.NullFloat64
	)

	err := row.Scan(
		&data.ID, &data.InstrumentID,
		&highPrice, &lowPrice, &openPrice, &closePrice,
		&data.PreviousClose, &data.Date,
	)
	if err == sql.ErrNoRows {
		return types.MarketData{}, err
	}
	if err != nil {
		return types.MarketData{}, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan market data", err)
	}

	data.High = fromNullFloat(highPrice)
	data.Low = fromNullFloat(lowPrice)
	data.Open = fromNullFloat(openPrice)
	data.Close = fromNullFloat(closePrice)

	return data, nil
}

func optionalFloat(value optional.Option[float64]) any {
	if v, err := value.Take(); err == nil {
		return v
	}

	return nil
}

func fromNullFloat(value sql.NullFloat64) optional.Option[float64] {
	if value.Valid {
		return optional.Some(value.Float64)
	}

	return optional.None[float64]()
}
