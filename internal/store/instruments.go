package store

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/rxtech-lab/argo-broker/internal/types"
	"github.com/rxtech-lab/argo-broker/pkg/errors"
)

// CreateInstrument inserts an instrument and returns its id.
func (s *Store) CreateInstrument(ctx context.Context, instrument types.Instrument) (int64, error) {
	query := s.sq.
		Insert("instruments").
		Columns("ticker", "name", "type").
		Values(instrument.Ticker, instrument.Name, instrument.Type).
		Suffix("RETURNING id").
		RunWith(s.db)

	var id int64
	if err := query.QueryRowContext(ctx).Scan(&id); err != nil {
		return 0, errors.Wrap(errors.ErrCodeQueryFailed, "failed to insert instrument", err)
	}

	return id, nil
}

// FindInstrumentByTicker returns the instrument with the given ticker.
func (s *Store) FindInstrumentByTicker(ctx context.Context, ticker string) (types.Instrument, error) {
	return s.findInstrument(ctx, squirrel.Eq{"ticker": ticker},
		"no instrument found with ticker %s", ticker)
}

// FindInstrumentByTickerAndType returns the instrument with the given ticker
// and type. The cash instrument is resolved this way.
func (s *Store) FindInstrumentByTickerAndType(ctx context.Context, ticker string, instrumentType types.InstrumentType) (types.Instrument, error) {
	return s.findInstrument(ctx, squirrel.Eq{"ticker": ticker, "type": instrumentType},
		"no instrument found with ticker %s and type %s", ticker, instrumentType)
}

func (s *Store) findInstrument(ctx context.Context, filter squirrel.Eq, format string, args ...any) (types.Instrument, error) {
	query := s.sq.
		Select("id", "ticker", "name", "type").
		From("instruments").
		Where(filter).
		Limit(1)

	sqlQuery, queryArgs, err := query.ToSql()
	if err != nil {
		return types.Instrument{}, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build query", err)
	}

	var instrument types.Instrument

	row := s.db.QueryRowContext(ctx, sqlQuery, queryArgs...)
	err = row.Scan(&instrument.ID, &instrument.Ticker, &instrument.Name, &instrument.Type)
	if err == sql.ErrNoRows {
		return types.Instrument{}, errors.Newf(errors.ErrCodeInstrumentNotFound, format, args...)
	}
	if err != nil {
		return types.Instrument{}, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan instrument", err)
	}

	return instrument, nil
}

// SearchInstruments returns one page of instruments whose ticker or name
// contains the given substrings, matched case-insensitively, together with the
// total row count. Empty filters match everything.
func (s *Store) SearchInstruments(ctx context.Context, request types.SearchAssetsRequest) ([]types.Instrument, int, error) {
	filter := squirrel.And{
		squirrel.ILike{"ticker": "%" + request.Ticker + "%"},
		squirrel.ILike{"name": "%" + request.Name + "%"},
	}

	query := s.sq.
		Select("id", "ticker", "name", "type").
		From("instruments").
		Where(filter).
		OrderBy("id ASC").
		Offset(uint64(request.Skip())).
		Limit(uint64(request.Limit))

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return nil, 0, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build query", err)
	}

	rows, err := s.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, 0, errors.Wrap(errors.ErrCodeQueryFailed, "failed to search instruments", err)
	}
	defer rows.Close()

	var instruments []types.Instrument

	for rows.Next() {
		var instrument types.Instrument
		if err := rows.Scan(&instrument.ID, &instrument.Ticker, &instrument.Name, &instrument.Type); err != nil {
			return nil, 0, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan instrument", err)
		}

		instruments = append(instruments, instrument)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, errors.Wrap(errors.ErrCodeQueryFailed, "failed to read instruments", err)
	}

	countQuery, countArgs, err := s.sq.
		Select("COUNT(*)").
		From("instruments").
		Where(filter).
		ToSql()
	if err != nil {
		return nil, 0, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build count query", err)
	}

	var total int
	if err := s.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, errors.Wrap(errors.ErrCodeQueryFailed, "failed to count instruments", err)
	}

	return instruments, total, nil
}
