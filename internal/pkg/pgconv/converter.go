package pgconv

import (
	"database/sql"
	"errors"
	"time"

	"campsite-booking/internal/domain/daterange"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

const pgErrCodeExclusionViolation = "23P01"

func DateToPgtype(t time.Time) pgtype.Date {
	return pgtype.Date{Time: daterange.Of(t), Valid: true}
}

// DateRangeToPgtype encodes r as a closed daterange; nil encodes SQL NULL.
func DateRangeToPgtype(r *daterange.Range) pgtype.Range[pgtype.Date] {
	if r == nil {
		return pgtype.Range[pgtype.Date]{Valid: false}
	}
	return pgtype.Range[pgtype.Date]{
		Lower:     DateToPgtype(r.Start),
		Upper:     DateToPgtype(r.End),
		LowerType: pgtype.Inclusive,
		UpperType: pgtype.Inclusive,
		Valid:     true,
	}
}

// DateRangeFromPgtype decodes a daterange in whatever bound form the server
// returns (Postgres canonicalizes to [lower,upper)). NULL and empty ranges
// decode to nil.
func DateRangeFromPgtype(pr pgtype.Range[pgtype.Date]) *daterange.Range {
	if !pr.Valid || pr.LowerType == pgtype.Empty || pr.UpperType == pgtype.Empty {
		return nil
	}
	bounds := daterange.Bounds{
		Lower: boundFromPgtype(pr.Lower, pr.LowerType),
		Upper: boundFromPgtype(pr.Upper, pr.UpperType),
	}
	closed, ok := bounds.Closed()
	if !ok {
		return nil
	}
	return &closed
}

func boundFromPgtype(d pgtype.Date, bt pgtype.BoundType) daterange.Bound {
	switch {
	case bt == pgtype.Unbounded || !d.Valid || d.InfinityModifier != pgtype.Finite:
		return daterange.Bound{Kind: daterange.Unbounded}
	case bt == pgtype.Exclusive:
		return daterange.Bound{Day: d.Time, Kind: daterange.Exclusive}
	default:
		return daterange.Bound{Day: d.Time, Kind: daterange.Inclusive}
	}
}

func StringPtrFromPgtype(pt pgtype.Text) *string {
	if !pt.Valid {
		return nil
	}
	return &pt.String
}

func TimeFromPgtype(pt pgtype.Timestamptz) time.Time {
	return pt.Time
}

func TimeToPgtype(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}

// IsNoRows checks if the error is a "no rows" error from either sql or pgx
func IsNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows)
}

// IsExclusionViolation reports a violated EXCLUDE constraint, e.g. two active
// reservations claiming overlapping dates.
func IsExclusionViolation(err error) bool {
	return hasCode(err, pgErrCodeExclusionViolation)
}

func hasCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}
