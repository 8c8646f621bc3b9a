package postgresql

import (
	"context"
	"database/sql"
	"net"
	"net/http"
	"time"

	"cafeshift/backend/foundation/web"
	"cafeshift/backend/internal/auth"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"
)

// Database wraps *bun.DB with the helpers every repository needs.
type Database struct {
	*bun.DB
}

type Config struct {
	User       string
	Password   string
	Host       string
	Port       string
	Name       string
	DisableTLS bool
	Debug      bool
}

func New(cfg Config) *Database {
	connector := pgdriver.NewConnector(
		pgdriver.WithAddr(net.JoinHostPort(cfg.Host, cfg.Port)),
		pgdriver.WithUser(cfg.User),
		pgdriver.WithPassword(cfg.Password),
		pgdriver.WithDatabase(cfg.Name),
		pgdriver.WithInsecure(cfg.DisableTLS),
		pgdriver.WithTimeout(5*time.Second),
	)

	sqldb := sql.OpenDB(connector)
	db := bun.NewDB(sqldb, pgdialect.New())

	if cfg.Debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}

	return &Database{DB: db}
}

// Ping checks the connection with a short timeout.
func (d Database) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return d.PingContext(ctx)
}

// CheckClaims returns the claims of the request, failing with 401 when there
// are none and 403 when none of roles match.
func (d Database) CheckClaims(ctx context.Context, roles ...string) (auth.Claims, error) {
	claims, ok := auth.FromContext(ctx)
	if !ok {
		return auth.Claims{}, web.NewRequestError(auth.ErrUnauthenticated, http.StatusUnauthorized)
	}

	if !claims.Authorized(roles...) {
		return auth.Claims{}, web.NewRequestError(auth.ErrForbidden, http.StatusForbidden)
	}

	return claims, nil
}

// ValidateStruct fails with 400 when any of the listed fields is empty.
func (d Database) ValidateStruct(s any, fields ...string) error {
	if errs := web.RequiredFields(s, fields...); len(errs) > 0 {
		return &web.Error{
			Err:    errors.New("validation failed"),
			Status: http.StatusBadRequest,
			Fields: errs,
		}
	}

	return nil
}

// DeleteRow removes a row by id, reporting 404 when nothing was deleted.
func (d Database) DeleteRow(ctx context.Context, table, id string) error {
	res, err := d.NewDelete().Table(table).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrapf(err, "deleting %s", table), http.StatusInternalServerError)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return web.NewRequestError(errors.Errorf("%s not found", table), http.StatusNotFound)
	}

	return nil
}
