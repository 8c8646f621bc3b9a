package commands

import (
	"context"
	"log"

	"cafeshift/backend/internal/pkg/repository/postgresql"

	"github.com/pkg/errors"
	"github.com/uptrace/bun/driver/pgdriver"
)

type Scheme struct {
	Index       int
	Description string
	Query       string
}

var scheme = []Scheme{
	{
		Index:       1,
		Description: "Create table: branches.",
		Query: `
        CREATE TABLE IF NOT EXISTS branches (
            id text primary key,
            name text not null,
            address text not null,
            phone text,
            is_active boolean not null default true,
            created_at timestamptz not null default now()
        );`,
	},
	{
		Index:       2,
		Description: "Create table: users.",
		Query: `
        CREATE TABLE IF NOT EXISTS users (
            id text primary key,
            username text not null unique,
            password text not null,
            first_name text not null,
            last_name text not null,
            email text not null unique,
            role text not null default 'employee' check (role in ('employee', 'manager')),
            position text not null,
            hourly_rate double precision not null,
            branch_id text not null references branches(id),
            is_active boolean not null default true,
            blockchain_verified boolean not null default false,
            blockchain_hash text,
            verified_at timestamptz,
            created_at timestamptz not null default now()
        );`,
	},
	{
		Index:       3,
		Description: "Create table: shifts.",
		Query: `
        CREATE TABLE IF NOT EXISTS shifts (
            id text primary key,
            user_id text not null references users(id),
            branch_id text not null references branches(id),
            start_time timestamptz not null,
            end_time timestamptz not null,
            position text not null,
            is_recurring boolean not null default false,
            recurring_pattern text,
            status text not null default 'scheduled',
            actual_start_time timestamptz,
            actual_end_time timestamptz,
            created_at timestamptz not null default now()
        );
        CREATE INDEX IF NOT EXISTS shifts_user_start_idx ON shifts (user_id, start_time);
        CREATE INDEX IF NOT EXISTS shifts_branch_start_idx ON shifts (branch_id, start_time);`,
	},
	{
		Index:       4,
		Description: "Create table: shift_trades.",
		Query: `
        CREATE TABLE IF NOT EXISTS shift_trades (
            id text primary key,
            shift_id text not null references shifts(id) on delete cascade,
            from_user_id text not null references users(id),
            to_user_id text references users(id),
            reason text not null,
            status text not null default 'pending',
            urgency text not null default 'normal',
            notes text,
            requested_at timestamptz not null default now(),
            approved_at timestamptz,
            approved_by text references users(id),
            created_at timestamptz not null default now()
        );`,
	},
	{
		Index:       5,
		Description: "Create tables: payroll_periods, payroll_entries.",
		Query: `
        CREATE TABLE IF NOT EXISTS payroll_periods (
            id text primary key,
            branch_id text not null references branches(id),
            start_date timestamptz not null,
            end_date timestamptz not null,
            status text not null default 'open',
            total_hours double precision not null default 0,
            total_pay double precision not null default 0,
            created_at timestamptz not null default now()
        );
        CREATE TABLE IF NOT EXISTS payroll_entries (
            id text primary key,
            user_id text not null references users(id),
            payroll_period_id text not null references payroll_periods(id),
            total_hours double precision not null,
            regular_hours double precision not null,
            overtime_hours double precision not null default 0,
            gross_pay double precision not null,
            deductions double precision not null default 0,
            net_pay double precision not null,
            status text not null default 'pending',
            blockchain_hash text,
            block_number bigint,
            transaction_hash text unique,
            verified boolean not null default false,
            created_at timestamptz not null default now()
        );
        CREATE UNIQUE INDEX IF NOT EXISTS payroll_entries_period_user_idx
            ON payroll_entries (payroll_period_id, user_id);`,
	},
	{
		Index:       6,
		Description: "Create table: approvals.",
		Query: `
        CREATE TABLE IF NOT EXISTS approvals (
            id text primary key,
            type text not null,
            request_id text not null,
            requested_by text not null references users(id),
            approved_by text references users(id),
            status text not null default 'pending',
            reason text,
            request_data jsonb,
            requested_at timestamptz not null default now(),
            responded_at timestamptz,
            created_at timestamptz not null default now()
        );
        CREATE INDEX IF NOT EXISTS approvals_request_idx ON approvals (type, request_id);`,
	},
	{
		Index:       7,
		Description: "Create table: time_off_requests.",
		Query: `
        CREATE TABLE IF NOT EXISTS time_off_requests (
            id text primary key,
            user_id text not null references users(id),
            start_date timestamptz not null,
            end_date timestamptz not null,
            type text not null,
            reason text not null,
            status text not null default 'pending',
            requested_at timestamptz not null default now(),
            approved_at timestamptz,
            approved_by text references users(id),
            created_at timestamptz not null default now()
        );`,
	},
	{
		Index:       8,
		Description: "Create table: notifications.",
		Query: `
        CREATE TABLE IF NOT EXISTS notifications (
            id text primary key,
            user_id text not null references users(id) on delete cascade,
            type text not null,
            title text not null,
            message text not null,
            is_read boolean not null default false,
            data jsonb,
            created_at timestamptz not null default now()
        );
        CREATE INDEX IF NOT EXISTS notifications_user_idx ON notifications (user_id, created_at desc);`,
	},
	{
		Index:       9,
		Description: "Create table: setup_status.",
		Query: `
        CREATE TABLE IF NOT EXISTS setup_status (
            id int primary key,
            is_setup_complete boolean not null default false,
            setup_completed_at timestamptz
        );
        INSERT INTO setup_status (id, is_setup_complete)
        SELECT 1, false
        WHERE NOT EXISTS (SELECT id FROM setup_status WHERE id = 1);`,
	},
}

// Migrate runs every scheme statement regardless of the recorded version.
func Migrate(ctx context.Context, db *postgresql.Database) error {
	for _, s := range scheme {
		if _, err := db.ExecContext(ctx, s.Query); err != nil {
			return errors.Wrapf(err, "migrate version %d", s.Index)
		}
	}
	return nil
}

// MigrateUP applies the scheme statements newer than the version recorded in
// schema_migrations. A failed statement leaves the table dirty with its error
// and is retried first on the next run.
func MigrateUP(ctx context.Context, db *postgresql.Database) error {
	var (
		version int
		dirty   bool
		er      *string
	)
	err := db.QueryRowContext(ctx, "SELECT version, dirty, error FROM schema_migrations").Scan(&version, &dirty, &er)
	if err != nil {
		if !isUndefinedTable(err) {
			return errors.Wrap(err, "migrate schema_migrations scan")
		}
		if _, err = db.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS schema_migrations (version int not null, dirty bool not null, error text);
				DELETE FROM schema_migrations;
				INSERT INTO schema_migrations (version, dirty) values (0, false);
			`); err != nil {
			return errors.Wrap(err, "migrate schema_migrations create")
		}
		version = 0
		dirty = false
	}

	if dirty {
		for _, v := range scheme {
			if v.Index != version {
				continue
			}
			if err := apply(ctx, db, v); err != nil {
				return err
			}
			if _, err = db.ExecContext(ctx, `UPDATE schema_migrations SET dirty = false, error = null`); err != nil {
				return errors.Wrap(err, "migrate")
			}
		}
	}

	for _, s := range scheme {
		if s.Index <= version {
			continue
		}
		if err := apply(ctx, db, s); err != nil {
			return err
		}
		if _, err = db.ExecContext(ctx, `UPDATE schema_migrations SET version = ?, dirty = false, error = null`, s.Index); err != nil {
			return errors.Wrap(err, "migrate")
		}
		log.Printf("migrate: applied %d %s", s.Index, s.Description)
	}

	return nil
}

func apply(ctx context.Context, db *postgresql.Database, s Scheme) error {
	if _, err := db.ExecContext(ctx, s.Query); err != nil {
		if _, uErr := db.ExecContext(ctx, `UPDATE schema_migrations SET error = ?, version = ?, dirty = true`, err.Error(), s.Index); uErr != nil {
			return errors.Wrap(uErr, "migrate")
		}
		return errors.Wrapf(err, "migrate error version: %d", s.Index)
	}
	return nil
}

func isUndefinedTable(err error) bool {
	var pgErr pgdriver.Error
	return errors.As(err, &pgErr) && pgErr.Field('C') == "42P01"
}
