// File path: internal/tenant/store.go
package tenant

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/writway/writway/internal/common"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("tenant store: not found")

// Store wraps a pooled sqlx.DB connection to the tenant database. The schema
// is migrated on open.
type Store struct {
	db *sqlx.DB
}

// Open constructs a Store at the provided path; an empty path falls back to
// the environment configuration.
func Open(path string) (*Store, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		cfg.Path = trimmed
	}
	return OpenWithConfig(cfg)
}

// OpenWithConfig constructs a Store using the provided configuration.
func OpenWithConfig(cfg Config) (*Store, error) {
	logger := common.Logger()
	if strings.TrimSpace(cfg.Path) == "" {
		return nil, errors.New("tenant store: database path required")
	}
	abs, err := filepath.Abs(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}
	busy := int(cfg.BusyTimeout / time.Millisecond)
	if busy <= 0 {
		busy = 5000
	}
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)&_pragma=foreign_keys(1)", abs, busy)
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.BusyTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	store := &Store{db: db}
	if err := store.migrate(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	logger.Info("tenant: store ready", "path", abs)
	return store, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS tenants (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		plan_id TEXT NOT NULL DEFAULT 'starter',
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		tenant_id TEXT NOT NULL REFERENCES tenants(id) ON DELETE CASCADE,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'member',
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS clients (
		id TEXT PRIMARY KEY,
		tenant_id TEXT NOT NULL REFERENCES tenants(id) ON DELETE CASCADE,
		full_name TEXT NOT NULL,
		email TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		matter TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_clients_tenant ON clients(tenant_id)`,
	`CREATE TABLE IF NOT EXISTS subscriptions (
		id TEXT PRIMARY KEY,
		tenant_id TEXT NOT NULL REFERENCES tenants(id) ON DELETE CASCADE,
		plan_id TEXT NOT NULL,
		status TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_subscriptions_tenant ON subscriptions(tenant_id)`,
}

func (s *Store) migrate(ctx context.Context) error {
	for _, stmt := range migrations {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate tenant schema: %w", err)
		}
	}
	return nil
}

// CreateTenant inserts the tenant, assigning an ID and timestamps when
// absent.
const (
	insertTenantSQL = `
		INSERT INTO tenants (id, name, email, plan_id, created_at, updated_at)
		VALUES (:id, :name, :email, :plan_id, :created_at, :updated_at)`
	insertUserSQL = `
		INSERT INTO users (id, tenant_id, email, password_hash, role, created_at)
		VALUES (:id, :tenant_id, :email, :password_hash, :role, :created_at)`
)

func prepareTenant(t *Tenant) error {
	if t == nil {
		return errors.New("tenant required")
	}
	if strings.TrimSpace(t.Name) == "" {
		return errors.New("tenant name required")
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	if t.PlanID == "" {
		t.PlanID = "starter"
	}
	return nil
}

func prepareUser(u *User) error {
	if u == nil {
		return errors.New("user required")
	}
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	if u.Email == "" {
		return errors.New("user email required")
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Role == "" {
		u.Role = "member"
	}
	u.CreatedAt = time.Now().UTC()
	return nil
}

func (s *Store) CreateTenant(ctx context.Context, t *Tenant) error {
	if err := prepareTenant(t); err != nil {
		return err
	}
	if _, err := s.db.NamedExecContext(ctx, insertTenantSQL, t); err != nil {
		return fmt.Errorf("insert tenant: %w", err)
	}
	return nil
}

// CreateTenantWithOwner inserts the tenant and its first user in one
// transaction, so a failed user insert cannot strand an orphan tenant row.
func (s *Store) CreateTenantWithOwner(ctx context.Context, t *Tenant, u *User) error {
	if err := prepareTenant(t); err != nil {
		return err
	}
	if u == nil {
		return errors.New("user required")
	}
	u.TenantID = t.ID
	if err := prepareUser(u); err != nil {
		return err
	}
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if _, err := tx.NamedExecContext(ctx, insertTenantSQL, t); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("insert tenant: %w", err)
	}
	if _, err := tx.NamedExecContext(ctx, insertUserSQL, u); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("insert user: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tenant with owner: %w", err)
	}
	return nil
}

func (s *Store) GetTenant(ctx context.Context, id string) (*Tenant, error) {
	var t Tenant
	err := s.db.GetContext(ctx, &t, `SELECT * FROM tenants WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select tenant: %w", err)
	}
	return &t, nil
}

func (s *Store) ListTenants(ctx context.Context) ([]Tenant, error) {
	var tenants []Tenant
	if err := s.db.SelectContext(ctx, &tenants, `SELECT * FROM tenants ORDER BY created_at`); err != nil {
		return nil, fmt.Errorf("list tenants: %w", err)
	}
	return tenants, nil
}

func (s *Store) UpdateTenant(ctx context.Context, t *Tenant) error {
	if t == nil || t.ID == "" {
		return errors.New("tenant id required")
	}
	t.UpdatedAt = time.Now().UTC()
	res, err := s.db.NamedExecContext(ctx, `
		UPDATE tenants SET name = :name, email = :email, plan_id = :plan_id, updated_at = :updated_at
		WHERE id = :id`, t)
	if err != nil {
		return fmt.Errorf("update tenant: %w", err)
	}
	return requireRow(res)
}

func (s *Store) DeleteTenant(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tenants WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete tenant: %w", err)
	}
	return requireRow(res)
}

func (s *Store) CreateUser(ctx context.Context, u *User) error {
	if err := prepareUser(u); err != nil {
		return err
	}
	if _, err := s.db.NamedExecContext(ctx, insertUserSQL, u); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := s.db.GetContext(ctx, &u, `SELECT * FROM users WHERE email = ?`, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select user: %w", err)
	}
	return &u, nil
}

func (s *Store) CreateClient(ctx context.Context, c *Client) error {
	if c == nil {
		return errors.New("client required")
	}
	if c.TenantID == "" {
		return errors.New("client tenant id required")
	}
	if strings.TrimSpace(c.FullName) == "" {
		return errors.New("client name required")
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO clients (id, tenant_id, full_name, email, phone, matter, created_at, updated_at)
		VALUES (:id, :tenant_id, :full_name, :email, :phone, :matter, :created_at, :updated_at)`, c)
	if err != nil {
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

func (s *Store) GetClient(ctx context.Context, tenantID, id string) (*Client, error) {
	var c Client
	err := s.db.GetContext(ctx, &c, `SELECT * FROM clients WHERE tenant_id = ? AND id = ?`, tenantID, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select client: %w", err)
	}
	return &c, nil
}

func (s *Store) ListClients(ctx context.Context, tenantID string) ([]Client, error) {
	var clients []Client
	err := s.db.SelectContext(ctx, &clients, `SELECT * FROM clients WHERE tenant_id = ? ORDER BY created_at`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	return clients, nil
}

func (s *Store) UpdateClient(ctx context.Context, c *Client) error {
	if c == nil || c.ID == "" || c.TenantID == "" {
		return errors.New("client id and tenant id required")
	}
	c.UpdatedAt = time.Now().UTC()
	res, err := s.db.NamedExecContext(ctx, `
		UPDATE clients SET full_name = :full_name, email = :email, phone = :phone, matter = :matter, updated_at = :updated_at
		WHERE id = :id AND tenant_id = :tenant_id`, c)
	if err != nil {
		return fmt.Errorf("update client: %w", err)
	}
	return requireRow(res)
}

func (s *Store) DeleteClient(ctx context.Context, tenantID, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM clients WHERE tenant_id = ? AND id = ?`, tenantID, id)
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	return requireRow(res)
}

func (s *Store) CreateSubscription(ctx context.Context, sub *Subscription) error {
	if sub == nil {
		return errors.New("subscription required")
	}
	if sub.TenantID == "" || sub.PlanID == "" {
		return errors.New("subscription tenant and plan required")
	}
	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}
	if sub.Status == "" {
		sub.Status = SubscriptionPending
	}
	sub.CreatedAt = time.Now().UTC()
	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO subscriptions (id, tenant_id, plan_id, status, created_at)
		VALUES (:id, :tenant_id, :plan_id, :status, :created_at)`, sub)
	if err != nil {
		return fmt.Errorf("insert subscription: %w", err)
	}
	return nil
}

func (s *Store) LatestSubscription(ctx context.Context, tenantID string) (*Subscription, error) {
	var sub Subscription
	err := s.db.GetContext(ctx, &sub, `
		SELECT * FROM subscriptions WHERE tenant_id = ? ORDER BY created_at DESC LIMIT 1`, tenantID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select subscription: %w", err)
	}
	return &sub, nil
}

func requireRow(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
