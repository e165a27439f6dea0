package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	pkgsql "github.com/klwxsrx/go-storefront/pkg/sql"
	"github.com/klwxsrx/go-storefront/pkg/session"
)

const tableName = "client_session"

type store struct {
	db        pkgsql.Client
	namespace string
	builder   sq.StatementBuilderType
}

// NewStore keeps one session row per namespace in client_session.
// The table is created by data/sql/session migrations.
func NewStore(db pkgsql.Client, namespace string) session.Store {
	return &store{
		db:        db,
		namespace: namespace,
		builder:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (s *store) Token(ctx context.Context) (session.Token, error) {
	var token sql.NullString
	err := s.get(ctx, "token", &token)
	if err != nil {
		return "", fmt.Errorf("get session token: %w", err)
	}

	return session.Token(token.String), nil
}

func (s *store) SetToken(ctx context.Context, token session.Token) error {
	err := s.upsert(ctx, "token", string(token))
	if err != nil {
		return fmt.Errorf("set session token: %w", err)
	}
	return nil
}

func (s *store) DeleteToken(ctx context.Context) error {
	err := s.clear(ctx, "token")
	if err != nil {
		return fmt.Errorf("delete session token: %w", err)
	}
	return nil
}

func (s *store) Identity(ctx context.Context) (*session.Identity, error) {
	var data []byte
	err := s.get(ctx, "identity", &data)
	if err != nil {
		return nil, fmt.Errorf("get session identity: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var identity session.Identity
	err = json.Unmarshal(data, &identity)
	if err != nil {
		return nil, fmt.Errorf("decode session identity: %w", err)
	}

	return &identity, nil
}

func (s *store) SetIdentity(ctx context.Context, identity session.Identity) error {
	data, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("encode session identity: %w", err)
	}

	err = s.upsert(ctx, "identity", string(data))
	if err != nil {
		return fmt.Errorf("set session identity: %w", err)
	}
	return nil
}

func (s *store) DeleteIdentity(ctx context.Context) error {
	err := s.clear(ctx, "identity")
	if err != nil {
		return fmt.Errorf("delete session identity: %w", err)
	}
	return nil
}

func (s *store) get(ctx context.Context, column string, dest any) error {
	query, args, err := s.builder.
		Select(column).
		From(tableName).
		Where(sq.Eq{"namespace": s.namespace}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build sql: %w", err)
	}

	err = s.db.GetContext(ctx, dest, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	return err
}

func (s *store) upsert(ctx context.Context, column string, value string) error {
	query, args, err := s.builder.
		Insert(tableName).
		Columns("namespace", column, "updated_at").
		Values(s.namespace, value, sq.Expr("now()")).
		Suffix(fmt.Sprintf("on conflict (namespace) do update set %[1]s = excluded.%[1]s, updated_at = excluded.updated_at", column)).
		ToSql()
	if err != nil {
		return fmt.Errorf("build sql: %w", err)
	}

	_, err = s.db.ExecContext(ctx, query, args...)
	return err
}

func (s *store) clear(ctx context.Context, column string) error {
	query, args, err := s.builder.
		Update(tableName).
		Set(column, sq.Expr("null")).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"namespace": s.namespace}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build sql: %w", err)
	}

	_, err = s.db.ExecContext(ctx, query, args...)
	return err
}
