package gormx

import (
	"context"
	stderrors "errors"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/saltfishpr/backoff"
	"github.com/saltfishpr/backoff/retryable"
)

// IsNotFound 判断 err 是否为 gorm.ErrRecordNotFound 错误。
// 记录不存在不是瞬时故障,永远不应该重试。
func IsNotFound(err error) bool {
	return stderrors.Is(err, gorm.ErrRecordNotFound)
}

type ctxKey string

const (
	// CtxKeyTransaction 是 context 中存储事务的默认键。
	CtxKeyTransaction ctxKey = "gormx_transaction"
)

// TransactionRepo 提供基于 context 的事务管理,并在连接类故障时重试整个事务。
// 它确保事务在同一个 context 中只创建一次,实现事务传播:
// 如果 context 中已存在事务,则复用该事务且不重试(重试由最外层事务负责)。
type TransactionRepo struct {
	db      *gorm.DB
	key     ctxKey
	options []backoff.Option
}

// NewTransactionRepo 创建一个新的 TransactionRepo 实例。
// db 是底层数据库连接,key 是用于在 context 中存储事务的键。
// options 控制事务的重试行为,默认只在错误信息匹配已知连接失败描述时重试。
func NewTransactionRepo(db *gorm.DB, key ctxKey, options ...backoff.Option) *TransactionRepo {
	return &TransactionRepo{
		db:      db,
		key:     key,
		options: append([]backoff.Option{backoff.WithRetryIf(retryable.IsConnectionError)}, options...),
	}
}

// DB 返回一个与 context 绑定的 gorm.DB 实例。
// 如果 context 中已存在事务,返回事务 DB;否则返回普通 DB。
func (r *TransactionRepo) DB(ctx context.Context) *gorm.DB {
	if db, ok := ctx.Value(r.key).(*gorm.DB); ok {
		return db
	}
	return r.db.WithContext(ctx)
}

// Transaction 在事务中执行 fn 函数。
// 如果 context 中已存在事务,则在现有事务中执行;否则创建新事务,
// 并在连接类故障导致事务失败时按退避策略重新执行整个事务。
// fn 返回 error 时事务回滚,否则提交。
func (r *TransactionRepo) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if fn == nil {
		panic("fn cannot be nil")
	}

	if _, ok := ctx.Value(r.key).(*gorm.DB); ok {
		return fn(ctx)
	}

	_, err := backoff.Do(ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, r.runInTransaction(ctx, fn)
	}, r.options...)
	return err
}

// TransactionResult 在事务中执行 fn 函数并返回结果,重试语义与 Transaction 相同。
func (r *TransactionRepo) TransactionResult(ctx context.Context, fn func(ctx context.Context) (any, error)) (any, error) {
	if fn == nil {
		panic("fn cannot be nil")
	}

	if _, ok := ctx.Value(r.key).(*gorm.DB); ok {
		return fn(ctx)
	}

	return backoff.Do(ctx, func(ctx context.Context) (any, error) {
		var res any
		err := r.runInTransaction(ctx, func(ctx context.Context) error {
			var err error
			res, err = fn(ctx)
			return err
		})
		return res, err
	}, r.options...)
}

func (r *TransactionRepo) runInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	err := r.db.Transaction(func(db *gorm.DB) error {
		tx := db.WithContext(ctx)
		ctx := context.WithValue(ctx, r.key, tx)
		return fn(ctx)
	})
	if err != nil {
		return errors.WithStack(err)
	}
	return nil
}
