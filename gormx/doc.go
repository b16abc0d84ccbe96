// Package gormx 提供 GORM 的重试扩展:
//   - 事务重试: TransactionRepo 在连接类故障时按退避策略重新执行整个事务
//   - 事务传播: 基于 context 的 once-transaction 机制,同一个 context 中复用事务
//   - IsNotFound: gorm.ErrRecordNotFound 判定
package gormx
