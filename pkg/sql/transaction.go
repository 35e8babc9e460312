package sql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/klwxsrx/deskbooking/pkg/persistence"
)

type instanceID string

type txData struct {
	ClientTx
	instanceID instanceID
}

type transaction struct {
	id     instanceID
	client TxClient
}

// NewTransaction returns a Transaction nested calls of which share one database transaction.
// Distinct instanceName values never share transactions even when contexts are nested.
func NewTransaction(client TxClient, instanceName string) persistence.Transaction {
	return &transaction{id: instanceID(instanceName), client: client}
}

func (t *transaction) WithinContext(
	ctx context.Context,
	fn func(ctx context.Context) error,
	lockNames ...string,
) (err error) {
	storedTx, ok := ctx.Value(dbTransactionContextKey).(txData)
	hasParentTx := ok && storedTx.instanceID == t.id
	if !hasParentTx {
		var tx ClientTx
		tx, err = t.client.Begin(ctx)
		if err != nil {
			return fmt.Errorf("start db transaction: %w", err)
		}
		defer func() {
			if err != nil {
				_ = tx.Rollback()
			}
		}()

		storedTx = txData{ClientTx: tx, instanceID: t.id}
		ctx = context.WithValue(ctx, dbTransactionContextKey, storedTx)
	}

	for _, lockName := range lockNames {
		err = withTransactionLevelLock(ctx, lockName, storedTx.ClientTx)
		if err != nil {
			return err
		}
	}

	err = fn(ctx)
	if err != nil || hasParentTx {
		return err
	}

	err = storedTx.ClientTx.Commit()
	if err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

type transactionalClient struct {
	client Client
}

// NewTransactionalClient uses the transaction stored in ctx if any, the client otherwise
func NewTransactionalClient(client Client) Client {
	return &transactionalClient{client: client}
}

func (c *transactionalClient) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return c.fromContext(ctx).ExecContext(ctx, query, args...)
}

func (c *transactionalClient) GetContext(ctx context.Context, dest any, query string, args ...any) error {
	return c.fromContext(ctx).GetContext(ctx, dest, query, args...)
}

func (c *transactionalClient) SelectContext(ctx context.Context, dest any, query string, args ...any) error {
	return c.fromContext(ctx).SelectContext(ctx, dest, query, args...)
}

func (c *transactionalClient) fromContext(ctx context.Context) Client {
	if tx, ok := ctx.Value(dbTransactionContextKey).(txData); ok {
		return tx.ClientTx
	}

	return c.client
}
