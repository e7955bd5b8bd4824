// internal/app/system/txn/txn.go

// Package txn runs multi-document writes inside a MongoDB transaction
// when the deployment supports one, and falls back to plain sequential
// writes when it does not (standalone servers have no transactions).
//
// The fallback gives up atomicity, not correctness of the individual
// writes; callers that need partial-failure cleanup must handle it in
// the callback.
package txn

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// WithFallback executes fn transactionally against client. If starting
// or running the transaction fails because the deployment does not
// support transactions, fn is re-run outside a session.
func WithFallback(ctx context.Context, client *mongo.Client, log *zap.Logger, fn func(ctx context.Context) error) error {
	session, err := client.StartSession()
	if err != nil {
		if IsNotSupported(err) {
			log.Debug("transactions unavailable; running without a session", zap.Error(err))
			return fn(ctx)
		}
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		return nil, fn(sc)
	})
	if err != nil && IsNotSupported(err) {
		log.Debug("transactions unavailable; running without a session", zap.Error(err))
		return fn(ctx)
	}
	return err
}

// Server error codes that indicate the deployment cannot run
// transactions (IllegalOperation variants and "transaction numbers
// are only allowed on a replica set member").
var notSupportedCodes = map[int32]bool{20: true, 51: true, 263: true}

// IsNotSupported reports whether err means the server cannot run
// transactions at all, as opposed to a transient or logical failure.
func IsNotSupported(err error) bool {
	if err == nil {
		return false
	}

	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		return notSupportedCodes[cmdErr.Code]
	}

	// Driver-level errors arrive as plain strings; recognize the usual
	// phrasings from standalone servers and old deployments.
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "transaction") &&
		(strings.Contains(msg, "replica set") || strings.Contains(msg, "session") || strings.Contains(msg, "illegal operation")) {
		return true
	}
	if strings.Contains(msg, "session") && strings.Contains(msg, "not supported") {
		return true
	}
	return false
}
