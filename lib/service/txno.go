package service

import (
	"context"
	"fmt"
	"time"

	"github.com/familyfin/ledgerhub/common"
	"github.com/familyfin/ledgerhub/db/models"
	"github.com/uptrace/bun"
)

// nextTransactionNo issues the next number of the day, e.g. T202401050007.
// The per-day counter row is updated inside the caller's unit, so numbers
// stay unique across concurrent writers.
func nextTransactionNo(ctx context.Context, tx bun.IDB, now time.Time) (string, error) {
	day := now.UTC().Format("20060102")
	seq := &models.TransactionNoSequence{Day: day}
	if _, err := tx.NewInsert().
		Model(seq).
		On("CONFLICT (day) DO NOTHING").
		Returning("NULL").
		Exec(ctx); err != nil {
		return "", fmt.Errorf("init transaction number sequence %s: %w", day, err)
	}

	var last int64
	if err := tx.NewUpdate().
		Model((*models.TransactionNoSequence)(nil)).
		Set("last_seq = last_seq + 1").
		Where("day = ?", day).
		Returning("last_seq").
		Scan(ctx, &last); err != nil {
		return "", fmt.Errorf("advance transaction number sequence %s: %w", day, err)
	}
	return fmt.Sprintf("%s%s%04d", common.TransactionNoPrefix, day, last), nil
}
