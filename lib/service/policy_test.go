package service_test

import (
	"time"

	"github.com/familyfin/ledgerhub/common"
	"github.com/familyfin/ledgerhub/db/models"
	"github.com/familyfin/ledgerhub/lib/service"
)

func (suite *LedgerTestSuite) TestStaleCreateRejected() {
	p := suite.params(suite.cash, common.TransactionTypeIncome, "10", time.Date(2023, time.December, 1, 0, 0, 0, 0, time.UTC))
	_, err := suite.svc.CreateTransactions(suite.ctx, []service.CreateTransactionParams{p})
	var validationErr *service.ValidationError
	suite.Require().ErrorAs(err, &validationErr)
	suite.Equal("transaction_date", validationErr.Field)
}

func (suite *LedgerTestSuite) TestStaleRowsAllowDescriptiveEdits() {
	row := suite.income(suite.cash, "100", day(5))
	later := suite.expense(suite.cash, "10", day(6))
	suite.now = suite.now.AddDate(0, 2, 0)

	description := "monthly salary"
	date := day(7)
	updated, err := suite.svc.EditTransaction(suite.ctx, row.ID, service.TransactionPatch{Description: &description, TransactionDate: &date})
	suite.Require().NoError(err)
	suite.Equal(description, updated.Description)
	suite.assertSnapshot(later.ID, "-10")
	suite.assertSnapshot(row.ID, "90")

	bank := suite.bank
	_, err = suite.svc.EditTransaction(suite.ctx, row.ID, service.TransactionPatch{AccountID: &bank})
	suite.True(service.IsValidation(err))

	// a recent row cannot be moved into the stale range with a new amount either
	recent := suite.income(suite.cash, "1", suite.now.AddDate(0, 0, -1))
	amount := dec("2")
	_, err = suite.svc.EditTransaction(suite.ctx, recent.ID, service.TransactionPatch{Amount: &amount, TransactionDate: &date})
	suite.True(service.IsValidation(err))
	suite.assertConsistent(suite.cash)
}

func (suite *LedgerTestSuite) TestStaleDeleteCascadesByDefault() {
	old := suite.income(suite.cash, "100", day(5))
	later := suite.expense(suite.cash, "10", day(6))
	suite.now = suite.now.AddDate(0, 2, 0)

	result, err := suite.svc.DeleteTransaction(suite.ctx, old.ID)
	suite.Require().NoError(err)
	suite.True(result.Cascaded)
	suite.assertSnapshot(later.ID, "-10")
	suite.assertBalance(suite.cash, "-10")
	suite.assertConsistent(suite.cash)
}

func (suite *LedgerTestSuite) TestStaleDeleteWithoutCascade() {
	suite.svc.Config.CascadeStaleDeletes = false
	suite.svc.Config.VerifyChainOnWrite = false
	suite.Require().NoError(suite.svc.Config.Validate())

	old := suite.income(suite.cash, "100", day(5))
	later := suite.expense(suite.cash, "10", day(6))
	suite.now = suite.now.AddDate(0, 2, 0)

	result, err := suite.svc.DeleteTransaction(suite.ctx, old.ID)
	suite.Require().NoError(err)
	suite.False(result.Cascaded)
	suite.assertSnapshot(later.ID, "90")
	suite.assertBalance(suite.cash, "-10")

	report, err := suite.svc.VerifyAccount(suite.ctx, suite.cash)
	suite.Require().NoError(err)
	suite.False(report.OK())
	suite.Require().Len(report.Mismatches, 1)
	suite.Equal(later.ID, report.Mismatches[0].TransactionID)

	repaired, err := suite.svc.RecomputeAccount(suite.ctx, suite.cash)
	suite.Require().NoError(err)
	suite.False(repaired.OK())
	suite.assertSnapshot(later.ID, "-10")
	suite.assertConsistent(suite.cash)

	// recent rows still cascade
	recent := suite.income(suite.cash, "5", suite.now.AddDate(0, 0, -2))
	last := suite.expense(suite.cash, "1", suite.now.AddDate(0, 0, -1))
	result, err = suite.svc.DeleteTransaction(suite.ctx, recent.ID)
	suite.Require().NoError(err)
	suite.True(result.Cascaded)
	suite.assertSnapshot(last.ID, "-11")
	suite.assertConsistent(suite.cash)
}

func (suite *LedgerTestSuite) TestBatchIsAtomic() {
	bad := suite.params(suite.cash, common.TransactionTypeIncome, "10", day(4))
	bad.CategoryID = suite.food
	_, err := suite.svc.CreateTransactions(suite.ctx, []service.CreateTransactionParams{
		suite.params(suite.cash, common.TransactionTypeIncome, "100", day(2)),
		suite.params(suite.bank, common.TransactionTypeExpense, "5", day(3)),
		bad,
	})
	var validationErr *service.ValidationError
	suite.Require().ErrorAs(err, &validationErr)
	suite.Equal("transactions[2].category_id", validationErr.Field)

	page, err := suite.svc.ListTransactions(suite.ctx, service.TransactionFilter{})
	suite.Require().NoError(err)
	suite.Equal(0, page.Total)
	suite.assertBalance(suite.cash, "0")
	suite.assertBalance(suite.bank, "0")

	// the number sequence rolled back with the batch
	row := suite.income(suite.cash, "1", day(2))
	suite.Equal("T202401200001", row.TransactionNo)
}

func (suite *LedgerTestSuite) TestBatchInOrder() {
	transfer := suite.params(suite.cash, common.TransactionTypeTransfer, "30", day(3))
	transfer.RelatedAccountID = suite.bank
	created, err := suite.svc.CreateTransactions(suite.ctx, []service.CreateTransactionParams{
		suite.params(suite.cash, common.TransactionTypeIncome, "100", day(2)),
		transfer,
		suite.params(suite.bank, common.TransactionTypeExpense, "5", day(4)),
	})
	suite.Require().NoError(err)
	suite.Require().Len(created, 3)
	suite.assertDecimal("100", created[0].BalanceAfter)
	suite.assertDecimal("70", created[1].BalanceAfter)
	suite.assertDecimal("25", created[2].BalanceAfter)
	suite.assertBalance(suite.cash, "70")
	suite.assertBalance(suite.bank, "25")

	suite.svc.Config.MaxBatchSize = 2
	_, err = suite.svc.CreateTransactions(suite.ctx, []service.CreateTransactionParams{
		suite.params(suite.cash, common.TransactionTypeIncome, "1", day(2)),
		suite.params(suite.cash, common.TransactionTypeIncome, "1", day(2)),
		suite.params(suite.cash, common.TransactionTypeIncome, "1", day(2)),
	})
	suite.True(service.IsValidation(err))
}

func (suite *LedgerTestSuite) TestOverdraftEnforcement() {
	suite.svc.Config.EnforceOverdraft = true

	_, err := suite.svc.CreateTransactions(suite.ctx, []service.CreateTransactionParams{
		suite.params(suite.cash, common.TransactionTypeExpense, "10", day(2)),
	})
	suite.True(service.IsValidation(err), "got %v", err)
	suite.assertBalance(suite.cash, "0")

	limit := dec("100")
	_, err = suite.svc.UpdateAccount(suite.ctx, suite.card, service.AccountParams{CreditLimit: limit})
	suite.Require().NoError(err)

	_, err = suite.svc.CreateTransactions(suite.ctx, []service.CreateTransactionParams{
		suite.params(suite.card, common.TransactionTypeExpense, "150", day(2)),
	})
	suite.True(service.IsValidation(err))

	suite.expense(suite.card, "80", day(2))
	suite.assertBalance(suite.card, "-80")
}

func (suite *LedgerTestSuite) TestWriteDetectsDrift() {
	suite.income(suite.cash, "100", day(1))
	_, err := suite.svc.DB.NewUpdate().
		Model((*models.Account)(nil)).
		Set("balance = ?", models.NewMoney(dec("999"))).
		Where("id = ?", suite.cash).
		Exec(suite.ctx)
	suite.Require().NoError(err)

	_, err = suite.svc.CreateTransactions(suite.ctx, []service.CreateTransactionParams{
		suite.params(suite.cash, common.TransactionTypeIncome, "1", day(2)),
	})
	suite.True(service.IsIntegrity(err), "got %v", err)

	page, err := suite.svc.ListTransactions(suite.ctx, service.TransactionFilter{AccountID: suite.cash})
	suite.Require().NoError(err)
	suite.Equal(1, page.Total)
}

func (suite *LedgerTestSuite) TestVerifyAndRecompute() {
	first := suite.income(suite.cash, "100", day(1))
	second := suite.expense(suite.cash, "40", day(2))
	suite.income(suite.bank, "10", day(1))

	_, err := suite.svc.DB.NewUpdate().
		Model((*models.Transaction)(nil)).
		Set("balance_after = ?", models.NewMoney(dec("1"))).
		Where("id = ?", first.ID).
		Exec(suite.ctx)
	suite.Require().NoError(err)

	reports, err := suite.svc.VerifyAllAccounts(suite.ctx, 2)
	suite.Require().NoError(err)
	suite.Require().Len(reports, 3)
	suite.Equal(suite.cash, reports[0].AccountID)
	suite.False(reports[0].OK())
	suite.True(reports[1].OK())
	suite.True(reports[2].OK())
	suite.Equal(2, reports[0].Rows)
	suite.Require().Len(reports[0].Mismatches, 1)
	suite.assertDecimal("100", reports[0].Mismatches[0].Expected)

	events := make(chan models.LedgerEvent, 1)
	id := suite.svc.LedgerPubSub.Subscribe(service.AllAccountsTopic, events)
	defer suite.svc.LedgerPubSub.Unsubscribe(id, service.AllAccountsTopic)

	report, err := suite.svc.RecomputeAccount(suite.ctx, suite.cash)
	suite.Require().NoError(err)
	suite.False(report.OK())
	suite.assertSnapshot(first.ID, "100")
	suite.assertSnapshot(second.ID, "60")
	suite.assertConsistent(suite.cash)

	event := <-events
	suite.Equal(common.EventChainRecomputed, event.Type)
	suite.Equal([]int64{first.ID}, event.TransactionIDs)

	// a consistent account is left alone and announces nothing
	report, err = suite.svc.RecomputeAccount(suite.ctx, suite.bank)
	suite.Require().NoError(err)
	suite.True(report.OK())
	suite.Len(events, 0)

	_, err = suite.svc.VerifyAccount(suite.ctx, 9999)
	suite.True(service.IsNotFound(err))
}

func (suite *LedgerTestSuite) TestAuditChains() {
	first := suite.income(suite.cash, "100", day(1))
	suite.income(suite.bank, "10", day(1))

	broken, err := suite.svc.AuditChains(suite.ctx)
	suite.Require().NoError(err)
	suite.Equal(0, broken)

	_, err = suite.svc.DB.NewUpdate().
		Model((*models.Transaction)(nil)).
		Set("balance_after = ?", models.NewMoney(dec("5"))).
		Where("id = ?", first.ID).
		Exec(suite.ctx)
	suite.Require().NoError(err)

	broken, err = suite.svc.AuditChains(suite.ctx)
	suite.Require().NoError(err)
	suite.Equal(1, broken)

	// disabled routine returns right away
	suite.svc.Config.ChainAuditInterval = 0
	suite.NoError(suite.svc.StartChainAuditRoutine(suite.ctx))
}
