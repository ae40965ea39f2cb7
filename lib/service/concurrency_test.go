package service_test

import (
	"sync"

	"github.com/familyfin/ledgerhub/common"
	"github.com/familyfin/ledgerhub/lib/service"
)

// TestConcurrentOppositeTransfers moves money both ways between the same two
// accounts from several goroutines while an earlier row keeps being edited.
func (suite *LedgerTestSuite) TestConcurrentOppositeTransfers() {
	opening := suite.income(suite.cash, "1000", day(1))
	suite.income(suite.bank, "1000", day(1))

	const workers = 6
	const perWorker = 10
	errs := make(chan error, workers*perWorker+perWorker)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			from, to := suite.cash, suite.bank
			if w%2 == 1 {
				from, to = to, from
			}
			for i := 0; i < perWorker; i++ {
				p := suite.params(from, common.TransactionTypeTransfer, "12.35", day(2+(w+i)%15))
				p.RelatedAccountID = to
				_, err := suite.svc.CreateTransactions(suite.ctx, []service.CreateTransactionParams{p})
				errs <- err
			}
		}(w)
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < perWorker; i++ {
			amount := dec("1000")
			if i%2 == 0 {
				amount = dec("1000.01")
			}
			_, err := suite.svc.EditTransaction(suite.ctx, opening.ID, service.TransactionPatch{Amount: &amount})
			errs <- err
		}
	}()

	wg.Wait()
	close(errs)
	for err := range errs {
		suite.NoError(err)
	}

	suite.assertBalance(suite.cash, "1000")
	suite.assertBalance(suite.bank, "1000")
	suite.assertConsistent(suite.cash, suite.bank)
	suite.assertTransfersPaired()

	page, err := suite.svc.ListTransactions(suite.ctx, service.TransactionFilter{IsTransfer: boolPtr(true), PageSize: 500})
	suite.Require().NoError(err)
	suite.Equal(2*workers*perWorker, page.Total)
}

func boolPtr(b bool) *bool {
	return &b
}
