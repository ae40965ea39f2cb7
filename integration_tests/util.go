package integration_tests

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	"github.com/familyfin/ledgerhub/db"
	"github.com/familyfin/ledgerhub/lib/logging"
	"github.com/familyfin/ledgerhub/lib/responses"
	"github.com/familyfin/ledgerhub/lib/service"
	"github.com/familyfin/ledgerhub/lib/transport"
	"github.com/familyfin/ledgerhub/rabbitmq"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

// testNow is the wall clock of every test service.
var testNow = time.Date(2024, time.January, 20, 12, 0, 0, 0, time.UTC)

func LedgerTestServiceInit() (svc *service.LedgerService, err error) {
	c := &service.Config{
		DatabaseUri:            "sqlite://:memory:",
		DatabaseTimeout:        60,
		DefaultRateLimit:       1000,
		StrictRateLimit:        1000,
		BurstRateLimit:         1000,
		RecentWindowMonths:     1,
		CascadeStaleDeletes:    true,
		VerifyChainOnWrite:     true,
		MaxBatchSize:           50,
		RabbitMQLedgerExchange: "test_ledger_events",
	}
	logger := logging.Logger(c.LogFilePath, "error")

	var publisher service.EventPublisher
	if rabbitmqUri, ok := os.LookupEnv("RABBITMQ_URI"); ok {
		c.RabbitMQUri = rabbitmqUri
		amqpClient, err := rabbitmq.DialAMQP(c.RabbitMQUri, logger)
		if err != nil {
			return nil, err
		}
		publisher, err = rabbitmq.NewClient(amqpClient,
			rabbitmq.WithLedgerExchange(c.RabbitMQLedgerExchange),
			rabbitmq.WithLogger(logger),
		)
		if err != nil {
			return nil, err
		}
	}

	dbConn, err := db.Open(c)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.Migrate(context.Background(), dbConn); err != nil {
		return nil, err
	}

	svc = &service.LedgerService{
		Config:       c,
		DB:           dbConn,
		Logger:       logger,
		Publisher:    publisher,
		LedgerPubSub: service.NewPubsub(),
		Clock:        func() time.Time { return testNow },
	}
	return svc, nil
}

func newTestEcho(svc *service.LedgerService) *echo.Echo {
	e := transport.InitEcho(svc.Config, svc.Logger)
	transport.RegisterEndpoints(svc, e,
		transport.CreateRateLimitMiddleware(svc.Config.StrictRateLimit, svc.Config.BurstRateLimit),
		transport.CreateLoggingMiddleware(svc.Logger),
	)
	return e
}

type TestSuite struct {
	suite.Suite
	echo *echo.Echo
	svc  *service.LedgerService
}

func (suite *TestSuite) SetupTest() {
	svc, err := LedgerTestServiceInit()
	suite.Require().NoError(err)
	suite.svc = svc
	suite.echo = newTestEcho(svc)
}

func (suite *TestSuite) TearDownTest() {
	suite.svc.DB.Close()
}

// do sends a request with an optional JSON body and returns the recorder.
func (suite *TestSuite) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		var buf bytes.Buffer
		assert.NoError(suite.T(), json.NewEncoder(&buf).Encode(body))
		reader = &buf
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	suite.echo.ServeHTTP(rec, req)
	return rec
}

func (suite *TestSuite) decode(rec *httptest.ResponseRecorder, status int, out interface{}) {
	suite.Require().Equal(status, rec.Code, rec.Body.String())
	suite.Require().NoError(json.NewDecoder(rec.Body).Decode(out))
}

func checkErrResponse(suite *TestSuite, rec *httptest.ResponseRecorder, status int) *responses.ErrorResponse {
	errorResponse := &responses.ErrorResponse{}
	assert.Equal(suite.T(), status, rec.Code, rec.Body.String())
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(errorResponse))
	assert.True(suite.T(), errorResponse.Error)
	return errorResponse
}

func (suite *TestSuite) accountTypeID(name string) int64 {
	types := []ExpectedAccountType{}
	suite.decode(suite.do(http.MethodGet, "/api/setting/accountTypes/list", nil), http.StatusOK, &types)
	for _, accountType := range types {
		if accountType.Name == name {
			return accountType.ID
		}
	}
	suite.FailNow("account type not seeded", name)
	return 0
}

func (suite *TestSuite) createAccount(name, accountType string) int64 {
	account := &ExpectedAccount{}
	suite.decode(suite.do(http.MethodPost, "/api/setting/accounts/add", &ExpectedAccountRequestBody{
		AccountName: name,
		TypeID:      suite.accountTypeID(accountType),
	}), http.StatusOK, account)
	return account.ID
}

func (suite *TestSuite) createCategory(name, categoryType string, parentID int64) int64 {
	category := &ExpectedCategory{}
	suite.decode(suite.do(http.MethodPost, "/api/setting/category/add", &ExpectedCategoryRequestBody{
		Name:     name,
		Type:     categoryType,
		ParentID: parentID,
	}), http.StatusOK, category)
	return category.ID
}

func (suite *TestSuite) addTransactions(body interface{}) []ExpectedCreatedTransaction {
	resp := &ExpectedAddTransactionResponseBody{}
	suite.decode(suite.do(http.MethodPost, "/api/business/transaction/add", body), http.StatusOK, resp)
	return resp.Transactions
}

func (suite *TestSuite) getTransaction(id int64) *ExpectedTransaction {
	transaction := &ExpectedTransaction{}
	suite.decode(suite.do(http.MethodGet, fmt.Sprintf("/api/business/transaction/detail/%d", id), nil), http.StatusOK, transaction)
	return transaction
}

func (suite *TestSuite) getAccount(id int64) *ExpectedAccount {
	account := &ExpectedAccount{}
	suite.decode(suite.do(http.MethodGet, fmt.Sprintf("/api/setting/accounts/detail/%d", id), nil), http.StatusOK, account)
	return account
}
